package sql

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kbukum/gollama/database"
	"github.com/kbukum/gollama/validation"
)

// DataDir returns the per-application data directory, where relative
// database paths are created.
func DataDir(identifier string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, identifier), nil
}

// resolvePath maps a database URL to a SQLite path.
func resolvePath(dataDir, url string) string {
	p := strings.TrimPrefix(url, validation.SQLiteScheme)
	if p == database.MemoryPath || filepath.IsAbs(p) || dataDir == "" {
		return p
	}
	return filepath.Join(dataDir, p)
}
