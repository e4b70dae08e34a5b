package log

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// TargetKind identifies where a Target writes.
type TargetKind int

const (
	KindStdout TargetKind = iota
	KindStderr
	KindLogDir
	KindWebview
	KindFolder
)

// Target is one log sink.
type Target struct {
	Kind TargetKind
	// Path is the directory for KindFolder.
	Path string
}

var (
	// Stdout writes human-readable lines to standard output.
	Stdout = Target{Kind: KindStdout}
	// Stderr writes human-readable lines to standard error.
	Stderr = Target{Kind: KindStderr}
	// LogDir appends JSON lines to <log dir>/<product>.log.
	LogDir = Target{Kind: KindLogDir}
	// Webview forwards records to the frontend as log://log events.
	Webview = Target{Kind: KindWebview}
)

// Folder appends JSON lines to <path>/<product>.log.
func Folder(path string) Target {
	return Target{Kind: KindFolder, Path: path}
}

func (t Target) String() string {
	switch t.Kind {
	case KindStdout:
		return "Stdout"
	case KindStderr:
		return "Stderr"
	case KindLogDir:
		return "LogDir"
	case KindWebview:
		return "Webview"
	case KindFolder:
		return fmt.Sprintf("Folder(%s)", t.Path)
	default:
		return fmt.Sprintf("Target(%d)", int(t.Kind))
	}
}

// Dir returns the platform log directory for an application identifier.
func Dir(identifier string) (string, error) {
	if runtime.GOOS == "darwin" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Logs", identifier), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, identifier, "logs"), nil
}

// dedupe keeps the first occurrence of every target, preserving order.
func dedupe(targets []Target) []Target {
	seen := make(map[Target]bool, len(targets))
	out := make([]Target, 0, len(targets))
	for _, t := range targets {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
