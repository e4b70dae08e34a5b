package migration

import (
	"testing"
	"testing/fstest"

	"github.com/kbukum/gollama/database/testutil"
)

func testSource() Source {
	return Source{
		FS: fstest.MapFS{
			"migrations/1_settings.up.sql":   {Data: []byte("CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT);")},
			"migrations/1_settings.down.sql": {Data: []byte("DROP TABLE settings;")},
			"migrations/2_seed.up.sql":       {Data: []byte("INSERT INTO settings (key, value) VALUES ('theme', 'dark');")},
			"migrations/2_seed.down.sql":     {Data: []byte("DELETE FROM settings WHERE key = 'theme';")},
		},
		Path: "migrations",
	}
}

func TestUpAndVersion(t *testing.T) {
	db := testutil.OpenMemory(t)
	src := testSource()

	if v, _, err := Version(db, src); err != nil || v != 0 {
		t.Fatalf("expected version 0 before migrating, got %d (%v)", v, err)
	}

	if err := Up(db, src); err != nil {
		t.Fatalf("Up failed: %v", err)
	}
	// Second run has nothing to do.
	if err := Up(db, src); err != nil {
		t.Fatalf("second Up failed: %v", err)
	}

	v, dirty, err := Version(db, src)
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if v != 2 || dirty {
		t.Errorf("expected version 2 clean, got %d dirty=%v", v, dirty)
	}

	testutil.AssertRowCount(t, db, "settings", 1)
	var value string
	if err := db.Raw("SELECT value FROM settings WHERE key = 'theme'").Scan(&value).Error; err != nil {
		t.Fatalf("select: %v", err)
	}
	if value != "dark" {
		t.Errorf("expected seeded value 'dark', got %q", value)
	}
}

func TestDown(t *testing.T) {
	db := testutil.OpenMemory(t)
	src := testSource()

	if err := Up(db, src); err != nil {
		t.Fatalf("Up failed: %v", err)
	}
	if err := Down(db, src); err != nil {
		t.Fatalf("Down failed: %v", err)
	}
	if testutil.TableExists(db, "settings") {
		t.Error("expected settings table dropped")
	}
}

func TestMissingFS(t *testing.T) {
	db := testutil.OpenMemory(t)
	if err := Up(db, Source{Path: "migrations"}); err == nil {
		t.Error("expected error for missing filesystem")
	}
}
