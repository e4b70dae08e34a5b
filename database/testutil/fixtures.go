package testutil

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenMemory opens a private in-memory SQLite database that is closed
// when the test ends. The pool is pinned to one connection so every
// statement sees the same database.
func OpenMemory(t testing.TB) *gorm.DB {
	t.Helper()
	return Open(t, "file::memory:")
}

// Open opens the SQLite database at dsn for the duration of the test.
func Open(t testing.TB, dsn string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open database %s: %v", dsn, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// MustExec runs a statement and fails the test on error.
func MustExec(t testing.TB, db *gorm.DB, query string, args ...any) {
	t.Helper()
	if err := db.Exec(query, args...).Error; err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

// LoadFixture inserts rows into table. Each map is one row.
func LoadFixture(db *gorm.DB, table string, rows []map[string]any) error {
	for _, row := range rows {
		if err := db.Table(table).Create(row).Error; err != nil {
			return fmt.Errorf("insert fixture row into %s: %w", table, err)
		}
	}
	return nil
}

// MustLoadFixture loads rows and fails the test on error.
func MustLoadFixture(t testing.TB, db *gorm.DB, table string, rows []map[string]any) {
	t.Helper()
	if err := LoadFixture(db, table, rows); err != nil {
		t.Fatalf("LoadFixture failed: %v", err)
	}
}

// TableExists reports whether table exists.
func TableExists(db *gorm.DB, table string) bool {
	return db.Migrator().HasTable(table)
}

// TableNames lists the non-system tables.
func TableNames(db *gorm.DB) ([]string, error) {
	var tables []string
	err := db.Raw("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name").
		Scan(&tables).Error
	return tables, err
}

// CountRows returns the number of rows in table.
func CountRows(db *gorm.DB, table string) (int64, error) {
	var count int64
	err := db.Raw(fmt.Sprintf("SELECT COUNT(*) FROM %q", table)).Scan(&count).Error
	return count, err
}

// AssertRowCount fails the test unless table holds exactly want rows.
func AssertRowCount(t testing.TB, db *gorm.DB, table string, want int64) {
	t.Helper()
	got, err := CountRows(db, table)
	if err != nil {
		t.Fatalf("count rows in %s: %v", table, err)
	}
	if got != want {
		t.Errorf("expected %d rows in %s, got %d", want, table, got)
	}
}

// AssertTableExists fails the test if table is missing.
func AssertTableExists(t testing.TB, db *gorm.DB, table string) {
	t.Helper()
	if !TableExists(db, table) {
		t.Errorf("expected table %s to exist", table)
	}
}
