// Package migration applies versioned SQL migrations to a GORM-managed
// SQLite database using golang-migrate.
//
// Migration files follow golang-migrate naming inside any fs.FS:
//
//	//go:embed migrations/*.sql
//	var migrationsFS embed.FS
//
//	err := migration.Up(db.GormDB, migration.Source{FS: migrationsFS, Path: "migrations"})
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

// DriverFunc creates a migrate database driver from sql.DB.
type DriverFunc func(*sql.DB) (database.Driver, error)

// SQLite is the DriverFunc for go-sqlite3 connections.
func SQLite(db *sql.DB) (database.Driver, error) {
	return sqlite3.WithInstance(db, &sqlite3.Config{})
}

// Source locates migration files.
type Source struct {
	FS   fs.FS
	Path string
	// Driver defaults to SQLite.
	Driver DriverFunc
}

func (s Source) driver() DriverFunc {
	if s.Driver != nil {
		return s.Driver
	}
	return SQLite
}

// Up runs all pending migrations. No pending migrations is not an error.
func Up(gormDB *gorm.DB, src Source) error {
	m, err := newMigrator(gormDB, src)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back all migrations. Nothing to roll back is not an error.
func Down(gormDB *gorm.DB, src Source) error {
	m, err := newMigrator(gormDB, src)
	if err != nil {
		return err
	}
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version returns the current migration version and dirty flag. A database
// without migrations reports version 0.
func Version(gormDB *gorm.DB, src Source) (version uint, dirty bool, err error) {
	m, err := newMigrator(gormDB, src)
	if err != nil {
		return 0, false, err
	}
	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// newMigrator creates a golang-migrate instance backed by src.
// Callers must NOT call m.Close(); it would close the shared sql.DB.
func newMigrator(gormDB *gorm.DB, src Source) (*migrate.Migrate, error) {
	if src.FS == nil {
		return nil, fmt.Errorf("migration source has no filesystem")
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	driver, err := src.driver()(sqlDB)
	if err != nil {
		return nil, fmt.Errorf("create database driver: %w", err)
	}

	source, err := iofs.New(src.FS, src.Path)
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
