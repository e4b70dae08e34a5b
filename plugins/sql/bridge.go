package sql

import "github.com/kbukum/gollama/database"

// Bridge is the object bound to the frontend. Its methods mirror the
// Database API the frontend uses: load, execute, select and close.
type Bridge struct {
	p *Plugin
}

// Load opens a database and returns its URL.
func (b *Bridge) Load(db string) (string, error) {
	return b.p.Load(b.p.baseContext(), db)
}

// Execute runs a write statement.
func (b *Bridge) Execute(db, query string, values []any) (database.Result, error) {
	return b.p.Execute(b.p.baseContext(), db, query, values)
}

// Select runs a read statement.
func (b *Bridge) Select(db, query string, values []any) ([]map[string]any, error) {
	return b.p.Select(b.p.baseContext(), db, query, values)
}

// Close closes one database, or every database when db is empty.
func (b *Bridge) Close(db string) (bool, error) {
	return b.p.Close(db)
}
