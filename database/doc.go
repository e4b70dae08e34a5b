// Package database wraps GORM over SQLite for the shell's SQL plugin:
// connection setup with retry, a zerolog-backed GORM logger, raw statement
// execution that reports rows affected and the last insert id, row
// selection into maps, transactions and golang-migrate migrations.
//
//	db, err := database.Open(ctx, database.Config{Path: "/data/gollama.db"}, log)
//	res, err := db.Exec(ctx, "INSERT INTO settings (key, value) VALUES ($1, $2)", "theme", "dark")
//	rows, err := db.Query(ctx, "SELECT * FROM settings")
//
// See the migration subpackage for versioned schema migrations.
package database
