// Package testutil provides SQLite helpers for tests that exercise the
// database layer and the SQL plugin.
//
//	db := testutil.OpenMemory(t)
//	testutil.MustExec(t, db, "CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)")
//	testutil.MustLoadFixture(t, db, "notes", []map[string]any{{"body": "hello"}})
//	testutil.AssertRowCount(t, db, "notes", 1)
package testutil
