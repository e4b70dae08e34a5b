package testutil

import "testing"

func TestFixtureHelpers(t *testing.T) {
	db := OpenMemory(t)
	MustExec(t, db, "CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)")
	AssertTableExists(t, db, "notes")

	MustLoadFixture(t, db, "notes", []map[string]any{{"body": "a"}, {"body": "b"}})
	AssertRowCount(t, db, "notes", 2)

	names, err := TableNames(db)
	if err != nil {
		t.Fatalf("TableNames: %v", err)
	}
	if len(names) != 1 || names[0] != "notes" {
		t.Errorf("unexpected tables %v", names)
	}
	if TableExists(db, "missing") {
		t.Error("missing table reported as existing")
	}
}

func TestLoadFixtureUnknownTable(t *testing.T) {
	db := OpenMemory(t)
	if err := LoadFixture(db, "missing", []map[string]any{{"x": 1}}); err == nil {
		t.Fatal("expected error for unknown table")
	}
}
