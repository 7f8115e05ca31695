package migration

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/timetable/migrations"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mapFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count)
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	return count == 1
}

func TestApply_FromScratch(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	runner := NewRunner(db, mapFS(map[string]string{
		"001_first.sql":  "CREATE TABLE first (id INTEGER);",
		"002_second.sql": "CREATE TABLE second (id INTEGER);\nCREATE TABLE third (id INTEGER);",
		"README.md":      "ignored",
	}))

	applied, err := runner.Apply(ctx)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied %d migrations, want 2", applied)
	}
	for _, table := range []string{"first", "second", "third"} {
		if !tableExists(t, db, table) {
			t.Errorf("table %s missing", table)
		}
	}
	if v, _ := runner.CurrentVersion(ctx); v != 2 {
		t.Errorf("CurrentVersion() = %d, want 2", v)
	}

	applied, err = runner.Apply(ctx)
	if err != nil || applied != 0 {
		t.Errorf("second Apply() = %d, %v; want 0, nil", applied, err)
	}
}

func TestApply_Incremental(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	files := map[string]string{"001_first.sql": "CREATE TABLE first (id INTEGER);"}

	if _, err := NewRunner(db, mapFS(files)).Apply(ctx); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	files["002_second.sql"] = "CREATE TABLE second (id INTEGER);"
	applied, err := NewRunner(db, mapFS(files)).Apply(ctx)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if applied != 1 || !tableExists(t, db, "second") {
		t.Errorf("incremental apply ran %d migrations", applied)
	}
}

func TestApply_RollsBackFailedMigration(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	runner := NewRunner(db, mapFS(map[string]string{
		"001_good.sql": "CREATE TABLE good (id INTEGER);",
		"002_bad.sql":  "CREATE TABLE partial (id INTEGER);\nTHIS IS NOT SQL;",
	}))

	applied, err := runner.Apply(ctx)
	if err == nil {
		t.Fatal("Apply() accepted invalid SQL")
	}
	if applied != 1 {
		t.Errorf("applied %d migrations before the failure, want 1", applied)
	}
	if tableExists(t, db, "partial") {
		t.Error("failed migration was not rolled back")
	}
	if v, _ := runner.CurrentVersion(ctx); v != 1 {
		t.Errorf("CurrentVersion() = %d, want 1", v)
	}
}

func TestValidate_NewerDatabase(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	newer := NewRunner(db, mapFS(map[string]string{
		"001_first.sql":  "CREATE TABLE first (id INTEGER);",
		"002_second.sql": "CREATE TABLE second (id INTEGER);",
	}))
	if _, err := newer.Apply(ctx); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	older := NewRunner(db, mapFS(map[string]string{"001_first.sql": "CREATE TABLE first (id INTEGER);"}))
	if err := older.Validate(ctx); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Validate() error = %v, want ErrSchemaTooNew", err)
	}
	if _, err := older.Apply(ctx); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Apply() error = %v, want ErrSchemaTooNew", err)
	}
	if err := newer.Validate(ctx); err != nil {
		t.Errorf("Validate() on current schema error: %v", err)
	}
}

func TestMigrations_FilenameValidation(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{"missing name", map[string]string{"001.sql": ""}},
		{"non-numeric version", map[string]string{"abc_init.sql": ""}},
		{"zero version", map[string]string{"000_init.sql": ""}},
		{"duplicate version", map[string]string{"001_a.sql": "", "1_b.sql": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRunner(nil, mapFS(tt.files)).Migrations(); err == nil {
				t.Error("Migrations() accepted an invalid file set")
			}
		})
	}
}

func TestLatestVersion(t *testing.T) {
	runner := NewRunner(nil, mapFS(map[string]string{
		"003_c.sql": "",
		"001_a.sql": "",
		"010_j.sql": "",
	}))
	latest, err := runner.LatestVersion()
	if err != nil {
		t.Fatalf("LatestVersion() error: %v", err)
	}
	if latest != 10 {
		t.Errorf("LatestVersion() = %d, want 10", latest)
	}

	empty, err := NewRunner(nil, fstest.MapFS{}).LatestVersion()
	if err != nil || empty != 0 {
		t.Errorf("empty LatestVersion() = %d, %v", empty, err)
	}
}

func TestEmbeddedSQLiteMigrations(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	runner := NewRunner(db, migrations.SQLite())

	if _, err := runner.Apply(ctx); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if !tableExists(t, db, "events") {
		t.Error("events table missing after embedded migrations")
	}
	latest, _ := runner.LatestVersion()
	if v, _ := runner.CurrentVersion(ctx); v != latest || latest < 1 {
		t.Errorf("CurrentVersion() = %d, LatestVersion() = %d", v, latest)
	}
}
