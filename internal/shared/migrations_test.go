package shared

import (
	"database/sql"
	"testing"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	ConfigureDatabase(db, 1, 1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) < 2 {
			t.Fatalf("expected at least two migrations, got %d", len(migrations))
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		for _, m := range migrations {
			if m.Up == "" || m.Down == "" {
				t.Errorf("migration version %d missing up or down SQL", m.Version)
			}
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db := newTestDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if _, err := db.Exec("SELECT playlist_name FROM operations LIMIT 1"); err != nil {
			t.Errorf("operations table should have playlist_name after migrations: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}
		if _, err := db.Exec("SELECT playlist_name FROM operations LIMIT 1"); err == nil {
			t.Error("playlist_name should be gone after rollback")
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback first migration: %v", err)
		}
		if _, err := db.Exec("SELECT 1 FROM operations LIMIT 1"); err == nil {
			t.Error("operations table should be dropped after full rollback")
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when nothing is left to roll back")
		}
	})

	t.Run("Idempotent Migrations", func(t *testing.T) {
		db := newTestDB(t)

		for i := 0; i < 2; i++ {
			if err := RunMigrations(db); err != nil {
				t.Fatalf("failed to run migrations (pass %d): %v", i+1, err)
			}
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}

		migrations, _ := loadMigrations()
		if count != len(migrations) {
			t.Errorf("expected %d migrations to be applied, got %d", len(migrations), count)
		}
	})

	t.Run("stripComments", func(t *testing.T) {
		got := stripComments("-- header\n  CREATE TABLE x (id INT) -- trailing\n\n")
		if got != "CREATE TABLE x (id INT)" {
			t.Errorf("unexpected result %q", got)
		}
	})

	t.Run("OpenDatabase", func(t *testing.T) {
		db, err := OpenDatabase(DatabaseConfig{Path: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := db.Exec("SELECT 1 FROM operations LIMIT 1"); err != nil {
			t.Errorf("operations table should exist: %v", err)
		}
	})
}
