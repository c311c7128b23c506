package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/love-yuri/qq-music-api/internal/models"
	"github.com/love-yuri/qq-music-api/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func newAdd(dirID int64, songID uint64) *models.Operation {
	op := models.NewOperation(models.OpAddSong, "10001").WithPlaylist(dirID, songID)
	op.Finish(true, "ok", nil)
	return op
}

func TestOperationRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewOperationRepository(db)
		op := newAdd(201, 9001)

		if err := repo.Create(op); err != nil {
			t.Fatalf("failed to create operation: %v", err)
		}
		if op.ID() == "" {
			t.Error("operation ID should be set after creation")
		}
	})

	t.Run("Create rejects invalid operation", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewOperationRepository(db)
		op := models.NewOperation(models.OpSongURL, "10001")

		if err := repo.Create(op); err == nil {
			t.Fatal("expected validation error")
		}
		if op.ID() != "" {
			t.Error("ID should stay empty when creation fails")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewOperationRepository(db)
		op := newAdd(201, 9001)
		op.SetPlaylistName("Road Trip")
		if err := repo.Create(op); err != nil {
			t.Fatalf("failed to create operation: %v", err)
		}

		got, err := repo.Get(op.ID())
		if err != nil {
			t.Fatalf("failed to get operation: %v", err)
		}

		if got.Kind() != models.OpAddSong {
			t.Errorf("expected kind %s, got %s", models.OpAddSong, got.Kind())
		}
		if got.DirID() != 201 || got.SongID() != 9001 {
			t.Errorf("expected 201/9001, got %d/%d", got.DirID(), got.SongID())
		}
		if got.PlaylistName() != "Road Trip" {
			t.Errorf("expected playlist name Road Trip, got %q", got.PlaylistName())
		}
		if !got.Success() || got.Result() != "ok" {
			t.Errorf("expected successful result ok, got %v %q", got.Success(), got.Result())
		}
		if got.CreatedAt().Sub(op.CreatedAt()).Abs() > time.Second {
			t.Errorf("created_at drifted: %v vs %v", got.CreatedAt(), op.CreatedAt())
		}
	})

	t.Run("Get missing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		_, err := NewOperationRepository(db).Get("missing")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewOperationRepository(db)
		op := newAdd(201, 9001)
		if err := repo.Create(op); err != nil {
			t.Fatalf("failed to create operation: %v", err)
		}

		op.Finish(false, "", errors.New("helper exited"))
		if err := repo.Update(op); err != nil {
			t.Fatalf("failed to update operation: %v", err)
		}

		got, err := repo.Get(op.ID())
		if err != nil {
			t.Fatalf("failed to get operation: %v", err)
		}
		if got.Success() {
			t.Error("expected failed operation after update")
		}
		if got.Error() != "helper exited" {
			t.Errorf("expected error message, got %q", got.Error())
		}
	})

	t.Run("Update missing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		op := newAdd(201, 9001)
		op.SetID("missing")
		if err := NewOperationRepository(db).Update(op); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewOperationRepository(db)
		op := newAdd(201, 9001)
		if err := repo.Create(op); err != nil {
			t.Fatalf("failed to create operation: %v", err)
		}

		if err := repo.Delete(op.ID()); err != nil {
			t.Fatalf("failed to delete operation: %v", err)
		}
		if err := repo.Delete(op.ID()); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewOperationRepository(db)
		for i := range 3 {
			if err := repo.Record(newAdd(201, uint64(9000+i))); err != nil {
				t.Fatalf("failed to record operation: %v", err)
			}
		}

		url := models.NewOperation(models.OpSongURL, "10002").WithSong("003abc", "flac")
		url.Finish(true, "http://example.com/F000003abc.flac", nil)
		if err := repo.Record(url); err != nil {
			t.Fatalf("failed to record operation: %v", err)
		}

		tc := []struct {
			name     string
			criteria map[string]any
			want     int
		}{
			{name: "all", criteria: nil, want: 4},
			{name: "by kind string", criteria: map[string]any{"kind": "add_song"}, want: 3},
			{name: "by kind value", criteria: map[string]any{"kind": models.OpSongURL}, want: 1},
			{name: "by uin", criteria: map[string]any{"uin": "10002"}, want: 1},
			{name: "by dir_id", criteria: map[string]any{"dir_id": int64(201)}, want: 3},
			{name: "limit", criteria: map[string]any{"limit": 2}, want: 2},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				ops, err := repo.List(tt.criteria)
				if err != nil {
					t.Fatalf("failed to list operations: %v", err)
				}
				if len(ops) != tt.want {
					t.Errorf("expected %d operations, got %d", tt.want, len(ops))
				}
			})
		}

		latest, err := repo.List(map[string]any{"limit": 1})
		if err != nil {
			t.Fatalf("failed to list operations: %v", err)
		}
		if len(latest) != 1 || latest[0].Kind() != models.OpSongURL {
			t.Errorf("expected newest operation first, got %+v", latest)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewOperationRepository(db)
		for i := range 2 {
			if err := repo.Create(newAdd(201, uint64(i+1))); err != nil {
				t.Fatalf("failed to create operation: %v", err)
			}
		}

		n, err := repo.Clear()
		if err != nil {
			t.Fatalf("failed to clear operations: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 removed, got %d", n)
		}

		ops, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list operations: %v", err)
		}
		if len(ops) != 0 {
			t.Errorf("expected empty history, got %d", len(ops))
		}
	})
}
