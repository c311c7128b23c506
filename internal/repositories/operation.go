package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/love-yuri/qq-music-api/internal/models"
)

var _ models.Repository[*models.Operation] = (*OperationRepository)(nil)

// OperationRepository implements models.Repository[*models.Operation] for the history log.
type OperationRepository struct {
	db *sql.DB
}

// NewOperationRepository creates a new OperationRepository with the given database connection
func NewOperationRepository(db *sql.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

const operationColumns = `
	id, kind, uin, dir_id, playlist_name, song_id, song_mid, format,
	result, success, error, created_at, updated_at
`

// Create inserts a new operation with a generated ID
func (r *OperationRepository) Create(op *models.Operation) error {
	if err := op.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id := generateID()
	query := `INSERT INTO operations (` + operationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		id,
		string(op.Kind()),
		op.UIN(),
		op.DirID(),
		op.PlaylistName(),
		int64(op.SongID()),
		op.SongMid(),
		op.Format(),
		op.Result(),
		op.Success(),
		op.Error(),
		op.CreatedAt(),
		op.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert operation: %w", err)
	}

	op.SetID(id)
	return nil
}

// Get retrieves an operation by ID
func (r *OperationRepository) Get(id string) (*models.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE id = ?`

	op, err := r.scan(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: operation %s", ErrNotFound, id)
	}
	return op, err
}

// Update rewrites the outcome columns of an existing operation
func (r *OperationRepository) Update(op *models.Operation) error {
	if err := op.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	query := `
		UPDATE operations
		SET playlist_name = ?, result = ?, success = ?, error = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, op.PlaylistName(), op.Result(), op.Success(), op.Error(), now, op.ID())
	if err != nil {
		return fmt.Errorf("failed to update operation: %w", err)
	}
	if err := checkAffected(result, "operation", op.ID()); err != nil {
		return err
	}

	op.SetUpdatedAt(now)
	return nil
}

// Delete removes an operation by ID
func (r *OperationRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM operations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete operation: %w", err)
	}
	return checkAffected(result, "operation", id)
}

// List retrieves operations newest first.
//
// Supported criteria: "kind" (string or models.OperationKind), "uin" (string),
// "dir_id" (int64) and "limit" (int).
func (r *OperationRepository) List(criteria map[string]any) ([]*models.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE 1 = 1`
	args := []any{}

	switch kind := criteria["kind"].(type) {
	case string:
		if kind != "" {
			query += " AND kind = ?"
			args = append(args, kind)
		}
	case models.OperationKind:
		if kind != "" {
			query += " AND kind = ?"
			args = append(args, string(kind))
		}
	}

	if uin, ok := criteria["uin"].(string); ok && uin != "" {
		query += " AND uin = ?"
		args = append(args, uin)
	}

	if dirID, ok := criteria["dir_id"].(int64); ok && dirID != 0 {
		query += " AND dir_id = ?"
		args = append(args, dirID)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query operations: %w", err)
	}
	defer rows.Close()

	var ops []*models.Operation
	for rows.Next() {
		op, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return ops, nil
}

// Clear deletes every recorded operation and reports how many were removed
func (r *OperationRepository) Clear() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM operations`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear operations: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}

// Record stores a finished operation. It satisfies tasks.Recorder.
func (r *OperationRepository) Record(op *models.Operation) error {
	return r.Create(op)
}

func (r *OperationRepository) scan(row scanner) (*models.Operation, error) {
	var (
		id, kind, uin, playlistName, songMid, format, result, errMsg string
		dirID, songID                                                int64
		success                                                      bool
		createdAt, updatedAt                                         time.Time
	)

	err := row.Scan(
		&id, &kind, &uin, &dirID, &playlistName, &songID, &songMid, &format,
		&result, &success, &errMsg, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan operation: %w", err)
	}

	return models.RestoreOperation(
		id, models.OperationKind(kind), uin,
		dirID, playlistName, uint64(songID), songMid, format, result,
		success, errMsg, createdAt, updatedAt,
	), nil
}
