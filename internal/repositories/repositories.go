// package repositories provides persistence layer implementations for all model types.
//
// Each repository implements models.Repository[T] for a specific entity type.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/love-yuri/qq-music-api/internal/shared"
)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// checkAffected turns a zero row count into a not-found error for the given entity.
func checkAffected(result sql.Result, entity, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
	}
	return nil
}

// ErrNotFound is returned when a lookup or mutation matches no rows.
var ErrNotFound = errors.New("record not found")

func generateID() string {
	return shared.GenerateID()
}
