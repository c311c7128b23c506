// package models defines the data model for the qqm command line client
package models

import (
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Playlist represents a playlist created by a QQ Music user.
type Playlist struct {
	DirID       int64  `json:"dir_id"` // dirId used by playlist write endpoints
	TID         int64  `json:"tid"`    // public playlist (disstid) id
	Name        string `json:"name"`
	Cover       string `json:"cover,omitempty"`
	SongCount   int    `json:"song_count"`
	ListenCount int64  `json:"listen_count"`
}

// SongURL is the outcome of resolving a download URL.
//
// URL is empty when the song is not available in the requested format.
type SongURL struct {
	Mid    string `json:"mid"`
	Format string `json:"format"`
	URL    string `json:"url"`
}
