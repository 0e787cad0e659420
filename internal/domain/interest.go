package domain

import (
	"time"

	"github.com/google/uuid"
)

// Interest is a movie a user has liked. Rows live in the external likes
// store and are read-only to the matching core. ItemID is the TMDB movie id.
type Interest struct {
	UserID      uuid.UUID `json:"user_id"`
	ItemID      int64     `json:"item_id"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"poster_path,omitempty"`
	ReleaseYear int       `json:"release_year,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SharedItem is the projection of an Interest both sides of a pair hold.
type SharedItem struct {
	ItemID int64  `json:"item_id"`
	Title  string `json:"title"`
}
