package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is owned by the external identity subsystem. The matching core only
// reads display projections from it.
type User struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// FallbackDisplayName is shown when a user id no longer resolves
// (deleted or stale identity).
const FallbackDisplayName = "Unknown user"
