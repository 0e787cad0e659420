package domain

import (
	"time"

	"github.com/google/uuid"
)

// Room is the conversation created exactly once per resolved mutual match.
// UserA/UserB are stored in canonical order (UserA < UserB) so the pair
// uniqueness constraint can live on the table itself.
type Room struct {
	ID        uuid.UUID `json:"id"`
	UserA     uuid.UUID `json:"user_a"`
	UserB     uuid.UUID `json:"user_b"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomMember is one side of a room. The chat subsystem toggles IsActive and
// LeftAt on leave/rejoin; the matching core only creates rows and treats row
// existence as "still matched".
type RoomMember struct {
	RoomID   uuid.UUID  `json:"room_id"`
	UserID   uuid.UUID  `json:"user_id"`
	IsActive bool       `json:"is_active"`
	JoinedAt time.Time  `json:"joined_at"`
	LeftAt   *time.Time `json:"left_at,omitempty"`
}

// ActiveMatch is a matched room enriched with conversation metadata for the
// viewer's match list.
type ActiveMatch struct {
	OtherUserID   uuid.UUID  `json:"other_user_id"`
	Username      string     `json:"username"`
	DisplayName   string     `json:"display_name"`
	RoomID        uuid.UUID  `json:"room_id"`
	MatchedAt     time.Time  `json:"matched_at"`
	LastMessage   *string    `json:"last_message,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	// UnreadCount counts every message the other member has sent in the
	// room, not just those since the viewer's last read. True read cursors
	// belong to the chat subsystem.
	UnreadCount int          `json:"unread_count"`
	SharedItems []SharedItem `json:"shared_items"`
}

// SortUserPair returns the two ids in canonical (UserA, UserB) order.
func SortUserPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}
