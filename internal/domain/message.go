package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message lives in the external chat store. The matching core reads it only
// to build previews and unread counts for the active-match list.
type Message struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
