package postgres

import (
	"context"
	"errors"

	"github.com/cinemate/cinemate/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MessageRepo is the read side of the chat store: last-message previews and
// per-sender counts for the match list. Message writes belong to the chat
// subsystem.
type MessageRepo struct {
	db DB
}

func NewMessageRepo(db DB) *MessageRepo {
	return &MessageRepo{db: db}
}

func (r *MessageRepo) GetLastMessage(ctx context.Context, roomID uuid.UUID) (*domain.Message, error) {
	query := `
		SELECT id, room_id, sender_id, content, created_at
		FROM messages
		WHERE room_id = $1
		ORDER BY created_at DESC
		LIMIT 1`
	var msg domain.Message
	err := r.db.QueryRow(ctx, query, roomID).Scan(
		&msg.ID, &msg.RoomID, &msg.SenderID, &msg.Content, &msg.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *MessageRepo) CountFromSender(ctx context.Context, roomID, senderID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE room_id = $1 AND sender_id = $2`,
		roomID, senderID,
	).Scan(&count)
	return count, err
}
