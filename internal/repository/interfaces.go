package repository

import (
	"context"

	"github.com/cinemate/cinemate/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// InterestRepository reads the external likes store. The matching core never
// writes to it.
type InterestRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Interest, error)
	SharedItems(ctx context.Context, userID, otherID uuid.UUID) ([]domain.SharedItem, error)
	RankCandidates(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Candidate, error)
}

// MatchRepository owns the request ledger and the room/membership state.
type MatchRepository interface {
	// RecordAndResolve inserts the directional request idempotently and, if
	// the reverse request for the same movie exists, resolves the pair into
	// a room in the same transaction.
	RecordAndResolve(ctx context.Context, requestorID, targetID uuid.UUID, itemID int64) (*domain.MatchOutcome, error)
	// DeclineRequest removes exactly the (requestorID → declinerID, itemID)
	// row. Removing a missing row is a no-op.
	DeclineRequest(ctx context.Context, declinerID, requestorID uuid.UUID, itemID int64) error
	// GetRequestBetween returns the oldest pending request in the given
	// direction regardless of movie, or nil.
	GetRequestBetween(ctx context.Context, requestorID, targetID uuid.UUID) (*domain.MatchRequest, error)
	// GetRoomByPair returns the room both users hold a membership in,
	// active or not, or nil.
	GetRoomByPair(ctx context.Context, userID, otherID uuid.UUID) (*domain.Room, error)
	// ListRoomsWithOther returns every room the user has a membership in,
	// joined with the other member's identity. Rooms missing the opposite
	// membership are skipped.
	ListRoomsWithOther(ctx context.Context, userID uuid.UUID) ([]domain.ActiveMatch, error)
}

// MessageRepository is the read-only view of the external chat store used
// for previews and unread counts.
type MessageRepository interface {
	GetLastMessage(ctx context.Context, roomID uuid.UUID) (*domain.Message, error)
	CountFromSender(ctx context.Context, roomID, senderID uuid.UUID) (int, error)
}
