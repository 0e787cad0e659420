package postgres

import (
	"context"
	"errors"
	"hash/fnv"
	"time"

	"github.com/cinemate/cinemate/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MatchRepo struct {
	db DB
}

func NewMatchRepo(db DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// pairLockKey derives the advisory-lock key for a user pair. Both directions
// map to the same key so concurrent resolution attempts for the pair
// serialize on it.
func pairLockKey(a, b uuid.UUID) int64 {
	u1, u2 := domain.SortUserPair(a, b)
	h := fnv.New64a()
	h.Write(u1[:])
	h.Write(u2[:])
	return int64(h.Sum64())
}

// RecordAndResolve runs the whole record-then-resolve sequence in one
// transaction. The advisory lock closes the window where two reciprocal
// requests land at the same time and neither sees the other; the uniqueness
// constraints on match_requests and rooms back it up, so a lost race is
// absorbed instead of surfacing as an error or a second room.
func (r *MatchRepo) RecordAndResolve(ctx context.Context, requestorID, targetID uuid.UUID, itemID int64) (*domain.MatchOutcome, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, pairLockKey(requestorID, targetID)); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO match_requests (id, requestor_id, target_id, item_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (requestor_id, target_id, item_id) DO NOTHING`,
		uuid.New(), requestorID, targetID, itemID, time.Now())
	if err != nil {
		return nil, err
	}
	outcome := &domain.MatchOutcome{AlreadyRequested: tag.RowsAffected() == 0}

	// Reverse direction, same movie. Deleting and checking in one statement
	// keeps the check and the consumption atomic.
	var reverseID uuid.UUID
	err = tx.QueryRow(ctx, `
		DELETE FROM match_requests
		WHERE requestor_id = $1 AND target_id = $2 AND item_id = $3
		RETURNING id`,
		targetID, requestorID, itemID).Scan(&reverseID)
	if errors.Is(err, pgx.ErrNoRows) {
		// One-sided interest, the common path.
		return outcome, tx.Commit(ctx)
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM match_requests
		WHERE requestor_id = $1 AND target_id = $2 AND item_id = $3`,
		requestorID, targetID, itemID); err != nil {
		return nil, err
	}

	userA, userB := domain.SortUserPair(requestorID, targetID)
	now := time.Now()
	var roomID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO rooms (id, user_a, user_b, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_a, user_b) DO NOTHING
		RETURNING id`,
		uuid.New(), userA, userB, now).Scan(&roomID)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// The pair already has a room from an earlier match. Reuse it, and
		// leave its memberships alone.
		if err := tx.QueryRow(ctx,
			`SELECT id FROM rooms WHERE user_a = $1 AND user_b = $2`,
			userA, userB).Scan(&roomID); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if _, err := tx.Exec(ctx, `
			INSERT INTO room_members (room_id, user_id, is_active, joined_at)
			VALUES ($1, $2, true, $3), ($1, $4, true, $3)`,
			roomID, userA, now, userB); err != nil {
			return nil, err
		}
	}

	outcome.Matched = true
	outcome.RoomID = &roomID
	return outcome, tx.Commit(ctx)
}

// DeclineRequest removes the single directional row the decliner received.
// The WHERE clause pins the decliner to the target column, so declining with
// swapped roles (your own outgoing request) matches nothing.
func (r *MatchRepo) DeclineRequest(ctx context.Context, declinerID, requestorID uuid.UUID, itemID int64) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM match_requests
		WHERE requestor_id = $1 AND target_id = $2 AND item_id = $3`,
		requestorID, declinerID, itemID)
	return err
}

func (r *MatchRepo) GetRequestBetween(ctx context.Context, requestorID, targetID uuid.UUID) (*domain.MatchRequest, error) {
	query := `
		SELECT id, requestor_id, target_id, item_id, created_at
		FROM match_requests
		WHERE requestor_id = $1 AND target_id = $2
		ORDER BY created_at ASC
		LIMIT 1`
	var req domain.MatchRequest
	err := r.db.QueryRow(ctx, query, requestorID, targetID).Scan(
		&req.ID, &req.RequestorID, &req.TargetID, &req.ItemID, &req.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetRoomByPair goes through room_members rather than the pair columns:
// membership existence is what "still matched" means, active or not.
func (r *MatchRepo) GetRoomByPair(ctx context.Context, userID, otherID uuid.UUID) (*domain.Room, error) {
	query := `
		SELECT r.id, r.user_a, r.user_b, r.created_at
		FROM rooms r
		JOIN room_members ma ON ma.room_id = r.id AND ma.user_id = $1
		JOIN room_members mb ON mb.room_id = r.id AND mb.user_id = $2`
	var room domain.Room
	err := r.db.QueryRow(ctx, query, userID, otherID).Scan(
		&room.ID, &room.UserA, &room.UserB, &room.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *MatchRepo) ListRoomsWithOther(ctx context.Context, userID uuid.UUID) ([]domain.ActiveMatch, error) {
	query := `
		SELECT r.id, r.created_at, o.user_id, u.username, u.display_name
		FROM room_members m
		JOIN rooms r ON r.id = m.room_id
		JOIN room_members o ON o.room_id = r.id AND o.user_id <> m.user_id
		JOIN users u ON u.id = o.user_id
		WHERE m.user_id = $1`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []domain.ActiveMatch
	for rows.Next() {
		var m domain.ActiveMatch
		if err := rows.Scan(
			&m.RoomID, &m.MatchedAt, &m.OtherUserID, &m.Username, &m.DisplayName,
		); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
