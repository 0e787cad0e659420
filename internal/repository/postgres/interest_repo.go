package postgres

import (
	"context"

	"github.com/cinemate/cinemate/internal/domain"
	"github.com/google/uuid"
)

// InterestRepo reads the likes table. It never writes; the discovery
// subsystem owns mutations.
type InterestRepo struct {
	db DB
}

func NewInterestRepo(db DB) *InterestRepo {
	return &InterestRepo{db: db}
}

func (r *InterestRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Interest, error) {
	query := `
		SELECT user_id, item_id, title, COALESCE(poster_path, ''), COALESCE(release_year, 0), created_at
		FROM likes
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interests []domain.Interest
	for rows.Next() {
		var in domain.Interest
		if err := rows.Scan(
			&in.UserID, &in.ItemID, &in.Title, &in.PosterPath, &in.ReleaseYear, &in.CreatedAt,
		); err != nil {
			return nil, err
		}
		interests = append(interests, in)
	}
	return interests, rows.Err()
}

func (r *InterestRepo) SharedItems(ctx context.Context, userID, otherID uuid.UUID) ([]domain.SharedItem, error) {
	query := `
		SELECT mine.item_id, mine.title
		FROM likes mine
		JOIN likes theirs ON theirs.item_id = mine.item_id
		WHERE mine.user_id = $1 AND theirs.user_id = $2
		ORDER BY mine.item_id`

	rows, err := r.db.Query(ctx, query, userID, otherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.SharedItem
	for rows.Next() {
		var it domain.SharedItem
		if err := rows.Scan(&it.ItemID, &it.Title); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// RankCandidates intersects the user's likes with everyone else's and ranks
// by overlap size, then by the most recent like either side placed on a
// shared movie.
func (r *InterestRepo) RankCandidates(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Candidate, error) {
	query := `
		SELECT u.id, u.username, u.display_name,
			COUNT(*) AS overlap_count,
			ARRAY_AGG(mine.item_id ORDER BY mine.item_id) AS shared_item_ids,
			MAX(GREATEST(mine.created_at, theirs.created_at)) AS last_shared_activity
		FROM likes mine
		JOIN likes theirs ON theirs.item_id = mine.item_id AND theirs.user_id <> mine.user_id
		JOIN users u ON u.id = theirs.user_id
		WHERE mine.user_id = $1
		GROUP BY u.id, u.username, u.display_name
		ORDER BY overlap_count DESC, last_shared_activity DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(
			&c.OtherUserID, &c.Username, &c.DisplayName,
			&c.OverlapCount, &c.SharedItemIDs, &c.LastSharedActivity,
		); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
