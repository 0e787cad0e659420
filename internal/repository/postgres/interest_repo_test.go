package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v2"
)

func TestInterestRepo_RankCandidates(t *testing.T) {
	viewer := uuid.New()
	other := uuid.New()
	now := time.Now()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantLen int
	}{
		{
			name: "single candidate with one shared movie",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{
					"id", "username", "display_name",
					"overlap_count", "shared_item_ids", "last_shared_activity",
				}).AddRow(other, "sam", "Sam", 1, []int64{27205}, now)
				mock.ExpectQuery(`SELECT (.+) FROM likes mine`).
					WithArgs(viewer, 10).
					WillReturnRows(rows)
			},
			wantLen: 1,
		},
		{
			name: "no overlap",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT (.+) FROM likes mine`).
					WithArgs(viewer, 10).
					WillReturnRows(pgxmock.NewRows([]string{
						"id", "username", "display_name",
						"overlap_count", "shared_item_ids", "last_shared_activity",
					}))
			},
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			repo := NewInterestRepo(mock)
			tt.setup(mock)

			candidates, err := repo.RankCandidates(context.Background(), viewer, 10)
			if err != nil {
				t.Fatalf("RankCandidates() error = %v", err)
			}
			if len(candidates) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(candidates), tt.wantLen)
			}
			if tt.wantLen > 0 {
				c := candidates[0]
				if c.OtherUserID != other || c.OverlapCount != 1 {
					t.Errorf("candidate = %+v", c)
				}
				if len(c.SharedItemIDs) != 1 || c.SharedItemIDs[0] != 27205 {
					t.Errorf("SharedItemIDs = %v, want [27205]", c.SharedItemIDs)
				}
			}

			expectationsWereMet(t, mock)
		})
	}
}

func TestInterestRepo_SharedItems(t *testing.T) {
	viewer := uuid.New()
	other := uuid.New()

	mock := newMock(t)
	repo := NewInterestRepo(mock)

	rows := pgxmock.NewRows([]string{"item_id", "title"}).
		AddRow(int64(238), "The Godfather").
		AddRow(int64(27205), "Inception")
	mock.ExpectQuery(`SELECT mine.item_id, mine.title`).
		WithArgs(viewer, other).
		WillReturnRows(rows)

	items, err := repo.SharedItems(context.Background(), viewer, other)
	if err != nil {
		t.Fatalf("SharedItems() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].ItemID != 238 || items[1].Title != "Inception" {
		t.Errorf("items = %+v", items)
	}

	expectationsWereMet(t, mock)
}
