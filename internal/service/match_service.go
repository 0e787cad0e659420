package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cinemate/cinemate/internal/domain"
	"github.com/cinemate/cinemate/internal/repository"
)

var (
	ErrCannotMatchSelf = errors.New("cannot send a match request to yourself")
	ErrTargetNotFound  = errors.New("target user not found")
	ErrInvalidItem     = errors.New("movie id must be positive")
)

// Notifier delivers real-time events to connected clients. Implementations
// must not block and must swallow their own failures: everything here runs
// after the matching transaction has committed.
type Notifier interface {
	NotifyMatched(userID uuid.UUID, n *MatchNotice)
	NotifyRequested(userID uuid.UUID, n *RequestNotice)
}

// MatchNotice tells a participant their match resolved.
type MatchNotice struct {
	RoomID           uuid.UUID `json:"room_id"`
	OtherUserID      uuid.UUID `json:"other_user_id"`
	OtherDisplayName string    `json:"other_display_name"`
	ItemID           int64     `json:"item_id"`
}

// RequestNotice tells a user someone expressed interest in them.
type RequestNotice struct {
	RequestorID          uuid.UUID `json:"requestor_id"`
	RequestorDisplayName string    `json:"requestor_display_name"`
	ItemID               int64     `json:"item_id"`
}

type MatchService struct {
	matchRepo    repository.MatchRepository
	userRepo     repository.UserRepository
	interestRepo repository.InterestRepository
	messageRepo  repository.MessageRepository
	notifier     Notifier
}

func NewMatchService(
	matchRepo repository.MatchRepository,
	userRepo repository.UserRepository,
	interestRepo repository.InterestRepository,
	messageRepo repository.MessageRepository,
) *MatchService {
	return &MatchService{
		matchRepo:    matchRepo,
		userRepo:     userRepo,
		interestRepo: interestRepo,
		messageRepo:  messageRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *MatchService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Request records directional interest and resolves a mutual match if the
// target already requested the same movie back. Repeating an identical
// request is a no-op that still reports the current outcome.
func (s *MatchService) Request(ctx context.Context, requestorID, targetID uuid.UUID, itemID int64) (*domain.MatchOutcome, error) {
	if itemID <= 0 {
		return nil, ErrInvalidItem
	}
	if requestorID == targetID {
		return nil, ErrCannotMatchSelf
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("looking up target user: %w", err)
	}
	if target == nil {
		return nil, ErrTargetNotFound
	}

	outcome, err := s.matchRepo.RecordAndResolve(ctx, requestorID, targetID, itemID)
	if err != nil {
		return nil, fmt.Errorf("recording match request: %w", err)
	}

	// Delivery is strictly downstream of the committed transaction.
	if s.notifier != nil {
		switch {
		case outcome.Matched:
			s.notifier.NotifyMatched(requestorID, &MatchNotice{
				RoomID:           *outcome.RoomID,
				OtherUserID:      targetID,
				OtherDisplayName: target.DisplayName,
				ItemID:           itemID,
			})
			s.notifier.NotifyMatched(targetID, &MatchNotice{
				RoomID:           *outcome.RoomID,
				OtherUserID:      requestorID,
				OtherDisplayName: s.displayName(ctx, requestorID),
				ItemID:           itemID,
			})
		case !outcome.AlreadyRequested:
			s.notifier.NotifyRequested(targetID, &RequestNotice{
				RequestorID:          requestorID,
				RequestorDisplayName: s.displayName(ctx, requestorID),
				ItemID:               itemID,
			})
		}
	}

	return outcome, nil
}

// Decline removes the single request the decliner received for that movie.
// Missing rows (already declined, already resolved, never existed) are fine;
// the decliner's own outgoing requests are never touched.
func (s *MatchService) Decline(ctx context.Context, declinerID, requestorID uuid.UUID, itemID int64) error {
	if itemID <= 0 {
		return ErrInvalidItem
	}
	return s.matchRepo.DeclineRequest(ctx, declinerID, requestorID, itemID)
}

// Status derives the viewer's relationship with another user. Room existence
// wins over everything: leaving a room does not unmatch the pair. Requests in
// both directions without a room can only be for different movies (same-movie
// reciprocity is consumed atomically by resolution), and report the distinct
// mutual_interest state rather than pretending a room exists.
func (s *MatchService) Status(ctx context.Context, viewerID, otherID uuid.UUID) (*domain.MatchStatus, error) {
	status := &domain.MatchStatus{
		State:       domain.StateNone,
		SharedItems: []domain.SharedItem{},
	}

	if viewerID == otherID {
		return status, nil
	}
	other, err := s.userRepo.GetByID(ctx, otherID)
	if err != nil {
		return nil, err
	}
	if other == nil {
		return status, nil
	}

	shared, err := s.interestRepo.SharedItems(ctx, viewerID, otherID)
	if err != nil {
		return nil, err
	}
	if shared != nil {
		status.SharedItems = shared
	}

	room, err := s.matchRepo.GetRoomByPair(ctx, viewerID, otherID)
	if err != nil {
		return nil, err
	}
	if room != nil {
		status.State = domain.StateMatched
		status.RoomID = &room.ID
		return status, nil
	}

	outgoing, err := s.matchRepo.GetRequestBetween(ctx, viewerID, otherID)
	if err != nil {
		return nil, err
	}
	incoming, err := s.matchRepo.GetRequestBetween(ctx, otherID, viewerID)
	if err != nil {
		return nil, err
	}

	switch {
	case outgoing != nil && incoming != nil:
		status.State = domain.StateMutualInterest
		status.CanMatch = true
		status.CanDecline = true
		status.RequestSentAt = &outgoing.CreatedAt
	case outgoing != nil:
		status.State = domain.StatePendingSent
		status.RequestSentAt = &outgoing.CreatedAt
	case incoming != nil:
		status.State = domain.StatePendingReceived
		status.CanMatch = true
		status.CanDecline = true
	default:
		status.CanMatch = true
	}

	return status, nil
}

// ListActive returns the viewer's matched rooms with conversation metadata,
// most recently active first. Rooms without messages slot in by match time.
func (s *MatchService) ListActive(ctx context.Context, userID uuid.UUID) ([]domain.ActiveMatch, error) {
	matches, err := s.matchRepo.ListRoomsWithOther(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range matches {
		m := &matches[i]

		last, err := s.messageRepo.GetLastMessage(ctx, m.RoomID)
		if err != nil {
			return nil, err
		}
		if last != nil {
			m.LastMessage = &last.Content
			m.LastMessageAt = &last.CreatedAt
		}

		unread, err := s.messageRepo.CountFromSender(ctx, m.RoomID, m.OtherUserID)
		if err != nil {
			return nil, err
		}
		m.UnreadCount = unread

		shared, err := s.interestRepo.SharedItems(ctx, userID, m.OtherUserID)
		if err != nil {
			return nil, err
		}
		if shared == nil {
			shared = []domain.SharedItem{}
		}
		m.SharedItems = shared
	}

	// Last activity descending; rooms with no messages fall back to match
	// time. Room id breaks exact ties so repeated calls agree.
	sort.SliceStable(matches, func(i, j int) bool {
		ti, tj := matches[i].MatchedAt, matches[j].MatchedAt
		if matches[i].LastMessageAt != nil {
			ti = *matches[i].LastMessageAt
		}
		if matches[j].LastMessageAt != nil {
			tj = *matches[j].LastMessageAt
		}
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return matches[i].RoomID.String() < matches[j].RoomID.String()
	})

	if matches == nil {
		matches = []domain.ActiveMatch{}
	}
	return matches, nil
}

func (s *MatchService) displayName(ctx context.Context, id uuid.UUID) string {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		log.Warn().Err(err).Stringer("user_id", id).Msg("display name lookup failed")
		return domain.FallbackDisplayName
	}
	if user == nil {
		return domain.FallbackDisplayName
	}
	return user.DisplayName
}
