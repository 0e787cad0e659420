package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchRequest is a directional "interest expressed" record: requestor wants
// to talk to target about a specific movie. The (requestor, target, item)
// triple is unique at the storage layer; the row is deleted the moment it is
// consumed by a mutual match or declined by the target.
type MatchRequest struct {
	ID          uuid.UUID `json:"id"`
	RequestorID uuid.UUID `json:"requestor_id"`
	TargetID    uuid.UUID `json:"target_id"`
	ItemID      int64     `json:"item_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// MatchOutcome is the result of recording a request: whether an identical
// request already existed, and whether this one completed a mutual match.
type MatchOutcome struct {
	AlreadyRequested bool       `json:"already_requested"`
	Matched          bool       `json:"matched"`
	RoomID           *uuid.UUID `json:"room_id,omitempty"`
}

// MatchState is the derived relationship between two users. It is computed
// at query time from request rows and room existence, never persisted.
type MatchState string

const (
	// StateNone: no requests in either direction, no room.
	StateNone MatchState = "none"
	// StatePendingSent: the viewer has an outgoing request, nothing back.
	StatePendingSent MatchState = "pending_sent"
	// StatePendingReceived: the other user has requested the viewer.
	StatePendingReceived MatchState = "pending_received"
	// StateMutualInterest: requests exist in both directions but for
	// different movies, so no room was created. Either side can still
	// accept one of the other's movies to resolve into a match.
	StateMutualInterest MatchState = "mutual_interest"
	// StateMatched: a room exists for the pair. Authoritative even if one
	// or both memberships have since gone inactive.
	StateMatched MatchState = "matched"
)

// MatchStatus is the per-pair status view returned to a viewer.
type MatchStatus struct {
	State         MatchState   `json:"state"`
	CanMatch      bool         `json:"can_match"`
	CanDecline    bool         `json:"can_decline"`
	RequestSentAt *time.Time   `json:"request_sent_at,omitempty"`
	RoomID        *uuid.UUID   `json:"room_id,omitempty"`
	SharedItems   []SharedItem `json:"shared_items"`
}

// Candidate is another user sharing at least one liked movie with the
// viewer, ranked by overlap.
type Candidate struct {
	OtherUserID        uuid.UUID `json:"other_user_id"`
	Username           string    `json:"username"`
	DisplayName        string    `json:"display_name"`
	OverlapCount       int       `json:"overlap_count"`
	SharedItemIDs      []int64   `json:"shared_item_ids"`
	LastSharedActivity time.Time `json:"last_shared_activity"`
}
