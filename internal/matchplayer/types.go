package matchplayer

import (
	"database/sql"
	"sync"

	"github.com/mauv0809/scaling-waffle/internal/match"
)

// store handles all database operations for match players.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Reserve is the slot-state of a player within a match.
type Reserve string

const (
	// ReserveProvisional: the player requested the slot directly, pending review.
	ReserveProvisional Reserve = "provisional"
	// ReserveAssigned: the player currently holds an open seat.
	ReserveAssigned Reserve = "assigned"
	// ReserveSimilar: a ranked backup candidate, not holding a seat.
	ReserveSimilar Reserve = "similar"
	// ReserveInside: confirmed and paid, occupies a seat permanently.
	ReserveInside Reserve = "inside"
	// ReserveRejected: the player's request was declined.
	ReserveRejected Reserve = "rejected"
	// ReserveOutside: previously assigned, now permanently excluded from
	// this match's candidate pool.
	ReserveOutside Reserve = "outside"
)

// MatchPlayer represents one player's relationship to one match. The
// (match_public_id, user_public_id) pair is unique.
type MatchPlayer struct {
	MatchPublicID string `json:"match_public_id"`
	UserPublicID  string `json:"user_public_id"`
	// Distance is the ranking key for backup ordering; lower is higher
	// priority.
	Distance float64 `json:"distance"`
	Reserve  Reserve `json:"reserve"`
}

// IsAssigned reports whether the player currently holds an open seat.
func (mp *MatchPlayer) IsAssigned() bool {
	return mp.Reserve == ReserveAssigned
}

// Update carries the mutable fields of a match player. Nil fields are left
// untouched.
type Update struct {
	Distance *float64 `json:"distance,omitempty"`
	Reserve  *Reserve `json:"reserve,omitempty"`
}

// IsInside reports whether the update confirms the player into the match.
func (u Update) IsInside() bool {
	return u.Reserve != nil && *u.Reserve == ReserveInside
}

// IsOutside reports whether the update removes the player from the match.
func (u Update) IsOutside() bool {
	return u.Reserve != nil && *u.Reserve == ReserveOutside
}

// Filters is an AND-conjunction over its non-nil fields.
type Filters struct {
	MatchPublicID *string  `json:"match_public_id,omitempty"`
	UserPublicID  *string  `json:"user_public_id,omitempty"`
	Reserve       *Reserve `json:"reserve,omitempty"`
}

// MatchPlayerPay is a match player merged with the payment link created on
// confirmation. PayURL is nil unless the update triggered a payment.
type MatchPlayerPay struct {
	MatchPlayer
	PayURL *string `json:"pay_url,omitempty"`
}

// WithPayURL wraps a match player with an optional payment link.
func WithPayURL(mp *MatchPlayer, payURL *string) *MatchPlayerPay {
	return &MatchPlayerPay{MatchPlayer: *mp, PayURL: payURL}
}

// MatchExtended is a match together with its players. It is the view the
// generation endpoints return and the payload payment links are created
// from.
type MatchExtended struct {
	Match   *match.Match   `json:"match"`
	Players []*MatchPlayer `json:"match_players"`
}

// AssignedUserIDs returns the user ids of the players currently assigned.
func (me *MatchExtended) AssignedUserIDs() []string {
	var ids []string
	for _, p := range me.Players {
		if p.IsAssigned() {
			ids = append(ids, p.UserPublicID)
		}
	}
	return ids
}
