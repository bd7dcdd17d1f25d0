// Package lifecycle validates and applies match-player state transitions:
// payment-gated confirmation, removal with pool regeneration, and waitlist
// promotion.
package lifecycle

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scaling-waffle/internal/apperr"
	"github.com/mauv0809/scaling-waffle/internal/business"
	"github.com/mauv0809/scaling-waffle/internal/generator"
	"github.com/mauv0809/scaling-waffle/internal/match"
	"github.com/mauv0809/scaling-waffle/internal/matchplayer"
	"github.com/mauv0809/scaling-waffle/internal/metrics"
	"github.com/mauv0809/scaling-waffle/internal/notifier"
	"github.com/mauv0809/scaling-waffle/internal/payment"
	"github.com/mauv0809/scaling-waffle/internal/pubsub"
)

// Manager drives the match-player state machine.
type Manager struct {
	matches    match.MatchStore
	players    matchplayer.MatchPlayerStore
	business   business.BusinessClient
	payments   payment.PaymentsClient
	generator  *generator.Generator
	notifier   notifier.Notifier
	metrics    metrics.Metrics
	pubsub     pubsub.PubSubClient
	maxPlayers int
}

// New creates a new Manager. maxPlayers is the seat count of a court.
func New(
	matches match.MatchStore,
	players matchplayer.MatchPlayerStore,
	businessClient business.BusinessClient,
	payments payment.PaymentsClient,
	gen *generator.Generator,
	notif notifier.Notifier,
	metricsSvc metrics.Metrics,
	pubsubClient pubsub.PubSubClient,
	maxPlayers int,
) *Manager {
	return &Manager{
		matches:    matches,
		players:    players,
		business:   businessClient,
		payments:   payments,
		generator:  gen,
		notifier:   notif,
		metrics:    metricsSvc,
		pubsub:     pubsubClient,
		maxPlayers: maxPlayers,
	}
}

// UpdateMatchPlayer is the lifecycle entry point. It validates the
// requested transition, applies it, and runs the attached side effects:
// payment-link creation when confirming, pool regeneration when the player
// leaves, lazy repopulation of empty matches, and waitlist promotion.
//
// The returned PayURL is non-nil only when the transition created a
// payment.
func (m *Manager) UpdateMatchPlayer(matchPublicID, userPublicID string, upd matchplayer.Update, dryRun bool) (*matchplayer.MatchPlayerPay, error) {
	var payURL *string
	if upd.IsInside() {
		if err := m.validateConfirm(matchPublicID, userPublicID); err != nil {
			return nil, err
		}
		view, err := m.matchExtended(matchPublicID)
		if err != nil {
			return nil, err
		}
		pay, err := m.payments.CreatePayment(view)
		if err != nil {
			return nil, fmt.Errorf("failed to create payment: %w", err)
		}
		payURL = &pay.PayURL
		m.metrics.IncPaymentsCreated()
	}

	mp, err := m.applyTransition(matchPublicID, userPublicID, upd)
	if err != nil {
		return nil, err
	}

	if upd.IsOutside() {
		if err := m.regenerateAndNotify(matchPublicID, dryRun); err != nil {
			return nil, err
		}
	} else if err := m.repopulateIfEmpty(matchPublicID); err != nil {
		return nil, err
	}

	if err := m.rebalance(matchPublicID); err != nil {
		return nil, err
	}

	m.publishUpdate(mp)
	return matchplayer.WithPayURL(mp, payURL), nil
}

// applyTransition is the bare persistence update, shared by the public
// entry point and the promotion loop. Side effects stay on the outer call.
func (m *Manager) applyTransition(matchPublicID, userPublicID string, upd matchplayer.Update) (*matchplayer.MatchPlayer, error) {
	return m.players.UpdateMatchPlayer(matchPublicID, userPublicID, upd)
}

// validateConfirm guards the inside transition: only a currently assigned
// player may confirm.
func (m *Manager) validateConfirm(matchPublicID, userPublicID string) error {
	mp, err := m.players.GetMatchPlayer(matchPublicID, userPublicID)
	if err != nil {
		return err
	}
	if !mp.IsAssigned() {
		return apperr.NotAuthorized(fmt.Sprintf("player %s is %s, not assigned", userPublicID, mp.Reserve))
	}
	return nil
}

// regenerateAndNotify rebuilds the match's candidate pool after a player
// left, then tells the freshly assigned players. The departed player is now
// outside-marked and the generator excludes it permanently.
func (m *Manager) regenerateAndNotify(matchPublicID string, dryRun bool) error {
	avail, err := m.slotFor(matchPublicID)
	if err != nil {
		return err
	}

	created, err := m.generator.GenerateMatchPlayers(matchPublicID, *avail)
	if err != nil {
		return err
	}

	var assigned []string
	for _, p := range created {
		if p.IsAssigned() {
			assigned = append(assigned, p.UserPublicID)
		}
	}
	if len(assigned) > 0 {
		// Best effort: a notification failure never rolls back the
		// allocation.
		if err := m.notifier.SendNewMatches(assigned, dryRun); err != nil {
			log.Error("Failed to notify promoted players", "error", err, "matchID", matchPublicID)
		}
	}
	return nil
}

// repopulateIfEmpty lazily rebuilds the pool of a match whose active pool
// is gone: nobody assigned, inside or waitlisted. This is how matches
// generated with an empty candidate pool get filled on their first
// lifecycle touch, provided the business still offers the slot.
func (m *Manager) repopulateIfEmpty(matchPublicID string) error {
	attached, err := m.players.GetMatchPlayers(matchplayer.Filters{MatchPublicID: &matchPublicID})
	if err != nil {
		return err
	}
	for _, p := range attached {
		switch p.Reserve {
		case matchplayer.ReserveAssigned, matchplayer.ReserveInside, matchplayer.ReserveSimilar:
			return nil
		}
	}

	mt, err := m.matches.GetMatch(matchPublicID)
	if err != nil {
		return err
	}
	avail, err := m.business.GetAvailableTime(mt.BusinessID, mt.CourtName, mt.Date, mt.Time)
	if err != nil {
		return err
	}
	if avail == nil || avail.IsReserved {
		return nil
	}

	_, err = m.generator.GenerateMatchPlayers(matchPublicID, *avail)
	return err
}

// rebalance promotes waitlisted players into freed seats. It runs only once
// the match has a confirmed player; before that the regeneration paths own
// the pool. Promotion re-enters applyTransition, never the public entry
// point, so it triggers no payments and is bounded by the missing seat
// count.
func (m *Manager) rebalance(matchPublicID string) error {
	inside, err := m.countByReserve(matchPublicID, matchplayer.ReserveInside)
	if err != nil {
		return err
	}
	if inside == 0 {
		return nil
	}

	assigned, err := m.countByReserve(matchPublicID, matchplayer.ReserveAssigned)
	if err != nil {
		return err
	}

	missing := m.maxPlayers - assigned - inside
	if missing <= 0 {
		return nil
	}

	next, err := m.players.GetNextByDistance(matchPublicID, matchplayer.ReserveSimilar, missing)
	if err != nil {
		return err
	}

	target := matchplayer.ReserveAssigned
	for _, p := range next {
		if _, err := m.applyTransition(matchPublicID, p.UserPublicID, matchplayer.Update{Reserve: &target}); err != nil {
			return err
		}
		m.metrics.IncPlayersPromoted()
		log.Info("Promoted waitlisted player", "matchID", matchPublicID, "userID", p.UserPublicID, "distance", p.Distance)
	}
	return nil
}

func (m *Manager) countByReserve(matchPublicID string, reserve matchplayer.Reserve) (int, error) {
	players, err := m.players.GetMatchPlayers(matchplayer.Filters{
		MatchPublicID: &matchPublicID,
		Reserve:       &reserve,
	})
	if err != nil {
		return 0, err
	}
	return len(players), nil
}

// slotFor reconstructs the slot descriptor for a match, preferring the
// business service's live view (it carries the coordinates the candidate
// filter needs) and falling back to the match's own stored attributes.
func (m *Manager) slotFor(matchPublicID string) (*business.AvailableTime, error) {
	mt, err := m.matches.GetMatch(matchPublicID)
	if err != nil {
		return nil, err
	}
	avail, err := m.business.GetAvailableTime(mt.BusinessID, mt.CourtName, mt.Date, mt.Time)
	if err != nil {
		return nil, err
	}
	if avail != nil {
		return avail, nil
	}
	return &business.AvailableTime{
		BusinessPublicID: mt.BusinessID,
		CourtPublicID:    mt.CourtID,
		CourtName:        mt.CourtName,
		Date:             mt.Date,
		Time:             mt.Time,
	}, nil
}

func (m *Manager) matchExtended(matchPublicID string) (*matchplayer.MatchExtended, error) {
	mt, err := m.matches.GetMatch(matchPublicID)
	if err != nil {
		return nil, err
	}
	players, err := m.players.GetMatchPlayers(matchplayer.Filters{MatchPublicID: &matchPublicID})
	if err != nil {
		return nil, err
	}
	return &matchplayer.MatchExtended{Match: mt, Players: players}, nil
}

func (m *Manager) publishUpdate(mp *matchplayer.MatchPlayer) {
	event := pubsub.PlayerUpdatedEvent{
		MatchPublicID: mp.MatchPublicID,
		UserPublicID:  mp.UserPublicID,
		Reserve:       string(mp.Reserve),
	}
	if err := m.pubsub.SendMessage(string(pubsub.EventPlayerUpdated), event); err != nil {
		log.Error("Failed to publish player update", "error", err, "matchID", mp.MatchPublicID)
	}
}
