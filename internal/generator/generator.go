// Package generator turns a business's open court slots into match records
// and populates each with an assigned player plus a ranked waitlist of
// similar players.
package generator

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scaling-waffle/internal/apperr"
	"github.com/mauv0809/scaling-waffle/internal/business"
	"github.com/mauv0809/scaling-waffle/internal/match"
	"github.com/mauv0809/scaling-waffle/internal/matchplayer"
	"github.com/mauv0809/scaling-waffle/internal/metrics"
)

// Generator orchestrates slot discovery, match creation and player
// allocation.
type Generator struct {
	matches  match.MatchStore
	players  matchplayer.MatchPlayerStore
	business business.BusinessClient
	selector *SlotSelector
	metrics  metrics.Metrics
}

// New creates a new Generator.
func New(matches match.MatchStore, players matchplayer.MatchPlayerStore, businessClient business.BusinessClient, selector *SlotSelector, metrics metrics.Metrics) *Generator {
	return &Generator{
		matches:  matches,
		players:  players,
		business: businessClient,
		selector: selector,
		metrics:  metrics,
	}
}

// GenerateMatches fetches the open slots for one court on one date and
// creates a match per slot not yet surfaced, populating its players. A slot
// whose match already exists is skipped silently: the uniqueness constraint
// doubles as the "already generated" check. Returns the public ids of the
// matches created by this run.
//
// A slot with an empty candidate pool still gets its match row; the pool is
// repopulated lazily on the first lifecycle touch.
func (g *Generator) GenerateMatches(businessPublicID, courtName, date string) ([]string, error) {
	g.metrics.IncGeneratorRuns()
	start := time.Now()
	defer func() {
		g.metrics.ObserveGenerationDuration(time.Since(start).Seconds())
	}()

	avails, err := g.business.GetAvailableTimes(businessPublicID, courtName, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch available times: %w", err)
	}
	log.Info("Generating matches", "business", businessPublicID, "court", courtName, "date", date, "slots", len(avails))

	var created []string
	for _, avail := range avails {
		if avail.IsReserved {
			continue
		}

		m, err := g.matches.CreateMatch(&match.Match{
			BusinessID: businessPublicID,
			CourtID:    avail.CourtPublicID,
			CourtName:  avail.CourtName,
			Date:       avail.Date,
			Time:       avail.Time,
			Status:     match.StatusProvisional,
		})
		if err != nil {
			if apperr.IsNotUnique(err) {
				log.Debug("Slot already generated, skipping", "court", avail.CourtName, "date", avail.Date, "time", avail.Time)
				continue
			}
			return created, err
		}

		if _, err := g.populateMatchPlayers(m.PublicID, avail, nil); err != nil {
			return created, err
		}
		created = append(created, m.PublicID)
	}

	g.metrics.IncMatchesGenerated(len(created))
	log.Info("Generation finished", "court", courtName, "created", len(created))
	return created, nil
}

// GenerateMatchesAll runs GenerateMatches for every court of the business.
// One court's slots colliding with existing matches never aborts the
// sibling courts.
func (g *Generator) GenerateMatchesAll(businessPublicID, date string) ([]string, error) {
	courts, err := g.business.GetCourts(businessPublicID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch courts: %w", err)
	}

	var created []string
	for _, court := range courts {
		ids, err := g.GenerateMatches(businessPublicID, court.CourtName, date)
		if err != nil {
			return created, err
		}
		created = append(created, ids...)
	}
	return created, nil
}

// GenerateMatchPlayers regenerates the candidate pool for one existing
// match: its current similar rows are purged, every player still attached
// to the match (outside-marked ones above all) is excluded from
// re-selection, and a fresh assigned row plus ranked similar rows are
// inserted. Returns the rows created; empty when no priority player was
// found.
func (g *Generator) GenerateMatchPlayers(matchPublicID string, avail business.AvailableTime) ([]*matchplayer.MatchPlayer, error) {
	existing, err := g.players.GetMatchPlayers(matchplayer.Filters{MatchPublicID: &matchPublicID})
	if err != nil {
		return nil, err
	}

	var (
		staleSimilar []string
		exclude      []string
	)
	for _, p := range existing {
		if p.Reserve == matchplayer.ReserveSimilar {
			staleSimilar = append(staleSimilar, p.UserPublicID)
			continue
		}
		// Outside-marked players are permanently excluded; any other
		// remaining row (inside, assigned, provisional, rejected) keeps
		// its seat-state and must not be re-selected either.
		exclude = append(exclude, p.UserPublicID)
	}

	if err := g.players.DeleteMatchPlayers(matchPublicID, staleSimilar); err != nil {
		return nil, err
	}

	return g.populateMatchPlayers(matchPublicID, avail, exclude)
}

// populateMatchPlayers runs the slot selector and inserts the assigned and
// similar rows for a match. The backup rank doubles as the waitlist
// priority: distance i for the i-th backup.
func (g *Generator) populateMatchPlayers(matchPublicID string, avail business.AvailableTime, exclude []string) ([]*matchplayer.MatchPlayer, error) {
	priority, backups, err := g.selector.Select(avail, exclude)
	if err != nil {
		return nil, err
	}
	if priority == nil {
		return nil, nil
	}

	rows := make([]*matchplayer.MatchPlayer, 0, len(backups)+1)
	rows = append(rows, &matchplayer.MatchPlayer{
		MatchPublicID: matchPublicID,
		UserPublicID:  priority.UserPublicID,
		Distance:      0,
		Reserve:       matchplayer.ReserveAssigned,
	})
	for i, backup := range backups {
		rows = append(rows, &matchplayer.MatchPlayer{
			MatchPublicID: matchPublicID,
			UserPublicID:  backup.UserPublicID,
			Distance:      float64(i),
			Reserve:       matchplayer.ReserveSimilar,
		})
	}

	if _, err := g.players.CreateMatchPlayers(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetMatchesExtended hydrates the extended views for the given match public
// ids.
func (g *Generator) GetMatchesExtended(publicIDs []string) ([]*matchplayer.MatchExtended, error) {
	views := make([]*matchplayer.MatchExtended, 0, len(publicIDs))
	for _, id := range publicIDs {
		m, err := g.matches.GetMatch(id)
		if err != nil {
			return nil, err
		}
		players, err := g.players.GetMatchPlayers(matchplayer.Filters{MatchPublicID: &m.PublicID})
		if err != nil {
			return nil, err
		}
		views = append(views, &matchplayer.MatchExtended{Match: m, Players: players})
	}
	return views, nil
}
