package generator

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scaling-waffle/internal/business"
	"github.com/mauv0809/scaling-waffle/internal/player"
)

// SlotSelector chooses, for one available slot, a priority player and an
// ordered list of backup candidates from the player pool.
type SlotSelector struct {
	pool     player.PlayersClient
	policy   PriorityPolicy
	poolSize int
}

// NewSelector creates a SlotSelector. poolSize bounds the number of backup
// candidates requested per slot.
func NewSelector(pool player.PlayersClient, policy PriorityPolicy, poolSize int) *SlotSelector {
	return &SlotSelector{
		pool:     pool,
		policy:   policy,
		poolSize: poolSize,
	}
}

// Select returns the priority player and its ordered backups for the slot,
// never selecting any id in exclude. An empty candidate pool is not an
// error: it returns (nil, nil, nil).
func (s *SlotSelector) Select(avail business.AvailableTime, exclude []string) (*player.Player, []player.Player, error) {
	filters := player.FiltersFromAvailableTime(avail)
	filters.ExcludeIDs = exclude

	candidates, err := s.pool.GetPlayersByFilters(filters)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch candidate players: %w", err)
	}

	priority := s.policy.Pick(candidates)
	if priority == nil {
		log.Debug("No assignable player for slot", "court", avail.CourtName, "date", avail.Date, "time", avail.Time)
		return nil, nil, nil
	}

	backupFilters := player.FiltersFromAvailableTime(avail)
	backupFilters.ExcludeIDs = append(append([]string{}, exclude...), priority.UserPublicID)
	limit := s.poolSize
	backupFilters.Limit = &limit

	backups, err := s.pool.GetPlayersByFilters(backupFilters)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch backup players: %w", err)
	}

	log.Debug("Selected slot players", "court", avail.CourtName, "time", avail.Time, "priority", priority.UserPublicID, "backups", len(backups))
	return priority, backups, nil
}
