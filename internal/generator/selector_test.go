package generator_test

import (
	"slices"
	"testing"

	"github.com/mauv0809/scaling-waffle/internal/business"
	"github.com/mauv0809/scaling-waffle/internal/generator"
	"github.com/mauv0809/scaling-waffle/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rosterClient returns a fixed roster, honouring ExcludeIDs and Limit the
// way the real players service does.
func rosterClient(roster []player.Player) *player.MockClient {
	mock := player.NewMock()
	mock.GetPlayersByFiltersFunc = func(f player.Filters) ([]player.Player, error) {
		var out []player.Player
		for _, p := range roster {
			if slices.Contains(f.ExcludeIDs, p.UserPublicID) {
				continue
			}
			out = append(out, p)
			if f.Limit != nil && len(out) == *f.Limit {
				break
			}
		}
		return out, nil
	}
	return mock
}

func testSlot() business.AvailableTime {
	return business.AvailableTime{
		BusinessPublicID: "biz1",
		CourtPublicID:    "court-id-1",
		CourtName:        "Court 1",
		Latitude:         55.67,
		Longitude:        12.56,
		Date:             "2026-09-12",
		Time:             18,
	}
}

func TestSelect_PriorityAndBackups(t *testing.T) {
	roster := []player.Player{
		{UserPublicID: "u1"},
		{UserPublicID: "u2"},
		{UserPublicID: "u3"},
		{UserPublicID: "u4"},
	}
	selector := generator.NewSelector(rosterClient(roster), generator.FirstAvailable{}, 2)

	priority, backups, err := selector.Select(testSlot(), nil)
	require.NoError(t, err)
	require.NotNil(t, priority)
	assert.Equal(t, "u1", priority.UserPublicID)

	// The priority player never shows up again in its own backup list,
	// and the pool size caps the backups.
	require.Len(t, backups, 2)
	assert.Equal(t, "u2", backups[0].UserPublicID)
	assert.Equal(t, "u3", backups[1].UserPublicID)
}

func TestSelect_HonoursExclusions(t *testing.T) {
	roster := []player.Player{
		{UserPublicID: "u1"},
		{UserPublicID: "u2"},
		{UserPublicID: "u3"},
	}
	selector := generator.NewSelector(rosterClient(roster), generator.FirstAvailable{}, 5)

	priority, backups, err := selector.Select(testSlot(), []string{"u1"})
	require.NoError(t, err)
	require.NotNil(t, priority)
	assert.Equal(t, "u2", priority.UserPublicID)
	require.Len(t, backups, 1)
	assert.Equal(t, "u3", backups[0].UserPublicID)
}

func TestSelect_EmptyPool(t *testing.T) {
	selector := generator.NewSelector(rosterClient(nil), generator.FirstAvailable{}, 5)

	priority, backups, err := selector.Select(testSlot(), nil)
	require.NoError(t, err)
	assert.Nil(t, priority, "an empty pool is not an error")
	assert.Empty(t, backups)
}
