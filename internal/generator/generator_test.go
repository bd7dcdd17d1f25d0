package generator_test

import (
	"database/sql"
	"testing"

	"github.com/mauv0809/scaling-waffle/internal/business"
	"github.com/mauv0809/scaling-waffle/internal/database"
	"github.com/mauv0809/scaling-waffle/internal/generator"
	"github.com/mauv0809/scaling-waffle/internal/match"
	"github.com/mauv0809/scaling-waffle/internal/matchplayer"
	"github.com/mauv0809/scaling-waffle/internal/metrics"
	"github.com/mauv0809/scaling-waffle/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorFixture struct {
	gen     *generator.Generator
	matches match.MatchStore
	players matchplayer.MatchPlayerStore
	biz     *business.MockClient
	metrics *metrics.Mock
	db      *sql.DB
}

// setupGenerator wires a generator against an in-memory database and mock
// collaborator services.
func setupGenerator(t *testing.T, roster []player.Player) (*generatorFixture, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	matchStore := match.New(db)
	playerStore := matchplayer.New(db)
	biz := business.NewMock()
	metricsSvc := metrics.NewMock()
	selector := generator.NewSelector(rosterClient(roster), generator.FirstAvailable{}, 3)
	gen := generator.New(matchStore, playerStore, biz, selector, metricsSvc)

	teardown := func() {
		dbTeardown()
		db.Close()
	}
	return &generatorFixture{
		gen:     gen,
		matches: matchStore,
		players: playerStore,
		biz:     biz,
		metrics: metricsSvc,
		db:      db,
	}, teardown
}

func slotAt(hour int, reserved bool) business.AvailableTime {
	return business.AvailableTime{
		BusinessPublicID: "biz1",
		CourtPublicID:    "court-id-1",
		CourtName:        "Court 1",
		Latitude:         55.67,
		Longitude:        12.56,
		Date:             "2026-09-12",
		Time:             hour,
		IsReserved:       reserved,
	}
}

func TestGenerateMatches(t *testing.T) {
	roster := []player.Player{
		{UserPublicID: "u1"},
		{UserPublicID: "u2"},
		{UserPublicID: "u3"},
	}
	fx, teardown := setupGenerator(t, roster)
	defer teardown()

	fx.biz.GetAvailableTimesFunc = func(businessPublicID, courtName, date string) ([]business.AvailableTime, error) {
		return []business.AvailableTime{slotAt(10, false), slotAt(18, false), slotAt(19, true)}, nil
	}

	ids, err := fx.gen.GenerateMatches("biz1", "Court 1", "2026-09-12")
	require.NoError(t, err)
	assert.Len(t, ids, 2, "the reserved slot should be skipped")
	assert.Equal(t, 1, fx.metrics.GeneratorRunsCount)
	assert.Equal(t, 2, fx.metrics.MatchesGeneratedCount)

	// Each created match carries one assigned player and the ranked
	// waitlist behind it.
	for _, id := range ids {
		players, err := fx.players.GetMatchPlayers(matchplayer.Filters{MatchPublicID: &id})
		require.NoError(t, err)
		require.Len(t, players, 3)
		assert.Equal(t, "u1", players[0].UserPublicID)
		assert.Equal(t, matchplayer.ReserveAssigned, players[0].Reserve)
		assert.Equal(t, matchplayer.ReserveSimilar, players[1].Reserve)
		assert.Equal(t, float64(0), players[1].Distance)
		assert.Equal(t, matchplayer.ReserveSimilar, players[2].Reserve)
		assert.Equal(t, float64(1), players[2].Distance)
	}
}

func TestGenerateMatches_Idempotent(t *testing.T) {
	fx, teardown := setupGenerator(t, []player.Player{{UserPublicID: "u1"}})
	defer teardown()

	fx.biz.GetAvailableTimesFunc = func(businessPublicID, courtName, date string) ([]business.AvailableTime, error) {
		return []business.AvailableTime{slotAt(18, false)}, nil
	}

	first, err := fx.gen.GenerateMatches("biz1", "Court 1", "2026-09-12")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// The second run sees the same slot; the uniqueness constraint makes
	// it a no-op instead of an error.
	second, err := fx.gen.GenerateMatches("biz1", "Court 1", "2026-09-12")
	require.NoError(t, err)
	assert.Empty(t, second)

	all, err := fx.matches.GetMatches(match.Filters{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGenerateMatches_EmptyPool(t *testing.T) {
	fx, teardown := setupGenerator(t, nil)
	defer teardown()

	fx.biz.GetAvailableTimesFunc = func(businessPublicID, courtName, date string) ([]business.AvailableTime, error) {
		return []business.AvailableTime{slotAt(18, false)}, nil
	}

	ids, err := fx.gen.GenerateMatches("biz1", "Court 1", "2026-09-12")
	require.NoError(t, err)
	require.Len(t, ids, 1, "a slot with no candidates still gets its match row")

	players, err := fx.players.GetMatchPlayers(matchplayer.Filters{MatchPublicID: &ids[0]})
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestGenerateMatchesAll(t *testing.T) {
	fx, teardown := setupGenerator(t, []player.Player{{UserPublicID: "u1"}})
	defer teardown()

	fx.biz.GetCourtsFunc = func(businessPublicID string) ([]business.Court, error) {
		return []business.Court{
			{CourtPublicID: "c1", CourtName: "Court 1"},
			{CourtPublicID: "c2", CourtName: "Court 2"},
		}, nil
	}
	fx.biz.GetAvailableTimesFunc = func(businessPublicID, courtName, date string) ([]business.AvailableTime, error) {
		slot := slotAt(18, false)
		slot.CourtName = courtName
		return []business.AvailableTime{slot}, nil
	}

	ids, err := fx.gen.GenerateMatchesAll("biz1", "2026-09-12")
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Equal(t, 2, fx.metrics.GeneratorRunsCount, "one run per court")
}

func TestGenerateMatchPlayers_Regeneration(t *testing.T) {
	roster := []player.Player{
		{UserPublicID: "u1"},
		{UserPublicID: "u2"},
		{UserPublicID: "u3"},
		{UserPublicID: "u4"},
	}
	fx, teardown := setupGenerator(t, roster)
	defer teardown()

	fx.biz.GetAvailableTimesFunc = func(businessPublicID, courtName, date string) ([]business.AvailableTime, error) {
		return []business.AvailableTime{slotAt(18, false)}, nil
	}
	ids, err := fx.gen.GenerateMatches("biz1", "Court 1", "2026-09-12")
	require.NoError(t, err)
	require.Len(t, ids, 1)
	matchID := ids[0]

	// u1 walks away; its row flips to outside before regeneration runs.
	outside := matchplayer.ReserveOutside
	_, err = fx.players.UpdateMatchPlayer(matchID, "u1", matchplayer.Update{Reserve: &outside})
	require.NoError(t, err)

	created, err := fx.gen.GenerateMatchPlayers(matchID, slotAt(18, false))
	require.NoError(t, err)
	require.NotEmpty(t, created)
	assert.Equal(t, "u2", created[0].UserPublicID, "the departed player must never be re-selected")
	assert.Equal(t, matchplayer.ReserveAssigned, created[0].Reserve)

	players, err := fx.players.GetMatchPlayers(matchplayer.Filters{MatchPublicID: &matchID})
	require.NoError(t, err)
	for _, p := range players {
		if p.UserPublicID == "u1" {
			assert.Equal(t, matchplayer.ReserveOutside, p.Reserve, "the outside row keeps its state")
		}
	}
}
