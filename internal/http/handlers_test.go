package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/mauv0809/scaling-waffle/internal/business"
	"github.com/mauv0809/scaling-waffle/internal/config"
	"github.com/mauv0809/scaling-waffle/internal/database"
	"github.com/mauv0809/scaling-waffle/internal/generator"
	"github.com/mauv0809/scaling-waffle/internal/lifecycle"
	"github.com/mauv0809/scaling-waffle/internal/match"
	"github.com/mauv0809/scaling-waffle/internal/matchplayer"
	"github.com/mauv0809/scaling-waffle/internal/metrics"
	"github.com/mauv0809/scaling-waffle/internal/notifier"
	"github.com/mauv0809/scaling-waffle/internal/payment"
	"github.com/mauv0809/scaling-waffle/internal/player"
	"github.com/mauv0809/scaling-waffle/internal/pubsub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type serverFixture struct {
	server   *Server
	biz      *business.MockClient
	notifier *notifier.Mock
	pubsub   *pubsub.MockClient
}

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, roster []string) (*serverFixture, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	matchStore := match.New(db)
	playerStore := matchplayer.New(db)
	biz := business.NewMock()
	payments := payment.NewMock()
	notif := notifier.NewMock()
	pubsubClient := pubsub.NewMock("TEST")

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	pool := player.NewMock()
	pool.GetPlayersByFiltersFunc = func(f player.Filters) ([]player.Player, error) {
		var out []player.Player
		for _, id := range roster {
			if slices.Contains(f.ExcludeIDs, id) {
				continue
			}
			out = append(out, player.Player{UserPublicID: id})
			if f.Limit != nil && len(out) == *f.Limit {
				break
			}
		}
		return out, nil
	}

	cfg := config.Config{Matches: config.MatchConfig{MaxPlayers: 4, MinSimilar: 3, SimilarFactor: 4}}
	selector := generator.NewSelector(pool, generator.FirstAvailable{}, cfg.Matches.SimilarPoolSize())
	gen := generator.New(matchStore, playerStore, biz, selector, metricsSvc)
	lc := lifecycle.New(matchStore, playerStore, biz, payments, gen, notif, metricsSvc, pubsubClient, cfg.Matches.MaxPlayers)

	server := NewServer(matchStore, playerStore, gen, lc, notif, metricsSvc, metricsHandler, cfg, pubsubClient)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return &serverFixture{server: server, biz: biz, notifier: notif, pubsub: pubsubClient}, teardown
}

func doRequest(t *testing.T, server *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheckHandler(t *testing.T) {
	fx, teardown := setupTestServer(t, nil)
	defer teardown()

	rr := doRequest(t, fx.server, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestCreateMatchHandler(t *testing.T) {
	fx, teardown := setupTestServer(t, nil)
	defer teardown()

	body := match.Match{
		BusinessID: "biz1",
		CourtName:  "Court 1",
		Date:       "2026-09-12",
		Time:       18,
	}
	rr := doRequest(t, fx.server, "POST", "/matches", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created match.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.PublicID)
	assert.Equal(t, match.StatusProvisional, created.Status)

	// The same slot again collides with the uniqueness constraint.
	rr = doRequest(t, fx.server, "POST", "/matches", body)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestCreateMatchHandler_BadRequest(t *testing.T) {
	fx, teardown := setupTestServer(t, nil)
	defer teardown()

	rr := doRequest(t, fx.server, "POST", "/matches", match.Match{CourtName: "Court 1"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetMatchHandler(t *testing.T) {
	fx, teardown := setupTestServer(t, nil)
	defer teardown()

	rr := doRequest(t, fx.server, "POST", "/matches", match.Match{
		BusinessID: "biz1", CourtName: "Court 1", Date: "2026-09-12", Time: 18,
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var created match.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = doRequest(t, fx.server, "GET", "/matches/"+created.PublicID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var extended matchplayer.MatchExtended
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &extended))
	assert.Equal(t, created.PublicID, extended.Match.PublicID)
	assert.Empty(t, extended.Players)

	rr = doRequest(t, fx.server, "GET", "/matches/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateMatchHandler(t *testing.T) {
	fx, teardown := setupTestServer(t, nil)
	defer teardown()

	rr := doRequest(t, fx.server, "POST", "/matches", match.Match{
		BusinessID: "biz1", CourtName: "Court 1", Date: "2026-09-12", Time: 18,
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var created match.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	reserved := match.StatusReserved
	rr = doRequest(t, fx.server, "PATCH", "/matches/"+created.PublicID, match.Update{Status: &reserved})
	require.Equal(t, http.StatusOK, rr.Code)

	var updated match.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, match.StatusReserved, updated.Status)
}

func TestGenerateMatchesHandler(t *testing.T) {
	fx, teardown := setupTestServer(t, []string{"u1", "u2", "u3"})
	defer teardown()

	fx.biz.GetAvailableTimesFunc = func(businessPublicID, courtName, date string) ([]business.AvailableTime, error) {
		return []business.AvailableTime{
			{BusinessPublicID: businessPublicID, CourtPublicID: "c1", CourtName: courtName, Date: date, Time: 18},
			{BusinessPublicID: businessPublicID, CourtPublicID: "c1", CourtName: courtName, Date: date, Time: 19, IsReserved: true},
		}, nil
	}

	rr := doRequest(t, fx.server, "POST", "/matches/generation?businessID=biz1&courtName=Court+1&date=2026-09-12", nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp struct {
		MatchPublicIDs []string `json:"match_public_ids"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.MatchPublicIDs, 1)

	// The assigned player is told about its new seat and the event goes out.
	require.Len(t, fx.notifier.SendNewMatchesCalls, 1)
	assert.Equal(t, []string{"u1"}, fx.notifier.SendNewMatchesCalls[0])
	require.Len(t, fx.pubsub.SendMessageCalls, 1)
	assert.Equal(t, string(pubsub.EventMatchesGenerated), fx.pubsub.SendMessageCalls[0].Topic)
}

func TestGenerateMatchesHandler_MissingParams(t *testing.T) {
	fx, teardown := setupTestServer(t, nil)
	defer teardown()

	rr := doRequest(t, fx.server, "POST", "/matches/generation?businessID=biz1", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMatchPlayerHandlers(t *testing.T) {
	fx, teardown := setupTestServer(t, nil)
	defer teardown()

	rr := doRequest(t, fx.server, "POST", "/matches", match.Match{
		BusinessID: "biz1", CourtName: "Court 1", Date: "2026-09-12", Time: 18,
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var created match.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	// Direct join: the player attaches itself as provisional.
	rr = doRequest(t, fx.server, "POST", "/matches/"+created.PublicID+"/players", matchplayer.MatchPlayer{UserPublicID: "u1"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var joined matchplayer.MatchPlayer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joined))
	assert.Equal(t, matchplayer.ReserveProvisional, joined.Reserve)

	rr = doRequest(t, fx.server, "POST", "/matches/"+created.PublicID+"/players", matchplayer.MatchPlayer{UserPublicID: "u1"})
	assert.Equal(t, http.StatusConflict, rr.Code, "joining twice should conflict")

	rr = doRequest(t, fx.server, "GET", "/matches/"+created.PublicID+"/players", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var players []matchplayer.MatchPlayer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	assert.Len(t, players, 1)

	rr = doRequest(t, fx.server, "GET", "/matches/"+created.PublicID+"/players/u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, fx.server, "GET", "/matches/"+created.PublicID+"/players/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, fx.server, "GET", "/players/u1/matches", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var mine []matchplayer.MatchExtended
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, created.PublicID, mine[0].Match.PublicID)
}

func TestAddMatchPlayerHandler_Bulk(t *testing.T) {
	fx, teardown := setupTestServer(t, nil)
	defer teardown()

	rr := doRequest(t, fx.server, "POST", "/matches", match.Match{
		BusinessID: "biz1", CourtName: "Court 1", Date: "2026-09-12", Time: 18,
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var created match.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	body := []matchplayer.MatchPlayer{
		{UserPublicID: "u1"},
		{UserPublicID: "u2"},
	}
	rr = doRequest(t, fx.server, "POST", "/matches/"+created.PublicID+"/players", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var joined []matchplayer.MatchPlayer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joined))
	require.Len(t, joined, 2)
	for _, mp := range joined {
		assert.Equal(t, matchplayer.ReserveProvisional, mp.Reserve)
		assert.Equal(t, created.PublicID, mp.MatchPublicID)
	}
}

func TestUpdateMatchPlayerHandler(t *testing.T) {
	fx, teardown := setupTestServer(t, []string{"u1", "u2"})
	defer teardown()

	fx.biz.GetAvailableTimesFunc = func(businessPublicID, courtName, date string) ([]business.AvailableTime, error) {
		return []business.AvailableTime{
			{BusinessPublicID: businessPublicID, CourtPublicID: "c1", CourtName: courtName, Date: date, Time: 18},
		}, nil
	}
	rr := doRequest(t, fx.server, "POST", "/matches/generation?businessID=biz1&courtName=Court+1&date=2026-09-12", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	var resp struct {
		MatchPublicIDs []string `json:"match_public_ids"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.MatchPublicIDs, 1)
	matchID := resp.MatchPublicIDs[0]

	// The waitlisted player cannot confirm.
	inside := matchplayer.ReserveInside
	rr = doRequest(t, fx.server, "PATCH", fmt.Sprintf("/matches/%s/players/u2", matchID), matchplayer.Update{Reserve: &inside})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// The assigned player can, and gets a payment link back.
	rr = doRequest(t, fx.server, "PATCH", fmt.Sprintf("/matches/%s/players/u1", matchID), matchplayer.Update{Reserve: &inside})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated matchplayer.MatchPlayerPay
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, matchplayer.ReserveInside, updated.Reserve)
	require.NotNil(t, updated.PayURL)
	assert.NotEmpty(t, *updated.PayURL)

	rr = doRequest(t, fx.server, "PATCH", fmt.Sprintf("/matches/%s/players/u1", matchID), matchplayer.Update{})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "an empty update should be rejected")
}

func TestNotifyNewMatchesHandler(t *testing.T) {
	fx, teardown := setupTestServer(t, nil)
	defer teardown()

	payload, err := msgpack.Marshal(pubsub.NotifyNewMatchesEvent{UserPublicIDs: []string{"u1", "u2"}})
	require.NoError(t, err)

	wrapper := map[string]any{
		"subscription": "projects/test/subscriptions/notify",
		"message": map[string]any{
			"data": base64.StdEncoding.EncodeToString(payload),
		},
	}
	rr := doRequest(t, fx.server, "POST", "/pubsub/push", wrapper)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	require.Len(t, fx.notifier.SendNewMatchesCalls, 1)
	assert.Equal(t, []string{"u1", "u2"}, fx.notifier.SendNewMatchesCalls[0])
}

func TestNotifyNewMatchesHandler_InvalidBody(t *testing.T) {
	fx, teardown := setupTestServer(t, nil)
	defer teardown()

	req, err := http.NewRequest("POST", "/pubsub/push", strings.NewReader("not json"))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	fx.server.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
