package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scaling-waffle/internal/apperr"
	"github.com/mauv0809/scaling-waffle/internal/match"
	"github.com/mauv0809/scaling-waffle/internal/matchplayer"
	"github.com/mauv0809/scaling-waffle/internal/pubsub"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// respondError maps the typed store/lifecycle errors onto HTTP statuses.
func respondError(w http.ResponseWriter, msg string, err error) {
	log.Error(msg, "error", err)
	switch {
	case apperr.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case apperr.IsNotUnique(err):
		http.Error(w, err.Error(), http.StatusConflict)
	case apperr.IsNotAuthorized(err):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		http.Error(w, msg, http.StatusInternalServerError)
	}
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m match.Match
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if m.BusinessID == "" || m.CourtName == "" || m.Date == "" {
			http.Error(w, "business_id, court_name and date are required", http.StatusBadRequest)
			return
		}

		created, err := s.Matches.CreateMatch(&m)
		if err != nil {
			respondError(w, "Failed to create match", err)
			return
		}
		respondJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Matches.GetMatches(matchFiltersFromQuery(r))
		if err != nil {
			respondError(w, "Failed to get matches", err)
			return
		}
		respondJSON(w, http.StatusOK, matches)
	}
}

func matchFiltersFromQuery(r *http.Request) match.Filters {
	var f match.Filters
	q := r.URL.Query()
	if v := q.Get("businessID"); v != "" {
		f.BusinessID = &v
	}
	if v := q.Get("courtName"); v != "" {
		f.CourtName = &v
	}
	if v := q.Get("date"); v != "" {
		f.Date = &v
	}
	if v := q.Get("status"); v != "" {
		st := match.Status(v)
		f.Status = &st
	}
	return f
}

// GetMatchHandler returns the extended view: the match together with all
// its attached players.
func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		publicID := r.PathValue("publicID")
		extended, err := s.Generator.GetMatchesExtended([]string{publicID})
		if err != nil {
			respondError(w, "Failed to get match", err)
			return
		}
		respondJSON(w, http.StatusOK, extended[0])
	}
}

func (s *Server) UpdateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		publicID := r.PathValue("publicID")
		var upd match.Update
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		updated, err := s.Matches.UpdateMatch(publicID, upd)
		if err != nil {
			respondError(w, "Failed to update match", err)
			return
		}
		respondJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) GenerateMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID := r.URL.Query().Get("businessID")
		courtName := r.URL.Query().Get("courtName")
		date := r.URL.Query().Get("date")
		if businessID == "" || courtName == "" || date == "" {
			http.Error(w, "businessID, courtName and date are required", http.StatusBadRequest)
			return
		}
		log.Info("Starting match generation", "businessID", businessID, "courtName", courtName, "date", date)

		ids, err := s.Generator.GenerateMatches(businessID, courtName, date)
		if err != nil {
			respondError(w, "Failed to generate matches", err)
			return
		}

		s.afterGeneration(businessID, date, ids, isDryRunFromContext(r))
		respondJSON(w, http.StatusCreated, map[string]any{"match_public_ids": ids})
		log.Info("Match generation finished", "created", len(ids))
	}
}

func (s *Server) GenerateAllMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID := r.URL.Query().Get("businessID")
		date := r.URL.Query().Get("date")
		if businessID == "" || date == "" {
			http.Error(w, "businessID and date are required", http.StatusBadRequest)
			return
		}
		log.Info("Starting match generation for all courts", "businessID", businessID, "date", date)

		ids, err := s.Generator.GenerateMatchesAll(businessID, date)
		if err != nil {
			respondError(w, "Failed to generate matches", err)
			return
		}

		s.afterGeneration(businessID, date, ids, isDryRunFromContext(r))
		respondJSON(w, http.StatusCreated, map[string]any{"match_public_ids": ids})
		log.Info("Match generation finished", "created", len(ids))
	}
}

// afterGeneration publishes the generation event and tells the players who
// got a seat. Both are best effort: the matches are already persisted.
func (s *Server) afterGeneration(businessID, date string, ids []string, dryRun bool) {
	if len(ids) == 0 {
		return
	}

	event := pubsub.MatchesGeneratedEvent{
		BusinessPublicID: businessID,
		Date:             date,
		MatchPublicIDs:   ids,
	}
	if err := s.pubsub.SendMessage(string(pubsub.EventMatchesGenerated), event); err != nil {
		log.Error("Failed to publish generation event", "error", err)
	}

	extended, err := s.Generator.GetMatchesExtended(ids)
	if err != nil {
		log.Error("Failed to hydrate generated matches for notification", "error", err)
		return
	}
	var assigned []string
	for _, me := range extended {
		assigned = append(assigned, me.AssignedUserIDs()...)
	}
	if len(assigned) == 0 {
		return
	}
	if err := s.Notifier.SendNewMatches(assigned, dryRun); err != nil {
		log.Error("Failed to notify assigned players", "error", err)
	}
}

// AddMatchPlayerHandler attaches players to a match in provisional state.
// The body is either a single player object or an array of them.
func (s *Server) AddMatchPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		publicID := r.PathValue("publicID")

		raw, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}

		var (
			mps  []*matchplayer.MatchPlayer
			bulk = false
		)
		if err := json.Unmarshal(raw, &mps); err == nil {
			bulk = true
		} else {
			var mp matchplayer.MatchPlayer
			if err := json.Unmarshal(raw, &mp); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			mps = []*matchplayer.MatchPlayer{&mp}
		}
		if len(mps) == 0 {
			http.Error(w, "No players provided", http.StatusBadRequest)
			return
		}
		for _, mp := range mps {
			if mp.UserPublicID == "" {
				http.Error(w, "user_public_id is required", http.StatusBadRequest)
				return
			}
			mp.MatchPublicID = publicID
			if mp.Reserve == "" {
				mp.Reserve = matchplayer.ReserveProvisional
			}
		}

		created, err := s.Players.CreateMatchPlayers(mps)
		if err != nil {
			respondError(w, "Failed to add match players", err)
			return
		}
		if bulk {
			respondJSON(w, http.StatusCreated, created)
			return
		}
		respondJSON(w, http.StatusCreated, created[0])
	}
}

func (s *Server) ListMatchPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		publicID := r.PathValue("publicID")
		f := matchplayer.Filters{MatchPublicID: &publicID}
		if v := r.URL.Query().Get("reserve"); v != "" {
			reserve := matchplayer.Reserve(v)
			f.Reserve = &reserve
		}

		players, err := s.Players.GetMatchPlayers(f)
		if err != nil {
			respondError(w, "Failed to get match players", err)
			return
		}
		respondJSON(w, http.StatusOK, players)
	}
}

func (s *Server) GetMatchPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mp, err := s.Players.GetMatchPlayer(r.PathValue("publicID"), r.PathValue("userPublicID"))
		if err != nil {
			respondError(w, "Failed to get match player", err)
			return
		}
		respondJSON(w, http.StatusOK, mp)
	}
}

// UpdateMatchPlayerHandler is the lifecycle endpoint: confirmation,
// rejection, removal and the side effects they trigger all run through the
// lifecycle manager.
func (s *Server) UpdateMatchPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var upd matchplayer.Update
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if upd.Reserve == nil && upd.Distance == nil {
			http.Error(w, "Nothing to update", http.StatusBadRequest)
			return
		}

		mp, err := s.Lifecycle.UpdateMatchPlayer(r.PathValue("publicID"), r.PathValue("userPublicID"), upd, isDryRunFromContext(r))
		if err != nil {
			respondError(w, "Failed to update match player", err)
			return
		}
		respondJSON(w, http.StatusOK, mp)
	}
}

func (s *Server) ListPlayerMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userPublicID := r.PathValue("userPublicID")
		rows, err := s.Players.GetMatchPlayers(matchplayer.Filters{UserPublicID: &userPublicID})
		if err != nil {
			respondError(w, "Failed to get player matches", err)
			return
		}

		ids := make([]string, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.MatchPublicID)
		}
		extended, err := s.Generator.GetMatchesExtended(ids)
		if err != nil {
			respondError(w, "Failed to get player matches", err)
			return
		}
		respondJSON(w, http.StatusOK, extended)
	}
}

// NotifyNewMatchesHandler is the Pub/Sub push receiver for the
// notify-new-matches topic.
func (s *Server) NotifyNewMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received notify new matches message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		// Parse the outer JSON to get `data`
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		event := pubsub.NotifyNewMatchesEvent{}
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			log.Error("Failed to decode event payload", "error", err)
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}
		if err := s.Notifier.SendNewMatches(event.UserPublicIDs, isDryRun); err != nil {
			log.Error("Failed to notify new matches", "error", err)
			http.Error(w, "Failed to notify new matches", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
