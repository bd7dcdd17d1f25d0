package http

import (
	"net/http"

	"github.com/mauv0809/scaling-waffle/internal/config"
	"github.com/mauv0809/scaling-waffle/internal/generator"
	"github.com/mauv0809/scaling-waffle/internal/lifecycle"
	"github.com/mauv0809/scaling-waffle/internal/match"
	"github.com/mauv0809/scaling-waffle/internal/matchplayer"
	"github.com/mauv0809/scaling-waffle/internal/metrics"
	"github.com/mauv0809/scaling-waffle/internal/notifier"
	"github.com/mauv0809/scaling-waffle/internal/pubsub"
)

func NewServer(matches match.MatchStore, players matchplayer.MatchPlayerStore, gen *generator.Generator, lc *lifecycle.Manager, notifier notifier.Notifier, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Matches:        matches,
		Players:        players,
		Generator:      gen,
		Lifecycle:      lc,
		Notifier:       notifier,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an
	// authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches", Chain(s.CreateMatchHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{publicID}", Chain(s.GetMatchHandler(), paramsMiddleware))
	s.Router.Handle("PATCH /matches/{publicID}", Chain(s.UpdateMatchHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/generation", Chain(s.GenerateMatchesHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/generation/all", Chain(s.GenerateAllMatchesHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches/{publicID}/players", Chain(s.AddMatchPlayerHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{publicID}/players", Chain(s.ListMatchPlayersHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{publicID}/players/{userPublicID}", Chain(s.GetMatchPlayerHandler(), paramsMiddleware))
	s.Router.Handle("PATCH /matches/{publicID}/players/{userPublicID}", Chain(s.UpdateMatchPlayerHandler(), paramsMiddleware))

	s.Router.Handle("GET /players/{userPublicID}/matches", Chain(s.ListPlayerMatchesHandler(), paramsMiddleware))

	s.Router.Handle("POST /pubsub/push", Chain(s.NotifyNewMatchesHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
