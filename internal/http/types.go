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

type Server struct {
	Matches        match.MatchStore
	Players        matchplayer.MatchPlayerStore
	Generator      *generator.Generator
	Lifecycle      *lifecycle.Manager
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
