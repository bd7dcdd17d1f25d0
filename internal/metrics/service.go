package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		GeneratorRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_generator_runs_total",
			Help: "The total number of times match generation has run.",
		}),
		MatchesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_matches_generated_total",
			Help: "The total number of matches created by the generator.",
		}),
		PlayersPromoted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_players_promoted_total",
			Help: "The total number of similar players promoted to assigned.",
		}),
		PaymentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_payments_created_total",
			Help: "The total number of payment links created on confirmation.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "padel_generation_duration_seconds",
			Help:    "The duration of individual generation runs.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "padel_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.GeneratorRuns,
		s.MatchesGenerated,
		s.PlayersPromoted,
		s.PaymentsCreated,
		s.NotifSent,
		s.NotifFailed,
		s.GenerationDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncGeneratorRuns() {
	s.GeneratorRuns.Inc()
}

func (s *Service) IncMatchesGenerated(count int) {
	s.MatchesGenerated.Add(float64(count))
}

func (s *Service) IncPlayersPromoted() {
	s.PlayersPromoted.Inc()
}

func (s *Service) IncPaymentsCreated() {
	s.PaymentsCreated.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) ObserveGenerationDuration(duration float64) {
	s.GenerationDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
