package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	GeneratorRuns      prometheus.Counter
	MatchesGenerated   prometheus.Counter
	PlayersPromoted    prometheus.Counter
	PaymentsCreated    prometheus.Counter
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	GenerationDuration prometheus.Histogram
	StartupTimeSeconds prometheus.Gauge
}
