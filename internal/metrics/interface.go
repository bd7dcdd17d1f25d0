package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncGeneratorRuns()
	IncMatchesGenerated(count int)
	IncPlayersPromoted()
	IncPaymentsCreated()
	IncNotifSent()
	IncNotifFailed()
	ObserveGenerationDuration(duration float64)
	SetStartupTime(duration float64)
}
