package metrics

import "sync"

// Mock is a no-op Metrics implementation that records call counts for
// assertions in tests.
type Mock struct {
	mu sync.Mutex

	GeneratorRunsCount      int
	MatchesGeneratedCount   int
	PlayersPromotedCount    int
	PaymentsCreatedCount    int
	NotifSentCount          int
	NotifFailedCount        int
	GenerationDurations     []float64
	StartupTimeLastObserved float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncGeneratorRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GeneratorRunsCount++
}

func (m *Mock) IncMatchesGenerated(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchesGeneratedCount += count
}

func (m *Mock) IncPlayersPromoted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayersPromotedCount++
}

func (m *Mock) IncPaymentsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PaymentsCreatedCount++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifSentCount++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifFailedCount++
}

func (m *Mock) ObserveGenerationDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerationDurations = append(m.GenerationDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimeLastObserved = duration
}
