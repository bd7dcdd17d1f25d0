package notifier

import "sync"

// Mock is a mock implementation of the Notifier interface for testing.
type Mock struct {
	mu sync.Mutex

	SendNewMatchesFunc func(userPublicIDs []string, dryRun bool) error

	SendNewMatchesCalls [][]string
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendNewMatches(userPublicIDs []string, dryRun bool) error {
	m.mu.Lock()
	m.SendNewMatchesCalls = append(m.SendNewMatchesCalls, userPublicIDs)
	m.mu.Unlock()
	if m.SendNewMatchesFunc != nil {
		return m.SendNewMatchesFunc(userPublicIDs, dryRun)
	}
	return nil
}
