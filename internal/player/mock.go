package player

import "sync"

// MockClient is a mock implementation of the PlayersClient interface for
// testing.
type MockClient struct {
	mu sync.Mutex

	GetPlayersByFiltersFunc func(f Filters) ([]Player, error)

	GetPlayersByFiltersCalls []Filters
}

var _ PlayersClient = (*MockClient)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockClient {
	return &MockClient{}
}

func (m *MockClient) GetPlayersByFilters(f Filters) ([]Player, error) {
	m.mu.Lock()
	m.GetPlayersByFiltersCalls = append(m.GetPlayersByFiltersCalls, f)
	m.mu.Unlock()
	if m.GetPlayersByFiltersFunc != nil {
		return m.GetPlayersByFiltersFunc(f)
	}
	return nil, nil
}
