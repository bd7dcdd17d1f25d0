package match

import "sync"

// MockStore is a mock implementation of the MatchStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateMatchFunc   func(m *Match) (*Match, error)
	CreateMatchesFunc func(ms []*Match) ([]*Match, error)
	GetMatchFunc      func(publicID string) (*Match, error)
	GetMatchesFunc    func(f Filters) ([]*Match, error)
	UpdateMatchFunc   func(publicID string, upd Update) (*Match, error)

	// Call records
	CreateMatchCalls   []*Match
	CreateMatchesCalls [][]*Match
	GetMatchCalls      []string
	GetMatchesCalls    []Filters
	UpdateMatchCalls   []struct {
		PublicID string
		Update   Update
	}
}

var _ MatchStore = (*MockStore)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CreateMatch(mt *Match) (*Match, error) {
	m.mu.Lock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, mt)
	m.mu.Unlock()
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(mt)
	}
	return mt, nil
}

func (m *MockStore) CreateMatches(ms []*Match) ([]*Match, error) {
	m.mu.Lock()
	m.CreateMatchesCalls = append(m.CreateMatchesCalls, ms)
	m.mu.Unlock()
	if m.CreateMatchesFunc != nil {
		return m.CreateMatchesFunc(ms)
	}
	return ms, nil
}

func (m *MockStore) GetMatch(publicID string) (*Match, error) {
	m.mu.Lock()
	m.GetMatchCalls = append(m.GetMatchCalls, publicID)
	m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(publicID)
	}
	return &Match{PublicID: publicID}, nil
}

func (m *MockStore) GetMatches(f Filters) ([]*Match, error) {
	m.mu.Lock()
	m.GetMatchesCalls = append(m.GetMatchesCalls, f)
	m.mu.Unlock()
	if m.GetMatchesFunc != nil {
		return m.GetMatchesFunc(f)
	}
	return nil, nil
}

func (m *MockStore) UpdateMatch(publicID string, upd Update) (*Match, error) {
	m.mu.Lock()
	m.UpdateMatchCalls = append(m.UpdateMatchCalls, struct {
		PublicID string
		Update   Update
	}{publicID, upd})
	m.mu.Unlock()
	if m.UpdateMatchFunc != nil {
		return m.UpdateMatchFunc(publicID, upd)
	}
	return &Match{PublicID: publicID}, nil
}
