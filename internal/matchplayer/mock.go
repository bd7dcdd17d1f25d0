package matchplayer

import "sync"

// MockStore is a mock implementation of the MatchPlayerStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateMatchPlayerFunc  func(mp *MatchPlayer) (*MatchPlayer, error)
	CreateMatchPlayersFunc func(mps []*MatchPlayer) ([]*MatchPlayer, error)
	GetMatchPlayerFunc     func(matchPublicID, userPublicID string) (*MatchPlayer, error)
	GetMatchPlayersFunc    func(f Filters) ([]*MatchPlayer, error)
	GetNextByDistanceFunc  func(matchPublicID string, reserve Reserve, limit int) ([]*MatchPlayer, error)
	UpdateMatchPlayerFunc  func(matchPublicID, userPublicID string, upd Update) (*MatchPlayer, error)
	DeleteMatchPlayersFunc func(matchPublicID string, userPublicIDs []string) error

	// Call records
	CreateMatchPlayerCalls  []*MatchPlayer
	CreateMatchPlayersCalls [][]*MatchPlayer
	GetMatchPlayerCalls     []struct{ MatchPublicID, UserPublicID string }
	GetMatchPlayersCalls    []Filters
	GetNextByDistanceCalls  []struct {
		MatchPublicID string
		Reserve       Reserve
		Limit         int
	}
	UpdateMatchPlayerCalls []struct {
		MatchPublicID string
		UserPublicID  string
		Update        Update
	}
	DeleteMatchPlayersCalls []struct {
		MatchPublicID string
		UserPublicIDs []string
	}
}

var _ MatchPlayerStore = (*MockStore)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CreateMatchPlayer(mp *MatchPlayer) (*MatchPlayer, error) {
	m.mu.Lock()
	m.CreateMatchPlayerCalls = append(m.CreateMatchPlayerCalls, mp)
	m.mu.Unlock()
	if m.CreateMatchPlayerFunc != nil {
		return m.CreateMatchPlayerFunc(mp)
	}
	return mp, nil
}

func (m *MockStore) CreateMatchPlayers(mps []*MatchPlayer) ([]*MatchPlayer, error) {
	m.mu.Lock()
	m.CreateMatchPlayersCalls = append(m.CreateMatchPlayersCalls, mps)
	m.mu.Unlock()
	if m.CreateMatchPlayersFunc != nil {
		return m.CreateMatchPlayersFunc(mps)
	}
	return mps, nil
}

func (m *MockStore) GetMatchPlayer(matchPublicID, userPublicID string) (*MatchPlayer, error) {
	m.mu.Lock()
	m.GetMatchPlayerCalls = append(m.GetMatchPlayerCalls, struct{ MatchPublicID, UserPublicID string }{matchPublicID, userPublicID})
	m.mu.Unlock()
	if m.GetMatchPlayerFunc != nil {
		return m.GetMatchPlayerFunc(matchPublicID, userPublicID)
	}
	return &MatchPlayer{MatchPublicID: matchPublicID, UserPublicID: userPublicID}, nil
}

func (m *MockStore) GetMatchPlayers(f Filters) ([]*MatchPlayer, error) {
	m.mu.Lock()
	m.GetMatchPlayersCalls = append(m.GetMatchPlayersCalls, f)
	m.mu.Unlock()
	if m.GetMatchPlayersFunc != nil {
		return m.GetMatchPlayersFunc(f)
	}
	return nil, nil
}

func (m *MockStore) GetNextByDistance(matchPublicID string, reserve Reserve, limit int) ([]*MatchPlayer, error) {
	m.mu.Lock()
	m.GetNextByDistanceCalls = append(m.GetNextByDistanceCalls, struct {
		MatchPublicID string
		Reserve       Reserve
		Limit         int
	}{matchPublicID, reserve, limit})
	m.mu.Unlock()
	if m.GetNextByDistanceFunc != nil {
		return m.GetNextByDistanceFunc(matchPublicID, reserve, limit)
	}
	return nil, nil
}

func (m *MockStore) UpdateMatchPlayer(matchPublicID, userPublicID string, upd Update) (*MatchPlayer, error) {
	m.mu.Lock()
	m.UpdateMatchPlayerCalls = append(m.UpdateMatchPlayerCalls, struct {
		MatchPublicID string
		UserPublicID  string
		Update        Update
	}{matchPublicID, userPublicID, upd})
	m.mu.Unlock()
	if m.UpdateMatchPlayerFunc != nil {
		return m.UpdateMatchPlayerFunc(matchPublicID, userPublicID, upd)
	}
	return &MatchPlayer{MatchPublicID: matchPublicID, UserPublicID: userPublicID}, nil
}

func (m *MockStore) DeleteMatchPlayers(matchPublicID string, userPublicIDs []string) error {
	m.mu.Lock()
	m.DeleteMatchPlayersCalls = append(m.DeleteMatchPlayersCalls, struct {
		MatchPublicID string
		UserPublicIDs []string
	}{matchPublicID, userPublicIDs})
	m.mu.Unlock()
	if m.DeleteMatchPlayersFunc != nil {
		return m.DeleteMatchPlayersFunc(matchPublicID, userPublicIDs)
	}
	return nil
}
