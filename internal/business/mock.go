package business

import "sync"

// MockClient is a mock implementation of the BusinessClient interface for
// testing.
type MockClient struct {
	mu sync.Mutex

	GetAvailableTimesFunc func(businessPublicID, courtName, date string) ([]AvailableTime, error)
	GetAvailableTimeFunc  func(businessPublicID, courtName, date string, hour int) (*AvailableTime, error)
	GetCourtsFunc         func(businessPublicID string) ([]Court, error)

	GetAvailableTimesCalls []struct{ BusinessPublicID, CourtName, Date string }
	GetAvailableTimeCalls  []struct {
		BusinessPublicID, CourtName, Date string
		Hour                              int
	}
	GetCourtsCalls []string
}

var _ BusinessClient = (*MockClient)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockClient {
	return &MockClient{}
}

func (m *MockClient) GetAvailableTimes(businessPublicID, courtName, date string) ([]AvailableTime, error) {
	m.mu.Lock()
	m.GetAvailableTimesCalls = append(m.GetAvailableTimesCalls, struct{ BusinessPublicID, CourtName, Date string }{businessPublicID, courtName, date})
	m.mu.Unlock()
	if m.GetAvailableTimesFunc != nil {
		return m.GetAvailableTimesFunc(businessPublicID, courtName, date)
	}
	return nil, nil
}

func (m *MockClient) GetAvailableTime(businessPublicID, courtName, date string, hour int) (*AvailableTime, error) {
	m.mu.Lock()
	m.GetAvailableTimeCalls = append(m.GetAvailableTimeCalls, struct {
		BusinessPublicID, CourtName, Date string
		Hour                              int
	}{businessPublicID, courtName, date, hour})
	m.mu.Unlock()
	if m.GetAvailableTimeFunc != nil {
		return m.GetAvailableTimeFunc(businessPublicID, courtName, date, hour)
	}
	return nil, nil
}

func (m *MockClient) GetCourts(businessPublicID string) ([]Court, error) {
	m.mu.Lock()
	m.GetCourtsCalls = append(m.GetCourtsCalls, businessPublicID)
	m.mu.Unlock()
	if m.GetCourtsFunc != nil {
		return m.GetCourtsFunc(businessPublicID)
	}
	return nil, nil
}
