package payment

import (
	"sync"

	"github.com/mauv0809/scaling-waffle/internal/matchplayer"
)

// MockClient is a mock implementation of the PaymentsClient interface for
// testing.
type MockClient struct {
	mu sync.Mutex

	CreatePaymentFunc func(view *matchplayer.MatchExtended) (*Payment, error)

	CreatePaymentCalls []*matchplayer.MatchExtended
}

var _ PaymentsClient = (*MockClient)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockClient {
	return &MockClient{}
}

func (m *MockClient) CreatePayment(view *matchplayer.MatchExtended) (*Payment, error) {
	m.mu.Lock()
	m.CreatePaymentCalls = append(m.CreatePaymentCalls, view)
	m.mu.Unlock()
	if m.CreatePaymentFunc != nil {
		return m.CreatePaymentFunc(view)
	}
	return &Payment{
		MatchPublicID: view.Match.PublicID,
		PayURL:        "https://pay.example.com/mock",
	}, nil
}
