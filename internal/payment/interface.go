package payment

import "github.com/mauv0809/scaling-waffle/internal/matchplayer"

// PaymentsClient defines the interface for interacting with the payments
// service.
type PaymentsClient interface {
	// CreatePayment requests a payment link for the confirming player,
	// passing the full match-with-players view.
	CreatePayment(view *matchplayer.MatchExtended) (*Payment, error)
}
