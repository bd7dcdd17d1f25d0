package payment

// Payment is the link issued by the payments service for one player's seat
// confirmation.
type Payment struct {
	PublicID      string `json:"public_id"`
	MatchPublicID string `json:"match_public_id"`
	UserPublicID  string `json:"user_public_id"`
	PayURL        string `json:"pay_url"`
}
