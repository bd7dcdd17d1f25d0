package business

// AvailableTime describes one open court slot surfaced by the business
// service.
type AvailableTime struct {
	BusinessPublicID string  `json:"business_id"`
	CourtPublicID    string  `json:"court_id"`
	CourtName        string  `json:"court_name"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Date             string  `json:"date"` // YYYY-MM-DD
	Time             int     `json:"initial_hour"`
	IsReserved       bool    `json:"reserve"`
}

// Court describes one court of a business.
type Court struct {
	BusinessPublicID string  `json:"business_id"`
	CourtPublicID    string  `json:"court_id"`
	CourtName        string  `json:"court_name"`
	PricePerHour     float64 `json:"price_per_hour"`
}

type availableTimesResponse struct {
	Data []AvailableTime `json:"data"`
}

type courtsResponse struct {
	Data []Court `json:"data"`
}
