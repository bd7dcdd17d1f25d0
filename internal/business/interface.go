package business

// BusinessClient defines the interface for interacting with the business
// availability service. This allows for mock implementations to be used in
// tests.
type BusinessClient interface {
	// GetAvailableTimes returns the open slots for a court on a date.
	GetAvailableTimes(businessPublicID, courtName, date string) ([]AvailableTime, error)
	// GetAvailableTime returns the slot for a specific hour, or nil when
	// the slot is no longer offered.
	GetAvailableTime(businessPublicID, courtName, date string, hour int) (*AvailableTime, error)
	// GetCourts returns all courts of a business.
	GetCourts(businessPublicID string) ([]Court, error)
}
