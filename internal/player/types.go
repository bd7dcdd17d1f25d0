package player

import (
	"time"

	"github.com/mauv0809/scaling-waffle/internal/business"
)

// Player is one candidate from the player-pool service.
type Player struct {
	UserPublicID     string  `json:"user_public_id"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	TimeAvailability int     `json:"time_availability"`
}

// Time-of-day buckets used by the pool service.
const (
	BucketMorning   = 1 // 06-11
	BucketAfternoon = 2 // 12-17
	BucketEvening   = 3 // 18-24
)

// ToTimeAvailability buckets an hour of day. Hours outside the bookable
// range map to 0.
func ToTimeAvailability(hour int) int {
	switch {
	case hour >= 6 && hour <= 11:
		return BucketMorning
	case hour > 11 && hour <= 17:
		return BucketAfternoon
	case hour > 17 && hour <= 24:
		return BucketEvening
	default:
		return 0
	}
}

// Filters is the candidate query sent to the pool service.
type Filters struct {
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	TimeAvailability *int     `json:"time_availability,omitempty"`
	// AvailableDays holds ISO weekdays (Monday=1 .. Sunday=7).
	AvailableDays []int    `json:"available_days,omitempty"`
	ExcludeIDs    []string `json:"exclude_ids,omitempty"`
	Limit         *int     `json:"n_players,omitempty"`
}

// FiltersFromAvailableTime derives the candidate filter for a slot: the
// slot's location, its time-of-day bucket and its ISO weekday.
func FiltersFromAvailableTime(avail business.AvailableTime) Filters {
	bucket := ToTimeAvailability(avail.Time)
	f := Filters{
		Latitude:         &avail.Latitude,
		Longitude:        &avail.Longitude,
		TimeAvailability: &bucket,
	}
	if day, ok := isoWeekday(avail.Date); ok {
		f.AvailableDays = []int{day}
	}
	return f
}

func isoWeekday(date string) (int, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, false
	}
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // time.Sunday is 0, ISO Sunday is 7
	}
	return wd, true
}

type playersResponse struct {
	Data []Player `json:"data"`
}
