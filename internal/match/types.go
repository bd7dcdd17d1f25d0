package match

import (
	"database/sql"
	"strings"
	"sync"
)

// store handles all database operations for matches.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Status is the reservation status of a match.
type Status string

const (
	StatusProvisional Status = "P"
	StatusReserved    Status = "R"
	StatusCancelled   Status = "C"
)

// Match represents one bookable court slot surfaced as a playable match.
// The (court_name, date, time) tuple is unique: generation never creates
// two matches for the same physical slot.
type Match struct {
	PublicID   string `json:"public_id"`
	BusinessID string `json:"business_id"`
	CourtID    string `json:"court_id,omitempty"`
	CourtName  string `json:"court_name"`
	Date       string `json:"date"` // YYYY-MM-DD
	Time       int    `json:"time"` // hour of day
	Status     Status `json:"status"`
}

// Update carries the mutable fields of a match. Nil fields are left
// untouched.
type Update struct {
	CourtID   *string `json:"court_id,omitempty"`
	CourtName *string `json:"court_name,omitempty"`
	Date      *string `json:"date,omitempty"`
	Time      *int    `json:"time,omitempty"`
	Status    *Status `json:"status,omitempty"`
}

// Filters is an AND-conjunction over its non-nil fields.
type Filters struct {
	PublicID   *string `json:"public_id,omitempty"`
	BusinessID *string `json:"business_id,omitempty"`
	CourtID    *string `json:"court_id,omitempty"`
	CourtName  *string `json:"court_name,omitempty"`
	Date       *string `json:"date,omitempty"`
	Time       *int    `json:"time,omitempty"`
	Status     *Status `json:"status,omitempty"`
}

// where builds the WHERE clause for the non-nil filter fields. The fields
// are enumerated explicitly; an empty filter matches everything.
func (f Filters) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(col string, v any) {
		conds = append(conds, col+" = ?")
		args = append(args, v)
	}
	if f.PublicID != nil {
		add("public_id", *f.PublicID)
	}
	if f.BusinessID != nil {
		add("business_id", *f.BusinessID)
	}
	if f.CourtID != nil {
		add("court_id", *f.CourtID)
	}
	if f.CourtName != nil {
		add("court_name", *f.CourtName)
	}
	if f.Date != nil {
		add("date", *f.Date)
	}
	if f.Time != nil {
		add("time", *f.Time)
	}
	if f.Status != nil {
		add("status", string(*f.Status))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
