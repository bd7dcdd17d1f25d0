package match

// MatchStore defines the interface for interacting with match records.
type MatchStore interface {
	// CreateMatch inserts a new match, assigning its public id when empty.
	// Returns apperr.NotUniqueError when the slot already exists.
	CreateMatch(m *Match) (*Match, error)
	// CreateMatches inserts many matches in one transaction. A uniqueness
	// violation fails the whole batch.
	CreateMatches(ms []*Match) ([]*Match, error)
	// GetMatch fetches a match by public id. Returns apperr.NotFoundError
	// when absent.
	GetMatch(publicID string) (*Match, error)
	// GetMatches returns all matches satisfying the filter (AND over
	// non-nil fields).
	GetMatches(f Filters) ([]*Match, error)
	// UpdateMatch applies the non-nil fields of upd to the match with the
	// given public id and returns the updated record.
	UpdateMatch(publicID string, upd Update) (*Match, error)
}
