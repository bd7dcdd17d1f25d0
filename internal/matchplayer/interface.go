package matchplayer

// MatchPlayerStore defines the interface for interacting with match-player
// records.
type MatchPlayerStore interface {
	// CreateMatchPlayer inserts a new match player. Returns
	// apperr.NotUniqueError when the (match, player) pair already exists.
	CreateMatchPlayer(mp *MatchPlayer) (*MatchPlayer, error)
	// CreateMatchPlayers inserts many match players in one transaction.
	CreateMatchPlayers(mps []*MatchPlayer) ([]*MatchPlayer, error)
	// GetMatchPlayer fetches one record by its composite key. Returns
	// apperr.NotFoundError when absent.
	GetMatchPlayer(matchPublicID, userPublicID string) (*MatchPlayer, error)
	// GetMatchPlayers returns all records satisfying the filter (AND over
	// non-nil fields).
	GetMatchPlayers(f Filters) ([]*MatchPlayer, error)
	// GetNextByDistance returns up to limit players of the given reserve
	// state for a match, ordered by ascending distance. Used for waitlist
	// promotion.
	GetNextByDistance(matchPublicID string, reserve Reserve, limit int) ([]*MatchPlayer, error)
	// UpdateMatchPlayer applies the non-nil fields of upd and returns the
	// updated record. Returns apperr.NotFoundError when the pair does not
	// exist.
	UpdateMatchPlayer(matchPublicID, userPublicID string, upd Update) (*MatchPlayer, error)
	// DeleteMatchPlayers removes the given players from a match. Used to
	// purge stale similar rows before regeneration.
	DeleteMatchPlayers(matchPublicID string, userPublicIDs []string) error
}
