package player

// PlayersClient defines the interface for interacting with the player-pool
// service. The returned ordering is the pool's own priority order and is
// preserved by callers.
type PlayersClient interface {
	GetPlayersByFilters(f Filters) ([]Player, error)
}
