package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	ProjectID     string
	Business      ServiceConfig
	Players       ServiceConfig
	Payments      ServiceConfig
	Slack         SlackConfig
	Matches       MatchConfig
}

// ServiceConfig points at one of the external collaborator services.
type ServiceConfig struct {
	BaseURL string
	APIKey  string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// MatchConfig carries the allocation tunables.
type MatchConfig struct {
	// MaxPlayers is the seat count of a court (doubles = 4).
	MaxPlayers int
	// MinSimilar and SimilarFactor bound the backup pool requested per
	// slot: MinSimilar * SimilarFactor candidates.
	MinSimilar    int
	SimilarFactor int
}

// SimilarPoolSize is the number of backup candidates requested per slot.
func (m MatchConfig) SimilarPoolSize() int {
	return m.MinSimilar * m.SimilarFactor
}
