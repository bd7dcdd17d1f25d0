package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	getEnvIntOr := func(key string, fallback int) int {
		value, ok := os.LookupEnv(key)
		if !ok {
			return fallback
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			log.Fatalf("Error: Environment variable %s must be an integer, got %q.", key, value)
		}
		return n
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: "./migrations",
		Port:          getEnv("PORT"),
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID: getEnv("GCP_PROJECT"),
		Business: ServiceConfig{
			BaseURL: getEnv("BUSINESS_SERVICE_URL"),
			APIKey:  getEnvOr("BUSINESS_SERVICE_API_KEY", ""),
		},
		Players: ServiceConfig{
			BaseURL: getEnv("PLAYERS_SERVICE_URL"),
			APIKey:  getEnvOr("PLAYERS_SERVICE_API_KEY", ""),
		},
		Payments: ServiceConfig{
			BaseURL: getEnv("PAYMENTS_SERVICE_URL"),
			APIKey:  getEnvOr("PAYMENTS_SERVICE_API_KEY", ""),
		},
		Slack: SlackConfig{
			Token:     getEnv("SLACK_BOT_TOKEN"),
			ChannelID: getEnv("SLACK_CHANNEL_ID"),
		},
		Matches: MatchConfig{
			MaxPlayers:    getEnvIntOr("MAX_MATCH_PLAYERS", 4),
			MinSimilar:    getEnvIntOr("MIN_SIMILAR_PLAYERS", 3),
			SimilarFactor: getEnvIntOr("SIMILAR_FACTOR", 4),
		},
	}
	return cfg
}
