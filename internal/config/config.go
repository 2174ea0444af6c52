package config

import (
	"os"

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

	// Optional env vars drive backend selection; their absence is a supported
	// configuration, not an error.
	optionalEnv := func(key string) string {
		return os.Getenv(key)
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: "./migrations",
		DataDir:       optionalEnvDefault("DATA_DIR", "./data"),
		Port:          getEnv("PORT"),
		Turso: TursoConfig{
			PrimaryURL: optionalEnv("TURSO_PRIMARY_URL"),
			AuthToken:  optionalEnv("TURSO_AUTH_TOKEN"),
		},
		Narrative: NarrativeConfig{
			APIKey:  optionalEnv("NARRATIVE_API_KEY"),
			BaseURL: optionalEnv("NARRATIVE_API_URL"),
		},
		Slack: SlackConfig{
			Token:         optionalEnv("SLACK_BOT_TOKEN"),
			ChannelID:     optionalEnv("SLACK_CHANNEL_ID"),
			SigningSecret: optionalEnv("SLACK_SIGNING_SECRET"),
		},
		ProjectID: optionalEnv("GCP_PROJECT"),
	}
	return cfg
}

func optionalEnvDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
