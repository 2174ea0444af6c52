package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	DataDir       string
	Port          string
	Turso         TursoConfig
	Narrative     NarrativeConfig
	Slack         SlackConfig
	ProjectID     string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type NarrativeConfig struct {
	APIKey  string
	BaseURL string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
