package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is built from LUMEN_* environment variables.
type Config struct {
	// Identity of the active user. Empty means guest mode.
	UserID string `env:"LUMEN_USER_ID"`

	// Gemini access: either an API key (Gemini API backend) or a GCP
	// project/location pair (Vertex backend).
	GeminiAPIKey string `env:"LUMEN_GEMINI_API_KEY"`
	GCPProjectID string `env:"LUMEN_GCP_PROJECT"`
	GCPLocation  string `env:"LUMEN_GCP_LOCATION" envDefault:"us-central1"`
	ModelName    string `env:"LUMEN_MODEL_NAME" envDefault:"gemini-2.5-flash"`

	// Firestore project for the remote backend. Defaults to GCPProjectID.
	FirestoreProject string `env:"LUMEN_FIRESTORE_PROJECT"`

	// DataDir holds the device-local key-value store used by guest mode.
	DataDir string `env:"LUMEN_DATA_DIR" envDefault:".lumen"`

	UseMockLLM bool `env:"LUMEN_USE_MOCK_LLM"`

	// NotificationsGranted mirrors the one-shot permission grant of the
	// notification surface. When false, reminders evaluate but never fire.
	NotificationsGranted bool `env:"LUMEN_NOTIFICATIONS" envDefault:"true"`

	LogLevel string `env:"LUMEN_LOG_LEVEL" envDefault:"info"`
}

// Load reads all env vars and builds the config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.FirestoreProject == "" {
		cfg.FirestoreProject = cfg.GCPProjectID
	}
	return cfg, nil
}

// Validate checks that the config can serve the chosen identity. A non-guest
// identity needs the remote store; guest mode needs nothing beyond DataDir.
func (c *Config) Validate(guest bool) error {
	if !guest && c.FirestoreProject == "" {
		return fmt.Errorf("LUMEN_FIRESTORE_PROJECT (or LUMEN_GCP_PROJECT) must be set for a signed-in user")
	}
	if !c.UseMockLLM && c.GeminiAPIKey == "" && c.GCPProjectID == "" {
		return fmt.Errorf("LUMEN_GEMINI_API_KEY or LUMEN_GCP_PROJECT must be set unless LUMEN_USE_MOCK_LLM=true")
	}
	return nil
}
