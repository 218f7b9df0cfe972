package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/lumen/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LUMEN_USER_ID", "")
	t.Setenv("LUMEN_GEMINI_API_KEY", "")
	t.Setenv("LUMEN_GCP_PROJECT", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.ModelName)
	assert.Equal(t, "us-central1", cfg.GCPLocation)
	assert.Equal(t, ".lumen", cfg.DataDir)
	assert.True(t, cfg.NotificationsGranted)
}

func TestFirestoreProjectFallsBackToGCPProject(t *testing.T) {
	t.Setenv("LUMEN_GCP_PROJECT", "my-project")
	t.Setenv("LUMEN_FIRESTORE_PROJECT", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "my-project", cfg.FirestoreProject)
}

func TestValidateGuestNeedsOnlyAModel(t *testing.T) {
	cfg := &config.Config{UseMockLLM: true}
	assert.NoError(t, cfg.Validate(true))

	cfg = &config.Config{}
	assert.Error(t, cfg.Validate(true), "guest without model credentials or mock")
}

func TestValidateSignedInNeedsFirestore(t *testing.T) {
	cfg := &config.Config{UseMockLLM: true}
	assert.Error(t, cfg.Validate(false))

	cfg = &config.Config{UseMockLLM: true, FirestoreProject: "p"}
	assert.NoError(t, cfg.Validate(false))
}
