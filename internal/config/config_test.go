package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
api_base_url: https://api.example.com
profile_skills: [Go, PostgreSQL]
search:
  location: Berlin
  ai_matching: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("HIRELOOP_API_URL", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, cfg.ProfileSkills)
	assert.True(t, cfg.Search.AIMatching)
	assert.Equal(t, 5*time.Second, cfg.MessagePollInterval.Std())
	assert.Equal(t, "@every 15m", cfg.DiscoverySpec)

	t.Setenv("HIRELOOP_API_URL", "https://staging.example.com")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", cfg.APIBaseURL)
}

func TestLoadRequiresBaseURL(t *testing.T) {
	t.Setenv("HIRELOOP_API_URL", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadTelegramMustBePaired(t *testing.T) {
	t.Setenv("HIRELOOP_API_URL", "https://api.example.com")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
