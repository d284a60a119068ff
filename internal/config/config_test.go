package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkhas/planning-poker/internal/config"
)

func TestMustLoadPathAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: dev\n"), 0o600))

	cfg := config.MustLoadPath(path)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.NotEmpty(t, cfg.HTTP.AllowedOrigins)
	assert.NotEmpty(t, cfg.Session.Secret)
	assert.Contains(t, cfg.Poker.Deck, "?")
	assert.Contains(t, cfg.Poker.Deck, "13")
}

func TestMustLoadPathReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
env: prod
http:
  address: ":9090"
poker:
  deck: ["S", "M", "L"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := config.MustLoadPath(path)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, []string{"S", "M", "L"}, cfg.Poker.Deck)
}
