package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := &Config{
		ServerURL: "https://api.example.com",
		Token:     "secret-token",
		Username:  "mod",
	}
	require.NoError(t, SaveConfig(cfg))

	path, err := GetConfigPath()
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "config holds the token, must be owner-only")

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg, "first run starts from an empty config")
}

func TestSessionInvalidateClearsAndPersists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := &Config{ServerURL: "https://api.example.com", Token: "stale", Username: "mod"}
	require.NoError(t, SaveConfig(cfg))

	session := NewSession(cfg)
	assert.Equal(t, "stale", session.Token())

	session.Invalidate()
	assert.Empty(t, session.Token())
	assert.Empty(t, session.Username())

	// The logout survives a reload.
	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, loaded.Token)
	assert.Equal(t, "https://api.example.com", loaded.ServerURL, "server url is kept across logout")
}

func TestSessionInvalidateIdempotent(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	session := NewSession(&Config{})
	session.Invalidate()
	session.Invalidate()
	assert.Empty(t, session.Token())
}
