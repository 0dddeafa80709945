package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Config is the locally persisted client state: where the backend
// lives and the bearer token from the last login. Stored as JSON in
// the user's home directory with owner-only permissions.
type Config struct {
	ServerURL string `json:"server_url,omitempty"`
	Token     string `json:"token,omitempty"`
	Username  string `json:"username,omitempty"`
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".spctl.json"), nil
}

// LoadConfig reads the config file. A missing file is not an error;
// it yields an empty config so first runs work without setup.
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveConfig writes the config file with 0600 perms (it holds the token).
func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Session adapts the stored config to the API client's session
// interface. Invalidation clears the persisted token, so an expired
// credential is dropped once and every surface sees the logout.
type Session struct {
	mu  sync.Mutex
	cfg *Config
}

// NewSession wraps a loaded config.
func NewSession(cfg *Config) *Session {
	return &Session{cfg: cfg}
}

// Token returns the stored bearer token, empty when logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Token
}

// Invalidate drops the stored credential and persists the change.
// Persisting is best effort: a read-only home directory still logs the
// user out for this process.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.Token == "" {
		return
	}
	s.cfg.Token = ""
	s.cfg.Username = ""
	_ = SaveConfig(s.cfg)
}

// Username returns the username recorded at login.
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Username
}
