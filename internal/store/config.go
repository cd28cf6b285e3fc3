package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"checkin-cli/internal/model"
)

// GlobalConfig lives at ~/.checkin/config.json. It carries the remote store
// endpoint, the saved session, and TUI preferences.
type GlobalConfig struct {
	// RemoteURL is the hosted backend base URL (empty: local-only mode).
	RemoteURL string `json:"remoteUrl,omitempty"`
	// RemoteKey is the backend's public (anon) API key.
	RemoteKey string `json:"remoteKey,omitempty"`

	// Session is the saved authenticated session, if any.
	Session *model.Session `json:"session,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`

	// GradeScale overrides the grade calculator's built-in letter scale.
	// Empty means the default scale applies.
	GradeScale map[string]float64 `json:"gradeScale,omitempty"`
}

type TUIConfig struct {
	// DarkMode forces the dark palette on (true) or off (false). When unset
	// the terminal background decides.
	DarkMode *bool `json:"darkMode,omitempty"`

	// Orientation is the preferred planner layout ("vertical", "horizontal").
	Orientation string `json:"orientation,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.checkin).
	if v := strings.TrimSpace(os.Getenv("CHECKIN_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".checkin"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig reads the global config. A missing file yields an empty config.
func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &GlobalConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes the global config, creating the directory if needed.
func SaveConfig(cfg *GlobalConfig) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// ResolveRemote returns the remote endpoint, preferring environment
// overrides (CHECKIN_REMOTE_URL / CHECKIN_REMOTE_KEY) over the config file.
func (c *GlobalConfig) ResolveRemote() (url, key string) {
	url = strings.TrimSpace(os.Getenv("CHECKIN_REMOTE_URL"))
	key = strings.TrimSpace(os.Getenv("CHECKIN_REMOTE_KEY"))
	if url == "" && c != nil {
		url = strings.TrimSpace(c.RemoteURL)
	}
	if key == "" && c != nil {
		key = strings.TrimSpace(c.RemoteKey)
	}
	return url, key
}
