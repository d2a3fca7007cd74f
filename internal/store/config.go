package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"navedit-cli/internal/nav"
)

// Config holds user-level settings for the editor.
type Config struct {
	// APIBaseURL is the admin API root (e.g. "https://shop.example.com/api").
	APIBaseURL string `json:"apiBaseUrl,omitempty"`
	// APIToken is attached as a bearer token when set.
	APIToken string `json:"apiToken,omitempty"`

	// MaxDepth overrides the default menu nesting limit when > 0.
	MaxDepth int `json:"maxDepth,omitempty"`

	// PreviewDebounceMs tunes the dynamic-link preview debounce window.
	PreviewDebounceMs int `json:"previewDebounceMs,omitempty"`
}

// EffectiveMaxDepth resolves the configured depth limit.
func (c Config) EffectiveMaxDepth() int {
	if c.MaxDepth > 0 {
		return c.MaxDepth
	}
	return nav.MaxDepth
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.navedit).
	if v := strings.TrimSpace(os.Getenv("NAVEDIT_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".navedit"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig reads the config file; a missing file yields a zero Config.
func LoadConfig() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func SaveConfig(cfg Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "config.json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
