// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/cooldown"
	"github.com/javiermolinar/mitplan/internal/llm"
	"github.com/javiermolinar/mitplan/internal/timeline"
)

// Config holds the application configuration.
type Config struct {
	Planner PlannerConfig `toml:"planner"`
	LLM     LLMConfig     `toml:"llm"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// PlannerConfig holds the defaults for new plans.
type PlannerConfig struct {
	DefaultTimeline string            `toml:"default_timeline"` // built-in id or a .yaml/.toml path
	SnapThreshold   int               `toml:"snap_threshold"`   // seconds
	Party           map[string]string `toml:"party"`            // slot -> job id
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider   string `toml:"provider"` // "ollama", "openai", "lmstudio"
	Model      string `toml:"model"`
	BaseURL    string `toml:"base_url"`
	MaxRetries int    `toml:"max_retries"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // zerolog level name
	File  string `toml:"file"`  // empty logs to stderr
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Planner: PlannerConfig{
			DefaultTimeline: timeline.DefaultID,
			SnapThreshold:   cooldown.DefaultSnapThreshold,
			Party:           catalog.DefaultParty(),
		},
		LLM: LLMConfig{
			Provider:   llm.ProviderOllama,
			Model:      "llama3.1",
			BaseURL:    "http://localhost:11434",
			MaxRetries: 2,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mitplan.db"
	}
	return filepath.Join(home, ".local", "share", "mitplan", "mitplan.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "mitplan", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Planner.DefaultTimeline = expandPath(cfg.Planner.DefaultTimeline)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	// A party table in the file replaces the default party rather than merging into it.
	var probe struct {
		Planner struct {
			Party map[string]string `toml:"party"`
		} `toml:"planner"`
	}
	if err := toml.Unmarshal(data, &probe); err == nil && probe.Planner.Party != nil {
		cfg.Planner.Party = nil
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("MITPLAN_TIMELINE"); v != "" {
		cfg.Planner.DefaultTimeline = v
	}
	if v := os.Getenv("MITPLAN_SNAP_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MITPLAN_SNAP_THRESHOLD: %w", err)
		}
		cfg.Planner.SnapThreshold = n
	}
	if v := os.Getenv("MITPLAN_PARTY"); v != "" {
		party, err := catalog.ParseParty(v)
		if err != nil {
			return fmt.Errorf("MITPLAN_PARTY: %w", err)
		}
		cfg.Planner.Party = party
	}

	if v := os.Getenv("MITPLAN_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("MITPLAN_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("MITPLAN_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("MITPLAN_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("MITPLAN_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}

	if v := os.Getenv("MITPLAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("MITPLAN_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid. Party job ids are normalised.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Planner.DefaultTimeline) == "" {
		return errors.New("default_timeline must be set")
	}
	if c.Planner.SnapThreshold < 0 {
		return fmt.Errorf("snap_threshold cannot be negative, got %d", c.Planner.SnapThreshold)
	}

	cat, err := catalog.Load()
	if err != nil {
		return err
	}
	party := catalog.Party(c.Planner.Party)
	if err := party.Validate(cat); err != nil {
		return fmt.Errorf("party: %w", err)
	}

	if !validProvider(c.LLM.Provider) {
		return fmt.Errorf("unsupported llm provider %q (use one of %s)",
			c.LLM.Provider, strings.Join(llm.Providers(), ", "))
	}
	if c.LLM.MaxRetries < 0 {
		return errors.New("max_retries cannot be negative")
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}

func validProvider(provider string) bool {
	p := strings.ToLower(strings.TrimSpace(provider))
	if p == "" || p == "lm-studio" {
		return true
	}
	for _, known := range llm.Providers() {
		if p == known {
			return true
		}
	}
	return false
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
