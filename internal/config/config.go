// Package config loads the inboxpilot configuration file.
//
// Configuration lives in a YAML file (default
// ~/.config/inboxpilot/config.yaml). Secrets may be supplied or overridden
// through environment variables so that the file can be committed without
// credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variable overrides for secrets.
const (
	EnvSlackToken    = "SLACK_API_TOKEN"
	EnvSearchAPIKey  = "SEARCH_API_KEY"
	EnvSearchEngine  = "SEARCH_ENGINE_ID"
	EnvModelEndpoint = "LLM_ENDPOINT"
)

// MailConfig configures the mail capability.
type MailConfig struct {
	// Account is the named Google account whose cached token is used.
	Account string `yaml:"account"`

	// MaxResults bounds how many messages a refresh pulls.
	MaxResults int64 `yaml:"max_results"`
}

// CalendarConfig configures the calendar capability.
type CalendarConfig struct {
	// CalendarID is the target calendar ("primary" by default).
	CalendarID string `yaml:"calendar_id"`

	// TimeZone is the IANA zone used for created events.
	TimeZone string `yaml:"time_zone"`
}

// SearchConfig configures the web-search capability.
type SearchConfig struct {
	APIKey   string `yaml:"api_key"`
	EngineID string `yaml:"engine_id"`
}

// SlackConfig configures the chat-notification capability.
type SlackConfig struct {
	Token   string `yaml:"token"`
	Channel string `yaml:"channel"`
}

// LLMConfig configures the text-generation capability.
type LLMConfig struct {
	// Endpoint is the base URL of an OpenAI-compatible completion server.
	Endpoint string `yaml:"endpoint"`

	// Model is the model identifier passed to the completion endpoint.
	Model string `yaml:"model"`

	// MaxTokens bounds the generated completion length.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature controls sampling randomness.
	Temperature float64 `yaml:"temperature"`
}

// StoreConfig configures the record store.
type StoreConfig struct {
	// Path is the SQLite database file location.
	Path string `yaml:"path"`
}

// Config is the root configuration for inboxpilot.
type Config struct {
	Mail     MailConfig     `yaml:"mail"`
	Calendar CalendarConfig `yaml:"calendar"`
	Search   SearchConfig   `yaml:"search"`
	Slack    SlackConfig    `yaml:"slack"`
	LLM      LLMConfig      `yaml:"llm"`
	Store    StoreConfig    `yaml:"store"`
}

// Default returns a Config with sensible defaults for every field that has
// one. Credentials default to empty and must come from the file or the
// environment.
func Default() Config {
	return Config{
		Mail: MailConfig{
			Account:    "default",
			MaxResults: 10,
		},
		Calendar: CalendarConfig{
			CalendarID: "primary",
			TimeZone:   "UTC",
		},
		Slack: SlackConfig{
			Channel: "email-notifications",
		},
		LLM: LLMConfig{
			Endpoint:    "http://localhost:8000",
			Model:       "phi-3-mini-4k-instruct",
			MaxTokens:   512,
			Temperature: 0.7,
		},
		Store: StoreConfig{
			Path: defaultStorePath(),
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// Load reads the configuration file at path, applies defaults for absent
// fields, and overlays environment variables. A missing file is not an
// error; the defaults plus environment are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults plus environment only.
	case err != nil:
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays secret values from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSlackToken); v != "" {
		c.Slack.Token = v
	}
	if v := os.Getenv(EnvSearchAPIKey); v != "" {
		c.Search.APIKey = v
	}
	if v := os.Getenv(EnvSearchEngine); v != "" {
		c.Search.EngineID = v
	}
	if v := os.Getenv(EnvModelEndpoint); v != "" {
		c.LLM.Endpoint = v
	}
}

// Validate checks that the configuration is internally consistent. It does
// not require optional capability credentials to be present; a capability
// without credentials simply starts unavailable.
func (c *Config) Validate() error {
	if c.Mail.MaxResults <= 0 {
		return fmt.Errorf("mail.max_results must be positive, got %d", c.Mail.MaxResults)
	}
	if c.Calendar.CalendarID == "" {
		return fmt.Errorf("calendar.calendar_id must not be empty")
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2, got %f", c.LLM.Temperature)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	return nil
}

// SearchConfigured reports whether the search capability has credentials.
func (c *Config) SearchConfigured() bool {
	return c.Search.APIKey != "" && c.Search.EngineID != ""
}

// SlackConfigured reports whether the chat capability has credentials.
func (c *Config) SlackConfigured() bool {
	return c.Slack.Token != ""
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "inboxpilot")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "inboxpilot"
	}
	return filepath.Join(home, ".config", "inboxpilot")
}

func defaultStorePath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "inboxpilot", "inboxpilot.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "inboxpilot.db"
	}
	return filepath.Join(home, ".local", "share", "inboxpilot", "inboxpilot.db")
}
