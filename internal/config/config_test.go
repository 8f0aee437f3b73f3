package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Mail.Account != "default" {
		t.Errorf("Mail.Account = %q, want %q", cfg.Mail.Account, "default")
	}
	if cfg.Mail.MaxResults != 10 {
		t.Errorf("Mail.MaxResults = %d, want 10", cfg.Mail.MaxResults)
	}
	if cfg.Calendar.CalendarID != "primary" {
		t.Errorf("Calendar.CalendarID = %q, want %q", cfg.Calendar.CalendarID, "primary")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
mail:
  account: work
  max_results: 25
calendar:
  calendar_id: team@example.com
  time_zone: Europe/Berlin
slack:
  token: xoxb-from-file
  channel: assistant
llm:
  endpoint: http://inference:8000
  model: mistral
  max_tokens: 256
  temperature: 0.5
store:
  path: /tmp/assistant.db
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Mail.Account != "work" {
		t.Errorf("Mail.Account = %q, want %q", cfg.Mail.Account, "work")
	}
	if cfg.Mail.MaxResults != 25 {
		t.Errorf("Mail.MaxResults = %d, want 25", cfg.Mail.MaxResults)
	}
	if cfg.Calendar.TimeZone != "Europe/Berlin" {
		t.Errorf("Calendar.TimeZone = %q", cfg.Calendar.TimeZone)
	}
	if cfg.Slack.Token != "xoxb-from-file" {
		t.Errorf("Slack.Token = %q", cfg.Slack.Token)
	}
	if cfg.LLM.Model != "mistral" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if cfg.Store.Path != "/tmp/assistant.db" {
		t.Errorf("Store.Path = %q", cfg.Store.Path)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("mail: [not a map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("slack:\n  token: from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvSlackToken, "from-env")
	t.Setenv(EnvSearchAPIKey, "key-env")
	t.Setenv(EnvSearchEngine, "cx-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Slack.Token != "from-env" {
		t.Errorf("Slack.Token = %q, want env override", cfg.Slack.Token)
	}
	if !cfg.SearchConfigured() {
		t.Error("SearchConfigured() = false with both env vars set")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero max results", func(c *Config) { c.Mail.MaxResults = 0 }, true},
		{"empty calendar id", func(c *Config) { c.Calendar.CalendarID = "" }, true},
		{"zero max tokens", func(c *Config) { c.LLM.MaxTokens = 0 }, true},
		{"temperature out of range", func(c *Config) { c.LLM.Temperature = 3 }, true},
		{"empty store path", func(c *Config) { c.Store.Path = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCapabilityPredicates(t *testing.T) {
	cfg := Default()
	if cfg.SearchConfigured() {
		t.Error("SearchConfigured() = true without credentials")
	}
	if cfg.SlackConfigured() {
		t.Error("SlackConfigured() = true without token")
	}

	cfg.Search.APIKey = "k"
	if cfg.SearchConfigured() {
		t.Error("SearchConfigured() should require both key and engine id")
	}
	cfg.Search.EngineID = "cx"
	if !cfg.SearchConfigured() {
		t.Error("SearchConfigured() = false with both set")
	}
}
