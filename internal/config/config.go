// Package config loads the matchday configuration from a YAML file layered
// over built-in defaults. Every option the tool recognizes lives here; no
// other package reads files or environment variables for configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for a matchday run.
type Config struct {
	// Fixtures page
	FixturesURL string `yaml:"fixtures_url"`
	TeamName    string `yaml:"team_name"`

	// Local files
	ContactsFile string `yaml:"contacts_file"`
	TemplateFile string `yaml:"template_file"`
	MapImagePath string `yaml:"map_image_path"`
	MapLink      string `yaml:"map_link"`

	// Email
	CCEmails      string `yaml:"cc_emails"` // comma-separated
	SubjectFormat string `yaml:"subject_format"`

	// Gmail OAuth2
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`

	// Local LLM fallback
	OllamaBaseURL        string `yaml:"ollama_base_url"`
	OllamaModel          string `yaml:"ollama_model"`
	OllamaTimeoutSeconds int    `yaml:"ollama_timeout_seconds"`

	// HTTP
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	UserAgent             string `yaml:"user_agent"`

	// Scheduling reference: invitations are intended to go out on SendDay
	// (the one strictly before the game) at SendHour local time. Games
	// falling on AwayDay are away fixtures and are skipped entirely.
	SendDay  string `yaml:"send_day"`
	SendHour int    `yaml:"send_hour"`
	AwayDay  string `yaml:"away_day"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration baseline.
func Default() *Config {
	return &Config{
		FixturesURL:           "https://cricclubs.com/NJSBCL/fixtures.do?league=56&teamId=3264&internalClubId=null&year=2025&clubId=2690",
		TeamName:              "SPARTA XI",
		ContactsFile:          "contacts.txt",
		TemplateFile:          "email_template.html",
		MapImagePath:          "assets/ground_map.jpg",
		MapLink:               "https://maps.app.goo.gl/6sYdMjgKkR1ZCMya9",
		SubjectFormat:         "SPARTA XI VS {OPPONENT_TEAM}",
		CredentialsFile:       "credentials.json",
		TokenFile:             "token.json",
		OllamaBaseURL:         "http://localhost:11434",
		OllamaModel:           "gemma3:4b",
		OllamaTimeoutSeconds:  60,
		RequestTimeoutSeconds: 60,
		UserAgent:             "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		SendDay:               "Tuesday",
		SendHour:              19,
		AwayDay:               "Saturday",
		LogLevel:              "INFO",
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error; the defaults apply unchanged. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that required options are present and well-formed.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.FixturesURL) == "" {
		return fmt.Errorf("fixtures_url is required")
	}
	if strings.TrimSpace(c.TeamName) == "" {
		return fmt.Errorf("team_name is required")
	}
	if _, err := ParseWeekday(c.SendDay); err != nil {
		return fmt.Errorf("send_day: %w", err)
	}
	if _, err := ParseWeekday(c.AwayDay); err != nil {
		return fmt.Errorf("away_day: %w", err)
	}
	if c.SendHour < 0 || c.SendHour > 23 {
		return fmt.Errorf("send_hour must be between 0 and 23, got %d", c.SendHour)
	}
	return nil
}

// CCList returns the configured CC addresses with whitespace trimmed and
// empty entries dropped.
func (c *Config) CCList() []string {
	if strings.TrimSpace(c.CCEmails) == "" {
		return nil
	}
	var out []string
	for _, addr := range strings.Split(c.CCEmails, ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// RequestTimeout returns the outbound HTTP deadline as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// OllamaTimeout returns the LLM call deadline as a duration.
func (c *Config) OllamaTimeout() time.Duration {
	return time.Duration(c.OllamaTimeoutSeconds) * time.Second
}

// SendWeekday returns the parsed send_day. Call Validate first.
func (c *Config) SendWeekday() time.Weekday {
	d, _ := ParseWeekday(c.SendDay)
	return d
}

// AwayWeekday returns the parsed away_day. Call Validate first.
func (c *Config) AwayWeekday() time.Weekday {
	d, _ := ParseWeekday(c.AwayDay)
	return d
}

// ParseWeekday converts a weekday name ("Tuesday") to a time.Weekday.
// Matching is case-insensitive.
func ParseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(name, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}
