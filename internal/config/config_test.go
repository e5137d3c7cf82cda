package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	def := Default()
	if cfg.TeamName != def.TeamName {
		t.Errorf("TeamName = %q, want default %q", cfg.TeamName, def.TeamName)
	}
	if cfg.SendWeekday() != time.Tuesday {
		t.Errorf("SendWeekday() = %v, want Tuesday", cfg.SendWeekday())
	}
	if cfg.AwayWeekday() != time.Saturday {
		t.Errorf("AwayWeekday() = %v, want Saturday", cfg.AwayWeekday())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matchday.yaml")
	content := `
team_name: "Rivals CC"
fixtures_url: "https://example.com/fixtures"
cc_emails: "a@example.com, b@example.com,"
send_hour: 9
request_timeout_seconds: 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TeamName != "Rivals CC" {
		t.Errorf("TeamName = %q, want %q", cfg.TeamName, "Rivals CC")
	}
	if cfg.FixturesURL != "https://example.com/fixtures" {
		t.Errorf("FixturesURL = %q", cfg.FixturesURL)
	}
	// Untouched options keep their defaults
	if cfg.OllamaModel != Default().OllamaModel {
		t.Errorf("OllamaModel = %q, want default", cfg.OllamaModel)
	}
	if cfg.RequestTimeout() != 5*time.Second {
		t.Errorf("RequestTimeout() = %v, want 5s", cfg.RequestTimeout())
	}

	want := []string{"a@example.com", "b@example.com"}
	if got := cfg.CCList(); !reflect.DeepEqual(got, want) {
		t.Errorf("CCList() = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty team name", func(c *Config) { c.TeamName = " " }, true},
		{"empty fixtures URL", func(c *Config) { c.FixturesURL = "" }, true},
		{"bad send day", func(c *Config) { c.SendDay = "Someday" }, true},
		{"bad away day", func(c *Config) { c.AwayDay = "" }, true},
		{"send hour out of range", func(c *Config) { c.SendHour = 24 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCCListEmpty(t *testing.T) {
	cfg := Default()
	cfg.CCEmails = "  "
	if got := cfg.CCList(); got != nil {
		t.Errorf("CCList() = %v, want nil", got)
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"Sunday", time.Sunday, false},
		{"tuesday", time.Tuesday, false},
		{"SATURDAY", time.Saturday, false},
		{"Funday", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseWeekday(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWeekday(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseWeekday(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
