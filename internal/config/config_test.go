package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultStyle != "chicago" {
		t.Errorf("DefaultStyle = %q, want chicago", cfg.DefaultStyle)
	}
	if cfg.Confidence.Interview != 0.95 {
		t.Errorf("Confidence.Interview = %g, want 0.95", cfg.Confidence.Interview)
	}
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "default_style: apa\nconfidence:\n  journal: 0.6\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultStyle != "apa" {
		t.Errorf("DefaultStyle = %q, want apa", cfg.DefaultStyle)
	}
	if cfg.Confidence.Journal != 0.6 {
		t.Errorf("Confidence.Journal = %g, want 0.6", cfg.Confidence.Journal)
	}
	// Untouched fields keep defaults.
	if cfg.Confidence.Legal != 0.9 {
		t.Errorf("Confidence.Legal = %g, want 0.9", cfg.Confidence.Legal)
	}
	if cfg.ProviderTimeout != 10*time.Second {
		t.Errorf("ProviderTimeout = %s, want 10s", cfg.ProviderTimeout)
	}
}

func TestLoadRejectsInvalidStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("default_style: harvard\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.DefaultStyle = "mla"
	cfg.MaxResults = 3

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.DefaultStyle != "mla" || got.MaxResults != 3 {
		t.Errorf("round trip lost values: style=%q max=%d", got.DefaultStyle, got.MaxResults)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults valid", func(c *Config) {}, true},
		{"zero max results", func(c *Config) { c.MaxResults = 0 }, false},
		{"negative timeout", func(c *Config) { c.ProviderTimeout = -time.Second }, false},
		{"threshold above one", func(c *Config) { c.AIThreshold = 1.5 }, false},
		{"confidence above one", func(c *Config) { c.Confidence.Book = 2 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() error = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
