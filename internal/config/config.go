// Package config handles citeflow configuration and tunables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Confidence holds the per-type detection confidence scores. They are
// tunable so a corpus with unusual sources (say, heavy on oral histories)
// can reweigh the classifier without a rebuild.
type Confidence struct {
	Interview  float64 `yaml:"interview"`
	Legal      float64 `yaml:"legal"`
	Government float64 `yaml:"government"`
	Newspaper  float64 `yaml:"newspaper"`
	Medical    float64 `yaml:"medical"`
	Journal    float64 `yaml:"journal"`
	Book       float64 `yaml:"book"`
	URL        float64 `yaml:"url"`
}

// Config represents citeflow configuration stored in
// ~/.config/citeflow/config.yaml (or the path given via --config).
type Config struct {
	// DefaultStyle is the citation style used when a command does not
	// pass --style. One of: chicago, apa, mla, bluebook, oscola.
	DefaultStyle string `yaml:"default_style"`

	// MaxResults caps how many deduplicated results a search returns.
	MaxResults int `yaml:"max_results"`

	// ProviderTimeout bounds each individual provider call.
	ProviderTimeout time.Duration `yaml:"provider_timeout"`

	// AIThreshold is the classifier confidence below which the optional
	// AI classifier is consulted.
	AIThreshold float64 `yaml:"ai_threshold"`

	// AIModel names the model used by the AI classifier.
	AIModel string `yaml:"ai_model"`

	// CachePath points at the SQLite resolution cache. Empty disables
	// caching.
	CachePath string `yaml:"cache_path"`

	// CacheTTL bounds how long a cached resolution stays fresh.
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// FetchTitles enables the robots-respecting page-title fetch for
	// bare-URL citations.
	FetchTitles bool `yaml:"fetch_titles"`

	Confidence Confidence `yaml:"confidence"`
}

// ValidStyles lists the supported citation style names.
var ValidStyles = []string{"chicago", "apa", "mla", "bluebook", "oscola"}

// Default returns the built-in configuration. The confidence values are
// the calibrated defaults the classifier was tuned against.
func Default() *Config {
	return &Config{
		DefaultStyle:    "chicago",
		MaxResults:      5,
		ProviderTimeout: 10 * time.Second,
		AIThreshold:     0.5,
		AIModel:         "gpt-4o-mini",
		CacheTTL:        30 * 24 * time.Hour,
		FetchTitles:     false,
		Confidence: Confidence{
			Interview:  0.95,
			Legal:      0.9,
			Government: 0.95,
			Newspaper:  0.95,
			Medical:    0.8,
			Journal:    0.85,
			Book:       0.8,
			URL:        0.7,
		},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "citeflow", "config.yaml")
}

// Load reads configuration from path, layering the file over Default().
// A missing file is not an error: defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the resolver cannot run
// with.
func (c *Config) Validate() error {
	if c.DefaultStyle != "" && !validStyle(c.DefaultStyle) {
		return fmt.Errorf("invalid default_style: %s (valid: %v)", c.DefaultStyle, ValidStyles)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be at least 1, got %d", c.MaxResults)
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("provider_timeout must be positive, got %s", c.ProviderTimeout)
	}
	if c.AIThreshold < 0 || c.AIThreshold > 1 {
		return fmt.Errorf("ai_threshold must be in [0,1], got %g", c.AIThreshold)
	}
	for name, v := range map[string]float64{
		"interview":  c.Confidence.Interview,
		"legal":      c.Confidence.Legal,
		"government": c.Confidence.Government,
		"newspaper":  c.Confidence.Newspaper,
		"medical":    c.Confidence.Medical,
		"journal":    c.Confidence.Journal,
		"book":       c.Confidence.Book,
		"url":        c.Confidence.URL,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("confidence.%s must be in [0,1], got %g", name, v)
		}
	}
	return nil
}

func validStyle(s string) bool {
	for _, valid := range ValidStyles {
		if s == valid {
			return true
		}
	}
	return false
}
