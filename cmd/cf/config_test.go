package main

import (
	"testing"
	"time"

	"github.com/citeflow/citeflow/internal/config"
)

func TestConfigValueRoundTrip(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		key   string
		value string
	}{
		{"default-style", "apa"},
		{"max-results", "10"},
		{"provider-timeout", "15s"},
		{"ai-threshold", "0.7"},
		{"ai-model", "gpt-4o"},
		{"cache-path", "/tmp/cf.db"},
		{"cache-ttl", "720h0m0s"},
		{"fetch-titles", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := setConfigValue(cfg, tt.key, tt.value); err != nil {
				t.Fatalf("setConfigValue(%s) error = %v", tt.key, err)
			}
			got, err := configValue(cfg, tt.key)
			if err != nil {
				t.Fatalf("configValue(%s) error = %v", tt.key, err)
			}
			if got != tt.value {
				t.Errorf("configValue(%s) = %q, want %q", tt.key, got, tt.value)
			}
		})
	}
}

func TestSetConfigValueRejectsBadInput(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		key   string
		value string
	}{
		{"max-results", "lots"},
		{"provider-timeout", "soon"},
		{"ai-threshold", "high"},
		{"fetch-titles", "maybe"},
		{"no-such-key", "x"},
	}
	for _, tt := range tests {
		if err := setConfigValue(cfg, tt.key, tt.value); err == nil {
			t.Errorf("setConfigValue(%s, %s) accepted bad input", tt.key, tt.value)
		}
	}
}

func TestSetThenValidate(t *testing.T) {
	cfg := config.Default()
	if err := setConfigValue(cfg, "provider-timeout", "-5s"); err != nil {
		t.Fatalf("setConfigValue error = %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted a negative provider timeout")
	}

	cfg.ProviderTimeout = 10 * time.Second
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
