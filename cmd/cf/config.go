package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/citeflow/citeflow/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  cf config                        # Show all config
  cf config default-style          # Get specific value
  cf config default-style apa      # Set value

Keys:
  default-style     Citation style used without --style
  max-results       Candidate cap for search
  provider-timeout  Per-provider search timeout (e.g. 10s)
  ai-threshold      Confidence below which the AI classifier runs
  ai-model          Model name for the AI classifier
  cache-path        SQLite resolution cache path (empty disables)
  cache-ttl         Cache entry lifetime (e.g. 720h)
  fetch-titles      Fetch page titles for bare-URL notes (true/false)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	// No args: show all config.
	if len(args) == 0 {
		if humanOutput {
			data, err := yaml.Marshal(cfg)
			if err != nil {
				exitWithError(ExitError, "encoding config: %v", err)
			}
			outputHuman("%s", data)
			return nil
		}
		return outputJSON(cfg)
	}

	key := args[0]

	// One arg: get a specific value.
	if len(args) == 1 {
		value, err := configValue(cfg, key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			outputHuman("%s\n", value)
			return nil
		}
		return outputJSON(map[string]string{key: value})
	}

	// Two args: set and save.
	if err := setConfigValue(cfg, key, args[1]); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	if err := cfg.Save(path); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("set %s = %s\n", key, args[1])
		return nil
	}
	return outputJSON(StatusResponse{Status: "updated", Path: path})
}

func configValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "default-style":
		return cfg.DefaultStyle, nil
	case "max-results":
		return strconv.Itoa(cfg.MaxResults), nil
	case "provider-timeout":
		return cfg.ProviderTimeout.String(), nil
	case "ai-threshold":
		return strconv.FormatFloat(cfg.AIThreshold, 'g', -1, 64), nil
	case "ai-model":
		return cfg.AIModel, nil
	case "cache-path":
		return cfg.CachePath, nil
	case "cache-ttl":
		return cfg.CacheTTL.String(), nil
	case "fetch-titles":
		return strconv.FormatBool(cfg.FetchTitles), nil
	}
	return "", fmt.Errorf("unknown configuration key: %s", key)
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "default-style":
		cfg.DefaultStyle = value
	case "max-results":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max-results must be an integer: %v", err)
		}
		cfg.MaxResults = n
	case "provider-timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("provider-timeout must be a duration: %v", err)
		}
		cfg.ProviderTimeout = d
	case "ai-threshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("ai-threshold must be a number: %v", err)
		}
		cfg.AIThreshold = f
	case "ai-model":
		cfg.AIModel = value
	case "cache-path":
		cfg.CachePath = value
	case "cache-ttl":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("cache-ttl must be a duration: %v", err)
		}
		cfg.CacheTTL = d
	case "fetch-titles":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("fetch-titles must be true or false: %v", err)
		}
		cfg.FetchTitles = b
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
