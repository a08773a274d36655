// Package main provides the cf CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

var (
	cfgFile   string
	styleFlag string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cf",
	Short: "Resolve rough citation notes into formatted citations",
	Long: `cf turns rough citation notes into fully formatted citations.

Each note is classified by source type (journal, book, legal case,
interview, and so on), enhanced into a targeted query, and resolved
against the academic, book, and legal databases appropriate for that
type. Repeated sources within a document are downgraded to ibid or
short form automatically.

All commands output JSON by default for easy integration with other
tools; pass --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initEnv)

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.config/citeflow/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&styleFlag, "style", "", "Citation style (chicago, apa, mla, bluebook, oscola)")
	rootCmd.Version = Version
}

// initEnv loads .env (for API keys) and binds CITEFLOW_* environment
// variables so they override config file values.
func initEnv() {
	_ = godotenv.Load()

	viper.SetEnvPrefix("CITEFLOW")
	viper.AutomaticEnv()

	if cfgFile == "" {
		cfgFile = viper.GetString("CONFIG")
	}
}

// apiKey returns a credential from the environment, preferring the
// CITEFLOW_-prefixed form.
func apiKey(name string) string {
	if v := viper.GetString(name); v != "" {
		return v
	}
	return os.Getenv(name)
}

// styleName resolves the effective citation style: --style flag first,
// then the configured default.
func styleName(defaultStyle string) string {
	if styleFlag != "" {
		return styleFlag
	}
	if defaultStyle != "" {
		return defaultStyle
	}
	return "chicago"
}

// verbosef logs progress to stderr in human mode only.
func verbosef(format string, args ...interface{}) {
	if humanOutput {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
