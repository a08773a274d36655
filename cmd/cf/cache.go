package main

import (
	"time"

	"github.com/citeflow/citeflow/internal/store"
	"github.com/spf13/cobra"
)

var purgeOlderThan time.Duration

func init() {
	cachePurgeCmd.Flags().DurationVar(&purgeOlderThan, "older-than", 0, "Only purge entries older than this (default: everything)")
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or purge the resolution cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache size and location",
	Args:  cobra.NoArgs,
	RunE:  runCacheInfo,
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete cached resolutions",
	Args:  cobra.NoArgs,
	RunE:  runCachePurge,
}

// CacheInfoResponse is the JSON payload for cache info.
type CacheInfoResponse struct {
	Path    string `json:"path"`
	Entries int    `json:"entries"`
}

// CachePurgeResponse is the JSON payload for cache purge.
type CachePurgeResponse struct {
	Path    string `json:"path"`
	Removed int64  `json:"removed"`
}

func openCache() (*store.Store, string) {
	cfg := mustLoadConfig()
	if cfg.CachePath == "" {
		exitWithError(ExitConfigError, "no cache configured (set cache-path)")
	}
	st, err := store.Open(cfg.CachePath)
	if err != nil {
		exitWithError(ExitError, "opening cache: %v", err)
	}
	return st, cfg.CachePath
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	st, path := openCache()
	defer st.Close()

	n, err := st.Len()
	if err != nil {
		exitWithError(ExitError, "reading cache: %v", err)
	}

	if humanOutput {
		outputHuman("%s: %d entries\n", path, n)
		return nil
	}
	return outputJSON(CacheInfoResponse{Path: path, Entries: n})
}

func runCachePurge(cmd *cobra.Command, args []string) error {
	st, path := openCache()
	defer st.Close()

	// Zero means purge everything: a cutoff in the future catches all
	// entries.
	olderThan := purgeOlderThan
	if olderThan == 0 {
		olderThan = -time.Hour
	}
	removed, err := st.Purge(olderThan)
	if err != nil {
		exitWithError(ExitError, "purging cache: %v", err)
	}

	if humanOutput {
		outputHuman("removed %d entries from %s\n", removed, path)
		return nil
	}
	return outputJSON(CachePurgeResponse{Path: path, Removed: removed})
}
