package main

import (
	"github.com/citeflow/citeflow/internal/ai"
	"github.com/citeflow/citeflow/internal/classify"
	"github.com/citeflow/citeflow/internal/config"
	"github.com/citeflow/citeflow/internal/extract"
	"github.com/citeflow/citeflow/internal/fetch"
	"github.com/citeflow/citeflow/internal/format"
	"github.com/citeflow/citeflow/internal/pipeline"
	"github.com/citeflow/citeflow/internal/provider"
	"github.com/citeflow/citeflow/internal/provider/academic"
	"github.com/citeflow/citeflow/internal/provider/books"
	"github.com/citeflow/citeflow/internal/provider/legal"
	"github.com/citeflow/citeflow/internal/search"
	"github.com/citeflow/citeflow/internal/store"
)

// mustLoadConfig loads configuration or exits with ExitConfigError.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// buildRegistry assembles every search provider, passing API keys from
// the environment where a provider accepts one.
func buildRegistry(cfg *config.Config) *provider.Registry {
	var s2Opts []academic.S2Option
	if key := apiKey("S2_API_KEY"); key != "" {
		s2Opts = append(s2Opts, academic.WithS2APIKey(key))
	}
	var pmOpts []academic.PubMedOption
	if key := apiKey("NCBI_API_KEY"); key != "" {
		pmOpts = append(pmOpts, academic.WithPubMedAPIKey(key))
	}
	var clOpts []legal.CourtListenerOption
	if key := apiKey("COURTLISTENER_API_TOKEN"); key != "" {
		clOpts = append(clOpts, legal.WithCourtListenerAPIKey(key))
	}

	var fetcher extract.TitleFetcher
	if cfg.FetchTitles {
		fetcher = fetch.NewTitler()
	}

	return provider.NewRegistry(
		academic.NewCrossref(),
		academic.NewOpenAlex(),
		academic.NewSemanticScholar(s2Opts...),
		academic.NewPubMed(pmOpts...),
		books.NewGoogleBooks(),
		books.NewOpenLibrary(),
		legal.NewComposite(legal.NewCourtListener(clOpts...)),
		extract.NewInterview(),
		extract.NewNewspaper(),
		extract.NewGovernment(),
		extract.NewURL(fetcher),
	)
}

// buildPipeline wires the full resolution pipeline from configuration.
// The returned cleanup closes the cache database, if one was opened.
func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, func()) {
	orch := search.New(buildRegistry(cfg), search.WithProviderTimeout(cfg.ProviderTimeout))

	var opts []pipeline.Option
	cleanup := func() {}

	if cfg.CachePath != "" {
		st, err := store.Open(cfg.CachePath)
		if err != nil {
			verbosef("cache unavailable: %v", err)
		} else {
			st.Purge(cfg.CacheTTL) // expired entries don't serve stale hits
			opts = append(opts, pipeline.WithCache(st))
			cleanup = func() { st.Close() }
		}
	}

	if key := apiKey("OPENAI_API_KEY"); key != "" {
		refiner, err := ai.NewOpenAI(key, ai.WithModel(cfg.AIModel))
		if err != nil {
			verbosef("AI classifier unavailable: %v", err)
		} else {
			opts = append(opts, pipeline.WithRefiner(refiner, cfg.AIThreshold))
		}
	}

	p := pipeline.New(classify.New(cfg.Confidence), orch, format.NewRegistry(), opts...)
	return p, cleanup
}
