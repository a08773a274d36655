package main

import (
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/spf13/cobra"
)

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum candidates to return (default from config)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <note>",
	Short: "List candidate sources for a citation note",
	Long: `List candidate sources for a citation note.

The note is classified, enhanced into a targeted query, and searched
against the providers routed for its type. Results are deduplicated
across providers, earlier providers winning.

Examples:
  cf search "watson crick molecular structure nucleic acids"
  cf search --limit 10 "mukherjee emperor of all maladies"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

// SearchResponse is the JSON payload for the search command.
type SearchResponse struct {
	Query      string              `json:"query"`
	Type       citation.SourceType `json:"type"`
	Confidence float64             `json:"confidence"`
	Count      int                 `json:"count"`
	Candidates []citation.Record   `json:"candidates"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	limit := searchLimit
	if limit <= 0 {
		limit = cfg.MaxResults
	}

	p, cleanup := buildPipeline(cfg)
	defer cleanup()

	note := strings.Join(args, " ")
	res, candidates := p.Candidates(commandContext(cmd), note, limit)

	if humanOutput {
		outputHuman("%s (%.2f): %d candidate(s)\n\n", res.Type, res.Confidence, len(candidates))
		for i, rec := range candidates {
			outputHuman("%d. [%s] %s\n", i+1, rec.OriginProvider, truncateString(recordHeading(rec), SearchTitleMaxLen))
			if line := formatAuthorsShort(rec.Authors, 3); line != "" {
				outputHuman("   %s (%s)\n", line, rec.Year)
			}
			outputHuman("\n")
		}
		return nil
	}
	return outputJSON(SearchResponse{
		Query:      res.Query,
		Type:       res.Type,
		Confidence: res.Confidence,
		Count:      len(candidates),
		Candidates: candidates,
	})
}

// recordHeading picks the display line for a candidate: title for most
// types, case name for legal records, URL as a last resort.
func recordHeading(rec citation.Record) string {
	switch {
	case rec.CaseName != "":
		return rec.CaseName
	case rec.Title != "":
		return rec.Title
	default:
		return rec.URL
	}
}
