package main

import (
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(citeCmd)
}

var citeCmd = &cobra.Command{
	Use:   "cite <note>",
	Short: "Resolve one note into a formatted citation",
	Long: `Resolve one note into a formatted citation.

The note is classified, searched, and rendered in full in the chosen
style. For ibid and short-form handling across a document, use
"cf notes" instead.

Examples:
  cf cite "loving v virginia 388 U.S. 1"
  cf cite --style apa "kuhn structure of scientific revolutions"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCite,
}

// CiteResponse is the JSON payload for the cite command.
type CiteResponse struct {
	Input    string              `json:"input"`
	Type     citation.SourceType `json:"type"`
	Style    string              `json:"style"`
	Rendered string              `json:"rendered"`
	Record   *citation.Record    `json:"record"`
}

func runCite(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	style := styleName(cfg.DefaultStyle)

	p, cleanup := buildPipeline(cfg)
	defer cleanup()

	note := strings.Join(args, " ")
	results, err := p.Run(commandContext(cmd), []string{note}, style)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	r := results[0]
	if !r.Resolved {
		exitWithError(ExitNotFound, "no source found for %q", note)
	}

	if humanOutput {
		outputHuman("%s\n", plainText(r.Rendered))
		return nil
	}
	return outputJSON(CiteResponse{
		Input:    note,
		Type:     r.Type,
		Style:    style,
		Rendered: r.Rendered,
		Record:   r.Record,
	})
}
