package main

import (
	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/format"
	"github.com/citeflow/citeflow/internal/pdfdoi"
	"github.com/citeflow/citeflow/internal/provider"
	"github.com/citeflow/citeflow/internal/provider/academic"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pdfCmd)
}

var pdfCmd = &cobra.Command{
	Use:   "pdf <file.pdf>",
	Short: "Resolve a PDF to a citation via its DOI",
	Long: `Resolve a PDF to a citation via its DOI.

The first pages are scanned for a DOI, which is resolved through
Crossref. When no DOI is present, the extracted title is searched
instead.

Examples:
  cf pdf paper.pdf
  cf pdf --style apa paper.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runPDF,
}

// PDFResponse is the JSON payload for the pdf command.
type PDFResponse struct {
	Path     string           `json:"path"`
	DOI      string           `json:"doi,omitempty"`
	Style    string           `json:"style"`
	Rendered string           `json:"rendered"`
	Record   *citation.Record `json:"record"`
}

func runPDF(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	style := styleName(cfg.DefaultStyle)

	formats := format.NewRegistry()
	formatter, ok := formats.Get(style)
	if !ok {
		exitWithError(ExitConfigError, "unknown style %q (valid: %v)", style, formats.Names())
	}

	crossref := academic.NewCrossref()
	resolver := pdfdoi.NewResolver(crossref, crossref)

	path := args[0]
	rec, err := resolver.Resolve(commandContext(cmd), path)
	if provider.IsNotFound(err) {
		exitWithError(ExitNotFound, "no DOI or matching title found in %s", path)
	}
	if err != nil {
		exitWithError(ExitError, "resolving %s: %v", path, err)
	}

	rendered := formatter.Format(rec)
	if humanOutput {
		outputHuman("%s\n", plainText(rendered))
		return nil
	}
	return outputJSON(PDFResponse{
		Path:     path,
		DOI:      rec.DOI,
		Style:    style,
		Rendered: rendered,
		Record:   rec,
	})
}
