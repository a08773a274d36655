package main

import (
	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/export"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Resolve notes and export them as BibTeX",
	Long: `Resolve notes and export them as BibTeX.

Notes are read one per line from the file, or from stdin when no file
is given. Each resolved note becomes one BibTeX entry; duplicate
sources are exported once. Unresolved notes are reported on stderr and
skipped.

Examples:
  cf export footnotes.txt > refs.bib
  cat notes.txt | cf export`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	notes, err := readNotes(args)
	if err != nil {
		exitWithError(ExitError, "reading notes: %v", err)
	}
	if len(notes) == 0 {
		exitWithError(ExitError, "no notes to export")
	}

	p, cleanup := buildPipeline(cfg)
	defer cleanup()

	ctx := commandContext(cmd)
	seen := make(map[citation.SourceKey]bool)
	var recs []citation.Record
	for _, note := range notes {
		_, rec := p.Resolve(ctx, note)
		if rec == nil {
			verbosef("unresolved: %s", note)
			continue
		}
		key := rec.Key()
		if !key.IsZero() && seen[key] {
			continue
		}
		seen[key] = true
		recs = append(recs, *rec)
	}

	if len(recs) == 0 {
		exitWithError(ExitNotFound, "no notes could be resolved")
	}
	outputHuman("%s", export.ToBibTeXList(recs))
	return nil
}
