package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/citeflow/citeflow/internal/pipeline"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(notesCmd)
}

var notesCmd = &cobra.Command{
	Use:   "notes [file]",
	Short: "Resolve a document's notes in order",
	Long: `Resolve a document's notes in order, with ibid and short-form
handling.

Notes are read one per line from the file, or from stdin when no file
is given. Blank lines are skipped. Repeated sources render as "ibid."
when consecutive and as a short form otherwise; a literal "ibid." line
repeats the previous source verbatim.

Examples:
  cf notes footnotes.txt
  cf notes --style bluebook brief.txt
  cat notes.txt | cf notes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNotes,
}

// NotesResponse is the JSON payload for the notes command.
type NotesResponse struct {
	Style    string            `json:"style"`
	Count    int               `json:"count"`
	Resolved int               `json:"resolved"`
	Results  []pipeline.Result `json:"results"`
}

func runNotes(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	style := styleName(cfg.DefaultStyle)

	notes, err := readNotes(args)
	if err != nil {
		exitWithError(ExitError, "reading notes: %v", err)
	}
	if len(notes) == 0 {
		exitWithError(ExitError, "no notes to resolve")
	}

	p, cleanup := buildPipeline(cfg)
	defer cleanup()

	results, err := p.Run(commandContext(cmd), notes, style)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	resolved := 0
	for _, r := range results {
		if r.Resolved {
			resolved++
		}
	}

	if humanOutput {
		for i, r := range results {
			if r.Err != "" {
				outputHuman("%d. [unresolved] %s (%s)\n", i+1, r.Input, r.Err)
				continue
			}
			outputHuman("%d. %s\n", i+1, plainText(r.Rendered))
		}
		outputHuman("\n%d/%d resolved\n", resolved, len(results))
		return nil
	}
	return outputJSON(NotesResponse{
		Style:    style,
		Count:    len(results),
		Resolved: resolved,
		Results:  results,
	})
}

// readNotes reads one note per line from the named file or stdin.
func readNotes(args []string) ([]string, error) {
	var r io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var notes []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			notes = append(notes, line)
		}
	}
	return notes, scanner.Err()
}
