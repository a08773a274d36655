package main

import (
	"github.com/citeflow/citeflow/internal/format"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(stylesCmd)
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List supported citation styles",
	Args:  cobra.NoArgs,
	RunE:  runStyles,
}

// StylesResponse is the JSON payload for the styles command.
type StylesResponse struct {
	Styles  []string `json:"styles"`
	Default string   `json:"default"`
}

func runStyles(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	names := format.NewRegistry().Names()

	if humanOutput {
		for _, name := range names {
			if name == cfg.DefaultStyle {
				outputHuman("%s (default)\n", name)
			} else {
				outputHuman("%s\n", name)
			}
		}
		return nil
	}
	return outputJSON(StylesResponse{Styles: names, Default: cfg.DefaultStyle})
}
