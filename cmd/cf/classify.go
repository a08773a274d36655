package main

import (
	"context"
	"strings"

	"github.com/citeflow/citeflow/internal/ai"
	"github.com/citeflow/citeflow/internal/classify"
	"github.com/spf13/cobra"
)

var classifyNoAI bool

func init() {
	classifyCmd.Flags().BoolVar(&classifyNoAI, "no-ai", false, "Skip the AI classifier even when configured")
	rootCmd.AddCommand(classifyCmd)
}

var classifyCmd = &cobra.Command{
	Use:   "classify <note>",
	Short: "Classify a citation note by source type",
	Long: `Classify a citation note by source type.

The note is matched against layered detection patterns (legal reporters,
interview markers, government agencies, medical terms, and so on) and
assigned a type with a confidence score. When an OpenAI key is
configured and pattern confidence falls below the threshold, the AI
classifier is consulted as a second opinion.

Examples:
  cf classify "Loving v. Virginia, 388 U.S. 1 (1967)"
  cf classify "Kuhn structure of scientific revolutions 1962"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	note := strings.Join(args, " ")

	res := classify.New(cfg.Confidence).Classify(note)
	if !classifyNoAI {
		if key := apiKey("OPENAI_API_KEY"); key != "" {
			refiner, err := ai.NewOpenAI(key, ai.WithModel(cfg.AIModel))
			if err == nil {
				res = ai.Refine(commandContext(cmd), refiner, res, cfg.AIThreshold)
			}
		}
	}

	if humanOutput {
		outputHuman("type:       %s\n", res.Type)
		outputHuman("confidence: %.2f\n", res.Confidence)
		outputHuman("query:      %s\n", res.Query)
		for k, v := range res.Hints {
			outputHuman("hint %s: %s\n", k, v)
		}
		return nil
	}
	return outputJSON(res)
}

// commandContext returns the cobra context, falling back to Background
// for direct calls in tests.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
