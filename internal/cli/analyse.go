package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cronkite-edu/cronkite/internal/llm"
	"github.com/cronkite-edu/cronkite/internal/pipeline"
	"github.com/cronkite-edu/cronkite/internal/search"
	"github.com/cronkite-edu/cronkite/internal/source"
)

var analyseText string

// analyseCmd represents the analyse command
var analyseCmd = &cobra.Command{
	Use:   "analyse [url]",
	Short: "Fact-check a single article and print the report as JSON",
	Long: `Analyse runs the full pipeline once against a URL or pasted text and
prints the AnalysisResult JSON to stdout.

Example:
  cronkite analyse https://example.com/news/story
  cronkite analyse --text "$(pbpaste)"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyse,
}

func init() {
	rootCmd.AddCommand(analyseCmd)

	analyseCmd.Flags().StringVarP(&analyseText, "text", "t", "", "analyse pasted text instead of a URL")
}

func runAnalyse(cmd *cobra.Command, args []string) error {
	rawURL := ""
	if len(args) == 1 {
		rawURL = args[0]
	}
	if analyseText == "" && rawURL == "" {
		return fmt.Errorf("provide a URL argument or --text")
	}

	cfg := buildConfig()
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return err
	}

	pipe := pipeline.New(source.NewSet(cfg), provider, search.NewClient(cfg.Search), cfg.Search.Workers)

	result, err := pipe.Analyse(context.Background(), analyseText, rawURL)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
