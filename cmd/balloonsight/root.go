package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balloonsight/balloonsight/internal/analyzer"
	"github.com/balloonsight/balloonsight/internal/config"
	"github.com/balloonsight/balloonsight/internal/fetcher"
	"github.com/balloonsight/balloonsight/internal/persona"
)

var rootCmd = &cobra.Command{
	Use:   "balloonsight",
	Short: "Score how visible a website is to AI systems",
	Long: `BalloonSight fetches a web page, runs a deterministic set of AI visibility
checks (crawlability, structured data, semantic structure, content) and
produces a 0-100 score with per-check findings and fixes.

Examples:
  # Analyze a site and print the findings
  balloonsight analyze example.com

  # Export the full report
  balloonsight analyze example.com --export report.xlsx

  # Run the HTTP API
  balloonsight serve --addr :8080`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "balloonsight %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// buildAnalyzer assembles the analysis pipeline from config.
func buildAnalyzer(cfg *config.Config) (*fetcher.Fetcher, *analyzer.Analyzer) {
	f := fetcher.New(cfg)
	classifier := persona.New(persona.Config{
		APIKey:  cfg.OpenAIKey,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.PersonaTimeout,
	})
	return f, analyzer.New(f, classifier)
}
