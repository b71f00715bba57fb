package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/balloonsight/balloonsight/internal/analyzer"
	"github.com/balloonsight/balloonsight/internal/config"
	"github.com/balloonsight/balloonsight/internal/insights"
	"github.com/balloonsight/balloonsight/internal/page"
	"github.com/balloonsight/balloonsight/internal/report"
)

var (
	analyzeJSON   bool
	analyzeExport string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Fetch a page and score its AI visibility",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		f, a := buildAnalyzer(cfg)
		defer f.Close()

		normalized, _, err := analyzer.NormalizeURL(args[0])
		if err != nil {
			return err
		}

		pageRes, err := f.FetchPage(ctx, normalized)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", normalized, err)
		}

		result, err := a.Analyze(ctx, pageRes.HTML, normalized, pageRes.ResponseTimeMs)
		if err != nil {
			return err
		}

		doc := page.Parse(pageRes.HTML)
		breakdown := insights.Breakdown(doc, result)
		wins := insights.QuickWins(doc, result)

		if analyzeExport != "" {
			format, err := report.FormatForPath(analyzeExport)
			if err != nil {
				return err
			}
			rep := report.Build(result, breakdown, wins)
			if err := report.NewExporter(format, analyzeExport).Export(rep); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", analyzeExport)
		}

		if analyzeJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		printResult(cmd, result)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the raw analysis result as JSON")
	analyzeCmd.Flags().StringVar(&analyzeExport, "export", "", "Write the full report to a file (.csv, .xlsx or .json)")
	rootCmd.AddCommand(analyzeCmd)
}

func printResult(cmd *cobra.Command, res *analyzer.AnalysisResult) {
	out := cmd.OutOrStdout()

	bold := color.New(color.Bold)
	bold.Fprintf(out, "\n%s\n", res.URL)
	fmt.Fprintf(out, "Visibility score: %s\n", scoreColor(res.Score).Sprintf("%d/100", res.Score))
	fmt.Fprintf(out, "Archetype: %s (%s)\n", res.Persona.Archetype, res.Persona.Description)

	for _, cat := range analyzer.Categories {
		cr := res.Categories[cat]
		fmt.Fprintf(out, "\n%s (%d/100)\n", cat, cr.Score)
		for _, c := range cr.Checks {
			fmt.Fprintf(out, "  %s %s: %s\n", statusBadge(c.Status), c.Label, c.Message)
			if c.Fix != "" {
				fmt.Fprintf(out, "      fix: %s\n", c.Fix)
			}
		}
	}
	fmt.Fprintln(out)
}

func statusBadge(s analyzer.Status) string {
	switch s {
	case analyzer.StatusPass:
		return color.GreenString("PASS")
	case analyzer.StatusWarning:
		return color.YellowString("WARN")
	default:
		return color.RedString("FAIL")
	}
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 80:
		return color.New(color.FgGreen)
	case score >= 50:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
