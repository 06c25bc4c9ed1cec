package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"execfreq/internal/ai"
	"execfreq/internal/export"
	"execfreq/internal/report"

	"github.com/spf13/cobra"
)

var (
	digestTopN    int
	digestBriefs  bool
	digestOutFile string
)

// digestCmd renders an exported CSV into a markdown digest for lead review.
var digestCmd = &cobra.Command{
	Use:   "digest <csv_file>",
	Short: "Render a markdown digest of the top leads from an exported CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		records, err := export.ReadCSV(args[0])
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No posts in file; skipping digest.")
			return nil
		}
		topN := digestTopN
		if topN == 0 {
			topN = cfg.Digest.TopN
		}
		if topN > len(records) {
			topN = len(records)
		}

		var summarizer ai.Summarizer
		if digestBriefs {
			if cfg.OpenAI.APIKey == "" {
				return fmt.Errorf("openai config missing: set openai.api_key in config.yaml or OPENAI_API_KEY")
			}
			oc, err := ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
			if err != nil {
				return err
			}
			summarizer = oc
		}

		now := time.Now()
		leads := make([]report.Lead, 0, topN)
		for i, r := range records[:topN] {
			lead := report.Lead{
				Rank:      i + 1,
				Score:     r.Score,
				Source:    r.Source,
				Title:     r.Title,
				Link:      r.Link,
				Author:    r.Author,
				Excerpt:   r.Excerpt,
				Date:      r.Date,
				Breakdown: r.Breakdown,
			}
			if summarizer != nil {
				brief, err := summarizer.SummarizeLead(context.Background(), r.Title, r.Excerpt, r.Breakdown)
				if err != nil {
					slog.Warn("digest: brief generation failed", "rank", i+1, "err", err)
				} else {
					lead.Brief = brief
				}
			}
			leads = append(leads, lead)
		}

		content, err := report.Render(report.Data{
			Title:    report.ExpandVars(cfg.Digest.Title, now),
			Datetime: now.UTC().Format("2006-01-02 15:04"),
			Leads:    leads,
		})
		if err != nil {
			return err
		}

		outPath := digestOutFile
		if outPath == "" {
			if err := os.MkdirAll(cfg.Digest.OutputDir, 0o755); err != nil {
				return err
			}
			outPath = filepath.Join(cfg.Digest.OutputDir, fmt.Sprintf("digest-%s.md", now.UTC().Format("20060102")))
		}
		if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s\n", outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(digestCmd)
	digestCmd.Flags().IntVar(&digestTopN, "top", 0, "number of leads to include (default from config, 10)")
	digestCmd.Flags().BoolVar(&digestBriefs, "briefs", false, "add an AI one-liner per lead (requires OpenAI config)")
	digestCmd.Flags().StringVar(&digestOutFile, "output", "", "output file (default: <output_dir>/digest-YYYYMMDD.md)")
}
