package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"execfreq/internal/cache"
	"execfreq/internal/export"
	"execfreq/internal/hackernews"
	"execfreq/internal/model"
	"execfreq/internal/pipeline"
	"execfreq/internal/reddit"
	"execfreq/internal/redisclient"
	"execfreq/internal/scoring"
	"execfreq/internal/source"

	"github.com/spf13/cobra"
)

var (
	searchDays       int
	searchMinScore   int
	searchOutput     string
	searchShowTop    int
	searchHNOnly     bool
	searchRedditOnly bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for executive engineering pain signals",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if searchHNOnly && searchRedditOnly {
			return errors.New("--hn-only and --reddit-only are mutually exclusive")
		}
		if searchDays == 0 {
			searchDays = cfg.Search.Days
		}
		if !cmd.Flags().Changed("min-score") {
			searchMinScore = cfg.Search.MinScore
		}
		if searchOutput == "" {
			searchOutput = cfg.Search.Output
		}
		if searchShowTop == 0 {
			searchShowTop = cfg.Search.ShowTop
		}

		scorer, err := buildScorer(cfg.Scoring.RulesFile)
		if err != nil {
			return err
		}

		var searchCache source.Cache
		if cfg.Cache.Enabled {
			ttl, err := time.ParseDuration(cfg.Cache.TTL)
			if err != nil {
				return fmt.Errorf("invalid cache.ttl: %w", err)
			}
			rdb := redisclient.New(cfg.Redis)
			defer rdb.Close()
			searchCache = cache.NewSearchCache(rdb, ttl)
		}

		var sources []source.Source
		if !searchRedditOnly {
			sources = append(sources, &hackernews.Adapter{
				Client:   hackernews.NewClient(cfg.Sources.HackerNews.BaseAPI, cfg.Sources.HackerNews.HitsPerPage),
				Keywords: cfg.Search.Keywords,
				Cache:    searchCache,
			})
		}
		if !searchHNOnly {
			ra, err := reddit.NewAdapter(reddit.Config{
				ClientID:     cfg.Sources.Reddit.ClientID,
				ClientSecret: cfg.Sources.Reddit.ClientSecret,
				UserAgent:    cfg.Sources.Reddit.UserAgent,
			}, cfg.Sources.Reddit.Subreddits, cfg.Search.Keywords, searchCache)
			if err != nil {
				// Missing credentials are fatal only when Reddit was the
				// explicitly requested sole source; otherwise run on HN alone.
				if searchRedditOnly || !errors.Is(err, source.ErrMissingCredentials) {
					return err
				}
				slog.Warn("reddit source skipped", "err", err)
			} else {
				sources = append(sources, ra)
			}
		}

		now := time.Now().UTC()
		since := now.AddDate(0, 0, -searchDays)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		var posts []model.NormalizedPost
		for _, src := range sources {
			fetched, err := src.Fetch(ctx, since)
			if err != nil {
				// Partial results are still valuable; surface the failure and continue.
				slog.Warn("source fetch failed, continuing without it", "source", src.Name(), "err", err)
				continue
			}
			posts = append(posts, fetched...)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Total posts found: %d\n", len(posts))

		results, err := pipeline.Run(posts, scorer, pipeline.Options{
			MinScore:     searchMinScore,
			LookbackDays: searchDays,
			Now:          now,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Posts with score >= %d: %d\n", searchMinScore, len(results))

		printRanked(cmd, toRecords(results), searchShowTop)

		if err := export.WriteCSV(searchOutput, results); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d posts to %s\n", len(results), searchOutput)

		if len(results) > 0 {
			sum, maxScore := 0, 0
			for _, r := range results {
				sum += r.PainScore
				if r.PainScore > maxScore {
					maxScore = r.PainScore
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Average score: %.1f | Maximum score: %d\n",
				float64(sum)/float64(len(results)), maxScore)
		}
		return nil
	},
}

func buildScorer(rulesFile string) (*scoring.Scorer, error) {
	if rulesFile == "" {
		return scoring.Default(), nil
	}
	rules, err := scoring.LoadRules(rulesFile)
	if err != nil {
		return nil, err
	}
	return scoring.New(rules), nil
}

func toRecords(posts []model.ScoredPost) []export.Record {
	out := make([]export.Record, 0, len(posts))
	for _, p := range posts {
		out = append(out, export.Record{
			Score:     p.PainScore,
			Source:    string(p.Source),
			Title:     p.Title,
			Link:      p.URL,
			Author:    p.AuthorName,
			Excerpt:   export.Excerpt(p.BodyText),
			Date:      p.CreatedAt.UTC().Format("2006-01-02 15:04"),
			Breakdown: p.Breakdown.String(),
		})
	}
	return out
}

// printRanked renders the top-N view shared by search and show.
func printRanked(cmd *cobra.Command, records []export.Record, limit int) {
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No posts found.")
		return
	}
	if limit > len(records) {
		limit = len(records)
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "\nTOP %d RESULTS\n\n", limit)
	for i, r := range records[:limit] {
		title := r.Title
		if tr := []rune(title); len(tr) > 70 {
			title = string(tr[:70])
		}
		fmt.Fprintf(w, "%d. [%3d] %s\n", i+1, r.Score, title)
		fmt.Fprintf(w, "   Source: %s | Author: %s\n", r.Source, r.Author)
		fmt.Fprintf(w, "   Signals: %s\n", r.Breakdown)
		fmt.Fprintf(w, "   Link: %s\n\n", r.Link)
	}
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchDays, "days", 0, "number of days to look back (default from config, 7)")
	searchCmd.Flags().IntVar(&searchMinScore, "min-score", 0, "minimum score to include")
	searchCmd.Flags().StringVar(&searchOutput, "output", "", "output CSV file (default from config, results.csv)")
	searchCmd.Flags().IntVar(&searchShowTop, "show-top", 0, "number of top results to display")
	searchCmd.Flags().BoolVar(&searchHNOnly, "hn-only", false, "only search Hacker News")
	searchCmd.Flags().BoolVar(&searchRedditOnly, "reddit-only", false, "only search Reddit")
}
