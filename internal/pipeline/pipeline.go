package pipeline

import (
	"fmt"
	"sort"
	"time"

	"execfreq/internal/model"
	"execfreq/internal/scoring"
)

// Options controls a single pipeline run. Now is injected rather than read
// from the wall clock so runs are replayable.
type Options struct {
	MinScore     int
	LookbackDays int
	Now          time.Time
}

// Run merges adapter output into a single ranked result set:
// window filter, first-seen dedup by URL, score, threshold filter, sort.
// A post missing its URL or timestamp is a contract violation at the
// adapter boundary and fails the whole run rather than being dropped
// silently.
func Run(posts []model.NormalizedPost, scorer *scoring.Scorer, opts Options) ([]model.ScoredPost, error) {
	cutoff := opts.Now.AddDate(0, 0, -opts.LookbackDays)

	seen := make(map[string]struct{}, len(posts))
	kept := make([]model.NormalizedPost, 0, len(posts))
	for i, p := range posts {
		if p.URL == "" {
			return nil, fmt.Errorf("pipeline: record %d (%s %q): missing url", i, p.Source, p.Title)
		}
		if p.CreatedAt.IsZero() {
			return nil, fmt.Errorf("pipeline: record %d (%s %s): missing created_at", i, p.Source, p.URL)
		}
		// Inclusive boundary: a post created exactly at now-lookback stays.
		if p.CreatedAt.Before(cutoff) {
			continue
		}
		if _, dup := seen[p.URL]; dup {
			continue
		}
		seen[p.URL] = struct{}{}
		kept = append(kept, p)
	}

	out := make([]model.ScoredPost, 0, len(kept))
	for _, p := range kept {
		sp := scorer.Score(p)
		if sp.PainScore < opts.MinScore {
			continue
		}
		out = append(out, sp)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].PainScore != out[j].PainScore {
			return out[i].PainScore > out[j].PainScore
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].URL < out[j].URL
	})
	return out, nil
}
