package reddit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"execfreq/internal/model"
	"execfreq/internal/source"
)

const sourceName = "reddit"

// Adapter searches every (subreddit, keyword) pair and yields one
// normalized post per unique permalink. It implements source.Source.
type Adapter struct {
	Client     *Client
	Subreddits []string
	Keywords   []string
	Cache      source.Cache // optional
}

// NewAdapter wires a Reddit adapter, reporting missing credentials so the
// caller can decide whether that is fatal for the run.
func NewAdapter(cfg Config, subreddits, keywords []string, cache source.Cache) (*Adapter, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("reddit: %w (set REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET)", source.ErrMissingCredentials)
	}
	return &Adapter{
		Client:     NewClient(cfg),
		Subreddits: subreddits,
		Keywords:   keywords,
		Cache:      cache,
	}, nil
}

func (a *Adapter) Name() string { return sourceName }

// Fetch runs every subreddit/keyword search. A failed search is logged and
// skipped; the adapter only fails when it produced nothing at all.
func (a *Adapter) Fetch(ctx context.Context, since time.Time) ([]model.NormalizedPost, error) {
	seen := make(map[string]struct{})
	var out []model.NormalizedPost
	var lastErr error

	for _, sub := range a.Subreddits {
		for _, kw := range a.Keywords {
			posts, err := a.search(ctx, sub, kw, since)
			if err != nil {
				slog.Warn("reddit: search failed", "subreddit", sub, "keyword", kw, "err", err)
				lastErr = err
				continue
			}
			for _, p := range posts {
				if _, dup := seen[p.URL]; dup {
					continue
				}
				seen[p.URL] = struct{}{}
				out = append(out, p)
			}
		}
	}
	if len(out) == 0 && lastErr != nil {
		return nil, lastErr
	}
	slog.Info("reddit: fetch complete", "subreddits", len(a.Subreddits), "keywords", len(a.Keywords), "posts", len(out))
	return out, nil
}

func (a *Adapter) search(ctx context.Context, subreddit, keyword string, since time.Time) ([]model.NormalizedPost, error) {
	cacheKey := subreddit + ":" + keyword
	if a.Cache != nil {
		if posts, ok, err := a.Cache.Get(ctx, sourceName, cacheKey); err == nil && ok {
			return posts, nil
		}
	}
	posts, err := a.Client.SearchSubreddit(ctx, subreddit, keyword, since)
	if err != nil {
		return nil, err
	}
	if a.Cache != nil {
		if err := a.Cache.Put(ctx, sourceName, cacheKey, posts); err != nil {
			slog.Warn("reddit: cache write failed", "key", cacheKey, "err", err)
		}
	}
	return posts, nil
}
