package hackernews

import (
	"context"
	"log/slog"
	"time"

	"execfreq/internal/model"
	"execfreq/internal/source"
)

const sourceName = "hackernews"

// Adapter searches stories and comments for each configured keyword and
// yields one normalized post per unique HN item. It implements
// source.Source.
type Adapter struct {
	Client   *Client
	Keywords []string
	Cache    source.Cache // optional
}

func (a *Adapter) Name() string { return sourceName }

// Fetch runs every keyword search. A failed keyword is logged and skipped;
// the adapter only fails when it produced nothing at all.
func (a *Adapter) Fetch(ctx context.Context, since time.Time) ([]model.NormalizedPost, error) {
	seen := make(map[string]struct{})
	var out []model.NormalizedPost
	var lastErr error

	for _, kw := range a.Keywords {
		posts, err := a.searchKeyword(ctx, kw, since)
		if err != nil {
			slog.Warn("hackernews: keyword search failed", "keyword", kw, "err", err)
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
	if len(out) == 0 && lastErr != nil {
		return nil, lastErr
	}
	slog.Info("hackernews: fetch complete", "keywords", len(a.Keywords), "posts", len(out))
	return out, nil
}

func (a *Adapter) searchKeyword(ctx context.Context, keyword string, since time.Time) ([]model.NormalizedPost, error) {
	if a.Cache != nil {
		if posts, ok, err := a.Cache.Get(ctx, sourceName, keyword); err == nil && ok {
			return posts, nil
		}
	}
	var posts []model.NormalizedPost
	for _, tag := range []string{"story", "comment"} {
		batch, err := a.Client.Search(ctx, keyword, tag, since)
		if err != nil {
			return nil, err
		}
		posts = append(posts, batch...)
	}
	if a.Cache != nil {
		if err := a.Cache.Put(ctx, sourceName, keyword, posts); err != nil {
			slog.Warn("hackernews: cache write failed", "keyword", keyword, "err", err)
		}
	}
	return posts, nil
}
