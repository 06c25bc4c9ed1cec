package source

import (
	"context"

	"execfreq/internal/model"
)

// Cache stores search results between runs so repeated searches within a
// short window do not re-hit the platform APIs. Implementations must treat
// misses and backend failures as equivalent: (nil, false, err).
type Cache interface {
	Get(ctx context.Context, source, query string) ([]model.NormalizedPost, bool, error)
	Put(ctx context.Context, source, query string, posts []model.NormalizedPost) error
}
