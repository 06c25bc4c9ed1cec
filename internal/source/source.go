package source

import (
	"context"
	"errors"
	"time"

	"execfreq/internal/model"
)

// ErrMissingCredentials indicates a source cannot run because its API
// credentials are not configured.
var ErrMissingCredentials = errors.New("source: missing credentials")

// Source fetches normalized posts created at or after since.
// Implementations own platform auth, pagination, and rate-limit compliance.
type Source interface {
	Name() string
	Fetch(ctx context.Context, since time.Time) ([]model.NormalizedPost, error)
}
