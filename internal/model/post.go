package model

import (
	"fmt"
	"strings"
	"time"
)

// Source identifies the platform a post came from.
type Source string

const (
	SourceHackerNews Source = "HackerNews"
	SourceReddit     Source = "Reddit"
)

// NormalizedPost is the canonical post shape produced by source adapters.
// URL is the canonical link and serves as the dedup key; RawScore is the
// platform-native popularity metric and is informational only.
type NormalizedPost struct {
	Source     Source    `json:"source"`
	Title      string    `json:"title"`
	BodyText   string    `json:"body_text"`
	URL        string    `json:"url"`
	AuthorName string    `json:"author_name"`
	AuthorMeta string    `json:"author_meta"` // e.g. a subreddit flair; may be empty
	CreatedAt  time.Time `json:"created_at"`
	RawScore   int       `json:"raw_score"`
}

// Signal is a single triggered scoring rule with its point contribution.
type Signal struct {
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// Breakdown is the ordered list of triggered signals, in rule-evaluation
// order. It is never reordered or deduplicated after scoring.
type Breakdown []Signal

// String renders the breakdown as "CEO/Founder (+30), Urgency (+25)".
func (b Breakdown) String() string {
	if len(b) == 0 {
		return ""
	}
	parts := make([]string, 0, len(b))
	for _, s := range b {
		parts = append(parts, fmt.Sprintf("%s (+%d)", s.Label, s.Points))
	}
	return strings.Join(parts, ", ")
}

// ScoredPost decorates a normalized post with its pain score and the
// signals that justify it. PainScore is the sum of the breakdown points,
// clamped to [0, 100].
type ScoredPost struct {
	NormalizedPost
	PainScore int       `json:"pain_score"`
	Breakdown Breakdown `json:"signal_breakdown"`
}
