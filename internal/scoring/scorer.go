package scoring

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"execfreq/internal/model"
)

// Scorer maps a normalized post to a pain score plus a signal breakdown.
// Scoring is a pure function of the post and the rule table: no I/O, no
// shared mutable state, identical output for identical input.
type Scorer struct {
	rules Rules
}

// New creates a Scorer with the given rule table. Keyword sets are folded
// once here so rules loaded from a file match regardless of their casing.
func New(rules Rules) *Scorer {
	rules.Identity.Keywords = foldAll(rules.Identity.Keywords)
	rules.Urgency.Keywords = foldAll(rules.Urgency.Keywords)
	rules.Transition.Keywords = foldAll(rules.Transition.Keywords)
	rules.Velocity.Keywords = foldAll(rules.Velocity.Keywords)
	rules.Pain.Keywords = foldAll(rules.Pain.Keywords)
	return &Scorer{rules: rules}
}

func foldAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = fold(kw)
	}
	return out
}

// Default creates a Scorer with the built-in rule table.
func Default() *Scorer {
	return New(DefaultRules())
}

// Score evaluates the rule table against a post, in fixed rule order.
// Each single-shot rule contributes at most once; the pain rule contributes
// per distinct keyword match up to its cap. The total is clamped to [0, 100].
func (s *Scorer) Score(p model.NormalizedPost) model.ScoredPost {
	content := fold(p.Title + " " + p.BodyText)
	// The identity rule also considers author metadata (e.g. a
	// "startup founder" flair); the other rules read title+body only.
	identityText := content + " " + fold(p.AuthorMeta)

	total := 0
	var breakdown model.Breakdown
	trigger := func(label string, points int) {
		breakdown = append(breakdown, model.Signal{Label: label, Points: points})
		total += points
	}

	if matchesAny(identityText, s.rules.Identity.Keywords) {
		trigger("CEO/Founder", s.rules.Identity.Points)
	}
	if matchesAny(content, s.rules.Urgency.Keywords) {
		trigger("Urgency", s.rules.Urgency.Points)
	}
	if matchesAny(content, s.rules.Transition.Keywords) {
		trigger("Transition/Hiring", s.rules.Transition.Points)
	}
	if matchesAny(content, s.rules.Velocity.Keywords) {
		trigger("Velocity Issues", s.rules.Velocity.Points)
	}
	if n := countMatches(content, s.rules.Pain.Keywords); n > 0 {
		if n > s.rules.Pain.MaxMatches {
			n = s.rules.Pain.MaxMatches
		}
		trigger(fmt.Sprintf("Pain Keywords x%d", n), n*s.rules.Pain.PointsPerMatch)
	}

	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	return model.ScoredPost{NormalizedPost: p, PainScore: total, Breakdown: breakdown}
}

var apostrophes = strings.NewReplacer("‘", "'", "’", "'")

// fold prepares text for matching: lowercase, typographic apostrophes
// normalized, whitespace runs collapsed to single spaces.
func fold(s string) string {
	s = apostrophes.Replace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if containsWord(text, kw) {
			return true
		}
	}
	return false
}

// countMatches counts distinct keyword-set entries present in text. Raw
// substring occurrences of the same entry count once.
func countMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if containsWord(text, kw) {
			n++
		}
	}
	return n
}

// containsWord reports whether kw occurs in text with non-word characters
// (or string edges) on both sides, so "outage" does not match inside
// "outages" but "shipping." still matches "shipping".
func containsWord(text, kw string) bool {
	if kw == "" {
		return false
	}
	for from := 0; ; {
		i := strings.Index(text[from:], kw)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(kw)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		from = start + 1
	}
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
