package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"execfreq/internal/model"
	"execfreq/internal/scoring"
)

var testNow = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func post(title, url string, created time.Time) model.NormalizedPost {
	return model.NormalizedPost{
		Source:     model.SourceHackerNews,
		Title:      title,
		URL:        url,
		AuthorName: "someone",
		CreatedAt:  created,
	}
}

func opts() Options {
	return Options{MinScore: 0, LookbackDays: 7, Now: testNow}
}

func TestRunWindowBoundaryInclusive(t *testing.T) {
	atBoundary := post("founder", "https://a", testNow.AddDate(0, 0, -7))
	tooOld := post("founder", "https://b", testNow.AddDate(0, 0, -8))
	justInside := post("founder", "https://c", testNow.AddDate(0, 0, -7).Add(time.Second))

	out, err := Run([]model.NormalizedPost{atBoundary, tooOld, justInside}, scoring.Default(), opts())
	require.NoError(t, err)

	urls := make([]string, 0, len(out))
	for _, p := range out {
		urls = append(urls, p.URL)
	}
	assert.ElementsMatch(t, []string{"https://a", "https://c"}, urls)
}

func TestRunDedupFirstSeenWins(t *testing.T) {
	first := post("founder post", "https://same", testNow.Add(-time.Hour))
	second := post("completely different founder content", "https://same", testNow.Add(-2*time.Hour))

	out, err := Run([]model.NormalizedPost{first, second}, scoring.Default(), opts())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "founder post", out[0].Title)
}

func TestRunMalformedRecordFailsRun(t *testing.T) {
	missingURL := post("founder", "", testNow)
	_, err := Run([]model.NormalizedPost{missingURL}, scoring.Default(), opts())
	assert.ErrorContains(t, err, "missing url")

	missingCreated := post("founder", "https://a", time.Time{})
	_, err = Run([]model.NormalizedPost{missingCreated}, scoring.Default(), opts())
	assert.ErrorContains(t, err, "missing created_at")
}

func TestRunMinScoreFilter(t *testing.T) {
	strong := post("founder needs to hire urgently", "https://strong", testNow.Add(-time.Hour))
	weak := post("shipping", "https://weak", testNow.Add(-time.Hour)) // 15 points
	none := post("nothing here", "https://none", testNow.Add(-time.Hour))

	o := opts()
	o.MinScore = 20
	out, err := Run([]model.NormalizedPost{strong, weak, none}, scoring.Default(), o)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "https://strong", out[0].URL)
}

func TestRunSortOrderDeterministic(t *testing.T) {
	// Same score (identity only), different timestamps and URLs.
	older := post("founder", "https://older", testNow.Add(-3*time.Hour))
	newer := post("founder", "https://newer", testNow.Add(-1*time.Hour))
	tieA := post("founder", "https://tie-a", testNow.Add(-2*time.Hour))
	tieB := post("founder", "https://tie-b", testNow.Add(-2*time.Hour))
	top := post("founder hiring urgently", "https://top", testNow.Add(-5*time.Hour))

	out, err := Run([]model.NormalizedPost{older, tieB, newer, top, tieA}, scoring.Default(), opts())
	require.NoError(t, err)

	urls := make([]string, 0, len(out))
	for _, p := range out {
		urls = append(urls, p.URL)
	}
	// Score desc, then created_at desc, then url asc.
	assert.Equal(t, []string{"https://top", "https://newer", "https://tie-a", "https://tie-b", "https://older"}, urls)
}

func TestRunIdempotent(t *testing.T) {
	posts := []model.NormalizedPost{
		post("founder can't ship", "https://a", testNow.Add(-time.Hour)),
		post("technical debt and outages", "https://b", testNow.Add(-2*time.Hour)),
		post("nothing", "https://c", testNow.Add(-3*time.Hour)),
	}
	first, err := Run(posts, scoring.Default(), opts())
	require.NoError(t, err)
	second, err := Run(posts, scoring.Default(), opts())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunEmptyInput(t *testing.T) {
	out, err := Run(nil, scoring.Default(), opts())
	require.NoError(t, err)
	assert.Empty(t, out)
}
