package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"execfreq/internal/model"
)

func post(title, body, meta string) model.NormalizedPost {
	return model.NormalizedPost{
		Source:     model.SourceHackerNews,
		Title:      title,
		BodyText:   body,
		URL:        "https://news.ycombinator.com/item?id=1",
		AuthorName: "someone",
		AuthorMeta: meta,
		CreatedAt:  time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
}

func labels(sp model.ScoredPost) []string {
	out := make([]string, 0, len(sp.Breakdown))
	for _, s := range sp.Breakdown {
		out = append(out, s.Label)
	}
	return out
}

func TestScoreHiringFounderScenario(t *testing.T) {
	sp := Default().Score(post(
		"Need to hire VP Engineering - company stuck on legacy Rails app",
		"",
		"startup founder",
	))

	assert.Equal(t, []string{"CEO/Founder", "Transition/Hiring"}, labels(sp))
	assert.Equal(t, 50, sp.PainScore)
}

func TestScoreVelocityPainScenario(t *testing.T) {
	sp := Default().Score(post(
		"Our engineering team can't ship features fast enough",
		"We accumulated a lot of technical debt and more technical debt, plus scaling problems and scaling pains.",
		"SaaS founder",
	))

	assert.Equal(t, []string{"CEO/Founder", "Velocity Issues", "Pain Keywords x2"}, labels(sp))
	assert.Equal(t, 65, sp.PainScore)
}

func TestScoreEmptyPost(t *testing.T) {
	sp := Default().Score(post("", "", ""))
	assert.Zero(t, sp.PainScore)
	assert.Empty(t, sp.Breakdown)
}

func TestScoreDeterministic(t *testing.T) {
	p := post("I'm a founder and we can't ship", "technical debt everywhere, outages daily", "")
	s := Default()
	first := s.Score(p)
	second := s.Score(p)
	assert.Equal(t, first, second)
}

func TestScoreClampedAt100(t *testing.T) {
	sp := Default().Score(post(
		"As the CEO I urgently need to hire a CTO because we can't ship",
		"Our technical debt is huge, scaling is impossible and outages are constant.",
		"",
	))

	require.Equal(t, []string{
		"CEO/Founder", "Urgency", "Transition/Hiring", "Velocity Issues", "Pain Keywords x3",
	}, labels(sp))

	raw := 0
	for _, s := range sp.Breakdown {
		raw += s.Points
	}
	assert.Equal(t, 120, raw)
	assert.Equal(t, 100, sp.PainScore)
}

func TestScoreBreakdownSumsToScore(t *testing.T) {
	posts := []model.NormalizedPost{
		post("Looking for a new backend engineer", "", ""),
		post("Founder here, morale is fine", "", ""),
		post("Shipping is slow and we have downtime", "", ""),
		post("nothing relevant at all", "just a plain post", ""),
	}
	s := Default()
	for _, p := range posts {
		sp := s.Score(p)
		sum := 0
		for _, sig := range sp.Breakdown {
			sum += sig.Points
		}
		assert.Equal(t, sum, sp.PainScore, "post %q", p.Title)
		assert.GreaterOrEqual(t, sp.PainScore, 0)
		assert.LessOrEqual(t, sp.PainScore, 100)
	}
}

func TestPainKeywordsCountDistinctEntries(t *testing.T) {
	s := Default()

	// Repeats of the same entry count once.
	sp := s.Score(post("scaling scaling scaling", "", ""))
	assert.Equal(t, []string{"Pain Keywords x1"}, labels(sp))
	assert.Equal(t, 10, sp.PainScore)

	// Four distinct entries cap at three.
	sp = s.Score(post("technical debt, scaling, outages and downtime", "", ""))
	assert.Equal(t, []string{"Pain Keywords x3"}, labels(sp))
	assert.Equal(t, 30, sp.PainScore)
}

func TestWordBoundaryMatching(t *testing.T) {
	s := Default()

	// "outage" must not also match inside "outages".
	sp := s.Score(post("another day of outages", "", ""))
	assert.Equal(t, []string{"Pain Keywords x1"}, labels(sp))

	// "ceo" must not match inside "ceos" under the boundary policy.
	sp = s.Score(post("ceos in general", "", ""))
	assert.Empty(t, sp.Breakdown)

	// "tech debt" must not match inside "technical debt".
	sp = s.Score(post("drowning in technical debt", "", ""))
	assert.Equal(t, []string{"Pain Keywords x1"}, labels(sp))
}

func TestPunctuationAndCaseAdjacency(t *testing.T) {
	s := Default()

	sp := s.Score(post("We stopped SHIPPING.", "", ""))
	assert.Equal(t, []string{"Velocity Issues"}, labels(sp))

	// Typographic apostrophe still matches "can't ship".
	sp = s.Score(post("we can’t ship anymore", "", ""))
	assert.Equal(t, []string{"Velocity Issues"}, labels(sp))
}

func TestIdentityReadsAuthorMetaOnly(t *testing.T) {
	s := Default()

	// Urgency words in the flair must not trigger the urgency rule,
	// which reads title/body only.
	sp := s.Score(post("a quiet day", "", "deadline crisis founder"))
	assert.Equal(t, []string{"CEO/Founder"}, labels(sp))
	assert.Equal(t, 30, sp.PainScore)
}

func TestBreakdownString(t *testing.T) {
	sp := Default().Score(post("Need to hire VP Engineering", "", "startup founder"))
	assert.Equal(t, "CEO/Founder (+30), Transition/Hiring (+20)", sp.Breakdown.String())
	assert.Equal(t, "", model.Breakdown(nil).String())
}
