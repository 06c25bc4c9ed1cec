package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDigest(t *testing.T) {
	out, err := Render(Data{
		Title:    "Engineering Pain Leads 2026-08-25",
		Datetime: "2026-08-25 12:00",
		Leads: []Lead{
			{
				Rank:      1,
				Score:     65,
				Source:    "Reddit",
				Title:     "Our engineering team can't ship",
				Link:      "https://reddit.com/r/startups/comments/abc",
				Author:    "worried_ceo",
				Excerpt:   "Technical debt is crushing us",
				Date:      "2026-08-20 09:30",
				Breakdown: "CEO/Founder (+30), Velocity Issues (+15), Pain Keywords x2 (+20)",
				Brief:     "A founder describes delivery grinding to a halt.",
			},
			{
				Rank:      2,
				Score:     30,
				Source:    "HackerNews",
				Title:     "Ask HN: founder troubles",
				Link:      "https://news.ycombinator.com/item?id=1",
				Author:    "pg",
				Date:      "2026-08-19 08:00",
				Breakdown: "CEO/Founder (+30)",
			},
		},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Engineering Pain Leads 2026-08-25"))
	assert.Contains(t, out, "## 1. [65] Our engineering team can't ship")
	assert.Contains(t, out, "Signals: CEO/Founder (+30), Velocity Issues (+15), Pain Keywords x2 (+20)")
	assert.Contains(t, out, "> Technical debt is crushing us")
	assert.Contains(t, out, "A founder describes delivery grinding to a halt.")
	assert.Contains(t, out, "## 2. [30] Ask HN: founder troubles")
	// No excerpt block for the lead without a body.
	assert.Equal(t, 1, strings.Count(out, "> "))
}

func TestExpandVars(t *testing.T) {
	now := time.Date(2026, 8, 25, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "Leads 2026-08-25", ExpandVars("Leads {.CurrentDate}", now))
	assert.Equal(t, "no vars", ExpandVars("no vars", now))
	assert.Equal(t, "", ExpandVars("", now))
}
