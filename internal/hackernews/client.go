package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"execfreq/internal/model"
)

// Client is a minimal Algolia Hacker News search client.
// Docs: https://hn.algolia.com/api
type Client struct {
	baseAPI     string
	client      *http.Client
	hitsPerPage int
}

// NewClient creates a new search client. baseAPI should be something like
// "https://hn.algolia.com/api/v1". If empty, it defaults to that endpoint.
func NewClient(baseAPI string, hitsPerPage int) *Client {
	if strings.TrimSpace(baseAPI) == "" {
		baseAPI = "https://hn.algolia.com/api/v1"
	}
	if hitsPerPage <= 0 {
		hitsPerPage = 100
	}
	return &Client{
		baseAPI:     strings.TrimRight(baseAPI, "/"),
		client:      &http.Client{Timeout: 30 * time.Second},
		hitsPerPage: hitsPerPage,
	}
}

// hit mirrors the subset of Algolia search-hit fields we care about.
// Stories carry title/story_text; comments carry story_title/comment_text.
type hit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	StoryTitle  string `json:"story_title"`
	StoryText   string `json:"story_text"`
	CommentText string `json:"comment_text"`
	Author      string `json:"author"`
	CreatedAtI  int64  `json:"created_at_i"`
	Points      int    `json:"points"`
}

type searchResponse struct {
	Hits []hit `json:"hits"`
}

// Search queries one index tag ("story" or "comment") for keyword, limited
// to items created at or after since.
func (c *Client) Search(ctx context.Context, keyword, tag string, since time.Time) ([]model.NormalizedPost, error) {
	q := url.Values{
		"query":          {keyword},
		"tags":           {tag},
		"numericFilters": {"created_at_i>=" + strconv.FormatInt(since.Unix(), 10)},
		"hitsPerPage":    {strconv.Itoa(c.hitsPerPage)},
	}
	endpoint := c.baseAPI + "/search?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("hackernews: search %q tag %s status %d", keyword, tag, resp.StatusCode)
	}
	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}
	posts := make([]model.NormalizedPost, 0, len(sr.Hits))
	for _, h := range sr.Hits {
		posts = append(posts, convertHit(h))
	}
	return posts, nil
}

// convertHit maps an Algolia hit to the normalized post model. The HN item
// permalink is the canonical URL; comments inherit their story's title.
func convertHit(h hit) model.NormalizedPost {
	title := h.Title
	body := h.StoryText
	if title == "" {
		title = h.StoryTitle
		body = h.CommentText
	}
	if title == "" {
		title = "Comment"
	}
	return model.NormalizedPost{
		Source:     model.SourceHackerNews,
		Title:      stripHTML(title),
		BodyText:   stripHTML(body),
		URL:        "https://news.ycombinator.com/item?id=" + h.ObjectID,
		AuthorName: h.Author,
		CreatedAt:  time.Unix(h.CreatedAtI, 0).UTC(),
		RawScore:   h.Points,
	}
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`) // best-effort removal

func stripHTML(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	// Remove common HTML tags to feed cleaner text to the scorer.
	// This is a minimal approach; HN text fields are simple HTML.
	s = htmlTagRe.ReplaceAllString(s, " ")
	// Unescape a few common entities by hand to avoid extra deps.
	replacer := strings.NewReplacer(
		"&quot;", "\"",
		"&apos;", "'",
		"&#x27;", "'",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
	)
	return strings.TrimSpace(replacer.Replace(s))
}
