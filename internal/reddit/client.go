package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"execfreq/internal/model"
)

// Client is a minimal Reddit API client using the application-only OAuth2
// flow (client credentials). Docs: https://www.reddit.com/dev/api
type Client struct {
	authURL      string
	apiURL       string
	client       *http.Client
	clientID     string
	clientSecret string
	userAgent    string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// Config holds Reddit API settings. AuthURL/APIURL default to the public
// endpoints and exist so tests can point the client at a fake server.
type Config struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	AuthURL      string
	APIURL       string
}

// NewClient creates a Reddit client. Credentials are required; validation
// happens at the adapter boundary so the caller can decide whether a
// missing credential is fatal.
func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.AuthURL) == "" {
		cfg.AuthURL = "https://www.reddit.com"
	}
	if strings.TrimSpace(cfg.APIURL) == "" {
		cfg.APIURL = "https://oauth.reddit.com"
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = "execfreq/0.1.0"
	}
	return &Client{
		authURL:      strings.TrimRight(cfg.AuthURL, "/"),
		apiURL:       strings.TrimRight(cfg.APIURL, "/"),
		client:       &http.Client{Timeout: 30 * time.Second},
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		userAgent:    cfg.UserAgent,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// token returns a valid app-only access token, requesting a new one when
// the cached token is missing or about to expire.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-30*time.Second)) {
		return c.accessToken, nil
	}
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.authURL+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("reddit: token request status %d", resp.StatusCode)
	}
	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", err
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("reddit: empty access token")
	}
	c.accessToken = tr.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

// listingChild mirrors the subset of a Reddit listing child we care about.
type listingChild struct {
	Data struct {
		Title           string  `json:"title"`
		Selftext        string  `json:"selftext"`
		Permalink       string  `json:"permalink"`
		Author          string  `json:"author"`
		AuthorFlairText string  `json:"author_flair_text"`
		CreatedUTC      float64 `json:"created_utc"`
		Score           int     `json:"score"`
	} `json:"data"`
}

type listingResponse struct {
	Data struct {
		Children []listingChild `json:"children"`
	} `json:"data"`
}

// SearchSubreddit searches one subreddit for keyword, keeping submissions
// created at or after since. Reddit's own time filter is week-granular, so
// the precise cutoff is applied client-side.
func (c *Client) SearchSubreddit(ctx context.Context, subreddit, keyword string, since time.Time) ([]model.NormalizedPost, error) {
	tok, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	q := url.Values{
		"q":           {keyword},
		"restrict_sr": {"1"},
		"sort":        {"new"},
		"t":           {timeFilter(since)},
		"limit":       {strconv.Itoa(100)},
	}
	endpoint := fmt.Sprintf("%s/r/%s/search?%s", c.apiURL, url.PathEscape(subreddit), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("reddit: search r/%s %q status %d", subreddit, keyword, resp.StatusCode)
	}
	var lr listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	posts := make([]model.NormalizedPost, 0, len(lr.Data.Children))
	for _, ch := range lr.Data.Children {
		d := ch.Data
		created := time.Unix(int64(d.CreatedUTC), 0).UTC()
		if created.Before(since) {
			continue
		}
		author := d.Author
		if author == "" {
			author = "[deleted]"
		}
		posts = append(posts, model.NormalizedPost{
			Source:     model.SourceReddit,
			Title:      d.Title,
			BodyText:   d.Selftext,
			URL:        "https://reddit.com" + d.Permalink,
			AuthorName: author,
			AuthorMeta: d.AuthorFlairText,
			CreatedAt:  created,
			RawScore:   d.Score,
		})
	}
	return posts, nil
}

// timeFilter picks the coarsest Reddit time filter covering since.
func timeFilter(since time.Time) string {
	age := time.Since(since)
	switch {
	case age <= 24*time.Hour:
		return "day"
	case age <= 7*24*time.Hour:
		return "week"
	case age <= 31*24*time.Hour:
		return "month"
	case age <= 366*24*time.Hour:
		return "year"
	default:
		return "all"
	}
}
