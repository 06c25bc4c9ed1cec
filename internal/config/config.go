package config

import "os"

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings for the optional search cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig controls the adapter-boundary search cache.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	TTL     string `mapstructure:"ttl"` // duration string, e.g., "15m"
}

// HackerNewsConfig controls the Hacker News (Algolia) source.
type HackerNewsConfig struct {
	BaseAPI     string `mapstructure:"base_api"`
	HitsPerPage int    `mapstructure:"hits_per_page"`
}

// RedditConfig controls the Reddit source. Credentials fall back to the
// REDDIT_CLIENT_ID / REDDIT_CLIENT_SECRET / REDDIT_USER_AGENT env vars.
type RedditConfig struct {
	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret"`
	UserAgent    string   `mapstructure:"user_agent"`
	Subreddits   []string `mapstructure:"subreddits"`
}

// DataSources groups available adapters.
type DataSources struct {
	HackerNews HackerNewsConfig `mapstructure:"hackernews"`
	Reddit     RedditConfig     `mapstructure:"reddit"`
}

// SearchConfig holds defaults for the search command.
type SearchConfig struct {
	Days     int      `mapstructure:"days"`
	MinScore int      `mapstructure:"min_score"`
	Output   string   `mapstructure:"output"`
	ShowTop  int      `mapstructure:"show_top"`
	Keywords []string `mapstructure:"keywords"`
}

// ScoringConfig points to an optional YAML rule-table override.
type ScoringConfig struct {
	RulesFile string `mapstructure:"rules_file"`
}

// OpenAIConfig enables optional digest briefs. API key falls back to the
// OPENAI_API_KEY env var.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// DigestConfig controls markdown digest output.
type DigestConfig struct {
	TopN      int    `mapstructure:"top_n"`
	OutputDir string `mapstructure:"output_dir"`
	Title     string `mapstructure:"title"` // supports {.CurrentDate}
}

// Config is the top-level configuration structure.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Sources DataSources   `mapstructure:"sources"`
	Search  SearchConfig  `mapstructure:"search"`
	Scoring ScoringConfig `mapstructure:"scoring"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Digest  DigestConfig  `mapstructure:"digest"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = "15m"
	}
	if c.Sources.HackerNews.BaseAPI == "" {
		c.Sources.HackerNews.BaseAPI = "https://hn.algolia.com/api/v1"
	}
	if c.Sources.HackerNews.HitsPerPage == 0 {
		c.Sources.HackerNews.HitsPerPage = 100
	}
	if c.Sources.Reddit.ClientID == "" {
		c.Sources.Reddit.ClientID = os.Getenv("REDDIT_CLIENT_ID")
	}
	if c.Sources.Reddit.ClientSecret == "" {
		c.Sources.Reddit.ClientSecret = os.Getenv("REDDIT_CLIENT_SECRET")
	}
	if c.Sources.Reddit.UserAgent == "" {
		c.Sources.Reddit.UserAgent = os.Getenv("REDDIT_USER_AGENT")
	}
	if c.Sources.Reddit.UserAgent == "" {
		c.Sources.Reddit.UserAgent = "execfreq/0.1.0"
	}
	if len(c.Sources.Reddit.Subreddits) == 0 {
		c.Sources.Reddit.Subreddits = []string{
			"startups", "Entrepreneur", "SaaS", "smallbusiness",
			"programming", "cscareerquestions", "ExperiencedDevs",
			"webdev", "devops",
		}
	}
	if c.Search.Days == 0 {
		c.Search.Days = 7
	}
	if c.Search.Output == "" {
		c.Search.Output = "results.csv"
	}
	if c.Search.ShowTop == 0 {
		c.Search.ShowTop = 10
	}
	if len(c.Search.Keywords) == 0 {
		c.Search.Keywords = []string{
			"CTO", "VP Engineering", "engineering team", "technical debt",
			"can't ship", "slow development", "hiring engineers",
			"engineering manager", "tech lead",
		}
	}
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Digest.TopN == 0 {
		c.Digest.TopN = 10
	}
	if c.Digest.OutputDir == "" {
		c.Digest.OutputDir = "./out"
	}
	if c.Digest.Title == "" {
		c.Digest.Title = "Engineering Pain Leads {.CurrentDate}"
	}
}
