package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Summarizer produces an optional one-line brief for a lead in a digest.
// It is never part of scoring; scores stay deterministic and rule-based.
type Summarizer interface {
	// SummarizeLead creates a 1-2 sentence note on what the lead is about
	// and why the pain looks real.
	SummarizeLead(ctx context.Context, title, excerpt, breakdown string) (string, error)
}

// OpenAIClient implements Summarizer using OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config) (*OpenAIClient, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("ai: openai model must be specified")
	}
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	return &OpenAIClient{client: c, model: cfg.Model}, nil
}

func (o *OpenAIClient) SummarizeLead(ctx context.Context, title, excerpt, breakdown string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()
	excerpt = strings.TrimSpace(excerpt)
	if len([]rune(excerpt)) > 1000 {
		excerpt = string([]rune(excerpt)[:1000])
	}

	sys := "You help review sales leads. Given a social-media post from a startup executive, " +
		"write 1-2 plain sentences on what engineering problem they describe. " +
		"No links, no bullet points, no speculation beyond the text."
	user := fmt.Sprintf("Title: %s\nExcerpt: %s\nMatched signals: %s", title, excerpt, breakdown)
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sys},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.2,
	})
	if err != nil {
		slog.Error("openai: summarize lead error", "err", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
