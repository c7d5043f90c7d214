// Package llm wraps the eino OpenAI chat model behind a plain-text call
// surface shared by every stage: one system prompt, one user prompt, one
// trimmed string back.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"
)

// Generator is the subset of the eino chat model this pipeline uses.
type Generator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// Options configures one model client. Each stage gets its own client so the
// cheaper models can serve research and feedback.
type Options struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Client is a rate-limited chat model handle.
type Client struct {
	cm      Generator
	limiter *rate.Limiter
}

// New initializes an eino OpenAI chat model with the given options.
func New(ctx context.Context, opts Options, limiter *rate.Limiter) (*Client, error) {
	temperature := opts.Temperature
	maxTokens := opts.MaxTokens
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     opts.BaseURL,
		APIKey:      opts.APIKey,
		Model:       opts.Model,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("llm init failed: %w", err)
	}
	return &Client{cm: cm, limiter: limiter}, nil
}

// NewWithModel wraps an existing chat model. Used by tests.
func NewWithModel(cm Generator, limiter *rate.Limiter) *Client {
	return &Client{cm: cm, limiter: limiter}
}

const (
	maxRetries = 3
	baseDelay  = 2 * time.Second
)

// Generate sends one system+user exchange and returns the trimmed response
// text. Rate-limit (429) failures are retried with exponential backoff; any
// other error is returned to the caller as-is.
func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: system},
		{Role: schema.User, Content: user},
	}

	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return "", err
			}
		}

		resp, err := c.cm.Generate(ctx, messages)
		if err != nil {
			if isRateLimited(err) && i < maxRetries {
				lastErr = err
				select {
				case <-time.After(baseDelay * time.Duration(1<<i)):
				case <-ctx.Done():
					return "", ctx.Err()
				}
				continue
			}
			return "", err
		}
		return strings.TrimSpace(resp.Content), nil
	}
	return "", lastErr
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}
