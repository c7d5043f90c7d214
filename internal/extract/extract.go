// Package extract turns a URL into page title and text content, preferring
// the Tavily extract API and falling back to local readability extraction.
package extract

import (
	"context"
	"fmt"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/oscarrenalias/ai-research-content-generator/internal/logger"
	"github.com/oscarrenalias/ai-research-content-generator/internal/search"
)

// Result is the extracted content of one page.
type Result struct {
	Title   string
	Content string
}

// Extractor fetches the readable content of a URL.
type Extractor interface {
	Extract(ctx context.Context, url string) (Result, error)
}

// Readability extracts content locally with go-shiori/go-readability.
type Readability struct {
	Timeout time.Duration
}

// NewReadability creates a local extractor with a 30s fetch timeout.
func NewReadability() *Readability {
	return &Readability{Timeout: 30 * time.Second}
}

// Extract implements Extractor.
func (r *Readability) Extract(_ context.Context, url string) (Result, error) {
	article, err := readability.FromURL(url, r.Timeout)
	if err != nil {
		return Result{}, fmt.Errorf("readability fetch failed: %w", err)
	}
	return Result{Title: article.Title, Content: article.TextContent}, nil
}

// Tavily extracts content through the Tavily extract endpoint, falling back
// to the local extractor when the API fails or returns nothing usable.
type Tavily struct {
	api      search.Extractor
	fallback Extractor
}

// NewTavily creates an API-backed extractor with a local fallback. fallback
// may be nil.
func NewTavily(api search.Extractor, fallback Extractor) *Tavily {
	return &Tavily{api: api, fallback: fallback}
}

// Extract implements Extractor.
func (t *Tavily) Extract(ctx context.Context, url string) (Result, error) {
	results, err := t.api.Extract(ctx, []string{url})
	if err == nil {
		for _, r := range results {
			if r.URL == url || len(results) == 1 {
				if len(r.RawContent) > 0 {
					return Result{Title: r.Title, Content: r.RawContent}, nil
				}
			}
		}
		err = fmt.Errorf("tavily extract returned no content for %s", url)
	}

	if t.fallback == nil {
		return Result{}, err
	}
	logger.Log.Warnf("tavily extract failed for %s, trying readability: %v", url, err)
	return t.fallback.Extract(ctx, url)
}
