// Package tavily is a minimal client for the Tavily search and extract APIs.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/oscarrenalias/ai-research-content-generator/internal/search"
)

const (
	searchURL  = "https://api.tavily.com/search"
	extractURL = "https://api.tavily.com/extract"
)

// Client calls the Tavily REST API.
type Client struct {
	apiKey string
	client *http.Client
}

// NewClient creates a Tavily client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		client: http.DefaultClient,
	}
}

var (
	_ search.Searcher  = (*Client)(nil)
	_ search.Extractor = (*Client)(nil)
)

// SearchRequest is the Tavily search payload.
type SearchRequest struct {
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth,omitempty"`
	MaxResults        int    `json:"max_results,omitempty"`
	IncludeRawContent bool   `json:"include_raw_content,omitempty"`
	IncludeAnswer     bool   `json:"include_answer,omitempty"`
}

// SearchResponse is the Tavily search reply.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Answer  string         `json:"answer"`
}

// SearchResult is one Tavily search hit.
type SearchResult struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Content    string  `json:"content"`
	RawContent string  `json:"raw_content"`
	Score      float64 `json:"score"`
}

// ExtractRequest is the Tavily extract payload.
type ExtractRequest struct {
	URLs []string `json:"urls"`
}

// ExtractResponse is the Tavily extract reply.
type ExtractResponse struct {
	Results       []ExtractResult `json:"results"`
	FailedResults []FailedResult  `json:"failed_results"`
}

// ExtractResult is the extracted content for one URL.
type ExtractResult struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	RawContent string `json:"raw_content"`
}

// FailedResult reports a URL Tavily could not extract.
type FailedResult struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Search implements search.Searcher.
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	payload := SearchRequest{
		Query:             req.Query,
		SearchDepth:       req.Depth,
		MaxResults:        req.MaxResults,
		IncludeRawContent: req.IncludeRawContent,
	}
	if payload.SearchDepth == "" {
		payload.SearchDepth = "basic"
	}
	if payload.MaxResults == 0 {
		payload.MaxResults = 5
	}

	var resp SearchResponse
	if err := c.post(ctx, searchURL, payload, &resp); err != nil {
		return nil, err
	}

	var results []search.Result
	for _, r := range resp.Results {
		results = append(results, search.Result{
			Title:      r.Title,
			URL:        r.URL,
			Content:    r.Content,
			RawContent: r.RawContent,
			Score:      r.Score,
		})
	}
	return &search.Response{Results: results}, nil
}

// Extract implements search.Extractor. URLs Tavily reports as failed are
// simply absent from the result slice.
func (c *Client) Extract(ctx context.Context, urls []string) ([]search.ExtractResult, error) {
	var resp ExtractResponse
	if err := c.post(ctx, extractURL, ExtractRequest{URLs: urls}, &resp); err != nil {
		return nil, err
	}

	var results []search.ExtractResult
	for _, r := range resp.Results {
		results = append(results, search.ExtractResult{
			URL:        r.URL,
			Title:      r.Title,
			RawContent: r.RawContent,
		})
	}
	return results, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Add("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Add("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read body failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("tavily api error (status %d): %s", res.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal response failed: %w", err)
	}
	return nil
}
