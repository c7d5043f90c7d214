// Package search defines the provider-neutral web search and content
// extraction interfaces used by the research and link analysis stages.
package search

import "context"

// Searcher performs a web search.
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Extractor fetches cleaned page content for a set of URLs.
type Extractor interface {
	Extract(ctx context.Context, urls []string) ([]ExtractResult, error)
}

// Request is a generic search request.
type Request struct {
	Query             string
	Depth             string // "basic" or "advanced"
	MaxResults        int
	IncludeRawContent bool
}

// Response is a generic search response.
type Response struct {
	Results []Result
}

// Result is a single ranked search hit.
type Result struct {
	Title      string
	URL        string
	Content    string
	RawContent string
	Score      float64
}

// ExtractResult is the extracted content for one URL.
type ExtractResult struct {
	URL        string
	Title      string
	RawContent string
}
