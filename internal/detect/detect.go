// Package detect finds and normalizes URLs inside instruction text, and
// provides the URL-based hints used for fallback analysis records.
package detect

import (
	"net/url"
	"regexp"
	"strings"
)

var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?://[^\s]+`),
	regexp.MustCompile(`www\.[^\s]+`),
	regexp.MustCompile(`[a-zA-Z0-9-]+\.[a-zA-Z]{2,}[^\s]*`),
}

var trailingPunct = regexp.MustCompile(`[.,;!?]+$`)

// URLs returns the normalized, deduplicated URLs found in text, in
// first-seen order across the three patterns. Candidates shorter than 10
// characters or without a dot are discarded. Never fails.
func URLs(text string) []string {
	var raw []string
	for _, pat := range urlPatterns {
		raw = append(raw, pat.FindAllString(text, -1)...)
	}

	var cleaned []string
	for _, u := range raw {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			if !strings.Contains(u, ".") {
				continue
			}
			u = "https://" + u
		}
		u = trailingPunct.ReplaceAllString(u, "")
		if len(u) > 10 && strings.Contains(u, ".") {
			cleaned = append(cleaned, u)
		}
	}

	seen := make(map[string]struct{}, len(cleaned))
	var out []string
	for _, u := range cleaned {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// TitleHint derives a display title from the URL alone. Used when content
// extraction fails and the record has to be built without page data.
func TitleHint(rawURL string) string {
	switch {
	case strings.Contains(rawURL, "twitter.com") || strings.Contains(rawURL, "x.com"):
		return "Twitter/X Post"
	case strings.Contains(rawURL, "nytimes.com"):
		return "New York Times Article"
	case strings.Contains(rawURL, "linkedin.com"):
		return "LinkedIn Content"
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "Web Content"
	}
	return "Content from " + strings.TrimPrefix(parsed.Host, "www.")
}

// ThemeHint infers a coarse content theme from URL substrings. This is a
// replaceable heuristic, not a taxonomy.
func ThemeHint(rawURL string) string {
	lower := strings.ToLower(rawURL)
	switch {
	case containsAny(lower, "ai", "artificial-intelligence", "machine-learning", "chatbot"):
		return "Artificial Intelligence"
	case containsAny(lower, "tech", "technology", "innovation"):
		return "Technology"
	case containsAny(lower, "business", "finance", "economy"):
		return "Business"
	case containsAny(lower, "health", "mental-health", "psychology"):
		return "Health & Wellness"
	case strings.Contains(lower, "twitter.com") || strings.Contains(lower, "x.com"):
		return "Social Media Discussion"
	case strings.Contains(lower, "news"):
		return "News & Current Events"
	}
	return "Web Content"
}

// FallbackKeyPoints produces the platform-specific key points for a URL whose
// content could not be retrieved.
func FallbackKeyPoints(rawURL string) []string {
	switch {
	case strings.Contains(rawURL, "twitter.com") || strings.Contains(rawURL, "x.com"):
		return []string{
			"Social media post from Twitter/X platform",
			"May contain opinions or breaking news",
			"Could include viral content or trending topics",
		}
	case strings.Contains(rawURL, "nytimes.com"):
		return []string{
			"News article from The New York Times",
			"Professional journalism and reporting",
			"Likely contains in-depth analysis of current events",
		}
	case strings.Contains(rawURL, "linkedin.com"):
		return []string{
			"Professional social media content",
			"Business or career-related information",
			"Professional networking context",
		}
	}
	return []string{"Web content from " + rawURL}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
