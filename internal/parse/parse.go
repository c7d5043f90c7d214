// Package parse salvages structure from free-text LLM responses. Every
// function here is total: no panics, no errors, only "found / not found".
package parse

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Fence strips a leading ```json / ``` fence pair from a response.
func Fence(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// span returns the first balanced open..close region of text, honoring JSON
// string and escape context so braces inside string values do not end the
// scan early.
func span(text string, open, close byte) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case open:
			if start < 0 {
				start = i
			}
			depth++
		case close:
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// Object finds the first JSON object embedded in text and unmarshals it.
func Object(text string) (map[string]any, bool) {
	var m map[string]any
	if !ObjectInto(text, &m) {
		return nil, false
	}
	return m, true
}

// ObjectInto finds the first JSON object embedded in text and unmarshals it
// into v. Returns false when no parseable object exists.
func ObjectInto(text string, v any) bool {
	raw, ok := span(Fence(text), '{', '}')
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), v) == nil
}

// StringArray finds the first JSON array embedded in text and returns its
// string elements. Non-string elements are skipped.
func StringArray(text string) ([]string, bool) {
	raw, ok := span(Fence(text), '[', ']')
	if !ok {
		return nil, false
	}
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false
	}
	var out []string
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

var bulletMarker = regexp.MustCompile(`^[-•*]\s*|^\d+[.)]\s*`)

// Bullets extracts up to max bullet-style lines from text, markers stripped.
func Bullets(text string, max int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		stripped := bulletMarker.ReplaceAllString(line, "")
		if stripped == line {
			continue
		}
		stripped = strings.TrimSpace(stripped)
		if stripped == "" {
			continue
		}
		out = append(out, stripped)
		if len(out) >= max {
			break
		}
	}
	return out
}

var quoted = regexp.MustCompile(`"([^"]+)"`)

// Quotes extracts up to max quoted substrings from lines long enough to hold
// a real quote.
func Quotes(text string, max int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 20 {
			continue
		}
		for _, m := range quoted.FindAllStringSubmatch(line, -1) {
			out = append(out, m[1])
			if len(out) >= max {
				return out
			}
		}
	}
	return out
}

// StableDedup removes duplicate strings while preserving first-seen order.
func StableDedup(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Truncate shortens s to at most n bytes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
