// Package corpus loads the user's example posts and samples a few of them
// for few-shot style reference.
package corpus

import (
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/oscarrenalias/ai-research-content-generator/internal/logger"
)

// Post is one example post from the corpus directory.
type Post struct {
	Filename string
	Content  string
}

// Posts exported from LinkedIn are wrapped in a CONTENT block followed by a
// RAW DATA section; plain .txt files are used as-is.
var contentBlock = regexp.MustCompile(`(?s)CONTENT:\s*\n-+\s*\n(.*?)(?:\n\nRAW DATA|$)`)

var excessBlankLines = regexp.MustCompile(`\n\s*\n\s*\n+`)

// Load reads every .txt file in dir, unwraps the export format and filters
// out unusable posts (too short, or extraction error placeholders). A missing
// directory yields an empty corpus, not an error.
func Load(dir string) ([]Post, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Log.Warnf("posts directory not found: %s", dir)
			return nil, nil
		}
		return nil, err
	}

	var posts []Post
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Log.Warnf("error reading post %s: %v", entry.Name(), err)
			continue
		}

		content := Unwrap(string(raw))
		if len(content) <= 50 || strings.HasPrefix(content, "Error extracting") {
			continue
		}
		posts = append(posts, Post{Filename: entry.Name(), Content: content})
	}
	return posts, nil
}

// Unwrap extracts the post body from the export wrapper when present and
// collapses runs of blank lines.
func Unwrap(raw string) string {
	if m := contentBlock.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	content := strings.TrimSpace(raw)
	return excessBlankLines.ReplaceAllString(content, "\n\n")
}

// Sample picks 3 or 4 posts uniformly at random for few-shot prompting. When
// fewer than 3 posts exist all of them are returned; an empty corpus yields
// an empty selection.
func Sample(posts []Post, rng *rand.Rand) []Post {
	if len(posts) == 0 {
		return nil
	}
	count := 3 + rng.Intn(2)
	if count > len(posts) {
		count = len(posts)
	}

	idx := rng.Perm(len(posts))[:count]
	out := make([]Post, 0, count)
	for _, i := range idx {
		out = append(out, posts[i])
	}
	return out
}
