package agent

import (
	"context"
	"fmt"

	"github.com/oscarrenalias/ai-research-content-generator/internal/corpus"
	"github.com/oscarrenalias/ai-research-content-generator/internal/llm"
	"github.com/oscarrenalias/ai-research-content-generator/internal/logger"
	"github.com/oscarrenalias/ai-research-content-generator/internal/prompt"
)

const styleBatchSize = 5

// StyleAgent derives a reusable style guide from the user's example posts.
// Posts are analyzed in batches on the cheaper model; the synthesis pass runs
// on the main model.
type StyleAgent struct {
	batch    *llm.Client
	synth    *llm.Client
	postsDir string
}

// NewStyleAgent creates the style analysis workflow.
func NewStyleAgent(batch, synth *llm.Client, postsDir string) *StyleAgent {
	return &StyleAgent{batch: batch, synth: synth, postsDir: postsDir}
}

// Analyze loads the corpus, analyzes it batch by batch, and returns the
// synthesized style guide text. Fails only when no posts could be analyzed.
func (a *StyleAgent) Analyze(ctx context.Context) (string, error) {
	posts, err := corpus.Load(a.postsDir)
	if err != nil {
		return "", fmt.Errorf("failed to load example posts: %w", err)
	}
	if len(posts) == 0 {
		return "", fmt.Errorf("no usable posts found in %s", a.postsDir)
	}
	logger.Log.Infof("analyzing style from %d posts in batches of %d", len(posts), styleBatchSize)

	var analyses []string
	for start := 0; start < len(posts); start += styleBatchSize {
		end := start + styleBatchSize
		if end > len(posts) {
			end = len(posts)
		}
		contents := make([]string, 0, end-start)
		for _, p := range posts[start:end] {
			contents = append(contents, p.Content)
		}

		resp, err := a.batch.Generate(ctx, prompt.StyleSystem, prompt.StyleBatch(contents))
		if err != nil {
			logger.Log.Warnf("style analysis failed for batch starting at %d: %v", start, err)
			continue
		}
		analyses = append(analyses, resp)
	}
	if len(analyses) == 0 {
		return "", fmt.Errorf("all style analysis batches failed")
	}
	if len(analyses) == 1 {
		return analyses[0], nil
	}

	guide, err := a.synth.Generate(ctx, prompt.StyleSystem, prompt.StyleSynthesis(analyses))
	if err != nil {
		return "", fmt.Errorf("style synthesis failed: %w", err)
	}
	return guide, nil
}
