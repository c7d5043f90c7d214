package agent

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oscarrenalias/ai-research-content-generator/internal/config"
	"github.com/oscarrenalias/ai-research-content-generator/internal/corpus"
	"github.com/oscarrenalias/ai-research-content-generator/internal/llm"
	"github.com/oscarrenalias/ai-research-content-generator/internal/logger"
	"github.com/oscarrenalias/ai-research-content-generator/internal/model"
	"github.com/oscarrenalias/ai-research-content-generator/internal/prompt"
)

const (
	defaultBasePrompt = "Generate an engaging LinkedIn post based on the provided instructions."
	defaultStyleGuide = "Write in a professional, engaging LinkedIn style."
)

// Caps applied when folding stage outputs into the composition context.
const (
	ctxKeyPoints = 5
	ctxQuotes    = 3
	ctxTrends    = 4
	ctxStats     = 3
	ctxAngles    = 3
	ctxInsights  = 3
)

// ComposeAgent produces the final post from the instructions, the upstream
// reports, the style guide and a sample of example posts.
type ComposeAgent struct {
	llm   *llm.Client
	paths config.PathsConfig
	rng   *rand.Rand
}

// NewComposeAgent creates the composition stage. A nil rng gets a time-seeded
// source; tests pass a fixed seed.
func NewComposeAgent(client *llm.Client, paths config.PathsConfig, rng *rand.Rand) *ComposeAgent {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ComposeAgent{llm: client, paths: paths, rng: rng}
}

// Compose generates the post text. Unlike the earlier stages this one is
// fatal on failure: without a post the run has nothing to deliver.
func (a *ComposeAgent) Compose(ctx context.Context, instructions string, links *model.LinkReport, research *model.ResearchReport) (string, error) {
	basePrompt := a.loadFile("prompt.txt", defaultBasePrompt, "base prompt")
	styleGuide := a.loadFile("linkedin_style_prompt.txt", defaultStyleGuide, "style guide")
	examples := a.loadExamples()

	context := BuildContext(instructions, links, research)
	post, err := a.llm.Generate(ctx, prompt.ComposeSystem,
		prompt.Composition(basePrompt, styleGuide, context, examples))
	if err != nil {
		return "", fmt.Errorf("post composition failed: %w", err)
	}
	if post == "" {
		return "", fmt.Errorf("post composition returned empty content")
	}
	logger.Log.Infof("composed post: %d characters", len(post))
	return post, nil
}

// BuildContext folds the instructions and both reports into the context block
// of the composition prompt. Sections for absent or empty reports are omitted.
func BuildContext(instructions string, links *model.LinkReport, research *model.ResearchReport) string {
	var sb strings.Builder
	sb.WriteString("ORIGINAL INSTRUCTIONS:\n")
	sb.WriteString(instructions)

	if links != nil && links.SuccessfulAnalyses > 0 {
		sb.WriteString("\n\nLINK ANALYSIS INSIGHTS:\n")
		fmt.Fprintf(&sb, "Themes: %s\n", strings.Join(links.AggregatedThemes, ", "))
		writeCapped(&sb, "Key points", links.AllKeyPoints, ctxKeyPoints)
		writeCapped(&sb, "Relevant quotes", links.AllQuotes, ctxQuotes)
	}

	if research != nil && len(research.TopicsResearched) > 0 {
		sb.WriteString("\n\nRESEARCH FINDINGS:\n")
		fmt.Fprintf(&sb, "Topics researched: %s\n", strings.Join(research.TopicsResearched, ", "))
		writeCapped(&sb, "Current trends", research.AllTrends, ctxTrends)
		writeCapped(&sb, "Key statistics", research.AllStatistics, ctxStats)
		writeCapped(&sb, "LinkedIn angles", research.AllAngles, ctxAngles)
		writeCapped(&sb, "Actionable insights", research.AllActionableInsights, ctxInsights)
	}
	return sb.String()
}

func writeCapped(sb *strings.Builder, label string, items []string, max int) {
	if len(items) == 0 {
		return
	}
	if len(items) > max {
		items = items[:max]
	}
	fmt.Fprintf(sb, "%s:\n", label)
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
}

// loadFile reads one prompt file from the input directory, falling back to
// the built-in default when missing.
func (a *ComposeAgent) loadFile(name, fallback, what string) string {
	path := filepath.Join(a.paths.InputDir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Log.Warnf("%s not found at %s, using default", what, path)
		return fallback
	}
	content := strings.TrimSpace(string(raw))
	if content == "" {
		return fallback
	}
	return content
}

func (a *ComposeAgent) loadExamples() []string {
	posts, err := corpus.Load(a.paths.PostsDir)
	if err != nil {
		logger.Log.Warnf("error loading example posts: %v", err)
		return nil
	}
	sampled := corpus.Sample(posts, a.rng)
	out := make([]string, 0, len(sampled))
	for _, p := range sampled {
		out = append(out, p.Content)
	}
	logger.Log.Infof("using %d of %d example posts for style reference", len(out), len(posts))
	return out
}
