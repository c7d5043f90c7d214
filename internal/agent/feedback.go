package agent

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/oscarrenalias/ai-research-content-generator/internal/config"
	"github.com/oscarrenalias/ai-research-content-generator/internal/llm"
	"github.com/oscarrenalias/ai-research-content-generator/internal/logger"
	"github.com/oscarrenalias/ai-research-content-generator/internal/model"
	"github.com/oscarrenalias/ai-research-content-generator/internal/parse"
	"github.com/oscarrenalias/ai-research-content-generator/internal/prompt"
)

const (
	defaultSubScore    = 5.0
	maxRecommendations = 8
	wordsPerMinute     = 200
)

// FeedbackAgent critiques a generated post along four dimensions and compiles
// the results into one scored report. Each dimension degrades independently:
// a failed critique becomes a partial record with the default score, never an
// aborted report.
type FeedbackAgent struct {
	llm *llm.Client
}

// NewFeedbackAgent creates the feedback stage.
func NewFeedbackAgent(client *llm.Client) *FeedbackAgent {
	return &FeedbackAgent{llm: client}
}

// Analyze runs the four critique dimensions and assembles the report.
func (a *FeedbackAgent) Analyze(ctx context.Context, post, instructions, styleGuide string) *model.Feedback {
	instr := a.critique(ctx, "instruction_alignment", prompt.InstructionAlignment(post, instructions))
	style := a.critique(ctx, "style_compliance", prompt.StyleCompliance(post, styleGuide))
	read := a.critique(ctx, "readability_accessibility", prompt.Readability(post))
	structure := a.critique(ctx, "structural_analysis", prompt.Structure(post))

	scores := []float64{
		scoreFrom(instr, "alignment_score"),
		scoreFrom(style, "style_score"),
		scoreFrom(read, "readability_score"),
		scoreFrom(structure, "structure_score"),
	}
	overall := roundTo1(mean(scores))

	return &model.Feedback{
		OverallScore:         overall,
		Grade:                ScoreToGrade(overall),
		Summary:              overallSummary(overall),
		InstructionAlignment: instr,
		StyleCompliance:      style,
		Readability:          read,
		Structure:            structure,
		Recommendations:      CompileRecommendations([]map[string]any{instr, style, read, structure}),
		Metrics:              Metrics(post),
	}
}

// critique runs one dimension and parses its JSON. Failures yield a partial
// record carrying whatever raw text came back.
func (a *FeedbackAgent) critique(ctx context.Context, name, userPrompt string) map[string]any {
	resp, err := a.llm.Generate(ctx, prompt.FeedbackSystem, userPrompt)
	if err != nil {
		logger.Log.Warnf("%s analysis failed: %v", name, err)
		return partialCritique(name, err.Error())
	}
	if obj, ok := parse.Object(resp); ok {
		return obj
	}
	logger.Log.Warnf("%s analysis returned unstructured output", name)
	return partialCritique(name, resp)
}

func partialCritique(name, raw string) map[string]any {
	return map[string]any{
		"analysis_type": name,
		"status":        "partial",
		"raw_content":   parse.Truncate(raw, 500),
		"note":          "Analysis completed but structured data extraction failed",
	}
}

// scoreFrom reads a numeric sub-score, defaulting to 5 when the dimension
// degraded or the model omitted it.
func scoreFrom(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return defaultSubScore
}

func mean(scores []float64) float64 {
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ScoreToGrade maps the overall score onto a letter grade.
func ScoreToGrade(score float64) string {
	switch {
	case score >= 9:
		return "A"
	case score >= 8:
		return "B+"
	case score >= 7:
		return "B"
	case score >= 6:
		return "C+"
	case score >= 5:
		return "C"
	default:
		return "D"
	}
}

func overallSummary(score float64) string {
	switch {
	case score >= 8:
		return "Excellent post that effectively addresses the requirements with strong style and structure."
	case score >= 6:
		return "Good post with solid fundamentals. A few targeted improvements would strengthen it."
	case score >= 4:
		return "Adequate post that covers the basics but needs meaningful revision in several areas."
	default:
		return "The post needs substantial rework to meet the instructions and style expectations."
	}
}

// recommendationKeys are checked per analysis, in order.
var recommendationKeys = []string{
	"specific_recommendations",
	"style_recommendations",
	"accessibility_improvements",
	"structural_recommendations",
	"areas_for_improvement",
}

// CompileRecommendations pulls up to two items per key from each analysis,
// deduplicates preserving first-seen order, and caps the list at 8.
func CompileRecommendations(analyses []map[string]any) []string {
	var recs []string
	for _, analysis := range analyses {
		for _, key := range recommendationKeys {
			items, ok := analysis[key].([]any)
			if !ok {
				continue
			}
			taken := 0
			for _, item := range items {
				if taken >= 2 {
					break
				}
				if s, ok := item.(string); ok && s != "" {
					recs = append(recs, s)
					taken++
				}
			}
		}
	}
	recs = parse.StableDedup(recs)
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// Metrics computes mechanical post measurements. Reading time is at least one
// minute for any non-trivial post.
func Metrics(post string) model.PostMetrics {
	words := len(strings.Fields(post))
	paragraphs := 0
	for _, p := range strings.Split(post, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}
	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return model.PostMetrics{
		CharacterCount:     len(post),
		WordCount:          words,
		ParagraphCount:     paragraphs,
		ReadingTimeMinutes: minutes,
	}
}

// LoadContent reads the generated post, instructions and style guide from the
// configured directories for a standalone feedback run. Only the post is
// required; the other two degrade to empty strings with a warning.
func LoadContent(paths config.PathsConfig) (post, instructions, styleGuide string, err error) {
	postPath := filepath.Join(paths.OutputDir, "result.txt")
	raw, err := os.ReadFile(postPath)
	if err != nil {
		return "", "", "", fmt.Errorf("no generated post found at %s, run generate first: %w", postPath, err)
	}
	post = strings.TrimSpace(string(raw))

	instructions = readOptional(filepath.Join(paths.InputDir, "instructions.txt"), "instructions")
	styleGuide = readOptional(filepath.Join(paths.InputDir, "linkedin_style_prompt.txt"), "style guide")
	return post, instructions, styleGuide, nil
}

func readOptional(path, what string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Log.Warnf("%s not found at %s", what, path)
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// Format renders the feedback report as a readable text document.
func Format(f *model.Feedback) string {
	var sb strings.Builder
	sb.WriteString("LINKEDIN POST FEEDBACK REPORT\n")
	sb.WriteString(strings.Repeat("=", 40) + "\n\n")
	fmt.Fprintf(&sb, "Overall Score: %.1f/10 (Grade: %s)\n", f.OverallScore, f.Grade)
	fmt.Fprintf(&sb, "Summary: %s\n\n", f.Summary)

	fmt.Fprintf(&sb, "Post Metrics:\n")
	fmt.Fprintf(&sb, "- Characters: %d\n", f.Metrics.CharacterCount)
	fmt.Fprintf(&sb, "- Words: %d\n", f.Metrics.WordCount)
	fmt.Fprintf(&sb, "- Paragraphs: %d\n", f.Metrics.ParagraphCount)
	fmt.Fprintf(&sb, "- Reading time: ~%d min\n\n", f.Metrics.ReadingTimeMinutes)

	writeDimension(&sb, "Instruction Alignment", f.InstructionAlignment, "alignment_score")
	writeDimension(&sb, "Style Compliance", f.StyleCompliance, "style_score")
	writeDimension(&sb, "Readability & Accessibility", f.Readability, "readability_score")
	writeDimension(&sb, "Structure", f.Structure, "structure_score")

	if len(f.Recommendations) > 0 {
		sb.WriteString("Recommendations:\n")
		for i, rec := range f.Recommendations {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, rec)
		}
	}
	return sb.String()
}

func writeDimension(sb *strings.Builder, title string, analysis map[string]any, scoreKey string) {
	fmt.Fprintf(sb, "%s: %.1f/10\n", title, scoreFrom(analysis, scoreKey))
	if status, ok := analysis["status"].(string); ok && status == "partial" {
		sb.WriteString("  (structured analysis unavailable)\n")
	}
	sb.WriteString("\n")
}
