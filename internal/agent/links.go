package agent

import (
	"context"
	"fmt"

	"github.com/oscarrenalias/ai-research-content-generator/internal/detect"
	"github.com/oscarrenalias/ai-research-content-generator/internal/extract"
	"github.com/oscarrenalias/ai-research-content-generator/internal/llm"
	"github.com/oscarrenalias/ai-research-content-generator/internal/logger"
	"github.com/oscarrenalias/ai-research-content-generator/internal/model"
	"github.com/oscarrenalias/ai-research-content-generator/internal/parse"
	"github.com/oscarrenalias/ai-research-content-generator/internal/prompt"
)

// Page content is truncated before prompting to bound token usage.
const maxContentChars = 8000

// LinkAgent detects URLs in the instructions and turns each into a
// structured analysis record. It is total: every URL yields a record, in the
// worst case inferred from the URL string alone.
type LinkAgent struct {
	llm       *llm.Client
	extractor extract.Extractor
}

// NewLinkAgent creates the link analysis stage.
func NewLinkAgent(client *llm.Client, extractor extract.Extractor) *LinkAgent {
	return &LinkAgent{llm: client, extractor: extractor}
}

// AnalyzeAll runs the full link analysis workflow over the instruction text.
func (a *LinkAgent) AnalyzeAll(ctx context.Context, instructions string) *model.LinkReport {
	urls := detect.URLs(instructions)
	logger.Log.Infof("found %d URLs in instructions", len(urls))

	if len(urls) == 0 {
		return &model.LinkReport{
			URLsFound: []string{},
			Summary:   "No links found in instructions to analyze.",
		}
	}

	report := &model.LinkReport{
		URLsFound: urls,
		TotalURLs: len(urls),
	}

	var themes, keyPoints, quotes []string
	for _, u := range urls {
		analysis := a.analyze(ctx, u)
		report.ContentSummaries = append(report.ContentSummaries, analysis)

		switch analysis.Status {
		case model.StatusSuccess:
			report.SuccessfulAnalyses++
		case model.StatusPartial, model.StatusFallback:
			report.PartialAnalyses++
		default:
			report.FailedAnalyses++
		}

		// Partial and fallback records still carry usable signal.
		if analysis.Status == model.StatusFailed {
			continue
		}
		if analysis.MainTheme != "" {
			themes = append(themes, analysis.MainTheme)
		}
		keyPoints = append(keyPoints, analysis.KeyPoints...)
		quotes = append(quotes, analysis.RelevantQuotes...)
	}

	report.AggregatedThemes = parse.StableDedup(themes)
	report.AllKeyPoints = keyPoints
	report.AllQuotes = quotes
	report.Summary = fmt.Sprintf(
		"Analyzed %d URLs with %d successful and %d partial analyses. Found %d unique themes and %d key points.",
		len(urls), report.SuccessfulAnalyses, report.PartialAnalyses,
		len(report.AggregatedThemes), len(keyPoints))

	logger.Log.Infof("link analysis complete: %d success, %d partial, %d failed",
		report.SuccessfulAnalyses, report.PartialAnalyses, report.FailedAnalyses)
	return report
}

func (a *LinkAgent) analyze(ctx context.Context, url string) model.LinkAnalysis {
	logger.Log.Infof("fetching content from %s", url)

	res, err := a.extractor.Extract(ctx, url)
	if err != nil {
		logger.Log.Warnf("extraction failed for %s: %v", url, err)
		return fallbackAnalysis(url, err.Error())
	}
	if len(res.Content) < 50 {
		logger.Log.Warnf("minimal content received from %s", url)
		return fallbackAnalysis(url, "minimal content received")
	}

	content := res.Content
	if len(content) > maxContentChars {
		content = content[:maxContentChars]
	}

	resp, err := a.llm.Generate(ctx, prompt.LinkSystem, prompt.LinkAnalysis(url, content))
	if err != nil {
		logger.Log.Warnf("analysis call failed for %s: %v", url, err)
		return fallbackAnalysis(url, err.Error())
	}

	var analysis model.LinkAnalysis
	if parse.ObjectInto(resp, &analysis) {
		analysis.URL = url
		analysis.Status = model.StatusSuccess
		analysis.ContentLength = len(resp)
		if analysis.Title == "" {
			analysis.Title = res.Title
		}
		return analysis
	}

	logger.Log.Warnf("partial analysis for %s: response was not valid JSON", url)
	return salvageAnalysis(resp, url)
}

// salvageAnalysis recovers what it can from a non-JSON model response.
func salvageAnalysis(resp, url string) model.LinkAnalysis {
	keyPoints := parse.Bullets(resp, 5)
	if len(keyPoints) == 0 {
		keyPoints = []string{parse.Truncate(resp, 200)}
	}

	status := model.StatusFailed
	if len(resp) > 200 {
		status = model.StatusPartial
	}

	return model.LinkAnalysis{
		URL:               url,
		Status:            status,
		Title:             detect.TitleHint(url),
		MainTheme:         detect.ThemeHint(url),
		KeyPoints:         keyPoints,
		RelevantQuotes:    parse.Quotes(resp, 3),
		SupportingData:    []string{},
		LinkedInRelevance: "Supporting content for LinkedIn post",
		Summary:           parse.Truncate(resp, 300),
		ContentLength:     len(resp),
	}
}

// fallbackAnalysis builds a record purely from URL heuristics. Never fails.
func fallbackAnalysis(url, errMsg string) model.LinkAnalysis {
	title := detect.TitleHint(url)
	theme := detect.ThemeHint(url)
	return model.LinkAnalysis{
		URL:               url,
		Status:            model.StatusFallback,
		Error:             errMsg,
		Title:             title,
		MainTheme:         theme,
		KeyPoints:         detect.FallbackKeyPoints(url),
		RelevantQuotes:    []string{},
		SupportingData:    []string{},
		LinkedInRelevance: "Reference material from " + title,
		Summary: fmt.Sprintf(
			"Content from %s. Based on URL structure, this appears to be %s content. The specific details could not be retrieved due to access restrictions.",
			title, theme),
	}
}
