package agent

import (
	"context"
	"fmt"

	"github.com/oscarrenalias/ai-research-content-generator/internal/llm"
	"github.com/oscarrenalias/ai-research-content-generator/internal/logger"
	"github.com/oscarrenalias/ai-research-content-generator/internal/model"
	"github.com/oscarrenalias/ai-research-content-generator/internal/parse"
	"github.com/oscarrenalias/ai-research-content-generator/internal/prompt"
	"github.com/oscarrenalias/ai-research-content-generator/internal/search"
)

const (
	maxTopics         = 5
	maxTopicChars     = 100
	maxSearchResults  = 5
	maxContextChars   = 1000
	searchQuerySuffix = " recent developments trends 2024 2025"
)

// ResearchAgent extracts research topics from the instructions and the link
// report, then researches each one. A nil searcher disables web search and the
// research prompts fall back to model knowledge.
type ResearchAgent struct {
	llm      *llm.Client
	searcher search.Searcher
}

// NewResearchAgent creates the topic research stage.
func NewResearchAgent(client *llm.Client, searcher search.Searcher) *ResearchAgent {
	return &ResearchAgent{llm: client, searcher: searcher}
}

// Research runs topic extraction followed by per-topic research and returns
// the aggregated report. Individual topic failures degrade to records with an
// error field; the stage itself always produces a report.
func (a *ResearchAgent) Research(ctx context.Context, instructions string, links *model.LinkReport) *model.ResearchReport {
	topics := a.ExtractTopics(ctx, instructions, links)
	logger.Log.Infof("researching %d topics", len(topics))

	contextText := fmt.Sprintf("Instructions: %s... Link Analysis: %s",
		parse.Truncate(instructions, 500), links.Summary)
	if len(contextText) > maxContextChars {
		contextText = contextText[:maxContextChars]
	}

	report := &model.ResearchReport{TopicsResearched: topics}
	for _, topic := range topics {
		res := a.researchTopic(ctx, topic, contextText)
		report.Results = append(report.Results, res)
		if res.Error != "" {
			continue
		}
		report.AllTrends = append(report.AllTrends, res.CurrentTrends...)
		report.AllStatistics = append(report.AllStatistics, res.KeyStatistics...)
		report.AllImplications = append(report.AllImplications, res.IndustryImplications...)
		report.AllAngles = append(report.AllAngles, res.LinkedInAngles...)
		report.AllActionableInsights = append(report.AllActionableInsights, res.ActionableInsights...)
	}

	report.Summary = fmt.Sprintf(
		"Researched %d topics. Found %d trends, %d statistics, and %d LinkedIn angles.",
		len(topics), len(report.AllTrends), len(report.AllStatistics), len(report.AllAngles))
	return report
}

// ExtractTopics asks the model for 3-5 research topics. Degrades through
// bullet-list parsing and finally fixed defaults; never returns empty.
func (a *ResearchAgent) ExtractTopics(ctx context.Context, instructions string, links *model.LinkReport) []string {
	resp, err := a.llm.Generate(ctx, prompt.ResearchSystemKnowledge,
		prompt.TopicExtraction(instructions, links.AggregatedThemes, links.AllKeyPoints))
	if err != nil {
		logger.Log.Warnf("topic extraction failed: %v", err)
		return []string{"Industry trends", "Technology developments", "Professional insights"}
	}

	topics, ok := parse.StringArray(resp)
	if !ok {
		topics = topicsFromBullets(resp)
	}
	if len(topics) == 0 {
		topics = []string{"AI technology", "Industry trends", "Professional development"}
	}
	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	return topics
}

// topicsFromBullets salvages topic names from a bulleted or numbered list.
func topicsFromBullets(resp string) []string {
	var topics []string
	for _, line := range parse.Bullets(resp, maxTopics) {
		if len(line) <= 3 {
			continue
		}
		if len(line) > maxTopicChars {
			line = line[:maxTopicChars]
		}
		topics = append(topics, line)
	}
	return topics
}

func (a *ResearchAgent) researchTopic(ctx context.Context, topic, contextText string) model.TopicResearch {
	logger.Log.Infof("researching topic: %s", topic)

	searchResults, system := a.gatherSearchResults(ctx, topic)
	resp, err := a.llm.Generate(ctx, system, prompt.Research(topic, contextText, searchResults))
	if err != nil {
		logger.Log.Warnf("research call failed for %q: %v", topic, err)
		return erroredResearch(topic, err.Error())
	}

	var res model.TopicResearch
	if parse.ObjectInto(resp, &res) {
		res.Topic = topic
		return res
	}

	logger.Log.Warnf("research response for %q was not valid JSON, using heuristic findings", topic)
	return heuristicResearch(topic)
}

// gatherSearchResults queries the search provider and formats the hits for
// the research prompt. Returns the matching system prompt so the model knows
// whether results are available.
func (a *ResearchAgent) gatherSearchResults(ctx context.Context, topic string) (string, string) {
	if a.searcher == nil {
		return "", prompt.ResearchSystemKnowledge
	}

	resp, err := a.searcher.Search(ctx, &search.Request{
		Query:             topic + searchQuerySuffix,
		Depth:             "advanced",
		MaxResults:        maxSearchResults,
		IncludeRawContent: true,
	})
	if err != nil {
		logger.Log.Warnf("web search failed for %q: %v", topic, err)
		return "", prompt.ResearchSystemKnowledge
	}

	results := resp.Results
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	var titles, urls, contents []string
	for _, r := range results {
		titles = append(titles, r.Title)
		urls = append(urls, r.URL)
		content := r.Content
		if r.RawContent != "" {
			content = r.RawContent
		}
		contents = append(contents, content)
	}
	formatted := prompt.SearchResults(titles, urls, contents)
	if formatted == "" {
		return "", prompt.ResearchSystemKnowledge
	}
	return formatted, prompt.ResearchSystemSearch
}

// heuristicResearch fills the research schema with templated findings when the
// model response could not be parsed.
func heuristicResearch(topic string) model.TopicResearch {
	return model.TopicResearch{
		Topic:                  topic,
		CurrentTrends:          []string{fmt.Sprintf("Growing adoption of %s across industries", topic)},
		KeyStatistics:          []string{},
		IndustryImplications:   []string{fmt.Sprintf("Organizations are rethinking strategy around %s", topic)},
		ExpertPerspectives:     []string{},
		LinkedInAngles:         []string{fmt.Sprintf("Why %s matters for professionals today", topic)},
		SupportingArguments:    []string{},
		PotentialControversies: []string{},
		ActionableInsights:     []string{fmt.Sprintf("Stay informed about developments in %s", topic)},
	}
}

func erroredResearch(topic, errMsg string) model.TopicResearch {
	return model.TopicResearch{
		Topic:                  topic,
		CurrentTrends:          []string{},
		KeyStatistics:          []string{},
		IndustryImplications:   []string{},
		ExpertPerspectives:     []string{},
		LinkedInAngles:         []string{},
		SupportingArguments:    []string{},
		PotentialControversies: []string{},
		ActionableInsights:     []string{},
		Error:                  errMsg,
	}
}
