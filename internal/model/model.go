// Package model defines the records produced by the pipeline stages. The json
// tags double as the schemas requested from the LLM; records are never
// mutated after their stage completes.
package model

import "time"

// Analysis status values for per-URL records.
const (
	StatusSuccess  = "success"         // clean JSON parsed from the model
	StatusPartial  = "partial_success" // content fetched, structure salvaged heuristically
	StatusFallback = "fallback"        // extraction failed, record inferred from the URL
	StatusFailed   = "failed"
)

// LinkAnalysis is the per-URL analysis record.
type LinkAnalysis struct {
	URL               string   `json:"url"`
	Status            string   `json:"status"`
	Title             string   `json:"title"`
	MainTheme         string   `json:"main_theme"`
	KeyPoints         []string `json:"key_points"`
	RelevantQuotes    []string `json:"relevant_quotes"`
	SupportingData    []string `json:"supporting_data"`
	LinkedInRelevance string   `json:"linkedin_relevance"`
	Summary           string   `json:"summary"`
	ContentLength     int      `json:"content_length,omitempty"`
	Error             string   `json:"error,omitempty"`
}

// LinkReport aggregates all per-URL analyses for a run.
type LinkReport struct {
	URLsFound          []string       `json:"urls_found"`
	TotalURLs          int            `json:"total_urls"`
	SuccessfulAnalyses int            `json:"successful_analyses"`
	PartialAnalyses    int            `json:"partial_analyses"`
	FailedAnalyses     int            `json:"failed_analyses"`
	ContentSummaries   []LinkAnalysis `json:"content_summaries"`
	AggregatedThemes   []string       `json:"aggregated_themes"`
	AllKeyPoints       []string       `json:"all_key_points"`
	AllQuotes          []string       `json:"all_quotes"`
	Summary            string         `json:"summary"`
}

// TopicResearch holds the findings for one researched topic. Error is set
// only when the research call itself failed; all other degradations fill the
// lists with heuristic content instead.
type TopicResearch struct {
	Topic                  string   `json:"topic"`
	CurrentTrends          []string `json:"current_trends"`
	KeyStatistics          []string `json:"key_statistics"`
	IndustryImplications   []string `json:"industry_implications"`
	ExpertPerspectives     []string `json:"expert_perspectives"`
	LinkedInAngles         []string `json:"linkedin_angles"`
	SupportingArguments    []string `json:"supporting_arguments"`
	PotentialControversies []string `json:"potential_controversies"`
	ActionableInsights     []string `json:"actionable_insights"`
	Error                  string   `json:"error,omitempty"`
}

// ResearchReport aggregates the per-topic findings. Topics whose research
// errored are excluded from the aggregate lists.
type ResearchReport struct {
	TopicsResearched      []string        `json:"topics_researched"`
	Results               []TopicResearch `json:"research_results"`
	AllTrends             []string        `json:"all_trends"`
	AllStatistics         []string        `json:"all_statistics"`
	AllImplications       []string        `json:"all_implications"`
	AllAngles             []string        `json:"all_angles"`
	AllActionableInsights []string        `json:"all_actionable_insights"`
	Summary               string          `json:"summary"`
}

// PostMetrics are mechanical measurements of the generated post.
type PostMetrics struct {
	CharacterCount     int `json:"character_count"`
	WordCount          int `json:"word_count"`
	ParagraphCount     int `json:"paragraph_count"`
	ReadingTimeMinutes int `json:"reading_time_minutes"`
}

// Feedback is the full critique report for a generated post. The four
// analyses keep the loose map shape the critique prompts return, since their
// sub-structure is advisory and tolerant of absence.
type Feedback struct {
	OverallScore         float64        `json:"overall_score"`
	Grade                string         `json:"grade"`
	Summary              string         `json:"summary"`
	InstructionAlignment map[string]any `json:"instruction_alignment"`
	StyleCompliance      map[string]any `json:"style_compliance"`
	Readability          map[string]any `json:"readability_accessibility"`
	Structure            map[string]any `json:"structural_analysis"`
	Recommendations      []string       `json:"recommendations"`
	Metrics              PostMetrics    `json:"post_metrics"`
}

// RunRecord is the metadata persisted for one pipeline run.
type RunRecord struct {
	Timestamp        time.Time `json:"timestamp"`
	RunID            string    `json:"workflow_id"`
	Instructions     string    `json:"instructions"`
	FinalPost        string    `json:"final_post"`
	LinkSummary      string    `json:"link_analysis_summary"`
	ResearchSummary  string    `json:"research_summary"`
	PostLength       int       `json:"post_length"`
	LinksAnalyzed    int       `json:"links_analyzed"`
	TopicsResearched int       `json:"topics_researched"`
}
