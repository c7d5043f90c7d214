package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oscarrenalias/ai-research-content-generator/internal/history"
	"github.com/oscarrenalias/ai-research-content-generator/internal/logger"
	"github.com/oscarrenalias/ai-research-content-generator/internal/model"
)

// State names the pipeline stages as they execute.
type State string

const (
	StateIdle        State = "idle"
	StateLinks       State = "link_analysis"
	StateResearch    State = "topic_research"
	StateComposition State = "composition"
	StateDone        State = "done"
	StateError       State = "error"
)

// Pipeline runs the stages in sequence: link analysis, topic research, then
// composition. Only composition is fatal; the earlier stages always yield a
// report, however degraded.
type Pipeline struct {
	links    *LinkAgent
	research *ResearchAgent
	compose  *ComposeAgent
	hist     *history.Store
	state    State
}

// NewPipeline wires the three stages together. hist may be nil to disable run
// history.
func NewPipeline(links *LinkAgent, research *ResearchAgent, compose *ComposeAgent, hist *history.Store) *Pipeline {
	return &Pipeline{links: links, research: research, compose: compose, hist: hist, state: StateIdle}
}

// State reports the current stage.
func (p *Pipeline) State() State {
	return p.state
}

// Run executes the full workflow for one set of instructions and returns the
// generated post.
func (p *Pipeline) Run(ctx context.Context, instructions string) (string, error) {
	runID := newRunID()
	start := time.Now()
	logger.Log.Infof("starting run %s", runID)

	p.state = StateLinks
	linkReport := p.links.AnalyzeAll(ctx, instructions)

	p.state = StateResearch
	researchReport := p.research.Research(ctx, instructions, linkReport)

	p.state = StateComposition
	post, err := p.compose.Compose(ctx, instructions, linkReport, researchReport)
	if err != nil {
		p.state = StateError
		return "", err
	}
	p.state = StateDone
	logger.Log.Infof("run %s finished in %s", runID, time.Since(start).Round(time.Millisecond))

	p.record(model.RunRecord{
		Timestamp:        time.Now(),
		RunID:            runID,
		Instructions:     instructions,
		FinalPost:        post,
		LinkSummary:      linkReport.Summary,
		ResearchSummary:  researchReport.Summary,
		PostLength:       len(post),
		LinksAnalyzed:    linkReport.TotalURLs,
		TopicsResearched: len(researchReport.TopicsResearched),
	})
	return post, nil
}

// record persists the run. History failures are logged, never fatal.
func (p *Pipeline) record(rec model.RunRecord) {
	if p.hist == nil {
		return
	}
	if err := p.hist.Append(rec); err != nil {
		logger.Log.Warnf("failed to record run history: %v", err)
	}
}

func newRunID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("linkedin_post_%s", hex[:8])
}
