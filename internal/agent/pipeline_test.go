package agent

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oscarrenalias/ai-research-content-generator/internal/config"
	"github.com/oscarrenalias/ai-research-content-generator/internal/history"
)

func newTestPipeline(t *testing.T, fake *fakeModel, hist *history.Store) *Pipeline {
	t.Helper()
	client := newTestClient(fake)
	paths := config.PathsConfig{
		InputDir:  filepath.Join(t.TempDir(), "input"),
		PostsDir:  filepath.Join(t.TempDir(), "posts"),
		OutputDir: filepath.Join(t.TempDir(), "output"),
	}
	return NewPipeline(
		NewLinkAgent(client, &fakeExtractor{err: fmt.Errorf("offline")}),
		NewResearchAgent(client, nil),
		NewComposeAgent(client, paths, rand.New(rand.NewSource(1))),
		hist,
	)
}

func TestPipelineRun(t *testing.T) {
	fake := &fakeModel{responses: []string{
		`["AI agents"]`,
		`{"current_trends": ["t"]}`,
		"The final LinkedIn post.",
	}}
	p := newTestPipeline(t, fake, nil)

	post, err := p.Run(context.Background(), "Write about AI agents.")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if post != "The final LinkedIn post." {
		t.Errorf("post = %q", post)
	}
	if p.State() != StateDone {
		t.Errorf("state = %q, want done", p.State())
	}
}

func TestPipelineCompositionFailure(t *testing.T) {
	// Every model call fails; only composition turns that into a run error.
	fake := &fakeModel{err: fmt.Errorf("model down")}
	p := newTestPipeline(t, fake, nil)

	if _, err := p.Run(context.Background(), "Write something."); err == nil {
		t.Fatal("expected run to fail when composition fails")
	}
	if p.State() != StateError {
		t.Errorf("state = %q, want error", p.State())
	}
}

func TestPipelineRecordsHistory(t *testing.T) {
	hist, err := history.Open(config.HistoryConfig{File: filepath.Join(t.TempDir(), "history.json")})
	if err != nil {
		t.Fatal(err)
	}
	defer hist.Close()

	fake := &fakeModel{responses: []string{
		`["AI agents"]`,
		`{"current_trends": ["t"]}`,
		"The final post.",
	}}
	p := newTestPipeline(t, fake, hist)
	if _, err := p.Run(context.Background(), "Write about https://example.com/article please."); err != nil {
		t.Fatalf("Run: %v", err)
	}

	records, err := hist.Recent(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("history records = %d, want 1", len(records))
	}
	rec := records[0]
	if !strings.HasPrefix(rec.RunID, "linkedin_post_") {
		t.Errorf("run id = %q", rec.RunID)
	}
	if rec.LinksAnalyzed != 1 {
		t.Errorf("links analyzed = %d, want 1", rec.LinksAnalyzed)
	}
	if rec.PostLength != len("The final post.") {
		t.Errorf("post length = %d", rec.PostLength)
	}
}
