package agent

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/oscarrenalias/ai-research-content-generator/internal/extract"
	"github.com/oscarrenalias/ai-research-content-generator/internal/llm"
)

// fakeModel returns canned responses in order, repeating the last one when
// exhausted. It records the prompts it was called with.
type fakeModel struct {
	responses []string
	err       error
	systems   []string
	users     []string
}

func (f *fakeModel) Generate(ctx context.Context, msgs []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	for _, m := range msgs {
		switch m.Role {
		case schema.System:
			f.systems = append(f.systems, m.Content)
		case schema.User:
			f.users = append(f.users, m.Content)
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, fmt.Errorf("fake model has no responses")
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return &schema.Message{Role: schema.Assistant, Content: resp}, nil
}

func newTestClient(f *fakeModel) *llm.Client {
	return llm.NewWithModel(f, rate.NewLimiter(rate.Inf, 1))
}

// fakeExtractor implements extract.Extractor with fixed output.
type fakeExtractor struct {
	result extract.Result
	err    error
}

func (f *fakeExtractor) Extract(ctx context.Context, url string) (extract.Result, error) {
	return f.result, f.err
}
