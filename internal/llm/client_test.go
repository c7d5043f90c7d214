package llm

import (
	"context"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"
)

type stubModel struct {
	calls   int
	content string
	errs    []error
}

func (s *stubModel) Generate(ctx context.Context, msgs []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	s.calls++
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &schema.Message{Role: schema.Assistant, Content: s.content}, nil
}

func TestGenerateTrimsContent(t *testing.T) {
	stub := &stubModel{content: "  a response  \n"}
	c := NewWithModel(stub, rate.NewLimiter(rate.Inf, 1))

	got, err := c.Generate(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "a response" {
		t.Errorf("content = %q", got)
	}
	if stub.calls != 1 {
		t.Errorf("calls = %d, want 1", stub.calls)
	}
}

func TestGenerateNonRateLimitErrorNotRetried(t *testing.T) {
	stub := &stubModel{errs: []error{fmt.Errorf("invalid request")}}
	c := NewWithModel(stub, rate.NewLimiter(rate.Inf, 1))

	if _, err := c.Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error")
	}
	if stub.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry)", stub.calls)
	}
}

func TestGenerateRetriesRateLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("retry backoff sleeps")
	}
	stub := &stubModel{
		content: "ok",
		errs:    []error{fmt.Errorf("status 429: too many requests"), nil},
	}
	c := NewWithModel(stub, rate.NewLimiter(rate.Inf, 1))

	got, err := c.Generate(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "ok" {
		t.Errorf("content = %q", got)
	}
	if stub.calls != 2 {
		t.Errorf("calls = %d, want 2", stub.calls)
	}
}

func TestGenerateNilLimiter(t *testing.T) {
	c := NewWithModel(&stubModel{content: "x"}, nil)
	if _, err := c.Generate(context.Background(), "s", "u"); err != nil {
		t.Fatalf("Generate with nil limiter: %v", err)
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"HTTP 429", true},
		{"Too Many Requests", true},
		{"connection refused", false},
		{"status 500", false},
	}
	for _, tt := range tests {
		if got := isRateLimited(fmt.Errorf("%s", tt.msg)); got != tt.want {
			t.Errorf("isRateLimited(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
