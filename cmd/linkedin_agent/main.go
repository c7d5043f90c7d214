// Command linkedin_agent generates LinkedIn posts from an instructions file,
// critiques generated posts, and maintains the user's style guide.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/oscarrenalias/ai-research-content-generator/internal/agent"
	"github.com/oscarrenalias/ai-research-content-generator/internal/config"
	"github.com/oscarrenalias/ai-research-content-generator/internal/extract"
	"github.com/oscarrenalias/ai-research-content-generator/internal/history"
	"github.com/oscarrenalias/ai-research-content-generator/internal/llm"
	"github.com/oscarrenalias/ai-research-content-generator/internal/logger"
	"github.com/oscarrenalias/ai-research-content-generator/internal/search"
	"github.com/oscarrenalias/ai-research-content-generator/internal/tavily"
)

func main() {
	app := &cli.App{
		Name:  "linkedin_agent",
		Usage: "LinkedIn post generation pipeline with research and feedback",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "configs/config.yaml",
				Usage:   "path to the configuration file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "run the full pipeline and write the post to the output directory",
				Action: runGenerate,
			},
			{
				Name:   "feedback",
				Usage:  "critique the most recently generated post",
				Action: runFeedback,
			},
			{
				Name:   "analyze-style",
				Usage:  "derive a style guide from the example posts",
				Action: runAnalyzeStyle,
			},
			{
				Name:  "history",
				Usage: "show recent runs",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 10, Usage: "number of runs to show"},
				},
				Action: runHistory,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads configuration and initializes logging. Shared by every command.
func setup(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

func newLimiter(cfg *config.Config) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(float64(cfg.Concurrency.RPM)/60.0), cfg.Concurrency.QPS)
}

func newClient(ctx context.Context, cfg *config.Config, model string, temperature float32, maxTokens int, limiter *rate.Limiter) (*llm.Client, error) {
	return llm.New(ctx, llm.Options{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}, limiter)
}

func runGenerate(c *cli.Context) error {
	cfg, err := setup(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx := c.Context

	instructionsPath := filepath.Join(cfg.Paths.InputDir, "instructions.txt")
	raw, err := os.ReadFile(instructionsPath)
	if err != nil {
		return fmt.Errorf("no instructions found at %s: %w", instructionsPath, err)
	}
	instructions := strings.TrimSpace(string(raw))
	if instructions == "" {
		return fmt.Errorf("instructions file %s is empty", instructionsPath)
	}

	limiter := newLimiter(cfg)
	composeLLM, err := newClient(ctx, cfg, cfg.LLM.Model, 0.7, 2000, limiter)
	if err != nil {
		return err
	}
	linkLLM, err := newClient(ctx, cfg, cfg.LLM.Model, 0.3, 2000, limiter)
	if err != nil {
		return err
	}
	researchLLM, err := newClient(ctx, cfg, cfg.LLM.ResearchModel, 0.3, 2000, limiter)
	if err != nil {
		return err
	}

	var searcher search.Searcher
	var extractor extract.Extractor = extract.NewReadability()
	if cfg.Tavily.APIKey != "" {
		tv := tavily.NewClient(cfg.Tavily.APIKey)
		searcher = tv
		extractor = extract.NewTavily(tv, extract.NewReadability())
	} else {
		logger.Log.Warn("no tavily api key configured, web search disabled")
	}

	hist, err := history.Open(cfg.History)
	if err != nil {
		logger.Log.Warnf("run history disabled: %v", err)
		hist = nil
	} else {
		defer hist.Close()
	}

	pipeline := agent.NewPipeline(
		agent.NewLinkAgent(linkLLM, extractor),
		agent.NewResearchAgent(researchLLM, searcher),
		agent.NewComposeAgent(composeLLM, cfg.Paths, nil),
		hist,
	)

	post, err := pipeline.Run(ctx, instructions)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outPath := filepath.Join(cfg.Paths.OutputDir, "result.txt")
	if err := os.WriteFile(outPath, []byte(post+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write post: %w", err)
	}

	fmt.Println(post)
	fmt.Printf("\n(%d characters, saved to %s)\n", len(post), outPath)
	return nil
}

func runFeedback(c *cli.Context) error {
	cfg, err := setup(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx := c.Context

	post, instructions, styleGuide, err := agent.LoadContent(cfg.Paths)
	if err != nil {
		return err
	}

	feedbackLLM, err := newClient(ctx, cfg, cfg.LLM.FeedbackModel, 0.2, 3000, newLimiter(cfg))
	if err != nil {
		return err
	}

	report := agent.NewFeedbackAgent(feedbackLLM).Analyze(ctx, post, instructions, styleGuide)
	text := agent.Format(report)

	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	txtPath := filepath.Join(cfg.Paths.OutputDir, "result-feedback.txt")
	if err := os.WriteFile(txtPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write feedback report: %w", err)
	}
	jsonOut, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode feedback report: %w", err)
	}
	jsonPath := filepath.Join(cfg.Paths.OutputDir, "result-feedback.json")
	if err := os.WriteFile(jsonPath, jsonOut, 0o644); err != nil {
		return fmt.Errorf("failed to write feedback json: %w", err)
	}

	fmt.Println(text)
	fmt.Printf("(saved to %s and %s)\n", txtPath, jsonPath)
	return nil
}

func runAnalyzeStyle(c *cli.Context) error {
	cfg, err := setup(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx := c.Context

	limiter := newLimiter(cfg)
	batchLLM, err := newClient(ctx, cfg, cfg.LLM.ResearchModel, 0.3, 3000, limiter)
	if err != nil {
		return err
	}
	synthLLM, err := newClient(ctx, cfg, cfg.LLM.Model, 0.3, 3000, limiter)
	if err != nil {
		return err
	}

	guide, err := agent.NewStyleAgent(batchLLM, synthLLM, cfg.Paths.PostsDir).Analyze(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Paths.InputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create input directory: %w", err)
	}
	outPath := filepath.Join(cfg.Paths.InputDir, "linkedin_style_prompt.txt")
	if err := os.WriteFile(outPath, []byte(guide+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write style guide: %w", err)
	}

	fmt.Println(guide)
	fmt.Printf("\n(saved to %s)\n", outPath)
	return nil
}

func runHistory(c *cli.Context) error {
	cfg, err := setup(c)
	if err != nil {
		return err
	}

	hist, err := history.Open(cfg.History)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer hist.Close()

	records, err := hist.Recent(c.Int("limit"))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no runs recorded yet")
		return nil
	}
	for _, rec := range records {
		fmt.Printf("%s  %s  links=%d topics=%d length=%d\n",
			rec.Timestamp.Format("2006-01-02 15:04"), rec.RunID,
			rec.LinksAnalyzed, rec.TopicsResearched, rec.PostLength)
	}
	return nil
}
