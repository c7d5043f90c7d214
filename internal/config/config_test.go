package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "llm:\n  api_key: sk-test\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.ResearchModel != "gpt-4o-mini" || cfg.LLM.FeedbackModel != "gpt-4o-mini" {
		t.Errorf("stage models = %q / %q", cfg.LLM.ResearchModel, cfg.LLM.FeedbackModel)
	}
	if cfg.Paths.InputDir != "input" || cfg.Paths.PostsDir != "posts" || cfg.Paths.OutputDir != "output" {
		t.Errorf("paths = %+v", cfg.Paths)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.Concurrency.RPM != 60 || cfg.Concurrency.QPS != 3 {
		t.Errorf("concurrency = %+v", cfg.Concurrency)
	}
	if cfg.History.File != "workflow_history.json" {
		t.Errorf("history file = %q", cfg.History.File)
	}
}

func TestLoadFileValues(t *testing.T) {
	path := writeConfig(t, `
llm:
  api_key: sk-test
  model: gpt-5
  research_model: gpt-5-mini
paths:
  input_dir: my-input
concurrency:
  rpm: 120
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Model != "gpt-5" || cfg.LLM.ResearchModel != "gpt-5-mini" {
		t.Errorf("models = %+v", cfg.LLM)
	}
	if cfg.Paths.InputDir != "my-input" {
		t.Errorf("input dir = %q", cfg.Paths.InputDir)
	}
	if cfg.Concurrency.RPM != 120 {
		t.Errorf("rpm = %d", cfg.Concurrency.RPM)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("TAVILY_API_KEY", "tvly-env")
	path := writeConfig(t, "llm:\n  api_key: sk-file\ntavily:\n  api_key: tvly-file\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "sk-env" {
		t.Errorf("llm key = %q, want env value", cfg.LLM.APIKey)
	}
	if cfg.Tavily.APIKey != "tvly-env" {
		t.Errorf("tavily key = %q, want env value", cfg.Tavily.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg := &Config{}
	cfg.applyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when api key is missing")
	}

	cfg.LLM.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate with key: %v", err)
	}
}
