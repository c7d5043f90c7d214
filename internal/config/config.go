package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full project configuration, loaded once at startup and passed
// by pointer into each component constructor.
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Tavily      TavilyConfig      `yaml:"tavily"`
	Paths       PathsConfig       `yaml:"paths"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	History     HistoryConfig     `yaml:"history"`
}

// LLMConfig holds the OpenAI-compatible endpoint settings. Model is used for
// composition and link analysis; the research and feedback stages run on the
// cheaper models when set.
type LLMConfig struct {
	BaseURL       string `yaml:"base_url"`
	APIKey        string `yaml:"api_key"`
	Model         string `yaml:"model"`
	ResearchModel string `yaml:"research_model"`
	FeedbackModel string `yaml:"feedback_model"`
}

// TavilyConfig holds the optional web search/extraction credentials. An empty
// key disables web search; research then relies on model knowledge only.
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// PathsConfig locates the input, example posts and output directories.
type PathsConfig struct {
	InputDir  string `yaml:"input_dir"`
	PostsDir  string `yaml:"posts_dir"`
	OutputDir string `yaml:"output_dir"`
}

// LogConfig controls log level and optional log file.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig bounds the LLM call rate.
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// HistoryConfig controls run-history persistence. File is the append-only
// JSON log; DB is an optional sqlite database path.
type HistoryConfig struct {
	File string `yaml:"file"`
	DB   string `yaml:"db"`
}

// Load reads the config file, applies defaults and environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	// Env vars win over file values for credentials.
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("TAVILY_API_KEY"); v != "" {
		cfg.Tavily.APIKey = v
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o"
	}
	if c.LLM.ResearchModel == "" {
		c.LLM.ResearchModel = "gpt-4o-mini"
	}
	if c.LLM.FeedbackModel == "" {
		c.LLM.FeedbackModel = "gpt-4o-mini"
	}
	if c.Paths.InputDir == "" {
		c.Paths.InputDir = "input"
	}
	if c.Paths.PostsDir == "" {
		c.Paths.PostsDir = "posts"
	}
	if c.Paths.OutputDir == "" {
		c.Paths.OutputDir = "output"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.RPM == 0 {
		c.Concurrency.RPM = 60
	}
	if c.Concurrency.QPS == 0 {
		c.Concurrency.QPS = 3
	}
	if c.History.File == "" {
		c.History.File = "workflow_history.json"
	}
}

// Validate checks the settings that make a run impossible. Failures here are
// fatal at startup and carry a remediation hint.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is not set: add it to the config file or set OPENAI_API_KEY")
	}
	return nil
}
