package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskQuestion  TaskType = "question"
	TaskRefine    TaskType = "refine"
	TaskSummarize TaskType = "summarize"
	TaskDaySlice  TaskType = "day_slice"
)

// Provider selects the wire protocol used to reach the model.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

const (
	defaultOllamaEndpoint = "http://localhost:11434"
	defaultOllamaModel    = "llama3.2"
	defaultOpenAIEndpoint = "https://api.openai.com"
	defaultOpenAIModel    = "gpt-3.5-turbo"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Provider   Provider
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Provider:   ProviderOllama,
		Endpoint:   defaultOllamaEndpoint,
		Model:      defaultOllamaModel,
		TimeoutMs:  15000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskQuestion:  {Temperature: 0.7, MaxTokens: 60, TimeoutMs: 10000},
			TaskRefine:    {Temperature: 0.2, MaxTokens: 400, TimeoutMs: 15000},
			TaskSummarize: {Temperature: 0.5, MaxTokens: 300, TimeoutMs: 20000},
			TaskDaySlice:  {Temperature: 0.5, MaxTokens: 150, TimeoutMs: 15000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overlays DIARIST_LLM_* and OPENAI_API_KEY onto cfg. Switching the
// provider to openai also swaps the endpoint and model defaults unless they
// were set explicitly.
func ApplyEnv(cfg *LLMConfig) {
	if v := os.Getenv("DIARIST_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DIARIST_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DIARIST_LLM_PROVIDER"); v != "" {
		cfg.SetProvider(Provider(strings.ToLower(v)))
	}
	if v := os.Getenv("DIARIST_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("DIARIST_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("DIARIST_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("DIARIST_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("DIARIST_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(cfg, TaskQuestion, "DIARIST_LLM_QUESTION_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskRefine, "DIARIST_LLM_REFINE_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskSummarize, "DIARIST_LLM_SUMMARIZE_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskDaySlice, "DIARIST_LLM_DAY_SLICE_TIMEOUT_MS")
}

// SetProvider changes the provider, moving the endpoint and model to the new
// provider's defaults when they still hold the old provider's defaults.
func (c *LLMConfig) SetProvider(p Provider) {
	if p == c.Provider {
		return
	}
	if p == ProviderOpenAI {
		if c.Endpoint == "" || c.Endpoint == defaultOllamaEndpoint {
			c.Endpoint = defaultOpenAIEndpoint
		}
		if c.Model == "" || c.Model == defaultOllamaModel {
			c.Model = defaultOpenAIModel
		}
	} else if p == ProviderOllama {
		if c.Endpoint == "" || c.Endpoint == defaultOpenAIEndpoint {
			c.Endpoint = defaultOllamaEndpoint
		}
		if c.Model == "" || c.Model == defaultOpenAIModel {
			c.Model = defaultOllamaModel
		}
	}
	c.Provider = p
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	if cfg.Tasks == nil {
		cfg.Tasks = make(map[TaskType]TaskConfig)
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
