package config

import (
	"github.com/alexanderramin/diarist/internal/llm"
)

// fileConfig mirrors config.toml. Pointer fields distinguish "absent" from
// the zero value so the file only overrides what it sets.
type fileConfig struct {
	DataDir         *string     `toml:"data_dir"`
	Store           *string     `toml:"store"`
	OutputDir       *string     `toml:"output_dir"`
	LogLevel        *string     `toml:"log_level"`
	ExcludeWeekends *bool       `toml:"exclude_weekends"`
	SevenDay        *bool       `toml:"seven_day"`
	TrainingMode    *string     `toml:"training_mode"`
	Designations    *filePeople `toml:"designations"`
	Signatures      *filePeople `toml:"signatures"`
	LLM             *fileLLM    `toml:"llm"`
}

type filePeople struct {
	Student    *string `toml:"student"`
	Supervisor *string `toml:"supervisor"`
}

type fileLLM struct {
	Enabled    *bool   `toml:"enabled"`
	LogCalls   *bool   `toml:"log_calls"`
	Provider   *string `toml:"provider"`
	Endpoint   *string `toml:"endpoint"`
	Model      *string `toml:"model"`
	APIKey     *string `toml:"api_key"`
	TimeoutMs  *int    `toml:"timeout_ms"`
	MaxRetries *int    `toml:"max_retries"`
}

func (f fileConfig) apply(cfg *Config) {
	if f.DataDir != nil {
		cfg.DataDir = expandHome(*f.DataDir)
	}
	if f.Store != nil {
		cfg.Store = StoreKind(*f.Store)
	}
	if f.OutputDir != nil {
		cfg.OutputDir = expandHome(*f.OutputDir)
	}
	setString(&cfg.LogLevel, f.LogLevel)
	setBool(&cfg.ExcludeWeekends, f.ExcludeWeekends)
	setBool(&cfg.SevenDay, f.SevenDay)
	setString(&cfg.TrainingMode, f.TrainingMode)
	if f.Designations != nil {
		setString(&cfg.Designations.Student, f.Designations.Student)
		setString(&cfg.Designations.Supervisor, f.Designations.Supervisor)
	}
	if f.Signatures != nil {
		setString(&cfg.Signatures.Student, f.Signatures.Student)
		setString(&cfg.Signatures.Supervisor, f.Signatures.Supervisor)
	}
	if f.LLM != nil {
		f.LLM.apply(&cfg.LLM)
	}
}

func (f fileLLM) apply(cfg *llm.LLMConfig) {
	setBool(&cfg.Enabled, f.Enabled)
	setBool(&cfg.LogCalls, f.LogCalls)
	if f.Provider != nil {
		cfg.SetProvider(llm.Provider(*f.Provider))
	}
	setString(&cfg.Endpoint, f.Endpoint)
	setString(&cfg.Model, f.Model)
	setString(&cfg.APIKey, f.APIKey)
	if f.TimeoutMs != nil && *f.TimeoutMs > 0 {
		cfg.TimeoutMs = *f.TimeoutMs
	}
	if f.MaxRetries != nil && *f.MaxRetries >= 0 {
		cfg.MaxRetries = *f.MaxRetries
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Template is the commented config.toml written by `diarist config init`.
const Template = `# diarist configuration

# data_dir = "~/.diarist"
store = "sqlite"          # sqlite or json
output_dir = "outputs"
log_level = "warn"
exclude_weekends = true
seven_day = true
# training_mode = "Onsite"

[designations]
# student = "Software Engineering Intern"
# supervisor = "Team Lead"

[signatures]
# student = "~/signatures/student.png"
# supervisor = "~/signatures/supervisor.png"

[llm]
enabled = false
provider = "ollama"       # ollama or openai
# endpoint = "http://localhost:11434"
# model = "llama3.2"
# timeout_ms = 15000
# max_retries = 1
`
