// Package config assembles diarist's settings from defaults, the TOML config
// file, a .env file and the process environment, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/diarist/internal/llm"
	"github.com/alexanderramin/diarist/internal/report"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// StoreKind selects the history backend.
type StoreKind string

const (
	StoreSQLite StoreKind = "sqlite"
	StoreJSON   StoreKind = "json"
)

const (
	// FileName is the config file looked up inside the data directory.
	FileName = "config.toml"
	// DBFileName is the SQLite database inside the data directory.
	DBFileName = "diarist.db"
)

// ErrInvalidStore is returned when the store kind is neither sqlite nor json.
var ErrInvalidStore = errors.New("invalid store kind")

// Config holds every user-facing setting.
type Config struct {
	// Path is the config file Load consulted, whether or not it exists.
	Path string

	DataDir         string
	Store           StoreKind
	OutputDir       string
	LogLevel        string
	ExcludeWeekends bool
	SevenDay        bool
	TrainingMode    string
	Designations    report.People
	Signatures      report.People
	LLM             llm.LLMConfig
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DataDir:         defaultDataDir(),
		Store:           StoreSQLite,
		OutputDir:       "outputs",
		LogLevel:        "warn",
		ExcludeWeekends: true,
		SevenDay:        true,
		LLM:             llm.DefaultConfig(),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".diarist"
	}
	return filepath.Join(home, ".diarist")
}

// DBPath is where the SQLite backend keeps its database.
func (c Config) DBPath() string { return filepath.Join(c.DataDir, DBFileName) }

// HistoryFile is where the JSON backend keeps task history.
func (c Config) HistoryFile() string { return filepath.Join(c.DataDir, "task_descriptions.json") }

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite, StoreJSON:
	default:
		return fmt.Errorf("%w: %q (want sqlite or json)", ErrInvalidStore, c.Store)
	}
	switch c.LLM.Provider {
	case llm.ProviderOllama, llm.ProviderOpenAI:
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
	return nil
}

// LoadOptions points Load at non-default locations. Empty fields use the
// defaults: $DIARIST_CONFIG or <data dir>/config.toml, and ./.env.
type LoadOptions struct {
	ConfigPath string
	EnvFile    string
}

// Load builds the effective configuration. Missing config and .env files are
// not errors; malformed ones are.
func Load(opts LoadOptions) (Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables already present in the environment.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
	}

	cfg := Default()
	if v := os.Getenv("DIARIST_DATA_DIR"); v != "" {
		cfg.DataDir = expandHome(v)
	}

	path := opts.ConfigPath
	if path == "" {
		path = os.Getenv("DIARIST_CONFIG")
	}
	if path == "" {
		path = filepath.Join(cfg.DataDir, FileName)
	}
	if err := loadFile(path, &cfg); err != nil {
		return Config{}, err
	}
	cfg.Path = path

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var f fileConfig
	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("config %s has unknown keys:\n%s", path, strict.String())
		}
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	f.apply(cfg)
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DIARIST_STORE"); v != "" {
		cfg.Store = StoreKind(strings.ToLower(v))
	}
	if v := os.Getenv("DIARIST_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = expandHome(v)
	}
	if v := os.Getenv("DIARIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DIARIST_EXCLUDE_WEEKENDS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ExcludeWeekends = b
		}
	}
	if v := os.Getenv("DIARIST_SEVEN_DAY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SevenDay = b
		}
	}
	if v := os.Getenv("DIARIST_TRAINING_MODE"); v != "" {
		cfg.TrainingMode = v
	}
	llm.ApplyEnv(&cfg.LLM)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
