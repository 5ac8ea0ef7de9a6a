package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/diarist/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config source at a scratch directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, k := range []string{
		"DIARIST_CONFIG", "DIARIST_STORE", "DIARIST_OUTPUT_DIR", "DIARIST_LOG_LEVEL",
		"DIARIST_EXCLUDE_WEEKENDS", "DIARIST_SEVEN_DAY", "DIARIST_TRAINING_MODE",
		"DIARIST_LLM_ENABLED", "DIARIST_LLM_PROVIDER", "DIARIST_LLM_ENDPOINT",
		"DIARIST_LLM_MODEL", "DIARIST_LLM_API_KEY", "OPENAI_API_KEY",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("DIARIST_DATA_DIR", dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_DefaultsWhenNothingExists(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, FileName), cfg.Path)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.True(t, cfg.ExcludeWeekends)
	assert.True(t, cfg.SevenDay)
	assert.False(t, cfg.LLM.Enabled)
	assert.Equal(t, filepath.Join(dir, "diarist.db"), cfg.DBPath())
	assert.Equal(t, filepath.Join(dir, "task_descriptions.json"), cfg.HistoryFile())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, FileName), `
store = "json"
exclude_weekends = false
training_mode = "Remote"

[designations]
student = "Intern"

[llm]
enabled = true
provider = "openai"
max_retries = 3
`)

	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, StoreJSON, cfg.Store)
	assert.False(t, cfg.ExcludeWeekends)
	assert.True(t, cfg.SevenDay, "unset keys keep defaults")
	assert.Equal(t, "Remote", cfg.TrainingMode)
	assert.Equal(t, "Intern", cfg.Designations.Student)
	assert.Empty(t, cfg.Designations.Supervisor)
	assert.True(t, cfg.LLM.Enabled)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "https://api.openai.com", cfg.LLM.Endpoint)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, FileName), `store = "json"`)
	t.Setenv("DIARIST_STORE", "SQLITE")
	t.Setenv("DIARIST_SEVEN_DAY", "false")

	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.False(t, cfg.SevenDay)
}

func TestLoad_DotEnvFillsUnsetVariables(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, "test.env")
	writeFile(t, envFile, "DIARIST_TEST_ONLY_KEY=sk-from-dotenv\n")
	t.Cleanup(func() { os.Unsetenv("DIARIST_TEST_ONLY_KEY") })

	_, err := Load(LoadOptions{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "sk-from-dotenv", os.Getenv("DIARIST_TEST_ONLY_KEY"))
}

func TestLoad_ExplicitConfigPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "other.toml")
	writeFile(t, path, `output_dir = "reports"`)

	cfg, err := Load(LoadOptions{ConfigPath: path, EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, "reports", cfg.OutputDir)
}

func TestLoad_UnknownKeysRejected(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, FileName), "stor = \"json\"\n")

	_, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, FileName), "store = \n")

	_, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
	assert.Error(t, err)
}

func TestLoad_InvalidStore(t *testing.T) {
	dir := isolate(t)
	t.Setenv("DIARIST_STORE", "postgres")

	_, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
	assert.ErrorIs(t, err, ErrInvalidStore)
}

func TestTemplate_IsValidConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, FileName), Template)

	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, "outputs", cfg.OutputDir)
	assert.Equal(t, llm.ProviderOllama, cfg.LLM.Provider)
}
