package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_environment_ProcessWinsOverDotenv(t *testing.T) {
	dotenv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("GEMINI_API_KEY=from-file\nVOLT_MODEL=file-model\n"), 0o600))

	got, err := environment(dotenv, []string{"GEMINI_API_KEY=from-process", "HOME=/root"})
	require.NoError(t, err)

	want := map[string]string{
		"GEMINI_API_KEY": "from-process",
		"VOLT_MODEL":     "file-model",
		"HOME":           "/root",
	}
	assert.Empty(t, cmp.Diff(want, got))
}

func Test_environment_MissingDotenv(t *testing.T) {
	got, err := environment(filepath.Join(t.TempDir(), ".env"), []string{"A=1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1"}, got)
}

func Test_parseEnv(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	err := parseEnv(&cfg, map[string]string{
		"GEMINI_API_KEY": "secret",
		"VOLT_DATA_DIR":  "/home/ana/.volt",
		"VOLT_LOG_LEVEL": "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Dialogue.APIKey)
	assert.Equal(t, "/home/ana/.volt", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "gemini-1.5-pro", cfg.Dialogue.Model, "unset variables keep defaults")
	assert.Equal(t, "volt.log", cfg.LogFile)
}
