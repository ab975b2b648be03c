package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "data/sample_realestate.xlsx", cfg.Data.SamplePath)
	assert.Equal(t, int64(20<<20), cfg.Data.MaxUploadBytes)
	assert.Equal(t, 200, cfg.Data.TableRowLimit)
	assert.Equal(t, 0.4, cfg.LLM.Temperature)
	assert.Equal(t, 200, cfg.LLM.MaxTokens)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.False(t, cfg.LLM.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromDefaultsOnly(t *testing.T) {
	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, Default().Server, cfg.Server)
	assert.Equal(t, ":8000", cfg.Address())
}

func TestLoadFromFileAndEnv(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9000
  request_timeout: 10s
data:
  sample_path: /srv/data/listings.xlsx
  table_row_limit: 50
llm:
  model: llama-3.1-8b-instant
`)

	t.Setenv("REALESTATE_SERVER_PORT", "9100")
	t.Setenv("REALESTATE_LLM_TIMEOUT", "3s")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "env wins over file")
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout, "file wins over default")
	assert.Equal(t, "/srv/data/listings.xlsx", cfg.Data.SamplePath)
	assert.Equal(t, 50, cfg.Data.TableRowLimit)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLM.Model)
	assert.Equal(t, 3*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout, "untouched default")
}

func TestLoadLLMKey(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantKey string
	}{
		{
			name:    "unprefixed variable",
			env:     map[string]string{"GROK_API_KEY": "plain"},
			wantKey: "plain",
		},
		{
			name:    "prefixed variable wins",
			env:     map[string]string{"GROK_API_KEY": "plain", "REALESTATE_LLM_GROK_API_KEY": "prefixed"},
			wantKey: "prefixed",
		},
		{
			name:    "absent",
			env:     map[string]string{},
			wantKey: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GROK_API_KEY", "")
			os.Unsetenv("GROK_API_KEY")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadFrom("")
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, cfg.LLM.APIKey)
			assert.Equal(t, tt.wantKey != "", cfg.LLM.Enabled())
		})
	}
}

func TestLoadFromInvalid(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		file     string
		contains string
	}{
		{name: "bad port", env: map[string]string{"REALESTATE_SERVER_PORT": "70000"}, contains: "invalid server port"},
		{name: "unparsable port", env: map[string]string{"REALESTATE_SERVER_PORT": "abc"}, contains: "failed to load config from env"},
		{name: "temperature out of range", env: map[string]string{"REALESTATE_LLM_TEMPERATURE": "2.5"}, contains: "temperature"},
		{name: "zero row limit", env: map[string]string{"REALESTATE_DATA_TABLE_ROW_LIMIT": "0"}, contains: "table row limit"},
		{name: "unknown exporter", env: map[string]string{"REALESTATE_TELEMETRY_TRACE_EXPORTER": "jaeger"}, contains: "unknown trace exporter"},
		{name: "malformed yaml", file: "server: [", contains: "failed to load config from file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			_, err := LoadFrom(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestValidateNormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "xml"
	cfg.Logging.Output = "syslog"
	cfg.Logging.FilePath = ""
	cfg.Telemetry.TraceExporter = ""
	cfg.LLM.MaxAttempts = 0

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "logs/app.log", cfg.Logging.FilePath)
	assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
	assert.Equal(t, 1, cfg.LLM.MaxAttempts)

	cfg.Logging.Format = "TEXT"
	cfg.Telemetry.Environment = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "development", cfg.Telemetry.Environment)

	cfg.Telemetry.SampleRatio = 1.5
	assert.ErrorContains(t, cfg.Validate(), "sample ratio")
}
