package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covidcli/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected slog.Level
	}{
		{name: "debug", level: "debug", expected: slog.LevelDebug},
		{name: "info", level: "info", expected: slog.LevelInfo},
		{name: "warn", level: "warn", expected: slog.LevelWarn},
		{name: "warning alias", level: "warning", expected: slog.LevelWarn},
		{name: "error", level: "error", expected: slog.LevelError},
		{name: "mixed case", level: "DEBUG", expected: slog.LevelDebug},
		{name: "unknown defaults to info", level: "loud", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.level))
		})
	}
}

func TestInitializeLogger_FileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "test.log")

	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logPath,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseLogger() })

	logger.Info("snapshot loaded", slog.Int("rows", 42))
	require.NoError(t, CloseLogger())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "snapshot loaded", entry["msg"])
	assert.Equal(t, float64(42), entry["rows"])
}

func TestInitializeLogger_EmptyFilePath(t *testing.T) {
	_, err := InitializeLogger(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: "file",
	})
	assert.Error(t, err)
}

func TestRunIDHandler_InjectsRunID(t *testing.T) {
	var buf bytes.Buffer
	handler := &runIDHandler{Handler: slog.NewJSONHandler(&buf, nil)}
	logger := slog.New(handler)

	ctx := WithRunID(context.Background(), "run-123")
	logger.InfoContext(ctx, "cleaning complete")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "run-123", entry["run_id"])
}

func TestRunIDHandler_NoRunID(t *testing.T) {
	var buf bytes.Buffer
	handler := &runIDHandler{Handler: slog.NewJSONHandler(&buf, nil)}
	logger := slog.New(handler)

	logger.InfoContext(context.Background(), "cleaning complete")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, present := entry["run_id"]
	assert.False(t, present)
}

func TestRunIDContext(t *testing.T) {
	assert.Empty(t, RunIDFromContext(context.Background()))

	runID := NewRunID()
	assert.NotEmpty(t, runID)

	ctx := WithRunID(context.Background(), runID)
	assert.Equal(t, runID, RunIDFromContext(ctx))
}

func TestInitializeTracing_Disabled(t *testing.T) {
	providers, err := InitializeTracing(context.Background(), false, slog.Default())
	require.NoError(t, err)
	require.NotNil(t, providers.Tracer)
	assert.Nil(t, providers.TracerProvider)
	assert.NoError(t, providers.Shutdown(context.Background()))
}
