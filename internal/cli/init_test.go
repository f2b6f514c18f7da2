package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensedesk/internal/config"
	"expensedesk/internal/log"
)

func TestSetupLogger_Fallback(t *testing.T) {
	cfg := config.Defaults()
	cfg.LogLevel = "warn"
	var buf bytes.Buffer

	logger, closer, err := SetupLogger(&cfg, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupLogger_File(t *testing.T) {
	cfg := config.Defaults()
	cfg.LogFile = filepath.Join(t.TempDir(), "app.log")
	var buf bytes.Buffer

	logger, closer, err := SetupLogger(&cfg, &buf)
	require.NoError(t, err)
	logger.Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Empty(t, buf.String())
}

func TestSetupLogger_BadFile(t *testing.T) {
	cfg := config.Defaults()
	cfg.LogFile = filepath.Join(t.TempDir(), "missing", "app.log")

	_, _, err := SetupLogger(&cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "open log file"))
}

func TestInitTracer_Disabled(t *testing.T) {
	cfg := config.Defaults()

	closer, err := InitTracer(&cfg, log.Nop())
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.IsType(t, opentracing.NoopTracer{}, opentracing.GlobalTracer())
}
