package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Config{Level: "debug", Encoding: "json", OutputPath: path})
	require.NoError(t, err)

	log.Info("turn processed", zap.Int("score", 2))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"turn processed"`)
	assert.Contains(t, string(data), `"level":"INFO"`)
	assert.Contains(t, string(data), `"timestamp"`)
}

func TestParseLevel_FallsBackToInfo(t *testing.T) {
	assert.Equal(t, zap.InfoLevel, parseLevel("").Level())
	assert.Equal(t, zap.InfoLevel, parseLevel("loud").Level())
	assert.Equal(t, zap.WarnLevel, parseLevel("WARN").Level())
}

func TestNormalizeEncoding(t *testing.T) {
	assert.Equal(t, "console", normalizeEncoding("Console"))
	assert.Equal(t, "json", normalizeEncoding("yaml"))
	assert.Equal(t, "json", normalizeEncoding(""))
}
