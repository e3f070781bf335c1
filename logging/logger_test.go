package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultLoggerIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("not initialised yet", zap.String("k", "v"))
		Debug("debug")
		Warn("warn")
	})
}

func TestInitLogger_WritesToDirectory(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	dir := filepath.Join(t.TempDir(), "logs")
	InitLogger(dir)
	Info("hello from test", zap.Int64("postID", 1))
	_ = Sync()

	data, err := os.ReadFile(filepath.Join(dir, "api.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), `"timestamp"`)
}
