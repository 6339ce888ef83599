package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"glyphcrawl/internal/config"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"", zapcore.InfoLevel},
		{"loud", zapcore.InfoLevel},
	}
	for _, tc := range cases {
		for _, format := range []string{"console", "json"} {
			log, err := New(config.LoggingConfig{Level: tc.level, Format: format})
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tc.want), "%s/%s should enable %v", tc.level, format, tc.want)
			if tc.want > zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tc.want-1), "%s/%s should not enable %v", tc.level, format, tc.want-1)
			}
		}
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, err := ToFile(config.LoggingConfig{Level: "info"}, path)
	require.NoError(t, err)
	log.Info("descended", zap.Int("depth", 2))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"descended"`)
	assert.Contains(t, string(data), `"depth":2`)
}

func TestToFileEmptyPathIsNop(t *testing.T) {
	log, err := ToFile(config.LoggingConfig{}, "")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))
}
