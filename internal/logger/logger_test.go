package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level  string
		format string
		want   zapcore.Level
	}{
		{"debug", "", zapcore.DebugLevel},
		{"warn", "console", zapcore.WarnLevel},
		{"error", "json", zapcore.ErrorLevel},
		{"nonsense", "json", zapcore.InfoLevel},
		{"", "", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			log, err := New(tt.level, tt.format)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "")
	t.Setenv(EnvFormat, "")
	level, format := FromEnv()
	assert.Equal(t, DefaultLevel, level)
	assert.Empty(t, format)

	t.Setenv(EnvLevel, "debug")
	t.Setenv(EnvFormat, "json")
	level, format = FromEnv()
	assert.Equal(t, "debug", level)
	assert.Equal(t, "json", format)
}
