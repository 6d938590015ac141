package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestZapLevelParsesConfiguredNames(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ZapLevel("debug").Level())
	assert.Equal(t, zapcore.WarnLevel, ZapLevel("warn").Level())
	assert.Equal(t, zapcore.ErrorLevel, ZapLevel("error").Level())
	assert.Equal(t, zapcore.DebugLevel, ZapLevel(" DEBUG ").Level())
}

func TestZapLevelDefaultsToInfo(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, ZapLevel("").Level())
	assert.Equal(t, zapcore.InfoLevel, ZapLevel("verbose").Level())
}
