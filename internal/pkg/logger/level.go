package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLevel maps a configured level name onto a zap atomic level. Unknown or
// empty values fall back to info so a bad config cannot silence the logs.
func ZapLevel(level string) zap.AtomicLevel {
	parsed, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return zap.NewAtomicLevelAt(parsed)
}
