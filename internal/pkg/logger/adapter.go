package logger

import "mcp_market/internal/app/port"

// slogAdapter implements port.Logger on top of the package-level functions,
// so services depending on port.Logger can be handed a concrete logger.
type slogAdapter struct{}

// NewAdapter returns a port.Logger backed by the global slog logger.
func NewAdapter() port.Logger {
	return &slogAdapter{}
}

func (a *slogAdapter) Info(msg string, args ...any)  { Info(msg, args...) }
func (a *slogAdapter) Debug(msg string, args ...any) { Debug(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { Error(msg, args...) }
