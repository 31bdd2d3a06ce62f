package util

import (
	"log/slog"
	"time"
)

// Elapsed logs how long name took once the returned func is called.
func Elapsed(logger *slog.Logger, name string) func() {
	start := time.Now()
	return func() {
		logger.Debug("Timing", slog.String("step", name), slog.Duration("took", time.Since(start)))
	}
}

// Pointer returns a pointer to v.
func Pointer[T any](v T) *T {
	return &v
}
