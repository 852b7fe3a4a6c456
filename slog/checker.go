package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/musictechlab/ddexmap"
)

// Ensure LoggingChecker implements ddexmap.LivenessChecker.
var _ ddexmap.LivenessChecker = (*LoggingChecker)(nil)

// LoggingChecker wraps a LivenessChecker with debug logging.
type LoggingChecker struct {
	next   ddexmap.LivenessChecker
	logger *slog.Logger
}

// NewLoggingChecker creates a new LoggingChecker.
func NewLoggingChecker(next ddexmap.LivenessChecker, logger *slog.Logger) *LoggingChecker {
	return &LoggingChecker{next: next, logger: logger}
}

// Alive delegates to the wrapped checker and logs the result.
func (c *LoggingChecker) Alive(ctx context.Context, url string) (alive bool) {
	defer func(begin time.Time) {
		c.logger.Info("liveness check",
			"url", url,
			"alive", alive,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return c.next.Alive(ctx, url)
}
