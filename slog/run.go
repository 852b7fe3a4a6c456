package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/musictechlab/ddexmap"
)

// Ensure LoggingRunService implements ddexmap.RunService.
var _ ddexmap.RunService = (*LoggingRunService)(nil)

// LoggingRunService wraps a RunService with debug logging.
type LoggingRunService struct {
	next   ddexmap.RunService
	logger *slog.Logger
}

// NewLoggingRunService creates a new LoggingRunService.
func NewLoggingRunService(next ddexmap.RunService, logger *slog.Logger) *LoggingRunService {
	return &LoggingRunService{next: next, logger: logger}
}

// CreateRun delegates to the wrapped service and logs the operation.
func (s *LoggingRunService) CreateRun(ctx context.Context, run *ddexmap.Run) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create run",
			"id", run.ID,
			"candidates", len(run.Candidates),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRun(ctx, run)
}

// FindRunByID delegates to the wrapped service and logs the operation.
func (s *LoggingRunService) FindRunByID(ctx context.Context, id string) (run *ddexmap.Run, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find run",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRunByID(ctx, id)
}

// FindRuns delegates to the wrapped service and logs the operation.
func (s *LoggingRunService) FindRuns(ctx context.Context, filter ddexmap.RunFilter) (runs []*ddexmap.Run, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find runs",
			"count", len(runs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRuns(ctx, filter)
}
