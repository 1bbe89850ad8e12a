// Package pipeline runs the snapshot processing stages in fixed order:
// load, clean, persist, analyze. Each stage gates on the previous stage's
// success; there is no retry and no partial-result recovery.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gota/gota/dataframe"
	"go.opentelemetry.io/otel/trace"
)

// ErrEmptyDataset signals that cleaning produced no rows. It halts the
// remaining stages without marking the run as failed: an empty cleaned
// table is a legitimate outcome, not a crash.
var ErrEmptyDataset = errors.New("cleaned dataset is empty")

// State carries the table and bookkeeping between stages
type State struct {
	InputPath  string
	OutputPath string
	ChartsDir  string

	Table       dataframe.DataFrame
	RowsLoaded  int
	RowsCleaned int
}

// Stage is one step of the run
type Stage interface {
	// ID returns the stage identifier used in logs and spans
	ID() string
	// Execute runs the stage against the shared state
	Execute(ctx context.Context, state *State) error
}

// Runner executes stages sequentially, stopping at the first failure
type Runner struct {
	logger *slog.Logger
	tracer trace.Tracer
	stages []Stage
}

// NewRunner creates a runner over the given stages
func NewRunner(logger *slog.Logger, tracer trace.Tracer, stages ...Stage) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, tracer: tracer, stages: stages}
}

// Run executes the stages in order. An ErrEmptyDataset from a stage stops
// the run cleanly; any other error stops it and is returned to the caller.
func (r *Runner) Run(ctx context.Context, state *State) error {
	start := time.Now()
	for _, stage := range r.stages {
		if err := r.runStage(ctx, stage, state); err != nil {
			if errors.Is(err, ErrEmptyDataset) {
				r.logger.WarnContext(ctx, "cleaned data is empty, skipping remaining stages",
					slog.String("stage", stage.ID()))
				return nil
			}
			return fmt.Errorf("stage %s: %w", stage.ID(), err)
		}
	}

	r.logger.InfoContext(ctx, "pipeline complete",
		slog.Int("rows_loaded", state.RowsLoaded),
		slog.Int("rows_cleaned", state.RowsCleaned),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// runStage executes one stage inside its own span
func (r *Runner) runStage(ctx context.Context, stage Stage, state *State) error {
	if r.tracer != nil {
		var span trace.Span
		ctx, span = r.tracer.Start(ctx, stage.ID())
		defer span.End()
	}

	start := time.Now()
	r.logger.DebugContext(ctx, "stage starting", slog.String("stage", stage.ID()))

	err := stage.Execute(ctx, state)
	if err != nil && !errors.Is(err, ErrEmptyDataset) {
		r.logger.ErrorContext(ctx, "stage failed",
			slog.String("stage", stage.ID()),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()))
		return err
	}

	r.logger.DebugContext(ctx, "stage finished",
		slog.String("stage", stage.ID()),
		slog.Duration("duration", time.Since(start)))
	return err
}
