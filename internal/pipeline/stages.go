package pipeline

import (
	"context"
	"log/slog"

	"covidcli/internal/analytics"
	"covidcli/internal/dataset"
	"covidcli/internal/exporter"
)

// LoadStage reads the snapshot into the shared state
type LoadStage struct {
	loader *dataset.Loader
}

// NewLoadStage creates the load stage
func NewLoadStage(loader *dataset.Loader) *LoadStage {
	return &LoadStage{loader: loader}
}

func (s *LoadStage) ID() string { return "load" }

func (s *LoadStage) Execute(ctx context.Context, state *State) error {
	df, err := s.loader.Load(ctx, state.InputPath)
	if err != nil {
		return err
	}
	state.Table = df
	state.RowsLoaded = df.Nrow()
	return nil
}

// CleanStage applies the cleaning sequence and halts the run when the
// cleaned table is empty.
type CleanStage struct {
	cleaner *dataset.Cleaner
}

// NewCleanStage creates the clean stage
func NewCleanStage(cleaner *dataset.Cleaner) *CleanStage {
	return &CleanStage{cleaner: cleaner}
}

func (s *CleanStage) ID() string { return "clean" }

func (s *CleanStage) Execute(ctx context.Context, state *State) error {
	df, err := s.cleaner.Clean(ctx, state.Table)
	if err != nil {
		return err
	}
	state.Table = df
	state.RowsCleaned = df.Nrow()
	if df.Nrow() == 0 {
		return ErrEmptyDataset
	}
	return nil
}

// PersistStage writes the cleaned table to the output CSV. Write failures
// are logged and swallowed so the run continues to analysis; only the log
// entry marks the failure.
type PersistStage struct {
	writer *exporter.CSVWriter
	logger *slog.Logger
}

// NewPersistStage creates the persist stage
func NewPersistStage(writer *exporter.CSVWriter, logger *slog.Logger) *PersistStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &PersistStage{writer: writer, logger: logger}
}

func (s *PersistStage) ID() string { return "persist" }

func (s *PersistStage) Execute(ctx context.Context, state *State) error {
	if err := s.writer.WriteDataFrame(state.OutputPath, state.Table, exporter.WriteOptions{}); err != nil {
		s.logger.ErrorContext(ctx, "failed to save cleaned data",
			slog.String("path", state.OutputPath),
			slog.String("error", err.Error()))
		return nil
	}
	s.logger.InfoContext(ctx, "cleaned data saved",
		slog.String("path", state.OutputPath),
		slog.Int("rows", state.Table.Nrow()))
	return nil
}

// AnalyzeStage runs the descriptive statistics and chart rendering
type AnalyzeStage struct {
	analyzer *analytics.Analyzer
}

// NewAnalyzeStage creates the analyze stage
func NewAnalyzeStage(analyzer *analytics.Analyzer) *AnalyzeStage {
	return &AnalyzeStage{analyzer: analyzer}
}

func (s *AnalyzeStage) ID() string { return "analyze" }

func (s *AnalyzeStage) Execute(ctx context.Context, state *State) error {
	df, err := s.analyzer.Analyze(ctx, state.Table)
	if err != nil {
		return err
	}
	state.Table = df
	return nil
}
