// Command processor runs the COVID-19 case report pipeline over a single
// snapshot: load, clean, persist, analyze. With no flags it processes the
// snapshot shipped next to the executable end to end.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"covidcli/internal/analytics"
	"covidcli/internal/config"
	"covidcli/internal/dataset"
	"covidcli/internal/exporter"
	"covidcli/internal/infrastructure"
	"covidcli/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	inFile := flag.String("in", "", "input snapshot file (defaults to data/01-01-2021.csv relative to the executable)")
	outFile := flag.String("out", "", "output CSV file (defaults to data/reports/processed_data.csv relative to the executable)")
	configFile := flag.String("config", "", "config file (defaults to config.yaml next to the executable)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("failed to initialize paths", "error", err)
		return 1
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	cfg.ResolvePaths(paths)
	if *inFile != "" {
		cfg.Pipeline.InputFile = *inFile
	}
	if *outFile != "" {
		cfg.Pipeline.OutputFile = *outFile
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("failed to create required directories", "error", err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())

	tracing, err := infrastructure.InitializeTracing(ctx, cfg.Logging.EnableTracing, logger)
	if err != nil {
		logger.WarnContext(ctx, "failed to initialize tracing", slog.String("error", err.Error()))
		tracing = &infrastructure.TracingProviders{}
	}
	defer tracing.Shutdown(ctx)

	logger.WarnContext(ctx, "running analysis on single file only")
	logger.InfoContext(ctx, "starting case report processing",
		slog.String("input_file", cfg.Pipeline.InputFile),
		slog.String("output_file", cfg.Pipeline.OutputFile),
		slog.String("country", cfg.Pipeline.CountryFilter))

	runner := pipeline.NewRunner(logger, tracing.Tracer,
		pipeline.NewLoadStage(dataset.NewLoader(logger)),
		pipeline.NewCleanStage(dataset.NewCleaner(logger, cfg.Pipeline.CountryFilter, cfg.Pipeline.TimestampColumn)),
		pipeline.NewPersistStage(exporter.NewCSVWriter(logger), logger),
		pipeline.NewAnalyzeStage(analytics.NewAnalyzer(logger, cfg.Pipeline.ChartsDir, os.Stdout)),
	)

	state := &pipeline.State{
		InputPath:  cfg.Pipeline.InputFile,
		OutputPath: cfg.Pipeline.OutputFile,
		ChartsDir:  cfg.Pipeline.ChartsDir,
	}
	if err := runner.Run(ctx, state); err != nil {
		logger.ErrorContext(ctx, "processing failed", slog.String("error", err.Error()))
		return 1
	}
	return 0
}
