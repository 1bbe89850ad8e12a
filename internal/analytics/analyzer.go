// Package analytics computes descriptive statistics over cleaned case
// report tables and renders the fatality-ratio and correlation charts.
package analytics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"

	"covidcli/internal/dataset"
)

// Chart file names under the charts directory
const (
	HistogramChartName = "case_fatality_ratio.png"
	HeatmapChartName   = "correlation_matrix.png"
)

// Analyzer runs the three column-gated analyses over a cleaned table:
// grouped descriptive statistics, the fatality ratio with its histogram,
// and the correlation heat map. A missing optional column skips only its
// own analysis.
type Analyzer struct {
	logger     *slog.Logger
	summarizer *Summarizer
	charts     *ChartRenderer
	chartsDir  string
	out        io.Writer
}

// NewAnalyzer creates an analyzer writing tabular output to out and chart
// PNGs under chartsDir. A nil out defaults to stdout.
func NewAnalyzer(logger *slog.Logger, chartsDir string, out io.Writer) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Analyzer{
		logger:     logger,
		summarizer: NewSummarizer(logger),
		charts:     NewChartRenderer(logger),
		chartsDir:  chartsDir,
		out:        out,
	}
}

// Analyze runs the analyses in fixed order and returns the table, with the
// fatality ratio column appended when the count columns were present. An
// empty table is logged as a warning and returned untouched.
func (a *Analyzer) Analyze(ctx context.Context, df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Nrow() == 0 {
		a.logger.WarnContext(ctx, "no data available for analysis")
		return df, nil
	}

	if dataset.HasColumn(df, dataset.ColProvinceState) {
		summaries, err := a.summarizer.SummarizeByGroup(ctx, df, dataset.ColProvinceState)
		if err != nil {
			return df, fmt.Errorf("grouped statistics: %w", err)
		}
		if err := a.summarizer.Render(a.out, summaries); err != nil {
			return df, fmt.Errorf("render grouped statistics: %w", err)
		}
	} else {
		a.logger.DebugContext(ctx, "region column absent, skipping grouped statistics",
			slog.String("column", dataset.ColProvinceState))
	}

	if dataset.HasColumn(df, dataset.ColConfirmed) && dataset.HasColumn(df, dataset.ColDeaths) {
		df = AppendFatalityRatio(df)

		ratios := df.Col(dataset.ColFatalityRatio).Float()
		histPath := filepath.Join(a.chartsDir, HistogramChartName)
		if err := a.charts.FatalityHistogram(ratios, histPath); err != nil {
			return df, fmt.Errorf("render fatality histogram: %w", err)
		}

		names, corr, err := CorrelationMatrix(df)
		if err != nil {
			a.logger.DebugContext(ctx, "skipping correlation heat map",
				slog.String("reason", err.Error()))
			return df, nil
		}
		heatPath := filepath.Join(a.chartsDir, HeatmapChartName)
		if err := a.charts.CorrelationHeatmap(names, corr, heatPath); err != nil {
			return df, fmt.Errorf("render correlation heat map: %w", err)
		}
	} else {
		a.logger.DebugContext(ctx, "count columns absent, skipping fatality ratio analysis")
	}

	return df, nil
}
