package analytics

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ChartRenderer renders analysis charts to PNG files. File output stands in
// for the interactive plot windows of a desktop toolkit: charts are rendered
// one after the other and their paths logged.
type ChartRenderer struct {
	logger *slog.Logger
}

// NewChartRenderer creates a new chart renderer
func NewChartRenderer(logger *slog.Logger) *ChartRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartRenderer{logger: logger}
}

// FatalityHistogram renders a histogram of the case fatality ratio with an
// overlaid kernel density curve.
func (r *ChartRenderer) FatalityHistogram(values []float64, path string) error {
	if len(values) == 0 {
		return fmt.Errorf("no values to plot")
	}

	p := plot.New()
	p.Title.Text = "Distribution of Case Fatality Ratio"
	p.X.Label.Text = "Case Fatality Ratio (%)"
	p.Y.Label.Text = "Density"

	hist, err := plotter.NewHist(plotter.Values(values), 16)
	if err != nil {
		return fmt.Errorf("failed to build histogram: %w", err)
	}
	hist.Normalize(1)
	p.Add(hist)

	if line := densityLine(values); line != nil {
		p.Add(line)
	}

	if err := savePlot(p, 10*vg.Inch, 6*vg.Inch, path); err != nil {
		return err
	}
	r.logger.Info("fatality ratio histogram rendered", slog.String("path", path))
	return nil
}

// CorrelationHeatmap renders the correlation matrix as an annotated heat
// map, cell values to two decimal places.
func (r *ChartRenderer) CorrelationHeatmap(names []string, corr *mat.SymDense, path string) error {
	n := len(names)
	rows, _ := corr.Dims()
	if n == 0 || rows != n {
		return fmt.Errorf("correlation matrix size %d does not match %d column names", rows, n)
	}

	p := plot.New()
	p.Title.Text = "Correlation Matrix"

	grid := matrixGrid{m: corr}
	heatMap := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	heatMap.Min = -1
	heatMap.Max = 1
	p.Add(heatMap)

	ticks := nameTicks{names: names}
	p.X.Tick.Marker = ticks
	p.Y.Tick.Marker = ticks

	labels, err := annotationLabels(corr)
	if err != nil {
		return fmt.Errorf("failed to build annotations: %w", err)
	}
	p.Add(labels)

	if err := savePlot(p, 8*vg.Inch, 8*vg.Inch, path); err != nil {
		return err
	}
	r.logger.Info("correlation heat map rendered", slog.String("path", path))
	return nil
}

// savePlot writes the plot to a PNG file, creating the directory if needed
func savePlot(p *plot.Plot, w, h vg.Length, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create charts directory: %w", err)
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	return nil
}

// densityLine builds a gaussian kernel density curve over the values using
// Silverman's bandwidth. Returns nil when the sample has no spread.
func densityLine(values []float64) *plotter.Line {
	n := len(values)
	sigma := stat.StdDev(values, nil)
	if n < 2 || sigma == 0 || math.IsNaN(sigma) {
		return nil
	}
	bandwidth := 1.06 * sigma * math.Pow(float64(n), -0.2)

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo -= 3 * bandwidth
	hi += 3 * bandwidth

	const points = 200
	step := (hi - lo) / (points - 1)
	pts := make(plotter.XYs, points)
	for i := range pts {
		x := lo + float64(i)*step
		var density float64
		for _, v := range values {
			density += distuv.UnitNormal.Prob((x - v) / bandwidth)
		}
		pts[i].X = x
		pts[i].Y = density / (float64(n) * bandwidth)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil
	}
	line.Width = vg.Points(1.5)
	return line
}

// annotationLabels places the matrix values at their cell centers
func annotationLabels(corr *mat.SymDense) (*plotter.Labels, error) {
	n, _ := corr.Dims()
	xyLabels := plotter.XYLabels{
		XYs:    make(plotter.XYs, 0, n*n),
		Labels: make([]string, 0, n*n),
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			xyLabels.XYs = append(xyLabels.XYs, plotter.XY{X: float64(c), Y: float64(r)})
			xyLabels.Labels = append(xyLabels.Labels, strconv.FormatFloat(corr.At(r, c), 'f', 2, 64))
		}
	}
	return plotter.NewLabels(xyLabels)
}

// matrixGrid adapts a symmetric matrix to the heat map's grid interface,
// one unit-square cell per matrix entry.
type matrixGrid struct {
	m *mat.SymDense
}

func (g matrixGrid) Dims() (c, r int) {
	n, _ := g.m.Dims()
	return n, n
}

func (g matrixGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }

// nameTicks labels integer axis positions with column names
type nameTicks struct {
	names []string
}

func (t nameTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i, name := range t.names {
		v := float64(i)
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: name})
	}
	return ticks
}
