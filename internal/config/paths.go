package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations: everything is
// resolved relative to the executable directory, never the current working
// directory.
type Paths struct {
	ExecutableDir string
	DataDir       string
	ReportsDir    string
	ChartsDir     string
	LogsDir       string

	// Well-known files
	SnapshotFile  string // default input snapshot
	ProcessedFile string // cleaned output CSV
}

// defaultSnapshotName is the case-report snapshot shipped alongside the
// binary.
const defaultSnapshotName = "01-01-2021.csv"

// GetPaths returns the application paths relative to the executable location.
//
// Directory structure:
//
//	<exe dir>/
//	  ├── config.yaml
//	  ├── data/
//	  │   ├── 01-01-2021.csv        (input snapshot)
//	  │   └── reports/
//	  │       ├── processed_data.csv
//	  │       └── charts/           (rendered PNGs)
//	  └── logs/
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return NewPathsFromDir(filepath.Dir(exe)), nil
}

// NewPathsFromDir builds the path set rooted at the given directory.
// Split out from GetPaths so tests can root everything in a temp dir.
func NewPathsFromDir(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	reportsDir := filepath.Join(dataDir, "reports")
	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		ReportsDir:    reportsDir,
		ChartsDir:     filepath.Join(reportsDir, "charts"),
		LogsDir:       filepath.Join(baseDir, "logs"),
		SnapshotFile:  filepath.Join(dataDir, defaultSnapshotName),
		ProcessedFile: filepath.Join(reportsDir, "processed_data.csv"),
	}
}

// EnsureDirectories creates all required directories if they do not exist
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.ReportsDir, p.ChartsDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetChartPath returns the path for a rendered chart
func (p *Paths) GetChartPath(filename string) string {
	return filepath.Join(p.ChartsDir, filename)
}

// GetReportPath returns the path for a generated report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}
