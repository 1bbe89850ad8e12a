package dataset

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"

	apperrors "covidcli/internal/errors"
)

// Loader reads a case-report snapshot from disk into a DataFrame.
// CSV is the primary format; Excel workbooks are accepted as well since
// upstream sources publish both.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new snapshot loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads the snapshot at path and returns the parsed table.
// Failure kinds are distinguishable by error type: a missing file yields
// NOT_FOUND, malformed content yields PARSING, anything else STORAGE. Each
// kind is logged with its own message and nothing panics past this
// component.
func (l *Loader) Load(ctx context.Context, path string) (dataframe.DataFrame, error) {
	var (
		df  dataframe.DataFrame
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		df, err = l.loadExcel(path)
	default:
		df, err = l.loadCSV(path)
	}
	if err != nil {
		switch apperrors.TypeOf(err) {
		case apperrors.ErrTypeNotFound:
			l.logger.ErrorContext(ctx, "snapshot file not found, check the file path",
				slog.String("path", path))
		case apperrors.ErrTypeParsing:
			l.logger.ErrorContext(ctx, "error reading the snapshot, it may be malformed",
				slog.String("path", path),
				slog.String("error", err.Error()))
		default:
			l.logger.ErrorContext(ctx, "unexpected error while loading snapshot",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
		return dataframe.DataFrame{}, err
	}

	l.logger.InfoContext(ctx, "data successfully loaded",
		slog.String("path", path),
		slog.Int("rows", df.Nrow()),
		slog.Int("columns", df.Ncol()))
	return df, nil
}

// loadCSV parses a CSV snapshot with a header row and inferred column types
func (l *Loader) loadCSV(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return dataframe.DataFrame{}, apperrors.NewNotFoundError("snapshot file not found", err).
				WithContext("path", path)
		}
		return dataframe.DataFrame{}, apperrors.NewStorageError("failed to open snapshot", err).
			WithContext("path", path)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if df.Error() != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError("failed to parse CSV snapshot", df.Error()).
			WithContext("path", path)
	}
	return df, nil
}

// loadExcel parses the first sheet of an Excel workbook as the snapshot,
// the first row being the header. Ragged rows are padded to header width so
// short rows surface as missing values rather than parse failures.
func (l *Loader) loadExcel(path string) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return dataframe.DataFrame{}, apperrors.NewNotFoundError("snapshot file not found", err).
				WithContext("path", path)
		}
		return dataframe.DataFrame{}, apperrors.NewParsingError("failed to open Excel snapshot", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return dataframe.DataFrame{}, apperrors.NewParsingError("Excel snapshot has no sheets", nil).
			WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError("failed to read Excel sheet", err).
			WithContext("sheet", sheets[0])
	}
	if len(rows) < 1 || len(rows[0]) == 0 {
		return dataframe.DataFrame{}, apperrors.NewParsingError("Excel snapshot has no header row", nil).
			WithContext("sheet", sheets[0])
	}

	width := len(rows[0])
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		} else if len(row) > width {
			row = row[:width]
		}
		records = append(records, row)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if df.Error() != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError("failed to parse Excel snapshot", df.Error()).
			WithContext("path", path)
	}
	return df, nil
}
