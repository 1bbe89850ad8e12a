package dataset

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "covidcli/internal/errors"
)

// Cleaner applies the fixed cleaning sequence to a raw case report table:
// drop incomplete rows, normalize the update timestamp, filter to one
// country, drop the coordinate columns.
type Cleaner struct {
	logger          *slog.Logger
	country         string
	timestampColumn string
}

// NewCleaner creates a cleaner for the given country code. The timestamp
// column defaults to Last_Update when empty.
func NewCleaner(logger *slog.Logger, country, timestampColumn string) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	if timestampColumn == "" {
		timestampColumn = ColLastUpdate
	}
	return &Cleaner{
		logger:          logger,
		country:         country,
		timestampColumn: timestampColumn,
	}
}

// Clean runs the cleaning sequence and returns the cleaned table.
//
// A missing country column is a structural failure: it is logged once and an
// empty table is returned with no error, short-circuiting the remaining
// steps. A timestamp value that parses under none of the known layouts is a
// hard failure and propagates. Zero rows after filtering is a legitimate
// empty result, not an error.
func (c *Cleaner) Clean(ctx context.Context, df dataframe.DataFrame) (dataframe.DataFrame, error) {
	df = c.dropMissing(df)

	df, err := c.normalizeTimestamps(df)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	c.logger.InfoContext(ctx, "columns in the dataset",
		slog.Any("columns", df.Names()))

	if !HasColumn(df, ColCountryRegion) {
		c.logger.ErrorContext(ctx, "country region column not found",
			slog.String("column", ColCountryRegion))
		return dataframe.DataFrame{}, nil
	}

	df = df.Filter(dataframe.F{
		Colname:    ColCountryRegion,
		Comparator: series.Eq,
		Comparando: c.country,
	})
	if df.Error() != nil {
		return dataframe.DataFrame{}, apperrors.NewValidationError("failed to filter by country", df.Error()).
			WithContext("country", c.country)
	}

	df = c.dropCoordinates(df)

	c.logger.DebugContext(ctx, "cleaning complete",
		slog.String("country", c.country),
		slog.Int("rows", df.Nrow()))
	return df, nil
}

// dropMissing removes every row containing a missing field. No threshold,
// no imputation.
func (c *Cleaner) dropMissing(df dataframe.DataFrame) dataframe.DataFrame {
	if df.Nrow() == 0 {
		return df
	}

	records := df.Records() // records[0] is the header row
	keep := make([]int, 0, df.Nrow())
	for i, row := range records[1:] {
		complete := true
		for _, field := range row {
			if field == "" || field == "NaN" {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}

	if len(keep) == df.Nrow() {
		return df
	}
	return df.Subset(keep)
}

// normalizeTimestamps parses the timestamp column and rewrites it in the
// canonical layout. The column must exist and every value must parse; this
// step fails loudly rather than falling back.
func (c *Cleaner) normalizeTimestamps(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if !HasColumn(df, c.timestampColumn) {
		return dataframe.DataFrame{}, apperrors.NewValidationError("timestamp column not found", nil).
			WithContext("column", c.timestampColumn)
	}
	if df.Nrow() == 0 {
		return df, nil
	}

	raw := df.Col(c.timestampColumn).Records()
	normalized := make([]string, len(raw))
	for i, value := range raw {
		ts, err := parseTimestamp(value)
		if err != nil {
			return dataframe.DataFrame{}, apperrors.NewParsingError("failed to parse update timestamp", err).
				WithContext("column", c.timestampColumn).
				WithContext("value", value)
		}
		normalized[i] = ts.Format(normalizedTimestampLayout)
	}

	return df.Mutate(series.New(normalized, series.String, c.timestampColumn)), nil
}

// dropCoordinates removes the Long_/Lat columns when present. Their absence
// is not an error.
func (c *Cleaner) dropCoordinates(df dataframe.DataFrame) dataframe.DataFrame {
	var present []string
	for _, name := range []string{ColLongitude, ColLatitude} {
		if HasColumn(df, name) {
			present = append(present, name)
		}
	}
	if len(present) == 0 {
		return df
	}
	return df.Drop(present)
}

// parseTimestamp tries each known snapshot layout in order
func parseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
