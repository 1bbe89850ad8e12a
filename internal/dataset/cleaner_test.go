package dataset

import (
	"context"
	"log/slog"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "covidcli/internal/errors"
)

func newTestCleaner() *Cleaner {
	return NewCleaner(slog.Default(), "US", ColLastUpdate)
}

func loadTestFrame(t *testing.T, records [][]string) dataframe.DataFrame {
	t.Helper()
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	require.NoError(t, df.Error())
	return df
}

func TestCleaner_Clean_FiltersToCountry(t *testing.T) {
	df := loadTestFrame(t, [][]string{
		{"Province_State", "Country_Region", "Last_Update", "Lat", "Long_", "Confirmed", "Deaths"},
		{"Alabama", "US", "2021-01-01 05:22:33", "32.31", "-86.90", "361226", "4827"},
		{"Ontario", "CA", "2021-01-01 05:22:33", "51.25", "-85.32", "183324", "4530"},
		{"Texas", "US", "2021-01-01 05:22:33", "31.05", "-97.56", "1771978", "27940"},
	})

	cleaned, err := newTestCleaner().Clean(context.Background(), df)
	require.NoError(t, err)

	assert.Equal(t, 2, cleaned.Nrow())
	for _, country := range cleaned.Col(ColCountryRegion).Records() {
		assert.Equal(t, "US", country)
	}
}

func TestCleaner_Clean_DropsIncompleteRows(t *testing.T) {
	df := loadTestFrame(t, [][]string{
		{"Province_State", "Country_Region", "Last_Update", "Confirmed", "Deaths"},
		{"Alabama", "US", "2021-01-01 05:22:33", "361226", "4827"},
		{"", "US", "2021-01-01 05:22:33", "100", "5"},
		{"Texas", "US", "2021-01-01 05:22:33", "", "27940"},
	})

	cleaned, err := newTestCleaner().Clean(context.Background(), df)
	require.NoError(t, err)

	require.Equal(t, 1, cleaned.Nrow())
	assert.Equal(t, []string{"Alabama"}, cleaned.Col(ColProvinceState).Records())

	// no missing value survives in any retained column
	for _, row := range cleaned.Records()[1:] {
		for _, field := range row {
			assert.NotEmpty(t, field)
			assert.NotEqual(t, "NaN", field)
		}
	}
}

func TestCleaner_Clean_DropsCoordinateColumns(t *testing.T) {
	tests := []struct {
		name    string
		records [][]string
	}{
		{
			name: "both coordinate columns present",
			records: [][]string{
				{"Province_State", "Country_Region", "Last_Update", "Lat", "Long_", "Confirmed", "Deaths"},
				{"Alabama", "US", "2021-01-01 05:22:33", "32.31", "-86.90", "361226", "4827"},
			},
		},
		{
			name: "coordinate columns absent",
			records: [][]string{
				{"Province_State", "Country_Region", "Last_Update", "Confirmed", "Deaths"},
				{"Alabama", "US", "2021-01-01 05:22:33", "361226", "4827"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, err := newTestCleaner().Clean(context.Background(), loadTestFrame(t, tt.records))
			require.NoError(t, err)

			assert.False(t, HasColumn(cleaned, ColLongitude))
			assert.False(t, HasColumn(cleaned, ColLatitude))
			assert.Equal(t, 1, cleaned.Nrow())
		})
	}
}

func TestCleaner_Clean_NormalizesTimestamps(t *testing.T) {
	df := loadTestFrame(t, [][]string{
		{"Province_State", "Country_Region", "Last_Update", "Confirmed", "Deaths"},
		{"Alabama", "US", "1/1/2021 05:22", "361226", "4827"},
	})

	cleaned, err := newTestCleaner().Clean(context.Background(), df)
	require.NoError(t, err)

	assert.Equal(t, []string{"2021-01-01 05:22:00"}, cleaned.Col(ColLastUpdate).Records())
}

func TestCleaner_Clean_UnparseableTimestampFailsLoudly(t *testing.T) {
	df := loadTestFrame(t, [][]string{
		{"Province_State", "Country_Region", "Last_Update", "Confirmed", "Deaths"},
		{"Alabama", "US", "not a timestamp", "361226", "4827"},
	})

	_, err := newTestCleaner().Clean(context.Background(), df)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestCleaner_Clean_MissingTimestampColumn(t *testing.T) {
	df := loadTestFrame(t, [][]string{
		{"Province_State", "Country_Region", "Confirmed", "Deaths"},
		{"Alabama", "US", "361226", "4827"},
	})

	_, err := newTestCleaner().Clean(context.Background(), df)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestCleaner_Clean_MissingCountryColumnReturnsEmpty(t *testing.T) {
	df := loadTestFrame(t, [][]string{
		{"Province_State", "Last_Update", "Confirmed", "Deaths"},
		{"Alabama", "2021-01-01 05:22:33", "361226", "4827"},
	})

	cleaned, err := newTestCleaner().Clean(context.Background(), df)
	require.NoError(t, err)
	assert.Equal(t, 0, cleaned.Nrow())
}

func TestCleaner_Clean_NoMatchingCountryIsEmptyNotError(t *testing.T) {
	df := loadTestFrame(t, [][]string{
		{"Province_State", "Country_Region", "Last_Update", "Confirmed", "Deaths"},
		{"Ontario", "CA", "2021-01-01 05:22:33", "183324", "4530"},
	})

	cleaned, err := newTestCleaner().Clean(context.Background(), df)
	require.NoError(t, err)
	assert.Equal(t, 0, cleaned.Nrow())
}

func TestCleaner_Clean_Idempotent(t *testing.T) {
	df := loadTestFrame(t, [][]string{
		{"Province_State", "Country_Region", "Last_Update", "Lat", "Long_", "Confirmed", "Deaths"},
		{"Alabama", "US", "2021-01-01 05:22:33", "32.31", "-86.90", "361226", "4827"},
		{"Texas", "US", "2021-01-01 05:22:33", "31.05", "-97.56", "1771978", "27940"},
	})

	cleaner := newTestCleaner()
	once, err := cleaner.Clean(context.Background(), df)
	require.NoError(t, err)

	twice, err := cleaner.Clean(context.Background(), once)
	require.NoError(t, err)

	assert.Equal(t, once.Nrow(), twice.Nrow())
	assert.Equal(t, once.Names(), twice.Names())
	assert.Equal(t, once.Records(), twice.Records())
}

func TestNumericColumns(t *testing.T) {
	df := loadTestFrame(t, [][]string{
		{"Province_State", "Country_Region", "Confirmed", "Deaths", "Incident_Rate"},
		{"Alabama", "US", "361226", "4827", "7366.24"},
	})

	assert.Equal(t, []string{"Confirmed", "Deaths", "Incident_Rate"}, NumericColumns(df))
}
