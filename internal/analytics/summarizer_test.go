package analytics

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covidcli/internal/dataset"
)

func summaryFrame(t *testing.T) dataframe.DataFrame {
	t.Helper()
	df := dataframe.LoadRecords([][]string{
		{"Province_State", "Country_Region", "Confirmed", "Deaths"},
		{"Alabama", "US", "100", "10"},
		{"Alabama", "US", "200", "20"},
		{"Alabama", "US", "300", "30"},
		{"Texas", "US", "50", "5"},
	})
	require.NoError(t, df.Error())
	return df
}

func TestSummarizer_SummarizeByGroup(t *testing.T) {
	s := NewSummarizer(slog.Default())

	summaries, err := s.SummarizeByGroup(context.Background(), summaryFrame(t), dataset.ColProvinceState)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// groups come back sorted
	assert.Equal(t, "Alabama", summaries[0].Group)
	assert.Equal(t, "Texas", summaries[1].Group)

	var confirmed ColumnStats
	for _, cs := range summaries[0].Stats {
		if cs.Column == dataset.ColConfirmed {
			confirmed = cs
		}
	}
	require.Equal(t, dataset.ColConfirmed, confirmed.Column)
	assert.Equal(t, 3, confirmed.Count)
	assert.InDelta(t, 200.0, confirmed.Mean, 1e-9)
	assert.InDelta(t, 100.0, confirmed.Std, 1e-9)
	assert.Equal(t, 100.0, confirmed.Min)
	assert.Equal(t, 300.0, confirmed.Max)
	assert.GreaterOrEqual(t, confirmed.Median, confirmed.Q25)
	assert.LessOrEqual(t, confirmed.Median, confirmed.Q75)
}

func TestSummarizer_SingleRowGroupStdIsNaN(t *testing.T) {
	s := NewSummarizer(slog.Default())

	summaries, err := s.SummarizeByGroup(context.Background(), summaryFrame(t), dataset.ColProvinceState)
	require.NoError(t, err)

	texas := summaries[1]
	require.Equal(t, "Texas", texas.Group)
	for _, cs := range texas.Stats {
		assert.Equal(t, 1, cs.Count)
		assert.True(t, math.IsNaN(cs.Std), "sample std of one value is undefined")
		assert.Equal(t, cs.Min, cs.Max)
	}
}

func TestSummarizer_MissingGroupColumn(t *testing.T) {
	s := NewSummarizer(slog.Default())

	_, err := s.SummarizeByGroup(context.Background(), summaryFrame(t), "Nope")
	assert.Error(t, err)
}

func TestSummarizer_NoNumericColumns(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"Province_State", "Country_Region"},
		{"Alabama", "US"},
	})
	require.NoError(t, df.Error())

	s := NewSummarizer(slog.Default())
	summaries, err := s.SummarizeByGroup(context.Background(), df, dataset.ColProvinceState)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestSummarizer_Render(t *testing.T) {
	s := NewSummarizer(slog.Default())
	summaries, err := s.SummarizeByGroup(context.Background(), summaryFrame(t), dataset.ColProvinceState)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf, summaries))

	out := buf.String()
	assert.Contains(t, out, "group")
	assert.Contains(t, out, "Alabama")
	assert.Contains(t, out, "Texas")
	assert.Contains(t, out, "Confirmed")
	assert.Contains(t, out, "NaN") // single-row Texas std
}

func TestDescribe_Quartiles(t *testing.T) {
	cs := describe("x", []float64{4, 1, 3, 2})

	assert.Equal(t, 4, cs.Count)
	assert.Equal(t, 1.0, cs.Min)
	assert.Equal(t, 4.0, cs.Max)
	assert.InDelta(t, 2.5, cs.Mean, 1e-9)
	assert.GreaterOrEqual(t, cs.Q75, cs.Median)
	assert.GreaterOrEqual(t, cs.Median, cs.Q25)
}

func TestDescribe_Empty(t *testing.T) {
	cs := describe("x", nil)
	assert.Equal(t, 0, cs.Count)
	assert.Zero(t, cs.Mean)
}
