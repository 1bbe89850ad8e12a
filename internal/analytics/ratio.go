package analytics

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"covidcli/internal/dataset"
)

// FatalityRatio computes the case fatality ratio for one row:
// deaths / confirmed * 100, defined as 0 when confirmed is not positive.
// The zero rule avoids division by zero; it is not a statistical correction.
func FatalityRatio(deaths, confirmed float64) float64 {
	if confirmed > 0 {
		return deaths / confirmed * 100
	}
	return 0
}

// AppendFatalityRatio returns the table with a Case_Fatality_Ratio column
// computed per row. Both the Confirmed and Deaths columns must be present;
// callers gate on that.
func AppendFatalityRatio(df dataframe.DataFrame) dataframe.DataFrame {
	confirmed := df.Col(dataset.ColConfirmed).Float()
	deaths := df.Col(dataset.ColDeaths).Float()

	ratios := make([]float64, len(confirmed))
	for i := range confirmed {
		ratios[i] = FatalityRatio(deaths[i], confirmed[i])
	}

	return df.Mutate(series.New(ratios, series.Float, dataset.ColFatalityRatio))
}
