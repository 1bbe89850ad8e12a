// Package dataset loads and cleans COVID-19 case-report snapshots.
//
// The Case Report Table is schema-on-read: columns are discovered from the
// file and carried in a gota DataFrame with inferred per-column types. The
// well-known column names below are the ones the cleaning and analysis
// stages care about; any other columns ride along untouched.
package dataset

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Well-known case report columns
const (
	ColLastUpdate    = "Last_Update"
	ColCountryRegion = "Country_Region"
	ColProvinceState = "Province_State"
	ColConfirmed     = "Confirmed"
	ColDeaths        = "Deaths"
	ColLongitude     = "Long_"
	ColLatitude      = "Lat"
	ColFatalityRatio = "Case_Fatality_Ratio"
)

// timestampLayouts are the Last_Update formats observed across daily
// case-report snapshots. Parsing tries them in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/2006 15:04",
	"1/2/06 15:04",
	"2006-01-02",
}

// normalizedTimestampLayout is the canonical form timestamps are rewritten
// to during cleaning.
const normalizedTimestampLayout = "2006-01-02 15:04:05"

// HasColumn reports whether the DataFrame contains a column with the given
// name.
func HasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// NumericColumns returns the names of all int- and float-typed columns in
// column order.
func NumericColumns(df dataframe.DataFrame) []string {
	names := df.Names()
	types := df.Types()
	var numeric []string
	for i, t := range types {
		if t == series.Int || t == series.Float {
			numeric = append(numeric, names[i])
		}
	}
	return numeric
}
