package analytics

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"covidcli/internal/dataset"
)

// CorrelationMatrix computes the pairwise Pearson correlation matrix over
// all numeric columns of the table. It returns the column names in matrix
// order alongside the matrix itself.
func CorrelationMatrix(df dataframe.DataFrame) ([]string, *mat.SymDense, error) {
	cols := dataset.NumericColumns(df)
	if len(cols) < 2 {
		return nil, nil, fmt.Errorf("correlation requires at least two numeric columns, have %d", len(cols))
	}
	rows := df.Nrow()
	if rows < 2 {
		return nil, nil, fmt.Errorf("correlation requires at least two rows, have %d", rows)
	}

	data := mat.NewDense(rows, len(cols), nil)
	for j, col := range cols {
		values := df.Col(col).Float()
		for i, v := range values {
			data.Set(i, j, v)
		}
	}

	corr := mat.NewSymDense(len(cols), nil)
	stat.CorrelationMatrix(corr, data, nil)
	return cols, corr, nil
}
