// Package correlation computes pairwise Pearson correlation matrices over
// cleaned numeric tables.
package correlation

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/goanalytics/analysis"
	"github.com/sartorproj/goanalytics/tabular"
)

// Matrix computes the Pearson correlation coefficient for every unordered
// column pair of the cleaned table. The result is symmetric with an exact
// 1.0 diagonal. A zero-variance column yields NaN against every other
// column; the caller is expected to surface those cells explicitly rather
// than fail.
func Matrix(nt *tabular.NumericTable) (map[string]map[string]float64, error) {
	if nt == nil || len(nt.Columns) < 2 {
		return nil, analysis.Errorf(analysis.KindInsufficientData, "correlation requires at least 2 columns")
	}
	if nt.Len() < 1 {
		return nil, analysis.Errorf(analysis.KindInsufficientData, "correlation requires at least 1 row")
	}

	matrix := make(map[string]map[string]float64, len(nt.Columns))
	for _, col := range nt.Columns {
		matrix[col] = make(map[string]float64, len(nt.Columns))
		matrix[col][col] = 1.0
	}

	for i, a := range nt.Columns {
		for _, b := range nt.Columns[i+1:] {
			r := pearson(nt.Column(a), nt.Column(b))
			matrix[a][b] = r
			matrix[b][a] = r
		}
	}
	return matrix, nil
}

// pearson computes cov(x,y) / (std(x) * std(y)), returning NaN when either
// column has zero variance.
func pearson(x, y []float64) float64 {
	sx := stat.StdDev(x, nil)
	sy := stat.StdDev(y, nil)
	if sx == 0 || sy == 0 {
		return math.NaN()
	}
	return stat.Covariance(x, y, nil) / (sx * sy)
}
