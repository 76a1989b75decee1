package regression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goanalytics/analysis"
	"github.com/sartorproj/goanalytics/tabular"
)

func TestFitOLSPerfectLine(t *testing.T) {
	// y = 2x + 3 exactly
	n := 10
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i)
		y[i] = 2*float64(i) + 3
	}

	nt := &tabular.NumericTable{
		Columns: []string{"x", "y"},
		Data:    map[string][]float64{"x": x, "y": y},
	}

	result, err := FitOLS(nt, "y", []string{"x"})
	require.NoError(t, err)

	assert.InDelta(t, 3.0, result.Coefficients[InterceptKey], 1e-8)
	assert.InDelta(t, 2.0, result.Coefficients["x"], 1e-8)
	assert.InDelta(t, 1.0, result.RSquared, 1e-12)
	assert.InDelta(t, 0.0, result.RMSE, 1e-8)
}

func TestFitOLSNoisyMetrics(t *testing.T) {
	// y = 5 + 1.5x with small deterministic noise
	n := 40
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i)
		y[i] = 5 + 1.5*float64(i) + float64(i%5-2)/4
	}

	nt := &tabular.NumericTable{
		Columns: []string{"x", "y"},
		Data:    map[string][]float64{"x": x, "y": y},
	}

	result, err := FitOLS(nt, "y", []string{"x"})
	require.NoError(t, err)

	assert.InDelta(t, 5.0, result.Coefficients[InterceptKey], 0.5)
	assert.InDelta(t, 1.5, result.Coefficients["x"], 0.05)

	assert.Greater(t, result.RSquared, 0.99)
	assert.Less(t, result.AdjRSquared, result.RSquared)
	assert.Greater(t, result.AdjRSquared, 0.99)

	// A strong fit has a large F statistic and a vanishing p-value.
	assert.Greater(t, result.FStatistic, 100.0)
	assert.Less(t, result.FPValue, 1e-6)
	assert.Greater(t, result.RMSE, 0.0)
}

func TestFitOLSMultipleFeatures(t *testing.T) {
	// y = 1 + 2a - 3b exactly
	n := 15
	a := make([]float64, n)
	b := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		a[i] = float64(i)
		b[i] = float64((i * 7) % 5)
		y[i] = 1 + 2*a[i] - 3*b[i]
	}

	nt := &tabular.NumericTable{
		Columns: []string{"a", "b", "y"},
		Data:    map[string][]float64{"a": a, "b": b, "y": y},
	}

	result, err := FitOLS(nt, "y", []string{"a", "b"})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.Coefficients[InterceptKey], 1e-8)
	assert.InDelta(t, 2.0, result.Coefficients["a"], 1e-8)
	assert.InDelta(t, -3.0, result.Coefficients["b"], 1e-8)
	assert.InDelta(t, 1.0, result.RSquared, 1e-12)
}

func TestFitOLSUnderdetermined(t *testing.T) {
	nt := &tabular.NumericTable{
		Columns: []string{"x", "y"},
		Data:    map[string][]float64{"x": {1, 2}, "y": {3, 5}},
	}

	// 2 rows, 1 feature + intercept: n <= k+1
	_, err := FitOLS(nt, "y", []string{"x"})
	require.Error(t, err)
	assert.Equal(t, analysis.KindUnderdetermined, analysis.KindOf(err))
}

func TestFitOLSMissingColumns(t *testing.T) {
	nt := &tabular.NumericTable{
		Columns: []string{"x"},
		Data:    map[string][]float64{"x": {1, 2, 3}},
	}

	_, err := FitOLS(nt, "y", []string{"x"})
	assert.Equal(t, analysis.KindMissingColumn, analysis.KindOf(err))

	_, err = FitOLS(nt, "x", []string{"z"})
	assert.Equal(t, analysis.KindMissingColumn, analysis.KindOf(err))

	_, err = FitOLS(nt, "x", nil)
	assert.Equal(t, analysis.KindInvalidParameter, analysis.KindOf(err))
}

func TestFitOLSIdempotent(t *testing.T) {
	n := 30
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i)
		y[i] = 4 - 0.5*float64(i) + float64(i%3-1)/3
	}

	nt := &tabular.NumericTable{
		Columns: []string{"x", "y"},
		Data:    map[string][]float64{"x": x, "y": y},
	}

	first, err := FitOLS(nt, "y", []string{"x"})
	require.NoError(t, err)
	second, err := FitOLS(nt, "y", []string{"x"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
