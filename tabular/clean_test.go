package tabular

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goanalytics/analysis"
)

func TestCleanDropsRowsAsUnits(t *testing.T) {
	table := Table{
		{"a": 1.0, "b": "2.5"},
		{"a": "oops", "b": 3.0}, // a fails, whole row dropped
		{"a": 4, "b": 5},
		{"a": 6.0}, // b absent in this row, dropped
	}
	nt, err := Clean(table, []string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, nt.Columns)
	assert.Equal(t, []float64{1, 4}, nt.Data["a"])
	assert.Equal(t, []float64{2.5, 5}, nt.Data["b"])
	assert.Equal(t, 2, nt.Len())
}

func TestCleanMissingColumn(t *testing.T) {
	table := Table{{"a": 1.0}}
	_, err := Clean(table, []string{"a", "b"})
	assert.Equal(t, analysis.KindMissingColumn, analysis.KindOf(err))
}

func TestCleanNoUsableRows(t *testing.T) {
	table := Table{
		{"a": "x", "b": 1.0},
		{"a": "y", "b": 2.0},
	}
	_, err := Clean(table, []string{"a", "b"})
	assert.Equal(t, analysis.KindInsufficientData, analysis.KindOf(err))
}

func TestCleanNoColumns(t *testing.T) {
	_, err := Clean(Table{{"a": 1.0}}, nil)
	assert.Equal(t, analysis.KindInvalidParameter, analysis.KindOf(err))
}

func TestCleanSeriesSortsByTimestamp(t *testing.T) {
	table := Table{
		{"ds": "2024-01-03", "y": 3.0},
		{"ds": "2024-01-01", "y": 1.0},
		{"ds": "bad date", "y": 99.0}, // dropped
		{"ds": "2024-01-02", "y": 2.0},
	}
	s, err := CleanSeries(table, "ds", "y")
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3}, s.Values)
	for i := 1; i < len(s.Timestamps); i++ {
		assert.True(t, s.Timestamps[i].After(s.Timestamps[i-1]))
	}
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), s.Timestamps[0])
}

func TestCleanSeriesKeepsDuplicateTimestamps(t *testing.T) {
	table := Table{
		{"ds": "2024-01-01", "y": 1.0},
		{"ds": "2024-01-01", "y": 2.0},
	}
	s, err := CleanSeries(table, "ds", "y")
	require.NoError(t, err)

	// Duplicates survive, original order preserved by the stable sort.
	assert.Equal(t, []float64{1, 2}, s.Values)
}

func TestCleanSeriesErrors(t *testing.T) {
	_, err := CleanSeries(Table{{"ds": "2024-01-01"}}, "ds", "y")
	assert.Equal(t, analysis.KindMissingColumn, analysis.KindOf(err))

	_, err = CleanSeries(Table{{"ds": "junk", "y": "junk"}}, "ds", "y")
	assert.Equal(t, analysis.KindInsufficientData, analysis.KindOf(err))
}
