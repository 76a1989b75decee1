// Package tabular converts client-supplied tables of heterogeneous scalar
// values into analysis-ready numeric columns and time series.
package tabular

// Row maps a column name to one scalar value. Values arrive as decoded JSON:
// float64, string, or bool; a missing entry is an absent key, not a null.
type Row map[string]any

// Table is an ordered sequence of rows. The column set is the union of the
// keys across all rows.
type Table []Row

// HasColumn reports whether at least one row carries the named column.
func (t Table) HasColumn(name string) bool {
	for _, row := range t {
		if _, ok := row[name]; ok {
			return true
		}
	}
	return false
}

// NumericTable is a cleaned table: a fixed set of columns, each an
// equal-length sequence of finite floats. Rows are dropped as a unit, so
// index i refers to the same source row in every column.
type NumericTable struct {
	Columns []string
	Data    map[string][]float64
}

// Len returns the number of surviving rows.
func (nt *NumericTable) Len() int {
	if len(nt.Columns) == 0 {
		return 0
	}
	return len(nt.Data[nt.Columns[0]])
}

// Column returns the cleaned values for the named column, or nil if the
// column is not part of the cleaned set.
func (nt *NumericTable) Column(name string) []float64 {
	return nt.Data[name]
}
