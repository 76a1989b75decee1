package tabular

import (
	"sort"
	"time"

	"github.com/sartorproj/goanalytics/analysis"
	"github.com/sartorproj/goanalytics/timeseries"
)

// Clean coerces every required column of the table to numeric and keeps only
// the rows where all required columns coerced successfully. A required column
// that appears in no row fails with MissingColumn before any coercion runs.
// Zero surviving rows fail with InsufficientData so callers never feed an
// empty matrix to an engine.
func Clean(t Table, columns []string) (*NumericTable, error) {
	if len(columns) == 0 {
		return nil, analysis.Errorf(analysis.KindInvalidParameter, "no columns requested")
	}
	for _, col := range columns {
		if !t.HasColumn(col) {
			return nil, analysis.Errorf(analysis.KindMissingColumn, "column %q not found in table", col)
		}
	}

	data := make(map[string][]float64, len(columns))
	for _, col := range columns {
		data[col] = nil
	}

	for _, row := range t {
		coerced := make([]float64, len(columns))
		ok := true
		for i, col := range columns {
			v, present := row[col]
			if !present {
				ok = false
				break
			}
			f, valid := Numeric(v)
			if !valid {
				ok = false
				break
			}
			coerced[i] = f
		}
		if !ok {
			continue
		}
		for i, col := range columns {
			data[col] = append(data[col], coerced[i])
		}
	}

	nt := &NumericTable{Columns: columns, Data: data}
	if nt.Len() == 0 {
		return nil, analysis.Errorf(analysis.KindInsufficientData, "no rows survived cleaning")
	}
	return nt, nil
}

// CleanSeries coerces dateCol with the date coercer and valueCol with the
// numeric coercer, drops rows failing either, and returns the survivors as a
// series stably sorted by timestamp. Ties keep their original row order and
// duplicate timestamps are preserved; the fitters downstream do not require
// strict monotonicity.
func CleanSeries(t Table, dateCol, valueCol string) (*timeseries.Series, error) {
	if !t.HasColumn(dateCol) {
		return nil, analysis.Errorf(analysis.KindMissingColumn, "date column %q not found in table", dateCol)
	}
	if !t.HasColumn(valueCol) {
		return nil, analysis.Errorf(analysis.KindMissingColumn, "value column %q not found in table", valueCol)
	}

	type point struct {
		ts  time.Time
		val float64
	}
	var points []point
	for _, row := range t {
		dv, ok := row[dateCol]
		if !ok {
			continue
		}
		vv, ok := row[valueCol]
		if !ok {
			continue
		}
		ts, ok := Date(dv)
		if !ok {
			continue
		}
		val, ok := Numeric(vv)
		if !ok {
			continue
		}
		points = append(points, point{ts: ts, val: val})
	}

	if len(points) == 0 {
		return nil, analysis.Errorf(analysis.KindInsufficientData, "no valid points after cleaning")
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].ts.Before(points[j].ts)
	})

	timestamps := make([]time.Time, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		timestamps[i] = p.ts
		values[i] = p.val
	}
	return &timeseries.Series{Timestamps: timestamps, Values: values, Name: valueCol}, nil
}
