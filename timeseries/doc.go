// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for representing date/value data
// after cleaning, along with transformations and the frequency inference
// used to extend forecasts past the last observed timestamp.
//
// # Creating a Series
//
// Create a time series from a slice:
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.New(values)
//
// Or with explicit timestamps:
//
//	series, err := timeseries.NewWithTimestamps(timestamps, values)
//
// # Basic Statistics
//
// Calculate summary statistics:
//
//	mean := series.Mean()
//	std := series.Std()
//
// # Transformations
//
// Transform the time series:
//
//	diff := series.Diff()    // First difference
//	diff2 := series.DiffN(2) // Second difference
//	copy := series.Copy()
//
// # Frequency
//
// The sampling step is inferred from the observed timestamp gaps and used to
// generate future timestamps:
//
//	step := series.Step()
//	future := series.FutureTimestamps(7)
package timeseries
