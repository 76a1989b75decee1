// Package goanalytics provides statistical analysis and forecasting over
// uploaded tabular data.
//
// GoAnalytics turns heterogeneous spreadsheet-style tables (mixed numbers,
// strings, and spreadsheet-serial dates) into cleaned numeric series and runs
// one of four analyses over them: pairwise Pearson correlation, ordinary
// least squares regression, random-forest regression, and univariate
// time-series forecasting with automatic ARIMA order selection.
//
// # Quick Start
//
// Clean a table and correlate two columns:
//
//	nt, _ := tabular.Clean(table, []string{"a", "b"})
//	matrix, _ := correlation.Matrix(nt)
//
// Forecast a date/value series:
//
//	series, _ := tabular.CleanSeries(table, "date", "sales")
//	result, _ := forecaster.Forecast(series, 7, forecaster.ModelARIMA, nil)
//
// Or use the Engine façade in this package, which owns cleaning, validation,
// and defaulting for all four analyses.
//
// # Packages
//
//   - tabular: value coercion and row-wise table cleaning
//   - analysis: typed error taxonomy shared by every engine
//   - correlation: pairwise Pearson correlation matrices
//   - regression: OLS with intercept, fit metrics, and F test
//   - forest: seeded bagged regression trees with feature importances
//   - timeseries: time series data structures and frequency inference
//   - stats: stationarity tests, autocorrelation, information criteria
//   - arima: ARIMA(p,d,q) estimation and forecasting
//   - forecaster: stepwise automatic order selection and horizon forecasts
//
// # References
//
//   - Hyndman, R.J., & Athanasopoulos, G. (2021). Forecasting: Principles and Practice
//   - Box, G. E. P., & Jenkins, G. M. (1976). Time Series Analysis: Forecasting and Control
package goanalytics
