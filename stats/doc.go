// Package stats provides statistical tests and analysis functions for time series.
//
// This package includes the stationarity tests, autocorrelation functions,
// and information criteria consumed by the automatic order search.
//
// # Stationarity Tests
//
// Test whether a time series is stationary:
//
//	// Augmented Dickey-Fuller test
//	// H0: Series has unit root (non-stationary)
//	adf := stats.ADF(series, 0)
//	fmt.Printf("ADF: stat=%.4f, p=%.4f, stationary=%v\n",
//	    adf.Statistic, adf.PValue, adf.IsStationary)
//
//	// KPSS test (recommended)
//	// H0: Series is stationary
//	kpss := stats.KPSS(series, 0)
//
// # Differencing Analysis
//
// Determine the integration order:
//
//	d := stats.NDiffs(series, 2)
//
// # Autocorrelation Functions
//
// Analyze autocorrelation patterns:
//
//	acf := stats.ACF(series, 20)
//	pacf := stats.PACF(series, 20)
//
// # Model Selection
//
// Score a fit by its information criteria:
//
//	ic := stats.CalculateIC(logLik, nObs, nParams)
//	// ic.AIC, ic.AICc, ic.BIC
package stats
