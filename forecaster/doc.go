// Package forecaster implements automatic model selection and forecasting.
//
// The forecaster picks a differencing order with repeated stationarity tests,
// finds a locally AIC-optimal (p,q) pair with the Hyndman-Khandakar stepwise
// search, and produces point forecasts that continue the series' inferred
// sampling frequency.
//
// # Basic Usage
//
// Forecast seven steps ahead with automatic order selection:
//
//	result, err := forecaster.Forecast(series, 7, forecaster.ModelARIMA, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Selected ARIMA(%d,%d,%d), RMSE %.2f\n",
//	    result.Order.P, result.Order.D, result.Order.Q, result.RMSE)
//	for _, pt := range result.Points {
//	    fmt.Println(pt.Time, pt.Value)
//	}
//
// # Model Types
//
// Three model types are available:
//   - ModelARIMA: stationarity scan plus stepwise (p,q) search
//   - ModelARMA: the same search with differencing forced to 0
//   - ModelSimpleTrend: a straight line on the observation index
//
// # Configuration
//
// Bound the search with Config:
//
//	cfg := &forecaster.Config{
//	    MaxP: 3, // Maximum AR order
//	    MaxD: 2, // Maximum differencing order
//	    MaxQ: 3, // Maximum MA order
//	}
//	result, _ := forecaster.Forecast(series, 7, forecaster.ModelARIMA, cfg)
//
// Candidate orders within one search iteration are fitted concurrently; the
// greedy selection step consumes all of them before moving, so results are
// identical at any level of parallelism.
package forecaster
