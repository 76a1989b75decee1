// Package arima implements AutoRegressive Integrated Moving Average (ARIMA) models.
//
// ARIMA models are used for analyzing and forecasting time series data. An ARIMA(p,d,q)
// model combines:
//   - AR(p): AutoRegressive component with p lags
//   - I(d): Integration (differencing) of order d
//   - MA(q): Moving Average component with q lags
//
// # Basic Usage
//
// Create and fit an ARIMA model:
//
//	// Create ARIMA(1,1,0) model
//	model := arima.New(1, 1, 0)
//
//	// Fit the model to data
//	err := model.Fit(series)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Generate forecasts
//	forecasts, _ := model.Predict(10)
//
// # Model Selection
//
// Use information criteria (AIC, AICc, BIC) to compare models:
//
//	model1 := arima.New(1, 1, 0)
//	model2 := arima.New(1, 1, 1)
//	model1.Fit(series)
//	model2.Fit(series)
//
//	// Lower AIC is better
//	if model1.AIC < model2.AIC {
//	    // Use model1
//	}
//
// # In-Sample Evaluation
//
// One-step-ahead predictions on the original scale feed error metrics such
// as RMSE:
//
//	preds := model.InSamplePredictions()
//
// For automatic order selection, use the forecaster package.
package arima
