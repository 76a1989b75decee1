// Package forecaster implements automatic model selection and horizon
// forecasting for univariate time series.
package forecaster

import (
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sartorproj/goanalytics/analysis"
	"github.com/sartorproj/goanalytics/arima"
	"github.com/sartorproj/goanalytics/stats"
	"github.com/sartorproj/goanalytics/timeseries"
)

// ModelType selects the forecasting strategy.
type ModelType string

const (
	// ModelARIMA runs the stationarity scan and the stepwise (p,q) search.
	ModelARIMA ModelType = "arima"
	// ModelARMA is ModelARIMA with the differencing order forced to 0.
	ModelARMA ModelType = "arma"
	// ModelSimpleTrend fits a straight line on the observation index.
	ModelSimpleTrend ModelType = "simple-trend"
)

// Config bounds the automatic order search.
type Config struct {
	MaxP int // Maximum AR order (default: 5)
	MaxD int // Maximum differencing order (default: 2)
	MaxQ int // Maximum MA order (default: 5)
}

// DefaultConfig returns the default search bounds.
func DefaultConfig() *Config {
	return &Config{MaxP: 5, MaxD: 2, MaxQ: 5}
}

// Point is one forecasted value at a future timestamp.
type Point struct {
	Time  time.Time
	Value float64
}

// Result holds the selected model, its horizon forecast, and the in-sample
// RMSE of its one-step-ahead predictions.
type Result struct {
	ModelType       ModelType
	Order           arima.Order
	Points          []Point
	RMSE            float64
	AIC             float64
	ModelsEvaluated int
}

// Forecast selects and fits a model for the series and produces a forecast
// of exactly horizon points, with timestamps continuing the series' inferred
// frequency from the last historical timestamp.
func Forecast(series *timeseries.Series, horizon int, modelType ModelType, cfg *Config) (*Result, error) {
	if horizon < 1 {
		return nil, analysis.Errorf(analysis.KindInvalidParameter, "prediction horizon must be at least 1, got %d", horizon)
	}
	if series == nil || series.Len() < 2 {
		return nil, analysis.Errorf(analysis.KindInsufficientData, "at least 2 points required to fit a model")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	switch modelType {
	case ModelSimpleTrend:
		return trendForecast(series, horizon)
	case ModelARIMA, ModelARMA:
		return autoForecast(series, horizon, modelType, cfg)
	default:
		return nil, analysis.Errorf(analysis.KindInvalidParameter, "unknown model type %q", modelType)
	}
}

// trendForecast fits y = a + b*t on the observation index and extrapolates.
func trendForecast(series *timeseries.Series, horizon int) (*Result, error) {
	y := series.Values
	n := len(y)
	nf := float64(n)

	sumT, sumY, sumTY, sumT2 := 0.0, 0.0, 0.0, 0.0
	for i, v := range y {
		t := float64(i)
		sumT += t
		sumY += v
		sumTY += t * v
		sumT2 += t * t
	}

	den := nf*sumT2 - sumT*sumT
	if den == 0 {
		return nil, analysis.Errorf(analysis.KindModelFitFailed, "degenerate index regression")
	}
	b := (nf*sumTY - sumT*sumY) / den
	a := (sumY - b*sumT) / nf

	sse := 0.0
	for i, v := range y {
		resid := v - (a + b*float64(i))
		sse += resid * resid
	}

	points := make([]Point, horizon)
	for i, ts := range series.FutureTimestamps(horizon) {
		points[i] = Point{Time: ts, Value: a + b*float64(n+i)}
	}

	return &Result{
		ModelType:       ModelSimpleTrend,
		Points:          points,
		RMSE:            math.Sqrt(sse / nf),
		ModelsEvaluated: 1,
	}, nil
}

// autoForecast runs the differencing scan (ARIMA only), the stepwise order
// search, and the final forecast.
func autoForecast(series *timeseries.Series, horizon int, modelType ModelType, cfg *Config) (*Result, error) {
	d := 0
	if modelType == ModelARIMA {
		d = stats.NDiffs(series, cfg.MaxD)
	}

	best, evaluated := stepwiseSearch(series, d, cfg)
	if best == nil {
		return nil, analysis.Errorf(analysis.KindModelFitFailed,
			"no (p,%d,q) model converged within the search bounds", d)
	}

	forecasts, err := best.Predict(horizon)
	if err != nil {
		return nil, analysis.Errorf(analysis.KindModelFitFailed, "forecast failed: %v", err)
	}

	points := make([]Point, horizon)
	for i, ts := range series.FutureTimestamps(horizon) {
		points[i] = Point{Time: ts, Value: forecasts[i]}
	}

	return &Result{
		ModelType:       modelType,
		Order:           best.Order,
		Points:          points,
		RMSE:            inSampleRMSE(best, series),
		AIC:             best.AIC,
		ModelsEvaluated: evaluated,
	}, nil
}

// inSampleRMSE compares one-step-ahead predictions against the actuals,
// skipping the differencing warm-up where no prediction exists.
func inSampleRMSE(model *arima.Model, series *timeseries.Series) float64 {
	preds := model.InSamplePredictions()
	d := model.Order.D

	sse := 0.0
	count := 0
	for t := d; t < len(preds); t++ {
		resid := series.Values[t] - preds[t]
		sse += resid * resid
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Sqrt(sse / float64(count))
}

type orderSpec struct {
	p, q int
}

// candidate is one evaluated (p,q) pair. A nil model means the fit failed.
type candidate struct {
	spec  orderSpec
	model *arima.Model
}

// stepwiseSearch finds a locally AIC-optimal (p,q) pair following the
// Hyndman-Khandakar strategy: evaluate a small seed set, then repeatedly move
// to the best improving neighbor until none improves. Candidates within one
// iteration are fitted concurrently; selection is sequential and scans
// results in spec order so the outcome is independent of scheduling.
func stepwiseSearch(series *timeseries.Series, d int, cfg *Config) (*arima.Model, int) {
	seeds := []orderSpec{{0, 0}, {1, 0}, {0, 1}, {2, 2}}

	visited := make(map[orderSpec]bool)
	evaluated := 0

	var best *arima.Model
	var bestSpec orderSpec

	evaluate := func(specs []orderSpec) []candidate {
		var batch []orderSpec
		for _, s := range specs {
			if s.p < 0 || s.p > cfg.MaxP || s.q < 0 || s.q > cfg.MaxQ || visited[s] {
				continue
			}
			visited[s] = true
			batch = append(batch, s)
		}

		results := make([]candidate, len(batch))
		var eg errgroup.Group
		for i, s := range batch {
			i, s := i, s
			eg.Go(func() error {
				model := arima.New(s.p, d, s.q)
				if err := model.Fit(series); err == nil {
					results[i] = candidate{spec: s, model: model}
				} else {
					results[i] = candidate{spec: s}
				}
				return nil
			})
		}
		// Fit failures are recorded per candidate; the group never errors.
		_ = eg.Wait()
		evaluated += len(batch)
		return results
	}

	// better reports whether a beats b on AIC, breaking ties toward fewer
	// total parameters, then toward a smaller AR order.
	better := func(aSpec orderSpec, aAIC float64, bSpec orderSpec, bAIC float64) bool {
		if aAIC != bAIC {
			return aAIC < bAIC
		}
		if aSpec.p+aSpec.q != bSpec.p+bSpec.q {
			return aSpec.p+aSpec.q < bSpec.p+bSpec.q
		}
		return aSpec.p < bSpec.p
	}

	consume := func(results []candidate) bool {
		improved := false
		for _, c := range results {
			if c.model == nil || math.IsInf(c.model.AIC, 1) || math.IsNaN(c.model.AIC) {
				continue
			}
			if best == nil || better(c.spec, c.model.AIC, bestSpec, best.AIC) {
				best = c.model
				bestSpec = c.spec
				improved = true
			}
		}
		return improved
	}

	consume(evaluate(seeds))
	if best == nil {
		return nil, evaluated
	}

	for {
		neighbors := []orderSpec{
			{bestSpec.p + 1, bestSpec.q},
			{bestSpec.p - 1, bestSpec.q},
			{bestSpec.p, bestSpec.q + 1},
			{bestSpec.p, bestSpec.q - 1},
			{bestSpec.p + 1, bestSpec.q + 1},
			{bestSpec.p - 1, bestSpec.q - 1},
		}
		if !consume(evaluate(neighbors)) {
			break
		}
	}

	return best, evaluated
}
