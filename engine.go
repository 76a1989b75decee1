package goanalytics

import (
	"github.com/sartorproj/goanalytics/correlation"
	"github.com/sartorproj/goanalytics/forecaster"
	"github.com/sartorproj/goanalytics/forest"
	"github.com/sartorproj/goanalytics/regression"
	"github.com/sartorproj/goanalytics/tabular"
)

// Engine bundles the cleaning step with the statistical engines so callers
// hand over raw tables and get results back. The zero value is not usable;
// construct with NewEngine.
type Engine struct {
	Forecast *forecaster.Config
	Forest   forest.Options
}

// NewEngine returns an engine with the default search bounds and forest
// configuration.
func NewEngine() *Engine {
	return &Engine{
		Forecast: forecaster.DefaultConfig(),
		Forest:   forest.DefaultOptions(),
	}
}

// Correlate cleans the requested columns and returns the pairwise Pearson
// correlation matrix of the survivors.
func (e *Engine) Correlate(table tabular.Table, columns []string) (map[string]map[string]float64, error) {
	nt, err := tabular.Clean(table, columns)
	if err != nil {
		return nil, err
	}
	return correlation.Matrix(nt)
}

// FitOLS cleans the dependent and independent columns together, so a row
// with any unusable cell is dropped from the whole fit, then runs ordinary
// least squares.
func (e *Engine) FitOLS(table tabular.Table, dependent string, independents []string) (*regression.Result, error) {
	columns := make([]string, 0, len(independents)+1)
	columns = append(columns, independents...)
	columns = append(columns, dependent)
	nt, err := tabular.Clean(table, columns)
	if err != nil {
		return nil, err
	}
	return regression.FitOLS(nt, dependent, independents)
}

// FitForest cleans the target and feature columns together and fits a
// random forest. A positive trees value overrides the engine's configured
// tree count for this call only.
func (e *Engine) FitForest(table tabular.Table, target string, features []string, trees int) (*forest.Result, error) {
	columns := make([]string, 0, len(features)+1)
	columns = append(columns, features...)
	columns = append(columns, target)
	nt, err := tabular.Clean(table, columns)
	if err != nil {
		return nil, err
	}
	opts := e.Forest
	// Only zero means "use the configured default"; negative counts must
	// reach the fitter's validation.
	if trees != 0 {
		opts.Trees = trees
	}
	return forest.Fit(nt, target, features, opts)
}

// ForecastTable cleans a date and value column into a sorted series and
// forecasts it with the requested model.
func (e *Engine) ForecastTable(table tabular.Table, dateCol, valueCol string, horizon int, modelType forecaster.ModelType) (*forecaster.Result, error) {
	series, err := tabular.CleanSeries(table, dateCol, valueCol)
	if err != nil {
		return nil, err
	}
	return forecaster.Forecast(series, horizon, modelType, e.Forecast)
}
