package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sartorproj/goanalytics/forecaster"
	"github.com/sartorproj/goanalytics/tabular"
)

type correlationRequest struct {
	Dataframe tabular.Table `json:"dataframe"`
	Columns   []string      `json:"columns"`
}

type correlationResponse struct {
	Status            string                         `json:"status"`
	CorrelationMatrix map[string]map[string]*float64 `json:"correlation_matrix"`
}

func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	var req correlationRequest
	if !decode(w, r, &req) {
		return
	}
	matrix, err := s.engine.Correlate(req.Dataframe, req.Columns)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make(map[string]map[string]*float64, len(matrix))
	for col, row := range matrix {
		out[col] = make(map[string]*float64, len(row))
		for other, v := range row {
			out[col][other] = nullableFloat(v)
		}
	}
	writeJSON(w, http.StatusOK, correlationResponse{
		Status:            "success",
		CorrelationMatrix: out,
	})
}

type regressionRequest struct {
	Dataframe       tabular.Table `json:"dataframe"`
	DependentVar    string        `json:"dependent_var"`
	IndependentVars []string      `json:"independent_vars"`
}

type regressionResponse struct {
	Status       string             `json:"status"`
	Coefficients map[string]float64 `json:"coefficients"`
	RSquared     float64            `json:"r_squared"`
	AdjRSquared  float64            `json:"adj_r_squared"`
	FStatistic   *float64           `json:"f_statistic"`
	FPValue      *float64           `json:"f_pvalue"`
	RMSE         float64            `json:"rmse"`
}

func (s *Server) handleRegression(w http.ResponseWriter, r *http.Request) {
	var req regressionRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := s.engine.FitOLS(req.Dataframe, req.DependentVar, req.IndependentVars)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, regressionResponse{
		Status:       "success",
		Coefficients: res.Coefficients,
		RSquared:     res.RSquared,
		AdjRSquared:  res.AdjRSquared,
		FStatistic:   finiteFloat(res.FStatistic),
		FPValue:      finiteFloat(res.FPValue),
		RMSE:         res.RMSE,
	})
}

type forestRequest struct {
	Dataframe       tabular.Table `json:"dataframe"`
	DependentVar    string        `json:"dependent_var"`
	IndependentVars []string      `json:"independent_vars"`
	NEstimators     int           `json:"n_estimators"`
}

type forestResponse struct {
	Status             string             `json:"status"`
	FeatureImportances map[string]float64 `json:"feature_importances"`
	RSquaredScore      float64            `json:"r_squared_score"`
	MAE                float64            `json:"mae"`
	MSE                float64            `json:"mse"`
	RMSE               float64            `json:"rmse"`
}

func (s *Server) handleForest(w http.ResponseWriter, r *http.Request) {
	var req forestRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := s.engine.FitForest(req.Dataframe, req.DependentVar, req.IndependentVars, req.NEstimators)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, forestResponse{
		Status:             "success",
		FeatureImportances: res.Importances,
		RSquaredScore:      res.RSquared,
		MAE:                res.MAE,
		MSE:                res.MSE,
		RMSE:               res.RMSE,
	})
}

type predictRequest struct {
	Dataframe         tabular.Table `json:"dataframe"`
	DateColumn        string        `json:"date_column"`
	ValueColumn       string        `json:"value_column"`
	PredictionHorizon int           `json:"prediction_horizon"`
	ModelType         string        `json:"model_type"`
}

type predictionPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type predictResponse struct {
	Status          string            `json:"status"`
	Predictions     []predictionPoint `json:"predictions"`
	RMSE            float64           `json:"rmse"`
	ModelType       string            `json:"model_type"`
	Order           string            `json:"order"`
	AIC             *float64          `json:"aic"`
	ModelsEvaluated int               `json:"models_evaluated"`
	Insights        string            `json:"insights"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if !decode(w, r, &req) {
		return
	}
	modelType := forecaster.ModelType(strings.ToLower(strings.TrimSpace(req.ModelType)))
	res, err := s.engine.ForecastTable(req.Dataframe, req.DateColumn, req.ValueColumn, req.PredictionHorizon, modelType)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	points := make([]predictionPoint, len(res.Points))
	for i, p := range res.Points {
		points[i] = predictionPoint{
			Date:  p.Time.Format(time.RFC3339),
			Value: p.Value,
		}
	}
	writeJSON(w, http.StatusOK, predictResponse{
		Status:          "success",
		Predictions:     points,
		RMSE:            res.RMSE,
		ModelType:       string(res.ModelType),
		Order:           res.Order.String(),
		AIC:             finiteFloat(res.AIC),
		ModelsEvaluated: res.ModelsEvaluated,
		Insights:        s.insights(r, res),
	})
}

// insights asks the configured generative endpoint to narrate the forecast
// and falls back to a templated summary when the proxy is disabled or fails.
func (s *Server) insights(r *http.Request, res *forecaster.Result) string {
	fallback := fmt.Sprintf(
		"Time series prediction completed. The in-sample RMSE is approximately %.2f. "+
			"Observe the trend in the predicted values. Consider external factors that might influence these predictions.",
		res.RMSE,
	)
	if s.insight == nil || !s.insight.Enabled() {
		return fallback
	}

	prompt := fmt.Sprintf(
		"Summarize a %s forecast of %d points with order %s and in-sample RMSE %.4f for a business audience.",
		res.ModelType, len(res.Points), res.Order, res.RMSE,
	)
	text, err := s.insight.Generate(r.Context(), prompt)
	if err != nil {
		s.log.Warn("insight generation failed", "error", err)
		return fallback
	}
	return text
}
