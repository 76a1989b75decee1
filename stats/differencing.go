package stats

import (
	"math"

	"github.com/sartorproj/goanalytics/timeseries"
)

// NDiffs determines the number of first differences required for
// stationarity, capped at maxD (default 2). Each round runs both KPSS and ADF
// on the current series; it stops differencing once the tests agree the
// series is stationary, or once KPSS alone is confident (p > 0.1). Series too
// short for either test are treated as already stationary.
func NDiffs(series *timeseries.Series, maxD int) int {
	if maxD <= 0 {
		maxD = 2
	}

	current := series
	for d := 0; d < maxD; d++ {
		kpss := KPSS(current, 0)
		adf := ADF(current, 0)

		if kpss == nil && adf == nil {
			// Too short to test; differencing blind would only destroy data.
			return d
		}

		kpssStationary := kpss != nil && kpss.IsStationary
		adfStationary := adf != nil && adf.IsStationary

		if kpssStationary && (adfStationary || kpss.PValue > 0.1) {
			return d
		}
		if kpss == nil && adfStationary {
			return d
		}

		current = current.Diff()
		if current.Len() < 10 {
			return d + 1
		}
	}

	return maxD
}

// InformationCriteria bundles the model-selection scores for one fit.
type InformationCriteria struct {
	AIC    float64
	AICc   float64
	BIC    float64
	LogLik float64
}

// CalculateIC computes AIC, AICc, and BIC from a Gaussian log-likelihood.
// nObs is the number of observations and nParams the number of estimated
// parameters.
func CalculateIC(logLik float64, nObs, nParams int) *InformationCriteria {
	k := float64(nParams)
	n := float64(nObs)

	aic := -2*logLik + 2*k
	bic := -2*logLik + k*math.Log(n)

	aicc := math.Inf(1)
	if n-k-1 > 0 {
		aicc = aic + 2*k*(k+1)/(n-k-1)
	}

	return &InformationCriteria{
		AIC:    aic,
		AICc:   aicc,
		BIC:    bic,
		LogLik: logLik,
	}
}
