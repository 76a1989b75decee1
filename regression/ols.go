// Package regression fits ordinary least squares models with an intercept
// term and reports the standard fit metrics.
package regression

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/goanalytics/analysis"
	"github.com/sartorproj/goanalytics/tabular"
)

// InterceptKey is the coefficient map key for the intercept term.
const InterceptKey = "const"

// Result holds the fitted OLS coefficients and metrics. All metric fields
// are always populated for a successful fit.
type Result struct {
	Coefficients map[string]float64
	RSquared     float64
	AdjRSquared  float64
	FStatistic   float64
	FPValue      float64
	RMSE         float64
}

// FitOLS regresses the target column on the feature columns with an
// intercept, solving the least-squares system by QR decomposition. It
// requires strictly more rows than features plus intercept; anything less is
// an underdetermined system.
func FitOLS(nt *tabular.NumericTable, target string, features []string) (*Result, error) {
	if len(features) == 0 {
		return nil, analysis.Errorf(analysis.KindInvalidParameter, "at least one feature column required")
	}
	if nt.Column(target) == nil {
		return nil, analysis.Errorf(analysis.KindMissingColumn, "target column %q not in cleaned table", target)
	}
	for _, f := range features {
		if nt.Column(f) == nil {
			return nil, analysis.Errorf(analysis.KindMissingColumn, "feature column %q not in cleaned table", f)
		}
	}

	n := nt.Len()
	k := len(features)
	if n == 0 {
		return nil, analysis.Errorf(analysis.KindInsufficientData, "no rows to fit")
	}
	// n - k - 1 residual degrees of freedom must be positive for every
	// reported metric to exist.
	if n <= k+1 {
		return nil, analysis.Errorf(analysis.KindUnderdetermined,
			"%d rows cannot determine %d features plus intercept", n, k)
	}

	x := mat.NewDense(n, k+1, nil)
	y := mat.NewVecDense(n, nt.Column(target))
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j, f := range features {
			x.Set(i, j+1, nt.Column(f)[i])
		}
	}

	var qr mat.QR
	qr.Factorize(x)

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, y); err != nil {
		return nil, analysis.Errorf(analysis.KindModelFitFailed, "least squares solve failed: %v", err)
	}

	coeffs := make(map[string]float64, k+1)
	coeffs[InterceptKey] = beta.AtVec(0)
	for j, f := range features {
		coeffs[f] = beta.AtVec(j + 1)
	}

	// Residual and total sums of squares.
	var fittedVec mat.VecDense
	fittedVec.MulVec(x, &beta)

	meanY := 0.0
	for i := 0; i < n; i++ {
		meanY += y.AtVec(i)
	}
	meanY /= float64(n)

	ssRes, ssTot := 0.0, 0.0
	for i := 0; i < n; i++ {
		resid := y.AtVec(i) - fittedVec.AtVec(i)
		ssRes += resid * resid
		dev := y.AtVec(i) - meanY
		ssTot += dev * dev
	}

	r2 := 1.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	nf, kf := float64(n), float64(k)
	adjR2 := 1 - (1-r2)*(nf-1)/(nf-kf-1)

	ssReg := ssTot - ssRes
	fStat := math.Inf(1)
	fPValue := 0.0
	if ssRes > 0 {
		fStat = (ssReg / kf) / (ssRes / (nf - kf - 1))
		fDist := distuv.F{D1: kf, D2: nf - kf - 1}
		fPValue = fDist.Survival(fStat)
	}

	return &Result{
		Coefficients: coeffs,
		RSquared:     r2,
		AdjRSquared:  adjR2,
		FStatistic:   fStat,
		FPValue:      fPValue,
		RMSE:         math.Sqrt(ssRes / nf),
	}, nil
}
