// Package arima implements ARIMA (AutoRegressive Integrated Moving Average) models.
package arima

import (
	"errors"
	"fmt"
	"math"

	"github.com/sartorproj/goanalytics/stats"
	"github.com/sartorproj/goanalytics/timeseries"
)

// Order represents ARIMA model order (p, d, q).
type Order struct {
	P int // AR order (number of autoregressive terms)
	D int // Differencing order
	Q int // MA order (number of moving average terms)
}

// Params returns the number of estimated parameters (AR + MA + intercept).
func (o Order) Params() int {
	return o.P + o.Q + 1
}

// String formats the order as "(p,d,q)".
func (o Order) String() string {
	return fmt.Sprintf("(%d,%d,%d)", o.P, o.D, o.Q)
}

// Model represents an ARIMA model.
type Model struct {
	Order     Order
	ARCoeffs  []float64 // AR coefficients (phi)
	MACoeffs  []float64 // MA coefficients (theta)
	Intercept float64
	Variance  float64 // Residual variance
	AIC       float64
	AICc      float64
	BIC       float64
	LogLik    float64

	fitted     bool
	data       *timeseries.Series
	diffData   *timeseries.Series
	residuals  []float64
	fittedVals []float64
}

// New creates a new ARIMA model with the specified order.
func New(p, d, q int) *Model {
	return &Model{
		Order:    Order{P: p, D: d, Q: q},
		ARCoeffs: make([]float64, p),
		MACoeffs: make([]float64, q),
	}
}

// Fit fits the model to the series using conditional sum of squares.
// The minimum length is order-dependent: after differencing there must be at
// least two points and more points than the longest lag, so low orders stay
// fittable on short uploads.
func (m *Model) Fit(series *timeseries.Series) error {
	n := series.Len()
	if n < 2 {
		return errors.New("at least 2 points required to fit")
	}
	diffLen := n - m.Order.D
	if diffLen < 2 || diffLen <= max(m.Order.P, m.Order.Q) || diffLen <= m.Order.P+m.Order.Q {
		return errors.New("insufficient data points for the specified order")
	}

	m.data = series

	diffSeries := series
	for i := 0; i < m.Order.D; i++ {
		diffSeries = diffSeries.Diff()
		if diffSeries.Len() == 0 {
			return errors.New("differencing resulted in empty series")
		}
	}
	m.diffData = diffSeries

	if err := m.estimate(); err != nil {
		return err
	}
	m.scoreFit()

	m.fitted = true
	return nil
}

// estimate initializes parameters and refines them by CSS.
func (m *Model) estimate() error {
	y := m.diffData.Values
	n := len(y)
	p := m.Order.P
	q := m.Order.Q

	if p == 0 && q == 0 {
		// White noise: intercept is the mean, variance is the sample variance.
		m.Intercept = m.diffData.Mean()
		m.Variance = m.diffData.Variance()
		m.residuals = make([]float64, n)
		m.fittedVals = make([]float64, n)
		for i, v := range y {
			m.residuals[i] = v - m.Intercept
			m.fittedVals[i] = m.Intercept
		}
		return nil
	}

	// Yule-Walker initial AR estimates; MA coefficients start small.
	if p > 0 {
		if acf := stats.ACF(m.diffData, p); acf != nil {
			if phi := yuleWalker(acf, p); phi != nil {
				m.ARCoeffs = phi
			}
		}
	}
	for i := range m.MACoeffs {
		m.MACoeffs[i] = 0.1
	}

	m.refineCSS(y)
	return nil
}

// refineCSS minimizes the conditional sum of squares with damped gradient
// steps, keeping coefficients inside the stationarity/invertibility box.
func (m *Model) refineCSS(y []float64) {
	n := len(y)
	p := m.Order.P
	q := m.Order.Q

	m.Intercept = m.diffData.Mean()

	const (
		maxIter      = 100
		tolerance    = 1e-6
		learningRate = 0.01
	)

	startIdx := max(p, q)
	residuals := make([]float64, n)

	predict := func(t int) float64 {
		pred := m.Intercept
		for i := 0; i < p && t-i-1 >= 0; i++ {
			pred += m.ARCoeffs[i] * (y[t-i-1] - m.Intercept)
		}
		for i := 0; i < q && t-i-1 >= 0; i++ {
			pred += m.MACoeffs[i] * residuals[t-i-1]
		}
		return pred
	}

	for iter := 0; iter < maxIter; iter++ {
		prevSSE := 0.0
		for t := startIdx; t < n; t++ {
			residuals[t] = y[t] - predict(t)
			prevSSE += residuals[t] * residuals[t]
		}

		arGrad := make([]float64, p)
		maGrad := make([]float64, q)
		for t := startIdx; t < n; t++ {
			for i := 0; i < p && t-i-1 >= 0; i++ {
				arGrad[i] -= 2 * residuals[t] * (y[t-i-1] - m.Intercept)
			}
			for i := 0; i < q && t-i-1 >= 0; i++ {
				maGrad[i] -= 2 * residuals[t] * residuals[t-i-1]
			}
		}

		for i := 0; i < p; i++ {
			m.ARCoeffs[i] -= learningRate * arGrad[i] / float64(n)
			m.ARCoeffs[i] = math.Max(-0.99, math.Min(0.99, m.ARCoeffs[i]))
		}
		for i := 0; i < q; i++ {
			m.MACoeffs[i] -= learningRate * maGrad[i] / float64(n)
			m.MACoeffs[i] = math.Max(-0.99, math.Min(0.99, m.MACoeffs[i]))
		}

		newSSE := 0.0
		for t := startIdx; t < n; t++ {
			residuals[t] = y[t] - predict(t)
			newSSE += residuals[t] * residuals[t]
		}

		if math.Abs(prevSSE-newSSE) < tolerance {
			break
		}
	}

	// Final pass over the whole series for residuals and fitted values.
	m.residuals = make([]float64, n)
	m.fittedVals = make([]float64, n)
	for t := 0; t < n; t++ {
		if t < startIdx {
			m.fittedVals[t] = m.Intercept
			m.residuals[t] = y[t] - m.Intercept
			continue
		}
		pred := m.Intercept
		for i := 0; i < p && t-i-1 >= 0; i++ {
			pred += m.ARCoeffs[i] * (y[t-i-1] - m.Intercept)
		}
		for i := 0; i < q && t-i-1 >= 0; i++ {
			pred += m.MACoeffs[i] * m.residuals[t-i-1]
		}
		m.fittedVals[t] = pred
		m.residuals[t] = y[t] - pred
	}

	sse := 0.0
	count := 0
	for t := startIdx; t < n; t++ {
		sse += m.residuals[t] * m.residuals[t]
		count++
	}
	if count > p+q+1 {
		m.Variance = sse / float64(count-p-q-1)
	} else if count > 0 {
		m.Variance = sse / float64(count)
	}
}

// varianceFloor keeps the Gaussian likelihood finite on a perfect fit. A
// constant series yields zero residual variance; flooring it lets the mean
// model stay comparable under AIC instead of scoring -Inf log-likelihood.
const varianceFloor = 1e-10

// scoreFit computes the Gaussian log-likelihood and information criteria.
func (m *Model) scoreFit() {
	n := len(m.residuals)
	k := m.Order.Params()

	sse := 0.0
	for _, r := range m.residuals {
		sse += r * r
	}

	variance := m.Variance
	if variance < varianceFloor {
		variance = varianceFloor
	}
	m.LogLik = -float64(n)/2*math.Log(2*math.Pi) - float64(n)/2*math.Log(variance) - sse/(2*variance)

	ic := stats.CalculateIC(m.LogLik, n, k)
	m.AIC = ic.AIC
	m.AICc = ic.AICc
	m.BIC = ic.BIC
}

// Predict generates forecasts for the specified number of steps ahead,
// integrated back to the original scale.
func (m *Model) Predict(steps int) ([]float64, error) {
	if !m.fitted {
		return nil, errors.New("model must be fitted before prediction")
	}
	if steps < 1 {
		return nil, errors.New("steps must be at least 1")
	}

	p := m.Order.P
	q := m.Order.Q

	y := m.diffData.Values
	n := len(y)

	extY := make([]float64, n+steps)
	copy(extY, y)
	extResiduals := make([]float64, n+steps)
	copy(extResiduals, m.residuals)

	for h := 0; h < steps; h++ {
		t := n + h
		pred := m.Intercept
		for i := 0; i < p && t-i-1 >= 0; i++ {
			pred += m.ARCoeffs[i] * (extY[t-i-1] - m.Intercept)
		}
		// Future residuals have expectation zero.
		for i := 0; i < q && t-i-1 >= 0 && t-i-1 < n; i++ {
			pred += m.MACoeffs[i] * extResiduals[t-i-1]
		}
		extY[t] = pred
		extResiduals[t] = 0
	}

	forecasts := extY[n:]
	if m.Order.D > 0 {
		forecasts = m.integrate(forecasts)
	}
	return forecasts, nil
}

// integrate undoes differencing to return forecasts on the original scale.
func (m *Model) integrate(forecasts []float64) []float64 {
	d := m.Order.D
	original := m.data.Values

	result := make([]float64, len(forecasts))
	copy(result, forecasts)

	for i := 0; i < d; i++ {
		lastVal := original[len(original)-1-i]
		for j := 0; j < len(result); j++ {
			if j == 0 {
				result[j] += lastVal
			} else {
				result[j] += result[j-1]
			}
		}
	}
	return result
}

// InSamplePredictions returns one-step-ahead predictions on the original
// scale, aligned with the fitted series. The first D entries cannot be
// predicted and carry the actual values; callers computing error metrics
// should start at index D.
func (m *Model) InSamplePredictions() []float64 {
	if !m.fitted {
		return nil
	}

	d := m.Order.D
	y := m.data.Values
	n := len(y)

	preds := make([]float64, n)
	copy(preds, y[:min(d, n)])

	if d == 0 {
		copy(preds, m.fittedVals)
		return preds
	}

	// levels[k] holds the k-th iterated difference of the actuals; the value
	// at original index t lives at levels[k][t-k].
	levels := make([][]float64, d)
	levels[0] = y
	for k := 1; k < d; k++ {
		prev := levels[k-1]
		cur := make([]float64, len(prev)-1)
		for i := 1; i < len(prev); i++ {
			cur[i-1] = prev[i] - prev[i-1]
		}
		levels[k] = cur
	}

	for t := d; t < n; t++ {
		// Predicted d-th difference, then add back the actual lower-order
		// differences at t-1.
		pred := m.fittedVals[t-d]
		for k := d - 1; k >= 0; k-- {
			pred += levels[k][t-1-k]
		}
		preds[t] = pred
	}
	return preds
}

// Residuals returns the model residuals on the differenced scale.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.residuals))
	copy(result, m.residuals)
	return result
}

// FittedValues returns the fitted values on the differenced scale.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.fittedVals))
	copy(result, m.fittedVals)
	return result
}

// yuleWalker estimates AR coefficients from the ACF via Levinson-Durbin.
func yuleWalker(acf []float64, order int) []float64 {
	if order <= 0 || len(acf) <= order {
		return nil
	}

	phi := make([]float64, order)
	phi[0] = acf[1]
	if order == 1 {
		return phi
	}

	v := 1 - phi[0]*phi[0]
	for i := 1; i < order; i++ {
		lambda := acf[i+1]
		for j := 0; j < i; j++ {
			lambda -= phi[j] * acf[i-j]
		}
		if v == 0 {
			break
		}
		lambda /= v

		newPhi := make([]float64, i+1)
		for j := 0; j < i; j++ {
			newPhi[j] = phi[j] - lambda*phi[i-1-j]
		}
		newPhi[i] = lambda
		copy(phi, newPhi)

		v *= 1 - lambda*lambda
		if v <= 0 {
			break
		}
	}
	return phi
}
