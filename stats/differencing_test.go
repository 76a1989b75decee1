package stats

import (
	"math"
	"testing"

	"github.com/sartorproj/goanalytics/timeseries"
)

func TestNDiffs(t *testing.T) {
	n := 100

	// Stationary data should need 0 or at most 1 difference
	stationary := make([]float64, n)
	for i := 0; i < n; i++ {
		stationary[i] = float64(i%10-5) + float64((i*7)%11-5)*0.5
	}
	d := NDiffs(timeseries.New(stationary), 2)
	t.Logf("Stationary series ndiffs: %d", d)
	if d > 1 {
		t.Errorf("Stationary series should need at most 1 difference, got %d", d)
	}

	// Random walk should typically need at least 1 difference
	randomWalk := make([]float64, n)
	for i := 1; i < n; i++ {
		randomWalk[i] = randomWalk[i-1] + float64((i*7)%11-5)*0.3
	}
	d = NDiffs(timeseries.New(randomWalk), 2)
	t.Logf("Random walk ndiffs: %d", d)
	if d < 1 {
		t.Logf("Random walk may need differencing, got d=%d", d)
	}

	// Linear trend
	trend := make([]float64, n)
	for i := 0; i < n; i++ {
		trend[i] = 100 + float64(i)*2 + float64((i*3)%7-3)*0.5
	}
	d = NDiffs(timeseries.New(trend), 2)
	t.Logf("Trend series ndiffs: %d", d)
	if d < 1 {
		t.Errorf("Trending series should need at least 1 difference, got %d", d)
	}
}

func TestNDiffsShortSeries(t *testing.T) {
	// Too short for either test: treated as stationary
	d := NDiffs(timeseries.New([]float64{10, 20, 30}), 2)
	if d != 0 {
		t.Errorf("Expected d=0 for untestably short series, got %d", d)
	}
}

func TestCalculateIC(t *testing.T) {
	ic := CalculateIC(-100, 50, 3)

	expectedAIC := 206.0
	if math.Abs(ic.AIC-expectedAIC) > 1e-10 {
		t.Errorf("Expected AIC %f, got %f", expectedAIC, ic.AIC)
	}

	expectedBIC := 200 + 3*math.Log(50)
	if math.Abs(ic.BIC-expectedBIC) > 1e-10 {
		t.Errorf("Expected BIC %f, got %f", expectedBIC, ic.BIC)
	}

	expectedAICc := expectedAIC + 2.0*3*4/(50-3-1)
	if math.Abs(ic.AICc-expectedAICc) > 1e-10 {
		t.Errorf("Expected AICc %f, got %f", expectedAICc, ic.AICc)
	}
}

func TestCalculateICSmallSample(t *testing.T) {
	// n - k - 1 <= 0 makes the correction undefined
	ic := CalculateIC(-10, 4, 3)
	if !math.IsInf(ic.AICc, 1) {
		t.Errorf("Expected +Inf AICc for tiny sample, got %f", ic.AICc)
	}
}
