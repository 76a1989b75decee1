// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"math"
	"time"
)

// DefaultStep is the sampling step assumed when a series is too short or too
// irregular to infer one. Daily data is the dominant upload shape.
const DefaultStep = 24 * time.Hour

// Series represents a time series with timestamps and values. Timestamps are
// non-decreasing after cleaning; duplicates are allowed.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a series from values with synthetic daily timestamps, useful
// for tests and for data that arrives without dates.
func New(values []float64) *Series {
	base := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	timestamps := make([]time.Time, len(values))
	for i := range timestamps {
		timestamps[i] = base.Add(time.Duration(i) * DefaultStep)
	}
	return &Series{Timestamps: timestamps, Values: values}
}

// NewWithTimestamps creates a series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{Timestamps: timestamps, Values: values}, nil
}

// Len returns the number of points in the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

// Variance calculates the sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	mean := s.Mean()
	sumSq := 0.0
	for _, v := range s.Values {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(len(s.Values)-1)
}

// Std calculates the standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Diff calculates the first difference of the series (d=1).
func (s *Series) Diff() *Series {
	return s.DiffN(1)
}

// DiffN calculates the n-th order difference of the series.
func (s *Series) DiffN(n int) *Series {
	if n <= 0 || len(s.Values) <= n {
		return &Series{Values: []float64{}}
	}

	result := make([]float64, len(s.Values)-n)
	for i := n; i < len(s.Values); i++ {
		result[i-n] = s.Values[i] - s.Values[i-n]
	}

	timestamps := make([]time.Time, len(result))
	if len(s.Timestamps) > n {
		copy(timestamps, s.Timestamps[n:])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name + "_diff",
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{Timestamps: timestamps, Values: values, Name: s.Name}
}

// Step infers the sampling frequency as the most frequent positive gap
// between consecutive timestamps, ties broken toward the smaller gap. Series
// with no positive gap fall back to DefaultStep.
func (s *Series) Step() time.Duration {
	counts := make(map[time.Duration]int)
	for i := 1; i < len(s.Timestamps); i++ {
		gap := s.Timestamps[i].Sub(s.Timestamps[i-1])
		if gap > 0 {
			counts[gap]++
		}
	}

	best := time.Duration(0)
	bestCount := 0
	for gap, count := range counts {
		if count > bestCount || (count == bestCount && gap < best) {
			best = gap
			bestCount = count
		}
	}
	if best <= 0 {
		return DefaultStep
	}
	return best
}

// FutureTimestamps generates n timestamps continuing the series' inferred
// step from the last historical timestamp.
func (s *Series) FutureTimestamps(n int) []time.Time {
	if n <= 0 || len(s.Timestamps) == 0 {
		return nil
	}
	step := s.Step()
	last := s.Timestamps[len(s.Timestamps)-1]
	out := make([]time.Time, n)
	for i := range out {
		last = last.Add(step)
		out[i] = last
	}
	return out
}
