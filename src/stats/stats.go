// Package stats computes the descriptive statistics drawn on the timing charts.
//
// Percentiles use linear interpolation between closest ranks on a sorted copy
// (h = (n-1)*p/100), so the 50th percentile of an even-sized set is the average of
// the two middle values. Mean, standard deviation and bounds come from go-moremath.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	mstats "github.com/aclements/go-moremath/stats"
)

// ErrEmptyInput is returned when a statistic is requested for zero samples.
var ErrEmptyInput = errors.New("empty input: at least one sample is required")

// Summary holds the statistics of one converted timing set.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stddev"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
	P95    float64 `json:"p95"`
}

// Scale multiplies every value by factor and returns a new slice; the input is left untouched.
func Scale(values []float64, factor float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * factor
	}
	return out
}

// Mean returns the arithmetic mean.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	return mstats.Sample{Xs: values}.Mean(), nil
}

// Percentile returns the p-th percentile (0..100) of values using linear interpolation.
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	if math.IsNaN(p) || p < 0 || p > 100 {
		return 0, fmt.Errorf("percentile %v out of range [0,100]", p)
	}
	cp := append([]float64(nil), values...)
	sort.Float64s(cp)
	return percentileSorted(cp, p), nil
}

// Median is the 50th percentile.
func Median(values []float64) (float64, error) { return Percentile(values, 50) }

func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p / 100
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if hi >= n {
		hi = n - 1
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// Summarize computes the full Summary in one pass over a sorted copy.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrEmptyInput
	}
	cp := append([]float64(nil), values...)
	sort.Float64s(cp)
	s := mstats.Sample{Xs: cp, Sorted: true}
	lo, hi := s.Bounds()
	sd := 0.0
	if len(cp) > 1 {
		sd = s.StdDev()
	}
	return Summary{
		Count:  len(cp),
		Mean:   s.Mean(),
		Median: percentileSorted(cp, 50),
		Min:    lo,
		Max:    hi,
		StdDev: sd,
		P25:    percentileSorted(cp, 25),
		P75:    percentileSorted(cp, 75),
		P90:    percentileSorted(cp, 90),
		P95:    percentileSorted(cp, 95),
	}, nil
}

// Indices returns the 1-based test numbers 1..n as chart X values.
func Indices(n int) []float64 {
	if n <= 0 {
		return nil
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	return xs
}
