package charts

import (
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// DefaultWidth is the chart width used when none is configured.
const DefaultWidth = 1100

// ComputeChartDimensions applies the width/height clamp rules used for every chart.
// A width <= 0 means the default width; a height <= 0 derives a ~3:1 aspect ratio from the
// clamped width.
func ComputeChartDimensions(rawW, rawH int) (int, int) {
	w := rawW
	if w <= 0 {
		w = DefaultWidth
	}
	if w < 480 {
		w = 480
	}
	if rawH > 0 {
		return w, rawH
	}
	h := int(float32(w) * 0.33)
	if h < 280 {
		h = 280
	}
	if h > 520 {
		h = 520
	}
	return w, h
}

// indexAxis builds X values 1..n with an explicit tick per test number. The padded range keeps
// n=1 renderable with non-zero width.
func indexAxis(n int, name string) ([]float64, chart.XAxis) {
	xs := make([]float64, n)
	ticks := make([]chart.Tick, 0, n+1)
	for i := 0; i < n; i++ {
		x := float64(i + 1)
		xs[i] = x
		ticks = append(ticks, chart.Tick{Value: x, Label: strconv.Itoa(i + 1)})
	}
	minR := 0.5
	maxR := float64(n) + 0.5
	if n == 1 {
		maxR = 2.0
		ticks = append(ticks, chart.Tick{Value: 2, Label: ""})
	}
	return xs, chart.XAxis{
		Name:  name,
		Ticks: ticks,
		Range: &chart.ContinuousRange{Min: minR, Max: maxR},
	}
}

// niceAxisBounds expands [min,max] by a small margin and rounds to "nice" numbers for readability.
// A min of exactly 0 stays anchored at 0.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	pad := span * 0.05
	a := min - pad
	if min == 0 {
		a = 0
	}
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// niceTicks generates up to n tick marks within [min, max] using 1,2,2.5,5 x 10^k steps.
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if score := math.Abs(count - float64(n)); score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	start := math.Ceil(min/bestStep) * bestStep
	ticks := []chart.Tick{}
	for i := 0; ; i++ {
		v := round6(start + float64(i)*bestStep)
		if v > max+bestStep*1e-6 {
			break
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
		if len(ticks) > n+2 {
			break
		}
	}
	return ticks
}

// stepTicks returns ticks at every multiple of step within [min,max].
func stepTicks(min, max, step float64) []chart.Tick {
	var ticks []chart.Tick
	for v := math.Ceil(min/step) * step; v <= max; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
	}
	return ticks
}

// round6 rounds to 6 decimal places so accumulated steps label cleanly.
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}
