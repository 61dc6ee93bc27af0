// Package charts builds go-chart definitions for the intensity histogram and the timing scatter.
//
// Builders only assemble a chart.Chart; nothing is drawn until Render or RenderImage is called.
// This keeps the series data inspectable in tests and lets callers choose between saving to a
// file and showing a window.
package charts

import (
	"fmt"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/measureviz/src/pixels"
	"github.com/iafilius/measureviz/src/stats"
)

// Series names; tests and legends rely on them.
const (
	SeriesPixels    = "Pixel values"
	SeriesThreshold = "Threshold t"
	SeriesDurations = "Durations"
	SeriesMean      = "Mean"
	SeriesMedian    = "Median"
)

var (
	colorHistogram = chart.ColorRed
	colorThreshold = chart.ColorBlue
	colorPoints    = chart.ColorRed
	colorMean      = chart.ColorBlue
	colorMedian    = drawing.ColorFromHex("800080")
	colorReference = chart.ColorGreen

	dashed = []float64{6, 4}
)

// pointStyle renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

// dashedLineStyle renders a dashed reference line without dots.
func dashedLineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor:     col,
		StrokeWidth:     2,
		StrokeDashArray: dashed,
	}
}

// HistogramOptions configure HistogramChart. Zero values take defaults.
type HistogramOptions struct {
	Threshold      int
	ThresholdLabel string
	Title          string
	Width, Height  int
}

// TimingOptions configure TimingChart. Zero values take defaults, except Reference, where 0 hides
// the reference line.
type TimingOptions struct {
	Unit           string // display unit name used in the Y axis label, e.g. "seconds"
	Reference      float64
	ReferenceLabel string
	Title          string
	Caption        string // reserved bottom space for Annotate
	Width, Height  int
}

// HistogramChart draws the density histogram as a filled step outline over [0,256) with a
// vertical dashed line at the threshold.
func HistogramChart(h pixels.Histogram, opts HistogramOptions) (chart.Chart, error) {
	if h.Total == 0 {
		return chart.Chart{}, pixels.ErrNoPixels
	}
	if opts.Threshold < 0 || opts.Threshold > pixels.Bins-1 {
		return chart.Chart{}, fmt.Errorf("threshold %d out of range [0,%d]", opts.Threshold, pixels.Bins-1)
	}
	if opts.ThresholdLabel == "" {
		opts.ThresholdLabel = SeriesThreshold
	}
	if opts.Title == "" {
		opts.Title = "Histogram of Pixel Values"
	}
	xs, ys := StepOutline(h.Density[:], pixels.BinWidth)

	_, yMax := niceAxisBounds(0, h.MaxDensity())
	st := chart.Style{
		StrokeColor: colorHistogram,
		StrokeWidth: 1,
		FillColor:   colorHistogram.WithAlpha(200),
	}
	series := []chart.Series{
		chart.ContinuousSeries{Name: SeriesPixels, XValues: xs, YValues: ys, Style: st},
		chart.ContinuousSeries{
			Name:    opts.ThresholdLabel,
			XValues: []float64{float64(opts.Threshold), float64(opts.Threshold)},
			YValues: []float64{0, yMax},
			Style:   dashedLineStyle(colorThreshold),
		},
	}
	w, hh := ComputeChartDimensions(opts.Width, opts.Height)
	ch := chart.Chart{
		Title:      opts.Title,
		Width:      w,
		Height:     hh,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 12, Bottom: 28}},
		XAxis: chart.XAxis{
			Name:  "Pixel Value",
			Range: &chart.ContinuousRange{Min: 0, Max: pixels.Bins * pixels.BinWidth},
			Ticks: stepTicks(0, pixels.Bins*pixels.BinWidth, 50),
		},
		YAxis: chart.YAxis{
			Name:  "Frequency",
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
			Ticks: niceTicks(0, yMax, 6),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch, nil
}

// StepOutline converts bucket heights into the corner points of a step outline: bucket i spans
// [i*width, (i+1)*width] at height heights[i].
func StepOutline(heights []float64, width float64) ([]float64, []float64) {
	xs := make([]float64, 0, 2*len(heights))
	ys := make([]float64, 0, 2*len(heights))
	for i, v := range heights {
		x0 := float64(i) * width
		xs = append(xs, x0, x0+width)
		ys = append(ys, v, v)
	}
	return xs, ys
}

// TimingChart scatters converted durations against their 1-based test number and overlays
// dashed mean, median and reference lines.
func TimingChart(values []float64, sum stats.Summary, opts TimingOptions) (chart.Chart, error) {
	if len(values) == 0 {
		return chart.Chart{}, stats.ErrEmptyInput
	}
	if opts.Unit == "" {
		opts.Unit = "seconds"
	}
	if opts.ReferenceLabel == "" && opts.Reference > 0 {
		opts.ReferenceLabel = fmt.Sprintf("%s %s", strconv.FormatFloat(opts.Reference, 'f', -1, 64), opts.Unit)
	}
	if opts.Title == "" {
		opts.Title = "Testing times"
	}

	xs, xAxis := indexAxis(len(values), "Test number")
	lo, hi := xAxis.Range.GetMin(), xAxis.Range.GetMax()
	hline := func(name string, y float64, col drawing.Color) chart.Series {
		return chart.ContinuousSeries{
			Name:    name,
			XValues: []float64{lo, hi},
			YValues: []float64{y, y},
			Style:   dashedLineStyle(col),
		}
	}

	maxY := 0.0
	for _, v := range values {
		if v > maxY && !math.IsInf(v, 0) {
			maxY = v
		}
	}
	if opts.Reference > maxY {
		maxY = opts.Reference
	}
	if maxY <= 0 {
		maxY = 1
	}
	_, yMax := niceAxisBounds(0, maxY)

	pts := pointStyle(colorPoints)
	if len(values) == 1 {
		pts.DotWidth = 6
	}
	ptsX, ptsY := xs, values
	if len(values) == 1 {
		// go-chart needs two X values to compute a range
		ptsX = []float64{xs[0], xs[0]}
		ptsY = []float64{values[0], values[0]}
	}
	series := []chart.Series{
		chart.ContinuousSeries{Name: SeriesDurations, XValues: ptsX, YValues: ptsY, Style: pts},
		hline(SeriesMean, sum.Mean, colorMean),
		hline(SeriesMedian, sum.Median, colorMedian),
	}
	if opts.Reference > 0 {
		series = append(series, hline(opts.ReferenceLabel, opts.Reference, colorReference))
	}

	padBottom := 28
	if opts.Caption != "" {
		padBottom += captionHeight
	}
	w, h := ComputeChartDimensions(opts.Width, opts.Height)
	ch := chart.Chart{
		Title:      opts.Title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 12, Bottom: padBottom}},
		XAxis:      xAxis,
		YAxis: chart.YAxis{
			Name:  fmt.Sprintf("Time taken for test (%s)", opts.Unit),
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
			Ticks: niceTicks(0, yMax, 6),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch, nil
}
