package pixels

// Bins is the number of histogram buckets, one per 8-bit intensity over [0,256).
const Bins = 256

// BinWidth is the width of one bucket in intensity units.
const BinWidth = 1.0

// Histogram is a density-normalized intensity histogram.
type Histogram struct {
	Counts  [Bins]int
	Density [Bins]float64 // Counts[i] / (Total * BinWidth)
	Total   int
}

// NewHistogram buckets samples into 256 equal-width bins and normalizes heights to a
// probability density.
func NewHistogram(samples []uint8) (Histogram, error) {
	var h Histogram
	if len(samples) == 0 {
		return h, ErrNoPixels
	}
	for _, s := range samples {
		h.Counts[s]++
	}
	h.Total = len(samples)
	norm := float64(h.Total) * BinWidth
	for i, c := range h.Counts {
		h.Density[i] = float64(c) / norm
	}
	return h, nil
}

// Area returns sum(Density)*BinWidth, 1 for any non-empty histogram.
func (h Histogram) Area() float64 {
	a := 0.0
	for _, d := range h.Density {
		a += d * BinWidth
	}
	return a
}

// MaxDensity returns the tallest bucket height.
func (h Histogram) MaxDensity() float64 {
	m := 0.0
	for _, d := range h.Density {
		if d > m {
			m = d
		}
	}
	return m
}

// OtsuThreshold returns the intensity t maximising between-class variance when the histogram is
// split into [0,t] and (t,255]. Ties resolve to the lowest t. An empty histogram returns 0.
func OtsuThreshold(h Histogram) int {
	if h.Total == 0 {
		return 0
	}
	total := float64(h.Total)
	sumAll := 0.0
	for i, c := range h.Counts {
		sumAll += float64(i) * float64(c)
	}
	var (
		wB, sumB float64
		best     = -1.0
		bestT    = 0
	)
	for t := 0; t < Bins; t++ {
		wB += float64(h.Counts[t])
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(h.Counts[t])
		mB := sumB / wB
		mF := (sumAll - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			bestT = t
		}
	}
	return bestT
}

// ClampThreshold applies offset to t and clamps the result to [0,255].
func ClampThreshold(t, offset int) int {
	v := t + offset
	if v < 0 {
		return 0
	}
	if v > Bins-1 {
		return Bins - 1
	}
	return v
}
