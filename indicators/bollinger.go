package indicators

import "math"

// Bands is a Bollinger Bands series. All slices have the same length and
// index i describes the window ending at prices[i+period-1].
type Bands struct {
	Upper     []float64 `json:"upper" yaml:"upper"`
	Middle    []float64 `json:"middle" yaml:"middle"`
	Lower     []float64 `json:"lower" yaml:"lower"`
	Bandwidth []float64 `json:"bandwidth" yaml:"bandwidth"`
	PercentB  []float64 `json:"percent_b" yaml:"percent_b"`
}

// Len returns the number of windows.
func (b Bands) Len() int { return len(b.Middle) }

// BollingerBands computes an SMA envelope of stdDev population standard
// deviations. Bandwidth is (upper-lower)/middle*100 and %B is
// (close-lower)/(upper-lower); both are left as NaN or Inf when a window is
// flat.
func BollingerBands(prices []float64, period int, stdDev float64) Bands {
	middle := SMA(prices, period)
	if len(middle) == 0 {
		return Bands{}
	}
	sigma := rollingStdDev(prices, period)

	n := len(middle)
	b := Bands{
		Upper:     make([]float64, n),
		Middle:    middle,
		Lower:     make([]float64, n),
		Bandwidth: make([]float64, n),
		PercentB:  make([]float64, n),
	}
	for i := 0; i < n; i++ {
		upper := middle[i] + stdDev*sigma[i]
		lower := middle[i] - stdDev*sigma[i]
		price := prices[i+period-1]

		b.Upper[i] = upper
		b.Lower[i] = lower
		b.Bandwidth[i] = (upper - lower) / middle[i] * 100
		b.PercentB[i] = (price - lower) / (upper - lower)
	}
	return b
}

// rollingStdDev returns the population standard deviation of each full
// window in amortised O(n). Deviations are accumulated around a pivot that
// moves to the current window mean every period steps, and also whenever the
// variance has fallen so far below the largest squared deviation added since
// the last move that cancellation would swamp it.
func rollingStdDev(data []float64, period int) []float64 {
	if period <= 0 || len(data) < period {
		return nil
	}

	// variance below cancelTol*scale is recomputed from the window
	const cancelTol = 1e-6

	p := float64(period)
	out := make([]float64, len(data)-period+1)

	var pivot, sum, sumSq, scale float64
	recentre := func(window []float64) {
		pivot = windowSum(window) / p
		sum, sumSq, scale = 0, 0, 0
		for _, x := range window {
			d := x - pivot
			sum += d
			sumSq += d * d
			scale = math.Max(scale, d*d)
		}
	}
	variance := func() float64 {
		m := sum / p
		v := sumSq/p - m*m
		if v < 0 {
			v = 0
		}
		return v
	}

	recentre(data[:period])
	out[0] = math.Sqrt(variance())

	for i := period; i < len(data); i++ {
		start := i - period + 1
		window := data[start : i+1]

		if old := data[i-period]; !isFinite(old) || start%period == 0 {
			recentre(window)
		} else {
			dOld := old - pivot
			dNew := data[i] - pivot
			sum += dNew - dOld
			sumSq += dNew*dNew - dOld*dOld
			scale = math.Max(scale, dNew*dNew)
		}

		v := variance()
		if v < cancelTol*scale {
			recentre(window)
			v = variance()
		}
		out[start] = math.Sqrt(v)
	}
	return out
}
