package indicators

import "math"

// SMA calculates the Simple Moving Average of every full window of period
// values. The result has len(data)-period+1 entries; entry i averages
// data[i : i+period].
func SMA(data []float64, period int) []float64 {
	if period <= 0 || len(data) < period {
		return nil
	}

	out := make([]float64, len(data)-period+1)
	sum := windowSum(data[:period])
	out[0] = sum / float64(period)

	for i := period; i < len(data); i++ {
		// A non-finite value leaving the window would leave NaN behind in
		// the running sum, so start over from the new window.
		if old := data[i-period]; isFinite(old) {
			sum += data[i] - old
		} else {
			sum = windowSum(data[i-period+1 : i+1])
		}
		out[i-period+1] = sum / float64(period)
	}
	return out
}

// EMA calculates the Exponential Moving Average. The first value is the SMA
// of data[:period]; each later value applies
//
//	ema = (x - prev) * k + prev, k = 2 / (period + 1)
//
// The result is aligned one-to-one with SMA(data, period).
func EMA(data []float64, period int) []float64 {
	if period <= 0 || len(data) < period {
		return nil
	}

	multiplier := 2.0 / float64(period+1)

	out := make([]float64, len(data)-period+1)
	ema := windowSum(data[:period]) / float64(period)
	out[0] = ema

	for i := period; i < len(data); i++ {
		ema = (data[i]-ema)*multiplier + ema
		out[i-period+1] = ema
	}
	return out
}

func windowSum(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
