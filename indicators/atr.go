package indicators

import (
	"math"

	"github.com/rustyeddy/quant/market"
)

// TrueRange returns the true range of every candle after the first:
//
//	max(high-low, |high-prevClose|, |low-prevClose|)
func TrueRange(candles []market.Candle) []float64 {
	if len(candles) < 2 {
		return nil
	}

	out := make([]float64, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		out[i-1] = trueRange(candles[i], candles[i-1])
	}
	return out
}

// ATR calculates the Average True Range for the given period.
//
// The first value is the mean of the first period true ranges; later values
// use Wilder's smoothing, atr = (prev*(period-1) + tr) / period. The result
// has len(candles)-period entries.
func ATR(candles []market.Candle, period int) []float64 {
	if period <= 0 || len(candles) < period+1 {
		return nil
	}

	trueRanges := TrueRange(candles)
	p := float64(period)

	out := make([]float64, len(trueRanges)-period+1)
	atr := windowSum(trueRanges[:period]) / p
	out[0] = atr

	for i := period; i < len(trueRanges); i++ {
		atr = (atr*(p-1) + trueRanges[i]) / p
		out[i-period+1] = atr
	}
	return out
}

// trueRange calculates the True Range for a candle given the previous candle
func trueRange(current, previous market.Candle) float64 {
	highLow := current.High - current.Low
	highClose := math.Abs(current.High - previous.Close)
	lowClose := math.Abs(current.Low - previous.Close)

	return math.Max(highLow, math.Max(highClose, lowClose))
}
