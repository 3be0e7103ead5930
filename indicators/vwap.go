package indicators

import "github.com/rustyeddy/quant/market"

// VWAP returns the cumulative volume-weighted average price from the start
// of candles, using the typical price (H+L+C)/3. Points before any volume
// has traded are NaN.
func VWAP(candles []market.Candle) []float64 {
	if len(candles) == 0 {
		return nil
	}

	out := make([]float64, len(candles))
	var sumPV, sumV float64
	for i, c := range candles {
		sumPV += c.TypicalPrice() * c.Volume
		sumV += c.Volume
		out[i] = sumPV / sumV
	}
	return out
}
