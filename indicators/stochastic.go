package indicators

import "github.com/rustyeddy/quant/market"

// Stochastic thresholds on the slowed %K line.
const (
	StochOverbought = 80.0
	StochOversold   = 20.0
)

// StochasticResult is the slowed %K line, its %D average and the threshold
// flags for each %K point. All slices have the same length.
type StochasticResult struct {
	K          []float64 `json:"k" yaml:"k"`
	D          []float64 `json:"d" yaml:"d"`
	Overbought []bool    `json:"overbought" yaml:"overbought"`
	Oversold   []bool    `json:"oversold" yaml:"oversold"`
}

// Len returns the number of aligned points.
func (s StochasticResult) Len() int { return len(s.D) }

// Stochastic computes the slow stochastic oscillator.
//
// Raw %K is (close - lowestLow) / (highestHigh - lowestLow) * 100 over
// kPeriod candles; it is smoothed by an SMA of width slowing, and %D is the
// dPeriod SMA of the smoothed line. K is trimmed from the front to line up
// with D. A flat window (highestHigh == lowestLow) gives NaN.
func Stochastic(candles []market.Candle, kPeriod, dPeriod, slowing int) StochasticResult {
	if kPeriod <= 0 || len(candles) < kPeriod {
		return StochasticResult{}
	}

	highest := rollingMax(market.Highs(candles), kPeriod)
	lowest := rollingMin(market.Lows(candles), kPeriod)

	raw := make([]float64, len(highest))
	for i := range raw {
		c := candles[i+kPeriod-1].Close
		raw[i] = (c - lowest[i]) / (highest[i] - lowest[i]) * 100
	}

	slowK := SMA(raw, slowing)
	d := SMA(slowK, dPeriod)
	if len(d) == 0 {
		return StochasticResult{}
	}

	k := slowK[len(slowK)-len(d):]
	res := StochasticResult{
		K:          k,
		D:          d,
		Overbought: make([]bool, len(k)),
		Oversold:   make([]bool, len(k)),
	}
	for i, v := range k {
		res.Overbought[i] = v > StochOverbought
		res.Oversold[i] = v < StochOversold
	}
	return res
}
