package indicators

// MACDResult holds the aligned MACD line, its signal line and the histogram.
// All three slices have the same length.
type MACDResult struct {
	MACD      []float64 `json:"macd" yaml:"macd"`
	Signal    []float64 `json:"signal" yaml:"signal"`
	Histogram []float64 `json:"histogram" yaml:"histogram"`
}

// Len returns the number of aligned points.
func (m MACDResult) Len() int { return len(m.Histogram) }

// MACD computes EMA(fast) - EMA(slow), its signal EMA and the histogram.
//
// The fast EMA starts slow-fast points earlier than the slow one and is
// trimmed from the front to line up. The MACD line is then trimmed the same
// way to line up with the signal line. fast must be smaller than slow.
func MACD(prices []float64, fast, slow, signal int) MACDResult {
	if fast <= 0 || signal <= 0 || fast >= slow {
		return MACDResult{}
	}

	slowEMA := EMA(prices, slow)
	if len(slowEMA) == 0 {
		return MACDResult{}
	}
	fastEMA := EMA(prices, fast)

	offset := slow - fast
	line := make([]float64, len(slowEMA))
	for i := range slowEMA {
		line[i] = fastEMA[i+offset] - slowEMA[i]
	}

	signalLine := EMA(line, signal)
	if len(signalLine) == 0 {
		return MACDResult{}
	}

	line = line[len(line)-len(signalLine):]
	hist := make([]float64, len(signalLine))
	for i := range signalLine {
		hist[i] = line[i] - signalLine[i]
	}

	return MACDResult{
		MACD:      line,
		Signal:    signalLine,
		Histogram: hist,
	}
}
