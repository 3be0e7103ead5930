// Package indicators computes technical indicators over price and candle
// series.
//
// Every function is a pure batch computation: inputs are never mutated and
// the same input always yields the same output. When a series is shorter
// than the indicator's window (or a period is not positive) the result is
// empty; nothing is padded and nothing panics.
package indicators

// Signal is a discrete trading classification.
type Signal string

const (
	Buy     Signal = "buy"
	Sell    Signal = "sell"
	Neutral Signal = "neutral"
)

// Result is a single indicator reading with an optional classification and
// free-form numeric metadata.
type Result struct {
	Value    float64            `json:"value" yaml:"value"`
	Signal   Signal             `json:"signal,omitempty" yaml:"signal,omitempty"`
	Metadata map[string]float64 `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Default periods.
const (
	DefaultRSIPeriod       = 14
	DefaultMACDFast        = 12
	DefaultMACDSlow        = 26
	DefaultMACDSignal      = 9
	DefaultBollingerPeriod = 20
	DefaultBollingerStdDev = 2.0
	DefaultStochK          = 14
	DefaultStochD          = 3
	DefaultStochSlowing    = 3
	DefaultATRPeriod       = 14
	DefaultADXPeriod       = 14
)

// Values extracts the Value field of each result.
func Values(results []Result) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = r.Value
	}
	return out
}
