package market

import (
	"fmt"
	"time"
)

// Candle represents one OHLCV bar. Timestamp is the bar open in unix
// milliseconds and must be strictly increasing across a series.
type Candle struct {
	Timestamp int64   `json:"timestamp" yaml:"timestamp"`
	Open      float64 `json:"open" yaml:"open"`
	High      float64 `json:"high" yaml:"high"`
	Low       float64 `json:"low" yaml:"low"`
	Close     float64 `json:"close" yaml:"close"`
	Volume    float64 `json:"volume" yaml:"volume"`
}

// Time returns the bar open as a UTC time.
func (c Candle) Time() time.Time {
	return time.UnixMilli(c.Timestamp).UTC()
}

// TypicalPrice is (high + low + close) / 3.
func (c Candle) TypicalPrice() float64 {
	return (c.High + c.Low + c.Close) / 3
}

// Validate checks the OHLC envelope. The indicator functions never call it;
// loaders use it to reject malformed rows.
func (c Candle) Validate() error {
	switch {
	case c.High < c.Low:
		return fmt.Errorf("high %v below low %v", c.High, c.Low)
	case c.High < c.Open || c.High < c.Close:
		return fmt.Errorf("high %v below open/close", c.High)
	case c.Low > c.Open || c.Low > c.Close:
		return fmt.Errorf("low %v above open/close", c.Low)
	case c.Volume < 0:
		return fmt.Errorf("negative volume %v", c.Volume)
	}
	return nil
}

// Closes returns the close column of candles in a new slice.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// Highs returns the high column of candles in a new slice.
func Highs(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.High
	}
	return out
}

// Lows returns the low column of candles in a new slice.
func Lows(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Low
	}
	return out
}

// Volumes returns the volume column of candles in a new slice.
func Volumes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Volume
	}
	return out
}

// Range returns the highest high and lowest low of candles. ok is false for
// an empty series.
func Range(candles []Candle) (high, low float64, ok bool) {
	if len(candles) == 0 {
		return 0, 0, false
	}
	high, low = candles[0].High, candles[0].Low
	for _, c := range candles[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return high, low, true
}
