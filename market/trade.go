package market

import (
	"fmt"
	"strings"
	"time"
)

// Side is the direction of a trade.
type Side string

const (
	Long  Side = "long"
	Short Side = "short"
)

// ParseSide accepts long/short and the buy/sell aliases, case-insensitive.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "buy":
		return Long, nil
	case "short", "sell":
		return Short, nil
	}
	return "", fmt.Errorf("unknown side %q", s)
}

// Trade is a closed round trip. Profit and loss are derived, never stored.
type Trade struct {
	ID         string    `json:"id" yaml:"id"`
	Instrument string    `json:"instrument" yaml:"instrument"`
	Side       Side      `json:"side" yaml:"side"`
	EntryPrice float64   `json:"entry_price" yaml:"entry_price"`
	ExitPrice  float64   `json:"exit_price" yaml:"exit_price"`
	Quantity   float64   `json:"quantity" yaml:"quantity"`
	EntryTime  time.Time `json:"entry_time" yaml:"entry_time"`
	ExitTime   time.Time `json:"exit_time" yaml:"exit_time"`
}

// ProfitLoss returns the realized P/L in quote units.
func (t Trade) ProfitLoss() float64 {
	if t.Side == Short {
		return (t.EntryPrice - t.ExitPrice) * t.Quantity
	}
	return (t.ExitPrice - t.EntryPrice) * t.Quantity
}

// ProfitLossPercent returns the price move in the trade's favour as a
// percentage of the entry price.
func (t Trade) ProfitLossPercent() float64 {
	if t.Side == Short {
		return (t.EntryPrice - t.ExitPrice) / t.EntryPrice * 100
	}
	return (t.ExitPrice - t.EntryPrice) / t.EntryPrice * 100
}

// Duration is the holding period.
func (t Trade) Duration() time.Duration {
	return t.ExitTime.Sub(t.EntryTime)
}

// Validate reports the first malformed field.
func (t Trade) Validate() error {
	if t.Side != Long && t.Side != Short {
		return fmt.Errorf("trade %s: unknown side %q", t.ID, t.Side)
	}
	if t.EntryPrice <= 0 || t.ExitPrice <= 0 {
		return fmt.Errorf("trade %s: prices must be positive", t.ID)
	}
	if t.Quantity <= 0 {
		return fmt.Errorf("trade %s: quantity must be positive", t.ID)
	}
	if !t.ExitTime.After(t.EntryTime) {
		return fmt.Errorf("trade %s: exit_time must be after entry_time", t.ID)
	}
	return nil
}
