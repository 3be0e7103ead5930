// Package report renders a metrics run as a fixed-layout text summary, an
// Org-mode block or YAML, and prints indicator series as aligned tables.
package report

import (
	"math"
	"time"

	"github.com/rustyeddy/quant/journal"
	"github.com/rustyeddy/quant/metrics"
	"github.com/rustyeddy/quant/pkg/id"
	"github.com/shopspring/decimal"
)

// Run is one metrics computation and where its trades came from.
type Run struct {
	RunID          string                     `json:"run_id" yaml:"run_id"`
	Created        time.Time                  `json:"created" yaml:"created"`
	Source         string                     `json:"source" yaml:"source"`
	InitialCapital float64                    `json:"initial_capital" yaml:"initial_capital"`
	Metrics        metrics.PerformanceMetrics `json:"metrics" yaml:"metrics"`
}

// NewRun stamps m with a fresh ULID and the current time.
func NewRun(source string, m metrics.PerformanceMetrics) Run {
	return Run{
		RunID:          id.New(),
		Created:        time.Now().UTC(),
		Source:         source,
		InitialCapital: m.InitialCapital,
		Metrics:        m,
	}
}

// Summary maps r onto the row stored in the journal's runs table.
func Summary(r Run) journal.Run {
	m := r.Metrics
	return journal.Run{
		RunID:          r.RunID,
		Created:        r.Created,
		Source:         r.Source,
		InitialCapital: r.InitialCapital,
		Trades:         m.TotalTrades,
		Wins:           m.WinningTrades,
		Losses:         m.LosingTrades,
		NetPL:          m.TotalProfitLoss,
		ReturnPct:      m.TotalReturnPercent,
		MaxDDPct:       m.MaxDrawdownPercent,
		WinRate:        m.WinRate,
		ProfitFactor:   m.ProfitFactor,
		Sharpe:         m.SharpeRatio,
		Sortino:        m.SortinoRatio,
	}
}

// fixed formats x with places decimals, spelling out values decimal cannot
// hold.
func fixed(x float64, places int32) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "+Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	}
	return decimal.NewFromFloat(x).StringFixed(places)
}

func money(x float64) string { return fixed(x, 2) }

func pct(x float64) string { return fixed(x, 2) + "%" }

func ratio(x float64) string { return fixed(x, 3) }
