// Package journal persists and loads closed trades and the summaries of
// analysis runs computed from them. Trades live in a CSV file or a SQLite
// database; run summaries live in SQLite only.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/rustyeddy/quant/config"
	"github.com/rustyeddy/quant/market"
)

// ErrNotFound is returned when a trade or run id is not in the journal.
var ErrNotFound = errors.New("not found")

// Journal records closed trades.
type Journal interface {
	RecordTrade(ctx context.Context, t market.Trade) error
	Close() error
}

var (
	_ Journal = (*SQLite)(nil)
	_ Journal = (*CSVWriter)(nil)
)

// Run is the persisted summary of one metrics computation.
type Run struct {
	RunID          string
	Created        time.Time
	Source         string // trades file or database the run was computed from
	InitialCapital float64

	Trades int
	Wins   int
	Losses int

	NetPL        float64
	ReturnPct    float64
	MaxDDPct     float64
	WinRate      float64
	ProfitFactor float64
	Sharpe       float64
	Sortino      float64
}

// Load reads every trade from the source cfg selects, ordered by exit time.
// A SQLite source must already exist.
func Load(ctx context.Context, cfg config.JournalConfig) ([]market.Trade, error) {
	var (
		trades []market.Trade
		err    error
	)

	switch cfg.Type {
	case "csv":
		trades, err = LoadTradesCSV(cfg.TradesFile)
	case "sqlite":
		if _, err := os.Stat(cfg.DBPath); err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		var j *SQLite
		j, err = NewSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		defer j.Close()
		trades, err = j.ListTrades(ctx)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
	if err != nil {
		return nil, err
	}

	SortByExit(trades)
	slog.Debug("journal loaded", "type", cfg.Type, "trades", len(trades))
	return trades, nil
}

// SortByExit orders trades by exit time, keeping the file order of trades
// that closed at the same instant.
func SortByExit(trades []market.Trade) {
	sort.SliceStable(trades, func(i, k int) bool {
		return trades[i].ExitTime.Before(trades[k].ExitTime)
	})
}
