package journal

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/quant/market"
)

// SQLite is a trade and run journal in a single SQLite file.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates the database at path and applies Schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

const insertTrade = `
	INSERT OR REPLACE INTO trades
	(trade_id, instrument, side, quantity, entry_price, exit_price, entry_time, exit_time)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// RecordTrade stores t, replacing any trade with the same id.
func (j *SQLite) RecordTrade(ctx context.Context, t market.Trade) error {
	if err := t.Validate(); err != nil {
		return err
	}
	_, err := j.db.ExecContext(ctx, insertTrade, tradeArgs(t)...)
	return err
}

// RecordTrades stores all trades in one transaction.
func (j *SQLite) RecordTrades(ctx context.Context, trades []market.Trade) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertTrade)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range trades {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, tradeArgs(t)...); err != nil {
			return fmt.Errorf("trade %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

func tradeArgs(t market.Trade) []any {
	return []any{
		t.ID, t.Instrument, string(t.Side), t.Quantity,
		t.EntryPrice, t.ExitPrice, t.EntryTime.UTC(), t.ExitTime.UTC(),
	}
}

// RecordRun stores a run summary. Non-finite ratios round-trip unchanged.
func (j *SQLite) RecordRun(ctx context.Context, r Run) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs
		(run_id, created, source, initial_capital, trades, wins, losses,
		 net_pl, return_pct, max_dd_pct, win_rate, profit_factor, sharpe, sortino)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created.UTC(), r.Source, r.InitialCapital, r.Trades, r.Wins, r.Losses,
		r.NetPL, r.ReturnPct, r.MaxDDPct, r.WinRate,
		ratio(r.ProfitFactor), ratio(r.Sharpe), ratio(r.Sortino),
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

// ratio stores a float64 that may be non-finite. SQLite has no NaN and
// infinities do not survive every driver path, so non-finite values are
// written as the text NaN, +Inf or -Inf.
type ratio float64

func (r ratio) Value() (driver.Value, error) {
	x := float64(r)
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	}
	return x, nil
}

func (r *ratio) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = ratio(math.NaN())
	case float64:
		*r = ratio(v)
	case int64:
		*r = ratio(v)
	case []byte:
		return r.parse(string(v))
	case string:
		return r.parse(v)
	default:
		return fmt.Errorf("ratio: unsupported type %T", src)
	}
	return nil
}

func (r *ratio) parse(s string) error {
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("ratio: %w", err)
	}
	*r = ratio(x)
	return nil
}
