package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/quant/market"
)

const tradeColumns = `trade_id, instrument, side, quantity, entry_price, exit_price, entry_time, exit_time`

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (market.Trade, error) {
	var (
		t    market.Trade
		side string
	)
	err := s.Scan(
		&t.ID,
		&t.Instrument,
		&side,
		&t.Quantity,
		&t.EntryPrice,
		&t.ExitPrice,
		&t.EntryTime,
		&t.ExitTime,
	)
	t.Side = market.Side(side)
	return t, err
}

// GetTrade returns a single trade by id.
func (j *SQLite) GetTrade(ctx context.Context, tradeID string) (market.Trade, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE trade_id = ?`, tradeID)

	t, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return market.Trade{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
		}
		return market.Trade{}, err
	}
	return t, nil
}

// ListTrades returns every trade ordered by exit_time, then trade_id.
func (j *SQLite) ListTrades(ctx context.Context) ([]market.Trade, error) {
	return j.queryTrades(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		ORDER BY exit_time ASC, trade_id ASC`)
}

// ListTradesClosedBetween returns trades whose exit_time is within [start, end).
func (j *SQLite) ListTradesClosedBetween(ctx context.Context, start, end time.Time) ([]market.Trade, error) {
	return j.queryTrades(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE exit_time >= ? AND exit_time < ?
		ORDER BY exit_time ASC, trade_id ASC`, start.UTC(), end.UTC())
}

func (j *SQLite) queryTrades(ctx context.Context, query string, args ...any) ([]market.Trade, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []market.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const runColumns = `run_id, created, source, initial_capital, trades, wins, losses,
	net_pl, return_pct, max_dd_pct, win_rate, profit_factor, sharpe, sortino`

func scanRun(s scanner) (Run, error) {
	var (
		r                   Run
		pf, sharpe, sortino ratio
	)
	err := s.Scan(
		&r.RunID, &r.Created, &r.Source, &r.InitialCapital,
		&r.Trades, &r.Wins, &r.Losses,
		&r.NetPL, &r.ReturnPct, &r.MaxDDPct, &r.WinRate,
		&pf, &sharpe, &sortino,
	)
	r.ProfitFactor = float64(pf)
	r.Sharpe = float64(sharpe)
	r.Sortino = float64(sortino)
	return r, err
}

// GetRun returns a single run summary by id.
func (j *SQLite) GetRun(ctx context.Context, runID string) (Run, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)

	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("run %q: %w", runID, ErrNotFound)
		}
		return Run{}, err
	}
	return r, nil
}

// ListRuns returns every run summary, oldest first.
func (j *SQLite) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created ASC, run_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
