package journal

import (
	"context"
	"database/sql"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/quant/config"
	"github.com/rustyeddy/quant/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('trades','runs')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["trades"])
	assert.True(t, found["runs"])
}

func TestSQLiteGetTrade(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	exit := time.Date(2024, 4, 10, 15, 30, 0, 0, time.UTC)
	want := testTrade("T123", market.Long, 1.08500, 1.08750, exit)

	require.NoError(t, j.RecordTrade(ctx, want))

	got, err := j.GetTrade(ctx, "T123")
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Instrument, got.Instrument)
	assert.Equal(t, want.Side, got.Side)
	assert.InDelta(t, want.Quantity, got.Quantity, 1e-9)
	assert.InDelta(t, want.EntryPrice, got.EntryPrice, 1e-12)
	assert.InDelta(t, want.ExitPrice, got.ExitPrice, 1e-12)
	assert.True(t, got.EntryTime.Equal(want.EntryTime))
	assert.True(t, got.ExitTime.Equal(want.ExitTime))
}

func TestSQLiteGetTradeNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetTrade(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestSQLiteRecordTradeRejectsInvalid(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	bad := testTrade("bad", market.Long, 1, 1, time.Now())
	bad.Quantity = 0
	assert.Error(t, j.RecordTrade(context.Background(), bad))
	assert.Error(t, j.RecordTrades(context.Background(), []market.Trade{bad}))

	trades, err := j.ListTrades(context.Background())
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestSQLiteListTradesOrdered(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrades(ctx, []market.Trade{
		testTrade("C", market.Long, 1, 1.1, base.Add(2*time.Hour)),
		testTrade("B", market.Long, 1, 1.1, base),
		testTrade("A", market.Long, 1, 0.9, base),
		testTrade("D", market.Short, 1, 0.9, base.Add(-time.Hour)),
	}))

	trades, err := j.ListTrades(ctx)
	require.NoError(t, err)

	var ids []string
	for _, tr := range trades {
		ids = append(ids, tr.ID)
	}
	assert.Equal(t, []string{"D", "A", "B", "C"}, ids)

	// re-importing replaces instead of duplicating
	require.NoError(t, j.RecordTrade(ctx, testTrade("C", market.Long, 1, 1.2, base.Add(2*time.Hour))))
	trades, err = j.ListTrades(ctx)
	require.NoError(t, err)
	require.Len(t, trades, 4)
	assert.InDelta(t, 1.2, trades[3].ExitPrice, 1e-12)
}

func TestSQLiteListTradesClosedBetween(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrades(ctx, []market.Trade{
		testTrade("before", market.Long, 1, 1.1, day.Add(-time.Minute)),
		testTrade("start", market.Long, 1, 1.1, day),
		testTrade("noon", market.Long, 1, 1.1, day.Add(12*time.Hour)),
		testTrade("end", market.Long, 1, 1.1, day.Add(24*time.Hour)),
	}))

	trades, err := j.ListTradesClosedBetween(ctx, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "start", trades[0].ID)
	assert.Equal(t, "noon", trades[1].ID)

	trades, err = j.ListTradesClosedBetween(ctx, day.Add(48*time.Hour), day.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestSQLiteRuns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	first := Run{
		RunID:          "R1",
		Created:        created,
		Source:         "trades.csv",
		InitialCapital: 10000,
		Trades:         3,
		Wins:           3,
		NetPL:          420,
		ReturnPct:      4.2,
		WinRate:        1,
		ProfitFactor:   math.Inf(1),
		Sharpe:         1.5,
		Sortino:        math.Inf(1),
	}
	second := Run{
		RunID:          "R2",
		Created:        created.Add(time.Hour),
		Source:         "quant.sqlite",
		InitialCapital: 10000,
		Trades:         2,
		Wins:           1,
		Losses:         1,
		NetPL:          50,
		ReturnPct:      0.5,
		MaxDDPct:       0.5,
		WinRate:        0.5,
		ProfitFactor:   2,
		Sharpe:         0.3,
		Sortino:        0.05,
	}
	require.NoError(t, j.RecordRun(ctx, second))
	require.NoError(t, j.RecordRun(ctx, first))

	runs, err := j.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "R1", runs[0].RunID)
	assert.Equal(t, "R2", runs[1].RunID)

	got, err := j.GetRun(ctx, "R1")
	require.NoError(t, err)
	assert.True(t, got.Created.Equal(created))
	assert.Equal(t, 3, got.Trades)
	assert.True(t, math.IsInf(got.ProfitFactor, 1))
	assert.True(t, math.IsInf(got.Sortino, 1))
	assert.Equal(t, 1.5, got.Sharpe)

	third := second
	third.RunID = "R3"
	third.Created = created.Add(2 * time.Hour)
	third.Sharpe = math.NaN()
	third.Sortino = math.Inf(-1)
	require.NoError(t, j.RecordRun(ctx, third))

	got, err = j.GetRun(ctx, "R3")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got.Sharpe))
	assert.True(t, math.IsInf(got.Sortino, -1))
	assert.Equal(t, 2.0, got.ProfitFactor)

	got, err = j.GetRun(ctx, "R2")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.ProfitFactor)

	_, err = j.GetRun(ctx, "R4")
	assert.ErrorIs(t, err, ErrNotFound)

	// run ids are unique
	assert.Error(t, j.RecordRun(ctx, first))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	trades := []market.Trade{
		testTrade("late", market.Long, 1, 1.1, base.Add(48*time.Hour)),
		testTrade("early", market.Long, 1, 0.9, base),
	}

	csvPath := filepath.Join(dir, "trades.csv")
	w, err := NewCSV(csvPath)
	require.NoError(t, err)
	for _, tr := range trades {
		require.NoError(t, w.RecordTrade(ctx, tr))
	}
	require.NoError(t, w.Close())

	dbPath := filepath.Join(dir, "quant.sqlite")
	db, err := NewSQLite(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.RecordTrades(ctx, trades))
	require.NoError(t, db.Close())

	tests := []struct {
		name string
		cfg  config.JournalConfig
	}{
		{"csv", config.JournalConfig{Type: "csv", TradesFile: csvPath}},
		{"sqlite", config.JournalConfig{Type: "sqlite", DBPath: dbPath}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(ctx, tt.cfg)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "early", got[0].ID)
			assert.Equal(t, "late", got[1].ID)
		})
	}

	_, err = Load(ctx, config.JournalConfig{Type: "parquet"})
	assert.Error(t, err)

	missing := filepath.Join(dir, "typo.sqlite")
	_, err = Load(ctx, config.JournalConfig{Type: "sqlite", DBPath: missing})
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, missing)
}
