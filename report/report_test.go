package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rustyeddy/quant/indicators"
	"github.com/rustyeddy/quant/market"
	"github.com/rustyeddy/quant/metrics"
	"github.com/rustyeddy/quant/pkg/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var t0 = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

func sampleRun(t *testing.T) Run {
	t.Helper()

	trades := []market.Trade{
		{ID: "T1", Instrument: "EUR_USD", Side: market.Long, EntryPrice: 100, ExitPrice: 110, Quantity: 10, EntryTime: t0, ExitTime: t0.Add(4 * time.Hour)},
		{ID: "T2", Instrument: "EUR_USD", Side: market.Short, EntryPrice: 100, ExitPrice: 105, Quantity: 10, EntryTime: t0.Add(24 * time.Hour), ExitTime: t0.Add(26 * time.Hour)},
	}
	r := NewRun("trades.csv", metrics.Compute(trades, 1000))
	require.True(t, id.Valid(r.RunID))
	return r
}

func TestNewRunAndSummary(t *testing.T) {
	r := sampleRun(t)
	assert.Equal(t, "trades.csv", r.Source)
	assert.Equal(t, 1000.0, r.InitialCapital)
	assert.WithinDuration(t, time.Now(), r.Created, time.Minute)

	s := Summary(r)
	assert.Equal(t, r.RunID, s.RunID)
	assert.Equal(t, 2, s.Trades)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.InDelta(t, 50.0, s.NetPL, 1e-9)
	assert.InDelta(t, 5.0, s.ReturnPct, 1e-9)
	assert.InDelta(t, 0.5, s.WinRate, 1e-12)
	assert.InDelta(t, 2.0, s.ProfitFactor, 1e-12)
	assert.Equal(t, r.Metrics.SharpeRatio, s.Sharpe)
	assert.Equal(t, r.Metrics.SortinoRatio, s.Sortino)
}

func TestFixed(t *testing.T) {
	tests := []struct {
		in     float64
		places int32
		want   string
	}{
		{1234.5678, 2, "1234.57"},
		{-50, 2, "-50.00"},
		{0.1 + 0.2, 2, "0.30"},
		{2.5, 0, "3"},
		{math.Inf(1), 2, "+Inf"},
		{math.Inf(-1), 2, "-Inf"},
		{math.NaN(), 2, "NaN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fixed(tt.in, tt.places))
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, sampleRun(t))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, rule+"\n Performance Report\n"+rule))
	for _, want := range []string{
		"Source:         trades.csv",
		"Trade Statistics",
		"Trades:         2",
		"Win Rate:       50.00%",
		"Start Balance:  1000.00",
		"End Balance:    1050.00",
		"Net P/L:        50.00",
		"Profit Factor:  2.000",
		"Kelly:          25.00%",
		"Half Kelly:     12.50%",
		"Max Drawdown:   50.00 (5.00%)",
		"VaR 95%:",
		"Start:          2024-01-02T09:00:00Z",
		"End:            2024-01-03T11:00:00Z",
	} {
		assert.Contains(t, out, want)
	}
}

func TestPrintInfiniteRatios(t *testing.T) {
	trades := []market.Trade{
		{ID: "W", Side: market.Long, EntryPrice: 10, ExitPrice: 11, Quantity: 1, EntryTime: t0, ExitTime: t0.Add(time.Hour)},
	}
	var buf bytes.Buffer
	Print(&buf, NewRun("w.csv", metrics.Compute(trades, 100)))

	assert.Contains(t, buf.String(), "Profit Factor:  +Inf")
	assert.Contains(t, buf.String(), "Sortino:        +Inf")
}

func TestPrintEmpty(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, NewRun("empty.csv", metrics.Compute(nil, 500)))

	out := buf.String()
	assert.NotContains(t, out, "Period")
	assert.Contains(t, out, "End Balance:    500.00")
}

func TestWriteOrg(t *testing.T) {
	r := sampleRun(t)

	var buf bytes.Buffer
	require.NoError(t, WriteOrg(&buf, r))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "* RUN: trades.csv\n:PROPERTIES:"))
	assert.Contains(t, out, ":RUN_ID:      "+r.RunID)
	assert.Contains(t, out, ":NET_PL:      50.00")
	assert.Contains(t, out, ":WIN_RATE:    50.00")
	assert.Contains(t, out, ":PROFIT_FAC:  2.000")
	assert.Contains(t, out, "** Performance Summary")
	assert.Contains(t, out, "| Total     | 2 |")
	assert.Contains(t, out, "| T1 | EUR_USD | long | 2024-01-02 13:00 | 100.00 | 10.00% |")
	assert.Contains(t, out, "| T2 | EUR_USD | short | 2024-01-03 11:00 | -50.00 | -5.00% |")
}

func TestWriteOrgNoTrades(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrg(&buf, NewRun("", metrics.Compute(nil, 1000))))

	assert.Contains(t, buf.String(), "* RUN: (source?)")
	assert.NotContains(t, buf.String(), "** Trades")
}

func TestWriteYAML(t *testing.T) {
	trades := []market.Trade{
		{ID: "W", Instrument: "BTC_USD", Side: market.Long, EntryPrice: 10, ExitPrice: 12, Quantity: 1, EntryTime: t0, ExitTime: t0.Add(time.Hour)},
	}
	r := NewRun("w.csv", metrics.Compute(trades, 100))

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "profit_factor: .inf")
	assert.Contains(t, out, "average_holding_period: 1h0m0s")

	var doc struct {
		RunID   string `yaml:"run_id"`
		Metrics struct {
			TotalTrades  int       `yaml:"total_trades"`
			ProfitFactor float64   `yaml:"profit_factor"`
			EquityCurve  []float64 `yaml:"equity_curve"`
			Trades       []struct {
				ID         string  `yaml:"id"`
				ProfitLoss float64 `yaml:"profit_loss"`
			} `yaml:"trades"`
		} `yaml:"metrics"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, r.RunID, doc.RunID)
	assert.Equal(t, 1, doc.Metrics.TotalTrades)
	assert.True(t, math.IsInf(doc.Metrics.ProfitFactor, 1))
	assert.Equal(t, []float64{100, 102}, doc.Metrics.EquityCurve)
	require.Len(t, doc.Metrics.Trades, 1)
	assert.Equal(t, "W", doc.Metrics.Trades[0].ID)
	assert.Equal(t, 2.0, doc.Metrics.Trades[0].ProfitLoss)
}

func candles(n int) []market.Candle {
	out := make([]market.Candle, n)
	for i := range out {
		c := float64(100 + i)
		out[i] = market.Candle{
			Timestamp: t0.Add(time.Duration(i) * time.Hour).UnixMilli(),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    10,
		}
	}
	return out
}

func TestIndicatorTable(t *testing.T) {
	cs := candles(5)
	series := []Series{
		{Name: "sma3", Values: indicators.SMA(market.Closes(cs), 3)},
		{Name: "vwap", Values: indicators.VWAP(cs)},
	}

	var buf bytes.Buffer
	require.NoError(t, IndicatorTable(&buf, cs, series, 4))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "time")
	assert.Contains(t, lines[0], "sma3")
	assert.Contains(t, lines[0], "vwap")

	// candle 1 has no sma3 value yet
	first := strings.Fields(lines[1])
	require.Len(t, first, 5)
	assert.Equal(t, []string{"2024-01-02", "10:00:00", "101.00000", "-", "100.5000"}, first)
	assert.Contains(t, lines[4], "103.0000")
	assert.Contains(t, lines[4], "104.00000")
}

func TestIndicatorTableAllRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, IndicatorTable(&buf, candles(3), nil, 0))
	assert.Len(t, strings.Split(strings.TrimRight(buf.String(), "\n"), "\n"), 4)
}

func TestPrintLevels(t *testing.T) {
	fib := indicators.FibonacciRetracement(110, 100)

	var buf bytes.Buffer
	require.NoError(t, PrintLevels(&buf, 110, 100, fib, indicators.PivotPoints(110, 100, 105, indicators.PivotStandard)))
	out := buf.String()
	assert.Contains(t, out, "61.8%")
	assert.Contains(t, out, "103.82000")
	assert.Contains(t, out, "standard")
	assert.NotContains(t, out, "R4")

	buf.Reset()
	require.NoError(t, PrintLevels(&buf, 110, 100, fib, indicators.PivotPoints(110, 100, 105, indicators.PivotCamarilla)))
	assert.Contains(t, buf.String(), "R4")
	assert.Contains(t, buf.String(), "S4")
}

func TestWritePrometheus(t *testing.T) {
	trades := []market.Trade{
		{ID: "W", Instrument: "BTC_USD", Side: market.Long, EntryPrice: 10, ExitPrice: 12, Quantity: 1, EntryTime: t0, ExitTime: t0.Add(time.Hour)},
	}
	r := NewRun("w.csv", metrics.Compute(trades, 100))
	path := filepath.Join(t.TempDir(), "quant.prom")

	require.NoError(t, WritePrometheus(path, r))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	labels := `{run_id="` + r.RunID + `",source="w.csv"}`
	assert.Contains(t, out, "# TYPE quant_trades gauge")
	assert.Contains(t, out, "# HELP quant_sharpe_ratio Sharpe ratio of per-trade returns scaled by 1/sqrt(252)")
	assert.NotContains(t, out, "Annualized Sharpe")
	assert.Contains(t, out, "quant_trades"+labels+" 1\n")
	assert.Contains(t, out, "quant_net_profit"+labels+" 2\n")
	assert.Contains(t, out, "quant_final_equity"+labels+" 102\n")
	assert.Contains(t, out, "quant_profit_factor"+labels+" +Inf\n")
}

func TestRegisterGaugesTwice(t *testing.T) {
	r := NewRun("w.csv", metrics.Compute(nil, 100))
	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterGauges(reg, r))
	assert.Error(t, RegisterGauges(reg, r))
}
