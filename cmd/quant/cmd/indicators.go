package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rustyeddy/quant/indicators"
	"github.com/rustyeddy/quant/market"
	"github.com/rustyeddy/quant/report"
	"github.com/spf13/cobra"
)

var indicatorsCmd = &cobra.Command{
	Use:   "indicators",
	Short: "Compute indicators over a candle CSV",
	Long: `Load OHLCV candles and print the most recent rows of every indicator,
followed by Fibonacci and pivot levels for the loaded range.

The CSV columns are timestamp,open,high,low,close,volume where timestamp is
unix milliseconds or RFC3339. Periods default to the config file values.

Example:
  quant indicators --candles eurusd-h1.csv --rsi 14 --macd 12,26,9 --sma 50 --ema 20`,
	Args: cobra.NoArgs,
	RunE: runIndicators,
}

var (
	indCandles string
	indRSI     int
	indMACD    string
	indBB      int
	indBBStd   float64
	indStoch   string
	indATR     int
	indADX     int
	indSMA     int
	indEMA     int
	indRows    int
	indPivot   string
)

func init() {
	rootCmd.AddCommand(indicatorsCmd)

	f := indicatorsCmd.Flags()
	f.StringVarP(&indCandles, "candles", "c", "", "candle CSV file (required)")
	f.IntVar(&indRSI, "rsi", indicators.DefaultRSIPeriod, "RSI period")
	f.StringVar(&indMACD, "macd", "12,26,9", "MACD fast,slow,signal")
	f.IntVar(&indBB, "bb", indicators.DefaultBollingerPeriod, "Bollinger period")
	f.Float64Var(&indBBStd, "bb-std", indicators.DefaultBollingerStdDev, "Bollinger width in standard deviations")
	f.StringVar(&indStoch, "stoch", "14,3,3", "Stochastic k,d,slowing")
	f.IntVar(&indATR, "atr", indicators.DefaultATRPeriod, "ATR period")
	f.IntVar(&indADX, "adx", indicators.DefaultADXPeriod, "ADX period")
	f.IntVar(&indSMA, "sma", 0, "SMA period (0 to skip)")
	f.IntVar(&indEMA, "ema", 0, "EMA period (0 to skip)")
	f.IntVar(&indRows, "rows", 20, "rows to print (0 for all)")
	f.StringVar(&indPivot, "pivot", "standard", "pivot type: standard|fibonacci|woodie|camarilla")
	indicatorsCmd.MarkFlagRequired("candles")
}

func runIndicators(cmd *cobra.Command, args []string) error {
	if err := applyIndicatorFlags(cmd); err != nil {
		return err
	}
	ic := cfg.Indicators

	candles, err := market.LoadCandlesCSV(indCandles)
	if err != nil {
		return fmt.Errorf("load candles: %w", err)
	}
	tf := "?"
	if sec, ok := market.InferTimeframe(candles); ok {
		if name, err := market.TimeframeString(sec); err == nil {
			tf = name
		}
	}
	slog.Info("candles loaded", "file", indCandles, "count", len(candles), "timeframe", tf)

	closes := market.Closes(candles)
	var series []report.Series
	add := func(name string, values []float64) {
		if len(values) == 0 {
			slog.Warn("not enough candles", "indicator", name, "candles", len(candles))
			return
		}
		series = append(series, report.Series{Name: name, Values: values})
	}

	sma := indicators.SMA(closes, ic.SMAPeriod)
	ema := indicators.EMA(closes, ic.EMAPeriod)
	if ic.SMAPeriod > 0 {
		add(fmt.Sprintf("sma%d", ic.SMAPeriod), sma)
	}
	if ic.EMAPeriod > 0 {
		add(fmt.Sprintf("ema%d", ic.EMAPeriod), ema)
	}

	rsi := indicators.RSI(closes, ic.RSIPeriod)
	add("rsi", indicators.Values(rsi))

	macd := indicators.MACD(closes, ic.MACDFast, ic.MACDSlow, ic.MACDSignal)
	add("macd", macd.MACD)
	add("signal", macd.Signal)
	add("hist", macd.Histogram)

	bb := indicators.BollingerBands(closes, ic.BollingerPeriod, ic.BollingerStdDev)
	add("bb_upper", bb.Upper)
	add("bb_mid", bb.Middle)
	add("bb_lower", bb.Lower)
	add("%b", bb.PercentB)

	stoch := indicators.Stochastic(candles, ic.StochK, ic.StochD, ic.StochSlowing)
	add("%k", stoch.K)
	add("%d", stoch.D)

	add("atr", indicators.ATR(candles, ic.ATRPeriod))
	adx := indicators.ADX(candles, ic.ADXPeriod)
	add("adx", adx.ADX)
	add("+di", adx.PlusDI)
	add("-di", adx.MinusDI)
	add("vwap", indicators.VWAP(candles))

	out := cmd.OutOrStdout()
	if err := report.IndicatorTable(out, candles, series, cfg.Report.Rows); err != nil {
		return err
	}

	fmt.Fprintln(out)
	if n := len(rsi); n > 0 {
		last := rsi[n-1]
		fmt.Fprintf(out, "RSI %.2f: %s\n", last.Value, last.Signal)
	}
	if n := stoch.Len(); n > 0 {
		fmt.Fprintf(out, "Stochastic %%K %.2f overbought=%t oversold=%t\n", stoch.K[n-1], stoch.Overbought[n-1], stoch.Oversold[n-1])
	}
	if len(sma) > 0 && len(ema) > 0 {
		fast, slow := indicators.AlignTail(ema, sma)
		if at, sig, ok := lastCross(indicators.CrossSignal(fast, slow)); ok {
			ts := candles[len(candles)-len(fast)+at].Time()
			fmt.Fprintf(out, "EMA/SMA cross: %s at %s\n", sig, ts.Format("2006-01-02 15:04"))
		}
	}

	high, low, ok := market.Range(candles)
	if !ok {
		return nil
	}
	kind, _ := indicators.ParsePivotType(ic.PivotType)
	pivots := indicators.PivotPoints(high, low, closes[len(closes)-1], kind)

	fmt.Fprintln(out)
	return report.PrintLevels(out, high, low, indicators.FibonacciRetracement(high, low), pivots)
}

// applyIndicatorFlags overrides config periods with flags set on the
// command line.
func applyIndicatorFlags(cmd *cobra.Command) error {
	ic := &cfg.Indicators
	f := cmd.Flags()

	if f.Changed("rsi") {
		ic.RSIPeriod = indRSI
	}
	if f.Changed("macd") {
		v, err := parseInts(indMACD, 3)
		if err != nil {
			return fmt.Errorf("--macd: %w", err)
		}
		ic.MACDFast, ic.MACDSlow, ic.MACDSignal = v[0], v[1], v[2]
	}
	if f.Changed("bb") {
		ic.BollingerPeriod = indBB
	}
	if f.Changed("bb-std") {
		ic.BollingerStdDev = indBBStd
	}
	if f.Changed("stoch") {
		v, err := parseInts(indStoch, 3)
		if err != nil {
			return fmt.Errorf("--stoch: %w", err)
		}
		ic.StochK, ic.StochD, ic.StochSlowing = v[0], v[1], v[2]
	}
	if f.Changed("atr") {
		ic.ATRPeriod = indATR
	}
	if f.Changed("adx") {
		ic.ADXPeriod = indADX
	}
	if f.Changed("sma") {
		ic.SMAPeriod = indSMA
	}
	if f.Changed("ema") {
		ic.EMAPeriod = indEMA
	}
	if f.Changed("pivot") {
		ic.PivotType = indPivot
	}
	if f.Changed("rows") {
		cfg.Report.Rows = indRows
	}
	return cfg.Validate()
}

// parseInts splits a comma list of exactly n integers.
func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated values, got %q", n, s)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// lastCross returns the index and direction of the most recent crossover.
func lastCross(signals []indicators.Signal) (int, indicators.Signal, bool) {
	for i := len(signals) - 1; i >= 0; i-- {
		if signals[i] != indicators.Neutral {
			return i, signals[i], true
		}
	}
	return 0, indicators.Neutral, false
}
