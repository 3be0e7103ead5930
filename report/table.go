package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/quant/indicators"
	"github.com/rustyeddy/quant/market"
)

// Series is one named indicator column. Values align with the tail of the
// candle slice: the last value belongs to the last candle.
type Series struct {
	Name   string
	Values []float64
}

// IndicatorTable prints the last rows candles with one column per series.
// Candles before a series starts show "-". rows <= 0 prints every candle.
func IndicatorTable(w io.Writer, candles []market.Candle, series []Series, rows int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := []string{"time", "close"}
	for _, s := range series {
		header = append(header, s.Name)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	n := len(candles)
	start := 0
	if rows > 0 && rows < n {
		start = n - rows
	}
	for i := start; i < n; i++ {
		c := candles[i]
		cells := []string{c.Time().UTC().Format(time.DateTime), fixed(c.Close, 5)}
		for _, s := range series {
			j := i - (n - len(s.Values))
			if j < 0 {
				cells = append(cells, "-")
				continue
			}
			cells = append(cells, fixed(s.Values[j], 4))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}

// PrintLevels prints the Fibonacci retracement of [low, high] and the pivot
// levels derived from it.
func PrintLevels(w io.Writer, high, low float64, fib map[string]float64, p indicators.PivotLevels) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Fibonacci\thigh %s\tlow %s\n", fixed(high, 5), fixed(low, 5))
	for _, lvl := range indicators.FibonacciRatios {
		fmt.Fprintf(tw, "  %s\t%s\n", lvl.Name, fixed(fib[lvl.Name], 5))
	}

	fmt.Fprintf(tw, "Pivots\t%s\n", p.Type)
	levels := []struct {
		name string
		v    float64
	}{
		{"R4", p.R4}, {"R3", p.R3}, {"R2", p.R2}, {"R1", p.R1},
		{"P", p.Pivot},
		{"S1", p.S1}, {"S2", p.S2}, {"S3", p.S3}, {"S4", p.S4},
	}
	for _, l := range levels {
		if (l.name == "R4" || l.name == "S4") && p.Type != indicators.PivotCamarilla {
			continue
		}
		fmt.Fprintf(tw, "  %s\t%s\n", l.name, fixed(l.v, 5))
	}
	return tw.Flush()
}
