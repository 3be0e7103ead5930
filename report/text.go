package report

import (
	"fmt"
	"io"
	"time"
)

const (
	rule = "=================================================="
	line = "--------------------------------------------------"
)

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, line)
}

// Print writes the fixed-layout text report for r.
func Print(w io.Writer, r Run) {
	m := r.Metrics

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, " Performance Report")
	fmt.Fprintln(w, rule)

	fmt.Fprintf(w, "Run ID:         %s\n", r.RunID)
	fmt.Fprintf(w, "Created:        %s\n", r.Created.Format(time.RFC3339))
	fmt.Fprintf(w, "Source:         %s\n", r.Source)

	if len(m.Trades) > 0 {
		section(w, "Period")
		fmt.Fprintf(w, "Start:          %s\n", m.Trades[0].EntryTime.UTC().Format(time.RFC3339))
		fmt.Fprintf(w, "End:            %s\n", m.Trades[len(m.Trades)-1].ExitTime.UTC().Format(time.RFC3339))
		fmt.Fprintf(w, "Avg Holding:    %s\n", m.AverageHoldingPeriod)
	}

	section(w, "Trade Statistics")
	fmt.Fprintf(w, "Trades:         %d\n", m.TotalTrades)
	fmt.Fprintf(w, "Wins:           %d\n", m.WinningTrades)
	fmt.Fprintf(w, "Losses:         %d\n", m.LosingTrades)
	fmt.Fprintf(w, "Breakeven:      %d\n", m.BreakevenTrades)
	fmt.Fprintf(w, "Win Rate:       %s\n", pct(m.WinRate*100))
	fmt.Fprintf(w, "Avg Win:        %s\n", money(m.AverageWin))
	fmt.Fprintf(w, "Avg Loss:       %s\n", money(m.AverageLoss))
	fmt.Fprintf(w, "Largest Win:    %s\n", money(m.LargestWin))
	fmt.Fprintf(w, "Largest Loss:   %s\n", money(m.LargestLoss))
	fmt.Fprintf(w, "Payoff Ratio:   %s\n", ratio(m.PayoffRatio))
	fmt.Fprintf(w, "Expectancy:     %s\n", money(m.Expectancy))
	fmt.Fprintf(w, "Kelly:          %s\n", pct(m.Kelly*100))
	fmt.Fprintf(w, "Half Kelly:     %s\n", pct(m.HalfKelly*100))
	fmt.Fprintf(w, "Max Win Run:    %d\n", m.MaxConsecutiveWins)
	fmt.Fprintf(w, "Max Loss Run:   %d\n", m.MaxConsecutiveLosses)

	section(w, "Account Performance")
	fmt.Fprintf(w, "Start Balance:  %s\n", money(m.InitialCapital))
	fmt.Fprintf(w, "End Balance:    %s\n", money(m.FinalEquity))
	fmt.Fprintf(w, "Net P/L:        %s\n", money(m.TotalProfitLoss))
	fmt.Fprintf(w, "Gross Profit:   %s\n", money(m.GrossProfit))
	fmt.Fprintf(w, "Gross Loss:     %s\n", money(m.GrossLoss))
	fmt.Fprintf(w, "Profit Factor:  %s\n", ratio(m.ProfitFactor))
	fmt.Fprintf(w, "Return:         %s\n", pct(m.TotalReturnPercent))
	fmt.Fprintf(w, "Annualized:     %s\n", pct(m.AnnualizedReturn))
	fmt.Fprintf(w, "Max Drawdown:   %s (%s)\n", money(m.MaxDrawdown), pct(m.MaxDrawdownPercent))

	section(w, "Risk-Adjusted")
	fmt.Fprintf(w, "Volatility:     %s\n", pct(m.Volatility))
	fmt.Fprintf(w, "Sharpe:         %s\n", ratio(m.SharpeRatio))
	fmt.Fprintf(w, "Sortino:        %s\n", ratio(m.SortinoRatio))
	fmt.Fprintf(w, "Calmar:         %s\n", ratio(m.CalmarRatio))
	fmt.Fprintf(w, "Ulcer Index:    %s\n", ratio(m.UlcerIndex))
	fmt.Fprintf(w, "Recovery:       %s\n", ratio(m.RecoveryFactor))
	fmt.Fprintf(w, "K-Ratio:        %s\n", ratio(m.KRatio))
	fmt.Fprintf(w, "Tail Ratio:     %s\n", ratio(m.TailRatio))

	section(w, "Tail Risk")
	fmt.Fprintf(w, "VaR %s:      %s\n", confidenceLabel(m.Confidence), pct(m.VaR))
	fmt.Fprintf(w, "CVaR %s:     %s\n", confidenceLabel(m.Confidence), pct(m.CVaR))
	fmt.Fprintf(w, "VaR 99%%:        %s\n", pct(m.VaR99))
	fmt.Fprintf(w, "CVaR 99%%:       %s\n", pct(m.CVaR99))

	fmt.Fprintln(w)
}

func confidenceLabel(c float64) string {
	return fixed(c*100, 0) + "%"
}
