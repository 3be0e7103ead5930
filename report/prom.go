package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

type stat struct {
	name string
	help string
	v    float64
}

func runStats(r Run) []stat {
	m := r.Metrics
	return []stat{
		{"trades", "Closed trades in the journal", float64(m.TotalTrades)},
		{"win_rate", "Winning trades as a fraction of all trades", m.WinRate},
		{"net_profit", "Sum of trade profit and loss", m.TotalProfitLoss},
		{"final_equity", "Equity after the last trade", m.FinalEquity},
		{"return_percent", "Total return on initial capital in percent", m.TotalReturnPercent},
		{"annualized_return", "Compound annual growth rate", m.AnnualizedReturn},
		{"max_drawdown_percent", "Largest peak-to-trough decline in percent", m.MaxDrawdownPercent},
		{"profit_factor", "Gross profit over gross loss", m.ProfitFactor},
		{"expectancy", "Expected profit per trade", m.Expectancy},
		{"sharpe_ratio", "Sharpe ratio of per-trade returns scaled by 1/sqrt(252) against the daily risk-free rate, not annualized", m.SharpeRatio},
		{"sortino_ratio", "Sortino ratio of per-trade returns scaled by 1/sqrt(252) against the daily risk-free rate, not annualized", m.SortinoRatio},
		{"calmar_ratio", "Annualized return over max drawdown", m.CalmarRatio},
		{"ulcer_index", "Root mean square drawdown in percent", m.UlcerIndex},
		{"k_ratio", "Slope of the equity curve over its standard error", m.KRatio},
		{"tail_ratio", "Right tail over left tail of returns", m.TailRatio},
		{"value_at_risk", "Historical VaR at the configured confidence", m.VaR},
		{"conditional_value_at_risk", "Historical CVaR at the configured confidence", m.CVaR},
	}
}

// RegisterGauges registers one quant_* gauge per headline statistic of r,
// labelled with the run id and journal source.
func RegisterGauges(reg prometheus.Registerer, r Run) error {
	labels := prometheus.Labels{"run_id": r.RunID, "source": r.Source}
	for _, s := range runStats(r) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "quant",
			Name:        s.name,
			Help:        s.help,
			ConstLabels: labels,
		})
		g.Set(s.v)
		if err := reg.Register(g); err != nil {
			return fmt.Errorf("register %s: %w", s.name, err)
		}
	}
	return nil
}

// WritePrometheus writes r in the Prometheus text format for the node
// exporter textfile collector. The file is replaced atomically.
func WritePrometheus(path string, r Run) error {
	reg := prometheus.NewRegistry()
	if err := RegisterGauges(reg, r); err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
