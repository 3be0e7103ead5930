package report

import (
	"fmt"
	"io"
	"text/template"
	"time"
)

var orgFuncs = template.FuncMap{
	"money": money,
	"pct":   pct,
	"ratio": ratio,
	"mul100": func(x float64) float64 {
		return x * 100.0
	},
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

var orgTemplate = template.Must(template.New("run").Funcs(orgFuncs).Parse(OrgTemplate))

// WriteOrg renders r as an Org-mode heading with a PROPERTIES drawer and
// summary tables.
func WriteOrg(w io.Writer, r Run) error {
	if err := orgTemplate.Execute(w, r); err != nil {
		return fmt.Errorf("render org: %w", err)
	}
	return nil
}

const OrgTemplate = `* RUN: {{if .Source}}{{.Source}}{{else}}(source?){{end}}
:PROPERTIES:
:RUN_ID:      {{if .RunID}}{{.RunID}}{{else}}(run-id?){{end}}
:SOURCE:      {{.Source}}
:START_BAL:   {{money .Metrics.InitialCapital}}
:END_BAL:     {{money .Metrics.FinalEquity}}
:NET_PL:      {{money .Metrics.TotalProfitLoss}}
:RETURN_PCT:  {{money .Metrics.TotalReturnPercent}}
:MAX_DD_PCT:  {{money .Metrics.MaxDrawdownPercent}}
:TRADES:      {{.Metrics.TotalTrades}}
:WINS:        {{.Metrics.WinningTrades}}
:LOSSES:      {{.Metrics.LosingTrades}}
:WIN_RATE:    {{money (mul100 .Metrics.WinRate)}}
:PROFIT_FAC:  {{ratio .Metrics.ProfitFactor}}
:SHARPE:      {{ratio .Metrics.SharpeRatio}}
:SORTINO:     {{ratio .Metrics.SortinoRatio}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:          *{{money .Metrics.TotalProfitLoss}}*
- Return:           *{{pct .Metrics.TotalReturnPercent}}*
- Annualized:       *{{pct .Metrics.AnnualizedReturn}}*
- Max Drawdown:     *{{money .Metrics.MaxDrawdown}} ({{pct .Metrics.MaxDrawdownPercent}})*
- Win Rate:         *{{pct (mul100 .Metrics.WinRate)}}*
- Profit Factor:    *{{ratio .Metrics.ProfitFactor}}*
- Expectancy:       *{{money .Metrics.Expectancy}}*

** Risk
| Measure       | Value |
|---------------+-------|
| Volatility    | {{pct .Metrics.Volatility}} |
| Sharpe        | {{ratio .Metrics.SharpeRatio}} |
| Sortino       | {{ratio .Metrics.SortinoRatio}} |
| Calmar        | {{ratio .Metrics.CalmarRatio}} |
| Ulcer Index   | {{ratio .Metrics.UlcerIndex}} |
| Recovery      | {{ratio .Metrics.RecoveryFactor}} |
| K-Ratio       | {{ratio .Metrics.KRatio}} |
| Tail Ratio    | {{ratio .Metrics.TailRatio}} |
| VaR           | {{pct .Metrics.VaR}} |
| CVaR          | {{pct .Metrics.CVaR}} |
| VaR 99%       | {{pct .Metrics.VaR99}} |
| CVaR 99%      | {{pct .Metrics.CVaR99}} |

** Trade Distribution
| Outcome   | Count |
|-----------+-------|
| Wins      | {{.Metrics.WinningTrades}} |
| Losses    | {{.Metrics.LosingTrades}} |
| Breakeven | {{.Metrics.BreakevenTrades}} |
| Total     | {{.Metrics.TotalTrades}} |

{{- if .Metrics.Trades }}

** Trades
| ID | Instrument | Side | Exit | P/L | P/L % |
|----+------------+------+------+-----+-------|
{{- range .Metrics.Trades }}
| {{.ID}} | {{.Instrument}} | {{.Side}} | {{.ExitTime.Format "2006-01-02 15:04"}} | {{money .ProfitLoss}} | {{pct .ProfitLossPercent}} |
{{- end }}
{{- end }}
`
