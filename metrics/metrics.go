// Package metrics reduces a closed-trade journal into performance and risk
// statistics.
//
// Trades are processed in the order they are supplied. The equity curve,
// drawdown, streaks and the elapsed time used for annualizing all follow
// that order; callers that want chronological semantics must sort the
// journal by exit time first. Nothing here sorts on the caller's behalf.
//
// Edge cases never produce errors. They resolve to documented values that
// callers must inspect: an infinite ProfitFactor when nothing lost, an
// infinite SortinoRatio when no return was negative, zero Calmar and
// recovery factors when there was no drawdown, and a zero-valued aggregate
// for an empty journal.
package metrics

import (
	"math"
	"time"

	"github.com/rustyeddy/quant/market"
	"github.com/rustyeddy/quant/risk"
)

// Options tunes the ratio and tail-risk calculations.
type Options struct {
	// RiskFreeRate is the annual risk-free rate as a fraction (0.02 = 2%).
	RiskFreeRate float64 `json:"risk_free_rate" yaml:"risk_free_rate"`

	// Confidence is the VaR/CVaR confidence level, e.g. 0.95.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// DefaultOptions returns a 2% risk-free rate and 95% confidence.
func DefaultOptions() Options {
	return Options{
		RiskFreeRate: 0.02,
		Confidence:   0.95,
	}
}

// TradeResult is a trade with its derived profit and loss.
type TradeResult struct {
	market.Trade `yaml:",inline"`

	ProfitLoss        float64 `json:"profit_loss" yaml:"profit_loss"`
	ProfitLossPercent float64 `json:"profit_loss_percent" yaml:"profit_loss_percent"`
}

// PerformanceMetrics is the aggregate computed for one journal.
type PerformanceMetrics struct {
	TotalTrades     int     `json:"total_trades" yaml:"total_trades"`
	WinningTrades   int     `json:"winning_trades" yaml:"winning_trades"`
	LosingTrades    int     `json:"losing_trades" yaml:"losing_trades"`
	BreakevenTrades int     `json:"breakeven_trades" yaml:"breakeven_trades"`
	WinRate         float64 `json:"win_rate" yaml:"win_rate"`

	GrossProfit     float64 `json:"gross_profit" yaml:"gross_profit"`
	GrossLoss       float64 `json:"gross_loss" yaml:"gross_loss"`
	TotalProfitLoss float64 `json:"total_profit_loss" yaml:"total_profit_loss"`
	ProfitFactor    float64 `json:"profit_factor" yaml:"profit_factor"`

	AverageWin   float64 `json:"average_win" yaml:"average_win"`
	AverageLoss  float64 `json:"average_loss" yaml:"average_loss"`
	AverageTrade float64 `json:"average_trade" yaml:"average_trade"`
	LargestWin   float64 `json:"largest_win" yaml:"largest_win"`
	LargestLoss  float64 `json:"largest_loss" yaml:"largest_loss"`
	PayoffRatio  float64 `json:"payoff_ratio" yaml:"payoff_ratio"`
	Expectancy   float64 `json:"expectancy" yaml:"expectancy"`
	Kelly        float64 `json:"kelly" yaml:"kelly"`
	HalfKelly    float64 `json:"half_kelly" yaml:"half_kelly"`

	InitialCapital     float64 `json:"initial_capital" yaml:"initial_capital"`
	FinalEquity        float64 `json:"final_equity" yaml:"final_equity"`
	TotalReturnPercent float64 `json:"total_return_percent" yaml:"total_return_percent"`
	AnnualizedReturn   float64 `json:"annualized_return" yaml:"annualized_return"`

	MaxDrawdown        float64 `json:"max_drawdown" yaml:"max_drawdown"`
	MaxDrawdownPercent float64 `json:"max_drawdown_percent" yaml:"max_drawdown_percent"`

	Volatility     float64 `json:"volatility" yaml:"volatility"`
	SharpeRatio    float64 `json:"sharpe_ratio" yaml:"sharpe_ratio"`
	SortinoRatio   float64 `json:"sortino_ratio" yaml:"sortino_ratio"`
	CalmarRatio    float64 `json:"calmar_ratio" yaml:"calmar_ratio"`
	UlcerIndex     float64 `json:"ulcer_index" yaml:"ulcer_index"`
	RecoveryFactor float64 `json:"recovery_factor" yaml:"recovery_factor"`
	KRatio         float64 `json:"k_ratio" yaml:"k_ratio"`
	TailRatio      float64 `json:"tail_ratio" yaml:"tail_ratio"`

	Confidence float64 `json:"confidence" yaml:"confidence"`
	VaR        float64 `json:"var" yaml:"var"`
	CVaR       float64 `json:"cvar" yaml:"cvar"`
	VaR99      float64 `json:"var_99" yaml:"var_99"`
	CVaR99     float64 `json:"cvar_99" yaml:"cvar_99"`

	MaxConsecutiveWins   int           `json:"max_consecutive_wins" yaml:"max_consecutive_wins"`
	MaxConsecutiveLosses int           `json:"max_consecutive_losses" yaml:"max_consecutive_losses"`
	AverageHoldingPeriod time.Duration `json:"average_holding_period" yaml:"average_holding_period"`

	EquityCurve []float64     `json:"equity_curve" yaml:"equity_curve"`
	Returns     []float64     `json:"returns" yaml:"returns"`
	Trades      []TradeResult `json:"trades" yaml:"trades"`
}

// Compute runs ComputeWithOptions with DefaultOptions.
func Compute(trades []market.Trade, initialCapital float64) PerformanceMetrics {
	return ComputeWithOptions(trades, initialCapital, DefaultOptions())
}

// ComputeWithOptions derives every statistic of PerformanceMetrics from
// trades, taken in the order given, starting from initialCapital.
func ComputeWithOptions(trades []market.Trade, initialCapital float64, opts Options) PerformanceMetrics {
	m := PerformanceMetrics{
		InitialCapital: initialCapital,
		FinalEquity:    initialCapital,
		Confidence:     opts.Confidence,
		EquityCurve:    []float64{initialCapital},
	}
	n := len(trades)
	if n == 0 {
		return m
	}

	results := make([]TradeResult, n)
	pls := make([]float64, n)
	var (
		sumWin, sumLoss float64
		held            time.Duration
	)
	for i, t := range trades {
		pl := t.ProfitLoss()
		pls[i] = pl
		results[i] = TradeResult{Trade: t, ProfitLoss: pl, ProfitLossPercent: t.ProfitLossPercent()}
		held += t.Duration()

		switch {
		case pl > 0:
			m.WinningTrades++
			sumWin += pl
			if pl > m.LargestWin {
				m.LargestWin = pl
			}
		case pl < 0:
			m.LosingTrades++
			sumLoss += pl
			if pl < m.LargestLoss {
				m.LargestLoss = pl
			}
		default:
			m.BreakevenTrades++
		}
		m.TotalProfitLoss += pl
	}

	m.TotalTrades = n
	m.Trades = results
	m.WinRate = float64(m.WinningTrades) / float64(n)
	m.AverageTrade = m.TotalProfitLoss / float64(n)
	m.AverageHoldingPeriod = held / time.Duration(n)

	m.GrossProfit = sumWin
	m.GrossLoss = math.Abs(sumLoss)
	if m.GrossLoss == 0 {
		m.ProfitFactor = math.Inf(1)
	} else {
		m.ProfitFactor = m.GrossProfit / m.GrossLoss
	}

	if m.WinningTrades > 0 {
		m.AverageWin = sumWin / float64(m.WinningTrades)
	}
	if m.LosingTrades > 0 {
		m.AverageLoss = sumLoss / float64(m.LosingTrades)
	}
	m.Expectancy = m.WinRate*m.AverageWin + (1-m.WinRate)*m.AverageLoss
	m.PayoffRatio = risk.PayoffRatio(m.AverageWin, m.AverageLoss)
	m.Kelly = risk.Kelly(m.WinRate, m.PayoffRatio)
	m.HalfKelly = risk.HalfKelly(m.WinRate, m.PayoffRatio)
	m.MaxConsecutiveWins, m.MaxConsecutiveLosses = Streaks(pls)

	m.EquityCurve = EquityCurve(initialCapital, pls)
	m.FinalEquity = m.EquityCurve[n]
	m.TotalReturnPercent = m.TotalProfitLoss / initialCapital * 100

	dd := MaxDrawdown(m.EquityCurve)
	m.MaxDrawdown = dd.Amount
	m.MaxDrawdownPercent = dd.Percent

	m.Returns = TradeReturns(pls, m.EquityCurve)
	span := trades[n-1].ExitTime.Sub(trades[0].EntryTime)
	m.AnnualizedReturn = AnnualizedReturn(m.TotalReturnPercent, span)

	m.Volatility = PopulationStdDev(m.Returns)
	m.SharpeRatio = SharpeRatio(m.Returns, opts.RiskFreeRate)
	m.SortinoRatio = SortinoRatio(m.Returns, opts.RiskFreeRate)
	m.UlcerIndex = UlcerIndex(m.EquityCurve)
	m.KRatio = KRatio(m.EquityCurve)
	m.TailRatio = TailRatio(m.Returns)

	if m.MaxDrawdown != 0 {
		m.CalmarRatio = m.AnnualizedReturn / m.MaxDrawdownPercent
		m.RecoveryFactor = m.TotalProfitLoss / m.MaxDrawdown
	}

	m.VaR = ValueAtRisk(m.Returns, opts.Confidence)
	m.CVaR = ConditionalValueAtRisk(m.Returns, opts.Confidence)
	m.VaR99 = ValueAtRisk(m.Returns, 0.99)
	m.CVaR99 = ConditionalValueAtRisk(m.Returns, 0.99)

	return m
}
