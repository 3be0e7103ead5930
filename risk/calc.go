// Package risk holds position-sizing arithmetic derived from trade
// statistics: payoff ratio, the Kelly criterion and stop-based sizing.
package risk

import "math"

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// PayoffRatio is the average win over the magnitude of the average loss.
// It is 0 when there is no average loss to compare against.
func PayoffRatio(avgWin, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 0
	}
	return avgWin / abs(avgLoss)
}

// Kelly returns the Kelly fraction winRate - (1-winRate)/payoff. A negative
// result means the edge is negative and nothing should be staked. It is 0
// when payoff is not positive.
func Kelly(winRate, payoff float64) float64 {
	if payoff <= 0 {
		return 0
	}
	return winRate - (1-winRate)/payoff
}

// HalfKelly is Kelly scaled by one half, floored at zero.
func HalfKelly(winRate, payoff float64) float64 {
	return math.Max(0, Kelly(winRate, payoff)/2)
}

// RR is the reward-to-risk multiple of a planned trade.
func RR(entry, stop, takeProfit float64) float64 {
	risk := abs(entry - stop)
	reward := abs(takeProfit - entry)
	if risk == 0 {
		return 0
	}
	return reward / risk
}

// RiskPct is plannedRisk as a fraction of equity.
func RiskPct(plannedRisk, equity float64) float64 {
	if equity <= 0 {
		return math.Inf(1)
	}
	return plannedRisk / equity
}
