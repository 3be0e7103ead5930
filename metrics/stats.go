package metrics

import (
	"math"
	"sort"
)

// tradingDays scales a trade-indexed return series to approximate daily
// units.
const tradingDays = 252

// tailFraction is the share of each side used by TailRatio.
const tailFraction = 0.05

// Mean is the arithmetic mean; 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// PopulationStdDev is the standard deviation with an n denominator; 0 for an
// empty slice.
func PopulationStdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := Mean(xs)
	sumSq := 0.0
	for _, x := range xs {
		d := x - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}

// dailyRiskFree converts an annual fractional rate into the percentage
// units of the return series.
func dailyRiskFree(annual float64) float64 {
	return annual / tradingDays * 100
}

// SharpeRatio scales the mean and volatility of returns (percent per trade)
// by 1/sqrt(252) and compares the excess over the daily risk-free rate to
// that volatility. Zero volatility gives 0.
func SharpeRatio(returns []float64, riskFreeRate float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	scale := math.Sqrt(tradingDays)
	dailyMean := Mean(returns) / scale
	dailyVol := PopulationStdDev(returns) / scale
	if dailyVol == 0 {
		return 0
	}
	return (dailyMean - dailyRiskFree(riskFreeRate)) / dailyVol
}

// SortinoRatio uses the Sharpe numerator over the downside deviation
//
//	sqrt(sum(r^2 for r < 0) / len(returns))
//
// The divisor is the count of all returns, not only the negative ones. With
// no negative return the ratio is +Inf.
func SortinoRatio(returns []float64, riskFreeRate float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	var sumSq float64
	negatives := 0
	for _, r := range returns {
		if r < 0 {
			sumSq += r * r
			negatives++
		}
	}
	if negatives == 0 {
		return math.Inf(1)
	}

	dailyMean := Mean(returns) / math.Sqrt(tradingDays)
	downside := math.Sqrt(sumSq / float64(len(returns)))
	return (dailyMean - dailyRiskFree(riskFreeRate)) / downside
}

// TailRatio is |mean of the top 5% of positive returns / mean of the bottom
// 5% of negative returns|, taking at least one return from each side. It is
// +Inf without negative returns and 0 without positive ones.
func TailRatio(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	var pos, neg []float64
	for _, r := range returns {
		switch {
		case r > 0:
			pos = append(pos, r)
		case r < 0:
			neg = append(neg, r)
		}
	}
	if len(neg) == 0 {
		return math.Inf(1)
	}
	if len(pos) == 0 {
		return 0
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(pos)))
	sort.Float64s(neg)

	top := Mean(pos[:tailSize(len(pos))])
	bottom := Mean(neg[:tailSize(len(neg))])
	return math.Abs(top / bottom)
}

func tailSize(n int) int {
	return max(1, int(math.Floor(float64(n)*tailFraction)))
}

// varIndex is the position of the (1-confidence) quantile in n ascending
// returns.
func varIndex(n int, confidence float64) int {
	idx := int(math.Floor((1 - confidence) * float64(n)))
	return min(max(idx, 0), n-1)
}

func sortedCopy(xs []float64) []float64 {
	out := append([]float64(nil), xs...)
	sort.Float64s(out)
	return out
}

// ValueAtRisk is the empirical return at the (1-confidence) quantile of the
// ascending returns; 0 for no returns.
func ValueAtRisk(returns []float64, confidence float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	sorted := sortedCopy(returns)
	return sorted[varIndex(len(sorted), confidence)]
}

// ConditionalValueAtRisk is the mean of every ascending return up to and
// including the ValueAtRisk index; 0 for no returns.
func ConditionalValueAtRisk(returns []float64, confidence float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	sorted := sortedCopy(returns)
	return Mean(sorted[:varIndex(len(sorted), confidence)+1])
}
