package metrics

import (
	"math"
	"time"
)

// msPerYear is the length of a Julian year in milliseconds.
const msPerYear = 365.25 * 24 * 3600 * 1000

// EquityCurve returns [initial, initial+pl[0], initial+pl[0]+pl[1], ...].
func EquityCurve(initial float64, pls []float64) []float64 {
	curve := make([]float64, len(pls)+1)
	curve[0] = initial
	for i, pl := range pls {
		curve[i+1] = curve[i] + pl
	}
	return curve
}

// Drawdown describes the deepest peak-to-trough decline of an equity curve.
type Drawdown struct {
	Amount  float64 // runningPeak - equity at the trough
	Percent float64 // Amount relative to curve[0], in percent
	Peak    int     // index of the peak preceding the trough
	Trough  int     // index of the trough
}

// MaxDrawdown scans curve with a running peak seeded by curve[0].
func MaxDrawdown(curve []float64) Drawdown {
	var dd Drawdown
	if len(curve) == 0 {
		return dd
	}

	peak, peakIdx := curve[0], 0
	for i, eq := range curve {
		if eq > peak {
			peak, peakIdx = eq, i
		}
		if d := peak - eq; d > dd.Amount {
			dd.Amount = d
			dd.Peak = peakIdx
			dd.Trough = i
		}
	}
	dd.Percent = dd.Amount / curve[0] * 100
	return dd
}

// TradeReturns returns pl[i] as a percentage of the equity held before
// trade i, curve[i].
func TradeReturns(pls, curve []float64) []float64 {
	if len(pls) == 0 {
		return nil
	}
	out := make([]float64, len(pls))
	for i, pl := range pls {
		out[i] = pl / curve[i] * 100
	}
	return out
}

// AnnualizedReturn converts a total return percentage over span into a
// compound annual rate. A non-positive span returns totalReturnPct as is.
func AnnualizedReturn(totalReturnPct float64, span time.Duration) float64 {
	years := float64(span.Milliseconds()) / msPerYear
	if years <= 0 {
		return totalReturnPct
	}
	return (math.Pow(1+totalReturnPct/100, 1/years) - 1) * 100
}

// UlcerIndex is the root mean square of the percentage drawdown from the
// running peak, over every point after the seed capital.
func UlcerIndex(curve []float64) float64 {
	if len(curve) < 2 {
		return 0
	}

	peak := curve[0]
	sumSq := 0.0
	for _, eq := range curve[1:] {
		if eq > peak {
			peak = eq
		}
		dd := (peak - eq) / peak * 100
		sumSq += dd * dd
	}
	return math.Sqrt(sumSq / float64(len(curve)-1))
}

// KRatio is the least-squares slope of equity against its index divided by
// the slope's standard error. Curves with fewer than three points, or that
// fit a line to within float rounding of their level, return 0.
func KRatio(curve []float64) float64 {
	n := len(curve)
	if n < 3 {
		return 0
	}

	xMean := float64(n-1) / 2
	yMean := Mean(curve)

	var sxx, sxy float64
	for i, y := range curve {
		dx := float64(i) - xMean
		sxx += dx * dx
		sxy += dx * (y - yMean)
	}
	slope := sxy / sxx
	intercept := yMean - slope*xMean

	var ssr, level float64
	for i, y := range curve {
		r := y - (intercept + slope*float64(i))
		ssr += r * r
		level = math.Max(level, math.Abs(y))
	}
	if math.Sqrt(ssr/float64(n)) <= exactFitTol*level {
		return 0
	}
	stdErr := math.Sqrt(ssr / float64(n-2) / sxx)
	return slope / stdErr
}

// exactFitTol is the residual RMS, relative to the largest equity value,
// below which a curve counts as a straight line.
const exactFitTol = 1e-12

// Streaks returns the longest runs of winning (pl > 0) and losing (pl < 0)
// trades. A breakeven trade ends both runs.
func Streaks(pls []float64) (wins, losses int) {
	var curW, curL int
	for _, pl := range pls {
		switch {
		case pl > 0:
			curW++
			curL = 0
		case pl < 0:
			curL++
			curW = 0
		default:
			curW, curL = 0, 0
		}
		wins = max(wins, curW)
		losses = max(losses, curL)
	}
	return wins, losses
}
