package indicators

import (
	"math"

	"github.com/rustyeddy/quant/market"
)

// ADXResult holds Wilder's directional indicators. PlusDI and MinusDI have
// len(candles)-period entries; ADX has period-1 fewer, aligned to the tail.
type ADXResult struct {
	ADX     []float64 `json:"adx" yaml:"adx"`
	PlusDI  []float64 `json:"plus_di" yaml:"plus_di"`
	MinusDI []float64 `json:"minus_di" yaml:"minus_di"`
}

// Len is the number of ADX values.
func (a ADXResult) Len() int { return len(a.ADX) }

// ADX computes Wilder's Average Directional Index, a trend-strength reading
// in [0,100] that ignores trend direction.
//
// True range and directional movement are seeded with their mean over the
// first period bars and then Wilder-smoothed. ADX is seeded with the mean of
// the first period DX values. At least 2*period candles are required.
func ADX(candles []market.Candle, period int) ADXResult {
	if period <= 0 || len(candles) < 2*period {
		return ADXResult{}
	}

	n := len(candles) - 1
	tr := make([]float64, n)
	pdm := make([]float64, n)
	mdm := make([]float64, n)
	for i := 1; i < len(candles); i++ {
		cur, prev := candles[i], candles[i-1]
		tr[i-1] = trueRange(cur, prev)

		up := cur.High - prev.High
		down := prev.Low - cur.Low
		if up > down && up > 0 {
			pdm[i-1] = up
		}
		if down > up && down > 0 {
			mdm[i-1] = down
		}
	}

	p := float64(period)
	sTR := windowSum(tr[:period]) / p
	sPDM := windowSum(pdm[:period]) / p
	sMDM := windowSum(mdm[:period]) / p

	out := ADXResult{
		PlusDI:  make([]float64, 0, n-period+1),
		MinusDI: make([]float64, 0, n-period+1),
	}
	dx := make([]float64, 0, n-period+1)
	for i := period - 1; i < n; i++ {
		if i >= period {
			sTR = (sTR*(p-1) + tr[i]) / p
			sPDM = (sPDM*(p-1) + pdm[i]) / p
			sMDM = (sMDM*(p-1) + mdm[i]) / p
		}

		var pdi, mdi float64
		if sTR != 0 {
			pdi = 100 * sPDM / sTR
			mdi = 100 * sMDM / sTR
		}
		out.PlusDI = append(out.PlusDI, pdi)
		out.MinusDI = append(out.MinusDI, mdi)

		var v float64
		if den := pdi + mdi; den != 0 {
			v = 100 * math.Abs(pdi-mdi) / den
		}
		dx = append(dx, v)
	}

	adx := windowSum(dx[:period]) / p
	out.ADX = make([]float64, 0, len(dx)-period+1)
	out.ADX = append(out.ADX, adx)
	for _, v := range dx[period:] {
		adx = (adx*(p-1) + v) / p
		out.ADX = append(out.ADX, adx)
	}
	return out
}
