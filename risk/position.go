package risk

import "math"

// Inputs describes a stop-based sizing request.
type Inputs struct {
	Equity     float64
	Fraction   float64 // share of equity lost if the stop is hit, e.g. 0.01 or a Kelly fraction
	EntryPrice float64
	StopPrice  float64
}

// Result is the sized position.
type Result struct {
	Units      float64
	StopDist   float64
	RiskAmount float64
}

// Calculate sizes a position so that a stop-out loses Equity*Fraction.
// Units are floored to whole units; a zero stop distance or a non-positive
// fraction sizes nothing.
func Calculate(in Inputs) Result {
	stopDist := math.Abs(in.EntryPrice - in.StopPrice)
	riskAmt := in.Equity * in.Fraction

	if stopDist == 0 || riskAmt <= 0 {
		return Result{StopDist: stopDist, RiskAmount: math.Max(riskAmt, 0)}
	}

	return Result{
		Units:      math.Floor(riskAmt / stopDist),
		StopDist:   stopDist,
		RiskAmount: riskAmt,
	}
}
