package indicators

// CrossSignal classifies each index of two equal-length series by comparing
// the relationship at i-1 and i:
//
//	fast crosses above slow -> Buy
//	fast crosses below slow -> Sell
//	otherwise               -> Neutral
//
// Index 0 has no predecessor and is always Neutral. Series of different
// lengths give an empty result.
func CrossSignal(fast, slow []float64) []Signal {
	if len(fast) != len(slow) || len(fast) == 0 {
		return nil
	}

	out := make([]Signal, len(fast))
	out[0] = Neutral
	for i := 1; i < len(fast); i++ {
		prevFast, prevSlow := fast[i-1], slow[i-1]
		currFast, currSlow := fast[i], slow[i]

		switch {
		case prevFast < prevSlow && currFast > currSlow:
			out[i] = Buy
		case prevFast > prevSlow && currFast < currSlow:
			out[i] = Sell
		default:
			out[i] = Neutral
		}
	}
	return out
}

// AlignTail trims the longer of two series from the front so both end on the
// same point, e.g. SMA(10) against SMA(30) of the same prices.
func AlignTail(a, b []float64) ([]float64, []float64) {
	switch {
	case len(a) > len(b):
		return a[len(a)-len(b):], b
	case len(b) > len(a):
		return a, b[len(b)-len(a):]
	}
	return a, b
}
