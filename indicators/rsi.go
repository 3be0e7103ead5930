package indicators

// RSI overbought and oversold thresholds.
const (
	RSIOverbought = 70.0
	RSIOversold   = 30.0
)

// RSI calculates the Relative Strength Index using Wilder's smoothing.
//
// The first reading seeds avgGain/avgLoss with the mean gain and loss over
// the first period deltas; every later delta updates them with
//
//	avg = (avg*(period-1) + x) / period
//
// A zero average loss yields 100. Readings below 30 are classified Buy,
// above 70 Sell. The result has len(prices)-period entries.
func RSI(prices []float64, period int) []Result {
	if period <= 0 || len(prices) <= period {
		return nil
	}

	p := float64(period)
	out := make([]Result, 0, len(prices)-period)

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		gain, loss := delta(prices[i-1], prices[i])
		avgGain += gain
		avgLoss += loss
	}
	avgGain /= p
	avgLoss /= p
	out = append(out, rsiResult(avgGain, avgLoss))

	for i := period + 1; i < len(prices); i++ {
		gain, loss := delta(prices[i-1], prices[i])
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		out = append(out, rsiResult(avgGain, avgLoss))
	}
	return out
}

func delta(prev, curr float64) (gain, loss float64) {
	d := curr - prev
	if d > 0 {
		return d, 0
	}
	return 0, -d
}

func rsiResult(avgGain, avgLoss float64) Result {
	value := 100.0
	if avgLoss != 0 {
		rs := avgGain / avgLoss
		value = 100 - 100/(1+rs)
	}

	return Result{
		Value:  value,
		Signal: classifyRSI(value),
		Metadata: map[string]float64{
			"avg_gain": avgGain,
			"avg_loss": avgLoss,
		},
	}
}

func classifyRSI(v float64) Signal {
	switch {
	case v < RSIOversold:
		return Buy
	case v > RSIOverbought:
		return Sell
	}
	return Neutral
}
