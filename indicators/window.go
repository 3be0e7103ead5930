package indicators

// rollingExtreme returns the extreme value of every full window using a
// monotonic deque of indices, O(n) overall. better(a, b) reports whether a
// should evict b from the back of the deque.
func rollingExtreme(data []float64, period int, better func(a, b float64) bool) []float64 {
	if period <= 0 || len(data) < period {
		return nil
	}

	out := make([]float64, 0, len(data)-period+1)
	dq := make([]int, 0, period)

	for i, x := range data {
		if len(dq) > 0 && dq[0] <= i-period {
			dq = dq[1:]
		}
		for len(dq) > 0 && !better(data[dq[len(dq)-1]], x) {
			dq = dq[:len(dq)-1]
		}
		dq = append(dq, i)

		if i >= period-1 {
			out = append(out, data[dq[0]])
		}
	}
	return out
}

func rollingMax(data []float64, period int) []float64 {
	return rollingExtreme(data, period, func(a, b float64) bool { return a > b })
}

func rollingMin(data []float64, period int) []float64 {
	return rollingExtreme(data, period, func(a, b float64) bool { return a < b })
}
