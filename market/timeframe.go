package market

import (
	"fmt"
	"sort"
)

// TimeframeString names a bar interval the way brokers do: M5, H1, D1, W1.
func TimeframeString(sec int64) (string, error) {
	if sec <= 0 {
		return "", fmt.Errorf("invalid timeframe seconds: %d", sec)
	}

	switch {
	case sec < 3600 && sec%60 == 0:
		return fmt.Sprintf("M%d", sec/60), nil
	case sec < 86400 && sec%3600 == 0:
		return fmt.Sprintf("H%d", sec/3600), nil
	case sec%86400 == 0:
		days := sec / 86400
		switch days {
		case 7:
			return "W1", nil
		case 30:
			return "MN1", nil
		}
		return fmt.Sprintf("D%d", days), nil
	}
	return "", fmt.Errorf("cannot map timeframe: %d seconds", sec)
}

// TimeframeSeconds is the inverse of TimeframeString for the common names.
func TimeframeSeconds(tf string) (int64, error) {
	switch tf {
	case "M1":
		return 60, nil
	case "M5":
		return 300, nil
	case "M15":
		return 900, nil
	case "M30":
		return 1800, nil
	case "H1":
		return 3600, nil
	case "H4":
		return 14400, nil
	case "D1":
		return 86400, nil
	case "W1":
		return 604800, nil
	case "MN1":
		return 2592000, nil
	default:
		return 0, fmt.Errorf("unsupported timeframe string: %s", tf)
	}
}

// InferTimeframe returns the median spacing between consecutive candles in
// seconds. Weekend and holiday gaps do not move the median. It is false for
// fewer than two candles.
func InferTimeframe(candles []Candle) (int64, bool) {
	if len(candles) < 2 {
		return 0, false
	}

	gaps := make([]int64, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		gaps[i-1] = (candles[i].Timestamp - candles[i-1].Timestamp) / 1000
	}
	sort.Slice(gaps, func(i, j int) bool { return gaps[i] < gaps[j] })
	return gaps[len(gaps)/2], true
}
