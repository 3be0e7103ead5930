package indicators

import (
	"fmt"
	"strings"
)

// FibonacciLevel is one named retracement ratio.
type FibonacciLevel struct {
	Name  string
	Ratio float64
}

// FibonacciRatios is the retracement and extension table, in order.
var FibonacciRatios = []FibonacciLevel{
	{"0%", 0},
	{"23.6%", 0.236},
	{"38.2%", 0.382},
	{"50%", 0.5},
	{"61.8%", 0.618},
	{"78.6%", 0.786},
	{"100%", 1},
	{"161.8%", 1.618},
	{"261.8%", 2.618},
}

// FibonacciRetracement returns high - (high-low)*ratio for every entry of
// FibonacciRatios, keyed by its name. Ratios above 1 extend below low.
func FibonacciRetracement(high, low float64) map[string]float64 {
	diff := high - low
	out := make(map[string]float64, len(FibonacciRatios))
	for _, lvl := range FibonacciRatios {
		out[lvl.Name] = high - diff*lvl.Ratio
	}
	return out
}

// PivotType selects a pivot point formula.
type PivotType string

const (
	PivotStandard  PivotType = "standard"
	PivotFibonacci PivotType = "fibonacci"
	PivotWoodie    PivotType = "woodie"
	PivotCamarilla PivotType = "camarilla"
)

// ParsePivotType validates a pivot formula name.
func ParsePivotType(s string) (PivotType, error) {
	switch t := PivotType(strings.ToLower(strings.TrimSpace(s))); t {
	case PivotStandard, PivotFibonacci, PivotWoodie, PivotCamarilla:
		return t, nil
	}
	return "", fmt.Errorf("unknown pivot type %q", s)
}

// PivotLevels is a pivot with its resistance and support levels. R4 and S4
// are only set by the camarilla formula.
type PivotLevels struct {
	Type  PivotType `json:"type" yaml:"type"`
	Pivot float64   `json:"pivot" yaml:"pivot"`
	R1    float64   `json:"r1" yaml:"r1"`
	R2    float64   `json:"r2" yaml:"r2"`
	R3    float64   `json:"r3" yaml:"r3"`
	R4    float64   `json:"r4,omitempty" yaml:"r4,omitempty"`
	S1    float64   `json:"s1" yaml:"s1"`
	S2    float64   `json:"s2" yaml:"s2"`
	S3    float64   `json:"s3" yaml:"s3"`
	S4    float64   `json:"s4,omitempty" yaml:"s4,omitempty"`
}

// PivotPoints computes pivot levels from a prior period's high, low and
// close. Unknown kinds use the standard formula.
func PivotPoints(high, low, closePrice float64, kind PivotType) PivotLevels {
	rng := high - low

	switch kind {
	case PivotFibonacci:
		p := (high + low + closePrice) / 3
		return PivotLevels{
			Type:  kind,
			Pivot: p,
			R1:    p + 0.382*rng,
			R2:    p + 0.618*rng,
			R3:    p + rng,
			S1:    p - 0.382*rng,
			S2:    p - 0.618*rng,
			S3:    p - rng,
		}

	case PivotWoodie:
		p := (high + low + 2*closePrice) / 4
		lv := classicLevels(p, high, low)
		lv.Type = kind
		return lv

	case PivotCamarilla:
		p := (high + low + closePrice) / 3
		return PivotLevels{
			Type:  kind,
			Pivot: p,
			R1:    closePrice + rng*1.1/12,
			R2:    closePrice + rng*1.1/6,
			R3:    closePrice + rng*1.1/4,
			R4:    closePrice + rng*1.1/2,
			S1:    closePrice - rng*1.1/12,
			S2:    closePrice - rng*1.1/6,
			S3:    closePrice - rng*1.1/4,
			S4:    closePrice - rng*1.1/2,
		}
	}

	lv := classicLevels((high+low+closePrice)/3, high, low)
	lv.Type = PivotStandard
	return lv
}

// classicLevels applies the floor-trader relations around pivot p.
func classicLevels(p, high, low float64) PivotLevels {
	return PivotLevels{
		Pivot: p,
		R1:    2*p - low,
		R2:    p + (high - low),
		R3:    high + 2*(p-low),
		S1:    2*p - high,
		S2:    p - (high - low),
		S3:    low - 2*(high-p),
	}
}
