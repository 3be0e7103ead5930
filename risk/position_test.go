package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayoffRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		avgWin  float64
		avgLoss float64
		want    float64
	}{
		{"signed loss", 200, -100, 2},
		{"unsigned loss", 150, 50, 3},
		{"no losses", 100, 0, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, PayoffRatio(tt.avgWin, tt.avgLoss), 1e-12)
		})
	}
}

func TestKelly(t *testing.T) {
	t.Parallel()

	// 60% winners paying 2:1 => 0.6 - 0.4/2
	assert.InDelta(t, 0.4, Kelly(0.6, 2), 1e-12)
	assert.InDelta(t, 0.2, HalfKelly(0.6, 2), 1e-12)

	// negative edge
	assert.InDelta(t, -0.3, Kelly(0.4, 1), 1e-12)
	assert.Equal(t, 0.0, HalfKelly(0.4, 1))

	assert.Equal(t, 0.0, Kelly(0.5, 0))
}

func TestRRAndRiskPct(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0, RR(100, 95, 110), 1e-12)
	assert.Equal(t, 0.0, RR(100, 100, 110))

	assert.InDelta(t, 0.01, RiskPct(100, 10000), 1e-12)
	assert.True(t, math.IsInf(RiskPct(100, 0), 1))
}

func TestCalculate_Long(t *testing.T) {
	t.Parallel()

	got := Calculate(Inputs{
		Equity:     10000,
		Fraction:   0.01,
		EntryPrice: 1.2000,
		StopPrice:  1.1900,
	})

	assert.InDelta(t, 0.01, got.StopDist, 1e-9)
	assert.InDelta(t, 100.0, got.RiskAmount, 1e-9)
	assert.InDelta(t, 10000.0, got.Units, 1.0)
}

func TestCalculate_StopAboveEntry(t *testing.T) {
	t.Parallel()

	got := Calculate(Inputs{
		Equity:     5000,
		Fraction:   0.02,
		EntryPrice: 150.00,
		StopPrice:  152.00,
	})

	assert.InDelta(t, 2.0, got.StopDist, 1e-9)
	assert.Equal(t, 50.0, got.Units)
}

func TestCalculate_Degenerate(t *testing.T) {
	t.Parallel()

	assert.Zero(t, Calculate(Inputs{Equity: 1000, Fraction: 0.01, EntryPrice: 10, StopPrice: 10}).Units)

	neg := Calculate(Inputs{Equity: 1000, Fraction: -0.1, EntryPrice: 10, StopPrice: 9})
	assert.Zero(t, neg.Units)
	assert.Zero(t, neg.RiskAmount)
}
