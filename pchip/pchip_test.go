package pchip

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrepareMonotonicityPreservedAcrossSamples(t *testing.T) {
	xa := []float64{0, 1, 2, 3, 4}
	ya := []float64{0, 0.5, 0.6, 3.0, 3.1}
	p, err := New(xa, ya, true, false)
	require.NoError(t, err)

	const perInterval = 100
	prev := math.Inf(-1)
	for i := 0; i < len(xa)-1; i++ {
		for k := 0; k <= perInterval; k++ {
			x := xa[i] + (xa[i+1]-xa[i])*float64(k)/perInterval
			y, err := p.Evaluate(x, -1)
			require.NoError(t, err)
			require.GreaterOrEqual(t, y, prev-1e-12)
			prev = y
		}
	}
}

func TestPrepareMonotonicityPreservedDecreasing(t *testing.T) {
	xa := []float64{0, 1, 2, 3}
	ya := []float64{5.0, 4.8, 2.0, 1.9}
	p, err := New(xa, ya, true, false)
	require.NoError(t, err)

	const perInterval = 100
	prev := math.Inf(1)
	for i := 0; i < len(xa)-1; i++ {
		for k := 0; k <= perInterval; k++ {
			x := xa[i] + (xa[i+1]-xa[i])*float64(k)/perInterval
			y, err := p.Evaluate(x, -1)
			require.NoError(t, err)
			require.LessOrEqual(t, y, prev+1e-12)
			prev = y
		}
	}
}

func TestEvaluateInverseRoundTrips(t *testing.T) {
	xa := []float64{0, 1, 2, 3, 4}
	ya := []float64{0, 0.5, 0.6, 3.0, 3.1}
	p, err := New(xa, ya, true, false)
	require.NoError(t, err)

	for _, y := range []float64{0.1, 0.45, 0.55, 1.5, 3.05} {
		x, err := p.EvaluateInverse(y, -1)
		require.NoError(t, err)
		back, err := p.Evaluate(x, -1)
		require.NoError(t, err)
		require.InDelta(t, y, back, 1e-12*math.Max(1, math.Abs(y)))
	}
}
