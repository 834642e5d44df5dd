package graded

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func linspace(a, b float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = a + (b-a)*float64(i)/float64(n-1)
	}
	return out
}

func quinticProfile(nLo, nHi float64, d, steps int) Profile {
	depth := linspace(0, float64(d), steps)
	n := make([]float64, steps)
	for i, z := range depth {
		t := z / float64(d)
		s := t * t * t * (t*(t*6-15) + 10) // smoothstep / quintic ease
		n[i] = nLo + (nHi-nLo)*s
	}
	return Profile{Depth: depth, N: n}
}

func totals(steps []Step) (dTot, xTot float64) {
	for _, s := range steps {
		dTot += s.D
		xTot += s.D * s.N
	}
	return dTot, xTot
}

func TestDiscretizePreservesPhysicalThickness(t *testing.T) {
	profile := quinticProfile(1.38, 2.35, 500, 200)
	ladder := Ladder(linspace(1.38, 2.35, 20))

	steps, err := Discretize(profile, ladder, 1.0)
	require.NoError(t, err)
	require.NotEmpty(t, steps)

	dTot, _ := totals(steps)
	require.InDelta(t, 500.0, dTot, 1e-6)
}

func TestDiscretizeStepsAreOnLadder(t *testing.T) {
	profile := quinticProfile(1.38, 2.35, 500, 200)
	ladder := Ladder(linspace(1.38, 2.35, 20))

	steps, err := Discretize(profile, ladder, 1.0)
	require.NoError(t, err)
	for _, s := range steps {
		found := false
		for _, l := range ladder {
			if floatsClose(l, s.N, 1e-9) {
				found = true
				break
			}
		}
		require.True(t, found, "step index %v not on ladder", s.N)
	}
}

func TestDiscretizeEnforcesMinThickness(t *testing.T) {
	profile := quinticProfile(1.38, 2.35, 500, 200)
	ladder := Ladder(linspace(1.38, 2.35, 20))

	steps, err := Discretize(profile, ladder, 2.0)
	require.NoError(t, err)
	for _, s := range steps {
		require.GreaterOrEqual(t, s.D, 2.0-1e-9)
	}
}

func TestDiscretizeOutOfRangeFails(t *testing.T) {
	profile := Profile{Depth: []float64{0, 100}, N: []float64{1.0, 2.0}}
	ladder := Ladder([]float64{1.3, 1.4, 1.5})

	_, err := Discretize(profile, ladder, 1.0)
	require.Error(t, err)
}

func TestDiscretizeUniformProfileIsSingleStep(t *testing.T) {
	profile := Profile{Depth: linspace(0, 100, 10), N: constant(10, 1.45)}
	ladder := Ladder([]float64{1.3, 1.45, 1.6})

	steps, err := Discretize(profile, ladder, 1.0)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	require.InDelta(t, 1.45, steps[0].N, 1e-12)
	require.InDelta(t, 100.0, steps[0].D, 1e-9)
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func floatsClose(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}
