package filter

import (
	"testing"

	"github.com/gyger/thinfilm/dispersion"
	"github.com/gyger/thinfilm/graded"
	"github.com/gyger/thinfilm/mixture"
	"github.com/gyger/thinfilm/wavelength"
	"github.com/stretchr/testify/require"
)

func linspace(a, b float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = a + (b-a)*float64(i)/float64(n-1)
	}
	return out
}

func TestExpandGradedPreservesThicknessAndFeedsStack(t *testing.T) {
	mix, err := mixture.New([]float64{0, 1}, []dispersion.Index{
		dispersion.NewConstant(1.38, 0),
		dispersion.NewConstant(2.35, 0),
	})
	require.NoError(t, err)

	depth := linspace(0, 500, 50)
	n := make([]float64, len(depth))
	for i, z := range depth {
		t := z / 500
		n[i] = 1.38 + (2.35-1.38)*t
	}
	profile := graded.Profile{Depth: depth, N: n}
	ladder := graded.Ladder(linspace(1.38, 2.35, 10))

	layers, err := ExpandGraded(profile, ladder, 1.0, mix, 550)
	require.NoError(t, err)
	require.NotEmpty(t, layers)

	var total float64
	for _, l := range layers {
		total += l.D
		require.NotNil(t, l.Material)
	}
	require.InDelta(t, 500, total, 1e-6)

	grid, err := wavelength.Linspace(500, 600, 3)
	require.NoError(t, err)
	stack := Stack{
		Grid:         grid,
		Substrate:    dispersion.NewConstant(1.52, 0),
		FrontAmbient: dispersion.NewConstant(1.0, 0),
		BackAmbient:  dispersion.NewConstant(1.0, 0),
		Front:        layers,
	}
	obs, err := stack.Compute()
	require.NoError(t, err)
	for i := range grid.Values() {
		require.InDelta(t, 1.0, obs.R[i]+obs.T[i], 1e-9)
	}
}
