package mixture

import (
	"testing"

	"github.com/gyger/thinfilm/dispersion"
	"github.com/stretchr/testify/require"
)

func TestInverseAtCenterRoundTrips(t *testing.T) {
	mix, err := New([]float64{0, 1}, []dispersion.Index{
		dispersion.NewConstant(1.38, 0),
		dispersion.NewConstant(2.35, 0),
	})
	require.NoError(t, err)

	x, err := mix.InverseAtCenter(1.87, 550)
	require.NoError(t, err)
	require.InDelta(t, 0.5051, x, 1e-3)

	n, err := mix.IndexAt(x, 550)
	require.NoError(t, err)
	require.InDelta(t, 1.87, n, 1e-12)
}

func TestMonotoneReportsComponentOrdering(t *testing.T) {
	mix, err := New([]float64{0, 1}, []dispersion.Index{
		dispersion.NewConstant(1.38, 0),
		dispersion.NewConstant(2.35, 0),
	})
	require.NoError(t, err)

	ok, err := mix.Monotone(550)
	require.NoError(t, err)
	require.True(t, ok)
}
