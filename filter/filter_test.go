package filter

import (
	"testing"

	"github.com/gyger/thinfilm/dispersion"
	"github.com/gyger/thinfilm/wavelength"
	"github.com/stretchr/testify/require"
)

func TestBareGlassReflectanceMatchesFresnel(t *testing.T) {
	grid, err := wavelength.Linspace(400, 700, 4)
	require.NoError(t, err)

	stack := Stack{
		Grid:         grid,
		Substrate:    dispersion.NewConstant(1.5, 0),
		FrontAmbient: dispersion.NewConstant(1.0, 0),
		BackAmbient:  dispersion.NewConstant(1.0, 0),
	}

	obs, err := stack.Compute()
	require.NoError(t, err)

	want := (1.0 - 1.5) / (1.0 + 1.5)
	for _, r := range obs.R {
		require.InDelta(t, want*want, r, 1e-9)
	}
}

func TestQuarterWaveStackBoostsReflectance(t *testing.T) {
	grid, err := wavelength.Linspace(550, 550, 1)
	require.NoError(t, err)

	bare := Stack{
		Grid:         grid,
		Substrate:    dispersion.NewConstant(1.52, 0),
		FrontAmbient: dispersion.NewConstant(1.0, 0),
		BackAmbient:  dispersion.NewConstant(1.0, 0),
	}
	hi := dispersion.NewConstant(2.3, 0)
	coated := Stack{
		Grid:         grid,
		Substrate:    dispersion.NewConstant(1.52, 0),
		FrontAmbient: dispersion.NewConstant(1.0, 0),
		BackAmbient:  dispersion.NewConstant(1.0, 0),
		Front:        []LayerSpec{{Material: hi, D: 550.0 / 4 / 2.3}},
	}

	bareObs, err := bare.Compute()
	require.NoError(t, err)
	coatedObs, err := coated.Compute()
	require.NoError(t, err)

	require.Greater(t, coatedObs.R[0], bareObs.R[0])
}

func TestEnergyConservationAcrossGrid(t *testing.T) {
	grid, err := wavelength.Linspace(400, 900, 20)
	require.NoError(t, err)

	stack := Stack{
		Grid:         grid,
		Substrate:    dispersion.NewConstant(1.52, 0),
		FrontAmbient: dispersion.NewConstant(1.0, 0),
		BackAmbient:  dispersion.NewConstant(1.0, 0),
		Front:        []LayerSpec{{Material: dispersion.NewConstant(2.1, 0), D: 80}},
	}

	obs, err := stack.Compute()
	require.NoError(t, err)
	for i := range grid.Values() {
		require.InDelta(t, 1.0, obs.R[i]+obs.T[i], 1e-9)
		require.InDelta(t, 0.0, obs.A[i], 1e-9)
	}
}
