package color

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func flatObserver() Observer {
	wvl := []float64{400, 500, 600, 700}
	return Observer{
		Wvl:  wvl,
		XBar: []float64{0.1, 0.3, 0.5, 0.1},
		YBar: []float64{0.05, 0.4, 0.6, 0.05},
		ZBar: []float64{0.8, 0.2, 0.0, 0.0},
	}
}

func flatIlluminant() Illuminant {
	return Illuminant{Wvl: []float64{400, 500, 600, 700}, Power: []float64{100, 100, 100, 100}}
}

func TestXYZFromSpectrumWhiteReflectorGivesYNear100(t *testing.T) {
	obs := flatObserver()
	ill := flatIlluminant()
	spec := Spectrum{Wvl: obs.Wvl, Values: []float64{1, 1, 1, 1}}

	xyz, err := XYZFromSpectrum(spec, ill, obs)
	require.NoError(t, err)
	require.InDelta(t, 100.0, xyz.Y, 1e-9)
}

func TestLabRoundTrip(t *testing.T) {
	wp := XYZ{X: 95.047, Y: 100, Z: 108.883}
	xyz := XYZ{X: 41.24, Y: 21.26, Z: 1.93}
	lab := xyz.ToLab(wp)
	back := lab.FromLab(wp)
	require.InDelta(t, xyz.X, back.X, 1e-6)
	require.InDelta(t, xyz.Y, back.Y, 1e-6)
	require.InDelta(t, xyz.Z, back.Z, 1e-6)
}

func TestDeltaE76ZeroForIdenticalColors(t *testing.T) {
	lab := Lab{L: 50, A: 10, B: -5}
	require.Equal(t, 0.0, DeltaE76(lab, lab))
}

func TestDeltaE2000ZeroForIdenticalColors(t *testing.T) {
	lab := Lab{L: 50, A: 10, B: -5}
	require.InDelta(t, 0.0, DeltaE2000(lab, lab), 1e-9)
}

func TestSRGBWhitePointIsNearWhite(t *testing.T) {
	wp := XYZ{X: 95.047, Y: 100, Z: 108.883}
	rgb := wp.ToSRGB()
	require.InDelta(t, 1.0, rgb.R, 0.02)
	require.InDelta(t, 1.0, rgb.G, 0.02)
	require.InDelta(t, 1.0, rgb.B, 0.02)
}
