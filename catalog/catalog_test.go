package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMaterialsAllTypes(t *testing.T) {
	data := []byte(`{
		"bk7": {"type": "constant", "n": 1.52, "k": 0},
		"sio2": {"type": "table", "wvl": [400, 500, 600], "n": [1.47, 1.46, 1.45], "k": [0, 0, 0]},
		"nb2o5": {"type": "cauchy", "A": 2.1, "B": 0.01, "C": 0.0002, "Ak": 0, "exponent": 4, "edge": 300},
		"ta2o5": {"type": "sellmeier", "B1": 1.1, "C1": 0.01, "B2": 0.2, "C2": 0.02, "B3": 0.01, "C3": 100, "Ak": 0, "exponent": 4, "edge": 300}
	}`)

	cat, err := LoadMaterials(data)
	require.NoError(t, err)

	for _, name := range []string{"bk7", "sio2", "nb2o5", "ta2o5"} {
		idx, err := cat.Get(name)
		require.NoError(t, err)
		n := idx.N(550)
		require.False(t, real(n) == 0)
	}
}

func TestLoadMaterialsRejectsUnknownType(t *testing.T) {
	_, err := LoadMaterials([]byte(`{"x": {"type": "bogus"}}`))
	require.Error(t, err)
}

func TestLoadMaterialsRejectsMissingType(t *testing.T) {
	_, err := LoadMaterials([]byte(`{"x": {"n": 1.5}}`))
	require.Error(t, err)
}

func TestLoadIlluminantParsesSpectrumSection(t *testing.T) {
	data := []byte("Description: toy D65-like illuminant\n" +
		"  for testing only\n" +
		"Spectrum:\n" +
		"  400 82.75\n" +
		"  500 109.35\n" +
		"  600 90.01\n")

	ill, err := LoadIlluminant(data)
	require.NoError(t, err)
	require.Equal(t, []float64{400, 500, 600}, ill.Wvl)
	require.Equal(t, []float64{82.75, 109.35, 90.01}, ill.Power)
}

func TestLoadObserverParsesFunctionsSection(t *testing.T) {
	data := []byte("Description: toy CIE 1931 observer\n" +
		"Functions:\n" +
		"  400 0.0143 0.0004 0.0679\n" +
		"  500 0.0049 0.3230 0.2720\n" +
		"  600 1.0622 0.6310 0.0008\n")

	obs, err := LoadObserver(data)
	require.NoError(t, err)
	require.Equal(t, []float64{400, 500, 600}, obs.Wvl)
	require.InDelta(t, 0.0143, obs.XBar[0], 1e-9)
	require.InDelta(t, 0.6310, obs.YBar[2], 1e-9)
	require.InDelta(t, 0.0008, obs.ZBar[2], 1e-9)
}

func TestLoadIlluminantRejectsNonIncreasingWavelengths(t *testing.T) {
	data := []byte("Spectrum:\n  400 1.0\n  400 2.0\n")
	_, err := LoadIlluminant(data)
	require.Error(t, err)
}

func TestLoadIlluminantRejectsMissingSection(t *testing.T) {
	data := []byte("Description: nothing here\n")
	_, err := LoadIlluminant(data)
	require.Error(t, err)
}
