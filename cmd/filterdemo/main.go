// Command filterdemo is the external driver of spec §6: it reads a
// JSON5 stack description and a JSON5 material catalog, evaluates the
// stack across a wavelength grid, and prints the resulting R/T/A and
// Ψ/Δ columns. It is a thin consumer of the filter/dispersion/catalog
// packages, in the teacher's read-file/unmarshal/validate/report style.
package main

import (
	"fmt"
	"os"

	json "github.com/KevinWang15/go-json5"

	"github.com/gyger/thinfilm/catalog"
	"github.com/gyger/thinfilm/dispersion"
	"github.com/gyger/thinfilm/filter"
	"github.com/gyger/thinfilm/plotting"
	"github.com/gyger/thinfilm/wavelength"
)

// stackFile mirrors the JSON5 layout of a filter description:
//
//	{
//	  "materials": "materials.json5",
//	  "substrate": "bk7",
//	  "substrateThicknessMm": 1.0,
//	  "frontAmbient": "air",
//	  "backAmbient": "air",
//	  "theta0Deg": 0,
//	  "wvlStartNm": 400, "wvlEndNm": 700, "wvlCount": 61,
//	  "front": [{"material": "ta2o5", "thicknessNm": 120}, ...],
//	  "back": []
//	}
//
// Parsed by hand out of a generic map, following the teacher's
// tolerant-lookup style rather than struct-tag unmarshaling.
type stackFile struct {
	Materials            string
	Substrate            string
	SubstrateThicknessMm float64
	FrontAmbient         string
	BackAmbient          string
	Theta0Deg            float64
	WvlStartNm           float64
	WvlEndNm             float64
	WvlCount             int
	Front                []layerEntry
	Back                 []layerEntry
	PlotPNG              string
}

type layerEntry struct {
	Material    string
	ThicknessNm float64
}

func parseStackFile(data []byte) (stackFile, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return stackFile{}, err
	}

	var sf stackFile
	var ok bool
	if sf.Materials, ok = raw["materials"].(string); !ok {
		return stackFile{}, fmt.Errorf("\"materials\" is missing or not a string")
	}
	if sf.Substrate, ok = raw["substrate"].(string); !ok {
		return stackFile{}, fmt.Errorf("\"substrate\" is missing or not a string")
	}
	sf.SubstrateThicknessMm, _ = raw["substrateThicknessMm"].(float64)
	if sf.FrontAmbient, ok = raw["frontAmbient"].(string); !ok {
		return stackFile{}, fmt.Errorf("\"frontAmbient\" is missing or not a string")
	}
	if sf.BackAmbient, ok = raw["backAmbient"].(string); !ok {
		return stackFile{}, fmt.Errorf("\"backAmbient\" is missing or not a string")
	}
	sf.Theta0Deg, _ = raw["theta0Deg"].(float64)
	if sf.WvlStartNm, ok = raw["wvlStartNm"].(float64); !ok {
		return stackFile{}, fmt.Errorf("\"wvlStartNm\" is missing or not a number")
	}
	if sf.WvlEndNm, ok = raw["wvlEndNm"].(float64); !ok {
		return stackFile{}, fmt.Errorf("\"wvlEndNm\" is missing or not a number")
	}
	count, ok := raw["wvlCount"].(float64)
	if !ok {
		return stackFile{}, fmt.Errorf("\"wvlCount\" is missing or not a number")
	}
	sf.WvlCount = int(count)
	sf.PlotPNG, _ = raw["plotPng"].(string)

	var err error
	if sf.Front, err = parseLayerEntries(raw["front"]); err != nil {
		return stackFile{}, fmt.Errorf("\"front\": %w", err)
	}
	if sf.Back, err = parseLayerEntries(raw["back"]); err != nil {
		return stackFile{}, fmt.Errorf("\"back\": %w", err)
	}
	return sf, nil
}

func parseLayerEntries(v interface{}) ([]layerEntry, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected an array")
	}
	out := make([]layerEntry, len(raw))
	for i, e := range raw {
		fields, ok := e.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("entry %d is not an object", i)
		}
		material, ok := fields["material"].(string)
		if !ok {
			return nil, fmt.Errorf("entry %d: \"material\" is missing or not a string", i)
		}
		thickness, ok := fields["thicknessNm"].(float64)
		if !ok {
			return nil, fmt.Errorf("entry %d: \"thicknessNm\" is missing or not a number", i)
		}
		out[i] = layerEntry{Material: material, ThicknessNm: thickness}
	}
	return out, nil
}

func main() {
	if len(os.Args) != 2 {
		fmt.Println("\n\tWrong number of arguments.\n\tUsage: filterdemo <stack-file.json5>")
		os.Exit(1)
	}
	path := os.Args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tattempt to read stack file %q failed: %w", path, err))
		os.Exit(2)
	}

	sf, err := parseStackFile(data)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tformat error in stack file %q: %w", path, err))
		os.Exit(3)
	}

	matData, err := os.ReadFile(sf.Materials)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tattempt to read material catalog %q failed: %w", sf.Materials, err))
		os.Exit(4)
	}
	cat, err := catalog.LoadMaterials(matData)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\terror parsing material catalog %q: %w", sf.Materials, err))
		os.Exit(5)
	}

	stack, err := buildStack(sf, cat)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\terror building stack from %q: %w", path, err))
		os.Exit(6)
	}

	obs, err := stack.Compute()
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tcomputation failed: %w", err))
		os.Exit(7)
	}

	fmt.Printf("\nwvl(nm)\tR\tT\tA\tPsi(deg)\tDelta(deg)\n")
	for i, w := range stack.Grid.Values() {
		fmt.Printf("%.2f\t%.5f\t%.5f\t%.5f\t%.3f\t%.3f\n",
			w, obs.R[i], obs.T[i], obs.A[i], obs.Psi[i], obs.Delta[i])
	}

	if sf.PlotPNG != "" {
		if err := plotting.RTA(sf.PlotPNG, stack.Grid.Values(), obs.R, obs.T, obs.A); err != nil {
			fmt.Println(fmt.Errorf("\n\tfailed to write plot %q: %w", sf.PlotPNG, err))
			os.Exit(8)
		}
		fmt.Printf("\nWrote R/T/A plot to %s\n", sf.PlotPNG)
	}
}

func buildStack(sf stackFile, cat *dispersion.Catalog) (*filter.Stack, error) {
	grid, err := wavelength.Linspace(sf.WvlStartNm, sf.WvlEndNm, sf.WvlCount)
	if err != nil {
		return nil, fmt.Errorf("wavelength grid: %w", err)
	}

	substrate, err := cat.Get(sf.Substrate)
	if err != nil {
		return nil, fmt.Errorf("substrate: %w", err)
	}
	frontAmbient, err := cat.Get(sf.FrontAmbient)
	if err != nil {
		return nil, fmt.Errorf("front ambient: %w", err)
	}
	backAmbient, err := cat.Get(sf.BackAmbient)
	if err != nil {
		return nil, fmt.Errorf("back ambient: %w", err)
	}

	front, err := buildLayers(sf.Front, cat)
	if err != nil {
		return nil, fmt.Errorf("front layers: %w", err)
	}
	back, err := buildLayers(sf.Back, cat)
	if err != nil {
		return nil, fmt.Errorf("back layers: %w", err)
	}

	return &filter.Stack{
		Grid:               grid,
		Substrate:          substrate,
		SubstrateThickness: sf.SubstrateThicknessMm * 1e6,
		FrontAmbient:       frontAmbient,
		BackAmbient:        backAmbient,
		Front:              front,
		Back:               back,
		Theta0:             sf.Theta0Deg * 3.14159265358979323846 / 180,
	}, nil
}

func buildLayers(entries []layerEntry, cat *dispersion.Catalog) ([]filter.LayerSpec, error) {
	out := make([]filter.LayerSpec, len(entries))
	for i, e := range entries {
		idx, err := cat.Get(e.Material)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		out[i] = filter.LayerSpec{Material: idx, D: e.ThicknessNm}
	}
	return out, nil
}
