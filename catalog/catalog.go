// Package catalog is the external loader of spec §6: it turns JSON5
// material definitions on disk into a dispersion.Catalog the core can
// consume, and parses the bit-stable observer/illuminant text format.
// None of this package is on the hot path; it runs once at startup.
package catalog

import (
	"fmt"

	json "github.com/KevinWang15/go-json5"

	"github.com/gyger/thinfilm/dispersion"
)

// LoadMaterials parses a JSON5 document of the form:
//
//	{
//	  "bk7":   {"type": "constant", "n": 1.52, "k": 0},
//	  "sio2":  {"type": "table", "wvl": [...], "n": [...], "k": [...]},
//	  "nb2o5": {"type": "cauchy", "A":..., "B":..., "C":..., "Ak":..., "exponent":..., "edge":...},
//	  "ta2o5": {"type": "sellmeier", "B1":..., "C1":..., ...}
//	}
//
// into a dispersion.Catalog, following the teacher's tolerant
// leaf-lookup style (missing optional fields default, type mismatches
// are reported by name).
func LoadMaterials(data []byte) (*dispersion.Catalog, error) {
	var table map[string]map[string]interface{}
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("catalog: parsing materials: %w", err)
	}

	materials := make(map[string]dispersion.Index, len(table))
	for name, fields := range table {
		idx, err := buildMaterial(name, fields)
		if err != nil {
			return nil, err
		}
		materials[name] = idx
	}
	return dispersion.NewCatalog(materials), nil
}

func buildMaterial(name string, fields map[string]interface{}) (dispersion.Index, error) {
	typ, ok := getString(fields, "type")
	if !ok {
		return nil, fmt.Errorf("catalog: material %q: missing \"type\"", name)
	}
	switch typ {
	case "constant":
		n, ok := getFloat(fields, "n")
		if !ok {
			return nil, fmt.Errorf("catalog: material %q: \"n\" is not a number", name)
		}
		k, _ := getFloat(fields, "k")
		return dispersion.NewConstant(n, k), nil

	case "table":
		wvl, err := getFloatArray(fields, "wvl")
		if err != nil {
			return nil, fmt.Errorf("catalog: material %q: %w", name, err)
		}
		n, err := getFloatArray(fields, "n")
		if err != nil {
			return nil, fmt.Errorf("catalog: material %q: %w", name, err)
		}
		k, err := getFloatArray(fields, "k")
		if err != nil {
			return nil, fmt.Errorf("catalog: material %q: %w", name, err)
		}
		t, err := dispersion.NewTable(wvl, n, k)
		if err != nil {
			return nil, fmt.Errorf("catalog: material %q: %w", name, err)
		}
		return t, nil

	case "cauchy":
		a, b, c, ak, exp, edge, err := cauchyParams(name, fields)
		if err != nil {
			return nil, err
		}
		return dispersion.NewCauchy(a, b, c, ak, exp, edge), nil

	case "sellmeier":
		params, err := sellmeierParams(name, fields)
		if err != nil {
			return nil, err
		}
		return dispersion.NewSellmeier(params[0], params[1], params[2], params[3], params[4], params[5], params[6], params[7], params[8]), nil

	default:
		return nil, fmt.Errorf("catalog: material %q: unknown type %q", name, typ)
	}
}

func cauchyParams(name string, fields map[string]interface{}) (a, b, c, ak, exp, edge float64, err error) {
	get := func(key string) (float64, error) {
		v, ok := getFloat(fields, key)
		if !ok {
			return 0, fmt.Errorf("catalog: material %q: %q is not a number", name, key)
		}
		return v, nil
	}
	if a, err = get("A"); err != nil {
		return
	}
	if b, err = get("B"); err != nil {
		return
	}
	if c, err = get("C"); err != nil {
		return
	}
	if ak, err = get("Ak"); err != nil {
		return
	}
	if exp, err = get("exponent"); err != nil {
		return
	}
	if edge, err = get("edge"); err != nil {
		return
	}
	return
}

func sellmeierParams(name string, fields map[string]interface{}) ([9]float64, error) {
	var out [9]float64
	keys := [9]string{"B1", "C1", "B2", "C2", "B3", "C3", "Ak", "exponent", "edge"}
	for i, key := range keys {
		v, ok := getFloat(fields, key)
		if !ok {
			return out, fmt.Errorf("catalog: material %q: %q is not a number", name, key)
		}
		out[i] = v
	}
	return out, nil
}

func getString(fields map[string]interface{}, key string) (string, bool) {
	v, ok := fields[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func getFloat(fields map[string]interface{}, key string) (float64, bool) {
	v, ok := fields[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

func getFloatArray(fields map[string]interface{}, key string) ([]float64, error) {
	v, ok := fields[key]
	if !ok {
		return nil, fmt.Errorf("%q is missing", key)
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%q is not an array", key)
	}
	out := make([]float64, len(raw))
	for i, e := range raw {
		f, ok := e.(float64)
		if !ok {
			return nil, fmt.Errorf("%q[%d] is not a number", key, i)
		}
		out[i] = f
	}
	return out, nil
}
