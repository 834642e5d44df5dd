package catalog

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/gyger/thinfilm/color"
)

// LoadIlluminant parses the bit-stable observer/illuminant text format
// of spec §6:
//
//	Description: free text
//	Spectrum:
//	  <λ nm> <power>
//	  ...
//
// Wavelengths must be strictly increasing; the parser treats every
// non-indented line containing ':' as a section header (the keyword is
// the text before the first colon) followed by indented data lines.
func LoadIlluminant(data []byte) (color.Illuminant, error) {
	sections, err := parseSections(data)
	if err != nil {
		return color.Illuminant{}, err
	}
	rows, ok := sections["Spectrum"]
	if !ok {
		return color.Illuminant{}, fmt.Errorf("catalog: illuminant file has no Spectrum section")
	}
	ill := color.Illuminant{}
	for _, r := range rows {
		if len(r) != 2 {
			return color.Illuminant{}, fmt.Errorf("catalog: Spectrum row %v: expected 2 fields, got %d", r, len(r))
		}
		ill.Wvl = append(ill.Wvl, r[0])
		ill.Power = append(ill.Power, r[1])
	}
	if err := validateIncreasing(ill.Wvl); err != nil {
		return color.Illuminant{}, err
	}
	return ill, nil
}

// LoadObserver parses the Functions section of the same file format
// into a color.Observer.
func LoadObserver(data []byte) (color.Observer, error) {
	sections, err := parseSections(data)
	if err != nil {
		return color.Observer{}, err
	}
	rows, ok := sections["Functions"]
	if !ok {
		return color.Observer{}, fmt.Errorf("catalog: observer file has no Functions section")
	}
	obs := color.Observer{}
	for _, r := range rows {
		if len(r) != 4 {
			return color.Observer{}, fmt.Errorf("catalog: Functions row %v: expected 4 fields, got %d", r, len(r))
		}
		obs.Wvl = append(obs.Wvl, r[0])
		obs.XBar = append(obs.XBar, r[1])
		obs.YBar = append(obs.YBar, r[2])
		obs.ZBar = append(obs.ZBar, r[3])
	}
	if err := validateIncreasing(obs.Wvl); err != nil {
		return color.Observer{}, err
	}
	return obs, nil
}

// parseSections splits the file into keyword sections (lines with no
// leading whitespace that contain ':', keyed by the text before the
// first colon) and their indented data rows, each
// row split on whitespace and parsed as floats.
func parseSections(data []byte) (map[string][][]float64, error) {
	sections := make(map[string][][]float64)
	var current string

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			if idx := strings.Index(trimmed, ":"); idx >= 0 {
				current = strings.TrimSpace(trimmed[:idx])
				continue
			}
		}
		if current == "Description" {
			continue
		}
		fields := strings.Fields(trimmed)
		row := make([]float64, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("catalog: section %q: field %q is not a number", current, f)
			}
			row = append(row, v)
		}
		sections[current] = append(sections[current], row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return sections, nil
}

func validateIncreasing(wvl []float64) error {
	for i := 1; i < len(wvl); i++ {
		if wvl[i] <= wvl[i-1] {
			return fmt.Errorf("catalog: wavelengths must be strictly increasing at index %d", i)
		}
	}
	return nil
}
