// Package solar holds the solar reference log-abundances used to convert
// measured logeps values into bracketed [X/H] ratios. The table is immutable
// once built and is injected into the components that need it.
package solar

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

type Table struct {
	logeps map[string]float64
}

func New(values map[string]float64) Table {
	logeps := make(map[string]float64, len(values))
	for symbol, value := range values {
		logeps[symbol] = value
	}
	return Table{logeps: logeps}
}

// Default returns the Asplund et al. (2009) reference set adopted by the
// Reichert et al. (2020) catalogue.
func Default() Table {
	return New(map[string]float64{
		"Mg": 7.60,
		"Sc": 3.15,
		"Ti": 4.95,
		"Cr": 5.64,
		"Mn": 5.43,
		"Ni": 6.22,
		"Zn": 4.56,
		"Sr": 2.87,
		"Y":  2.21,
		"Ba": 2.18,
		"Eu": 0.52,
	})
}

// Load reads an alternate reference set from a YAML file mapping element
// symbols to logeps values.
func Load(path string) (Table, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return Table{}, err
	}
	values := map[string]float64{}
	if err := yaml.Unmarshal(blob, &values); err != nil {
		return Table{}, fmt.Errorf("parse solar table %s: %w", path, err)
	}
	if len(values) == 0 {
		return Table{}, fmt.Errorf("solar table %s is empty", path)
	}
	return New(values), nil
}

func (t Table) Logeps(element string) (float64, bool) {
	v, ok := t.logeps[element]
	return v, ok
}

func (t Table) Has(element string) bool {
	_, ok := t.logeps[element]
	return ok
}

func (t Table) Elements() []string {
	out := make([]string, 0, len(t.logeps))
	for symbol := range t.logeps {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out
}
