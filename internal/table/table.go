// Package table provides the canonical in-memory form of an ingested
// observation table: ordered, uniquely named float64 columns of equal length.
package table

import (
	"fmt"
	"math"
)

type Table struct {
	names []string
	cols  map[string][]float64
	rows  int
}

// New builds a table from ordered column names and their values. All columns
// must have equal length. Duplicate names are made unique by appending _1,
// _2, ... to second and later occurrences, left to right.
func New(names []string, columns [][]float64) (*Table, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("table: %d names for %d columns", len(names), len(columns))
	}
	rows := 0
	if len(columns) > 0 {
		rows = len(columns[0])
	}
	for i, col := range columns {
		if len(col) != rows {
			return nil, fmt.Errorf("table: column %q has %d rows, want %d", names[i], len(col), rows)
		}
	}

	unique := uniqueNames(names)
	t := &Table{
		names: unique,
		cols:  make(map[string][]float64, len(unique)),
		rows:  rows,
	}
	for i, name := range unique {
		t.cols[name] = columns[i]
	}
	return t, nil
}

func uniqueNames(names []string) []string {
	out := make([]string, 0, len(names))
	counts := make(map[string]int, len(names))
	for _, name := range names {
		n := counts[name]
		counts[name] = n + 1
		if n == 0 {
			out = append(out, name)
			continue
		}
		out = append(out, fmt.Sprintf("%s_%d", name, n))
	}
	return out
}

func (t *Table) NumRows() int {
	return t.rows
}

func (t *Table) NumColumns() int {
	return len(t.names)
}

// Names returns the column names in declared order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

func (t *Table) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

func (t *Table) Column(name string) ([]float64, bool) {
	col, ok := t.cols[name]
	return col, ok
}

// Index returns the position of a column in declared order, or -1.
func (t *Table) Index(name string) int {
	for i, n := range t.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Append adds a new column at the end. The name must be unused and the
// values must match the row count.
func (t *Table) Append(name string, values []float64) error {
	if _, exists := t.cols[name]; exists {
		return fmt.Errorf("table: column %q already exists", name)
	}
	if len(values) != t.rows {
		return fmt.Errorf("table: column %q has %d rows, want %d", name, len(values), t.rows)
	}
	t.names = append(t.names, name)
	t.cols[name] = values
	return nil
}

// Mask replaces every cell equal to value with NaN, across all columns.
func (t *Table) Mask(value float64) {
	for _, col := range t.cols {
		for i, v := range col {
			if v == value {
				col[i] = math.NaN()
			}
		}
	}
}
