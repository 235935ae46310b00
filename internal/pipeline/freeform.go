package pipeline

import (
	"fmt"
	"math"
	"os"
	"strings"

	"stellab/internal/config"
	"stellab/internal/table"
	"stellab/internal/util"
)

// ParseFile ingests a free-form whitespace-delimited observation table. The
// file may open with a single header line (any line containing a letter is
// taken as one); '#' lines are comments. The returned outcomes list one
// entry per attempted ratio derivation.
func ParseFile(cfg config.Config, path string) (*table.Table, []DeriveOutcome, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return ParseText(cfg, string(blob))
}

// ParseText is ParseFile over in-memory content.
func ParseText(cfg config.Config, content string) (*table.Table, []DeriveOutcome, error) {
	var rows [][]string
	for _, line := range splitLines(content) {
		if strings.HasPrefix(line, "#") {
			continue
		}
		rows = append(rows, strings.Fields(line))
	}
	return buildTable(cfg, rows)
}

// buildTable is the canonicalization core shared by every front-end: header
// detection, naming, numeric coercion, sentinel masking, de-duplication and
// ratio derivation over rows of string cells.
func buildTable(cfg config.Config, rows [][]string) (*table.Table, []DeriveOutcome, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data rows")
	}

	var headerTokens []string
	dataRows := rows
	if rowHasLetter(rows[0]) {
		headerTokens = rows[0]
		dataRows = rows[1:]
	}
	if len(dataRows) == 0 {
		return nil, nil, fmt.Errorf("no data rows below header")
	}

	numCols := 0
	for _, row := range dataRows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}

	names := columnNames(headerTokens, numCols)
	columns := make([][]float64, numCols)
	for i := range columns {
		columns[i] = make([]float64, len(dataRows))
	}
	for r, row := range dataRows {
		for c := 0; c < numCols; c++ {
			if c < len(row) {
				columns[c][r] = parseFloat(row[c])
			} else {
				columns[c][r] = math.NaN()
			}
		}
	}

	t, err := table.New(names, columns)
	if err != nil {
		return nil, nil, err
	}
	t.Mask(cfg.MissingSentinel)

	var outcomes []DeriveOutcome
	if headerTokens != nil {
		outcomes = deriveRatioColumns(t)
	}
	return t, outcomes, nil
}

// columnNames keeps raw header tokens verbatim when they line up with the
// data width, preserving bracketed notation like "[Fe/H]". On a mismatch
// each column falls back to its normalized token, or a generated colN name.
// Headerless tables get col0, col1, ... in file order.
func columnNames(headerTokens []string, numCols int) []string {
	names := make([]string, numCols)
	switch {
	case headerTokens == nil:
		for i := range names {
			names[i] = fmt.Sprintf("col%d", i)
		}
	case len(headerTokens) == numCols:
		for i, tok := range headerTokens {
			names[i] = strings.TrimSpace(tok)
		}
	default:
		for i := range names {
			if i < len(headerTokens) {
				names[i] = util.NormalizeColumnName(headerTokens[i])
			} else {
				names[i] = fmt.Sprintf("col%d", i)
			}
		}
	}
	return names
}

func rowHasLetter(row []string) bool {
	for _, cell := range row {
		if util.HasLetter(cell) {
			return true
		}
	}
	return false
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
