package pipeline

import (
	"bytes"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"stellab/internal/config"
	"stellab/internal/table"
	"stellab/internal/util"
)

// ParseXLSX ingests an observation table from spreadsheet content. The
// first sheet is read; fully empty rows are skipped and the remaining rows
// go through the same canonicalization core as text files.
func ParseXLSX(cfg config.Config, content []byte) (*table.Table, []DeriveOutcome, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rawRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}

	var rows [][]string
	for _, row := range rawRows {
		cells := trimRow(row)
		if len(cells) == 0 {
			continue
		}
		rows = append(rows, cells)
	}
	return buildTable(cfg, rows)
}

// ParseXLSXFile is ParseXLSX over a file path.
func ParseXLSXFile(cfg config.Config, path string) (*table.Table, []DeriveOutcome, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return ParseXLSX(cfg, blob)
}

// trimRow normalizes cell whitespace and drops trailing empty cells, which
// excelize reports for formatted-but-blank ranges.
func trimRow(row []string) []string {
	out := make([]string, 0, len(row))
	for _, c := range row {
		out = append(out, util.NormalizeSpaces(c))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}
