package pipeline

import (
	"bytes"
	"os"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"stellab/internal/config"
	"stellab/internal/table"
)

// ParsePDF ingests an observation table embedded in a PDF by extracting the
// plain text of every page and feeding the lines through the free-form text
// path. Pages that fail text extraction are skipped.
func ParsePDF(cfg config.Config, content []byte) (*table.Table, []DeriveOutcome, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, nil, err
	}

	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		lines = append(lines, splitLines(text)...)
	}
	return ParseText(cfg, strings.Join(lines, "\n"))
}

// ParsePDFFile is ParsePDF over a file path.
func ParsePDFFile(cfg config.Config, path string) (*table.Table, []DeriveOutcome, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return ParsePDF(cfg, blob)
}
