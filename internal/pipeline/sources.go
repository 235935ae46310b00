package pipeline

import (
	"fmt"
	"os"

	"stellab/internal"
	"stellab/internal/config"
	"stellab/internal/table"
)

// ParseSource dispatches a file to the ingestion front-end for its format.
func ParseSource(cfg config.Config, source internal.TableSource, path string) (*table.Table, []DeriveOutcome, error) {
	switch source {
	case internal.SourceText:
		return ParseFile(cfg, path)
	case internal.SourceXLSX:
		return ParseXLSXFile(cfg, path)
	case internal.SourceHTML:
		blob, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		return ParseHTML(cfg, string(blob))
	case internal.SourcePDF:
		return ParsePDFFile(cfg, path)
	default:
		return nil, nil, fmt.Errorf("unsupported table source: %s", source)
	}
}
