package pipeline

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"stellab/internal/config"
	"stellab/internal/table"
	"stellab/internal/util"
)

// ParseHTML ingests an observation table from an HTML document, e.g. a
// saved catalogue result page. The first <table> with at least one row is
// used; its tr/th/td cells feed the shared canonicalization core.
func ParseHTML(cfg config.Config, html string) (*table.Table, []DeriveOutcome, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, err
	}

	var rows [][]string
	doc.Find("table").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, util.NormalizeSpaces(cell.Text()))
			})
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		})
		return len(rows) == 0
	})
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no table rows in document")
	}
	return buildTable(cfg, rows)
}
