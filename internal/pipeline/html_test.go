package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stellab/internal/config"
)

func TestParseHTML(t *testing.T) {
	html := `<html><body>
<p>Catalogue excerpt</p>
<table>
  <tr><th>[Fe/H]</th><th>err</th><th>[Eu/H]</th></tr>
  <tr><td>-2.50</td><td>0.10</td><td>0.10</td></tr>
  <tr><td>-1.80</td><td>0.12</td><td>30.0</td></tr>
</table>
</body></html>`

	tbl, outcomes, err := ParseHTML(config.Default(), html)
	require.NoError(t, err)

	assert.Equal(t, []string{"[Fe/H]", "err", "[Eu/H]", "[Eu/Fe]"}, tbl.Names())
	assert.Equal(t, 2, tbl.NumRows())

	euFe := column(t, tbl, "[Eu/Fe]")
	assert.InDelta(t, 2.60, euFe[0], 1e-9)
	assert.True(t, math.IsNaN(euFe[1]))
	require.Len(t, outcomes, 1)
}

func TestParseHTMLNoTable(t *testing.T) {
	_, _, err := ParseHTML(config.Default(), "<html><body><p>nothing here</p></body></html>")
	assert.Error(t, err)
}

func TestParseHTMLFirstTableWins(t *testing.T) {
	html := `<table><tr><th>[Fe/H]</th></tr><tr><td>-2.0</td></tr></table>
<table><tr><th>other</th></tr><tr><td>1.0</td></tr></table>`

	tbl, _, err := ParseHTML(config.Default(), html)
	require.NoError(t, err)
	assert.True(t, tbl.Has("[Fe/H]"))
	assert.False(t, tbl.Has("other"))
}
