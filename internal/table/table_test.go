package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeduplicatesNames(t *testing.T) {
	tbl, err := New(
		[]string{"err", "err", "val", "err"},
		[][]float64{{1}, {2}, {3}, {4}},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"err", "err_1", "val", "err_2"}, tbl.Names())

	first, _ := tbl.Column("err")
	assert.Equal(t, []float64{1}, first)
	second, _ := tbl.Column("err_1")
	assert.Equal(t, []float64{2}, second)
}

func TestNewRejectsUnevenColumns(t *testing.T) {
	_, err := New([]string{"a", "b"}, [][]float64{{1, 2}, {3}})
	assert.Error(t, err)

	_, err = New([]string{"a"}, [][]float64{{1}, {2}})
	assert.Error(t, err)
}

func TestAppend(t *testing.T) {
	tbl, err := New([]string{"a"}, [][]float64{{1, 2}})
	require.NoError(t, err)

	require.NoError(t, tbl.Append("b", []float64{3, 4}))
	assert.Equal(t, []string{"a", "b"}, tbl.Names())
	assert.Equal(t, 1, tbl.Index("b"))

	assert.Error(t, tbl.Append("b", []float64{5, 6}))
	assert.Error(t, tbl.Append("c", []float64{5}))
}

func TestMask(t *testing.T) {
	tbl, err := New([]string{"a", "b"}, [][]float64{{30.0, 1.5}, {2.5, 30.0}})
	require.NoError(t, err)

	tbl.Mask(30.0)

	a, _ := tbl.Column("a")
	assert.True(t, math.IsNaN(a[0]))
	assert.Equal(t, 1.5, a[1])
	b, _ := tbl.Column("b")
	assert.Equal(t, 2.5, b[0])
	assert.True(t, math.IsNaN(b[1]))
}

func TestIndexMissing(t *testing.T) {
	tbl, err := New([]string{"a"}, [][]float64{{1}})
	require.NoError(t, err)
	assert.Equal(t, -1, tbl.Index("zzz"))
	assert.False(t, tbl.Has("zzz"))
}
