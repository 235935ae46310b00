package pipeline

import (
	"math"

	"stellab/internal"
	"stellab/internal/table"
)

// AbundanceSeries is a pair of aligned abundance columns ready for
// comparison or plotting. XErr/YErr are nil when no companion uncertainty
// column exists.
type AbundanceSeries struct {
	XColumn string
	YColumn string
	X       []float64
	Y       []float64
	XErr    []float64
	YErr    []float64
}

// ExtractAbundances resolves the columns for two element symbols, attaches
// their uncertainty companions when present, and drops every row where
// either value is NaN. Lookup failure surfaces as *ElementNotFoundError.
func ExtractAbundances(t *table.Table, xElem, yElem string) (AbundanceSeries, error) {
	xCol, err := FindElementColumn(t, xElem)
	if err != nil {
		return AbundanceSeries{}, err
	}
	yCol, err := FindElementColumn(t, yElem)
	if err != nil {
		return AbundanceSeries{}, err
	}

	x, _ := t.Column(xCol)
	y, _ := t.Column(yCol)

	var xErr, yErr []float64
	if name, ok := FindErrorColumn(t, xCol); ok {
		xErr, _ = t.Column(name)
	}
	if name, ok := FindErrorColumn(t, yCol); ok {
		yErr, _ = t.Column(name)
	}

	series := AbundanceSeries{XColumn: xCol, YColumn: yCol}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		series.X = append(series.X, x[i])
		series.Y = append(series.Y, y[i])
		if xErr != nil {
			series.XErr = append(series.XErr, xErr[i])
		}
		if yErr != nil {
			series.YErr = append(series.YErr, yErr[i])
		}
	}
	return series, nil
}

// EnsureRatioColumns guarantees a "[X/Fe]" column for every requested
// element, filling absent ones with NaN so column access downstream cannot
// fail. Existing columns are left untouched.
func EnsureRatioColumns(t *table.Table, elements []string) {
	for _, el := range elements {
		name := internal.RatioName(el)
		if t.Has(name) {
			continue
		}
		values := make([]float64, t.NumRows())
		for i := range values {
			values[i] = math.NaN()
		}
		_ = t.Append(name, values)
	}
}
