package internal

import (
	"fmt"
	"strings"
)

type TableSource string

const (
	SourceText TableSource = "text"
	SourceXLSX TableSource = "xlsx"
	SourceHTML TableSource = "html"
	SourcePDF  TableSource = "pdf"
)

// ElementAbundance carries the measured log-abundance of one element
// together with its total uncertainty and the derived solar-relative ratios.
// Absent measurements are NaN, never zero.
type ElementAbundance struct {
	Symbol string
	Logeps float64
	ETot   float64
	XH     float64
	XFe    float64
}

// TracerErrors holds the per-source uncertainty components reported for the
// tracer element only (stellar temperature, gravity, metallicity, velocity,
// statistics, noise).
type TracerErrors struct {
	Temp     float64
	Logg     float64
	FeH      float64
	Velocity float64
	Stat     float64
	Noise    float64
}

// StarRecord is one normalized catalogue row. It is built once per accepted
// input line and never mutated afterwards.
type StarRecord struct {
	ID         string
	Galaxy     string
	FeH        float64
	FeHErr     float64
	Tracer     string
	Abundances []ElementAbundance
	TracerErrs TracerErrors
}

// Value resolves a numeric field by its canonical output name, e.g.
// "logeps(Eu)", "sigma_Mg", "[Ba/Fe]", "e_temp(Eu)". ID and Galaxy are not
// numeric fields and are read from the struct directly.
func (r StarRecord) Value(name string) (float64, bool) {
	switch name {
	case "[Fe/H]":
		return r.FeH, true
	case "e_[Fe/H]", "sigma_Fe":
		return r.FeHErr, true
	}

	tracerFields := []struct {
		prefix string
		value  float64
	}{
		{"e_temp(", r.TracerErrs.Temp},
		{"e_logg(", r.TracerErrs.Logg},
		{"e_[Fe/H](", r.TracerErrs.FeH},
		{"e_v(", r.TracerErrs.Velocity},
		{"e_stat(", r.TracerErrs.Stat},
		{"e_noise(", r.TracerErrs.Noise},
	}
	for _, f := range tracerFields {
		if sym, ok := cutWrapped(name, f.prefix, ")"); ok && sym == r.Tracer {
			return f.value, true
		}
	}

	if sym, ok := cutWrapped(name, "logeps(", ")"); ok {
		if a := r.abundance(sym); a != nil {
			return a.Logeps, true
		}
	}
	if sym, ok := cutWrapped(name, "e_tot(", ")"); ok {
		if a := r.abundance(sym); a != nil {
			return a.ETot, true
		}
	}
	if sym, ok := strings.CutPrefix(name, "sigma_"); ok {
		if a := r.abundance(sym); a != nil {
			return a.ETot, true
		}
	}
	if sym, ok := cutWrapped(name, "[", "/H]"); ok {
		if a := r.abundance(sym); a != nil {
			return a.XH, true
		}
	}
	if sym, ok := cutWrapped(name, "[", "/Fe]"); ok {
		if a := r.abundance(sym); a != nil {
			return a.XFe, true
		}
	}

	return 0, false
}

func (r StarRecord) abundance(symbol string) *ElementAbundance {
	for i := range r.Abundances {
		if r.Abundances[i].Symbol == symbol {
			return &r.Abundances[i]
		}
	}
	return nil
}

func cutWrapped(s, prefix, suffix string) (string, bool) {
	rest, ok := strings.CutPrefix(s, prefix)
	if !ok {
		return "", false
	}
	inner, ok := strings.CutSuffix(rest, suffix)
	if !ok {
		return "", false
	}
	return inner, true
}

// RatioName formats the canonical iron-relative ratio column name for an
// element symbol, e.g. "[Eu/Fe]".
func RatioName(element string) string {
	return fmt.Sprintf("[%s/Fe]", element)
}

// HydrogenRatioName formats the canonical solar-relative ratio column name
// for an element symbol, e.g. "[Eu/H]".
func HydrogenRatioName(element string) string {
	return fmt.Sprintf("[%s/H]", element)
}
