package pipeline

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"stellab/internal"
	"stellab/internal/solar"
	"stellab/internal/table"
)

var (
	// Bracketed iron-metallicity names, tolerating ionization-stage
	// suffixes: "[Fe/H]", "[FeII/H]", "Fe I / H".
	reIronColumn = regexp.MustCompile(`(?i)\[?\s*fe\s*(?:ii|i)?\s*/\s*h\s*\]?`)

	// Bracketed hydrogen-ratio names like "[Eu/H]"; the element token is
	// captured as written.
	reBracketH = regexp.MustCompile(`^\[\s*([^\]/]+)\s*/\s*H\s*\]`)

	reLeadingAlnum = regexp.MustCompile(`^[A-Za-z0-9]+`)
)

// RatioDeriver computes bracketed abundance ratios against an injected solar
// reference. It is pure: same inputs, same outputs, no state.
type RatioDeriver struct {
	sun solar.Table
}

func NewRatioDeriver(sun solar.Table) RatioDeriver {
	return RatioDeriver{sun: sun}
}

// ToSolar returns [X/H] = logeps - logeps_solar(X). An element missing from
// the reference table is a configuration error; a non-finite input is a
// normal per-row condition and yields NaN.
func (d RatioDeriver) ToSolar(element string, logeps float64) (float64, error) {
	ref, ok := d.sun.Logeps(element)
	if !ok {
		return math.NaN(), fmt.Errorf("no solar reference value for element %s (have: %s)",
			element, strings.Join(d.sun.Elements(), ", "))
	}
	return ratioToSolar(logeps, ref), nil
}

// ToIron returns [X/Fe] = [X/H] - [Fe/H], NaN unless both operands are
// finite.
func (d RatioDeriver) ToIron(xh, feh float64) float64 {
	return ratioToIron(xh, feh)
}

func ratioToSolar(logeps, solarLogeps float64) float64 {
	if !isFinite(logeps) {
		return math.NaN()
	}
	return logeps - solarLogeps
}

func ratioToIron(xh, feh float64) float64 {
	if !isFinite(xh) || !isFinite(feh) {
		return math.NaN()
	}
	return xh - feh
}

// DeriveOutcome records one attempt to synthesize a ratio column, so callers
// can see which derivations succeeded without any of them aborting
// ingestion.
type DeriveOutcome struct {
	Source  string
	Derived string
	Err     error
}

// deriveRatioColumns aligns a header-bearing table with the canonical
// bracket notation: it locates an iron-metallicity column, aliases it as
// "[Fe/H]" when that name is absent, and appends "[X/Fe]" for every other
// non-error abundance column. Failures are confined to their own candidate.
func deriveRatioColumns(t *table.Table) []DeriveOutcome {
	ironCol := findIronColumn(t)
	if ironCol == "" {
		return nil
	}

	if !t.Has("[Fe/H]") {
		src, _ := t.Column(ironCol)
		alias := make([]float64, len(src))
		copy(alias, src)
		if err := t.Append("[Fe/H]", alias); err != nil {
			return []DeriveOutcome{{Source: ironCol, Derived: "[Fe/H]", Err: err}}
		}
	}
	feh, _ := t.Column("[Fe/H]")

	var outcomes []DeriveOutcome
	for _, col := range t.Names() {
		if strings.Contains(strings.ToLower(col), "err") {
			continue
		}
		if col == "[Fe/H]" {
			continue
		}
		elem := elementToken(col)
		if elem == "" || strings.EqualFold(elem, "fe") {
			continue
		}
		derived := internal.RatioName(elem)
		if t.Has(derived) {
			continue
		}

		src, _ := t.Column(col)
		values := make([]float64, len(src))
		for i := range src {
			values[i] = ratioToIron(src[i], feh[i])
		}
		outcomes = append(outcomes, DeriveOutcome{
			Source:  col,
			Derived: derived,
			Err:     t.Append(derived, values),
		})
	}
	return outcomes
}

// findIronColumn walks the priority chain for an iron-metallicity column:
// explicit bracketed notation first, then any name carrying both "fe" and
// "h" (error columns excluded), then a bare "fe" name or prefix.
func findIronColumn(t *table.Table) string {
	names := t.Names()
	for _, col := range names {
		if strings.Contains(strings.ToLower(col), "err") {
			continue
		}
		if reIronColumn.MatchString(col) {
			return col
		}
	}
	for _, col := range names {
		kl := strings.ToLower(col)
		if strings.Contains(kl, "err") {
			continue
		}
		if strings.Contains(kl, "fe") && strings.Contains(kl, "h") {
			return col
		}
	}
	for _, col := range names {
		kl := strings.ToLower(col)
		if kl == "fe" || strings.HasPrefix(kl, "fe") {
			return col
		}
	}
	return ""
}

// elementToken extracts the element symbol a column name refers to: the
// bracketed "[X/H]" form when present, otherwise the leading alphanumeric
// run. The fallback is a knowingly loose heuristic — a name like "sigma_Fe"
// extracts "sigma" — kept because downstream consumers depend on the exact
// column set it produces.
func elementToken(col string) string {
	if m := reBracketH.FindStringSubmatch(col); m != nil {
		return strings.TrimSpace(m[1])
	}
	return reLeadingAlnum.FindString(col)
}
