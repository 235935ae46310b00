package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"stellab/internal"
	"stellab/internal/table"
)

// ElementNotFoundError reports a failed element-column lookup, carrying the
// full column list so the caller can surface or skip it.
type ElementNotFoundError struct {
	Element string
	Columns []string
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("no column found for element %q (columns: %s)",
		e.Element, strings.Join(e.Columns, ", "))
}

// resolveStrategy is one naming convention in the resolver's priority
// chain. Each is a pure function from the column list to its candidates;
// new conventions are appended to the chain without touching existing ones.
type resolveStrategy struct {
	name       string
	candidates func(names []string, element string) []string
}

var resolveChain = []resolveStrategy{
	{name: "iron-ratio", candidates: func(names []string, element string) []string {
		return exactMatches(names, internal.RatioName(element))
	}},
	{name: "hydrogen-ratio", candidates: func(names []string, element string) []string {
		return exactMatches(names, internal.HydrogenRatioName(element))
	}},
	// Whole-token and prefix matching run on the lower-cased raw name, not
	// the underscore-normalized one: "[eu/h]" keeps its token boundaries
	// while "eu_h" stays a single token, matching only by prefix.
	{name: "token", candidates: func(names []string, element string) []string {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(element)) + `\b`)
		var out []string
		for _, col := range names {
			if re.MatchString(strings.ToLower(col)) {
				out = append(out, col)
			}
		}
		return out
	}},
	{name: "prefix", candidates: func(names []string, element string) []string {
		el := strings.ToLower(element)
		var out []string
		for _, col := range names {
			if strings.HasPrefix(strings.ToLower(col), el) {
				out = append(out, col)
			}
		}
		return out
	}},
}

// FindElementColumn returns the best column for an element symbol, first
// strategy in the chain to produce candidates wins. Ties inside one strategy
// go to the first abundance-looking name (containing a slash, a bracket or
// the letter h), else the first candidate in column order.
func FindElementColumn(t *table.Table, element string) (string, error) {
	names := t.Names()
	el := strings.TrimSpace(element)
	for _, strategy := range resolveChain {
		candidates := strategy.candidates(names, el)
		if len(candidates) == 0 {
			continue
		}
		return pickAbundanceLike(candidates), nil
	}
	return "", &ElementNotFoundError{Element: el, Columns: names}
}

func exactMatches(names []string, target string) []string {
	var out []string
	for _, col := range names {
		if strings.EqualFold(col, target) {
			out = append(out, col)
		}
	}
	return out
}

func pickAbundanceLike(candidates []string) string {
	for _, col := range candidates {
		if strings.ContainsAny(col, "/[") || strings.Contains(strings.ToLower(col), "h") {
			return col
		}
	}
	return candidates[0]
}

// FindErrorColumn locates the uncertainty companion of a data column:
// suffixed name variants first, then the immediately following column when
// its name carries "err". A missing companion is a normal outcome.
func FindErrorColumn(t *table.Table, base string) (string, bool) {
	for _, cand := range []string{base + "_err", base + "err", base + "__err"} {
		if t.Has(cand) {
			return cand, true
		}
	}
	idx := t.Index(base)
	if idx < 0 {
		return "", false
	}
	names := t.Names()
	if idx+1 < len(names) && strings.Contains(names[idx+1], "err") {
		return names[idx+1], true
	}
	return "", false
}
