package pipeline

import (
	"bufio"
	"fmt"
	"iter"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"stellab/internal"
	"stellab/internal/config"
	"stellab/internal/solar"
)

// ByteRange addresses a fixed-width field by 1-indexed inclusive byte
// positions, the convention used by CDS ReadMe files.
type ByteRange struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Slice extracts and trims the addressed segment. Lines shorter than the
// range yield whatever bytes exist, possibly the empty string.
func (r ByteRange) Slice(line string) string {
	start := r.Start - 1
	if start < 0 || start >= len(line) {
		return ""
	}
	end := r.End
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[start:end])
}

type ElementRange struct {
	Symbol string    `yaml:"symbol"`
	Logeps ByteRange `yaml:"logeps"`
	ETot   ByteRange `yaml:"eTot"`
}

type TracerErrorRanges struct {
	Temp     ByteRange `yaml:"temp"`
	Logg     ByteRange `yaml:"logg"`
	FeH      ByteRange `yaml:"feH"`
	Velocity ByteRange `yaml:"velocity"`
	Stat     ByteRange `yaml:"stat"`
	Noise    ByteRange `yaml:"noise"`
}

// Layout describes the byte addressing of one fixed-width catalogue format.
type Layout struct {
	ID         ByteRange         `yaml:"id"`
	Galaxy     ByteRange         `yaml:"galaxy"`
	FeH        ByteRange         `yaml:"feH"`
	FeHErr     ByteRange         `yaml:"feHErr"`
	Elements   []ElementRange    `yaml:"elements"`
	TracerErrs TracerErrorRanges `yaml:"tracerErrors"`
}

// ReichertLayout returns the tableo3.dat byte layout from the Reichert et
// al. (2020) CDS ReadMe.
func ReichertLayout() Layout {
	return Layout{
		ID:     ByteRange{1, 30},
		Galaxy: ByteRange{32, 37},
		FeH:    ByteRange{39, 43},
		FeHErr: ByteRange{45, 48},
		Elements: []ElementRange{
			{Symbol: "Mg", Logeps: ByteRange{50, 53}, ETot: ByteRange{55, 58}},
			{Symbol: "Sc", Logeps: ByteRange{90, 94}, ETot: ByteRange{96, 99}},
			{Symbol: "Ti", Logeps: ByteRange{131, 134}, ETot: ByteRange{136, 139}},
			{Symbol: "Cr", Logeps: ByteRange{171, 174}, ETot: ByteRange{176, 179}},
			{Symbol: "Mn", Logeps: ByteRange{211, 214}, ETot: ByteRange{216, 219}},
			{Symbol: "Ni", Logeps: ByteRange{251, 254}, ETot: ByteRange{256, 259}},
			{Symbol: "Zn", Logeps: ByteRange{291, 294}, ETot: ByteRange{296, 299}},
			{Symbol: "Sr", Logeps: ByteRange{331, 335}, ETot: ByteRange{337, 340}},
			{Symbol: "Y", Logeps: ByteRange{372, 376}, ETot: ByteRange{378, 381}},
			{Symbol: "Ba", Logeps: ByteRange{413, 417}, ETot: ByteRange{419, 422}},
			{Symbol: "Eu", Logeps: ByteRange{454, 458}, ETot: ByteRange{460, 463}},
		},
		TracerErrs: TracerErrorRanges{
			Temp:     ByteRange{465, 468},
			Logg:     ByteRange{470, 473},
			FeH:      ByteRange{475, 478},
			Velocity: ByteRange{480, 483},
			Stat:     ByteRange{485, 488},
			Noise:    ByteRange{490, 493},
		},
	}
}

// LoadLayout reads a byte layout from a YAML file.
func LoadLayout(path string) (Layout, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, err
	}
	var layout Layout
	if err := yaml.Unmarshal(blob, &layout); err != nil {
		return Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if len(layout.Elements) == 0 {
		return Layout{}, fmt.Errorf("layout %s declares no elements", path)
	}
	return layout, nil
}

// CatalogueParser turns fixed-width catalogue lines into StarRecords. It
// keeps no state across lines beyond its configuration, so the same parser
// can be reused across files and calls.
type CatalogueParser struct {
	cfg            config.Config
	layout         Layout
	solarByElement map[string]float64
}

// NewCatalogueParser validates that every element in the layout has a solar
// reference value and that the tracer element is tracked. A missing entry is
// a configuration error, reported here once rather than per row.
func NewCatalogueParser(cfg config.Config, layout Layout, sun solar.Table) (*CatalogueParser, error) {
	solarByElement := make(map[string]float64, len(layout.Elements))
	tracerTracked := false
	for _, el := range layout.Elements {
		value, ok := sun.Logeps(el.Symbol)
		if !ok {
			return nil, fmt.Errorf("no solar reference value for element %s (have: %s)",
				el.Symbol, strings.Join(sun.Elements(), ", "))
		}
		solarByElement[el.Symbol] = value
		if el.Symbol == cfg.TracerElement {
			tracerTracked = true
		}
	}
	if !tracerTracked {
		return nil, fmt.Errorf("tracer element %s is not in the layout", cfg.TracerElement)
	}
	return &CatalogueParser{cfg: cfg, layout: layout, solarByElement: solarByElement}, nil
}

// ParseLine converts one catalogue line into a record. It returns nil for
// lines filtered out by provenance or by a missing tracer abundance; that is
// a normal outcome, not an error.
func (p *CatalogueParser) ParseLine(line string) *internal.StarRecord {
	if p.layout.Galaxy.Slice(line) != p.cfg.GalaxyFilter {
		return nil
	}

	tracerLogeps := math.NaN()
	for _, el := range p.layout.Elements {
		if el.Symbol == p.cfg.TracerElement {
			tracerLogeps = parseFloat(el.Logeps.Slice(line))
		}
	}
	if !isFinite(tracerLogeps) {
		return nil
	}

	feh := parseFloat(p.layout.FeH.Slice(line))
	rec := internal.StarRecord{
		ID:     p.layout.ID.Slice(line),
		Galaxy: p.cfg.GalaxyFilter,
		FeH:    feh,
		FeHErr: parseFloat(p.layout.FeHErr.Slice(line)),
		Tracer: p.cfg.TracerElement,
		TracerErrs: internal.TracerErrors{
			Temp:     parseFloat(p.layout.TracerErrs.Temp.Slice(line)),
			Logg:     parseFloat(p.layout.TracerErrs.Logg.Slice(line)),
			FeH:      parseFloat(p.layout.TracerErrs.FeH.Slice(line)),
			Velocity: parseFloat(p.layout.TracerErrs.Velocity.Slice(line)),
			Stat:     parseFloat(p.layout.TracerErrs.Stat.Slice(line)),
			Noise:    parseFloat(p.layout.TracerErrs.Noise.Slice(line)),
		},
	}

	rec.Abundances = make([]internal.ElementAbundance, 0, len(p.layout.Elements))
	for _, el := range p.layout.Elements {
		logeps := parseFloat(el.Logeps.Slice(line))
		xh := ratioToSolar(logeps, p.solarByElement[el.Symbol])
		rec.Abundances = append(rec.Abundances, internal.ElementAbundance{
			Symbol: el.Symbol,
			Logeps: logeps,
			ETot:   parseFloat(el.ETot.Slice(line)),
			XH:     xh,
			XFe:    ratioToIron(xh, feh),
		})
	}

	return &rec
}

// Records returns a restartable sequence over the accepted records of a
// catalogue file. Each range re-reads the file from the start; nothing is
// retained between passes.
func (p *CatalogueParser) Records(path string) iter.Seq2[internal.StarRecord, error] {
	return func(yield func(internal.StarRecord, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(internal.StarRecord{}, err)
			return
		}
		defer f.Close()

		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			rec := p.ParseLine(sc.Text())
			if rec == nil {
				continue
			}
			if !yield(*rec, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(internal.StarRecord{}, err)
		}
	}
}

// ParseCatalogue collects every accepted record of a file into a slice, in
// file order. Sorting for output is left to the caller.
func (p *CatalogueParser) ParseCatalogue(path string) ([]internal.StarRecord, error) {
	var out []internal.StarRecord
	for rec, err := range p.Records(path) {
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// FieldNames reproduces the canonical output column order expected by
// downstream writers: identity and iron fields first, then per element the
// measured value, total error, (tracer only) the six error components, the
// sigma alias and both derived ratios, with the trailing iron sigma alias.
func (p *CatalogueParser) FieldNames() []string {
	names := []string{"ID", "Galaxy", "[Fe/H]", "e_[Fe/H]"}
	for _, el := range p.layout.Elements {
		names = append(names,
			fmt.Sprintf("logeps(%s)", el.Symbol),
			fmt.Sprintf("e_tot(%s)", el.Symbol),
		)
		if el.Symbol == p.cfg.TracerElement {
			names = append(names,
				fmt.Sprintf("e_temp(%s)", el.Symbol),
				fmt.Sprintf("e_logg(%s)", el.Symbol),
				fmt.Sprintf("e_[Fe/H](%s)", el.Symbol),
				fmt.Sprintf("e_v(%s)", el.Symbol),
				fmt.Sprintf("e_stat(%s)", el.Symbol),
				fmt.Sprintf("e_noise(%s)", el.Symbol),
			)
		}
		names = append(names,
			fmt.Sprintf("sigma_%s", el.Symbol),
			internal.HydrogenRatioName(el.Symbol),
			internal.RatioName(el.Symbol),
		)
	}
	return append(names, "sigma_Fe")
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
