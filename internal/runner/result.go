package runner

import (
	"math"
	"strconv"
	"strings"

	"cellmachine/internal/options"
	"cellmachine/internal/seed"
)

// Result is the outcome of a rendered simulation. The encoded media is only
// reachable through Bytes and SetBytes, which copy.
type Result struct {
	data []byte

	FileName  string
	Format    options.OutputFormat
	MediaType string
	Palette   options.Palette

	StepsRequested int
	StepsSimulated int
	FinalAlive     int

	RuleLabel  string
	Dimensions options.Dimensions
	DelayCS    int
	Wrap       bool

	// RequestedDensity is the configured density, nil when unset.
	RequestedDensity *float64
	// EffectiveDensity is the density seeding actually used: nil for
	// explicit cells, the requested density for masks, and the requested
	// or default density for random seeding.
	EffectiveDensity *float64
	MaskLabel        string
	SeedCellCount    int
	RandomSeed       int64
	// UsedRandomness reports whether the RNG seed influenced the grid.
	UsedRandomness bool

	// Summary is the canonical options string that produced this result.
	Summary string
}

// Bytes returns a copy of the encoded media.
func (r Result) Bytes() []byte {
	if r.data == nil {
		return nil
	}
	return append([]byte(nil), r.data...)
}

// SetBytes stores a copy of data as the encoded media.
func (r *Result) SetBytes(data []byte) {
	if data == nil {
		r.data = nil
		return
	}
	r.data = append([]byte(nil), data...)
}

// Size returns the length of the encoded media.
func (r Result) Size() int { return len(r.data) }

func newResult(opts options.Options, out Outcome) Result {
	src := opts.SeedSource()
	res := Result{
		Format:         opts.Format(),
		MediaType:      opts.Format().MediaType(),
		Palette:        opts.Palette(),
		StepsRequested: out.StepsRequested,
		StepsSimulated: out.StepsSimulated,
		FinalAlive:     out.FinalAlive,
		RuleLabel:      opts.RuleLabel(),
		Dimensions:     opts.Dimensions(),
		DelayCS:        opts.DelayCS(),
		Wrap:           opts.Wrap(),
		SeedCellCount:  len(src.Cells),
		RandomSeed:     opts.RandomSeed(),
		Summary:        opts.Serialize(),
	}
	if d, ok := opts.Density(); ok {
		res.RequestedDensity = options.Float(d)
	}
	if m, ok := opts.Mask(); ok {
		res.MaskLabel = m.Label()
	}
	res.EffectiveDensity = EffectiveDensity(opts)
	switch src.Strategy() {
	case seed.StrategyRandom, seed.StrategyScatterMask:
		res.UsedRandomness = true
	}
	res.FileName = FileName(opts, out.StepsSimulated)
	return res
}

// EffectiveDensity returns the density the seeding strategy for opts uses.
func EffectiveDensity(opts options.Options) *float64 {
	d, ok := opts.Density()
	switch opts.SeedSource().Strategy() {
	case seed.StrategyCells:
		return nil
	case seed.StrategyScatterMask, seed.StrategyCenterMask:
		if !ok {
			return nil
		}
		return options.Float(d)
	default:
		if !ok {
			d = seed.DefaultDensity
		}
		return options.Float(d)
	}
}

// FileName derives the output name from the rule label, mask, requested
// density and simulated step count, e.g. "B3_S23_010111010_20_57s.gif".
func FileName(opts options.Options, stepsSimulated int) string {
	parts := []string{sanitizeRule(opts.RuleLabel())}
	if parts[0] == "" {
		parts[0] = "life"
	}
	if m, ok := opts.Mask(); ok {
		parts = append(parts, m.Label())
	}
	if d, ok := opts.Density(); ok {
		parts = append(parts, densityPercent(d))
	}
	parts = append(parts, strconv.Itoa(stepsSimulated)+"s")
	return strings.Join(parts, "_") + "." + opts.Format().Extension()
}

func sanitizeRule(label string) string {
	s := strings.Map(func(c rune) rune {
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			return c
		}
		return '_'
	}, strings.TrimSpace(label))
	return strings.Trim(s, "_")
}

func densityPercent(d float64) string {
	pct := math.Round(d * 100)
	pct = math.Max(0, math.Min(100, pct))
	return strconv.Itoa(int(pct))
}
