// Package options holds the validated, immutable configuration of one
// simulation run and its canonical string encoding.
package options

import (
	"math"

	"cellmachine/internal/core"
	"cellmachine/internal/rule"
	"cellmachine/internal/seed"
)

const (
	DefaultSteps   = 100
	DefaultDelayCS = 6
	DefaultWidth   = 200
	DefaultHeight  = 200
	DefaultScale   = 4
)

// Dimensions are the grid size plus the render-time magnification per cell.
type Dimensions struct {
	Width  int
	Height int
	Scale  int
}

// DefaultDimensions returns a 200x200 grid rendered at scale 4.
func DefaultDimensions() Dimensions {
	return Dimensions{Width: DefaultWidth, Height: DefaultHeight, Scale: DefaultScale}
}

// Config is the mutable input to New. Pointer fields are optional.
type Config struct {
	Steps int
	Rule  rule.Rule
	// RuleLabel is the display label; empty means Rule.Label().
	RuleLabel string
	Density   *float64
	Mask      *seed.Mask
	SeedCells []seed.Cell
	Wrap      bool
	DelayCS   int

	Dimensions Dimensions
	RandomSeed int64
	Format     OutputFormat
	Palette    Palette
}

// DefaultConfig returns the standard configuration: Conway's Life on a
// wrapped 200x200 grid seeded at the default random density.
func DefaultConfig() Config {
	return Config{
		Steps:      DefaultSteps,
		Rule:       rule.DefaultLife(),
		Wrap:       true,
		DelayCS:    DefaultDelayCS,
		Dimensions: DefaultDimensions(),
		RandomSeed: seed.DefaultRandomSeed,
		Format:     FormatGIF,
		Palette:    Paperback2,
	}
}

// Float returns a pointer to v, for Config.Density.
func Float(v float64) *float64 { return &v }

// Options is a validated run configuration. The zero value is not valid;
// build one with New or Deserialize.
type Options struct {
	steps      int
	rule       rule.Rule
	ruleLabel  string
	density    float64
	hasDensity bool
	mask       seed.Mask
	hasMask    bool
	seedCells  []seed.Cell
	wrap       bool
	delayCS    int
	dims       Dimensions
	randomSeed int64
	format     OutputFormat
	palette    Palette
}

// New validates every field of cfg and returns the immutable Options.
func New(cfg Config) (Options, error) {
	if cfg.Steps <= 0 {
		return Options{}, core.Errorf(core.KindConfiguration, "steps must be positive, got %d", cfg.Steps)
	}
	if cfg.Rule.IsZero() {
		return Options{}, core.Errorf(core.KindConfiguration, "rule must be provided")
	}
	if cfg.Density != nil {
		d := *cfg.Density
		if math.IsNaN(d) || d < 0 || d > 1 {
			return Options{}, core.Errorf(core.KindConfiguration, "density must be between 0.0 and 1.0 inclusive, got %v", d)
		}
	}
	if cfg.Mask != nil && cfg.Mask.IsZero() {
		return Options{}, core.Errorf(core.KindConfiguration, "init mask is empty")
	}
	if len(cfg.SeedCells) > 0 && cfg.Mask != nil {
		return Options{}, core.Errorf(core.KindConfiguration, "seed cells and init mask are mutually exclusive")
	}
	if cfg.DelayCS <= 0 {
		return Options{}, core.Errorf(core.KindConfiguration, "delay must be positive, got %d", cfg.DelayCS)
	}
	d := cfg.Dimensions
	if d.Width <= 0 || d.Height <= 0 || d.Scale <= 0 {
		return Options{}, core.Errorf(core.KindConfiguration,
			"dimensions and scale must be positive, got %dx%d scale %d", d.Width, d.Height, d.Scale)
	}
	if !cfg.Format.Valid() {
		return Options{}, core.Errorf(core.KindConfiguration, "unknown output format %v", cfg.Format)
	}
	if !cfg.Palette.Valid() {
		return Options{}, core.Errorf(core.KindConfiguration, "unknown palette %v", cfg.Palette)
	}

	o := Options{
		steps:      cfg.Steps,
		rule:       cfg.Rule,
		ruleLabel:  cfg.RuleLabel,
		wrap:       cfg.Wrap,
		delayCS:    cfg.DelayCS,
		dims:       d,
		randomSeed: cfg.RandomSeed,
		format:     cfg.Format,
		palette:    cfg.Palette,
	}
	if o.ruleLabel == "" {
		o.ruleLabel = cfg.Rule.Label()
	}
	if cfg.Density != nil {
		o.density, o.hasDensity = *cfg.Density, true
	}
	if cfg.Mask != nil {
		o.mask, o.hasMask = *cfg.Mask, true
	}
	if len(cfg.SeedCells) > 0 {
		o.seedCells = append([]seed.Cell(nil), cfg.SeedCells...)
	}
	return o, nil
}

// Config returns a copy of the configuration, for deriving new Options.
func (o Options) Config() Config {
	cfg := Config{
		Steps:      o.steps,
		Rule:       o.rule,
		RuleLabel:  o.ruleLabel,
		SeedCells:  o.SeedCells(),
		Wrap:       o.wrap,
		DelayCS:    o.delayCS,
		Dimensions: o.dims,
		RandomSeed: o.randomSeed,
		Format:     o.format,
		Palette:    o.palette,
	}
	if o.hasDensity {
		cfg.Density = Float(o.density)
	}
	if o.hasMask {
		m := o.mask
		cfg.Mask = &m
	}
	return cfg
}

func (o Options) Steps() int             { return o.steps }
func (o Options) Rule() rule.Rule        { return o.rule }
func (o Options) RuleLabel() string      { return o.ruleLabel }
func (o Options) Wrap() bool             { return o.wrap }
func (o Options) DelayCS() int           { return o.delayCS }
func (o Options) Dimensions() Dimensions { return o.dims }
func (o Options) RandomSeed() int64      { return o.randomSeed }
func (o Options) Format() OutputFormat   { return o.format }
func (o Options) Palette() Palette       { return o.palette }

// Density returns the configured density, if any.
func (o Options) Density() (float64, bool) { return o.density, o.hasDensity }

// Mask returns the configured stamp mask, if any.
func (o Options) Mask() (seed.Mask, bool) { return o.mask, o.hasMask }

// SeedCells returns a copy of the explicit seed coordinates.
func (o Options) SeedCells() []seed.Cell {
	if len(o.seedCells) == 0 {
		return nil
	}
	return append([]seed.Cell(nil), o.seedCells...)
}

// SeedSource converts the options into a seeding strategy selection.
func (o Options) SeedSource() seed.Source {
	src := seed.Source{
		Cells:      o.SeedCells(),
		Density:    o.density,
		HasDensity: o.hasDensity,
		Seed:       o.randomSeed,
	}
	if o.hasMask {
		m := o.mask
		src.Mask = &m
	}
	return src
}

// SinkConfig returns the render settings a frame encoder needs.
func (o Options) SinkConfig() core.SinkConfig {
	return core.SinkConfig{
		Width:   o.dims.Width,
		Height:  o.dims.Height,
		Scale:   o.dims.Scale,
		DelayCS: o.delayCS,
		Dead:    o.palette.Dead(),
		Alive:   o.palette.Alive(),
	}
}
