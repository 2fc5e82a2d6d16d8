package options

import (
	"errors"
	"math"
	"testing"

	"cellmachine/internal/core"
	"cellmachine/internal/rule"
	"cellmachine/internal/seed"
)

func mustNew(t *testing.T, cfg Config) Options {
	t.Helper()
	o, err := New(cfg)
	if err != nil {
		t.Fatalf("new options: %v", err)
	}
	return o
}

func TestDefaultConfigBuilds(t *testing.T) {
	o := mustNew(t, DefaultConfig())
	if o.Steps() != 100 || o.DelayCS() != 6 || !o.Wrap() {
		t.Fatalf("unexpected defaults: steps=%d delay=%d wrap=%v", o.Steps(), o.DelayCS(), o.Wrap())
	}
	if o.Dimensions() != (Dimensions{200, 200, 4}) {
		t.Fatalf("dimensions = %+v", o.Dimensions())
	}
	if o.RuleLabel() != "B3/S23" {
		t.Fatalf("label = %q, want B3/S23", o.RuleLabel())
	}
	if _, ok := o.Density(); ok {
		t.Fatal("default options should not carry an explicit density")
	}
	if o.Palette() != Paperback2 || o.Format() != FormatGIF {
		t.Fatalf("palette=%v format=%v", o.Palette(), o.Format())
	}
	if o.RandomSeed() != seed.DefaultRandomSeed {
		t.Fatalf("seed = %d", o.RandomSeed())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	m, _ := seed.ParseMask("010111010")
	cases := map[string]func(*Config){
		"zero steps":       func(c *Config) { c.Steps = 0 },
		"negative delay":   func(c *Config) { c.DelayCS = -1 },
		"zero width":       func(c *Config) { c.Dimensions.Width = 0 },
		"zero height":      func(c *Config) { c.Dimensions.Height = 0 },
		"zero scale":       func(c *Config) { c.Dimensions.Scale = 0 },
		"density too high": func(c *Config) { c.Density = Float(1.01) },
		"negative density": func(c *Config) { c.Density = Float(-0.1) },
		"nan density":      func(c *Config) { c.Density = Float(math.NaN()) },
		"missing rule":     func(c *Config) { c.Rule = rule.Rule{} },
		"empty mask":       func(c *Config) { c.Mask = &seed.Mask{} },
		"unknown palette":  func(c *Config) { c.Palette = Palette(99) },
		"unknown format":   func(c *Config) { c.Format = OutputFormat(7) },
		"cells and mask": func(c *Config) {
			c.Mask = &m
			c.SeedCells = []seed.Cell{{X: 1, Y: 1}}
		},
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		if _, err := New(cfg); !errors.Is(err, core.ErrConfiguration) {
			t.Fatalf("%s: expected configuration error, got %v", name, err)
		}
	}
}

func TestDensityBoundsAreInclusive(t *testing.T) {
	for _, d := range []float64{0, 1} {
		cfg := DefaultConfig()
		cfg.Density = Float(d)
		o := mustNew(t, cfg)
		if got, ok := o.Density(); !ok || got != d {
			t.Fatalf("density = %v (%v), want %v", got, ok, d)
		}
	}
}

func TestOptionsAreImmutable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeedCells = []seed.Cell{{X: 1, Y: 2}}
	d := 0.4
	cfg.Density = &d
	o := mustNew(t, cfg)

	cfg.SeedCells[0] = seed.Cell{X: 9, Y: 9}
	d = 0.9
	if o.SeedCells()[0] != (seed.Cell{X: 1, Y: 2}) {
		t.Fatal("options share the caller's seed cell slice")
	}
	if got, _ := o.Density(); got != 0.4 {
		t.Fatalf("density = %v, options share the caller's pointer", got)
	}
	o.SeedCells()[0] = seed.Cell{X: 7, Y: 7}
	if o.SeedCells()[0] != (seed.Cell{X: 1, Y: 2}) {
		t.Fatal("SeedCells exposed internal storage")
	}
}

func TestConfigRoundTripsThroughNew(t *testing.T) {
	m, _ := seed.ParseMask("111101111")
	cfg := DefaultConfig()
	cfg.Mask = &m
	cfg.Density = Float(0.25)
	cfg.RuleLabel = "Maze"
	o := mustNew(t, cfg)

	again := mustNew(t, o.Config())
	if again.Serialize() != o.Serialize() {
		t.Fatalf("config copy changed options: %q vs %q", again.Serialize(), o.Serialize())
	}
}

func TestSeedSourceFollowsOptions(t *testing.T) {
	m, _ := seed.ParseMask("000111000")
	cfg := DefaultConfig()
	cfg.Mask = &m
	if got := mustNew(t, cfg).SeedSource().Strategy(); got != seed.StrategyCenterMask {
		t.Fatalf("strategy = %v, want center-mask", got)
	}
	cfg.Density = Float(0.1)
	if got := mustNew(t, cfg).SeedSource().Strategy(); got != seed.StrategyScatterMask {
		t.Fatalf("strategy = %v, want scatter-mask", got)
	}
	src := mustNew(t, DefaultConfig()).SeedSource()
	if src.Strategy() != seed.StrategyRandom || src.Seed != seed.DefaultRandomSeed {
		t.Fatalf("random source = %+v", src)
	}
}

func TestSinkConfigUsesPalette(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Palette = CasioBasic
	sc := mustNew(t, cfg).SinkConfig()
	if sc.Dead != CasioBasic.Dead() || sc.Alive != CasioBasic.Alive() {
		t.Fatalf("sink colours = %v/%v", sc.Dead, sc.Alive)
	}
	if sc.Width != 200 || sc.Scale != 4 || sc.DelayCS != 6 {
		t.Fatalf("sink config = %+v", sc)
	}
}

func TestParametersListEveryGroup(t *testing.T) {
	snap := mustNew(t, DefaultConfig()).Parameters()
	if len(snap.Groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(snap.Groups))
	}
	p, ok := snap.Lookup("rule")
	if !ok || p.Value != "B3/S23" {
		t.Fatalf("rule parameter = %+v (%v)", p, ok)
	}
	if p, _ := snap.Lookup("strategy"); p.Value != "random" {
		t.Fatalf("strategy = %q", p.Value)
	}
	if p, _ := snap.Lookup("density"); p.Value != "default" {
		t.Fatalf("density = %q", p.Value)
	}
}
