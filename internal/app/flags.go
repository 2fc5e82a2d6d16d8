package app

import (
	"flag"
	"fmt"
	"strconv"

	"cellmachine/internal/options"
	"cellmachine/internal/rule"
	"cellmachine/internal/seed"
)

// Config represents the command-line parameters shared by the binaries.
type Config struct {
	// Options is a canonical options string. When set it replaces every
	// simulation flag except Format.
	Options string

	Steps    int
	Rule     string
	Label    string
	SeedFile string
	Density  OptionalFloat
	InitMask string
	NoWrap   bool
	Delay    int
	Width    int
	Height   int
	Scale    int
	Seed     int64
	Palette  string
	Format   string

	TPS int
}

// NewConfig returns a Config populated with the simulation defaults.
func NewConfig() *Config {
	def := options.DefaultConfig()
	return &Config{
		Steps:   def.Steps,
		Rule:    def.Rule.Label(),
		Delay:   def.DelayCS,
		Width:   def.Dimensions.Width,
		Height:  def.Dimensions.Height,
		Scale:   def.Dimensions.Scale,
		Seed:    def.RandomSeed,
		Palette: def.Palette.String(),
		Format:  def.Format.String(),
		TPS:     60,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Options, "options", c.Options, "canonical options string (overrides simulation flags)")
	fs.IntVar(&c.Steps, "steps", c.Steps, "number of generations to simulate")
	fs.StringVar(&c.Rule, "rule", c.Rule, "life-like rule in B#/S# format")
	fs.StringVar(&c.Label, "label", c.Label, "display label for the rule (defaults to the rule)")
	fs.StringVar(&c.SeedFile, "seed-file", c.SeedFile, "path to a file of \"x y\" coordinates to seed the grid")
	fs.Var(&c.Density, "density", "fraction (0.0-1.0) of cells initially alive")
	fs.StringVar(&c.InitMask, "init-mask", c.InitMask, "square 0/1 stamp mask in row-major order, e.g. 010111010")
	fs.BoolVar(&c.NoWrap, "no-wrap", c.NoWrap, "disable toroidal world wrapping")
	fs.IntVar(&c.Delay, "delay", c.Delay, "frame delay in centiseconds")
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random number generator")
	fs.StringVar(&c.Palette, "palette", c.Palette, "colour palette name")
	fs.StringVar(&c.Format, "format", c.Format, "output format (gif or mp4)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "viewer ticks per second")
}

// BuildOptions validates the flags and assembles run options.
func (c *Config) BuildOptions() (options.Options, error) {
	format, err := options.ParseOutputFormat(c.Format)
	if err != nil {
		return options.Options{}, err
	}

	if c.Options != "" {
		o, err := options.Deserialize(c.Options)
		if err != nil {
			return options.Options{}, fmt.Errorf("parse -options: %w", err)
		}
		cfg := o.Config()
		cfg.Format = format
		return options.New(cfg)
	}

	cfg := options.DefaultConfig()
	if cfg.Rule, err = rule.Parse(c.Rule); err != nil {
		return options.Options{}, fmt.Errorf("parse -rule: %w", err)
	}
	cfg.RuleLabel = c.Label
	cfg.Steps = c.Steps
	cfg.Wrap = !c.NoWrap
	cfg.DelayCS = c.Delay
	cfg.Dimensions = options.Dimensions{Width: c.Width, Height: c.Height, Scale: c.Scale}
	cfg.RandomSeed = c.Seed
	cfg.Format = format
	if cfg.Palette, err = options.ParsePalette(c.Palette); err != nil {
		return options.Options{}, err
	}
	if c.Density.Valid {
		cfg.Density = options.Float(c.Density.Value)
	}
	if c.InitMask != "" {
		m, err := seed.ParseMask(c.InitMask)
		if err != nil {
			return options.Options{}, fmt.Errorf("parse -init-mask: %w", err)
		}
		cfg.Mask = &m
	}
	if c.SeedFile != "" {
		lines, err := seed.ReadCellsFile(c.SeedFile)
		if err != nil {
			return options.Options{}, err
		}
		if err := seed.CheckBounds(lines, c.Width, c.Height); err != nil {
			return options.Options{}, fmt.Errorf("seed file %s: %w", c.SeedFile, err)
		}
		if len(lines) == 0 {
			return options.Options{}, fmt.Errorf("seed file %s contains no coordinates", c.SeedFile)
		}
		cfg.SeedCells = seed.Cells(lines)
	}
	return options.New(cfg)
}

// OptionalFloat is a flag.Value that remembers whether it was set.
type OptionalFloat struct {
	Value float64
	Valid bool
}

// String implements flag.Value.
func (f *OptionalFloat) String() string {
	if f == nil || !f.Valid {
		return ""
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}

// Set implements flag.Value.
func (f *OptionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	f.Value, f.Valid = v, true
	return nil
}
