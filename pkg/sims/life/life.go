// Package life is a stateful, steppable Life-like simulation used by the
// interactive viewer. It evolves one generation per Step using the rule,
// topology and seeding of a validated options value.
package life

import (
	"cellmachine/internal/core"
	"cellmachine/internal/options"
	"cellmachine/internal/seed"
)

// Life holds the current generation of a simulation.
type Life struct {
	opts      options.Options
	cur       *core.Grid
	gen       int
	converged bool
}

// New seeds a simulation from opts.
func New(opts options.Options) (*Life, error) {
	l := &Life{opts: opts}
	if err := l.Reset(opts.RandomSeed()); err != nil {
		return nil, err
	}
	return l, nil
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life " + l.opts.RuleLabel() }

// Options returns the options the simulation was last reset with.
func (l *Life) Options() options.Options { return l.opts }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return l.cur.Size() }

// Cells returns the current generation as 0/1 values.
func (l *Life) Cells() []uint8 { return l.cur.Bytes() }

// Grid returns a copy of the current generation.
func (l *Life) Grid() *core.Grid { return l.cur.Copy() }

// Generation counts the steps taken since the last reset.
func (l *Life) Generation() int { return l.gen }

// Converged reports whether the last step produced no change.
func (l *Life) Converged() bool { return l.converged }

// Reset reseeds the board using the provided RNG seed. Explicit cells and
// centred masks ignore the seed.
func (l *Life) Reset(rngSeed int64) error {
	cfg := l.opts.Config()
	cfg.RandomSeed = rngSeed
	opts, err := options.New(cfg)
	if err != nil {
		return err
	}
	dims := opts.Dimensions()
	g, err := seed.Build(dims.Width, dims.Height, opts.SeedSource())
	if err != nil {
		return err
	}
	l.opts, l.cur, l.gen, l.converged = opts, g, 0, false
	return nil
}

// Step advances the simulation by one generation. Once a fixed point is
// reached further steps are no-ops.
func (l *Life) Step() error {
	if l.converged {
		return nil
	}
	next, err := core.Advance(l.cur, l.opts.Rule(), l.opts.Wrap())
	if err != nil {
		return err
	}
	l.converged = next.Equal(l.cur)
	l.cur = next
	l.gen++
	return nil
}

// Parameters describes the options the simulation is running with.
func (l *Life) Parameters() core.ParameterSnapshot { return l.opts.Parameters() }
