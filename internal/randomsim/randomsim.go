// Package randomsim draws random Life-like rules and stamp masks, for
// exploring the rule space without hand-picking parameters.
package randomsim

import (
	"strconv"
	"strings"

	"cellmachine/internal/options"
	"cellmachine/internal/rule"
	"cellmachine/internal/seed"
	prng "cellmachine/pkg/core"
)

const (
	Steps   = 100
	Density = 0.05
	Width   = 200
	Height  = 200

	MaxMaskSide = 5
)

// Selection is a randomly drawn rule and mask.
type Selection struct {
	BornDigits    string
	SurviveDigits string
	Mask          seed.Mask
}

// RuleLabel returns the selection's rule as B<born>/S<survive>.
func (s Selection) RuleLabel() string {
	return "B" + s.BornDigits + "/S" + s.SurviveDigits
}

// String identifies the selection by rule and mask label.
func (s Selection) String() string {
	return s.RuleLabel() + " mask " + s.Mask.Label()
}

// Pick draws a selection from rng. Both digit sets are non-empty and the
// mask has at least one active cell.
func Pick(rng *prng.RNG) Selection {
	return Selection{
		BornDigits:    randomDigits(rng),
		SurviveDigits: randomDigits(rng),
		Mask:          randomMask(rng),
	}
}

// BuildOptions turns a selection into a scattered-mask run on a 200x200
// torus at density 0.05.
func BuildOptions(sel Selection, rngSeed int64) (options.Options, error) {
	r, err := rule.Parse(sel.RuleLabel())
	if err != nil {
		return options.Options{}, err
	}
	m := sel.Mask
	cfg := options.DefaultConfig()
	cfg.Rule = r
	cfg.Steps = Steps
	cfg.Density = options.Float(Density)
	cfg.Mask = &m
	cfg.Dimensions = options.Dimensions{Width: Width, Height: Height, Scale: options.DefaultScale}
	cfg.Palette = options.Paperback2
	cfg.RandomSeed = rngSeed
	return options.New(cfg)
}

// randomDigits picks a non-empty subset of 0..8 uniformly.
func randomDigits(rng *prng.RNG) string {
	bits := rng.IntRange(1, 1<<9-1)
	var b strings.Builder
	for v := 0; v <= 8; v++ {
		if bits&(1<<v) != 0 {
			b.WriteString(strconv.Itoa(v))
		}
	}
	return b.String()
}

func randomMask(rng *prng.RNG) seed.Mask {
	side := rng.IntRange(seed.MinMaskSide, MaxMaskSide)
	cells := make([]bool, side*side)
	active := 0
	for i := range cells {
		if rng.Bool() {
			cells[i] = true
			active++
		}
	}
	if active == 0 {
		cells[rng.IntN(len(cells))] = true
	}
	m, err := seed.NewMask(cells)
	if err != nil {
		// side is always in [MinMaskSide, MaxMaskSide]
		panic(err)
	}
	return m
}
