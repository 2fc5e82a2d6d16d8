// Package seed builds the initial grid of a simulation from explicit
// coordinates, a stamp mask, or random density.
package seed

import (
	"math"

	"cellmachine/internal/core"
	prng "cellmachine/pkg/core"
)

const (
	// DefaultDensity is used by random seeding when no density is configured.
	DefaultDensity = 0.15
	// DefaultRandomSeed is the RNG seed used when none is supplied.
	DefaultRandomSeed int64 = 0x5EED5EED
)

// Cell is an (x, y) grid coordinate.
type Cell struct {
	X int
	Y int
}

// Source selects a seeding strategy. Precedence: Cells (when non-empty),
// then Mask with Density, then Mask alone, then random density.
type Source struct {
	Cells      []Cell
	Mask       *Mask
	Density    float64
	HasDensity bool
	Seed       int64
}

// Strategy names the seeding branch a Source resolves to.
type Strategy int

const (
	StrategyRandom Strategy = iota
	StrategyCells
	StrategyScatterMask
	StrategyCenterMask
)

func (s Strategy) String() string {
	switch s {
	case StrategyCells:
		return "cells"
	case StrategyScatterMask:
		return "scatter-mask"
	case StrategyCenterMask:
		return "center-mask"
	default:
		return "random"
	}
}

// Strategy reports which branch Build will take for src.
func (src Source) Strategy() Strategy {
	switch {
	case len(src.Cells) > 0:
		return StrategyCells
	case src.Mask != nil && src.HasDensity:
		return StrategyScatterMask
	case src.Mask != nil:
		return StrategyCenterMask
	default:
		return StrategyRandom
	}
}

// Build produces the initial grid for a wxh simulation.
func Build(w, h int, src Source) (*core.Grid, error) {
	switch src.Strategy() {
	case StrategyCells:
		return FromCells(w, h, src.Cells)
	case StrategyScatterMask:
		return ScatterMask(w, h, *src.Mask, src.Density, src.Seed)
	case StrategyCenterMask:
		return CenterMask(w, h, *src.Mask)
	default:
		density := DefaultDensity
		if src.HasDensity {
			density = src.Density
		}
		return Random(w, h, density, src.Seed)
	}
}

// FromCells returns a grid with exactly the listed cells alive.
func FromCells(w, h int, cells []Cell) (*core.Grid, error) {
	g, err := core.NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	for _, c := range cells {
		if c.X < 0 || c.X >= w {
			return nil, core.Errorf(core.KindBounds, "seed cell x=%d exceeds width %d", c.X, w)
		}
		if c.Y < 0 || c.Y >= h {
			return nil, core.Errorf(core.KindBounds, "seed cell y=%d exceeds height %d", c.Y, h)
		}
		if err := g.Set(c.X, c.Y, true); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Random sets each cell alive independently with probability density. The
// same (w, h, density, seed) always yields the same grid.
func Random(w, h int, density float64, seed int64) (*core.Grid, error) {
	if err := checkDensity(density); err != nil {
		return nil, err
	}
	g, err := core.NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	rng := prng.NewRNG(seed)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if rng.Float64() < density {
				_ = g.Set(x, y, true)
			}
		}
	}
	return g, nil
}

// CenterMask stamps the mask once, centred on the grid.
func CenterMask(w, h int, m Mask) (*core.Grid, error) {
	if err := checkMaskFits(w, h, m); err != nil {
		return nil, err
	}
	g, err := core.NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	if err := m.stamp(g, (w-m.side)/2, (h-m.side)/2); err != nil {
		return nil, err
	}
	return g, nil
}

// ScatterStats describes one run of the mask scatter sampler.
type ScatterStats struct {
	Target   int
	Budget   int
	Attempts int
	Alive    int
}

// StampBudget is the maximum number of stamps tried to reach target live
// cells with a mask of active cells: 10*ceil(target/active) + 100.
func StampBudget(target, active int) int {
	if active <= 0 {
		return 0
	}
	return (target+active-1)/active*10 + 100
}

// ScatterMask stamps the mask at random offsets until the live-cell count
// reaches round(w*h*density) or the stamp budget runs out. It is best-effort:
// overlapping stamps may overshoot or miss the target and neither is an error.
func ScatterMask(w, h int, m Mask, density float64, seed int64) (*core.Grid, error) {
	g, _, err := scatterMask(w, h, m, density, seed)
	return g, err
}

func scatterMask(w, h int, m Mask, density float64, seed int64) (*core.Grid, ScatterStats, error) {
	var stats ScatterStats
	if err := checkDensity(density); err != nil {
		return nil, stats, err
	}
	if err := checkMaskFits(w, h, m); err != nil {
		return nil, stats, err
	}
	g, err := core.NewGrid(w, h)
	if err != nil {
		return nil, stats, err
	}
	active := m.Active()
	if density == 0 || active == 0 {
		return g, stats, nil
	}

	stats.Target = int(math.Round(float64(w*h) * density))
	if stats.Target == 0 {
		return g, stats, nil
	}
	stats.Budget = StampBudget(stats.Target, active)

	rng := prng.NewRNG(seed)
	maxX, maxY := w-m.side, h-m.side
	offsets := m.offsets()
	for stats.Alive < stats.Target && stats.Attempts < stats.Budget {
		x0, y0 := 0, 0
		if maxX > 0 {
			x0 = rng.IntN(maxX + 1)
		}
		if maxY > 0 {
			y0 = rng.IntN(maxY + 1)
		}
		for _, off := range offsets {
			x, y := x0+off[0], y0+off[1]
			if alive, _ := g.Get(x, y); !alive {
				_ = g.Set(x, y, true)
				stats.Alive++
			}
		}
		stats.Attempts++
	}
	return g, stats, nil
}

func checkDensity(density float64) error {
	if math.IsNaN(density) || density < 0 || density > 1 {
		return core.Errorf(core.KindConfiguration, "density must be between 0.0 and 1.0 inclusive, got %v", density)
	}
	return nil
}

func checkMaskFits(w, h int, m Mask) error {
	if m.IsZero() {
		return core.Errorf(core.KindConfiguration, "init mask is empty")
	}
	if w < m.side || h < m.side {
		return core.Errorf(core.KindBounds, "grid %dx%d is smaller than the %dx%d init mask", w, h, m.side, m.side)
	}
	return nil
}
