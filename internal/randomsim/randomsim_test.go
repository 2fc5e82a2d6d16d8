package randomsim

import (
	"testing"

	"cellmachine/internal/rule"
	"cellmachine/internal/seed"
	prng "cellmachine/pkg/core"
)

func TestPickProducesValidSelections(t *testing.T) {
	rng := prng.NewRNG(99)
	for i := 0; i < 200; i++ {
		sel := Pick(rng)
		if sel.BornDigits == "" || sel.SurviveDigits == "" {
			t.Fatalf("selection %d has empty digits: %v", i, sel)
		}
		r, err := rule.Parse(sel.RuleLabel())
		if err != nil {
			t.Fatalf("selection %d rule %q: %v", i, sel.RuleLabel(), err)
		}
		if r.BornDigits() != sel.BornDigits || r.SurviveDigits() != sel.SurviveDigits {
			t.Fatalf("digits should already be ascending: %v", sel)
		}
		side := sel.Mask.Side()
		if side < seed.MinMaskSide || side > MaxMaskSide {
			t.Fatalf("mask side %d out of range", side)
		}
		if sel.Mask.Active() == 0 {
			t.Fatalf("selection %d mask has no active cells", i)
		}
	}
}

func TestPickIsDeterministic(t *testing.T) {
	a := Pick(prng.NewRNG(5))
	b := Pick(prng.NewRNG(5))
	if a.String() != b.String() {
		t.Fatalf("%v != %v", a, b)
	}
}

func TestBuildOptions(t *testing.T) {
	sel := Pick(prng.NewRNG(1))
	opts, err := BuildOptions(sel, 77)
	if err != nil {
		t.Fatalf("build options: %v", err)
	}
	if opts.Steps() != 100 || opts.Dimensions().Width != 200 || opts.Dimensions().Height != 200 {
		t.Fatalf("unexpected options %s", opts.Serialize())
	}
	if d, ok := opts.Density(); !ok || d != 0.05 {
		t.Fatalf("density = %v (%v)", d, ok)
	}
	m, ok := opts.Mask()
	if !ok || !m.Equal(sel.Mask) {
		t.Fatal("mask not carried into options")
	}
	if opts.RuleLabel() != sel.RuleLabel() || opts.RandomSeed() != 77 {
		t.Fatalf("label=%q seed=%d", opts.RuleLabel(), opts.RandomSeed())
	}
	if opts.SeedSource().Strategy() != seed.StrategyScatterMask {
		t.Fatal("random runs should scatter the mask")
	}
}
