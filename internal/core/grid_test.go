package core

import (
	"errors"
	"testing"
)

// lifeRule is B3/S23 without going through the rule parser.
type lifeRule struct{}

func (lifeRule) ShouldLive(alive bool, n int) (bool, error) {
	if n < 0 || n > 8 {
		return false, Errorf(KindBounds, "neighbor count %d", n)
	}
	if alive {
		return n == 2 || n == 3, nil
	}
	return n == 3, nil
}

type failingRule struct{}

func (failingRule) ShouldLive(bool, int) (bool, error) {
	return false, errors.New("boom")
}

func mustGrid(t *testing.T, w, h int, alive ...[2]int) *Grid {
	t.Helper()
	g, err := NewGrid(w, h)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	for _, c := range alive {
		if err := g.Set(c[0], c[1], true); err != nil {
			t.Fatalf("set %v: %v", c, err)
		}
	}
	return g
}

func expectAlive(t *testing.T, g *Grid, want map[[2]int]bool) {
	t.Helper()
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			alive, err := g.Get(x, y)
			if err != nil {
				t.Fatalf("get (%d,%d): %v", x, y, err)
			}
			if alive != want[[2]int{x, y}] {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", x, y, alive, want[[2]int{x, y}])
			}
		}
	}
}

func TestNewGridRejectsNonPositiveDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		if _, err := NewGrid(dims[0], dims[1]); !errors.Is(err, ErrConfiguration) {
			t.Fatalf("NewGrid(%d,%d) err = %v, want configuration error", dims[0], dims[1], err)
		}
	}
}

func TestGetSetBoundsChecked(t *testing.T) {
	g := mustGrid(t, 4, 3)
	if err := g.Set(4, 0, true); !errors.Is(err, ErrBounds) {
		t.Fatalf("expected bounds error, got %v", err)
	}
	if _, err := g.Get(0, -1); !errors.Is(err, ErrBounds) {
		t.Fatalf("expected bounds error, got %v", err)
	}
	if err := g.Set(3, 2, true); err != nil {
		t.Fatalf("set corner: %v", err)
	}
	if alive, _ := g.Get(3, 2); !alive {
		t.Fatal("corner cell should be alive")
	}
	if g.AliveCount() != 1 {
		t.Fatalf("alive count = %d, want 1", g.AliveCount())
	}
}

func TestBlinkerOscillation(t *testing.T) {
	initial := mustGrid(t, 5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})

	first, err := Advance(initial, lifeRule{}, false)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	expectAlive(t, first, map[[2]int]bool{{1, 2}: true, {2, 2}: true, {3, 2}: true})
	if first.AliveCount() != 3 {
		t.Fatalf("alive count = %d, want 3", first.AliveCount())
	}

	second, err := Advance(first, lifeRule{}, false)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !second.Equal(initial) {
		t.Fatal("after second step the vertical blinker should be restored")
	}
}

func TestAdvanceLeavesSourceUntouched(t *testing.T) {
	initial := mustGrid(t, 5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	snapshot := initial.Copy()
	if _, err := Advance(initial, lifeRule{}, true); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !initial.Equal(snapshot) {
		t.Fatal("Advance mutated its source grid")
	}
}

func TestAdvancePropagatesRuleError(t *testing.T) {
	g := mustGrid(t, 2, 2)
	if _, err := Advance(g, failingRule{}, false); err == nil || err.Error() != "boom" {
		t.Fatalf("expected rule error, got %v", err)
	}
}

func TestWraparoundNeighborCount(t *testing.T) {
	g := mustGrid(t, 3, 3, [2]int{2, 2})
	n, err := g.NeighborCount(0, 0, false)
	if err != nil || n != 0 {
		t.Fatalf("bounded count = %d (%v), want 0", n, err)
	}
	n, err = g.NeighborCount(0, 0, true)
	if err != nil || n != 1 {
		t.Fatalf("wrapped count = %d (%v), want 1", n, err)
	}
	if _, err := g.NeighborCount(3, 0, true); !errors.Is(err, ErrBounds) {
		t.Fatalf("expected bounds error, got %v", err)
	}
}

func TestCornerHasThreeBoundedNeighbours(t *testing.T) {
	g := mustGrid(t, 3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			_ = g.Set(x, y, true)
		}
	}
	if n, _ := g.NeighborCount(0, 0, false); n != 3 {
		t.Fatalf("corner bounded count = %d, want 3", n)
	}
	if n, _ := g.NeighborCount(1, 1, false); n != 8 {
		t.Fatalf("centre count = %d, want 8", n)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	g := mustGrid(t, 3, 3, [2]int{1, 1})
	c := g.Copy()
	_ = c.Set(0, 0, true)
	if alive, _ := g.Get(0, 0); alive {
		t.Fatal("copy shares storage with original")
	}
	if g.Equal(c) {
		t.Fatal("grids should differ after mutating the copy")
	}
}

func TestEqualAndHashAreStructural(t *testing.T) {
	a := mustGrid(t, 4, 4, [2]int{1, 2}, [2]int{3, 3})
	b := mustGrid(t, 4, 4, [2]int{3, 3}, [2]int{1, 2})
	if !a.Equal(b) {
		t.Fatal("grids with same cells should be equal")
	}
	if a.Hash() != b.Hash() {
		t.Fatal("equal grids must hash equally")
	}
	wide := mustGrid(t, 8, 2, [2]int{1, 0})
	tall := mustGrid(t, 2, 8, [2]int{1, 0})
	if wide.Equal(tall) {
		t.Fatal("grids with different dimensions must not be equal")
	}
	if wide.Hash() == tall.Hash() {
		t.Fatal("dimensions should contribute to the hash")
	}
}

func TestWrapNormalisesNegativeCoordinates(t *testing.T) {
	g := mustGrid(t, 5, 4)
	x, y := g.Wrap(-1, -5)
	if x != 4 || y != 3 {
		t.Fatalf("Wrap(-1,-5) = (%d,%d), want (4,3)", x, y)
	}
}
