package core

import "github.com/cespare/xxhash/v2"

// Rule decides the next state of a cell from its current state and the
// number of live neighbours.
type Rule interface {
	ShouldLive(alive bool, neighbors int) (bool, error)
}

// Grid stores a 2D field of alive/dead cells in row-major order.
type Grid struct {
	w, h  int
	cells []bool
}

// NewGrid allocates an all-dead grid with the given dimensions.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, Errorf(KindConfiguration, "grid dimensions must be positive, got %dx%d", w, h)
	}
	return &Grid{w: w, h: h, cells: make([]bool, w*h)}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.w, H: g.h} }

// Contains reports whether (x, y) lies inside the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) (int, error) {
	if !g.Contains(x, y) {
		return 0, Errorf(KindBounds, "coordinates out of range: (%d, %d) in %dx%d grid", x, y, g.w, g.h)
	}
	return y*g.w + x, nil
}

// Get reports whether the cell at (x, y) is alive.
func (g *Grid) Get(x, y int) (bool, error) {
	idx, err := g.Index(x, y)
	if err != nil {
		return false, err
	}
	return g.cells[idx], nil
}

// Set updates the cell at (x, y).
func (g *Grid) Set(x, y int, alive bool) error {
	idx, err := g.Index(x, y)
	if err != nil {
		return err
	}
	g.cells[idx] = alive
	return nil
}

// AliveCount returns the number of live cells.
func (g *Grid) AliveCount() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Copy returns an independent snapshot of the grid.
func (g *Grid) Copy() *Grid {
	cells := make([]bool, len(g.cells))
	copy(cells, g.cells)
	return &Grid{w: g.w, h: g.h, cells: cells}
}

// Equal reports whether both grids have the same dimensions and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.w != o.w || g.h != o.h {
		return false
	}
	for i, c := range g.cells {
		if o.cells[i] != c {
			return false
		}
	}
	return true
}

// Hash returns a structural hash of the dimensions and cell contents.
// Equal grids always hash equally.
func (g *Grid) Hash() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 16+(len(g.cells)+7)/8)
	buf = appendUint64(buf, uint64(g.w))
	buf = appendUint64(buf, uint64(g.h))
	var b byte
	for i, c := range g.cells {
		if c {
			b |= 1 << (i % 8)
		}
		if i%8 == 7 {
			buf = append(buf, b)
			b = 0
		}
	}
	if len(g.cells)%8 != 0 {
		buf = append(buf, b)
	}
	_, _ = d.Write(buf)
	return d.Sum64()
}

// Bytes renders the cells as 0/1 values for pixel painters.
func (g *Grid) Bytes() []uint8 {
	out := make([]uint8, len(g.cells))
	for i, c := range g.cells {
		if c {
			out[i] = 1
		}
	}
	return out
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.w + g.w) % g.w
	y = (y%g.h + g.h) % g.h
	return x, y
}

// NeighborCount counts live cells among the eight positions around (x, y).
// Without wrap, positions outside the grid are not counted.
func (g *Grid) NeighborCount(x, y int, wrap bool) (int, error) {
	if !g.Contains(x, y) {
		return 0, Errorf(KindBounds, "coordinates out of range: (%d, %d) in %dx%d grid", x, y, g.w, g.h)
	}
	return g.neighbors(x, y, wrap), nil
}

func (g *Grid) neighbors(x, y int, wrap bool) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if wrap {
				nx, ny = g.Wrap(nx, ny)
			} else if !g.Contains(nx, ny) {
				continue
			}
			if g.cells[ny*g.w+nx] {
				n++
			}
		}
	}
	return n
}

// Advance computes the next generation of current under rule. The source
// grid is never modified.
func Advance(current *Grid, rule Rule, wrap bool) (*Grid, error) {
	w, h := current.w, current.h
	next := &Grid{w: w, h: h, cells: make([]bool, len(current.cells))}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			alive, err := rule.ShouldLive(current.cells[idx], current.neighbors(x, y, wrap))
			if err != nil {
				return nil, err
			}
			next.cells[idx] = alive
		}
	}
	return next, nil
}

func appendUint64(buf []byte, v uint64) []byte {
	for i := 0; i < 8; i++ {
		buf = append(buf, byte(v>>(8*i)))
	}
	return buf
}
