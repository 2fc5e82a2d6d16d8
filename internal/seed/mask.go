package seed

import (
	"math"
	"strings"

	"cellmachine/internal/core"
)

// MinMaskSide is the smallest supported stamp pattern (3x3).
const MinMaskSide = 3

// Mask is a square NxN stamp pattern stored row-major.
type Mask struct {
	side  int
	cells []bool
}

// NewMask validates cells as a square pattern of at least 3x3.
func NewMask(cells []bool) (Mask, error) {
	side, ok := squareSide(len(cells))
	if !ok {
		return Mask{}, core.Errorf(core.KindParse,
			"init mask must contain a perfect square number of entries >= 9, got %d", len(cells))
	}
	c := make([]bool, len(cells))
	copy(c, cells)
	return Mask{side: side, cells: c}, nil
}

// ParseMask reads a mask written as 0/1 characters in row-major order.
// Whitespace is ignored.
func ParseMask(raw string) (Mask, error) {
	cells := make([]bool, 0, len(raw))
	for _, ch := range raw {
		switch {
		case ch == '0':
			cells = append(cells, false)
		case ch == '1':
			cells = append(cells, true)
		case isSpace(ch):
		default:
			return Mask{}, core.Errorf(core.KindParse, "init mask must contain only '0' or '1' characters, got %q", ch)
		}
	}
	return NewMask(cells)
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}

func squareSide(n int) (int, bool) {
	if n < MinMaskSide*MinMaskSide {
		return 0, false
	}
	side := int(math.Sqrt(float64(n)))
	for side*side > n {
		side--
	}
	for (side+1)*(side+1) <= n {
		side++
	}
	return side, side*side == n
}

// Side returns N for an NxN mask.
func (m Mask) Side() int { return m.side }

// IsZero reports whether m is the empty, unvalidated mask.
func (m Mask) IsZero() bool { return m.side == 0 }

// Cells returns a copy of the row-major pattern.
func (m Mask) Cells() []bool {
	c := make([]bool, len(m.cells))
	copy(c, m.cells)
	return c
}

// Active returns the number of set cells.
func (m Mask) Active() int {
	n := 0
	for _, c := range m.cells {
		if c {
			n++
		}
	}
	return n
}

// Label renders the mask as a string of '0' and '1' characters.
func (m Mask) Label() string {
	var b strings.Builder
	b.Grow(len(m.cells))
	for _, c := range m.cells {
		if c {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// String implements fmt.Stringer.
func (m Mask) String() string { return m.Label() }

// Equal reports whether both masks hold the same pattern.
func (m Mask) Equal(o Mask) bool {
	if m.side != o.side {
		return false
	}
	for i, c := range m.cells {
		if o.cells[i] != c {
			return false
		}
	}
	return true
}

// offsets lists the (dx, dy) of every active cell.
func (m Mask) offsets() [][2]int {
	out := make([][2]int, 0, len(m.cells))
	for idx, active := range m.cells {
		if active {
			out = append(out, [2]int{idx % m.side, idx / m.side})
		}
	}
	return out
}

// stamp sets every active mask cell with the pattern's top-left at (x0, y0).
func (m Mask) stamp(g *core.Grid, x0, y0 int) error {
	for _, off := range m.offsets() {
		if err := g.Set(x0+off[0], y0+off[1], true); err != nil {
			return err
		}
	}
	return nil
}
