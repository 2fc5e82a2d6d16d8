package seed

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cellmachine/internal/core"
)

// LoadFile reads a seed file of "x y" lines into a wxh grid.
func LoadFile(path string, w, h int) (*core.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, w, h)
}

// Load reads whitespace-separated "x y" pairs, one per line. Blank lines and
// lines starting with '#' are skipped. Every coordinate must lie inside the
// grid; errors carry the 1-based line number.
func Load(r io.Reader, w, h int) (*core.Grid, error) {
	g, err := core.NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	cells, err := ReadCells(r)
	if err != nil {
		return nil, err
	}
	if err := CheckBounds(cells, w, h); err != nil {
		return nil, err
	}
	for _, lc := range cells {
		_ = g.Set(lc.X, lc.Y, true)
	}
	return g, nil
}

// ReadCellsFile is ReadCells over the named file.
func ReadCellsFile(path string) ([]LineCell, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file %s: %w", path, err)
	}
	defer f.Close()
	return ReadCells(f)
}

// CheckBounds reports the first coordinate outside a wxh grid.
func CheckBounds(cells []LineCell, w, h int) error {
	for _, lc := range cells {
		if lc.X < 0 || lc.X >= w || lc.Y < 0 || lc.Y >= h {
			return core.Errorf(core.KindBounds,
				"coordinate (%d, %d) on line %d is outside the %dx%d grid", lc.X, lc.Y, lc.Line, w, h)
		}
	}
	return nil
}

// LineCell is a coordinate read from a seed file together with its line.
type LineCell struct {
	Cell
	Line int
}

// ReadCells parses a seed file without checking coordinates against a grid.
func ReadCells(r io.Reader) ([]LineCell, error) {
	var out []LineCell
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, core.Errorf(core.KindParse, "line %d must contain two integers: %q", lineNo, line)
		}
		x, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, core.Errorf(core.KindParse, "invalid x coordinate %q on line %d", fields[0], lineNo)
		}
		y, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, core.Errorf(core.KindParse, "invalid y coordinate %q on line %d", fields[1], lineNo)
		}
		out = append(out, LineCell{Cell: Cell{X: x, Y: y}, Line: lineNo})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read seed file line %d: %w", lineNo+1, err)
	}
	return out, nil
}

// Cells strips line numbers.
func Cells(lines []LineCell) []Cell {
	out := make([]Cell, len(lines))
	for i, lc := range lines {
		out[i] = lc.Cell
	}
	return out
}
