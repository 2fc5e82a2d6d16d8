// Package rule parses and evaluates birth/survival rules of Life-like
// cellular automata written as B<digits>/S<digits>.
package rule

import (
	"strings"

	"cellmachine/internal/core"
)

// Rule holds the birth and survival tables indexed by live-neighbour count.
// The zero value is not a usable rule; build one with Parse.
type Rule struct {
	born    [9]bool
	survive [9]bool
	label   string
}

// Parse builds a Rule from its B#/S# form. Prefix letters are
// case-insensitive and digit order is irrelevant, but each digit may appear
// at most once per segment.
func Parse(raw string) (Rule, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Rule{}, core.Errorf(core.KindParse, "rule string is empty")
	}
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 {
		return Rule{}, core.Errorf(core.KindParse, "rule %q must follow B#/S# format", trimmed)
	}
	r := Rule{label: trimmed}
	var err error
	if r.born, err = parseSegment(parts[0], 'B'); err != nil {
		return Rule{}, err
	}
	if r.survive, err = parseSegment(parts[1], 'S'); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// MustParse is like Parse but panics on malformed input. Use it only with
// constant rule strings.
func MustParse(raw string) Rule {
	r, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultLife returns Conway's Game of Life, B3/S23.
func DefaultLife() Rule { return MustParse("B3/S23") }

func parseSegment(segment string, prefix byte) ([9]bool, error) {
	var flags [9]bool
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return flags, core.Errorf(core.KindParse, "rule segment %c is empty; rule must follow B#/S# format", prefix)
	}
	first := segment[0]
	if first >= 'a' && first <= 'z' {
		first -= 'a' - 'A'
	}
	if first != prefix {
		return flags, core.Errorf(core.KindParse, "rule segment %q must start with %c", segment, prefix)
	}
	for _, ch := range segment[1:] {
		if ch < '0' || ch > '9' {
			return flags, core.Errorf(core.KindParse, "invalid digit %q in rule segment %q", ch, segment)
		}
		v := int(ch - '0')
		if v > 8 {
			return flags, core.Errorf(core.KindParse, "neighbor count %d is out of range 0-8", v)
		}
		if flags[v] {
			return flags, core.Errorf(core.KindParse, "digit %d is duplicated in rule segment %q", v, segment)
		}
		flags[v] = true
	}
	return flags, nil
}

// ShouldLive returns the next state of a cell. neighbors must be in 0..8.
func (r Rule) ShouldLive(alive bool, neighbors int) (bool, error) {
	if neighbors < 0 || neighbors > 8 {
		return false, core.Errorf(core.KindBounds, "neighbor count %d must be between 0 and 8", neighbors)
	}
	if alive {
		return r.survive[neighbors], nil
	}
	return r.born[neighbors], nil
}

// Born reports whether a dead cell with n live neighbours comes alive.
func (r Rule) Born(n int) bool { return n >= 0 && n <= 8 && r.born[n] }

// Survives reports whether a live cell with n live neighbours stays alive.
func (r Rule) Survives(n int) bool { return n >= 0 && n <= 8 && r.survive[n] }

// Label returns the trimmed input the rule was parsed from.
func (r Rule) Label() string { return r.label }

// String implements fmt.Stringer.
func (r Rule) String() string { return r.label }

// IsZero reports whether r was never parsed.
func (r Rule) IsZero() bool { return r.label == "" }

// BornDigits returns the birth counts as ascending digits, e.g. "36".
func (r Rule) BornDigits() string { return digits(r.born) }

// SurviveDigits returns the survival counts as ascending digits, e.g. "23".
func (r Rule) SurviveDigits() string { return digits(r.survive) }

// Canonical reconstructs the rule as B<born>/S<survive> with sorted digits.
func (r Rule) Canonical() string {
	return "B" + r.BornDigits() + "/S" + r.SurviveDigits()
}

// SameTables reports whether both rules evolve cells identically,
// ignoring their labels.
func (r Rule) SameTables(o Rule) bool {
	return r.born == o.born && r.survive == o.survive
}

// Equal reports whether both rules have the same tables and label.
func (r Rule) Equal(o Rule) bool {
	return r.SameTables(o) && r.label == o.label
}

func digits(flags [9]bool) string {
	var b strings.Builder
	for i, on := range flags {
		if on {
			b.WriteByte(byte('0' + i))
		}
	}
	return b.String()
}
