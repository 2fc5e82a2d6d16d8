package ui

import (
	"fmt"
	"strings"

	"cellmachine/internal/core"
)

// Status is what the parameter panel needs from a running simulation.
type Status interface {
	Name() string
	Parameters() core.ParameterSnapshot
	Generation() int
	Converged() bool
}

// PanelLines lays out the panel text for s: a title, one status line, then
// each parameter group with its values indented beneath the group name.
func PanelLines(s Status) []string {
	if s == nil {
		return []string{"No simulation"}
	}
	title := s.Name()
	if title == "" {
		title = "Parameters"
	}
	state := "running"
	if s.Converged() {
		state = "fixed point"
	}
	lines := []string{title, fmt.Sprintf("gen %d (%s)", s.Generation(), state)}
	for _, g := range s.Parameters().Groups {
		lines = append(lines, "", strings.ToUpper(g.Name))
		for _, p := range g.Params {
			label := p.Label
			if label == "" {
				label = p.Key
			}
			lines = append(lines, fmt.Sprintf("  %s: %s", label, p.Value))
		}
	}
	return lines
}
