package runner

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cellmachine/internal/seed"
)

// Describe renders a one-paragraph human summary of res. Generation and
// cell counts are grouped for English readers; grid sizes and seeds are not.
func Describe(res Result) string {
	p := message.NewPrinter(language.English)
	wrap := "bounded edges"
	if res.Wrap {
		wrap = "toroidal wrap"
	}
	parts := []string{
		p.Sprintf("Simulated %d generations (requested %d) using rule %s.", res.StepsSimulated, res.StepsRequested, res.RuleLabel),
		p.Sprintf("Final alive cells: %d.", res.FinalAlive),
		fmt.Sprintf("Grid %dx%d (scale %d, %s).", res.Dimensions.Width, res.Dimensions.Height, res.Dimensions.Scale, wrap),
		p.Sprintf("Frame delay: %dcs.", res.DelayCS),
		p.Sprintf("Seed: %s.", describeSeed(p, res)),
	}
	if res.UsedRandomness {
		parts = append(parts, fmt.Sprintf("RNG seed: %d.", res.RandomSeed))
	}
	parts = append(parts, p.Sprintf("File tag: %s.", res.FileName))
	return strings.Join(parts, " ")
}

func describeSeed(p *message.Printer, res Result) string {
	if res.SeedCellCount > 0 {
		return p.Sprintf("manual coordinates (%d points)", res.SeedCellCount)
	}
	if res.MaskLabel != "" {
		if res.RequestedDensity != nil {
			return p.Sprintf("mask %s randomized at %.1f%%", res.MaskLabel, *res.RequestedDensity*100)
		}
		return p.Sprintf("mask %s centered", res.MaskLabel)
	}
	d := seed.DefaultDensity
	if res.RequestedDensity != nil {
		d = *res.RequestedDensity
	}
	return p.Sprintf("random %.1f%% density", d*100)
}
