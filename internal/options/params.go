package options

import (
	"strconv"

	"cellmachine/internal/core"
)

// Parameters exposes the options as grouped key/value pairs for display.
func (o Options) Parameters() core.ParameterSnapshot {
	density := "default"
	if o.hasDensity {
		density = strconv.FormatFloat(o.density, 'f', -1, 64)
	}
	mask := "none"
	if o.hasMask {
		mask = o.mask.Label()
	}

	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Rule",
			Params: []core.Parameter{
				{Key: "rule", Label: "Rule", Type: core.ParamTypeString, Value: o.rule.Canonical()},
				{Key: "rule_label", Label: "Label", Type: core.ParamTypeString, Value: o.ruleLabel},
				{Key: "steps", Label: "Steps", Type: core.ParamTypeInt, Value: strconv.Itoa(o.steps)},
				{Key: "wrap", Label: "Wrap edges", Type: core.ParamTypeBool, Value: strconv.FormatBool(o.wrap)},
			},
		},
		{
			Name: "Seeding",
			Params: []core.Parameter{
				{Key: "strategy", Label: "Strategy", Type: core.ParamTypeString, Value: o.SeedSource().Strategy().String()},
				{Key: "density", Label: "Density", Type: core.ParamTypeFloat, Value: density},
				{Key: "mask", Label: "Mask", Type: core.ParamTypeString, Value: mask},
				{Key: "seed_cells", Label: "Seed cells", Type: core.ParamTypeInt, Value: strconv.Itoa(len(o.seedCells))},
				{Key: "random_seed", Label: "RNG seed", Type: core.ParamTypeInt, Value: strconv.FormatInt(o.randomSeed, 10)},
			},
		},
		{
			Name: "Output",
			Params: []core.Parameter{
				{Key: "width", Label: "Width", Type: core.ParamTypeInt, Value: strconv.Itoa(o.dims.Width)},
				{Key: "height", Label: "Height", Type: core.ParamTypeInt, Value: strconv.Itoa(o.dims.Height)},
				{Key: "scale", Label: "Scale", Type: core.ParamTypeInt, Value: strconv.Itoa(o.dims.Scale)},
				{Key: "delay_cs", Label: "Frame delay (cs)", Type: core.ParamTypeInt, Value: strconv.Itoa(o.delayCS)},
				{Key: "palette", Label: "Palette", Type: core.ParamTypeString, Value: o.palette.String()},
				{Key: "format", Label: "Format", Type: core.ParamTypeString, Value: o.format.String()},
			},
		},
	}}
}
