package options

import (
	"strconv"
	"strings"

	"cellmachine/internal/core"
	"cellmachine/internal/rule"
	"cellmachine/internal/seed"
)

const (
	fieldSeparator = "_"
	emptyField     = "-"
	fieldCount     = 14
)

var fieldNames = [fieldCount]string{
	"steps",
	"born",
	"survive",
	"rule label",
	"density",
	"mask",
	"seed cells",
	"wrap",
	"delay",
	"width",
	"height",
	"scale",
	"random seed",
	"palette",
}

var (
	labelEscaper   = strings.NewReplacer("%", "%25", "_", "%5F")
	labelUnescaper = strings.NewReplacer("%25", "%", "%5F", "_", "%2D", "-")
)

// Serialize renders the options as the canonical 14-field string
//
//	steps_born_survive_label_density_mask_cells_wrap_delay_width_height_scale_seed_palette
//
// Optional fields are written as "-". The rule label is "-" when it matches
// the rule's canonical B/S form. The output format is not encoded.
func (o Options) Serialize() string {
	fields := make([]string, 0, fieldCount)
	fields = append(fields,
		strconv.Itoa(o.steps),
		o.rule.BornDigits(),
		o.rule.SurviveDigits(),
		encodeLabel(o.ruleLabel, o.rule.Canonical()),
	)
	if o.hasDensity {
		fields = append(fields, strconv.FormatFloat(o.density, 'f', -1, 64))
	} else {
		fields = append(fields, emptyField)
	}
	if o.hasMask {
		fields = append(fields, o.mask.Label())
	} else {
		fields = append(fields, emptyField)
	}
	fields = append(fields, encodeCells(o.seedCells))
	wrap := "0"
	if o.wrap {
		wrap = "1"
	}
	fields = append(fields,
		wrap,
		strconv.Itoa(o.delayCS),
		strconv.Itoa(o.dims.Width),
		strconv.Itoa(o.dims.Height),
		strconv.Itoa(o.dims.Scale),
		strconv.FormatInt(o.randomSeed, 10),
		o.palette.String(),
	)
	return strings.Join(fields, fieldSeparator)
}

// String implements fmt.Stringer with the canonical form.
func (o Options) String() string { return o.Serialize() }

// Deserialize parses the canonical form produced by Serialize. Errors name
// the first field that could not be decoded. The result is validated like
// any other Config passed to New.
func Deserialize(s string) (Options, error) {
	fields := strings.Split(s, fieldSeparator)
	if len(fields) != fieldCount {
		return Options{}, core.Errorf(core.KindParse,
			"options string must have %d fields separated by %q, got %d", fieldCount, fieldSeparator, len(fields))
	}

	cfg := DefaultConfig()
	var err error
	if cfg.Steps, err = strconv.Atoi(fields[0]); err != nil {
		return Options{}, fieldError(0, err)
	}
	if cfg.Rule, err = rule.Parse("B" + fields[1] + "/S" + fields[2]); err != nil {
		return Options{}, fieldError(1, err)
	}
	if fields[3] != emptyField {
		cfg.RuleLabel = labelUnescaper.Replace(fields[3])
	}
	if fields[4] != emptyField {
		d, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return Options{}, fieldError(4, err)
		}
		cfg.Density = Float(d)
	}
	if fields[5] != emptyField {
		m, err := seed.ParseMask(fields[5])
		if err != nil {
			return Options{}, fieldError(5, err)
		}
		cfg.Mask = &m
	}
	if cfg.SeedCells, err = decodeCells(fields[6]); err != nil {
		return Options{}, fieldError(6, err)
	}
	switch fields[7] {
	case "1":
		cfg.Wrap = true
	case "0":
		cfg.Wrap = false
	default:
		return Options{}, fieldError(7, core.Errorf(core.KindParse, "expected 1 or 0, got %q", fields[7]))
	}
	ints := []*int{&cfg.DelayCS, &cfg.Dimensions.Width, &cfg.Dimensions.Height, &cfg.Dimensions.Scale}
	for i, dst := range ints {
		if *dst, err = strconv.Atoi(fields[8+i]); err != nil {
			return Options{}, fieldError(8+i, err)
		}
	}
	if cfg.RandomSeed, err = strconv.ParseInt(fields[12], 10, 64); err != nil {
		return Options{}, fieldError(12, err)
	}
	if cfg.Palette, err = ParsePalette(fields[13]); err != nil {
		return Options{}, fieldError(13, err)
	}
	return New(cfg)
}

func fieldError(i int, cause error) error {
	return core.Wrap(core.KindParse, "field "+strconv.Itoa(i+1)+" ("+fieldNames[i]+")", cause)
}

func encodeLabel(label, canonical string) string {
	if label == canonical {
		return emptyField
	}
	if label == emptyField {
		return "%2D"
	}
	return labelEscaper.Replace(label)
}

func encodeCells(cells []seed.Cell) string {
	if len(cells) == 0 {
		return emptyField
	}
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Itoa(c.X))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(c.Y))
	}
	return b.String()
}

func decodeCells(field string) ([]seed.Cell, error) {
	if field == emptyField {
		return nil, nil
	}
	parts := strings.Split(field, ";")
	cells := make([]seed.Cell, 0, len(parts))
	for _, p := range parts {
		xs, ys, ok := strings.Cut(p, ":")
		if !ok {
			return nil, core.Errorf(core.KindParse, "seed cell %q must be x:y", p)
		}
		x, err := strconv.Atoi(xs)
		if err != nil {
			return nil, core.Errorf(core.KindParse, "seed cell %q has a non-numeric x", p)
		}
		y, err := strconv.Atoi(ys)
		if err != nil {
			return nil, core.Errorf(core.KindParse, "seed cell %q has a non-numeric y", p)
		}
		cells = append(cells, seed.Cell{X: x, Y: y})
	}
	return cells, nil
}
