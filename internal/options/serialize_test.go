package options

import (
	"errors"
	"strings"
	"testing"

	"cellmachine/internal/core"
	"cellmachine/internal/rule"
	"cellmachine/internal/seed"
)

func TestSerializeDefaults(t *testing.T) {
	got := mustNew(t, DefaultConfig()).Serialize()
	want := "100_3_23_-_-_-_-_1_6_200_200_4_1592614637_Paperback2"
	if got != want {
		t.Fatalf("serialize = %q, want %q", got, want)
	}
}

func TestSerializeAllFields(t *testing.T) {
	m, _ := seed.ParseMask("010111010")
	cfg := DefaultConfig()
	cfg.Steps = 42
	cfg.Rule = rule.MustParse("B63/S32")
	cfg.RuleLabel = "High_Life 100%"
	cfg.Density = Float(0.125)
	cfg.Mask = &m
	cfg.Wrap = false
	cfg.DelayCS = 3
	cfg.Dimensions = Dimensions{Width: 64, Height: 32, Scale: 2}
	cfg.RandomSeed = -7
	cfg.Palette = CGAPastel

	got := mustNew(t, cfg).Serialize()
	want := "42_36_23_High%5FLife 100%25_0.125_010111010_-_0_3_64_32_2_-7_cgaPastel"
	if got != want {
		t.Fatalf("serialize = %q, want %q", got, want)
	}
	if n := len(strings.Split(got, "_")); n != 14 {
		t.Fatalf("fields = %d, want 14", n)
	}
}

func TestSerializeSeedCells(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeedCells = []seed.Cell{{X: 1, Y: 2}, {X: 3, Y: 4}}
	got := mustNew(t, cfg).Serialize()
	if !strings.Contains(got, "_1:2;3:4_") {
		t.Fatalf("serialize = %q, want cells 1:2;3:4", got)
	}
}

func TestRoundTripIsIdempotent(t *testing.T) {
	m, _ := seed.ParseMask("1000010000100001")
	configs := []func(*Config){
		func(c *Config) {},
		func(c *Config) { c.Density = Float(0) },
		func(c *Config) { c.Density = Float(1) },
		func(c *Config) { c.Density = Float(0.3333333333333333) },
		func(c *Config) { c.Mask = &m; c.Density = Float(0.05) },
		func(c *Config) { c.SeedCells = []seed.Cell{{X: 0, Y: 0}, {X: 199, Y: 199}} },
		func(c *Config) { c.Rule = rule.MustParse("B/S"); c.RuleLabel = "-" },
		func(c *Config) { c.Rule = rule.MustParse("b3/s23") },
		func(c *Config) { c.RuleLabel = "%5F_%2D" },
		func(c *Config) { c.Wrap = false; c.Palette = RazSandwich },
		func(c *Config) { c.RandomSeed = -1 << 63 },
	}
	for i, mutate := range configs {
		cfg := DefaultConfig()
		mutate(&cfg)
		o := mustNew(t, cfg)
		s := o.Serialize()
		back, err := Deserialize(s)
		if err != nil {
			t.Fatalf("case %d: deserialize %q: %v", i, s, err)
		}
		if back.Serialize() != s {
			t.Fatalf("case %d: round trip changed %q into %q", i, s, back.Serialize())
		}
		if back.RuleLabel() != o.RuleLabel() {
			t.Fatalf("case %d: label %q, want %q", i, back.RuleLabel(), o.RuleLabel())
		}
		if !back.Rule().SameTables(o.Rule()) || back.Dimensions() != o.Dimensions() ||
			back.Wrap() != o.Wrap() || back.DelayCS() != o.DelayCS() ||
			back.RandomSeed() != o.RandomSeed() || back.Palette() != o.Palette() {
			t.Fatalf("case %d: semantic fields differ after round trip", i)
		}
		d1, ok1 := o.Density()
		d2, ok2 := back.Density()
		if d1 != d2 || ok1 != ok2 {
			t.Fatalf("case %d: density %v/%v, want %v/%v", i, d2, ok2, d1, ok1)
		}
		m1, _ := o.Mask()
		m2, _ := back.Mask()
		if !m1.Equal(m2) {
			t.Fatalf("case %d: mask differs", i)
		}
	}
}

func TestDeserializeDefaultsFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = FormatMP4
	back, err := Deserialize(mustNew(t, cfg).Serialize())
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if back.Format() != FormatGIF {
		t.Fatalf("format = %v, want gif", back.Format())
	}
}

func TestDeserializeNamesBadField(t *testing.T) {
	valid := strings.Split(mustNew(t, DefaultConfig()).Serialize(), "_")
	cases := []struct {
		field int
		value string
		name  string
	}{
		{0, "ten", "steps"},
		{1, "39", "born"},
		{2, "2x", "survive"},
		{4, "half", "density"},
		{5, "0101", "mask"},
		{6, "1-2", "seed cells"},
		{6, "a:2", "seed cells"},
		{7, "yes", "wrap"},
		{7, "2", "wrap"},
		{8, "fast", "delay"},
		{9, "1.5", "width"},
		{10, "", "height"},
		{11, "x", "scale"},
		{12, "0x10", "random seed"},
		{13, "sepia", "palette"},
	}
	for _, c := range cases {
		fields := append([]string(nil), valid...)
		fields[c.field] = c.value
		_, err := Deserialize(strings.Join(fields, "_"))
		if !errors.Is(err, core.ErrParse) {
			t.Fatalf("field %s=%q: expected parse error, got %v", c.name, c.value, err)
		}
		if !strings.Contains(err.Error(), "("+c.name+")") {
			t.Fatalf("field %s=%q: error does not name the field: %v", c.name, c.value, err)
		}
	}
}

func TestDeserializeRejectsWrongFieldCount(t *testing.T) {
	for _, s := range []string{"", "100_3_23", mustNew(t, DefaultConfig()).Serialize() + "_extra"} {
		if _, err := Deserialize(s); !errors.Is(err, core.ErrParse) {
			t.Fatalf("Deserialize(%q) err = %v, want parse error", s, err)
		}
	}
}

func TestDeserializeValidatesValues(t *testing.T) {
	_, err := Deserialize("0_3_23_-_-_-_-_1_6_200_200_4_1_Paperback2")
	if !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("expected configuration error for zero steps, got %v", err)
	}
	_, err = Deserialize("10_3_23_-_1.5_-_-_1_6_200_200_4_1_Paperback2")
	if !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("expected configuration error for density, got %v", err)
	}
}
