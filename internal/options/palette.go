package options

import (
	"image/color"
	"strconv"

	"cellmachine/internal/core"
)

// Palette is a named two-colour scheme for rendered frames.
type Palette int

const (
	Paperback2 Palette = iota
	YsNeutralGreen
	Bitbee
	CasioBasic
	IBM51
	YsConcreteJungle
	OneBitPepper
	RazSandwich
	CGAPastel
)

type paletteInfo struct {
	name  string
	dead  string
	alive string
}

var palettes = [...]paletteInfo{
	Paperback2:       {"Paperback2", "#382b26", "#b8c2b9"},
	YsNeutralGreen:   {"ysNeutralGreen", "#004c3d", "#ffeaf9"},
	Bitbee:           {"bitbee", "#292b30", "#cfab4a"},
	CasioBasic:       {"casioBasic", "#000000", "#83b07e"},
	IBM51:            {"ibm51", "#323c39", "#d3c9a1"},
	YsConcreteJungle: {"ysConcreteJungle", "#121216", "#e8e6e1"},
	OneBitPepper:     {"oneBitPepper", "#100101", "#ebb5b5"},
	RazSandwich:      {"razSandwich", "#400927", "#ffe1c5"},
	CGAPastel:        {"cgaPastel", "#360072", "#ffbf83"},
}

// Palettes lists every palette in declaration order.
func Palettes() []Palette {
	out := make([]Palette, len(palettes))
	for i := range palettes {
		out[i] = Palette(i)
	}
	return out
}

// ParsePalette looks a palette up by its exact name.
func ParsePalette(name string) (Palette, error) {
	for i, p := range palettes {
		if p.name == name {
			return Palette(i), nil
		}
	}
	return 0, core.Errorf(core.KindParse, "unknown palette %q", name)
}

// Valid reports whether p is a known palette.
func (p Palette) Valid() bool { return p >= 0 && int(p) < len(palettes) }

// String returns the palette name used in the canonical options string.
func (p Palette) String() string {
	if !p.Valid() {
		return "Palette(" + strconv.Itoa(int(p)) + ")"
	}
	return palettes[p].name
}

// Dead returns the colour of dead cells.
func (p Palette) Dead() color.RGBA { return hexColor(palettes[p].dead) }

// Alive returns the colour of live cells.
func (p Palette) Alive() color.RGBA { return hexColor(palettes[p].alive) }

func hexColor(s string) color.RGBA {
	v, _ := strconv.ParseUint(s[1:], 16, 32)
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// OutputFormat selects the media container produced by a run.
type OutputFormat int

const (
	FormatGIF OutputFormat = iota
	FormatMP4
)

// ParseOutputFormat accepts "gif" or "mp4".
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch name {
	case "gif":
		return FormatGIF, nil
	case "mp4":
		return FormatMP4, nil
	}
	return 0, core.Errorf(core.KindParse, "unknown output format %q", name)
}

// String returns the format name, which is also the sink registry key.
func (f OutputFormat) String() string {
	switch f {
	case FormatGIF:
		return "gif"
	case FormatMP4:
		return "mp4"
	}
	return "OutputFormat(" + strconv.Itoa(int(f)) + ")"
}

// Valid reports whether f is a known format.
func (f OutputFormat) Valid() bool { return f == FormatGIF || f == FormatMP4 }

// Extension returns the file extension without a leading dot.
func (f OutputFormat) Extension() string { return f.String() }

// MediaType returns the MIME type of the encoded media.
func (f OutputFormat) MediaType() string {
	if f == FormatMP4 {
		return "video/mp4"
	}
	return "image/gif"
}
