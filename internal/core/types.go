package core

import (
	"image/color"
	"sort"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// FrameSink consumes simulated frames in order, starting with the seed.
type FrameSink interface {
	Accept(g *Grid) error
}

// MediaSink is a FrameSink that produces encoded media once all frames
// have been accepted.
type MediaSink interface {
	FrameSink
	Finish() ([]byte, error)
}

// SinkConfig carries the render-time settings a MediaSink needs.
type SinkConfig struct {
	Width   int
	Height  int
	Scale   int
	DelayCS int
	Dead    color.RGBA
	Alive   color.RGBA
}

// DiscardSink accepts and drops every frame.
type DiscardSink struct {
	Frames int
}

// Accept counts the frame.
func (d *DiscardSink) Accept(*Grid) error {
	d.Frames++
	return nil
}

// Finish returns no media.
func (d *DiscardSink) Finish() ([]byte, error) { return nil, nil }

// SinkFactory constructs a MediaSink for one run.
type SinkFactory func(cfg SinkConfig) (MediaSink, error)

var sinks = map[string]SinkFactory{}

// RegisterSink adds a media sink factory under the provided format name.
func RegisterSink(format string, f SinkFactory) {
	if format == "" || f == nil {
		return
	}
	sinks[format] = f
}

// Sinks lists the registered format names in sorted order.
func Sinks() []string {
	names := make([]string, 0, len(sinks))
	for name := range sinks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSink builds a sink for the named format.
func NewSink(format string, cfg SinkConfig) (MediaSink, error) {
	f, ok := sinks[format]
	if !ok {
		return nil, Errorf(KindEncode, "no frame encoder registered for format %q", format)
	}
	return f(cfg)
}
