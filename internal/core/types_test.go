package core

import (
	"errors"
	"slices"
	"testing"
)

type recordingSink struct {
	frames []*Grid
	cfg    SinkConfig
}

func (r *recordingSink) Accept(g *Grid) error {
	r.frames = append(r.frames, g)
	return nil
}

func (r *recordingSink) Finish() ([]byte, error) { return []byte{byte(len(r.frames))}, nil }

func TestSinkRegistry(t *testing.T) {
	RegisterSink("test-recording", func(cfg SinkConfig) (MediaSink, error) {
		return &recordingSink{cfg: cfg}, nil
	})
	RegisterSink("", nil)

	if !slices.Contains(Sinks(), "test-recording") {
		t.Fatalf("registered sink missing from %v", Sinks())
	}
	sink, err := NewSink("test-recording", SinkConfig{Width: 3, Height: 2, Scale: 1, DelayCS: 6})
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	if got := sink.(*recordingSink).cfg.Width; got != 3 {
		t.Fatalf("factory received width %d", got)
	}

	if _, err := NewSink("nope", SinkConfig{}); !errors.Is(err, ErrEncode) {
		t.Fatalf("expected encode error for unknown format, got %v", err)
	}
}

func TestDiscardSinkCountsFrames(t *testing.T) {
	var d DiscardSink
	g, _ := NewGrid(1, 1)
	_ = d.Accept(g)
	_ = d.Accept(g)
	if d.Frames != 2 {
		t.Fatalf("frames = %d, want 2", d.Frames)
	}
	if b, err := d.Finish(); b != nil || err != nil {
		t.Fatalf("Finish() = %v, %v", b, err)
	}
}
