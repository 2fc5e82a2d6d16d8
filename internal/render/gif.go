// Package render turns simulated grids into pixels: an animated GIF encoder
// registered as the "gif" frame sink, and an ebiten painter for the viewer.
package render

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"

	"golang.org/x/image/draw"

	"cellmachine/internal/core"
)

// FormatGIF is the sink registry key of the GIF encoder.
const FormatGIF = "gif"

func init() {
	core.RegisterSink(FormatGIF, func(cfg core.SinkConfig) (core.MediaSink, error) {
		return NewGIFSink(cfg)
	})
}

// GIFSink collects frames into an infinitely looping animated GIF. Each cell
// is drawn as a ScalexScale block.
type GIFSink struct {
	cfg      core.SinkConfig
	palette  color.Palette
	anim     gif.GIF
	finished bool
}

// NewGIFSink validates cfg and returns an empty sink.
func NewGIFSink(cfg core.SinkConfig) (*GIFSink, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Scale <= 0 {
		return nil, core.Errorf(core.KindConfiguration,
			"gif sink needs positive dimensions, got %dx%d scale %d", cfg.Width, cfg.Height, cfg.Scale)
	}
	if cfg.DelayCS <= 0 {
		return nil, core.Errorf(core.KindConfiguration, "gif frame delay must be positive, got %d", cfg.DelayCS)
	}
	return &GIFSink{cfg: cfg, palette: twoColor(cfg.Dead, cfg.Alive)}, nil
}

// Accept rasterises g and appends it as the next frame.
func (s *GIFSink) Accept(g *core.Grid) error {
	if s.finished {
		return core.Errorf(core.KindEncode, "gif sink already finished")
	}
	if g.Width() != s.cfg.Width || g.Height() != s.cfg.Height {
		return core.Errorf(core.KindBounds, "frame is %dx%d, sink expects %dx%d",
			g.Width(), g.Height(), s.cfg.Width, s.cfg.Height)
	}
	frame := paletted(g.Bytes(), g.Width(), g.Height(), s.palette)
	if s.cfg.Scale > 1 {
		scaled := image.NewPaletted(image.Rect(0, 0, g.Width()*s.cfg.Scale, g.Height()*s.cfg.Scale), s.palette)
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), frame, frame.Bounds(), draw.Src, nil)
		frame = scaled
	}
	s.anim.Image = append(s.anim.Image, frame)
	s.anim.Delay = append(s.anim.Delay, s.cfg.DelayCS)
	return nil
}

// Frames reports how many frames have been accepted.
func (s *GIFSink) Frames() int { return len(s.anim.Image) }

// Finish encodes the accumulated frames. The sink accepts no frames after.
func (s *GIFSink) Finish() ([]byte, error) {
	if len(s.anim.Image) == 0 {
		return nil, core.Errorf(core.KindEncode, "gif sink has no frames")
	}
	s.finished = true
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, &s.anim); err != nil {
		return nil, core.Wrap(core.KindEncode, "encode gif", err)
	}
	return buf.Bytes(), nil
}
