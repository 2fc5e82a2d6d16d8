// Package runner drives a simulation from its options to a sequence of
// frames: it seeds the initial grid, advances it under the rule until the
// step budget runs out or a fixed point is reached, and hands every frame to
// a sink.
package runner

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"cellmachine/internal/core"
	"cellmachine/internal/options"
	"cellmachine/internal/seed"
)

const tracerName = "cellmachine/internal/runner"

// Config controls runner side effects. The zero value is silent.
type Config struct {
	// Logger receives progress and completion lines. Nil disables logging.
	Logger *log.Logger
	// ProgressPercent logs every time this many percent of the frames have
	// been emitted. Zero or less disables progress lines.
	ProgressPercent int
}

// Runner executes simulations. It holds no per-run state and is safe for
// concurrent use.
type Runner struct {
	cfg    Config
	tracer trace.Tracer
}

// New returns a Runner using cfg.
func New(cfg Config) *Runner {
	if cfg.ProgressPercent > 100 {
		cfg.ProgressPercent = 100
	}
	return &Runner{cfg: cfg, tracer: otel.Tracer(tracerName)}
}

// Outcome summarises one pass of the step loop.
type Outcome struct {
	StepsRequested int
	StepsSimulated int
	// Frames counts the grids handed to the sink, including frame 0.
	Frames     int
	FinalAlive int
	// Converged is true when the loop stopped at a fixed point.
	Converged bool
	Final     *core.Grid
}

// Run seeds the grid described by opts, emits it as frame 0 and then one
// frame per generation. The loop stops early once a generation equals its
// predecessor; period-2+ oscillators always run the full step count.
// Seeding and rule errors are returned unchanged; sink errors are wrapped
// with the frame index.
func (r *Runner) Run(ctx context.Context, opts options.Options, sink core.FrameSink) (Outcome, error) {
	_, span := r.tracer.Start(ctx, "simulation.run", trace.WithAttributes(
		attribute.Int("simulation.steps", opts.Steps()),
		attribute.String("simulation.rule", opts.Rule().Canonical()),
		attribute.Int64("simulation.seed", opts.RandomSeed()),
		attribute.String("simulation.strategy", opts.SeedSource().Strategy().String()),
	))
	defer span.End()

	out, err := r.run(opts, sink)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Outcome{}, err
	}
	span.SetAttributes(
		attribute.Int("simulation.steps_simulated", out.StepsSimulated),
		attribute.Int("simulation.final_alive", out.FinalAlive),
		attribute.Bool("simulation.converged", out.Converged),
		attribute.String("simulation.final_hash", strconv.FormatUint(out.Final.Hash(), 16)),
	)
	return out, nil
}

func (r *Runner) run(opts options.Options, sink core.FrameSink) (Outcome, error) {
	dims := opts.Dimensions()
	current, err := seed.Build(dims.Width, dims.Height, opts.SeedSource())
	if err != nil {
		return Outcome{}, err
	}

	steps := opts.Steps()
	progress := newProgress(r.cfg, steps+1)
	if err := sink.Accept(current); err != nil {
		return Outcome{}, fmt.Errorf("frame 0: %w", err)
	}
	progress.frame()

	out := Outcome{StepsRequested: steps, StepsSimulated: steps, Frames: 1}
	for i := 1; i <= steps; i++ {
		next, err := core.Advance(current, opts.Rule(), opts.Wrap())
		if err != nil {
			return Outcome{}, err
		}
		if err := sink.Accept(next); err != nil {
			return Outcome{}, fmt.Errorf("frame %d: %w", i, err)
		}
		out.Frames++
		progress.frame()
		fixed := next.Equal(current)
		current = next
		if fixed {
			out.StepsSimulated = i
			out.Converged = true
			break
		}
	}

	out.Final = current
	out.FinalAlive = current.AliveCount()
	return out, nil
}

// Render runs opts through the frame encoder registered for its output
// format and packages the encoded media into a Result.
func (r *Runner) Render(ctx context.Context, opts options.Options) (Result, error) {
	start := time.Now()
	sink, err := core.NewSink(opts.Format().String(), opts.SinkConfig())
	if err != nil {
		return Result{}, err
	}
	out, err := r.Run(ctx, opts, sink)
	if err != nil {
		return Result{}, err
	}
	data, err := sink.Finish()
	if err != nil {
		return Result{}, fmt.Errorf("finish %s encoding: %w", opts.Format(), err)
	}

	res := newResult(opts, out)
	res.SetBytes(data)
	if r.cfg.Logger != nil {
		r.cfg.Logger.Printf("simulation %s %s: %s (size=%s, spent=%s)",
			res.FileName, opts.Format(), res.Summary,
			humanize.Bytes(uint64(len(data))), time.Since(start).Round(time.Millisecond))
	}
	return res, nil
}

type progress struct {
	logger  *log.Logger
	step    int
	total   int
	emitted int
	next    int
}

func newProgress(cfg Config, total int) *progress {
	p := &progress{total: total}
	if cfg.Logger != nil && cfg.ProgressPercent > 0 {
		p.logger = cfg.Logger
		p.step = cfg.ProgressPercent
		p.next = cfg.ProgressPercent
	}
	return p
}

func (p *progress) frame() {
	p.emitted++
	if p.logger == nil {
		return
	}
	pct := p.emitted * 100 / p.total
	if pct < p.next {
		return
	}
	p.logger.Printf("rendered %d%% of frames (%d/%d)", pct, p.emitted, p.total)
	for p.next <= pct {
		p.next += p.step
	}
}
