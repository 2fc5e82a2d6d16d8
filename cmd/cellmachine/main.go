package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"cellmachine/internal/app"
	"cellmachine/internal/options"
	"cellmachine/internal/platform/config"
	"cellmachine/internal/platform/otel"
	"cellmachine/internal/random"
	_ "cellmachine/internal/render"
	"cellmachine/internal/runner"
	"cellmachine/internal/store/sqlite"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		config.Exitf("cellmachine: %v", err)
	}

	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	output := flag.String("output", "", "output file path (defaults to <output dir>/<derived name>)")
	outDir := flag.String("output-dir", env.OutputDir, "directory for generated media")
	history := flag.String("history", env.HistoryPath, "SQLite run history path (empty disables history)")
	list := flag.Int("list", 0, "list the N most recent runs from the history and exit")
	replay := flag.String("replay", "", "re-render the run with this history ID")
	describe := flag.Bool("describe", false, "print the run parameters and a summary of the result")
	reseed := flag.Bool("reseed", false, "draw a fresh random seed instead of -seed")
	flag.Parse()

	logger := log.New(os.Stderr, "cellmachine: ", log.LstdFlags)
	ctx := context.Background()

	shutdown, err := otel.Setup(ctx, "cellmachine", otel.Config{Endpoint: env.OtelEndpoint, Enabled: env.OtelEnabled})
	if err != nil {
		config.Exitf("cellmachine: otel: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			logger.Printf("otel shutdown: %v", err)
		}
	}()

	var store *sqlite.Store
	if *history != "" {
		store, err = sqlite.Open(*history)
		if err != nil {
			config.Exitf("cellmachine: %v", err)
		}
		defer store.Close()
	}

	if *list > 0 {
		if store == nil {
			config.Exitf("cellmachine: -list requires -history or CELLMACHINE_HISTORY_PATH")
		}
		if err := listRuns(ctx, store, *list); err != nil {
			config.Exitf("cellmachine: %v", err)
		}
		return
	}

	opts, err := resolveOptions(ctx, cfg, store, *replay, *reseed)
	if err != nil {
		config.Exitf("cellmachine: %v", err)
	}
	if *describe {
		printParameters(opts)
	}

	r := runner.New(runner.Config{Logger: logger, ProgressPercent: env.ProgressPercent})
	res, err := r.Render(ctx, opts)
	if err != nil {
		config.Exitf("cellmachine: %v", err)
	}

	path := *output
	if path == "" {
		path = filepath.Join(*outDir, res.FileName)
	}
	if err := writeMedia(path, res.Bytes()); err != nil {
		config.Exitf("cellmachine: %v", err)
	}
	logger.Printf("wrote %s (%s)", path, humanize.Bytes(uint64(res.Size())))

	if store != nil {
		run, err := store.RecordRun(ctx, res)
		if err != nil {
			config.Exitf("cellmachine: record run: %v", err)
		}
		logger.Printf("recorded run %s", run.ID)
	}
	if *describe {
		fmt.Println(runner.Describe(res))
	}
}

func resolveOptions(ctx context.Context, cfg *app.Config, store *sqlite.Store, replay string, reseed bool) (options.Options, error) {
	if replay != "" {
		if store == nil {
			return options.Options{}, errors.New("-replay requires -history or CELLMACHINE_HISTORY_PATH")
		}
		run, err := store.GetRun(ctx, replay)
		if err != nil {
			return options.Options{}, err
		}
		cfg.Options = run.Options
	}
	opts, err := cfg.BuildOptions()
	if err != nil {
		return options.Options{}, err
	}
	if !reseed {
		return opts, nil
	}
	seed, err := random.NewSeed()
	if err != nil {
		return options.Options{}, err
	}
	oc := opts.Config()
	oc.RandomSeed = seed
	return options.New(oc)
}

func writeMedia(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func listRuns(ctx context.Context, store *sqlite.Store, limit int) error {
	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("%s  %-28s  %3d/%-3d steps  alive=%-6d %8s  %s\n",
			run.ID, run.FileName, run.StepsSimulated, run.StepsRequested, run.FinalAlive,
			humanize.Bytes(uint64(run.MediaSize)), humanize.Time(run.CreatedAt))
		fmt.Printf("    %s\n", run.Options)
	}
	return nil
}

func printParameters(opts options.Options) {
	for _, g := range opts.Parameters().Groups {
		fmt.Println(g.Name)
		for _, p := range g.Params {
			fmt.Printf("  %-12s %s\n", p.Key, p.Value)
		}
	}
	fmt.Printf("options: %s\n", opts.Serialize())
}
