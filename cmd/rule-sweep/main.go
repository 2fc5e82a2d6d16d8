package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"cellmachine/internal/batch"
	"cellmachine/internal/options"
	"cellmachine/internal/platform/config"
	"cellmachine/internal/random"
	"cellmachine/internal/randomsim"
	"cellmachine/internal/runner"
	prng "cellmachine/pkg/core"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		config.Exitf("rule-sweep: %v", err)
	}

	count := flag.Int("count", 64, "number of random rule/mask selections to simulate")
	steps := flag.Int("steps", randomsim.Steps, "generations to simulate per selection")
	workers := flag.Int("workers", env.Workers, "number of worker goroutines")
	seed := flag.Int64("seed", 0, "seed for drawing selections (0 draws a random seed)")
	top := flag.Int("top", 5, "number of ranked results to print")
	flag.Parse()

	logger := log.New(os.Stderr, "rule-sweep: ", log.LstdFlags)
	if *seed == 0 {
		if *seed, err = random.NewSeed(); err != nil {
			config.Exitf("rule-sweep: %v", err)
		}
	}

	rng := prng.NewRNG(*seed)
	sels := make([]randomsim.Selection, *count)
	runs := make([]options.Options, *count)
	for i := range sels {
		sels[i] = randomsim.Pick(rng)
		opts, err := randomsim.BuildOptions(sels[i], *seed+int64(i))
		if err != nil {
			config.Exitf("rule-sweep: selection %s: %v", sels[i], err)
		}
		if *steps != opts.Steps() {
			cfg := opts.Config()
			cfg.Steps = *steps
			if opts, err = options.New(cfg); err != nil {
				config.Exitf("rule-sweep: %v", err)
			}
		}
		runs[i] = opts
	}

	fmt.Printf("Sweeping %d selections (%d workers, %d steps, seed %d)\n", len(runs), *workers, *steps, *seed)

	start := time.Now()
	r := runner.New(runner.Config{})
	summaries, err := batch.Simulate(context.Background(), r, runs, *workers)
	if err != nil {
		config.Exitf("rule-sweep: %v", err)
	}
	elapsed := time.Since(start)

	order := make([]int, len(summaries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := summaries[order[a]], summaries[order[b]]
		if sa.StepsSimulated != sb.StepsSimulated {
			return sa.StepsSimulated > sb.StepsSimulated
		}
		return sa.FinalAlive > sb.FinalAlive
	})

	converged := 0
	for _, s := range summaries {
		if s.Converged {
			converged++
		}
	}
	logger.Printf("%d of %d selections reached a fixed point", converged, len(summaries))

	fmt.Printf("\nTop %d results (elapsed %s):\n", min(*top, len(order)), elapsed.Round(time.Millisecond))
	for i := 0; i < len(order) && i < *top; i++ {
		s := summaries[order[i]]
		fmt.Printf("%2d) steps=%d/%d alive=%d converged=%v %s\n    %s\n",
			i+1, s.StepsSimulated, s.StepsRequested, s.FinalAlive, s.Converged, sels[order[i]], s.Options.Serialize())
	}
}
