//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"cellmachine/internal/app"
	"cellmachine/pkg/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	opts, err := cfg.BuildOptions()
	if err != nil {
		log.Fatal(err)
	}
	sim, err := life.New(opts)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim)
	size := sim.Size()
	scale := opts.Dimensions().Scale

	ebiten.SetWindowTitle("cellmachine: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*scale+app.HUDWidth, size.H*scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
