//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"droidlife/internal/app"
	"droidlife/internal/driver"
	"droidlife/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	rules, err := cfg.RuleSet()
	if err != nil {
		log.Fatal(err)
	}
	seeder, err := cfg.Seeder(cfg.Seed)
	if err != nil {
		log.Fatal(err)
	}

	d := driver.New(driver.Options{
		Width:    cfg.Width,
		Height:   cfg.Height,
		CellSize: cfg.CellSize,
		Rules:    rules,
		TPS:      cfg.TPS,
	})
	if err := d.Seed(seeder); err != nil {
		log.Fatalf("seed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	game := app.New(ctx, cfg, d)
	if cfg.Run {
		if err := d.Start(ctx); err != nil {
			log.Fatal(err)
		}
	}

	ebiten.SetWindowTitle("droidlife — " + rules.String())
	ebiten.SetWindowSize(cfg.Width, cfg.Height+ui.StatusBarHeight)

	err = ebiten.RunGame(game)
	d.Stop()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
