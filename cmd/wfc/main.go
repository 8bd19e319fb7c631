package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"tilewave/internal/app"
	"tilewave/internal/tile"
	"tilewave/internal/wfc"
)

const description = `Grows a grid of tiles from one base image and its rotations, collapsing one random cell per tick.`

func main() {
	var cfg app.Config
	kong.Parse(&cfg,
		kong.Name("wfc"),
		kong.Description(description),
		kong.UsageOnError(),
	)

	setupLogging(&cfg)

	tiles, err := tile.LoadSet(cfg.Tile)
	if err != nil {
		log.Fatalf("load tiles: %v", err)
	}
	e, err := app.NewEngine(&cfg, tiles)
	if err != nil {
		log.Fatalf("create engine: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = app.Run(ctx, &cfg, tiles, e)
	switch {
	case errors.Is(err, app.ErrWindowUnavailable):
		log.Fatalf("%v (or pick --mode=terminal / --mode=headless)", err)
	case err != nil && !errors.Is(err, context.Canceled):
		log.Fatal(err)
	}
}

// setupLogging installs the text handler for the app and the engine. The
// terminal front end owns stdout and stderr, so its logs are discarded.
func setupLogging(cfg *app.Config) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	var w io.Writer = os.Stderr
	if cfg.Mode == app.ModeTerminal {
		w = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	wfc.SetLogger(logger)
}
