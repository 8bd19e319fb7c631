package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strconv"
	"time"

	"github.com/alecthomas/kong"

	"tilewave/internal/core"
	"tilewave/internal/tile"
	"tilewave/internal/wfc"
)

type sweepFlags struct {
	Tile      string `short:"t" help:"Base tile image; a synthetic tile is used when empty."`
	Synthetic int    `default:"9" help:"Edge length of the synthetic tile."`

	Width  int `default:"24" help:"Grid width in cells."`
	Height int `default:"16" help:"Grid height in cells."`

	Presets   []string `default:"all" help:"Presets to compare; \"all\" runs every registered preset."`
	Seeds     int      `default:"16" help:"Seeds per preset."`
	FirstSeed int64    `default:"1" help:"First seed; the rest follow consecutively."`
	Ticks     int      `default:"200000" help:"Tick budget per run."`
	Workers   int      `help:"Worker goroutines; 0 uses every CPU."`

	Tolerance float64 `default:"-1" help:"Edge match tolerance; negative keeps each preset's value."`
	Verbose   bool    `short:"v" help:"Print every run."`
}

var cli sweepFlags

func (f *sweepFlags) validate() error {
	switch {
	case f.Seeds < 1:
		return fmt.Errorf("--seeds must be at least 1, got %d", f.Seeds)
	case f.Width < 1 || f.Height < 1:
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", f.Width, f.Height)
	case f.Ticks < 1:
		return fmt.Errorf("--ticks must be at least 1, got %d", f.Ticks)
	}
	return nil
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("wfc-sweep"),
		kong.Description("Runs each preset over a range of seeds and compares how often and how fast the grid settles."),
		kong.UsageOnError(),
	)
	if err := cli.validate(); err != nil {
		ctx.Fatalf("%v", err)
	}

	if cli.Verbose {
		wfc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	tiles, err := loadTiles()
	if err != nil {
		log.Fatalf("load tiles: %v", err)
	}

	workers := cli.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	seeds := make([]int64, cli.Seeds)
	for i := range seeds {
		seeds[i] = cli.FirstSeed + int64(i)
	}
	overrides := map[string]string{}
	if cli.Tolerance >= 0 {
		overrides["tolerance"] = strconv.FormatFloat(cli.Tolerance, 'f', -1, 64)
	}
	size := core.Size{W: cli.Width, H: cli.Height}
	presets := cli.Presets
	if slices.Contains(presets, "all") {
		presets = core.SimNames()
	}

	fmt.Printf("Sweeping %d presets x %d seeds on %dx%d (%d workers, %d ticks)\n",
		len(presets), len(seeds), size.W, size.H, workers, cli.Ticks)

	start := time.Now()
	results := wfc.Sweep(tiles, size, presets, seeds, overrides, cli.Ticks, workers)
	elapsed := time.Since(start)

	if cli.Verbose {
		for _, r := range results {
			if r.Err != nil {
				fmt.Printf("%-10s seed=%-4d error: %v\n", r.Preset, r.Seed, r.Err)
				continue
			}
			fmt.Printf("%-10s seed=%-4d ticks=%-7d done=%-5v coverage=%.3f contradictions=%d restarts=%d\n",
				r.Preset, r.Seed, r.Ticks, r.Done, r.Coverage(), r.Stats.Contradictions, r.Stats.Restarts)
		}
		fmt.Println()
	}

	fmt.Printf("Summary (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for _, s := range wfc.Summarize(results) {
		fmt.Println(s)
	}
}

func loadTiles() (*tile.Set, error) {
	if cli.Tile == "" {
		return tile.Build(tile.Synthetic(cli.Synthetic))
	}
	return tile.LoadSet(cli.Tile)
}
