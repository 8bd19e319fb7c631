package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"tilewave/internal/core"
	"tilewave/internal/render"
	"tilewave/internal/tile"
	"tilewave/internal/wfc"
)

var (
	// ErrWindowUnavailable is returned by RunWindow in builds without the
	// ebiten tag.
	ErrWindowUnavailable = errors.New("app: window mode requires building with -tags ebiten")
	// ErrEmptyGrid means the canvas cannot hold a single tile.
	ErrEmptyGrid = errors.New("app: canvas smaller than one tile")
	// ErrUnknownMode is returned for a --mode value outside the known set.
	ErrUnknownMode = errors.New("app: unknown mode")
)

const terminalFPS = 30

// NewEngine builds the configured preset over a grid that fills the canvas.
func NewEngine(cfg *Config, tiles *tile.Set) (*wfc.Engine, error) {
	size := cfg.GridSize(tiles)
	if size.W == 0 || size.H == 0 {
		tw, th := tiles.TileSize()
		return nil, fmt.Errorf("%w: canvas %dx%d, tile %dx%d", ErrEmptyGrid, cfg.Width, cfg.Height, tw, th)
	}
	e, err := wfc.NewPreset(cfg.Preset, tiles, size, cfg.Overrides())
	if err != nil {
		return nil, err
	}
	slog.Debug("engine ready",
		slog.String("preset", e.Name()), slog.Int("w", size.W), slog.Int("h", size.H),
		slog.Int("tiles", tiles.Len()), slog.Int64("seed", e.Seed()))
	return e, nil
}

// Run drives e in the presentation cfg.Mode selects and returns once that
// front end exits.
func Run(ctx context.Context, cfg *Config, tiles *tile.Set, e *wfc.Engine) error {
	switch cfg.Mode {
	case ModeHeadless:
		res, err := RunHeadless(ctx, e, tiles, cfg.Ticks, cfg.Out)
		if err != nil {
			return err
		}
		slog.Info("headless run finished",
			slog.Int("ticks", res.Ticks), slog.Bool("done", res.Done),
			slog.Float64("coverage", res.Coverage()), slog.Int("contradictions", res.Stats.Contradictions))
		return nil
	case ModeTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init terminal: %w", err)
		}
		defer screen.Fini()
		return RunTerminal(ctx, screen, NewSession(e, 1), tiles.Len(), cfg.TPS)
	case ModeWindow, "":
		return RunWindow(cfg, tiles, NewSession(e, cfg.TicksPerFrame))
	}
	return fmt.Errorf("%w %q", ErrUnknownMode, cfg.Mode)
}

// RunHeadless ticks e until it settles or spends the tick budget, checking
// ctx between chunks. A PNG snapshot is written to out when out is set.
func RunHeadless(ctx context.Context, e *wfc.Engine, tiles *tile.Set, ticks int, out string) (wfc.RunResult, error) {
	const chunk = 1024
	var res wfc.RunResult
	for remaining := ticks; ; {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		n := min(chunk, remaining)
		step := wfc.Run(e, n)
		res.Ticks += step.Ticks
		remaining -= step.Ticks
		res.Preset, res.Seed, res.Done, res.Cells, res.Stats = step.Preset, step.Seed, step.Done, step.Cells, step.Stats
		if res.Done || remaining <= 0 {
			break
		}
	}
	if out != "" {
		if err := render.SaveSnapshot(out, tiles, e); err != nil {
			return res, err
		}
		slog.Info("snapshot written", slog.String("path", out))
	}
	return res, nil
}

// RunTerminal draws the session on screen at a fixed tick rate. Input is read
// on its own goroutine and forwarded over a channel; the engine is only
// touched from the calling goroutine. It returns nil when the user quits.
func RunTerminal(ctx context.Context, screen tcell.Screen, s *Session, candidates, tps int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	term := render.NewTerminal(screen, candidates)
	step := core.NewFixedStep(tps)
	frame := time.NewTicker(time.Second / terminalFPS)
	defer frame.Stop()

	term.Draw(s.Engine(), s.Status())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if s.Apply(terminalAction(ev)) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-frame.C:
			s.Advance(step.Advance(now))
			term.Draw(s.Engine(), s.Status())
		}
	}
}

func terminalAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
	default:
		return ActionNone
	}
	switch ev.Rune() {
	case 'q', 'Q':
		return ActionQuit
	case ' ':
		return ActionPause
	case 'n', 'N':
		return ActionStep
	case 'r', 'R':
		return ActionReset
	case 's', 'S':
		return ActionReseed
	case '+', '=':
		return ActionFaster
	case '-', '_':
		return ActionSlower
	}
	return ActionNone
}
