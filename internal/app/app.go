//go:build ebiten

package app

import (
	"errors"

	"tilewave/internal/render"
	"tilewave/internal/tile"
	"tilewave/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 220

var windowKeys = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeyQ, ActionQuit},
	{ebiten.KeyEscape, ActionQuit},
	{ebiten.KeySpace, ActionPause},
	{ebiten.KeyN, ActionStep},
	{ebiten.KeyR, ActionReset},
	{ebiten.KeyS, ActionReseed},
	{ebiten.KeyEqual, ActionFaster},
	{ebiten.KeyMinus, ActionSlower},
}

// Game adapts a collapse session to the ebiten.Game interface.
type Game struct {
	session *Session
	atlas   *render.Atlas
	overlay *ui.Overlay
	hud     *ui.HUD

	gridW, gridH int
}

// New constructs a Game drawing session with the tiles in atlas.
func New(session *Session, atlas *render.Atlas, candidates int) *Game {
	e := session.Engine()
	tw, th := atlas.TileSize()
	size := e.Size()
	return &Game{
		session: session,
		atlas:   atlas,
		overlay: ui.NewOverlay(e, tw, th, candidates),
		hud:     ui.NewHUD(e, hudWidth),
		gridW:   size.W * tw,
		gridH:   size.H * th,
	}
}

// Update handles input and advances the engine by one frame.
func (g *Game) Update() error {
	for _, k := range windowKeys {
		if inpututil.IsKeyJustPressed(k.key) && g.session.Apply(k.action) {
			return ebiten.Termination
		}
	}
	g.overlay.Update()
	g.hud.Update(g.gridW)
	g.session.Advance(1)
	return nil
}

// Draw renders the grid, overlays and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.overlay.DrawBase(screen)
	if !g.overlay.PaletteView() {
		g.atlas.DrawGrid(screen, g.session.Engine())
	}
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.gridW, g.gridH)
	ebiten.SetWindowTitle("tilewave: " + g.session.Status())
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.gridW + g.hud.Width(), g.gridH
}

// RunWindow opens the ebiten window and blocks until it is closed.
func RunWindow(cfg *Config, tiles *tile.Set, session *Session) error {
	atlas, err := render.NewAtlas(tiles)
	if err != nil {
		return err
	}
	game := New(session, atlas, tiles.Len())
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("tilewave: " + session.Engine().Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
