//go:build !ebiten

package ui

import "tilewave/internal/core"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(core.Sim, int, int, int) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// PaletteView is always false in headless builds.
func (o *Overlay) PaletteView() bool { return false }

// DrawBase is a no-op placeholder.
func (o *Overlay) DrawBase(any) {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
