//go:build !ebiten

package app

import "tilewave/internal/tile"

// RunWindow reports that this build has no window support.
func RunWindow(*Config, *tile.Set, *Session) error {
	return ErrWindowUnavailable
}
