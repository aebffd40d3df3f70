package core

import (
	"errors"
	"fmt"
)

// ErrDisplayTooSmall is returned when the screen cannot hold two rows and two
// columns of icons, which would make the role zones overlap.
var ErrDisplayTooSmall = errors.New("core: display too small for icon size")

// DefaultIconSize is the edge length of every icon in pixels.
const DefaultIconSize = 300

// Display describes the host screen as seen by the game.
// It replaces any ambient platform context: the presentation surface reads the
// host display once and passes this struct in.
type Display struct {
	Width    int     // Screen width in pixels
	Height   int     // Screen height in pixels
	Density  float64 // Pixels per density-independent unit
	IconSize int     // Icon edge length in pixels
}

// Ready reports whether the host display has been observed.
// A zero width, height or density means "not yet known".
func (d Display) Ready() bool {
	return d.Width > 0 && d.Height > 0 && d.Density > 0
}

// Validate checks that a ready display can fit the zone layout.
func (d Display) Validate() error {
	if d.IconSize <= 0 {
		return fmt.Errorf("core: icon size must be positive, got %d", d.IconSize)
	}
	if d.Width < 2*d.IconSize || d.Height < 2*d.IconSize {
		return fmt.Errorf("%w: %dx%d px with %d px icons", ErrDisplayTooSmall, d.Width, d.Height, d.IconSize)
	}
	return nil
}

// Dp converts a pixel length to density-independent units.
func (d Display) Dp(px int) float64 {
	if d.Density <= 0 {
		return 0
	}
	return float64(px) / d.Density
}

// String formats the screen size the way the status panel shows it.
func (d Display) String() string {
	return fmt.Sprintf("%d * %d px", d.Width, d.Height)
}
