package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette used by the presentation surface.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

// RoleColors gives each of the four role zones its own color, in zone order.
var RoleColors = [4]Color{ColorCyan, ColorGreen, ColorMagenta, ColorBlue}
