package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI colors in the terminal platform.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorOrange
	ColorGray
)
