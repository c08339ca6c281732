package core

// Color is a foreground colour for a screen cell. The platform maps each
// value to a terminal colour.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightWhite
	ColorGray     // code panel text
	ColorDarkGray // platforms
)
