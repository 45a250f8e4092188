package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
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
	ColorOrange
	ColorGray
)

// ANSI returns the 256-color palette index for the color as a string,
// or "" for ColorDefault (terminal foreground).
func (c Color) ANSI() string {
	switch c {
	case ColorRed:
		return "9"
	case ColorGreen:
		return "10"
	case ColorYellow:
		return "11"
	case ColorBlue:
		return "12"
	case ColorMagenta:
		return "13"
	case ColorCyan:
		return "14"
	case ColorWhite:
		return "15"
	case ColorOrange:
		return "208"
	case ColorGray:
		return "245"
	default:
		return ""
	}
}
