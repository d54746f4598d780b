package core

// Color is a palette index for a screen pixel.
// Index 0 is always transparent (background shows through); the platform maps
// the remaining indices to concrete terminal colors.
type Color uint8

// Predefined palette indices for game elements.
const (
	ColorNone Color = iota // transparent
	ColorRed
	ColorOrange
	ColorYellow
	ColorGreen
	ColorTeal
	ColorCyan
	ColorBlue
	ColorViolet
	ColorMagenta
	ColorPink
	ColorGold
	ColorGray
	ColorWhite
	ColorDim // board chrome: walls, danger line
)
