package mergedrop

import (
	"math"

	"github.com/vovakirdan/tui-mergedrop/internal/core"
)

// referenceBoardH is the board height at which the radius regime is 1:1.
// Real terminal boards are usually smaller; everything scales down linearly.
const referenceBoardH = 240.0

// Layout holds the resolution-dependent constants derived from the board
// size. It is recomputed wholesale on resize; nothing in it is mutated.
type Layout struct {
	W, H          float64
	Compact       bool
	DangerY       float64 // y of the danger line
	SpawnY        float64 // y where dropped discs appear
	WallThickness float64
	scale         float64 // radius regime multiplier
}

// NewLayout derives the layout for a board of w x h pixels.
func NewLayout(w, h int, compact bool) Layout {
	fw, fh := float64(w), float64(h)
	if fw < 8 {
		fw = 8
	}
	if fh < 8 {
		fh = 8
	}
	scale := fh / referenceBoardH
	if compact {
		scale *= 0.8
	}
	if scale < 0.08 {
		scale = 0.08
	}
	return Layout{
		W:             fw,
		H:             fh,
		Compact:       compact,
		DangerY:       math.Round(fh * 0.16),
		SpawnY:        math.Round(fh * 0.07),
		WallThickness: 60,
		scale:         scale,
	}
}

// RadiusForValue returns the disc radius for a value under this layout.
// Radius is a pure function of value and the current scale regime; it is
// never stored as independent mutable state.
func (l Layout) RadiusForValue(value int) float64 {
	lvl := Level(value)
	r := (7.0 + 4.5*float64(lvl-1)) * l.scale
	if r < 1.5 {
		r = 1.5
	}
	return r
}

// Level returns log2(value) for power-of-two values >= 2.
func Level(value int) int {
	lvl := 0
	for value > 1 {
		value >>= 1
		lvl++
	}
	return lvl
}

// discPalette maps Level(value)-1 to a color, covering values 2 through
// 2048. Values beyond the table use the gray fallback; the original scheme
// deliberately renders untabulated giants in a neutral tone rather than
// wrapping around.
var discPalette = [...]core.Color{
	core.ColorRed,     // 2
	core.ColorOrange,  // 4
	core.ColorYellow,  // 8
	core.ColorGreen,   // 16
	core.ColorTeal,    // 32
	core.ColorCyan,    // 64
	core.ColorBlue,    // 128
	core.ColorViolet,  // 256
	core.ColorMagenta, // 512
	core.ColorPink,    // 1024
	core.ColorGold,    // 2048
}

// ColorForValue returns the render color for a disc value.
func ColorForValue(value int) core.Color {
	idx := Level(value) - 1
	if idx < 0 || idx >= len(discPalette) {
		return core.ColorGray
	}
	return discPalette[idx]
}
