package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mergedrop/internal/core"
)

// palette maps core palette indices to terminal colors.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:     lipgloss.Color("203"),
	core.ColorOrange:  lipgloss.Color("208"),
	core.ColorYellow:  lipgloss.Color("220"),
	core.ColorGreen:   lipgloss.Color("78"),
	core.ColorTeal:    lipgloss.Color("43"),
	core.ColorCyan:    lipgloss.Color("51"),
	core.ColorBlue:    lipgloss.Color("69"),
	core.ColorViolet:  lipgloss.Color("135"),
	core.ColorMagenta: lipgloss.Color("201"),
	core.ColorPink:    lipgloss.Color("212"),
	core.ColorGold:    lipgloss.Color("178"),
	core.ColorGray:    lipgloss.Color("245"),
	core.ColorWhite:   lipgloss.Color("15"),
	core.ColorDim:     lipgloss.Color("240"),
}

// cellKey is the (top, bottom) pixel pair of one terminal cell.
type cellKey struct {
	top, bottom core.Color
}

var cellStyles = map[cellKey]lipgloss.Style{}

// styleFor returns the style rendering a top/bottom pixel pair, building it
// on first use. The map only ever holds pairs that actually appear on
// screen, a few dozen at most.
func styleFor(k cellKey) lipgloss.Style {
	if st, ok := cellStyles[k]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	switch {
	case k.top != core.ColorNone && k.bottom != core.ColorNone:
		st = st.Foreground(palette[k.top]).Background(palette[k.bottom])
	case k.top != core.ColorNone:
		st = st.Foreground(palette[k.top])
	case k.bottom != core.ColorNone:
		st = st.Foreground(palette[k.bottom])
	}
	cellStyles[k] = st
	return st
}

// runeFor picks the half-block glyph for a pixel pair. A lone bottom pixel
// uses the lower half block so no background color leaks into the empty
// half of the cell.
func runeFor(k cellKey) rune {
	switch {
	case k.top == core.ColorNone && k.bottom == core.ColorNone:
		return ' '
	case k.top == core.ColorNone:
		return '▄'
	default:
		return '▀'
	}
}

// RenderScreen folds the pixel buffer into half-block characters: each
// terminal row carries two pixel rows, the upper one as the foreground of
// '▀' and the lower one as the background. Adjacent cells with the same
// color pair are grouped into one styled run to keep the ANSI output small.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width() * s.Height() * 2)

	rows := (s.Height() + 1) / 2
	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteRune('\n')
		}
		y := row * 2
		x := 0
		for x < s.Width() {
			start := cellKey{top: s.Get(x, y), bottom: s.Get(x, y+1)}
			var run strings.Builder
			for x < s.Width() {
				k := cellKey{top: s.Get(x, y), bottom: s.Get(x, y+1)}
				if k != start {
					break
				}
				run.WriteRune(runeFor(k))
				x++
			}
			if start.top == core.ColorNone && start.bottom == core.ColorNone {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(start).Render(run.String()))
		}
	}
	return sb.String()
}
