package tui

import (
	"math"

	"github.com/vovakirdan/tui-mergedrop/internal/core"
)

// spriteKey identifies one cached disc mask. Radius is quantized to whole
// pixels, which is also the resolution the screen can show.
type spriteKey struct {
	radius int
	color  core.Color
	ghost  bool
}

// SpriteCache holds pre-rasterized disc masks. Discs of the same value and
// size recur constantly, so each distinct mask is built once per session.
type SpriteCache struct {
	masks map[spriteKey][][]core.Color
}

func NewSpriteCache() *SpriteCache {
	return &SpriteCache{masks: make(map[spriteKey][][]core.Color)}
}

// Disc returns the mask for a disc of the given radius and color. Ghost
// masks are checkerboard-dithered, used for the drop preview.
func (c *SpriteCache) Disc(radius float64, color core.Color, ghost bool) [][]core.Color {
	r := int(math.Round(radius))
	if r < 1 {
		r = 1
	}
	k := spriteKey{radius: r, color: color, ghost: ghost}
	if m, ok := c.masks[k]; ok {
		return m
	}
	m := buildDiscMask(r, color, ghost)
	c.masks[k] = m
	return m
}

// buildDiscMask rasterizes a filled circle of radius r into a
// (2r+1)x(2r+1) mask with a small glint on larger discs.
func buildDiscMask(r int, color core.Color, ghost bool) [][]core.Color {
	size := 2*r + 1
	mask := make([][]core.Color, size)
	rr := r * r
	for dy := -r; dy <= r; dy++ {
		row := make([]core.Color, size)
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > rr {
				continue
			}
			if ghost && (dx+dy)&1 != 0 {
				continue
			}
			row[dx+r] = color
		}
		mask[dy+r] = row
	}
	if !ghost && r >= 4 {
		// Glint in the upper-left quadrant.
		gx, gy := r-r/2, r-r/2
		mask[gy][gx] = core.ColorWhite
		mask[gy][gx+1] = core.ColorWhite
	}
	return mask
}
