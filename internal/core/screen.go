// Package core provides fundamental types and utilities for the merge-drop
// game. It contains no external dependencies (especially no Bubble Tea) to
// keep game logic pure and testable.
package core

// Screen is a 2D pixel buffer for rendering game graphics.
// One pixel is half a terminal cell: the platform folds two vertical pixels
// into a single half-block character, so a board of W x H pixels occupies
// W x H/2 terminal cells with a roughly square aspect ratio.
type Screen struct {
	width  int
	height int
	pix    []Color
}

// NewScreen creates a new pixel buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Screen{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
}

// Width returns the buffer width in pixels.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the buffer height in pixels.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the buffer dimensions. Content is discarded; the game
// redraws every frame anyway.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s.width = width
	s.height = height
	s.pix = make([]Color, width*height)
}

// Clear resets every pixel to transparent.
func (s *Screen) Clear() {
	for i := range s.pix {
		s.pix[i] = ColorNone
	}
}

// Set colors the pixel at (x, y). Out-of-bounds writes are ignored.
func (s *Screen) Set(x, y int, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.pix[y*s.width+x] = c
}

// Get returns the pixel color at (x, y) or ColorNone when out of bounds.
func (s *Screen) Get(x, y int) Color {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return ColorNone
	}
	return s.pix[y*s.width+x]
}

// HLine draws a horizontal run of pixels starting at (x, y).
func (s *Screen) HLine(x, y, length int, c Color) {
	for i := 0; i < length; i++ {
		s.Set(x+i, y, c)
	}
}

// VLine draws a vertical run of pixels starting at (x, y).
func (s *Screen) VLine(x, y, length int, c Color) {
	for i := 0; i < length; i++ {
		s.Set(x, y+i, c)
	}
}

// DottedHLine draws every other pixel of a horizontal line, used for the
// danger line so it reads as a threshold rather than a wall.
func (s *Screen) DottedHLine(x, y, length int, c Color) {
	for i := 0; i < length; i += 2 {
		s.Set(x+i, y, c)
	}
}

// FillCircle rasterizes a filled circle centered at (cx, cy).
func (s *Screen) FillCircle(cx, cy, r int, c Color) {
	if r <= 0 {
		s.Set(cx, cy, c)
		return
	}
	rr := r * r
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= rr {
				s.Set(cx+dx, cy+dy, c)
			}
		}
	}
}

// Stamp blits a pre-rasterized color mask with its top-left corner at (x, y).
// Transparent mask pixels leave the buffer untouched.
func (s *Screen) Stamp(x, y int, mask [][]Color) {
	for dy, row := range mask {
		for dx, c := range row {
			if c != ColorNone {
				s.Set(x+dx, y+dy, c)
			}
		}
	}
}
