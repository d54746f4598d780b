package core

import "testing"

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 8)

	s.Set(3, 4, ColorRed)
	if got := s.Get(3, 4); got != ColorRed {
		t.Errorf("Get(3,4) = %v, want ColorRed", got)
	}

	// Out of bounds writes must be ignored, reads return transparent
	s.Set(-1, 0, ColorRed)
	s.Set(10, 0, ColorRed)
	s.Set(0, 8, ColorRed)
	if got := s.Get(-1, 0); got != ColorNone {
		t.Errorf("out-of-bounds Get = %v, want ColorNone", got)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 1, ColorBlue)
	s.Clear()
	if got := s.Get(1, 1); got != ColorNone {
		t.Errorf("after Clear, Get(1,1) = %v, want ColorNone", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Resize(5, 3)
	if s.Width() != 5 || s.Height() != 3 {
		t.Errorf("after Resize, size = %dx%d, want 5x3", s.Width(), s.Height())
	}
	// Degenerate sizes clamp to 1
	s.Resize(0, -2)
	if s.Width() != 1 || s.Height() != 1 {
		t.Errorf("degenerate Resize, size = %dx%d, want 1x1", s.Width(), s.Height())
	}
}

func TestFillCircleCoversCenterAndRadius(t *testing.T) {
	s := NewScreen(20, 20)
	s.FillCircle(10, 10, 4, ColorGreen)

	if s.Get(10, 10) != ColorGreen {
		t.Error("circle center not filled")
	}
	if s.Get(14, 10) != ColorGreen {
		t.Error("pixel at exact radius not filled")
	}
	if s.Get(15, 10) != ColorNone {
		t.Error("pixel beyond radius should be empty")
	}
	// Corner of the bounding square is outside the disc
	if s.Get(14, 14) != ColorNone {
		t.Error("bounding-square corner should be empty")
	}
}

func TestStampSkipsTransparent(t *testing.T) {
	s := NewScreen(6, 6)
	s.Set(1, 1, ColorBlue)

	mask := [][]Color{
		{ColorNone, ColorRed},
		{ColorRed, ColorNone},
	}
	s.Stamp(0, 0, mask)

	if s.Get(1, 0) != ColorRed {
		t.Error("opaque mask pixel not copied")
	}
	if s.Get(1, 1) != ColorBlue {
		t.Error("transparent mask pixel overwrote existing content")
	}
}

func TestHLineAndDotted(t *testing.T) {
	s := NewScreen(10, 4)
	s.HLine(2, 1, 5, ColorWhite)
	for x := 2; x < 7; x++ {
		if s.Get(x, 1) != ColorWhite {
			t.Errorf("HLine missing pixel at x=%d", x)
		}
	}

	s.DottedHLine(0, 2, 6, ColorDim)
	if s.Get(0, 2) != ColorDim || s.Get(2, 2) != ColorDim {
		t.Error("DottedHLine should fill even offsets")
	}
	if s.Get(1, 2) != ColorNone {
		t.Error("DottedHLine should skip odd offsets")
	}
}
