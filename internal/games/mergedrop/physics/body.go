package physics

// Handle is a stable integer reference to a body or wall. Handles are
// assigned monotonically and never reused, so a queued event that names a
// removed body simply fails to resolve instead of aliasing a new one.
type Handle int

// Body is a dynamic circular body.
type Body struct {
	Handle Handle
	Pos    Vec2
	Vel    Vec2
	Radius float64

	// Ghost excludes the body from integration and contact generation.
	// Used while a merge-glide animation drives its position directly.
	Ghost bool

	// Sleeping bodies skip integration until disturbed by a contact or an
	// explicit Wake. They still block other bodies.
	Sleeping bool
	stillMs  float64

	// impactVel is the velocity the body carried into this tick's contact
	// solve, before any impulses were applied. Contact impulses absorb
	// most of an approach, so anything gating on collision speed must
	// read this, not Vel.
	impactVel Vec2
}

// ImpactVel returns the body's velocity as of the start of the most recent
// contact solve.
func (b *Body) ImpactVel() Vec2 {
	return b.impactVel
}

// Wake clears the sleeping state and its timer.
func (b *Body) Wake() {
	b.Sleeping = false
	b.stillMs = 0
}

// Speed returns the current speed in pixels per second.
func (b *Body) Speed() float64 {
	return b.Vel.Len()
}

// Top returns the y-coordinate of the body's topmost point.
func (b *Body) Top() float64 {
	return b.Pos.Y - b.Radius
}

// Wall is a static axis-aligned rectangle. The four board walls are
// regenerated wholesale on resize, never mutated in place.
type Wall struct {
	Handle   Handle
	Min, Max Vec2
}

// closestPoint returns the point on the wall rectangle nearest to p.
func (w Wall) closestPoint(p Vec2) Vec2 {
	c := p
	if c.X < w.Min.X {
		c.X = w.Min.X
	}
	if c.X > w.Max.X {
		c.X = w.Max.X
	}
	if c.Y < w.Min.Y {
		c.Y = w.Min.Y
	}
	if c.Y > w.Max.Y {
		c.Y = w.Max.Y
	}
	return c
}
