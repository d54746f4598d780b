package physics

// Config holds the tunable scalars of the simulation. Units are pixels,
// seconds and milliseconds (dt arguments).
type Config struct {
	Gravity      float64 // downward acceleration, px/s^2
	Damping      float64 // linear velocity damping, 1/s
	Restitution  float64 // bounciness of contacts [0..1]
	Friction     float64 // tangential velocity loss per contact [0..1]
	MaxSpeed     float64 // speed clamp, prevents tunneling at high tick rates
	SleepSpeed   float64 // below this speed a body is a sleep candidate
	SleepAfterMs float64 // sustained low speed required before sleeping
}

// DefaultConfig returns tuning that feels right on a board a few hundred
// pixels tall.
func DefaultConfig() Config {
	return Config{
		Gravity:      520,
		Damping:      0.12,
		Restitution:  0.18,
		Friction:     0.08,
		MaxSpeed:     600,
		SleepSpeed:   6,
		SleepAfterMs: 450,
	}
}

// Pair is an unordered contact pair, stored with A < B. Either side may be a
// wall handle.
type Pair struct {
	A, B Handle
}

func makePair(a, b Handle) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// World owns all bodies and walls and advances them with Step. Bodies are
// kept in insertion order so a fixed seed replays identically.
//
// Bodies may be inserted or removed only between steps; doing either from
// inside a Step callback is undefined.
type World struct {
	cfg    Config
	bodies []*Body
	byID   map[Handle]*Body
	walls  []Wall
	next   Handle

	prevContacts map[Pair]struct{}
	contacts     map[Pair]struct{}
	stepping     bool
}

// NewWorld creates an empty world with the given tuning.
func NewWorld(cfg Config) *World {
	return &World{
		cfg:          cfg,
		byID:         make(map[Handle]*Body),
		prevContacts: make(map[Pair]struct{}),
		contacts:     make(map[Pair]struct{}),
	}
}

// AddBody inserts a dynamic circle and returns it.
func (w *World) AddBody(pos Vec2, radius float64) *Body {
	w.next++
	b := &Body{Handle: w.next, Pos: pos, Radius: radius}
	w.bodies = append(w.bodies, b)
	w.byID[b.Handle] = b
	return b
}

// RemoveBody deletes the body with the given handle. Unknown handles are
// ignored; insertion order of the survivors is preserved.
func (w *World) RemoveBody(h Handle) {
	if w.stepping {
		panic("physics: RemoveBody during Step")
	}
	if _, ok := w.byID[h]; !ok {
		return
	}
	delete(w.byID, h)
	for i, b := range w.bodies {
		if b.Handle == h {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
}

// Body returns the body with the given handle, or nil.
func (w *World) Body(h Handle) *Body {
	return w.byID[h]
}

// Bodies returns the live bodies in insertion order. The slice is owned by
// the world; callers must not mutate it.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Len returns the number of dynamic bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// IsWall reports whether the handle names a static wall.
func (w *World) IsWall(h Handle) bool {
	for _, wall := range w.walls {
		if wall.Handle == h {
			return true
		}
	}
	return false
}

// SetBounds replaces the four boundary walls with a fresh set sized for a
// board of boardW x boardH pixels. The old walls are removed wholesale; every
// body is woken so the new geometry takes effect immediately.
func (w *World) SetBounds(boardW, boardH, thickness float64) {
	w.walls = w.walls[:0]
	add := func(minX, minY, maxX, maxY float64) {
		w.next++
		w.walls = append(w.walls, Wall{
			Handle: w.next,
			Min:    Vec2{minX, minY},
			Max:    Vec2{maxX, maxY},
		})
	}
	t := thickness
	add(-t, -t, 0, boardH+t)            // left
	add(boardW, -t, boardW+t, boardH+t) // right
	add(-t, boardH, boardW+t, boardH+t) // floor
	add(-t, -t, boardW+t, 0)            // ceiling

	// A body can sit wholly beyond a new wall slab after a shrink, where no
	// contact would ever push it back. Clamp everything into the interior.
	for _, b := range w.bodies {
		if b.Pos.X < b.Radius {
			b.Pos.X = b.Radius
		}
		if b.Pos.X > boardW-b.Radius {
			b.Pos.X = boardW - b.Radius
		}
		if b.Pos.Y < b.Radius {
			b.Pos.Y = b.Radius
		}
		if b.Pos.Y > boardH-b.Radius {
			b.Pos.Y = boardH - b.Radius
		}
		b.Wake()
	}
}

// Step advances the simulation by dtMs milliseconds and returns the
// collision-start pairs of this tick: contacts that exist now but did not
// exist on the previous tick.
func (w *World) Step(dtMs float64) []Pair {
	w.stepping = true
	dt := dtMs / 1000.0

	for _, b := range w.bodies {
		if b.Ghost || b.Sleeping {
			continue
		}
		b.Vel.Y += w.cfg.Gravity * dt
		damp := 1.0 / (1.0 + w.cfg.Damping*dt)
		b.Vel = b.Vel.Scale(damp)
		if speed := b.Vel.Len(); speed > w.cfg.MaxSpeed {
			b.Vel = b.Vel.Scale(w.cfg.MaxSpeed / speed)
		}
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	}

	for _, b := range w.bodies {
		b.impactVel = b.Vel
	}

	clear(w.contacts)
	const solverIterations = 3
	for i := 0; i < solverIterations; i++ {
		w.solveBodyContacts()
		w.solveWallContacts()
	}

	w.updateSleep(dtMs)

	var started []Pair
	for p := range w.contacts {
		if _, ok := w.prevContacts[p]; !ok {
			started = append(started, p)
		}
	}
	// Map iteration order is random; collision-start events must not be.
	sortPairs(started)
	w.prevContacts, w.contacts = w.contacts, w.prevContacts

	w.stepping = false
	return started
}

// solveBodyContacts resolves circle-circle overlap with equal-mass impulses,
// splitting velocity into normal and tangential components the same way the
// contact is separated positionally.
func (w *World) solveBodyContacts() {
	for i := 0; i < len(w.bodies); i++ {
		a := w.bodies[i]
		if a.Ghost {
			continue
		}
		for j := i + 1; j < len(w.bodies); j++ {
			b := w.bodies[j]
			if b.Ghost {
				continue
			}

			delta := b.Pos.Sub(a.Pos)
			minDist := a.Radius + b.Radius
			distSq := delta.LenSq()
			if distSq >= minDist*minDist {
				continue
			}

			dist := delta.Len()
			n := delta.Normalize()
			if dist == 0 {
				n = Vec2{0, -1} // coincident centers: push apart vertically
			}
			overlap := minDist - dist

			a.Pos = a.Pos.Sub(n.Scale(overlap / 2))
			b.Pos = b.Pos.Add(n.Scale(overlap / 2))

			rv := b.Vel.Sub(a.Vel).Dot(n)
			if rv < 0 {
				imp := -(1 + w.cfg.Restitution) * rv / 2
				a.Vel = a.Vel.Sub(n.Scale(imp))
				b.Vel = b.Vel.Add(n.Scale(imp))

				t := n.Perp()
				rt := b.Vel.Sub(a.Vel).Dot(t)
				ft := rt * w.cfg.Friction / 2
				a.Vel = a.Vel.Add(t.Scale(ft))
				b.Vel = b.Vel.Sub(t.Scale(ft))
			}

			// Resting contacts (tiny overlap, near-zero approach speed) must
			// not keep a settled stack awake forever.
			if rv < -w.cfg.SleepSpeed || overlap > 0.5 {
				a.Wake()
				b.Wake()
			}
			w.contacts[makePair(a.Handle, b.Handle)] = struct{}{}
		}
	}
}

// solveWallContacts pushes circles out of the static walls and reflects the
// normal velocity component with restitution.
func (w *World) solveWallContacts() {
	for _, b := range w.bodies {
		if b.Ghost {
			continue
		}
		for _, wall := range w.walls {
			closest := wall.closestPoint(b.Pos)
			delta := b.Pos.Sub(closest)
			distSq := delta.LenSq()
			if distSq >= b.Radius*b.Radius {
				continue
			}

			dist := delta.Len()
			n := delta.Normalize()
			if dist == 0 {
				n = Vec2{0, -1} // center inside the wall: eject upward
			}

			b.Pos = b.Pos.Add(n.Scale(b.Radius - dist))

			vn := b.Vel.Dot(n)
			if vn < 0 {
				normal := n.Scale(vn)
				tangent := b.Vel.Sub(normal)
				tangent = tangent.Scale(1 - w.cfg.Friction)
				b.Vel = tangent.Sub(normal.Scale(w.cfg.Restitution))
			}

			w.contacts[makePair(b.Handle, wall.Handle)] = struct{}{}
		}
	}
}

// updateSleep puts bodies that have been slow for a sustained period to
// sleep. Solver corrections call Wake, so anything still being jostled never
// accumulates enough still time.
func (w *World) updateSleep(dtMs float64) {
	for _, b := range w.bodies {
		if b.Ghost || b.Sleeping {
			continue
		}
		if b.Speed() < w.cfg.SleepSpeed {
			b.stillMs += dtMs
			if b.stillMs >= w.cfg.SleepAfterMs {
				b.Sleeping = true
				b.Vel = Vec2{}
			}
		} else {
			b.stillMs = 0
		}
	}
}

// sortPairs orders pairs by (A, B) using insertion sort; collision-start
// batches are tiny.
func sortPairs(pairs []Pair) {
	for i := 1; i < len(pairs); i++ {
		p := pairs[i]
		j := i - 1
		for j >= 0 && (pairs[j].A > p.A || (pairs[j].A == p.A && pairs[j].B > p.B)) {
			pairs[j+1] = pairs[j]
			j--
		}
		pairs[j+1] = p
	}
}
