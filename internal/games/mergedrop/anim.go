package mergedrop

import "github.com/vovakirdan/tui-mergedrop/internal/core"

// animKind selects the animation variant.
type animKind uint8

const (
	animMergeGlide animKind = iota + 1 // interpolate toward the merge midpoint
	animSpawnGrow                      // scale 0 -> 1 after spawning
)

// animation is a time-keyed transient visual state attached to one disc.
type animation struct {
	Kind     animKind
	Start    float64 // sim time, ms
	Duration float64
	FromX    float64
	FromY    float64
	ToX      float64
	ToY      float64
}

// animTracker keys animations by disc ID. A disc carries at most one
// animation; starting a new one overwrites the old.
type animTracker struct {
	m map[DiscID]animation
}

func newAnimTracker() *animTracker {
	return &animTracker{m: make(map[DiscID]animation)}
}

func (a *animTracker) startGlide(id DiscID, now, dur, fromX, fromY, toX, toY float64) {
	a.m[id] = animation{
		Kind: animMergeGlide, Start: now, Duration: dur,
		FromX: fromX, FromY: fromY, ToX: toX, ToY: toY,
	}
}

func (a *animTracker) startGrow(id DiscID, now, dur float64) {
	a.m[id] = animation{Kind: animSpawnGrow, Start: now, Duration: dur}
}

// drop removes the animation attached to id, if any.
func (a *animTracker) drop(id DiscID) {
	delete(a.m, id)
}

func (a *animTracker) reset() {
	clear(a.m)
}

// rescale maps every animation's endpoints onto a resized board.
func (a *animTracker) rescale(sx, sy float64) {
	for id, an := range a.m {
		an.FromX *= sx
		an.FromY *= sy
		an.ToX *= sx
		an.ToY *= sy
		a.m[id] = an
	}
}

// scale returns the render scale for a disc: the grow fraction during a
// SpawnGrow, 1 otherwise.
func (a *animTracker) scale(id DiscID, now float64) float64 {
	an, ok := a.m[id]
	if !ok || an.Kind != animSpawnGrow {
		return 1
	}
	t := (now - an.Start) / an.Duration
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// gliding reports whether the disc is currently in a merge glide.
func (a *animTracker) gliding(id DiscID) bool {
	an, ok := a.m[id]
	return ok && an.Kind == animMergeGlide
}

// update advances all animations to now. Glides call apply with the disc's
// interpolated position so the caller can feed it back into the physics
// body. Animations whose elapsed time reaches their duration are removed.
func (a *animTracker) update(now float64, apply func(id DiscID, x, y float64)) {
	for id, an := range a.m {
		t := (now - an.Start) / an.Duration
		if t >= 1 {
			if an.Kind == animMergeGlide {
				apply(id, an.ToX, an.ToY)
			}
			delete(a.m, id)
			continue
		}
		if an.Kind == animMergeGlide && t >= 0 {
			// Ease-out so the glide decelerates into the midpoint.
			p := t * (2 - t)
			apply(id, core.Lerp(an.FromX, an.ToX, p), core.Lerp(an.FromY, an.ToY, p))
		}
	}
}
