package mergedrop

import "math"

// updateHighestTop recomputes the smallest top edge across live discs.
// Ghost discs are mid-merge and about to vanish, so they are excluded.
func (g *Game) updateHighestTop() {
	top := math.Inf(1)
	for _, d := range g.discs.list {
		b := g.world.Body(d.Body)
		if b == nil || b.Ghost {
			continue
		}
		if t := b.Top(); t < top {
			top = t
		}
	}
	g.highestTop = top
}

// checkDanger ends the session when a settled disc crosses the danger line,
// or when the board has stalemated with a crowd of cleared discs pressed
// against it. Discs younger than the grace period are exempt so a disc
// falling past the line on its way down does not end the game.
func (g *Game) checkDanger() {
	if g.state != StateRunning {
		return
	}
	// Fast path: nothing reaches the line at all.
	if g.highestTop >= g.layout.DangerY {
		return
	}

	bandMax := g.layout.DangerY + g.cfg.Danger.BandPx
	inBand := 0
	for _, d := range g.discs.list {
		if d.MidMerge {
			continue
		}
		if g.now-d.SpawnedAt < g.cfg.Danger.GraceMs {
			continue
		}
		b := g.world.Body(d.Body)
		if b == nil || b.Ghost {
			continue
		}
		top := b.Top()
		if top < g.layout.DangerY {
			g.endSession(ReasonDangerLine)
			return
		}
		if top < bandMax {
			inBand++
		}
	}

	// Stalemate: the board is crowded and a pile of settled discs sits
	// just under the line without crossing it.
	if g.discs.len() > g.cfg.Danger.StackCount && inBand > g.cfg.Danger.StackCleared {
		g.endSession(ReasonStacked)
	}
}
