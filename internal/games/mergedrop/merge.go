package mergedrop

import (
	"github.com/vovakirdan/tui-mergedrop/internal/games/mergedrop/physics"
)

// mergeRequest is a merge accepted during collision processing, resolved in
// the same tick after all contacts have been inspected.
type mergeRequest struct {
	a, b DiscID
	midX float64
	midY float64
}

// pendingSpawn is a scheduled merge completion: when the glide finishes,
// both source discs are removed and the doubled disc appears at the
// midpoint. Cleared wholesale on restart.
type pendingSpawn struct {
	dueAt float64 // sim time, ms
	x, y  float64
	value int
	a, b  DiscID
}

// collectMerges inspects this tick's new contacts and queues merge requests
// for the eligible pairs. A disc joins at most one merge per tick; the pair
// ordering from the physics step keeps the choice deterministic.
func (g *Game) collectMerges(starts []physics.Pair) {
	if len(starts) == 0 {
		return
	}
	claimed := map[DiscID]bool{}
	for _, p := range starts {
		da := g.discs.byHandle(p.A)
		db := g.discs.byHandle(p.B)
		if da == nil || db == nil {
			continue // wall contact
		}
		if da.Value != db.Value || da.MidMerge || db.MidMerge {
			continue
		}
		if claimed[da.ID] || claimed[db.ID] {
			continue
		}
		ba := g.world.Body(da.Body)
		bb := g.world.Body(db.Body)
		if ba == nil || bb == nil {
			continue
		}
		// Gate on the velocities the pair carried into the contact. The
		// solver's restitution impulse has already eaten most of a hard
		// approach by now, so Vel alone would let fast hits through.
		va := ba.ImpactVel()
		vb := bb.ImpactVel()
		if va.Len() > g.cfg.Merge.SpeedMax || vb.Len() > g.cfg.Merge.SpeedMax {
			continue
		}
		if va.Sub(vb).Len() > g.cfg.Merge.RelSpeedMax {
			continue
		}
		claimed[da.ID] = true
		claimed[db.ID] = true
		g.merges = append(g.merges, mergeRequest{
			a:    da.ID,
			b:    db.ID,
			midX: (ba.Pos.X + bb.Pos.X) / 2,
			midY: (ba.Pos.Y + bb.Pos.Y) / 2,
		})
	}
}

// resolveMerges starts the glide for every queued merge: both discs become
// ghosts, slide toward the midpoint, and a completion is scheduled. Stale
// requests (a disc vanished since collection) are skipped silently.
func (g *Game) resolveMerges() {
	for _, m := range g.merges {
		da := g.discs.get(m.a)
		db := g.discs.get(m.b)
		if da == nil || db == nil || da.MidMerge || db.MidMerge {
			continue
		}
		ba := g.world.Body(da.Body)
		bb := g.world.Body(db.Body)
		if ba == nil || bb == nil {
			continue
		}
		da.MidMerge = true
		db.MidMerge = true
		ba.Ghost = true
		bb.Ghost = true
		ba.Vel = physics.Vec2{}
		bb.Vel = physics.Vec2{}

		r := da.Radius
		if db.Radius > r {
			r = db.Radius
		}
		g.burst(m.midX, m.midY, r, ColorForValue(da.Value*2))

		g.anims.startGlide(da.ID, g.now, g.cfg.Merge.GlideMs, ba.Pos.X, ba.Pos.Y, m.midX, m.midY)
		g.anims.startGlide(db.ID, g.now, g.cfg.Merge.GlideMs, bb.Pos.X, bb.Pos.Y, m.midX, m.midY)

		g.addScore(da.Value * 2)
		g.pending = append(g.pending, pendingSpawn{
			dueAt: g.now + g.cfg.Merge.GlideMs,
			x:     m.midX,
			y:     m.midY,
			value: da.Value * 2,
			a:     da.ID,
			b:     db.ID,
		})
	}
	g.merges = g.merges[:0]
}

// drainPending completes merges whose glide has finished: remove the two
// source discs and spawn the doubled disc with a grow animation and a small
// upward kick. If the disc cap blocks the spawn, the sources stay removed
// and a notice is shown; the score was already awarded.
func (g *Game) drainPending() {
	kept := g.pending[:0]
	for _, p := range g.pending {
		if g.now < p.dueAt {
			kept = append(kept, p)
			continue
		}
		if da := g.discs.get(p.a); da != nil {
			g.removeDisc(da)
		}
		if db := g.discs.get(p.b); db != nil {
			g.removeDisc(db)
		}
		d := g.spawnDisc(p.x, p.y, p.value)
		if d == nil {
			g.setNotice("Board is full!")
			continue
		}
		if b := g.world.Body(d.Body); b != nil {
			b.Vel.Y = -spawnKick
		}
		g.anims.startGrow(d.ID, g.now, g.cfg.Merge.GrowMs)
	}
	g.pending = kept
}
