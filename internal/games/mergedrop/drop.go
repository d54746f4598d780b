package mergedrop

// DropRequested releases the previewed disc at the pointer position. The
// drop is ignored while paused or ended and rate-limited by the cooldown.
// When no free spot exists anywhere along the spawn row the session ends.
func (g *Game) DropRequested() {
	if g.state != StateRunning {
		return
	}
	if g.now-g.lastDrop < g.cfg.Drop.CooldownMs {
		return
	}
	r := g.layout.RadiusForValue(g.nextValue)
	x, ok := g.findSpawnX(g.pointerX, r)
	if !ok {
		g.endSession(ReasonNoSpace)
		return
	}
	g.lastDrop = g.now
	d := g.spawnDisc(x, g.layout.SpawnY, g.nextValue)
	if d == nil {
		g.setNotice("Board is full!")
		return
	}
	g.anims.startGrow(d.ID, g.now, g.cfg.Merge.GrowMs)
	g.nextValue = g.rollValue()
}

// findSpawnX searches for a collision-free x on the spawn row. It first
// tries the preferred position, then stepped offsets beside it, then a
// widening zig-zag around the board center. Returns false when every
// candidate is blocked.
func (g *Game) findSpawnX(preferred, r float64) (float64, bool) {
	if g.isSpawnFree(preferred, r) {
		return preferred, true
	}
	step := r * 2.2
	for i := 1; i <= g.cfg.Drop.SideSteps; i++ {
		off := float64(i) * step
		if g.isSpawnFree(preferred+off, r) {
			return preferred + off, true
		}
		if g.isSpawnFree(preferred-off, r) {
			return preferred - off, true
		}
	}
	center := g.layout.W / 2
	for i := 0; i <= g.cfg.Drop.ZigzagSteps; i++ {
		off := float64(i) * step
		if g.isSpawnFree(center+off, r) {
			return center + off, true
		}
		if off > 0 && g.isSpawnFree(center-off, r) {
			return center - off, true
		}
	}
	return 0, false
}

// isSpawnFree reports whether a disc of radius r placed at (x, SpawnY) is
// inside the board and clear of every live disc with a small safety margin.
func (g *Game) isSpawnFree(x, r float64) bool {
	if x-r < 0 || x+r > g.layout.W {
		return false
	}
	y := g.layout.SpawnY
	for _, d := range g.discs.list {
		b := g.world.Body(d.Body)
		if b == nil {
			continue
		}
		dx := b.Pos.X - x
		dy := b.Pos.Y - y
		min := (b.Radius + r) * 1.1
		if dx*dx+dy*dy < min*min {
			return false
		}
	}
	return true
}
