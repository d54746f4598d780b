package mergedrop

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-mergedrop/internal/config"
	"github.com/vovakirdan/tui-mergedrop/internal/core"
	"github.com/vovakirdan/tui-mergedrop/internal/games/mergedrop/physics"
)

// fakeStore records persistence calls.
type fakeStore struct {
	best      int
	bestSaves int
	sessions  int
}

func (s *fakeStore) Best() (int, error) { return s.best, nil }
func (s *fakeStore) SaveBest(score int) error {
	if score > s.best {
		s.best = score
	}
	s.bestSaves++
	return nil
}
func (s *fakeStore) RecordSession(int) error {
	s.sessions++
	return nil
}

// testGame starts a session on a 200x240 board, where the radius regime is
// 1:1 (a value-2 disc has radius 7).
func testGame(store ScoreStore) *Game {
	g := New(config.DefaultMergeConfig(), store)
	g.Reset(core.RuntimeConfig{BoardW: 200, BoardH: 240, TickRate: 60, Seed: 7})
	return g
}

// runTicks advances the simulation clock directly, bypassing the frame
// pacing, one fixed tick at a time.
func runTicks(g *Game, n int) {
	const dt = 1000.0 / 60.0
	for i := 0; i < n; i++ {
		g.now += dt
		g.tickOnce(dt)
	}
}

func TestResetStartsCleanSession(t *testing.T) {
	g := testGame(nil)
	if g.State() != StateRunning {
		t.Fatalf("state = %q, want %q", g.State(), StateRunning)
	}
	if g.Score() != 0 || g.discs.len() != 0 {
		t.Fatalf("score=%d discs=%d, want 0 and 0", g.Score(), g.discs.len())
	}
	if g.nextValue < 2 {
		t.Fatalf("no preview value rolled")
	}
}

func TestDropSpawnsDisc(t *testing.T) {
	g := testGame(nil)
	g.PointerMoved(100)
	g.DropRequested()
	if g.discs.len() != 1 {
		t.Fatalf("discs = %d, want 1", g.discs.len())
	}
	d := g.discs.list[0]
	b := g.world.Body(d.Body)
	if b.Pos.Y != g.layout.SpawnY {
		t.Errorf("spawn y = %v, want %v", b.Pos.Y, g.layout.SpawnY)
	}
	switch d.Value {
	case 2, 4, 8, 16:
	default:
		t.Errorf("spawn value = %d, not in distribution", d.Value)
	}
}

func TestDropCooldown(t *testing.T) {
	g := testGame(nil)
	g.PointerMoved(60)
	g.DropRequested()
	g.PointerMoved(140)
	g.DropRequested() // same instant, inside cooldown
	if g.discs.len() != 1 {
		t.Fatalf("discs = %d, want 1 (second drop inside cooldown)", g.discs.len())
	}
	g.now += g.cfg.Drop.CooldownMs + 1
	g.DropRequested()
	if g.discs.len() != 2 {
		t.Fatalf("discs = %d, want 2 after cooldown", g.discs.len())
	}
}

func TestGentleContactMerges(t *testing.T) {
	g := testGame(nil)
	// Overlapping resting pair of equal value: contact fires on the first
	// step and both speeds are near zero.
	a := g.spawnDisc(100, 220, 2)
	b := g.spawnDisc(110, 220, 2)
	runTicks(g, 1)
	if !a.MidMerge || !b.MidMerge {
		t.Fatalf("discs not mid-merge after gentle contact")
	}
	if g.Score() != 4 {
		t.Fatalf("score = %d, want 4", g.Score())
	}
	if len(g.pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(g.pending))
	}

	// Let the glide finish; the pair is replaced by one doubled disc.
	g.now += g.cfg.Merge.GlideMs + 1
	g.tickOnce(16)
	if g.discs.len() != 1 {
		t.Fatalf("discs = %d, want 1 after merge completes", g.discs.len())
	}
	if got := g.discs.list[0].Value; got != 4 {
		t.Fatalf("merged value = %d, want 4", got)
	}
}

func TestFastContactDoesNotMerge(t *testing.T) {
	g := testGame(nil)
	a := g.spawnDisc(100, 220, 2)
	b := g.spawnDisc(110, 220, 2)
	g.world.Body(a.Body).Vel.X = 300
	g.world.Body(b.Body).Vel.X = -300
	runTicks(g, 1)
	if a.MidMerge || b.MidMerge {
		t.Fatalf("discs merged despite relative speed above the gate")
	}
	if g.Score() != 0 {
		t.Fatalf("score = %d, want 0", g.Score())
	}
}

func TestMergeGateReadsPreImpactSpeed(t *testing.T) {
	g := testGame(nil)
	// A hard head-on hit: the restitution impulse leaves both bodies slow
	// by the time merges are collected, so a gate reading the post-solve
	// velocity would wrongly let the pair through.
	a := g.spawnDisc(100, 220, 8)
	b := g.spawnDisc(110, 220, 8)
	g.world.Body(a.Body).Vel.X = 250
	g.world.Body(b.Body).Vel.X = -250
	runTicks(g, 2)
	if a.MidMerge || b.MidMerge {
		t.Fatalf("hard impact merged")
	}
	if g.discs.len() != 2 {
		t.Fatalf("discs = %d, want 2", g.discs.len())
	}
	if a.Value != 8 || b.Value != 8 {
		t.Fatalf("values = %d,%d, want 8,8", a.Value, b.Value)
	}
	if g.Score() != 0 {
		t.Fatalf("score = %d, want 0", g.Score())
	}
}

func TestSlowRelativeSpeedMerges(t *testing.T) {
	g := testGame(nil)
	a := g.spawnDisc(100, 220, 2)
	b := g.spawnDisc(110, 220, 2)
	g.world.Body(a.Body).Vel.X = 25
	g.world.Body(b.Body).Vel.X = -25
	runTicks(g, 1)
	if !a.MidMerge || !b.MidMerge {
		t.Fatalf("gentle approach (rel speed 50) did not merge")
	}
}

func TestUnequalValuesNeverMerge(t *testing.T) {
	g := testGame(nil)
	a := g.spawnDisc(100, 220, 2)
	b := g.spawnDisc(110, 220, 4)
	runTicks(g, 30)
	if a.MidMerge || b.MidMerge {
		t.Fatalf("discs of different values merged")
	}
}

func TestMidMergeDiscIsLocked(t *testing.T) {
	g := testGame(nil)
	a := g.spawnDisc(100, 220, 2)
	b := g.spawnDisc(110, 220, 2)
	runTicks(g, 1)
	if !a.MidMerge || !b.MidMerge {
		t.Fatalf("setup: pair did not merge")
	}
	// A third equal disc overlapping the gliding pair must not join.
	c := g.spawnDisc(105, 214, 2)
	runTicks(g, 1)
	if c.MidMerge {
		t.Fatalf("third disc merged into an in-flight pair")
	}
}

func TestDiscIDsNeverReused(t *testing.T) {
	g := testGame(nil)
	a := g.spawnDisc(50, 220, 2)
	first := a.ID
	g.removeDisc(a)
	b := g.spawnDisc(50, 220, 2)
	if b.ID <= first {
		t.Fatalf("ID %d reused or regressed after %d", b.ID, first)
	}
}

func TestMaxDiscsCap(t *testing.T) {
	g := testGame(nil)
	g.cfg.Limits.MaxDiscs = 5
	for i := 0; i < 5; i++ {
		if d := g.spawnDisc(float64(20+i*30), 220, 2); d == nil {
			t.Fatalf("spawn %d rejected below the cap", i)
		}
	}
	if d := g.spawnDisc(20, 100, 2); d != nil {
		t.Fatalf("spawn above the cap succeeded")
	}
}

func TestHighestTopMatchesRecompute(t *testing.T) {
	g := testGame(nil)
	g.spawnDisc(40, 200, 2)
	g.spawnDisc(90, 150, 4)
	g.spawnDisc(150, 100, 8)
	runTicks(g, 20)

	want := math.Inf(1)
	for _, d := range g.discs.list {
		b := g.world.Body(d.Body)
		if b.Ghost {
			continue
		}
		if top := b.Top(); top < want {
			want = top
		}
	}
	if g.highestTop != want {
		t.Fatalf("highestTop = %v, recompute = %v", g.highestTop, want)
	}
}

func TestGracePeriodExemptsFreshDiscs(t *testing.T) {
	g := testGame(nil)
	d := g.spawnDisc(100, g.layout.DangerY-5, 2)
	g.updateHighestTop()
	g.checkDanger()
	if g.State() != StateRunning {
		t.Fatalf("fresh disc above the line ended the session")
	}

	// Hold the disc in place past the grace period.
	g.now += g.cfg.Danger.GraceMs + 1
	b := g.world.Body(d.Body)
	b.Pos = physics.Vec2{X: 100, Y: g.layout.DangerY - 5}
	g.updateHighestTop()
	g.checkDanger()
	if g.State() != StateEnded {
		t.Fatalf("settled disc above the line did not end the session")
	}
	if g.EndReason() != ReasonDangerLine {
		t.Fatalf("end reason = %q, want %q", g.EndReason(), ReasonDangerLine)
	}
}

func TestCrowdedBandEndsStalemate(t *testing.T) {
	g := testGame(nil)
	// A crowd of settled discs pressed just under the line, plus filler
	// lower down to push the total over the stack threshold.
	for i := 0; i < 7; i++ {
		g.spawnDisc(float64(20+i*25), 50, 2)
	}
	for i := 0; i < 6; i++ {
		g.spawnDisc(float64(20+i*25), 200, 2)
	}
	g.now += g.cfg.Danger.GraceMs + 1

	// One fresh disc pokes above the line. It is inside its grace window,
	// so crossing must not end the session on its own.
	g.spawnDisc(180, 40, 2)
	g.updateHighestTop()
	g.checkDanger()
	if g.State() != StateEnded {
		t.Fatalf("crowded band did not end the session")
	}
	if g.EndReason() != ReasonStacked {
		t.Fatalf("end reason = %q, want %q", g.EndReason(), ReasonStacked)
	}
}

func TestEndSessionIdempotent(t *testing.T) {
	store := &fakeStore{}
	g := testGame(store)
	g.score = 10
	g.endSession(ReasonDangerLine)
	g.endSession(ReasonStacked)
	if g.EndReason() != ReasonDangerLine {
		t.Fatalf("end reason overwritten: %q", g.EndReason())
	}
	if store.sessions != 1 {
		t.Fatalf("RecordSession called %d times, want 1", store.sessions)
	}
}

func TestBlockedDropStepsSideways(t *testing.T) {
	g := testGame(nil)
	g.spawnDisc(100, g.layout.SpawnY, 2)
	g.PointerMoved(100)
	g.DropRequested()
	if g.State() != StateRunning {
		t.Fatalf("session ended with free space beside the pointer")
	}
	if g.discs.len() != 2 {
		t.Fatalf("discs = %d, want 2", g.discs.len())
	}
	b := g.world.Body(g.discs.list[1].Body)
	if b.Pos.X == 100 {
		t.Fatalf("new disc placed on top of the blocker")
	}
}

func TestDropPlacesAtFirstFreeCandidate(t *testing.T) {
	g := testGame(nil)
	g.nextValue = 2
	r := g.layout.RadiusForValue(2)

	// Block the spawn row except a window on the right half, forcing the
	// search into the center zig-zag.
	for x := 0.0; x <= 150; x += 10 {
		g.spawnDisc(x, g.layout.SpawnY, 2)
	}
	n := g.discs.len()

	// The first free candidate in search order: preferred, stepped
	// offsets beside it, then the zig-zag around the board center.
	step := r * 2.2
	preferred := 30.0
	var candidates []float64
	candidates = append(candidates, preferred)
	for i := 1; i <= g.cfg.Drop.SideSteps; i++ {
		candidates = append(candidates, preferred+float64(i)*step, preferred-float64(i)*step)
	}
	center := g.layout.W / 2
	for i := 0; i <= g.cfg.Drop.ZigzagSteps; i++ {
		candidates = append(candidates, center+float64(i)*step)
		if i > 0 {
			candidates = append(candidates, center-float64(i)*step)
		}
	}
	want := -1.0
	for _, c := range candidates {
		if g.isSpawnFree(c, r) {
			want = c
			break
		}
	}
	if want < 0 {
		t.Fatalf("setup: no free candidate at all")
	}

	g.PointerMoved(preferred)
	g.DropRequested()
	if g.discs.len() != n+1 {
		t.Fatalf("drop failed with a free candidate available")
	}
	got := g.world.Body(g.discs.list[n].Body).Pos.X
	if got != want {
		t.Fatalf("placed at %v, want first free candidate %v", got, want)
	}
}

func TestFullSpawnRowEndsSession(t *testing.T) {
	g := testGame(nil)
	for x := 0.0; x <= g.layout.W; x += 10 {
		g.spawnDisc(x, g.layout.SpawnY, 2)
	}
	g.PointerMoved(100)
	g.DropRequested()
	if g.State() != StateEnded {
		t.Fatalf("drop with no free spot did not end the session")
	}
	if g.EndReason() != ReasonNoSpace {
		t.Fatalf("end reason = %q, want %q", g.EndReason(), ReasonNoSpace)
	}
}

func TestRestartCancelsPendingMerge(t *testing.T) {
	g := testGame(nil)
	g.spawnDisc(100, 220, 2)
	g.spawnDisc(110, 220, 2)
	runTicks(g, 1)
	if len(g.pending) != 1 {
		t.Fatalf("setup: no pending merge")
	}
	g.Restart()
	if len(g.pending) != 0 || g.discs.len() != 0 {
		t.Fatalf("restart kept pending=%d discs=%d", len(g.pending), g.discs.len())
	}
	if g.Score() != 0 || g.State() != StateRunning {
		t.Fatalf("restart state: score=%d state=%q", g.Score(), g.State())
	}
	// The scheduled completion must never fire in the new session.
	g.now += g.cfg.Merge.GlideMs * 2
	g.tickOnce(16)
	if g.discs.len() != 0 {
		t.Fatalf("stale merge completion spawned a disc after restart")
	}
}

func TestPauseFreezesSimClock(t *testing.T) {
	g := testGame(nil)
	g.Frame(0)
	g.Frame(16)
	was := g.now
	g.TogglePause()
	g.Frame(2000)
	g.Frame(4000)
	if g.now != was {
		t.Fatalf("sim clock advanced while paused: %v -> %v", was, g.now)
	}
	g.TogglePause()
	g.Frame(4016)
	if g.now <= was {
		t.Fatalf("sim clock did not resume")
	}
}

func TestBestScorePersistence(t *testing.T) {
	store := &fakeStore{best: 6}
	g := testGame(store)
	if g.Best() != 6 {
		t.Fatalf("best not loaded from store: %d", g.Best())
	}
	g.addScore(4) // below best, no save
	if store.bestSaves != 0 {
		t.Fatalf("save issued below the stored best")
	}
	g.now = g.cfg.Score.BestSaveIntervalMs + 1
	g.addScore(4) // 8 > 6, interval elapsed
	if store.bestSaves != 1 || store.best != 8 {
		t.Fatalf("saves=%d best=%d, want 1 and 8", store.bestSaves, store.best)
	}
	g.addScore(4) // 12 > 8 but inside the interval
	if store.bestSaves != 1 {
		t.Fatalf("rate limit not applied: saves=%d", store.bestSaves)
	}
	g.endSession(ReasonDangerLine)
	if store.best != 12 {
		t.Fatalf("final flush missing: best=%d", store.best)
	}
}

func TestResizeKeepsDiscs(t *testing.T) {
	g := testGame(nil)
	g.spawnDisc(50, 120, 2)
	g.spawnDisc(150, 200, 8)
	g.Resize(100, 120, true)
	if g.discs.len() != 2 {
		t.Fatalf("resize lost discs: %d", g.discs.len())
	}
	b := g.world.Body(g.discs.list[0].Body)
	if b.Pos.X != 25 || b.Pos.Y != 60 {
		t.Fatalf("position not rescaled: (%v, %v)", b.Pos.X, b.Pos.Y)
	}
	if got := g.discs.list[0].Radius; got != g.layout.RadiusForValue(2) {
		t.Fatalf("radius not recomputed: %v", got)
	}
	runTicks(g, 10) // must not panic or lose bodies
	if g.discs.len() != 2 {
		t.Fatalf("discs lost after post-resize ticks: %d", g.discs.len())
	}
}

func TestDeterministicSessions(t *testing.T) {
	play := func() Snapshot {
		g := testGame(nil)
		g.Frame(0)
		now := 0.0
		for i := 0; i < 300; i++ {
			now += 16
			g.Frame(now)
			switch i {
			case 20:
				g.PointerMoved(60)
				g.DropRequested()
			case 60:
				g.PointerMoved(140)
				g.DropRequested()
			case 100:
				g.PointerMoved(100)
				g.DropRequested()
			}
		}
		return g.Snapshot()
	}
	a, b := play(), play()
	if a.Tick != b.Tick || a.Score != b.Score || len(a.Discs) != len(b.Discs) {
		t.Fatalf("sessions diverged: ticks %d/%d score %d/%d discs %d/%d",
			a.Tick, b.Tick, a.Score, b.Score, len(a.Discs), len(b.Discs))
	}
	for i := range a.Discs {
		if a.Discs[i] != b.Discs[i] {
			t.Fatalf("disc %d diverged: %+v vs %+v", i, a.Discs[i], b.Discs[i])
		}
	}
}
