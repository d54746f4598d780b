// Package mergedrop implements the merge-drop game core: discs fall under
// gravity onto a bounded board, equal-value discs that touch gently fuse
// into a disc of double value, and the session ends when a settled disc
// crosses the danger line near the top.
//
// The package is pure logic with no rendering or terminal dependencies.
// Platform code drives it with Frame and the normalized input signals
// PointerMoved and DropRequested, and reads the state back each frame
// through Snapshot.
package mergedrop

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-mergedrop/internal/config"
	"github.com/vovakirdan/tui-mergedrop/internal/core"
	"github.com/vovakirdan/tui-mergedrop/internal/games/mergedrop/particles"
	"github.com/vovakirdan/tui-mergedrop/internal/games/mergedrop/physics"
)

// GameID is the identifier used for score storage and the CLI.
const GameID = "mergedrop"

// Session states.
const (
	StateNotRunning = "not_running"
	StateRunning    = "running"
	StatePaused     = "paused"
	StateEnded      = "ended"
)

// End reasons. Only the first transition into StateEnded is honored, so
// EndReason always carries the reason that actually ended the session.
const (
	ReasonDangerLine = "Danger line crossed."
	ReasonStacked    = "Too many circles stacked."
	ReasonNoSpace    = "No space to spawn."
)

// spawnKick is the upward impulse given to a freshly merged disc, px/s.
const spawnKick = 60.0

// noticeMs is how long an advisory notice stays visible.
const noticeMs = 2500.0

// maxFrameDeltaMs caps the wall-clock delta applied to the sim clock in one
// frame, so a suspended terminal resumes with a small skip instead of a
// burst of catch-up ticks.
const maxFrameDeltaMs = 100.0

// ScoreStore is the persistence boundary for scores. The game calls
// SaveBest on a new best, rate-limited, and RecordSession once per finished
// session. A nil ScoreStore disables persistence.
type ScoreStore interface {
	Best() (int, error)
	SaveBest(score int) error
	RecordSession(score int) error
}

// Game is a single merge-drop session. All methods must be called from one
// goroutine; the game relies on single-writer discipline instead of locks.
type Game struct {
	cfg    config.MergeConfig
	rt     core.RuntimeConfig
	layout Layout

	world  *physics.World
	discs  *discTable
	pool   *particles.Pool
	anims  *animTracker
	runner *core.StepRunner
	rng    *rand.Rand
	store  ScoreStore

	state     string
	endReason string

	score        int
	best         int
	lastBestSave float64

	// now is the simulation clock in ms. It advances only while the
	// session is running, so pause freezes animations and pending merges
	// without a catch-up burst on resume.
	now      float64
	lastWall float64
	hasWall  bool
	tick     uint64

	pointerX  float64
	nextValue int
	lastDrop  float64

	pending []pendingSpawn
	merges  []mergeRequest

	// highestTop is the smallest Top() across live discs, maintained
	// incrementally each tick. Smaller means closer to the ceiling.
	highestTop float64

	notice      string
	noticeUntil float64
}

// New creates a game with the given tuning. The game is idle until Reset.
func New(cfg config.MergeConfig, store ScoreStore) *Game {
	cfg.Sanitize()
	return &Game{
		cfg:   cfg,
		store: store,
		state: StateNotRunning,
	}
}

// Reset starts a fresh session on a board sized by rt. It may be called in
// any state and always yields a clean running session.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	g.layout = NewLayout(rt.BoardW, rt.BoardH, rt.Compact)

	g.world = physics.NewWorld(physics.Config{
		Gravity:      g.cfg.Physics.Gravity,
		Damping:      g.cfg.Physics.Damping,
		Restitution:  g.cfg.Physics.Restitution,
		Friction:     g.cfg.Physics.Friction,
		MaxSpeed:     g.cfg.Physics.MaxSpeed,
		SleepSpeed:   g.cfg.Physics.SleepSpeed,
		SleepAfterMs: g.cfg.Physics.SleepAfterMs,
	})
	g.world.SetBounds(g.layout.W, g.layout.H, g.layout.WallThickness)

	g.discs = newDiscTable()
	g.pool = particles.NewPool(g.cfg.Limits.ParticleCapacity)
	g.anims = newAnimTracker()
	if g.runner == nil {
		g.runner = core.NewStepRunner()
	} else {
		g.runner.Reset()
	}

	seed := rt.Seed
	if seed == 0 {
		seed = 1
	}
	g.rng = rand.New(rand.NewSource(seed))

	g.state = StateRunning
	g.endReason = ""
	g.score = 0
	g.lastBestSave = 0
	g.now = 0
	g.hasWall = false
	g.tick = 0
	g.pointerX = g.layout.W / 2
	g.nextValue = g.rollValue()
	g.lastDrop = -g.cfg.Drop.CooldownMs
	g.pending = g.pending[:0]
	g.merges = g.merges[:0]
	g.highestTop = math.Inf(1)
	g.notice = ""
	g.noticeUntil = 0

	if g.store != nil {
		if best, err := g.store.Best(); err == nil {
			g.best = best
		}
	}
}

// Frame advances the game to wall-clock time wallNow (ms). Platform code
// calls this once per render frame; the game converts the elapsed wall time
// into fixed physics ticks internally.
func (g *Game) Frame(wallNow float64) {
	if !g.hasWall {
		g.hasWall = true
		g.lastWall = wallNow
		return
	}
	delta := wallNow - g.lastWall
	g.lastWall = wallNow
	if delta < 0 {
		delta = 0
	}
	if delta > maxFrameDeltaMs {
		delta = maxFrameDeltaMs
	}

	if g.state == StateRunning {
		g.now += delta
		g.runner.Advance(g.now, g.tickOnce)
		g.anims.update(g.now, func(id DiscID, x, y float64) {
			if d := g.discs.get(id); d != nil {
				if b := g.world.Body(d.Body); b != nil {
					b.Pos = physics.Vec2{X: x, Y: y}
				}
			}
		})
	}
	if g.state != StatePaused {
		// Particles are cosmetic; let an end-of-session burst finish fading.
		g.pool.Update(delta)
	}

	if g.notice != "" && g.now >= g.noticeUntil {
		g.notice = ""
	}
}

// tickOnce is one fixed physics step, registered with the step runner.
func (g *Game) tickOnce(dt float64) {
	g.tick++
	starts := g.world.Step(dt)
	g.collectMerges(starts)
	g.resolveMerges()
	g.drainPending()
	g.updateHighestTop()
	g.checkDanger()
}

// PointerMoved records the horizontal drop position in board pixels.
func (g *Game) PointerMoved(x float64) {
	r := g.layout.RadiusForValue(g.nextValue)
	g.pointerX = core.ClampF(x, r, g.layout.W-r)
}

// TogglePause flips between running and paused. No-op in other states.
func (g *Game) TogglePause() {
	switch g.state {
	case StateRunning:
		g.state = StatePaused
	case StatePaused:
		g.state = StateRunning
	}
}

// Restart begins a new session with the current board size and a fresh
// stream of spawn values.
func (g *Game) Restart() {
	rt := g.rt
	rt.Seed = g.rng.Int63()
	g.Reset(rt)
}

// Resize rescales the board. Disc positions scale proportionally so the
// arrangement survives the resize; radii are recomputed for the new scale.
func (g *Game) Resize(w, h int, compact bool) {
	old := g.layout
	g.rt.BoardW, g.rt.BoardH, g.rt.Compact = w, h, compact
	g.layout = NewLayout(w, h, compact)

	sx := g.layout.W / old.W
	sy := g.layout.H / old.H
	for _, d := range g.discs.list {
		d.Radius = g.layout.RadiusForValue(d.Value)
		if b := g.world.Body(d.Body); b != nil {
			b.Pos.X *= sx
			b.Pos.Y *= sy
			b.Radius = d.Radius
		}
	}
	for i := range g.pending {
		g.pending[i].x *= sx
		g.pending[i].y *= sy
	}
	g.anims.rescale(sx, sy)
	g.world.SetBounds(g.layout.W, g.layout.H, g.layout.WallThickness)
	g.pointerX = core.ClampF(g.pointerX*sx, 0, g.layout.W)
}

// Score returns the current session score.
func (g *Game) Score() int { return g.score }

// Best returns the best score seen, including this session.
func (g *Game) Best() int {
	if g.score > g.best {
		return g.score
	}
	return g.best
}

// State returns the session state string.
func (g *Game) State() string { return g.state }

// EndReason returns the reason the session ended, or "".
func (g *Game) EndReason() string { return g.endReason }

// endSession moves the game to StateEnded. Idempotent: only the first
// reason is kept, and the score is flushed exactly once.
func (g *Game) endSession(reason string) {
	if g.state == StateEnded {
		return
	}
	g.state = StateEnded
	g.endReason = reason
	if g.score > g.best {
		g.best = g.score
	}
	if g.store != nil {
		_ = g.store.SaveBest(g.score)
		_ = g.store.RecordSession(g.score)
	}
}

// addScore adds points and pushes a new best to storage at most once per
// the configured save interval. The final flush happens in endSession.
func (g *Game) addScore(points int) {
	g.score += points
	if g.score <= g.best {
		return
	}
	g.best = g.score
	if g.store == nil {
		return
	}
	if g.now-g.lastBestSave >= g.cfg.Score.BestSaveIntervalMs {
		g.lastBestSave = g.now
		_ = g.store.SaveBest(g.score)
	}
}

// spawnDisc creates a disc at (x, y). Returns nil when the disc cap is
// reached.
func (g *Game) spawnDisc(x, y float64, value int) *Disc {
	if g.discs.len() >= g.cfg.Limits.MaxDiscs {
		return nil
	}
	r := g.layout.RadiusForValue(value)
	b := g.world.AddBody(physics.Vec2{X: x, Y: y}, r)
	return g.discs.insert(b.Handle, value, r, g.now)
}

// removeDisc takes a disc out of the table and the physics world.
func (g *Game) removeDisc(d *Disc) {
	g.anims.drop(d.ID)
	g.world.RemoveBody(d.Body)
	g.discs.remove(d.ID)
}

// rollValue picks the next spawn value from the configured weights.
func (g *Game) rollValue() int {
	total := 0
	for _, w := range g.cfg.Spawn.Weights {
		total += w.Weight
	}
	if total <= 0 {
		return 2
	}
	roll := g.rng.Intn(total)
	for _, w := range g.cfg.Spawn.Weights {
		roll -= w.Weight
		if roll < 0 {
			return w.Value
		}
	}
	return g.cfg.Spawn.Weights[len(g.cfg.Spawn.Weights)-1].Value
}

// setNotice shows a transient advisory message.
func (g *Game) setNotice(msg string) {
	g.notice = msg
	g.noticeUntil = g.now + noticeMs
}

// burst emits a particle ring at (x, y), sized to the merged disc.
func (g *Game) burst(x, y, radius float64, color core.Color) {
	n := core.Min(10+int(radius), 28)
	for i := 0; i < n; i++ {
		slot := g.pool.Acquire()
		if slot == particles.None {
			return
		}
		ang := g.rng.Float64() * 2 * math.Pi
		speed := 40 + g.rng.Float64()*90
		g.pool.X[slot] = x
		g.pool.Y[slot] = y
		g.pool.VX[slot] = math.Cos(ang) * speed
		g.pool.VY[slot] = math.Sin(ang)*speed - 30
		size := 1.2 + g.rng.Float64()*1.6
		g.pool.Size[slot] = size
		g.pool.Size0[slot] = size
		life := 280 + g.rng.Float64()*240
		g.pool.Life[slot] = life
		g.pool.Life0[slot] = life
		g.pool.Color[slot] = uint8(color)
	}
}
