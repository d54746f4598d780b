package mergedrop

import "github.com/vovakirdan/tui-mergedrop/internal/core"

// DiscView is the render-facing state of one disc.
type DiscView struct {
	ID      DiscID
	X, Y    float64
	Radius  float64
	Value   int
	Color   core.Color
	Scale   float64 // < 1 while the spawn-grow animation runs
	Gliding bool    // mid-merge, sliding toward the midpoint
}

// ParticleView is one live particle.
type ParticleView struct {
	X, Y  float64
	Size  float64
	Color core.Color
	Alpha float64
}

// PreviewView is the disc waiting at the spawn row.
type PreviewView struct {
	X      float64
	Y      float64
	Radius float64
	Value  int
	Color  core.Color
	Ready  bool // cooldown elapsed, a drop would be accepted
}

// Snapshot captures the complete observable game state for rendering and
// determinism testing. Discs appear in spawn order.
type Snapshot struct {
	Tick      uint64
	State     string
	EndReason string
	Notice    string

	Score int
	Best  int

	BoardW  float64
	BoardH  float64
	DangerY float64

	Discs     []DiscView
	Particles []ParticleView
	Preview   PreviewView

	TickRate float64
	FPS      float64 // achieved frame rate, smoothed
}

// Snapshot returns the current observable state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:      g.tick,
		State:     g.state,
		EndReason: g.endReason,
		Notice:    g.notice,
		Score:     g.score,
		Best:      g.Best(),
		BoardW:    g.layout.W,
		BoardH:    g.layout.H,
		DangerY:   g.layout.DangerY,
	}
	if g.runner != nil {
		s.TickRate = g.runner.TargetRate()
		s.FPS = g.runner.AchievedFPS()
	}

	s.Discs = make([]DiscView, 0, g.discs.len())
	for _, d := range g.discs.list {
		b := g.world.Body(d.Body)
		if b == nil {
			continue
		}
		s.Discs = append(s.Discs, DiscView{
			ID:      d.ID,
			X:       b.Pos.X,
			Y:       b.Pos.Y,
			Radius:  d.Radius,
			Value:   d.Value,
			Color:   ColorForValue(d.Value),
			Scale:   g.anims.scale(d.ID, g.now),
			Gliding: g.anims.gliding(d.ID),
		})
	}

	if g.pool.Live() > 0 {
		s.Particles = make([]ParticleView, 0, g.pool.Live())
		for i := 0; i < g.pool.Capacity(); i++ {
			if !g.pool.Alive[i] {
				continue
			}
			s.Particles = append(s.Particles, ParticleView{
				X:     g.pool.X[i],
				Y:     g.pool.Y[i],
				Size:  g.pool.Size[i],
				Color: core.Color(g.pool.Color[i]),
				Alpha: g.pool.Alpha(i),
			})
		}
	}

	s.Preview = PreviewView{
		X:      g.pointerX,
		Y:      g.layout.SpawnY,
		Radius: g.layout.RadiusForValue(g.nextValue),
		Value:  g.nextValue,
		Color:  ColorForValue(g.nextValue),
		Ready:  g.now-g.lastDrop >= g.cfg.Drop.CooldownMs,
	}
	return s
}
