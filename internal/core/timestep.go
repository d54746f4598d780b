package core

// Timestep tuning constants. All times are in milliseconds.
const (
	// MinTickRate and MaxTickRate bound the target simulation rate.
	MinTickRate = 60
	MaxTickRate = 240

	// warmupFrames is how many frames are sampled to probe the host's
	// refresh cadence before the target rate is locked in.
	warmupFrames = 24

	// maxFrameDelta caps the wall-clock delta added to the accumulator in a
	// single frame. Without it, returning from a suspended terminal would
	// queue hundreds of catch-up ticks.
	maxFrameDelta = 250.0

	// minTickDt and maxTickDt bound the timestep handed to the simulation.
	// Too small wastes work, too large risks tunneling through walls.
	minTickDt = 4.0
	maxTickDt = 100.0 / 3.0

	// fpsWindow is the measurement window for achieved frame rate.
	fpsWindow = 1000.0

	// degradeRatio and degradeStreak control when the target rate is
	// lowered: the achieved rate must stay below degradeRatio * target for
	// degradeStreak consecutive windows.
	degradeRatio  = 0.9
	degradeStreak = 2
)

// TickFunc advances the simulation by dt milliseconds.
type TickFunc func(dt float64)

// StepRunner converts an irregular frame cadence into fixed simulation ticks.
// It probes the host's refresh rate during a short warm-up, accumulates
// elapsed wall-clock time, and drains it in whole tick intervals. When the
// achieved frame rate persistently falls below the target it lowers the
// target; it never raises it above the probed ceiling.
type StepRunner struct {
	target  float64 // current target ticks per second
	ceiling float64 // probed maximum, target never exceeds this

	accumulator float64
	lastNow     float64
	haveLast    bool

	// warm-up probe
	probeFrames int
	probeStart  float64
	probed      bool

	// fps measurement
	windowStart  float64
	windowFrames int
	achievedFPS  float64
	lowWindows   int
}

// NewStepRunner creates a runner that ticks at MinTickRate until the warm-up
// probe completes.
func NewStepRunner() *StepRunner {
	return &StepRunner{
		target:  MinTickRate,
		ceiling: MinTickRate,
	}
}

// TargetRate returns the current target ticks per second.
func (r *StepRunner) TargetRate() float64 {
	return r.target
}

// AchievedFPS returns the frame rate measured over the last full window,
// or 0 before the first window completes.
func (r *StepRunner) AchievedFPS() float64 {
	return r.achievedFPS
}

// Reset zeroes the accumulator and all measurement state. Required on
// restart so a paused or ended session does not replay as a burst of
// catch-up ticks. The probed ceiling is kept; the cadence of the host
// terminal has not changed.
func (r *StepRunner) Reset() {
	r.accumulator = 0
	r.haveLast = false
	r.windowFrames = 0
	r.windowStart = 0
	r.lowWindows = 0
	r.target = r.ceiling
	if !r.probed {
		r.target = MinTickRate
	}
}

// Advance records one rendered frame at wall-clock time now and runs the
// tick callback once per accumulated tick interval. Returns the number of
// ticks executed.
func (r *StepRunner) Advance(now float64, tick TickFunc) int {
	if !r.haveLast {
		r.haveLast = true
		r.lastNow = now
		r.probeStart = now
		r.windowStart = now
		return 0
	}

	delta := now - r.lastNow
	r.lastNow = now
	if delta < 0 {
		delta = 0
	}
	if delta > maxFrameDelta {
		delta = maxFrameDelta
	}

	r.measure(now)

	r.accumulator += delta
	interval := 1000.0 / r.target
	dt := ClampF(interval, minTickDt, maxTickDt)

	ticks := 0
	for r.accumulator >= interval {
		r.accumulator -= interval
		tick(dt)
		ticks++
	}
	return ticks
}

// measure updates the warm-up probe and the rolling FPS window.
func (r *StepRunner) measure(now float64) {
	if !r.probed {
		r.probeFrames++
		if r.probeFrames >= warmupFrames {
			elapsed := now - r.probeStart
			if elapsed > 0 {
				rate := float64(r.probeFrames) / elapsed * 1000.0
				r.ceiling = ClampF(rate, MinTickRate, MaxTickRate)
				r.target = r.ceiling
			}
			r.probed = true
			r.windowStart = now
			r.windowFrames = 0
		}
		return
	}

	r.windowFrames++
	if now-r.windowStart < fpsWindow {
		return
	}

	r.achievedFPS = float64(r.windowFrames) / (now - r.windowStart) * 1000.0
	r.windowStart = now
	r.windowFrames = 0

	if r.achievedFPS < degradeRatio*r.target {
		r.lowWindows++
		if r.lowWindows >= degradeStreak {
			r.target = ClampF(r.achievedFPS, MinTickRate, r.ceiling)
			r.lowWindows = 0
		}
	} else {
		r.lowWindows = 0
	}
}
