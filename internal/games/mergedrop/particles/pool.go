// Package particles implements a fixed-capacity pool of transient visual
// particles. Slots are stored struct-of-arrays and recycled through a free
// list; the pool never allocates after construction and never grows, so a
// heavy burst simply truncates instead of stressing the collector mid-frame.
package particles

// None is the sentinel returned by Acquire when the pool is exhausted.
// Callers must treat it as a soft failure and skip the rest of the burst.
const None = -1

// DefaultCapacity is the slot count used when none is configured.
const DefaultCapacity = 300

// Tuning for the per-frame update. Particles fall, slow down and shrink as
// they burn through their lifetime.
const (
	gravity = 140.0 // px/s^2
	damping = 1.4   // 1/s
)

// Pool is a struct-of-arrays particle store. Index i across all slices forms
// one particle; Alive gates whether the slot is in use. No particle is ever
// referenced from outside the pool.
type Pool struct {
	X, Y     []float64
	VX, VY   []float64
	Size     []float64
	Size0    []float64
	Life     []float64 // remaining life, ms
	Life0    []float64 // initial life, ms
	Color    []uint8
	Alive    []bool
	free     []int
	liveCnt  int
	capacity int
}

// NewPool creates a pool with the given slot count (DefaultCapacity if n <= 0).
func NewPool(n int) *Pool {
	if n <= 0 {
		n = DefaultCapacity
	}
	p := &Pool{
		X:        make([]float64, n),
		Y:        make([]float64, n),
		VX:       make([]float64, n),
		VY:       make([]float64, n),
		Size:     make([]float64, n),
		Size0:    make([]float64, n),
		Life:     make([]float64, n),
		Life0:    make([]float64, n),
		Color:    make([]uint8, n),
		Alive:    make([]bool, n),
		free:     make([]int, n),
		capacity: n,
	}
	// Fill the free list so the first bursts pop low indices first.
	for i := range p.free {
		p.free[i] = n - 1 - i
	}
	return p
}

// Capacity returns the fixed slot count.
func (p *Pool) Capacity() int {
	return p.capacity
}

// Live returns the number of slots currently in use.
func (p *Pool) Live() int {
	return p.liveCnt
}

// Acquire pops a free slot index, or returns None when the pool is full.
// The caller owns initializing every field of the slot.
func (p *Pool) Acquire() int {
	if len(p.free) == 0 {
		return None
	}
	i := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.Alive[i] = true
	p.liveCnt++
	return i
}

// Release returns a slot to the free list. Out-of-range indices and
// double-releases are no-ops.
func (p *Pool) Release(i int) {
	if i < 0 || i >= p.capacity || !p.Alive[i] {
		return
	}
	p.Alive[i] = false
	p.liveCnt--
	p.free = append(p.free, i)
}

// Clear releases every live slot.
func (p *Pool) Clear() {
	for i := 0; i < p.capacity; i++ {
		p.Release(i)
	}
}

// Update advances every live particle by dtMs of wall-clock time: integrate
// position, apply gravity and damping, shrink size with the spent fraction
// of the lifetime, and release slots whose life has run out.
func (p *Pool) Update(dtMs float64) {
	dt := dtMs / 1000.0
	damp := 1.0 / (1.0 + damping*dt)
	for i := 0; i < p.capacity; i++ {
		if !p.Alive[i] {
			continue
		}
		p.Life[i] -= dtMs
		if p.Life[i] <= 0 {
			p.Release(i)
			continue
		}
		p.VY[i] += gravity * dt
		p.VX[i] *= damp
		p.VY[i] *= damp
		p.X[i] += p.VX[i] * dt
		p.Y[i] += p.VY[i] * dt

		frac := p.Life[i] / p.Life0[i]
		p.Size[i] = p.Size0[i] * frac
	}
}

// Alpha returns the remaining-life fraction of slot i in [0, 1], used by the
// render boundary as the particle's opacity.
func (p *Pool) Alpha(i int) float64 {
	if i < 0 || i >= p.capacity || !p.Alive[i] || p.Life0[i] <= 0 {
		return 0
	}
	return p.Life[i] / p.Life0[i]
}
