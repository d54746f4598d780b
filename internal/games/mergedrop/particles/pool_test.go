package particles

import "testing"

func spawn(p *Pool, lifeMs float64) int {
	i := p.Acquire()
	if i == None {
		return None
	}
	p.X[i] = 10
	p.Y[i] = 10
	p.VX[i] = 5
	p.VY[i] = -20
	p.Size[i] = 3
	p.Size0[i] = 3
	p.Life[i] = lifeMs
	p.Life0[i] = lifeMs
	p.Color[i] = 1
	return i
}

func TestAcquireExhaustion(t *testing.T) {
	p := NewPool(4)
	for i := 0; i < 4; i++ {
		if spawn(p, 100) == None {
			t.Fatalf("pool exhausted after %d of 4 acquires", i)
		}
	}
	if got := p.Acquire(); got != None {
		t.Errorf("Acquire on full pool = %d, want None", got)
	}
	if p.Live() != 4 {
		t.Errorf("Live() = %d, want 4", p.Live())
	}
}

func TestReleaseRecyclesSlot(t *testing.T) {
	p := NewPool(2)
	a := spawn(p, 100)
	spawn(p, 100)

	p.Release(a)
	if p.Live() != 1 {
		t.Errorf("Live() after release = %d, want 1", p.Live())
	}
	b := p.Acquire()
	if b != a {
		t.Errorf("recycled slot = %d, want %d", b, a)
	}
}

func TestDoubleReleaseAndOutOfRangeAreNoOps(t *testing.T) {
	p := NewPool(2)
	a := spawn(p, 100)

	p.Release(a)
	p.Release(a) // double release
	p.Release(-1)
	p.Release(99)

	if p.Live() != 0 {
		t.Errorf("Live() = %d, want 0", p.Live())
	}
	// Both slots must still be acquirable exactly once each
	if p.Acquire() == None || p.Acquire() == None {
		t.Fatal("free list corrupted by no-op releases")
	}
	if p.Acquire() != None {
		t.Error("free list handed out more slots than capacity")
	}
}

func TestUpdateExpiresAndShrinks(t *testing.T) {
	p := NewPool(4)
	long := spawn(p, 1000)
	short := spawn(p, 50)

	p.Update(100) // expires the short one

	if p.Alive[short] {
		t.Error("expired particle still alive")
	}
	if !p.Alive[long] {
		t.Error("surviving particle released early")
	}
	if p.Size[long] >= p.Size0[long] {
		t.Errorf("size did not shrink: %.2f", p.Size[long])
	}
	if p.Alpha(long) <= 0 || p.Alpha(long) >= 1 {
		t.Errorf("Alpha = %.2f, want in (0, 1)", p.Alpha(long))
	}
}

func TestUpdateIntegratesMotion(t *testing.T) {
	p := NewPool(1)
	i := spawn(p, 1000)
	x0, y0 := p.X[i], p.Y[i]

	p.Update(16)

	if p.X[i] == x0 {
		t.Error("x did not advance")
	}
	if p.Y[i] >= y0 {
		t.Error("upward-moving particle should still rise right after spawn")
	}

	// Gravity eventually wins
	for n := 0; n < 40; n++ {
		p.Update(16)
	}
	if !p.Alive[i] {
		t.Fatal("particle expired before gravity test completed")
	}
	if p.VY[i] <= 0 {
		t.Errorf("vy = %.2f, want positive (falling) after gravity", p.VY[i])
	}
}

func TestClear(t *testing.T) {
	p := NewPool(8)
	for i := 0; i < 8; i++ {
		spawn(p, 100)
	}
	p.Clear()
	if p.Live() != 0 {
		t.Errorf("Live() after Clear = %d, want 0", p.Live())
	}
}
