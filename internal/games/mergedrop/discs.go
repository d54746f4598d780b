package mergedrop

import (
	"github.com/vovakirdan/tui-mergedrop/internal/games/mergedrop/physics"
)

// DiscID is a stable, monotonically assigned disc identifier. An ID is never
// reused while its disc is alive; after removal a fresh disc always receives
// a fresh ID.
type DiscID int64

// Disc is the game-side record of a dynamic circle. The physics body owns
// position and velocity; the disc owns value, timing and merge state.
type Disc struct {
	ID        DiscID
	Body      physics.Handle
	Value     int     // power of two, >= 2
	SpawnedAt float64 // sim time, ms
	Radius    float64 // derived from Value and the layout scale regime

	// MidMerge locks the disc out of further merge eligibility while its
	// merge-glide animation is in flight.
	MidMerge bool
}

// discTable indexes live discs by ID and by physics handle, keeping a slice
// in insertion order for deterministic iteration.
type discTable struct {
	list   []*Disc
	byID   map[DiscID]*Disc
	byBody map[physics.Handle]*Disc
	nextID DiscID
}

func newDiscTable() *discTable {
	return &discTable{
		byID:   make(map[DiscID]*Disc),
		byBody: make(map[physics.Handle]*Disc),
	}
}

// insert registers a new disc and assigns its ID.
func (t *discTable) insert(body physics.Handle, value int, radius, now float64) *Disc {
	t.nextID++
	d := &Disc{
		ID:        t.nextID,
		Body:      body,
		Value:     value,
		SpawnedAt: now,
		Radius:    radius,
	}
	t.list = append(t.list, d)
	t.byID[d.ID] = d
	t.byBody[body] = d
	return d
}

// remove deletes a disc by ID. Unknown IDs are ignored.
func (t *discTable) remove(id DiscID) {
	d, ok := t.byID[id]
	if !ok {
		return
	}
	delete(t.byID, id)
	delete(t.byBody, d.Body)
	for i, other := range t.list {
		if other == d {
			t.list = append(t.list[:i], t.list[i+1:]...)
			break
		}
	}
}

// get returns the live disc with the given ID, or nil.
func (t *discTable) get(id DiscID) *Disc {
	return t.byID[id]
}

// byHandle returns the live disc owning the given physics body, or nil.
func (t *discTable) byHandle(h physics.Handle) *Disc {
	return t.byBody[h]
}

func (t *discTable) len() int {
	return len(t.list)
}
