package native

import "fmt"

// slotCapacity is the size of the texture slot table. Slot 0 is reserved so
// that a zero render.TextureRef always means "no texture".
const slotCapacity = 64

// slotTable hands out texture slot indices from a fixed-size table. Released
// indices return to the free list and are reused most-recently-freed first.
type slotTable struct {
	free []uint32
}

func newSlotTable() *slotTable {
	t := &slotTable{free: make([]uint32, 0, slotCapacity-1)}
	for i := slotCapacity - 1; i >= 1; i-- {
		t.free = append(t.free, uint32(i))
	}
	return t
}

// Acquire returns the next free slot index, or an error when the table is
// exhausted.
func (t *slotTable) Acquire() (uint32, error) {
	if len(t.free) == 0 {
		return 0, fmt.Errorf("texture slots exhausted (%d in use)", slotCapacity-1)
	}
	idx := t.free[len(t.free)-1]
	t.free = t.free[:len(t.free)-1]
	return idx, nil
}

// Release returns a slot index to the free list. Index 0 and out-of-range
// indices are ignored.
func (t *slotTable) Release(idx uint32) {
	if idx == 0 || idx >= slotCapacity {
		return
	}
	t.free = append(t.free, idx)
}

// Available reports how many slots can still be acquired.
func (t *slotTable) Available() int {
	return len(t.free)
}
