package native

import "testing"

func TestSlotTableReservesZero(t *testing.T) {
	table := newSlotTable()
	seen := make(map[uint32]bool)
	for {
		idx, err := table.Acquire()
		if err != nil {
			break
		}
		if idx == 0 {
			t.Fatal("slot 0 must never be handed out")
		}
		if seen[idx] {
			t.Fatalf("slot %d handed out twice", idx)
		}
		seen[idx] = true
	}
	if len(seen) != slotCapacity-1 {
		t.Errorf("acquired %d slots, want %d", len(seen), slotCapacity-1)
	}
}

func TestSlotTableExhaustion(t *testing.T) {
	table := newSlotTable()
	for i := 0; i < slotCapacity-1; i++ {
		if _, err := table.Acquire(); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
	}
	if _, err := table.Acquire(); err == nil {
		t.Error("expected an error once all slots are in use")
	}
}

func TestSlotTableReleaseReuses(t *testing.T) {
	table := newSlotTable()
	first, _ := table.Acquire()
	table.Release(first)
	again, _ := table.Acquire()
	if again != first {
		t.Errorf("released slot should be reused next, got %d want %d", again, first)
	}
}

func TestSlotTableReleaseIgnoresInvalid(t *testing.T) {
	table := newSlotTable()
	before := table.Available()
	table.Release(0)
	table.Release(slotCapacity)
	table.Release(99)
	if got := table.Available(); got != before {
		t.Errorf("invalid releases changed availability: %d -> %d", before, got)
	}
}
