package native

import "testing"

func TestGrownCapacity(t *testing.T) {
	tests := []struct {
		name     string
		required int
		current  int
		want     int
	}{
		{"first allocation", 100, 0, vertexGrowIncrement},
		{"small growth uses increment", 9000, 8192, 8192 + vertexGrowIncrement},
		{"large requirement wins", 50000, 8192, 50000},
		{"exactly one increment", vertexGrowIncrement, 0, vertexGrowIncrement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grownCapacity(tt.required, tt.current); got != tt.want {
				t.Errorf("grownCapacity(%d, %d) = %d, want %d", tt.required, tt.current, got, tt.want)
			}
		})
	}
}

func TestGrownCapacityMonotonic(t *testing.T) {
	// Repeated growth never returns a smaller capacity.
	capacity := 0
	for _, required := range []int{10, 5000, 9000, 9001, 100000} {
		next := grownCapacity(required, capacity)
		if next < capacity {
			t.Fatalf("capacity shrank: %d -> %d", capacity, next)
		}
		if next < required {
			t.Fatalf("capacity %d below requirement %d", next, required)
		}
		capacity = next
	}
}
