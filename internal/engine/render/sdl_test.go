package render

import "testing"

func TestNDCToScreen(t *testing.T) {
	tests := []struct {
		name  string
		x, y  float32
		w, h  int32
		wantX float32
		wantY float32
	}{
		{"center", 0, 0, 800, 600, 400, 300},
		{"top left", -1, 1, 800, 600, 0, 0},
		{"bottom right", 1, -1, 800, 600, 800, 600},
		{"y axis flips", 0, 0.5, 100, 100, 50, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := NDCToScreen(tt.x, tt.y, tt.w, tt.h)
			if gotX != tt.wantX || gotY != tt.wantY {
				t.Errorf("NDCToScreen(%v, %v) = (%v, %v), want (%v, %v)",
					tt.x, tt.y, gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestDriverHint(t *testing.T) {
	if driverHint(BackendDx12) != "direct3d12" {
		t.Error("dx12 must request the direct3d12 driver")
	}
	if driverHint(BackendVulkan) != "vulkan" {
		t.Error("vulkan must request the vulkan driver")
	}
	if driverHint(BackendSoftware) != "software" {
		t.Error("software must request the software driver")
	}
	if driverHint(BackendNone) != "" {
		t.Error("no driver for BackendNone")
	}
}
