package render

import "testing"

func TestParseBackend(t *testing.T) {
	tests := []struct {
		input string
		want  Backend
	}{
		{"dx12", BackendDx12},
		{"DX12", BackendDx12},
		{"vulkan", BackendVulkan},
		{"VuLkAn", BackendVulkan},
		{"software", BackendSoftware},
		{"SOFTWARE", BackendSoftware},
		{"", BackendNone},
		{"metal", BackendNone},
		{"dx12 ", BackendNone},
	}

	for _, tt := range tests {
		if got := ParseBackend(tt.input); got != tt.want {
			t.Errorf("ParseBackend(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBackendName(t *testing.T) {
	names := map[Backend]string{
		BackendDx12:     "dx12",
		BackendVulkan:   "vulkan",
		BackendSoftware: "software",
		BackendNone:     "unknown",
	}
	for backend, want := range names {
		if got := backend.Name(); got != want {
			t.Errorf("Name(%v) = %q, want %q", backend, got, want)
		}
	}
}

func TestParseBackendRoundTrip(t *testing.T) {
	for _, b := range []Backend{BackendDx12, BackendVulkan, BackendSoftware} {
		if got := ParseBackend(b.Name()); got != b {
			t.Errorf("ParseBackend(%q) = %v, want %v", b.Name(), got, b)
		}
	}
}

func TestBuildAttemptOrderAutomatic(t *testing.T) {
	order := BuildAttemptOrder(BackendNone)
	want := []Backend{BackendDx12, BackendVulkan, BackendSoftware}
	if len(order) != len(want) {
		t.Fatalf("attempt order length = %d, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("attempt order[%d] = %v, want %v", i, order[i], want[i])
		}
	}
}

func TestBuildAttemptOrderForced(t *testing.T) {
	order := BuildAttemptOrder(BackendVulkan)
	if len(order) != 1 || order[0] != BackendVulkan {
		t.Errorf("forced order = %v, want [vulkan] only", order)
	}

	order = BuildAttemptOrder(BackendSoftware)
	if len(order) != 1 || order[0] != BackendSoftware {
		t.Errorf("forced order = %v, want [software] only", order)
	}
}
