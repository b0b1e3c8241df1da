package render

import "strings"

// Backend identifies one renderer implementation.
type Backend int

const (
	// BackendNone is the zero value: no specific backend requested.
	BackendNone Backend = iota
	BackendDx12
	BackendVulkan
	BackendSoftware
)

// Name returns the canonical lower-case backend name.
func (b Backend) Name() string {
	switch b {
	case BackendDx12:
		return "dx12"
	case BackendVulkan:
		return "vulkan"
	case BackendSoftware:
		return "software"
	}
	return "unknown"
}

// ParseBackend matches a requested backend name case-insensitively. Empty or
// unrecognized input returns BackendNone; the caller decides whether a
// non-empty unrecognized value is a configuration error.
func ParseBackend(value string) Backend {
	switch strings.ToLower(value) {
	case "dx12":
		return BackendDx12
	case "vulkan":
		return BackendVulkan
	case "software":
		return BackendSoftware
	}
	return BackendNone
}

// BuildAttemptOrder returns the backends to try in order. A specific request
// yields only that backend, with no fallback; otherwise the canonical
// hardware-first order is used.
func BuildAttemptOrder(requested Backend) []Backend {
	if requested != BackendNone {
		return []Backend{requested}
	}
	return []Backend{BackendDx12, BackendVulkan, BackendSoftware}
}
