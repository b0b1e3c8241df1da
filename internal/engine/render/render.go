// Package render defines the renderer contract, backend selection, and the
// backend-independent projection, batching, and texture composition logic.
package render

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/meshview/internal/engine/model"
)

// Renderer is the capability contract every backend implements. Callers must
// be able to substitute any variant with no behavior change beyond
// performance and Name().
type Renderer interface {
	// Initialize binds the renderer to a window and creates all GPU/OS
	// resources. The returned error is the whole diagnostic; callers try the
	// next backend in the attempt order on failure.
	Initialize(window *sdl.Window) error

	// Shutdown releases every resource the renderer owns. Idempotent; safe
	// to call on a renderer that never initialized.
	Shutdown()

	// BeginFrame acquires the next frame slot and clears it.
	BeginFrame()

	// EndFrame submits the recorded frame and presents it.
	EndFrame()

	// RenderModelWireframe is the single draw entry point. It is a no-op
	// when the model is invalid or the window is degenerate. The wire
	// overlay is drawn when requested, and forced on when no textured
	// geometry could be drawn.
	RenderModelWireframe(m *model.Data, yawDeg, pitchDeg, rollDeg, distance float32, wireOverlay bool)

	// Name returns a stable backend identifier for diagnostics and UI.
	Name() string

	// NativeRenderer exposes the underlying SDL renderer for backends built
	// on one, or nil for backends that record GPU commands directly.
	NativeRenderer() *sdl.Renderer
}
