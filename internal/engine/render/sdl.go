package render

import (
	"fmt"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/model"
	"github.com/Faultbox/meshview/internal/logger"
)

// driverHint returns the SDL render driver name for a backend.
func driverHint(b Backend) string {
	switch b {
	case BackendDx12:
		return "direct3d12"
	case BackendVulkan:
		return "vulkan"
	case BackendSoftware:
		return "software"
	}
	return ""
}

// NDCToScreen maps a normalized device coordinate to pixel space: X spans
// left to right, Y flips so +Y in NDC is up on screen.
func NDCToScreen(x, y float32, width, height int32) (float32, float32) {
	sx := (x*0.5 + 0.5) * float32(width)
	sy := (0.5 - y*0.5) * float32(height)
	return sx, sy
}

// SDLRenderer is the backend built on an SDL render driver. The dx12,
// vulkan, and software variants differ only in the driver they request.
type SDLRenderer struct {
	backend   Backend
	vsync     bool
	window    *sdl.Window
	renderer  *sdl.Renderer
	cache     *sdlTextureCache
	watch     BlankWatch
	fellBlank bool

	verts []sdl.Vertex
}

// NewSDLRenderer creates an uninitialized SDL-driver renderer for a
// backend.
func NewSDLRenderer(backend Backend, vsync bool) *SDLRenderer {
	return &SDLRenderer{backend: backend, vsync: vsync}
}

// Initialize requests the backend's render driver and creates the SDL
// renderer on the window.
func (r *SDLRenderer) Initialize(window *sdl.Window) error {
	hint := driverHint(r.backend)
	if hint == "" {
		return fmt.Errorf("no SDL driver for backend %q", r.backend.Name())
	}
	sdl.SetHint(sdl.HINT_RENDER_DRIVER, hint)

	var flags uint32
	if r.backend == BackendSoftware {
		flags = sdl.RENDERER_SOFTWARE
	} else {
		flags = sdl.RENDERER_ACCELERATED
	}
	if r.vsync {
		flags |= sdl.RENDERER_PRESENTVSYNC
	}

	renderer, err := sdl.CreateRenderer(window, -1, flags)
	if err != nil {
		return fmt.Errorf("create %s renderer: %w", r.backend.Name(), err)
	}

	info, err := renderer.GetInfo()
	if err == nil {
		logger.Info("SDL renderer initialized",
			zap.String("backend", r.backend.Name()),
			zap.String("driver", info.Name),
		)
	}

	r.window = window
	r.renderer = renderer
	r.cache = newSDLTextureCache()
	r.watch = BlankWatch{}
	r.fellBlank = false
	return nil
}

// Shutdown releases the textures and the SDL renderer. Idempotent.
func (r *SDLRenderer) Shutdown() {
	if r.cache != nil {
		r.cache.Destroy()
		r.cache = nil
	}
	if r.renderer != nil {
		r.renderer.Destroy()
		r.renderer = nil
	}
	r.window = nil
}

// BeginFrame clears to the shared background color.
func (r *SDLRenderer) BeginFrame() {
	if r.renderer == nil {
		return
	}
	r.renderer.SetDrawColor(ClearColorR, ClearColorG, ClearColorB, 255)
	r.renderer.Clear()
}

// EndFrame probes the backbuffer while the blank watchdog is armed, then
// presents.
func (r *SDLRenderer) EndFrame() {
	if r.renderer == nil {
		return
	}
	if r.backend != BackendSoftware && r.watch.Active() {
		if r.watch.Observe(r.frameLooksBlank()) {
			r.fellBlank = true
			logger.Warn("backend produced no visible output",
				zap.String("backend", r.backend.Name()),
			)
		}
	}
	r.renderer.Present()
}

// WentBlank reports whether the watchdog declared this backend blank. The
// flag stays set until the renderer is reinitialized.
func (r *SDLRenderer) WentBlank() bool {
	return r.fellBlank
}

// frameLooksBlank samples one pixel of the drawn (not yet presented) frame
// and compares it to the clear color. Read failures count as blank.
func (r *SDLRenderer) frameLooksBlank() bool {
	w, h, err := r.renderer.GetOutputSize()
	if err != nil || w <= ProbeX || h <= ProbeY {
		return true
	}
	var pixel [4]byte
	rect := sdl.Rect{X: ProbeX, Y: ProbeY, W: 1, H: 1}
	if err := r.renderer.ReadPixels(&rect, sdl.PIXELFORMAT_RGBA32, unsafe.Pointer(&pixel[0]), 4); err != nil {
		return true
	}
	return PixelIsBlank(pixel[0], pixel[1], pixel[2])
}

// RenderModelWireframe draws the model's textured batches and wire overlay
// through the SDL geometry API.
func (r *SDLRenderer) RenderModelWireframe(m *model.Data, yawDeg, pitchDeg, rollDeg, distance float32, wireOverlay bool) {
	if r.renderer == nil || m == nil || !m.IsValid() {
		return
	}
	w, h, err := r.renderer.GetOutputSize()
	if err != nil || w <= 1 || h <= 1 {
		return
	}

	r.cache.EnsureLoaded(m)

	mvp := ModelViewProjection(yawDeg, pitchDeg, rollDeg, distance, float32(w)/float32(h))
	projected := ProjectPositions(m.Positions, mvp)

	texturedDrawn := r.drawTextured(m, projected, w, h)

	if wireOverlay || !texturedDrawn {
		r.drawWire(m, projected, w, h)
	}
}

func (r *SDLRenderer) drawTextured(m *model.Data, projected []ClipVertex, w, h int32) bool {
	resolve := func(sub *model.Submesh) (SubmeshTextures, bool) {
		return r.cache.resolve(r.renderer, sub)
	}
	triangles := BuildTexturedTriangles(m, projected, resolve)
	if len(triangles) == 0 {
		return false
	}
	SortTexturedTriangles(triangles)

	white := sdl.Color{R: 255, G: 255, B: 255, A: 255}
	for _, batch := range SplitBatches(triangles) {
		tex := r.cache.textureFor(batch.Color)
		if tex == nil {
			continue
		}
		r.verts = r.verts[:0]
		for _, tri := range triangles[batch.First : batch.First+batch.Count] {
			for _, v := range tri.Verts {
				sx, sy := NDCToScreen(v.X, v.Y, w, h)
				r.verts = append(r.verts, sdl.Vertex{
					Position: sdl.FPoint{X: sx, Y: sy},
					Color:    white,
					TexCoord: sdl.FPoint{X: v.U, Y: v.V},
				})
			}
		}
		if err := r.renderer.RenderGeometry(tex, r.verts, nil); err != nil {
			logger.Debug("geometry draw failed", zap.Error(err))
		}
	}
	return true
}

func (r *SDLRenderer) drawWire(m *model.Data, projected []ClipVertex, w, h int32) {
	segments := BuildWireSegments(m.Indices, projected)
	if len(segments) == 0 {
		return
	}
	r.renderer.SetDrawColor(WireColorR, WireColorG, WireColorB, 255)
	for _, s := range segments {
		x1, y1 := NDCToScreen(s.A.X, s.A.Y, w, h)
		x2, y2 := NDCToScreen(s.B.X, s.B.Y, w, h)
		r.renderer.DrawLine(int32(x1), int32(y1), int32(x2), int32(y2))
	}
}

// Name returns the backend's canonical name.
func (r *SDLRenderer) Name() string {
	return r.backend.Name()
}

// NativeRenderer exposes the SDL renderer.
func (r *SDLRenderer) NativeRenderer() *sdl.Renderer {
	return r.renderer
}
