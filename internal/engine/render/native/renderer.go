// Package native implements the GPU-native renderer: depth-sorted textured
// batches and wire overlays recorded directly through OpenGL, with per-frame
// fence synchronization and a fixed texture slot table.
package native

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/model"
	"github.com/Faultbox/meshview/internal/engine/render"
	"github.com/Faultbox/meshview/internal/logger"
)

// Background and overlay colors match the SDL backends so every renderer
// clears and draws identically.
const (
	clearR = float32(render.ClearColorR) / 255
	clearG = float32(render.ClearColorG) / 255
	clearB = float32(render.ClearColorB) / 255

	wireColorR = float32(render.WireColorR) / 255
	wireColorG = float32(render.WireColorG) / 255
	wireColorB = float32(render.WireColorB) / 255
)

// Renderer is the native OpenGL backend.
type Renderer struct {
	window    *sdl.Window
	glContext sdl.GLContext

	wire     *wirePipeline
	textured *texturedPipeline
	cache    *textureCache

	frames     [frameContextCount]*frameContext
	frameIndex int

	// scratch slices reused across frames to avoid per-frame allocation
	wireData     []float32
	texturedData []float32

	vsync       bool
	initialized bool
}

func New(vsync bool) *Renderer {
	return &Renderer{vsync: vsync}
}

// Initialize creates the GL context on the window and every GPU resource
// the renderer needs. On any failure the partial state is torn down and the
// error describes the failing stage.
func (r *Renderer) Initialize(window *sdl.Window) error {
	glContext, err := window.GLCreateContext()
	if err != nil {
		return fmt.Errorf("create GL context: %w", err)
	}
	r.window = window
	r.glContext = glContext

	if err := gl.Init(); err != nil {
		r.teardown()
		return fmt.Errorf("initialize OpenGL: %w", err)
	}

	logger.Info("native renderer initialized",
		zap.String("gl_version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("gl_renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	if r.vsync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			logger.Warn("failed to enable vsync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(clearR, clearG, clearB, 1.0)

	if r.wire, err = newWirePipeline(); err != nil {
		r.teardown()
		return err
	}
	if r.textured, err = newTexturedPipeline(); err != nil {
		r.teardown()
		return err
	}

	r.cache = newTextureCache()
	if err := r.cache.init(); err != nil {
		r.teardown()
		return fmt.Errorf("texture cache: %w", err)
	}

	for i := range r.frames {
		r.frames[i] = newFrameContext()
	}

	r.initialized = true
	return nil
}

// Shutdown waits for the GPU to go idle, then releases every resource.
// Safe to call more than once or on a renderer that never initialized.
func (r *Renderer) Shutdown() {
	if !r.initialized {
		if r.glContext != nil {
			r.teardown()
		}
		return
	}
	r.initialized = false

	gl.Finish()
	for i, f := range r.frames {
		if f != nil {
			f.destroy()
			r.frames[i] = nil
		}
	}
	r.cache.Destroy()
	r.teardown()
	logger.Info("native renderer shut down")
}

func (r *Renderer) teardown() {
	if r.wire != nil {
		r.wire.Destroy()
		r.wire = nil
	}
	if r.textured != nil {
		r.textured.Destroy()
		r.textured = nil
	}
	if r.glContext != nil {
		sdl.GLDeleteContext(r.glContext)
		r.glContext = nil
	}
	r.window = nil
}

// BeginFrame waits until the frame slot's previous submission has fully
// retired, then clears the backbuffer.
func (r *Renderer) BeginFrame() {
	if !r.initialized {
		return
	}
	r.frames[r.frameIndex].waitReady()

	w, h := r.window.GLGetDrawableSize()
	gl.Viewport(0, 0, w, h)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// EndFrame drains the GL error queue, presents, and fences the slot.
func (r *Renderer) EndFrame() {
	if !r.initialized {
		return
	}
	r.drainErrors()
	r.window.GLSwap()
	r.frames[r.frameIndex].signalSubmitted()
	r.frameIndex = (r.frameIndex + 1) % frameContextCount
}

// drainErrors empties the GL error queue. GL 4.1 has no debug message log,
// so the error queue is the only per-frame diagnostic channel.
func (r *Renderer) drainErrors() {
	for {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			return
		}
		logger.Warn("OpenGL error", zap.Uint32("code", code))
	}
}

// RenderModelWireframe projects, batches, and draws the model. Textured
// geometry draws first, then the wire overlay when requested or when no
// textured geometry could be drawn.
func (r *Renderer) RenderModelWireframe(m *model.Data, yawDeg, pitchDeg, rollDeg, distance float32, wireOverlay bool) {
	if !r.initialized || m == nil || !m.IsValid() {
		return
	}
	w, h := r.window.GLGetDrawableSize()
	if w <= 1 || h <= 1 {
		return
	}

	r.cache.EnsureLoaded(m, gl.Finish)

	mvp := render.ModelViewProjection(yawDeg, pitchDeg, rollDeg, distance, float32(w)/float32(h))
	projected := render.ProjectPositions(m.Positions, mvp)
	frame := r.frames[r.frameIndex]

	texturedDrawn := r.drawTextured(m, projected, frame)

	if wireOverlay || !texturedDrawn {
		r.drawWire(m, projected, frame)
	}
}

func (r *Renderer) drawTextured(m *model.Data, projected []render.ClipVertex, frame *frameContext) bool {
	triangles := render.BuildTexturedTriangles(m, projected, r.cache.Resolver())
	if len(triangles) == 0 {
		return false
	}
	render.SortTexturedTriangles(triangles)
	batches := render.SplitBatches(triangles)

	r.texturedData = r.texturedData[:0]
	for ti := range triangles {
		for vi := range triangles[ti].Verts {
			v := &triangles[ti].Verts[vi]
			r.texturedData = append(r.texturedData, v.X, v.Y, v.Z, v.U, v.V, v.Alpha, v.Cutoff)
		}
	}
	frame.textured.Upload(r.texturedData)

	r.textured.Use()
	frame.textured.Bind()

	blending := false
	gl.DepthMask(true)
	for _, batch := range batches {
		if batch.Transparent != blending {
			blending = batch.Transparent
			if blending {
				gl.Enable(gl.BLEND)
				gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
				gl.DepthMask(false)
			} else {
				gl.Disable(gl.BLEND)
				gl.DepthMask(true)
			}
		}
		r.cache.BindSlot(0, batch.Color)
		r.cache.BindSlot(1, batch.Opacity)
		gl.DrawArrays(gl.TRIANGLES, int32(batch.First*3), int32(batch.Count*3))
	}
	if blending {
		gl.Disable(gl.BLEND)
	}
	gl.DepthMask(true)
	gl.BindVertexArray(0)
	return true
}

func (r *Renderer) drawWire(m *model.Data, projected []render.ClipVertex, frame *frameContext) {
	segments := render.BuildWireSegments(m.Indices, projected)
	if len(segments) == 0 {
		return
	}

	r.wireData = r.wireData[:0]
	for _, s := range segments {
		r.wireData = append(r.wireData, s.A.X, s.A.Y, s.A.Z, s.B.X, s.B.Y, s.B.Z)
	}
	frame.wire.Upload(r.wireData)

	// The overlay draws on top of everything already in the frame.
	gl.Disable(gl.DEPTH_TEST)
	r.wire.Use()
	frame.wire.Bind()
	gl.DrawArrays(gl.LINES, 0, int32(len(segments)*2))
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

func (r *Renderer) Name() string {
	return "native"
}

// NativeRenderer returns nil: this backend records GL commands directly and
// has no SDL renderer underneath.
func (r *Renderer) NativeRenderer() *sdl.Renderer {
	return nil
}
