package native

import "github.com/go-gl/gl/v4.1-core/gl"

// frameContextCount is how many frames may be in flight at once. Each
// context owns its own vertex buffers so the CPU never rewrites data the
// GPU is still reading.
const frameContextCount = 2

// fenceTimeoutNs bounds one wait on a frame fence.
const fenceTimeoutNs = 1_000_000_000

// frameContext is the per-slot state for one in-flight frame.
type frameContext struct {
	fence    uintptr
	wire     *vertexBuffer
	textured *vertexBuffer
}

func newFrameContext() *frameContext {
	return &frameContext{
		// position
		wire: newVertexBuffer([]int32{3}),
		// position, texcoord, alpha, cutoff
		textured: newVertexBuffer([]int32{3, 2, 1, 1}),
	}
}

// waitReady blocks until the GPU has finished the last frame recorded in
// this slot, then retires the fence.
func (f *frameContext) waitReady() {
	if f.fence == 0 {
		return
	}
	for {
		status := gl.ClientWaitSync(f.fence, gl.SYNC_FLUSH_COMMANDS_BIT, fenceTimeoutNs)
		if status == gl.ALREADY_SIGNALED || status == gl.CONDITION_SATISFIED || status == gl.WAIT_FAILED {
			break
		}
	}
	gl.DeleteSync(f.fence)
	f.fence = 0
}

// signalSubmitted places a fence after the frame's commands.
func (f *frameContext) signalSubmitted() {
	f.fence = gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)
}

func (f *frameContext) destroy() {
	if f.fence != 0 {
		gl.DeleteSync(f.fence)
		f.fence = 0
	}
	f.wire.Destroy()
	f.textured.Destroy()
}
