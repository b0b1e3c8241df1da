package native

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// vertexGrowIncrement is the minimum number of vertices a buffer grows by.
// Growing in coarse steps keeps reallocation rare as models of different
// sizes are loaded; buffers never shrink.
const vertexGrowIncrement = 8192

// grownCapacity returns the new capacity for a buffer that must hold
// required vertices: at least required, and at least one increment past the
// current capacity.
func grownCapacity(required, current int) int {
	grown := current + vertexGrowIncrement
	if required > grown {
		return required
	}
	return grown
}

// vertexBuffer is a growable GL vertex buffer with a fixed float32 stride.
// Each frame slot owns its own buffers so the CPU never rewrites data a
// previous frame may still be reading.
type vertexBuffer struct {
	vao         uint32
	vbo         uint32
	floatStride int
	capacity    int // vertices
}

// newVertexBuffer creates an empty buffer and records the attribute layout:
// consecutive vec-sized float32 attributes given by attribSizes, summing to
// floatStride.
func newVertexBuffer(attribSizes []int32) *vertexBuffer {
	b := &vertexBuffer{}
	for _, size := range attribSizes {
		b.floatStride += int(size)
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	stride := int32(b.floatStride * 4)
	var offset int32
	for i, size := range attribSizes {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointerWithOffset(uint32(i), size, gl.FLOAT, false, stride, uintptr(offset))
		offset += size * 4
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b
}

// Upload copies the vertex data into the buffer, growing it first when the
// current capacity is too small.
func (b *vertexBuffer) Upload(data []float32) {
	vertices := len(data) / b.floatStride
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if vertices > b.capacity {
		b.capacity = grownCapacity(vertices, b.capacity)
		gl.BufferData(gl.ARRAY_BUFFER, b.capacity*b.floatStride*4, nil, gl.DYNAMIC_DRAW)
	}
	if len(data) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, unsafe.Pointer(&data[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Bind makes the buffer's vertex layout current.
func (b *vertexBuffer) Bind() {
	gl.BindVertexArray(b.vao)
}

// Destroy releases the GL objects. Safe on a zero buffer.
func (b *vertexBuffer) Destroy() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	b.capacity = 0
}
