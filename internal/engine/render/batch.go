package render

import (
	"sort"

	"github.com/Faultbox/meshview/internal/engine/model"
)

// TextureRef is an opaque backend texture handle used as a batching key.
// Zero means "no texture".
type TextureRef uint64

// SubmeshTextures is a backend's resolution of one submesh to bindable
// textures. Backends that pre-compose return the composed texture as Color
// and leave Opacity zero.
type SubmeshTextures struct {
	Color              TextureRef
	Opacity            TextureRef
	ColorTransparent   bool
	OpacityTransparent bool
}

// TextureResolver maps a submesh to its textures. Returning false skips the
// submesh for this frame (missing texture, failed load, exhausted slots).
type TextureResolver func(sub *model.Submesh) (SubmeshTextures, bool)

// LineSegment is one wireframe edge in NDC.
type LineSegment struct {
	A, B ClipVertex
}

// TexturedVertex carries the encoded per-vertex material parameters the
// textured pipelines consume: Alpha is the submesh opacity, negated when
// alpha cutout is enabled; Cutoff is the cutout threshold, negated when the
// opacity map is inverted.
type TexturedVertex struct {
	X, Y, Z float32
	U, V    float32
	Alpha   float32
	Cutoff  float32
}

// TexturedTriangle is one projected, material-resolved triangle awaiting
// depth sorting and batching.
type TexturedTriangle struct {
	Verts       [3]TexturedVertex
	Color       TextureRef
	Opacity     TextureRef
	Depth       float32
	Transparent bool
}

// DrawBatch is a contiguous run of sorted triangles sharing one texture pair
// and transparency state, issued as a single draw call.
type DrawBatch struct {
	First       int
	Count       int
	Color       TextureRef
	Opacity     TextureRef
	Transparent bool
}

// BuildWireSegments emits the three edges of every triangle whose indices
// are in range and whose vertices all projected. Shared edges between
// adjacent triangles are emitted twice; the duplicate draw is the observed,
// accepted behavior.
func BuildWireSegments(indices []uint32, projected []ClipVertex) []LineSegment {
	segments := make([]LineSegment, 0, len(indices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if int(i0) >= len(projected) || int(i1) >= len(projected) || int(i2) >= len(projected) {
			continue
		}
		p0, p1, p2 := projected[i0], projected[i1], projected[i2]
		appendEdge(&segments, p0, p1)
		appendEdge(&segments, p1, p2)
		appendEdge(&segments, p2, p0)
	}
	return segments
}

func appendEdge(segments *[]LineSegment, a, b ClipVertex) {
	if !a.Valid || !b.Valid {
		return
	}
	*segments = append(*segments, LineSegment{A: a, B: b})
}

// transparencyOpaqueCutoff: opacity at or above this renders on the opaque
// pipeline.
const transparencyOpaqueCutoff = 0.999

// submeshTransparent decides the pipeline for a submesh given its resolved
// textures.
func submeshTransparent(sub *model.Submesh, tex SubmeshTextures) bool {
	opacity := clamp01(sub.Opacity)
	return sub.AlphaCutoutEnabled ||
		sub.IsTransparent ||
		sub.OpacityTextureIndex >= 0 ||
		tex.ColorTransparent ||
		tex.OpacityTransparent ||
		opacity < transparencyOpaqueCutoff
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// BuildTexturedTriangles walks the model submeshes and produces projected,
// material-resolved triangles. Submeshes the resolver rejects, index ranges
// out of bounds, and triangles with invalid or unindexed vertices are
// skipped without reporting.
func BuildTexturedTriangles(m *model.Data, projected []ClipVertex, resolve TextureResolver) []TexturedTriangle {
	if !m.HasTexCoords() || len(m.TexturePaths) == 0 || len(m.Submeshes) == 0 {
		return nil
	}

	triangles := make([]TexturedTriangle, 0, len(m.Indices)/3)
	for si := range m.Submeshes {
		sub := &m.Submeshes[si]
		if sub.TextureIndex < 0 || sub.IndexCount < 3 || !m.SubmeshInBounds(sub) {
			continue
		}

		tex, ok := resolve(sub)
		if !ok || tex.Color == 0 {
			continue
		}
		if tex.Opacity == 0 {
			tex.Opacity = tex.Color
		}

		transparent := submeshTransparent(sub, tex)
		alpha := clamp01(sub.Opacity)
		if sub.AlphaCutoutEnabled {
			alpha = -alpha
		}
		cutoff := clamp01(sub.AlphaCutoff)
		if sub.OpacityTextureInverted {
			cutoff = -cutoff
		}

		end := int(sub.IndexStart) + int(sub.IndexCount)
		for i := int(sub.IndexStart); i+2 < end; i += 3 {
			i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
			if int(i0) >= len(projected) || int(i1) >= len(projected) || int(i2) >= len(projected) {
				continue
			}
			p0, p1, p2 := projected[i0], projected[i1], projected[i2]
			if !p0.Valid || !p1.Valid || !p2.Valid {
				continue
			}
			uv0, uv1, uv2 := m.TexCoords[i0], m.TexCoords[i1], m.TexCoords[i2]

			triangles = append(triangles, TexturedTriangle{
				Verts: [3]TexturedVertex{
					{X: p0.X, Y: p0.Y, Z: p0.Z, U: uv0.X, V: uv0.Y, Alpha: alpha, Cutoff: cutoff},
					{X: p1.X, Y: p1.Y, Z: p1.Z, U: uv1.X, V: uv1.Y, Alpha: alpha, Cutoff: cutoff},
					{X: p2.X, Y: p2.Y, Z: p2.Z, U: uv2.X, V: uv2.Y, Alpha: alpha, Cutoff: cutoff},
				},
				Color:       tex.Color,
				Opacity:     tex.Opacity,
				Depth:       (p0.Z + p1.Z + p2.Z) / 3,
				Transparent: transparent,
			})
		}
	}
	return triangles
}

// SortTexturedTriangles orders all opaque triangles first, front to back,
// followed by all transparent triangles back to front. The sort is stable so
// equal-depth triangles keep submission order.
func SortTexturedTriangles(triangles []TexturedTriangle) {
	sort.SliceStable(triangles, func(a, b int) bool {
		left, right := &triangles[a], &triangles[b]
		if left.Transparent != right.Transparent {
			return !left.Transparent
		}
		if left.Transparent {
			return left.Depth > right.Depth
		}
		return left.Depth < right.Depth
	})
}

// SplitBatches groups sorted triangles into contiguous runs sharing a
// texture pair and transparency state. State changes are the only batch
// boundary.
func SplitBatches(triangles []TexturedTriangle) []DrawBatch {
	var batches []DrawBatch
	for i := 0; i < len(triangles); {
		first := &triangles[i]
		end := i + 1
		for end < len(triangles) &&
			triangles[end].Color == first.Color &&
			triangles[end].Opacity == first.Opacity &&
			triangles[end].Transparent == first.Transparent {
			end++
		}
		batches = append(batches, DrawBatch{
			First:       i,
			Count:       end - i,
			Color:       first.Color,
			Opacity:     first.Opacity,
			Transparent: first.Transparent,
		})
		i = end
	}
	return batches
}
