// Package model defines the normalized in-memory model produced by an
// importer and consumed by the render core.
package model

import "github.com/Faultbox/meshview/pkg/math"

// AnimationClip is read-only clip metadata. The render core never evaluates
// skeletal poses; playback timing lives in the application layer.
type AnimationClip struct {
	Name            string
	DurationSeconds float32
	TicksPerSecond  float32
}

// Submesh is a contiguous run of the shared index buffer sharing one
// material's texture and transparency parameters. Texture indices are
// indices into Data.TexturePaths, or -1 when absent.
type Submesh struct {
	IndexStart uint32
	IndexCount uint32

	TextureIndex         int32
	OpacityTextureIndex  int32
	NormalTextureIndex   int32
	EmissiveTextureIndex int32
	SpecularTextureIndex int32

	Opacity     float32
	AlphaCutoff float32

	IsTransparent          bool
	AlphaCutoutEnabled     bool
	OpacityTextureInverted bool
}

// Data is the importer's output: shared vertex/index buffers plus material
// and animation metadata. The application owns it; renderers only borrow it
// per frame.
type Data struct {
	Positions []math.Vec3
	// TexCoords is either empty or has exactly one entry per position.
	TexCoords []math.Vec2
	// Indices is a triangle list; its length is a multiple of 3.
	Indices []uint32

	PrimaryTexturePath string
	// TexturePaths is unique, in first-seen order.
	TexturePaths []string

	Submeshes  []Submesh
	Animations []AnimationClip

	SourcePath string
}

// IsValid reports whether the model has renderable geometry.
func (d *Data) IsValid() bool {
	return len(d.Positions) > 0 && len(d.Indices) > 0
}

// HasTexCoords reports whether every position has a texture coordinate.
func (d *Data) HasTexCoords() bool {
	return len(d.TexCoords) == len(d.Positions) && len(d.TexCoords) > 0
}

// SubmeshInBounds reports whether the submesh's index range fits the shared
// index buffer and all of its texture indices are absent or valid.
func (d *Data) SubmeshInBounds(s *Submesh) bool {
	if uint64(s.IndexStart)+uint64(s.IndexCount) > uint64(len(d.Indices)) {
		return false
	}
	for _, idx := range [5]int32{
		s.TextureIndex,
		s.OpacityTextureIndex,
		s.NormalTextureIndex,
		s.EmissiveTextureIndex,
		s.SpecularTextureIndex,
	} {
		if idx >= 0 && int(idx) >= len(d.TexturePaths) {
			return false
		}
	}
	return true
}

// NeedsBlending reports whether the submesh requires transparency-aware
// rendering: an opacity map, alpha cutout, inverted opacity, or a scalar
// opacity below fully opaque.
func (s *Submesh) NeedsBlending() bool {
	return s.OpacityTextureIndex >= 0 ||
		s.AlphaCutoutEnabled ||
		s.OpacityTextureInverted ||
		s.Opacity < 1
}
