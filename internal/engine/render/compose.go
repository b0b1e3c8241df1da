package render

import (
	"image"
	gomath "math"

	xdraw "golang.org/x/image/draw"

	"github.com/Faultbox/meshview/internal/engine/model"
)

// ComposeKey is the structural fingerprint of a composed texture. Submeshes
// with identical parameter sets share one synthesized texture.
type ComposeKey struct {
	ColorIndex   int32
	OpacityIndex int32
	OpacityBits  uint32
	CutoffBits   uint32
	Cutout       bool
	Invert       bool
}

// ComposeKeyFor builds the cache key for a submesh's composition parameters.
func ComposeKeyFor(sub *model.Submesh) ComposeKey {
	return ComposeKey{
		ColorIndex:   sub.TextureIndex,
		OpacityIndex: sub.OpacityTextureIndex,
		OpacityBits:  gomath.Float32bits(clamp01(sub.Opacity)),
		CutoffBits:   gomath.Float32bits(clamp01(sub.AlphaCutoff)),
		Cutout:       sub.AlphaCutoutEnabled,
		Invert:       sub.OpacityTextureInverted,
	}
}

// NeedsComposition reports whether a submesh's material cannot be served by
// its plain color texture: a separate opacity map, alpha cutout, inverted
// opacity, or a scalar opacity below fully opaque all require pre-composing
// for single-texture backends.
func NeedsComposition(sub *model.Submesh) bool {
	return sub.NeedsBlending()
}

// ComposeTexture fuses a color texture with the submesh's opacity parameters
// into one sample-ready RGBA image: per pixel, alpha becomes
// colorAlpha x opacity x opacitySample (opacitySample from the red channel
// of the nearest-resampled opacity map, inverted when requested), zeroed
// below the cutoff when cutout is enabled. RGB passes through unchanged.
// opacityImg may be nil when the submesh has no opacity map.
func ComposeTexture(colorImg, opacityImg *image.RGBA, sub *model.Submesh) *image.RGBA {
	bounds := colorImg.Bounds()
	out := image.NewRGBA(bounds)
	copy(out.Pix, colorImg.Pix)

	// The opacity map may have its own dimensions; bring it to the color
	// texture's size before fusing.
	if opacityImg != nil && opacityImg.Bounds() != bounds {
		scaled := image.NewRGBA(bounds)
		xdraw.NearestNeighbor.Scale(scaled, bounds, opacityImg, opacityImg.Bounds(), xdraw.Src, nil)
		opacityImg = scaled
	}

	opacity := clamp01(sub.Opacity)
	cutoff := clamp01(sub.AlphaCutoff)

	for i := 0; i+3 < len(out.Pix); i += 4 {
		alpha := float32(out.Pix[i+3]) / 255 * opacity

		if opacityImg != nil {
			sample := float32(opacityImg.Pix[i]) / 255
			if sub.OpacityTextureInverted {
				sample = 1 - sample
			}
			alpha *= sample
		}

		if sub.AlphaCutoutEnabled && alpha < cutoff {
			alpha = 0
		}

		out.Pix[i+3] = uint8(clamp01(alpha)*255 + 0.5)
	}
	return out
}
