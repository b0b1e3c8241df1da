package native

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/model"
	"github.com/Faultbox/meshview/internal/engine/render"
	"github.com/Faultbox/meshview/internal/engine/texture"
	"github.com/Faultbox/meshview/internal/logger"
)

// textureCache owns the GL textures for the currently loaded model. It is
// keyed by the model's ordered texture path list: when a model with a
// different list arrives, every texture is released after a full GPU idle
// wait and the new set is loaded. A decode failure aborts the whole reload
// but keeps the attempted path list, so the failure is logged once instead
// of retried every frame.
type textureCache struct {
	slots       *slotTable
	glTextures  [slotCapacity]uint32
	loadedPaths []string
	slotByIndex []uint32 // per path: slot index, 0 when slots ran out
	transparent []bool
	failed      bool
	whiteSlot   uint32
}

func newTextureCache() *textureCache {
	return &textureCache{slots: newSlotTable()}
}

// init creates the 1x1 white fallback texture bound in place of a missing
// opacity map. Must run with a current GL context.
func (c *textureCache) init() error {
	slot, err := c.slots.Acquire()
	if err != nil {
		return err
	}
	c.glTextures[slot] = uploadPixels([]byte{255, 255, 255, 255}, 1, 1)
	c.whiteSlot = slot
	return nil
}

// EnsureLoaded brings the cache in sync with the model's texture list.
// waitIdle runs before any texture still potentially referenced by an
// in-flight frame is released.
func (c *textureCache) EnsureLoaded(m *model.Data, waitIdle func()) {
	if render.SamePaths(c.loadedPaths, m.TexturePaths) {
		return
	}

	if len(c.loadedPaths) > 0 {
		waitIdle()
	}
	c.releaseAll()

	c.loadedPaths = append([]string(nil), m.TexturePaths...)
	c.slotByIndex = make([]uint32, len(m.TexturePaths))
	c.transparent = make([]bool, len(m.TexturePaths))

	for i, path := range m.TexturePaths {
		resolved := render.ResolveTexturePath(path, m.SourcePath)
		img, err := texture.LoadFile(resolved)
		if err != nil {
			// Abort the reload; the path list stays so the next frame
			// does not retry.
			logger.Warn("texture load failed, model draws as wireframe",
				zap.String("path", resolved),
				zap.Error(err),
			)
			paths := c.loadedPaths
			c.releaseAll()
			c.loadedPaths = paths
			c.failed = true
			return
		}

		slot, err := c.slots.Acquire()
		if err != nil {
			logger.Warn("texture slots exhausted",
				zap.String("path", resolved),
				zap.Int("index", i),
			)
			continue
		}

		bounds := img.Bounds()
		c.glTextures[slot] = uploadPixels(img.Pix, bounds.Dx(), bounds.Dy())
		c.slotByIndex[i] = slot
		c.transparent[i] = texture.HasTransparency(img)
	}

	logger.Info("textures loaded",
		zap.Int("count", len(m.TexturePaths)),
		zap.Int("slots_free", c.slots.Available()),
	)
}

// Resolver returns the batching resolver for the current cache contents.
func (c *textureCache) Resolver() render.TextureResolver {
	return func(sub *model.Submesh) (render.SubmeshTextures, bool) {
		var tex render.SubmeshTextures

		if c.failed || int(sub.TextureIndex) >= len(c.slotByIndex) {
			return tex, false
		}
		colorSlot := c.slotByIndex[sub.TextureIndex]
		if colorSlot == 0 {
			return tex, false
		}
		tex.Color = render.TextureRef(colorSlot)
		tex.ColorTransparent = c.transparent[sub.TextureIndex]

		tex.Opacity = render.TextureRef(c.whiteSlot)
		if sub.OpacityTextureIndex >= 0 && int(sub.OpacityTextureIndex) < len(c.slotByIndex) {
			if opacitySlot := c.slotByIndex[sub.OpacityTextureIndex]; opacitySlot != 0 {
				tex.Opacity = render.TextureRef(opacitySlot)
				tex.OpacityTransparent = c.transparent[sub.OpacityTextureIndex]
			}
		}
		return tex, true
	}
}

// BindSlot binds the GL texture stored at a slot to a texture unit.
func (c *textureCache) BindSlot(unit uint32, ref render.TextureRef) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, c.glTextures[ref])
}

func (c *textureCache) releaseAll() {
	for i, slot := range c.slotByIndex {
		if slot == 0 {
			continue
		}
		gl.DeleteTextures(1, &c.glTextures[slot])
		c.glTextures[slot] = 0
		c.slots.Release(slot)
		c.slotByIndex[i] = 0
	}
	c.loadedPaths = nil
	c.slotByIndex = nil
	c.transparent = nil
	c.failed = false
}

// Destroy releases everything including the white fallback.
func (c *textureCache) Destroy() {
	c.releaseAll()
	if c.whiteSlot != 0 {
		gl.DeleteTextures(1, &c.glTextures[c.whiteSlot])
		c.glTextures[c.whiteSlot] = 0
		c.slots.Release(c.whiteSlot)
		c.whiteSlot = 0
	}
}

// uploadPixels creates a GL texture from tightly packed RGBA pixels.
func uploadPixels(pix []byte, width, height int) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}
