package render

import (
	"image"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/model"
	"github.com/Faultbox/meshview/internal/engine/texture"
	"github.com/Faultbox/meshview/internal/logger"
)

// sdlTexEntry is one uploaded SDL texture with its batching handle.
type sdlTexEntry struct {
	ref         TextureRef
	tex         *sdl.Texture
	transparent bool
}

// sdlTextureCache holds the decoded images and SDL textures for the current
// model. Submeshes whose material needs more than a plain color texture get
// a pre-composed texture, cached by the full parameter set so submeshes
// sharing parameters share one texture. A decode failure aborts the whole
// reload but keeps the attempted path list, so the failure is logged once
// instead of retried every frame.
type sdlTextureCache struct {
	loadedPaths []string
	images      []*image.RGBA
	imageAlpha  []bool
	failed      bool

	plain    map[int32]*sdlTexEntry
	composed map[ComposeKey]*sdlTexEntry
	byRef    map[TextureRef]*sdlTexEntry
	nextRef  TextureRef
}

func newSDLTextureCache() *sdlTextureCache {
	return &sdlTextureCache{
		plain:    make(map[int32]*sdlTexEntry),
		composed: make(map[ComposeKey]*sdlTexEntry),
		byRef:    make(map[TextureRef]*sdlTexEntry),
	}
}

// EnsureLoaded syncs the decoded image set with the model's texture list,
// dropping every uploaded texture when the list changes.
func (c *sdlTextureCache) EnsureLoaded(m *model.Data) {
	if SamePaths(c.loadedPaths, m.TexturePaths) {
		return
	}
	c.destroyTextures()

	c.loadedPaths = append([]string(nil), m.TexturePaths...)
	c.images = make([]*image.RGBA, len(m.TexturePaths))
	c.imageAlpha = make([]bool, len(m.TexturePaths))

	for i, path := range m.TexturePaths {
		resolved := ResolveTexturePath(path, m.SourcePath)
		img, err := texture.LoadFile(resolved)
		if err != nil {
			// Abort the reload; the path list stays so the next frame
			// does not retry.
			logger.Warn("texture load failed, model draws as wireframe",
				zap.String("path", resolved),
				zap.Error(err),
			)
			paths := c.loadedPaths
			c.destroyTextures()
			c.loadedPaths = paths
			c.failed = true
			return
		}
		c.images[i] = img
		c.imageAlpha[i] = texture.HasTransparency(img)
	}
}

// resolve maps a submesh to its draw texture, uploading on first use.
func (c *sdlTextureCache) resolve(renderer *sdl.Renderer, sub *model.Submesh) (SubmeshTextures, bool) {
	var none SubmeshTextures
	if c.failed || int(sub.TextureIndex) >= len(c.images) {
		return none, false
	}
	colorImg := c.images[sub.TextureIndex]
	if colorImg == nil {
		return none, false
	}

	if !NeedsComposition(sub) {
		entry, err := c.plainEntry(renderer, sub.TextureIndex, colorImg)
		if err != nil {
			return none, false
		}
		return SubmeshTextures{Color: entry.ref, ColorTransparent: entry.transparent}, true
	}

	entry, err := c.composedEntry(renderer, sub, colorImg)
	if err != nil {
		return none, false
	}
	return SubmeshTextures{Color: entry.ref, ColorTransparent: entry.transparent}, true
}

func (c *sdlTextureCache) plainEntry(renderer *sdl.Renderer, index int32, img *image.RGBA) (*sdlTexEntry, error) {
	if entry, ok := c.plain[index]; ok {
		return entry, nil
	}
	entry, err := c.upload(renderer, img, c.imageAlpha[index])
	if err != nil {
		return nil, err
	}
	c.plain[index] = entry
	return entry, nil
}

func (c *sdlTextureCache) composedEntry(renderer *sdl.Renderer, sub *model.Submesh, colorImg *image.RGBA) (*sdlTexEntry, error) {
	key := ComposeKeyFor(sub)
	if entry, ok := c.composed[key]; ok {
		return entry, nil
	}

	var opacityImg *image.RGBA
	if sub.OpacityTextureIndex >= 0 && int(sub.OpacityTextureIndex) < len(c.images) {
		opacityImg = c.images[sub.OpacityTextureIndex]
	}
	composedImg := ComposeTexture(colorImg, opacityImg, sub)

	entry, err := c.upload(renderer, composedImg, texture.HasTransparency(composedImg))
	if err != nil {
		return nil, err
	}
	c.composed[key] = entry
	return entry, nil
}

func (c *sdlTextureCache) upload(renderer *sdl.Renderer, img *image.RGBA, transparent bool) (*sdlTexEntry, error) {
	bounds := img.Bounds()
	tex, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGBA32, sdl.TEXTUREACCESS_STATIC,
		int32(bounds.Dx()), int32(bounds.Dy()))
	if err != nil {
		logger.Warn("texture upload failed", zap.Error(err))
		return nil, err
	}
	if err := tex.Update(nil, img.Pix, img.Stride); err != nil {
		tex.Destroy()
		logger.Warn("texture upload failed", zap.Error(err))
		return nil, err
	}
	if transparent {
		tex.SetBlendMode(sdl.BLENDMODE_BLEND)
	} else {
		tex.SetBlendMode(sdl.BLENDMODE_NONE)
	}

	c.nextRef++
	entry := &sdlTexEntry{ref: c.nextRef, tex: tex, transparent: transparent}
	c.byRef[entry.ref] = entry
	return entry, nil
}

// textureFor returns the SDL texture behind a batching handle.
func (c *sdlTextureCache) textureFor(ref TextureRef) *sdl.Texture {
	if entry, ok := c.byRef[ref]; ok {
		return entry.tex
	}
	return nil
}

func (c *sdlTextureCache) destroyTextures() {
	for _, entry := range c.byRef {
		entry.tex.Destroy()
	}
	c.plain = make(map[int32]*sdlTexEntry)
	c.composed = make(map[ComposeKey]*sdlTexEntry)
	c.byRef = make(map[TextureRef]*sdlTexEntry)
	c.loadedPaths = nil
	c.images = nil
	c.imageAlpha = nil
	c.failed = false
}

// Destroy releases every uploaded texture and decoded image.
func (c *sdlTextureCache) Destroy() {
	c.destroyTextures()
}
