package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/meshview/internal/engine/model"
)

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestSDLTextureCacheLoadsImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "body.png"), color.RGBA{R: 200, A: 255})

	m := &model.Data{
		SourcePath:   filepath.Join(dir, "model.obj"),
		TexturePaths: []string{"body.png"},
	}

	cache := newSDLTextureCache()
	cache.EnsureLoaded(m)

	if cache.failed {
		t.Fatal("clean load must not set the failure sentinel")
	}
	if len(cache.images) != 1 || cache.images[0] == nil {
		t.Fatal("expected the texture to decode")
	}
}

func TestSDLTextureCacheDecodeFailureAbortsReload(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "body.png"), color.RGBA{R: 200, A: 255})
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	m := &model.Data{
		SourcePath:   filepath.Join(dir, "model.obj"),
		TexturePaths: []string{"body.png", "broken.png"},
	}

	cache := newSDLTextureCache()
	cache.EnsureLoaded(m)

	if !cache.failed {
		t.Fatal("expected the failure sentinel after a broken decode")
	}
	if cache.images != nil {
		t.Error("a failed reload must drop every decoded image, not just the broken one")
	}
	if _, ok := cache.resolve(nil, &model.Submesh{TextureIndex: 0}); ok {
		t.Error("a failed cache must resolve nothing")
	}

	// The attempted path list stays, so the same model does not retry.
	cache.EnsureLoaded(m)
	if cache.images != nil {
		t.Error("reloading the same path list must be a no-op after a failure")
	}

	// A different texture set clears the sentinel and loads again.
	m2 := &model.Data{
		SourcePath:   filepath.Join(dir, "model.obj"),
		TexturePaths: []string{"body.png"},
	}
	cache.EnsureLoaded(m2)
	if cache.failed {
		t.Error("a new texture set must clear the failure sentinel")
	}
	if len(cache.images) != 1 || cache.images[0] == nil {
		t.Error("expected the new set to load")
	}
}
