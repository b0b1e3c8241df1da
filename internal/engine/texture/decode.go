// Package texture provides image decoding into render-ready RGBA8 buffers.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// Decode decodes image bytes into a top-to-bottom RGBA8 buffer. The format is
// chosen by file extension; TGA has no magic header, so sniffing is not an
// option for the formats MTL materials commonly reference.
func Decode(data []byte, path string) (*image.RGBA, error) {
	var (
		img image.Image
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err = png.Decode(bytes.NewReader(data))
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	case ".bmp":
		img, err = bmp.Decode(bytes.NewReader(data))
	case ".tga":
		img, err = DecodeTGA(data)
	default:
		// Fall back to the registered stdlib sniffers.
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	return ToRGBA(img), nil
}

// LoadFile reads and decodes an image file.
func LoadFile(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	return Decode(data, path)
}

// ToRGBA converts any decoded image to a tightly packed *image.RGBA with the
// origin at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// alphaOpaqueThreshold treats near-opaque alpha values as opaque so that
// compression artifacts in JPEG-sourced alpha do not force blending.
const alphaOpaqueThreshold = 250

// HasTransparency reports whether any alpha sample falls below the
// near-opaque threshold.
func HasTransparency(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] < alphaOpaqueThreshold {
			return true
		}
	}
	return false
}
