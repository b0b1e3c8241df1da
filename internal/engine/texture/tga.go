package texture

import (
	"fmt"
	"image"
	"image/color"
)

// tgaHeader is the fixed 18-byte TGA file header.
type tgaHeader struct {
	idLength     int
	colorMapType byte
	imageType    byte
	width        int
	height       int
	depth        int
	descriptor   byte
}

// DecodeTGA decodes uncompressed (type 2) and RLE (type 10) true-color TGA
// images, the variants model textures are commonly exported as.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	hdr := tgaHeader{
		idLength:     int(data[0]),
		colorMapType: data[1],
		imageType:    data[2],
		width:        int(data[12]) | int(data[13])<<8,
		height:       int(data[14]) | int(data[15])<<8,
		depth:        int(data[16]),
		descriptor:   data[17],
	}

	if hdr.colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if hdr.imageType != 2 && hdr.imageType != 10 {
		return nil, fmt.Errorf("unsupported TGA type %d", hdr.imageType)
	}
	if hdr.depth != 24 && hdr.depth != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", hdr.depth)
	}

	offset := 18 + hdr.idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixels := data[offset:]

	img := image.NewRGBA(image.Rect(0, 0, hdr.width, hdr.height))
	if hdr.imageType == 2 {
		if err := tgaReadRaw(img, pixels, hdr); err != nil {
			return nil, err
		}
	} else {
		if err := tgaReadRLE(img, pixels, hdr); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// topToBottom reports whether rows are stored top-first (descriptor bit 5).
func (h tgaHeader) topToBottom() bool {
	return h.descriptor&0x20 != 0
}

func (h tgaHeader) destRow(srcRow int) int {
	if h.topToBottom() {
		return srcRow
	}
	return h.height - 1 - srcRow
}

func tgaReadRaw(img *image.RGBA, pixels []byte, hdr tgaHeader) error {
	bpp := hdr.depth / 8
	if len(pixels) < hdr.width*hdr.height*bpp {
		return fmt.Errorf("TGA pixel data truncated")
	}

	for y := 0; y < hdr.height; y++ {
		row := hdr.destRow(y)
		for x := 0; x < hdr.width; x++ {
			img.SetRGBA(x, row, tgaPixel(pixels[(y*hdr.width+x)*bpp:], bpp))
		}
	}
	return nil
}

func tgaReadRLE(img *image.RGBA, pixels []byte, hdr tgaHeader) error {
	bpp := hdr.depth / 8
	total := hdr.width * hdr.height
	pos := 0

	write := func(n int, px color.RGBA) {
		x := n % hdr.width
		y := hdr.destRow(n / hdr.width)
		img.SetRGBA(x, y, px)
	}

	for n := 0; n < total; {
		if pos >= len(pixels) {
			return fmt.Errorf("TGA RLE data truncated")
		}
		packet := pixels[pos]
		pos++
		count := int(packet&0x7f) + 1

		if packet&0x80 != 0 {
			// Run packet: one pixel repeated count times.
			if pos+bpp > len(pixels) {
				return fmt.Errorf("TGA RLE run truncated")
			}
			px := tgaPixel(pixels[pos:], bpp)
			pos += bpp
			for i := 0; i < count && n < total; i++ {
				write(n, px)
				n++
			}
		} else {
			// Raw packet: count literal pixels.
			if pos+count*bpp > len(pixels) {
				return fmt.Errorf("TGA RLE literal truncated")
			}
			for i := 0; i < count && n < total; i++ {
				write(n, tgaPixel(pixels[pos:], bpp))
				pos += bpp
				n++
			}
		}
	}
	return nil
}

// tgaPixel reads one BGR(A) pixel.
func tgaPixel(data []byte, bpp int) color.RGBA {
	px := color.RGBA{R: data[2], G: data[1], B: data[0], A: 255}
	if bpp == 4 {
		px.A = data[3]
	}
	return px
}
