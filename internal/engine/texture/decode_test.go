package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// makeTGA builds an uncompressed 32-bit TGA from RGBA pixels, bottom-to-top
// row order (descriptor 0), which is the common export layout.
func makeTGA(width, height int, pixels []color.RGBA) []byte {
	buf := make([]byte, 18, 18+width*height*4)
	buf[2] = 2 // uncompressed true-color
	buf[12] = byte(width)
	buf[13] = byte(width >> 8)
	buf[14] = byte(height)
	buf[15] = byte(height >> 8)
	buf[16] = 32

	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			px := pixels[y*width+x]
			buf = append(buf, px.B, px.G, px.R, px.A)
		}
	}
	return buf
}

func TestDecodeTGA(t *testing.T) {
	pixels := []color.RGBA{
		{R: 255, A: 255}, {G: 255, A: 255},
		{B: 255, A: 255}, {R: 10, G: 20, B: 30, A: 128},
	}
	data := makeTGA(2, 2, pixels)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}

	rgba := ToRGBA(img)
	for i, want := range pixels {
		got := rgba.RGBAAt(i%2, i/2)
		if got != want {
			t.Errorf("pixel %d: got %v, want %v", i, got, want)
		}
	}
}

func TestDecodeTGATruncated(t *testing.T) {
	data := makeTGA(2, 2, make([]color.RGBA, 4))
	if _, err := DecodeTGA(data[:10]); err == nil {
		t.Error("expected error for truncated header")
	}
	if _, err := DecodeTGA(data[:20]); err == nil {
		t.Error("expected error for truncated pixel data")
	}
}

func TestDecodeRLETGA(t *testing.T) {
	// 4x1, single run of 4 solid red pixels (top-to-bottom flag set).
	data := []byte{
		0, 0, 10, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		4, 0, 1, 0, 32, 0x20,
		0x83, 0, 0, 255, 255, // run of 4, BGRA blue=0 green=0 red=255
	}
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA RLE failed: %v", err)
	}
	rgba := ToRGBA(img)
	for x := 0; x < 4; x++ {
		if got := rgba.RGBAAt(x, 0); got != (color.RGBA{R: 255, A: 255}) {
			t.Errorf("pixel %d: got %v, want solid red", x, got)
		}
	}
}

func TestDecodePNGByExtension(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(1, 1, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, err := Decode(buf.Bytes(), "wood.PNG")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := img.RGBAAt(1, 1); got != src.RGBAAt(1, 1) {
		t.Errorf("round trip pixel: got %v", got)
	}
}

func TestDecodeCorruptData(t *testing.T) {
	if _, err := Decode([]byte("not an image"), "broken.png"); err == nil {
		t.Error("expected decode error for corrupt data")
	}
}

func TestHasTransparency(t *testing.T) {
	opaque := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 255
	}
	if HasTransparency(opaque) {
		t.Error("fully opaque image reported transparent")
	}

	// 254 is still within the near-opaque threshold.
	opaque.Pix[3] = 254
	if HasTransparency(opaque) {
		t.Error("near-opaque alpha should not count as transparency")
	}

	opaque.Pix[3] = 100
	if !HasTransparency(opaque) {
		t.Error("translucent pixel not detected")
	}
}
