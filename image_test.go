package ristretto

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// writeImage encodes a w×h test image into path, picking the encoder by extension.
func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 0x80, A: 0xff})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("could not create the test image: %v", err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, nil)
	case ".bmp":
		err = bmp.Encode(f, img)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		t.Fatalf("could not encode the test image: %v", err)
	}
}

func TestImage_Decode(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	for _, name := range []string{"a.png", "b.bmp", "c.tiff"} {
		path := filepath.Join(dir, name)
		writeImage(t, path, 12, 8)

		img, err := decodeImg(path)
		assert.NoError(err, name)
		assert.Equal(image.Pt(12, 8), img.Bounds().Size(), name)

		cfg, _, err := decodeConfig(path)
		assert.NoError(err, name)
		assert.Equal(12, cfg.Width, name)
		assert.Equal(8, cfg.Height, name)
	}

	_, err := decodeImg(filepath.Join(dir, "missing.png"))
	assert.Error(err)
}

func TestImage_IsImageFile(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	pic := filepath.Join(dir, "a.png")
	writeImage(t, pic, 4, 4)
	tif := filepath.Join(dir, "b.tif")
	writeImage(t, tif, 4, 4)
	fake := filepath.Join(dir, "c.jpg")
	assert.NoError(os.WriteFile(fake, []byte("plain text"), 0644))
	txt := filepath.Join(dir, "d.txt")
	assert.NoError(os.WriteFile(txt, []byte("plain text"), 0644))

	assert.True(isImageFile(pic))
	assert.True(isImageFile(tif))
	assert.False(isImageFile(fake))
	assert.False(isImageFile(txt))
	assert.False(isImageFile(filepath.Join(dir, "missing.png")))

	_, err := decodeImg(fake)
	assert.Error(err)
}
