package imop

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComp_Over(t *testing.T) {
	assert := assert.New(t)

	transparent := color.NRGBA{}
	cyan := color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	magenta := color.NRGBA{R: 233, G: 30, B: 99, A: 255}

	rect := image.Rect(0, 0, 10, 10)
	source := image.NewNRGBA(rect)
	backdrop := image.NewNRGBA(rect)

	draw.Draw(source, image.Rect(0, 4, 6, 10), &image.Uniform{cyan}, image.Point{}, draw.Src)
	draw.Draw(backdrop, image.Rect(4, 0, 10, 6), &image.Uniform{magenta}, image.Point{}, draw.Src)

	out := Over(source, backdrop)
	assert.Equal(rect, out.Bounds())
	assert.Equal(magenta, out.NRGBAAt(9, 0))
	assert.Equal(cyan, out.NRGBAAt(0, 9))
	assert.Equal(cyan, out.NRGBAAt(5, 5))
	assert.Equal(transparent, out.NRGBAAt(0, 0))

	// A smaller backdrop leaves the rest of the source untouched.
	small := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	draw.Draw(small, small.Bounds(), &image.Uniform{magenta}, image.Point{}, draw.Src)
	out = Over(image.NewNRGBA(rect), small)
	assert.Equal(magenta, out.NRGBAAt(1, 1))
	assert.Equal(transparent, out.NRGBAAt(5, 5))
}

func TestComp_HalfTransparentOverOpaque(t *testing.T) {
	rect := image.Rect(0, 0, 2, 2)
	source := image.NewNRGBA(rect)
	draw.Draw(source, rect, &image.Uniform{color.NRGBA{R: 255, G: 255, B: 255, A: 128}}, image.Point{}, draw.Src)
	backdrop := image.NewNRGBA(rect)
	draw.Draw(backdrop, rect, &image.Uniform{color.NRGBA{A: 255}}, image.Point{}, draw.Src)

	out := Over(source, backdrop)
	assert.Equal(t, color.NRGBA{R: 128, G: 128, B: 128, A: 255}, out.NRGBAAt(1, 1))
}

func TestComp_Checkerboard(t *testing.T) {
	assert := assert.New(t)

	light := color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	dark := color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}

	img := Checkerboard(image.Rect(0, 0, 25, 20), 10, light, dark)
	assert.Equal(light, img.NRGBAAt(0, 0))
	assert.Equal(light, img.NRGBAAt(9, 9))
	assert.Equal(dark, img.NRGBAAt(10, 0))
	assert.Equal(light, img.NRGBAAt(24, 0))
	assert.Equal(dark, img.NRGBAAt(0, 10))
	assert.Equal(light, img.NRGBAAt(10, 19))

	shifted := Checkerboard(image.Rect(5, 5, 30, 15), 10, light, dark)
	assert.Equal(light, shifted.NRGBAAt(5, 5))
	assert.Equal(dark, shifted.NRGBAAt(15, 5))

	flat := Checkerboard(image.Rect(0, 0, 3, 3), 0, light, dark)
	assert.Equal(light, flat.NRGBAAt(2, 2))
}
