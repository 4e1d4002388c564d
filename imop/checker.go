package imop

import (
	"image"
	"image/color"
	"image/draw"
)

// Checkerboard returns an image of the given bounds tiled with square cells
// of alternating colors. The cell touching the rectangle origin is light.
func Checkerboard(rect image.Rectangle, cell int, light, dark color.Color) *image.NRGBA {
	img := image.NewNRGBA(rect)
	if cell <= 0 {
		draw.Draw(img, rect, &image.Uniform{light}, image.Point{}, draw.Src)
		return img
	}
	lc := &image.Uniform{light}
	dc := &image.Uniform{dark}

	for y := rect.Min.Y; y < rect.Max.Y; y += cell {
		for x := rect.Min.X; x < rect.Max.X; x += cell {
			cx, cy := (x-rect.Min.X)/cell, (y-rect.Min.Y)/cell
			src := lc
			if (cx&1)^(cy&1) == 1 {
				src = dc
			}
			r := image.Rect(x, y, x+cell, y+cell).Intersect(rect)
			draw.Draw(img, r, src, image.Point{}, draw.Src)
		}
	}
	return img
}
