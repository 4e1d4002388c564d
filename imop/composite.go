// Package imop implements the Porter-Duff source-over composition used
// for mixing a graphic element with its backdrop.
//
// The viewer uses it to flatten images with an alpha channel
// over the checkerboard background.
package imop

import (
	"image"
	"image/color"

	"github.com/esimov/ristretto/utils"
)

// Over composes src over the backdrop and returns the result as a new image.
// Both images are sampled relative to their own origin; the output has the
// size of src. Backdrop pixels outside its bounds count as transparent.
func Over(src, backdrop image.Image) *image.NRGBA {
	sb, bb := src.Bounds(), backdrop.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, sb.Dx(), sb.Dy()))

	for y := 0; y < sb.Dy(); y++ {
		for x := 0; x < sb.Dx(); x++ {
			s := color.NRGBAModel.Convert(src.At(sb.Min.X+x, sb.Min.Y+y)).(color.NRGBA)

			var b color.NRGBA
			if p := image.Pt(bb.Min.X+x, bb.Min.Y+y); p.In(bb) {
				b = color.NRGBAModel.Convert(backdrop.At(p.X, p.Y)).(color.NRGBA)
			}

			// co = αs·Cs + αb·Cb·(1-αs)
			as, ab := float64(s.A)/255, float64(b.A)/255
			fb := ab * (1 - as)

			ao := as + fb
			if ao <= 0 {
				continue
			}
			mix := func(cs, cb uint8) uint8 {
				c := (as*float64(cs) + fb*float64(cb)) / ao
				return uint8(utils.Clamp(c+0.5, 0, 255))
			}
			out.SetNRGBA(x, y, color.NRGBA{
				R: mix(s.R, b.R),
				G: mix(s.G, b.G),
				B: mix(s.B, b.B),
				A: uint8(utils.Clamp(ao*255+0.5, 0, 255)),
			})
		}
	}
	return out
}
