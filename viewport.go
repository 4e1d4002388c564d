package ristretto

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/esimov/ristretto/imop"
	"github.com/esimov/ristretto/utils"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// ErrInvalidScale is returned when a zoom factor is not strictly positive.
var ErrInvalidScale = errors.New("scale must be greater than zero")

const (
	// ZoomFactor is the ratio applied by a single zoom in or zoom out step.
	ZoomFactor = 1.2

	// CheckerSize is the cell size of the background shown through transparent pixels.
	CheckerSize = 10

	stepIncrement = 1
	pageIncrement = 100
)

var (
	checkerLight = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	checkerDark  = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
)

// Adjustment describes one scroll axis of the viewport.
// Value always lies in [Lower, max(Lower, Upper-PageSize)].
type Adjustment struct {
	Value         float64
	Lower         float64
	Upper         float64
	PageSize      float64
	StepIncrement float64
	PageIncrement float64
}

// Max returns the largest admissible value.
func (a Adjustment) Max() float64 {
	return utils.Max(a.Lower, a.Upper-a.PageSize)
}

func (a *Adjustment) reset(upper, pageSize float64) {
	a.Lower = 0
	a.Upper = upper
	a.PageSize = pageSize
	a.StepIncrement = stepIncrement
	a.PageIncrement = pageIncrement
	a.clamp()
}

func (a *Adjustment) clamp() {
	if a.Value+a.PageSize > a.Upper {
		a.Value = a.Upper - a.PageSize
	}
	if a.Value < a.Lower {
		a.Value = a.Lower
	}
}

// Layout is the outcome of fitting a source bitmap into the viewport.
type Layout struct {
	// Scale is the effective zoom factor.
	Scale float64
	// Origin is the source point shown at the top left corner of the
	// rendered bitmap, relative to the source origin.
	Origin f64.Vec2
	// Src is the smallest pixel rectangle of the source covering the
	// visible part, relative to its origin.
	Src image.Rectangle
	// Size is the size of the rendered bitmap. It never exceeds the viewport.
	Size image.Point
	// Offset centers the rendered bitmap when it is smaller than the viewport.
	Offset image.Point
}

// FitScale returns the largest uniform scale at which a srcW×srcH bitmap fits
// entirely into a vw×vh viewport. Degenerate sizes yield 1.
func FitScale(srcW, srcH, vw, vh int) float64 {
	if srcW <= 0 || srcH <= 0 || vw <= 0 || vh <= 0 {
		return 1
	}
	return math.Min(float64(vw)/float64(srcW), float64(vh)/float64(srcH))
}

// ComputeLayout maps the scroll offsets (ox, oy) of a vw×vh viewport onto a
// srcW×srcH source drawn at scale s. A non-positive scale yields an empty layout.
func ComputeLayout(srcW, srcH int, s float64, vw, vh int, ox, oy float64) Layout {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return Layout{}
	}

	x := utils.Clamp(ox/s, 0, float64(srcW))
	y := utils.Clamp(oy/s, 0, float64(srcH))
	w := utils.Max(0, utils.Min(float64(vw)/s, float64(srcW)-x))
	h := utils.Max(0, utils.Min(float64(vh)/s, float64(srcH)-y))

	size := image.Pt(
		utils.Clamp(int(math.Round(w*s)), 0, utils.Max(vw, 0)),
		utils.Clamp(int(math.Round(h*s)), 0, utils.Max(vh, 0)),
	)
	return Layout{
		Scale:  s,
		Origin: f64.Vec2{x, y},
		Src: image.Rect(
			int(math.Floor(x)), int(math.Floor(y)),
			int(math.Ceil(x+w)), int(math.Ceil(y+h)),
		),
		Size: size,
		Offset: image.Pt(
			utils.Max(0, (vw-size.X)/2),
			utils.Max(0, (vh-size.Y)/2),
		),
	}
}

// Orientation is a clockwise quarter turn applied to the source before layout.
type Orientation int

const (
	OrientNone Orientation = iota
	Orient90
	Orient180
	Orient270
)

func (o Orientation) String() string {
	switch o {
	case OrientNone:
		return "none"
	case Orient90:
		return "90"
	case Orient180:
		return "180"
	case Orient270:
		return "270"
	}
	return "unknown"
}

// CW returns the orientation turned a further 90 degrees clockwise.
func (o Orientation) CW() Orientation { return (o + 1) & 3 }

// CCW returns the orientation turned 90 degrees counter clockwise.
func (o Orientation) CCW() Orientation { return (o + 3) & 3 }

// apply rotates img clockwise. The imaging rotations go counter clockwise.
func (o Orientation) apply(img image.Image) image.Image {
	switch o {
	case Orient90:
		return imaging.Rotate270(img)
	case Orient180:
		return imaging.Rotate180(img)
	case Orient270:
		return imaging.Rotate90(img)
	}
	return img
}

// Viewport keeps the zoom, rotation and scroll state of the displayed image
// and renders its visible part. Every setter recomputes the scroll
// adjustments, so the layout always reflects the current parameters.
type Viewport struct {
	src      image.Image
	oriented image.Image
	orient   Orientation

	width, height int
	scale         float64
	fit           bool

	h, v Adjustment
}

// NewViewport creates a viewport of the given size in fit mode.
func NewViewport(width, height int) *Viewport {
	vp := &Viewport{
		width:  width,
		height: height,
		scale:  1,
		fit:    true,
	}
	vp.update()
	return vp
}

// SetSource installs the bitmap to display, or releases it when img is nil.
// Rotation and scroll offsets start over for every new source.
func (vp *Viewport) SetSource(img image.Image) {
	vp.src = img
	vp.orient = OrientNone
	vp.oriented = img
	vp.h.Value, vp.v.Value = 0, 0
	vp.update()
}

// HasSource reports whether a bitmap is installed.
func (vp *Viewport) HasSource() bool {
	return vp.src != nil
}

// Source returns the installed bitmap with the orientation applied.
func (vp *Viewport) Source() image.Image {
	return vp.oriented
}

// SetSize resizes the viewport.
func (vp *Viewport) SetSize(width, height int) {
	if width == vp.width && height == vp.height {
		return
	}
	vp.width, vp.height = utils.Max(width, 0), utils.Max(height, 0)
	vp.update()
}

// Size returns the viewport size.
func (vp *Viewport) Size() image.Point {
	return image.Pt(vp.width, vp.height)
}

// Scale returns the effective zoom factor.
func (vp *Viewport) Scale() float64 {
	if vp.fit && vp.oriented != nil {
		b := vp.oriented.Bounds()
		return FitScale(b.Dx(), b.Dy(), vp.width, vp.height)
	}
	return vp.scale
}

// SetScale leaves fit mode and zooms to s.
func (vp *Viewport) SetScale(s float64) error {
	if !(s > 0) || math.IsInf(s, 0) {
		return ErrInvalidScale
	}
	vp.scale = s
	vp.fit = false
	vp.update()
	return nil
}

// SetFit enables or disables fit mode. Leaving fit mode keeps the
// scale that was effective.
func (vp *Viewport) SetFit(fit bool) {
	if fit == vp.fit {
		return
	}
	if !fit {
		vp.scale = vp.Scale()
	}
	vp.fit = fit
	vp.update()
}

// Fit reports whether the viewport is in fit mode.
func (vp *Viewport) Fit() bool {
	return vp.fit
}

// ZoomIn enlarges the image by ZoomFactor.
func (vp *Viewport) ZoomIn() {
	vp.SetScale(vp.Scale() * ZoomFactor)
}

// ZoomOut shrinks the image by ZoomFactor.
func (vp *Viewport) ZoomOut() {
	vp.SetScale(vp.Scale() / ZoomFactor)
}

// ZoomNormal shows the image at its natural size.
func (vp *Viewport) ZoomNormal() {
	vp.SetScale(1)
}

// Orientation returns the current rotation.
func (vp *Viewport) Orientation() Orientation {
	return vp.orient
}

// SetOrientation rotates the source to o.
func (vp *Viewport) SetOrientation(o Orientation) {
	o &= 3
	if o == vp.orient {
		return
	}
	vp.orient = o
	if vp.src != nil {
		vp.oriented = o.apply(vp.src)
	}
	vp.update()
}

// RotateCW turns the image 90 degrees clockwise.
func (vp *Viewport) RotateCW() {
	vp.SetOrientation(vp.orient.CW())
}

// RotateCCW turns the image 90 degrees counter clockwise.
func (vp *Viewport) RotateCCW() {
	vp.SetOrientation(vp.orient.CCW())
}

// ScrollTo moves the scroll offsets, clamped into range.
func (vp *Viewport) ScrollTo(x, y float64) {
	vp.h.Value, vp.v.Value = x, y
	vp.h.clamp()
	vp.v.clamp()
}

// ScrollBy moves the scroll offsets relative to their current values.
func (vp *Viewport) ScrollBy(dx, dy float64) {
	vp.ScrollTo(vp.h.Value+dx, vp.v.Value+dy)
}

// Horizontal returns the horizontal scroll adjustment.
func (vp *Viewport) Horizontal() Adjustment { return vp.h }

// Vertical returns the vertical scroll adjustment.
func (vp *Viewport) Vertical() Adjustment { return vp.v }

func (vp *Viewport) update() {
	var w, h float64
	if vp.oriented != nil {
		b := vp.oriented.Bounds()
		s := vp.Scale()
		w, h = float64(b.Dx())*s, float64(b.Dy())*s
	}
	vp.h.reset(w, float64(vp.width))
	vp.v.reset(h, float64(vp.height))
}

// Layout returns the current layout. It reports false without a source.
func (vp *Viewport) Layout() (Layout, bool) {
	if vp.oriented == nil {
		return Layout{}, false
	}
	b := vp.oriented.Bounds()
	return ComputeLayout(b.Dx(), b.Dy(), vp.Scale(), vp.width, vp.height, vp.h.Value, vp.v.Value), true
}

// Render resamples the visible part of the source to its on-screen size.
// Sources with transparency are flattened over a checkerboard.
// It reports false when there is nothing to draw.
func (vp *Viewport) Render() (*image.NRGBA, Layout, bool) {
	l, ok := vp.Layout()
	if !ok || l.Size.X <= 0 || l.Size.Y <= 0 {
		return nil, l, false
	}

	// Only the visible window of the source is resampled.
	b := vp.oriented.Bounds()
	ox := float64(b.Min.X) + l.Origin[0]
	oy := float64(b.Min.Y) + l.Origin[1]
	s2d := f64.Aff3{
		l.Scale, 0, -ox * l.Scale,
		0, l.Scale, -oy * l.Scale,
	}
	dst := image.NewNRGBA(image.Rect(0, 0, l.Size.X, l.Size.Y))
	draw.BiLinear.Transform(dst, s2d, vp.oriented, l.Src.Add(b.Min), draw.Src, nil)

	if !isOpaque(vp.oriented) {
		bg := imop.Checkerboard(dst.Bounds(), CheckerSize, checkerLight, checkerDark)
		dst = imop.Over(dst, bg)
	}
	return dst, l, true
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}
