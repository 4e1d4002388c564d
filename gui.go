package ristretto

import (
	"image"
	"image/color"
	"log"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	defaultWindowX = 1024
	defaultWindowY = 768

	thumbPadding = 4
)

var (
	defaultBkgColor = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	stripBkgColor   = color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	selectionColor  = color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}
	statusFgColor   = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)

// Gui is the viewer window. Every collection, cursor and viewport call is
// made from its event loop: slideshow ticks, thumbnails and directory
// changes produced elsewhere are received on channels and applied there.
type Gui struct {
	view   *View
	thumbs *Thumbnailer
	watch  *Watcher

	theme *material.Theme
	ops   op.Ops
	title string
}

// NewGUI creates the window state. The thumbnailer and the watcher are optional.
func NewGUI(view *View, thumbs *Thumbnailer, watch *Watcher) *Gui {
	return &Gui{
		view:   view,
		thumbs: thumbs,
		watch:  watch,
		theme:  material.NewTheme(gofont.Collection()),
	}
}

// Run opens the window and processes its events until it gets closed.
func (g *Gui) Run() error {
	g.title = Title(g.view.Cursor)
	w := app.NewWindow(
		app.Title(g.title),
		app.Size(unit.Dp(defaultWindowX), unit.Dp(defaultWindowY)),
	)

	for {
		select {
		case e := <-w.Events():
			switch e := e.(type) {
			case system.FrameEvent:
				g.draw(e)
			case key.Event:
				if e.State != key.Press {
					continue
				}
				if isQuitKey(e) {
					w.Perform(system.ActionClose)
					continue
				}
				if a := keyAction(e); g.view.Do(a) {
					w.Invalidate()
				}
			case system.DestroyEvent:
				return e.Err
			}
		case <-g.view.Slideshow.C():
			g.view.Tick()
			w.Invalidate()
		case th := <-g.thumbs.Results():
			if g.thumbs.Apply(th) {
				w.Invalidate()
			}
		case ch := <-g.watch.Changes():
			if ApplyChange(g.view.Collection, ch) {
				w.Invalidate()
			}
		case err := <-g.watch.Errors():
			log.Printf("directory watcher: %v", err)
		}

		if t := Title(g.view.Cursor); t != g.title {
			g.title = t
			w.Option(app.Title(t))
		}
	}
}

func isQuitKey(e key.Event) bool {
	return e.Name == key.NameEscape || (e.Name == "Q" && e.Modifiers == 0)
}

// keyAction maps a key press to a viewer action.
func keyAction(e key.Event) Action {
	shift := e.Modifiers.Contain(key.ModShift)

	switch e.Name {
	case key.NameRightArrow:
		if shift {
			return ActionScrollRight
		}
		return ActionNext
	case key.NameLeftArrow:
		if shift {
			return ActionScrollLeft
		}
		return ActionPrevious
	case key.NamePageDown:
		return ActionNext
	case key.NamePageUp:
		return ActionPrevious
	case key.NameUpArrow:
		return ActionScrollUp
	case key.NameDownArrow:
		return ActionScrollDown
	case key.NameHome:
		return ActionFirst
	case key.NameEnd:
		return ActionLast
	case key.NameSpace:
		return ActionToggleSlideshow
	case "+", "=":
		return ActionZoomIn
	case "-":
		return ActionZoomOut
	case "0":
		return ActionZoomNormal
	case "F":
		return ActionZoomFit
	case "]":
		return ActionRotateCW
	case "[":
		return ActionRotateCCW
	case "R":
		if shift {
			return ActionRotateCCW
		}
		return ActionRotateCW
	case "N":
		return ActionSortByName
	case "D":
		return ActionSortByDate
	}
	return ActionNone
}

// draw lays out the image area, the thumbnail strip and the status line.
func (g *Gui) draw(e system.FrameEvent) {
	gtx := layout.NewContext(&g.ops, e)
	paint.Fill(gtx.Ops, defaultBkgColor)

	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, g.layoutImage),
		layout.Rigid(g.layoutThumbnails),
		layout.Rigid(g.layoutStatus),
	)
	e.Frame(gtx.Ops)
}

func (g *Gui) layoutImage(gtx C) D {
	size := gtx.Constraints.Max
	vp := g.view.Viewport
	vp.SetSize(size.X, size.Y)

	img, l, ok := vp.Render()
	if !ok {
		return D{Size: size}
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	drawImage(gtx.Ops, img, l.Offset)

	return D{Size: size}
}

func (g *Gui) layoutThumbnails(gtx C) D {
	if g.thumbs == nil {
		return D{}
	}
	cell := g.thumbs.Size() + 2*thumbPadding
	size := image.Pt(gtx.Constraints.Max.X, cell)
	fillRect(gtx.Ops, image.Rectangle{Max: size}, stripBkgColor)

	entries := g.view.Collection.Entries()
	visible := size.X / cell
	if visible == 0 || len(entries) == 0 {
		return D{Size: size}
	}

	// Keep the current entry near the middle of the strip.
	first := 0
	if pos := g.view.Cursor.Position(); pos > visible/2 {
		first = pos - visible/2
	}
	if last := len(entries) - visible; first > last && last >= 0 {
		first = last
	}

	current := g.view.Cursor.Entry()
	for i := first; i < len(entries) && i < first+visible; i++ {
		x := (i - first) * cell
		if entries[i] == current {
			fillRect(gtx.Ops, image.Rect(x, 0, x+cell, cell), selectionColor)
		}
		thumb := g.thumbs.Get(entries[i])
		if thumb == nil {
			continue
		}
		b := thumb.Bounds()
		off := image.Pt(
			x+(cell-b.Dx())/2,
			(cell-b.Dy())/2,
		)
		drawImage(gtx.Ops, thumb, off)
	}
	return D{Size: size}
}

func (g *Gui) layoutStatus(gtx C) D {
	text := Status(g.view.Cursor, g.view.Viewport)
	if g.view.Err != nil {
		text += "\t" + g.view.Err.Error()
	}
	if g.view.Slideshow.Playing() {
		text += "\tslideshow"
	}

	return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx C) D {
		lbl := material.Body1(g.theme, text)
		lbl.Color = statusFgColor
		lbl.MaxLines = 1
		return lbl.Layout(gtx)
	})
}

// drawImage paints img with its top left corner at off.
func drawImage(ops *op.Ops, img image.Image, off image.Point) {
	defer op.Affine(f32.Affine2D{}.Offset(f32.Pt(float32(off.X), float32(off.Y)))).Push(ops).Pop()
	defer clip.Rect{Max: img.Bounds().Size()}.Push(ops).Pop()

	paint.NewImageOp(img).Add(ops)
	paint.PaintOp{}.Add(ops)
}

func fillRect(ops *op.Ops, r image.Rectangle, c color.NRGBA) {
	defer clip.Rect(r).Push(ops).Pop()
	paint.ColorOp{Color: c}.Add(ops)
	paint.PaintOp{}.Add(ops)
}
