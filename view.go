package ristretto

import (
	"fmt"
	"image"
	"log"

	"github.com/esimov/ristretto/utils"
)

const appTitle = "Image Viewer"

// Title returns the window title for the entry under the cursor.
func Title(cur *Cursor) string {
	e := cur.Entry()
	if e == nil {
		return appTitle
	}
	if n := cur.Collection().Count(); n > 1 {
		return fmt.Sprintf("%s - %s [%d/%d]", appTitle, e.Name(), cur.Position()+1, n)
	}
	return fmt.Sprintf("%s - %s", appTitle, e.Name())
}

// Status returns the status line: the entry name followed, once the image
// is decoded, by its dimensions and the zoom factor.
func Status(cur *Cursor, vp *Viewport) string {
	e := cur.Entry()
	if e == nil {
		return "Open an image to start"
	}
	if !vp.HasSource() {
		return e.Name()
	}
	size := vp.Source().Bounds().Size()
	return fmt.Sprintf("%s\t%d x %d\t%s", e.Name(), size.X, size.Y, utils.FormatScale(vp.Scale()))
}

// Action is a user command understood by View.
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrevious
	ActionFirst
	ActionLast
	ActionZoomIn
	ActionZoomOut
	ActionZoomFit
	ActionZoomNormal
	ActionRotateCW
	ActionRotateCCW
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionToggleSlideshow
	ActionSortByName
	ActionSortByDate
)

var actionNames = map[Action]string{
	ActionNone:            "none",
	ActionNext:            "next",
	ActionPrevious:        "previous",
	ActionFirst:           "first",
	ActionLast:            "last",
	ActionZoomIn:          "zoom-in",
	ActionZoomOut:         "zoom-out",
	ActionZoomFit:         "zoom-fit",
	ActionZoomNormal:      "zoom-100",
	ActionRotateCW:        "rotate-cw",
	ActionRotateCCW:       "rotate-ccw",
	ActionScrollUp:        "scroll-up",
	ActionScrollDown:      "scroll-down",
	ActionScrollLeft:      "scroll-left",
	ActionScrollRight:     "scroll-right",
	ActionToggleSlideshow: "slideshow",
	ActionSortByName:      "sort-name",
	ActionSortByDate:      "sort-date",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// View binds a cursor to a viewport. The bitmap is released as soon as the
// cursor is about to move and the next entry is decoded once it has moved.
type View struct {
	Collection *Collection
	Cursor     *Cursor
	Viewport   *Viewport
	Slideshow  *Slideshow

	// Err holds the decoding failure of the current entry, if any.
	Err error

	decode func(path string) (image.Image, error)
	loaded *Entry
	subs   []*Subscription
}

// NewView displays the entry under cur according to cfg and follows the
// cursor from then on. The view takes ownership of cur, so it should be
// positioned before, to decode only the image it points at.
func NewView(cur *Cursor, cfg *Config) *View {
	return newView(cur, cfg, decodeImg)
}

func newView(cur *Cursor, cfg *Config, decode func(string) (image.Image, error)) *View {
	c := cur.Collection()
	v := &View{
		Collection: c,
		Cursor:     cur,
		Viewport:   NewViewport(0, 0),
		Slideshow:  NewSlideshow(cfg.SlideshowTimeout),
		decode:     decode,
	}
	if !cfg.Fit {
		if err := v.Viewport.SetScale(cfg.Scale); err != nil {
			log.Printf("ignoring the initial scale: %v", err)
		}
	}
	v.subs = append(v.subs,
		v.Cursor.Subscribe(v.onCursorEvent),
		c.Subscribe(v.onCollectionEvent),
	)
	v.load()

	return v
}

func (v *View) onCursorEvent(ev CursorEvent, _ *Cursor) {
	switch ev {
	case EventPrepareChange:
		v.Viewport.SetSource(nil)
		v.loaded = nil
		v.Err = nil
	case EventChanged:
		v.load()
	}
}

// onCollectionEvent stops the slideshow when nothing is left to move between.
func (v *View) onCollectionEvent(ev CollectionEvent, _ *Entry) {
	if ev != EventNewImage && v.Collection.Count() < 2 {
		v.Slideshow.Pause()
	}
}

func (v *View) load() {
	// Reordering notifies without a preceding prepare-change.
	e := v.Cursor.Entry()
	if e == nil || e == v.loaded {
		return
	}
	v.loaded = e
	img, err := v.decode(e.URI())
	if err != nil {
		v.Err = err
		return
	}
	v.Viewport.SetSource(img)
}

// Tick advances the slideshow by one image.
func (v *View) Tick() {
	Advance(v.Cursor)
}

// Do performs the action and reports whether the display changed.
func (v *View) Do(a Action) bool {
	vp := v.Viewport
	switch a {
	case ActionNext:
		return v.Cursor.Next()
	case ActionPrevious:
		return v.Cursor.Previous()
	case ActionFirst:
		return v.moveTo(0)
	case ActionLast:
		return v.moveTo(v.Collection.Count() - 1)
	case ActionZoomIn:
		vp.ZoomIn()
	case ActionZoomOut:
		vp.ZoomOut()
	case ActionZoomFit:
		vp.SetFit(true)
	case ActionZoomNormal:
		vp.ZoomNormal()
	case ActionRotateCW:
		vp.RotateCW()
	case ActionRotateCCW:
		vp.RotateCCW()
	case ActionScrollUp:
		vp.ScrollBy(0, -vp.Vertical().PageIncrement)
	case ActionScrollDown:
		vp.ScrollBy(0, vp.Vertical().PageIncrement)
	case ActionScrollLeft:
		vp.ScrollBy(-vp.Horizontal().PageIncrement, 0)
	case ActionScrollRight:
		vp.ScrollBy(vp.Horizontal().PageIncrement, 0)
	case ActionToggleSlideshow:
		if !v.Slideshow.Playing() && v.Collection.Count() < 2 {
			return false
		}
		v.Slideshow.Toggle()
	case ActionSortByName:
		v.Collection.SetSortType(SortByName)
	case ActionSortByDate:
		v.Collection.SetSortType(SortByDate)
	default:
		return false
	}
	return true
}

func (v *View) moveTo(i int) bool {
	if i < 0 || i >= v.Collection.Count() || i == v.Cursor.Position() {
		return false
	}
	v.Cursor.SetPosition(i)
	return true
}

// Close detaches the view from the collection.
func (v *View) Close() {
	v.Slideshow.Pause()
	for _, sub := range v.subs {
		sub.Unsubscribe()
	}
	v.Cursor.Close()
}
