package ristretto

import (
	"image"
	"runtime"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// Thumbnail is the outcome of rendering the preview of one entry.
type Thumbnail struct {
	URI   string
	Image *image.NRGBA
	Err   error
}

// Thumbnailer maintains the previews shown in the thumbnail strip. It follows
// the collection: new entries are rendered on a bounded pool of goroutines,
// removed entries are dropped from the cache.
//
// Rendering happens in the background, but the cache is only touched by
// the goroutine owning the collection, which receives the finished
// thumbnails from Results and hands them to Apply.
type Thumbnailer struct {
	size int
	list *Collection

	cache   map[string]*image.NRGBA
	pending map[string]bool

	sem     chan struct{}
	results chan Thumbnail
	done    chan struct{}
	wg      sync.WaitGroup
	sub     *Subscription

	render func(uri string, size int) (*image.NRGBA, error)
}

// NewThumbnailer starts rendering previews of size×size pixels for the
// entries of c, using at most workers concurrent decoders.
func NewThumbnailer(c *Collection, size, workers int) *Thumbnailer {
	return newThumbnailer(c, size, workers, renderThumbnail)
}

func newThumbnailer(c *Collection, size, workers int, render func(string, int) (*image.NRGBA, error)) *Thumbnailer {
	if workers <= 0 || workers > maxWorkers {
		workers = runtime.NumCPU()
	}
	t := &Thumbnailer{
		size:    size,
		list:    c,
		cache:   make(map[string]*image.NRGBA),
		pending: make(map[string]bool),
		sem:     make(chan struct{}, workers),
		results: make(chan Thumbnail),
		done:    make(chan struct{}),
		render:  render,
	}
	t.sub = c.Subscribe(t.onCollectionEvent)
	for _, e := range c.Entries() {
		t.request(e)
	}
	return t
}

func renderThumbnail(uri string, size int) (*image.NRGBA, error) {
	img, err := decodeImg(uri)
	if err != nil {
		return nil, err
	}
	return imaging.Thumbnail(img, size, size, imaging.Linear), nil
}

func thumbKey(uri string) string {
	return strings.ToLower(uri)
}

func (t *Thumbnailer) onCollectionEvent(ev CollectionEvent, e *Entry) {
	switch ev {
	case EventNewImage:
		t.request(e)
	case EventRemoveImage:
		key := thumbKey(e.URI())
		delete(t.cache, key)
		delete(t.pending, key)
	case EventRemoveAll:
		t.cache = make(map[string]*image.NRGBA)
		t.pending = make(map[string]bool)
	}
}

func (t *Thumbnailer) request(e *Entry) {
	key := thumbKey(e.URI())
	if _, ok := t.cache[key]; ok || t.pending[key] {
		return
	}
	t.pending[key] = true

	t.wg.Add(1)
	go func(uri string) {
		defer t.wg.Done()

		select {
		case t.sem <- struct{}{}:
		case <-t.done:
			return
		}
		img, err := t.render(uri, t.size)
		<-t.sem

		select {
		case t.results <- Thumbnail{URI: uri, Image: img, Err: err}:
		case <-t.done:
		}
	}(e.URI())
}

// Results delivers the rendered thumbnails. It returns nil on a nil Thumbnailer.
func (t *Thumbnailer) Results() <-chan Thumbnail {
	if t == nil {
		return nil
	}
	return t.results
}

// Apply stores a finished thumbnail. It reports false when the thumbnail
// failed or its entry left the collection in the meantime.
func (t *Thumbnailer) Apply(th Thumbnail) bool {
	key := thumbKey(th.URI)
	delete(t.pending, key)
	if th.Err != nil || th.Image == nil {
		return false
	}
	if e, _ := t.list.Lookup(th.URI); e == nil {
		return false
	}
	t.cache[key] = th.Image
	return true
}

// Get returns the thumbnail of e, or nil when it is not available yet.
func (t *Thumbnailer) Get(e *Entry) *image.NRGBA {
	if t == nil || e == nil {
		return nil
	}
	return t.cache[thumbKey(e.URI())]
}

// Size returns the edge length of the thumbnails.
func (t *Thumbnailer) Size() int {
	return t.size
}

// Close stops following the collection and waits for the running renders.
func (t *Thumbnailer) Close() {
	t.sub.Unsubscribe()
	close(t.done)
	t.wg.Wait()
}
