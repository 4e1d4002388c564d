package ristretto

import (
	"sort"

	"golang.org/x/exp/slices"
)

// Settings supplies the navigation options consumed by cursors.
type Settings interface {
	// Wrap reports whether stepping past either end of the
	// collection jumps to the opposite end.
	Wrap() bool
}

// CollectionEvent identifies a structural change of a Collection.
type CollectionEvent int

const (
	// EventNewImage is emitted after an entry has been added, and for the
	// already present entry when the same resource is added again.
	EventNewImage CollectionEvent = iota
	// EventRemoveImage is emitted after an entry has been removed.
	EventRemoveImage
	// EventRemoveAll is emitted after the collection has been cleared.
	EventRemoveAll
)

func (e CollectionEvent) String() string {
	switch e {
	case EventNewImage:
		return "new-image"
	case EventRemoveImage:
		return "remove-image"
	case EventRemoveAll:
		return "remove-all"
	}
	return "unknown"
}

// CollectionListener receives collection notifications. The entry is nil for EventRemoveAll.
type CollectionListener func(ev CollectionEvent, e *Entry)

// Collection is an ordered set of unique entries kept sorted by the current
// comparison function, together with the cursors opened on it.
//
// A Collection is not safe for concurrent use. All mutations and
// notifications happen synchronously on the caller's goroutine.
type Collection struct {
	entries  []*Entry
	compare  CompareFunc
	settings Settings

	cursors   []*Cursor
	listeners registry[CollectionListener]
}

// NewCollection returns an empty collection sorted by name.
// A nil settings value disables wrapping.
func NewCollection(settings Settings) *Collection {
	return &Collection{
		compare:  CompareByName,
		settings: settings,
	}
}

// Subscribe registers a listener for collection events.
func (c *Collection) Subscribe(fn CollectionListener) *Subscription {
	return c.listeners.add(fn)
}

// Count returns the number of entries.
func (c *Collection) Count() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in their current order.
func (c *Collection) Entries() []*Entry {
	return slices.Clone(c.entries)
}

// At returns the entry at index i, or nil when i is out of range.
func (c *Collection) At(i int) *Entry {
	if i < 0 || i >= len(c.entries) {
		return nil
	}
	return c.entries[i]
}

// Lookup returns the member entry identified by uri and its index,
// or nil and -1 when there is none.
func (c *Collection) Lookup(uri string) (*Entry, int) {
	i := slices.IndexFunc(c.entries, func(e *Entry) bool {
		return sameURI(e.uri, uri)
	})
	if i < 0 {
		return nil, -1
	}
	return c.entries[i], i
}

func (c *Collection) indexOf(e *Entry) int {
	if e == nil {
		return -1
	}
	return slices.Index(c.entries, e)
}

// AddFile creates an entry for the local file and adds it.
func (c *Collection) AddFile(path string) bool {
	return c.Add(NewEntry(path))
}

// Add inserts the entry at its sorted position. It returns false only when
// e is nil. Adding a resource which is already a member inserts nothing but
// still reports success and emits EventNewImage for the existing entry.
func (c *Collection) Add(e *Entry) bool {
	if e == nil {
		return false
	}
	if existing, _ := c.Lookup(e.uri); existing != nil {
		c.emit(EventNewImage, existing)
		return true
	}

	i := sort.Search(len(c.entries), func(i int) bool {
		return c.compare(e, c.entries[i]) <= 0
	})
	c.entries = slices.Insert(c.entries, i, e)
	c.emit(EventNewImage, e)

	if len(c.entries) == 1 {
		for _, cur := range c.liveCursors() {
			if cur.entry == nil {
				cur.set(e)
				continue
			}
			cur.emit(EventChanged)
		}
	}
	return true
}

// Remove drops the member identified by e. Cursors pointing at it first step
// to its predecessor, or become unset when it was the first entry.
func (c *Collection) Remove(e *Entry) {
	if e == nil {
		return
	}
	c.RemoveURI(e.uri)
}

// RemoveURI drops the member identified by uri, if any.
func (c *Collection) RemoveURI(uri string) {
	member, i := c.Lookup(uri)
	if member == nil {
		return
	}

	var pred *Entry
	if i > 0 {
		pred = c.entries[i-1]
	}
	for _, cur := range c.liveCursors() {
		if cur.entry == member {
			cur.set(pred)
		}
	}

	// Listeners run in between; resolve the index again.
	if i = c.indexOf(member); i >= 0 {
		c.entries = slices.Delete(c.entries, i, i+1)
	}
	c.emit(EventRemoveImage, member)
}

// Clear releases every entry and unsets every cursor.
func (c *Collection) Clear() {
	c.entries = nil
	for _, cur := range c.liveCursors() {
		cur.SetPosition(-1)
	}
	c.emit(EventRemoveAll, nil)
}

// SetComparator replaces the ordering, re-sorts the entries and notifies every cursor.
func (c *Collection) SetComparator(fn CompareFunc) {
	if fn == nil {
		return
	}
	c.compare = fn
	sort.SliceStable(c.entries, func(i, j int) bool {
		return fn(c.entries[i], c.entries[j]) < 0
	})
	for _, cur := range c.liveCursors() {
		cur.emit(EventChanged)
	}
}

// SetSortType switches to one of the built-in orderings.
func (c *Collection) SetSortType(s SortType) error {
	fn, err := s.Compare()
	if err != nil {
		return err
	}
	c.SetComparator(fn)
	return nil
}

// NewCursor opens a cursor on the first entry, or unset when the collection is empty.
func (c *Collection) NewCursor() *Cursor {
	cur := &Cursor{list: c}
	if len(c.entries) > 0 {
		cur.entry = c.entries[0]
	}
	c.cursors = append(c.cursors, cur)
	return cur
}

func (c *Collection) unregister(cur *Cursor) {
	if i := slices.Index(c.cursors, cur); i >= 0 {
		c.cursors = slices.Delete(c.cursors, i, i+1)
	}
}

// liveCursors returns a snapshot of the registered cursors. Cursors closed
// while the snapshot is walked are skipped by their own methods.
func (c *Collection) liveCursors() []*Cursor {
	return slices.Clone(c.cursors)
}

func (c *Collection) wrap() bool {
	return c.settings != nil && c.settings.Wrap()
}

func (c *Collection) emit(ev CollectionEvent, e *Entry) {
	c.listeners.each(func(fn CollectionListener) {
		fn(ev, e)
	})
}
