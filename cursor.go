package ristretto

// CursorEvent brackets every change of the entry a cursor points to.
type CursorEvent int

const (
	// EventPrepareChange fires while the cursor still holds the outgoing entry.
	EventPrepareChange CursorEvent = iota
	// EventChanged fires once the cursor holds the incoming entry.
	EventChanged
)

func (e CursorEvent) String() string {
	switch e {
	case EventPrepareChange:
		return "prepare-change"
	case EventChanged:
		return "changed"
	}
	return "unknown"
}

// CursorListener receives cursor notifications.
type CursorListener func(ev CursorEvent, cur *Cursor)

// Cursor is a position in a Collection. It refers to an entry rather than an
// index, so it stays on the same image while other entries come and go.
type Cursor struct {
	list      *Collection
	entry     *Entry
	listeners registry[CursorListener]
	closed    bool
}

// Subscribe registers a listener for cursor events.
func (cur *Cursor) Subscribe(fn CursorListener) *Subscription {
	return cur.listeners.add(fn)
}

// Collection returns the collection the cursor belongs to.
func (cur *Cursor) Collection() *Collection {
	return cur.list
}

// Entry returns the entry pointed to, or nil when the cursor is unset.
func (cur *Cursor) Entry() *Entry {
	return cur.entry
}

// Position returns the index of the current entry, or -1 when unset.
func (cur *Cursor) Position() int {
	if cur.entry == nil || cur.closed {
		return -1
	}
	return cur.list.indexOf(cur.entry)
}

// SetPosition moves the cursor to the i-th entry. An index outside
// [0, Count) leaves the cursor unset.
func (cur *Cursor) SetPosition(i int) {
	if cur.closed {
		return
	}
	cur.emit(EventPrepareChange)
	cur.entry = cur.list.At(i)
	cur.emit(EventChanged)
}

// Next moves to the successor. Past the last entry it jumps to the first one
// when wrapping is enabled and stays on the last one otherwise.
// It reports whether the cursor ended up on a different entry.
func (cur *Cursor) Next() bool {
	return cur.step(1)
}

// Previous moves to the predecessor. Before the first entry it jumps to the
// last one when wrapping is enabled and stays on the first one otherwise.
// It reports whether the cursor ended up on a different entry.
func (cur *Cursor) Previous() bool {
	return cur.step(-1)
}

func (cur *Cursor) step(dir int) bool {
	if cur.closed {
		return false
	}
	prev := cur.entry
	cur.emit(EventPrepareChange)

	pos := -1
	if cur.entry != nil {
		pos = cur.list.indexOf(cur.entry)
		cur.entry = nil
	}

	entries := cur.list.entries
	if n := len(entries); n > 0 {
		next := pos + dir
		switch {
		case pos >= 0 && next >= 0 && next < n:
			cur.entry = entries[next]
		case cur.list.wrap() == (dir > 0):
			cur.entry = entries[0]
		default:
			cur.entry = entries[n-1]
		}
	}

	cur.emit(EventChanged)
	return cur.entry != prev
}

// Find moves the cursor onto the member identified by e.
// It returns false and leaves the cursor untouched when there is none.
func (cur *Cursor) Find(e *Entry) bool {
	if e == nil {
		return false
	}
	return cur.FindURI(e.uri)
}

// FindURI moves the cursor onto the member identified by uri.
func (cur *Cursor) FindURI(uri string) bool {
	if cur.closed {
		return false
	}
	member, _ := cur.list.Lookup(uri)
	if member == nil {
		return false
	}
	cur.set(member)
	return true
}

// Clone opens a new cursor on the same collection at the same position.
// Listeners are not copied.
func (cur *Cursor) Clone() *Cursor {
	clone := cur.list.NewCursor()
	clone.SetPosition(cur.Position())
	return clone
}

// Close deregisters the cursor from its collection. A closed cursor is unset
// and ignores further navigation.
func (cur *Cursor) Close() {
	if cur.closed {
		return
	}
	cur.closed = true
	cur.entry = nil
	cur.list.unregister(cur)
	cur.listeners = registry[CursorListener]{}
}

// set replaces the current entry, bracketed by the change notifications.
func (cur *Cursor) set(e *Entry) {
	if cur.closed {
		return
	}
	cur.emit(EventPrepareChange)
	cur.entry = e
	cur.emit(EventChanged)
}

func (cur *Cursor) emit(ev CursorEvent) {
	if cur.closed {
		return
	}
	cur.listeners.each(func(fn CursorListener) {
		fn(ev, cur)
	})
}
