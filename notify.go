package ristretto

// Subscription represents an active listener registration.
type Subscription struct {
	id     uint64
	cancel func(id uint64)
}

// Unsubscribe removes the listener. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.cancel(s.id)
	s.cancel = nil
}

// registry keeps listeners in registration order, keyed by subscription id.
// It is not safe for concurrent use; every caller runs on the UI goroutine.
type registry[T any] struct {
	nextID    uint64
	ids       []uint64
	listeners map[uint64]T
}

func (r *registry[T]) add(fn T) *Subscription {
	if r.listeners == nil {
		r.listeners = make(map[uint64]T)
	}
	id := r.nextID
	r.nextID++
	r.ids = append(r.ids, id)
	r.listeners[id] = fn

	return &Subscription{id: id, cancel: r.remove}
}

func (r *registry[T]) remove(id uint64) {
	if _, ok := r.listeners[id]; !ok {
		return
	}
	delete(r.listeners, id)
	for i, v := range r.ids {
		if v == id {
			r.ids = append(r.ids[:i:i], r.ids[i+1:]...)
			break
		}
	}
}

// each calls fn for a snapshot of the registered listeners. A listener
// removed while the snapshot is delivered is skipped.
func (r *registry[T]) each(fn func(T)) {
	ids := make([]uint64, len(r.ids))
	copy(ids, r.ids)

	for _, id := range ids {
		if l, ok := r.listeners[id]; ok {
			fn(l)
		}
	}
}

func (r *registry[T]) size() int { return len(r.ids) }
