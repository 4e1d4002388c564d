package ristretto

import "time"

// Slideshow is a cancellable repeating timer. It does not move any cursor
// by itself: the owner selects on C and calls Advance on its own goroutine.
type Slideshow struct {
	interval time.Duration
	ticker   *time.Ticker
}

// NewSlideshow returns a paused slideshow firing every d once played.
func NewSlideshow(d time.Duration) *Slideshow {
	return &Slideshow{interval: d}
}

// Play starts the timer. It has no effect on a running slideshow.
func (s *Slideshow) Play() {
	if s.ticker != nil {
		return
	}
	s.ticker = time.NewTicker(s.interval)
}

// Pause stops the timer. Ticks already delivered are not retracted.
func (s *Slideshow) Pause() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	s.ticker = nil
}

// Toggle switches between playing and paused and reports the new state.
func (s *Slideshow) Toggle() bool {
	if s.Playing() {
		s.Pause()
	} else {
		s.Play()
	}
	return s.Playing()
}

// Playing reports whether the timer is running.
func (s *Slideshow) Playing() bool {
	return s.ticker != nil
}

// C delivers the ticks. It is nil while paused, so a select on it blocks.
func (s *Slideshow) C() <-chan time.Time {
	if s.ticker == nil {
		return nil
	}
	return s.ticker.C
}

// Advance moves the cursor to the next entry, starting over from the first
// one when it cannot move forward. It reports whether the cursor points
// to an entry afterwards.
func Advance(cur *Cursor) bool {
	if !cur.Next() {
		cur.SetPosition(0)
	}
	return cur.Entry() != nil
}
