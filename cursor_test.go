package ristretto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor_NextPreviousWithoutWrap(t *testing.T) {
	assert := assert.New(t)

	c := newList(false, "/p/a.jpg", "/p/b.jpg", "/p/c.jpg")
	cur := c.NewCursor()

	assert.True(cur.Next())
	assert.Equal(1, cur.Position())
	assert.True(cur.Next())
	assert.Equal(2, cur.Position())

	assert.False(cur.Next())
	assert.Equal(2, cur.Position())

	cur.SetPosition(0)
	assert.False(cur.Previous())
	assert.Equal(0, cur.Position())
}

func TestCursor_NextPreviousWithWrap(t *testing.T) {
	assert := assert.New(t)

	c := newList(true, "/p/a.jpg", "/p/b.jpg", "/p/c.jpg")
	cur := c.NewCursor()
	cur.SetPosition(2)

	assert.True(cur.Next())
	assert.Equal(0, cur.Position())
	assert.True(cur.Previous())
	assert.Equal(2, cur.Position())
}

func TestCursor_StepFromUnset(t *testing.T) {
	cases := []struct {
		name string
		wrap bool
		next bool
		want int
	}{
		{"next without wrap", false, true, 2},
		{"next with wrap", true, true, 0},
		{"previous without wrap", false, false, 0},
		{"previous with wrap", true, false, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newList(tc.wrap, "/p/a.jpg", "/p/b.jpg", "/p/c.jpg")
			cur := c.NewCursor()
			cur.SetPosition(-1)
			assert.Nil(t, cur.Entry())

			if tc.next {
				assert.True(t, cur.Next())
			} else {
				assert.True(t, cur.Previous())
			}
			assert.Equal(t, tc.want, cur.Position())
		})
	}
}

func TestCursor_EmptyCollection(t *testing.T) {
	assert := assert.New(t)

	c := NewCollection(wrapSetting(true))
	cur := c.NewCursor()

	var events []CursorEvent
	cur.Subscribe(func(ev CursorEvent, _ *Cursor) { events = append(events, ev) })

	assert.False(cur.Next())
	assert.False(cur.Previous())
	assert.Nil(cur.Entry())
	assert.Equal(-1, cur.Position())
	assert.Equal([]CursorEvent{
		EventPrepareChange, EventChanged,
		EventPrepareChange, EventChanged,
	}, events)
}

func TestCursor_SingleEntry(t *testing.T) {
	assert := assert.New(t)

	for _, wrap := range []bool{false, true} {
		c := newList(wrap, "/p/a.jpg")
		cur := c.NewCursor()
		assert.False(cur.Next())
		assert.False(cur.Previous())
		assert.Equal(0, cur.Position())
	}
}

func TestCursor_ChangeBracketsEntry(t *testing.T) {
	assert := assert.New(t)

	c := newList(false, "/p/a.jpg", "/p/b.jpg")
	cur := c.NewCursor()

	var seen []string
	cur.Subscribe(func(ev CursorEvent, cur *Cursor) {
		seen = append(seen, ev.String()+" "+cur.Entry().Name())
	})

	cur.Next()
	assert.Equal([]string{"prepare-change a.jpg", "changed b.jpg"}, seen)
}

func TestCursor_SetPositionOutOfRange(t *testing.T) {
	assert := assert.New(t)

	c := newList(false, "/p/a.jpg", "/p/b.jpg")
	cur := c.NewCursor()

	cur.SetPosition(1)
	assert.Equal("b.jpg", cur.Entry().Name())

	cur.SetPosition(5)
	assert.Nil(cur.Entry())
	assert.Equal(-1, cur.Position())
}

func TestCursor_Find(t *testing.T) {
	assert := assert.New(t)

	c := newList(false, "/p/a.jpg", "/p/b.jpg", "/p/c.jpg")
	cur := c.NewCursor()

	assert.True(cur.FindURI("/P/C.jpg"))
	assert.Equal(2, cur.Position())

	assert.True(cur.Find(NewEntry("/p/b.jpg")))
	assert.Equal(1, cur.Position())

	assert.False(cur.FindURI("/p/missing.jpg"))
	assert.False(cur.Find(nil))
	assert.Equal(1, cur.Position())
}

func TestCursor_FollowsEntryAcrossInsertions(t *testing.T) {
	assert := assert.New(t)

	c := newList(false, "/p/b.jpg", "/p/d.jpg")
	cur := c.NewCursor()
	cur.Next()
	assert.Equal("d.jpg", cur.Entry().Name())
	assert.Equal(1, cur.Position())

	c.Add(NewEntry("/p/a.jpg"))
	c.Add(NewEntry("/p/c.jpg"))
	assert.Equal("d.jpg", cur.Entry().Name())
	assert.Equal(3, cur.Position())
}

func TestCursor_Clone(t *testing.T) {
	assert := assert.New(t)

	c := newList(false, "/p/a.jpg", "/p/b.jpg", "/p/c.jpg")
	cur := c.NewCursor()
	cur.SetPosition(1)

	var calls int
	cur.Subscribe(func(CursorEvent, *Cursor) { calls++ })

	clone := cur.Clone()
	assert.Same(c, clone.Collection())
	assert.Same(cur.Entry(), clone.Entry())

	clone.Next()
	assert.Equal(2, clone.Position())
	assert.Equal(1, cur.Position())
	assert.Zero(calls)
}

func TestCursor_Close(t *testing.T) {
	assert := assert.New(t)

	c := newList(false, "/p/a.jpg", "/p/b.jpg")
	cur := c.NewCursor()

	var calls int
	cur.Subscribe(func(CursorEvent, *Cursor) { calls++ })

	cur.Close()
	cur.Close()
	assert.Nil(cur.Entry())
	assert.Equal(-1, cur.Position())
	assert.NotContains(c.cursors, cur)

	assert.False(cur.Next())
	cur.SetPosition(1)
	c.Clear()
	c.Add(NewEntry("/p/z.jpg"))
	assert.Nil(cur.Entry())
	assert.Zero(calls)
}

func TestCursor_ListenerRegistry(t *testing.T) {
	assert := assert.New(t)

	c := newList(false, "/p/a.jpg", "/p/b.jpg")
	cur := c.NewCursor()

	var first, second int
	sub := cur.Subscribe(func(CursorEvent, *Cursor) { first++ })
	cur.Subscribe(func(CursorEvent, *Cursor) { second++ })
	assert.Equal(2, cur.listeners.size())

	cur.Next()
	sub.Unsubscribe()
	sub.Unsubscribe()
	cur.Previous()

	assert.Equal(2, first)
	assert.Equal(4, second)
	assert.Equal(1, cur.listeners.size())
}
