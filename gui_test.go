package ristretto

import (
	"testing"

	"gioui.org/io/key"
	"github.com/stretchr/testify/assert"
)

func TestGui_KeyBindings(t *testing.T) {
	cases := []struct {
		name string
		mods key.Modifiers
		want Action
	}{
		{key.NameRightArrow, 0, ActionNext},
		{key.NameLeftArrow, 0, ActionPrevious},
		{key.NameRightArrow, key.ModShift, ActionScrollRight},
		{key.NameLeftArrow, key.ModShift, ActionScrollLeft},
		{key.NamePageDown, 0, ActionNext},
		{key.NamePageUp, 0, ActionPrevious},
		{key.NameHome, 0, ActionFirst},
		{key.NameEnd, 0, ActionLast},
		{key.NameSpace, 0, ActionToggleSlideshow},
		{"+", 0, ActionZoomIn},
		{"-", 0, ActionZoomOut},
		{"0", 0, ActionZoomNormal},
		{"F", 0, ActionZoomFit},
		{"R", 0, ActionRotateCW},
		{"R", key.ModShift, ActionRotateCCW},
		{"D", 0, ActionSortByDate},
		{"X", 0, ActionNone},
	}
	for _, tc := range cases {
		e := key.Event{Name: tc.name, Modifiers: tc.mods, State: key.Press}
		assert.Equal(t, tc.want, keyAction(e), "key %q", tc.name)
	}

	assert.True(t, isQuitKey(key.Event{Name: key.NameEscape}))
	assert.True(t, isQuitKey(key.Event{Name: "Q"}))
	assert.False(t, isQuitKey(key.Event{Name: "Q", Modifiers: key.ModCtrl}))
}
