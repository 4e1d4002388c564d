package ristretto

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSortType is returned for a sort mode other than name or date.
var ErrUnknownSortType = errors.New("unknown sort type")

// CompareFunc orders two entries: negative when a sorts before b,
// positive when after, zero when they are equivalent.
type CompareFunc func(a, b *Entry) int

// SortType is the closed set of built-in orderings.
type SortType int

const (
	SortByName SortType = iota
	SortByDate
)

// ParseSortType maps "name" and "date" to a SortType.
func ParseSortType(s string) (SortType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "filename":
		return SortByName, nil
	case "date":
		return SortByDate, nil
	}
	return SortByName, fmt.Errorf("%w: %q", ErrUnknownSortType, s)
}

func (s SortType) String() string {
	switch s {
	case SortByName:
		return "name"
	case SortByDate:
		return "date"
	}
	return "unknown"
}

// Compare returns the comparison function implementing the sort type.
func (s SortType) Compare() (CompareFunc, error) {
	switch s {
	case SortByName:
		return CompareByName, nil
	case SortByDate:
		return CompareByDate, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownSortType, int(s))
}

// CompareByName orders entries by display name, ignoring case.
func CompareByName(a, b *Entry) int {
	return strings.Compare(strings.ToLower(a.Name()), strings.ToLower(b.Name()))
}

// CompareByDate orders entries by ascending modification time.
// Entries modified at the same instant are equivalent.
func CompareByDate(a, b *Entry) int {
	ta, tb := a.ModTime(), b.ModTime()
	switch {
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	}
	return 0
}
