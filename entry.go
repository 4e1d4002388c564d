package ristretto

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// StatFunc returns the last modification time of the resource behind uri.
type StatFunc func(uri string) (time.Time, error)

// Entry is one image resource tracked by a Collection.
// Its identity is the resource identifier, compared case-insensitively.
type Entry struct {
	uri  string
	name string

	stat     StatFunc
	modTime  time.Time
	statDone bool
}

// NewEntry creates an entry whose metadata is read from the local filesystem.
func NewEntry(uri string) *Entry {
	return NewEntryFunc(uri, fileModTime)
}

// NewEntryFunc creates an entry using stat as its metadata provider.
func NewEntryFunc(uri string, stat StatFunc) *Entry {
	if uri == "" {
		return nil
	}
	return &Entry{
		uri:  uri,
		name: displayName(uri),
		stat: stat,
	}
}

// URI returns the resource identifier.
func (e *Entry) URI() string { return e.uri }

// Name returns the display name, the base name of the resource.
func (e *Entry) Name() string { return e.name }

// ModTime returns the last modification time. It is queried on first use
// and cached afterwards; a failed query yields the zero time.
func (e *Entry) ModTime() time.Time {
	if !e.statDone {
		e.statDone = true
		if e.stat != nil {
			if t, err := e.stat(e.uri); err == nil {
				e.modTime = t
			}
		}
	}
	return e.modTime
}

// Equal reports whether both entries refer to the same resource.
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}
	return sameURI(e.uri, other.uri)
}

func (e *Entry) String() string { return e.uri }

func sameURI(a, b string) bool {
	return strings.EqualFold(a, b)
}

func displayName(uri string) string {
	if u, err := url.Parse(uri); err == nil && u.Scheme != "" && u.Host != "" {
		return path.Base(u.Path)
	}
	return filepath.Base(uri)
}

func fileModTime(uri string) (time.Time, error) {
	fi, err := os.Stat(uri)
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}
