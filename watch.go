package ristretto

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ChangeOp classifies a filesystem change relevant to the collection.
type ChangeOp int

const (
	// ChangeCreated is reported for created or rewritten files.
	ChangeCreated ChangeOp = iota
	// ChangeRemoved is reported for deleted or renamed files.
	ChangeRemoved
)

func (op ChangeOp) String() string {
	if op == ChangeRemoved {
		return "removed"
	}
	return "created"
}

// Change is one filesystem change observed by a Watcher.
type Change struct {
	Op   ChangeOp
	Path string
}

// Watcher monitors directories and reports file changes on a channel.
// The owner of the collection applies them with ApplyChange.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changes chan Change
	errs    chan error
	done    chan struct{}
	stopped chan struct{}
}

// NewWatcher starts monitoring the given directories.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create the directory watcher: %w", err)
	}
	w := &Watcher{
		fsw:     fsw,
		changes: make(chan Change),
		errs:    make(chan error),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	go w.run()

	return w, nil
}

// Add starts monitoring one more directory.
func (w *Watcher) Add(dir string) error {
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("could not watch %s: %w", dir, err)
	}
	return nil
}

// Changes delivers the observed changes. It returns nil on a nil Watcher.
func (w *Watcher) Changes() <-chan Change {
	if w == nil {
		return nil
	}
	return w.changes
}

// Errors delivers the watcher failures. It returns nil on a nil Watcher.
func (w *Watcher) Errors() <-chan error {
	if w == nil {
		return nil
	}
	return w.errs
}

func (w *Watcher) run() {
	defer close(w.stopped)

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			var ch Change
			switch {
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				ch = Change{Op: ChangeRemoved, Path: ev.Name}
			case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
				ch = Change{Op: ChangeCreated, Path: ev.Name}
			default:
				continue
			}
			select {
			case w.changes <- ch:
			case <-w.done:
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			case <-w.done:
				return
			}
		case <-w.done:
			return
		}
	}
}

// Close stops monitoring.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsw.Close()
	<-w.stopped
	return err
}

// ApplyChange mirrors a filesystem change into the collection. Created files
// are added when they hold an image. It reports whether the collection was
// modified.
func ApplyChange(c *Collection, ch Change) bool {
	path := filepath.Clean(ch.Path)
	switch ch.Op {
	case ChangeCreated:
		if e, _ := c.Lookup(path); e != nil || !isImageFile(path) {
			return false
		}
		return c.AddFile(path)
	case ChangeRemoved:
		if e, _ := c.Lookup(path); e == nil {
			return false
		}
		c.RemoveURI(path)
		return true
	}
	return false
}
