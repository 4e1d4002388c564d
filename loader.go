package ristretto

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/esimov/ristretto/utils"
)

// ErrNoImages is returned when a directory holds no image file.
var ErrNoImages = errors.New("no images found")

// Loader fills a collection from local files, directories and URLs.
type Loader struct {
	// Recursive descends into subdirectories.
	Recursive bool
	// Workers bounds the number of files sniffed concurrently.
	Workers int
	// Progress, when set, is called with each source before it gets opened.
	Progress func(src string)

	dirs []string
	temp []string
}

// NewLoader returns a loader configured from cfg.
func NewLoader(cfg *Config) *Loader {
	return &Loader{
		Recursive: cfg.Recursive,
		Workers:   cfg.Workers,
	}
}

// Dirs returns the directories scanned so far.
func (l *Loader) Dirs() []string {
	return l.dirs
}

// Scan returns the image files found in dir, in lexical order.
// The directory tree is walked in a separate goroutine while a pool of
// workers checks the content of each regular file.
func (l *Loader) Scan(dir string) ([]string, error) {
	workers := l.Workers
	if workers <= 0 || workers > maxWorkers {
		workers = runtime.NumCPU()
	}

	done := make(chan struct{})
	defer close(done)

	paths, errc := walkDir(done, os.DirFS(dir), dir, l.Recursive)
	found := make(chan string)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			consumer(done, paths, found)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(found)
		wg.Wait()
	}()

	var images []string
	for path := range found {
		images = append(images, path)
	}
	sort.Strings(images)

	if err := <-errc; err != nil {
		return images, err
	}
	return images, nil
}

// consumer reads the path names from the paths channel and forwards the images.
func consumer(done <-chan struct{}, paths <-chan string, found chan<- string) {
	for path := range paths {
		if !isImageFile(path) {
			continue
		}
		select {
		case <-done:
			return
		case found <- path:
		}
	}
}

// walkDir starts a new goroutine to walk the fsys tree and sends the path,
// prefixed with root, of each regular, non hidden file to a new channel.
// Subdirectories are only entered in recursive mode and skipped when they
// cannot be read. It finishes when done gets closed.
func walkDir(done <-chan struct{}, fsys fs.FS, root string, recursive bool) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path != "." && d != nil && d.IsDir() {
					log.Printf("skipping the directory %s: %v", filepath.Join(root, path), err)
					return filepath.SkipDir
				}
				return err
			}
			if d.IsDir() {
				if path != "." && (!recursive || isHidden(d.Name())) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || isHidden(d.Name()) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- filepath.Join(root, filepath.FromSlash(path)):
			}
			return nil
		})
	}()
	return pathChan, errChan
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// AddDir adds the images of dir to the collection and returns their number.
func (l *Loader) AddDir(c *Collection, dir string) (int, error) {
	images, err := l.Scan(dir)
	for _, path := range images {
		c.AddFile(path)
	}
	l.dirs = append(l.dirs, dir)

	if err != nil {
		return len(images), fmt.Errorf("could not read the directory %s: %w", dir, err)
	}
	return len(images), nil
}

// Open loads src and points the cursor at it. A file is loaded together
// with the images next to it, a directory leaves the cursor on its first
// image and a URL is downloaded to a temporary file first.
func (l *Loader) Open(c *Collection, cur *Cursor, src string) error {
	l.progress(src)
	if utils.IsValidUrl(src) {
		return l.openURL(c, cur, src)
	}

	path, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}

	if fi.IsDir() {
		n, err := l.AddDir(c, path)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%s: %w", src, ErrNoImages)
		}
		cur.SetPosition(0)
		return nil
	}

	if !isImageFile(path) {
		return fmt.Errorf("%s: %w", src, utils.ErrNotImage)
	}
	if _, err := l.AddDir(c, filepath.Dir(path)); err != nil {
		log.Printf("could not load the sibling images: %v", err)
	}
	c.AddFile(path)
	cur.FindURI(path)

	return nil
}

// OpenAll loads every source. Files are added on their own, without their
// siblings. The cursor ends up on the first source.
func (l *Loader) OpenAll(c *Collection, cur *Cursor, srcs []string) error {
	if len(srcs) == 1 {
		return l.Open(c, cur, srcs[0])
	}

	var first string
	for _, src := range srcs {
		l.progress(src)
		if utils.IsValidUrl(src) {
			f, err := l.download(src)
			if err != nil {
				return err
			}
			src = f
		} else {
			path, err := filepath.Abs(src)
			if err != nil {
				return err
			}
			fi, err := os.Stat(path)
			if err != nil {
				return err
			}
			if fi.IsDir() {
				if _, err := l.AddDir(c, path); err != nil {
					return err
				}
				continue
			}
			if !isImageFile(path) {
				return fmt.Errorf("%s: %w", src, utils.ErrNotImage)
			}
			src = path
		}
		c.AddFile(src)
		if first == "" {
			first = src
		}
	}

	if c.Count() == 0 {
		return ErrNoImages
	}
	if first == "" || !cur.FindURI(first) {
		cur.SetPosition(0)
	}
	return nil
}

func (l *Loader) progress(src string) {
	if l.Progress != nil {
		l.Progress(src)
	}
}

func (l *Loader) openURL(c *Collection, cur *Cursor, uri string) error {
	path, err := l.download(uri)
	if err != nil {
		return err
	}
	c.AddFile(path)
	cur.FindURI(path)

	return nil
}

func (l *Loader) download(uri string) (string, error) {
	f, err := utils.DownloadImage(uri)
	if err != nil {
		return "", err
	}
	l.temp = append(l.temp, f.Name())
	if err := f.Close(); err != nil {
		log.Printf("could not close the downloaded file: %v", err)
	}
	return f.Name(), nil
}

// Close removes the temporary files of downloaded images.
func (l *Loader) Close() {
	for _, name := range l.temp {
		if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("could not remove the temporary file: %v", err)
		}
	}
	l.temp = nil
}
