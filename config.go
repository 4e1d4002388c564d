package ristretto

import (
	"errors"
	"fmt"
	"runtime"
	"time"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Config holds the viewer settings. It is also the Settings provider
// consulted by cursors for wrapping.
type Config struct {
	WrapImages       bool
	SortType         SortType
	SlideshowTimeout time.Duration
	Slideshow        bool

	Fit   bool
	Scale float64

	ShowThumbnails bool
	ThumbnailSize  int

	Watch     bool
	Recursive bool
	Workers   int
}

// DefaultConfig returns the settings used when no flag overrides them.
func DefaultConfig() *Config {
	return &Config{
		SortType:         SortByName,
		SlideshowTimeout: 5 * time.Second,
		Fit:              true,
		Scale:            1,
		ShowThumbnails:   true,
		ThumbnailSize:    64,
		Workers:          runtime.NumCPU(),
	}
}

// Wrap implements Settings.
func (c *Config) Wrap() bool {
	return c.WrapImages
}

// Validate checks the settings and normalizes the worker count.
func (c *Config) Validate() error {
	if _, err := c.SortType.Compare(); err != nil {
		return err
	}
	if c.SlideshowTimeout < 100*time.Millisecond {
		return fmt.Errorf("slideshow timeout too short: %v", c.SlideshowTimeout)
	}
	if !c.Fit && !(c.Scale > 0) {
		return ErrInvalidScale
	}
	if c.ShowThumbnails && c.ThumbnailSize < 16 {
		return errors.New("thumbnail size should be at least 16 pixels")
	}
	if c.Workers <= 0 || c.Workers > maxWorkers {
		c.Workers = runtime.NumCPU()
	}
	return nil
}
