/*
Package ristretto is an image viewer library. It keeps an ordered collection of
images, cursors navigating it and a viewport fitting the current image into the
window.

The package comes with a command line interface opening a viewer window.
To check the supported commands type:

	$ ristretto --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"

		"github.com/esimov/ristretto"
	)

	func main() {
		cfg := ristretto.DefaultConfig()
		c := ristretto.NewCollection(cfg)
		cur := c.NewCursor()

		loader := ristretto.NewLoader(cfg)
		if err := loader.Open(c, cur, "pictures/"); err != nil {
			fmt.Printf("Error loading the images: %s", err.Error())
			return
		}
		for cur.Next() {
			fmt.Println(ristretto.Title(cur))
		}
	}

All types of the package are meant to be used from a single goroutine, the
one running the user interface. Background work, like rendering thumbnails
or monitoring directories, reports its results on channels for that goroutine
to apply.
*/
package ristretto
