package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"gioui.org/app"
	"github.com/esimov/ristretto"
	"github.com/esimov/ristretto/utils"
	"golang.org/x/term"
)

const HelpBanner = `
┬─┐┬┌─┐┌┬┐┬─┐┌─┐┌┬┐┌┬┐┌─┐
├┬┘│└─┐ │ ├┬┘├┤  │  │ │ │
┴└─┴└─┘ ┴ ┴└─└─┘ ┴  ┴ └─┘

Image viewer.
    Version: %s

Usage: ristretto [flags] <file|directory|url|->...

`

// pipeName is the file name that indicates the image paths are read from stdin.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	wrap      = flag.Bool("wrap", false, "Wrap around when moving past the first or last image")
	sortType  = flag.String("sort", "name", "Sort images by name or date")
	timeout   = flag.Int("timeout", 5, "Slideshow timeout in seconds")
	slideshow = flag.Bool("slideshow", false, "Start the slideshow")
	scale     = flag.Float64("scale", 1, "Initial zoom factor (disables fit mode)")
	fit       = flag.Bool("fit", true, "Fit the image into the window")
	thumbs    = flag.Bool("thumbs", true, "Show the thumbnail strip")
	thumbSize = flag.Int("thumbsize", 64, "Thumbnail size in pixels")
	watch     = flag.Bool("watch", false, "Monitor the opened directories for changes")
	recursive = flag.Bool("r", false, "Load directories recursively")
	workers   = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
	list      = flag.Bool("list", false, "Print the sorted image list and exit")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		log.Fatal(utils.DecorateText("\nPlease provide an image, a directory or an url to open!", utils.ErrorMessage))
	}

	cfg, err := configFromFlags()
	if err != nil {
		log.Fatalf(utils.DecorateText("Invalid settings: %v", utils.ErrorMessage), err)
	}

	srcs := flag.Args()
	if len(srcs) == 1 && srcs[0] == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			log.Fatal(utils.DecorateText("`-` should be used with a pipe for stdin", utils.ErrorMessage))
		}
		if srcs, err = readPaths(os.Stdin); err != nil {
			log.Fatalf(utils.DecorateText("Could not read the image list: %v", utils.ErrorMessage), err)
		}
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("☕ RISTRETTO", utils.StatusMessage),
		utils.DecorateText("is loading the images...", utils.DefaultMessage))
	spinner := utils.NewSpinner(spinnerText, time.Millisecond*200, true)

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		spinner.RestoreCursor()
		os.Exit(1)
	}()

	c := ristretto.NewCollection(cfg)
	if err := c.SetSortType(cfg.SortType); err != nil {
		log.Fatal(err)
	}
	cur := c.NewCursor()
	loader := ristretto.NewLoader(cfg)
	loader.Progress = func(src string) {
		spinner.SetMessage(fmt.Sprintf("%s %s",
			utils.DecorateText("☕ RISTRETTO", utils.StatusMessage),
			utils.DecorateText("is loading "+src, utils.DefaultMessage)))
	}

	now := time.Now()
	spinner.Start()
	err = loader.OpenAll(c, cur, srcs)
	if err != nil {
		spinner.StopMsg = fmt.Sprintf("%s %s\n",
			utils.DecorateText("☕ RISTRETTO", utils.StatusMessage),
			utils.DecorateText("failed to load the images ✘", utils.ErrorMessage))
		spinner.Stop()
		loader.Close()
		log.Fatalf(utils.DecorateText("\nReason: %v", utils.DefaultMessage), err)
	}
	spinner.StopMsg = fmt.Sprintf("%s %s\n",
		utils.DecorateText("☕ RISTRETTO", utils.StatusMessage),
		utils.DecorateText(fmt.Sprintf("loaded %d images ✔", c.Count()), utils.SuccessMessage))
	spinner.Stop()
	fmt.Fprintf(os.Stderr, "Loading time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))

	if *list {
		printList(os.Stdout, c, cfg.SortType)
		loader.Close()
		return
	}

	view := ristretto.NewView(cur, cfg)

	var th *ristretto.Thumbnailer
	if cfg.ShowThumbnails {
		th = ristretto.NewThumbnailer(c, cfg.ThumbnailSize, cfg.Workers)
	}

	var w *ristretto.Watcher
	if cfg.Watch {
		if w, err = ristretto.NewWatcher(loader.Dirs()...); err != nil {
			log.Printf(utils.DecorateText("Directory monitoring disabled: %v", utils.ErrorMessage), err)
			w = nil
		}
	}

	if cfg.Slideshow {
		view.Do(ristretto.ActionToggleSlideshow)
	}

	go func() {
		gui := ristretto.NewGUI(view, th, w)
		err := gui.Run()

		view.Close()
		if th != nil {
			th.Close()
		}
		if w != nil {
			w.Close()
		}
		loader.Close()

		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// configFromFlags builds the viewer settings out of the command line flags.
func configFromFlags() (*ristretto.Config, error) {
	st, err := ristretto.ParseSortType(*sortType)
	if err != nil {
		return nil, err
	}

	cfg := ristretto.DefaultConfig()
	cfg.WrapImages = *wrap
	cfg.SortType = st
	cfg.SlideshowTimeout = time.Duration(*timeout) * time.Second
	cfg.Slideshow = *slideshow
	cfg.Fit = *fit
	cfg.Scale = *scale
	cfg.ShowThumbnails = *thumbs
	cfg.ThumbnailSize = *thumbSize
	cfg.Watch = *watch
	cfg.Recursive = *recursive
	cfg.Workers = *workers

	// An explicit zoom factor takes precedence over the default fit mode.
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "scale" {
			cfg.Fit = false
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readPaths reads newline separated image paths, skipping blank lines.
func readPaths(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New("no image paths on stdin")
	}
	return paths, nil
}

// printList writes the collection in its sorted order.
func printList(w io.Writer, c *ristretto.Collection, st ristretto.SortType) {
	for i, e := range c.Entries() {
		switch st {
		case ristretto.SortByDate:
			fmt.Fprintf(w, "%4d  %s  %s\n", i+1, e.ModTime().Format("2006-01-02 15:04:05"), e.URI())
		default:
			fmt.Fprintf(w, "%4d  %s\n", i+1, e.URI())
		}
	}
}
