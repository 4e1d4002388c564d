package ristretto

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/ristretto/utils"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// imageExtensions lists the formats with a registered decoder. It is only
// consulted for formats the content sniffer does not recognize.
var imageExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp",
}

// decodeImg decodes the image file found at path, applying the rotation
// stored in its EXIF orientation tag.
func decodeImg(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the image file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("could not close the opened file: %v", err)
		}
	}()

	return decode(file)
}

func decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("could not decode the image: %w", err)
	}
	return img, nil
}

// isImageFile reports whether the file at path holds a decodable image.
// The content is sniffed first; formats the sniffer does not know about
// are accepted when their header parses.
func isImageFile(path string) bool {
	if utils.IsImage(path) {
		return true
	}
	if !utils.Contains(imageExtensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}
	_, _, err := decodeConfig(path)
	return err == nil
}

// decodeConfig returns the dimensions and format name of the image at path
// without decoding the pixels.
func decodeConfig(path string) (image.Config, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", err
	}
	defer file.Close()

	return image.DecodeConfig(file)
}
