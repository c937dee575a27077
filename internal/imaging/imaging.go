// Package imaging loads, decodes and writes the raster images the pipeline
// works on. Decoders for the formats commonly found inside workbooks are
// registered here in one place: PNG, JPEG and GIF from the standard library
// plus BMP and TIFF from golang.org/x/image.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// Load reads and decodes the image at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes an in-memory image in any registered format.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Save writes img to path, choosing the encoder from the file extension.
// PNG, JPEG and BMP are written natively; anything else falls back to PNG
// bytes under the given name.
func Save(path string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return imgio.Save(path, img, imgio.JPEGEncoder(95))
	case ".bmp":
		return imgio.Save(path, img, imgio.BMPEncoder())
	default:
		return imgio.Save(path, img, imgio.PNGEncoder())
	}
}

// EncodeFor encodes img in the format implied by ext (with or without the
// leading dot), defaulting to PNG. Used when replacing a workbook media part
// whose original format must be preserved.
func EncodeFor(ext string, img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "jpg", "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	}
	return buf.Bytes(), nil
}
