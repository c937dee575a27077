// Package tile runs OCR on images taller than Tesseract comfortably accepts
// by slicing them into overlapping horizontal strips and stitching the
// per-strip tokens back into the original image's coordinate space.
package tile

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/scrubworks/sheetmask/internal/ocr"
)

const (
	// DefaultMaxHeight is the tallest strip submitted to the OCR engine.
	DefaultMaxHeight = 7000

	// DefaultOverlap is how many pixels consecutive strips share, so lines
	// straddling a strip boundary are fully visible in at least one strip.
	DefaultOverlap = 40

	// minStep keeps progress sane if MaxHeight and Overlap are configured
	// pathologically close together.
	minStep = 1000

	// retryScale leaves a 10% margin under the engine's limit when a strip
	// is downscaled for the retry after an engine failure.
	retryScale = 0.9
)

// Slicer submits an image to an OCR engine in strips no taller than
// MaxHeight and merges the results. Strip tokens keep their Tesseract line
// keys untouched; keys are only unique per strip and the merged stream
// inherits that property.
type Slicer struct {
	engine    ocr.Engine
	maxHeight int
	overlap   int
}

// NewSlicer creates a Slicer with the default strip geometry.
func NewSlicer(engine ocr.Engine) *Slicer {
	return &Slicer{engine: engine, maxHeight: DefaultMaxHeight, overlap: DefaultOverlap}
}

// NewSlicerGeometry creates a Slicer with explicit strip geometry, used by
// tests to exercise tiling on small images.
func NewSlicerGeometry(engine ocr.Engine, maxHeight, overlap int) *Slicer {
	return &Slicer{engine: engine, maxHeight: maxHeight, overlap: overlap}
}

// DetectTokens returns the merged token stream for img. Images no taller
// than MaxHeight are submitted in a single call and the engine's output is
// returned verbatim. Taller images are sliced; every strip token's top is
// shifted by the strip's vertical offset before merging. Tokens duplicated
// in the overlap band are not deduplicated.
func (s *Slicer) DetectTokens(ctx context.Context, img image.Image, lang string) ([]ocr.Token, error) {
	bounds := img.Bounds()
	height := bounds.Dy()

	if height <= s.maxHeight {
		return s.engine.DetectTokens(ctx, img, lang)
	}

	step := s.maxHeight - s.overlap
	if step < minStep {
		step = minStep
	}

	var merged []ocr.Token
	for y := 0; y < height; y += step {
		y2 := y + s.maxHeight
		if y2 > height {
			y2 = height
		}

		strip := imaging.Crop(img, image.Rect(bounds.Min.X, bounds.Min.Y+y, bounds.Max.X, bounds.Min.Y+y2))

		tokens, err := s.detectStrip(ctx, strip, lang)
		if err != nil {
			return nil, fmt.Errorf("strip at y=%d: %w", y, err)
		}

		for _, tok := range tokens {
			tok.Box.Y += y
			merged = append(merged, tok)
		}

		if y2 >= height {
			break
		}
	}
	return merged, nil
}

// detectStrip runs the engine on one strip. On failure the strip is
// downscaled once so its height fits the engine's limit with a 10% margin,
// the call is retried, and returned boxes are scaled back up. A second
// failure is fatal for the whole image.
func (s *Slicer) detectStrip(ctx context.Context, strip image.Image, lang string) ([]ocr.Token, error) {
	tokens, err := s.engine.DetectTokens(ctx, strip, lang)
	if err == nil {
		return tokens, nil
	}

	b := strip.Bounds()
	scale := math.Min(1, float64(s.maxHeight)/float64(b.Dy())) * retryScale
	smallW := int(float64(b.Dx()) * scale)
	smallH := int(float64(b.Dy()) * scale)
	if smallW < 1 || smallH < 1 {
		return nil, err
	}

	small := imaging.Resize(strip, smallW, smallH, imaging.Box)
	tokens, retryErr := s.engine.DetectTokens(ctx, small, lang)
	if retryErr != nil {
		return nil, fmt.Errorf("retry after downscale (first error: %v): %w", err, retryErr)
	}

	sx := float64(b.Dx()) / float64(small.Bounds().Dx())
	sy := float64(b.Dy()) / float64(small.Bounds().Dy())
	for i := range tokens {
		tokens[i].Box.X = int(float64(tokens[i].Box.X) * sx)
		tokens[i].Box.Y = int(float64(tokens[i].Box.Y) * sy)
		tokens[i].Box.W = int(float64(tokens[i].Box.W) * sx)
		tokens[i].Box.H = int(float64(tokens[i].Box.H) * sy)
	}
	return tokens, nil
}
