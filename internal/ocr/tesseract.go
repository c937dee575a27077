package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/otiai10/gosseract/v2"
)

// DefaultTimeout bounds a single Tesseract invocation.
const DefaultTimeout = 2 * time.Minute

// Engine converts image pixels into positioned text tokens. Implementations
// may fail with a size or resource error and must be re-callable with a
// downscaled copy of the same image.
type Engine interface {
	DetectTokens(ctx context.Context, img image.Image, lang string) ([]Token, error)
}

// Tesseract is the production Engine backed by the system Tesseract install.
//
// The zero value is usable; NewTesseract applies the default timeout. The
// tessdata prefix is carried per instance rather than as process-global
// state, so concurrent runs with different configurations do not interfere.
type Tesseract struct {
	tessdataPrefix string
	timeout        time.Duration
}

// NewTesseract creates an engine. tessdataPrefix overrides the Tesseract
// training data directory when non-empty. A non-positive timeout selects
// DefaultTimeout.
func NewTesseract(tessdataPrefix string, timeout time.Duration) *Tesseract {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Tesseract{tessdataPrefix: tessdataPrefix, timeout: timeout}
}

// DetectTokens runs word-level OCR on img and returns one token per detected
// word. Coordinates are relative to img's top-left corner.
func (t *Tesseract) DetectTokens(ctx context.Context, img image.Image, lang string) ([]Token, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image for OCR: %w", err)
	}

	timeout := t.timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		tokens []Token
		err    error
	}
	ch := make(chan outcome, 1)
	go func() {
		tokens, err := t.detect(buf.Bytes(), lang)
		ch <- outcome{tokens: tokens, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("OCR call: %w", ctx.Err())
	case out := <-ch:
		return out.tokens, out.err
	}
}

func (t *Tesseract) detect(pngData []byte, lang string) ([]Token, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if t.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.tessdataPrefix); err != nil {
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			return nil, fmt.Errorf("set language: %w", err)
		}
	}
	if err := client.SetImageFromBytes(pngData); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxesVerbose()
	if err != nil {
		return nil, fmt.Errorf("word bounding boxes: %w", err)
	}

	tokens := make([]Token, 0, len(boxes))
	for _, b := range boxes {
		tokens = append(tokens, Token{
			Text: b.Word,
			Box: Box{
				X: b.Box.Min.X,
				Y: b.Box.Min.Y,
				W: b.Box.Dx(),
				H: b.Box.Dy(),
			},
			Confidence: b.Confidence,
			Key:        LineKey{Block: b.BlockNum, Par: b.ParNum, Line: b.LineNum},
		})
	}
	return tokens, nil
}

// Available reports whether a usable Tesseract install was found. Tests use
// it to skip OCR-dependent cases on machines without Tesseract.
func Available() bool {
	defer func() { _ = recover() }()
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version() != ""
}
