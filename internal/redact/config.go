package redact

import "image/color"

// MaskConfig carries the per-run redaction settings. It is immutable after
// construction and shared read-only across every image in a run.
type MaskConfig struct {
	// Lang is the Tesseract language code, e.g. "eng".
	Lang string

	// Padding is the pixel margin added to every redaction box.
	Padding int

	// FillColor paints redacted rectangles. Nil means opaque black.
	FillColor color.Color

	// TessdataPrefix overrides the Tesseract training data directory.
	// Threaded into the engine constructor instead of being process-global
	// state, so runs with different configurations do not interfere.
	TessdataPrefix string
}

// DefaultConfig mirrors the tool's CLI defaults.
func DefaultConfig() MaskConfig {
	return MaskConfig{Lang: "eng", Padding: 4, FillColor: color.Black}
}
