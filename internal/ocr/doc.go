// Package ocr turns image pixels into positioned text tokens using the
// Tesseract OCR engine (via gosseract/v2).
//
// The package exposes the Engine interface so that callers such as the tile
// slicer and the redaction pipeline can be exercised against a mock in tests.
// The production implementation is Tesseract, which requires the Tesseract
// library to be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Tokens
//
// DetectTokens returns word-level tokens from Tesseract's verbose bounding
// box output. Each token carries its pixel bounding box, a confidence score
// (0-100, negative meaning the region is not believed to be real text), and
// a LineKey built from Tesseract's block/paragraph/line numbering. LineKeys
// are unique only within a single DetectTokens call; callers stitching
// multiple calls together must not assume global uniqueness.
//
// # Timeouts
//
// Tesseract itself has no cancellation hooks, so every call is bounded by a
// timeout and the worker goroutine is abandoned if it fires. A hung engine
// call therefore fails the image instead of blocking the pipeline forever.
package ocr
