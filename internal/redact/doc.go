// Package redact implements the sensitive-region detection and redaction
// pipeline: OCR tokens are grouped into logical lines, each line is matched
// against a pattern set, matching lines are merged into padded redaction
// rectangles, and the rectangles are burned into the image with an opaque
// fill.
//
// Masking happens at line granularity rather than per matched token. A
// partially matched line never leaks its remaining characters, and the
// result is robust to OCR splitting one word into several tokens.
//
// All stages are pure functions over the token stream except the OCR call
// itself, which Masker delegates to a tile.Slicer so oversized images are
// handled transparently. One OCR pass per image feeds both the transcript
// and the region detection.
package redact
