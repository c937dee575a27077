package ocr

// Box is a pixel rectangle in image space with origin at the top-left.
type Box struct {
	X int `json:"x"` // Left edge
	Y int `json:"y"` // Top edge
	W int `json:"w"` // Width in pixels
	H int `json:"h"` // Height in pixels
}

// Right returns the exclusive right edge of the box.
func (b Box) Right() int { return b.X + b.W }

// Bottom returns the exclusive bottom edge of the box.
func (b Box) Bottom() int { return b.Y + b.H }

// LineKey identifies the logical text line a token belongs to. Tesseract
// numbers blocks, paragraphs and lines independently per invocation, so a
// key is opaque and only meaningful for grouping and ordering tokens from
// one detection call.
type LineKey struct {
	Block int `json:"block"`
	Par   int `json:"par"`
	Line  int `json:"line"`
}

// Less orders keys by block, then paragraph, then line number.
func (k LineKey) Less(o LineKey) bool {
	if k.Block != o.Block {
		return k.Block < o.Block
	}
	if k.Par != o.Par {
		return k.Par < o.Par
	}
	return k.Line < o.Line
}

// Token is one OCR-detected word with its location and line grouping key.
// Confidence below zero marks output Tesseract does not consider real text.
type Token struct {
	Text       string  `json:"text"`
	Box        Box     `json:"box"`
	Confidence float64 `json:"confidence"`
	Key        LineKey `json:"key"`
}
