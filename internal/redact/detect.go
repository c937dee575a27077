package redact

import (
	"github.com/scrubworks/sheetmask/internal/patterns"
)

// LabelSensitive tags every redaction box emitted by the detector.
const LabelSensitive = "sensitive"

// RedactionBox is a pixel rectangle marked for opaque fill. Left and top are
// clipped at zero on emission; right and bottom are clipped to the image
// bounds when the box is applied.
type RedactionBox struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	W     int    `json:"w"`
	H     int    `json:"h"`
	Label string `json:"label"`
}

// DetectRegions matches every line against the pattern set and, for each
// matching line, emits one padded box covering all of the line's tokens.
func DetectRegions(lines []Line, ps *patterns.PatternSet, padding int) []RedactionBox {
	var boxes []RedactionBox
	for _, line := range lines {
		if len(line.Boxes) == 0 || len(ps.FindMatches(line.Text)) == 0 {
			continue
		}

		x1, y1 := line.Boxes[0].X, line.Boxes[0].Y
		x2, y2 := line.Boxes[0].Right(), line.Boxes[0].Bottom()
		for _, b := range line.Boxes[1:] {
			if b.X < x1 {
				x1 = b.X
			}
			if b.Y < y1 {
				y1 = b.Y
			}
			if b.Right() > x2 {
				x2 = b.Right()
			}
			if b.Bottom() > y2 {
				y2 = b.Bottom()
			}
		}

		x1 -= padding
		y1 -= padding
		x2 += padding
		y2 += padding
		if x1 < 0 {
			x1 = 0
		}
		if y1 < 0 {
			y1 = 0
		}

		boxes = append(boxes, RedactionBox{
			X:     x1,
			Y:     y1,
			W:     x2 - x1,
			H:     y2 - y1,
			Label: LabelSensitive,
		})
	}
	return boxes
}
