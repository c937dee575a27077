package redact

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/clone"
)

// ApplyRedactions returns a copy of img with every box filled solid with
// fill. Boxes are clipped to the image bounds; boxes empty after clipping
// are skipped. Filling is idempotent and order-independent.
func ApplyRedactions(img image.Image, boxes []RedactionBox, fill color.Color) *image.RGBA {
	out := clone.AsRGBA(img)
	if fill == nil {
		fill = color.Black
	}

	src := image.NewUniform(fill)
	for _, b := range boxes {
		rect := image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H).Intersect(out.Bounds())
		if rect.Empty() {
			continue
		}
		draw.Draw(out, rect, src, image.Point{}, draw.Src)
	}
	return out
}
