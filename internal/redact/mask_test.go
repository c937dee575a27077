package redact

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"
)

// newTestImage makes a solid white RGBA image.
func newTestImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestApplyRedactions_FillsBox(t *testing.T) {
	img := newTestImage(100, 50)
	boxes := []RedactionBox{{X: 10, Y: 10, W: 20, H: 10, Label: LabelSensitive}}

	out := ApplyRedactions(img, boxes, color.Black)

	samples := []struct {
		x, y   int
		inside bool
	}{
		{10, 10, true},
		{29, 19, true},
		{20, 15, true},
		{9, 10, false},
		{30, 10, false},
		{10, 20, false},
		{0, 0, false},
	}
	black := color.RGBA{0, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}
	for _, s := range samples {
		got := out.RGBAAt(s.x, s.y)
		want := white
		if s.inside {
			want = black
		}
		if got != want {
			t.Errorf("pixel (%d,%d): got %v, want %v", s.x, s.y, got, want)
		}
	}

	// The input is untouched.
	if img.RGBAAt(15, 15) != white {
		t.Error("input image was mutated")
	}
}

func TestApplyRedactions_ClipsToImage(t *testing.T) {
	img := newTestImage(100, 50)
	boxes := []RedactionBox{
		{X: 90, Y: 40, W: 30, H: 30, Label: LabelSensitive}, // overhangs right and bottom
		{X: 200, Y: 0, W: 10, H: 10, Label: LabelSensitive}, // entirely outside
	}

	out := ApplyRedactions(img, boxes, color.Black)
	if got := out.RGBAAt(99, 49); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("corner pixel: got %v, want black", got)
	}
	if got := out.RGBAAt(89, 39); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("pixel outside box: got %v, want white", got)
	}
}

func TestApplyRedactions_Idempotent(t *testing.T) {
	img := newTestImage(60, 40)
	boxes := []RedactionBox{{X: 5, Y: 5, W: 20, H: 10, Label: LabelSensitive}}

	once := ApplyRedactions(img, boxes, color.Black)
	twice := ApplyRedactions(once, boxes, color.Black)

	if !bytes.Equal(pngBytes(t, once), pngBytes(t, twice)) {
		t.Error("re-applying the same boxes changed the image")
	}
}

func TestApplyRedactions_NilFillIsBlack(t *testing.T) {
	img := newTestImage(20, 20)
	out := ApplyRedactions(img, []RedactionBox{{X: 0, Y: 0, W: 20, H: 20}}, nil)
	if got := out.RGBAAt(10, 10); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("fill: got %v, want black", got)
	}
}

func TestApplyRedactions_NoBoxesCopies(t *testing.T) {
	img := newTestImage(20, 20)
	out := ApplyRedactions(img, nil, color.Black)
	if !bytes.Equal(pngBytes(t, img), pngBytes(t, out)) {
		t.Error("copy differs from input")
	}
	out.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	if img.RGBAAt(0, 0) != (color.RGBA{255, 255, 255, 255}) {
		t.Error("output shares pixels with input")
	}
}
