package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"testing"
)

func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 7 % 256), uint8(y * 11 % 256), 128, 255})
		}
	}
	return img
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	src := gradientImage(32, 24)

	tests := []struct {
		name     string
		lossless bool
	}{
		{"out.png", true},
		{"out.bmp", true},
		{"out.jpg", false},
		{"noext", true}, // falls back to PNG bytes
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := Save(path, src); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Bounds() != src.Bounds() {
				t.Fatalf("bounds: got %v, want %v", got.Bounds(), src.Bounds())
			}
			if tt.lossless {
				if !pixelsEqual(got, src) {
					t.Error("pixels changed across roundtrip")
				}
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDecode_Garbage(t *testing.T) {
	if _, err := Decode([]byte("not an image")); err == nil {
		t.Fatal("expected error for invalid bytes")
	}
}

func TestEncodeFor(t *testing.T) {
	src := gradientImage(16, 16)

	tests := []struct {
		ext  string
		want string // format name reported by image.Decode
	}{
		{".png", "png"},
		{"png", "png"},
		{".jpg", "jpeg"},
		{"jpeg", "jpeg"},
		{".JPG", "jpeg"},
		{".gif", "png"}, // unhandled formats fall back to PNG
		{"", "png"},
	}
	for _, tt := range tests {
		data, err := EncodeFor(tt.ext, src)
		if err != nil {
			t.Fatalf("EncodeFor(%q): %v", tt.ext, err)
		}
		img, err := Decode(data)
		if err != nil {
			t.Fatalf("decode EncodeFor(%q) output: %v", tt.ext, err)
		}
		if img.Bounds() != src.Bounds() {
			t.Errorf("EncodeFor(%q): bounds %v, want %v", tt.ext, img.Bounds(), src.Bounds())
		}
		if got := sniffFormat(t, data); got != tt.want {
			t.Errorf("EncodeFor(%q): format %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func sniffFormat(t *testing.T, data []byte) string {
	t.Helper()
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("sniff format: %v", err)
	}
	return format
}

func pixelsEqual(a, b image.Image) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	ra := image.NewRGBA(a.Bounds())
	rb := image.NewRGBA(b.Bounds())
	draw.Draw(ra, ra.Bounds(), a, a.Bounds().Min, draw.Src)
	draw.Draw(rb, rb.Bounds(), b, b.Bounds().Min, draw.Src)
	for i := range ra.Pix {
		if ra.Pix[i] != rb.Pix[i] {
			return false
		}
	}
	return true
}
