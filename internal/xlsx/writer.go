package xlsx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteMasked produces the output workbook by streaming every zip entry of
// the input unchanged except the media parts named in replacements, whose
// bytes are substituted. Anchors, formulas and all other content are
// untouched, so picture placement and size survive write-back. The caller
// must only invoke this after every image masked successfully; nothing is
// written incrementally.
func WriteMasked(inputPath, outputPath string, replacements map[string][]byte) error {
	zr, err := zip.OpenReader(inputPath)
	if err != nil {
		return fmt.Errorf("opening workbook %s: %w", inputPath, err)
	}
	defer zr.Close()

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output workbook: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, f := range zr.File {
		w, err := zw.Create(f.Name)
		if err != nil {
			return fmt.Errorf("writing part %s: %w", f.Name, err)
		}

		if data, ok := replacements[f.Name]; ok {
			if _, err := w.Write(data); err != nil {
				return fmt.Errorf("writing masked media %s: %w", f.Name, err)
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("reading part %s: %w", f.Name, err)
		}
		_, err = io.Copy(w, rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("copying part %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing workbook: %w", err)
	}
	return out.Close()
}
