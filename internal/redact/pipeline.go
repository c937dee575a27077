package redact

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/scrubworks/sheetmask/internal/imaging"
	"github.com/scrubworks/sheetmask/internal/ocr"
	"github.com/scrubworks/sheetmask/internal/patterns"
	"github.com/scrubworks/sheetmask/internal/tile"
)

// Result holds everything one masking pass produces for one image.
type Result struct {
	// Image is the masked copy of the input.
	Image *image.RGBA

	// Boxes are the redaction rectangles that were applied.
	Boxes []RedactionBox

	// Text is the reconstructed transcript, lines joined with newlines in
	// ascending line-key order.
	Text string

	// Tokens are the real-text tokens the lines were assembled from, with
	// their image-space boxes.
	Tokens []ocr.Token
}

// Masker runs the full detection and redaction pipeline for one run's
// pattern set and configuration. It is safe to reuse across images.
type Masker struct {
	slicer *tile.Slicer
	ps     *patterns.PatternSet
	cfg    MaskConfig
}

// NewMasker wires an OCR engine, a pattern set and a config into a pipeline.
func NewMasker(engine ocr.Engine, ps *patterns.PatternSet, cfg MaskConfig) *Masker {
	return &Masker{slicer: tile.NewSlicer(engine), ps: ps, cfg: cfg}
}

// MaskImage runs a single OCR pass over img and returns the masked image,
// the applied boxes and the transcript. The token stream is detected once
// and feeds both outputs.
func (m *Masker) MaskImage(ctx context.Context, img image.Image) (*Result, error) {
	stream, err := m.slicer.DetectTokens(ctx, img, m.cfg.Lang)
	if err != nil {
		return nil, fmt.Errorf("detect tokens: %w", err)
	}

	var kept []ocr.Token
	for _, tok := range stream {
		if realText(tok) {
			kept = append(kept, tok)
		}
	}

	lines := AssembleLines(stream)
	boxes := DetectRegions(lines, m.ps, m.cfg.Padding)
	masked := ApplyRedactions(img, boxes, m.cfg.FillColor)

	return &Result{
		Image:  masked,
		Boxes:  boxes,
		Text:   Transcript(lines),
		Tokens: kept,
	}, nil
}

// MaskImageFile loads the image at path, masks it, and writes the masked
// copy next to the original as "<base>.masked<ext>". It returns the output
// path and the masking result.
func (m *Masker) MaskImageFile(ctx context.Context, path string) (string, *Result, error) {
	img, err := imaging.Load(path)
	if err != nil {
		return "", nil, err
	}

	res, err := m.MaskImage(ctx, img)
	if err != nil {
		return "", nil, fmt.Errorf("mask %s: %w", path, err)
	}

	ext := filepath.Ext(path)
	outPath := strings.TrimSuffix(path, ext) + ".masked" + ext
	if err := imaging.Save(outPath, res.Image); err != nil {
		return "", nil, fmt.Errorf("write masked image: %w", err)
	}
	return outPath, res, nil
}
