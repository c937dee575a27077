package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/scrubworks/sheetmask/internal/imaging"
	"github.com/scrubworks/sheetmask/internal/ocr"
	"github.com/scrubworks/sheetmask/internal/patterns"
	"github.com/scrubworks/sheetmask/internal/redact"
	"github.com/scrubworks/sheetmask/internal/xlsx"
)

type options struct {
	input                 string
	output                string
	sheets                []string
	lang                  string
	tessdata              string
	maskPadding           int
	maskColor             string
	headers               []string
	headersFile           string
	includeDefaultHeaders bool
	patterns              []string
	patternsFile          string
	dumpJSON              string
	ocrTimeout            time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:     "sheetmask",
		Short:   "Redact sensitive text inside images embedded in XLSX workbooks",
		Long: `sheetmask runs OCR over every picture embedded in an XLSX workbook,
matches the recognized lines against a set of sensitive patterns (HTTP
auth headers by default), paints matching lines over with an opaque fill,
and writes a workbook with the masked pictures swapped in.

The output workbook is written only after every image has been masked;
a failure on any image leaves no partial output behind.`,
		Version: fmt.Sprintf("%s (commit %s)", Version, GitCommit),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMask(opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "path to the input .xlsx workbook")
	f.StringVarP(&opts.output, "output", "o", "", "path for the masked output workbook")
	f.StringSliceVar(&opts.sheets, "sheets", nil, `sheet names to process ("all" or empty means every sheet)`)
	f.StringVar(&opts.lang, "lang", "eng", "Tesseract OCR language")
	f.StringVar(&opts.tessdata, "tessdata", "", "Tesseract training data directory, if not the system default")
	f.IntVar(&opts.maskPadding, "mask-padding", 4, "pixel padding added around detected text boxes")
	f.StringVar(&opts.maskColor, "mask-color", "#000000", "redaction fill color as a hex value")
	f.StringSliceVar(&opts.headers, "headers", nil, `header names to mask (e.g. "Authorization,Host,X-API-Key")`)
	f.StringVar(&opts.headersFile, "headers-file", "", "file with header names: JSON array, {\"headers\": [...]}, or one name per line")
	f.BoolVar(&opts.includeDefaultHeaders, "include-default-headers", false, "also apply the built-in sensitive header patterns")
	f.StringSliceVar(&opts.patterns, "patterns", nil, "explicit regex patterns for sensitive lines")
	f.StringVar(&opts.patternsFile, "patterns-file", "", "JSON file with {\"patterns\": [...]} or [...]")
	f.StringVar(&opts.dumpJSON, "dump-json", "", "optional path for an OCR + redaction metadata report")
	f.DurationVar(&opts.ocrTimeout, "ocr-timeout", ocr.DefaultTimeout, "timeout for a single OCR call")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	cmd.AddCommand(newSampleCmd())
	return cmd
}

// reportEntry is one image's record in the --dump-json report.
type reportEntry struct {
	ImageID    string                `json:"image_id"`
	Sheet      string                `json:"sheet"`
	Cell       string                `json:"cell"`
	Original   string                `json:"original"`
	Masked     string                `json:"masked"`
	Redactions []redact.RedactionBox `json:"redactions"`
	OCRText    string                `json:"ocr_text"`
}

func runMask(opts *options) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	ps, err := buildPatternSet(opts)
	if err != nil {
		return err
	}
	fill, err := parseFillColor(opts.maskColor)
	if err != nil {
		return err
	}

	cfg := redact.MaskConfig{
		Lang:           opts.lang,
		Padding:        opts.maskPadding,
		FillColor:      fill,
		TessdataPrefix: opts.tessdata,
	}
	engine := ocr.NewTesseract(cfg.TessdataPrefix, opts.ocrTimeout)
	masker := redact.NewMasker(engine, ps, cfg)

	logger.Info("extracting images from workbook", "input", opts.input)
	extracted, err := xlsx.ExtractImages(opts.input, opts.sheets)
	if err != nil {
		return err
	}
	logger.Info("found images", "count", len(extracted))

	ctx := context.Background()
	replacements := make(map[string][]byte)
	report := make([]reportEntry, 0, len(extracted))

	for _, item := range extracted {
		maskedPath, res, err := masker.MaskImageFile(ctx, item.Path)
		if err != nil {
			return fmt.Errorf("image %s: %w", item.Placement.ImageID, err)
		}

		encoded, err := imaging.EncodeFor(path.Ext(item.Placement.MediaPath), res.Image)
		if err != nil {
			return fmt.Errorf("image %s: %w", item.Placement.ImageID, err)
		}
		replacements[item.Placement.MediaPath] = encoded

		report = append(report, reportEntry{
			ImageID:    item.Placement.ImageID,
			Sheet:      item.Placement.Sheet,
			Cell:       item.Placement.Cell,
			Original:   item.Path,
			Masked:     maskedPath,
			Redactions: res.Boxes,
			OCRText:    res.Text,
		})
		logger.Info("masked image", "image", item.Placement.ImageID, "regions", len(res.Boxes))
	}

	logger.Info("writing masked workbook", "output", opts.output)
	if err := xlsx.WriteMasked(opts.input, opts.output, replacements); err != nil {
		return err
	}

	if opts.dumpJSON != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		if err := os.WriteFile(opts.dumpJSON, data, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		logger.Info("metadata report written", "path", opts.dumpJSON)
	}
	return nil
}

// buildPatternSet picks the pattern source by priority: explicit regex
// beats header names, and a file beats the inline flag of the same kind.
// With nothing specified, the built-in defaults apply.
func buildPatternSet(opts *options) (*patterns.PatternSet, error) {
	switch {
	case opts.patternsFile != "":
		return patterns.FromPatternsFile(opts.patternsFile)
	case len(opts.patterns) > 0:
		return patterns.FromExplicit(trimAll(opts.patterns))
	case opts.headersFile != "":
		return patterns.FromHeadersFile(opts.headersFile, opts.includeDefaultHeaders)
	case len(opts.headers) > 0:
		return patterns.FromHeaderNames(trimAll(opts.headers), opts.includeDefaultHeaders)
	default:
		return patterns.Default(), nil
	}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseFillColor(hex string) (color.Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid mask color %q: %w", hex, err)
	}
	return c, nil
}
