package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/scrubworks/sheetmask/internal/imaging"
)

// ErrUnsupportedAnchor is returned when a picture anchor references image
// data the reader cannot resolve, instead of silently dropping the picture.
var ErrUnsupportedAnchor = errors.New("unsupported picture anchor")

// Placement is the normalized descriptor for one embedded picture: an
// anchor cell (or explicit pixel offset for absolutely positioned pictures)
// plus the picture's pixel dimensions. No drawing-layer anchor objects leak
// past this boundary.
type Placement struct {
	Sheet   string `json:"sheet"`
	Cell    string `json:"cell"`  // anchor cell like "B3"
	OffsetX int    `json:"left"`  // pixel offset from the cell's left edge
	OffsetY int    `json:"top"`   // pixel offset from the cell's top edge
	Width   int    `json:"width"` // decoded pixel width of the picture
	Height  int    `json:"height"`

	// ImageID is "<sheet>#<n>", unique per workbook, n being the 1-based
	// picture index within the sheet.
	ImageID string `json:"image_id"`

	// MediaPath is the zip part backing this picture, e.g.
	// "xl/media/image1.png". Write-back is keyed on it.
	MediaPath string `json:"-"`
}

// ExtractedImage pairs a placement with the temp file holding its pixels.
type ExtractedImage struct {
	Placement Placement
	Path      string
}

// archive holds a workbook's zip parts in memory.
type archive struct {
	parts map[string][]byte
}

func openArchive(filename string) (*archive, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", filename, err)
	}
	defer zr.Close()

	a := &archive{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", f.Name, err)
		}
		a.parts[f.Name] = data
	}
	return a, nil
}

func (a *archive) part(name string) ([]byte, bool) {
	data, ok := a.parts[name]
	return data, ok
}

func (a *archive) xmlPart(name string, v interface{}) error {
	data, ok := a.parts[name]
	if !ok {
		return fmt.Errorf("missing part %s", name)
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// relMap turns a .rels part into an id -> target map. A missing .rels part
// yields an empty map.
func (a *archive) relMap(name string) (map[string]string, error) {
	m := make(map[string]string)
	if _, ok := a.parts[name]; !ok {
		return m, nil
	}
	var rels relationshipsXML
	if err := a.xmlPart(name, &rels); err != nil {
		return nil, err
	}
	for _, r := range rels.Relationship {
		m[r.ID] = r.Target
	}
	return m, nil
}

// pictureRef is the outcome of one anchor extraction strategy.
type pictureRef struct {
	cell    string
	offsetX int
	offsetY int
	embed   string // r:embed relationship id, empty when unresolvable
}

// Anchor extraction strategies, tried in a fixed order per drawing. Each
// returns the pictures it understands; a picture none of them can resolve to
// image data surfaces as ErrUnsupportedAnchor during extraction.
var anchorStrategies = []struct {
	name    string
	collect func(dr *wsDrXML) []pictureRef
}{
	{"twoCellAnchor", collectTwoCell},
	{"oneCellAnchor", collectOneCell},
	{"absoluteAnchor", collectAbsolute},
}

func collectTwoCell(dr *wsDrXML) []pictureRef {
	var refs []pictureRef
	for _, a := range dr.TwoCell {
		if a.Pic == nil {
			continue
		}
		refs = append(refs, pictureRef{
			cell:    cellName(a.From.Col+1, a.From.Row+1),
			offsetX: int(a.From.ColOff / emuPerPixel),
			offsetY: int(a.From.RowOff / emuPerPixel),
			embed:   a.Pic.BlipFill.Blip.Embed,
		})
	}
	return refs
}

func collectOneCell(dr *wsDrXML) []pictureRef {
	var refs []pictureRef
	for _, a := range dr.OneCell {
		if a.Pic == nil {
			continue
		}
		refs = append(refs, pictureRef{
			cell:    cellName(a.From.Col+1, a.From.Row+1),
			offsetX: int(a.From.ColOff / emuPerPixel),
			offsetY: int(a.From.RowOff / emuPerPixel),
			embed:   a.Pic.BlipFill.Blip.Embed,
		})
	}
	return refs
}

func collectAbsolute(dr *wsDrXML) []pictureRef {
	var refs []pictureRef
	for _, a := range dr.Absolute {
		if a.Pic == nil {
			continue
		}
		refs = append(refs, pictureRef{
			cell:    "A1", // no anchor cell; position is the pixel offset
			offsetX: int(a.Pos.X / emuPerPixel),
			offsetY: int(a.Pos.Y / emuPerPixel),
			embed:   a.Pic.BlipFill.Blip.Embed,
		})
	}
	return refs
}

// ExtractImages reads every embedded picture from the selected sheets of
// the workbook at inputPath, writing each picture's bytes to a temp file.
// sheetNames nil, empty or equal to ["all"] selects every sheet; a name not
// present in the workbook is an error.
func ExtractImages(inputPath string, sheetNames []string) ([]ExtractedImage, error) {
	a, err := openArchive(inputPath)
	if err != nil {
		return nil, err
	}

	var wb workbookXML
	if err := a.xmlPart("xl/workbook.xml", &wb); err != nil {
		return nil, err
	}
	wbRels, err := a.relMap("xl/_rels/workbook.xml.rels")
	if err != nil {
		return nil, err
	}

	selected, err := selectSheets(wb.Sheets.Sheet, sheetNames)
	if err != nil {
		return nil, err
	}

	tmpdir, err := os.MkdirTemp("", "sheetmask-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}

	var results []ExtractedImage
	for _, sheet := range selected {
		imgs, err := extractSheetImages(a, wbRels, sheet, tmpdir)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
		results = append(results, imgs...)
	}
	return results, nil
}

func extractSheetImages(a *archive, wbRels map[string]string, sheet sheetRefXML, tmpdir string) ([]ExtractedImage, error) {
	target, ok := wbRels[sheet.RID]
	if !ok {
		return nil, fmt.Errorf("no relationship for sheet id %s", sheet.RID)
	}
	sheetPath := resolveTarget("xl", target)

	var ws worksheetXML
	if err := a.xmlPart(sheetPath, &ws); err != nil {
		return nil, err
	}
	if ws.Drawing == nil {
		return nil, nil // sheet has no drawing layer
	}

	sheetRels, err := a.relMap(relsPathFor(sheetPath))
	if err != nil {
		return nil, err
	}
	drawingTarget, ok := sheetRels[ws.Drawing.RID]
	if !ok {
		return nil, fmt.Errorf("no relationship for drawing id %s", ws.Drawing.RID)
	}
	drawingPath := resolveTarget(path.Dir(sheetPath), drawingTarget)

	var dr wsDrXML
	if err := a.xmlPart(drawingPath, &dr); err != nil {
		return nil, err
	}
	drawingRels, err := a.relMap(relsPathFor(drawingPath))
	if err != nil {
		return nil, err
	}

	var results []ExtractedImage
	idx := 0
	for _, strategy := range anchorStrategies {
		for _, ref := range strategy.collect(&dr) {
			idx++

			if ref.embed == "" {
				return nil, fmt.Errorf("%w: %s picture %d has no image relationship", ErrUnsupportedAnchor, strategy.name, idx)
			}
			mediaTarget, ok := drawingRels[ref.embed]
			if !ok {
				return nil, fmt.Errorf("%w: %s picture %d references unknown relationship %s", ErrUnsupportedAnchor, strategy.name, idx, ref.embed)
			}
			mediaPath := resolveTarget(path.Dir(drawingPath), mediaTarget)
			data, ok := a.part(mediaPath)
			if !ok {
				return nil, fmt.Errorf("%w: missing media part %s", ErrUnsupportedAnchor, mediaPath)
			}

			img, err := imaging.Decode(data)
			if err != nil {
				return nil, fmt.Errorf("media part %s: %w", mediaPath, err)
			}
			bounds := img.Bounds()

			ext := path.Ext(mediaPath)
			tmpPath := filepath.Join(tmpdir, fmt.Sprintf("%s_img%d%s", fileSafe(sheet.Name), idx, ext))
			if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
				return nil, fmt.Errorf("writing temp image: %w", err)
			}

			results = append(results, ExtractedImage{
				Placement: Placement{
					Sheet:     sheet.Name,
					Cell:      ref.cell,
					OffsetX:   ref.offsetX,
					OffsetY:   ref.offsetY,
					Width:     bounds.Dx(),
					Height:    bounds.Dy(),
					ImageID:   fmt.Sprintf("%s#%d", sheet.Name, idx),
					MediaPath: mediaPath,
				},
				Path: tmpPath,
			})
		}
	}
	return results, nil
}

func selectSheets(all []sheetRefXML, names []string) ([]sheetRefXML, error) {
	if len(names) == 0 || (len(names) == 1 && strings.EqualFold(names[0], "all")) {
		return all, nil
	}
	byName := make(map[string]sheetRefXML, len(all))
	for _, s := range all {
		byName[s.Name] = s
	}
	var selected []sheetRefXML
	for _, name := range names {
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("sheet %q not found in workbook", name)
		}
		selected = append(selected, s)
	}
	return selected, nil
}

// resolveTarget resolves a relationship target against the directory of the
// part that declared it. Absolute targets start with "/".
func resolveTarget(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

// relsPathFor returns the .rels part that describes the given part.
func relsPathFor(partPath string) string {
	return path.Join(path.Dir(partPath), "_rels", path.Base(partPath)+".rels")
}

// cellName converts 1-based column and row numbers to an A1 reference.
func cellName(col, row int) string {
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return fmt.Sprintf("%s%d", letters, row)
}

func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, name)
}
