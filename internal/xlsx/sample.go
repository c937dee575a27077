package xlsx

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
)

// Static parts of the single-sheet sample workbook. The drawing anchors the
// picture at B3 with a one-cell anchor, matching what pasted screenshots
// typically look like.
const (
	sampleContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="` + nsContentTypes + `">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Default Extension="png" ContentType="image/png"/>
<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>
<Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>
<Override PartName="/xl/drawings/drawing1.xml" ContentType="application/vnd.openxmlformats-officedocument.drawing+xml"/>
</Types>`

	sampleRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="` + nsPackageRels + `">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>
</Relationships>`

	sampleWorkbook = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="` + nsSpreadsheetML + `" xmlns:r="` + nsRelationships + `">
<sheets><sheet name="Sheet1" sheetId="1" r:id="rId1"/></sheets>
</workbook>`

	sampleWorkbookRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="` + nsPackageRels + `">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
</Relationships>`

	sampleSheet = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="` + nsSpreadsheetML + `" xmlns:r="` + nsRelationships + `">
<sheetData>
<row r="1"><c r="A1" t="inlineStr"><is><t>Sample with image headers</t></is></c></row>
</sheetData>
<drawing r:id="rId1"/>
</worksheet>`

	sampleSheetRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="` + nsPackageRels + `">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/drawing" Target="../drawings/drawing1.xml"/>
</Relationships>`

	sampleDrawingRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="` + nsPackageRels + `">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image1.png"/>
</Relationships>`
)

// sampleDrawing takes the picture extent in EMUs.
const sampleDrawing = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<xdr:wsDr xmlns:xdr="` + nsSpreadsheetDr + `" xmlns:a="` + nsDrawingML + `" xmlns:r="` + nsRelationships + `">
<xdr:oneCellAnchor>
<xdr:from><xdr:col>1</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>2</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:from>
<xdr:ext cx="%d" cy="%d"/>
<xdr:pic>
<xdr:nvPicPr><xdr:cNvPr id="1" name="Picture 1"/><xdr:cNvPicPr/></xdr:nvPicPr>
<xdr:blipFill><a:blip r:embed="rId1"/><a:stretch><a:fillRect/></a:stretch></xdr:blipFill>
<xdr:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></xdr:spPr>
</xdr:pic>
<xdr:clientData/>
</xdr:oneCellAnchor>
</xdr:wsDr>`

// WriteSampleWorkbook writes a minimal single-sheet workbook with the given
// PNG embedded at B3. Used by the sample subcommand and by tests that need
// a real workbook fixture.
func WriteSampleWorkbook(outputPath string, pngData []byte, widthPx, heightPx int) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating sample workbook: %w", err)
	}
	defer out.Close()

	cx := int64(widthPx) * emuPerPixel
	cy := int64(heightPx) * emuPerPixel

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(sampleContentTypes)},
		{"_rels/.rels", []byte(sampleRootRels)},
		{"xl/workbook.xml", []byte(sampleWorkbook)},
		{"xl/_rels/workbook.xml.rels", []byte(sampleWorkbookRels)},
		{"xl/worksheets/sheet1.xml", []byte(sampleSheet)},
		{"xl/worksheets/_rels/sheet1.xml.rels", []byte(sampleSheetRels)},
		{"xl/drawings/drawing1.xml", []byte(fmt.Sprintf(sampleDrawing, cx, cy, cx, cy))},
		{"xl/drawings/_rels/drawing1.xml.rels", []byte(sampleDrawingRels)},
		{"xl/media/image1.png", pngData},
	}

	zw := zip.NewWriter(out)
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("writing part %s: %w", p.name, err)
		}
		if _, err := w.Write(p.data); err != nil {
			return fmt.Errorf("writing part %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing sample workbook: %w", err)
	}
	return out.Close()
}
