// Package xlsx extracts pictures embedded in XLSX (Office Open XML
// Spreadsheet) workbooks and writes masked pictures back. It reads the zip
// container and the SpreadsheetML/DrawingML parts directly.
package xlsx

import "encoding/xml"

// XML namespaces used in XLSX files.
const (
	nsSpreadsheetML = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsDrawingML     = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsSpreadsheetDr = "http://schemas.openxmlformats.org/drawingml/2006/spreadsheetDrawing"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// emuPerPixel converts DrawingML EMUs (English Metric Units) to pixels at
// the conventional 96 DPI.
const emuPerPixel = 9525

// workbookXML represents the xl/workbook.xml file structure.
type workbookXML struct {
	XMLName xml.Name  `xml:"workbook"`
	Sheets  sheetsXML `xml:"sheets"`
}

type sheetsXML struct {
	Sheet []sheetRefXML `xml:"sheet"`
}

type sheetRefXML struct {
	Name    string `xml:"name,attr"`
	SheetID string `xml:"sheetId,attr"`
	RID     string `xml:"id,attr"` // r:id attribute for relationship
}

// worksheetXML is parsed only for the sheet's drawing reference.
type worksheetXML struct {
	XMLName xml.Name       `xml:"worksheet"`
	Drawing *drawingRefXML `xml:"drawing"`
}

type drawingRefXML struct {
	RID string `xml:"id,attr"`
}

// wsDrXML represents a xl/drawings/drawing*.xml file structure.
type wsDrXML struct {
	XMLName  xml.Name            `xml:"wsDr"`
	TwoCell  []twoCellAnchorXML  `xml:"twoCellAnchor"`
	OneCell  []oneCellAnchorXML  `xml:"oneCellAnchor"`
	Absolute []absoluteAnchorXML `xml:"absoluteAnchor"`
}

// markerXML is an xdr:from / xdr:to cell marker with EMU offsets.
type markerXML struct {
	Col    int   `xml:"col"`
	ColOff int64 `xml:"colOff"`
	Row    int   `xml:"row"`
	RowOff int64 `xml:"rowOff"`
}

type extXML struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

type posXML struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type twoCellAnchorXML struct {
	From markerXML `xml:"from"`
	To   markerXML `xml:"to"`
	Pic  *picXML   `xml:"pic"`
}

type oneCellAnchorXML struct {
	From markerXML `xml:"from"`
	Ext  extXML    `xml:"ext"`
	Pic  *picXML   `xml:"pic"`
}

type absoluteAnchorXML struct {
	Pos posXML  `xml:"pos"`
	Ext extXML  `xml:"ext"`
	Pic *picXML `xml:"pic"`
}

type picXML struct {
	BlipFill blipFillXML `xml:"blipFill"`
}

type blipFillXML struct {
	Blip blipXML `xml:"blip"`
}

type blipXML struct {
	Embed string `xml:"embed,attr"` // r:embed relationship id
}

// relationshipsXML represents .rels files.
type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}
