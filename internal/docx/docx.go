// Package docx writes WordprocessingML (.docx) packages.
//
// Only the subset needed by the exporter is supported: paragraphs with a
// justification, and runs with bold, italic, strike, underline and size
// properties.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Extension is the file extension of written documents.
const Extension = ".docx"

// Justification is the paragraph alignment.
type Justification string

const (
	JustifyNone   Justification = ""
	JustifyLeft   Justification = "left"
	JustifyCenter Justification = "center"
	JustifyRight  Justification = "right"
	JustifyBoth   Justification = "both"
)

// TextSpace controls whitespace handling of run text.
type TextSpace int

const (
	TextSpaceDefault TextSpace = iota
	TextSpacePreserve
)

// ParagraphProperties contains paragraph-level formatting.
type ParagraphProperties struct {
	Justification Justification
}

// RunProperties contains character-level formatting.
type RunProperties struct {
	Bold           bool
	Italic         bool
	Strike         bool
	Underline      bool
	UnderlineColor string // hex RGB, e.g. "000000"; "auto" when empty
	Size           int    // font size in half-points, 0 = inherit
}

// Run is a span of text sharing one set of run properties.
type Run struct {
	Properties RunProperties
	Text       string
	Space      TextSpace
}

// Paragraph is a document paragraph.
type Paragraph struct {
	Properties ParagraphProperties
	Runs       []Run
}

// Document accumulates paragraphs until it is written.
type Document struct {
	title      string
	paragraphs []Paragraph
}

// New creates an empty document.
func New() *Document {
	return &Document{
		paragraphs: make([]Paragraph, 0),
	}
}

// StartParagraph appends a new paragraph; following runs are added to it.
func (d *Document) StartParagraph(props ParagraphProperties) {
	d.paragraphs = append(d.paragraphs, Paragraph{Properties: props})
}

// AddRun appends a run to the current paragraph, starting one if needed.
func (d *Document) AddRun(props RunProperties, text string, space TextSpace) {
	if len(d.paragraphs) == 0 {
		d.StartParagraph(ParagraphProperties{})
	}
	p := &d.paragraphs[len(d.paragraphs)-1]
	p.Runs = append(p.Runs, Run{Properties: props, Text: text, Space: space})
}

// SetTitle sets the title recorded in the package core properties.
func (d *Document) SetTitle(title string) {
	d.title = title
}

// Paragraphs returns the accumulated paragraphs.
func (d *Document) Paragraphs() []Paragraph {
	return d.paragraphs
}

// Write serializes the document as a .docx package.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(relationshipsXML)},
		{"docProps/core.xml", d.coreXML()},
		{"word/document.xml", d.documentXML()},
	}

	for _, part := range parts {
		fw, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("failed to create part %s: %w", part.name, err)
		}
		if _, err := fw.Write(part.data); err != nil {
			return fmt.Errorf("failed to write part %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish package: %w", err)
	}
	return nil
}

// WriteFile writes the document to path. The package is written to a
// temporary file next to path and renamed over it, so an existing file is
// replaced only by a complete document.
func (d *Document) WriteFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ppr2docx-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := d.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

	nsWordprocessing = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

	contentTypesXML = xmlHeader +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
		`</Types>`

	relationshipsXML = xmlHeader +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
		`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
		`</Relationships>`
)

func (d *Document) coreXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">`)
	if d.title != "" {
		buf.WriteString("<dc:title>")
		escape(&buf, d.title)
		buf.WriteString("</dc:title>")
	}
	buf.WriteString("</cp:coreProperties>")
	return buf.Bytes()
}

func (d *Document) documentXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<w:document xmlns:w="` + nsWordprocessing + `"><w:body>`)
	for _, p := range d.paragraphs {
		writeParagraph(&buf, p)
	}
	buf.WriteString("<w:sectPr/></w:body></w:document>")
	return buf.Bytes()
}

func writeParagraph(buf *bytes.Buffer, p Paragraph) {
	buf.WriteString("<w:p>")
	if p.Properties.Justification != JustifyNone {
		buf.WriteString(`<w:pPr><w:jc w:val="`)
		escape(buf, string(p.Properties.Justification))
		buf.WriteString(`"/></w:pPr>`)
	}
	for _, r := range p.Runs {
		writeRun(buf, r)
	}
	buf.WriteString("</w:p>")
}

// writeRun emits a run; rPr children follow the schema order.
func writeRun(buf *bytes.Buffer, r Run) {
	buf.WriteString("<w:r>")

	props := r.Properties
	if props != (RunProperties{}) {
		buf.WriteString("<w:rPr>")
		if props.Bold {
			buf.WriteString("<w:b/>")
		}
		if props.Italic {
			buf.WriteString("<w:i/>")
		}
		if props.Strike {
			buf.WriteString("<w:strike/>")
		}
		if props.Size > 0 {
			size := strconv.Itoa(props.Size)
			buf.WriteString(`<w:sz w:val="` + size + `"/><w:szCs w:val="` + size + `"/>`)
		}
		if props.Underline {
			color := props.UnderlineColor
			if color == "" {
				color = "auto"
			}
			buf.WriteString(`<w:u w:val="single" w:color="`)
			escape(buf, color)
			buf.WriteString(`"/>`)
		}
		buf.WriteString("</w:rPr>")
	}

	if r.Space == TextSpacePreserve {
		buf.WriteString(`<w:t xml:space="preserve">`)
	} else {
		buf.WriteString("<w:t>")
	}
	escape(buf, r.Text)
	buf.WriteString("</w:t></w:r>")
}

func escape(buf *bytes.Buffer, s string) {
	// bytes.Buffer writes never fail.
	_ = xml.EscapeText(buf, []byte(s))
}
