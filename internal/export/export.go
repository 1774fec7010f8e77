// Package export renders compiled documents into word-processing files.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/roboco-io/ppr2docx/internal/docx"
	"github.com/roboco-io/ppr2docx/internal/ir"
	"github.com/roboco-io/ppr2docx/internal/logging"
)

// ErrExportWrite indicates the output document could not be written.
var ErrExportWrite = errors.New("export write failed")

// DefaultHeadingSizes are heading font sizes in half-points.
var DefaultHeadingSizes = [6]int{36, 24, 20, 18, 16, 14}

// DefaultUnderlineColor is the underline color of styled runs.
const DefaultUnderlineColor = "000000"

// Target is the rich-text document the exporter renders into.
type Target interface {
	// StartParagraph begins a new output paragraph.
	StartParagraph(props docx.ParagraphProperties)

	// AddRun appends a run to the current paragraph.
	AddRun(props docx.RunProperties, text string, space docx.TextSpace)

	// WriteFile serializes the accumulated document to path.
	WriteFile(path string) error
}

// titleSetter is implemented by targets that record a document title.
type titleSetter interface {
	SetTitle(title string)
}

// Options contains exporter configuration options.
type Options struct {
	UnderlineColor string
	HeadingSizes   [6]int
}

// DefaultOptions returns default exporter options.
func DefaultOptions() Options {
	return Options{
		UnderlineColor: DefaultUnderlineColor,
		HeadingSizes:   DefaultHeadingSizes,
	}
}

// Exporter maps IR blocks onto target paragraphs and runs.
type Exporter struct {
	options Options
}

// New creates an exporter with the given options.
func New(opts Options) *Exporter {
	if opts.UnderlineColor == "" {
		opts.UnderlineColor = DefaultUnderlineColor
	}
	if opts.HeadingSizes == ([6]int{}) {
		opts.HeadingSizes = DefaultHeadingSizes
	}
	return &Exporter{options: opts}
}

// Export renders doc into a new .docx document and writes it to path.
func (e *Exporter) Export(doc *ir.Document, path string) error {
	target := docx.New()
	e.Render(doc, target)

	if err := target.WriteFile(path); err != nil {
		return fmt.Errorf("%w: %w", ErrExportWrite, err)
	}
	logging.Debug("document written", "path", path, "blocks", doc.Len())
	return nil
}

// Render emits one target paragraph per block, in document order.
func (e *Exporter) Render(doc *ir.Document, target Target) {
	if ts, ok := target.(titleSetter); ok && doc.Metadata.Title != "" {
		ts.SetTitle(doc.Metadata.Title)
	}

	for _, block := range doc.Content {
		switch block.Type {
		case ir.BlockTypeTitle:
			e.renderTitle(block, target)
		case ir.BlockTypeHeading:
			e.renderHeading(block, target)
		case ir.BlockTypeParagraph:
			e.renderParagraph(block, target)
		default:
			logging.Warn("skipping unknown block type", "type", block.Type)
		}
	}
}

// renderTitle centers the title text. Inline run styles are not carried over.
func (e *Exporter) renderTitle(block ir.Block, target Target) {
	target.StartParagraph(docx.ParagraphProperties{Justification: docx.JustifyCenter})
	target.AddRun(docx.RunProperties{}, block.PlainText(), docx.TextSpaceDefault)
}

// renderHeading writes the heading text as one bold run sized by level.
// Inline run styles are not carried over.
func (e *Exporter) renderHeading(block ir.Block, target Target) {
	target.StartParagraph(docx.ParagraphProperties{})
	target.AddRun(docx.RunProperties{
		Bold: true,
		Size: e.HeadingSize(block.Level),
	}, block.PlainText(), docx.TextSpaceDefault)
}

func (e *Exporter) renderParagraph(block ir.Block, target Target) {
	target.StartParagraph(docx.ParagraphProperties{})
	for _, run := range block.Runs {
		target.AddRun(e.runProperties(run.Style), run.Text, docx.TextSpacePreserve)
	}
}

func (e *Exporter) runProperties(style ir.StyleSet) docx.RunProperties {
	props := docx.RunProperties{
		Bold:   style.Has(ir.Bold),
		Italic: style.Has(ir.Italics),
		Strike: style.Has(ir.Strikethrough),
	}
	if style.Has(ir.Underline) {
		props.Underline = true
		props.UnderlineColor = e.options.UnderlineColor
	}
	return props
}

// HeadingSize returns the font size of a heading level, in half-points.
// The table is indexed by min(level, 5); deeper levels share the smallest size.
func (e *Exporter) HeadingSize(level int) int {
	sizes := e.options.HeadingSizes
	idx := min(level, len(sizes)-1)
	if idx < 0 {
		idx = 0
	}
	return sizes[idx]
}

// OutputPath derives the output file path by replacing the extension of
// the input path with .docx.
func OutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + docx.Extension
}
