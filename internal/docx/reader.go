package docx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// ErrMissingPart indicates a package part required for reading is absent.
var ErrMissingPart = errors.New("missing package part")

var (
	paragraphExpr      = xpath.MustCompile("//w:body/w:p")
	runExpr            = xpath.MustCompile("w:r")
	justificationExpr  = xpath.MustCompile("string(w:pPr/w:jc/@w:val)")
	textExpr           = xpath.MustCompile("string(w:t)")
	spaceExpr          = xpath.MustCompile("string(w:t/@*[local-name()='space'])")
	boldExpr           = xpath.MustCompile("boolean(w:rPr/w:b)")
	italicExpr         = xpath.MustCompile("boolean(w:rPr/w:i)")
	strikeExpr         = xpath.MustCompile("boolean(w:rPr/w:strike)")
	underlineExpr      = xpath.MustCompile("boolean(w:rPr/w:u)")
	underlineColorExpr = xpath.MustCompile("string(w:rPr/w:u/@w:color)")
	sizeExpr           = xpath.MustCompile("string(w:rPr/w:sz/@w:val)")
	titleExpr          = xpath.MustCompile("string(//dc:title)")
)

// ReadFile reads a .docx package from path.
func ReadFile(path string) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer zr.Close()
	return read(&zr.Reader)
}

// Read reads a .docx package of the given size from r. Only the formatting
// this package writes is recovered; anything else is ignored.
func Read(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open package: %w", err)
	}
	return read(zr)
}

func read(zr *zip.Reader) (*Document, error) {
	body, err := parsePart(zr, "word/document.xml")
	if err != nil {
		return nil, err
	}

	d := New()

	core, err := parsePart(zr, "docProps/core.xml")
	switch {
	case err == nil:
		d.title = evalString(titleExpr, core)
	case !errors.Is(err, ErrMissingPart):
		return nil, err
	}

	for _, p := range xmlquery.QuerySelectorAll(body, paragraphExpr) {
		d.StartParagraph(ParagraphProperties{
			Justification: Justification(evalString(justificationExpr, p)),
		})
		for _, r := range xmlquery.QuerySelectorAll(p, runExpr) {
			props, err := readRunProperties(r)
			if err != nil {
				return nil, err
			}
			space := TextSpaceDefault
			if evalString(spaceExpr, r) == "preserve" {
				space = TextSpacePreserve
			}
			d.AddRun(props, evalString(textExpr, r), space)
		}
	}
	return d, nil
}

func readRunProperties(r *xmlquery.Node) (RunProperties, error) {
	props := RunProperties{
		Bold:      evalBool(boldExpr, r),
		Italic:    evalBool(italicExpr, r),
		Strike:    evalBool(strikeExpr, r),
		Underline: evalBool(underlineExpr, r),
	}
	if props.Underline {
		props.UnderlineColor = evalString(underlineColorExpr, r)
	}
	if v := evalString(sizeExpr, r); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return RunProperties{}, fmt.Errorf("invalid run size %q: %w", v, err)
		}
		props.Size = size
	}
	return props, nil
}

func parsePart(zr *zip.Reader, name string) (*xmlquery.Node, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open part %s: %w", name, err)
		}
		defer rc.Close()

		node, err := xmlquery.Parse(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse part %s: %w", name, err)
		}
		return node, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
}

func evalString(expr *xpath.Expr, n *xmlquery.Node) string {
	s, _ := expr.Evaluate(xmlquery.CreateXPathNavigator(n)).(string)
	return s
}

func evalBool(expr *xpath.Expr, n *xmlquery.Node) bool {
	b, _ := expr.Evaluate(xmlquery.CreateXPathNavigator(n)).(bool)
	return b
}

// Title returns the title recorded in the core properties.
func (d *Document) Title() string {
	return d.title
}

// String describes the properties as "plain" or a list such as
// "bold italic size=24".
func (p RunProperties) String() string {
	var parts []string
	if p.Bold {
		parts = append(parts, "bold")
	}
	if p.Italic {
		parts = append(parts, "italic")
	}
	if p.Strike {
		parts = append(parts, "strike")
	}
	if p.Underline {
		color := p.UnderlineColor
		if color == "" {
			color = "auto"
		}
		parts = append(parts, "underline="+color)
	}
	if p.Size > 0 {
		parts = append(parts, "size="+strconv.Itoa(p.Size))
	}
	if len(parts) == 0 {
		return "plain"
	}
	return strings.Join(parts, " ")
}
