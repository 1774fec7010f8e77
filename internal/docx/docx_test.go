package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readPart(t *testing.T, data []byte, name string) []byte {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			part, err := io.ReadAll(rc)
			require.NoError(t, err)
			return part
		}
	}
	t.Fatalf("part %s not found", name)
	return nil
}

func evaluate(t *testing.T, doc *xmlquery.Node, expr string) interface{} {
	t.Helper()
	return xpath.MustCompile(expr).Evaluate(xmlquery.CreateXPathNavigator(doc))
}

func TestDocument_Write(t *testing.T) {
	d := New()
	d.SetTitle("Title & more")
	d.StartParagraph(ParagraphProperties{Justification: JustifyCenter})
	d.AddRun(RunProperties{}, "My Title", TextSpaceDefault)
	d.StartParagraph(ParagraphProperties{})
	d.AddRun(RunProperties{Bold: true, Size: 20}, "Heading", TextSpaceDefault)
	d.StartParagraph(ParagraphProperties{})
	d.AddRun(RunProperties{}, "Hello ", TextSpacePreserve)
	d.AddRun(RunProperties{Italic: true, Strike: true, Underline: true, UnderlineColor: "000000"}, "<world>", TextSpacePreserve)

	var buf bytes.Buffer
	require.NoError(t, d.Write(&buf))
	data := buf.Bytes()

	docXML := readPart(t, data, "word/document.xml")
	root, err := xmlquery.Parse(bytes.NewReader(docXML))
	require.NoError(t, err)

	assert.Equal(t, float64(3), evaluate(t, root, "count(//w:body/w:p)"))
	assert.Equal(t, "center", evaluate(t, root, "string(//w:p[1]/w:pPr/w:jc/@w:val)"))
	assert.Equal(t, "My Title", evaluate(t, root, "string(//w:p[1]/w:r/w:t)"))
	assert.Equal(t, float64(0), evaluate(t, root, "count(//w:p[1]/w:r/w:rPr)"))

	assert.Equal(t, float64(1), evaluate(t, root, "count(//w:p[2]/w:r/w:rPr/w:b)"))
	assert.Equal(t, "20", evaluate(t, root, "string(//w:p[2]/w:r/w:rPr/w:sz/@w:val)"))

	assert.Equal(t, float64(2), evaluate(t, root, "count(//w:p[3]/w:r)"))
	assert.Equal(t, "<world>", evaluate(t, root, "string(//w:p[3]/w:r[2]/w:t)"))
	assert.Equal(t, float64(1), evaluate(t, root, "count(//w:p[3]/w:r[2]/w:rPr/w:i)"))
	assert.Equal(t, float64(1), evaluate(t, root, "count(//w:p[3]/w:r[2]/w:rPr/w:strike)"))
	assert.Equal(t, "000000", evaluate(t, root, "string(//w:p[3]/w:r[2]/w:rPr/w:u/@w:color)"))
	assert.Equal(t, float64(0), evaluate(t, root, "count(//w:p[3]/w:r[2]/w:rPr/w:b)"))

	assert.Contains(t, string(docXML), `<w:t xml:space="preserve">Hello </w:t>`)

	coreXML := readPart(t, data, "docProps/core.xml")
	core, err := xmlquery.Parse(bytes.NewReader(coreXML))
	require.NoError(t, err)
	assert.Equal(t, "Title & more", evaluate(t, core, "string(//dc:title)"))

	contentTypes := readPart(t, data, "[Content_Types].xml")
	assert.Contains(t, string(contentTypes), "/word/document.xml")
	rels := readPart(t, data, "_rels/.rels")
	assert.Contains(t, string(rels), `Target="word/document.xml"`)
}

func TestDocument_AddRunWithoutParagraph(t *testing.T) {
	d := New()
	d.AddRun(RunProperties{}, "orphan", TextSpaceDefault)

	require.Len(t, d.Paragraphs(), 1)
	assert.Equal(t, "orphan", d.Paragraphs()[0].Runs[0].Text)
}

func TestDocument_UnderlineDefaultColor(t *testing.T) {
	d := New()
	d.AddRun(RunProperties{Underline: true}, "u", TextSpaceDefault)

	var buf bytes.Buffer
	require.NoError(t, d.Write(&buf))
	docXML := readPart(t, buf.Bytes(), "word/document.xml")
	assert.Contains(t, string(docXML), `<w:u w:val="single" w:color="auto"/>`)
}

func TestDocument_WriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.docx")

	// Existing content is replaced.
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	d := New()
	d.AddRun(RunProperties{}, "fresh", TextSpaceDefault)
	require.NoError(t, d.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "PK"))
	assert.Contains(t, string(readPart(t, data, "word/document.xml")), "fresh")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestDocument_WriteFileMissingDir(t *testing.T) {
	d := New()
	err := d.WriteFile(filepath.Join(t.TempDir(), "missing", "out.docx"))
	assert.Error(t, err)
}
