// Package preview renders compiled documents as Markdown, HTML or plain text
// for inspection without producing a word-processing file.
package preview

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/roboco-io/ppr2docx/internal/ir"
)

// htmlRenderer is a goldmark instance with strikethrough support. Raw HTML
// is allowed because underlined runs are emitted as <u> elements.
var htmlRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// markdownEscaper escapes characters that would otherwise start markup.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`_`, `\_`,
	`~`, `\~`,
	"`", "\\`",
	`#`, `\#`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
)

// orderedListStart matches a paragraph opening that reads as an ordered list item.
var orderedListStart = regexp.MustCompile(`^\d{1,9}[.)](\s|$)`)

// escapeBlockStart escapes a paragraph opening that would otherwise start a
// list item or a thematic break.
func escapeBlockStart(text string) string {
	if text == "" {
		return text
	}
	switch text[0] {
	case '-', '+', '=':
		return `\` + text
	}
	if orderedListStart.MatchString(text) {
		marker := strings.IndexAny(text, ".)")
		return text[:marker] + `\` + text[marker:]
	}
	return text
}

// Markdown renders doc as Markdown. Titles become level-1 headings and
// headings are shifted down one level.
func Markdown(doc *ir.Document) string {
	var sb strings.Builder

	for _, block := range doc.Content {
		switch block.Type {
		case ir.BlockTypeTitle:
			text := markdownEscaper.Replace(block.PlainText())
			sb.WriteString(fmt.Sprintf("# %s\n\n", text))
		case ir.BlockTypeHeading:
			level := min(block.Level+1, 6)
			text := markdownEscaper.Replace(block.PlainText())
			sb.WriteString(fmt.Sprintf("%s %s\n\n", strings.Repeat("#", level), text))
		case ir.BlockTypeParagraph:
			if block.IsEmpty() {
				continue
			}
			var para strings.Builder
			for _, run := range block.Runs {
				writeMarkdownRun(&para, run)
			}
			sb.WriteString(escapeBlockStart(para.String()))
			sb.WriteString("\n\n")
		}
	}

	return sb.String()
}

// writeMarkdownRun wraps the run text in emphasis markers. Surrounding
// whitespace stays outside the markers so the emphasis is recognized.
func writeMarkdownRun(sb *strings.Builder, run ir.Run) {
	core := strings.TrimFunc(run.Text, unicode.IsSpace)
	if core == "" || run.Style.IsEmpty() {
		sb.WriteString(markdownEscaper.Replace(run.Text))
		return
	}

	start := strings.Index(run.Text, core)
	leading, trailing := run.Text[:start], run.Text[start+len(core):]

	var prefix, suffix string
	if run.Style.Has(ir.Underline) {
		prefix, suffix = prefix+"<u>", "</u>"+suffix
	}
	if run.Style.Has(ir.Strikethrough) {
		prefix, suffix = prefix+"~~", "~~"+suffix
	}
	if run.Style.Has(ir.Bold) {
		prefix, suffix = prefix+"**", "**"+suffix
	}
	if run.Style.Has(ir.Italics) {
		prefix, suffix = prefix+"*", "*"+suffix
	}

	sb.WriteString(leading)
	sb.WriteString(prefix)
	sb.WriteString(markdownEscaper.Replace(core))
	sb.WriteString(suffix)
	sb.WriteString(trailing)
}

// HTML renders doc as an HTML fragment via its Markdown form.
func HTML(doc *ir.Document) (string, error) {
	var buf bytes.Buffer
	if err := htmlRenderer.Convert([]byte(Markdown(doc)), &buf); err != nil {
		return "", fmt.Errorf("failed to render html: %w", err)
	}
	return buf.String(), nil
}

// Text renders a plain-text summary of doc, one block per paragraph.
func Text(doc *ir.Document) string {
	var sb strings.Builder

	if doc.Metadata.Source != "" {
		sb.WriteString(fmt.Sprintf("source: %s\n", doc.Metadata.Source))
	}
	if doc.Metadata.Digest != "" {
		sb.WriteString(fmt.Sprintf("blake3: %s\n", doc.Metadata.Digest))
	}
	if sb.Len() > 0 {
		sb.WriteString("\n---\n\n")
	}

	for i, block := range doc.Content {
		label := string(block.Type)
		if block.Type == ir.BlockTypeHeading {
			label = fmt.Sprintf("%s %d", block.Type, block.Level)
		}
		sb.WriteString(fmt.Sprintf("[%d] %s (%d runs)\n", i, label, len(block.Runs)))
		for _, run := range block.Runs {
			sb.WriteString(fmt.Sprintf("    %-12s %q\n", run.Style, run.Text))
		}
	}

	return sb.String()
}
