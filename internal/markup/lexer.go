package markup

import (
	"strings"
	"unicode"

	"github.com/roboco-io/ppr2docx/internal/ir"
	"github.com/roboco-io/ppr2docx/internal/parallel"
)

const (
	// DefaultSeparator separates paragraphs in a ppr source.
	DefaultSeparator = '\\'
	// LegacySeparator is the line-break convention of older sources.
	LegacySeparator = '\n'

	byteOrderMark = "\uFEFF"
)

// Options controls lexing.
type Options struct {
	Separator rune // paragraph separator, DefaultSeparator when zero
	Workers   int  // parallel paragraph scanners, runtime.NumCPU() when <= 0
}

// DefaultOptions returns default lexer options.
func DefaultOptions() Options {
	return Options{
		Separator: DefaultSeparator,
		Workers:   0,
	}
}

// Segment is one raw paragraph of a source.
type Segment struct {
	Index int
	Text  string
}

// Split cuts src into paragraphs at sep. A leading byte order mark is
// dropped and blank segments are skipped; Index keeps the position of the
// segment in the unfiltered split.
func Split(src string, sep rune) []Segment {
	if sep == 0 {
		sep = DefaultSeparator
	}
	src = strings.TrimPrefix(src, byteOrderMark)

	parts := strings.Split(src, string(sep))
	segments := make([]Segment, 0, len(parts))
	for i, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		segments = append(segments, Segment{Index: i, Text: p})
	}
	return segments
}

// Lex splits src into paragraphs and scans them in parallel.
// Tokens are returned in source order. The first failing paragraph,
// by source order, aborts the whole lex.
func Lex(src string, opts Options) ([]Token, error) {
	segments := Split(src, opts.Separator)
	return parallel.Map(segments, opts.Workers, func(_ int, s Segment) (Token, error) {
		return LexParagraph(s.Index, s.Text)
	})
}

// LexParagraph classifies a single paragraph by its marker and scans its
// body into styled runs.
func LexParagraph(index int, text string) (Token, error) {
	rs := []rune(text)
	i := skipSpace(rs, 0, len(rs))
	if i == len(rs) {
		return Token{}, &BlockMarkerError{Index: index, Err: ErrUnrecognizedBlockMarker}
	}

	tok := Token{Index: index}
	switch rs[i] {
	case 'P':
		tok.Kind = KindParagraph
	case 'T':
		tok.Kind = KindTitle
	case 'B':
		tok.Kind = KindBookmark
	case 'H':
		if i+1 == len(rs) || rs[i+1] < '1' || rs[i+1] > '9' {
			marker := "H"
			if i+1 < len(rs) {
				marker += string(rs[i+1])
			}
			return Token{}, &BlockMarkerError{Index: index, Marker: marker, Err: ErrMalformedHeadingMarker}
		}
		i++
		tok.Kind = KindHeading
		tok.Level = int(rs[i] - '0')
	default:
		return Token{}, &BlockMarkerError{Index: index, Marker: string(rs[i]), Err: ErrUnrecognizedBlockMarker}
	}
	i++

	end := len(rs)
	for end > i && unicode.IsSpace(rs[end-1]) {
		end--
	}
	i = skipSpace(rs, i, end)

	tok.Runs = scan(rs[i:end])
	return tok, nil
}

// Normalize trims body and collapses every interior whitespace run to a
// single space, the same way the scanner treats paragraph text.
func Normalize(body string) string {
	return strings.Join(strings.Fields(body), " ")
}

// scanner accumulates runs while walking a paragraph body.
type scanner struct {
	runs  []ir.Run
	style ir.StyleSet
	buf   strings.Builder
}

// flush closes the buffered text as a run carrying the current style set.
// Empty text does not produce a run; text following an empty flush with the
// same style set is merged into the previous run.
func (s *scanner) flush() {
	if s.buf.Len() == 0 {
		return
	}
	text := s.buf.String()
	s.buf.Reset()

	if n := len(s.runs); n > 0 && s.runs[n-1].Style == s.style {
		s.runs[n-1].Text += text
		return
	}
	s.runs = append(s.runs, ir.Run{Text: text, Style: s.style})
}

func scan(body []rune) []ir.Run {
	var s scanner
	for i := 0; i < len(body); {
		if style, ok := toggleAt(body, i); ok {
			s.flush()
			s.style = s.style.Toggle(style)
			i += 2
			continue
		}
		if unicode.IsSpace(body[i]) {
			s.buf.WriteByte(' ')
			i = skipSpace(body, i, len(body))
			continue
		}
		s.buf.WriteRune(body[i])
		i++
	}
	s.flush()

	if s.runs == nil {
		return []ir.Run{}
	}
	return s.runs
}

// toggleAt reports the style toggled by a doubled marker at body[i].
func toggleAt(body []rune, i int) (ir.Style, bool) {
	if i+1 >= len(body) || body[i] != body[i+1] {
		return 0, false
	}
	switch body[i] {
	case '*':
		return ir.Bold, true
	case '/':
		return ir.Italics, true
	case '_':
		return ir.Underline, true
	case '-':
		return ir.Strikethrough, true
	}
	return 0, false
}

func skipSpace(rs []rune, i, end int) int {
	for i < end && unicode.IsSpace(rs[i]) {
		i++
	}
	return i
}
