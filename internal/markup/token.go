// Package markup implements the ppr lexer.
//
// A ppr source is a sequence of paragraphs joined by a separator character
// (a backslash by default). Every paragraph starts with a block marker:
//
//	P   paragraph
//	T   title
//	Hn  heading of level n (1-9)
//	B   bookmark
//
// followed by a body in which doubled characters toggle inline styles:
// "**" bold, "//" italics, "__" underline and "--" strikethrough.
package markup

import (
	"fmt"

	"github.com/roboco-io/ppr2docx/internal/ir"
)

// Kind is the block kind selected by a paragraph's marker.
type Kind int

const (
	KindParagraph Kind = iota
	KindTitle
	KindHeading
	KindBookmark
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindTitle:
		return "title"
	case KindHeading:
		return "heading"
	case KindBookmark:
		return "bookmark"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Token is the lexed form of one paragraph.
type Token struct {
	Index int      // paragraph index in the source
	Kind  Kind     // block kind
	Level int      // heading level, set only for KindHeading
	Runs  []ir.Run // styled runs in source order
}
