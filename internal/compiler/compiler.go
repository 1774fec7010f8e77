// Package compiler turns ppr sources into IR documents.
package compiler

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/zeebo/blake3"

	"github.com/roboco-io/ppr2docx/internal/ir"
	"github.com/roboco-io/ppr2docx/internal/logging"
	"github.com/roboco-io/ppr2docx/internal/markup"
)

// ErrInputRead indicates the source file could not be read.
var ErrInputRead = errors.New("input read failed")

// Classify maps lexed tokens onto IR blocks, keeping their order.
// Bookmark tokens have no block representation and are dropped.
func Classify(tokens []markup.Token) (*ir.Document, error) {
	doc := ir.NewDocument()
	dropped := 0

	for _, tok := range tokens {
		switch tok.Kind {
		case markup.KindParagraph:
			doc.Append(ir.NewParagraph(tok.Runs))
		case markup.KindTitle:
			doc.Append(ir.NewTitle(tok.Runs))
		case markup.KindHeading:
			h, err := ir.NewHeading(tok.Level, tok.Runs)
			if err != nil {
				return nil, &markup.BlockMarkerError{
					Index:  tok.Index,
					Marker: fmt.Sprintf("H%d", tok.Level),
					Err:    markup.ErrMalformedHeadingMarker,
				}
			}
			doc.Append(h)
		case markup.KindBookmark:
			dropped++
		default:
			return nil, &markup.BlockMarkerError{
				Index:  tok.Index,
				Marker: tok.Kind.String(),
				Err:    markup.ErrUnrecognizedBlockMarker,
			}
		}
	}

	if dropped > 0 {
		logging.Debug("bookmarks dropped", "count", dropped)
	}
	return doc, nil
}

// Compile lexes and classifies src.
func Compile(src string, opts markup.Options) (*ir.Document, error) {
	tokens, err := markup.Lex(src, opts)
	if err != nil {
		return nil, err
	}

	doc, err := Classify(tokens)
	if err != nil {
		return nil, err
	}
	doc.Metadata.Digest = Digest(src)

	logging.Debug("source compiled", "paragraphs", len(tokens), "blocks", doc.Len())
	return doc, nil
}

// CompileFile reads and compiles the source at path.
func CompileFile(path string, opts markup.Options) (*ir.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputRead, err)
	}

	doc, err := Compile(string(data), opts)
	if err != nil {
		return nil, err
	}
	doc.Metadata.Source = path
	return doc, nil
}

// Digest returns the hex BLAKE3 hash of src.
func Digest(src string) string {
	sum := blake3.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}
