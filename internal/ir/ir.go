// Package ir defines the Intermediate Representation for compiled ppr documents.
// IR is the output of the compiler and the input of the exporter.
package ir

import "fmt"

// CurrentVersion is the IR format version.
const CurrentVersion = "1.0"

// Document represents the compiled form of a ppr source.
// A Document is built once and not modified afterwards.
type Document struct {
	Version  string   `json:"version"`
	Metadata Metadata `json:"metadata"`
	Content  []Block  `json:"content"`
}

// Metadata contains document metadata.
type Metadata struct {
	Title  string `json:"title,omitempty"`  // plain text of the first title block
	Source string `json:"source,omitempty"` // source file path
	Digest string `json:"digest,omitempty"` // BLAKE3 of the source text, hex
}

// BlockType represents the type of content block.
type BlockType string

const (
	BlockTypeParagraph BlockType = "paragraph"
	BlockTypeTitle     BlockType = "title"
	BlockTypeHeading   BlockType = "heading"
)

// Block represents a content block in the document.
type Block struct {
	Type  BlockType `json:"type"`
	Level int       `json:"level,omitempty"` // heading level, 1 and up
	Runs  []Run     `json:"runs"`
}

// NewDocument creates a new IR document with the current version.
func NewDocument() *Document {
	return &Document{
		Version: CurrentVersion,
		Content: make([]Block, 0),
	}
}

// NewParagraph creates a paragraph block.
func NewParagraph(runs []Run) Block {
	return Block{Type: BlockTypeParagraph, Runs: runs}
}

// NewTitle creates a title block.
func NewTitle(runs []Run) Block {
	return Block{Type: BlockTypeTitle, Runs: runs}
}

// NewHeading creates a heading block. Levels below 1 are rejected.
func NewHeading(level int, runs []Run) (Block, error) {
	if level < 1 {
		return Block{}, fmt.Errorf("invalid heading level: %d", level)
	}
	return Block{Type: BlockTypeHeading, Level: level, Runs: runs}, nil
}

// Append adds a block to the end of the document.
func (d *Document) Append(b Block) {
	d.Content = append(d.Content, b)
	if b.Type == BlockTypeTitle && d.Metadata.Title == "" {
		d.Metadata.Title = b.PlainText()
	}
}

// Len returns the number of blocks.
func (d *Document) Len() int {
	return len(d.Content)
}

// PlainText returns the block text without styling.
func (b Block) PlainText() string {
	return PlainText(b.Runs)
}

// IsEmpty returns true if the block has no text content.
func (b Block) IsEmpty() bool {
	for _, r := range b.Runs {
		if r.Text != "" {
			return false
		}
	}
	return true
}
