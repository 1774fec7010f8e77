package ir

import "strings"

// Run represents a styled text run within a block.
// Styles never change inside a run.
type Run struct {
	Text  string   `json:"text"`
	Style StyleSet `json:"style"`
}

// NewRun creates a run with the given text and styles.
func NewRun(text string, styles ...Style) Run {
	return Run{
		Text:  text,
		Style: NewStyleSet(styles...),
	}
}

// PlainText concatenates the raw text of runs, dropping style information.
func PlainText(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
