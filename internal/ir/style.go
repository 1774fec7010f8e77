package ir

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Style is a single inline text style.
type Style uint8

const (
	Bold Style = 1 << iota
	Italics
	Underline
	Strikethrough
)

// allStyles lists every style in canonical order.
var allStyles = []Style{Bold, Italics, Underline, Strikethrough}

// String returns the lower-case style name.
func (s Style) String() string {
	switch s {
	case Bold:
		return "bold"
	case Italics:
		return "italics"
	case Underline:
		return "underline"
	case Strikethrough:
		return "strikethrough"
	default:
		return fmt.Sprintf("style(%d)", uint8(s))
	}
}

// ParseStyle returns the style with the given name.
func ParseStyle(name string) (Style, error) {
	for _, s := range allStyles {
		if s.String() == strings.ToLower(name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown style: %s", name)
}

// StyleSet is a set of styles applied together to a run.
// The zero value is the empty set.
type StyleSet uint8

// NewStyleSet returns a set holding the given styles.
func NewStyleSet(styles ...Style) StyleSet {
	var set StyleSet
	return set.With(styles...)
}

// Has reports whether s is in the set.
func (set StyleSet) Has(s Style) bool {
	return set&StyleSet(s) != 0
}

// Toggle removes s if present, otherwise adds it.
func (set StyleSet) Toggle(s Style) StyleSet {
	return set ^ StyleSet(s)
}

// With returns the set with the given styles added.
func (set StyleSet) With(styles ...Style) StyleSet {
	for _, s := range styles {
		set |= StyleSet(s)
	}
	return set
}

// IsEmpty returns true if no style is set.
func (set StyleSet) IsEmpty() bool {
	return set == 0
}

// Styles returns the members of the set in canonical order.
func (set StyleSet) Styles() []Style {
	styles := make([]Style, 0, len(allStyles))
	for _, s := range allStyles {
		if set.Has(s) {
			styles = append(styles, s)
		}
	}
	return styles
}

// String returns the style names joined with "+", or "plain" for the empty set.
func (set StyleSet) String() string {
	if set.IsEmpty() {
		return "plain"
	}
	names := make([]string, 0, len(allStyles))
	for _, s := range set.Styles() {
		names = append(names, s.String())
	}
	return strings.Join(names, "+")
}

// MarshalJSON encodes the set as a list of style names.
func (set StyleSet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(allStyles))
	for _, s := range set.Styles() {
		names = append(names, s.String())
	}
	return json.Marshal(names)
}

// UnmarshalJSON decodes a list of style names.
func (set *StyleSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var decoded StyleSet
	for _, name := range names {
		s, err := ParseStyle(name)
		if err != nil {
			return err
		}
		decoded = decoded.With(s)
	}
	*set = decoded
	return nil
}
