package markup

import (
	"errors"
	"fmt"
)

// Sentinel errors for block classification failures.
var (
	// ErrUnrecognizedBlockMarker indicates a paragraph starts with no known marker
	ErrUnrecognizedBlockMarker = errors.New("unrecognized block marker")
	// ErrMalformedHeadingMarker indicates an H marker without a level digit
	ErrMalformedHeadingMarker = errors.New("malformed heading marker")
)

// BlockMarkerError reports a paragraph whose marker could not be classified.
type BlockMarkerError struct {
	Index  int    // paragraph index in the source
	Marker string // offending marker text, may be empty
	Err    error  // ErrUnrecognizedBlockMarker or ErrMalformedHeadingMarker
}

func (e *BlockMarkerError) Error() string {
	if e.Marker == "" {
		return fmt.Sprintf("paragraph %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("paragraph %d: %v %q", e.Index, e.Err, e.Marker)
}

func (e *BlockMarkerError) Unwrap() error {
	return e.Err
}
