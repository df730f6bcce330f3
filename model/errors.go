package model

import "errors"

// Recovery is always local: an element, spoke, table or page is dropped and
// processing continues one level up.
var (
	// ErrEmptyRegion is reported when a grid or slice query matched nothing.
	ErrEmptyRegion = errors.New("empty region")

	// ErrNoHeaderFound is reported when no word row scored as a header.
	ErrNoHeaderFound = errors.New("no header found")

	// ErrAmbiguousAlignment is reported when two alignment hypotheses tie.
	ErrAmbiguousAlignment = errors.New("ambiguous alignment")

	// ErrMalformedElement is reported for an element without a usable box.
	ErrMalformedElement = errors.New("malformed element")
)
