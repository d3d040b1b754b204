package buffer

import "errors"

// Range errors
var (
	// ErrInvalidRange indicates a negative or out-of-bounds location or span,
	// or a location that splits an atomic token.
	ErrInvalidRange = errors.New("invalid range")
)

// Token errors
var (
	// ErrNoTokenReference indicates token attributes without an AttrToken value.
	ErrNoTokenReference = errors.New("token attributes carry no reference")
)

// Composition errors
var (
	// ErrNoAnchor indicates a composition input span requested without an anchor.
	ErrNoAnchor = errors.New("composition anchor not found")
)
