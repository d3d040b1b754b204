package editor

import (
	"errors"

	"github.com/iw2rmb/tokenfield/buffer"
)

// ErrInvalidRange is returned for negative or out-of-bounds locations and
// for locations that split a token.
var ErrInvalidRange = buffer.ErrInvalidRange

// Composition errors
var (
	// ErrNotComposing indicates a composition operation called in normal mode.
	ErrNotComposing = errors.New("not in composition mode")

	// ErrEmptyComposition indicates a confirm with no input text to tokenize.
	ErrEmptyComposition = errors.New("composition has no input text")

	// ErrEmptyAnchor indicates a composition requested without anchor text.
	ErrEmptyAnchor = errors.New("composition anchor text is empty")
)
