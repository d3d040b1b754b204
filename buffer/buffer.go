package buffer

import (
	"fmt"

	"github.com/iw2rmb/tokenfield/internal/grapheme"
)

type Options struct {
	HistoryLimit int // default: 1000; negative disables undo

	// Quotes selects the smart quote glyphs. Zero value: English curly quotes.
	Quotes             QuoteStyle
	DisableSmartQuotes bool

	Style    StyleConfig
	Delegate Delegate
}

// Buffer is the single source of truth for text and attributes.
//
// Buffer is not safe for concurrent use; its owner serializes all access.
type Buffer struct {
	clusters []string
	runs     runList
	pres     []Presentation

	version       uint64
	textVersion   uint64
	formatVersion uint64

	opt  Options
	hist historyState
	tx   txState

	lastChange    Change
	hasLastChange bool
}

func New(text string, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	opt.Quotes = normalizeQuoteStyle(opt.Quotes)
	opt.Style = normalizeStyleConfig(opt.Style)

	b := &Buffer{opt: opt}
	if text != "" {
		b.BeginEditing()
		b.replace(Span{}, grapheme.Split(text), nil)
		b.tx.skipHistory = true
		b.EndEditing()
	}
	return b
}

// SetDelegate installs the host hooks consulted by the formatting pass and
// reformats the whole buffer.
func (b *Buffer) SetDelegate(d Delegate) {
	b.opt.Delegate = d
	b.RefreshFormatting()
}

func (b *Buffer) Text() string { return grapheme.Join(b.clusters) }

// Len returns the number of grapheme clusters.
func (b *Buffer) Len() int { return len(b.clusters) }

// Version increases on every effective text or attribute change.
func (b *Buffer) Version() uint64 { return b.version }

// TextVersion increases only when characters change.
func (b *Buffer) TextVersion() uint64 { return b.textVersion }

// FormatVersion increases once per executed formatting pass.
func (b *Buffer) FormatVersion() uint64 { return b.formatVersion }

// Slice returns the text covered by r.
func (b *Buffer) Slice(r Span) (string, error) {
	if err := b.checkSpan(r); err != nil {
		return "", err
	}
	return grapheme.Join(b.clusters[r.Location:r.End()]), nil
}

// ClusterAt returns the grapheme cluster at loc.
func (b *Buffer) ClusterAt(loc int) (string, bool) {
	if loc < 0 || loc >= len(b.clusters) {
		return "", false
	}
	return b.clusters[loc], true
}

// AttributesAt returns a copy of the attributes at loc.
func (b *Buffer) AttributesAt(loc int) (Attrs, error) {
	if loc < 0 || loc >= len(b.clusters) {
		return nil, fmt.Errorf("%w: location %d outside [0,%d)", ErrInvalidRange, loc, len(b.clusters))
	}
	return b.runs.at(loc), nil
}

// Runs calls fn for every attribute run in document order until fn returns
// false. The attributes passed to fn must not be modified.
func (b *Buffer) Runs(fn func(s Span, attrs Attrs) bool) {
	b.runs.each(fn)
}

func (b *Buffer) checkSpan(r Span) error {
	if r.Location < 0 || r.Length < 0 || r.End() > len(b.clusters) {
		return fmt.Errorf("%w: span [%d,%d) outside [0,%d]", ErrInvalidRange, r.Location, r.End(), len(b.clusters))
	}
	return nil
}

func (b *Buffer) checkLocation(loc int) error {
	if loc < 0 || loc > len(b.clusters) {
		return fmt.Errorf("%w: location %d outside [0,%d]", ErrInvalidRange, loc, len(b.clusters))
	}
	return nil
}
