package editor

import "github.com/iw2rmb/tokenfield/buffer"

// CancelReason explains why a composition ended without confirmation.
type CancelReason uint8

const (
	// CancelDeleteInput: the anchor was deleted or the composition vanished.
	// Composition text is removed.
	CancelDeleteInput CancelReason = iota
	// CancelTapOut: the user tapped outside the composition or the host
	// asked to stop at an insert. Typed text is kept as plain text.
	CancelTapOut
	// CancelOther: the controller replaced the composition (re-entry,
	// tokenize all). Typed text is kept as plain text.
	CancelOther
)

func (r CancelReason) String() string {
	switch r {
	case CancelDeleteInput:
		return "delete-input"
	case CancelTapOut:
		return "tap-out"
	case CancelOther:
		return "other"
	default:
		return "unknown"
	}
}

// Host is the UI side of the controller. All callbacks are synchronous and
// run after the operation that caused them has completed.
//
// Host also satisfies buffer.Delegate; the controller installs it as the
// buffer's formatting delegate.
type Host interface {
	TextChanged()
	// ShouldChangeText vetoes free-text edits in normal mode.
	ShouldChangeText(r buffer.Span, replacement string) bool
	// TokenSelected reports a tap on a token. r is the token's logical range;
	// the host converts it to screen geometry.
	TokenSelected(ref string, r buffer.Span)
	TokenAdded(ref string)
	TokenDeleted(ref string)

	CompositionTextChanged(inputText string)
	CompositionConfirmed()
	CompositionCanceled(reason CancelReason)
	// ShouldCancelCompositionAtInsert is consulted after every composition
	// insert. Returning true cancels with CancelTapOut.
	ShouldCancelCompositionAtInsert(newText, inputText string) bool

	// SelectionChanged reports a selection set by the controller, including
	// a clamped override of a host-reported selection.
	SelectionChanged(r buffer.Span)
	FocusChanged(focused bool)

	AdditionalFormatting(text string, search buffer.Span) []buffer.FormatRun
	TokenColors(ref string) buffer.TokenColors

	ShouldAcceptPastedContent(t PasteType) bool
	PastedContentReceived(items []PasteItem)
}

// NopHost implements Host with defaults. Embed it to override only the
// callbacks a host cares about.
type NopHost struct{}

var _ Host = NopHost{}

func (NopHost) TextChanged() {}
func (NopHost) ShouldChangeText(buffer.Span, string) bool { return true }
func (NopHost) TokenSelected(string, buffer.Span) {}
func (NopHost) TokenAdded(string) {}
func (NopHost) TokenDeleted(string) {}
func (NopHost) CompositionTextChanged(string) {}
func (NopHost) CompositionConfirmed() {}
func (NopHost) CompositionCanceled(CancelReason) {}
func (NopHost) ShouldCancelCompositionAtInsert(string, string) bool { return false }
func (NopHost) SelectionChanged(buffer.Span) {}
func (NopHost) FocusChanged(bool) {}

func (NopHost) AdditionalFormatting(string, buffer.Span) []buffer.FormatRun { return nil }

func (NopHost) TokenColors(string) buffer.TokenColors { return buffer.TokenColors{} }

func (NopHost) ShouldAcceptPastedContent(PasteType) bool { return false }
func (NopHost) PastedContentReceived([]PasteItem) {}
