package editor

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/iw2rmb/tokenfield/buffer"
)

// CompositionInfo describes the active composition.
type CompositionInfo struct {
	Anchor      string
	AnchorRange buffer.Span
	Input       string
	InputRange  buffer.Span
	HasInput    bool
}

// Composition returns the active composition, if any.
func (c *Controller) Composition() (CompositionInfo, bool) {
	if c.mode != ModeComposition {
		return CompositionInfo{}, false
	}
	var info CompositionInfo
	a, ar, ok := c.buf.Anchor()
	if !ok {
		return CompositionInfo{}, false
	}
	info.Anchor, info.AnchorRange = a, ar
	info.Input, info.InputRange, info.HasInput = c.buf.InputText()
	return info, true
}

// EnterComposition inserts anchorText at location and switches to
// composition mode. The initialInputLength clusters that follow the anchor
// become the input text. Entering while already composing first cancels the
// current composition with CancelOther, keeping its text.
func (c *Controller) EnterComposition(location int, anchorText string, initialInputLength int) error {
	if anchorText == "" {
		return ErrEmptyAnchor
	}
	if initialInputLength < 0 {
		return fmt.Errorf("%w: negative input length %d", ErrInvalidRange, initialInputLength)
	}
	input := buffer.Span{Location: location, Length: initialInputLength}
	if location < 0 || input.End() > c.buf.Len() {
		return spanErr(input, c.buf.Len())
	}
	if !c.buf.IsTokenBoundary(location) || c.buf.RangeIntersectsAnyToken(input) {
		return fmt.Errorf("%w: composition at %d overlaps a token", ErrInvalidRange, location)
	}

	c.begin()
	defer c.end()

	if c.mode == ModeComposition {
		c.log.Debug("composition re-entered")
		c.cancelComposition(CancelOther)
	}

	a, err := c.buf.SetCompositionAnchor(location, anchorText)
	if err != nil {
		return err
	}
	if initialInputLength > 0 {
		if err := c.buf.SetCompositionInputText(buffer.Span{Location: a.End(), Length: initialInputLength}); err != nil {
			return err
		}
	}
	c.mode = ModeComposition
	c.setCursor(a.End() + initialInputLength)
	c.log.Debug("composition entered", zap.Int("location", location), zap.Int("input", initialInputLength))
	return nil
}

// ExitComposition removes the anchor and the input text, returns to normal
// mode and returns the location where typing resumes. In normal mode it only
// returns the cursor location.
func (c *Controller) ExitComposition() int {
	c.begin()
	defer c.end()
	if c.mode != ModeComposition {
		return c.sel.Location
	}
	return c.exitComposition()
}

func (c *Controller) exitComposition() int {
	loc := c.sel.Location
	_, a, okA := c.buf.Anchor()
	_, in, okI := c.buf.InputText()
	switch {
	case okA && okI:
		loc = a.Location
		_ = c.buf.ReplaceRange(a.Union(in), "")
	case okA:
		loc = a.Location
		_ = c.buf.ReplaceRange(a, "")
	case okI:
		loc = in.Location
		_ = c.buf.ReplaceRange(in, "")
	}
	c.mode = ModeNormal
	c.setCursor(loc)
	c.log.Debug("composition exited", zap.Int("resume", loc))
	return loc
}

// ConfirmComposition turns the trimmed input text into a token placed where
// the anchor was.
func (c *Controller) ConfirmComposition() (buffer.Token, error) {
	if c.mode != ModeComposition {
		return buffer.Token{}, ErrNotComposing
	}
	c.begin()
	defer c.end()

	text, _, _ := c.buf.InputText()
	loc := c.exitComposition()
	text = trimmedClusters(text)
	if text == "" {
		return buffer.Token{}, ErrEmptyComposition
	}
	return c.addToken(loc, text)
}

// CancelComposition ends the composition for reason. CancelDeleteInput
// removes the composition text; other reasons keep it as plain text.
func (c *Controller) CancelComposition(reason CancelReason) error {
	if c.mode != ModeComposition {
		return ErrNotComposing
	}
	c.begin()
	defer c.end()
	c.cancelComposition(reason)
	return nil
}

func (c *Controller) cancelComposition(reason CancelReason) {
	if reason == CancelDeleteInput {
		c.exitComposition()
	} else {
		c.buf.ClearComposition()
		c.mode = ModeNormal
		c.setCursor(c.clampToToken(c.sel.End()))
	}
	c.log.Debug("composition canceled", zap.Stringer("reason", reason))
	c.notify(func(h Host) { h.CompositionCanceled(reason) })
}

func (c *Controller) compositionEdit(r buffer.Span, text string) {
	c.begin()
	defer c.end()

	switch {
	case r.Length == 0 && text != "":
		c.compositionInsert(r.Location, text)
	case r.Length == 1 && text == "":
		c.compositionDelete(r.Location)
	default:
		c.log.Debug("composition edit ignored", zap.Int("location", r.Location), zap.Int("length", r.Length))
	}
}

func (c *Controller) compositionInsert(loc int, text string) {
	if isLineBreakText(text) {
		c.notify(func(h Host) { h.CompositionConfirmed() })
		return
	}
	_, a, ok := c.buf.Anchor()
	if !ok {
		c.cancelComposition(CancelDeleteInput)
		return
	}
	end := a.End()
	if _, in, ok := c.buf.InputText(); ok {
		end = in.End()
	}
	loc = max(a.End(), min(loc, end))

	ins, err := c.buf.InsertAttributed(loc, text, buffer.Attrs{buffer.AttrInput: buffer.InputText})
	if err != nil {
		return
	}
	c.setCursor(ins.End())

	input, _, _ := c.buf.InputText()
	c.notify(func(h Host) { h.CompositionTextChanged(input) })
	if c.host.ShouldCancelCompositionAtInsert(text, input) {
		c.cancelComposition(CancelTapOut)
	}
}

func (c *Controller) compositionDelete(loc int) {
	_, a, ok := c.buf.Anchor()
	if !ok || a.Contains(loc) {
		c.cancelComposition(CancelDeleteInput)
		return
	}
	_, in, ok := c.buf.InputText()
	if !ok || !in.Contains(loc) {
		return
	}
	_ = c.buf.ReplaceRange(buffer.Span{Location: loc, Length: 1}, "")
	c.setCursor(loc)
	input, _, _ := c.buf.InputText()
	c.notify(func(h Host) { h.CompositionTextChanged(input) })
}

func (c *Controller) compositionTap(index int) {
	if c.suspended {
		c.suspended = false
		return
	}
	_, a, ok := c.buf.Anchor()
	if !ok {
		c.cancelComposition(CancelDeleteInput)
		return
	}
	end := a.End()
	if _, in, ok := c.buf.InputText(); ok {
		end = max(end, in.End())
	}
	if index < a.Location || index >= end {
		c.cancelComposition(CancelTapOut)
	}
}
