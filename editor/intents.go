package editor

import (
	"go.uber.org/zap"

	"github.com/iw2rmb/tokenfield/buffer"
	"github.com/iw2rmb/tokenfield/internal/grapheme"
)

// ProposeEdit is the host's request to replace r with replacement. It
// returns true when the controller applied the edit as proposed and false
// when it rejected the edit or applied a different one (a whole-token
// delete, a composition insert). The host must not apply the edit itself
// in either case; it re-reads the text after TextChanged.
func (c *Controller) ProposeEdit(r buffer.Span, replacement string) (bool, error) {
	if r.Location < 0 || r.Length < 0 || r.End() > c.buf.Len() {
		return false, spanErr(r, c.buf.Len())
	}
	if c.mode == ModeComposition {
		c.compositionEdit(r, replacement)
		return false, nil
	}
	return c.normalEdit(r, replacement), nil
}

func (c *Controller) normalEdit(r buffer.Span, replacement string) bool {
	if r.Length == 1 && replacement == "" {
		if t, ok := c.buf.TokenAt(r.Location); ok {
			c.log.Debug("single delete removes token", zap.String("ref", t.Reference))
			c.begin()
			defer c.end()
			c.deleteToken(t)
			return false
		}
	}

	if r.Length > 0 {
		if !c.buf.IsValidEditRange(r) {
			c.log.Debug("edit rejected: partial token overlap", zap.Int("location", r.Location), zap.Int("length", r.Length))
			return false
		}
		if refs := c.buf.TokensIntersecting(r); len(refs) > 0 {
			c.replaceRangeAndTokens(r, replacement, refs)
			return false
		}
	} else if !c.buf.IsTokenBoundary(r.Location) {
		c.log.Debug("edit rejected: insert inside token", zap.Int("location", r.Location))
		return false
	}

	if !c.host.ShouldChangeText(r, replacement) {
		return false
	}

	c.begin()
	defer c.end()
	ins, err := c.buf.ReplaceAttributed(r, replacement, nil)
	if err != nil {
		return false
	}
	c.setCursor(ins.End())
	return true
}

// replaceRangeAndTokens applies the edit and strips whatever remains of the
// intersecting tokens.
func (c *Controller) replaceRangeAndTokens(r buffer.Span, replacement string, refs []string) {
	c.begin()
	defer c.end()

	ins, _ := c.buf.ReplaceAttributed(r, replacement, nil)
	c.setCursor(ins.End())
	for _, ref := range refs {
		t, ok := c.buf.TokenByReference(ref)
		if !ok {
			continue
		}
		_ = c.buf.ReplaceRange(t.Range, "")
		c.adjustSelection(t.Range, 0)
	}
	c.setCursor(c.sel.Location)
	for _, ref := range refs {
		c.log.Debug("token deleted by edit", zap.String("ref", ref))
		c.notify(func(h Host) { h.TokenDeleted(ref) })
	}
}

// ReportSelectionChanged reports a selection made in the host's view and
// returns the effective selection. When the controller clamps it, the host
// also receives SelectionChanged with the override. A selection outside the
// text fails with ErrInvalidRange and leaves the current one in place.
func (c *Controller) ReportSelectionChanged(r buffer.Span) (buffer.Span, error) {
	if r.Location < 0 || r.Length < 0 || r.End() > c.buf.Len() {
		return c.sel, spanErr(r, c.buf.Len())
	}
	c.setSelection(r)

	c.enter()
	defer c.leave()
	c.applySelectionPolicy()
	return c.sel, nil
}

func (c *Controller) applySelectionPolicy() {
	if c.mode == ModeComposition {
		c.clampToComposition()
		return
	}

	if c.sel.IsEmpty() {
		if loc := c.clampToToken(c.sel.Location); loc != c.sel.Location {
			c.log.Debug("cursor clamped", zap.Int("from", c.sel.Location), zap.Int("to", loc))
			c.setCursor(loc)
		}
		return
	}
	start := c.clampToToken(c.sel.Location)
	end := max(start, c.clampToToken(c.sel.End()))
	if start != c.sel.Location || end != c.sel.End() {
		c.log.Debug("selection clamped", zap.Int("start", start), zap.Int("end", end))
		c.setSelection(buffer.Span{Location: start, Length: end - start})
	}
}

// clampToToken snaps a location strictly inside a token to the nearer token
// boundary. The exact midpoint snaps to the end.
func (c *Controller) clampToToken(loc int) int {
	t, ok := c.buf.TokenAt(loc)
	if !ok || loc == t.Range.Location {
		return loc
	}
	start, end := t.Range.Location, t.Range.End()
	if end-loc <= loc-start {
		return end
	}
	return start
}

// clampToComposition keeps the cursor inside [input start, input end], or
// right after the anchor when there is no input text yet. A composition whose
// spans have vanished is canceled.
func (c *Controller) clampToComposition() {
	if _, in, ok := c.buf.InputText(); ok {
		loc := max(in.Location, min(c.sel.End(), in.End()))
		if loc != c.sel.End() || !c.sel.IsEmpty() {
			c.setCursor(loc)
		}
		return
	}
	if _, a, ok := c.buf.Anchor(); ok {
		if c.sel != (buffer.Span{Location: a.End()}) {
			c.setCursor(a.End())
		}
		return
	}
	c.cancelComposition(CancelDeleteInput)
}

// ReportTap reports a tap on the character at index. In normal mode a tap on
// a token selects it; elsewhere it places the cursor. In composition mode a
// tap outside the composition cancels it, keeping the typed text. index may
// equal the text length; anything outside [0, length] fails with
// ErrInvalidRange.
func (c *Controller) ReportTap(index int) error {
	if index < 0 || index > c.buf.Len() {
		return spanErr(buffer.Span{Location: index}, c.buf.Len())
	}
	c.enter()
	defer c.leave()

	if c.mode == ModeComposition {
		c.compositionTap(index)
		return nil
	}

	if t, ok := c.buf.TokenAt(index); ok {
		c.setFocus(false)
		c.notify(func(h Host) { h.TokenSelected(t.Reference, t.Range) })
		return nil
	}
	c.setFocus(true)
	c.setCursor(index)
	return nil
}

// SuspendInput drops focus; the next composition tap is ignored.
func (c *Controller) SuspendInput() {
	c.enter()
	defer c.leave()
	c.setFocus(false)
	c.suspended = true
}

func isLineBreakText(text string) bool {
	return text == "\n" || text == "\r\n" || text == "\r"
}

func trimmedClusters(text string) string {
	cl := grapheme.Split(text)
	s, e := grapheme.TrimSpaceBounds(cl)
	return grapheme.Join(cl[s:e])
}
