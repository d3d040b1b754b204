package editor

import (
	"go.uber.org/zap"

	"github.com/iw2rmb/tokenfield/buffer"
)

// AddToken wraps text in the decoration and inserts it at index as a new
// token with a fresh reference. The cursor moves right after the token.
func (c *Controller) AddToken(index int, text string) (buffer.Token, error) {
	c.begin()
	defer c.end()
	return c.addToken(index, text)
}

func (c *Controller) addToken(index int, text string) (buffer.Token, error) {
	ref := c.cfg.NewReference()
	attrs := buffer.Attrs{buffer.AttrToken: ref}
	if _, err := c.buf.AddToken(attrs, index, c.cfg.Decoration.apply(text)); err != nil {
		return buffer.Token{}, err
	}
	t, _ := c.buf.TokenByReference(ref)
	c.setCursor(t.Range.End())
	c.log.Debug("token added", zap.String("ref", ref), zap.Int("location", t.Range.Location), zap.Int("length", t.Range.Length))
	c.notify(func(h Host) { h.TokenAdded(ref) })
	return t, nil
}

// UpdateTokenText replaces the token's text with newText, decorated, keeping
// its reference. It reports whether the token exists.
func (c *Controller) UpdateTokenText(ref, newText string) bool {
	t, ok := c.buf.TokenByReference(ref)
	if !ok {
		return false
	}
	c.begin()
	defer c.end()

	attrs := buffer.Attrs{buffer.AttrToken: ref}
	r, err := c.buf.ReplaceAttributed(t.Range, c.cfg.Decoration.apply(newText), attrs)
	if err != nil {
		return false
	}
	c.adjustSelection(t.Range, r.Length)
	c.repositionCursor()
	return true
}

// DeleteToken removes the token's whole decorated text and collapses the
// cursor to the token's former location. Deleting an unknown reference is a
// no-op, so repeated deletes are safe. It reports whether a token was removed.
func (c *Controller) DeleteToken(ref string) bool {
	t, ok := c.buf.TokenByReference(ref)
	if !ok {
		return false
	}
	c.begin()
	defer c.end()
	c.deleteToken(t)
	return true
}

func (c *Controller) deleteToken(t buffer.Token) {
	_ = c.buf.ReplaceRange(t.Range, "")
	c.setCursor(t.Range.Location)
	ref := t.Reference
	c.log.Debug("token deleted", zap.String("ref", ref))
	c.notify(func(h Host) { h.TokenDeleted(ref) })
}

// TokenizeAllEditableText turns every stretch of plain text between tokens
// into a token of its trimmed text and moves the cursor to the end. It
// returns the new references in document order. An active composition is
// canceled first with CancelOther, keeping its text.
func (c *Controller) TokenizeAllEditableText() []string {
	c.begin()
	defer c.end()
	return c.tokenizeAll()
}

func (c *Controller) tokenizeAll() []string {
	if c.mode == ModeComposition {
		c.cancelComposition(CancelOther)
	}

	gaps := c.discontinuities()
	var refs []string
	for i := len(gaps) - 1; i >= 0; i-- {
		g := gaps[i]
		text, err := c.buf.Slice(g)
		if err != nil {
			continue
		}
		text = trimmedClusters(text)
		if text == "" {
			continue
		}
		ref := c.cfg.NewReference()
		if _, err := c.buf.ReplaceAttributed(g, c.cfg.Decoration.apply(text), buffer.Attrs{buffer.AttrToken: ref}); err != nil {
			continue
		}
		refs = append(refs, ref)
	}

	out := make([]string, 0, len(refs))
	for i := len(refs) - 1; i >= 0; i-- {
		ref := refs[i]
		out = append(out, ref)
		c.notify(func(h Host) { h.TokenAdded(ref) })
	}
	c.setCursor(c.buf.Len())
	c.log.Debug("tokenized editable text", zap.Int("tokens", len(out)))
	return out
}

// discontinuities returns the maximal spans not covered by any token, in
// document order.
func (c *Controller) discontinuities() []buffer.Span {
	var out []buffer.Span
	prev := 0
	for _, t := range c.buf.Tokens() {
		if t.Range.Location > prev {
			out = append(out, buffer.Span{Location: prev, Length: t.Range.Location - prev})
		}
		prev = t.Range.End()
	}
	if n := c.buf.Len(); n > prev {
		out = append(out, buffer.Span{Location: prev, Length: n - prev})
	}
	return out
}

// MakeTokenEditableAndMoveToFront turns a token back into plain text for
// editing: other plain text is tokenized first, the token is deleted and its
// trimmed text is appended at the end with the cursor after it.
func (c *Controller) MakeTokenEditableAndMoveToFront(ref string) bool {
	t, ok := c.buf.TokenByReference(ref)
	if !ok {
		return false
	}
	c.begin()
	defer c.end()

	captured := trimmedClusters(t.Text)
	c.tokenizeAll()
	if t, ok = c.buf.TokenByReference(ref); ok {
		c.deleteToken(t)
	}
	_ = c.buf.ReplaceRange(buffer.Span{Location: c.buf.Len()}, captured)
	c.setCursor(c.buf.Len())
	c.setFocus(true)
	return true
}
