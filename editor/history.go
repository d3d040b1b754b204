package editor

import "slices"

// Undo reverts the last edit. Composition steps are undone as one unit, so
// undo never lands in a half-typed composition. It is refused while
// composing. Tokens that disappear or reappear are reported through
// TokenDeleted and TokenAdded.
func (c *Controller) Undo() bool {
	return c.history(c.buf.Undo)
}

func (c *Controller) Redo() bool {
	return c.history(c.buf.Redo)
}

func (c *Controller) CanUndo() bool { return c.mode == ModeNormal && c.buf.CanUndo() }

func (c *Controller) CanRedo() bool { return c.mode == ModeNormal && c.buf.CanRedo() }

func (c *Controller) history(step func() bool) bool {
	if c.mode == ModeComposition {
		return false
	}
	c.enter()
	defer c.leave()

	before := c.tokenRefs()
	if !step() {
		return false
	}
	for c.hasCompositionMarks() && step() {
	}
	if c.hasCompositionMarks() {
		c.buf.ClearComposition()
	}

	n := c.buf.Len()
	start := min(c.sel.Location, n)
	end := min(c.sel.End(), n)
	c.setSelection(spanOf(start, end))
	c.applySelectionPolicy()

	after := c.tokenRefs()
	for _, ref := range before {
		if !slices.Contains(after, ref) {
			c.notify(func(h Host) { h.TokenDeleted(ref) })
		}
	}
	for _, ref := range after {
		if !slices.Contains(before, ref) {
			c.notify(func(h Host) { h.TokenAdded(ref) })
		}
	}
	return true
}

func (c *Controller) hasCompositionMarks() bool {
	_, _, a := c.buf.Anchor()
	_, _, in := c.buf.InputText()
	return a || in
}

func (c *Controller) tokenRefs() []string {
	toks := c.buf.Tokens()
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Reference
	}
	return out
}
