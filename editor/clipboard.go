package editor

import "go.uber.org/zap"

// Clipboard provides controller-level clipboard integration.
//
// Errors must not crash the UI; failures are logged and reported as false.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// Copy writes the selected text, tokens included, to the clipboard.
func (c *Controller) Copy() bool {
	if c.cfg.Clipboard == nil || c.sel.IsEmpty() {
		return false
	}
	text, err := c.buf.Slice(c.sel)
	if err != nil {
		return false
	}
	if err := c.cfg.Clipboard.WriteText(text); err != nil {
		c.log.Debug("clipboard write failed", zap.Error(err))
		return false
	}
	return true
}

// Cut copies the selection and then deletes it through ProposeEdit, so
// whole tokens are deleted and partial overlaps are refused. It reports
// whether text was removed; composition mode never cuts.
func (c *Controller) Cut() bool {
	sel := c.sel
	if c.mode == ModeComposition || !c.buf.IsValidEditRange(sel) {
		return false
	}
	if !c.Copy() {
		return false
	}
	before := c.buf.TextVersion()
	_, err := c.ProposeEdit(sel, "")
	return err == nil && c.buf.TextVersion() != before
}

// PasteFromClipboard pastes clipboard text over the selection.
func (c *Controller) PasteFromClipboard() bool {
	if c.cfg.Clipboard == nil {
		return false
	}
	text, err := c.cfg.Clipboard.ReadText()
	if err != nil {
		c.log.Debug("clipboard read failed", zap.Error(err))
		return false
	}
	return c.Paste(text, nil)
}
