package editor

import "slices"

// PasteType identifies pasteable media content.
type PasteType string

const (
	PasteJPEG PasteType = "public.jpeg"
	PastePNG  PasteType = "public.png"
	PasteGIF  PasteType = "com.compuserve.gif"
)

// AllPasteTypes lists the media types a host may accept.
func AllPasteTypes() []PasteType {
	return []PasteType{PasteJPEG, PastePNG, PasteGIF}
}

// PasteItem is one media payload. The controller never interprets Data.
type PasteItem struct {
	Type PasteType
	Data []byte
}

// AcceptedPasteTypes returns the media types the host accepts.
func (c *Controller) AcceptedPasteTypes() []PasteType {
	var out []PasteType
	for _, t := range AllPasteTypes() {
		if c.host.ShouldAcceptPastedContent(t) {
			out = append(out, t)
		}
	}
	return out
}

// CanPaste reports whether any of the available media types is accepted.
func (c *Controller) CanPaste(available []PasteType) bool {
	accepted := c.AcceptedPasteTypes()
	for _, t := range available {
		if slices.Contains(accepted, t) {
			return true
		}
	}
	return false
}

// Paste inserts text over the selection as a regular edit and forwards the
// accepted media items to the host. It reports whether anything was pasted.
func (c *Controller) Paste(text string, items []PasteItem) bool {
	c.enter()
	defer c.leave()

	pasted := false
	if text != "" {
		before := c.buf.TextVersion()
		applied, err := c.ProposeEdit(c.sel, text)
		pasted = err == nil && (applied || c.buf.TextVersion() != before)
	}

	accepted := c.AcceptedPasteTypes()
	var out []PasteItem
	for _, it := range items {
		if slices.Contains(accepted, it.Type) {
			out = append(out, it)
		}
	}
	if len(out) > 0 {
		c.notify(func(h Host) { h.PastedContentReceived(out) })
		pasted = true
	}
	return pasted
}
