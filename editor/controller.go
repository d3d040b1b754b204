package editor

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/iw2rmb/tokenfield/buffer"
)

// Mode is the controller's editing mode.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeComposition
)

func (m Mode) String() string {
	if m == ModeComposition {
		return "composition"
	}
	return "normal"
}

// Controller owns one buffer and mediates every host intent into it.
//
// Controller is not safe for concurrent use.
type Controller struct {
	buf  *buffer.Buffer
	cfg  Config
	host Host
	log  *zap.Logger

	mode      Mode
	sel       buffer.Span
	selAnchor int
	focused   bool
	suspended bool

	depth      int
	textBefore uint64
	selBefore  buffer.Span
	pending    []func(Host)
}

func New(cfg Config) *Controller {
	cfg = normalizeConfig(cfg)
	c := &Controller{
		cfg:  cfg,
		host: cfg.Host,
		log:  cfg.Logger,
	}
	c.buf = buffer.New(cfg.Text, buffer.Options{
		HistoryLimit:       cfg.HistoryLimit,
		Quotes:             cfg.Quotes,
		DisableSmartQuotes: cfg.DisableSmartQuotes,
		Style:              cfg.Style,
		Delegate:           cfg.Host,
	})
	c.setCursor(c.buf.Len())
	return c
}

// Buffer exposes the underlying buffer for read access. Hosts must not
// mutate it directly.
func (c *Controller) Buffer() *buffer.Buffer { return c.buf }

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) Text() string { return c.buf.Text() }

func (c *Controller) Len() int { return c.buf.Len() }

func (c *Controller) Selection() buffer.Span { return c.sel }

func (c *Controller) Focused() bool { return c.focused }

func (c *Controller) Tokens() []buffer.Token { return c.buf.Tokens() }

func (c *Controller) TokenAt(loc int) (buffer.Token, bool) { return c.buf.TokenAt(loc) }

func (c *Controller) RangeIntersectsToken(r buffer.Span) bool {
	return c.buf.RangeIntersectsAnyToken(r)
}

func (c *Controller) RangeIntersectsComposition(r buffer.Span) bool {
	return c.buf.RangeIntersectsComposition(r)
}

// Formatting returns the presentation runs of the whole buffer.
func (c *Controller) Formatting() []buffer.FormatRun { return c.buf.Formatting() }

// RefreshFormatting reformats the whole buffer, e.g. after a host-side style
// or token color change.
func (c *Controller) RefreshFormatting() { c.buf.RefreshFormatting() }

// enter and leave bracket a controller operation. Notifications queued while
// an operation runs are delivered when the outermost one leaves.
func (c *Controller) enter() {
	if c.depth == 0 {
		c.textBefore = c.buf.TextVersion()
		c.selBefore = c.sel
	}
	c.depth++
}

func (c *Controller) leave() {
	c.depth--
	if c.depth > 0 {
		return
	}

	var head []func(Host)
	if c.buf.TextVersion() != c.textBefore {
		head = append(head, func(h Host) { h.TextChanged() })
	}
	if c.sel != c.selBefore {
		sel := c.sel
		head = append(head, func(h Host) { h.SelectionChanged(sel) })
	}
	c.pending = append(head, c.pending...)
	c.flush()
}

// begin and end additionally wrap the operation in one buffer transaction.
func (c *Controller) begin() {
	c.enter()
	c.buf.BeginEditing()
}

func (c *Controller) end() {
	c.buf.EndEditing()
	c.leave()
}

func (c *Controller) notify(fn func(Host)) {
	c.pending = append(c.pending, fn)
}

func (c *Controller) flush() {
	for len(c.pending) > 0 {
		q := c.pending
		c.pending = nil
		for _, fn := range q {
			fn(c.host)
		}
	}
}

func (c *Controller) setCursor(loc int) {
	loc = max(0, min(loc, c.buf.Len()))
	c.sel = buffer.Span{Location: loc}
	c.selAnchor = loc
}

func (c *Controller) setSelection(r buffer.Span) {
	c.sel = r
	c.selAnchor = r.Location
}

func (c *Controller) setFocus(focused bool) {
	if c.focused == focused {
		return
	}
	c.focused = focused
	c.notify(func(h Host) { h.FocusChanged(focused) })
}

// SetFocused records whether the host's text view holds input focus.
func (c *Controller) SetFocused(focused bool) {
	c.enter()
	defer c.leave()
	c.setFocus(focused)
	if focused {
		c.suspended = false
	}
}

// SetSelection sets the selection programmatically. In normal mode both ends
// are clamped out of tokens; in composition mode the cursor is clamped into
// the input window.
func (c *Controller) SetSelection(r buffer.Span) error {
	if r.Location < 0 || r.Length < 0 || r.End() > c.buf.Len() {
		return spanErr(r, c.buf.Len())
	}
	c.setSelection(r)
	c.enter()
	defer c.leave()
	c.applySelectionPolicy()
	return nil
}

// adjustSelection maps the selection through a replacement of r by newLen
// clusters.
func (c *Controller) adjustSelection(r buffer.Span, newLen int) {
	mapPos := func(p int) int {
		switch {
		case p <= r.Location:
			return p
		case p >= r.End():
			return p + newLen - r.Length
		default:
			return r.Location + newLen
		}
	}
	start, end := mapPos(c.sel.Location), mapPos(c.sel.End())
	anchor := mapPos(c.selAnchor)
	c.sel = buffer.Span{Location: start, Length: max(end-start, 0)}
	c.selAnchor = anchor
}

// repositionCursor moves a cursor that sits strictly inside a token to the
// token's end.
func (c *Controller) repositionCursor() {
	if !c.sel.IsEmpty() {
		return
	}
	if t, ok := c.buf.TokenAt(c.sel.Location); ok && t.Range.Location != c.sel.Location {
		c.setCursor(t.Range.End())
	}
}

// SetText replaces the whole content with plain text. Tokens and any
// composition are dropped and the cursor moves to the end.
func (c *Controller) SetText(text string) {
	c.begin()
	defer c.end()
	if c.mode == ModeComposition {
		c.mode = ModeNormal
		c.log.Debug("composition dropped by SetText")
	}
	_ = c.buf.ReplaceRange(buffer.Span{Length: c.buf.Len()}, text)
	c.setCursor(c.buf.Len())
}

func (c *Controller) AppendText(text string) {
	c.begin()
	defer c.end()
	n := c.buf.Len()
	_ = c.buf.ReplaceRange(buffer.Span{Location: n}, text)
	c.adjustSelection(buffer.Span{Location: n}, c.buf.Len()-n)
	c.repositionCursor()
}

// PrependText inserts text at the start; the cursor shifts by its length.
func (c *Controller) PrependText(text string) {
	c.begin()
	defer c.end()
	n := c.buf.Len()
	_ = c.buf.ReplaceRange(buffer.Span{}, text)
	added := c.buf.Len() - n
	c.sel.Location += added
	c.selAnchor += added
	c.repositionCursor()
}

// ReplaceFirstOccurrence replaces the first occurrence of old that lies on
// cluster boundaries and touches no token. A cursor after the match shifts
// by the length difference.
func (c *Controller) ReplaceFirstOccurrence(old, replacement string) bool {
	if old == "" {
		return false
	}
	text := c.buf.Text()
	policy := buffer.ConvertPolicy{Unit: buffer.UnitByte}
	for from := 0; from <= len(text); {
		i := strings.Index(text[from:], old)
		if i < 0 {
			return false
		}
		i += from
		r, ok := c.buf.SpanFromOffsets(i, i+len(old), policy)
		if ok && !c.buf.RangeIntersectsAnyToken(r) {
			c.replaceFound(r, replacement)
			return true
		}
		from = i + 1
	}
	return false
}

func (c *Controller) replaceFound(r buffer.Span, replacement string) {
	c.begin()
	defer c.end()
	cursor := c.sel.Location
	n := c.buf.Len()
	_ = c.buf.ReplaceRange(r, replacement)
	if cursor > r.Location {
		c.setCursor(min(cursor+c.buf.Len()-n, c.buf.Len()))
		c.repositionCursor()
	}
}

// ReplaceRange replaces r with plain text unless r intersects a token, in
// which case it does nothing.
func (c *Controller) ReplaceRange(r buffer.Span, text string) error {
	if r.Location < 0 || r.Length < 0 || r.End() > c.buf.Len() {
		return spanErr(r, c.buf.Len())
	}
	if c.buf.RangeIntersectsAnyToken(r) {
		c.log.Debug("replace skipped: range intersects token", zap.Int("location", r.Location), zap.Int("length", r.Length))
		return nil
	}
	c.begin()
	defer c.end()
	n := c.buf.Len()
	if err := c.buf.ReplaceRange(r, text); err != nil {
		return err
	}
	c.adjustSelection(r, r.Length+c.buf.Len()-n)
	return nil
}

// InsertString inserts plain text at loc. loc must not split a token.
func (c *Controller) InsertString(text string, loc int) error {
	if loc < 0 || loc > c.buf.Len() {
		return fmt.Errorf("%w: location %d outside [0,%d]", ErrInvalidRange, loc, c.buf.Len())
	}
	if !c.buf.IsTokenBoundary(loc) {
		return fmt.Errorf("%w: location %d splits a token", ErrInvalidRange, loc)
	}
	c.begin()
	defer c.end()
	n := c.buf.Len()
	if err := c.buf.ReplaceRange(buffer.Span{Location: loc}, text); err != nil {
		return err
	}
	c.adjustSelection(buffer.Span{Location: loc}, c.buf.Len()-n)
	return nil
}

func spanErr(r buffer.Span, n int) error {
	return fmt.Errorf("%w: span [%d,%d) outside [0,%d]", ErrInvalidRange, r.Location, r.End(), n)
}

func spanOf(start, end int) buffer.Span {
	return buffer.Span{Location: start, Length: max(end-start, 0)}
}
