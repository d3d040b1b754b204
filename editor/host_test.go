package editor

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/tokenfield/buffer"
)

// recordingHost records every callback in order.
type recordingHost struct {
	NopHost

	events []string

	reject         bool
	cancelAtInsert func(newText, inputText string) bool
	acceptTypes    []PasteType
	pasted         [][]PasteItem
}

func (h *recordingHost) add(format string, args ...any) {
	h.events = append(h.events, fmt.Sprintf(format, args...))
}

func (h *recordingHost) reset() { h.events = nil }

func (h *recordingHost) filter(prefix string) []string {
	var out []string
	for _, ev := range h.events {
		if strings.HasPrefix(ev, prefix) {
			out = append(out, ev)
		}
	}
	return out
}

func (h *recordingHost) TextChanged() { h.add("text") }

func (h *recordingHost) ShouldChangeText(buffer.Span, string) bool { return !h.reject }

func (h *recordingHost) TokenSelected(ref string, r buffer.Span) {
	h.add("token-selected:%s@%d+%d", ref, r.Location, r.Length)
}

func (h *recordingHost) TokenAdded(ref string) { h.add("token-added:%s", ref) }

func (h *recordingHost) TokenDeleted(ref string) { h.add("token-deleted:%s", ref) }

func (h *recordingHost) CompositionTextChanged(text string) { h.add("composition-text:%s", text) }

func (h *recordingHost) CompositionConfirmed() { h.add("composition-confirmed") }

func (h *recordingHost) CompositionCanceled(reason CancelReason) {
	h.add("composition-canceled:%s", reason)
}

func (h *recordingHost) ShouldCancelCompositionAtInsert(newText, inputText string) bool {
	return h.cancelAtInsert != nil && h.cancelAtInsert(newText, inputText)
}

func (h *recordingHost) SelectionChanged(r buffer.Span) {
	h.add("selection:%d+%d", r.Location, r.Length)
}

func (h *recordingHost) FocusChanged(focused bool) { h.add("focus:%v", focused) }

func (h *recordingHost) ShouldAcceptPastedContent(t PasteType) bool {
	for _, a := range h.acceptTypes {
		if a == t {
			return true
		}
	}
	return false
}

func (h *recordingHost) PastedContentReceived(items []PasteItem) {
	h.pasted = append(h.pasted, items)
}

func sequentialRefs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

func newTestController(text string) (*Controller, *recordingHost) {
	h := &recordingHost{}
	c := New(Config{Text: text, Host: h, NewReference: sequentialRefs()})
	return c, h
}
