package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/tokenfield/buffer"
	"github.com/iw2rmb/tokenfield/editor"
	"github.com/iw2rmb/tokenfield/internal/config"
	"github.com/iw2rmb/tokenfield/internal/grapheme"
)

// demoHost answers controller queries from the file config and keeps the
// latest notification for the status line.
type demoHost struct {
	editor.NopHost

	cfg    config.Config
	status string
	// confirm is set by CompositionConfirmed and consumed by the model.
	confirm bool
}

func (h *demoHost) setStatus(format string, args ...any) {
	h.status = fmt.Sprintf(format, args...)
}

func (h *demoHost) TokenAdded(ref string) { h.setStatus("token added %s", short(ref)) }

func (h *demoHost) TokenDeleted(ref string) { h.setStatus("token deleted %s", short(ref)) }

func (h *demoHost) TokenSelected(ref string, r buffer.Span) {
	h.setStatus("token %s selected at [%d,%d)", short(ref), r.Location, r.End())
}

func (h *demoHost) CompositionTextChanged(text string) {
	h.setStatus("composing %q", text)
}

func (h *demoHost) CompositionConfirmed() { h.confirm = true }

func (h *demoHost) CompositionCanceled(reason editor.CancelReason) {
	h.setStatus("composition canceled (%s)", reason)
}

func (h *demoHost) ShouldCancelCompositionAtInsert(newText, _ string) bool {
	return h.cfg.Composition.CancelOnSpace && newText == " "
}

func (h *demoHost) TokenColors(string) buffer.TokenColors { return h.cfg.TokenColors() }

// AdditionalFormatting underlines words that look like links.
func (h *demoHost) AdditionalFormatting(text string, search buffer.Span) []buffer.FormatRun {
	var out []buffer.FormatRun
	clusters := grapheme.Split(text)
	end := min(search.End(), len(clusters))
	for i := search.Location; i < end; {
		if strings.TrimSpace(clusters[i]) == "" {
			i++
			continue
		}
		j := i
		for j < len(clusters) && strings.TrimSpace(clusters[j]) != "" {
			j++
		}
		word := strings.Join(clusters[i:j], "")
		if strings.HasPrefix(word, "http://") || strings.HasPrefix(word, "https://") {
			out = append(out, buffer.FormatRun{
				Range:        buffer.Span{Location: i, Length: j - i},
				Presentation: buffer.Presentation{Underline: true, Foreground: lipgloss.Color(h.cfg.Style.Link), Link: word},
			})
		}
		i = j
	}
	return out
}

func (h *demoHost) ShouldAcceptPastedContent(t editor.PasteType) bool {
	return t == editor.PastePNG
}

func (h *demoHost) PastedContentReceived(items []editor.PasteItem) {
	h.setStatus("received %d pasted item(s)", len(items))
}

func short(ref string) string {
	if i := strings.IndexFunc(ref, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }); i > 0 {
		return ref[:i]
	}
	return ref
}
