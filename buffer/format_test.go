package buffer

import (
	"slices"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

type testDelegate struct {
	colors map[string]TokenColors
	extra  []FormatRun
}

func (d testDelegate) AdditionalFormatting(string, Span) []FormatRun { return d.extra }

func (d testDelegate) TokenColors(ref string) TokenColors { return d.colors[ref] }

func presAt(t *testing.T, runs []FormatRun, loc int) Presentation {
	t.Helper()
	for _, r := range runs {
		if r.Range.Contains(loc) {
			return r.Presentation
		}
	}
	t.Fatalf("no run covers %d", loc)
	return Presentation{}
}

func TestBuffer_Formatting_TokenKernAndColors(t *testing.T) {
	red := lipgloss.Color("#ff0000")
	b := New("ab", Options{
		Style:    StyleConfig{TokenInsetLeading: 1, TokenInsetTrailing: 1},
		Delegate: testDelegate{colors: map[string]TokenColors{"t": {Background: red}}},
	})
	if _, err := b.AddToken(Attrs{AttrToken: "t"}, 2, " xy "); err != nil {
		t.Fatalf("AddToken: %v", err)
	}

	runs := b.Formatting()
	if got := presAt(t, runs, 0); got.Kern != 0 || got.Background != "" || got.Foreground != "#242424" {
		t.Fatalf("plain presentation=%+v", got)
	}
	if got := presAt(t, runs, 2); got.Kern != 3 || got.Background != "" {
		t.Fatalf("token start presentation=%+v", got)
	}
	if got := presAt(t, runs, 3); got.Kern != 0 || got.Background != red {
		t.Fatalf("token body presentation=%+v", got)
	}
	if got := presAt(t, runs, 5); got.Kern != 3 || got.Background != "" {
		t.Fatalf("token end presentation=%+v", got)
	}
}

func TestBuffer_FormattingPass_Idempotent(t *testing.T) {
	b := New("Hello ", Options{Delegate: testDelegate{}})
	if _, err := b.AddToken(Attrs{AttrToken: "t"}, 6, " bob "); err != nil {
		t.Fatalf("AddToken: %v", err)
	}
	all := Span{Length: b.Len()}

	first, err := b.FormattingPass(all)
	if err != nil {
		t.Fatalf("FormattingPass: %v", err)
	}
	b.RefreshFormatting()
	b.RefreshFormatting()
	second, err := b.FormattingPass(all)
	if err != nil {
		t.Fatalf("FormattingPass: %v", err)
	}
	if !slices.Equal(first, second) {
		t.Fatalf("formatting changed:\n%+v\n%+v", first, second)
	}
	if !slices.Equal(first, b.Formatting()) {
		t.Fatalf("cached formatting differs:\n%+v\n%+v", first, b.Formatting())
	}
}

func TestBuffer_Formatting_CompositionUsesLinkColor(t *testing.T) {
	b := New("x ", Options{})
	if _, err := b.SetCompositionAnchor(2, "@"); err != nil {
		t.Fatalf("SetCompositionAnchor: %v", err)
	}
	if _, err := b.InsertAttributed(3, "al", Attrs{AttrInput: InputText}); err != nil {
		t.Fatalf("InsertAttributed: %v", err)
	}
	runs := b.Formatting()
	for _, loc := range []int{2, 3, 4} {
		if got, want := presAt(t, runs, loc).Foreground, lipgloss.Color("#00AEEF"); got != want {
			t.Fatalf("fg at %d=%q, want %q", loc, got, want)
		}
	}
	if got := presAt(t, runs, 0).Foreground; got != "#242424" {
		t.Fatalf("fg at 0=%q", got)
	}
}

func TestBuffer_Formatting_HostExtrasSkipTokens(t *testing.T) {
	d := testDelegate{extra: []FormatRun{
		{Range: Span{Location: 0, Length: 2}, Presentation: Presentation{Underline: true}},
		{Range: Span{Location: 2, Length: 4}, Presentation: Presentation{Bold: true}},
	}}
	b := New("ab", Options{Delegate: d})
	if _, err := b.AddToken(Attrs{AttrToken: "t"}, 2, " x "); err != nil {
		t.Fatalf("AddToken: %v", err)
	}
	runs := b.Formatting()
	if !presAt(t, runs, 0).Underline {
		t.Fatalf("expected underline outside token")
	}
	if presAt(t, runs, 3).Bold {
		t.Fatalf("extra run intersecting a token must be skipped")
	}
}

func TestBuffer_Formatting_OncePerTransaction(t *testing.T) {
	b := New("abc", Options{})
	fv := b.FormatVersion()
	b.Batch(func() {
		_ = b.ReplaceRange(Span{Location: 3}, "d")
		_ = b.ReplaceRange(Span{Location: 0, Length: 1}, "A")
		_ = b.SetAttribute(AttrToken, "t", Span{Location: 1, Length: 2})
	})
	if got, want := b.FormatVersion(), fv+1; got != want {
		t.Fatalf("formatVersion=%d, want %d", got, want)
	}

	b.BeginEditing()
	b.BeginEditing()
	_ = b.ReplaceRange(Span{Location: 4}, "e")
	b.EndEditing()
	if got, want := b.FormatVersion(), fv+1; got != want {
		t.Fatalf("inner EndEditing formatted: formatVersion=%d, want %d", got, want)
	}
	b.EndEditing()
	if got, want := b.FormatVersion(), fv+2; got != want {
		t.Fatalf("formatVersion=%d, want %d", got, want)
	}
}

func TestBuffer_FormattingPass_InvalidRange(t *testing.T) {
	b := New("ab", Options{})
	if _, err := b.FormattingPass(Span{Location: 1, Length: 5}); err == nil {
		t.Fatalf("expected error")
	}
}
