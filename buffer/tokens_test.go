package buffer

import (
	"errors"
	"testing"
)

func newTokenBuffer(t *testing.T) *Buffer {
	t.Helper()
	b := New("Hello @davidby how are you", Options{})
	if err := b.SetAttribute(AttrToken, "david", Span{Location: 6, Length: 8}); err != nil {
		t.Fatalf("SetAttribute: %v", err)
	}
	return b
}

func TestBuffer_IsValidEditRange(t *testing.T) {
	b := newTokenBuffer(t)

	cases := []struct {
		r    Span
		want bool
	}{
		{Span{Location: 4, Length: 12}, true},
		{Span{Location: 0, Length: 3}, true},
		{Span{Location: 6, Length: 8}, true},
		{Span{Location: 14, Length: 2}, true},
		{Span{Location: 8, Length: 0}, true},
		{Span{Location: 5, Length: 4}, false},
		{Span{Location: 10, Length: 8}, false},
		{Span{Location: 8, Length: 4}, false},
		{Span{Location: 20, Length: 10}, false},
		{Span{Location: -1, Length: 2}, false},
	}
	for _, tc := range cases {
		if got := b.IsValidEditRange(tc.r); got != tc.want {
			t.Fatalf("IsValidEditRange(%v)=%v, want %v", tc.r, got, tc.want)
		}
	}
}

func TestBuffer_TokenQueries(t *testing.T) {
	b := newTokenBuffer(t)

	toks := b.Tokens()
	if got, want := len(toks), 1; got != want {
		t.Fatalf("tokens=%d, want %d", got, want)
	}
	want := Token{Reference: "david", Text: "@davidby", Range: Span{Location: 6, Length: 8}}
	if toks[0] != want {
		t.Fatalf("token=%+v, want %+v", toks[0], want)
	}

	if tok, ok := b.TokenAt(6); !ok || tok != want {
		t.Fatalf("TokenAt(6)=%+v,%v, want %+v", tok, ok, want)
	}
	if _, ok := b.TokenAt(14); ok {
		t.Fatalf("TokenAt(14) must miss (half-open)")
	}
	if tok, ok := b.TokenByReference("david"); !ok || tok.Range != want.Range {
		t.Fatalf("TokenByReference=%+v,%v", tok, ok)
	}

	refs := b.TokensIntersecting(Span{Location: 0, Length: 7})
	if len(refs) != 1 || refs[0] != "david" {
		t.Fatalf("TokensIntersecting=%v, want [david]", refs)
	}
	if b.RangeIntersectsAnyToken(Span{Location: 0, Length: 6}) {
		t.Fatalf("range ending at token start must not intersect")
	}
}

func TestBuffer_TokensOrdered(t *testing.T) {
	b := New("", Options{})
	if _, err := b.AddToken(Attrs{AttrToken: "b"}, 0, " is awesome "); err != nil {
		t.Fatalf("AddToken: %v", err)
	}
	if _, err := b.AddToken(Attrs{AttrToken: "a"}, 0, " This "); err != nil {
		t.Fatalf("AddToken: %v", err)
	}

	toks := b.Tokens()
	if len(toks) != 2 {
		t.Fatalf("tokens=%d, want 2", len(toks))
	}
	if toks[0].Reference != "a" || toks[0].Text != " This " {
		t.Fatalf("first token=%+v", toks[0])
	}
	if toks[1].Reference != "b" || toks[1].Range != (Span{Location: 6, Length: 12}) {
		t.Fatalf("second token=%+v", toks[1])
	}
}

func TestBuffer_AddToken_Errors(t *testing.T) {
	b := newTokenBuffer(t)

	if _, err := b.AddToken(Attrs{}, 0, " x "); !errors.Is(err, ErrNoTokenReference) {
		t.Fatalf("err=%v, want ErrNoTokenReference", err)
	}
	if _, err := b.AddToken(Attrs{AttrToken: "x"}, 8, " x "); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err=%v, want ErrInvalidRange", err)
	}
	if _, err := b.AddToken(Attrs{AttrToken: "x"}, 99, " x "); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err=%v, want ErrInvalidRange", err)
	}
	if _, err := b.AddToken(Attrs{AttrToken: "david"}, 0, " x "); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err=%v, want ErrInvalidRange for duplicate reference", err)
	}
	if got, want := b.Text(), "Hello @davidby how are you"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_AddToken_EmojiCountsAsOnePosition(t *testing.T) {
	b := New("hi", Options{})
	r, err := b.AddToken(Attrs{AttrToken: "thumb"}, 2, " 👍🏽 ")
	if err != nil {
		t.Fatalf("AddToken: %v", err)
	}
	if got, want := r, (Span{Location: 2, Length: 3}); got != want {
		t.Fatalf("span=%v, want %v", got, want)
	}
	tok, ok := b.TokenAt(3)
	if !ok {
		t.Fatalf("expected token at 3")
	}
	if got, want := tok.Text, " 👍🏽 "; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Len(), 5; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
}

func TestBuffer_RemoveToken_KeepsText(t *testing.T) {
	b := newTokenBuffer(t)
	if !b.RemoveToken("david") {
		t.Fatalf("expected RemoveToken=true")
	}
	if b.RemoveToken("david") {
		t.Fatalf("expected second RemoveToken=false")
	}
	if len(b.Tokens()) != 0 {
		t.Fatalf("expected no tokens")
	}
	if got, want := b.Text(), "Hello @davidby how are you"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_EditsAroundTokenKeepIdentity(t *testing.T) {
	b := newTokenBuffer(t)
	if err := b.ReplaceRange(Span{Location: 0, Length: 5}, "Hi"); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	tok, ok := b.TokenByReference("david")
	if !ok {
		t.Fatalf("token lost")
	}
	if got, want := tok.Range, (Span{Location: 3, Length: 8}); got != want {
		t.Fatalf("range=%v, want %v", got, want)
	}
}

func TestBuffer_Composition(t *testing.T) {
	b := New("Hello ", Options{})
	anchor, err := b.SetCompositionAnchor(6, "@")
	if err != nil {
		t.Fatalf("SetCompositionAnchor: %v", err)
	}
	if got, want := anchor, (Span{Location: 6, Length: 1}); got != want {
		t.Fatalf("anchor=%v, want %v", got, want)
	}
	if _, err := b.InsertAttributed(7, "bob", Attrs{AttrInput: InputText}); err != nil {
		t.Fatalf("InsertAttributed: %v", err)
	}

	text, r, ok := b.InputText()
	if !ok || text != "bob" || r != (Span{Location: 7, Length: 3}) {
		t.Fatalf("InputText=%q,%v,%v", text, r, ok)
	}
	a, ar, ok := b.Anchor()
	if !ok || a != "@" || ar != anchor {
		t.Fatalf("Anchor=%q,%v,%v", a, ar, ok)
	}
	if !b.RangeIntersectsComposition(Span{Location: 9, Length: 1}) {
		t.Fatalf("expected range to intersect composition")
	}
	if b.RangeIntersectsComposition(Span{Location: 0, Length: 6}) {
		t.Fatalf("plain text must not intersect composition")
	}

	b.ClearComposition()
	if _, _, ok := b.Anchor(); ok {
		t.Fatalf("anchor must be cleared")
	}
	if got, want := b.Text(), "Hello @bob"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_SetCompositionInputText(t *testing.T) {
	b := New("@bob", Options{})
	if err := b.SetCompositionInputText(Span{Location: 1, Length: 3}); !errors.Is(err, ErrNoAnchor) {
		t.Fatalf("err=%v, want ErrNoAnchor", err)
	}
	if err := b.SetAttribute(AttrInput, InputAnchor, Span{Location: 0, Length: 1}); err != nil {
		t.Fatalf("SetAttribute: %v", err)
	}
	if err := b.SetCompositionInputText(Span{Location: 2, Length: 2}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err=%v, want ErrInvalidRange", err)
	}
	if err := b.SetCompositionInputText(Span{Location: 1, Length: 3}); err != nil {
		t.Fatalf("SetCompositionInputText: %v", err)
	}
	if text, _, ok := b.InputText(); !ok || text != "bob" {
		t.Fatalf("InputText=%q,%v", text, ok)
	}
}

func TestBuffer_SetCompositionAnchor_ReplacesPrevious(t *testing.T) {
	b := New("ab", Options{})
	if _, err := b.SetCompositionAnchor(0, "@"); err != nil {
		t.Fatalf("SetCompositionAnchor: %v", err)
	}
	if _, err := b.SetCompositionAnchor(3, "#"); err != nil {
		t.Fatalf("SetCompositionAnchor: %v", err)
	}
	a, r, ok := b.Anchor()
	if !ok || a != "#" || r != (Span{Location: 3, Length: 1}) {
		t.Fatalf("Anchor=%q,%v,%v", a, r, ok)
	}
	if got, want := b.Text(), "@ab#"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}
