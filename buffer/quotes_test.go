package buffer

import "testing"

func TestBuffer_SmartQuotes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`Hello "friend" how are you`, "Hello “friend” how are you"},
		{`"hi"`, "“hi”"},
		{`it's`, "it’s"},
		{`'quoted'`, "‘quoted’"},
		{"a\n\"b\"", "a\n“b”"},
		{"no quotes", "no quotes"},
	}
	for _, tc := range cases {
		b := New(tc.in, Options{})
		if got := b.Text(); got != tc.want {
			t.Fatalf("New(%q).Text()=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuffer_SmartQuotes_OnEdit(t *testing.T) {
	b := New("say ", Options{})
	if err := b.ReplaceRange(Span{Location: 4}, `"x`); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	if err := b.ReplaceRange(Span{Location: 6}, `"`); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	if got, want := b.Text(), "say “x”"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Len(), 7; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
}

func TestBuffer_SmartQuotes_Disabled(t *testing.T) {
	b := New(`"raw"`, Options{DisableSmartQuotes: true})
	if got, want := b.Text(), `"raw"`; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if !b.SmartenQuotes() {
		t.Fatalf("expected explicit SmartenQuotes to change text")
	}
	if got, want := b.Text(), "“raw”"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if b.SmartenQuotes() {
		t.Fatalf("second SmartenQuotes must be a no-op")
	}
}

func TestBuffer_SmartQuotes_CustomStyle(t *testing.T) {
	b := New(`"hi"`, Options{Quotes: QuoteStyle{OpenDouble: "«", CloseDouble: "»"}})
	if got, want := b.Text(), "«hi»"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_SmartQuotes_InsideTokenKeepsRange(t *testing.T) {
	b := New("", Options{})
	if _, err := b.AddToken(Attrs{AttrToken: "q"}, 0, ` "x" `); err != nil {
		t.Fatalf("AddToken: %v", err)
	}
	tok, ok := b.TokenByReference("q")
	if !ok {
		t.Fatalf("token lost")
	}
	if got, want := tok.Text, " “x” "; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := tok.Range, (Span{Length: 5}); got != want {
		t.Fatalf("range=%v, want %v", got, want)
	}
}

func TestBuffer_SmartQuotes_MultiClusterGlyphFallsBack(t *testing.T) {
	b := New(`"hi"`, Options{Quotes: QuoteStyle{OpenDouble: "« ", CloseDouble: " »"}})
	if got, want := b.Text(), "“hi”"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Len(), 4; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
}
