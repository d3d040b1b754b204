package buffer

import "github.com/iw2rmb/tokenfield/internal/grapheme"

// QuoteStyle holds the glyphs used to replace ASCII quotes. Each glyph must
// be a single grapheme cluster; others fall back to the default.
type QuoteStyle struct {
	OpenDouble  string
	CloseDouble string
	OpenSingle  string
	CloseSingle string
}

func DefaultQuoteStyle() QuoteStyle {
	return QuoteStyle{
		OpenDouble:  "“",
		CloseDouble: "”",
		OpenSingle:  "‘",
		CloseSingle: "’",
	}
}

// normalizeQuoteStyle replaces every glyph that is not exactly one grapheme
// cluster with its default, since a quote is rewritten in place.
func normalizeQuoteStyle(q QuoteStyle) QuoteStyle {
	d := DefaultQuoteStyle()
	pick := func(g, def string) string {
		if grapheme.Count(g) != 1 {
			return def
		}
		return g
	}
	q.OpenDouble = pick(q.OpenDouble, d.OpenDouble)
	q.CloseDouble = pick(q.CloseDouble, d.CloseDouble)
	q.OpenSingle = pick(q.OpenSingle, d.OpenSingle)
	q.CloseSingle = pick(q.CloseSingle, d.CloseSingle)
	return q
}

// SmartenQuotes replaces every ASCII quote in the buffer and reports whether
// anything changed. It runs regardless of Options.DisableSmartQuotes.
func (b *Buffer) SmartenQuotes() bool {
	before := b.textVersion
	b.BeginEditing()
	b.smartenQuotes()
	b.EndEditing()
	return b.textVersion != before
}

// smartenQuotes rewrites quotes in place. A quote opens when it starts the
// text or follows a space or line break; otherwise it closes. Clusters keep
// their attributes, so a quote inside a token stays inside it.
func (b *Buffer) smartenQuotes() {
	q := b.opt.Quotes
	for i, c := range b.clusters {
		var openQ, closeQ string
		switch c {
		case `"`:
			openQ, closeQ = q.OpenDouble, q.CloseDouble
		case `'`:
			openQ, closeQ = q.OpenSingle, q.CloseSingle
		default:
			continue
		}

		repl := closeQ
		if i == 0 || b.clusters[i-1] == " " || isLineBreak(b.clusters[i-1]) {
			repl = openQ
		}
		b.clusters[i] = repl
		b.version++
		b.textVersion++
		b.tx.needsFormat = true
		b.noteEdited(i, 1, 1)
		b.tx.change.addAppliedEdit(AppliedEdit{
			RangeBefore: Span{Location: i, Length: 1},
			RangeAfter:  Span{Location: i, Length: 1},
			InsertText:  repl,
			DeletedText: c,
		})
	}
}
