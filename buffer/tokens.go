package buffer

import (
	"fmt"

	"github.com/iw2rmb/tokenfield/internal/grapheme"
)

// enumerateAttr calls fn for every maximal span carrying a non-empty value
// for key, in document order, until fn returns false. Adjacent runs with the
// same value form one span.
func (b *Buffer) enumerateAttr(key AttrKey, fn func(value string, s Span) bool) {
	var (
		cur     string
		curSpan Span
		open    bool
		stopped bool
	)
	b.runs.each(func(s Span, a Attrs) bool {
		v := a[key]
		if open && v == cur && curSpan.End() == s.Location {
			curSpan.Length += s.Length
			return true
		}
		if open && !fn(cur, curSpan) {
			stopped = true
			return false
		}
		open = v != ""
		cur, curSpan = v, s
		return true
	})
	if open && !stopped {
		fn(cur, curSpan)
	}
}

// Tokens returns all tokens ordered by location.
func (b *Buffer) Tokens() []Token {
	var out []Token
	b.enumerateAttr(AttrToken, func(ref string, s Span) bool {
		out = append(out, b.token(ref, s))
		return true
	})
	return out
}

func (b *Buffer) token(ref string, s Span) Token {
	return Token{Reference: ref, Text: grapheme.Join(b.clusters[s.Location:s.End()]), Range: s}
}

// TokenAt returns the token whose range contains loc.
func (b *Buffer) TokenAt(loc int) (Token, bool) {
	var (
		out Token
		ok  bool
	)
	b.enumerateAttr(AttrToken, func(ref string, s Span) bool {
		if s.Location > loc {
			return false
		}
		if s.Contains(loc) {
			out, ok = b.token(ref, s), true
			return false
		}
		return true
	})
	return out, ok
}

// TokenByReference returns the token carrying ref.
func (b *Buffer) TokenByReference(ref string) (Token, bool) {
	var (
		out Token
		ok  bool
	)
	if ref == "" {
		return out, false
	}
	b.enumerateAttr(AttrToken, func(v string, s Span) bool {
		if v == ref {
			out, ok = b.token(v, s), true
			return false
		}
		return true
	})
	return out, ok
}

// TokensIntersecting returns the references of tokens sharing at least one
// position with r.
func (b *Buffer) TokensIntersecting(r Span) []string {
	var out []string
	b.enumerateAttr(AttrToken, func(ref string, s Span) bool {
		if s.Location >= r.End() {
			return false
		}
		if s.Intersects(r) {
			out = append(out, ref)
		}
		return true
	})
	return out
}

func (b *Buffer) RangeIntersectsAnyToken(r Span) bool {
	return len(b.TokensIntersecting(r)) > 0
}

// RangeIntersectsComposition reports whether r intersects the anchor or the
// input text.
func (b *Buffer) RangeIntersectsComposition(r Span) bool {
	hit := false
	b.enumerateAttr(AttrInput, func(_ string, s Span) bool {
		if s.Intersects(r) {
			hit = true
			return false
		}
		return true
	})
	return hit
}

// IsValidEditRange reports whether editing r leaves every token whole. An
// edit is invalid when either end of r falls strictly inside a token. Empty
// ranges are always valid; out-of-bounds ranges never are.
func (b *Buffer) IsValidEditRange(r Span) bool {
	if r.IsEmpty() {
		return true
	}
	if b.checkSpan(r) != nil {
		return false
	}
	valid := true
	b.enumerateAttr(AttrToken, func(_ string, s Span) bool {
		if s.Location >= r.End() {
			return false
		}
		if insideStrict(r.Location, s) || insideStrict(r.End(), s) {
			valid = false
			return false
		}
		return true
	})
	return valid
}

// IsTokenBoundary reports whether loc does not split a token.
func (b *Buffer) IsTokenBoundary(loc int) bool {
	t, ok := b.TokenAt(loc)
	return !ok || t.Range.Location == loc
}

func insideStrict(loc int, s Span) bool {
	return loc > s.Location && loc < s.End()
}

// AddToken inserts decorated at at, marking it with attrs. attrs must carry
// an AttrToken reference; at must not split an existing token.
func (b *Buffer) AddToken(attrs Attrs, at int, decorated string) (Span, error) {
	if attrs[AttrToken] == "" {
		return Span{}, ErrNoTokenReference
	}
	if err := b.checkLocation(at); err != nil {
		return Span{}, err
	}
	if !b.IsTokenBoundary(at) {
		return Span{}, fmt.Errorf("%w: location %d splits a token", ErrInvalidRange, at)
	}
	if _, dup := b.TokenByReference(attrs[AttrToken]); dup {
		return Span{}, fmt.Errorf("%w: reference %q already in use", ErrInvalidRange, attrs[AttrToken])
	}

	b.BeginEditing()
	defer b.EndEditing()
	s := b.replace(Span{Location: at}, grapheme.Split(decorated), attrs)
	b.tx.change.attributesChanged = true
	return s, nil
}

// RemoveToken clears the token mark of ref, keeping its text. It reports
// whether the token existed.
func (b *Buffer) RemoveToken(ref string) bool {
	t, ok := b.TokenByReference(ref)
	if !ok {
		return false
	}
	_ = b.RemoveAttribute(AttrToken, t.Range)
	return true
}

// Anchor returns the composition anchor.
func (b *Buffer) Anchor() (string, Span, bool) {
	return b.inputSpan(InputAnchor)
}

// InputText returns the composition input text.
func (b *Buffer) InputText() (string, Span, bool) {
	return b.inputSpan(InputText)
}

func (b *Buffer) inputSpan(kind string) (string, Span, bool) {
	var (
		out Span
		ok  bool
	)
	b.enumerateAttr(AttrInput, func(v string, s Span) bool {
		if v == kind {
			out, ok = s, true
			return false
		}
		return true
	})
	if !ok {
		return "", Span{}, false
	}
	return grapheme.Join(b.clusters[out.Location:out.End()]), out, true
}

// SetCompositionAnchor clears any previous composition marks and inserts
// text at at as the new anchor.
func (b *Buffer) SetCompositionAnchor(at int, text string) (Span, error) {
	if err := b.checkLocation(at); err != nil {
		return Span{}, err
	}
	if !b.IsTokenBoundary(at) {
		return Span{}, fmt.Errorf("%w: location %d splits a token", ErrInvalidRange, at)
	}

	b.BeginEditing()
	defer b.EndEditing()
	b.ClearComposition()
	s := b.replace(Span{Location: at}, grapheme.Split(text), Attrs{AttrInput: InputAnchor})
	b.tx.change.attributesChanged = true
	return s, nil
}

// SetCompositionInputText marks r as the composition input text. r must start
// right after the anchor.
func (b *Buffer) SetCompositionInputText(r Span) error {
	if err := b.checkSpan(r); err != nil {
		return err
	}
	_, anchor, ok := b.Anchor()
	if !ok {
		return ErrNoAnchor
	}
	if r.Location != anchor.End() {
		return fmt.Errorf("%w: input text at %d does not follow anchor ending at %d", ErrInvalidRange, r.Location, anchor.End())
	}
	if b.RangeIntersectsAnyToken(r) {
		return fmt.Errorf("%w: input text [%d,%d) overlaps a token", ErrInvalidRange, r.Location, r.End())
	}

	b.BeginEditing()
	defer b.EndEditing()
	if _, prev, ok := b.InputText(); ok {
		_ = b.RemoveAttribute(AttrInput, prev)
	}
	return b.SetAttribute(AttrInput, InputText, r)
}

// ClearComposition removes the anchor and input text marks, keeping the text.
func (b *Buffer) ClearComposition() {
	var spans []Span
	b.enumerateAttr(AttrInput, func(_ string, s Span) bool {
		spans = append(spans, s)
		return true
	})
	if len(spans) == 0 {
		return
	}
	b.BeginEditing()
	defer b.EndEditing()
	for _, s := range spans {
		_ = b.RemoveAttribute(AttrInput, s)
	}
}
