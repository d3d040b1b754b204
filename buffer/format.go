package buffer

import "github.com/charmbracelet/lipgloss"

// StyleConfig is the explicit style input of the formatting pass.
type StyleConfig struct {
	Text lipgloss.Color // default: #242424
	Link lipgloss.Color // composition text color; default: #00AEEF
	Font string         // default: "body"

	// TokenKern is applied to the first and last cluster of every token.
	TokenKern float64 // default: 3; negative disables

	// TokenInsetLeading and TokenInsetTrailing shrink the colored part of a
	// token, typically to leave its decoration uncolored.
	TokenInsetLeading  int
	TokenInsetTrailing int
}

func normalizeStyleConfig(s StyleConfig) StyleConfig {
	if s.Text == "" {
		s.Text = lipgloss.Color("#242424")
	}
	if s.Link == "" {
		s.Link = lipgloss.Color("#00AEEF")
	}
	if s.Font == "" {
		s.Font = "body"
	}
	if s.TokenKern == 0 {
		s.TokenKern = 3
	}
	if s.TokenKern < 0 {
		s.TokenKern = 0
	}
	if s.TokenInsetLeading < 0 {
		s.TokenInsetLeading = 0
	}
	if s.TokenInsetTrailing < 0 {
		s.TokenInsetTrailing = 0
	}
	return s
}

// Presentation is the visual attribute set of one cluster. It never carries
// token identity.
type Presentation struct {
	Foreground lipgloss.Color
	Background lipgloss.Color
	Font       string
	Kern       float64
	Bold       bool
	Underline  bool
	Link       string
}

// merge overrides p with the non-zero fields of o.
func (p Presentation) merge(o Presentation) Presentation {
	if o.Foreground != "" {
		p.Foreground = o.Foreground
	}
	if o.Background != "" {
		p.Background = o.Background
	}
	if o.Font != "" {
		p.Font = o.Font
	}
	if o.Kern != 0 {
		p.Kern = o.Kern
	}
	if o.Bold {
		p.Bold = true
	}
	if o.Underline {
		p.Underline = true
	}
	if o.Link != "" {
		p.Link = o.Link
	}
	return p
}

// FormatRun is a span of clusters sharing one presentation.
type FormatRun struct {
	Range        Span
	Presentation Presentation
}

type TokenColors struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
}

// Delegate supplies host-specific decoration to the formatting pass.
type Delegate interface {
	// AdditionalFormatting returns extra runs for search. Runs that touch a
	// token are ignored.
	AdditionalFormatting(text string, search Span) []FormatRun
	TokenColors(reference string) TokenColors
}

// FormattingPass computes presentation for search without modifying the
// buffer. The result depends only on content, attributes, style and the
// delegate, so repeated calls return equal runs.
func (b *Buffer) FormattingPass(search Span) ([]FormatRun, error) {
	if err := b.checkSpan(search); err != nil {
		return nil, err
	}
	return coalesce(search.Location, b.computePresentation(search)), nil
}

func (b *Buffer) computePresentation(search Span) []Presentation {
	st := b.opt.Style
	cells := make([]Presentation, search.Length)
	base := Presentation{Foreground: st.Text, Font: st.Font}
	for i := range cells {
		cells[i] = base
	}
	if search.IsEmpty() {
		return cells
	}

	set := func(s Span, fn func(*Presentation)) {
		s = s.Intersection(search)
		for i := s.Location; i < s.End(); i++ {
			fn(&cells[i-search.Location])
		}
	}

	b.enumerateAttr(AttrInput, func(value string, s Span) bool {
		if value == InputAnchor || value == InputText {
			set(s, func(p *Presentation) { p.Foreground = st.Link })
		}
		return true
	})

	var tokenSpans []Span
	b.enumerateAttr(AttrToken, func(ref string, s Span) bool {
		tokenSpans = append(tokenSpans, s)
		var colors TokenColors
		if b.opt.Delegate != nil {
			colors = b.opt.Delegate.TokenColors(ref)
		}
		display := Span{Location: s.Location + st.TokenInsetLeading, Length: s.Length - st.TokenInsetLeading - st.TokenInsetTrailing}
		if display.Length > 0 {
			set(display, func(p *Presentation) {
				if colors.Background != "" {
					p.Background = colors.Background
				}
				if colors.Foreground != "" {
					p.Foreground = colors.Foreground
				}
			})
		}
		if st.TokenKern > 0 {
			kern := func(p *Presentation) { p.Kern = st.TokenKern }
			set(Span{Location: s.Location, Length: 1}, kern)
			set(Span{Location: s.End() - 1, Length: 1}, kern)
		}
		return true
	})

	if b.opt.Delegate == nil {
		return cells
	}
	for _, extra := range b.opt.Delegate.AdditionalFormatting(b.Text(), search) {
		if extra.Range.Location < 0 || extra.Range.Length <= 0 || extra.Range.End() > len(b.clusters) {
			continue
		}
		if intersectsAny(extra.Range, tokenSpans) {
			continue
		}
		set(extra.Range, func(p *Presentation) { *p = p.merge(extra.Presentation) })
	}
	return cells
}

func (b *Buffer) applyFormatting(search Span) {
	if search.End() > len(b.pres) {
		search = search.Intersection(Span{Length: len(b.pres)})
	}
	cells := b.computePresentation(search)
	copy(b.pres[search.Location:search.End()], cells)
	b.formatVersion++
}

// Formatting returns the cached presentation of the whole buffer as of the
// last formatting pass.
func (b *Buffer) Formatting() []FormatRun {
	return coalesce(0, b.pres)
}

func coalesce(offset int, cells []Presentation) []FormatRun {
	var out []FormatRun
	for i, p := range cells {
		if n := len(out); n > 0 && out[n-1].Presentation == p {
			out[n-1].Range.Length++
			continue
		}
		out = append(out, FormatRun{Range: Span{Location: offset + i, Length: 1}, Presentation: p})
	}
	return out
}

func intersectsAny(s Span, spans []Span) bool {
	for _, o := range spans {
		if s.Intersects(o) {
			return true
		}
	}
	return false
}
