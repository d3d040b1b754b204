package buffer

import "maps"

// Span is a half-open range of grapheme clusters: [Location, Location+Length).
type Span struct {
	Location int
	Length   int
}

// End returns the exclusive end of s.
func (s Span) End() int { return s.Location + s.Length }

func (s Span) IsEmpty() bool { return s.Length == 0 }

// Contains reports whether loc lies inside s (half-open).
func (s Span) Contains(loc int) bool {
	return loc >= s.Location && loc < s.End()
}

// Intersection returns the overlap of s and o. The result has zero length
// when they do not overlap.
func (s Span) Intersection(o Span) Span {
	start := max(s.Location, o.Location)
	end := min(s.End(), o.End())
	if end <= start {
		return Span{Location: start}
	}
	return Span{Location: start, Length: end - start}
}

// Intersects reports whether s and o share at least one position.
func (s Span) Intersects(o Span) bool {
	return s.Intersection(o).Length > 0
}

// Union returns the smallest span covering both s and o.
func (s Span) Union(o Span) Span {
	start := min(s.Location, o.Location)
	end := max(s.End(), o.End())
	return Span{Location: start, Length: end - start}
}

// Token is an atomic span of text identified by an opaque reference.
type Token struct {
	Reference string
	Text      string
	Range     Span
}

// AttrKey names an attribute stored on a run of clusters.
type AttrKey string

const (
	// AttrToken marks token text. Its value is the token reference.
	AttrToken AttrKey = "tokenfield.token"
	// AttrInput marks composition text. Its value is InputAnchor or InputText.
	AttrInput AttrKey = "tokenfield.input"
)

// Values of AttrInput.
const (
	InputAnchor = "anchor"
	InputText   = "text"
)

// Attrs is the attribute set of a run. An empty value is the same as an
// absent key.
type Attrs map[AttrKey]string

func (a Attrs) clone() Attrs {
	if len(a) == 0 {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		if v != "" {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func attrsEqual(a, b Attrs) bool {
	return maps.Equal(a.clone(), b.clone())
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
