package buffer

import (
	"unicode/utf16"
	"unicode/utf8"
)

type OffsetClampMode uint8

const (
	OffsetError OffsetClampMode = iota
	OffsetClamp
)

// OffsetUnit selects the unit of an external text offset.
type OffsetUnit uint8

const (
	UnitByte OffsetUnit = iota
	UnitRune
	UnitUTF16
)

type ConvertPolicy struct {
	Unit      OffsetUnit
	ClampMode OffsetClampMode
}

// LocationFromOffset converts an external offset to a grapheme location.
// Offsets that fall inside a cluster are rejected.
func (b *Buffer) LocationFromOffset(off int, p ConvertPolicy) (int, bool) {
	if !validUnit(p.Unit) {
		return 0, false
	}
	off, ok := clampOffset(off, b.docLen(p.Unit), p.ClampMode)
	if !ok {
		return 0, false
	}

	cur := 0
	for loc, cluster := range b.clusters {
		if off == cur {
			return loc, true
		}
		next := cur + clusterLen(cluster, p.Unit)
		if off < next {
			return 0, false
		}
		cur = next
	}
	if off == cur {
		return len(b.clusters), true
	}
	return 0, false
}

// OffsetFromLocation converts a grapheme location to an external offset.
func (b *Buffer) OffsetFromLocation(loc int, p ConvertPolicy) (int, bool) {
	if !validUnit(p.Unit) {
		return 0, false
	}
	loc, ok := clampOffset(loc, len(b.clusters), p.ClampMode)
	if !ok {
		return 0, false
	}
	off := 0
	for _, cluster := range b.clusters[:loc] {
		off += clusterLen(cluster, p.Unit)
	}
	return off, true
}

// SpanFromOffsets converts an external [start, end) offset pair to a Span.
func (b *Buffer) SpanFromOffsets(start, end int, p ConvertPolicy) (Span, bool) {
	s, ok := b.LocationFromOffset(start, p)
	if !ok {
		return Span{}, false
	}
	e, ok := b.LocationFromOffset(end, p)
	if !ok || e < s {
		return Span{}, false
	}
	return Span{Location: s, Length: e - s}, true
}

func validUnit(u OffsetUnit) bool {
	return u == UnitByte || u == UnitRune || u == UnitUTF16
}

func clampOffset(off, max int, mode OffsetClampMode) (int, bool) {
	switch mode {
	case OffsetError:
		if off < 0 || off > max {
			return 0, false
		}
		return off, true
	case OffsetClamp:
		return clampInt(off, 0, max), true
	default:
		return 0, false
	}
}

func (b *Buffer) docLen(u OffsetUnit) int {
	total := 0
	for _, cluster := range b.clusters {
		total += clusterLen(cluster, u)
	}
	return total
}

func clusterLen(cluster string, u OffsetUnit) int {
	switch u {
	case UnitRune:
		return utf8.RuneCountInString(cluster)
	case UnitUTF16:
		n := 0
		for _, r := range cluster {
			n += utf16.RuneLen(r)
		}
		return n
	default:
		return len(cluster)
	}
}
