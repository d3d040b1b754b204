package buffer

import "testing"

func TestBuffer_LocationFromOffset(t *testing.T) {
	b := New("a👍🏽b", Options{})
	byteErr := ConvertPolicy{Unit: UnitByte, ClampMode: OffsetError}

	cases := []struct {
		off    int
		want   int
		wantOK bool
	}{
		{0, 0, true},
		{1, 1, true},
		{3, 0, false},
		{9, 2, true},
		{10, 3, true},
		{11, 0, false},
		{-1, 0, false},
	}
	for _, tc := range cases {
		got, ok := b.LocationFromOffset(tc.off, byteErr)
		if ok != tc.wantOK || (ok && got != tc.want) {
			t.Fatalf("LocationFromOffset(%d)=%d,%v, want %d,%v", tc.off, got, ok, tc.want, tc.wantOK)
		}
	}

	clamp := ConvertPolicy{Unit: UnitByte, ClampMode: OffsetClamp}
	if got, ok := b.LocationFromOffset(100, clamp); !ok || got != 3 {
		t.Fatalf("clamped location=%d,%v, want 3,true", got, ok)
	}
}

func TestBuffer_OffsetFromLocation_Units(t *testing.T) {
	b := New("a👍🏽b", Options{})
	cases := []struct {
		unit OffsetUnit
		want int
	}{
		{UnitByte, 9},
		{UnitRune, 3},
		{UnitUTF16, 5},
	}
	for _, tc := range cases {
		p := ConvertPolicy{Unit: tc.unit, ClampMode: OffsetError}
		got, ok := b.OffsetFromLocation(2, p)
		if !ok || got != tc.want {
			t.Fatalf("unit %d: offset=%d,%v, want %d", tc.unit, got, ok, tc.want)
		}
		back, ok := b.LocationFromOffset(got, p)
		if !ok || back != 2 {
			t.Fatalf("unit %d: round trip=%d,%v, want 2", tc.unit, back, ok)
		}
	}
	if _, ok := b.OffsetFromLocation(4, ConvertPolicy{}); ok {
		t.Fatalf("expected out-of-range location to fail")
	}
}

func TestBuffer_SpanFromOffsets(t *testing.T) {
	b := New("a👍🏽b", Options{})
	p := ConvertPolicy{Unit: UnitUTF16}
	got, ok := b.SpanFromOffsets(1, 5, p)
	if !ok || got != (Span{Location: 1, Length: 1}) {
		t.Fatalf("span=%v,%v", got, ok)
	}
	if _, ok := b.SpanFromOffsets(1, 2, p); ok {
		t.Fatalf("offset inside a cluster must fail")
	}
	if _, ok := b.SpanFromOffsets(5, 1, p); ok {
		t.Fatalf("reversed offsets must fail")
	}
}
