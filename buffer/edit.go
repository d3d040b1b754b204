package buffer

import (
	"slices"

	"github.com/iw2rmb/tokenfield/internal/grapheme"
)

// txState tracks one (possibly nested) edit transaction.
type txState struct {
	depth int

	snapshot    bufferSnapshot
	skipHistory bool
	change      changeBuilder

	charsChanged bool
	needsFormat  bool

	edited    Span
	hasEdited bool
}

// BeginEditing opens an edit transaction. Transactions nest; derived work
// (smart quotes, formatting) runs once when the outermost one ends.
func (b *Buffer) BeginEditing() {
	if b.tx.depth == 0 {
		b.tx = txState{change: b.beginChange()}
		if b.opt.HistoryLimit > 0 {
			b.tx.snapshot = b.snapshot()
		}
	}
	b.tx.depth++
}

// EndEditing closes the transaction opened by the matching BeginEditing.
func (b *Buffer) EndEditing() {
	if b.tx.depth == 0 {
		return
	}
	b.tx.depth--
	if b.tx.depth > 0 {
		return
	}
	b.processEditing()
}

// Batch runs fn inside a single transaction.
func (b *Buffer) Batch(fn func()) {
	b.BeginEditing()
	defer b.EndEditing()
	fn()
}

func (b *Buffer) processEditing() {
	if b.tx.charsChanged && !b.opt.DisableSmartQuotes {
		b.smartenQuotes()
	}
	if b.tx.needsFormat {
		b.tx.needsFormat = false
		b.applyFormatting(b.formattingRange())
	}
	if b.version == b.tx.change.versionBefore {
		return
	}
	if !b.tx.skipHistory && b.opt.HistoryLimit > 0 {
		b.recordUndo(b.tx.snapshot)
	}
	b.commitChange(b.tx.change)
}

// ReplaceRange replaces the text in r with text. Attributes outside r are
// preserved; the new text carries no attributes.
func (b *Buffer) ReplaceRange(r Span, text string) error {
	_, err := b.ReplaceAttributed(r, text, nil)
	return err
}

// ReplaceAttributed replaces the text in r with text carrying attrs and
// returns the span of the inserted text.
func (b *Buffer) ReplaceAttributed(r Span, text string, attrs Attrs) (Span, error) {
	if err := b.checkSpan(r); err != nil {
		return Span{}, err
	}
	ins := grapheme.Split(text)
	if r.IsEmpty() && len(ins) == 0 {
		return Span{Location: r.Location}, nil
	}
	if grapheme.Join(b.clusters[r.Location:r.End()]) == text && b.runs.uniform(r.Location, r.End(), attrs) {
		return r, nil
	}

	b.BeginEditing()
	defer b.EndEditing()
	return b.replace(r, ins, attrs), nil
}

// InsertAttributed inserts text carrying attrs at loc.
func (b *Buffer) InsertAttributed(loc int, text string, attrs Attrs) (Span, error) {
	if err := b.checkLocation(loc); err != nil {
		return Span{}, err
	}
	return b.ReplaceAttributed(Span{Location: loc}, text, attrs)
}

// SetAttribute sets key to value across r. An empty value removes the key.
func (b *Buffer) SetAttribute(key AttrKey, value string, r Span) error {
	if err := b.checkSpan(r); err != nil {
		return err
	}
	if r.IsEmpty() {
		return nil
	}
	if b.runs.all(r.Location, r.End(), func(a Attrs) bool { return a[key] == value }) {
		return nil
	}

	b.BeginEditing()
	defer b.EndEditing()
	b.runs.update(r.Location, r.End(), func(a Attrs) Attrs {
		if a == nil {
			a = Attrs{}
		}
		if value == "" {
			delete(a, key)
		} else {
			a[key] = value
		}
		return a
	})
	b.version++
	b.tx.needsFormat = true
	b.tx.change.attributesChanged = true
	b.noteEdited(r.Location, r.Length, r.Length)
	return nil
}

// RemoveAttribute clears key across r.
func (b *Buffer) RemoveAttribute(key AttrKey, r Span) error {
	return b.SetAttribute(key, "", r)
}

// RefreshFormatting recomputes presentation for the whole buffer.
func (b *Buffer) RefreshFormatting() {
	b.BeginEditing()
	defer b.EndEditing()
	b.tx.needsFormat = true
	b.noteEdited(0, len(b.clusters), len(b.clusters))
}

// replace must run inside a transaction. When the inserted text joins with
// a neighbouring cluster the edit widens to cover it, so clusters always match
// the segmentation of the whole text. A joined cluster takes the attributes of
// the cluster its first byte came from. replace returns the span of the
// clusters holding the inserted text.
func (b *Buffer) replace(r Span, ins []string, attrs Attrs) Span {
	start, end := r.Location, r.End()
	if start > 0 {
		start--
	}
	if end < len(b.clusters) {
		end++
	}
	window := make([]string, 0, end-start-r.Length+len(ins))
	window = append(window, b.clusters[start:r.Location]...)
	window = append(window, ins...)
	window = append(window, b.clusters[r.End():end]...)
	seg := grapheme.Split(grapheme.Join(window))

	if slices.Equal(seg, window) {
		b.splice(r, ins)
		b.runs.replace(r.Location, r.End(), len(ins), attrs)
		return Span{Location: r.Location, Length: len(ins)}
	}

	src := make([]Attrs, 0, len(window))
	for i := start; i < r.Location; i++ {
		src = append(src, b.runs.at(i))
	}
	for range ins {
		src = append(src, attrs)
	}
	for i := r.End(); i < end; i++ {
		src = append(src, b.runs.at(i))
	}

	insFrom := len(grapheme.Join(b.clusters[start:r.Location]))
	insTo := insFrom + len(grapheme.Join(ins))
	segAttrs := make([]Attrs, len(seg))
	first, last := 0, 0
	w, wEnd, off := 0, len(window[0]), 0
	for k, c := range seg {
		for off >= wEnd {
			w++
			wEnd += len(window[w])
		}
		segAttrs[k] = src[w]
		if off+len(c) <= insFrom {
			first++
		}
		if off < insTo {
			last++
		}
		off += len(c)
	}

	b.splice(Span{Location: start, Length: end - start}, seg)
	b.runs.replace(start, end, 0, nil)
	for k, a := range segAttrs {
		b.runs.replace(start+k, start+k, 1, a)
	}
	return Span{Location: start + first, Length: max(last-first, 0)}
}

// splice swaps the clusters in r for ins and records the edit.
func (b *Buffer) splice(r Span, ins []string) {
	deleted := grapheme.Join(b.clusters[r.Location:r.End()])
	inserted := grapheme.Join(ins)

	clusters := make([]string, 0, len(b.clusters)-r.Length+len(ins))
	clusters = append(clusters, b.clusters[:r.Location]...)
	clusters = append(clusters, ins...)
	clusters = append(clusters, b.clusters[r.End():]...)
	b.clusters = clusters

	pres := make([]Presentation, 0, len(clusters))
	pres = append(pres, b.pres[:r.Location]...)
	pres = append(pres, make([]Presentation, len(ins))...)
	pres = append(pres, b.pres[r.End():]...)
	b.pres = pres

	b.version++
	if deleted != inserted {
		b.textVersion++
		b.tx.charsChanged = true
	}
	b.tx.needsFormat = true
	b.noteEdited(r.Location, r.Length, len(ins))
	b.tx.change.addAppliedEdit(AppliedEdit{
		RangeBefore: r,
		RangeAfter:  Span{Location: r.Location, Length: len(ins)},
		InsertText:  inserted,
		DeletedText: deleted,
	})
}

// noteEdited folds an edit of [loc, loc+oldLen) -> newLen clusters into the
// transaction's edited span, kept in post-edit coordinates.
func (b *Buffer) noteEdited(loc, oldLen, newLen int) {
	next := Span{Location: loc, Length: newLen}
	if !b.tx.hasEdited {
		b.tx.edited = next
		b.tx.hasEdited = true
		return
	}
	delta := newLen - oldLen
	oldEnd := loc + oldLen
	start, end := b.tx.edited.Location, b.tx.edited.End()
	switch {
	case start >= oldEnd:
		start += delta
	case start > loc:
		start = loc
	}
	switch {
	case end >= oldEnd:
		end += delta
	case end > loc:
		end = loc + newLen
	}
	b.tx.edited = Span{Location: start, Length: max(end-start, 0)}.Union(next)
}

// formattingRange extends the edited span to cover the line holding its end.
func (b *Buffer) formattingRange() Span {
	n := len(b.clusters)
	start := clampInt(b.tx.edited.Location, 0, n)
	end := clampInt(b.tx.edited.End(), start, n)

	lineStart := end
	for lineStart > 0 && !isLineBreak(b.clusters[lineStart-1]) {
		lineStart--
	}
	lineEnd := end
	for lineEnd < n && !isLineBreak(b.clusters[lineEnd]) {
		lineEnd++
	}
	if lineEnd < n {
		lineEnd++
	}
	return Span{Location: start, Length: end - start}.Union(Span{Location: lineStart, Length: lineEnd - lineStart})
}

func isLineBreak(cluster string) bool {
	switch cluster {
	case "\n", "\r\n", "\r", "\u2028", "\u2029":
		return true
	default:
		return false
	}
}
