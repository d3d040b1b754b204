package buffer

// run is a maximal stretch of clusters sharing one attribute set.
type run struct {
	length int
	attrs  Attrs
}

// runList covers the whole buffer with disjoint runs in document order.
// Runs are never empty and adjacent runs never carry equal attributes.
type runList struct {
	runs []run
}

func newRunList(length int) runList {
	if length <= 0 {
		return runList{}
	}
	return runList{runs: []run{{length: length}}}
}

func (rl runList) clone() runList {
	out := make([]run, len(rl.runs))
	for i, r := range rl.runs {
		out[i] = run{length: r.length, attrs: r.attrs.clone()}
	}
	return runList{runs: out}
}

func (rl runList) total() int {
	n := 0
	for _, r := range rl.runs {
		n += r.length
	}
	return n
}

// splitAt makes pos a run boundary and returns the index of the run that
// starts at pos (len(runs) when pos is the end).
func (rl *runList) splitAt(pos int) int {
	off := 0
	for i, r := range rl.runs {
		if pos == off {
			return i
		}
		if pos < off+r.length {
			left := run{length: pos - off, attrs: r.attrs}
			right := run{length: off + r.length - pos, attrs: r.attrs.clone()}
			rl.runs = append(rl.runs[:i+1], rl.runs[i:]...)
			rl.runs[i] = left
			rl.runs[i+1] = right
			return i + 1
		}
		off += r.length
	}
	return len(rl.runs)
}

// replace substitutes [start, end) with a single run of newLen clusters
// carrying attrs.
func (rl *runList) replace(start, end, newLen int, attrs Attrs) {
	i := rl.splitAt(start)
	j := rl.splitAt(end)
	out := make([]run, 0, len(rl.runs)-(j-i)+1)
	out = append(out, rl.runs[:i]...)
	if newLen > 0 {
		out = append(out, run{length: newLen, attrs: attrs.clone()})
	}
	out = append(out, rl.runs[j:]...)
	rl.runs = out
	rl.normalize()
}

// update rewrites the attributes of every run in [start, end) with fn.
func (rl *runList) update(start, end int, fn func(Attrs) Attrs) {
	if end <= start {
		return
	}
	i := rl.splitAt(start)
	j := rl.splitAt(end)
	for k := i; k < j; k++ {
		rl.runs[k].attrs = fn(rl.runs[k].attrs.clone()).clone()
	}
	rl.normalize()
}

// uniform reports whether every cluster in [start, end) carries attrs.
func (rl runList) uniform(start, end int, attrs Attrs) bool {
	return rl.all(start, end, func(a Attrs) bool { return attrsEqual(a, attrs) })
}

// all reports whether pred holds for every run overlapping [start, end).
func (rl runList) all(start, end int, pred func(Attrs) bool) bool {
	ok := true
	rl.each(func(s Span, a Attrs) bool {
		if s.End() <= start {
			return true
		}
		if s.Location >= end {
			return false
		}
		if !pred(a) {
			ok = false
			return false
		}
		return true
	})
	return ok
}

func (rl runList) at(pos int) Attrs {
	off := 0
	for _, r := range rl.runs {
		if pos < off+r.length {
			return r.attrs.clone()
		}
		off += r.length
	}
	return nil
}

// each calls fn for every run in order until fn returns false.
func (rl runList) each(fn func(s Span, attrs Attrs) bool) {
	off := 0
	for _, r := range rl.runs {
		if !fn(Span{Location: off, Length: r.length}, r.attrs) {
			return
		}
		off += r.length
	}
}

func (rl *runList) normalize() {
	out := rl.runs[:0]
	for _, r := range rl.runs {
		if r.length <= 0 {
			continue
		}
		if n := len(out); n > 0 && attrsEqual(out[n-1].attrs, r.attrs) {
			out[n-1].length += r.length
			continue
		}
		out = append(out, r)
	}
	rl.runs = out
}
