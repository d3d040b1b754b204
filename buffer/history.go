package buffer

import "github.com/iw2rmb/tokenfield/internal/grapheme"

type bufferSnapshot struct {
	clusters []string
	runs     runList
}

type historyState struct {
	undo []bufferSnapshot
	redo []bufferSnapshot
}

func (b *Buffer) snapshot() bufferSnapshot {
	return bufferSnapshot{
		clusters: append([]string(nil), b.clusters...),
		runs:     b.runs.clone(),
	}
}

func (b *Buffer) restore(s bufferSnapshot) {
	b.clusters = append([]string(nil), s.clusters...)
	b.runs = s.runs.clone()
	b.pres = make([]Presentation, len(b.clusters))
}

func (b *Buffer) recordUndo(prev bufferSnapshot) {
	limit := b.opt.HistoryLimit
	if limit <= 0 {
		return
	}

	b.hist.undo = append(b.hist.undo, prev)
	if len(b.hist.undo) > limit {
		b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
	}
	b.hist.redo = nil
}

func (b *Buffer) CanUndo() bool { return len(b.hist.undo) > 0 }

func (b *Buffer) CanRedo() bool { return len(b.hist.redo) > 0 }

// Undo restores text and attributes (tokens included) to the state before
// the last recorded transaction. It refuses inside an open transaction.
func (b *Buffer) Undo() bool {
	if len(b.hist.undo) == 0 || b.tx.depth > 0 {
		return false
	}

	cur := b.snapshot()
	i := len(b.hist.undo) - 1
	prev := b.hist.undo[i]
	b.hist.undo = b.hist.undo[:i]
	b.hist.redo = append(b.hist.redo, cur)

	b.swapIn(cur, prev)
	return true
}

func (b *Buffer) Redo() bool {
	if len(b.hist.redo) == 0 || b.tx.depth > 0 {
		return false
	}

	cur := b.snapshot()
	i := len(b.hist.redo) - 1
	next := b.hist.redo[i]
	b.hist.redo = b.hist.redo[:i]

	if limit := b.opt.HistoryLimit; limit > 0 {
		b.hist.undo = append(b.hist.undo, cur)
		if len(b.hist.undo) > limit {
			b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
		}
	}

	b.swapIn(cur, next)
	return true
}

func (b *Buffer) swapIn(cur, next bufferSnapshot) {
	b.BeginEditing()
	defer b.EndEditing()
	b.tx.skipHistory = true

	b.restore(next)
	b.version++
	if applied, ok := replacementAppliedEdit(cur, next); ok {
		b.textVersion++
		b.tx.change.addAppliedEdit(applied)
	}
	b.tx.change.attributesChanged = true
	b.tx.needsFormat = true
	b.tx.edited = Span{Length: len(b.clusters)}
	b.tx.hasEdited = true
}

func joinClusters(clusters []string) string { return grapheme.Join(clusters) }
