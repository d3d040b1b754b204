package buffer

// AppliedEdit describes one effective text edit in a change transaction.
type AppliedEdit struct {
	RangeBefore Span
	RangeAfter  Span
	InsertText  string
	DeletedText string
}

// Change is the versioned record of one committed transaction. Hosts that
// mirror the buffer into a platform text view replay AppliedEdits in order.
type Change struct {
	VersionBefore uint64
	VersionAfter  uint64
	AppliedEdits  []AppliedEdit

	// AttributesChanged is set when token or composition marks changed.
	AttributesChanged bool
}

type changeBuilder struct {
	versionBefore     uint64
	appliedEdits      []AppliedEdit
	attributesChanged bool
}

// LastChange returns the most recent effective change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	return cloneChange(b.lastChange), true
}

func cloneChange(in Change) Change {
	out := in
	out.AppliedEdits = append([]AppliedEdit(nil), in.AppliedEdits...)
	return out
}

func (b *Buffer) beginChange() changeBuilder {
	return changeBuilder{versionBefore: b.version}
}

func (cb *changeBuilder) addAppliedEdit(edit AppliedEdit) {
	cb.appliedEdits = append(cb.appliedEdits, edit)
}

func (b *Buffer) commitChange(cb changeBuilder) {
	if b.version == cb.versionBefore {
		return
	}
	b.lastChange = Change{
		VersionBefore:     cb.versionBefore,
		VersionAfter:      b.version,
		AppliedEdits:      append([]AppliedEdit(nil), cb.appliedEdits...),
		AttributesChanged: cb.attributesChanged,
	}
	b.hasLastChange = true
}

func replacementAppliedEdit(before, after bufferSnapshot) (AppliedEdit, bool) {
	beforeText, afterText := joinClusters(before.clusters), joinClusters(after.clusters)
	if beforeText == afterText {
		return AppliedEdit{}, false
	}
	return AppliedEdit{
		RangeBefore: Span{Length: len(before.clusters)},
		RangeAfter:  Span{Length: len(after.clusters)},
		InsertText:  afterText,
		DeletedText: beforeText,
	}, true
}
