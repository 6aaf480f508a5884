package beacon

// MaskEntry pairs a known public key with its opaque display tag, owned
// by the mask cursor that snapshotted it.
type MaskEntry struct {
	PubKey [MemberSize]byte
	Tag    string
}

// Mask is a restartable cursor over a snapshot of the local keystore.
// The builder draws consecutive batches of up to KeyCap entries per
// packet pair; because the snapshot is frozen at construction time, a
// packet A and its paired packet B always cover the same ordered key
// set even if the keystore mutates mid-cycle.
type Mask struct {
	entries []MaskEntry
	cursor  int
}

// NewMask snapshots entries into a fresh mask. Callers must copy key
// bytes into entries themselves if the keystore can't freeze its own
// storage for the duration of a cycle.
func NewMask(entries []MaskEntry) *Mask {
	return &Mask{entries: entries}
}

// Next returns the next entry and advances the cursor, or ok=false once
// every entry in the snapshot has been drawn.
func (m *Mask) Next() (entry MaskEntry, ok bool) {
	if m == nil || m.cursor >= len(m.entries) {
		return MaskEntry{}, false
	}
	entry = m.entries[m.cursor]
	m.cursor++
	return entry, true
}

// Exhausted reports whether every entry in the snapshot has been drawn.
func (m *Mask) Exhausted() bool {
	return m == nil || m.cursor >= len(m.entries)
}

// Len returns the total size of the snapshot, regardless of cursor
// position.
func (m *Mask) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}
