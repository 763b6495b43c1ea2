// Package search - the loss ledger of jumps and detours.
package search

// LedgerEntry records the cumulative loss reached after a jump or a detour
// taken at tour position Pos.
type LedgerEntry struct {
	Pos  int
	Loss float64
}

// LossLedger is the ordered list of jump and detour checkpoints of a path.
// A sentinel at position -1 with loss 0 is always present, so Last never
// fails and truncation never empties the ledger.
type LossLedger struct {
	entries []LedgerEntry
}

// NewLossLedger returns a ledger holding only the sentinel.
func NewLossLedger() *LossLedger {
	l := &LossLedger{entries: make([]LedgerEntry, 0, 16)}
	l.Reset()
	return l
}

// Reset drops every checkpoint.
func (l *LossLedger) Reset() {
	l.entries = append(l.entries[:0], LedgerEntry{Pos: -1})
}

// Push appends a checkpoint. Positions are expected to be non-decreasing.
func (l *LossLedger) Push(pos int, loss float64) {
	l.entries = append(l.entries, LedgerEntry{Pos: pos, Loss: loss})
}

// Last returns the current cumulative loss.
func (l *LossLedger) Last() float64 { return l.entries[len(l.entries)-1].Loss }

// TruncateFrom drops every checkpoint at position pos or later.
//
// Complexity: O(k) for k dropped entries.
func (l *LossLedger) TruncateFrom(pos int) {
	i := len(l.entries) - 1
	for l.entries[i].Pos >= pos {
		i--
	}
	l.entries = l.entries[:i+1]
}

// Len returns the number of checkpoints, the sentinel excluded.
func (l *LossLedger) Len() int { return len(l.entries) - 1 }

// Entries returns a copy of the checkpoints, the sentinel excluded.
func (l *LossLedger) Entries() []LedgerEntry {
	out := make([]LedgerEntry, len(l.entries)-1)
	copy(out, l.entries[1:])
	return out
}

// CopyFrom makes l an exact copy of o.
func (l *LossLedger) CopyFrom(o *LossLedger) {
	l.entries = append(l.entries[:0], o.entries...)
}
