package quad

// Diagnostics accumulates non-fatal failure messages while higher-level
// algorithms (stair placement, collapse sweeps) work over a tree. It is an
// explicit, resettable value rather than an error: entries record skipped
// or degenerate operations, never conditions that halt a traversal.
type Diagnostics struct {
	msgs []string
}

// Append records a message.
func (d *Diagnostics) Append(msg string) {
	d.msgs = append(d.msgs, msg)
}

// Reset discards all recorded messages.
func (d *Diagnostics) Reset() { d.msgs = nil }

// Messages returns the recorded messages, oldest first.
func (d *Diagnostics) Messages() []string { return d.msgs }

// Empty reports whether nothing has been recorded.
func (d *Diagnostics) Empty() bool { return len(d.msgs) == 0 }
