package normcore

// CP is a single decomposed code point tagged with its canonical
// combining class, the unit ReorderingBuffer operates on.
type CP struct {
	Rune rune
	CCC  uint8
}

// ReorderingBuffer is an append-only sink that inserts combining marks in
// canonical order as they arrive, per spec.md §4.2. It tracks
// reorderStart, the earliest position still subject to reordering, and
// lastCC, the CCC of the most recently appended code point.
//
// Unlike a general-purpose container, ReorderingBuffer is scoped to a
// single normalization call: callers construct one, drive it with Append
// calls, and read the result back with String/Runes.
type ReorderingBuffer struct {
	buf          []CP
	reorderStart int
	lastCC       uint8
}

// NewReorderingBuffer returns an empty ReorderingBuffer.
func NewReorderingBuffer() *ReorderingBuffer {
	return &ReorderingBuffer{}
}

// Len returns the number of code points currently buffered.
func (rb *ReorderingBuffer) Len() int { return len(rb.buf) }

// At returns the code point at position i.
func (rb *ReorderingBuffer) At(i int) CP { return rb.buf[i] }

// LastCC returns the CCC of the last appended code point, or 0 if empty.
func (rb *ReorderingBuffer) LastCC() uint8 { return rb.lastCC }

// Append inserts cp in canonical order. If lastCC <= cc, or cc == 0, the
// code point is a new starter (or a non-decreasing continuation) and is
// simply appended. Otherwise it must be inserted earlier: scan backward
// from the end until a preceding code point with CCC <= cc is found, and
// insert immediately after it, shifting the tail forward.
func (rb *ReorderingBuffer) Append(cp rune, cc uint8) {
	if cc == 0 {
		rb.AppendZeroCC(cp)
		return
	}
	if rb.lastCC <= cc {
		rb.buf = append(rb.buf, CP{cp, cc})
		rb.lastCC = cc
		if cc <= 1 {
			rb.reorderStart = len(rb.buf)
		}
		return
	}

	// Insert: find the latest position (no earlier than reorderStart)
	// whose CCC is <= cc, and place cp right after it.
	pos := len(rb.buf)
	for pos > rb.reorderStart && rb.buf[pos-1].CCC > cc {
		pos--
	}
	rb.buf = append(rb.buf, CP{})
	copy(rb.buf[pos+1:], rb.buf[pos:])
	rb.buf[pos] = CP{cp, cc}
	// lastCC reflects the CCC of the final buffered code point, which is
	// unchanged by an insertion that lands before the end.
	rb.lastCC = rb.buf[len(rb.buf)-1].CCC
}

// AppendZeroCC is the fast path for starters: cc == 0 code points never
// need reordering, so they are appended directly and reorderStart moves
// past them.
func (rb *ReorderingBuffer) AppendZeroCC(cp rune) {
	rb.buf = append(rb.buf, CP{cp, 0})
	rb.lastCC = 0
	rb.reorderStart = len(rb.buf)
}

// AppendDecomposed appends an already-canonically-ordered decomposed
// sequence (e.g. a Hangul Jamo run, which is generated in canonical order
// by definition). leadCC and trailCC are the CCC of the first and last
// code points in seq; if lastCC <= leadCC (or leadCC == 0), the whole
// sequence can be copied wholesale, otherwise the first code point must
// go through the insertion path and the rest follow individually.
func (rb *ReorderingBuffer) AppendDecomposed(seq []CP, leadCC, trailCC uint8) {
	if len(seq) == 0 {
		return
	}
	if rb.lastCC <= leadCC || leadCC == 0 {
		rb.buf = append(rb.buf, seq...)
		rb.lastCC = trailCC
		if trailCC <= 1 {
			rb.reorderStart = len(rb.buf)
		} else {
			// An inner code point might still have CCC <= 1; scan back
			// to find the true reorder start within the appended run.
			i := len(rb.buf)
			for i > rb.reorderStart && rb.buf[i-1].CCC > 1 {
				i--
			}
			rb.reorderStart = i
		}
		return
	}
	rb.Append(seq[0].Rune, seq[0].CCC)
	for _, cp := range seq[1:] {
		rb.Append(cp.Rune, cp.CCC)
	}
}

// RemoveSuffix discards the last n buffered code points.
func (rb *ReorderingBuffer) RemoveSuffix(n int) {
	rb.buf = rb.buf[:len(rb.buf)-n]
	if rb.reorderStart > len(rb.buf) {
		rb.reorderStart = len(rb.buf)
	}
	if len(rb.buf) == 0 {
		rb.lastCC = 0
	} else {
		rb.lastCC = rb.buf[len(rb.buf)-1].CCC
	}
}

// SetReorderingLimit pins reorderStart to p, preventing any later Append
// from reordering code points before p. Used to roll back speculative
// composition attempts (spec.md §4.2 "rollback primitives").
func (rb *ReorderingBuffer) SetReorderingLimit(p int) {
	rb.reorderStart = p
}

// ReplaceRange replaces buf[i:j] with a single code point, shifting the
// tail left. This is the primitive Recompose uses when a starter and a
// combining mark combine into one composite.
func (rb *ReorderingBuffer) ReplaceRange(i, j int, cp CP) {
	rb.buf[i] = cp
	rb.buf = append(rb.buf[:i+1], rb.buf[j:]...)
	if len(rb.buf) > 0 {
		rb.lastCC = rb.buf[len(rb.buf)-1].CCC
	} else {
		rb.lastCC = 0
	}
}

// Runes returns the buffered code points in their current order.
func (rb *ReorderingBuffer) Runes() []rune {
	out := make([]rune, len(rb.buf))
	for i, cp := range rb.buf {
		out[i] = cp.Rune
	}
	return out
}

// String renders the buffer's current contents as text.
func (rb *ReorderingBuffer) String() string { return string(rb.Runes()) }

// Equals reports whether the buffer's current contents equal s exactly,
// used by the quick-check fast path to detect already-normalized input.
func (rb *ReorderingBuffer) Equals(s string) bool { return rb.String() == s }
