package normcore

import "testing"

func TestAppendZeroCCAppendsInOrder(t *testing.T) {
	rb := NewReorderingBuffer()
	rb.AppendZeroCC('a')
	rb.AppendZeroCC('b')
	if got := rb.String(); got != "ab" {
		t.Errorf("got %q, want ab", got)
	}
	if rb.LastCC() != 0 {
		t.Errorf("lastCC = %d, want 0", rb.LastCC())
	}
}

func TestAppendInsertsOutOfOrderMarks(t *testing.T) {
	rb := NewReorderingBuffer()
	rb.AppendZeroCC('a')
	// Append a higher-CCC mark first, then a lower-CCC mark: the lower
	// one must be inserted before the higher one.
	rb.Append(0x0301, 230) // COMBINING ACUTE ACCENT
	rb.Append(0x0316, 220) // COMBINING GRAVE ACCENT BELOW

	if got, want := rb.Runes(), []rune{'a', 0x0316, 0x0301}; !runesEqual(got, want) {
		t.Errorf("got %q, want %q", string(got), string(want))
	}
}

func TestAppendKeepsNonDecreasingOrder(t *testing.T) {
	rb := NewReorderingBuffer()
	rb.AppendZeroCC('a')
	rb.Append(0x0316, 220)
	rb.Append(0x0301, 230)
	if got, want := rb.Runes(), []rune{'a', 0x0316, 0x0301}; !runesEqual(got, want) {
		t.Errorf("got %q, want %q", string(got), string(want))
	}
}

func TestRemoveSuffix(t *testing.T) {
	rb := NewReorderingBuffer()
	rb.AppendZeroCC('a')
	rb.AppendZeroCC('b')
	rb.AppendZeroCC('c')
	rb.RemoveSuffix(2)
	if got := rb.String(); got != "a" {
		t.Errorf("got %q, want a", got)
	}
}

func TestReplaceRange(t *testing.T) {
	rb := NewReorderingBuffer()
	rb.AppendZeroCC('a')
	rb.Append(0x0301, 230)
	rb.AppendZeroCC('b')
	rb.ReplaceRange(0, 2, CP{0x00E1, 0}) // pretend a+acute -> á
	if got := rb.Runes(); !runesEqual(got, []rune{0x00E1, 'b'}) {
		t.Errorf("got %q", string(got))
	}
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
