package trie

import "testing"

func TestBuilderRoundTrip(t *testing.T) {
	b := NewBuilder()
	b.Set('a', 42)
	b.Set('Z', 7)
	b.Set(0x10000, 99)  // supplementary plane
	b.Set(0x1F600, 500) // emoji block
	b.SetHighValue(0xFFFF)
	b.SetErrorValue(0xFFFE)
	r := b.Build()

	cases := []struct {
		cp   rune
		want uint16
	}{
		{'a', 42},
		{'Z', 7},
		{'b', 0},
		{0x10000, 99},
		{0x1F600, 500},
		{0x1F601, 0},
		{0xD800, InertValue}, // surrogate is always inert
		{0x10FFFF + 1, 0xFFFE},
	}
	for _, c := range cases {
		if got := r.Get16(c.cp); got != c.want {
			t.Errorf("Get16(%#x) = %d, want %d", c.cp, got, c.want)
		}
	}
}

func TestFastBMPGetMatchesGet16(t *testing.T) {
	b := NewBuilder()
	for cp := rune('a'); cp <= 'z'; cp++ {
		b.Set(cp, uint16(cp))
	}
	r := b.Build()
	for cp := rune('a'); cp <= 'z'; cp++ {
		if got, want := r.FastBMPGet(cp), r.Get16(cp); got != want {
			t.Errorf("FastBMPGet(%q) = %d, Get16 = %d", cp, got, want)
		}
	}
}

func TestNextUTF8(t *testing.T) {
	b := NewBuilder()
	b.Set('€', 1) // U+20AC, 3-byte UTF-8
	r := b.Build()

	s := []byte("a€\xff")
	cp, val, next := r.NextUTF8(s, 0)
	if cp != 'a' || next != 1 {
		t.Fatalf("byte 0: got cp=%q next=%d", cp, next)
	}
	cp, val, next = r.NextUTF8(s, 1)
	if cp != '€' || val != 1 || next != 4 {
		t.Fatalf("byte 1: got cp=%q val=%d next=%d", cp, val, next)
	}
	cp, _, next = r.NextUTF8(s, 4)
	if cp != 0xFFFD || next != 5 {
		t.Fatalf("ill-formed byte: got cp=%#x next=%d", cp, next)
	}
}

func TestParseRejectsBadSignature(t *testing.T) {
	b := make([]byte, 24)
	if _, err := Parse(b); err == nil {
		t.Fatal("Parse accepted a header with a zero signature")
	}
}

func TestParseRejectsTruncated(t *testing.T) {
	if _, err := Parse([]byte{1, 2, 3}); err == nil {
		t.Fatal("Parse accepted a truncated header")
	}
}
