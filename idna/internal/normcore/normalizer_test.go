package normcore

import "testing"

func TestNFCIdempotent(t *testing.T) {
	n := NewNormalizerCore(false)
	cases := []string{
		"hello",
		"Bücher",
		"é", // e + combining acute -> é
		"가",
		"가",
	}
	for _, s := range cases {
		once := n.NFC(s)
		twice := n.NFC(once)
		if once != twice {
			t.Errorf("NFC(%q) = %q, NFC(that) = %q; not idempotent", s, once, twice)
		}
	}
}

func TestNFCComposesCombiningMark(t *testing.T) {
	n := NewNormalizerCore(false)
	got := n.NFC("é")
	want := "é" // é
	if got != want {
		t.Errorf("NFC(e + combining acute) = %q, want %q", got, want)
	}
}

func TestNFCReordersCombiningMarks(t *testing.T) {
	n := NewNormalizerCore(false)
	// U+0316 (CCC 220, below) should sort before U+0301 (CCC 230, above)
	// under canonical ordering regardless of input order.
	a := n.NFC("á̖")
	b := n.NFC("á̖")
	if a != b {
		t.Errorf("canonical reordering should make a\\u0301\\u0316 == a\\u0316\\u0301, got %q vs %q", a, b)
	}
}

func TestHangulRoundTrip(t *testing.T) {
	n := NewNormalizerCore(false)
	syllable := "가" // GA (LV, no trailing consonant)
	decomposed := n.NFD(syllable)
	if got := []rune(decomposed); len(got) != 2 {
		t.Fatalf("NFD(%q) = %q, want 2 Jamo", syllable, decomposed)
	}
	recomposed := n.NFC(decomposed)
	if recomposed != syllable {
		t.Errorf("NFC(NFD(%q)) = %q, want %q", syllable, recomposed, syllable)
	}
}

func TestHangulLVT(t *testing.T) {
	n := NewNormalizerCore(false)
	syllable := "각" // GAG (LVT)
	decomposed := n.NFD(syllable)
	if got := []rune(decomposed); len(got) != 3 {
		t.Fatalf("NFD(%q) = %q, want 3 Jamo", syllable, decomposed)
	}
	recomposed := n.NFC(decomposed)
	if recomposed != syllable {
		t.Errorf("NFC(NFD(%q)) = %q, want %q", syllable, recomposed, syllable)
	}
}

func TestQuickCheckNFC(t *testing.T) {
	n := NewNormalizerCore(false)
	if !n.QuickCheckNFC("hello") {
		t.Error("ascii text should quick-check as already NFC")
	}
	if n.QuickCheckNFC("é") {
		t.Error("decomposed text should not quick-check as already NFC")
	}
}
