package uprops

import "testing"

func TestGeneralCategory(t *testing.T) {
	cases := []struct {
		cp   rune
		want GeneralCategory
	}{
		{'a', CategoryOther},
		{'5', CategoryNd},
		{0x0301, CategoryMn}, // COMBINING ACUTE ACCENT
	}
	for _, c := range cases {
		if got := GeneralCategoryOf(c.cp); got != c.want {
			t.Errorf("GeneralCategoryOf(%q) = %q, want %q", c.cp, got, c.want)
		}
	}
}

func TestIsCombiningMark(t *testing.T) {
	if !IsCombiningMark(0x0301) {
		t.Error("U+0301 should be a combining mark")
	}
	if IsCombiningMark('a') {
		t.Error("'a' should not be a combining mark")
	}
}

func TestBidiClassOf(t *testing.T) {
	if got := BidiClassOf('a'); got != ClassL {
		t.Errorf("BidiClassOf('a') = %v, want ClassL", got)
	}
	if got := BidiClassOf(0x05D0); got != ClassR { // HEBREW LETTER ALEF
		t.Errorf("BidiClassOf(HEBREW ALEF) = %v, want ClassR", got)
	}
	if got := BidiClassOf(0x0627); got != ClassAL { // ARABIC LETTER ALEF
		t.Errorf("BidiClassOf(ARABIC ALEF) = %v, want ClassAL", got)
	}
}

func TestJoiningTypeOf(t *testing.T) {
	if got := JoiningTypeOf(0x0644); got != JoiningD { // LAM
		t.Errorf("JoiningTypeOf(LAM) = %v, want JoiningD", got)
	}
	if got := JoiningTypeOf(0x0301); got != JoiningT {
		t.Errorf("JoiningTypeOf(combining mark) = %v, want JoiningT", got)
	}
	if got := JoiningTypeOf('a'); got != JoiningU {
		t.Errorf("JoiningTypeOf('a') = %v, want JoiningU", got)
	}
}

func TestScriptOf(t *testing.T) {
	cases := []struct {
		cp   rune
		want Script
	}{
		{0x3042, ScriptHiragana},
		{0x30A2, ScriptKatakana},
		{0x6F22, ScriptHan},
		{0x03B1, ScriptGreek},
		{0x05D0, ScriptHebrew},
		{'a', ScriptOther},
	}
	for _, c := range cases {
		if got := ScriptOf(c.cp); got != c.want {
			t.Errorf("ScriptOf(%#x) = %v, want %v", c.cp, got, c.want)
		}
	}
}
