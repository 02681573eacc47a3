package normcore

// Hangul syllables decompose and compose algorithmically rather than via
// table lookup (spec.md §4.3.1, §4.3.2, Glossary "Hangul algorithmic
// decomposition"): S = LBase + (L*VCount + V)*TCount + T.
const (
	sBase  = 0xAC00
	lBase  = 0x1100
	vBase  = 0x1161
	tBase  = 0x11A7
	lCount = 19
	vCount = 21
	tCount = 28
	nCount = vCount * tCount // 588
	sCount = lCount * nCount // 11172
)

// IsHangulSyllable reports whether cp is a precomposed Hangul syllable
// (LV or LVT).
func IsHangulSyllable(cp rune) bool { return cp >= sBase && cp < sBase+sCount }

// IsJamoL reports whether cp is a Hangul leading consonant (Jamo L).
func IsJamoL(cp rune) bool { return cp >= lBase && cp < lBase+lCount }

// IsJamoV reports whether cp is a Hangul vowel (Jamo V).
func IsJamoV(cp rune) bool { return cp >= vBase && cp < vBase+vCount }

// IsJamoT reports whether cp is a Hangul trailing consonant (Jamo T).
// tBase itself (0x11A7) denotes "no trailing consonant" and is excluded.
func IsJamoT(cp rune) bool { return cp > tBase && cp < tBase+tCount }

// DecomposeHangul splits a precomposed Hangul syllable into its Jamo
// components. hasT reports whether a trailing consonant is present (LV
// vs. LVT).
func DecomposeHangul(cp rune) (l, v, t rune, hasT bool) {
	sIndex := cp - sBase
	l = lBase + sIndex/nCount
	v = vBase + (sIndex%nCount)/tCount
	tIndex := sIndex % tCount
	if tIndex == 0 {
		return l, v, 0, false
	}
	return l, v, tBase + tIndex, true
}

// ComposeHangulLV combines a Jamo L and Jamo V into an LV syllable (no
// trailing consonant).
func ComposeHangulLV(l, v rune) rune {
	lIndex := l - lBase
	vIndex := v - vBase
	return sBase + (lIndex*vCount+vIndex)*tCount
}

// ComposeHangulLVT adds a trailing consonant to an LV syllable, producing
// an LVT syllable.
func ComposeHangulLVT(lv, t rune) rune {
	tIndex := t - tBase
	return lv + tIndex
}
