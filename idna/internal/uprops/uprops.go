// Package uprops provides the minimal Unicode property accessors that the
// UTS #46 processor needs: general category, BiDi class, joining type,
// script membership (limited to the scripts CONTEXTO cares about), and
// whitespace. It deliberately does not implement a general Unicode
// property database (spec.md §1 Non-goals); it is a thin adapter over
// Go's standard library unicode tables and golang.org/x/text/unicode/bidi,
// plus a small hand-maintained joining-type table for the Arabic-script
// code points that RFC 5892 Appendix A's CONTEXTJ rule cares about.
package uprops

import (
	"unicode"

	"golang.org/x/text/unicode/bidi"
)

// GeneralCategory is one of the two-letter Unicode general category
// abbreviations relevant to UTS #46 (Mn, Mc, Me, Nd, and a catch-all
// "other").
type GeneralCategory string

const (
	CategoryMn    GeneralCategory = "Mn"
	CategoryMc    GeneralCategory = "Mc"
	CategoryMe    GeneralCategory = "Me"
	CategoryNd    GeneralCategory = "Nd"
	CategoryOther GeneralCategory = ""
)

// GeneralCategoryOf reports the coarse general category of cp, to the
// precision the UTS #46 checks need.
func GeneralCategoryOf(cp rune) GeneralCategory {
	switch {
	case unicode.Is(unicode.Mn, cp):
		return CategoryMn
	case unicode.Is(unicode.Mc, cp):
		return CategoryMc
	case unicode.Is(unicode.Me, cp):
		return CategoryMe
	case unicode.Is(unicode.Nd, cp):
		return CategoryNd
	default:
		return CategoryOther
	}
}

// IsCombiningMark reports whether cp's general category is Mn, Mc or Me,
// used by the LeadingCombiningMark check (spec.md §4.5.2).
func IsCombiningMark(cp rune) bool {
	switch GeneralCategoryOf(cp) {
	case CategoryMn, CategoryMc, CategoryMe:
		return true
	}
	return false
}

// BidiClass is one of the Unicode bidirectional character classes needed
// by the RFC 5893 BiDi rule check.
type BidiClass int

const (
	ClassOther BidiClass = iota
	ClassL
	ClassR
	ClassAL
	ClassEN
	ClassES
	ClassET
	ClassAN
	ClassCS
	ClassNSM
	ClassBN
	ClassON
)

// BidiClassOf reports the BiDi class of cp, sourced from
// golang.org/x/text/unicode/bidi's class table.
func BidiClassOf(cp rune) BidiClass {
	p, _ := bidi.LookupRune(cp)
	switch p.Class() {
	case bidi.L:
		return ClassL
	case bidi.R:
		return ClassR
	case bidi.AL:
		return ClassAL
	case bidi.EN:
		return ClassEN
	case bidi.ES:
		return ClassES
	case bidi.ET:
		return ClassET
	case bidi.AN:
		return ClassAN
	case bidi.CS:
		return ClassCS
	case bidi.NSM:
		return ClassNSM
	case bidi.BN:
		return ClassBN
	default:
		return ClassON
	}
}

// JoiningType is one of the Arabic cursive joining types used by the
// CONTEXTJ ZWNJ rule (RFC 5892 Appendix A, rule 2).
type JoiningType int

const (
	JoiningU JoiningType = iota // non-joining (the default for anything not listed below)
	JoiningC                    // joins on both sides (e.g. ZWJ/ZWNJ themselves, tatweel)
	JoiningD                    // dual-joining
	JoiningL                    // left-joining
	JoiningR                    // right-joining
	JoiningT                    // transparent (combining marks)
)

// JoiningTypeOf reports the joining type of cp. Only letters of the Arabic
// block (plus ZWNJ and ZWJ) are tabulated; everything else that is a combining mark is
// treated as Transparent and everything else again as non-joining, which
// is the correct default per UAX #9's joining type derivation rule and is
// sufficient for the CONTEXTJ check (spec.md §4.6: "full script coverage
// is not required").
func JoiningTypeOf(cp rune) JoiningType {
	if IsCombiningMark(cp) {
		return JoiningT
	}
	if t, ok := arabicJoiningType[cp]; ok {
		return t
	}
	return JoiningU
}

// arabicJoiningType tabulates the joining type of the Arabic-block letters
// that occur in real IDNA label text. This is not a complete rendering of
// ArabicShaping.txt; it covers the primary Arabic alphabet plus a
// selection of the extended Arabic letters (U+0671-U+06D2), which is all
// RFC 5892 Appendix A's ZWNJ rule requires of an implementation that
// doesn't carry the full script database.
var arabicJoiningType = map[rune]JoiningType{
	0x0621: JoiningU, // HAMZA
	0x0622: JoiningR, // ALEF WITH MADDA ABOVE
	0x0623: JoiningR, // ALEF WITH HAMZA ABOVE
	0x0624: JoiningR, // WAW WITH HAMZA ABOVE
	0x0625: JoiningR, // ALEF WITH HAMZA BELOW
	0x0626: JoiningD, // YEH WITH HAMZA ABOVE
	0x0627: JoiningR, // ALEF
	0x0628: JoiningD, // BEH
	0x0629: JoiningR, // TEH MARBUTA
	0x062A: JoiningD, // TEH
	0x062B: JoiningD, // THEH
	0x062C: JoiningD, // JEEM
	0x062D: JoiningD, // HAH
	0x062E: JoiningD, // KHAH
	0x062F: JoiningR, // DAL
	0x0630: JoiningR, // THAL
	0x0631: JoiningR, // REH
	0x0632: JoiningR, // ZAIN
	0x0633: JoiningD, // SEEN
	0x0634: JoiningD, // SHEEN
	0x0635: JoiningD, // SAD
	0x0636: JoiningD, // DAD
	0x0637: JoiningD, // TAH
	0x0638: JoiningD, // ZAH
	0x0639: JoiningD, // AIN
	0x063A: JoiningD, // GHAIN
	0x0640: JoiningC, // TATWEEL
	0x0641: JoiningD, // FEH
	0x0642: JoiningD, // QAF
	0x0643: JoiningD, // KAF
	0x0644: JoiningD, // LAM
	0x0645: JoiningD, // MEEM
	0x0646: JoiningD, // NOON
	0x0647: JoiningD, // HEH
	0x0648: JoiningR, // WAW
	0x0649: JoiningD, // ALEF MAKSURA
	0x064A: JoiningD, // YEH
	0x066E: JoiningD, // DOTLESS BEH
	0x066F: JoiningD, // DOTLESS QAF
	0x0671: JoiningR, // ALEF WASLA
	0x0672: JoiningR,
	0x0673: JoiningR,
	0x0675: JoiningR,
	0x0676: JoiningR,
	0x0677: JoiningR,
	0x0678: JoiningD,
	0x0679: JoiningD,
	0x067A: JoiningD,
	0x067B: JoiningD,
	0x067C: JoiningD,
	0x067D: JoiningD,
	0x067E: JoiningD, // PEH
	0x067F: JoiningD,
	0x0680: JoiningD,
	0x0681: JoiningD,
	0x0682: JoiningD,
	0x0683: JoiningD,
	0x0684: JoiningD,
	0x0685: JoiningD,
	0x0686: JoiningD, // TCHEH
	0x0687: JoiningD,
	0x0688: JoiningR,
	0x0689: JoiningR,
	0x068A: JoiningR,
	0x068B: JoiningR,
	0x068C: JoiningR,
	0x068D: JoiningR,
	0x068E: JoiningR,
	0x068F: JoiningR,
	0x0690: JoiningR,
	0x0691: JoiningR,
	0x0692: JoiningR,
	0x0693: JoiningR,
	0x0694: JoiningR,
	0x0695: JoiningR,
	0x0696: JoiningR,
	0x0697: JoiningR,
	0x0698: JoiningR, // JEH
	0x0699: JoiningR,
	0x069A: JoiningD,
	0x06A9: JoiningD, // KEHEH
	0x06AF: JoiningD, // GAF
	0x06BA: JoiningR,
	0x06BE: JoiningD,
	0x06C1: JoiningD, // HEH GOAL
	0x06CC: JoiningD, // FARSI YEH
	0x06D2: JoiningR, // YEH BARREE
	0x200C: JoiningC, // ZERO WIDTH NON-JOINER (U+200C itself; appears as C per ArabicShaping.txt)
	0x200D: JoiningC, // ZERO WIDTH JOINER
}

// Script is one of the scripts CONTEXTO needs to recognise.
type Script int

const (
	ScriptOther Script = iota
	ScriptHan
	ScriptHiragana
	ScriptKatakana
	ScriptGreek
	ScriptHebrew
	ScriptArabic
)

// ScriptOf reports the script of cp, to the precision CONTEXTO's checks
// need (U+30FB requires Hiragana/Katakana/Han context, U+0375 requires a
// following Greek letter, Hebrew punctuation requires a preceding Hebrew
// letter). Go's standard unicode package ships these range tables
// directly.
func ScriptOf(cp rune) Script {
	switch {
	case unicode.Is(unicode.Han, cp):
		return ScriptHan
	case unicode.Is(unicode.Hiragana, cp):
		return ScriptHiragana
	case unicode.Is(unicode.Katakana, cp):
		return ScriptKatakana
	case unicode.Is(unicode.Greek, cp):
		return ScriptGreek
	case unicode.Is(unicode.Hebrew, cp):
		return ScriptHebrew
	case unicode.Is(unicode.Arabic, cp):
		return ScriptArabic
	default:
		return ScriptOther
	}
}

// IsWhitespace reports whether cp is Unicode whitespace.
func IsWhitespace(cp rune) bool { return unicode.IsSpace(cp) }
