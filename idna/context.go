package idna

import (
	"github.com/publicsuffix/idnatools/idna/internal/normcore"
	"github.com/publicsuffix/idnatools/idna/internal/uprops"
)

// checkContextJ applies the CONTEXTJ rule (RFC 5892 Appendix A) to the
// label's runes: ZWJ is only valid immediately after a Virama (canonical
// combining class 9); ZWNJ requires either a preceding Virama, or sits in
// a joining-type sequence {L,D} T* ZWNJ T* {R,D}.
func checkContextJ(runes []rune, n *normcore.NormalizerCore) ErrorBits {
	var errs ErrorBits
	for i, r := range runes {
		switch r {
		case zwj:
			if i == 0 || !isVirama(runes[i-1], n) {
				errs |= ContextJ
			}
		case zwnj:
			if i > 0 && isVirama(runes[i-1], n) {
				continue
			}
			if !zwnjJoiningContextOK(runes, i) {
				errs |= ContextJ
			}
		}
	}
	return errs
}

// isVirama reports whether r has canonical combining class 9 (Virama),
// the context ZWJ requires immediately before it.
func isVirama(r rune, n *normcore.NormalizerCore) bool {
	return n.GetCC(r) == 9
}

// zwnjJoiningContextOK implements RFC 5892 Appendix A rule 2's joining
// type scan: before the ZWNJ at position i there must be an {L,D}
// followed by zero or more T, and after it zero or more T followed by an
// {R,D}.
func zwnjJoiningContextOK(runes []rune, i int) bool {
	before := false
	for j := i - 1; j >= 0; j-- {
		jt := uprops.JoiningTypeOf(runes[j])
		if jt == uprops.JoiningT {
			continue
		}
		before = jt == uprops.JoiningL || jt == uprops.JoiningD
		break
	}
	if !before {
		return false
	}
	for j := i + 1; j < len(runes); j++ {
		jt := uprops.JoiningTypeOf(runes[j])
		if jt == uprops.JoiningT {
			continue
		}
		return jt == uprops.JoiningR || jt == uprops.JoiningD
	}
	return false
}

// checkContextO applies the CONTEXTO rules (RFC 5892 Appendix A) for the
// handful of punctuation and digit code points whose validity depends on
// what else appears in the label.
func checkContextO(runes []rune) ErrorBits {
	var errs ErrorBits

	hasArabicIndic, hasExtArabicIndic := false, false
	for _, r := range runes {
		if r >= 0x0660 && r <= 0x0669 {
			hasArabicIndic = true
		}
		if r >= 0x06F0 && r <= 0x06F9 {
			hasExtArabicIndic = true
		}
	}
	if hasArabicIndic && hasExtArabicIndic {
		errs |= ContextODigits
	}

	for i, r := range runes {
		switch r {
		case 0x00B7: // MIDDLE DOT: only valid between two 'l'
			if i == 0 || i == len(runes)-1 || runes[i-1] != 'l' || runes[i+1] != 'l' {
				errs |= ContextOPunctuation
			}
		case 0x0375: // GREEK LOWER NUMERAL SIGN: only valid before a Greek letter
			if i == len(runes)-1 || uprops.ScriptOf(runes[i+1]) != uprops.ScriptGreek {
				errs |= ContextOPunctuation
			}
		case 0x05F3, 0x05F4: // HEBREW PUNCTUATION GERESH/GERSHAYIM: only after a Hebrew letter
			if i == 0 || uprops.ScriptOf(runes[i-1]) != uprops.ScriptHebrew {
				errs |= ContextOPunctuation
			}
		case 0x30FB: // KATAKANA MIDDLE DOT: requires a Hiragana/Katakana/Han CP somewhere in the label
			if !hasJapaneseScript(runes) {
				errs |= ContextOPunctuation
			}
		}
	}
	return errs
}

func hasJapaneseScript(runes []rune) bool {
	for _, r := range runes {
		switch uprops.ScriptOf(r) {
		case uprops.ScriptHan, uprops.ScriptHiragana, uprops.ScriptKatakana:
			return true
		}
	}
	return false
}
