package idna

import "github.com/publicsuffix/idnatools/idna/internal/uprops"

// containsRTL reports whether any rune in the slice has Bidi class R, AL,
// or AN, the UTS #46 §4.2 definition of a "Bidi domain name".
func containsRTL(runes []rune) bool {
	for _, r := range runes {
		switch uprops.BidiClassOf(r) {
		case uprops.ClassR, uprops.ClassAL, uprops.ClassAN:
			return true
		}
	}
	return false
}

// checkBidiLabel applies the RFC 5893 BiDi rule to a single label's
// runes, returning whether the label satisfies it. The rule only applies
// within a label; the decision to apply it across the whole name (only
// when at least one label is RTL) is made by the caller.
func checkBidiLabel(runes []rune) bool {
	if len(runes) == 0 {
		return true
	}
	firstClass := uprops.BidiClassOf(runes[0])

	switch firstClass {
	case uprops.ClassL:
		return checkBidiLTRLabel(runes)
	case uprops.ClassR, uprops.ClassAL:
		return checkBidiRTLLabel(runes)
	default:
		// Rule 1: the first character must be L, R, or AL.
		return false
	}
}

// checkBidiLTRLabel implements RFC 5893 rule 5 and 6 for an LTR label:
// every character must be L, EN, or (if it is NSM) attach to a preceding
// L/EN, and the label must end in L or EN (ignoring trailing NSM).
func checkBidiLTRLabel(runes []rune) bool {
	lastStrong := uprops.ClassOther
	for i, r := range runes {
		switch uprops.BidiClassOf(r) {
		case uprops.ClassL, uprops.ClassEN:
			lastStrong = uprops.BidiClassOf(r)
		case uprops.ClassNSM:
			if i == 0 {
				return false
			}
			prev := uprops.BidiClassOf(runes[i-1])
			if prev != uprops.ClassL && prev != uprops.ClassEN && prev != uprops.ClassNSM {
				return false
			}
		default:
			return false
		}
	}
	return lastStrong == uprops.ClassL || lastStrong == uprops.ClassEN
}

// checkBidiRTLLabel implements RFC 5893 rules 2-4 for an RTL label:
// every character is drawn from the permitted set, the label ends (modulo
// trailing NSM) in R, AL, EN, or AN, and EN and AN do not both occur.
func checkBidiRTLLabel(runes []rune) bool {
	sawEN, sawAN := false, false
	lastStrong := uprops.ClassOther
	for i, r := range runes {
		cls := uprops.BidiClassOf(r)
		switch cls {
		case uprops.ClassR, uprops.ClassAL:
			lastStrong = cls
		case uprops.ClassAN:
			sawAN = true
			lastStrong = cls
		case uprops.ClassEN:
			sawEN = true
			lastStrong = cls
		case uprops.ClassES, uprops.ClassCS, uprops.ClassET, uprops.ClassON, uprops.ClassBN:
			// permitted, does not affect the "last strong" tracking
		case uprops.ClassNSM:
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	if sawEN && sawAN {
		return false
	}
	switch lastStrong {
	case uprops.ClassR, uprops.ClassAL, uprops.ClassEN, uprops.ClassAN:
		return true
	default:
		return false
	}
}
