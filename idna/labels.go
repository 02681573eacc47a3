package idna

import (
	"strings"
	"unicode/utf8"

	"github.com/publicsuffix/idnatools/idna/internal/bootstring"
	"github.com/publicsuffix/idnatools/idna/internal/normcore"
	"github.com/publicsuffix/idnatools/idna/internal/uprops"
)

// acePrefix is the ASCII-Compatible Encoding prefix (spec.md §6.4).
const acePrefix = "xn--"

// maxLabelOctets and maxNameOctets are the RFC 1035 §2.3.4 length limits
// spec.md §4.5.2/§4.5.3 enforce.
const (
	maxLabelOctets = 63
	maxNameOctets  = 253
)

// labelResult holds one label's Unicode text, its runes, and the error
// bits recorded for it.
type labelResult struct {
	unicode string
	runes   []rune
	errs    ErrorBits
}

// processLabels splits mapped (already UTS46-mapped and NFC-normalized)
// on U+002E, validates each label, and returns the per-label results plus
// the accumulated error bits. isFullName controls whether a single
// trailing empty label is tolerated as the DNS root (true) or instead
// always flagged EmptyLabel (false).
func (p *Profile) processLabels(mapped string, isFullName bool, info *IDNAInfo, n *normcore.NormalizerCore) []labelResult {
	parts := strings.Split(mapped, ".")
	results := make([]labelResult, len(parts))

	for i, part := range parts {
		isRoot := isFullName && i == len(parts)-1 && part == ""
		if part == "" && !isRoot {
			info.Errors |= EmptyLabel
			results[i] = labelResult{"", nil, EmptyLabel}
			continue
		}
		results[i] = p.validateLabel(part, info, n)
	}
	return results
}

// validateLabel runs the per-label pipeline of spec.md §4.5.2: ACE
// detection/decoding, structural validity rules, CONTEXTJ/CONTEXTO.
func (p *Profile) validateLabel(label string, info *IDNAInfo, n *normcore.NormalizerCore) labelResult {
	var errs ErrorBits
	text := label
	if len(label) >= len(acePrefix) && strings.EqualFold(label[:len(acePrefix)], acePrefix) {
		decodedRunes, err := bootstring.Decode(label[len(acePrefix):])
		if err != nil {
			errs |= Punycode
			info.Errors |= errs
			fallback := label + "�"
			return labelResult{fallback, []rune(fallback), errs}
		}
		decoded := string(decodedRunes)

		var scratch IDNAInfo
		remapped := p.mapString(decoded, &scratch)
		renormalized := n.NFC(remapped)
		if renormalized != decoded {
			errs |= InvalidAceLabel
		}
		text = decoded
	}

	runes := []rune(text)

	if p.validateLabels {
		errs |= structuralChecks(text, runes, label, n)
	}
	if p.checkContextJ {
		errs |= checkContextJ(runes, n)
	}
	if p.checkContextO {
		errs |= checkContextO(runes)
	}
	if p.checkSTD3 {
		errs |= checkSTD3(text)
	}
	if p.verifyDNSLength && len(text) > maxLabelOctets {
		errs |= LabelTooLong
	}

	info.Errors |= errs
	return labelResult{text, runes, errs}
}

// structuralChecks implements the label-wide validity rules of spec.md
// §4.5.2 bullet list (besides CONTEXTJ/CONTEXTO, handled separately).
// original is the as-written label (before any ACE decoding), used for
// the Hyphen34/valid-ACE-form test.
func structuralChecks(text string, runes []rune, original string, n *normcore.NormalizerCore) ErrorBits {
	var errs ErrorBits

	if len(runes) > 0 && (uprops.IsCombiningMark(runes[0]) || n.GetCC(runes[0]) > 0) {
		errs |= LeadingCombiningMark
	}
	for _, r := range runes {
		if c := classify(r); c.cat == catDisallowed {
			errs |= Disallowed
		}
	}
	if strings.ContainsRune(text, '.') {
		errs |= LabelHasDot
	}

	isACEForm := len(original) >= len(acePrefix) && strings.EqualFold(original[:len(acePrefix)], acePrefix)
	if len(original) >= 4 && original[2] == '-' && original[3] == '-' && !isACEForm {
		errs |= Hyphen34
	}
	if strings.HasPrefix(text, "-") {
		errs |= LeadingHyphen
	}
	if strings.HasSuffix(text, "-") {
		errs |= TrailingHyphen
	}

	return errs
}

// checkSTD3 implements spec.md §4.5.2 bullet 2's second clause: under
// USE_STD3_RULES, any ASCII character in the label that is not a letter,
// digit, or hyphen is disallowed.
func checkSTD3(text string) ErrorBits {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c < utf8.RuneSelf && !isLDH(c) && c != '.' {
			return Disallowed
		}
	}
	return 0
}

// asciiOnly reports whether label text is already pure ASCII, in which
// case it needs no Punycode encoding for toASCII output.
func asciiOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// encodeLabelACE Punycode-encodes a single Unicode label, returning the
// "xn--…" form. It is the caller's responsibility to only invoke this for
// labels that are not already plain ASCII and are not marked with a
// severe error (spec.md §7: severe errors prevent ACE re-encoding).
func encodeLabelACE(runes []rune) (string, error) {
	encoded, err := bootstring.Encode(runes, nil)
	if err != nil {
		return "", err
	}
	return acePrefix + encoded, nil
}
