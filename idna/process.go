package idna

import (
	"strings"

	"github.com/publicsuffix/idnatools/idna/internal/normcore"
)

// sharedNormalizer is the process-wide NFC normalizer used by every
// Profile. Per spec.md §5, the underlying normalization data is
// immutable and safe for concurrent readers without locking once
// constructed; NormalizerCore's only mutable state is an internal
// memoization cache guarded by its own mutex, so one instance can be
// shared across every call.
var sharedNormalizer = normcore.NewNormalizerCore(false)

// NameToUnicode implements spec.md §6.1's nameToUnicode operation: map,
// normalize, split on '.', decode/validate each label, and join the
// Unicode results back together. info is reset and populated with the
// accumulated error bits and flags for this call.
func (p *Profile) NameToUnicode(s string) (string, *IDNAInfo) {
	info := &IDNAInfo{}
	return p.nameToUnicode(s, info), info
}

func (p *Profile) nameToUnicode(s string, info *IDNAInfo) string {
	if p.removeLeadingDots {
		s = stripLeadingDots(s)
	}
	if s == "" {
		return ""
	}

	mapped := p.normalize(s, info)
	labels := p.processLabels(mapped, true, info, sharedNormalizer)
	p.checkBidiRule(labels, info)

	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = l.unicode
	}
	return strings.Join(parts, ".")
}

// NameToASCII implements spec.md §6.1's nameToASCII operation.
func (p *Profile) NameToASCII(s string) (string, *IDNAInfo) {
	info := &IDNAInfo{}
	out := p.nameToASCII(s, info)
	return out, info
}

func (p *Profile) nameToASCII(s string, info *IDNAInfo) string {
	if p.removeLeadingDots {
		s = stripLeadingDots(s)
	}
	if s == "" {
		return ""
	}

	mapped := p.normalize(s, info)
	labels := p.processLabels(mapped, true, info, sharedNormalizer)
	p.checkBidiRule(labels, info)

	parts := make([]string, len(labels))
	total := 0
	for i, l := range labels {
		part, labelErrs := p.toASCIILabel(l)
		info.Errors |= labelErrs
		parts[i] = part
		if i > 0 {
			total++ // dot separator
		}
		total += len(part)
	}
	if p.verifyDNSLength {
		checkTotal := total
		if last := len(parts) - 1; last >= 0 && parts[last] == "" {
			checkTotal-- // a trailing root dot does not count
		}
		if checkTotal < 1 || checkTotal > maxNameOctets {
			info.Errors |= DomainNameTooLong
		}
	}

	return strings.Join(parts, ".")
}

// LabelToUnicode implements spec.md §6.1's labelToUnicode operation: the
// entire input is treated as exactly one label, never split on '.'.
func (p *Profile) LabelToUnicode(s string) (string, *IDNAInfo) {
	info := &IDNAInfo{}
	if s == "" {
		return "", info
	}
	mapped := p.normalize(s, info)
	result := p.validateLabel(mapped, info, sharedNormalizer)
	if strings.ContainsRune(mapped, '.') {
		info.Errors |= LabelHasDot
	}
	labels := []labelResult{result}
	p.checkBidiRule(labels, info)
	return result.unicode, info
}

// LabelToASCII implements spec.md §6.1's labelToASCII operation.
func (p *Profile) LabelToASCII(s string) (string, *IDNAInfo) {
	info := &IDNAInfo{}
	if s == "" {
		return "", info
	}
	mapped := p.normalize(s, info)
	result := p.validateLabel(mapped, info, sharedNormalizer)
	if strings.ContainsRune(mapped, '.') {
		info.Errors |= LabelHasDot
	}
	labels := []labelResult{result}
	p.checkBidiRule(labels, info)

	out, errs := p.toASCIILabel(result)
	info.Errors |= errs
	if p.verifyDNSLength && (len(out) < 1 || len(out) > maxNameOctets) {
		info.Errors |= DomainNameTooLong
	}
	return out, info
}

// normalize applies UTS46 mapping followed by NFC normalization, the
// first stage of every façade operation (spec.md §4.5.1).
func (p *Profile) normalize(s string, info *IDNAInfo) string {
	mapped := p.mapString(s, info)
	return sharedNormalizer.NFC(mapped)
}

// toASCIILabel re-encodes a single already-validated label to its ACE
// form, honouring spec.md §7: a label with a severe error is returned
// unchanged (best-effort) rather than Punycode-encoded, and an
// already-ASCII label needs no encoding at all.
func (p *Profile) toASCIILabel(l labelResult) (string, ErrorBits) {
	if asciiOnly(l.unicode) {
		return l.unicode, 0
	}
	if l.errs&severeErrors != 0 {
		// A severe error on this label means its decoded/mapped text,
		// not a fresh ACE encoding, is the best-effort output.
		return l.unicode, 0
	}

	encoded, err := encodeLabelACE(l.runes)
	if err != nil {
		return l.unicode, Punycode
	}
	var errs ErrorBits
	if p.verifyDNSLength && len(encoded) > maxLabelOctets {
		errs |= LabelTooLong
	}
	return encoded, errs
}

// checkBidiRule applies the RFC 5893 BiDi rule across the whole name
// (spec.md §4.5.2 step 3): only when CHECK_BIDI is enabled and at least
// one label is RTL.
func (p *Profile) checkBidiRule(labels []labelResult, info *IDNAInfo) {
	if !p.checkBidi {
		return
	}
	// A domain name is a "Bidi domain name" if it contains at least one
	// character with Bidi class R, AL, or AN anywhere in it (UTS #46
	// §4.2), not merely a label that itself starts with one: the BiDi
	// rule still applies to an LTR-looking label if an RTL character
	// appears elsewhere in the name.
	anyRTL := false
	for _, l := range labels {
		if containsRTL(l.runes) {
			anyRTL = true
			break
		}
	}
	if !anyRTL {
		return
	}
	info.isBiDi = true
	ok := true
	for _, l := range labels {
		if len(l.runes) == 0 {
			continue
		}
		if !checkBidiLabel(l.runes) {
			ok = false
		}
	}
	info.isOkBiDi = ok
	if !ok {
		info.Errors |= Bidi
	}
}

// ToASCII is the plain-error convenience wrapper over NameToASCII, for
// callers (like internal/domain) that want a single Go error rather than
// an IDNAInfo bitset, mirroring the x/net/idna Profile API this module's
// consumers were originally written against.
func (p *Profile) ToASCII(s string) (string, error) {
	out, info := p.NameToASCII(s)
	if info.HasErrors() {
		return out, info
	}
	return out, nil
}

// ToUnicode is the plain-error convenience wrapper over NameToUnicode.
func (p *Profile) ToUnicode(s string) (string, error) {
	out, info := p.NameToUnicode(s)
	if info.HasErrors() {
		return out, info
	}
	return out, nil
}
