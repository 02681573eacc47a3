// Package idna implements Internationalized Domain Names in Applications
// processing per UTS #46: bidirectional conversion between Unicode domain
// names and their ASCII-Compatible Encoding ("xn--…" Punycode) forms,
// together with STD3, BiDi, CONTEXTJ, CONTEXTO, and length validation.
//
// The package exposes four operations per spec.md §6.1, each available at
// label and whole-name granularity: LabelToASCII, LabelToUnicode,
// NameToASCII, NameToUnicode. A Profile configures which checks apply;
// New constructs one from a list of Options, mirroring the functional
// options style this module's consumers (internal/domain) already use.
package idna

import "strings"

// Profile configures an IDNA mapper: which checks to run, and whether
// mapping should canonicalise "lookup"-acceptable deviations instead of
// rejecting them outright.
//
// A Profile is immutable once constructed by New, and is safe to use from
// multiple goroutines concurrently (spec.md §5: "no writes occur after
// initialisation").
type Profile struct {
	checkSTD3         bool
	checkBidi         bool
	checkContextJ     bool
	checkContextO     bool
	mapForLookup      bool
	transitional      bool
	validateLabels    bool
	verifyDNSLength   bool
	removeLeadingDots bool
}

// Option configures a Profile constructed by New.
type Option func(*Profile)

// New constructs a Profile from the given options.
func New(opts ...Option) *Profile {
	p := &Profile{
		checkContextJ: true,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// StrictDomainName requests UIDNA_USE_STD3_RULES: only letters, digits,
// and hyphens are permitted in the ASCII range (RFC 1123), per spec.md §9
// Open Question 1 (this module keeps a single flag for both the UTS46 and
// IDN2 meanings, since nothing here needs to distinguish them).
func StrictDomainName(use bool) Option {
	return func(p *Profile) { p.checkSTD3 = use }
}

// BidiRule enables the RFC 5893 BiDi rule check (UIDNA_CHECK_BIDI).
func BidiRule() Option {
	return func(p *Profile) { p.checkBidi = true }
}

// CheckJoiners mirrors x/net/idna's naming for the CONTEXTJ (joiner)
// check. The check is on in profiles built with New; this option lets
// callers disable it explicitly.
func CheckJoiners(check bool) Option {
	return func(p *Profile) { p.checkContextJ = check }
}

// CheckContextO enables or disables the CONTEXTO check, which is off in
// profiles built with New unless this option turns it on.
func CheckContextO(check bool) Option {
	return func(p *Profile) { p.checkContextO = check }
}

// MapForLookup sets the Profile's lookup flag, mirroring x/net/idna's
// option of the same name. Mapping does not depend on it: every Profile
// replaces mapped characters with their mapping, and Transitional below
// selects whether deviation characters are replaced.
func MapForLookup() Option {
	return func(p *Profile) { p.mapForLookup = true }
}

// Transitional selects UTS46's transitional processing for deviation
// characters (ß, ς, ZWJ, ZWNJ) when t is true, and nontransitional
// processing when false. Nontransitional is the default for a Profile
// constructed with New and no options, matching current browser practice.
func Transitional(t bool) Option {
	return func(p *Profile) { p.transitional = t }
}

// ValidateLabels enables per-label structural validation (RFC 5891
// §5.4): leading combining marks, disallowed characters, embedded dots,
// hyphens at positions 3-4, leading/trailing hyphens.
func ValidateLabels(v bool) Option {
	return func(p *Profile) { p.validateLabels = v }
}

// VerifyDNSLength enables per-label and whole-name length accounting
// (RFC 1035 §2.3.4).
func VerifyDNSLength(v bool) Option {
	return func(p *Profile) { p.verifyDNSLength = v }
}

// RemoveLeadingDots strips leading U+002E characters before processing,
// rather than treating them as producing empty leading labels.
func RemoveLeadingDots(r bool) Option {
	return func(p *Profile) { p.removeLeadingDots = r }
}

func stripLeadingDots(s string) string {
	return strings.TrimLeft(s, ".")
}
