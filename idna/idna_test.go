package idna_test

import (
	"testing"

	"github.com/publicsuffix/idnatools/idna"
)

func lookupProfile() *idna.Profile {
	return idna.New(
		idna.MapForLookup(),
		idna.BidiRule(),
		idna.ValidateLabels(true),
		idna.VerifyDNSLength(true),
		idna.Transitional(false),
	)
}

func TestToASCIIBasic(t *testing.T) {
	p := lookupProfile()
	got, info := p.NameToASCII("www.eXample.cOm")
	if got != "www.example.com" {
		t.Errorf("got %q, want www.example.com", got)
	}
	if info.HasErrors() {
		t.Errorf("unexpected errors: %v", info)
	}
}

func TestToASCIIUmlaut(t *testing.T) {
	p := lookupProfile()
	got, info := p.NameToASCII("Bücher.de")
	if got != "xn--bcher-kva.de" {
		t.Errorf("got %q, want xn--bcher-kva.de", got)
	}
	if info.HasErrors() {
		t.Errorf("unexpected errors: %v", info)
	}
}

func TestEmptyLabel(t *testing.T) {
	p := lookupProfile()
	got, info := p.NameToASCII("a..c")
	if got != "a..c" {
		t.Errorf("got %q, want a..c", got)
	}
	if info.Errors&idna.EmptyLabel == 0 {
		t.Errorf("expected EmptyLabel, got %v", info)
	}
}

func TestLeadingHyphen(t *testing.T) {
	p := lookupProfile()
	got, info := p.NameToASCII("a.-b.")
	if got != "a.-b." {
		t.Errorf("got %q, want a.-b.", got)
	}
	if info.Errors&idna.LeadingHyphen == 0 {
		t.Errorf("expected LeadingHyphen, got %v", info)
	}
}

func TestSharpSTransitional(t *testing.T) {
	p := idna.New(
		idna.MapForLookup(),
		idna.ValidateLabels(true),
		idna.VerifyDNSLength(true),
		idna.Transitional(true),
	)
	got, info := p.NameToASCII("aß.de")
	if got != "ass.de" {
		t.Errorf("got %q, want ass.de", got)
	}
	if info.HasErrors() {
		t.Errorf("unexpected errors: %v", info)
	}
}

func TestSharpSNonTransitional(t *testing.T) {
	p := lookupProfile()
	got, info := p.NameToASCII("aß.de")
	if got != "xn--a-iga.de" {
		t.Errorf("got %q, want xn--a-iga.de", got)
	}
	if info.HasErrors() {
		t.Errorf("unexpected errors: %v", info)
	}
}

func TestLabelTooLong(t *testing.T) {
	p := lookupProfile()
	label := ""
	for i := 0; i < 64; i++ {
		label += "a"
	}
	got, info := p.NameToASCII(label)
	if got != label {
		t.Errorf("got %q, want %q", got, label)
	}
	if info.Errors&idna.LabelTooLong == 0 {
		t.Errorf("expected LabelTooLong, got %v", info)
	}
}

func TestBidiMixedScript(t *testing.T) {
	p := lookupProfile()
	_, info := p.NameToASCII("aא")
	if info.Errors&idna.Bidi == 0 {
		t.Errorf("expected Bidi error, got %v", info)
	}
}

func TestStability(t *testing.T) {
	p := lookupProfile()
	input := "Bücher.de"
	ascii, info1 := p.NameToASCII(input)
	if info1.HasErrors() {
		t.Fatalf("unexpected errors mapping to ASCII: %v", info1)
	}
	unicodeAgain, info2 := p.NameToUnicode(ascii)
	if info2.HasErrors() {
		t.Fatalf("unexpected errors mapping back to Unicode: %v", info2)
	}
	asciiAgain, info3 := p.NameToASCII(unicodeAgain)
	if info3.HasErrors() {
		t.Fatalf("unexpected errors on second ASCII pass: %v", info3)
	}
	if ascii != asciiAgain {
		t.Errorf("nameToASCII not stable: %q != %q", ascii, asciiAgain)
	}
}

func TestOutputIsASCII(t *testing.T) {
	p := lookupProfile()
	got, info := p.NameToASCII("Bücher.de")
	if info.IsSevere() {
		t.Fatalf("unexpected severe errors: %v", info)
	}
	for _, r := range got {
		if r >= 0x80 {
			t.Fatalf("output %q contains non-ASCII rune %q", got, r)
		}
	}
}

func TestLabelVsNameEquivalence(t *testing.T) {
	p := lookupProfile()
	nameOut, nameInfo := p.NameToASCII("example")
	labelOut, labelInfo := p.LabelToASCII("example")
	if nameOut != labelOut {
		t.Errorf("NameToASCII = %q, LabelToASCII = %q", nameOut, labelOut)
	}
	if nameInfo.Errors&idna.LabelHasDot != 0 || labelInfo.Errors&idna.LabelHasDot != 0 {
		t.Errorf("unexpected LabelHasDot for dot-free input")
	}
}

func TestErrorString(t *testing.T) {
	info := &idna.IDNAInfo{Errors: idna.Bidi | idna.ContextJ}
	if got := info.String(); got != "Bidi, ContextJ" {
		t.Errorf("got %q, want %q", got, "Bidi, ContextJ")
	}
}

func TestEmptyInput(t *testing.T) {
	p := lookupProfile()
	got, info := p.NameToASCII("")
	if got != "" || info.HasErrors() {
		t.Errorf("empty input should round-trip with no errors, got %q, %v", got, info)
	}
}
