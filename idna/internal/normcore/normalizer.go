// Package normcore implements the decompose/reorder/recompose engine
// described in spec.md §4.2-§4.3: an append-only ReorderingBuffer that
// performs canonical-order insertion by Canonical Combining Class, and a
// NormalizerCore that decomposes and recomposes code points around it.
//
// Per-code-point decomposition mappings and combining classes are sourced
// from golang.org/x/text/unicode/norm, the real Unicode normalization data
// this module's corpus already depends on (see DESIGN.md); NormalizerCore
// supplies the parts spec.md calls out as distinct from plain NFC: the
// Hangul algorithmic special case and the insertion-sort ReorderingBuffer
// itself, which x/text/unicode/norm's own public API does not expose.
package normcore

import (
	"sync"

	"golang.org/x/text/unicode/norm"
)

// NormalizerCore decomposes and recomposes text. onlyContiguous selects
// FCC-style composition (spec.md §4.3.3): combining marks that are not
// contiguous with their starter are left uncombined, rather than the
// plain NFC behaviour of combining across any intervening CCC-increasing
// run.
type NormalizerCore struct {
	OnlyContiguous bool

	combineMu    sync.Mutex
	combineCache map[[2]rune]combineResult
}

type combineResult struct {
	composite rune
	ok        bool
}

// NewNormalizerCore returns a NormalizerCore. The composing/decomposing
// collapses the "Normalizer2WithImpl / ComposeNormalizer2" layering spec.md
// §9 describes into this one struct, parameterised by onlyContiguous,
// rather than a type hierarchy.
func NewNormalizerCore(onlyContiguous bool) *NormalizerCore {
	return &NormalizerCore{
		OnlyContiguous: onlyContiguous,
		combineCache:   make(map[[2]rune]combineResult),
	}
}

// GetCC returns the canonical combining class of cp.
func (n *NormalizerCore) GetCC(cp rune) uint8 {
	if IsHangulSyllable(cp) || IsJamoL(cp) || IsJamoV(cp) || IsJamoT(cp) {
		return 0
	}
	return norm.NFD.PropertiesString(string(cp)).CCC()
}

// GetFCD16 returns (leadCCC<<8)|trailCCC for cp, per spec.md §3 "FCD16".
func (n *NormalizerCore) GetFCD16(cp rune) uint16 {
	if IsHangulSyllable(cp) {
		_, _, t, hasT := DecomposeHangul(cp)
		if hasT {
			return uint16(n.GetCC(t))
		}
		return 0
	}
	p := norm.NFD.PropertiesString(string(cp))
	return uint16(p.LeadCCC())<<8 | uint16(p.TrailCCC())
}

// HasCompBoundaryBefore reports whether cp starts a composition segment:
// nothing preceding it can combine with or reorder across it into a
// different result. A code point has a composition boundary before it if
// it is a starter that does not itself begin a canonical decomposition
// continuing a prior combining sequence, i.e. CCC == 0 and it is not a
// Jamo V/T (which only ever compose after a preceding Jamo L/LV).
func (n *NormalizerCore) HasCompBoundaryBefore(cp rune) bool {
	if IsJamoV(cp) || IsJamoT(cp) {
		return false
	}
	return n.GetCC(cp) == 0
}

// HasCompBoundaryAfter reports whether nothing that could follow cp would
// combine backward into it, to the approximation FCD16 gives: cp has a
// boundary after it if its trailing CCC is 0 (nothing can reorder past it)
// and, when onlyContiguous is requested, also has tccc <= 1.
func (n *NormalizerCore) HasCompBoundaryAfter(cp rune, onlyContiguous bool) bool {
	fcd := n.GetFCD16(cp)
	trail := uint8(fcd & 0xFF)
	if onlyContiguous && trail > 1 {
		return false
	}
	return trail == 0
}

// IsCompInert reports whether cp is inert to composition in both
// directions: boundary before and after, and CCC == 0.
func (n *NormalizerCore) IsCompInert(cp rune, onlyContiguous bool) bool {
	return n.GetCC(cp) == 0 && n.HasCompBoundaryBefore(cp) && n.HasCompBoundaryAfter(cp, onlyContiguous)
}

// Decompose returns the canonical decomposition of a single code point as
// a sequence of (rune, ccc) pairs, not yet reordered relative to its
// neighbours. Hangul syllables decompose algorithmically (spec.md §4.3.1);
// everything else defers to the Unicode decomposition mapping.
func (n *NormalizerCore) Decompose(cp rune) []CP {
	if IsHangulSyllable(cp) {
		l, v, t, hasT := DecomposeHangul(cp)
		if hasT {
			return []CP{{l, 0}, {v, 0}, {t, 0}}
		}
		return []CP{{l, 0}, {v, 0}}
	}

	props := norm.NFD.PropertiesString(string(cp))
	decomp := props.Decomposition()
	if len(decomp) == 0 {
		return []CP{{cp, props.CCC()}}
	}
	out := make([]CP, 0, len(decomp))
	for _, r := range string(decomp) {
		out = append(out, CP{r, norm.NFD.PropertiesString(string(r)).CCC()})
	}
	return out
}

// DecomposeString fully decomposes s into a canonically-ordered sequence
// by decomposing every input code point (in input order, not yet
// reordered relative to neighbours) and feeding the result through a
// ReorderingBuffer, which performs the insertion-sort pass spec.md §4.2
// describes.
func (n *NormalizerCore) DecomposeString(s string) *ReorderingBuffer {
	rb := NewReorderingBuffer()
	for _, r := range s {
		for _, cp := range n.Decompose(r) {
			rb.Append(cp.Rune, cp.CCC)
		}
	}
	return rb
}

// combine attempts to compose a starter and a following combining mark
// into a single composite code point. Hangul Jamo combine algorithmically;
// everything else is tested against golang.org/x/text/unicode/norm's own
// composition table (which already accounts for the Unicode composition
// exclusion list) by checking whether normalizing the two-rune sequence
// collapses it to one code point. Results are memoized since the same
// pair recurs across a long label.
func (n *NormalizerCore) combine(starter, mark rune) (rune, bool) {
	if IsJamoL(starter) && IsJamoV(mark) {
		return ComposeHangulLV(starter, mark), true
	}
	if IsHangulSyllable(starter) {
		if _, _, _, hasT := DecomposeHangul(starter); !hasT && IsJamoT(mark) {
			return ComposeHangulLVT(starter, mark), true
		}
	}

	key := [2]rune{starter, mark}
	n.combineMu.Lock()
	if r, ok := n.combineCache[key]; ok {
		n.combineMu.Unlock()
		return r.composite, r.ok
	}
	n.combineMu.Unlock()

	composed := norm.NFC.String(string(starter) + string(mark))
	runes := []rune(composed)
	var res combineResult
	if len(runes) == 1 {
		res = combineResult{runes[0], true}
	} else {
		res = combineResult{0, false}
	}

	n.combineMu.Lock()
	n.combineCache[key] = res
	n.combineMu.Unlock()
	return res.composite, res.ok
}

// Recompose walks rb.buf[from:] looking for a starter followed by
// combining marks of non-decreasing CCC, attempting to combine each one in
// turn (spec.md §4.3.3). A starter directly after the current one (such as
// a Hangul Jamo V after a Jamo L) is tried as well; any other following
// starter ends the run. onlyContiguous (FCC mode) stops attempting to
// combine across a mark that did not itself combine, rather than skipping
// past it to try the next one.
func (n *NormalizerCore) Recompose(rb *ReorderingBuffer, from int, onlyContiguous bool) {
	i := from
	for i < rb.Len() {
		if rb.At(i).CCC != 0 {
			i++
			continue
		}
		starterIdx := i
		starter := rb.At(i).Rune
		j := i + 1
		lastCC := uint8(0)
		for j < rb.Len() {
			mark := rb.At(j)
			if mark.CCC == 0 {
				if j == starterIdx+1 {
					if composite, ok := n.combine(starter, mark.Rune); ok {
						rb.ReplaceRange(starterIdx, j+1, CP{composite, n.GetCC(composite)})
						starter = composite
						continue
					}
				}
				break
			}
			if mark.CCC < lastCC {
				break
			}
			composite, ok := n.combine(starter, mark.Rune)
			if !ok {
				if onlyContiguous {
					break
				}
				lastCC = mark.CCC
				j++
				continue
			}
			// Replace the starter and drop only the mark that combined;
			// marks between them that did not combine stay in place.
			rb.buf[starterIdx] = CP{composite, n.GetCC(composite)}
			rb.buf = append(rb.buf[:j], rb.buf[j+1:]...)
			rb.lastCC = rb.buf[len(rb.buf)-1].CCC
			starter = composite
			j = starterIdx + 1
			lastCC = 0
			continue
		}
		i = starterIdx + 1
	}
}

// NFC returns the NFC-equivalent canonical-composition form of s, built
// from this NormalizerCore's own Decompose/ReorderingBuffer/Recompose
// primitives rather than delegating the whole operation to
// golang.org/x/text/unicode/norm.
func (n *NormalizerCore) NFC(s string) string {
	rb := n.DecomposeString(s)
	n.Recompose(rb, 0, n.OnlyContiguous)
	return rb.String()
}

// NFD returns the canonical decomposition form of s.
func (n *NormalizerCore) NFD(s string) string {
	return n.DecomposeString(s).String()
}

// QuickCheckNFC reports whether s is already in NFC, letting callers skip
// the full decompose/recompose pass for the common case of already-clean
// input (spec.md §4.3 "quick-check").
func (n *NormalizerCore) QuickCheckNFC(s string) bool {
	return norm.NFC.IsNormalString(s)
}
