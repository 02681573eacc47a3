// Package trie implements a read-only, compact code-point-to-16-bit-value
// trie. Every code point, in the Basic Multilingual Plane or above it, is
// looked up through the same single-level block index: index[cp>>6]
// selects a data block and the low 6 bits select the value within it.
// There is no separate three-level path for supplementary code points.
// NextUTF8 steps through UTF-8 input and advances a byte cursor; there is
// no UTF-16 step helper.
//
// The format mirrors the kind of compact trie that Unicode normalization
// and property tables are customarily stored in (see the trie2 design used
// by ICU and by golang.org/x/text/internal/ucd-derived tables); this
// package implements only the reader and an in-process Builder. No other
// package in this module uses it, and no serialized table ships with it
// (see DESIGN.md).
package trie

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Signature is the magic value identifying a serialized trie header.
const Signature = 0x54726933 // "Tri3"

// ErrInvalidFormat is returned when a serialized trie fails validation:
// bad signature, unknown option bits, or insufficient length.
var ErrInvalidFormat = errors.New("trie: invalid format")

const (
	fastShift = 6
	fastMax   = 0x180 // not referenced: BMP and supplementary lookups both go through blockGet

	smallDataBlockShift = 4
	smallDataMask       = (1 << smallDataBlockShift) - 1

	shiftInIndex2Block = smallDataBlockShift
)

// Header is the serialized trie header.
type Header struct {
	Signature        uint32
	Options          uint32
	IndexLength      uint32
	DataLength       uint32
	Index3NullOffset uint32
	DataNullOffset   uint32
	ShiftedHighStart uint32
}

// knownOptionBits is the set of option bits this reader understands.
// Anything outside this mask makes the trie unreadable.
const knownOptionBits = 0x3

// Reader is a read-only view over a serialized trie: an index array and a
// data array, both of 16-bit units.
type Reader struct {
	index     []uint16
	data      []uint16
	highStart rune
}

// HighValueNegDataOffset and ErrorValueNegDataOffset are the fixed offsets
// from the end of the data array used for the two dedicated sentinel slots:
// the "above highStart" value, and the "ill-formed sequence" value.
const (
	HighValueNegDataOffset  = 1
	ErrorValueNegDataOffset = 2

	// InertValue is the sentinel Norm16/property value for code points
	// that are inert to both composition and decomposition, e.g.
	// surrogate code points.
	InertValue = 0
)

// Parse reads a serialized trie from b, validating the header's
// signature, option bits and length.
func Parse(b []byte) (*Reader, error) {
	if len(b) < 24 {
		return nil, fmt.Errorf("trie: %w: truncated header", ErrInvalidFormat)
	}
	h := Header{
		Signature:        binary.BigEndian.Uint32(b[0:4]),
		Options:          binary.BigEndian.Uint32(b[4:8]),
		IndexLength:      binary.BigEndian.Uint32(b[8:12]),
		DataLength:       binary.BigEndian.Uint32(b[12:16]),
		Index3NullOffset: binary.BigEndian.Uint32(b[16:20]),
		DataNullOffset:   binary.BigEndian.Uint32(b[20:24]),
	}
	if h.Signature != Signature {
		return nil, fmt.Errorf("trie: %w: bad signature %#x", ErrInvalidFormat, h.Signature)
	}
	if h.Options&^knownOptionBits != 0 {
		return nil, fmt.Errorf("trie: %w: unknown option bits %#x", ErrInvalidFormat, h.Options)
	}
	want := 24 + 2*int(h.IndexLength) + 2*int(h.DataLength)
	if len(b) < want {
		return nil, fmt.Errorf("trie: %w: want %d bytes, have %d", ErrInvalidFormat, want, len(b))
	}

	index := make([]uint16, h.IndexLength)
	for i := range index {
		index[i] = binary.BigEndian.Uint16(b[24+2*i:])
	}
	dataStart := 24 + 2*int(h.IndexLength)
	data := make([]uint16, h.DataLength)
	for i := range data {
		data[i] = binary.BigEndian.Uint16(b[dataStart+2*i:])
	}

	return &Reader{index: index, data: data, highStart: 0x110000}, nil
}

// New constructs a Reader directly from in-memory index/data arrays,
// without parsing a serialized header.
func New(index, data []uint16, highStart rune) *Reader {
	return &Reader{index: index, data: data, highStart: highStart}
}

// Get16 returns the trie value for any code point, including surrogates
// (which are always inert) and out-of-range values.
func (r *Reader) Get16(cp rune) uint16 {
	if cp < 0 || cp > 0x10FFFF {
		return r.errorValue()
	}
	if cp >= 0xD800 && cp <= 0xDFFF {
		return InertValue
	}
	if cp >= r.highStart {
		return r.highValue()
	}
	return r.blockGet(cp)
}

// FastBMPGet is the unchecked BMP fast path: index[cp>>6] selects a data
// block, and the low 6 bits select the offset within it. Callers must
// ensure cp is a BMP code point below highStart.
func (r *Reader) FastBMPGet(cp rune) uint16 { return r.blockGet(cp) }

// SuppGet handles code points at or above the BMP, via the same
// block-indexed layout as FastBMPGet, or the high-value sentinel for code
// points at or above highStart.
func (r *Reader) SuppGet(cp rune) uint16 {
	if cp >= r.highStart {
		return r.highValue()
	}
	return r.blockGet(cp)
}

// blockGet is the common index[cp>>fastShift]+low-bits lookup shared by
// the BMP and supplementary paths: Builder lays out every block (BMP and
// supplementary alike) using this same addressing scheme.
func (r *Reader) blockGet(cp rune) uint16 {
	i := int(cp) >> fastShift
	if i < 0 || i >= len(r.index) {
		return r.errorValue()
	}
	block := int(r.index[i])
	off := block + int(cp)&((1<<fastShift)-1)
	if off < 0 || off >= len(r.data) {
		return r.errorValue()
	}
	return r.data[off]
}

func (r *Reader) highValue() uint16 {
	if len(r.data) < HighValueNegDataOffset {
		return InertValue
	}
	return r.data[len(r.data)-HighValueNegDataOffset]
}

func (r *Reader) errorValue() uint16 {
	if len(r.data) < ErrorValueNegDataOffset {
		return InertValue
	}
	return r.data[len(r.data)-ErrorValueNegDataOffset]
}

// NextUTF8 decodes the code point starting at b[pos] and returns it, its
// trie value, and the position after it. An ill-formed sequence returns
// utf8.RuneError and the error sentinel value, advancing by one byte.
func (r *Reader) NextUTF8(b []byte, pos int) (cp rune, val uint16, next int) {
	if pos >= len(b) {
		return 0, r.errorValue(), pos
	}
	c := b[pos]
	switch {
	case c < 0x80:
		return rune(c), r.FastBMPGet(rune(c)), pos + 1
	case c < 0xC0:
		return 0xFFFD, r.errorValue(), pos + 1
	case c < 0xE0:
		if pos+1 >= len(b) || !isCont(b[pos+1]) {
			return 0xFFFD, r.errorValue(), pos + 1
		}
		cp = rune(c&0x1F)<<6 | rune(b[pos+1]&0x3F)
		return cp, r.Get16(cp), pos + 2
	case c < 0xF0:
		if pos+2 >= len(b) || !isCont(b[pos+1]) || !isCont(b[pos+2]) {
			return 0xFFFD, r.errorValue(), pos + 1
		}
		cp = rune(c&0x0F)<<12 | rune(b[pos+1]&0x3F)<<6 | rune(b[pos+2]&0x3F)
		return cp, r.Get16(cp), pos + 3
	case c < 0xF8:
		if pos+3 >= len(b) || !isCont(b[pos+1]) || !isCont(b[pos+2]) || !isCont(b[pos+3]) {
			return 0xFFFD, r.errorValue(), pos + 1
		}
		cp = rune(c&0x07)<<18 | rune(b[pos+1]&0x3F)<<12 | rune(b[pos+2]&0x3F)<<6 | rune(b[pos+3]&0x3F)
		return cp, r.Get16(cp), pos + 4
	default:
		return 0xFFFD, r.errorValue(), pos + 1
	}
}

func isCont(b byte) bool { return b&0xC0 == 0x80 }

// Builder assembles a Reader from an explicit map of code point to value,
// laying it out with the same fast/supplementary split as the serialized
// format, without requiring a round trip through bytes. Every code point
// not present in the map reads back as InertValue.
type Builder struct {
	values    map[rune]uint16
	highValue uint16
	errValue  uint16
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{values: make(map[rune]uint16)}
}

// Set assigns the trie value for a single code point.
func (b *Builder) Set(cp rune, val uint16) { b.values[cp] = val }

// SetHighValue sets the value returned for any code point >= the
// Builder's computed highStart (i.e. above the highest explicitly set
// code point's block).
func (b *Builder) SetHighValue(val uint16) { b.highValue = val }

// SetErrorValue sets the value returned for ill-formed UTF-8/UTF-16 and
// out-of-range queries.
func (b *Builder) SetErrorValue(val uint16) { b.errValue = val }

// Build freezes the Builder into a Reader.
func (b *Builder) Build() *Reader {
	var maxCP rune
	for cp := range b.values {
		if cp > maxCP {
			maxCP = cp
		}
	}
	// highStart is the first code point after the block holding maxCP.
	highStart := (maxCP>>fastShift + 1) << fastShift
	if highStart < 0x10000 {
		highStart = 0x10000
	}

	nBlocks := (int(highStart) >> fastShift) + 1
	index := make([]uint16, nBlocks)
	data := make([]uint16, 0, nBlocks<<fastShift+4)

	nullOff := -1
	for blk := 0; blk < nBlocks; blk++ {
		base := rune(blk << fastShift)
		empty := true
		for i := 0; i < 1<<fastShift; i++ {
			if b.values[base+rune(i)] != 0 {
				empty = false
				break
			}
		}
		// All-zero blocks share one data block, which keeps the offsets
		// of the supplementary blocks within the 16-bit index.
		if empty && nullOff >= 0 {
			index[blk] = uint16(nullOff)
			continue
		}
		off := len(data)
		if empty {
			nullOff = off
		}
		if off > 0xFFFF {
			// Extremely unlikely given IDNA-scale tables; guard anyway.
			off = 0xFFFF
		}
		index[blk] = uint16(off)
		for i := 0; i < 1<<fastShift; i++ {
			data = append(data, b.values[base+rune(i)])
		}
	}
	data = append(data, b.errValue, b.highValue)

	return &Reader{
		index:     index,
		data:      data,
		highStart: highStart,
	}
}
