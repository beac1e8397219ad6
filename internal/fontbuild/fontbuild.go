// Package fontbuild assembles small synthetic TrueType fonts in memory.
// It exists for tests: table encoders are deliberately straightforward
// inverses of the wire format, with no attempt at optimal packing, so a
// test can state a font's content declaratively and get back valid SFNT
// bytes.
package fontbuild

import (
	"encoding/binary"
	"math"
	"math/bits"

	"github.com/typeworks/glyphmap/ttf"
)

// --- Low-level byte emission -----------------------------------------------

type enc struct {
	buf []byte
}

func (e *enc) u8(v uint8)   { e.buf = append(e.buf, v) }
func (e *enc) u16(v uint16) { e.buf = binary.BigEndian.AppendUint16(e.buf, v) }
func (e *enc) u32(v uint32) { e.buf = binary.BigEndian.AppendUint32(e.buf, v) }
func (e *enc) i8(v int8)    { e.u8(uint8(v)) }
func (e *enc) i16(v int16)  { e.u16(uint16(v)) }
func (e *enc) raw(b []byte) { e.buf = append(e.buf, b...) }

func (e *enc) f2dot14(v float64) {
	e.i16(int16(math.Round(v * (1 << 14))))
}

// --- SFNT container ---------------------------------------------------------

// Table is one top-level font table to be placed in an SFNT container.
type Table struct {
	Tag  string
	Data []byte
}

// checksum computes the standard SFNT table checksum (sum of big-endian
// uint32 words, with implicit zero padding).
func checksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var word uint32
		for j := 0; j < 4; j++ {
			word <<= 8
			if i+j < len(data) {
				word |= uint32(data[i+j])
			}
		}
		sum += word
	}
	return sum
}

// SFNT wraps tables in an SFNT container: offset table, table directory
// and 4-byte-aligned table bodies, in the order given.
func SFNT(tables ...Table) []byte {
	numTables := uint16(len(tables))
	entrySelector := uint16(bits.Len16(numTables)) - 1
	searchRange := uint16(1<<entrySelector) * 16

	e := &enc{}
	e.u32(0x00010000) // scaler type: Windows/Adobe TrueType
	e.u16(numTables)
	e.u16(searchRange)
	e.u16(entrySelector)
	e.u16(numTables*16 - searchRange) // rangeShift

	offset := 12 + 16*int(numTables)
	for _, t := range tables {
		e.raw([]byte(t.Tag))
		e.u32(checksum(t.Data))
		e.u32(uint32(offset))
		e.u32(uint32(len(t.Data)))
		offset += (len(t.Data) + 3) &^ 3
	}
	for _, t := range tables {
		e.raw(t.Data)
		for len(e.buf)%4 != 0 {
			e.u8(0)
		}
	}
	return e.buf
}

// --- Global tables -----------------------------------------------------------

// Head encodes a 'head' table. Only unitsPerEm and indexToLocFormat carry
// test-relevant information; metrics and dates stay zero.
func Head(unitsPerEm uint16, longLoca bool) []byte {
	e := &enc{}
	e.u32(0x00010000) // version 1.0
	e.u32(0)          // fontRevision
	e.u32(0)          // checkSumAdjustment
	e.u32(0x5F0F3CF5) // magicNumber
	e.u16(0)          // flags
	e.u16(unitsPerEm)
	e.raw(make([]byte, 16)) // created, modified
	e.raw(make([]byte, 8))  // xMin, yMin, xMax, yMax
	e.u16(0)                // macStyle
	e.u16(8)                // lowestRecPPEM
	e.i16(2)                // fontDirectionHint
	if longLoca {
		e.i16(1)
	} else {
		e.i16(0)
	}
	e.i16(0) // glyphDataFormat
	return e.buf
}

// MaxP encodes a version-1.0 'maxp' table carrying the glyph count.
func MaxP(numGlyphs uint16) []byte {
	e := &enc{}
	e.u32(0x00010000)
	e.u16(numGlyphs)
	e.raw(make([]byte, 26)) // maxima, irrelevant for parsing
	return e.buf
}

// Hhea encodes an 'hhea' table declaring one long metric per glyph.
func Hhea(numGlyphs uint16) []byte {
	e := &enc{}
	e.u32(0x00010000)
	e.i16(800)  // ascender
	e.i16(-200) // descender
	e.i16(0)    // lineGap
	e.u16(600)  // advanceWidthMax
	e.raw(make([]byte, 22))
	e.u16(numGlyphs) // numberOfHMetrics
	return e.buf
}

// Hmtx encodes an 'hmtx' table with one identical metric per glyph.
func Hmtx(numGlyphs uint16) []byte {
	e := &enc{}
	for i := uint16(0); i < numGlyphs; i++ {
		e.u16(600) // advance width
		e.i16(0)   // left side bearing
	}
	return e.buf
}

// --- cmap --------------------------------------------------------------------

// Subtable is one 'cmap' subtable with its platform assignment.
type Subtable struct {
	Platform uint16
	Encoding uint16
	Data     []byte
}

// Cmap wraps encoded subtables in a 'cmap' table header.
func Cmap(subtables ...Subtable) []byte {
	e := &enc{}
	e.u16(0) // version
	e.u16(uint16(len(subtables)))
	offset := 4 + 8*len(subtables)
	for _, s := range subtables {
		e.u16(s.Platform)
		e.u16(s.Encoding)
		e.u32(uint32(offset))
		offset += len(s.Data)
	}
	for _, s := range subtables {
		e.raw(s.Data)
	}
	return e.buf
}

// CmapFormat0 encodes a byte-encoding subtable. mapping assigns glyph ids
// to byte codepoints; unassigned bytes map to glyph 0.
func CmapFormat0(mapping map[byte]uint16) []byte {
	e := &enc{}
	e.u16(0)   // format
	e.u16(262) // length
	e.u16(0)   // language
	for b := 0; b <= 0xFF; b++ {
		e.u8(uint8(mapping[byte(b)])) // glyph ids above 255 cannot be expressed
	}
	return e.buf
}

// Segment is one format-4 segment. If GlyphIDs is nil the segment maps
// through Delta arithmetic; otherwise the ids are stored in the trailing
// glyph id array and reached through idRangeOffset.
type Segment struct {
	Start, End uint16
	Delta      uint16
	GlyphIDs   []uint16
}

// CmapFormat4 encodes a segmented BMP subtable. The terminator segment
// (0xFFFF,0xFFFF) is appended automatically.
func CmapFormat4(segments ...Segment) []byte {
	segments = append(segments, Segment{Start: 0xFFFF, End: 0xFFFF, Delta: 1})
	segCount := len(segments)

	e := &enc{}
	e.u16(4) // format
	length := 16 + 8*segCount
	for _, s := range segments {
		length += 2 * len(s.GlyphIDs)
	}
	e.u16(uint16(length))
	e.u16(0) // language
	e.u16(uint16(segCount * 2))
	e.u16(0) // searchRange, unused by parsers
	e.u16(0) // entrySelector
	e.u16(0) // rangeShift
	for _, s := range segments {
		e.u16(s.End)
	}
	e.u16(0) // reservedPad
	for _, s := range segments {
		e.u16(s.Start)
	}
	for _, s := range segments {
		e.u16(s.Delta)
	}
	// idRangeOffset: byte distance from each slot to its segment's ids in
	// the trailing array.
	arrayPos := 0 // within the glyph id array
	for i, s := range segments {
		if s.GlyphIDs == nil {
			e.u16(0)
		} else {
			slotsAfter := segCount - i
			e.u16(uint16(2*slotsAfter + arrayPos))
			arrayPos += 2 * len(s.GlyphIDs)
		}
	}
	for _, s := range segments {
		for _, gid := range s.GlyphIDs {
			e.u16(gid)
		}
	}
	return e.buf
}

// CmapFormat6 encodes a trimmed-mapping subtable: a contiguous run of
// glyph ids starting at firstCode.
func CmapFormat6(firstCode uint16, glyphIDs []uint16) []byte {
	e := &enc{}
	e.u16(6) // format
	e.u16(uint16(10 + 2*len(glyphIDs)))
	e.u16(0) // language
	e.u16(firstCode)
	e.u16(uint16(len(glyphIDs)))
	for _, gid := range glyphIDs {
		e.u16(gid)
	}
	return e.buf
}

// Group is one format-12 segment: a codepoint run mapped to consecutive
// glyph ids.
type Group struct {
	Start, End, StartGlyph uint32
}

// CmapFormat12 encodes a segmented-coverage subtable.
func CmapFormat12(groups ...Group) []byte {
	e := &enc{}
	e.u16(12) // format
	e.u16(0)  // reserved
	e.u32(uint32(16 + 12*len(groups)))
	e.u32(0) // language
	e.u32(uint32(len(groups)))
	for _, g := range groups {
		e.u32(g.Start)
		e.u32(g.End)
		e.u32(g.StartGlyph)
	}
	return e.buf
}

// --- post --------------------------------------------------------------------

func postHeader(version uint32, monospaced bool) *enc {
	e := &enc{}
	e.u32(version)
	e.u32(0) // italicAngle
	e.i16(0) // underlinePosition
	e.i16(0) // underlineThickness
	if monospaced {
		e.u32(1)
	} else {
		e.u32(0)
	}
	e.raw(make([]byte, 16)) // memory hints
	return e
}

// PostV2 encodes a version-2.0 'post' table naming each glyph. Names found
// in the standard Macintosh set are stored as ordinals, the rest as
// trailing Pascal strings.
func PostV2(names []string, monospaced bool) []byte {
	e := postHeader(0x00020000, monospaced)
	e.u16(uint16(len(names)))
	var stored []string
	for _, name := range names {
		if ordinal, ok := ttf.MacGlyphOrdinal(name); ok {
			e.u16(uint16(ordinal))
		} else {
			e.u16(uint16(258 + len(stored)))
			stored = append(stored, name)
		}
	}
	for _, name := range stored {
		e.u8(uint8(len(name)))
		e.raw([]byte(name))
	}
	return e.buf
}

// PostV1 encodes a version-1.0 'post' table (standard Macintosh order).
func PostV1(monospaced bool) []byte {
	return postHeader(0x00010000, monospaced).buf
}

// PostVersion encodes a 'post' table with only a header, carrying an
// arbitrary version tag. Useful for exercising unsupported versions.
func PostVersion(version uint32) []byte {
	return postHeader(version, false).buf
}

// --- name --------------------------------------------------------------------

// NameEntry is one 'name' record, stored as Microsoft platform UTF-16BE.
type NameEntry struct {
	Kind  uint16
	Value string
}

// Name encodes a 'name' table from entries, in the order given.
func Name(entries ...NameEntry) []byte {
	e := &enc{}
	e.u16(0) // format
	e.u16(uint16(len(entries)))
	e.u16(uint16(6 + 12*len(entries))) // stringOffset

	var strings enc
	for _, entry := range entries {
		encoded := utf16be(entry.Value)
		e.u16(3)      // platform: Microsoft
		e.u16(1)      // encoding: Unicode BMP
		e.u16(0x0409) // language: en-US
		e.u16(entry.Kind)
		e.u16(uint16(len(encoded)))
		e.u16(uint16(len(strings.buf)))
		strings.raw(encoded)
	}
	e.raw(strings.buf)
	return e.buf
}

func utf16be(s string) []byte {
	var e enc
	for _, r := range s {
		if r > 0xFFFF {
			r -= 0x10000
			e.u16(uint16(0xD800 + (r >> 10)))
			e.u16(uint16(0xDC00 + (r & 0x3FF)))
		} else {
			e.u16(uint16(r))
		}
	}
	return e.buf
}
