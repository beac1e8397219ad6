package ttf

// Code comments occasionally cite the TrueType Reference Manual
// (https://developer.apple.com/fonts/TrueType-Reference-Manual/) and the
// OpenType specification
// (https://docs.microsoft.com/en-us/typography/opentype/spec/).

import "fmt"

// Scaler types accepted in the offset table. 'OTTO' marks CFF outline
// data, which this package does not interpret.
const (
	scalerTrueType = 0x00010000 // Windows/Adobe flavor
	scalerAppleTT  = 0x74727565 // 'true', Apple flavor
	scalerCFF      = 0x4f54544f // 'OTTO'
)

// FontHeader is the SFNT offset table: scaler type plus the number of
// top-level tables in the font file.
type FontHeader struct {
	ScalerType uint32
	TableCount uint16
}

// Font is the decoded structure of a TrueType font: the four interpreted
// tables plus one outline per glyph, indexed by glyph id.
//
// A Font is immutable after Parse returns and never touches the input
// buffer again.
type Font struct {
	Header     FontHeader
	Cmap       *CmapTable   // codepoint mapping; always present
	Post       *PostTable   // glyph names; empty when absent or degraded
	Name       *NameTable   // metadata strings; empty when absent
	UnitsPerEm uint16       // from 'head'
	outlines   []Outline    // per glyph id, from 'glyf'/'loca'
	warnings   []TableWarning
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return len(f.outlines)
}

// OutlineAt returns the raw outline for a glyph id, which is either a
// *SimpleOutline or a *CompoundOutline. ok is false if the glyph id is
// out of range.
func (f *Font) OutlineAt(gid uint16) (o Outline, ok bool) {
	if int(gid) >= len(f.outlines) {
		return nil, false
	}
	return f.outlines[gid], true
}

// Warnings returns all non-critical issues recorded during parsing.
func (f *Font) Warnings() []TableWarning {
	return f.warnings
}

// ---------------------------------------------------------------------------

// Parse decodes a TrueType font from a byte slice. The buffer must hold a
// complete SFNT file: offset table, table directory and table bodies for at
// least 'cmap', 'glyf', 'head' and 'loca'. 'post' and 'name' are optional
// and degrade to empty tables; all other tables are ignored.
//
// Parse neither copies nor mutates the buffer; the returned Font owns all
// of its data.
func Parse(data []byte) (*Font, error) {
	cur := NewCursor(data)
	wc := &warningCollector{}

	// Offset table, 12 bytes: scaler type, numTables, searchRange,
	// entrySelector, rangeShift.
	scaler, err := cur.U32()
	if err != nil {
		return nil, err
	}
	switch scaler {
	case scalerTrueType, scalerAppleTT:
		// glyf outlines, our territory
	case scalerCFF:
		return nil, ParseError{Pos: 0, Message: "CFF ('OTTO') outlines not supported"}
	default:
		return nil, InvalidValue{Pos: 0, Value: scaler, Field: "scalerType"}
	}
	tableCount, err := cur.U16()
	if err != nil {
		return nil, err
	}
	for _, f := range []string{"searchRange", "entrySelector", "rangeShift"} {
		if err := cur.SkipU16(); err != nil {
			return nil, withField(err, f)
		}
	}
	tracer().Debugf("scaler type = %#x, %d tables", scaler, tableCount)

	// Table directory, 16 bytes per record. Checksums are ignored; only
	// the byte regions of the tables we interpret are captured.
	regions := make(map[Tag][]byte)
	for i := 0; i < int(tableCount); i++ {
		tag, err := cur.ReadString(4)
		if err != nil {
			return nil, withField(err, "tag")
		}
		if err := cur.SkipU32(); err != nil { // checksum
			return nil, err
		}
		offset, err := cur.U32()
		if err != nil {
			return nil, withField(err, "offset")
		}
		length, err := cur.U32()
		if err != nil {
			return nil, withField(err, "length")
		}
		switch tag {
		case "cmap", "post", "name", "glyf", "head", "loca":
			body, err := cur.ReadFrom(int(offset), int(length))
			if err != nil {
				return nil, withField(err, tag)
			}
			regions[T(tag)] = body
			tracer().Debugf("table %s: offset=%d length=%d", tag, offset, length)
		default:
			// not interpreted
		}
	}

	otf := &Font{
		Header: FontHeader{ScalerType: scaler, TableCount: tableCount},
		Post:   &PostTable{},
		Name:   &NameTable{},
	}

	for _, tag := range []string{"cmap", "head", "loca", "glyf"} {
		if regions[T(tag)] == nil {
			return nil, ParseError{Pos: 0, Message: "missing required table " + tag}
		}
	}

	// 'head' drives the width of 'loca' entries.
	longLoca, upem, err := parseHead(NewCursor(regions[T("head")]))
	if err != nil {
		return nil, err
	}
	otf.UnitsPerEm = upem

	locaOffsets, err := parseLoca(NewCursor(regions[T("loca")]), longLoca)
	if err != nil {
		return nil, err
	}

	if otf.Cmap, err = parseCmap(NewCursor(regions[T("cmap")]), wc); err != nil {
		return nil, err
	}
	if body := regions[T("post")]; body != nil {
		if otf.Post, err = parsePost(NewCursor(body), wc); err != nil {
			return nil, err
		}
	} else {
		wc.addWarning(T("post"), "table absent, glyph names unavailable", 0)
	}
	if body := regions[T("name")]; body != nil {
		if otf.Name, err = parseName(NewCursor(body), wc); err != nil {
			return nil, err
		}
	} else {
		wc.addWarning(T("name"), "table absent, metadata strings unavailable", 0)
	}

	if otf.outlines, err = parseGlyfRegion(regions[T("glyf")], locaOffsets); err != nil {
		return nil, err
	}
	tracer().Debugf("parsed %d glyph outlines", len(otf.outlines))

	otf.warnings = wc.warnings
	return otf, nil
}

// parseHead extracts indexToLocFormat and unitsPerEm from the 'head' table;
// everything else in it is skipped.
func parseHead(cur *ByteCursor) (longLoca bool, unitsPerEm uint16, err error) {
	for _, skip := range []int{4, 4, 4, 4, 2} { // version, fontRevision, checkSumAdjustment, magicNumber, flags
		if err = cur.Skip(skip); err != nil {
			return false, 0, withField(err, "head")
		}
	}
	if unitsPerEm, err = cur.U16(); err != nil {
		return false, 0, withField(err, "unitsPerEm")
	}
	// created, modified, xMin/yMin/xMax/yMax, macStyle, lowestRecPPEM,
	// fontDirectionHint
	for _, skip := range []int{8, 8, 8, 2, 2, 2} {
		if err = cur.Skip(skip); err != nil {
			return false, 0, withField(err, "head")
		}
	}
	format, err := cur.I16()
	if err != nil {
		return false, 0, withField(err, "indexToLocFormat")
	}
	return format != 0, unitsPerEm, nil
}

// parseLoca expands the index-to-location table into absolute byte offsets
// within the 'glyf' table. The short version stores offsets halved.
func parseLoca(cur *ByteCursor, longLoca bool) ([]uint32, error) {
	offsets := make([]uint32, 0, cur.Len()/2)
	for !cur.AtEnd() {
		if longLoca {
			off, err := cur.U32()
			if err != nil {
				return nil, withField(err, "loca")
			}
			offsets = append(offsets, off)
		} else {
			off, err := cur.U16()
			if err != nil {
				return nil, withField(err, "loca")
			}
			offsets = append(offsets, uint32(off)*2)
		}
	}
	return offsets, nil
}

// parseGlyfRegion slices the 'glyf' table into per-glyph records keyed by
// consecutive loca offsets and decodes each. A zero-length range marks a
// glyph without an outline (e.g. a space) and yields an empty simple
// outline.
func parseGlyfRegion(glyf []byte, locaOffsets []uint32) ([]Outline, error) {
	if len(locaOffsets) == 0 {
		return nil, nil
	}
	outlines := make([]Outline, 0, len(locaOffsets)-1)
	for i := 0; i+1 < len(locaOffsets); i++ {
		off, next := int(locaOffsets[i]), int(locaOffsets[i+1])
		if off > next || next > len(glyf) {
			return nil, ParseError{Pos: off,
				Message: fmt.Sprintf("loca range [%d:%d] invalid for glyf table of %d bytes", off, next, len(glyf))}
		}
		if off == next {
			outlines = append(outlines, &SimpleOutline{})
			continue
		}
		o, err := parseOutline(NewCursor(glyf[off:next]))
		if err != nil {
			return nil, err
		}
		outlines = append(outlines, o)
	}
	return outlines, nil
}
