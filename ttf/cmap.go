package ttf

import "fmt"

// PlatformID enumerates the platforms used by 'cmap' and 'name' records.
type PlatformID uint16

const (
	PlatformUnicode   PlatformID = 0
	PlatformMacintosh PlatformID = 1
	PlatformISO       PlatformID = 2
	PlatformMicrosoft PlatformID = 3
)

func (p PlatformID) String() string {
	switch p {
	case PlatformUnicode:
		return "Unicode"
	case PlatformMacintosh:
		return "Macintosh"
	case PlatformISO:
		return "ISO"
	case PlatformMicrosoft:
		return "Microsoft"
	}
	return fmt.Sprintf("Platform(%d)", uint16(p))
}

// Microsoft platform encodings carrying Unicode text.
const (
	msEncodingUnicodeBMP  = 1
	msEncodingUnicodeFull = 10
)

// MissingCodepoint fills unmapped slots of the glyph-index mapping.
const MissingCodepoint uint32 = 0xFFFF

// CmapTable holds the inverted codepoint mapping of a font: glyph index to
// unicode codepoint, as a dense array whose length is the highest mapped
// glyph index plus one. Unmapped slots hold MissingCodepoint.
type CmapTable struct {
	mappings  []uint32
	Subtables []CmapSubtable // the selected raw subtables, in file order
}

// Codepoint returns the unicode codepoint mapped to a glyph index. Glyph
// index 0 is always resolvable, even though a 'cmap' will not map it: it
// reports MissingCodepoint when no subtable assigned it one.
func (t *CmapTable) Codepoint(gid uint16) (uint32, bool) {
	if int(gid) >= len(t.mappings) {
		if gid == 0 {
			return MissingCodepoint, true
		}
		return 0, false
	}
	return t.mappings[gid], true
}

// Len returns the length of the dense mapping array.
func (t *CmapTable) Len() int {
	return len(t.mappings)
}

// CmapSubtable is one subtable of the 'cmap' table, expanded into explicit
// (glyph index, codepoint) pairs in decoding order.
type CmapSubtable struct {
	Platform PlatformID
	Encoding uint16
	Format   uint16
	Mappings []CmapMapping
}

// CmapMapping is a single glyph-index-to-codepoint assignment.
type CmapMapping struct {
	GlyphID   uint16
	Codepoint uint32
}

// unicodeCmapSubtable reports whether a subtable's platform/encoding pair
// carries Unicode codepoints. Only those are selected; everything else is
// skipped, not an error.
func unicodeCmapSubtable(platform PlatformID, encoding uint16) bool {
	if platform == PlatformUnicode {
		return true
	}
	return platform == PlatformMicrosoft &&
		(encoding == msEncodingUnicodeBMP || encoding == msEncodingUnicodeFull)
}

// parseCmap decodes the 'cmap' table. The subtable walk follows the header
// directory; each selected subtable is decoded through a cloned cursor so
// the directory position is undisturbed.
func parseCmap(cur *ByteCursor, wc *warningCollector) (*CmapTable, error) {
	table := &CmapTable{}

	if err := cur.SkipU16(); err != nil { // version
		return nil, err
	}
	numTables, err := cur.U16()
	if err != nil {
		return nil, withField(err, "numTables")
	}

	for i := 0; i < int(numTables); i++ {
		platform, err := cur.U16()
		if err != nil {
			return nil, withField(err, "platformID")
		}
		encoding, err := cur.U16()
		if err != nil {
			return nil, withField(err, "encodingID")
		}
		offset, err := cur.U32()
		if err != nil {
			return nil, withField(err, "offset")
		}
		tracer().Debugf("cmap subtable: platform=%d encoding=%d offset=%d", platform, encoding, offset)

		if !unicodeCmapSubtable(PlatformID(platform), encoding) {
			wc.addWarning(T("cmap"),
				fmt.Sprintf("skipping subtable with non-Unicode platform %d/%d", platform, encoding), offset)
			continue
		}

		sub := cur.Clone()
		if err := sub.AdvanceTo(int(offset)); err != nil {
			return nil, err
		}
		subtable, err := parseCmapSubtable(sub)
		if err != nil {
			return nil, err
		}
		subtable.Platform = PlatformID(platform)
		subtable.Encoding = encoding

		for _, m := range subtable.Mappings {
			gid := int(m.GlyphID)
			if len(table.mappings) <= gid {
				grown := make([]uint32, gid+1)
				copy(grown, table.mappings)
				for j := len(table.mappings); j <= gid; j++ {
					grown[j] = MissingCodepoint
				}
				table.mappings = grown
			}
			table.mappings[gid] = m.Codepoint
		}
		table.Subtables = append(table.Subtables, subtable)
	}

	return table, nil
}

// parseCmapSubtable decodes a single subtable, dispatching on its format.
// Formats 0, 4, 6 and 12 are understood; any other format is a fatal parse
// error, since a font whose Unicode mapping we cannot read is useless to us.
func parseCmapSubtable(cur *ByteCursor) (CmapSubtable, error) {
	format, err := cur.U16()
	if err != nil {
		return CmapSubtable{}, withField(err, "format")
	}
	subtable := CmapSubtable{Format: format}
	tracer().Debugf("cmap subtable format %d", format)

	switch format {
	case 0:
		// 256 single-byte entries: index = byte value, codepoint = position.
		if err := cur.SkipU16(); err != nil { // length
			return subtable, err
		}
		if err := cur.SkipU16(); err != nil { // language
			return subtable, err
		}
		for codepoint := uint32(0); codepoint <= 0xFF; codepoint++ {
			gid, err := cur.U8()
			if err != nil {
				return subtable, withField(err, "glyphIdArray")
			}
			subtable.Mappings = append(subtable.Mappings, CmapMapping{
				GlyphID:   uint16(gid),
				Codepoint: codepoint,
			})
		}

	case 4:
		if err := parseCmapFormat4(cur, &subtable); err != nil {
			return subtable, err
		}

	case 6:
		// A contiguous run of direct glyph ids starting at firstCode.
		if err := cur.SkipU16(); err != nil { // length
			return subtable, err
		}
		if err := cur.SkipU16(); err != nil { // language
			return subtable, err
		}
		firstCode, err := cur.U16()
		if err != nil {
			return subtable, withField(err, "firstCode")
		}
		entryCount, err := cur.U16()
		if err != nil {
			return subtable, withField(err, "entryCount")
		}
		for i := uint32(0); i < uint32(entryCount); i++ {
			gid, err := cur.U16()
			if err != nil {
				return subtable, withField(err, "glyphIdArray")
			}
			subtable.Mappings = append(subtable.Mappings, CmapMapping{
				GlyphID:   gid,
				Codepoint: uint32(firstCode) + i,
			})
		}

	case 12:
		if err := parseCmapFormat12(cur, &subtable); err != nil {
			return subtable, err
		}

	default:
		return subtable, cur.Err(fmt.Sprintf("unsupported cmap subtable format %d", format))
	}

	tracer().Debugf("cmap subtable carries %d mappings", len(subtable.Mappings))
	return subtable, nil
}

// parseCmapFormat4 decodes the segmented BMP mapping, "the standard
// character-to-glyph-index mapping table for the Windows platform".
// Per segment: endCode, startCode, idDelta and idRangeOffset; idRangeOffset
// is a byte offset into a trailing glyph id array, relative to its own
// position in the file, which is why dereferencing clones the cursor.
func parseCmapFormat4(cur *ByteCursor, subtable *CmapSubtable) error {
	if err := cur.SkipU16(); err != nil { // length
		return err
	}
	if err := cur.SkipU16(); err != nil { // language
		return err
	}
	segCountX2, err := cur.U16()
	if err != nil {
		return withField(err, "segCountX2")
	}
	segCount := int(segCountX2 / 2)
	for _, f := range []string{"searchRange", "entrySelector", "rangeShift"} {
		if err := cur.SkipU16(); err != nil {
			return withField(err, f)
		}
	}

	endCode := make([]uint16, segCount)
	for i := range endCode {
		if endCode[i], err = cur.U16(); err != nil {
			return withField(err, "endCode")
		}
	}
	if err := cur.SkipU16(); err != nil { // reservedPad
		return err
	}
	startCode := make([]uint16, segCount)
	for i := range startCode {
		if startCode[i], err = cur.U16(); err != nil {
			return withField(err, "startCode")
		}
	}
	idDelta := make([]uint16, segCount)
	for i := range idDelta {
		if idDelta[i], err = cur.U16(); err != nil {
			return withField(err, "idDelta")
		}
	}

	for i := 0; i < segCount; i++ {
		idRangeOffset, err := cur.U16()
		if err != nil {
			return withField(err, "idRangeOffset")
		}

		for codepoint := uint32(startCode[i]); codepoint <= uint32(endCode[i]); codepoint++ {
			if codepoint == 0xFFFF {
				// The terminator segment maps to glyph 0.
				subtable.Mappings = append(subtable.Mappings, CmapMapping{GlyphID: 0, Codepoint: 0xFFFF})
				break
			}

			var gid uint16
			if idRangeOffset == 0 {
				// glyph id = codepoint + idDelta, modulo 65536.
				gid = uint16(codepoint) + idDelta[i]
			} else {
				// Indexed mapping: dereference the parallel glyph id
				// array. The offset counts from the idRangeOffset slot
				// just read, i.e. relative to the current cursor position
				// minus the two bytes of the slot itself.
				indexOffset := int(idRangeOffset) + 2*(int(codepoint)-int(startCode[i])) - 2
				deref := cur.Clone()
				if err := deref.AdvanceBy(indexOffset); err != nil {
					return err
				}
				gid, err = deref.U16()
				if err != nil {
					return withField(err, "glyphIdArray")
				}
				if gid != 0 {
					gid += idDelta[i]
				}
			}
			subtable.Mappings = append(subtable.Mappings, CmapMapping{GlyphID: gid, Codepoint: codepoint})
		}
	}
	return nil
}

// parseCmapFormat12 decodes the segmented coverage for codepoints beyond
// the BMP: groups of (startChar, endChar, startGlyph), expanded pairwise.
// Expansion is direction-aware: descending groups walk codepoints downward.
func parseCmapFormat12(cur *ByteCursor, subtable *CmapSubtable) error {
	if err := cur.SkipU16(); err != nil { // reserved
		return err
	}
	if err := cur.SkipU32(); err != nil { // length
		return err
	}
	if err := cur.SkipU32(); err != nil { // language
		return err
	}
	numGroups, err := cur.U32()
	if err != nil {
		return withField(err, "numGroups")
	}

	for g := uint32(0); g < numGroups; g++ {
		start, err := cur.U32()
		if err != nil {
			return withField(err, "startCharCode")
		}
		end, err := cur.U32()
		if err != nil {
			return withField(err, "endCharCode")
		}
		startGlyph, err := cur.U32()
		if err != nil {
			return withField(err, "startGlyphID")
		}
		tracer().Debugf("cmap group: start=%d end=%d startGlyph=%d", start, end, startGlyph)

		step := uint32(1)
		if start > end {
			step = ^uint32(0) // walk downward
		}
		n := end - start
		if start > end {
			n = start - end
		}
		codepoint := start
		for i := uint32(0); i < n; i++ {
			gid := startGlyph + i
			if gid > 0xFFFF {
				gid = 0
			}
			subtable.Mappings = append(subtable.Mappings, CmapMapping{
				GlyphID:   uint16(gid),
				Codepoint: codepoint,
			})
			codepoint += step
		}
	}
	return nil
}
