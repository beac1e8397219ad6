package ttf

import "fmt"

// PostTable holds the glyph names of a font, by glyph index, plus the
// monospace flag from the 'post' header. Fonts without a usable 'post'
// table carry an empty name list; glyph names are then unavailable, which
// is a degradation, not an error.
type PostTable struct {
	IsMonospaced bool
	glyphNames   []string
}

// GlyphName returns the postscript name of a glyph, if known.
func (t *PostTable) GlyphName(gid uint16) (string, bool) {
	if int(gid) >= len(t.glyphNames) {
		return "", false
	}
	return t.glyphNames[gid], true
}

// NumNames returns the number of named glyphs.
func (t *PostTable) NumNames() int {
	return len(t.glyphNames)
}

// parsePost decodes the 'post' table. The header (version, metrics, memory
// hints) is always read; the per-glyph name data depends on the version:
//
//   - 1.0 — the glyph order is exactly the 258-entry standard Macintosh set.
//   - 2.0 — per-glyph ordinals indexing either the standard set or a
//     trailing list of Pascal strings.
//   - 2.5 — per-glyph signed byte deltas into the standard set.
//
// Any other version yields an empty name table and a warning.
func parsePost(cur *ByteCursor, wc *warningCollector) (*PostTable, error) {
	table := &PostTable{}

	major, minor, err := cur.Fixed32()
	if err != nil {
		return nil, withField(err, "version")
	}
	if err := cur.SkipU32(); err != nil { // italicAngle
		return nil, err
	}
	if err := cur.SkipU16(); err != nil { // underlinePosition
		return nil, err
	}
	if err := cur.SkipU16(); err != nil { // underlineThickness
		return nil, err
	}
	fixedPitch, err := cur.U32()
	if err != nil {
		return nil, withField(err, "isFixedPitch")
	}
	table.IsMonospaced = fixedPitch != 0
	for _, f := range []string{"minMemType42", "maxMemType42", "minMemType1", "maxMemType1"} {
		if err := cur.SkipU32(); err != nil {
			return nil, withField(err, f)
		}
	}
	tracer().Debugf("post version %d.%d", major, minor)

	switch {
	case major == 1 && minor == 0:
		table.glyphNames = make([]string, numMacGlyphNames)
		copy(table.glyphNames, macGlyphNames[:])

	case major == 2 && minor == 0:
		if err := parsePostNames2(cur, table); err != nil {
			return nil, err
		}

	case major == 2 && minor == 0x5000: // 2.5, fractional half stored as 16.16
		if err := parsePostNames25(cur, table); err != nil {
			return nil, err
		}

	default:
		wc.addWarning(T("post"),
			fmt.Sprintf("unsupported version %d.%d, glyph names unavailable", major, minor), 0)
	}

	return table, nil
}

// parsePostNames2 decodes version 2.0: numGlyphs ordinals, where ordinals
// below 258 index the standard Macintosh set and the rest index the list
// of Pascal strings that trails the ordinal array.
func parsePostNames2(cur *ByteCursor, table *PostTable) error {
	numGlyphs, err := cur.U16()
	if err != nil {
		return withField(err, "numGlyphs")
	}

	// Collect the trailing string list first, through a clone, so the
	// ordinal array can be read in sequence afterwards.
	var names []string
	strings := cur.Clone()
	if err := strings.AdvanceBy(int(numGlyphs) * 2); err != nil {
		return err
	}
	for !strings.AtEnd() {
		length, err := strings.U8()
		if err != nil {
			return withField(err, "nameLength")
		}
		name, err := strings.ReadString(int(length))
		if err != nil {
			return withField(err, "name")
		}
		names = append(names, name)
	}

	table.glyphNames = make([]string, 0, numGlyphs)
	for i := 0; i < int(numGlyphs); i++ {
		ordinal, err := cur.U16()
		if err != nil {
			return withField(err, "glyphNameIndex")
		}
		if int(ordinal) < numMacGlyphNames {
			table.glyphNames = append(table.glyphNames, macGlyphNames[ordinal])
		} else {
			index := int(ordinal) - numMacGlyphNames
			if index >= len(names) {
				return cur.Err(fmt.Sprintf("glyph name ordinal %d exceeds %d stored names", ordinal, len(names)))
			}
			table.glyphNames = append(table.glyphNames, names[index])
		}
	}
	return nil
}

// parsePostNames25 decodes version 2.5: per glyph a signed byte delta d,
// naming glyph i after standard entry i+d. The version is deprecated but
// still found in older Apple fonts.
func parsePostNames25(cur *ByteCursor, table *PostTable) error {
	numGlyphs, err := cur.U16()
	if err != nil {
		return withField(err, "numGlyphs")
	}
	table.glyphNames = make([]string, 0, numGlyphs)
	for i := 0; i < int(numGlyphs); i++ {
		delta, err := cur.I8()
		if err != nil {
			return withField(err, "offset")
		}
		index := i + int(delta)
		if index < 0 || index >= numMacGlyphNames {
			return InvalidValue{Pos: cur.Pos() - 1, Value: uint32(uint8(delta)), Field: "offset"}
		}
		table.glyphNames = append(table.glyphNames, macGlyphNames[index])
	}
	return nil
}
