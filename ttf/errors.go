package ttf

import "fmt"

// UnexpectedEOF is returned when a read would exceed the end of the input
// buffer. Pos and Size describe the attempted read; Field optionally names
// the wire field being decoded.
type UnexpectedEOF struct {
	Pos   int    // byte position of the attempted read
	Size  int    // number of bytes requested
	Field string // wire field being decoded, may be empty
}

func (e UnexpectedEOF) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("unexpected EOF reading %d bytes at %d while decoding %s", e.Size, e.Pos, e.Field)
	}
	return fmt.Sprintf("unexpected EOF reading %d bytes at %d", e.Size, e.Pos)
}

// InvalidValue is returned when a decoded field lies outside its legal
// domain, e.g. an unsupported SFNT scaler type.
type InvalidValue struct {
	Pos   int    // byte position of the offending value
	Value uint32 // the offending value
	Field string // wire field being decoded
}

func (e InvalidValue) Error() string {
	return fmt.Sprintf("invalid value %#x at %d while decoding %s", e.Value, e.Pos, e.Field)
}

// ParseError is a structural or format violation with free-text context,
// e.g. an unsupported cmap subtable format.
type ParseError struct {
	Pos     int // byte position where the violation was detected
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("error at %d: %s", e.Pos, e.Message)
}

// CyclicCompound is returned when compound glyph resolution re-enters a
// glyph that is already being resolved on the current path. Such fonts are
// malformed; resolving them naively would recurse without bound.
type CyclicCompound struct {
	GlyphID uint16
}

func (e CyclicCompound) Error() string {
	return fmt.Sprintf("compound glyph cycle through glyph %d", e.GlyphID)
}

// ---------------------------------------------------------------------------

// TableWarning records a non-critical issue encountered during parsing:
// a degraded table (unsupported 'post' version, skipped cmap platform) or
// a recoverable oddity. Warnings never abort a parse.
type TableWarning struct {
	Table  Tag    // the table where the issue occurred
	Issue  string // human-readable description
	Offset uint32 // byte offset in the table, 0 if unknown
}

func (w TableWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// warningCollector accumulates table warnings during parsing.
type warningCollector struct {
	warnings []TableWarning
}

func (wc *warningCollector) addWarning(table Tag, issue string, offset uint32) {
	wc.warnings = append(wc.warnings, TableWarning{Table: table, Issue: issue, Offset: offset})
	tracer().Infof("%s", TableWarning{Table: table, Issue: issue, Offset: offset})
}
