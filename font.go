package glyphmap

import (
	"sort"

	"github.com/derekparker/trie"
	"github.com/typeworks/glyphmap/internal/fontload"
	"github.com/typeworks/glyphmap/ttf"
)

// Font is an immutable set of glyphs joined from a font's 'cmap',
// 'post' and 'glyf' tables, plus the metadata strings of its 'name'
// table.
//
// Glyphs are keyed by codepoint and by postscript name. A glyph lacking
// a valid unicode mapping is dropped during construction, except glyph
// index 0 ('.notdef'), which is always retained. When several glyph
// indices map to the same codepoint, the lowest index wins.
type Font struct {
	glyphs      []Glyph
	byCodepoint map[uint32]int // glyph position in glyphs
	byName      map[string]int
	names       *trie.Trie // postscript names, for prefix queries
	strings     map[ttf.NameID]string
	unitsPerEm  uint16
	monospaced  bool
	warnings    []ttf.TableWarning
}

// New parses a binary TrueType font and assembles its glyph set.
// The input buffer is only read during the call.
func New(data []byte) (*Font, error) {
	parsed, err := ttf.Parse(data)
	if err != nil {
		return nil, err
	}
	return assemble(parsed)
}

// FromFile loads and parses a font file. The argument may be a file
// path or the name of an installed system font.
func FromFile(path string) (*Font, error) {
	data, err := fontload.Load(path)
	if err != nil {
		return nil, err
	}
	return New(data)
}

func assemble(parsed *ttf.Font) (*Font, error) {
	font := &Font{
		byCodepoint: make(map[uint32]int),
		byName:      make(map[string]int),
		names:       trie.New(),
		strings:     make(map[ttf.NameID]string),
		unitsPerEm:  parsed.UnitsPerEm,
		monospaced:  parsed.Post.IsMonospaced,
		warnings:    parsed.Warnings(),
	}
	for _, record := range parsed.Name.Records {
		font.strings[record.Kind] = record.Value // last record wins
	}

	for index := 0; index < parsed.NumGlyphs(); index++ {
		gid := uint16(index)
		codepoint, ok := parsed.Cmap.Codepoint(gid)
		if gid != 0 && (!ok || codepoint == ttf.MissingCodepoint) {
			continue // unmapped glyph
		}
		if _, dup := font.byCodepoint[codepoint]; dup && gid != 0 {
			continue // lower glyph index already owns this codepoint
		}
		outline, err := parsed.GlyphOutline(gid)
		if err != nil {
			return nil, err
		}
		name, _ := parsed.Post.GlyphName(gid)
		pos := len(font.glyphs)
		font.glyphs = append(font.glyphs, Glyph{
			index:     gid,
			codepoint: codepoint,
			name:      name,
			outline:   outline,
		})
		font.byCodepoint[codepoint] = pos
		if name != "" {
			if _, dup := font.byName[name]; !dup {
				font.byName[name] = pos
				font.names.Add(name, pos)
			}
		}
	}
	tracer().Debugf("assembled font with %d glyphs", len(font.glyphs))
	return font, nil
}

// Glyphs returns all glyphs, ordered by glyph index. Callers must not
// modify the returned slice.
func (f *Font) Glyphs() []Glyph {
	return f.glyphs
}

// Glyph returns the glyph mapped to a unicode codepoint.
func (f *Font) Glyph(codepoint uint32) (*Glyph, bool) {
	pos, ok := f.byCodepoint[codepoint]
	if !ok {
		return nil, false
	}
	return &f.glyphs[pos], true
}

// GlyphNamed returns the glyph with a given postscript name.
func (f *Font) GlyphNamed(name string) (*Glyph, bool) {
	pos, ok := f.byName[name]
	if !ok {
		return nil, false
	}
	return &f.glyphs[pos], true
}

// GlyphsWithPrefix returns all glyphs whose postscript name starts with
// prefix, in lexicographic name order. Icon fonts name their glyphs in
// prefixed families ("fa-", "md-", "nf-"), which makes this the natural
// grouping query.
func (f *Font) GlyphsWithPrefix(prefix string) []*Glyph {
	names := f.names.PrefixSearch(prefix)
	sort.Strings(names)
	glyphs := make([]*Glyph, 0, len(names))
	for _, name := range names {
		glyphs = append(glyphs, &f.glyphs[f.byName[name]])
	}
	return glyphs
}

// String returns the metadata string of the given kind from the font's
// 'name' table.
func (f *Font) String(kind ttf.NameID) (string, bool) {
	s, ok := f.strings[kind]
	return s, ok
}

// Strings returns all metadata strings keyed by kind. Callers must not
// modify the returned map.
func (f *Font) Strings() map[ttf.NameID]string {
	return f.strings
}

// FamilyName returns the family and subfamily names from the font's
// 'name' table. Either may be empty if the table lacks the record.
func (f *Font) FamilyName() (family, subfamily string) {
	family = f.strings[ttf.NameFontFamily]
	subfamily = f.strings[ttf.NameFontSubfamily]
	return
}

// NumGlyphs returns the number of glyphs retained in the font.
func (f *Font) NumGlyphs() int {
	return len(f.glyphs)
}

// UnitsPerEm returns the font's design grid resolution.
func (f *Font) UnitsPerEm() uint16 {
	return f.unitsPerEm
}

// IsMonospaced reports the fixed-pitch flag of the 'post' table.
func (f *Font) IsMonospaced() bool {
	return f.monospaced
}

// Warnings returns the non-fatal degradations recorded while parsing,
// like skipped cmap subtables or an unsupported 'post' version.
func (f *Font) Warnings() []ttf.TableWarning {
	return f.warnings
}
