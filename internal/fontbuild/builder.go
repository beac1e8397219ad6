package fontbuild

import "github.com/typeworks/glyphmap/ttf"

// Builder assembles a complete synthetic font. Glyphs are added in index
// order; tables not set explicitly get minimal valid defaults.
type Builder struct {
	UnitsPerEm uint16
	glyphs     [][]byte
	cmap       []byte
	post       []byte
	name       []byte
}

// New returns a Builder with a 2048-unit em grid.
func New() *Builder {
	return &Builder{UnitsPerEm: 2048}
}

// AddGlyph appends a raw 'glyf' record and returns its glyph index.
func (b *Builder) AddGlyph(record []byte) uint16 {
	b.glyphs = append(b.glyphs, record)
	return uint16(len(b.glyphs) - 1)
}

// AddSimple appends a simple glyph.
func (b *Builder) AddSimple(o *ttf.SimpleOutline) uint16 {
	return b.AddGlyph(EncodeSimple(o))
}

// AddEmpty appends a glyph without an outline (zero-length glyf range).
func (b *Builder) AddEmpty() uint16 {
	return b.AddGlyph(nil)
}

// SetCmap installs a 'cmap' table, e.g. from Cmap/CmapFormat4.
func (b *Builder) SetCmap(data []byte) *Builder {
	b.cmap = data
	return b
}

// SetPost installs a 'post' table, e.g. from PostV2.
func (b *Builder) SetPost(data []byte) *Builder {
	b.post = data
	return b
}

// NameGlyphs installs a version-2.0 'post' table naming the glyphs added
// so far, in index order.
func (b *Builder) NameGlyphs(names ...string) *Builder {
	return b.SetPost(PostV2(names, false))
}

// SetName installs a 'name' table, e.g. from Name.
func (b *Builder) SetName(data []byte) *Builder {
	b.name = data
	return b
}

// Bytes assembles the font file. Glyph records are padded to even length
// and addressed through a short 'loca' table.
func (b *Builder) Bytes() []byte {
	var glyf enc
	loca := &enc{}
	loca.u16(0)
	for _, record := range b.glyphs {
		glyf.raw(record)
		if len(glyf.buf)%2 != 0 {
			glyf.u8(0)
		}
		loca.u16(uint16(len(glyf.buf) / 2))
	}

	numGlyphs := uint16(len(b.glyphs))
	cmap := b.cmap
	if cmap == nil {
		cmap = Cmap(Subtable{Platform: 3, Encoding: 1, Data: CmapFormat4()})
	}

	tables := []Table{
		{"cmap", cmap},
		{"glyf", glyf.buf},
		{"head", Head(b.UnitsPerEm, false)},
		{"hhea", Hhea(numGlyphs)},
		{"hmtx", Hmtx(numGlyphs)},
		{"loca", loca.buf},
		{"maxp", MaxP(numGlyphs)},
	}
	if b.name != nil {
		tables = append(tables, Table{"name", b.name})
	}
	if b.post != nil {
		tables = append(tables, Table{"post", b.post})
	}
	return SFNT(tables...)
}
