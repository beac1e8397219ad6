package glyphmap

import (
	"github.com/typeworks/glyphmap/internal/ucd"
	"github.com/typeworks/glyphmap/svg"
	"github.com/typeworks/glyphmap/ttf"
)

// Glyph is one glyph of a font: a unicode codepoint, a postscript name
// and a resolved outline. Compound glyphs have been flattened, so the
// outline is always a plain contour list.
type Glyph struct {
	index     uint16
	codepoint uint32
	name      string
	outline   *ttf.SimpleOutline
}

// Index returns the glyph's index in the font's 'glyf' table.
func (g *Glyph) Index() uint16 {
	return g.index
}

// Codepoint returns the glyph's unicode codepoint. For '.notdef' of a
// font that does not map it, this is ttf.MissingCodepoint.
func (g *Glyph) Codepoint() uint32 {
	return g.codepoint
}

// Name returns the glyph's postscript name, or "" if the font carries
// no usable 'post' names.
func (g *Glyph) Name() string {
	return g.name
}

// UnicodeRange returns the name of the Unicode block containing the
// glyph's codepoint, e.g. "Basic Latin" or "Private Use Area".
func (g *Glyph) UnicodeRange() string {
	return ucd.BlockLabel(g.codepoint)
}

// Outline returns the glyph's resolved outline. Callers must not
// modify it.
func (g *Glyph) Outline() *ttf.SimpleOutline {
	return g.outline
}

// SVGPreview renders the glyph's outline as a standalone SVG document.
func (g *Glyph) SVGPreview() string {
	return svg.Document(g.outline)
}

// SVGZPreview renders the glyph's outline as gzip-compressed SVG.
func (g *Glyph) SVGZPreview() ([]byte, error) {
	return svg.Compress(g.SVGPreview())
}

// SVGDataURL renders the glyph's outline as a base64 'data:' URL,
// suitable as the source of an <img> element.
func (g *Glyph) SVGDataURL() string {
	return svg.DataURL(g.SVGPreview())
}
