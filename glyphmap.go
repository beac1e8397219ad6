/*
Package glyphmap turns a binary TrueType font into a set of named,
addressable, renderable glyphs.

A Font is built in one pass over an in-memory font file: the 'cmap',
'post', 'name' and 'glyf' tables are decoded, compound outlines are
flattened to simple contour lists, and the results are joined by glyph
index into an immutable glyph set. Each Glyph carries its unicode
codepoint, its postscript name, its resolved outline and on-demand SVG
renditions.

Typical use:

	fnt, err := glyphmap.FromFile("SomeNerdFont-Regular.ttf")
	if err != nil { ... }
	g, ok := fnt.GlyphNamed("nf-fa-rocket")
	if ok {
	    os.WriteFile("rocket.svg", []byte(g.SVGPreview()), 0644)
	}

A Font is immutable after construction and safe for concurrent use.

# Status

TrueType ('glyf') outlines only; fonts with CFF outlines ('OTTO') are
rejected. No font collections (*.ttc).
*/
package glyphmap

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'glyphmap'
func tracer() tracing.Trace {
	return tracing.Select("glyphmap")
}
