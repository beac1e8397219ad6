/*
Package ttf decodes the binary tables of a TrueType font.

Only the tables needed to reconstruct a named, renderable glyph map are
interpreted: 'cmap' (codepoint mapping), 'post' (glyph names), 'name'
(metadata strings) and 'glyf' (outlines), the latter driven by 'head'
and 'loca'. All other tables are ignored. Fonts with CFF outlines
('OTTO'), variable fonts and hinting are out of scope; glyph
instruction bytecode is skipped, never interpreted.

Parsing is fail-fast: the first structural error aborts with a typed
error (UnexpectedEOF, InvalidValue, ParseError, CyclicCompound).
Missing optional tables ('post', 'name') and unsupported-but-recognized
sub-variants degrade gracefully instead; such degradations are recorded
as TableWarnings on the parsed font.

A parsed Font only reads from the input buffer during Parse and owns
all of its output, so independent fonts may be parsed concurrently.

# Status

No font collections (*.ttc) yet.
*/
package ttf

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'glyphmap.ttf'
func tracer() tracing.Trace {
	return tracing.Select("glyphmap.ttf")
}
