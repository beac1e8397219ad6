/*
Package svg renders glyph outlines as SVG.

Outlines are turned into path data contour by contour: TrueType
quadratic segments map to SVG 'Q' commands, with on-curve midpoints
synthesized between consecutive off-curve control points. The emitted
path data is minified (relative commands, H/V shorthands, smooth
quadratic shorthands, suppressed command-letter runs) before being
wrapped in an SVG document whose viewBox flips the Y axis from the
font's Y-up coordinate space.

Emission is pure: it only reads an immutable outline, so glyphs may be
rendered concurrently.
*/
package svg

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'glyphmap.svg'
func tracer() tracing.Trace {
	return tracing.Select("glyphmap.svg")
}
