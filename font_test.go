package glyphmap

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"

	"github.com/typeworks/glyphmap/internal/fontbuild"
	"github.com/typeworks/glyphmap/ttf"
)

// --- Test Suite Preparation ------------------------------------------------

type FontTestEnviron struct {
	suite.Suite
	font *Font
}

// listen for 'go test' command --> run test methods
func TestFontAssembly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap")
	defer teardown()
	suite.Run(t, new(FontTestEnviron))
}

// run once, before test suite methods
func (env *FontTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("glyphmap").SetTraceLevel(tracing.LevelError)
	font, err := New(buildTestFont())
	env.Require().NoError(err, "expected test font to assemble")
	env.font = font
	tracing.Select("glyphmap").SetTraceLevel(tracing.LevelInfo)
}

func testTriangle() *ttf.SimpleOutline {
	return &ttf.SimpleOutline{
		Contours: []ttf.Contour{{Points: []ttf.Point{
			{X: 0, Y: 0, OnCurve: true},
			{X: 100, Y: 0, OnCurve: true},
			{X: 50, Y: 100, OnCurve: true},
		}}},
		XMin: 0, YMin: 0, XMax: 100, YMax: 100,
	}
}

func testBox() *ttf.SimpleOutline {
	return &ttf.SimpleOutline{
		Contours: []ttf.Contour{{Points: []ttf.Point{
			{X: 0, Y: 0, OnCurve: true},
			{X: 80, Y: 0, OnCurve: true},
			{X: 80, Y: 90, OnCurve: true},
			{X: 0, Y: 90, OnCurve: true},
		}}},
		XMin: 0, YMin: 0, XMax: 80, YMax: 90,
	}
}

// buildTestFont assembles a small synthetic font:
//
//	0 .notdef   unmapped (sentinel codepoint)
//	1 A         U+0041, a triangle
//	2 B         U+0042
//	3 orphan    no codepoint, dropped during assembly
//	4 C         U+0043
//	5 C.alt     also U+0043 through a second subtable, loses to glyph 4
//	6 Aacute    U+00C1, a compound referencing glyph 1
func buildTestFont() []byte {
	b := fontbuild.New()
	b.AddSimple(testBox())      // 0
	b.AddSimple(testTriangle()) // 1
	b.AddSimple(testBox())      // 2
	b.AddSimple(testBox())      // 3
	b.AddSimple(testBox())      // 4
	b.AddSimple(testBox())      // 5
	b.AddGlyph(fontbuild.EncodeCompound(50, 0, 150, 100, fontbuild.ComponentSpec{
		GlyphID: 1,
		Args:    ttf.OffsetArgs{DX: 50},
	})) // 6
	b.SetCmap(fontbuild.Cmap(
		fontbuild.Subtable{Platform: 3, Encoding: 1, Data: fontbuild.CmapFormat4(
			fontbuild.Segment{Start: 0x41, End: 0x43, GlyphIDs: []uint16{1, 2, 4}},
			fontbuild.Segment{Start: 0xC1, End: 0xC1, Delta: 0xFF45}, // 6-0xC1 mod 65536
		)},
		fontbuild.Subtable{Platform: 0, Encoding: 3, Data: fontbuild.CmapFormat4(
			fontbuild.Segment{Start: 0x43, End: 0x43, GlyphIDs: []uint16{5}},
		)},
	))
	b.NameGlyphs(".notdef", "A", "B", "orphan", "C", "C.alt", "Aacute")
	b.SetName(fontbuild.Name(
		fontbuild.NameEntry{Kind: 1, Value: "Glyphia"},
		fontbuild.NameEntry{Kind: 1, Value: "Glyphia Sans"}, // later record wins
		fontbuild.NameEntry{Kind: 2, Value: "Regular"},
	))
	return b.Bytes()
}

// --- Tests -----------------------------------------------------------------

func (env *FontTestEnviron) TestGlyphCount() {
	env.Equal(5, env.font.NumGlyphs(), "expected 5 retained glyphs (0, 1, 2, 4, 6)")
}

func (env *FontTestEnviron) TestGlyphByCodepoint() {
	g, ok := env.font.Glyph(0x41)
	env.Require().True(ok, "expected U+0041 to be mapped")
	env.Equal("A", g.Name())
	env.Equal(uint16(1), g.Index())
	env.Equal("Basic Latin", g.UnicodeRange())
}

func (env *FontTestEnviron) TestGlyphByName() {
	g, ok := env.font.GlyphNamed("B")
	env.Require().True(ok, "expected glyph 'B' to be found by name")
	env.Equal(uint32(0x42), g.Codepoint())
}

func (env *FontTestEnviron) TestOrphanGlyphDropped() {
	_, ok := env.font.GlyphNamed("orphan")
	env.False(ok, "glyph without codepoint should be dropped")
}

func (env *FontTestEnviron) TestNotdefRetained() {
	g := env.font.Glyphs()[0]
	env.Equal(".notdef", g.Name())
	env.Equal(uint16(0), g.Index())
	env.Equal(ttf.MissingCodepoint, g.Codepoint(), "expected the sentinel codepoint on .notdef")
}

func (env *FontTestEnviron) TestDuplicateCodepoint() {
	g, ok := env.font.Glyph(0x43)
	env.Require().True(ok)
	env.Equal(uint16(4), g.Index(), "lowest glyph index should own the codepoint")
	_, ok = env.font.GlyphNamed("C.alt")
	env.False(ok, "losing duplicate should not be retained")
}

func (env *FontTestEnviron) TestPrefixSearch() {
	glyphs := env.font.GlyphsWithPrefix("A")
	env.Require().Len(glyphs, 2)
	env.Equal("A", glyphs[0].Name())
	env.Equal("Aacute", glyphs[1].Name())
}

func (env *FontTestEnviron) TestCompoundResolved() {
	g, ok := env.font.Glyph(0xC1)
	env.Require().True(ok, "expected U+00C1 to be mapped")
	env.Equal("Latin-1 Supplement", g.UnicodeRange())
	outline := g.Outline()
	env.Require().Len(outline.Contours, 1, "compound should flatten to plain contours")
	env.Equal(ttf.Point{X: 50, Y: 0, OnCurve: true}, outline.Contours[0].Points[0],
		"expected component offset to be applied")
}

func (env *FontTestEnviron) TestMetadataStrings() {
	family, subfamily := env.font.FamilyName()
	env.Equal("Glyphia Sans", family)
	env.Equal("Regular", subfamily)
	_, ok := env.font.String(ttf.NameCopyright)
	env.False(ok, "no copyright record in test font")
}

func (env *FontTestEnviron) TestFontProperties() {
	env.Equal(uint16(2048), env.font.UnitsPerEm())
	env.False(env.font.IsMonospaced())
	env.Empty(env.font.Warnings())
}

func (env *FontTestEnviron) TestSVGPreview() {
	g, ok := env.font.Glyph(0x41)
	env.Require().True(ok)
	doc := g.SVGPreview()
	env.True(strings.HasPrefix(doc, "<svg "), "expected an <svg> document")
	env.Contains(doc, "d='M0 0h100l-50-100Z'", "expected the minified triangle path")
	env.Equal(1, strings.Count(doc, "<path"), "expected exactly one path element")
}

func (env *FontTestEnviron) TestSVGDataURL() {
	g, ok := env.font.Glyph(0x41)
	env.Require().True(ok)
	env.True(strings.HasPrefix(g.SVGDataURL(), "data:image/svg+xml;base64,"))
}

// The classic byte-encoding path: a format-0 subtable routing 'A' to a
// triangle glyph, addressable by codepoint and by name, rendered as a
// three-command path.
func TestFormat0Example(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap")
	defer teardown()
	b := fontbuild.New()
	for i := 0; i < 5; i++ {
		b.AddSimple(testBox())
	}
	b.AddSimple(testTriangle()) // glyph 5
	b.SetCmap(fontbuild.Cmap(fontbuild.Subtable{Platform: 0, Encoding: 3,
		Data: fontbuild.CmapFormat0(map[byte]uint16{'A': 5})}))
	b.NameGlyphs(".notdef", "g1", "g2", "g3", "g4", "A")

	font, err := New(b.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	g, ok := font.Glyph('A')
	if !ok {
		t.Fatal("expected 'A' to be mapped")
	}
	if g.Name() != "A" || g.Index() != 5 {
		t.Errorf("glyph = %q / index %d, want \"A\" / 5", g.Name(), g.Index())
	}
	doc := g.SVGPreview()
	if !strings.Contains(doc, "d='M0 0h100l-50-100Z'") {
		t.Errorf("unexpected path data in %s", doc)
	}
}

func TestNewRejectsGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap")
	defer teardown()
	if _, err := New([]byte("not a font at all")); err == nil {
		t.Error("expected an error for non-font input")
	}
}
