package fontbuild

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/font/sfnt"

	"github.com/typeworks/glyphmap/ttf"
)

func dot() *ttf.SimpleOutline {
	return &ttf.SimpleOutline{
		Contours: []ttf.Contour{{Points: []ttf.Point{
			{X: 3, Y: 4, OnCurve: true},
		}}},
		XMin: 3, YMin: 4, XMax: 3, YMax: 4,
	}
}

// Built fonts must be acceptable to an independent SFNT implementation,
// not just to our own parser.
func TestBuiltFontParsesWithSfnt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	b := New()
	b.AddEmpty()
	b.AddSimple(dot())
	b.AddSimple(dot())
	b.AddSimple(dot())
	b.SetCmap(Cmap(Subtable{Platform: 3, Encoding: 1,
		Data: CmapFormat4(Segment{Start: 'A', End: 'C', Delta: 0xFFC0})})) // 1-'A' mod 65536

	f, err := sfnt.Parse(b.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if f.NumGlyphs() != 4 {
		t.Errorf("numGlyphs = %d, want 4", f.NumGlyphs())
	}
	var buf sfnt.Buffer
	gid, err := f.GlyphIndex(&buf, 'B')
	if err != nil {
		t.Fatal(err)
	}
	if gid != 2 {
		t.Errorf("glyphIndex('B') = %d, want 2", gid)
	}
	if gid, _ := f.GlyphIndex(&buf, 'z'); gid != 0 {
		t.Errorf("glyphIndex('z') = %d, want 0 (unmapped)", gid)
	}
}

func TestOddLengthRecordPadding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	// A one-point glyph encodes to an odd byte count; the builder must
	// pad it so the following record stays 2-byte aligned in 'loca'.
	record := EncodeSimple(dot())
	if len(record)%2 == 0 {
		t.Fatalf("test premise broken: record length %d is even", len(record))
	}
	b := New()
	b.AddGlyph(record)
	b.AddSimple(dot())
	f, err := ttf.Parse(b.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	for gid := uint16(0); gid < 2; gid++ {
		o, ok := f.OutlineAt(gid)
		if !ok {
			t.Fatalf("glyph %d missing", gid)
		}
		simple := o.(*ttf.SimpleOutline)
		if simple.NumPoints() != 1 || simple.Contours[0].Points[0].X != 3 {
			t.Errorf("glyph %d mangled: %+v", gid, simple)
		}
	}
}
