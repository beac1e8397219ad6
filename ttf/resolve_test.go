package ttf

import (
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func testSquare() *SimpleOutline {
	return &SimpleOutline{
		Contours: []Contour{{Points: []Point{
			{0, 0, true}, {10, 0, true}, {10, 10, true}, {0, 10, true},
		}}},
		XMin: 0, YMin: 0, XMax: 10, YMax: 10,
	}
}

func testFont(outlines ...Outline) *Font {
	return &Font{outlines: outlines}
}

func TestResolveSimpleIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	square := testSquare()
	f := testFont(square)
	resolved, err := f.ResolveOutline(square)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != square {
		t.Error("simple outline should resolve to itself")
	}
}

func TestResolveOffsetComponent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	f := testFont(testSquare(), &CompoundOutline{
		Components: []Component{
			{GlyphID: 0, Args: OffsetArgs{DX: 5, DY: 5}, Scale: UnitScale{}},
		},
	})
	resolved, err := f.GlyphOutline(1)
	if err != nil {
		t.Fatal(err)
	}
	// With a unit matrix the Y axis factor is doubled (|b|-|d| falls below
	// the 33/65536 threshold), so a Y offset of 5 lands the child 10 units
	// up.
	want := []Point{{5, 10, true}, {15, 10, true}, {15, 20, true}, {5, 20, true}}
	if !reflect.DeepEqual(resolved.Contours[0].Points, want) {
		t.Errorf("points = %v, want %v", resolved.Contours[0].Points, want)
	}
	if resolved.XMin != 5 || resolved.XMax != 15 || resolved.YMin != 10 || resolved.YMax != 20 {
		t.Errorf("bounds = (%d,%d)-(%d,%d)", resolved.XMin, resolved.YMin, resolved.XMax, resolved.YMax)
	}
}

func TestResolveUniformScale(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	f := testFont(testSquare(), &CompoundOutline{
		Components: []Component{
			{GlyphID: 0, Args: OffsetArgs{}, Scale: UniformScale{S: 0.5}},
		},
	})
	resolved, err := f.GlyphOutline(1)
	if err != nil {
		t.Fatal(err)
	}
	want := []Point{{0, 0, true}, {5, 0, true}, {5, 5, true}, {0, 5, true}}
	if !reflect.DeepEqual(resolved.Contours[0].Points, want) {
		t.Errorf("points = %v, want %v", resolved.Contours[0].Points, want)
	}
}

func TestResolvePointMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	f := testFont(testSquare(), &CompoundOutline{
		Components: []Component{
			{GlyphID: 0, Args: OffsetArgs{}, Scale: UnitScale{}},
			{GlyphID: 0, Args: PointMatchArgs{Parent: 2, Child: 0}, Scale: UnitScale{}},
		},
	})
	resolved, err := f.GlyphOutline(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(resolved.Contours) != 2 {
		t.Fatalf("expected 2 contours, got %d", len(resolved.Contours))
	}
	// Child point 0 aligns with parent point 2 at (10,10); the resulting
	// Y offset of 10 is doubled by the unit-matrix axis factor.
	want := []Point{{10, 20, true}, {20, 20, true}, {20, 30, true}, {10, 30, true}}
	if !reflect.DeepEqual(resolved.Contours[1].Points, want) {
		t.Errorf("points = %v, want %v", resolved.Contours[1].Points, want)
	}
}

func TestResolveNestedCompound(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	// A compound of a compound must flatten to the same contours as a
	// single component carrying the combined offset.
	f := testFont(
		testSquare(),
		&CompoundOutline{Components: []Component{
			{GlyphID: 0, Args: OffsetArgs{DX: 5}, Scale: UnitScale{}},
		}},
		&CompoundOutline{Components: []Component{
			{GlyphID: 1, Args: OffsetArgs{DX: 5}, Scale: UnitScale{}},
		}},
		&CompoundOutline{Components: []Component{
			{GlyphID: 0, Args: OffsetArgs{DX: 10}, Scale: UnitScale{}},
		}},
	)
	nested, err := f.GlyphOutline(2)
	if err != nil {
		t.Fatal(err)
	}
	direct, err := f.GlyphOutline(3)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(nested.Contours, direct.Contours) {
		t.Errorf("nested = %v, direct = %v", nested.Contours, direct.Contours)
	}
}

func TestResolveCycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	f := testFont(
		&CompoundOutline{Components: []Component{
			{GlyphID: 1, Args: OffsetArgs{}, Scale: UnitScale{}},
		}},
		&CompoundOutline{Components: []Component{
			{GlyphID: 0, Args: OffsetArgs{}, Scale: UnitScale{}},
		}},
	)
	_, err := f.GlyphOutline(0)
	cyc, ok := err.(CyclicCompound)
	if !ok {
		t.Fatalf("expected CyclicCompound, got %T (%v)", err, err)
	}
	if cyc.GlyphID != 0 {
		t.Errorf("cycle reported at glyph %d, want 0", cyc.GlyphID)
	}
}

func TestResolveSelfReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	f := testFont(&CompoundOutline{Components: []Component{
		{GlyphID: 0, Args: OffsetArgs{}, Scale: UnitScale{}},
	}})
	if _, err := f.GlyphOutline(0); err == nil {
		t.Fatal("expected error for self-referencing compound")
	} else if _, ok := err.(CyclicCompound); !ok {
		t.Fatalf("expected CyclicCompound, got %T (%v)", err, err)
	}
}

func TestResolveLeavesChildIntact(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	square := testSquare()
	f := testFont(square, &CompoundOutline{
		Components: []Component{
			{GlyphID: 0, Args: OffsetArgs{DX: 100}, Scale: UnitScale{}},
		},
	})
	if _, err := f.GlyphOutline(1); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(square, testSquare()) {
		t.Error("resolution mutated the referenced outline")
	}
}
