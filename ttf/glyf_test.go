package ttf

import (
	"encoding/binary"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// record builds glyph record bytes from big-endian 16-bit header words
// followed by raw body bytes.
func record(words []int16, body ...byte) []byte {
	buf := make([]byte, 0, 2*len(words)+len(body))
	for _, w := range words {
		buf = binary.BigEndian.AppendUint16(buf, uint16(w))
	}
	return append(buf, body...)
}

func TestSimpleGlyphFlagRepeat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	// One contour, three points. A single flag byte with the repeat bit
	// covers all three: on-curve, long X, long Y.
	data := record(
		[]int16{1, 0, 0, 2, 2, // numberOfContours, bounds
			2, // endPtsOfContours
			0}, // instructionLength
		0x01|0x08, 2, // flag + repeat count
		0, 0, 0, 1, 0, 1, // x deltas: 0, 1, 1
		0, 0, 0, 1, 0, 1, // y deltas
	)
	o, err := parseOutline(NewCursor(data))
	if err != nil {
		t.Fatal(err)
	}
	simple, ok := o.(*SimpleOutline)
	if !ok {
		t.Fatalf("expected simple outline, got %T", o)
	}
	if simple.NumPoints() != 3 {
		t.Fatalf("expected 3 points, got %d", simple.NumPoints())
	}
	want := []Point{{0, 0, true}, {1, 1, true}, {2, 2, true}}
	for i, p := range simple.Contours[0].Points {
		if p != want[i] {
			t.Errorf("point %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestSimpleGlyphFlagOverflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	// Two points, but the repeat count inflates the flag stream to six.
	data := record(
		[]int16{1, 0, 0, 1, 1,
			1,
			0},
		0x39, 5, // on-curve, X and Y same, repeat way past numPoints
	)
	_, err := parseOutline(NewCursor(data))
	if _, ok := err.(ParseError); !ok {
		t.Fatalf("expected ParseError for flag overflow, got %T (%v)", err, err)
	}
}

func TestSimpleGlyphShortCoords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	// Two points with short deltas, the second one negative on both axes.
	data := record(
		[]int16{1, 0, 0, 5, 5,
			1,
			0},
		0x37, // on-curve, X short positive, Y short positive
		0x07, // on-curve, X short negative, Y short negative
		5, 3, // x deltas: +5, -3
		5, 2, // y deltas: +5, -2
	)
	o, err := parseOutline(NewCursor(data))
	if err != nil {
		t.Fatal(err)
	}
	points := o.(*SimpleOutline).Contours[0].Points
	if points[0] != (Point{5, 5, true}) || points[1] != (Point{2, 3, true}) {
		t.Errorf("points = %v, want [(5,5) (2,3)]", points)
	}
}
