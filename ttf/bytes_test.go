package ttf

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCursorEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	cur := NewCursor([]byte{0x01, 0x02, 0x03})
	_, err := cur.U32()
	eof, ok := err.(UnexpectedEOF)
	if !ok {
		t.Fatalf("expected UnexpectedEOF, got %T (%v)", err, err)
	}
	if eof.Pos != 0 || eof.Size != 4 {
		t.Errorf("expected EOF at pos=0 size=4, got pos=%d size=%d", eof.Pos, eof.Size)
	}
	if cur.Pos() != 0 {
		t.Errorf("failed read must not move the cursor, pos = %d", cur.Pos())
	}
}

func TestCursorReads(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	cur := NewCursor([]byte{0xFF, 0x00, 0x10, 0x00, 0x01, 0x00, 0x00, 0x40, 0x00})
	if v, err := cur.I8(); err != nil || v != -1 {
		t.Errorf("I8 = %d (%v), want -1", v, err)
	}
	if v, err := cur.U16(); err != nil || v != 0x0010 {
		t.Errorf("U16 = %#x (%v), want 0x10", v, err)
	}
	major, minor, err := cur.Fixed32()
	if err != nil || major != 1 || minor != 0 {
		t.Errorf("Fixed32 = %d.%d (%v), want 1.0", major, minor, err)
	}
	// 0x4000 is 1.0 in 2.14 fixed-point
	if v, err := cur.F2Dot14(); err != nil || v != 1.0 {
		t.Errorf("F2Dot14 = %f (%v), want 1.0", v, err)
	}
	if !cur.AtEnd() {
		t.Errorf("cursor should be at end, pos = %d", cur.Pos())
	}
}

func TestCursorF2Dot14Fraction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	// 0x7000 = 28672/16384 = 1.75, 0xE000 = -8192/16384 = -0.5
	cur := NewCursor([]byte{0x70, 0x00, 0xE0, 0x00})
	if v, _ := cur.F2Dot14(); v != 1.75 {
		t.Errorf("F2Dot14 = %f, want 1.75", v)
	}
	if v, _ := cur.F2Dot14(); v != -0.5 {
		t.Errorf("F2Dot14 = %f, want -0.5", v)
	}
}

func TestCursorClone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	cur := NewCursor([]byte{0x00, 0x01, 0x00, 0x02, 0x00, 0x03})
	if _, err := cur.U16(); err != nil {
		t.Fatal(err)
	}
	deref := cur.Clone()
	if err := deref.AdvanceBy(2); err != nil {
		t.Fatal(err)
	}
	v, err := deref.U16()
	if err != nil || v != 3 {
		t.Errorf("clone read = %d (%v), want 3", v, err)
	}
	// the parent cursor position must be undisturbed
	if v, _ := cur.U16(); v != 2 {
		t.Errorf("parent read = %d, want 2", v)
	}
}

func TestCursorReadFrom(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphmap.ttf")
	defer teardown()
	cur := NewCursor([]byte{1, 2, 3, 4, 5})
	b, err := cur.ReadFrom(2, 2)
	if err != nil || len(b) != 2 || b[0] != 3 {
		t.Errorf("ReadFrom(2,2) = %v (%v)", b, err)
	}
	if cur.Pos() != 0 {
		t.Errorf("ReadFrom must not move the cursor, pos = %d", cur.Pos())
	}
	if _, err := cur.ReadFrom(4, 2); err == nil {
		t.Error("expected EOF for out-of-range ReadFrom")
	}
	if _, err := cur.ReadFrom(-1, 1); err == nil {
		t.Error("expected error for negative offset")
	}
}
