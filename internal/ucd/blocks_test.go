package ucd

import "testing"

func TestBlockLabel(t *testing.T) {
	cases := []struct {
		cp   uint32
		want string
	}{
		{0x0000, "Basic Latin"},
		{0x007F, "Basic Latin"},
		{0x0080, "Latin-1 Supplement"},
		{0x0041, "Basic Latin"},
		{0x0416, "Cyrillic"},
		{0xE000, "Private Use Area"},
		{0xF8FF, "Private Use Area"},
		{0x1F600, "Emoticons"},
		{0x100000, "Supplementary Private Use Area-B"},
	}
	for _, c := range cases {
		if got := BlockLabel(c.cp); got != c.want {
			t.Errorf("BlockLabel(%#x) = %q, want %q", c.cp, got, c.want)
		}
	}
}

func TestBlockLabelGap(t *testing.T) {
	// Codepoints between blocks are unassigned.
	if got := BlockLabel(0x2FE0); got != "Unknown" {
		t.Errorf("BlockLabel(0x2FE0) = %q, want \"Unknown\"", got)
	}
}
