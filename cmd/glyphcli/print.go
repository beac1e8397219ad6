package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/typeworks/glyphmap"
	"github.com/typeworks/glyphmap/ttf"
)

func infoOp(intp *Intp, op *Op) (error, bool) {
	family, subfamily := intp.font.FamilyName()
	data := [][]string{
		{"Property", "Value"},
		{"Family", family},
		{"Subfamily", subfamily},
		{"Glyphs", strconv.Itoa(intp.font.NumGlyphs())},
		{"Units/em", strconv.Itoa(int(intp.font.UnitsPerEm()))},
		{"Monospaced", strconv.FormatBool(intp.font.IsMonospaced())},
		{"Warnings", strconv.Itoa(len(intp.font.Warnings()))},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func stringsOp(intp *Intp, op *Op) (error, bool) {
	strs := intp.font.Strings()
	kinds := make([]ttf.NameID, 0, len(strs))
	for kind := range strs {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	data := [][]string{
		{"Kind", "Value"},
	}
	for _, kind := range kinds {
		data = append(data, []string{kind.String(), clip(strs[kind], 60)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func warningsOp(intp *Intp, op *Op) (error, bool) {
	warnings := intp.font.Warnings()
	if len(warnings) == 0 {
		pterm.Println("no warnings")
		return nil, false
	}
	for _, w := range warnings {
		pterm.Printf("%s\n", w.String())
	}
	return nil, false
}

func glyphOp(intp *Intp, op *Op) (error, bool) {
	name, ok := op.hasArg()
	if !ok {
		return fmt.Errorf("usage: glyph:<postscript name>"), false
	}
	g, ok := intp.font.GlyphNamed(name)
	if !ok {
		return fmt.Errorf("no glyph named %q", name), false
	}
	printGlyph(g)
	return nil, false
}

func charOp(intp *Intp, op *Op) (error, bool) {
	arg, ok := op.hasArg()
	if !ok {
		return fmt.Errorf("usage: char:<hex codepoint>"), false
	}
	cp, err := strconv.ParseUint(strings.TrimPrefix(arg, "0x"), 16, 32)
	if err != nil {
		return fmt.Errorf("not a hex codepoint: %q", arg), false
	}
	g, ok := intp.font.Glyph(uint32(cp))
	if !ok {
		return fmt.Errorf("no glyph for codepoint U+%04X", cp), false
	}
	printGlyph(g)
	return nil, false
}

func listOp(intp *Intp, op *Op) (error, bool) {
	prefix, _ := op.hasArg() // empty prefix lists everything named
	glyphs := intp.font.GlyphsWithPrefix(prefix)
	if len(glyphs) == 0 {
		pterm.Printf("no glyphs with name prefix %q\n", prefix)
		return nil, false
	}
	data := [][]string{
		{"Name", "Codepoint", "Block", "Contours"},
	}
	for _, g := range glyphs {
		data = append(data, []string{
			g.Name(),
			fmt.Sprintf("U+%04X", g.Codepoint()),
			g.UnicodeRange(),
			strconv.Itoa(len(g.Outline().Contours)),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("%d glyphs\n", len(glyphs))
	return nil, false
}

func svgOp(intp *Intp, op *Op) (error, bool) {
	name, ok := op.hasArg()
	if !ok {
		return fmt.Errorf("usage: svg:<postscript name>:<file>"), false
	}
	g, ok := intp.font.GlyphNamed(name)
	if !ok {
		return fmt.Errorf("no glyph named %q", name), false
	}
	doc := g.SVGPreview()
	if op.arg2 == "" {
		pterm.Println(doc)
		return nil, false
	}
	if err := os.WriteFile(op.arg2, []byte(doc), 0644); err != nil {
		return err, false
	}
	pterm.Printf("wrote %d bytes to %s\n", len(doc), op.arg2)
	return nil, false
}

func printGlyph(g *glyphmap.Glyph) {
	outline := g.Outline()
	data := [][]string{
		{"Property", "Value"},
		{"Name", g.Name()},
		{"Index", strconv.Itoa(int(g.Index()))},
		{"Codepoint", fmt.Sprintf("U+%04X", g.Codepoint())},
		{"Block", g.UnicodeRange()},
		{"Contours", strconv.Itoa(len(outline.Contours))},
		{"Points", strconv.Itoa(outline.NumPoints())},
		{"Bounds", fmt.Sprintf("x [%d..%d]  y [%d..%d]",
			outline.XMin, outline.XMax, outline.YMin, outline.YMax)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
