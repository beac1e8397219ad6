package fontbuild

import "github.com/typeworks/glyphmap/ttf"

// Simple glyph flag bits, mirrored from the 'glyf' wire format.
const (
	flagOnCurve     = 0x01
	flagXShort      = 0x02
	flagYShort      = 0x04
	flagXSameOrPlus = 0x10
	flagYSameOrPlus = 0x20
)

// Compound component flag bits.
const (
	compArgsAreWords   = 0x0001
	compArgsAreXY      = 0x0002
	compHaveScale      = 0x0008
	compMoreComponents = 0x0020
	compHaveXYScale    = 0x0040
	compHaveTwoByTwo   = 0x0080
)

// coordFlags picks the most compact storage for one coordinate delta and
// returns the axis flag bits (shifted for X; the caller shifts for Y).
func coordFlags(delta int16, shortBit, sameOrPlusBit uint8) uint8 {
	switch {
	case delta == 0:
		return sameOrPlusBit
	case delta > 0 && delta <= 255:
		return shortBit | sameOrPlusBit
	case delta < 0 && delta >= -255:
		return shortBit
	}
	return 0 // long form
}

// EncodeSimple encodes a simple glyph record: header with bounds, contour
// end points, an empty instruction block, one flag byte per point (the
// repeat compression is not used) and the two delta-coded coordinate
// streams.
func EncodeSimple(o *ttf.SimpleOutline) []byte {
	e := &enc{}
	e.i16(int16(len(o.Contours)))
	e.i16(o.XMin)
	e.i16(o.YMin)
	e.i16(o.XMax)
	e.i16(o.YMax)

	end := -1
	var points []ttf.Point
	for _, contour := range o.Contours {
		end += len(contour.Points)
		e.u16(uint16(end))
		points = append(points, contour.Points...)
	}
	e.u16(0) // instructionLength

	flags := make([]uint8, len(points))
	lastX, lastY := int16(0), int16(0)
	for i, p := range points {
		flag := coordFlags(p.X-lastX, flagXShort, flagXSameOrPlus)
		flag |= coordFlags(p.Y-lastY, flagYShort, flagYSameOrPlus)
		if p.OnCurve {
			flag |= flagOnCurve
		}
		flags[i] = flag
		lastX, lastY = p.X, p.Y
		e.u8(flag)
	}

	lastX = 0
	for i, p := range points {
		delta := p.X - lastX
		lastX = p.X
		switch {
		case flags[i]&flagXShort != 0 && delta >= 0:
			e.u8(uint8(delta))
		case flags[i]&flagXShort != 0:
			e.u8(uint8(-delta))
		case flags[i]&flagXSameOrPlus == 0:
			e.i16(delta)
		}
	}
	lastY = 0
	for i, p := range points {
		delta := p.Y - lastY
		lastY = p.Y
		switch {
		case flags[i]&flagYShort != 0 && delta >= 0:
			e.u8(uint8(delta))
		case flags[i]&flagYShort != 0:
			e.u8(uint8(-delta))
		case flags[i]&flagYSameOrPlus == 0:
			e.i16(delta)
		}
	}
	return e.buf
}

// ComponentSpec describes one component of a compound glyph record.
// Args must be ttf.OffsetArgs or ttf.PointMatchArgs; a nil Scale means
// the identity.
type ComponentSpec struct {
	GlyphID uint16
	Args    ttf.ComponentArgs
	Scale   ttf.ComponentScale
}

// EncodeCompound encodes a compound glyph record. Arguments are always
// stored in the 2-byte form.
func EncodeCompound(xMin, yMin, xMax, yMax int16, components ...ComponentSpec) []byte {
	e := &enc{}
	e.i16(-1) // numberOfContours marks a compound
	e.i16(xMin)
	e.i16(yMin)
	e.i16(xMax)
	e.i16(yMax)

	for i, comp := range components {
		flags := uint16(compArgsAreWords)
		if _, isOffset := comp.Args.(ttf.OffsetArgs); isOffset {
			flags |= compArgsAreXY
		}
		switch comp.Scale.(type) {
		case ttf.UniformScale:
			flags |= compHaveScale
		case ttf.XYScale:
			flags |= compHaveXYScale
		case ttf.MatrixScale:
			flags |= compHaveTwoByTwo
		}
		if i+1 < len(components) {
			flags |= compMoreComponents
		}
		e.u16(flags)
		e.u16(comp.GlyphID)

		switch args := comp.Args.(type) {
		case ttf.OffsetArgs:
			e.i16(args.DX)
			e.i16(args.DY)
		case ttf.PointMatchArgs:
			e.u16(args.Parent)
			e.u16(args.Child)
		}
		switch scale := comp.Scale.(type) {
		case ttf.UniformScale:
			e.f2dot14(scale.S)
		case ttf.XYScale:
			e.f2dot14(scale.X)
			e.f2dot14(scale.Y)
		case ttf.MatrixScale:
			e.f2dot14(scale.XScale)
			e.f2dot14(scale.Scale01)
			e.f2dot14(scale.Scale10)
			e.f2dot14(scale.YScale)
		}
	}
	return e.buf
}
