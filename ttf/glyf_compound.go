package ttf

// Component flags, per the 'glyf' table specification.
const (
	compArgsAreWords     = 0x0001 // ARG_1_AND_2_ARE_WORDS
	compArgsAreXY        = 0x0002 // ARGS_ARE_XY_VALUES
	compHaveScale        = 0x0008 // WE_HAVE_A_SCALE
	compMoreComponents   = 0x0020 // MORE_COMPONENTS
	compHaveXYScale      = 0x0040 // WE_HAVE_AN_X_AND_Y_SCALE
	compHaveTwoByTwo     = 0x0080 // WE_HAVE_A_TWO_BY_TWO
	compHaveInstructions = 0x0100 // WE_HAVE_INSTRUCTIONS, trailing, skipped
)

// Component is one entry of a compound glyph: a referenced glyph id plus
// the arguments and scale of its placement transform.
type Component struct {
	GlyphID uint16
	Flags   uint16
	Args    ComponentArgs
	Scale   ComponentScale
}

// ComponentArgs is the translation argument pair of a component: either a
// literal XY offset or a pair of point indices to align. The two variants
// are matched exhaustively during resolution.
type ComponentArgs interface {
	isComponentArgs()
}

// OffsetArgs translates the component by a literal vector in font units.
type OffsetArgs struct {
	DX, DY int16
}

func (OffsetArgs) isComponentArgs() {}

// PointMatchArgs aligns point Child of the transformed component with
// point Parent of the contours accumulated so far. Indices count points
// flat across contours.
type PointMatchArgs struct {
	Parent, Child uint16
}

func (PointMatchArgs) isComponentArgs() {}

// ComponentScale is the linear part of a component transform. All factors
// are decoded from 2.14 fixed-point. The variants are matched exhaustively
// during resolution.
type ComponentScale interface {
	isComponentScale()
}

// UnitScale is the identity: no scale bits set.
type UnitScale struct{}

func (UnitScale) isComponentScale() {}

// UniformScale scales both axes by S.
type UniformScale struct {
	S float64
}

func (UniformScale) isComponentScale() {}

// XYScale scales the axes independently.
type XYScale struct {
	X, Y float64
}

func (XYScale) isComponentScale() {}

// MatrixScale is a full 2x2 matrix, in field order of the wire format:
// xscale, scale01, scale10, yscale.
type MatrixScale struct {
	XScale, Scale01, Scale10, YScale float64
}

func (MatrixScale) isComponentScale() {}

// parseCompoundOutline decodes components until a record without the
// MORE_COMPONENTS flag. Trailing instruction bytes, if flagged, are never
// read; nothing after the last component is of interest here.
func parseCompoundOutline(cur *ByteCursor) (*CompoundOutline, error) {
	outline := &CompoundOutline{}
	for {
		flags, err := cur.U16()
		if err != nil {
			return nil, withField(err, "componentFlags")
		}
		glyphID, err := cur.U16()
		if err != nil {
			return nil, withField(err, "glyphIndex")
		}

		component := Component{GlyphID: glyphID, Flags: flags}
		if component.Args, err = parseComponentArgs(cur, flags); err != nil {
			return nil, err
		}
		if component.Scale, err = parseComponentScale(cur, flags); err != nil {
			return nil, err
		}
		outline.Components = append(outline.Components, component)

		if flags&compMoreComponents == 0 {
			return outline, nil
		}
	}
}

// parseComponentArgs reads the two transform arguments. Width and
// signedness depend on flag bits: offsets are signed, point indices
// unsigned; both come in 1- and 2-byte variants.
func parseComponentArgs(cur *ByteCursor, flags uint16) (ComponentArgs, error) {
	words := flags&compArgsAreWords != 0
	xy := flags&compArgsAreXY != 0
	switch {
	case words && xy:
		dx, err := cur.I16()
		if err != nil {
			return nil, withField(err, "argument1")
		}
		dy, err := cur.I16()
		if err != nil {
			return nil, withField(err, "argument2")
		}
		return OffsetArgs{DX: dx, DY: dy}, nil
	case words:
		parent, err := cur.U16()
		if err != nil {
			return nil, withField(err, "argument1")
		}
		child, err := cur.U16()
		if err != nil {
			return nil, withField(err, "argument2")
		}
		return PointMatchArgs{Parent: parent, Child: child}, nil
	case xy:
		dx, err := cur.I8()
		if err != nil {
			return nil, withField(err, "argument1")
		}
		dy, err := cur.I8()
		if err != nil {
			return nil, withField(err, "argument2")
		}
		return OffsetArgs{DX: int16(dx), DY: int16(dy)}, nil
	default:
		parent, err := cur.U8()
		if err != nil {
			return nil, withField(err, "argument1")
		}
		child, err := cur.U8()
		if err != nil {
			return nil, withField(err, "argument2")
		}
		return PointMatchArgs{Parent: uint16(parent), Child: uint16(child)}, nil
	}
}

func parseComponentScale(cur *ByteCursor, flags uint16) (ComponentScale, error) {
	switch {
	case flags&compHaveScale != 0:
		s, err := cur.F2Dot14()
		if err != nil {
			return nil, withField(err, "scale")
		}
		return UniformScale{S: s}, nil
	case flags&compHaveXYScale != 0:
		x, err := cur.F2Dot14()
		if err != nil {
			return nil, withField(err, "xscale")
		}
		y, err := cur.F2Dot14()
		if err != nil {
			return nil, withField(err, "yscale")
		}
		return XYScale{X: x, Y: y}, nil
	case flags&compHaveTwoByTwo != 0:
		var m MatrixScale
		var err error
		if m.XScale, err = cur.F2Dot14(); err != nil {
			return nil, withField(err, "xscale")
		}
		if m.Scale01, err = cur.F2Dot14(); err != nil {
			return nil, withField(err, "scale01")
		}
		if m.Scale10, err = cur.F2Dot14(); err != nil {
			return nil, withField(err, "scale10")
		}
		if m.YScale, err = cur.F2Dot14(); err != nil {
			return nil, withField(err, "yscale")
		}
		return m, nil
	default:
		return UnitScale{}, nil
	}
}
