package ttf

// Decoding of per-glyph records from the 'glyf' table.
//
// A record starts with a signed contour count: non-negative marks a simple
// glyph described by its own contours, negative marks a compound glyph
// composed of transformed references to other glyphs.

// Point is a single outline point in font units. Off-curve points are
// control points of quadratic splines.
type Point struct {
	X, Y    int16
	OnCurve bool
}

// Contour is an ordered, implicitly closed run of points.
type Contour struct {
	Points []Point
}

// Outline is the decoded outline of one glyph: either a *SimpleOutline or
// a *CompoundOutline, matched exhaustively by type switch.
type Outline interface {
	isOutline()
}

// SimpleOutline is an outline described directly by contour point lists,
// together with its bounding box from the glyph header.
type SimpleOutline struct {
	Contours   []Contour
	XMin, XMax int16
	YMin, YMax int16
}

func (o *SimpleOutline) isOutline() {}

// Empty reports whether the outline has no contours (e.g. a space glyph).
func (o *SimpleOutline) Empty() bool {
	return len(o.Contours) == 0
}

// NumPoints returns the total number of points over all contours.
func (o *SimpleOutline) NumPoints() int {
	n := 0
	for _, c := range o.Contours {
		n += len(c.Points)
	}
	return n
}

// CompoundOutline is an outline composed of component references; see
// glyf_compound.go. It is flattened to a SimpleOutline during resolution.
type CompoundOutline struct {
	Components []Component
}

func (o *CompoundOutline) isOutline() {}

// Flag bits of the simple glyph flag stream.
const (
	flagOnCurve     = 0x01
	flagXShort      = 0x02
	flagYShort      = 0x04
	flagRepeat      = 0x08
	flagXSameOrPlus = 0x10
	flagYSameOrPlus = 0x20
)

// coordKind classifies how one coordinate delta is stored, per flag bits.
type coordKind uint8

const (
	coordSame     coordKind = iota // no delta byte, same as previous
	coordShortPos                  // 1 byte, positive
	coordShortNeg                  // 1 byte, negative
	coordLong                      // 2 bytes, signed
)

func coordKinds(flag uint8) (x, y coordKind) {
	x = coordSame
	switch {
	case flag&flagXShort != 0 && flag&flagXSameOrPlus != 0:
		x = coordShortPos
	case flag&flagXShort != 0:
		x = coordShortNeg
	case flag&flagXSameOrPlus == 0:
		x = coordLong
	}
	y = coordSame
	switch {
	case flag&flagYShort != 0 && flag&flagYSameOrPlus != 0:
		y = coordShortPos
	case flag&flagYShort != 0:
		y = coordShortNeg
	case flag&flagYSameOrPlus == 0:
		y = coordLong
	}
	return x, y
}

// parseOutline decodes one glyph record, dispatching on the sign of the
// contour count.
func parseOutline(cur *ByteCursor) (Outline, error) {
	numContours, err := cur.I16()
	if err != nil {
		return nil, withField(err, "numberOfContours")
	}
	xMin, err := cur.I16()
	if err != nil {
		return nil, withField(err, "xMin")
	}
	yMin, err := cur.I16()
	if err != nil {
		return nil, withField(err, "yMin")
	}
	xMax, err := cur.I16()
	if err != nil {
		return nil, withField(err, "xMax")
	}
	yMax, err := cur.I16()
	if err != nil {
		return nil, withField(err, "yMax")
	}

	if numContours < 0 {
		return parseCompoundOutline(cur)
	}
	outline := &SimpleOutline{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
	if err := parseSimpleOutline(cur, int(numContours), outline); err != nil {
		return nil, err
	}
	return outline, nil
}

// parseSimpleOutline decodes the body of a simple glyph: contour end-point
// indices, skipped hinting bytecode, the run-length-encoded flag stream,
// and the delta-encoded X and Y coordinate streams.
func parseSimpleOutline(cur *ByteCursor, numContours int, outline *SimpleOutline) error {
	endPoints := make([]uint16, 0, numContours)
	lastPoint := uint16(0)
	for i := 0; i < numContours; i++ {
		var err error
		if lastPoint, err = cur.U16(); err != nil {
			return withField(err, "endPtsOfContours")
		}
		endPoints = append(endPoints, lastPoint)
	}

	// Hinting instructions are never interpreted.
	instructionLength, err := cur.U16()
	if err != nil {
		return withField(err, "instructionLength")
	}
	if err := cur.Skip(int(instructionLength)); err != nil {
		return withField(err, "instructions")
	}

	if numContours == 0 {
		return nil
	}
	numPoints := int(lastPoint) + 1

	// Flag stream: a set repeat bit means the following byte counts
	// additional copies of the same flag.
	flags := make([]uint8, 0, numPoints)
	for len(flags) < numPoints {
		flag, err := cur.U8()
		if err != nil {
			return withField(err, "flags")
		}
		flags = append(flags, flag)
		if flag&flagRepeat != 0 {
			repeat, err := cur.U8()
			if err != nil {
				return withField(err, "repeatCount")
			}
			for r := 0; r < int(repeat); r++ {
				flags = append(flags, flag)
			}
		}
	}
	if len(flags) > numPoints {
		return cur.Err("flag repeat count exceeds point count")
	}

	// Coordinates are stored as one delta stream per axis, X first,
	// accumulated into absolute positions.
	xCoords := make([]int16, numPoints)
	last := int16(0)
	for i, flag := range flags {
		xKind, _ := coordKinds(flag)
		delta, err := readCoordDelta(cur, xKind, "xCoordinates")
		if err != nil {
			return err
		}
		last += delta
		xCoords[i] = last
	}
	yCoords := make([]int16, numPoints)
	last = 0
	for i, flag := range flags {
		_, yKind := coordKinds(flag)
		delta, err := readCoordDelta(cur, yKind, "yCoordinates")
		if err != nil {
			return err
		}
		last += delta
		yCoords[i] = last
	}

	points := make([]Point, numPoints)
	for i := range points {
		points[i] = Point{
			X:       xCoords[i],
			Y:       yCoords[i],
			OnCurve: flags[i]&flagOnCurve != 0,
		}
	}

	// Slice the flat point list into contours by end-point indices.
	outline.Contours = make([]Contour, 0, numContours)
	start := 0
	for _, end := range endPoints {
		if int(end) >= numPoints || int(end) < start {
			return cur.Err("contour end point index out of order")
		}
		outline.Contours = append(outline.Contours, Contour{Points: points[start : int(end)+1]})
		start = int(end) + 1
	}
	return nil
}

func readCoordDelta(cur *ByteCursor, kind coordKind, field string) (int16, error) {
	switch kind {
	case coordShortPos:
		v, err := cur.U8()
		if err != nil {
			return 0, withField(err, field)
		}
		return int16(v), nil
	case coordShortNeg:
		v, err := cur.U8()
		if err != nil {
			return 0, withField(err, field)
		}
		return -int16(v), nil
	case coordLong:
		v, err := cur.I16()
		if err != nil {
			return 0, withField(err, field)
		}
		return v, nil
	}
	return 0, nil // coordSame
}
