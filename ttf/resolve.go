package ttf

// Resolution of compound glyphs into simple outlines.
//
// Every component contributes its referenced glyph's contours, run through
// an affine transform: the linear 2x2 part from the component's scale
// variant, then a translation, which is either a literal offset or the
// vector aligning a designated point of the transformed child with a
// designated point of the contours accumulated so far.
//
// Two numeric details are kept bit-for-bit compatible with the renderer
// this package descends from: matched points are scaled by the component's
// linear transform before differencing, and when a matrix's magnitudes lie
// within 33/65536 of each other, the corresponding axis factor is doubled
// (the anti-aliasing correction described in the TrueType Reference
// Manual).

import "math"

// maxCompoundDepth caps component nesting. Real fonts nest two or three
// levels; the cap backs up the cycle check against degenerate inputs.
const maxCompoundDepth = 16

// ResolveOutline flattens an outline to simple form. Simple outlines are
// returned unchanged (resolution is idempotent); compound outlines are
// flattened recursively against the font's glyph set.
//
// Cyclic component references are detected with an active-path set keyed
// by glyph index and reported as CyclicCompound instead of recursing
// without bound.
func (f *Font) ResolveOutline(o Outline) (*SimpleOutline, error) {
	switch outline := o.(type) {
	case *SimpleOutline:
		return outline, nil
	case *CompoundOutline:
		rz := resolver{font: f, active: make(map[uint16]bool)}
		return rz.flatten(outline, 0)
	}
	return nil, ParseError{Message: "unknown outline variant"}
}

// GlyphOutline resolves the outline of a glyph id to simple form.
func (f *Font) GlyphOutline(gid uint16) (*SimpleOutline, error) {
	o, ok := f.OutlineAt(gid)
	if !ok {
		return nil, InvalidValue{Value: uint32(gid), Field: "glyphIndex"}
	}
	switch outline := o.(type) {
	case *SimpleOutline:
		return outline, nil
	case *CompoundOutline:
		rz := resolver{font: f, active: map[uint16]bool{gid: true}}
		return rz.flatten(outline, 0)
	}
	return nil, ParseError{Message: "unknown outline variant"}
}

type resolver struct {
	font   *Font
	active map[uint16]bool // glyph ids on the current resolution path
}

// flatten accumulates the transformed contours of all components. Bounds
// are the union of each child's transformed corner points, which is an
// approximation, not a tight refit; emitters downstream rely on exactly
// this box.
func (rz *resolver) flatten(compound *CompoundOutline, depth int) (*SimpleOutline, error) {
	if depth > maxCompoundDepth {
		return nil, ParseError{Message: "compound glyph nesting too deep"}
	}
	result := &SimpleOutline{
		XMin: math.MaxInt16, XMax: math.MinInt16,
		YMin: math.MaxInt16, YMax: math.MinInt16,
	}

	for i := range compound.Components {
		component := &compound.Components[i]
		child, ok := rz.font.OutlineAt(component.GlyphID)
		if !ok {
			return nil, InvalidValue{Value: uint32(component.GlyphID), Field: "glyphIndex"}
		}

		var simple *SimpleOutline
		switch childOutline := child.(type) {
		case *SimpleOutline:
			simple = component.apply(childOutline, result.Contours)
		case *CompoundOutline:
			if rz.active[component.GlyphID] {
				return nil, CyclicCompound{GlyphID: component.GlyphID}
			}
			rz.active[component.GlyphID] = true
			nested, err := rz.flatten(childOutline, depth+1)
			delete(rz.active, component.GlyphID)
			if err != nil {
				return nil, err
			}
			simple = component.apply(nested, result.Contours)
		}

		result.Contours = append(result.Contours, simple.Contours...)
		if simple.XMin < result.XMin {
			result.XMin = simple.XMin
		}
		if simple.XMax > result.XMax {
			result.XMax = simple.XMax
		}
		if simple.YMin < result.YMin {
			result.YMin = simple.YMin
		}
		if simple.YMax > result.YMax {
			result.YMax = simple.YMax
		}
	}
	return result, nil
}

// linear returns the 2x2 matrix of a component's scale variant, in the
// conventional (a, b, c, d) form where a transformed point is
// (a·x + c·y, b·x + d·y).
func (comp *Component) linear() (a, b, c, d float64) {
	switch scale := comp.Scale.(type) {
	case UnitScale:
		return 1, 0, 0, 1
	case UniformScale:
		return scale.S, 0, 0, scale.S
	case XYScale:
		return scale.X, 0, 0, scale.Y
	case MatrixScale:
		return scale.XScale, scale.Scale01, scale.Scale10, scale.YScale
	}
	return 1, 0, 0, 1
}

// apply returns a transformed deep copy of the child outline, leaving the
// original untouched for other components referencing the same glyph.
// parent holds the contours accumulated by the components processed so
// far; point-match arguments index into it.
func (comp *Component) apply(child *SimpleOutline, parent []Contour) *SimpleOutline {
	a, b, c, d := comp.linear()

	// Translation vector.
	var e, f float64
	switch args := comp.Args.(type) {
	case OffsetArgs:
		e, f = float64(args.DX), float64(args.DY)
	case PointMatchArgs:
		p1 := pointAt(parent, args.Parent)
		p2 := pointAt(child.Contours, args.Child)
		// Both matched points go through the linear transform before
		// differencing.
		p1 = scalePoint(p1, a, b, c, d)
		p2 = scalePoint(p2, a, b, c, d)
		e = float64(p1.X) - float64(p2.X)
		f = float64(p1.Y) - float64(p2.Y)
	}

	// Axis factors, with the 33/65536 doubling correction. The operand
	// pairing below is deliberate and load-bearing for parity.
	m0 := math.Max(math.Abs(a), math.Abs(b))
	n0 := math.Max(math.Abs(c), math.Abs(d))
	m, n := m0, n0
	if math.Abs(a)-math.Abs(c) <= 33.0/65536.0 {
		m = 2 * m0
	}
	if math.Abs(b)-math.Abs(d) <= 33.0/65536.0 {
		n = 2 * n0
	}

	transformed := &SimpleOutline{
		Contours: make([]Contour, len(child.Contours)),
	}
	transform := func(p Point) Point {
		x := m * ((a/m)*float64(p.X) + (c/m)*float64(p.Y) + e)
		y := n * ((b/n)*float64(p.X) + (d/n)*float64(p.Y) + f)
		return Point{X: int16(math.Round(x)), Y: int16(math.Round(y)), OnCurve: p.OnCurve}
	}
	for i, contour := range child.Contours {
		points := make([]Point, len(contour.Points))
		for j, p := range contour.Points {
			points[j] = transform(p)
		}
		transformed.Contours[i] = Contour{Points: points}
	}

	// Bounds follow the transformed corner points of the child's box.
	minPt := transform(Point{X: child.XMin, Y: child.YMin})
	maxPt := transform(Point{X: child.XMax, Y: child.YMax})
	transformed.XMin, transformed.XMax = minPt.X, maxPt.X
	transformed.YMin, transformed.YMax = minPt.Y, maxPt.Y
	return transformed
}

// scalePoint runs a point through the linear transform, truncating to font
// units.
func scalePoint(p Point, a, b, c, d float64) Point {
	x, y := float64(p.X), float64(p.Y)
	return Point{
		X:       int16(x*a + y*c),
		Y:       int16(x*b + y*d),
		OnCurve: p.OnCurve,
	}
}

// pointAt returns the point with the given flat index over all contours.
// Out-of-range indices yield the zero point, matching the tolerance of the
// renderers this format grew up with.
func pointAt(contours []Contour, index uint16) Point {
	i := int(index)
	for _, contour := range contours {
		if i < len(contour.Points) {
			return contour.Points[i]
		}
		i -= len(contour.Points)
	}
	return Point{}
}
