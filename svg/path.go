package svg

import (
	"math"
	"strconv"
	"strings"

	"github.com/typeworks/glyphmap/ttf"
)

// A command is one SVG path command with its arguments. Coordinates stay
// in font units (int16 range), with the Y axis already flipped for SVG.
type command struct {
	op   byte
	args []int16
}

// Path command letters. Uppercase commands carry absolute coordinates,
// lowercase ones carry deltas relative to the current point.
const (
	opMoveTo       = 'M'
	opHorizontalTo = 'H'
	opVerticalTo   = 'V'
	opLineTo       = 'L'
	opQuadTo       = 'Q'
	opRelLineTo    = 'l'
	opRelQuadTo    = 'q'
	opRelSmoothTo  = 't'
	opRelVertTo    = 'v'
	opRelHorizTo   = 'h'
	opClose        = 'Z'
)

// contourCommands converts one contour into absolute path commands.
//
// The first point is forced on-curve (fonts may legally start a contour
// off-curve; treating it as on-curve also guarantees the wraparound in
// the curve chain below terminates). On-curve points emit lines;
// consecutive off-curve points form a chain of quadratic segments where
// each adjacent control-point pair implies a synthesized on-curve
// midpoint, until an explicit on-curve point or the wraparound to the
// first point closes the chain.
func contourCommands(contour ttf.Contour) []command {
	if len(contour.Points) == 0 {
		return nil
	}
	first := contour.Points[0]
	first.OnCurve = true

	path := make([]command, 0, len(contour.Points)*2)
	path = append(path, command{opMoveTo, []int16{first.X, -first.Y}})

	i := 1
	for i < len(contour.Points) {
		point := contour.Points[i]
		i++
		if point.OnCurve {
			path = append(path, command{opLineTo, []int16{point.X, -point.Y}})
			continue
		}
		control := point
		for {
			next := first // wraparound
			if i < len(contour.Points) {
				next = contour.Points[i]
				i++
			}
			if next.OnCurve {
				path = append(path, command{opQuadTo, []int16{
					control.X, -control.Y, next.X, -next.Y,
				}})
				break
			}
			// Two control points in a row: synthesize an on-curve point
			// midway between them.
			path = append(path, command{opQuadTo, []int16{
				control.X, -control.Y,
				(control.X + next.X) / 2, -(control.Y + next.Y) / 2,
			}})
			control = next
		}
	}
	path = append(path, command{op: opClose})
	return path
}

// lineComponents returns the endpoint of a straight-line command.
// Axes not pinned down by the command report MaxInt16, a value outside
// the coordinate range of any real glyph, so comparisons against it
// never signal a shared axis.
func (c command) lineComponents() (int16, int16, bool) {
	switch c.op {
	case opMoveTo, opLineTo:
		return c.args[0], c.args[1], true
	case opHorizontalTo:
		return c.args[0], math.MaxInt16, true
	case opVerticalTo:
		return math.MaxInt16, c.args[0], true
	}
	return 0, 0, false
}

// minify rewrites a command sequence in place to its shortest-known
// equivalent: lines sharing an axis with their predecessor's endpoint
// collapse to H/V shorthands, absolute coordinates become relative
// deltas, and a quadratic whose control point reflects the previous
// one's about the shared endpoint becomes a smooth 't' shorthand.
func minify(path []command) {
	if len(path) < 2 {
		return
	}

	for i := 1; i < len(path); i++ {
		px, py, ok := path[i-1].lineComponents()
		if !ok {
			continue
		}
		x, y, ok := path[i].lineComponents()
		if !ok {
			continue
		}
		switch {
		case x == px && y == py:
			// No-op line; kept, some renderers rely on it for fill.
		case x == px:
			path[i] = command{opVerticalTo, []int16{y}}
		case y == py:
			path[i] = command{opHorizontalTo, []int16{x}}
		}
	}

	var px, py int16
	var lastQX, lastQY int16 // endpoint of the previous relative quad
	haveLastQ := false
	for i := range path {
		c := &path[i]
		switch c.op {
		case opMoveTo:
			px, py = c.args[0], c.args[1]
		case opLineTo:
			x, y := c.args[0], c.args[1]
			*c = command{opRelLineTo, []int16{x - px, y - py}}
			px, py = x, y
		case opQuadTo:
			x, y := c.args[2], c.args[3]
			*c = command{opRelQuadTo, []int16{
				c.args[0] - px, c.args[1] - py, x - px, y - py,
			}}
			px, py = x, y
		case opHorizontalTo:
			x := c.args[0]
			*c = command{opRelHorizTo, []int16{x - px}}
			px = x
		case opVerticalTo:
			y := c.args[0]
			*c = command{opRelVertTo, []int16{y - py}}
			py = y
		}

		if c.op == opRelQuadTo {
			x1, y1, x, y := c.args[0], c.args[1], c.args[2], c.args[3]
			if haveLastQ && x1 == lastQX && y1 == lastQY {
				*c = command{opRelSmoothTo, []int16{x, y}}
			}
			lastQX, lastQY = x, y
			haveLastQ = true
		} else {
			haveLastQ = false
		}
	}
}

// render serializes a command sequence to path-data syntax. A command
// letter is written once per run of same-type commands, and separating
// spaces are dropped wherever a leading '-' already delimits the next
// argument.
func render(path []command) string {
	var out strings.Builder
	out.Grow(len(path) * 12)
	ctrl := byte(' ')
	for _, c := range path {
		skipNext := false
		if ctrl != c.op {
			out.WriteByte(c.op)
			ctrl = c.op
			skipNext = true
		}
		for _, a := range c.args {
			if a >= 0 && !skipNext {
				out.WriteByte(' ')
			}
			out.WriteString(strconv.Itoa(int(a)))
			skipNext = false
		}
	}
	return out.String()
}
