package svg

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/typeworks/glyphmap/ttf"
)

// Properties describe the viewBox of a rendered SVG document, in the
// flipped (Y-down) coordinate space.
type Properties struct {
	ViewBoxX float32 // top-left corner
	ViewBoxY float32
	ViewBoxW float32
	ViewBoxH float32

	// ScaleTo, if set, is the horizontal display size; the vertical size
	// follows from the viewBox aspect ratio. If unset, the display size
	// equals the viewBox size.
	ScaleTo Option[float32]

	// Margin, if set, is a horizontal margin added symmetrically around
	// the viewBox; the vertical margin follows from the aspect ratio.
	Margin Option[float32]
}

// Document display defaults.
const (
	defaultScaleTo = 75.0
	defaultMargin  = 50.0
)

// PathElement renders an outline as a single SVG <path> element with
// minified path data, not wrapped in a document.
func PathElement(outline *ttf.SimpleOutline) string {
	var d strings.Builder
	for _, contour := range outline.Contours {
		path := contourCommands(contour)
		minify(path)
		d.WriteString(render(path))
	}
	return "<path fill-rule='evenodd' d='" + d.String() + "'/>"
}

// Document renders an outline as a standalone SVG document. The viewBox
// derives from the outline's bounding box with the Y axis flipped, a
// symmetric margin, and a fixed display width of 75 units.
func Document(outline *ttf.SimpleOutline) string {
	xmin, xmax := outline.XMin, outline.XMax
	ymin, ymax := -outline.YMax, -outline.YMin
	props := Properties{
		ViewBoxX: float32(xmin),
		ViewBoxY: float32(ymin),
		ViewBoxW: float32(xmax - xmin),
		ViewBoxH: float32(ymax - ymin),
		ScaleTo:  Some[float32](defaultScaleTo),
		Margin:   Some[float32](defaultMargin),
	}
	doc := Wrap(props, PathElement(outline))
	tracer().Debugf("rendered SVG document of %d bytes", len(doc))
	return doc
}

// Wrap puts an SVG fragment into an <svg> container described by props.
func Wrap(props Properties, component string) string {
	width, height := props.ViewBoxW, props.ViewBoxH
	xmin, ymin := props.ViewBoxX, props.ViewBoxY
	aspectRatio := width / height

	xMargin := props.Margin.Or(0)
	yMargin := xMargin / aspectRatio
	xmin, ymin = xmin-xMargin, ymin-yMargin
	width, height = width+2*xMargin, height+2*yMargin

	vwidth := props.ScaleTo.Or(width)
	vheight := vwidth / aspectRatio

	return fmt.Sprintf(
		"<svg xmlns='http://www.w3.org/2000/svg' style='background-color:#FFF'"+
			" width='%s' height='%s' viewBox='%s %s %s %s'>%s</svg>",
		ftoa(vwidth), ftoa(vheight),
		ftoa(xmin), ftoa(ymin), ftoa(width), ftoa(height),
		component)
}

// ftoa formats a float without trailing zeros ("75", "62.5").
func ftoa(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// Compress returns a gzip-compressed (SVGZ) rendition of an SVG
// document.
func Compress(doc string) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write([]byte(doc)); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURL returns a base64 'data:' URL embedding an SVG document,
// suitable as the source of an <img> element.
func DataURL(doc string) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(doc))
}
