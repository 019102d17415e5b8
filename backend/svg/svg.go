// Package svg implements a backend that writes one page as an SVG
// document.
//
// Paths are written in user coordinates and carry the user-to-device map
// as a transform attribute, so every primitive is rendered natively under
// any affine transform. The document is written when the page ends.
//
// Importing the package registers the "svg" backend:
//
//	import _ "github.com/gogpu/plot/backend/svg"
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/plot"
)

// Name is the registry name of the backend.
const Name = "svg"

// Descriptor is the static description of the SVG backend.
var Descriptor = plot.Descriptor{
	Name:   Name,
	Output: plot.OutputOnePage,
	Caps: plot.Capabilities{
		WideLines:          plot.Yes,
		DashArray:          plot.Yes,
		SolidFill:          plot.Yes,
		OddWindingFill:     plot.Yes,
		NonzeroWindingFill: plot.Yes,
		SettableBackground: plot.Yes,
		EscapedStrings:     plot.No,
		FontFamilies:       plot.Yes,
	},
	DefaultFont:             plot.FontNative,
	DefaultFamily:           "sans-serif",
	HorizontalJustification: true,
	MaxUnfilledPathLength:   500,
	Scaling:                 plot.PolicyAll(plot.ScaleAny),
	Geometry: plot.DeviceGeometry{
		Coords: plot.CoordsReal,
		Device: plot.Box{XMin: 0, XMax: 1, YMin: 1, YMax: 0},
	},
	Sizing:             plot.SizingFixed,
	FlipOnNegativeSize: true,
	Delegate: plot.Ops(
		plot.OpInitialize, plot.OpTerminate,
		plot.OpPushState, plot.OpPopState,
		plot.OpPathIsFlushable, plot.OpMaybePrepaintSegments,
		plot.OpPaintMarker, plot.OpPaintPoint,
		plot.OpPaintTextWithEscapes, plot.OpGetTextWidth,
		plot.OpRetrieveFont, plot.OpFlushOutput,
		plot.OpWarning, plot.OpError,
	),
}

func init() {
	plot.MustRegister(Descriptor, func() plot.Driver { return new(Driver) })
}

// Driver is the per-plotter SVG encoder. It collects the elements of the
// page and writes the document at EndPage.
type Driver struct {
	body bytes.Buffer
}

var (
	_ plot.PageBeginner = (*Driver)(nil)
	_ plot.PageEraser   = (*Driver)(nil)
	_ plot.PageEnder    = (*Driver)(nil)
	_ plot.PathPainter  = (*Driver)(nil)
	_ plot.PathsPainter = (*Driver)(nil)
	_ plot.TextPainter  = (*Driver)(nil)
)

// BeginPage starts an empty page.
func (d *Driver) BeginPage(*plot.Plotter) error {
	d.body.Reset()
	return nil
}

// ErasePage drops everything drawn so far.
func (d *Driver) ErasePage(*plot.Plotter) error {
	d.body.Reset()
	return nil
}

// EndPage writes the document.
func (d *Driver) EndPage(p *plot.Plotter) error {
	page := p.PageSize()
	w, h := math.Abs(page.ViewportWidth), math.Abs(page.ViewportHeight)
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n")
	fmt.Fprintf(&b, `<svg version="1.1" baseProfile="full" id="body" width="%sin" height="%sin" viewBox="0 0 1 1" preserveAspectRatio="none" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`+"\n",
		num(w), num(h))
	b.WriteString("<title>plot output</title>\n")
	fmt.Fprintf(&b, `<rect x="0" y="0" width="1" height="1" style="stroke:none;fill:%s;"/>`+"\n",
		p.MapColor(p.Background()).Hex())
	if _, err := io.WriteString(p.Out(), b.String()); err != nil {
		return err
	}
	if _, err := d.body.WriteTo(p.Out()); err != nil {
		return err
	}
	_, err := io.WriteString(p.Out(), "</svg>\n")
	return err
}

// PaintPath writes one path element.
func (d *Driver) PaintPath(p *plot.Plotter, path *plot.Path) error {
	st := &path.Style
	switch path.Kind {
	case plot.PathBox:
		x0, x1 := min(path.Start.X, path.Corner.X), max(path.Start.X, path.Corner.X)
		y0, y1 := min(path.Start.Y, path.Corner.Y), max(path.Start.Y, path.Corner.Y)
		fmt.Fprintf(&d.body, `<rect transform="%s" x="%s" y="%s" width="%s" height="%s" style="%s"/>`+"\n",
			matrix(path.Transform), num(x0), num(y0), num(x1-x0), num(y1-y0), style(p, st))
	case plot.PathCircle:
		fmt.Fprintf(&d.body, `<circle transform="%s" cx="%s" cy="%s" r="%s" style="%s"/>`+"\n",
			matrix(path.Transform), num(path.Center.X), num(path.Center.Y), num(path.RX), style(p, st))
	case plot.PathEllipse:
		tr := matrix(path.Transform)
		if path.Angle != 0 {
			tr += fmt.Sprintf(" rotate(%s %s %s)", num(path.Angle), num(path.Center.X), num(path.Center.Y))
		}
		fmt.Fprintf(&d.body, `<ellipse transform="%s" cx="%s" cy="%s" rx="%s" ry="%s" style="%s"/>`+"\n",
			tr, num(path.Center.X), num(path.Center.Y), num(path.RX), num(path.RY), style(p, st))
	default:
		fmt.Fprintf(&d.body, `<path transform="%s" d="%s" style="%s"/>`+"\n",
			matrix(path.Transform), pathData(path), style(p, st))
	}
	return nil
}

// PaintPaths writes a compound path as a single element so that the fill
// rule applies across its subpaths.
func (d *Driver) PaintPaths(p *plot.Plotter, paths []*plot.Path) (bool, error) {
	if len(paths) == 0 {
		return true, nil
	}
	var data []string
	for _, path := range paths {
		data = append(data, pathData(path))
	}
	first := paths[0]
	fmt.Fprintf(&d.body, `<path transform="%s" d="%s" style="%s"/>`+"\n",
		matrix(first.Transform), strings.Join(data, " "), style(p, &first.Style))
	return true, nil
}

// PaintText writes a text element at the cursor in the current font.
func (d *Driver) PaintText(p *plot.Plotter, s string, h plot.HJust, _ plot.VJust) (float64, error) {
	st := p.State()
	size := st.EffectiveFontSize()
	anchor := "start"
	switch h {
	case plot.HCenter:
		anchor = "middle"
	case plot.HRight:
		anchor = "end"
	}
	// Glyphs are drawn in a y-down frame; the final scale undoes the
	// y flip of the user-to-device map.
	tr := fmt.Sprintf("%s translate(%s,%s) rotate(%s) scale(1,-1)",
		matrix(p.UserToDevice()), num(st.Pos.X), num(st.Pos.Y), num(st.TextAngle))
	fmt.Fprintf(&d.body, `<text transform="%s" xml:space="preserve" style="font-family:%s;font-size:%spx;text-anchor:%s;fill:%s;stroke:none;">`,
		tr, attr(st.FontName), num(size), anchor, p.MapColor(st.PenColor).Hex())
	if err := xml.EscapeText(&d.body, []byte(s)); err != nil {
		return 0, err
	}
	d.body.WriteString("</text>\n")
	return plot.Generic.TextWidth(p, s), nil
}

// matrix formats m as an SVG transform. SVG orders the coefficients by
// column.
func matrix(m plot.Matrix) string {
	return fmt.Sprintf("matrix(%s %s %s %s %s %s)",
		num(m.A), num(m.D), num(m.B), num(m.E), num(m.C), num(m.F))
}

// pathData returns the path commands in user coordinates.
func pathData(path *plot.Path) string {
	var b strings.Builder
	pt := func(p plot.Point) { fmt.Fprintf(&b, "%s,%s ", num(p.X), num(p.Y)) }
	for _, e := range path.Elements(plot.Identity()) {
		switch e.Op {
		case plot.ElemMoveTo:
			b.WriteString("M")
			pt(e.Pts[0])
		case plot.ElemLineTo:
			b.WriteString("L")
			pt(e.Pts[0])
		case plot.ElemQuadTo:
			b.WriteString("Q")
			pt(e.Pts[0])
			pt(e.Pts[1])
		case plot.ElemCubeTo:
			b.WriteString("C")
			pt(e.Pts[0])
			pt(e.Pts[1])
			pt(e.Pts[2])
		case plot.ElemClose:
			b.WriteString("Z ")
		}
	}
	return strings.TrimSpace(b.String())
}

var (
	capNames  = [...]string{plot.CapButt: "butt", plot.CapRound: "round", plot.CapSquare: "square"}
	joinNames = [...]string{plot.JoinMiter: "miter", plot.JoinRound: "round", plot.JoinBevel: "bevel"}
)

// style returns the CSS style of a path.
func style(p *plot.Plotter, st *plot.Style) string {
	var b strings.Builder
	if st.Fill {
		rule := "evenodd"
		if st.FillRule == plot.FillNonZero {
			rule = "nonzero"
		}
		fmt.Fprintf(&b, "fill:%s;fill-rule:%s;", p.MapColor(st.FillColor).Hex(), rule)
	} else {
		b.WriteString("fill:none;")
	}
	if !st.Pen {
		b.WriteString("stroke:none;")
		return b.String()
	}
	fmt.Fprintf(&b, "stroke:%s;", p.MapColor(st.PenColor).Hex())
	if st.LineWidth == 0 {
		// The device hairline.
		b.WriteString("stroke-width:1px;vector-effect:non-scaling-stroke;")
	} else {
		fmt.Fprintf(&b, "stroke-width:%s;", num(st.LineWidth))
	}
	fmt.Fprintf(&b, "stroke-linecap:%s;stroke-linejoin:%s;", capNames[st.Cap], joinNames[st.Join])
	if st.Join == plot.JoinMiter {
		fmt.Fprintf(&b, "stroke-miterlimit:%s;", num(st.MiterLimit))
	}
	if st.Dashed() {
		dash := make([]string, len(st.Dash.Array))
		for i, v := range st.Dash.Array {
			dash[i] = num(v)
		}
		fmt.Fprintf(&b, "stroke-dasharray:%s;stroke-dashoffset:%s;", strings.Join(dash, ","), num(st.Dash.Offset))
	}
	return b.String()
}

func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 10, 64)
}

func attr(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
