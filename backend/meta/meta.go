// Package meta implements a real-time backend that records every
// dispatched operation as one line of text.
//
// The device is the normalized unit square, and every primitive and text
// operation is handled natively, so the log shows exactly what the shared
// layer sends to a fully capable backend. Lines are written to the output
// as they happen and kept in memory.
//
// Importing the package registers the "meta" backend:
//
//	import _ "github.com/gogpu/plot/backend/meta"
package meta

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/plot"
)

// Name is the registry name of the backend.
const Name = "meta"

// Descriptor is the static description of the meta backend.
var Descriptor = plot.Descriptor{
	Name:   Name,
	Output: plot.OutputRealTime,
	Caps: plot.Capabilities{
		WideLines:          plot.Yes,
		DashArray:          plot.Yes,
		SolidFill:          plot.Yes,
		OddWindingFill:     plot.Yes,
		NonzeroWindingFill: plot.Yes,
		SettableBackground: plot.Yes,
		EscapedStrings:     plot.Yes,
		FontFamilies:       plot.Yes,
	},
	DefaultFont:             plot.FontNative,
	DefaultFamily:           "helvetica",
	HorizontalJustification: true,
	VerticalJustification:   true,
	MaxUnfilledPathLength:   1000,
	Scaling:                 plot.PolicyAll(plot.ScaleAny),
	Geometry: plot.DeviceGeometry{
		Coords: plot.CoordsReal,
		Device: plot.UnitBox,
	},
	Sizing: plot.SizingFixed,
	Delegate: plot.Ops(
		plot.OpPathIsFlushable, plot.OpMaybePrepaintSegments,
		plot.OpGetTextWidth, plot.OpRetrieveFont, plot.OpFlushOutput,
		plot.OpWarning, plot.OpError,
	),
}

func init() {
	plot.MustRegister(Descriptor, func() plot.Driver { return new(Driver) })
}

// Driver is the per-plotter recorder.
type Driver struct {
	log []string
}

var (
	_ plot.Initializer        = (*Driver)(nil)
	_ plot.Terminator         = (*Driver)(nil)
	_ plot.PageBeginner       = (*Driver)(nil)
	_ plot.PageEraser         = (*Driver)(nil)
	_ plot.PageEnder          = (*Driver)(nil)
	_ plot.StatePusher        = (*Driver)(nil)
	_ plot.StatePopper        = (*Driver)(nil)
	_ plot.PathPainter        = (*Driver)(nil)
	_ plot.PathsPainter       = (*Driver)(nil)
	_ plot.MarkerPainter      = (*Driver)(nil)
	_ plot.PointPainter       = (*Driver)(nil)
	_ plot.EscapedTextPainter = (*Driver)(nil)
	_ plot.TextPainter        = (*Driver)(nil)
)

// Log returns the recorded lines.
func (d *Driver) Log() []string { return d.log }

func (d *Driver) emit(p *plot.Plotter, format string, args ...any) error {
	line := fmt.Sprintf(format, args...)
	d.log = append(d.log, line)
	_, err := io.WriteString(p.Out(), line+"\n")
	return err
}

func (d *Driver) Initialize(p *plot.Plotter) error {
	return d.emit(p, "init %s", p.Descriptor().Name)
}

func (d *Driver) Terminate(p *plot.Plotter) error {
	return d.emit(p, "terminate pages=%d", p.Pages())
}

func (d *Driver) BeginPage(p *plot.Plotter) error {
	return d.emit(p, "begin-page %d bg=%s", p.Session().Page, p.MapColor(p.Background()).Hex())
}

func (d *Driver) ErasePage(p *plot.Plotter) error {
	return d.emit(p, "erase-page bg=%s", p.MapColor(p.Background()).Hex())
}

func (d *Driver) EndPage(p *plot.Plotter) error {
	return d.emit(p, "end-page %d", p.Session().Page)
}

// PushState and PopState cannot fail; write errors surface at the next
// flush.
func (d *Driver) PushState(p *plot.Plotter) { _ = d.emit(p, "push-state") }

func (d *Driver) PopState(p *plot.Plotter) { _ = d.emit(p, "pop-state") }

func (d *Driver) PaintPath(p *plot.Plotter, path *plot.Path) error {
	return d.emit(p, "%s%s%s", geometry(path), transform(path.Transform), style(&path.Style))
}

// PaintPaths records a compound path as one line, its subpaths separated
// by "|".
func (d *Driver) PaintPaths(p *plot.Plotter, paths []*plot.Path) (bool, error) {
	if len(paths) == 0 {
		return true, nil
	}
	parts := make([]string, len(paths))
	for i, path := range paths {
		parts[i] = geometry(path)
	}
	err := d.emit(p, "compound %s%s%s", strings.Join(parts, " | "),
		transform(paths[0].Transform), style(&paths[0].Style))
	return true, err
}

func (d *Driver) PaintMarker(p *plot.Plotter, at plot.Point, m plot.Marker, size float64) (bool, error) {
	return true, d.emit(p, "marker %s %s %d %s%s", num(at.X), num(at.Y), m, num(size),
		transform(p.UserToDevice()))
}

func (d *Driver) PaintPoint(p *plot.Plotter, at plot.Point) error {
	return d.emit(p, "point %s %s%s pen=%s", num(at.X), num(at.Y),
		transform(p.UserToDevice()), p.MapColor(p.State().PenColor).Hex())
}

func (d *Driver) PaintTextWithEscapes(p *plot.Plotter, s string, h plot.HJust, v plot.VJust) (float64, error) {
	return d.text(p, "label-escaped", s, h, v)
}

func (d *Driver) PaintText(p *plot.Plotter, s string, h plot.HJust, v plot.VJust) (float64, error) {
	return d.text(p, "label", s, h, v)
}

func (d *Driver) text(p *plot.Plotter, op, s string, h plot.HJust, v plot.VJust) (float64, error) {
	st := p.State()
	err := d.emit(p, "%s %s %s h=%d v=%d font=%s size=%s angle=%s %s", op,
		num(st.Pos.X), num(st.Pos.Y), h, v, st.FontName, num(st.EffectiveFontSize()),
		num(st.TextAngle), strconv.Quote(s))
	if err != nil {
		return 0, err
	}
	return plot.Generic.TextWidth(p, s), nil
}

// geometry formats the shape of a path in user coordinates.
func geometry(path *plot.Path) string {
	switch path.Kind {
	case plot.PathBox:
		return fmt.Sprintf("box %s %s %s %s", num(path.Start.X), num(path.Start.Y), num(path.Corner.X), num(path.Corner.Y))
	case plot.PathCircle:
		return fmt.Sprintf("circle %s %s %s", num(path.Center.X), num(path.Center.Y), num(path.RX))
	case plot.PathEllipse:
		return fmt.Sprintf("ellipse %s %s %s %s %s", num(path.Center.X), num(path.Center.Y),
			num(path.RX), num(path.RY), num(path.Angle))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "path M %s %s", num(path.Start.X), num(path.Start.Y))
	for _, s := range path.Segments {
		switch s.Op {
		case plot.SegLine:
			fmt.Fprintf(&b, " L %s %s", num(s.P.X), num(s.P.Y))
		case plot.SegArc:
			fmt.Fprintf(&b, " A %s %s %s %s", num(s.C.X), num(s.C.Y), num(s.P.X), num(s.P.Y))
		case plot.SegEllArc:
			fmt.Fprintf(&b, " E %s %s %s %s", num(s.C.X), num(s.C.Y), num(s.P.X), num(s.P.Y))
		case plot.SegQuad:
			fmt.Fprintf(&b, " Q %s %s %s %s", num(s.C.X), num(s.C.Y), num(s.P.X), num(s.P.Y))
		case plot.SegCubic:
			fmt.Fprintf(&b, " C %s %s %s %s %s %s", num(s.C.X), num(s.C.Y), num(s.D.X), num(s.D.Y),
				num(s.P.X), num(s.P.Y))
		}
	}
	if path.Closed {
		b.WriteString(" Z")
	}
	return b.String()
}

// transform formats the user-to-device map, omitted when it is the
// identity.
func transform(m plot.Matrix) string {
	if m == plot.Identity() {
		return ""
	}
	return fmt.Sprintf(" t=%s,%s,%s,%s,%s,%s", num(m.A), num(m.B), num(m.C), num(m.D), num(m.E), num(m.F))
}

func style(st *plot.Style) string {
	var b strings.Builder
	if st.Pen {
		fmt.Fprintf(&b, " pen=%s width=%s", st.PenColor.Hex(), num(st.LineWidth))
		if st.Dashed() {
			dash := make([]string, len(st.Dash.Array))
			for i, v := range st.Dash.Array {
				dash[i] = num(v)
			}
			fmt.Fprintf(&b, " dash=%s@%s", strings.Join(dash, ","), num(st.Dash.Offset))
		}
	}
	if st.Fill {
		fmt.Fprintf(&b, " fill=%s rule=%s", st.FillColor.Hex(), st.FillRule)
	}
	return b.String()
}

func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 8, 64)
}
