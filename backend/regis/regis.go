// Package regis implements a real-time backend for ReGIS graphics
// terminals such as the VT340 and xterm in its ReGIS emulation.
//
// A ReGIS screen is addressed as 768x480 integer pixels. The backend uses
// the centred square 144..623 x 0..479, with y increasing downwards.
//
// Importing the package registers the "regis" backend:
//
//	import _ "github.com/gogpu/plot/backend/regis"
package regis

import (
	"fmt"
	"io"
	"math"

	"github.com/gogpu/plot"
)

// Name is the registry name of the backend.
const Name = "regis"

// Descriptor is the static description of the ReGIS backend.
var Descriptor = plot.Descriptor{
	Name:   Name,
	Output: plot.OutputRealTime,
	Caps: plot.Capabilities{
		WideLines:          plot.No,
		DashArray:          plot.No,
		SolidFill:          plot.Yes,
		OddWindingFill:     plot.Yes,
		NonzeroWindingFill: plot.No,
		SettableBackground: plot.Yes,
		EscapedStrings:     plot.No,
		FontFamilies:       plot.No,
	},
	DefaultFont:           plot.FontOutline,
	DefaultFamily:         "hersheysans",
	MaxUnfilledPathLength: 500,
	Scaling:               plot.PolicyAll(plot.ScaleNone).With(plot.PrimCircle, plot.ScaleUniform),
	Geometry: plot.DeviceGeometry{
		Coords: plot.CoordsInteger,
		Device: plot.Box{XMin: 144, XMax: 623, YMin: 479, YMax: 0},
	},
	Sizing: plot.SizingFixed,
	Delegate: plot.Ops(
		plot.OpInitialize, plot.OpTerminate,
		plot.OpPushState, plot.OpPopState,
		plot.OpPaintPaths, plot.OpPaintMarker,
		plot.OpPaintTextWithEscapes, plot.OpPaintText, plot.OpGetTextWidth,
		plot.OpRetrieveFont, plot.OpFlushOutput,
		plot.OpWarning, plot.OpError,
	),
}

func init() {
	plot.MustRegister(Descriptor, func() plot.Driver { return new(Driver) })
}

// Control sequences that switch a terminal into and out of ReGIS mode.
const (
	enterReGIS = "\x1bP1p"
	exitReGIS  = "\x1b\\"
)

// Driver is the per-plotter ReGIS encoder.
type Driver struct {
	// prepainted records unfilled paths whose segments were drawn as
	// they were added, so paint-path does not draw them twice.
	prepainted []prepainted
}

type prepainted struct {
	start plot.Point
	n     int
}

var (
	_ plot.PageBeginner         = (*Driver)(nil)
	_ plot.PageEraser           = (*Driver)(nil)
	_ plot.PageEnder            = (*Driver)(nil)
	_ plot.PathPainter          = (*Driver)(nil)
	_ plot.FlushabilityReporter = (*Driver)(nil)
	_ plot.SegmentPrepainter    = (*Driver)(nil)
	_ plot.PointPainter         = (*Driver)(nil)
)

// BeginPage enters ReGIS mode and clears the screen to the background.
func (d *Driver) BeginPage(p *plot.Plotter) error {
	d.prepainted = d.prepainted[:0]
	if _, err := io.WriteString(p.Out(), enterReGIS); err != nil {
		return err
	}
	return d.clear(p)
}

// ErasePage clears the screen. Every cached terminal value is lost.
func (d *Driver) ErasePage(p *plot.Plotter) error {
	d.prepainted = d.prepainted[:0]
	return d.clear(p)
}

// EndPage leaves ReGIS mode.
func (d *Driver) EndPage(p *plot.Plotter) error {
	_, err := io.WriteString(p.Out(), exitReGIS+"\n")
	return err
}

func (d *Driver) clear(p *plot.Plotter) error {
	s := p.Session()
	bg := paletteIndex(p.MapColor(p.Background()))
	s.BgColor = palette[bg].color
	s.BgColorUnknown = false
	_, err := fmt.Fprintf(p.Out(), "S(I(%c))S(E)\n", palette[bg].code)
	return err
}

// PathIsFlushable reports true: an unfilled ReGIS path has already been
// drawn segment by segment.
func (d *Driver) PathIsFlushable(*plot.Plotter, *plot.Path) bool { return true }

// MaybePrepaintSegments draws the newly added segments of an unfilled,
// solid, straight-line path immediately.
func (d *Driver) MaybePrepaintSegments(p *plot.Plotter, path *plot.Path, prev int) error {
	if !prepaintable(path) {
		return nil
	}
	e := newEncoder(p)
	e.penColor(path.Style.PenColor)
	e.lineSolid()
	from := path.Start
	if prev > 0 {
		from = path.Segments[prev-1].P
	}
	e.moveTo(e.device(path.Transform, from))
	for _, s := range path.Segments[prev:] {
		e.vectorTo(e.device(path.Transform, s.P))
	}
	e.newline()

	n := len(path.Segments)
	if k := len(d.prepainted); k > 0 && d.prepainted[k-1].start == path.Start && d.prepainted[k-1].n == prev {
		d.prepainted[k-1].n = n
	} else {
		d.prepainted = append(d.prepainted, prepainted{start: path.Start, n: n})
	}
	return e.err
}

func prepaintable(path *plot.Path) bool {
	return prepaintStyle(path) && path.IsLines()
}

func prepaintStyle(path *plot.Path) bool {
	st := &path.Style
	return path.Kind == plot.PathSegments && st.Pen && !st.Fill && !st.Dashed() &&
		st.LineStyle != plot.LineDisconnected
}

// taken returns how many leading segments of path are already on screen
// and forgets the record. Curves added after the prepainted lines arrive
// flattened, so the record still matches a prefix of the resolved path.
func (d *Driver) taken(path *plot.Path) int {
	for i, pp := range d.prepainted {
		if pp.start != path.Start {
			continue
		}
		d.prepainted = append(d.prepainted[:i], d.prepainted[i+1:]...)
		if !prepaintStyle(path) || pp.n > len(path.Segments) {
			return 0
		}
		for _, s := range path.Segments {
			if s.Op != plot.SegLine {
				return 0
			}
		}
		return pp.n
	}
	return 0
}

// PaintPath draws a resolved path: polylines as vectors, circles with the
// native C command and everything else from its vertices.
func (d *Driver) PaintPath(p *plot.Plotter, path *plot.Path) error {
	e := newEncoder(p)
	st := &path.Style
	if n := d.taken(path); n > 0 {
		rest := path.Segments[n:]
		if len(rest) == 0 && !path.Closed {
			return nil
		}
		e.penColor(st.PenColor)
		e.lineSolid()
		e.moveTo(e.device(path.Transform, path.Segments[n-1].P))
		for _, s := range rest {
			e.vectorTo(e.device(path.Transform, s.P))
		}
		if path.Closed {
			e.vectorTo(e.device(path.Transform, path.Start))
		}
		e.newline()
		return e.err
	}

	if path.Kind == plot.PathCircle {
		c := e.device(path.Transform, path.Center)
		r := int(math.Round(path.RX * path.Transform.UniformScale()))
		if st.Fill {
			e.penColor(st.FillColor)
			e.moveTo(c)
			e.printf("F(C[+%d])", r)
		}
		if st.Pen {
			e.penColor(st.PenColor)
			e.lineSolid()
			e.moveTo(c)
			e.printf("C[+%d]", r)
		}
		e.newline()
		return e.err
	}

	pts := vertices(e, path)
	if len(pts) == 0 {
		return nil
	}
	if st.Fill && len(pts) > 2 {
		e.penColor(st.FillColor)
		e.moveTo(pts[0])
		e.printf("F(")
		for _, pt := range pts[1:] {
			e.vectorTo(pt)
		}
		e.vectorTo(pts[0])
		e.printf(")")
		e.newline()
	}
	if st.Pen {
		e.penColor(st.PenColor)
		e.lineSolid()
		e.moveTo(pts[0])
		if len(pts) == 1 {
			e.printf("V[]")
		}
		for _, pt := range pts[1:] {
			e.vectorTo(pt)
		}
		if path.Closed || path.Kind == plot.PathBox {
			e.vectorTo(pts[0])
		}
		e.newline()
	}
	return e.err
}

// vertices returns the device vertices of a straight-line or box path.
func vertices(e *encoder, path *plot.Path) []ipoint {
	var user []plot.Point
	switch path.Kind {
	case plot.PathBox:
		a, b := path.Start, path.Corner
		user = []plot.Point{a, plot.Pt(b.X, a.Y), b, plot.Pt(a.X, b.Y)}
	case plot.PathSegments:
		user = path.Points()
	}
	pts := make([]ipoint, 0, len(user))
	for _, u := range user {
		pts = append(pts, e.device(path.Transform, u))
	}
	return pts
}

// PaintPoint draws a single pixel in the pen color.
func (d *Driver) PaintPoint(p *plot.Plotter, at plot.Point) error {
	e := newEncoder(p)
	e.penColor(p.State().PenColor)
	e.moveTo(e.device(p.UserToDevice(), at))
	e.printf("V[]")
	e.newline()
	return e.err
}
