package plot

import (
	"fmt"
	"io"

	"github.com/gogpu/plot/internal/fonts"
)

// GenericDriver implements every operation in terms of the others and of
// the plotter state. Backends list the operations they leave to it in
// Descriptor.Delegate, and may also call it from their own implementations.
type GenericDriver struct{}

// Generic is the shared generic implementation.
var Generic GenericDriver

var (
	_ Initializer          = GenericDriver{}
	_ Terminator           = GenericDriver{}
	_ PageBeginner         = GenericDriver{}
	_ PageEraser           = GenericDriver{}
	_ PageEnder            = GenericDriver{}
	_ StatePusher          = GenericDriver{}
	_ StatePopper          = GenericDriver{}
	_ PathPainter          = GenericDriver{}
	_ PathsPainter         = GenericDriver{}
	_ FlushabilityReporter = GenericDriver{}
	_ SegmentPrepainter    = GenericDriver{}
	_ MarkerPainter        = GenericDriver{}
	_ PointPainter         = GenericDriver{}
	_ EscapedTextPainter   = GenericDriver{}
	_ TextPainter          = GenericDriver{}
	_ TextMeasurer         = GenericDriver{}
	_ FontRetriever        = GenericDriver{}
	_ OutputFlusher        = GenericDriver{}
	_ Warner               = GenericDriver{}
	_ ErrorHandler         = GenericDriver{}
)

func (GenericDriver) Initialize(*Plotter) error { return nil }
func (GenericDriver) Terminate(*Plotter) error  { return nil }
func (GenericDriver) BeginPage(*Plotter) error  { return nil }
func (GenericDriver) ErasePage(*Plotter) error  { return nil }
func (GenericDriver) EndPage(*Plotter) error    { return nil }
func (GenericDriver) PushState(*Plotter)        {}
func (GenericDriver) PopState(*Plotter)         {}

// PaintPath draws nothing; a backend that renders paths must bind it.
func (GenericDriver) PaintPath(*Plotter, *Path) error { return nil }

// PaintPaths declines, so each subpath is painted on its own.
func (GenericDriver) PaintPaths(*Plotter, []*Path) (bool, error) { return false, nil }

func (GenericDriver) PathIsFlushable(*Plotter, *Path) bool { return true }

func (GenericDriver) MaybePrepaintSegments(*Plotter, *Path, int) error { return nil }

// PaintMarker draws the marker from lines, circles and polygons.
func (GenericDriver) PaintMarker(p *Plotter, at Point, m Marker, size float64) (bool, error) {
	return true, p.paintMarkerPaths(at, m, size)
}

// PaintPoint draws a square one device unit wide, or a one unit stroke on
// devices that cannot fill.
func (GenericDriver) PaintPoint(p *Plotter, at Point) error {
	m := p.UserToDevice()
	k := m.ScaleFactor()
	if k == 0 {
		return nil
	}
	half := 0.5 / k
	var path *Path
	if p.desc.Caps.SolidFill.Sure() {
		path = &Path{Kind: PathBox, Start: at.Sub(Pt(half, half)), Corner: at.Add(Pt(half, half)), Closed: true}
	} else {
		path = &Path{Kind: PathSegments, Start: at.Sub(Pt(half, 0)), Segments: []Segment{{Op: SegLine, P: at.Add(Pt(half, 0))}}}
	}
	p.snapshot(path)
	st := &path.Style
	st.Dash = nil
	st.LineStyle = LineSolid
	if path.Kind == PathBox {
		st.Pen, st.Fill = false, true
		st.FillColor = st.PenColor
		st.FillRule = FillNonZero
	} else {
		st.Pen, st.Fill = true, false
		st.LineWidth = 0
	}
	for _, r := range p.resolve(path) {
		if err := p.callPaintPath(r); err != nil {
			return err
		}
	}
	return nil
}

// PaintTextWithEscapes splits s into runs and draws each through the
// paint-text path of the plotter.
func (GenericDriver) PaintTextWithEscapes(p *Plotter, s string, h HJust, v VJust) (float64, error) {
	runs := parseEscapes(s)
	base := p.state.EffectiveFontSize()

	var total float64
	p.eachRun(runs, func(r textRun) {
		total += p.callTextWidth(r.text)
	})

	saved := p.state.Pos
	defer func() { p.state.Pos = saved }()

	dir := p.textDir()
	perp := Pt(-dir.Y, dir.X)
	m := p.FontFace().Metrics(base)
	origin := saved.Sub(dir.Mul(total * h.frac())).Add(perp.Mul(v.offset(m)))

	var (
		x   float64
		err error
	)
	p.eachRun(runs, func(r textRun) {
		if err != nil {
			return
		}
		p.state.Pos = origin.Add(dir.Mul(x)).Add(perp.Mul(r.rise * base))
		var w float64
		w, err = p.paintTextRun(r.text, HLeft, VBaseline)
		x += w
	})
	return total, err
}

// PaintText fills the glyph outlines of s with the pen color.
func (GenericDriver) PaintText(p *Plotter, s string, h HJust, v VJust) (float64, error) {
	size := p.state.EffectiveFontSize()
	face := p.FontFace()
	segs, advance := face.Outline(s, size)
	if len(segs) == 0 {
		return advance, nil
	}

	dir := p.textDir()
	perp := Pt(-dir.Y, dir.X)
	origin := p.state.Pos.
		Sub(dir.Mul(advance * h.frac())).
		Add(perp.Mul(v.offset(face.Metrics(size))))
	toUser := func(q fonts.Point) Point {
		return origin.Add(dir.Mul(q.X)).Add(perp.Mul(q.Y))
	}

	var (
		paths []*Path
		cur   *Path
	)
	for _, seg := range segs {
		if seg.Op == fonts.MoveTo || cur == nil {
			cur = &Path{Kind: PathSegments, Start: toUser(seg.Args[0]), Closed: true}
			paths = append(paths, cur)
			if seg.Op == fonts.MoveTo {
				continue
			}
		}
		switch seg.Op {
		case fonts.LineTo:
			cur.Segments = append(cur.Segments, Segment{Op: SegLine, P: toUser(seg.Args[0])})
		case fonts.QuadTo:
			cur.Segments = append(cur.Segments, Segment{Op: SegQuad, C: toUser(seg.Args[0]), P: toUser(seg.Args[1])})
		case fonts.CubeTo:
			cur.Segments = append(cur.Segments, Segment{
				Op: SegCubic, C: toUser(seg.Args[0]), D: toUser(seg.Args[1]), P: toUser(seg.Args[2]),
			})
		}
	}

	canFill := p.desc.Caps.SolidFill.Sure()
	var glyphs []*Path
	for _, path := range paths {
		if path.Empty() {
			continue
		}
		p.snapshot(path)
		st := &path.Style
		st.Dash = nil
		st.LineStyle = LineSolid
		st.FillColor = st.PenColor
		st.FillRule = FillNonZero
		st.Fill, st.Pen = canFill, !canFill
		if !canFill {
			st.LineWidth = 0
		}
		glyphs = append(glyphs, path)
	}
	if len(glyphs) == 0 {
		return advance, nil
	}
	return advance, p.paintCompound(glyphs)
}

// TextWidth measures s with the current face.
func (GenericDriver) TextWidth(p *Plotter, s string) float64 {
	return p.FontFace().Width(s, p.state.EffectiveFontSize())
}

// RetrieveFont selects the requested font family from the built-in faces,
// falling back to the backend's default family with a warning.
func (GenericDriver) RetrieveFont(p *Plotter) bool {
	name := p.state.FontName
	if name == "" {
		name = p.desc.DefaultFamily
	}
	if f, ok := fonts.Lookup(name); ok {
		p.face = f
		return true
	}
	p.warnOnce("font:"+name, fmt.Sprintf("font %q is not available, using the default font", name))
	f, ok := fonts.Lookup(p.desc.DefaultFamily)
	if !ok {
		f = fonts.Default()
	}
	p.face = f
	return false
}

// FlushOutput flushes the buffered output stream.
func (GenericDriver) FlushOutput(p *Plotter) error {
	return p.out.Flush()
}

// Warning logs msg and writes it to the error writer, if any.
func (GenericDriver) Warning(p *Plotter, msg string) {
	p.log.Warn("plot: " + msg)
	if p.errw != nil {
		_, _ = io.WriteString(p.errw, "plot: warning: "+msg+"\n")
	}
}

// Error logs err and writes it to the error writer, if any.
func (GenericDriver) Error(p *Plotter, err error) {
	p.log.Error("plot: error", "err", err)
	if p.errw != nil {
		_, _ = fmt.Fprintf(p.errw, "%v\n", err)
	}
}
