// Package pdf implements a backend that writes every page of a plotter
// into one PDF document, rendered with github.com/tdewolff/canvas.
//
// Device coordinates are millimetres on the page, with the origin at the
// lower left corner. The normalized unit square is mapped onto the page
// viewport given by the PAGESIZE parameter. Pages are kept in memory and
// the document is written when the plotter is terminated.
//
// Importing the package registers the "pdf" backend:
//
//	import _ "github.com/gogpu/plot/backend/pdf"
package pdf

import (
	"fmt"

	"github.com/tdewolff/canvas"
	canvaspdf "github.com/tdewolff/canvas/renderers/pdf"

	"github.com/gogpu/plot"
)

// Name is the registry name of the backend.
const Name = "pdf"

const mmPerInch = 25.4

// hairline is the width in millimetres used for zero-width lines.
const hairline = 0.1

// Descriptor is the static description of the PDF backend.
var Descriptor = plot.Descriptor{
	Name:   Name,
	Output: plot.OutputPagesAllAtOnce,
	Caps: plot.Capabilities{
		WideLines:          plot.Yes,
		DashArray:          plot.Yes,
		SolidFill:          plot.Yes,
		OddWindingFill:     plot.No,
		NonzeroWindingFill: plot.Yes,
		SettableBackground: plot.Yes,
		EscapedStrings:     plot.No,
		FontFamilies:       plot.No,
	},
	DefaultFont:           plot.FontOutline,
	DefaultFamily:         "helvetica",
	MaxUnfilledPathLength: 1000,
	Scaling:               plot.PolicyAll(plot.ScaleAny),
	Sizing:                plot.SizingViewport,
	FlipOnNegativeSize:    true,
	Delegate: plot.Ops(
		plot.OpInitialize,
		plot.OpPushState, plot.OpPopState,
		plot.OpPathIsFlushable, plot.OpMaybePrepaintSegments,
		plot.OpPaintMarker, plot.OpPaintPoint,
		plot.OpPaintTextWithEscapes, plot.OpPaintText, plot.OpGetTextWidth,
		plot.OpRetrieveFont, plot.OpFlushOutput,
		plot.OpWarning, plot.OpError,
	),
}

func init() {
	plot.MustRegister(Descriptor, func() plot.Driver { return new(Driver) })
}

// Driver is the per-plotter PDF encoder.
type Driver struct {
	pages []*canvas.Canvas
	cur   *canvas.Canvas
	ctx   *canvas.Context
}

var (
	_ plot.Terminator   = (*Driver)(nil)
	_ plot.PageBeginner = (*Driver)(nil)
	_ plot.PageEraser   = (*Driver)(nil)
	_ plot.PageEnder    = (*Driver)(nil)
	_ plot.PathPainter  = (*Driver)(nil)
	_ plot.PathsPainter = (*Driver)(nil)
)

// Pages returns the number of finished pages not yet written.
func (d *Driver) Pages() int { return len(d.pages) }

// BeginPage starts a new canvas the size of the page.
func (d *Driver) BeginPage(p *plot.Plotter) error {
	d.newCanvas(p)
	return nil
}

// ErasePage replaces the page with an empty one.
func (d *Driver) ErasePage(p *plot.Plotter) error {
	d.newCanvas(p)
	return nil
}

func (d *Driver) newCanvas(p *plot.Plotter) {
	page := p.PageSize()
	w, h := page.Width*mmPerInch, page.Height*mmPerInch
	d.cur = canvas.New(w, h)
	d.ctx = canvas.NewContext(d.cur)
	d.ctx.SetStrokeColor(canvas.Transparent)
	d.ctx.SetFillColor(p.MapColor(p.Background()))
	d.ctx.DrawPath(0, 0, canvas.Rectangle(w, h))
}

// EndPage keeps the finished page until the document is written.
func (d *Driver) EndPage(*plot.Plotter) error {
	d.pages = append(d.pages, d.cur)
	d.cur, d.ctx = nil, nil
	return nil
}

// Terminate writes the document holding every finished page.
func (d *Driver) Terminate(p *plot.Plotter) error {
	if len(d.pages) == 0 {
		return nil
	}
	first := d.pages[0]
	w, h := first.Size()
	doc := canvaspdf.New(p.Out(), w, h, nil)
	doc.SetInfo("", "", "", "", "gogpu/plot")
	for i, c := range d.pages {
		if i > 0 {
			cw, ch := c.Size()
			doc.NewPage(cw, ch)
		}
		c.RenderTo(doc)
	}
	d.pages = nil
	if err := doc.Close(); err != nil {
		return fmt.Errorf("pdf: write document: %w", err)
	}
	return nil
}

// PaintPath draws a path in page coordinates.
func (d *Driver) PaintPath(p *plot.Plotter, path *plot.Path) error {
	d.draw(p, &path.Style, path.Transform, toCanvas(path))
	return nil
}

// PaintPaths draws a compound path as one canvas path, so that its
// subpaths share one nonzero fill.
func (d *Driver) PaintPaths(p *plot.Plotter, paths []*plot.Path) (bool, error) {
	if len(paths) == 0 {
		return true, nil
	}
	cp := &canvas.Path{}
	for _, path := range paths {
		cp = cp.Append(toCanvas(path))
	}
	d.draw(p, &paths[0].Style, paths[0].Transform, cp)
	return true, nil
}

func (d *Driver) draw(p *plot.Plotter, st *plot.Style, m plot.Matrix, cp *canvas.Path) {
	ctx := d.ctx
	if st.Fill {
		ctx.SetFillColor(p.MapColor(st.FillColor))
	} else {
		ctx.SetFillColor(canvas.Transparent)
	}
	if !st.Pen {
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.DrawPath(0, 0, cp)
		return
	}
	ctx.SetStrokeColor(p.MapColor(st.PenColor))
	width := st.LineWidth * m.UniformScale()
	if width == 0 {
		width = hairline
	}
	ctx.SetStrokeWidth(width)
	ctx.SetStrokeCapper(cappers[st.Cap])
	ctx.SetStrokeJoiner(joiners[st.Join])
	if st.Dashed() {
		dash := st.Dash.Scale(m.UniformScale())
		ctx.SetDashes(dash.Offset, dash.Array...)
	} else {
		ctx.SetDashes(0)
	}
	ctx.DrawPath(0, 0, cp)
}

var (
	cappers = [...]canvas.Capper{plot.CapButt: canvas.ButtCap, plot.CapRound: canvas.RoundCap, plot.CapSquare: canvas.SquareCap}
	joiners = [...]canvas.Joiner{plot.JoinMiter: canvas.MiterJoin, plot.JoinRound: canvas.RoundJoin, plot.JoinBevel: canvas.BevelJoin}
)

// toCanvas converts path to a canvas path in page coordinates.
func toCanvas(path *plot.Path) *canvas.Path {
	cp := &canvas.Path{}
	for _, e := range path.Elements(path.Transform) {
		switch e.Op {
		case plot.ElemMoveTo:
			cp.MoveTo(e.Pts[0].X, e.Pts[0].Y)
		case plot.ElemLineTo:
			cp.LineTo(e.Pts[0].X, e.Pts[0].Y)
		case plot.ElemQuadTo:
			cp.QuadTo(e.Pts[0].X, e.Pts[0].Y, e.Pts[1].X, e.Pts[1].Y)
		case plot.ElemCubeTo:
			cp.CubeTo(e.Pts[0].X, e.Pts[0].Y, e.Pts[1].X, e.Pts[1].Y, e.Pts[2].X, e.Pts[2].Y)
		case plot.ElemClose:
			cp.Close()
		}
	}
	return cp
}
