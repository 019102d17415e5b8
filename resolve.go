package plot

import (
	"math"

	"github.com/gogpu/plot/internal/flatten"
)

// paintPath resolves path against the backend's capabilities and scaling
// policy and dispatches the result to paint-path.
func (p *Plotter) paintPath(path *Path) error {
	for _, r := range p.resolve(path) {
		if err := p.paintResolved(r); err != nil {
			return err
		}
	}
	return nil
}

// paintCompound paints subpaths that share one fill. Backends get the
// whole set through paint-multiple-paths when every subpath resolves to a
// single path; otherwise, or if they decline, each piece is painted alone.
func (p *Plotter) paintCompound(paths []*Path) error {
	var resolved []*Path
	single := true
	for _, path := range paths {
		rs := p.resolve(path)
		if len(rs) != 1 || rs[0].Style.LineStyle == LineDisconnected {
			single = false
		}
		resolved = append(resolved, rs...)
	}
	if single {
		ok, err := p.callPaintPaths(resolved)
		if err != nil || ok {
			return err
		}
	}
	for _, r := range resolved {
		if err := p.paintResolved(r); err != nil {
			return err
		}
	}
	return nil
}

func (p *Plotter) paintResolved(path *Path) error {
	if path.Style.Pen && path.Style.LineStyle == LineDisconnected {
		if path.Style.Fill {
			fill := path.clone()
			fill.Style.Pen = false
			if err := p.callPaintPath(fill); err != nil {
				return err
			}
		}
		return p.paintVertices(path)
	}
	if !path.Style.Pen && !path.Style.Fill {
		return nil
	}
	return p.callPaintPath(path)
}

// paintVertices draws the vertices of a path as points, the rendering of
// the disconnected line style.
func (p *Plotter) paintVertices(path *Path) error {
	lines := p.flattenAll(path)
	pts := lines.Points()
	if lines.Closed && len(pts) > 1 {
		pts = pts[:len(pts)-1]
	}
	for _, pt := range pts {
		if err := p.callPaintPoint(pt); err != nil {
			return err
		}
	}
	return nil
}

// resolve applies the shared-layer fallbacks to path. It returns the
// paths to paint, each of which the backend can render natively.
func (p *Plotter) resolve(path *Path) []*Path {
	path = path.clone()
	caps := &p.desc.Caps
	st := &path.Style

	if st.LineWidth != 0 && !caps.WideLines.Sure() {
		st.LineWidth = 0
	}
	if st.Fill {
		p.resolveFill(st)
	}

	path = p.flattenUnsupported(path)

	if !st.Pen || !st.Dashed() || caps.DashArray.Sure() {
		return []*Path{path}
	}

	// Dash in the shared layer: the fill is painted once, the stroke as
	// solid pieces.
	var out []*Path
	if st.Fill {
		fill := path.clone()
		fill.Style.Pen = false
		fill.Style.Dash = nil
		out = append(out, fill)
	}
	lines := p.flattenAll(path)
	pts := lines.Points()
	if lines.Closed {
		pts = append(pts, lines.Start)
	}
	pieces := st.Dash.Split(pts)
	p.log.Debug("plot: dashing stroke in shared layer", "pieces", len(pieces))
	for _, piece := range pieces {
		q := &Path{
			Kind:      PathSegments,
			Start:     piece[0],
			Transform: path.Transform,
			Style:     *st,
		}
		q.Style.Fill = false
		q.Style.Dash = nil
		for _, pt := range piece[1:] {
			q.Segments = append(q.Segments, Segment{Op: SegLine, P: pt})
		}
		out = append(out, q)
	}
	return out
}

// resolveFill picks a fill rule the backend supports, or drops the fill.
func (p *Plotter) resolveFill(st *Style) {
	caps := &p.desc.Caps
	if !caps.SolidFill.Sure() {
		st.Fill = false
		p.warnOnce("fill", "filling is not supported on this device, stroking only")
		return
	}
	supported := func(r FillRule) bool {
		if r == FillNonZero {
			return caps.NonzeroWindingFill.Sure()
		}
		return caps.OddWindingFill.Sure()
	}
	if supported(st.FillRule) {
		return
	}
	other := FillNonZero
	if st.FillRule == FillNonZero {
		other = FillOddEven
	}
	if supported(other) {
		p.warnOnce("fillrule-"+st.FillRule.String(),
			"fill rule "+st.FillRule.String()+" is not supported, using "+other.String())
		st.FillRule = other
	}
}

// tolerance returns the flattening tolerance in user units for path.
func (p *Plotter) tolerance(path *Path) float64 {
	k := path.Transform.ScaleFactor()
	if k == 0 {
		return p.Tolerance()
	}
	return p.Tolerance() / k
}

// flattenUnsupported replaces every curve and closed primitive that the
// backend cannot render under the path transform with straight segments.
func (p *Plotter) flattenUnsupported(path *Path) *Path {
	native := func(kind PrimitiveKind) bool {
		return Native(kind, &p.desc, path.Transform)
	}
	if kind, ok := path.Kind.Kind(); ok {
		if native(kind) {
			return path
		}
		p.log.Debug("plot: flattening primitive", "kind", kind, "class", ClassifyTransform(path.Transform))
		return p.primitiveLines(path)
	}
	return p.flattenSegments(path, native)
}

// flattenAll converts any path to straight segments.
func (p *Plotter) flattenAll(path *Path) *Path {
	if path.Kind != PathSegments {
		return p.primitiveLines(path)
	}
	return p.flattenSegments(path, func(PrimitiveKind) bool { return false })
}

func (p *Plotter) primitiveLines(path *Path) *Path {
	q := &Path{
		Kind:      PathSegments,
		Closed:    true,
		Transform: path.Transform,
		Style:     path.Style,
	}
	switch path.Kind {
	case PathBox:
		p0, p1 := path.Start, path.Corner
		q.Start = p0
		q.Segments = []Segment{
			{Op: SegLine, P: Pt(p1.X, p0.Y)},
			{Op: SegLine, P: p1},
			{Op: SegLine, P: Pt(p0.X, p1.Y)},
		}
	default:
		k := ellipseConic(path.Center, path.RX, path.RY, path.Angle)
		q.Start = k.at(0)
		pts := flatten.Conic(fp(k.c), fp(k.u), fp(k.v), 0, 2*math.Pi, p.tolerance(path))
		// The last point repeats the start; Closed draws that edge.
		for _, pt := range pts[:max(len(pts)-1, 0)] {
			q.Segments = append(q.Segments, Segment{Op: SegLine, P: pp(pt)})
		}
	}
	return q
}

func (p *Plotter) flattenSegments(path *Path, keep func(PrimitiveKind) bool) *Path {
	tol := p.tolerance(path)
	var segs []Segment
	changed := false
	cur := path.Start
	for _, s := range path.Segments {
		kind, curved := s.Op.Kind()
		if !curved || keep(kind) {
			segs = append(segs, s)
			cur = s.P
			continue
		}
		changed = true
		var pts []flatten.Point
		switch s.Op {
		case SegArc:
			k := arcConic(cur, s.C, s.P)
			pts = flatten.Conic(fp(k.c), fp(k.u), fp(k.v), k.t0, k.t0+k.sweep, tol)
		case SegEllArc:
			k := ellArcConic(cur, s.C, s.P)
			pts = flatten.Conic(fp(k.c), fp(k.u), fp(k.v), 0, k.sweep, tol)
		case SegQuad:
			pts = flatten.Quad(fp(cur), fp(s.C), fp(s.P), tol)
		case SegCubic:
			pts = flatten.Cubic(fp(cur), fp(s.C), fp(s.D), fp(s.P), tol)
		}
		for _, pt := range pts[:max(len(pts)-1, 0)] {
			segs = append(segs, Segment{Op: SegLine, P: pp(pt)})
		}
		// End exactly where the curve ends.
		segs = append(segs, Segment{Op: SegLine, P: s.P})
		cur = s.P
	}
	if !changed {
		return path
	}
	p.log.Debug("plot: flattened curves", "segments", len(segs), "class", ClassifyTransform(path.Transform))
	q := *path
	q.Segments = segs
	return &q
}

func fp(p Point) flatten.Point { return flatten.Point{X: p.X, Y: p.Y} }

func pp(p flatten.Point) Point { return Point{X: p.X, Y: p.Y} }
