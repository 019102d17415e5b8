package plot

import "math"

// Move ends the current path and moves the cursor to (x, y).
func (p *Plotter) Move(x, y float64) error {
	if err := p.checkOpen("Move"); err != nil {
		return err
	}
	if err := p.endPath(); err != nil {
		return err
	}
	p.state.Pos = Pt(x, y)
	return nil
}

// Cont continues the current path with a line to (x, y).
func (p *Plotter) Cont(x, y float64) error {
	if err := p.checkOpen("Cont"); err != nil {
		return err
	}
	return p.addSegment(Segment{Op: SegLine, P: Pt(x, y)})
}

// Line draws a line from (x0, y0) to (x1, y1), continuing the current path
// if it ends at (x0, y0).
func (p *Plotter) Line(x0, y0, x1, y1 float64) error {
	if err := p.checkOpen("Line"); err != nil {
		return err
	}
	if err := p.moveIfNeeded(Pt(x0, y0)); err != nil {
		return err
	}
	return p.addSegment(Segment{Op: SegLine, P: Pt(x1, y1)})
}

// Arc draws a circular arc about (xc, yc) from (x0, y0) towards (x1, y1),
// whichever way round is shorter. The end point is moved onto the circle
// if necessary.
func (p *Plotter) Arc(xc, yc, x0, y0, x1, y1 float64) error {
	if err := p.checkOpen("Arc"); err != nil {
		return err
	}
	c, start, end := Pt(xc, yc), Pt(x0, y0), Pt(x1, y1)
	if err := p.moveIfNeeded(start); err != nil {
		return err
	}
	r := start.Distance(c)
	if r == 0 || end == c || start == end {
		return p.addSegment(Segment{Op: SegLine, P: end})
	}
	// Place the end point on the circle.
	w := end.Sub(c)
	end = c.Add(w.Mul(r / w.Length()))
	return p.addSegment(Segment{Op: SegArc, P: end, C: c})
}

// EllArc draws the quarter ellipse about (xc, yc) whose conjugate radii
// end at (x0, y0) and (x1, y1).
func (p *Plotter) EllArc(xc, yc, x0, y0, x1, y1 float64) error {
	if err := p.checkOpen("EllArc"); err != nil {
		return err
	}
	c, start, end := Pt(xc, yc), Pt(x0, y0), Pt(x1, y1)
	if err := p.moveIfNeeded(start); err != nil {
		return err
	}
	u, v := start.Sub(c), end.Sub(c)
	if math.Abs(u.X*v.Y-u.Y*v.X) == 0 {
		// Collinear radii describe a degenerate ellipse.
		return p.addSegment(Segment{Op: SegLine, P: end})
	}
	return p.addSegment(Segment{Op: SegEllArc, P: end, C: c})
}

// Bezier2 draws a quadratic Bézier curve.
func (p *Plotter) Bezier2(x0, y0, x1, y1, x2, y2 float64) error {
	if err := p.checkOpen("Bezier2"); err != nil {
		return err
	}
	if err := p.moveIfNeeded(Pt(x0, y0)); err != nil {
		return err
	}
	return p.addSegment(Segment{Op: SegQuad, P: Pt(x2, y2), C: Pt(x1, y1)})
}

// Bezier3 draws a cubic Bézier curve.
func (p *Plotter) Bezier3(x0, y0, x1, y1, x2, y2, x3, y3 float64) error {
	if err := p.checkOpen("Bezier3"); err != nil {
		return err
	}
	if err := p.moveIfNeeded(Pt(x0, y0)); err != nil {
		return err
	}
	return p.addSegment(Segment{Op: SegCubic, P: Pt(x3, y3), C: Pt(x1, y1), D: Pt(x2, y2)})
}

// Box draws the axis-aligned rectangle with corners (x0, y0) and (x1, y1)
// and moves the cursor to its centre.
func (p *Plotter) Box(x0, y0, x1, y1 float64) error {
	if err := p.checkOpen("Box"); err != nil {
		return err
	}
	path := &Path{Kind: PathBox, Start: Pt(x0, y0), Corner: Pt(x1, y1), Closed: true}
	return p.paintPrimitive(path, Pt((x0+x1)/2, (y0+y1)/2))
}

// Circle draws a circle and moves the cursor to its centre.
func (p *Plotter) Circle(xc, yc, r float64) error {
	if err := p.checkOpen("Circle"); err != nil {
		return err
	}
	c := Pt(xc, yc)
	path := &Path{Kind: PathCircle, Center: c, RX: r, RY: r, Closed: true}
	return p.paintPrimitive(path, c)
}

// Ellipse draws an ellipse with semi-axes rx and ry, the first rotated by
// angle degrees counterclockwise, and moves the cursor to its centre.
func (p *Plotter) Ellipse(xc, yc, rx, ry, angle float64) error {
	if err := p.checkOpen("Ellipse"); err != nil {
		return err
	}
	c := Pt(xc, yc)
	path := &Path{Kind: PathEllipse, Center: c, RX: rx, RY: ry, Angle: angle, Closed: true}
	return p.paintPrimitive(path, c)
}

// Point draws a single point and moves the cursor there.
func (p *Plotter) Point(x, y float64) error {
	if err := p.checkOpen("Point"); err != nil {
		return err
	}
	if err := p.endPath(); err != nil {
		return err
	}
	p.state.Pos = Pt(x, y)
	if p.state.PenType == 0 {
		return nil
	}
	if err := p.callPaintPoint(p.state.Pos); err != nil {
		return p.fail("Point", err)
	}
	return p.flushRealTime()
}

// ClosePath closes the current subpath back to its start.
func (p *Plotter) ClosePath() error {
	if err := p.checkOpen("ClosePath"); err != nil {
		return err
	}
	if p.path == nil || p.path.Empty() {
		return nil
	}
	p.path.Closed = true
	p.state.Pos = p.path.Start
	return nil
}

// EndSubpath finishes the current subpath. The next segment starts a new
// subpath of the same compound path.
func (p *Plotter) EndSubpath() error {
	if err := p.checkOpen("EndSubpath"); err != nil {
		return err
	}
	if p.path != nil && !p.path.Empty() {
		p.paths = append(p.paths, p.path)
	}
	p.path = nil
	return nil
}

// EndPath paints the path under construction, together with any
// subpaths finished by EndSubpath.
func (p *Plotter) EndPath() error {
	if err := p.checkOpen("EndPath"); err != nil {
		return err
	}
	return p.endPath()
}

func (p *Plotter) moveIfNeeded(start Point) error {
	if p.path != nil && !p.path.Empty() && p.state.Pos == start {
		return nil
	}
	if p.path != nil && !p.path.Empty() {
		if err := p.endPath(); err != nil {
			return err
		}
	}
	p.state.Pos = start
	return nil
}

// addSegment appends s to the current path, starting one at the cursor if
// none is in progress. Long unfilled paths are painted early when the
// backend reports them flushable.
func (p *Plotter) addSegment(s Segment) error {
	if p.path == nil {
		p.path = &Path{Kind: PathSegments, Start: p.state.Pos}
	}
	prev := len(p.path.Segments)
	p.path.Segments = append(p.path.Segments, s)
	p.state.Pos = s.P

	p.snapshot(p.path)
	if err := p.callMaybePrepaintSegments(p.path, prev); err != nil {
		return p.fail("paint", err)
	}

	if len(p.paths) == 0 && p.state.FillType == 0 && len(p.path.Segments) >= p.maxLine &&
		p.callPathIsFlushable(p.path) {
		if err := p.endPath(); err != nil {
			return err
		}
		p.path = &Path{Kind: PathSegments, Start: p.state.Pos}
	}
	return nil
}

// snapshot records the current style and transform on path.
func (p *Plotter) snapshot(path *Path) {
	s := &p.state
	dash, offset := s.dashPattern()
	var d *Dash
	if dash != nil {
		d = NewDash(dash...).WithOffset(offset)
	}
	path.Transform = p.UserToDevice()
	path.Style = Style{
		Pen:        s.PenType != 0,
		PenColor:   s.PenColor,
		Fill:       s.FillType != 0,
		FillColor:  s.fillColor(),
		FillRule:   s.FillRule,
		LineWidth:  s.EffectiveLineWidth(),
		LineStyle:  s.LineStyle,
		Dash:       d,
		Cap:        s.Cap,
		Join:       s.Join,
		MiterLimit: s.MiterLimit,
	}
}

// endPath paints and clears the path under construction.
func (p *Plotter) endPath() error {
	paths := p.paths
	if p.path != nil && !p.path.Empty() {
		paths = append(paths, p.path)
	}
	p.path, p.paths = nil, nil
	if len(paths) == 0 {
		return nil
	}
	for _, path := range paths {
		p.snapshot(path)
	}
	var err error
	if len(paths) == 1 {
		err = p.paintPath(paths[0])
	} else {
		err = p.paintCompound(paths)
	}
	if err != nil {
		return p.fail("paint", err)
	}
	return p.flushRealTime()
}

// paintPrimitive paints a closed primitive on its own.
func (p *Plotter) paintPrimitive(path *Path, cursor Point) error {
	if err := p.endPath(); err != nil {
		return err
	}
	p.snapshot(path)
	p.state.Pos = cursor
	if err := p.paintPath(path); err != nil {
		return p.fail("paint", err)
	}
	return p.flushRealTime()
}
