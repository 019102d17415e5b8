package plot

import "math"

// SegmentOp is the kind of a path segment.
type SegmentOp uint8

const (
	SegLine SegmentOp = iota + 1
	// SegArc is a circular arc about C, at most a half turn.
	SegArc
	// SegEllArc is the quarter ellipse about C whose conjugate radii end at
	// the segment start and at P.
	SegEllArc
	SegQuad
	SegCubic
)

// Kind returns the primitive kind governing native rendering of the
// segment, and false for straight lines.
func (op SegmentOp) Kind() (PrimitiveKind, bool) {
	switch op {
	case SegArc:
		return PrimArc, true
	case SegEllArc:
		return PrimEllArc, true
	case SegQuad:
		return PrimQuad, true
	case SegCubic:
		return PrimCubic, true
	default:
		return 0, false
	}
}

// Segment is one piece of a path. It starts at the end of the previous
// segment (or at Path.Start) and ends at P. C is the centre of an arc or
// the first control point of a Bézier curve; D is the second cubic control.
type Segment struct {
	Op   SegmentOp
	P    Point
	C, D Point
}

// PathKind distinguishes segment lists from closed primitives.
type PathKind uint8

const (
	PathSegments PathKind = iota + 1
	PathBox
	PathCircle
	PathEllipse
)

// Kind returns the primitive kind of a closed primitive.
func (k PathKind) Kind() (PrimitiveKind, bool) {
	switch k {
	case PathBox:
		return PrimBox, true
	case PathCircle:
		return PrimCircle, true
	case PathEllipse:
		return PrimEllipse, true
	default:
		return 0, false
	}
}

// Style is the snapshot of drawing attributes a path is painted with.
// Lengths are in user units.
type Style struct {
	Pen      bool
	PenColor Color

	Fill      bool
	FillColor Color
	FillRule  FillRule

	// LineWidth zero is the device hairline.
	LineWidth float64
	LineStyle LineStyle
	// Dash is nil for solid lines.
	Dash       *Dash
	Cap        CapStyle
	Join       JoinStyle
	MiterLimit float64
}

// Dashed reports whether the stroke has a dash pattern.
func (s *Style) Dashed() bool { return s.Dash.IsDashed() }

// Path is a path in user coordinates together with the transform and
// style it is painted with.
type Path struct {
	Kind PathKind

	// Start is the first point of a segment list, or the first corner of a box.
	Start    Point
	Segments []Segment
	Closed   bool

	// Corner is the corner of a box opposite Start.
	Corner Point
	// Center, RX, RY and Angle (degrees) describe circles and ellipses.
	Center Point
	RX, RY float64
	Angle  float64

	// Transform maps user coordinates to device coordinates.
	Transform Matrix
	Style     Style
}

// Last returns the current point of the path.
func (path *Path) Last() Point {
	if n := len(path.Segments); n > 0 {
		return path.Segments[n-1].P
	}
	return path.Start
}

// Empty reports whether a segment path has no segments.
func (path *Path) Empty() bool {
	return path.Kind == PathSegments && len(path.Segments) == 0
}

// IsLines reports whether the path consists of straight lines only.
func (path *Path) IsLines() bool {
	if path.Kind != PathSegments {
		return false
	}
	for _, s := range path.Segments {
		if s.Op != SegLine {
			return false
		}
	}
	return true
}

// Points returns the vertices of a straight-line path, start included.
func (path *Path) Points() []Point {
	pts := make([]Point, 0, len(path.Segments)+1)
	pts = append(pts, path.Start)
	for _, s := range path.Segments {
		pts = append(pts, s.P)
	}
	return pts
}

// DeviceLineWidth returns the stroke width in device units.
func (path *Path) DeviceLineWidth() float64 {
	return path.Style.LineWidth * path.Transform.UniformScale()
}

func (path *Path) clone() *Path {
	q := *path
	q.Segments = append([]Segment(nil), path.Segments...)
	q.Style.Dash = path.Style.Dash.Clone()
	return &q
}

// conic describes c + u*cos(t) + v*sin(t) for t in [t0, t0+sweep].
type conic struct {
	c, u, v   Point
	t0, sweep float64
}

func (k conic) at(t float64) Point {
	sin, cos := math.Sincos(t)
	return k.c.Add(k.u.Mul(cos)).Add(k.v.Mul(sin))
}

// ArcSweep returns the radius, start angle and signed sweep of a circular
// arc from start about c to end. The sweep is the shorter way round;
// a half turn is taken counterclockwise.
func ArcSweep(start, c, end Point) (r, a0, sweep float64) {
	u, w := start.Sub(c), end.Sub(c)
	r = u.Length()
	a0 = math.Atan2(u.Y, u.X)
	sweep = math.Atan2(w.Y, w.X) - a0
	for sweep <= -math.Pi {
		sweep += 2 * math.Pi
	}
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	if math.Abs(math.Abs(sweep)-math.Pi) < 1e-12 {
		sweep = math.Pi
	}
	return r, a0, sweep
}

func arcConic(start, c, end Point) conic {
	r, a0, sweep := ArcSweep(start, c, end)
	return conic{c: c, u: Pt(r, 0), v: Pt(0, r), t0: a0, sweep: sweep}
}

func ellArcConic(start, c, end Point) conic {
	return conic{c: c, u: start.Sub(c), v: end.Sub(c), sweep: math.Pi / 2}
}

func ellipseConic(c Point, rx, ry, angle float64) conic {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	return conic{
		c:     c,
		u:     Pt(rx*cos, rx*sin),
		v:     Pt(-ry*sin, ry*cos),
		sweep: 2 * math.Pi,
	}
}

// cubics approximates the conic by cubic Béziers of at most a quarter
// turn each. It returns control and end points, three per piece.
func (k conic) cubics() []Point {
	n := max(1, int(math.Ceil(math.Abs(k.sweep)/(math.Pi/2)-1e-9)))
	dt := k.sweep / float64(n)
	h := 4.0 / 3.0 * math.Tan(dt/4)
	deriv := func(t float64) Point {
		sin, cos := math.Sincos(t)
		return k.v.Mul(cos).Sub(k.u.Mul(sin))
	}
	pts := make([]Point, 0, 3*n)
	for i := range n {
		ta := k.t0 + dt*float64(i)
		tb := ta + dt
		pa, pb := k.at(ta), k.at(tb)
		pts = append(pts,
			pa.Add(deriv(ta).Mul(h)),
			pb.Sub(deriv(tb).Mul(h)),
			pb)
	}
	return pts
}

// ElemOp is the kind of an outline element.
type ElemOp uint8

const (
	ElemMoveTo ElemOp = iota
	ElemLineTo
	ElemQuadTo
	ElemCubeTo
	ElemClose
)

// Element is one outline command. Pts holds one point for MoveTo and
// LineTo, control and end for QuadTo, and two controls and end for CubeTo.
type Element struct {
	Op  ElemOp
	Pts [3]Point
}

// Elements converts the path to an outline of lines and Béziers mapped
// through m. Arcs, circles and ellipses become cubic Béziers, which stay
// exact under any affine map up to the quarter-turn approximation.
func (path *Path) Elements(m Matrix) []Element {
	var out []Element
	move := func(p Point) {
		out = append(out, Element{Op: ElemMoveTo, Pts: [3]Point{m.TransformPoint(p)}})
	}
	line := func(p Point) {
		out = append(out, Element{Op: ElemLineTo, Pts: [3]Point{m.TransformPoint(p)}})
	}
	cubics := func(k conic) {
		pts := k.cubics()
		for i := 0; i+2 < len(pts); i += 3 {
			out = append(out, Element{Op: ElemCubeTo, Pts: [3]Point{
				m.TransformPoint(pts[i]), m.TransformPoint(pts[i+1]), m.TransformPoint(pts[i+2]),
			}})
		}
	}

	switch path.Kind {
	case PathBox:
		p0, p1 := path.Start, path.Corner
		move(p0)
		line(Pt(p1.X, p0.Y))
		line(p1)
		line(Pt(p0.X, p1.Y))
		out = append(out, Element{Op: ElemClose})
	case PathCircle, PathEllipse:
		k := ellipseConic(path.Center, path.RX, path.RY, path.Angle)
		move(k.at(0))
		cubics(k)
		out = append(out, Element{Op: ElemClose})
	default:
		cur := path.Start
		move(cur)
		for _, s := range path.Segments {
			switch s.Op {
			case SegLine:
				line(s.P)
			case SegArc:
				cubics(arcConic(cur, s.C, s.P))
			case SegEllArc:
				cubics(ellArcConic(cur, s.C, s.P))
			case SegQuad:
				out = append(out, Element{Op: ElemQuadTo, Pts: [3]Point{
					m.TransformPoint(s.C), m.TransformPoint(s.P),
				}})
			case SegCubic:
				out = append(out, Element{Op: ElemCubeTo, Pts: [3]Point{
					m.TransformPoint(s.C), m.TransformPoint(s.D), m.TransformPoint(s.P),
				}})
			}
			cur = s.P
		}
		if path.Closed {
			out = append(out, Element{Op: ElemClose})
		}
	}
	return out
}
