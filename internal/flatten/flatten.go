// Package flatten approximates curved primitives by polylines whose
// distance from the true curve stays below a tolerance.
package flatten

import "math"

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Lerp returns the point at t along p->q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// maxDepth bounds the recursion of the Bézier subdividers.
const maxDepth = 16

// maxConicSteps bounds the number of chords used for one conic arc.
const maxConicSteps = 4096

// Quad flattens the quadratic Bézier p0,p1,p2. The returned points
// exclude p0 and end with p2.
func Quad(p0, p1, p2 Point, tolerance float64) []Point {
	var points []Point
	quadRec(p0, p1, p2, tolerance, 0, &points)
	return points
}

func quadRec(p0, p1, p2 Point, tolerance float64, depth int, points *[]Point) {
	// The curve lies within half the control point's distance to the chord.
	if depth >= maxDepth || distanceToLine(p1, p0, p2)/2 < tolerance {
		*points = append(*points, p2)
		return
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)

	quadRec(p0, q0, q2, tolerance, depth+1, points)
	quadRec(q2, q1, p2, tolerance, depth+1, points)
}

// Cubic flattens the cubic Bézier p0..p3. The returned points exclude p0
// and end with p3.
func Cubic(p0, p1, p2, p3 Point, tolerance float64) []Point {
	var points []Point
	cubicRec(p0, p1, p2, p3, tolerance, 0, &points)
	return points
}

func cubicRec(p0, p1, p2, p3 Point, tolerance float64, depth int, points *[]Point) {
	d1 := distanceToLine(p1, p0, p3)
	d2 := distanceToLine(p2, p0, p3)
	// 3/4 of the control polygon distance bounds the curve distance.
	if depth >= maxDepth || 0.75*math.Max(d1, d2) < tolerance {
		*points = append(*points, p3)
		return
	}

	// Subdivide the curve using de Casteljau's algorithm
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	cubicRec(p0, q0, r0, s, tolerance, depth+1, points)
	cubicRec(s, r1, q2, p3, tolerance, depth+1, points)
}

// Conic flattens the arc c + u*cos(t) + v*sin(t) for t in [t0, t1].
// Circles, ellipses and their images under any affine map have this form,
// with u and v conjugate radii. The returned points exclude the start
// and end exactly at t1.
func Conic(c, u, v Point, t0, t1, tolerance float64) []Point {
	n := ConicSteps(u, v, t1-t0, tolerance)
	points := make([]Point, 0, n)
	for i := 1; i <= n; i++ {
		t := t0 + (t1-t0)*float64(i)/float64(n)
		points = append(points, conicAt(c, u, v, t))
	}
	return points
}

// ConicSteps returns the number of equal-angle chords needed to keep the
// chord error of a conic arc with conjugate radii u, v and the given
// sweep below tolerance.
func ConicSteps(u, v Point, sweep, tolerance float64) int {
	// For conjugate radii, a² + b² = |u|² + |v|², which bounds the
	// semi-major axis a from above.
	r := math.Sqrt(u.Dot(u) + v.Dot(v))
	sweep = math.Abs(sweep)
	if r == 0 || sweep == 0 {
		return 1
	}
	if tolerance <= 0 || tolerance >= r {
		return max(1, int(math.Ceil(sweep/(math.Pi/2))))
	}
	step := 2 * math.Acos(1-tolerance/r)
	n := int(math.Ceil(sweep / step))
	return min(max(n, 1), maxConicSteps)
}

func conicAt(c, u, v Point, t float64) Point {
	sin, cos := math.Sincos(t)
	return c.Add(u.Mul(cos)).Add(v.Mul(sin))
}

// distanceToLine calculates the perpendicular distance from point p to line segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	// Vector from a to b
	ab := b.Sub(a)
	abLen := ab.Length()

	if abLen < 1e-10 {
		// Line segment is a point
		return p.Distance(a)
	}

	// Project p onto the line
	ap := p.Sub(a)
	t := ap.Dot(ab) / (abLen * abLen)

	if t < 0 {
		return p.Distance(a)
	}
	if t > 1 {
		return p.Distance(b)
	}

	closest := a.Add(ab.Mul(t))
	return p.Distance(closest)
}
