package plot

import "math"

// Marker selects a marker symbol.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerDot
	MarkerPlus
	MarkerAsterisk
	MarkerCircle
	MarkerCross
	MarkerSquare
	MarkerTriangle
	MarkerDiamond
	MarkerStar
	MarkerInvertedTriangle
)

// Filled markers.
const (
	MarkerFilledCircle Marker = iota + 16
	MarkerFilledSquare
	MarkerFilledTriangle
	MarkerFilledDiamond
)

// Marker draws marker m centred on (x, y) with the given size in user
// units, and moves the cursor there. Markers are always drawn with solid
// lines in the pen color.
func (p *Plotter) Marker(x, y float64, m Marker, size float64) error {
	if err := p.checkOpen("Marker"); err != nil {
		return err
	}
	if err := p.endPath(); err != nil {
		return err
	}
	at := Pt(x, y)
	p.state.Pos = at
	if m == MarkerNone || p.state.PenType == 0 {
		return nil
	}
	ok, err := p.callPaintMarker(at, m, size)
	if err == nil && !ok {
		err = p.paintMarkerPaths(at, m, size)
	}
	if err != nil {
		return p.fail("Marker", err)
	}
	return p.flushRealTime()
}

// paintMarkerPaths draws a marker as ordinary paths.
func (p *Plotter) paintMarkerPaths(at Point, m Marker, size float64) error {
	if m == MarkerDot {
		return p.callPaintPoint(at)
	}
	paths, filled := markerPaths(at, m, size/2)
	for _, path := range paths {
		p.snapshot(path)
		st := &path.Style
		st.Pen = true
		st.Dash = nil
		st.LineStyle = LineSolid
		st.Fill = filled
		st.FillColor = st.PenColor
		st.FillRule = FillNonZero
		if err := p.paintPath(path); err != nil {
			return err
		}
	}
	return nil
}

// markerPaths returns the outline of marker m with half-size r, and
// whether it is filled. Unknown markers draw as a cross.
func markerPaths(at Point, m Marker, r float64) ([]*Path, bool) {
	line := func(a, b Point) *Path {
		return &Path{Kind: PathSegments, Start: at.Add(a), Segments: []Segment{{Op: SegLine, P: at.Add(b)}}}
	}
	poly := func(pts ...Point) *Path {
		path := &Path{Kind: PathSegments, Start: at.Add(pts[0]), Closed: true}
		for _, pt := range pts[1:] {
			path.Segments = append(path.Segments, Segment{Op: SegLine, P: at.Add(pt)})
		}
		return path
	}
	circle := func() *Path {
		return &Path{Kind: PathCircle, Center: at, RX: r, RY: r, Closed: true}
	}
	square := func() *Path {
		return &Path{Kind: PathBox, Start: at.Add(Pt(-r, -r)), Corner: at.Add(Pt(r, r)), Closed: true}
	}
	// Equilateral triangle inscribed in the circle of radius r.
	tri := func(dir float64) *Path {
		h := r * math.Sqrt(3) / 2
		return poly(Pt(0, dir*r), Pt(-h, -dir*r/2), Pt(h, -dir*r/2))
	}
	diamond := func() *Path {
		return poly(Pt(0, r), Pt(-r, 0), Pt(0, -r), Pt(r, 0))
	}
	d := r / math.Sqrt2

	switch m {
	case MarkerPlus:
		return []*Path{line(Pt(-r, 0), Pt(r, 0)), line(Pt(0, -r), Pt(0, r))}, false
	case MarkerAsterisk:
		return []*Path{
			line(Pt(-r, 0), Pt(r, 0)), line(Pt(0, -r), Pt(0, r)),
			line(Pt(-d, -d), Pt(d, d)), line(Pt(-d, d), Pt(d, -d)),
		}, false
	case MarkerCircle:
		return []*Path{circle()}, false
	case MarkerSquare:
		return []*Path{square()}, false
	case MarkerTriangle:
		return []*Path{tri(1)}, false
	case MarkerDiamond:
		return []*Path{diamond()}, false
	case MarkerStar:
		var pts []Point
		for i := range 10 {
			rad := r
			if i%2 == 1 {
				rad = r * 0.382
			}
			a := math.Pi/2 + float64(i)*math.Pi/5
			pts = append(pts, Pt(rad*math.Cos(a), rad*math.Sin(a)))
		}
		return []*Path{poly(pts...)}, false
	case MarkerInvertedTriangle:
		return []*Path{tri(-1)}, false
	case MarkerFilledCircle:
		return []*Path{circle()}, true
	case MarkerFilledSquare:
		return []*Path{square()}, true
	case MarkerFilledTriangle:
		return []*Path{tri(1)}, true
	case MarkerFilledDiamond:
		return []*Path{diamond()}, true
	default:
		return []*Path{line(Pt(-d, -d), Pt(d, d)), line(Pt(-d, d), Pt(d, -d))}, false
	}
}
