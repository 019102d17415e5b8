package png

import (
	"image"
	"math"

	"github.com/gogpu/plot"
)

// polyline is a stroked subpath in raster coordinates.
type polyline struct {
	pts    []plot.Point
	closed bool
}

// polylines splits an outline into subpaths, flattening curves by uniform
// subdivision fine enough for tol.
func polylines(elems []plot.Element, tol float64) []polyline {
	var (
		out []polyline
		cur *polyline
	)
	last := func() plot.Point { return cur.pts[len(cur.pts)-1] }
	for _, e := range elems {
		switch e.Op {
		case plot.ElemMoveTo:
			out = append(out, polyline{pts: []plot.Point{e.Pts[0]}})
			cur = &out[len(out)-1]
		case plot.ElemLineTo:
			cur.pts = append(cur.pts, e.Pts[0])
		case plot.ElemQuadTo:
			p0 := last()
			n := steps(p0.Distance(e.Pts[0])+e.Pts[0].Distance(e.Pts[1]), tol)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				a, b := p0.Lerp(e.Pts[0], t), e.Pts[0].Lerp(e.Pts[1], t)
				cur.pts = append(cur.pts, a.Lerp(b, t))
			}
		case plot.ElemCubeTo:
			p0 := last()
			n := steps(p0.Distance(e.Pts[0])+e.Pts[0].Distance(e.Pts[1])+e.Pts[1].Distance(e.Pts[2]), tol)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				a, b, c := p0.Lerp(e.Pts[0], t), e.Pts[0].Lerp(e.Pts[1], t), e.Pts[1].Lerp(e.Pts[2], t)
				ab, bc := a.Lerp(b, t), b.Lerp(c, t)
				cur.pts = append(cur.pts, ab.Lerp(bc, t))
			}
		case plot.ElemClose:
			cur.closed = true
		}
	}
	return out
}

func steps(length, tol float64) int {
	n := int(math.Ceil(math.Sqrt(length / (8 * tol))))
	return min(max(n, 1), 256)
}

// stroke draws line with the given device width. Every segment is drawn
// as its own quadrilateral, so overlapping pieces never cancel under the
// nonzero rule.
func (d *Driver) stroke(line polyline, width float64, st *plot.Style, src image.Image) {
	pts := line.pts
	if line.closed && len(pts) > 1 && pts[0] != pts[len(pts)-1] {
		pts = append(pts, pts[0])
	}
	hw := width / 2
	if len(pts) == 1 {
		d.disc(pts[0], hw, src)
		return
	}
	round := width > 2 && (st.Join == plot.JoinRound || st.Cap == plot.CapRound)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		dir := b.Sub(a)
		l := dir.Length()
		if l == 0 {
			continue
		}
		dir = dir.Mul(1 / l)
		if st.Cap == plot.CapSquare && !line.closed {
			if i == 1 {
				a = a.Sub(dir.Mul(hw))
			}
			if i == len(pts)-1 {
				b = b.Add(dir.Mul(hw))
			}
		}
		n := plot.Pt(-dir.Y, dir.X).Mul(hw)
		d.polygon(src, a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
	}
	if round {
		for _, pt := range pts {
			d.disc(pt, hw, src)
		}
	}
}

// disc draws a filled circle of radius r.
func (d *Driver) disc(c plot.Point, r float64, src image.Image) {
	const n = 16
	pts := make([]plot.Point, n)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / n)
		pts[i] = plot.Pt(c.X+r*cos, c.Y+r*sin)
	}
	d.polygon(src, pts...)
}

func (d *Driver) polygon(src image.Image, pts ...plot.Point) {
	b := d.img.Bounds()
	d.r.Reset(b.Dx(), b.Dy())
	d.r.MoveTo(f32(pts[0]))
	for _, pt := range pts[1:] {
		d.r.LineTo(f32(pt))
	}
	d.r.ClosePath()
	d.r.Draw(d.img, b, src, image.Point{})
}
