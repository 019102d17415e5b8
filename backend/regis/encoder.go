package regis

import (
	"fmt"
	"math"

	"github.com/gogpu/plot"
)

type ipoint struct{ x, y int }

// encoder writes ReGIS commands for one primitive, skipping position,
// color and pattern commands the terminal already has. The first write
// error is kept and later writes are dropped.
type encoder struct {
	p   *plot.Plotter
	s   *plot.SessionState
	err error
}

func newEncoder(p *plot.Plotter) *encoder {
	return &encoder{p: p, s: p.Session()}
}

func (e *encoder) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.p.Out(), format, args...)
}

func (e *encoder) newline() { e.printf("\n") }

// device maps a user point to the pixel grid.
func (e *encoder) device(m plot.Matrix, pt plot.Point) ipoint {
	d := m.TransformPoint(pt)
	return ipoint{int(math.Round(d.X)), int(math.Round(d.Y))}
}

func (e *encoder) moveTo(pt ipoint) {
	if !e.s.PosUnknown && e.s.Pos == plot.Pt(float64(pt.x), float64(pt.y)) {
		return
	}
	e.printf("P[%d,%d]", pt.x, pt.y)
	e.setPos(pt)
}

func (e *encoder) vectorTo(pt ipoint) {
	e.printf("V[%d,%d]", pt.x, pt.y)
	e.setPos(pt)
}

func (e *encoder) setPos(pt ipoint) {
	e.s.Pos = plot.Pt(float64(pt.x), float64(pt.y))
	e.s.PosUnknown = false
}

func (e *encoder) penColor(c plot.Color) {
	i := paletteIndex(e.p.MapColor(c))
	if !e.s.PenColorUnknown && e.s.PenColor == palette[i].color {
		return
	}
	e.printf("W(I(%c))", palette[i].code)
	e.s.PenColor = palette[i].color
	e.s.PenColorUnknown = false
}

func (e *encoder) lineSolid() {
	if !e.s.LineStyleUnknown && e.s.LineStyle == plot.LineSolid {
		return
	}
	e.printf("W(P1)")
	e.s.LineStyle = plot.LineSolid
	e.s.LineStyleUnknown = false
}

// The eight ReGIS colors, indexed by r<<2 | g<<1 | b of the thresholded
// color components.
var palette = [8]struct {
	code  byte
	color plot.Color
}{
	{'D', plot.Black},
	{'B', plot.Color{B: 0xffff}},
	{'G', plot.Color{G: 0xffff}},
	{'C', plot.Color{G: 0xffff, B: 0xffff}},
	{'R', plot.Color{R: 0xffff}},
	{'M', plot.Color{R: 0xffff, B: 0xffff}},
	{'Y', plot.Color{R: 0xffff, G: 0xffff}},
	{'W', plot.White},
}

func paletteIndex(c plot.Color) int {
	bit := func(v uint16) int {
		if v >= 0x8000 {
			return 1
		}
		return 0
	}
	return bit(c.R)<<2 | bit(c.G)<<1 | bit(c.B)
}
