package fonts

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// shaperPool pools HarfbuzzShaper instances, which are not safe for
// concurrent use.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// Point is a position in text space: x along the baseline, y upwards.
type Point struct {
	X, Y float64
}

// Glyph is a shaped glyph positioned relative to the text origin.
type Glyph struct {
	ID      sfnt.GlyphIndex
	X, Y    float64
	Advance float64
}

// Shape lays out s on a horizontal baseline at the given size.
// The text is normalized to NFC first.
func (f *Face) Shape(s string, size float64) []Glyph {
	runes := []rune(norm.NFC.String(s))
	if len(runes) == 0 {
		return nil
	}

	// Shape at one unit per font unit, then scale in floating point so
	// that small user-space sizes keep their precision.
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f.gt),
		Size:      fixed.Int26_6(f.upem * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	shaperPool.Put(hb)

	k := size / f.upem
	glyphs := make([]Glyph, len(out.Glyphs))
	var x float64
	for i, g := range out.Glyphs {
		adv := fixedToFloat(g.Advance) * k
		glyphs[i] = Glyph{
			ID:      sfnt.GlyphIndex(g.GlyphID),
			X:       x + fixedToFloat(g.XOffset)*k,
			Y:       fixedToFloat(g.YOffset) * k,
			Advance: adv,
		}
		x += adv
	}
	return glyphs
}

// Width returns the advance width of s at the given size.
func (f *Face) Width(s string, size float64) float64 {
	var w float64
	for _, g := range f.Shape(s, size) {
		w += g.Advance
	}
	return w
}

// Metrics returns the vertical metrics at the given size.
func (f *Face) Metrics(size float64) Metrics {
	var buf sfnt.Buffer
	m, err := f.sf.Metrics(&buf, fixed.Int26_6(f.upem*64), xfont.HintingNone)
	if err != nil {
		return Metrics{Ascent: 0.8 * size, Descent: 0.2 * size, CapHeight: 0.7 * size}
	}
	k := size / f.upem
	return Metrics{
		Ascent:    fixedToFloat(m.Ascent) * k,
		Descent:   fixedToFloat(m.Descent) * k,
		CapHeight: fixedToFloat(m.CapHeight) * k,
	}
}

// SegmentOp is the kind of an outline segment.
type SegmentOp uint8

const (
	MoveTo SegmentOp = iota
	LineTo
	QuadTo
	CubeTo
)

// Segment is one outline command. Args holds one point for MoveTo and
// LineTo, control and end for QuadTo, two controls and end for CubeTo.
type Segment struct {
	Op   SegmentOp
	Args [3]Point
}

// Outline returns the glyph outlines of s laid out from the origin at the
// given size, y upwards, and the total advance.
func (f *Face) Outline(s string, size float64) ([]Segment, float64) {
	var (
		buf     sfnt.Buffer
		segs    []Segment
		advance float64
	)
	k := size / f.upem
	ppem := fixed.Int26_6(f.upem * 64)
	for _, g := range f.Shape(s, size) {
		advance = g.X + g.Advance
		raw, err := f.sf.LoadGlyph(&buf, g.ID, ppem, nil)
		if err != nil {
			continue
		}
		for _, seg := range raw {
			out := Segment{}
			n := 1
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				out.Op = MoveTo
			case sfnt.SegmentOpLineTo:
				out.Op = LineTo
			case sfnt.SegmentOpQuadTo:
				out.Op, n = QuadTo, 2
			case sfnt.SegmentOpCubeTo:
				out.Op, n = CubeTo, 3
			}
			for i := 0; i < n; i++ {
				// sfnt uses y down.
				out.Args[i] = Point{
					X: g.X + fixedToFloat(seg.Args[i].X)*k,
					Y: g.Y - fixedToFloat(seg.Args[i].Y)*k,
				}
			}
			segs = append(segs, out)
		}
	}
	return segs, advance
}

// detectScript returns the script of the first non-space character.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
