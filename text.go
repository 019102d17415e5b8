package plot

import (
	"math"
	"strings"

	"github.com/gogpu/plot/internal/fonts"
)

// HJust is the horizontal justification of a label about the cursor.
type HJust uint8

const (
	HLeft HJust = iota
	HCenter
	HRight
)

// frac returns the fraction of the label width left of the cursor.
func (h HJust) frac() float64 {
	switch h {
	case HCenter:
		return 0.5
	case HRight:
		return 1
	default:
		return 0
	}
}

// VJust is the vertical justification of a label about the cursor.
type VJust uint8

const (
	VBaseline VJust = iota
	VBottom
	VCenter
	VCapLine
	VTop
)

// offset returns the baseline shift, in text space, that puts the
// requested line of the font on the cursor.
func (v VJust) offset(m fonts.Metrics) float64 {
	switch v {
	case VBottom:
		return m.Descent
	case VCenter:
		return -(m.Ascent - m.Descent) / 2
	case VCapLine:
		return -m.CapHeight
	case VTop:
		return -m.Ascent
	default:
		return 0
	}
}

// Label draws s left-justified on the baseline at the cursor and moves the
// cursor to the end of the label. See AlignedLabel for escape sequences.
func (p *Plotter) Label(s string) error {
	return p.AlignedLabel(HLeft, VBaseline, s)
}

// AlignedLabel draws s justified about the cursor. The cursor moves along
// the text direction by the part of the label right of it.
//
// Labels may contain escapes: \\ for a backslash, \sp ... \ep for
// superscript, \sb ... \eb for subscript, and \fR, \fB, \fI to switch to
// the regular, bold or italic member of the font family.
func (p *Plotter) AlignedLabel(h HJust, v VJust, s string) error {
	if err := p.checkOpen("Label"); err != nil {
		return err
	}
	if err := p.endPath(); err != nil {
		return err
	}
	if s == "" || p.state.PenType == 0 {
		return nil
	}
	p.ensureFont()

	start := p.state.Pos
	var (
		width float64
		err   error
	)
	switch {
	case !strings.Contains(s, `\`):
		width, err = p.paintTextRun(s, h, v)
	case p.desc.Caps.EscapedStrings.Sure():
		width, err = p.callPaintTextWithEscapes(s, h, v)
	default:
		width, err = Generic.PaintTextWithEscapes(p, s, h, v)
	}
	if err != nil {
		return p.fail("Label", err)
	}
	p.state.Pos = start.Add(p.textDir().Mul(width * (1 - h.frac())))
	return p.flushRealTime()
}

// LabelWidth returns the width of s in user units without drawing it.
func (p *Plotter) LabelWidth(s string) (float64, error) {
	if err := p.checkOpen("LabelWidth"); err != nil {
		return 0, err
	}
	p.ensureFont()
	if !strings.Contains(s, `\`) {
		return p.callTextWidth(s), nil
	}
	var w float64
	p.eachRun(parseEscapes(s), func(r textRun) {
		w += p.callTextWidth(r.text)
	})
	return w, nil
}

func (p *Plotter) ensureFont() {
	if !p.fontDirty {
		return
	}
	p.fontDirty = false
	p.fontNative = p.callRetrieveFont()
	if p.session != nil {
		p.session.FontUnknown = true
	}
}

// textDir returns the unit vector along the text baseline in user space.
func (p *Plotter) textDir() Point {
	sin, cos := math.Sincos(p.state.TextAngle * math.Pi / 180)
	return Pt(cos, sin)
}

// outlineText reports whether labels are drawn as glyph outlines.
func (p *Plotter) outlineText() bool {
	return p.desc.DefaultFont == FontOutline ||
		!p.desc.Caps.FontFamilies.Sure() ||
		!p.fontNative
}

// paintTextRun draws a label without escapes and returns its width.
func (p *Plotter) paintTextRun(s string, h HJust, v VJust) (float64, error) {
	if p.outlineText() {
		return Generic.PaintText(p, s, h, v)
	}

	saved := p.state.Pos
	defer func() { p.state.Pos = saved }()

	dir := p.textDir()
	perp := Pt(-dir.Y, dir.X)
	if h != HLeft && !p.desc.HorizontalJustification {
		w := p.callTextWidth(s)
		p.state.Pos = p.state.Pos.Sub(dir.Mul(w * h.frac()))
		h = HLeft
	}
	if v != VBaseline && !p.desc.VerticalJustification {
		m := p.FontFace().Metrics(p.state.EffectiveFontSize())
		p.state.Pos = p.state.Pos.Add(perp.Mul(v.offset(m)))
		v = VBaseline
	}
	return p.callPaintText(s, h, v)
}

// textRun is a piece of an escaped label drawn in one font.
type textRun struct {
	text string
	// style applies when styled is set; otherwise the current face is used.
	style  fonts.Style
	styled bool
	// size scales the font size; rise is the baseline shift in units of
	// the nominal font size.
	size float64
	rise float64
}

// Superscripts and subscripts are drawn smaller and shifted.
const (
	scriptScale = 0.6
	scriptRise  = 0.45
	scriptDrop  = 0.25
)

// parseEscapes splits a label into runs. Unknown escapes are drawn as is.
func parseEscapes(s string) []textRun {
	type level struct{ size, rise float64 }
	stack := []level{{size: 1}}
	style, styled := fonts.Regular, false

	var runs []textRun
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		top := stack[len(stack)-1]
		runs = append(runs, textRun{text: b.String(), style: style, styled: styled, size: top.size, rise: top.rise})
		b.Reset()
	}

	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		if s[i+1] == '\\' {
			b.WriteByte('\\')
			i++
			continue
		}
		if i+2 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		top := stack[len(stack)-1]
		switch code := s[i+1 : i+3]; code {
		case "sp":
			flush()
			stack = append(stack, level{size: top.size * scriptScale, rise: top.rise + scriptRise*top.size})
		case "sb":
			flush()
			stack = append(stack, level{size: top.size * scriptScale, rise: top.rise - scriptDrop*top.size})
		case "ep", "eb":
			flush()
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case "fR":
			flush()
			style, styled = fonts.Regular, true
		case "fB":
			flush()
			if style == fonts.Italic || style == fonts.BoldItalic {
				style = fonts.BoldItalic
			} else {
				style = fonts.Bold
			}
			styled = true
		case "fI":
			flush()
			if style == fonts.Bold || style == fonts.BoldItalic {
				style = fonts.BoldItalic
			} else {
				style = fonts.Italic
			}
			styled = true
		default:
			b.WriteByte(s[i])
			continue
		}
		i += 2
	}
	flush()
	return runs
}

// eachRun calls fn for each run with the font size and face of the run
// installed, restoring them afterwards.
func (p *Plotter) eachRun(runs []textRun, fn func(r textRun)) {
	base := p.state.EffectiveFontSize()
	savedSize, savedFace := p.state.FontSize, p.face
	defer func() {
		p.state.FontSize, p.face = savedSize, savedFace
	}()
	for _, r := range runs {
		p.state.FontSize = base * r.size
		p.face = savedFace
		if r.styled && savedFace != nil {
			p.face = savedFace.WithStyle(r.style)
		}
		fn(r)
	}
}
