package plot

import (
	"fmt"
	"math"
)

// Attribute setters end the path under construction before changing the
// drawing state, so that each path is painted with one set of attributes.

func (p *Plotter) setAttr(op string, fn func(s *DrawState)) error {
	return p.setAttrChecked(op, nil, fn)
}

// setAttrChecked is setAttr with an argument check that runs once the
// plotter is known to be open.
func (p *Plotter) setAttrChecked(op string, check func() error, fn func(s *DrawState)) error {
	if err := p.checkOpen(op); err != nil {
		return err
	}
	if check != nil {
		if err := check(); err != nil {
			return err
		}
	}
	if err := p.endPath(); err != nil {
		return err
	}
	fn(&p.state)
	return nil
}

// Space sets the user coordinate system so that (x0,y0) and (x1,y1) are
// the lower left and upper right corners of the normalized drawing space.
func (p *Plotter) Space(x0, y0, x1, y1 float64) error {
	check := func() error {
		if x0 == x1 || y0 == y1 {
			return fmt.Errorf("plot: degenerate space (%g,%g)-(%g,%g)", x0, y0, x1, y1)
		}
		return nil
	}
	return p.setAttrChecked("Space", check, func(s *DrawState) {
		s.Matrix = Scale(1/(x1-x0), 1/(y1-y0)).Multiply(Translate(-x0, -y0))
	})
}

// SetMatrix sets the user to normalized transform directly.
func (p *Plotter) SetMatrix(m Matrix) error {
	check := func() error {
		if m.Determinant() == 0 {
			return fmt.Errorf("plot: singular user transform %v", m)
		}
		return nil
	}
	return p.setAttrChecked("SetMatrix", check, func(s *DrawState) { s.Matrix = m })
}

// Matrix returns the user to normalized transform.
func (p *Plotter) Matrix() Matrix { return p.state.Matrix }

// LineWidth sets the stroke width in user units. Zero selects the thinnest
// line the device can draw; a negative width restores the default.
func (p *Plotter) LineWidth(w float64) error {
	return p.setAttr("LineWidth", func(s *DrawState) { s.LineWidth = w })
}

// LineStyle selects a predefined dash pattern and clears any explicit dash.
func (p *Plotter) LineStyle(ls LineStyle) error {
	return p.setAttr("LineStyle", func(s *DrawState) {
		s.LineStyle = ls
		s.Dash = nil
		s.DashOffset = 0
	})
}

// Dash sets an explicit dash pattern in user units. No lengths restores
// the line style pattern.
func (p *Plotter) Dash(offset float64, lengths ...float64) error {
	return p.setAttr("Dash", func(s *DrawState) {
		if d := NewDash(lengths...); d != nil {
			s.Dash = d.Array
		} else {
			s.Dash = nil
		}
		s.DashOffset = offset
	})
}

// CapStyle sets the line cap.
func (p *Plotter) CapStyle(c CapStyle) error {
	return p.setAttr("CapStyle", func(s *DrawState) { s.Cap = c })
}

// JoinStyle sets the line join.
func (p *Plotter) JoinStyle(j JoinStyle) error {
	return p.setAttr("JoinStyle", func(s *DrawState) { s.Join = j })
}

// MiterLimit sets the miter limit; values below 1 are clamped.
func (p *Plotter) MiterLimit(l float64) error {
	return p.setAttr("MiterLimit", func(s *DrawState) { s.MiterLimit = math.Max(1, l) })
}

// FillRule sets the fill rule for filled paths.
func (p *Plotter) FillRule(r FillRule) error {
	return p.setAttr("FillRule", func(s *DrawState) { s.FillRule = r })
}

// PenColor sets the stroke and text color.
func (p *Plotter) PenColor(c Color) error {
	return p.setAttr("PenColor", func(s *DrawState) { s.PenColor = p.MapColor(c) })
}

// PenColorName sets the pen color by name, see [ParseColor].
func (p *Plotter) PenColorName(name string) error {
	c, err := ParseColor(name)
	if err != nil {
		p.Warn(err.Error())
		return nil
	}
	return p.PenColor(c)
}

// FillColor sets the fill color.
func (p *Plotter) FillColor(c Color) error {
	return p.setAttr("FillColor", func(s *DrawState) { s.FillColor = p.MapColor(c) })
}

// FillColorName sets the fill color by name, see [ParseColor].
func (p *Plotter) FillColorName(name string) error {
	c, err := ParseColor(name)
	if err != nil {
		p.Warn(err.Error())
		return nil
	}
	return p.FillColor(c)
}

// FillType sets the fill level: 0 disables filling, 1 fills with the fill
// color and larger values up to FillMax blend it towards white.
func (p *Plotter) FillType(level int) error {
	if level < 0 || level > FillMax {
		level = 0
	}
	return p.setAttr("FillType", func(s *DrawState) { s.FillType = level })
}

// PenType enables (nonzero) or disables (0) stroking.
func (p *Plotter) PenType(t int) error {
	return p.setAttr("PenType", func(s *DrawState) { s.PenType = t })
}

// BgColor sets the color used by ErasePage. Backends without a settable
// background ignore it with a warning.
func (p *Plotter) BgColor(c Color) error {
	if err := p.checkOpen("BgColor"); err != nil {
		return err
	}
	if !p.desc.Caps.SettableBackground.Sure() {
		p.warnOnce("bgcolor", "background color cannot be set on this device")
		return nil
	}
	p.bg = p.MapColor(c)
	p.session.BgColorUnknown = true
	return nil
}

// FontName selects the font family used by labels.
func (p *Plotter) FontName(name string) error {
	return p.setAttr("FontName", func(s *DrawState) {
		s.FontName = name
		p.fontDirty = true
	})
}

// FontSize sets the font size in user units. Zero or negative restores
// the default size.
func (p *Plotter) FontSize(size float64) error {
	return p.setAttr("FontSize", func(s *DrawState) {
		s.FontSize = size
		p.fontDirty = true
	})
}

// TextAngle sets the label rotation in degrees, counterclockwise.
func (p *Plotter) TextAngle(deg float64) error {
	return p.setAttr("TextAngle", func(s *DrawState) { s.TextAngle = deg })
}

// PushState saves the drawing attributes.
func (p *Plotter) PushState() error {
	if err := p.checkOpen("PushState"); err != nil {
		return err
	}
	if err := p.endPath(); err != nil {
		return err
	}
	p.stack = append(p.stack, p.state.clone())
	p.callPushState()
	return nil
}

// PopState restores the attributes saved by the matching PushState.
// It is a no-op when nothing was saved.
func (p *Plotter) PopState() error {
	if err := p.checkOpen("PopState"); err != nil {
		return err
	}
	if len(p.stack) == 0 {
		return nil
	}
	if err := p.endPath(); err != nil {
		return err
	}
	p.callPopState()
	fontName, fontSize := p.state.FontName, p.state.FontSize
	p.state = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	if p.state.FontName != fontName || p.state.FontSize != fontSize {
		p.fontDirty = true
	}
	return nil
}
