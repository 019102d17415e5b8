package plot

import (
	"fmt"
	"math"
	"strings"
)

// LineStyle is one of the predefined dash patterns.
type LineStyle uint8

const (
	LineSolid LineStyle = iota
	LineDotted
	LineDotDashed
	LineShortDashed
	LineLongDashed
	LineDotDotDashed
	LineDotDotDotDashed
	// LineDisconnected draws only the vertices of a path.
	LineDisconnected
)

type lineStyleDef struct {
	name    string
	pattern []float64
}

// Patterns are in units of the line width.
var lineStyles = [...]lineStyleDef{
	LineSolid:           {"solid", nil},
	LineDotted:          {"dotted", []float64{1, 3}},
	LineDotDashed:       {"dotdashed", []float64{4, 3, 1, 3}},
	LineShortDashed:     {"shortdashed", []float64{4, 4}},
	LineLongDashed:      {"longdashed", []float64{7, 4}},
	LineDotDotDashed:    {"dotdotdashed", []float64{4, 3, 1, 3, 1, 3}},
	LineDotDotDotDashed: {"dotdotdotdashed", []float64{4, 3, 1, 3, 1, 3, 1, 3}},
	LineDisconnected:    {"disconnected", nil},
}

func (s LineStyle) String() string {
	if int(s) < len(lineStyles) {
		return lineStyles[s].name
	}
	return fmt.Sprintf("LineStyle(%d)", s)
}

// ParseLineStyle returns the line style with the given name.
func ParseLineStyle(name string) (LineStyle, error) {
	name = strings.ToLower(name)
	for i, d := range lineStyles {
		if d.name == name {
			return LineStyle(i), nil
		}
	}
	return LineSolid, fmt.Errorf("plot: unknown line style %q", name)
}

// FillRule selects how the interior of a self-intersecting path is found.
type FillRule uint8

const (
	FillOddEven FillRule = iota
	FillNonZero
)

func (r FillRule) String() string {
	if r == FillNonZero {
		return "nonzero"
	}
	return "even-odd"
}

// CapStyle is the shape of open line ends.
type CapStyle uint8

const (
	CapButt CapStyle = iota
	CapRound
	CapSquare
)

// JoinStyle is the shape of line joins.
type JoinStyle uint8

const (
	JoinMiter JoinStyle = iota
	JoinRound
	JoinBevel
)

// Default sizes as fractions of the normalized drawing space.
const (
	defaultLineWidthNDC = 1.0 / 850
	defaultFontSizeNDC  = 1.0 / 50
	minDashUnitNDC      = 1.0 / 576
)

// FillMax is the largest fill level; it yields white.
const FillMax = 0xffff

// DrawState holds the user-level drawing attributes. PushState saves a copy
// and PopState restores it.
type DrawState struct {
	// Pos is the current point in user coordinates.
	Pos Point
	// Matrix maps user coordinates to normalized coordinates.
	Matrix Matrix

	// LineWidth is in user units; zero requests the device hairline.
	// A negative value selects the default width.
	LineWidth  float64
	LineStyle  LineStyle
	Dash       []float64
	DashOffset float64
	Cap        CapStyle
	Join       JoinStyle
	MiterLimit float64
	FillRule   FillRule

	// PenType 0 disables stroking. FillType 0 disables filling; levels
	// 1..FillMax blend the fill color from full strength towards white.
	PenType   int
	FillType  int
	PenColor  Color
	FillColor Color

	FontName string
	// FontSize is in user units; zero or negative selects the default.
	FontSize float64
	// TextAngle is the label rotation in degrees, counterclockwise.
	TextAngle float64
}

func defaultDrawState(family string) DrawState {
	return DrawState{
		Matrix:     Identity(),
		LineWidth:  -1,
		MiterLimit: 10.43,
		PenType:    1,
		PenColor:   Black,
		FillColor:  Black,
		FontName:   family,
		FontSize:   -1,
	}
}

func (s DrawState) clone() DrawState {
	if s.Dash != nil {
		s.Dash = append([]float64(nil), s.Dash...)
	}
	return s
}

// userPerNDC is the user-space length of one normalized unit.
func (s *DrawState) userPerNDC() float64 {
	k := s.Matrix.UniformScale()
	if k == 0 {
		return 1
	}
	return 1 / k
}

// EffectiveLineWidth resolves the default line width to user units.
func (s *DrawState) EffectiveLineWidth() float64 {
	if s.LineWidth < 0 {
		return defaultLineWidthNDC * s.userPerNDC()
	}
	return s.LineWidth
}

// EffectiveFontSize resolves the default font size to user units.
func (s *DrawState) EffectiveFontSize() float64 {
	if s.FontSize <= 0 {
		return defaultFontSizeNDC * s.userPerNDC()
	}
	return s.FontSize
}

// dashPattern returns the dash array in user units, or nil for solid lines.
// An explicit Dash takes precedence over LineStyle.
func (s *DrawState) dashPattern() ([]float64, float64) {
	if len(s.Dash) > 0 {
		return append([]float64(nil), s.Dash...), s.DashOffset
	}
	pat := lineStyles[s.LineStyle].pattern
	if pat == nil {
		return nil, 0
	}
	unit := math.Max(s.EffectiveLineWidth(), minDashUnitNDC*s.userPerNDC())
	out := make([]float64, len(pat))
	for i, v := range pat {
		out[i] = v * unit
	}
	return out, 0
}

// fillColor applies the fill level to the fill color.
func (s *DrawState) fillColor() Color {
	if s.FillType <= 1 {
		return s.FillColor
	}
	t := float64(min(s.FillType, FillMax)-1) / float64(FillMax-1)
	mix := func(v uint16) uint16 {
		return uint16(float64(v) + (0xffff-float64(v))*t + 0.5)
	}
	return Color{R: mix(s.FillColor.R), G: mix(s.FillColor.G), B: mix(s.FillColor.B)}
}
