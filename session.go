package plot

// SessionState is the per-page device state a backend caches between
// primitives. Each cached value has an unknown flag; while it is set the
// backend must re-emit the value before relying on it.
//
// A new SessionState is created by BeginPage with every flag set and is
// dropped at EndPage.
type SessionState struct {
	// Page is the zero-based index of the page within the plotter.
	Page int

	// Pos is the device position of the output cursor.
	Pos        Point
	PosUnknown bool

	LineStyle        LineStyle
	LineStyleUnknown bool

	LineWidth        float64
	LineWidthUnknown bool

	PenColor        Color
	PenColorUnknown bool

	FillColor        Color
	FillColorUnknown bool

	BgColor        Color
	BgColorUnknown bool

	FontUnknown bool

	// Data holds backend-private page state.
	Data any
}

func newSessionState(page int) *SessionState {
	s := &SessionState{Page: page}
	s.Invalidate()
	return s
}

// Invalidate marks every cached value unknown.
func (s *SessionState) Invalidate() {
	s.PosUnknown = true
	s.LineStyleUnknown = true
	s.LineWidthUnknown = true
	s.PenColorUnknown = true
	s.FillColorUnknown = true
	s.BgColorUnknown = true
	s.FontUnknown = true
}
