package plot

import (
	"io"
	"log/slog"

	"github.com/gogpu/plot/internal/fonts"
)

// The methods below are the view of a plotter that backend drivers use.

// Out returns the buffered output stream. Drivers write their encoded
// output here; the flush-output operation flushes it.
func (p *Plotter) Out() io.Writer { return p.out }

// Driver returns the backend driver, or nil once the plotter is destroyed.
func (p *Plotter) Driver() Driver { return p.drv }

// Descriptor returns the backend descriptor.
func (p *Plotter) Descriptor() Descriptor { return p.desc }

// Geometry returns the session device geometry.
func (p *Plotter) Geometry() DeviceGeometry { return p.geom }

// DeviceMatrix returns the map from normalized to device coordinates.
func (p *Plotter) DeviceMatrix() Matrix { return p.devMap }

// UserToDevice returns the map from user to device coordinates.
func (p *Plotter) UserToDevice() Matrix { return p.devMap.Multiply(p.state.Matrix) }

// ToDevice maps a user-space point to device coordinates.
func (p *Plotter) ToDevice(pt Point) Point { return p.UserToDevice().TransformPoint(pt) }

// State returns the current drawing attributes. Drivers must treat the
// result as read-only.
func (p *Plotter) State() *DrawState { return &p.state }

// Session returns the state of the open page, or nil between pages.
func (p *Plotter) Session() *SessionState { return p.session }

// Background returns the current background color.
func (p *Plotter) Background() Color { return p.bg }

// PageSize returns the resolved PAGESIZE parameter.
func (p *Plotter) PageSize() PageSize { return p.page }

// BitmapSize returns the pixel size for bitmap backends.
func (p *Plotter) BitmapSize() (w, h int) { return p.bitmapW, p.bitmapH }

// Logger returns the plotter's logger.
func (p *Plotter) Logger() *slog.Logger { return p.log }

// FontFace returns the face selected by the last retrieve-font operation.
func (p *Plotter) FontFace() *fonts.Face {
	if p.face == nil {
		return fonts.Default()
	}
	return p.face
}

// SetFontFace installs the face found by a backend's retrieve-font.
func (p *Plotter) SetFontFace(f *fonts.Face) { p.face = f }

// MapColor applies color emulation.
func (p *Plotter) MapColor(c Color) Color {
	if p.params.EmulateColor {
		return c.Gray()
	}
	return c
}

// Warn reports a non-fatal problem through the warning operation.
func (p *Plotter) Warn(msg string) { p.callWarning(msg) }

// Tolerance returns the chord error allowed when flattening curves, in
// device units.
func (p *Plotter) Tolerance() float64 {
	if p.geom.Coords == CoordsInteger {
		return 0.25
	}
	return 1e-4 * p.geom.DeviceBox().Diagonal()
}
