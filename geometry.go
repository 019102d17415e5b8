package plot

import (
	"errors"
	"fmt"
	"math"
)

// CoordKind is the numeric representation of device coordinates.
type CoordKind uint8

const (
	// CoordsInteger devices address pixel centres with integers.
	CoordsInteger CoordKind = iota + 1
	// CoordsReal devices accept arbitrary real coordinates.
	CoordsReal
)

// roundingFuzz keeps rounded integer coordinates inside the declared range.
const roundingFuzz = 1e-7

// Box is an axis-aligned bounding box. The bounds of an axis may be given
// in either order: XMin > XMax expresses a flipped x axis.
type Box struct {
	XMin, XMax float64
	YMin, YMax float64
}

// UnitBox is the normalized drawing space.
var UnitBox = Box{XMin: 0, XMax: 1, YMin: 0, YMax: 1}

// FlippedX reports whether the x bounds are in descending order.
func (b Box) FlippedX() bool { return b.XMin > b.XMax }

// FlippedY reports whether the y bounds are in descending order.
func (b Box) FlippedY() bool { return b.YMin > b.YMax }

// Width returns the unsigned width of the box.
func (b Box) Width() float64 { return math.Abs(b.XMax - b.XMin) }

// Height returns the unsigned height of the box.
func (b Box) Height() float64 { return math.Abs(b.YMax - b.YMin) }

// Diagonal returns the length of the box diagonal.
func (b Box) Diagonal() float64 { return math.Hypot(b.Width(), b.Height()) }

// FlipX returns b with the x bounds swapped.
func (b Box) FlipX() Box {
	b.XMin, b.XMax = b.XMax, b.XMin
	return b
}

// FlipY returns b with the y bounds swapped.
func (b Box) FlipY() Box {
	b.YMin, b.YMax = b.YMax, b.YMin
	return b
}

// DeviceGeometry describes the coordinate system of a backend's output.
type DeviceGeometry struct {
	Coords CoordKind
	// Device is the device bounding box. For integer devices the bounds
	// are pixel-centre indices, for example 144..623.
	Device Box
	// NDC is the region of normalized space mapped onto Device.
	// The zero value means UnitBox.
	NDC Box
}

// ErrDegenerateGeometry is returned for geometries whose map is singular.
var ErrDegenerateGeometry = errors.New("plot: degenerate device geometry")

// Validate reports whether g describes a non-degenerate map.
func (g DeviceGeometry) Validate() error {
	if g.Coords != CoordsInteger && g.Coords != CoordsReal {
		return fmt.Errorf("%w: coordinate kind unset", ErrDegenerateGeometry)
	}
	ndc := g.ndc()
	if ndc.XMin == ndc.XMax || ndc.YMin == ndc.YMax {
		return fmt.Errorf("%w: empty normalized bounds", ErrDegenerateGeometry)
	}
	if g.Coords == CoordsReal && (g.Device.XMin == g.Device.XMax || g.Device.YMin == g.Device.YMax) {
		return fmt.Errorf("%w: empty device bounds", ErrDegenerateGeometry)
	}
	return nil
}

func (g DeviceGeometry) ndc() Box {
	if g.NDC == (Box{}) {
		return UnitBox
	}
	return g.NDC
}

// FlippedX reports whether normalized x increases towards smaller device x.
func (g DeviceGeometry) FlippedX() bool { return g.Device.FlippedX() != g.ndc().FlippedX() }

// FlippedY reports whether normalized y increases towards smaller device y.
func (g DeviceGeometry) FlippedY() bool { return g.Device.FlippedY() != g.ndc().FlippedY() }

// DeviceBox returns the continuous device region covered by the map.
// Real devices use Device as is. Integer devices extend each pixel-centre
// bound outwards by half a pixel, less a rounding fuzz, so that every
// rounded coordinate stays within the declared pixel range.
func (g DeviceGeometry) DeviceBox() Box {
	if g.Coords != CoordsInteger {
		return g.Device
	}
	xmin, xmax := widen(g.Device.XMin, g.Device.XMax)
	ymin, ymax := widen(g.Device.YMin, g.Device.YMax)
	return Box{XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}
}

func widen(lo, hi float64) (float64, float64) {
	const half = 0.5 - roundingFuzz
	if lo <= hi {
		return lo - half, hi + half
	}
	return lo + half, hi - half
}

// ComputeMap returns the affine map from normalized space to device space.
// The corners of the normalized bounds land exactly on the corners of
// [DeviceGeometry.DeviceBox]; reversed bounds on either side flip the axis.
// ComputeMap is a pure function of g.
func ComputeMap(g DeviceGeometry) Matrix {
	ndc := g.ndc()
	dev := g.DeviceBox()

	sx := (dev.XMax - dev.XMin) / (ndc.XMax - ndc.XMin)
	sy := (dev.YMax - dev.YMin) / (ndc.YMax - ndc.YMin)
	return Matrix{
		A: sx, B: 0, C: dev.XMin - ndc.XMin*sx,
		D: 0, E: sy, F: dev.YMin - ndc.YMin*sy,
	}
}

// resolveGeometry builds the session geometry for d from the page and
// bitmap configuration.
func resolveGeometry(d *Descriptor, page PageSize, bitmapW, bitmapH int) (DeviceGeometry, error) {
	g := d.Geometry
	switch d.Sizing {
	case SizingViewport:
		xmin, xmax := viewportSpan(page.XOrigin+page.XOffset, page.ViewportWidth)
		ymin, ymax := viewportSpan(page.YOrigin+page.YOffset, page.ViewportHeight)
		g.Coords = CoordsReal
		g.Device = Box{XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}
	case SizingBitmap:
		if bitmapW <= 0 || bitmapH <= 0 {
			return DeviceGeometry{}, fmt.Errorf("%w: bitmap size %dx%d", ErrDegenerateGeometry, bitmapW, bitmapH)
		}
		g.Coords = CoordsInteger
		g.Device = Box{XMin: 0, XMax: float64(bitmapW - 1), YMin: float64(bitmapH - 1), YMax: 0}
	}
	g.NDC = g.ndc()
	if d.FlipOnNegativeSize {
		if page.ViewportWidth < 0 {
			g.NDC = g.NDC.FlipX()
		}
		if page.ViewportHeight < 0 {
			g.NDC = g.NDC.FlipY()
		}
	}
	return g, g.Validate()
}

// viewportSpan converts an origin and signed size in inches to device
// bounds in millimetres. A negative size reverses the bounds in place.
func viewportSpan(origin, size float64) (float64, float64) {
	lo, hi := origin*mmPerInch, (origin+math.Abs(size))*mmPerInch
	if size < 0 {
		return hi, lo
	}
	return lo, hi
}
