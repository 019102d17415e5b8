// Package png implements a bitmap backend that writes one page as a PNG
// image.
//
// The image size comes from the BitmapSize parameter ("570x570" unless
// configured). Paths are scan converted with golang.org/x/image/vector,
// which fills by the nonzero winding rule only.
//
// Importing the package registers the "png" backend:
//
//	import _ "github.com/gogpu/plot/backend/png"
package png

import (
	"image"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/plot"
)

// Name is the registry name of the backend.
const Name = "png"

// Descriptor is the static description of the PNG backend.
var Descriptor = plot.Descriptor{
	Name:   Name,
	Output: plot.OutputOnePage,
	Caps: plot.Capabilities{
		WideLines:          plot.Yes,
		DashArray:          plot.Maybe,
		SolidFill:          plot.Yes,
		OddWindingFill:     plot.No,
		NonzeroWindingFill: plot.Yes,
		SettableBackground: plot.Yes,
		EscapedStrings:     plot.No,
		FontFamilies:       plot.No,
	},
	DefaultFont:           plot.FontOutline,
	DefaultFamily:         "helvetica",
	MaxUnfilledPathLength: 500,
	Scaling:               plot.PolicyAll(plot.ScaleNone).With(plot.PrimBox, plot.ScaleAny),
	Sizing:                plot.SizingBitmap,
	Delegate: plot.Ops(
		plot.OpInitialize, plot.OpTerminate,
		plot.OpPushState, plot.OpPopState,
		plot.OpPaintPaths, plot.OpPathIsFlushable, plot.OpMaybePrepaintSegments,
		plot.OpPaintMarker,
		plot.OpPaintTextWithEscapes, plot.OpPaintText, plot.OpGetTextWidth,
		plot.OpRetrieveFont, plot.OpFlushOutput,
		plot.OpWarning, plot.OpError,
	),
}

func init() {
	plot.MustRegister(Descriptor, func() plot.Driver { return new(Driver) })
}

// Driver is the per-plotter PNG encoder.
type Driver struct {
	img *image.RGBA
	r   *vector.Rasterizer
}

var (
	_ plot.PageBeginner = (*Driver)(nil)
	_ plot.PageEraser   = (*Driver)(nil)
	_ plot.PageEnder    = (*Driver)(nil)
	_ plot.PathPainter  = (*Driver)(nil)
	_ plot.PointPainter = (*Driver)(nil)
)

// Image returns the page being drawn, or the last page after EndPage.
func (d *Driver) Image() *image.RGBA { return d.img }

// BeginPage allocates the bitmap and clears it to the background.
func (d *Driver) BeginPage(p *plot.Plotter) error {
	w, h := p.BitmapSize()
	d.img = image.NewRGBA(image.Rect(0, 0, w, h))
	d.r = vector.NewRasterizer(w, h)
	d.clear(p)
	return nil
}

// ErasePage clears the bitmap to the background.
func (d *Driver) ErasePage(p *plot.Plotter) error {
	d.clear(p)
	return nil
}

func (d *Driver) clear(p *plot.Plotter) {
	bg := image.NewUniform(p.MapColor(p.Background()))
	draw.Draw(d.img, d.img.Bounds(), bg, image.Point{}, draw.Src)
}

// EndPage encodes the bitmap.
func (d *Driver) EndPage(p *plot.Plotter) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(p.Out(), d.img)
}

// PaintPath fills and strokes a resolved path.
func (d *Driver) PaintPath(p *plot.Plotter, path *plot.Path) error {
	st := &path.Style
	// Pixel centres sit at integer device coordinates; the rasterizer
	// puts them at half-integers.
	m := plot.Translate(0.5, 0.5).Multiply(path.Transform)
	elems := path.Elements(m)

	if st.Fill {
		d.r.Reset(d.img.Bounds().Dx(), d.img.Bounds().Dy())
		for _, e := range elems {
			switch e.Op {
			case plot.ElemMoveTo:
				d.r.MoveTo(f32(e.Pts[0]))
			case plot.ElemLineTo:
				d.r.LineTo(f32(e.Pts[0]))
			case plot.ElemQuadTo:
				bx, by := f32(e.Pts[0])
				cx, cy := f32(e.Pts[1])
				d.r.QuadTo(bx, by, cx, cy)
			case plot.ElemCubeTo:
				bx, by := f32(e.Pts[0])
				cx, cy := f32(e.Pts[1])
				dx, dy := f32(e.Pts[2])
				d.r.CubeTo(bx, by, cx, cy, dx, dy)
			case plot.ElemClose:
				d.r.ClosePath()
			}
		}
		d.r.ClosePath()
		d.r.Draw(d.img, d.img.Bounds(), image.NewUniform(p.MapColor(st.FillColor)), image.Point{})
	}

	if st.Pen {
		width := max(path.DeviceLineWidth(), 1)
		src := image.NewUniform(p.MapColor(st.PenColor))
		for _, line := range polylines(elems, p.Tolerance()) {
			d.stroke(line, width, st, src)
		}
	}
	return nil
}

// PaintPoint sets a single pixel in the pen color.
func (d *Driver) PaintPoint(p *plot.Plotter, at plot.Point) error {
	dev := p.ToDevice(at)
	x, y := int(math.Round(dev.X)), int(math.Round(dev.Y))
	d.img.Set(x, y, p.MapColor(p.State().PenColor))
	return nil
}

func f32(p plot.Point) (float32, float32) { return float32(p.X), float32(p.Y) }
