package png

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/plot"
)

func render(t *testing.T, draw func(p *plot.Plotter), opts ...plot.Option) image.Image {
	t.Helper()
	var buf bytes.Buffer
	opts = append([]plot.Option{plot.WithBitmapSize("20x10")}, opts...)
	p, err := plot.Open(Name, &buf, opts...)
	require.NoError(t, err)
	require.NoError(t, p.BeginPage())
	draw(p)
	require.NoError(t, p.EndPage())
	require.NoError(t, p.Close())

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	return img
}

func rgb(c color.Color) (r, g, b uint8) {
	r16, g16, b16, _ := c.RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8)
}

func TestBitmapSize(t *testing.T) {
	img := render(t, func(*plot.Plotter) {})
	assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())
	r, g, b := rgb(img.At(3, 3))
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b}, "background")
}

func TestBackground(t *testing.T) {
	img := render(t, func(*plot.Plotter) {}, plot.WithBackground("navy"))
	r, g, b := rgb(img.At(0, 0))
	assert.Equal(t, [3]uint8{0, 0, 128}, [3]uint8{r, g, b})
}

func TestFilledBox(t *testing.T) {
	img := render(t, func(p *plot.Plotter) {
		require.NoError(t, p.PenType(0))
		require.NoError(t, p.FillType(1))
		require.NoError(t, p.FillColor(plot.RGB8(255, 0, 0)))
		require.NoError(t, p.Box(0, 0, 0.5, 0.5))
	})
	// y grows downwards: the lower left quadrant is on the bottom rows.
	r, g, _ := rgb(img.At(2, 8))
	assert.GreaterOrEqual(t, r, uint8(250))
	assert.LessOrEqual(t, g, uint8(5))

	r, g, _ = rgb(img.At(17, 2))
	assert.Equal(t, uint8(255), r)
	assert.Equal(t, uint8(255), g)
}

func TestHairline(t *testing.T) {
	img := render(t, func(p *plot.Plotter) {
		// NDC y 0.55 lands on the centre of pixel row 4.
		require.NoError(t, p.Line(0, 0.55, 1, 0.55))
	})
	r, _, _ := rgb(img.At(10, 4))
	assert.LessOrEqual(t, r, uint8(10), "line row")
	r, _, _ = rgb(img.At(10, 2))
	assert.Equal(t, uint8(255), r, "row above the line")
}

func TestPoint(t *testing.T) {
	img := render(t, func(p *plot.Plotter) {
		require.NoError(t, p.PenColor(plot.RGB8(0, 255, 0)))
		require.NoError(t, p.Point(0, 0))
	})
	r, g, b := rgb(img.At(0, 9))
	assert.Equal(t, [3]uint8{0, 255, 0}, [3]uint8{r, g, b})
}

func TestOddWindingFallsBack(t *testing.T) {
	var errw bytes.Buffer
	render(t, func(p *plot.Plotter) {
		require.NoError(t, p.FillType(1))
		require.NoError(t, p.FillRule(plot.FillOddEven))
		require.NoError(t, p.Circle(0.5, 0.5, 0.2))
		require.NoError(t, p.Circle(0.5, 0.5, 0.1))
	}, plot.WithErrorWriter(&errw))
	assert.Equal(t, 1, bytes.Count(errw.Bytes(), []byte("fill rule even-odd is not supported")))
}

func TestRequiresBitmapSize(t *testing.T) {
	_, err := plot.Open(Name, nil, plot.WithBitmapSize("0x10"))
	require.ErrorIs(t, err, plot.ErrDegenerateGeometry)
}
