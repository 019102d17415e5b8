package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/plot"
)

func TestDocumentWrittenAtTerminate(t *testing.T) {
	var buf bytes.Buffer
	p, err := plot.Open(Name, &buf)
	require.NoError(t, err)

	for range 2 {
		require.NoError(t, p.BeginPage())
		require.NoError(t, p.FillType(1))
		require.NoError(t, p.Circle(0.5, 0.5, 0.25))
		require.NoError(t, p.LineWidth(0.01))
		require.NoError(t, p.LineStyle(plot.LineDotDashed))
		require.NoError(t, p.Line(0, 0, 1, 1))
		require.NoError(t, p.Label("page"))
		require.NoError(t, p.EndPage())
	}
	assert.Zero(t, buf.Len(), "output before Terminate")
	assert.Equal(t, 2, p.Driver().(*Driver).Pages())

	require.NoError(t, p.Close())
	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "header %q", out[:min(len(out), 16)])
	assert.Contains(t, string(out), "%%EOF")
}

func TestNoPagesNoDocument(t *testing.T) {
	var buf bytes.Buffer
	p, err := plot.Open(Name, &buf)
	require.NoError(t, err)
	require.NoError(t, p.Close())
	assert.Zero(t, buf.Len())
}

func TestViewportGeometry(t *testing.T) {
	p, err := plot.Open(Name, nil, plot.WithPageSize("a4,xsize=10cm,ysize=-10cm,xorigin=1cm,yorigin=2cm"))
	require.NoError(t, err)
	defer p.Close()

	g := p.Geometry()
	assert.Equal(t, plot.CoordsReal, g.Coords)
	assert.InDelta(t, 10, g.Device.XMin, 1e-9)
	assert.InDelta(t, 110, g.Device.XMax, 1e-9)
	// A negative size reverses the device bounds and flips the normalized
	// ones, so NDC y=0 is still at the bottom of the viewport.
	assert.True(t, g.Device.FlippedY())
	assert.True(t, g.NDC.FlippedY())
	assert.InDelta(t, 20, p.DeviceMatrix().TransformPoint(plot.Pt(0, 0)).Y, 1e-9)
}

func TestOddWindingUnsupported(t *testing.T) {
	assert.Equal(t, plot.No, Descriptor.Caps.OddWindingFill)
	assert.Equal(t, plot.OutputPagesAllAtOnce, Descriptor.Output)
}
