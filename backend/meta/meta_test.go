package meta

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/plot"
)

func TestRecording(t *testing.T) {
	var buf bytes.Buffer
	p, err := plot.Open(Name, &buf)
	require.NoError(t, err)
	drv := p.Driver().(*Driver)

	require.NoError(t, p.BeginPage())
	require.NoError(t, p.Line(0, 0, 1, 1))
	require.NoError(t, p.Circle(0.5, 0.5, 0.25))
	require.NoError(t, p.Marker(0.2, 0.3, plot.MarkerCircle, 0.05))
	require.NoError(t, p.Label("hi"))
	require.NoError(t, p.Label(`a\spb\ep`))
	require.NoError(t, p.EndPage())
	log := append([]string(nil), drv.Log()...)
	require.NoError(t, p.Close())

	want := []string{
		"init meta",
		"begin-page 0 bg=#ffffff",
		"path M 0 0 L 1 1 pen=#000000 width=0.0011764706",
		"circle 0.5 0.5 0.25 pen=#000000 width=0.0011764706",
		"marker 0.2 0.3 4 0.05",
		`label 0.2 0.3 h=0 v=0 font=helvetica size=0.02 angle=0 "hi"`,
	}
	require.GreaterOrEqual(t, len(log), len(want))
	assert.Equal(t, want, log[:len(want)])
	assert.True(t, strings.HasPrefix(log[len(want)], "label-escaped "), log[len(want)])
	assert.Equal(t, "end-page 0", log[len(log)-1])

	// Real-time output mirrors the log line by line.
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, append(log, "terminate pages=1"), lines)
}

func TestTransformRecorded(t *testing.T) {
	var buf bytes.Buffer
	p, err := plot.Open(Name, &buf)
	require.NoError(t, err)
	defer p.Close()
	require.NoError(t, p.BeginPage())
	require.NoError(t, p.Space(0, 0, 10, 10))
	require.NoError(t, p.FillType(1))
	require.NoError(t, p.Ellipse(5, 5, 4, 2, 45))
	assert.Contains(t, buf.String(), "ellipse 5 5 4 2 45 t=0.1,0,0,0,0.1,0 pen=#000000")
	assert.Contains(t, buf.String(), "fill=#000000 rule=even-odd")
}

func TestCompoundRecordedOnce(t *testing.T) {
	var buf bytes.Buffer
	p, err := plot.Open(Name, &buf)
	require.NoError(t, err)
	defer p.Close()
	require.NoError(t, p.BeginPage())
	require.NoError(t, p.Line(0, 0, 1, 0))
	require.NoError(t, p.EndSubpath())
	require.NoError(t, p.Line(0, 1, 1, 1))
	require.NoError(t, p.EndPath())
	assert.Contains(t, buf.String(), "compound path M 0 0 L 1 0 | path M 0 1 L 1 1 pen=")
}

func TestDashNative(t *testing.T) {
	var buf bytes.Buffer
	p, err := plot.Open(Name, &buf)
	require.NoError(t, err)
	defer p.Close()
	require.NoError(t, p.BeginPage())
	require.NoError(t, p.Dash(0, 0.1, 0.1))
	require.NoError(t, p.Line(0, 0, 1, 0))
	require.NoError(t, p.EndPath())
	assert.Equal(t, 1, strings.Count(buf.String(), "path M"))
	assert.Contains(t, buf.String(), "dash=0.1,0.1@0")
}
