package plot

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComputeMapCorners(t *testing.T) {
	tests := []struct {
		name string
		g    DeviceGeometry
		// Device images of the NDC corners (0,0), (1,0), (0,1), (1,1).
		want [4]Point
	}{
		{
			name: "flipped y",
			g:    DeviceGeometry{Coords: CoordsReal, Device: Box{XMin: 0, XMax: 1, YMin: 1, YMax: 0}},
			want: [4]Point{{0, 1}, {1, 1}, {0, 0}, {1, 0}},
		},
		{
			name: "ascending",
			g:    DeviceGeometry{Coords: CoordsReal, Device: Box{XMin: 10, XMax: 110, YMin: 20, YMax: 70}},
			want: [4]Point{{10, 20}, {110, 20}, {10, 70}, {110, 70}},
		},
		{
			name: "flipped ndc",
			g: DeviceGeometry{
				Coords: CoordsReal,
				Device: Box{XMin: 0, XMax: 2, YMin: 0, YMax: 2},
				NDC:    Box{XMin: 1, XMax: 0, YMin: 0, YMax: 1},
			},
			want: [4]Point{{2, 0}, {0, 0}, {2, 2}, {0, 2}},
		},
		{
			name: "integer pixels",
			g:    DeviceGeometry{Coords: CoordsInteger, Device: Box{XMin: 144, XMax: 623, YMin: 479, YMax: 0}},
			want: [4]Point{
				{144 - 0.5 + roundingFuzz, 479 + 0.5 - roundingFuzz},
				{623 + 0.5 - roundingFuzz, 479 + 0.5 - roundingFuzz},
				{144 - 0.5 + roundingFuzz, -0.5 + roundingFuzz},
				{623 + 0.5 - roundingFuzz, -0.5 + roundingFuzz},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeMap(tt.g)
			corners := [4]Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
			var got [4]Point
			for i, c := range corners {
				got[i] = m.TransformPoint(c)
			}
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("corners mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeMapIntegerRounding(t *testing.T) {
	g := DeviceGeometry{Coords: CoordsInteger, Device: Box{XMin: 144, XMax: 623, YMin: 479, YMax: 0}}
	m := ComputeMap(g)
	for _, c := range []Point{{0, 0}, {1, 1}, {1, 0}, {0, 1}} {
		d := m.TransformPoint(c)
		x, y := math.Round(d.X), math.Round(d.Y)
		if x < 144 || x > 623 || y < 0 || y > 479 {
			t.Errorf("corner %v rounds to (%g,%g), outside the pixel range", c, x, y)
		}
	}
}

func TestComputeMapIdempotent(t *testing.T) {
	g := DeviceGeometry{Coords: CoordsReal, Device: Box{XMin: 3, XMax: 7, YMin: 9, YMax: 1}}
	if a, b := ComputeMap(g), ComputeMap(g); a != b {
		t.Errorf("ComputeMap not idempotent: %v != %v", a, b)
	}
}

func TestComputeMapSwapNegates(t *testing.T) {
	g := DeviceGeometry{Coords: CoordsReal, Device: Box{XMin: 0, XMax: 4, YMin: 0, YMax: 3}}
	m := ComputeMap(g)

	gx := g
	gx.Device.XMin, gx.Device.XMax = g.Device.XMax, g.Device.XMin
	mx := ComputeMap(gx)
	if mx.A != -m.A || mx.E != m.E {
		t.Errorf("swapping x: A %g -> %g, E %g -> %g", m.A, mx.A, m.E, mx.E)
	}

	gy := g
	gy.Device = g.Device.FlipY()
	my := ComputeMap(gy)
	if my.E != -m.E || my.A != m.A {
		t.Errorf("swapping y: E %g -> %g, A %g -> %g", m.E, my.E, m.A, my.A)
	}
}

func TestDeviceGeometryValidate(t *testing.T) {
	tests := []struct {
		name string
		g    DeviceGeometry
		ok   bool
	}{
		{"unit", DeviceGeometry{Coords: CoordsReal, Device: UnitBox}, true},
		{"no coords", DeviceGeometry{Device: UnitBox}, false},
		{"empty ndc", DeviceGeometry{Coords: CoordsReal, Device: UnitBox, NDC: Box{XMin: 1, XMax: 1, YMax: 1}}, false},
		{"empty device", DeviceGeometry{Coords: CoordsReal, Device: Box{XMax: 1}}, false},
		{"single pixel", DeviceGeometry{Coords: CoordsInteger, Device: Box{}}, true},
	}
	for _, tt := range tests {
		err := tt.g.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("%s: Validate() = %v, want ok=%v", tt.name, err, tt.ok)
		}
		if err != nil && !errors.Is(err, ErrDegenerateGeometry) {
			t.Errorf("%s: error %v does not wrap ErrDegenerateGeometry", tt.name, err)
		}
	}
}

func TestResolveGeometryViewportFlip(t *testing.T) {
	d := &Descriptor{Sizing: SizingViewport, FlipOnNegativeSize: true}
	page, err := ParsePageSize("letter,xsize=-8in")
	if err != nil {
		t.Fatal(err)
	}
	g, err := resolveGeometry(d, page, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !g.NDC.FlippedX() || g.NDC.FlippedY() {
		t.Errorf("NDC = %+v, want x flipped only", g.NDC)
	}
	if !g.Device.FlippedX() {
		t.Errorf("Device = %+v, want x bounds reversed", g.Device)
	}
	// Both reversals cancel: NDC x=0 still lands on the left page edge.
	m := ComputeMap(g)
	left := 0.25 * mmPerInch
	if got := m.TransformPoint(Pt(0, 0)).X; math.Abs(got-left) > 1e-9 {
		t.Errorf("NDC x=0 maps to %g mm, want %g", got, left)
	}
}

func TestResolveGeometryBitmap(t *testing.T) {
	d := &Descriptor{Sizing: SizingBitmap}
	g, err := resolveGeometry(d, PageSize{}, 640, 480)
	if err != nil {
		t.Fatal(err)
	}
	want := Box{XMin: 0, XMax: 639, YMin: 479, YMax: 0}
	if g.Device != want || g.Coords != CoordsInteger {
		t.Errorf("geometry = %+v, want device %+v", g, want)
	}
	if _, err := resolveGeometry(d, PageSize{}, 0, 480); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("zero width: err = %v", err)
	}
}

func TestTolerance(t *testing.T) {
	name, _ := registerRecorder(t, nil)
	p := openPage(t, name, nil)
	if got, want := p.Tolerance(), 1e-4*math.Sqrt2; math.Abs(got-want) > 1e-15 {
		t.Errorf("real device tolerance = %g, want %g", got, want)
	}

	name2, _ := registerRecorder(t, func(d *Descriptor) {
		d.Name += "-int"
		d.Geometry = DeviceGeometry{Coords: CoordsInteger, Device: Box{XMax: 99, YMin: 99}}
	})
	p2 := openPage(t, name2, nil)
	if got := p2.Tolerance(); got != 0.25 {
		t.Errorf("integer device tolerance = %g, want 0.25", got)
	}
}
