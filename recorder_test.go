package plot

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

// recorder is a driver that implements every operation and records the
// calls it receives.
type recorder struct {
	calls    []string
	paths    []*Path
	warnings []string
	errs     []error
	texts    []textCall

	initErr error
}

type textCall struct {
	s    string
	at   Point
	h    HJust
	v    VJust
	size float64
}

func (r *recorder) log(op string) { r.calls = append(r.calls, op) }

func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (r *recorder) Initialize(*Plotter) error { r.log("initialize"); return r.initErr }
func (r *recorder) Terminate(*Plotter) error  { r.log("terminate"); return nil }
func (r *recorder) BeginPage(*Plotter) error  { r.log("begin-page"); return nil }
func (r *recorder) ErasePage(*Plotter) error  { r.log("erase-page"); return nil }
func (r *recorder) EndPage(*Plotter) error    { r.log("end-page"); return nil }
func (r *recorder) PushState(*Plotter)        { r.log("push-state") }
func (r *recorder) PopState(*Plotter)         { r.log("pop-state") }

func (r *recorder) PaintPath(p *Plotter, path *Path) error {
	r.log("paint-path")
	r.paths = append(r.paths, path)
	_, err := fmt.Fprintf(p.Out(), "path %d\n", len(path.Segments))
	return err
}

func (r *recorder) PaintPaths(*Plotter, []*Path) (bool, error) {
	r.log("paint-multiple-paths")
	return false, nil
}

func (r *recorder) PathIsFlushable(*Plotter, *Path) bool {
	r.log("path-is-flushable")
	return true
}

func (r *recorder) MaybePrepaintSegments(*Plotter, *Path, int) error { return nil }

func (r *recorder) PaintMarker(*Plotter, Point, Marker, float64) (bool, error) {
	r.log("paint-marker")
	return false, nil
}

func (r *recorder) PaintPoint(p *Plotter, at Point) error {
	r.log("paint-point")
	_, err := fmt.Fprintf(p.Out(), "point %g %g\n", at.X, at.Y)
	return err
}

func (r *recorder) PaintTextWithEscapes(p *Plotter, s string, h HJust, v VJust) (float64, error) {
	r.log("paint-text-with-escapes")
	return Generic.PaintTextWithEscapes(p, s, h, v)
}

func (r *recorder) PaintText(p *Plotter, s string, h HJust, v VJust) (float64, error) {
	r.log("paint-text")
	r.texts = append(r.texts, textCall{s: s, at: p.State().Pos, h: h, v: v, size: p.State().EffectiveFontSize()})
	return Generic.PaintText(p, s, h, v)
}

func (r *recorder) TextWidth(p *Plotter, s string) float64 { return Generic.TextWidth(p, s) }

func (r *recorder) RetrieveFont(p *Plotter) bool {
	r.log("retrieve-font")
	return Generic.RetrieveFont(p)
}

func (r *recorder) FlushOutput(p *Plotter) error {
	r.log("flush-output")
	return Generic.FlushOutput(p)
}

func (r *recorder) Warning(_ *Plotter, msg string) { r.warnings = append(r.warnings, msg) }

func (r *recorder) Error(_ *Plotter, err error) { r.errs = append(r.errs, err) }

// testDescriptor describes a real-time device whose box is the unit square
// with y flipped, supporting everything natively.
func testDescriptor(name string) Descriptor {
	return Descriptor{
		Name:   name,
		Output: OutputRealTime,
		Caps: Capabilities{
			WideLines:          Yes,
			DashArray:          Yes,
			SolidFill:          Yes,
			OddWindingFill:     Yes,
			NonzeroWindingFill: Yes,
			SettableBackground: Yes,
			EscapedStrings:     No,
			FontFamilies:       No,
		},
		DefaultFont:             FontOutline,
		DefaultFamily:           "helvetica",
		HorizontalJustification: true,
		VerticalJustification:   true,
		MaxUnfilledPathLength:   500,
		Scaling:                 PolicyAll(ScaleAny),
		Geometry: DeviceGeometry{
			Coords: CoordsReal,
			Device: Box{XMin: 0, XMax: 1, YMin: 1, YMax: 0},
		},
		Sizing: SizingFixed,
	}
}

// registerRecorder registers a test descriptor, adjusted by edit, under a
// name unique to the test. Every plotter of it shares the returned recorder.
func registerRecorder(t *testing.T, edit func(d *Descriptor)) (string, *recorder) {
	t.Helper()
	d := testDescriptor("rec-" + strings.ReplaceAll(t.Name(), "/", "-"))
	if edit != nil {
		edit(&d)
	}
	rec := &recorder{}
	if err := Register(d, func() Driver { return rec }); err != nil {
		t.Fatalf("Register(%s) = %v", d.Name, err)
	}
	t.Cleanup(func() { Unregister(d.Name) })
	return d.Name, rec
}

// openPage opens a plotter with a page begun.
func openPage(t *testing.T, name string, w io.Writer, opts ...Option) *Plotter {
	t.Helper()
	p, err := Open(name, w, opts...)
	if err != nil {
		t.Fatalf("Open(%s) = %v", name, err)
	}
	if err := p.BeginPage(); err != nil {
		t.Fatalf("BeginPage() = %v", err)
	}
	// Drop the calls made while opening.
	if r, ok := p.drv.(*recorder); ok {
		r.calls = nil
	}
	return p
}

// failWriter fails every write.
type failWriter struct{ n int }

var errDiskFull = errors.New("disk full")

func (w *failWriter) Write([]byte) (int, error) {
	w.n++
	return 0, errDiskFull
}
