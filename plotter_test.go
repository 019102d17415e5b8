package plot

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestTerminateBeforeInitIsNoop(t *testing.T) {
	name, rec := registerRecorder(t, nil)
	p, err := New(name, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Terminate(); err != nil {
		t.Fatalf("Terminate() = %v, want nil", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("driver calls = %v, want none", rec.calls)
	}
	if p.Phase() != PhaseCreated {
		t.Errorf("Phase() = %v, want %v", p.Phase(), PhaseCreated)
	}
	if err := p.Init(); err != nil {
		t.Errorf("Init() after no-op Terminate = %v", err)
	}
}

func TestDrawingAfterTerminate(t *testing.T) {
	name, rec := registerRecorder(t, nil)
	var buf bytes.Buffer
	p := openPage(t, name, &buf)
	if err := p.Line(0, 0, 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := p.Terminate(); err != nil {
		t.Fatalf("Terminate() = %v", err)
	}
	written := buf.String()
	calls := len(rec.calls)

	draws := map[string]func() error{
		"Line":      func() error { return p.Line(0, 0, 1, 0) },
		"Circle":    func() error { return p.Circle(0.5, 0.5, 0.1) },
		"Label":     func() error { return p.Label("x") },
		"BeginPage": p.BeginPage,
		"PenColor":  func() error { return p.PenColor(White) },
		"Space":     func() error { return p.Space(0, 0, 0, 1) },
		"SetMatrix": func() error { return p.SetMatrix(Matrix{}) },
	}
	for op, draw := range draws {
		err := draw()
		if !IsUsage(err) || !errors.Is(err, ErrTerminated) {
			t.Errorf("%s after Terminate = %v, want usage error wrapping ErrTerminated", op, err)
		}
	}
	if buf.String() != written {
		t.Errorf("output changed after Terminate: %q -> %q", written, buf.String())
	}
	for _, c := range rec.calls[calls:] {
		if c != "error" {
			t.Errorf("driver call %q after Terminate", c)
		}
	}
	if len(rec.errs) != len(draws) {
		t.Errorf("error reports = %d, want %d", len(rec.errs), len(draws))
	}
	if p.Phase() != PhaseTerminated {
		t.Errorf("Phase() = %v, want %v", p.Phase(), PhaseTerminated)
	}
}

func TestDrawingBeforeInit(t *testing.T) {
	name, rec := registerRecorder(t, nil)
	p, err := New(name, nil)
	if err != nil {
		t.Fatal(err)
	}
	err = p.Move(0, 0)
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Move() before Init = %v, want ErrNotInitialized", err)
	}
	if p.Phase() != PhaseTerminated {
		t.Errorf("Phase() = %v, want %v", p.Phase(), PhaseTerminated)
	}
	if rec.count("terminate") != 0 {
		t.Error("driver terminate ran without initialize")
	}
	if !errors.Is(p.Init(), ErrTerminated) {
		t.Error("Init() after usage error should fail")
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		run  func(p *Plotter) error
		want error
	}{
		{"init twice", func(p *Plotter) error { return p.Init() }, ErrAlreadyInitialized},
		{"draw without page", func(p *Plotter) error { return p.Line(0, 0, 1, 1) }, ErrNoPage},
		{"end without page", func(p *Plotter) error { return p.EndPage() }, ErrNoPage},
		{"begin twice", func(p *Plotter) error {
			if err := p.BeginPage(); err != nil {
				return err
			}
			return p.BeginPage()
		}, ErrPageOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, rec := registerRecorder(t, nil)
			p, err := Open(name, nil)
			if err != nil {
				t.Fatal(err)
			}
			err = tt.run(p)
			if !IsUsage(err) || !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want usage error wrapping %v", err, tt.want)
			}
			if p.Phase() != PhaseTerminated {
				t.Errorf("Phase() = %v, want %v", p.Phase(), PhaseTerminated)
			}
			if rec.count("terminate") != 1 {
				t.Errorf("driver terminate calls = %d, want 1", rec.count("terminate"))
			}
		})
	}
}

func TestFailedInitializeTerminates(t *testing.T) {
	name, rec := registerRecorder(t, nil)
	rec.initErr = errors.New("no device")
	p, err := New(name, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Init(); err == nil || !errors.Is(err, rec.initErr) {
		t.Fatalf("Init() = %v, want wrapped initialize error", err)
	}
	if p.Phase() != PhaseTerminated {
		t.Errorf("Phase() = %v, want %v", p.Phase(), PhaseTerminated)
	}
	if rec.count("terminate") != 1 {
		t.Errorf("driver terminate calls = %d, want 1", rec.count("terminate"))
	}
	// A second Terminate must not release anything again.
	if err := p.Terminate(); err != nil {
		t.Errorf("Terminate() = %v", err)
	}
	if rec.count("terminate") != 1 {
		t.Errorf("driver terminate calls = %d after second Terminate, want 1", rec.count("terminate"))
	}
}

func TestBadParamsReported(t *testing.T) {
	name, rec := registerRecorder(t, nil)
	p, err := New(name, nil, WithPageSize("folio"))
	if err != nil {
		t.Fatal(err)
	}
	err = p.Init()
	if !errors.Is(err, ErrUnknownPageSize) {
		t.Fatalf("Init() = %v, want ErrUnknownPageSize", err)
	}
	if len(rec.errs) != 1 || !errors.Is(rec.errs[0], ErrUnknownPageSize) {
		t.Errorf("error reports = %v, want the page size error", rec.errs)
	}
	if p.Phase() != PhaseTerminated {
		t.Errorf("Phase() = %v, want %v", p.Phase(), PhaseTerminated)
	}
	if rec.count("initialize") != 0 {
		t.Error("backend initialized with bad parameters")
	}
}

func TestSinglePageBackend(t *testing.T) {
	name, _ := registerRecorder(t, func(d *Descriptor) { d.Output = OutputOnePage })
	var buf bytes.Buffer
	p := openPage(t, name, &buf)
	if err := p.Line(0, 0, 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := p.EndPage(); err != nil {
		t.Fatal(err)
	}
	flushed := buf.String()
	if flushed == "" {
		t.Fatal("EndPage flushed nothing")
	}

	err := p.BeginPage()
	if !IsUsage(err) || !errors.Is(err, ErrSinglePage) {
		t.Fatalf("second BeginPage() = %v, want ErrSinglePage", err)
	}
	if buf.String() != flushed {
		t.Errorf("flushed output altered: %q -> %q", flushed, buf.String())
	}
	if p.Phase() != PhaseTerminated {
		t.Errorf("Phase() = %v, want %v", p.Phase(), PhaseTerminated)
	}
}

func TestMultiplePages(t *testing.T) {
	name, rec := registerRecorder(t, nil)
	p, err := Open(name, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 3 {
		if err := p.BeginPage(); err != nil {
			t.Fatalf("page %d: %v", i, err)
		}
		if got := p.Session().Page; got != i {
			t.Errorf("Session().Page = %d, want %d", got, i)
		}
		if err := p.EndPage(); err != nil {
			t.Fatal(err)
		}
	}
	if p.Pages() != 3 || rec.count("begin-page") != 3 || rec.count("end-page") != 3 {
		t.Errorf("pages = %d, begin = %d, end = %d", p.Pages(), rec.count("begin-page"), rec.count("end-page"))
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if p.Phase() != PhaseDestroyed {
		t.Errorf("Phase() = %v, want %v", p.Phase(), PhaseDestroyed)
	}
}

func TestTerminateEndsOpenPage(t *testing.T) {
	name, rec := registerRecorder(t, nil)
	var buf bytes.Buffer
	p := openPage(t, name, &buf)
	if err := p.Cont(1, 1); err != nil {
		t.Fatal(err)
	}
	if err := p.Terminate(); err != nil {
		t.Fatal(err)
	}
	want := []string{"paint-path", "flush-output", "end-page", "flush-output", "terminate", "flush-output"}
	if strings.Join(rec.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
	if !strings.Contains(buf.String(), "path 1") {
		t.Errorf("output = %q, committed path missing", buf.String())
	}
}

func TestResourceFailureAbortsPage(t *testing.T) {
	name, rec := registerRecorder(t, nil)
	w := &failWriter{}
	p := openPage(t, name, w)
	if err := p.Line(0, 0, 1, 1); err != nil {
		t.Fatal(err)
	}
	err := p.EndPath()
	if err == nil || IsUsage(err) || !errors.Is(err, errDiskFull) {
		t.Fatalf("EndPath() = %v, want resource error", err)
	}
	if len(rec.errs) != 1 {
		t.Errorf("error reports = %d, want 1", len(rec.errs))
	}
	if p.Phase() != PhaseInitialized {
		t.Errorf("Phase() = %v, want %v", p.Phase(), PhaseInitialized)
	}
	if p.Session() != nil {
		t.Error("session survived the failure")
	}
	// The plotter is still usable for a new page.
	if err := p.BeginPage(); err != nil {
		t.Errorf("BeginPage() after failure = %v", err)
	}
}

func TestSessionUnknownFlags(t *testing.T) {
	name, _ := registerRecorder(t, nil)
	p := openPage(t, name, nil)
	s := p.Session()
	if !s.PosUnknown || !s.PenColorUnknown || !s.FontUnknown || !s.BgColorUnknown {
		t.Fatalf("new session has known state: %+v", s)
	}
	s.PosUnknown, s.PenColorUnknown = false, false
	if err := p.ErasePage(); err != nil {
		t.Fatal(err)
	}
	if !s.PosUnknown || !s.PenColorUnknown {
		t.Error("ErasePage did not invalidate the session")
	}
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New("no-such-backend", nil)
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("New() = %v, want ErrUnknownBackend", err)
	}
}

func TestGenericErrorWriter(t *testing.T) {
	d := testDescriptor("rec-generic-errw")
	d.Caps.SettableBackground = No
	d.Delegate = Ops(AllOps()...)
	if err := Register(d, func() Driver { return struct{}{} }); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { Unregister(d.Name) })

	var errw bytes.Buffer
	p := openPage(t, d.Name, nil, WithErrorWriter(&errw))
	for range 2 {
		if err := p.BgColor(White); err != nil {
			t.Fatal(err)
		}
	}
	if got := strings.Count(errw.String(), "plot: warning: background"); got != 1 {
		t.Errorf("background warnings = %d, want 1 (%q)", got, errw.String())
	}
	if err := p.EndPage(); err != nil {
		t.Fatal(err)
	}
	if err := p.EndPage(); !errors.Is(err, ErrNoPage) {
		t.Fatalf("EndPage() = %v, want ErrNoPage", err)
	}
	if !strings.Contains(errw.String(), ErrNoPage.Error()) {
		t.Errorf("error writer = %q, want usage error", errw.String())
	}
}
