package plot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gogpu/plot/internal/fonts"
)

// Phase is the lifecycle state of a Plotter.
type Phase uint8

const (
	// PhaseCreated plotters are constructed but not initialized.
	PhaseCreated Phase = iota
	// PhaseInitialized plotters have a device geometry and no open page.
	PhaseInitialized
	// PhaseOpen plotters have a page open for drawing.
	PhaseOpen
	// PhaseTerminated plotters have flushed their output and accept no
	// further drawing.
	PhaseTerminated
	// PhaseDestroyed plotters have released their driver.
	PhaseDestroyed
)

func (ph Phase) String() string {
	switch ph {
	case PhaseCreated:
		return "created"
	case PhaseInitialized:
		return "initialized"
	case PhaseOpen:
		return "open"
	case PhaseTerminated:
		return "terminated"
	case PhaseDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("Phase(%d)", ph)
	}
}

// Plotter draws device-independent vector graphics through one backend
// onto one output stream.
//
// A Plotter is not safe for concurrent use.
type Plotter struct {
	desc Descriptor
	drv  Driver
	bind bindingTable

	dst  io.Writer
	out  *bufio.Writer
	errw io.Writer
	log  *slog.Logger

	params  Params
	phase   Phase
	initRan bool

	page    PageSize
	bitmapW int
	bitmapH int
	geom    DeviceGeometry
	devMap  Matrix
	bg      Color
	maxLine int

	state   DrawState
	stack   []DrawState
	session *SessionState
	pages   int

	path  *Path
	paths []*Path

	face       *fonts.Face
	fontNative bool
	fontDirty  bool

	warned map[string]bool
}

// New constructs a plotter for the named backend writing to w.
// The plotter must be initialized with Init before drawing.
func New(name string, w io.Writer, opts ...Option) (*Plotter, error) {
	e, err := lookupEntry(name)
	if err != nil {
		return nil, err
	}
	drv := e.factory()
	if drv == nil {
		return nil, fmt.Errorf("plot: %s: factory returned nil driver", name)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}
	if w == nil {
		w = io.Discard
	}

	return &Plotter{
		desc:   e.desc,
		drv:    drv,
		bind:   e.bindings,
		dst:    w,
		out:    bufio.NewWriter(w),
		errw:   o.errw,
		log:    log.With("backend", name),
		params: o.params,
		phase:  PhaseCreated,
		warned: make(map[string]bool),
	}, nil
}

// Open constructs and initializes a plotter.
func Open(name string, w io.Writer, opts ...Option) (*Plotter, error) {
	p, err := New(name, w, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Init(); err != nil {
		return nil, err
	}
	return p, nil
}

// Init applies the parameters, computes the device geometry and map, and
// runs the backend's initialize operation. It must be called exactly once.
// If initialization fails the plotter is terminated.
func (p *Plotter) Init() error {
	switch p.phase {
	case PhaseCreated:
	case PhaseInitialized, PhaseOpen:
		return p.usage("Init", ErrAlreadyInitialized)
	default:
		return p.usage("Init", ErrTerminated)
	}

	if err := p.configure(); err != nil {
		p.callError(err)
		p.phase = PhaseTerminated
		return err
	}

	p.initRan = true
	if err := p.callInitialize(); err != nil {
		err = fmt.Errorf("plot: initialize %s: %w", p.desc.Name, err)
		return errors.Join(err, p.terminate())
	}
	p.phase = PhaseInitialized
	p.log.Debug("plot: initialized",
		"geometry", p.geom.Device,
		"map", p.devMap,
		"output", p.desc.Output)
	return nil
}

func (p *Plotter) configure() error {
	page, err := ParsePageSize(p.params.PageSize)
	if err != nil {
		return err
	}
	p.page = page

	bg, err := ParseColor(p.params.BgColor)
	if err != nil {
		return err
	}
	p.bg = p.MapColor(bg)

	if p.desc.Sizing == SizingBitmap {
		if p.bitmapW, p.bitmapH, err = p.params.bitmapSize(); err != nil {
			return err
		}
	}
	geom, err := resolveGeometry(&p.desc, p.page, p.bitmapW, p.bitmapH)
	if err != nil {
		return fmt.Errorf("plot: %s: %w", p.desc.Name, err)
	}
	p.geom = geom
	p.devMap = ComputeMap(geom)

	p.maxLine = p.desc.MaxUnfilledPathLength
	if p.params.MaxLineLength > 0 {
		p.maxLine = p.params.MaxLineLength
	}
	p.state = defaultDrawState(p.desc.DefaultFamily)
	p.fontDirty = true
	return nil
}

// BeginPage opens a new page. Single-page backends accept one page per
// plotter.
func (p *Plotter) BeginPage() error {
	switch p.phase {
	case PhaseInitialized:
	case PhaseOpen:
		return p.usage("BeginPage", ErrPageOpen)
	case PhaseCreated:
		return p.usage("BeginPage", ErrNotInitialized)
	default:
		return p.usage("BeginPage", ErrTerminated)
	}
	if p.desc.Output.SinglePage() && p.pages > 0 {
		return p.usage("BeginPage", ErrSinglePage)
	}

	p.session = newSessionState(p.pages)
	p.pages++
	p.state = defaultDrawState(p.desc.DefaultFamily)
	p.stack = nil
	p.fontDirty = true
	p.phase = PhaseOpen

	if err := p.callBeginPage(); err != nil {
		return p.fail("BeginPage", err)
	}
	p.log.Info("plot: page begun", "page", p.session.Page)
	return p.flushRealTime()
}

// ErasePage clears the current page to the background color.
func (p *Plotter) ErasePage() error {
	if err := p.checkOpen("ErasePage"); err != nil {
		return err
	}
	if err := p.endPath(); err != nil {
		return err
	}
	if err := p.callErasePage(); err != nil {
		return p.fail("ErasePage", err)
	}
	p.session.Invalidate()
	return p.flushRealTime()
}

// EndPage finishes the current page and flushes it to the output.
func (p *Plotter) EndPage() error {
	if err := p.checkOpen("EndPage"); err != nil {
		return err
	}
	if err := p.endPath(); err != nil {
		return err
	}
	for len(p.stack) > 0 {
		p.callPopState()
		p.state = p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
	}
	if err := p.callEndPage(); err != nil {
		return p.fail("EndPage", err)
	}
	if err := p.callFlushOutput(); err != nil {
		return p.fail("EndPage", err)
	}
	p.log.Info("plot: page ended", "page", p.session.Page)
	p.closeSession()
	return nil
}

// Terminate ends an open page, runs the backend's terminate operation and
// flushes all output. It is a no-op before Init and after a previous
// Terminate.
func (p *Plotter) Terminate() error {
	switch p.phase {
	case PhaseCreated, PhaseTerminated, PhaseDestroyed:
		return nil
	}
	return p.terminate()
}

// terminate releases everything the plotter owns, checking each step.
func (p *Plotter) terminate() error {
	var errs []error
	if p.phase == PhaseOpen && p.session != nil {
		if err := p.EndPage(); err != nil {
			errs = append(errs, err)
		}
	}
	if p.initRan {
		p.initRan = false
		if err := p.callTerminate(); err != nil {
			errs = append(errs, fmt.Errorf("plot: terminate %s: %w", p.desc.Name, err))
		}
	}
	if p.out != nil {
		if err := p.callFlushOutput(); err != nil {
			errs = append(errs, err)
		}
	}
	p.closeSession()
	p.phase = PhaseTerminated
	p.log.Debug("plot: terminated")
	return errors.Join(errs...)
}

// Destroy terminates the plotter if needed and releases its driver.
func (p *Plotter) Destroy() error {
	if p.phase == PhaseDestroyed {
		return nil
	}
	err := p.Terminate()
	p.drv = nil
	p.phase = PhaseDestroyed
	return err
}

// Close implements io.Closer by destroying the plotter.
func (p *Plotter) Close() error { return p.Destroy() }

// Phase reports the lifecycle state.
func (p *Plotter) Phase() Phase { return p.phase }

// Pages returns the number of pages begun so far.
func (p *Plotter) Pages() int { return p.pages }

func (p *Plotter) closeSession() {
	p.session = nil
	p.path = nil
	p.paths = nil
	p.stack = nil
	if p.phase == PhaseOpen {
		p.phase = PhaseInitialized
	}
}

// checkOpen returns a usage error unless a page is open.
func (p *Plotter) checkOpen(op string) error {
	switch p.phase {
	case PhaseOpen:
		return nil
	case PhaseCreated:
		return p.usage(op, ErrNotInitialized)
	case PhaseInitialized:
		return p.usage(op, ErrNoPage)
	default:
		return p.usage(op, ErrTerminated)
	}
}

// usage reports a usage error through the error operation and leaves the
// plotter terminated.
func (p *Plotter) usage(op string, sentinel error) error {
	err := &UsageError{Op: op, Err: sentinel}
	p.callError(err)
	switch p.phase {
	case PhaseInitialized, PhaseOpen:
		_ = p.terminate()
	case PhaseCreated:
		p.phase = PhaseTerminated
	}
	return err
}

// fail handles a resource failure: it is reported through the error
// operation and the current page, including unflushed output, is dropped.
func (p *Plotter) fail(op string, err error) error {
	err = fmt.Errorf("plot: %s: %w", op, err)
	p.callError(err)
	if p.out != nil {
		p.out.Reset(p.dst)
	}
	p.closeSession()
	return err
}

func (p *Plotter) flushRealTime() error {
	if p.desc.Output != OutputRealTime {
		return nil
	}
	if err := p.callFlushOutput(); err != nil {
		return p.fail("flush", err)
	}
	return nil
}

func (p *Plotter) warnOnce(key, msg string) {
	if p.warned[key] {
		return
	}
	p.warned[key] = true
	p.callWarning(msg)
}
