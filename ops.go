package plot

import "fmt"

// Op identifies one operation of the backend dispatch table.
type Op uint8

const (
	OpInitialize Op = iota
	OpTerminate
	OpBeginPage
	OpErasePage
	OpEndPage
	OpPushState
	OpPopState
	OpPaintPath
	OpPaintPaths
	OpPathIsFlushable
	OpMaybePrepaintSegments
	OpPaintMarker
	OpPaintPoint
	OpPaintTextWithEscapes
	OpPaintText
	OpGetTextWidth
	OpRetrieveFont
	OpFlushOutput
	OpWarning
	OpError

	numOps
)

var opNames = [...]string{
	OpInitialize:            "initialize",
	OpTerminate:             "terminate",
	OpBeginPage:             "begin-page",
	OpErasePage:             "erase-page",
	OpEndPage:               "end-page",
	OpPushState:             "push-state",
	OpPopState:              "pop-state",
	OpPaintPath:             "paint-path",
	OpPaintPaths:            "paint-multiple-paths",
	OpPathIsFlushable:       "path-is-flushable",
	OpMaybePrepaintSegments: "maybe-prepaint-segments",
	OpPaintMarker:           "paint-marker",
	OpPaintPoint:            "paint-point",
	OpPaintTextWithEscapes:  "paint-text-with-escapes",
	OpPaintText:             "paint-text",
	OpGetTextWidth:          "get-text-width",
	OpRetrieveFont:          "retrieve-font",
	OpFlushOutput:           "flush-output",
	OpWarning:               "warn",
	OpError:                 "error",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", op)
}

// AllOps lists every operation in dispatch order.
func AllOps() []Op {
	ops := make([]Op, numOps)
	for i := range ops {
		ops[i] = Op(i)
	}
	return ops
}

// OpSet is a set of operations.
type OpSet uint32

// Ops returns the set containing ops.
func Ops(ops ...Op) OpSet {
	var s OpSet
	for _, op := range ops {
		s |= 1 << op
	}
	return s
}

// Has reports whether op is in s.
func (s OpSet) Has(op Op) bool { return s&(1<<op) != 0 }

// Binding says which implementation serves an operation.
type Binding uint8

const (
	BindingUnset Binding = iota
	BindingSpecific
	BindingGeneric
)

func (b Binding) String() string {
	switch b {
	case BindingSpecific:
		return "specific"
	case BindingGeneric:
		return "generic"
	default:
		return "unset"
	}
}

type bindingTable [numOps]Binding

// Driver is a backend instance created by a [Factory]. It implements the
// subset of the operation interfaces below that the backend specializes.
// Every other operation must be listed in Descriptor.Delegate.
type Driver any

// Factory creates a new driver for one plotter.
type Factory func() Driver

// Operation interfaces, one per entry of the dispatch table.
type (
	Initializer interface {
		Initialize(p *Plotter) error
	}
	Terminator interface {
		Terminate(p *Plotter) error
	}
	PageBeginner interface {
		BeginPage(p *Plotter) error
	}
	PageEraser interface {
		ErasePage(p *Plotter) error
	}
	PageEnder interface {
		EndPage(p *Plotter) error
	}
	StatePusher interface {
		PushState(p *Plotter)
	}
	StatePopper interface {
		PopState(p *Plotter)
	}
	// PathPainter paints one resolved path. Curved segments and closed
	// primitives only reach it when the backend's scaling policy allows them.
	PathPainter interface {
		PaintPath(p *Plotter, path *Path) error
	}
	// PathsPainter paints a compound path in one go. Returning false asks
	// the caller to paint the paths one at a time.
	PathsPainter interface {
		PaintPaths(p *Plotter, paths []*Path) (bool, error)
	}
	FlushabilityReporter interface {
		PathIsFlushable(p *Plotter, path *Path) bool
	}
	// SegmentPrepainter may draw the segments appended to path since index
	// prev before the path is ended.
	SegmentPrepainter interface {
		MaybePrepaintSegments(p *Plotter, path *Path, prev int) error
	}
	// MarkerPainter draws a marker in one primitive. Returning false asks
	// the caller to draw the marker from paths.
	MarkerPainter interface {
		PaintMarker(p *Plotter, at Point, m Marker, size float64) (bool, error)
	}
	PointPainter interface {
		PaintPoint(p *Plotter, at Point) error
	}
	EscapedTextPainter interface {
		PaintTextWithEscapes(p *Plotter, s string, h HJust, v VJust) (float64, error)
	}
	TextPainter interface {
		PaintText(p *Plotter, s string, h HJust, v VJust) (float64, error)
	}
	TextMeasurer interface {
		TextWidth(p *Plotter, s string) float64
	}
	FontRetriever interface {
		RetrieveFont(p *Plotter) bool
	}
	OutputFlusher interface {
		FlushOutput(p *Plotter) error
	}
	Warner interface {
		Warning(p *Plotter, msg string)
	}
	ErrorHandler interface {
		Error(p *Plotter, err error)
	}
)

// implements reports whether drv has a specific implementation of op.
func implements(drv Driver, op Op) bool {
	var ok bool
	switch op {
	case OpInitialize:
		_, ok = drv.(Initializer)
	case OpTerminate:
		_, ok = drv.(Terminator)
	case OpBeginPage:
		_, ok = drv.(PageBeginner)
	case OpErasePage:
		_, ok = drv.(PageEraser)
	case OpEndPage:
		_, ok = drv.(PageEnder)
	case OpPushState:
		_, ok = drv.(StatePusher)
	case OpPopState:
		_, ok = drv.(StatePopper)
	case OpPaintPath:
		_, ok = drv.(PathPainter)
	case OpPaintPaths:
		_, ok = drv.(PathsPainter)
	case OpPathIsFlushable:
		_, ok = drv.(FlushabilityReporter)
	case OpMaybePrepaintSegments:
		_, ok = drv.(SegmentPrepainter)
	case OpPaintMarker:
		_, ok = drv.(MarkerPainter)
	case OpPaintPoint:
		_, ok = drv.(PointPainter)
	case OpPaintTextWithEscapes:
		_, ok = drv.(EscapedTextPainter)
	case OpPaintText:
		_, ok = drv.(TextPainter)
	case OpGetTextWidth:
		_, ok = drv.(TextMeasurer)
	case OpRetrieveFont:
		_, ok = drv.(FontRetriever)
	case OpFlushOutput:
		_, ok = drv.(OutputFlusher)
	case OpWarning:
		_, ok = drv.(Warner)
	case OpError:
		_, ok = drv.(ErrorHandler)
	}
	return ok
}

// bind resolves the dispatch table for drv under the delegation set.
// Each operation must be either implemented or delegated, not both.
func bind(name string, drv Driver, delegate OpSet) (bindingTable, error) {
	var t bindingTable
	for op := Op(0); op < numOps; op++ {
		specific := implements(drv, op)
		generic := delegate.Has(op)
		switch {
		case specific && generic:
			return t, fmt.Errorf("%w: %s: %s", ErrAmbiguousOp, name, op)
		case specific:
			t[op] = BindingSpecific
		case generic:
			t[op] = BindingGeneric
		default:
			return t, fmt.Errorf("%w: %s: %s", ErrUnboundOp, name, op)
		}
	}
	return t, nil
}
