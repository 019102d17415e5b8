// Package plot provides a device-independent vector plotting API.
//
// # Overview
//
// A [Plotter] accepts drawing commands in user coordinates (lines, arcs,
// Bézier curves, boxes, circles, ellipses, markers and text labels) and
// sends them to an output backend. Each backend describes itself once with a
// static [Descriptor]: what it can draw natively, how primitives may be
// transformed, and the bounds of its device coordinate system. The plotter
// fills the gaps with shared generic code, so a backend implements only the
// operations it can do better.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/plot"
//	    _ "github.com/gogpu/plot/backend/svg"
//	)
//
//	p, err := plot.Open("svg", os.Stdout, plot.WithPageSize("a4"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	p.BeginPage()
//	p.Space(0, 0, 100, 100)
//	p.Circle(50, 50, 30)
//	p.Move(50, 10)
//	p.AlignedLabel(plot.HCenter, plot.VBaseline, "x\\sp2\\ep")
//	p.EndPage()
//
// # Backends
//
// Backends register themselves by name from an init function with
// [MustRegister], in the style of database/sql drivers. A backend's driver
// implements any subset of the one-method operation interfaces
// ([PathPainter], [TextPainter], ...); every other operation must be listed
// in the descriptor's Delegate set and is then served by [Generic].
// Registration rejects descriptors where an operation is bound twice or not
// at all.
//
// Built-in backends live under backend/: meta (text log), svg, pdf, png and
// regis.
//
// # Coordinate System
//
// User coordinates are mapped to normalized device coordinates (NDC) by the
// matrix set with [Plotter.Space] or [Plotter.SetMatrix]. NDC is the unit
// square with y increasing upward; the backend's device geometry maps it to
// device units. Integer devices round, so NDC edges land on the centres of
// the outermost pixels.
//
// # Capabilities
//
// Capabilities are tri-state ([Yes], [No], [Maybe]). When a primitive cannot
// be drawn natively under the current transformation it is flattened to
// line segments. Unsupported dashing is emulated, unsupported wide lines
// fall back to hairlines, and an unsupported fill rule is replaced by the
// supported one with a single warning per plotter.
//
// # Logging
//
// plot logs through [log/slog]. Nothing is logged until [SetLogger] or
// [WithLogger] supplies a handler.
package plot
