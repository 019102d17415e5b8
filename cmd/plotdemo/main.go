// Command plotdemo draws a test sheet through any registered backend.
//
// Usage:
//
//	plotdemo -T svg -o sheet.svg
//	plotdemo -T regis -bg black
//	plotdemo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"github.com/gogpu/plot"
	_ "github.com/gogpu/plot/backend/meta"
	_ "github.com/gogpu/plot/backend/pdf"
	_ "github.com/gogpu/plot/backend/png"
	_ "github.com/gogpu/plot/backend/regis"
	_ "github.com/gogpu/plot/backend/svg"
)

func main() {
	var (
		backend  = flag.String("T", "meta", "output backend")
		output   = flag.String("o", "", "output file (default stdout)")
		pageSize = flag.String("pagesize", "", "page size, e.g. a4 or letter,xsize=6in")
		bg       = flag.String("bg", "", "background color")
		bitmap   = flag.String("bitmapsize", "", "bitmap size, e.g. 640x480")
		pages    = flag.Int("pages", 1, "number of pages")
		list     = flag.Bool("list", false, "list backends and exit")
		verbose  = flag.Bool("v", false, "log dispatch decisions to stderr")
	)
	flag.Parse()

	if *list {
		fmt.Println(strings.Join(plot.Backends(), "\n"))
		return
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	plot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*backend, *output, *pageSize, *bg, *bitmap, *pages); err != nil {
		fmt.Fprintln(os.Stderr, "plotdemo:", err)
		os.Exit(1)
	}
}

func run(backend, output, pageSize, bg, bitmap string, pages int) (err error) {
	var w io.Writer = os.Stdout
	opts := []plot.Option{plot.WithErrorWriter(os.Stderr)}
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	} else if termenv.EnvColorProfile() == termenv.Ascii {
		// Colors are lost on a monochrome terminal; draw everything
		// visible in the foreground color instead.
		opts = append(opts, plot.WithEmulateColor(true))
	}
	if pageSize != "" {
		opts = append(opts, plot.WithPageSize(pageSize))
	}
	if bg != "" {
		opts = append(opts, plot.WithBackground(bg))
	}
	if bitmap != "" {
		opts = append(opts, plot.WithBitmapSize(bitmap))
	}

	p, err := plot.Open(backend, w, opts...)
	if err != nil {
		return err
	}
	for i := range pages {
		if err := sheet(p, i); err != nil {
			return fmt.Errorf("page %d: %w", i, err)
		}
	}
	return p.Close()
}

// sheet draws one page exercising lines, curves, fills, markers and text.
func sheet(p *plot.Plotter, page int) error {
	d := &drawer{p: p}
	d.do(p.BeginPage())
	d.do(p.Space(0, 0, 100, 100))

	// Line styles.
	for i, ls := range []plot.LineStyle{
		plot.LineSolid, plot.LineDotted, plot.LineDotDashed, plot.LineShortDashed,
		plot.LineLongDashed, plot.LineDotDotDashed, plot.LineDotDotDotDashed,
	} {
		y := 95 - float64(i)*3
		d.do(p.LineStyle(ls))
		d.do(p.Line(5, y, 45, y))
	}
	d.do(p.LineStyle(plot.LineSolid))

	// Wide lines with caps and joins.
	d.do(p.PushState())
	d.do(p.LineWidth(1.5))
	d.do(p.PenColorName("blue"))
	for i, c := range []plot.CapStyle{plot.CapButt, plot.CapRound, plot.CapSquare} {
		x := 55 + float64(i)*14
		d.do(p.CapStyle(c))
		d.do(p.JoinStyle(plot.JoinStyle(i)))
		d.do(p.Move(x, 75))
		d.do(p.Cont(x+5, 93))
		d.do(p.Cont(x+10, 75))
		d.do(p.EndPath())
	}
	d.do(p.PopState())

	// Curves.
	d.do(p.PenColorName("red"))
	d.do(p.Arc(25, 55, 40, 55, 25, 70))
	d.do(p.EllArc(25, 55, 35, 55, 25, 60))
	d.do(p.Bezier2(5, 45, 25, 75, 45, 45))
	d.do(p.Bezier3(5, 40, 15, 60, 35, 20, 45, 40))
	d.do(p.EndPath())

	// Fills.
	d.do(p.PenColorName("black"))
	d.do(p.FillColorName("yellow"))
	d.do(p.FillType(1))
	d.do(p.Box(55, 45, 70, 60))
	d.do(p.Circle(80, 52, 7))
	d.do(p.Ellipse(90, 40, 6, 3, 30))
	d.do(p.FillRule(plot.FillNonZero))
	star(d, 62, 30, 8)
	d.do(p.FillType(0))

	// Markers along a sine.
	for i := range 11 {
		x := 5 + float64(i)*4
		y := 20 + 8*math.Sin(float64(i)*math.Pi/5)
		d.do(p.Marker(x, y, plot.Marker(i+1), 2.5))
	}

	// Text.
	d.do(p.FontSize(4))
	d.do(p.Move(50, 10))
	d.do(p.AlignedLabel(plot.HCenter, plot.VBaseline, fmt.Sprintf("page %d: x\\sp2\\ep + y\\sb0\\eb", page+1)))
	d.do(p.TextAngle(90))
	d.do(p.Move(97, 50))
	d.do(p.AlignedLabel(plot.HCenter, plot.VCenter, p.Descriptor().Name))
	d.do(p.TextAngle(0))

	d.do(p.EndPage())
	return d.err
}

// star draws a self-intersecting five-pointed star as one closed path.
func star(d *drawer, cx, cy, r float64) {
	for i := range 5 {
		a := math.Pi/2 + float64(i*2)*2*math.Pi/5
		x, y := cx+r*math.Cos(a), cy+r*math.Sin(a)
		if i == 0 {
			d.do(d.p.Move(x, y))
		} else {
			d.do(d.p.Cont(x, y))
		}
	}
	d.do(d.p.ClosePath())
	d.do(d.p.EndPath())
}

// drawer keeps the first error of a sequence of plotter calls.
type drawer struct {
	p   *plot.Plotter
	err error
}

func (d *drawer) do(err error) {
	if d.err == nil {
		d.err = err
	}
}
