package plot

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

const mmPerInch = 25.4

// PageSize is a resolved PAGESIZE parameter. All lengths are in inches.
// The viewport is the square (by default) region of the page that the
// normalized unit square is mapped onto.
type PageSize struct {
	Name string

	Width, Height float64

	// ViewportWidth and ViewportHeight may be negative, requesting a flip.
	ViewportWidth, ViewportHeight float64

	// XOrigin and YOrigin locate the lower left corner of the viewport.
	XOrigin, YOrigin float64
	// XOffset and YOffset shift the viewport after positioning.
	XOffset, YOffset float64
}

type pageType struct {
	names    []string
	width    float64
	height   float64
	viewport float64
}

var pageTypes = []pageType{
	{names: []string{"a", "letter"}, width: 8.5, height: 11, viewport: 8.0},
	{names: []string{"b", "tabloid"}, width: 11, height: 17, viewport: 10.0},
	{names: []string{"c"}, width: 17, height: 22, viewport: 16.0},
	{names: []string{"d"}, width: 22, height: 34, viewport: 20.0},
	{names: []string{"e"}, width: 34, height: 44, viewport: 32.0},
	{names: []string{"legal"}, width: 8.5, height: 14, viewport: 8.0},
	{names: []string{"ledger"}, width: 17, height: 11, viewport: 10.0},
	{names: []string{"a4"}, width: 8.27, height: 11.69, viewport: 7.8},
	{names: []string{"a3"}, width: 11.69, height: 16.54, viewport: 10.5},
	{names: []string{"a2"}, width: 16.54, height: 23.39, viewport: 15.6},
	{names: []string{"a1"}, width: 23.39, height: 33.11, viewport: 22.2},
	{names: []string{"a0"}, width: 33.11, height: 46.81, viewport: 31.2},
	{names: []string{"b5"}, width: 6.93, height: 9.84, viewport: 6.5},
}

// ErrUnknownPageSize is returned for page type names not in the table.
var ErrUnknownPageSize = errors.New("plot: unknown page size")

var (
	pageSizeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Number", Pattern: `(?:\d+\.?\d*|\.\d+)`},
		{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_]*`},
		{Name: "Punct", Pattern: `[,=-]`},
		{Name: "Whitespace", Pattern: `[ \t]+`},
	})

	pageSizeParser = participle.MustBuild[pageSizeExpr](
		participle.Lexer(pageSizeLexer),
		participle.Elide("Whitespace"),
	)
)

// pageSizeExpr is the grammar of a PAGESIZE value, for example
// "a4,xsize=10cm,ysize=-10cm,xorigin=1in".
type pageSizeExpr struct {
	Name    string            `parser:"@Ident"`
	Options []*pageSizeOption `parser:"( ',' @@ )*"`
}

type pageSizeOption struct {
	Key   string  `parser:"@Ident '='"`
	Neg   bool    `parser:"@'-'?"`
	Value float64 `parser:"@Number"`
	Unit  string  `parser:"@Ident?"`
}

func (o *pageSizeOption) inches() (float64, error) {
	v := o.Value
	if o.Neg {
		v = -v
	}
	switch strings.ToLower(o.Unit) {
	case "", "in":
		return v, nil
	case "cm":
		return v / 2.54, nil
	case "mm":
		return v / mmPerInch, nil
	case "pt":
		return v / 72, nil
	default:
		return 0, fmt.Errorf("plot: page size: unknown unit %q", o.Unit)
	}
}

// ParsePageSize parses a PAGESIZE value: a page type name optionally
// followed by comma-separated xsize, ysize, xorigin, yorigin, xoffset and
// yoffset settings. Lengths take an in, cm, mm or pt suffix (default in).
// Unless given explicitly, the viewport is centred on the page.
func ParsePageSize(s string) (PageSize, error) {
	expr, err := pageSizeParser.ParseString("PAGESIZE", s)
	if err != nil {
		return PageSize{}, fmt.Errorf("plot: page size %q: %w", s, err)
	}

	pt, ok := lookupPageType(expr.Name)
	if !ok {
		return PageSize{}, fmt.Errorf("%w: %q", ErrUnknownPageSize, expr.Name)
	}
	ps := PageSize{
		Name:           pt.names[0],
		Width:          pt.width,
		Height:         pt.height,
		ViewportWidth:  pt.viewport,
		ViewportHeight: pt.viewport,
	}

	var haveXOrigin, haveYOrigin bool
	for _, opt := range expr.Options {
		v, err := opt.inches()
		if err != nil {
			return PageSize{}, err
		}
		switch strings.ToLower(opt.Key) {
		case "xsize":
			ps.ViewportWidth = v
		case "ysize":
			ps.ViewportHeight = v
		case "xorigin":
			ps.XOrigin, haveXOrigin = v, true
		case "yorigin":
			ps.YOrigin, haveYOrigin = v, true
		case "xoffset":
			ps.XOffset = v
		case "yoffset":
			ps.YOffset = v
		default:
			return PageSize{}, fmt.Errorf("plot: page size: unknown setting %q", opt.Key)
		}
	}
	if ps.ViewportWidth == 0 || ps.ViewportHeight == 0 {
		return PageSize{}, fmt.Errorf("plot: page size %q: zero viewport dimension", s)
	}
	if !haveXOrigin {
		ps.XOrigin = (ps.Width - math.Abs(ps.ViewportWidth)) / 2
	}
	if !haveYOrigin {
		ps.YOrigin = (ps.Height - math.Abs(ps.ViewportHeight)) / 2
	}
	return ps, nil
}

func lookupPageType(name string) (pageType, bool) {
	name = strings.ToLower(name)
	for _, pt := range pageTypes {
		for _, n := range pt.names {
			if n == name {
				return pt, true
			}
		}
	}
	return pageType{}, false
}
