package plot

import (
	"io"
	"log/slog"
)

// Option configures a Plotter during construction.
//
// Example:
//
//	p, err := plot.Open("svg", w,
//	    plot.WithPageSize("a4,xsize=-10cm,ysize=10cm"),
//	    plot.WithBackground("black"),
//	)
type Option func(*options)

type options struct {
	params Params
	logger *slog.Logger
	errw   io.Writer
}

func defaultOptions() options {
	return options{params: DefaultParams()}
}

// WithParams replaces all parameters. Empty fields fall back to defaults.
func WithParams(p Params) Option {
	return func(o *options) {
		o.params = p.merge(DefaultParams())
	}
}

// WithPageSize sets the PAGESIZE parameter.
func WithPageSize(s string) Option {
	return func(o *options) {
		o.params.PageSize = s
	}
}

// WithBackground sets the initial background color by name.
func WithBackground(name string) Option {
	return func(o *options) {
		o.params.BgColor = name
	}
}

// WithEmulateColor requests that all colors be mapped to gray.
func WithEmulateColor(on bool) Option {
	return func(o *options) {
		o.params.EmulateColor = on
	}
}

// WithBitmapSize sets the pixel size used by bitmap backends, as "WxH".
func WithBitmapSize(s string) Option {
	return func(o *options) {
		o.params.BitmapSize = s
	}
}

// WithLogger sets a per-plotter logger instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithErrorWriter sets where the generic warn and error operations write
// their messages. By default messages only go to the logger.
func WithErrorWriter(w io.Writer) Option {
	return func(o *options) {
		o.errw = w
	}
}
