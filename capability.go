package plot

import (
	"errors"
	"fmt"
)

// Tristate is a capability flag: a backend supports a feature, does not,
// or may support it depending on runtime conditions.
//
// The zero value is deliberately not a valid answer. A [Descriptor] that
// leaves any flag at its zero value is rejected by [Register].
type Tristate uint8

const (
	tristateUnset Tristate = iota
	No
	Yes
	Maybe
)

// String returns "no", "yes", "maybe" or "unset".
func (t Tristate) String() string {
	switch t {
	case No:
		return "no"
	case Yes:
		return "yes"
	case Maybe:
		return "maybe"
	default:
		return "unset"
	}
}

// Sure reports whether the feature is definitely available.
// Maybe counts as unavailable so that callers take the conservative path.
func (t Tristate) Sure() bool { return t == Yes }

// OutputModel describes when a backend writes its output.
type OutputModel uint8

const (
	// OutputRealTime backends stream each primitive as it is drawn.
	OutputRealTime OutputModel = iota + 1
	// OutputOnePage backends buffer a single page and write it at EndPage.
	// Only one page may be drawn per plotter.
	OutputOnePage
	// OutputPagesAllAtOnce backends buffer every page and write the whole
	// document when the plotter is terminated.
	OutputPagesAllAtOnce
)

// String returns the model name.
func (m OutputModel) String() string {
	switch m {
	case OutputRealTime:
		return "real-time"
	case OutputOnePage:
		return "one-page"
	case OutputPagesAllAtOnce:
		return "pages-all-at-once"
	default:
		return "unset"
	}
}

// SinglePage reports whether the model allows exactly one page.
func (m OutputModel) SinglePage() bool { return m == OutputOnePage }

// FontType selects how text is rendered when a label is drawn.
type FontType uint8

const (
	// FontOutline renders text as filled glyph outlines through paint-path.
	FontOutline FontType = iota + 1
	// FontNative hands text to the backend's paint-text operation.
	FontNative
)

// Sizing selects where a backend's device bounding box comes from.
type Sizing uint8

const (
	// SizingFixed uses Descriptor.Geometry unchanged.
	SizingFixed Sizing = iota + 1
	// SizingViewport derives a real-valued device box, in millimetres,
	// from the page viewport (origin and size) of the PAGESIZE parameter.
	SizingViewport
	// SizingBitmap derives an integer pixel box from the BitmapSize parameter.
	SizingBitmap
)

// Capabilities holds the user-queryable feature flags of a backend.
type Capabilities struct {
	WideLines          Tristate
	DashArray          Tristate
	SolidFill          Tristate
	OddWindingFill     Tristate
	NonzeroWindingFill Tristate
	SettableBackground Tristate
	EscapedStrings     Tristate
	FontFamilies       Tristate
}

func (c Capabilities) each(fn func(name string, v Tristate) error) error {
	fields := []struct {
		name string
		v    Tristate
	}{
		{"WideLines", c.WideLines},
		{"DashArray", c.DashArray},
		{"SolidFill", c.SolidFill},
		{"OddWindingFill", c.OddWindingFill},
		{"NonzeroWindingFill", c.NonzeroWindingFill},
		{"SettableBackground", c.SettableBackground},
		{"EscapedStrings", c.EscapedStrings},
		{"FontFamilies", c.FontFamilies},
	}
	for _, f := range fields {
		if err := fn(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// Descriptor is the static, read-only description of a backend.
// It is supplied once to [Register] and never mutated afterwards.
//
// Every field has exactly one authoritative value declared by the backend;
// there is no inherited default to override.
type Descriptor struct {
	// Name is the identity tag used to look the backend up.
	Name string

	Output OutputModel
	Caps   Capabilities

	// DefaultFont selects native text or outline text.
	DefaultFont FontType
	// DefaultFamily names the font used when none has been requested.
	DefaultFamily string

	HorizontalJustification bool
	VerticalJustification   bool

	// MaxUnfilledPathLength is the segment count above which an unfilled
	// path is painted early, if the backend reports it flushable.
	MaxUnfilledPathLength int

	// Scaling holds the native-rendering limit for each primitive kind.
	Scaling ScalingPolicy

	// Geometry is the default device geometry; see Sizing.
	Geometry DeviceGeometry
	Sizing   Sizing
	// FlipOnNegativeSize flips the normalized bounds of an axis when the
	// page viewport size along it is negative.
	FlipOnNegativeSize bool

	// Delegate lists the operations bound to the generic implementation.
	Delegate OpSet
}

// ErrInvalidDescriptor is wrapped by errors returned for malformed descriptors.
var ErrInvalidDescriptor = errors.New("plot: invalid descriptor")

// Validate checks that every field of d carries an explicit value.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidDescriptor)
	}
	if d.Output < OutputRealTime || d.Output > OutputPagesAllAtOnce {
		return fmt.Errorf("%w: %s: output model unset", ErrInvalidDescriptor, d.Name)
	}
	err := d.Caps.each(func(name string, v Tristate) error {
		if v < No || v > Maybe {
			return fmt.Errorf("%w: %s: capability %s unset", ErrInvalidDescriptor, d.Name, name)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if d.DefaultFont != FontOutline && d.DefaultFont != FontNative {
		return fmt.Errorf("%w: %s: default font type unset", ErrInvalidDescriptor, d.Name)
	}
	if d.MaxUnfilledPathLength <= 0 {
		return fmt.Errorf("%w: %s: max unfilled path length must be positive", ErrInvalidDescriptor, d.Name)
	}
	if err := d.Scaling.validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDescriptor, d.Name, err)
	}
	switch d.Sizing {
	case SizingFixed:
		if err := d.Geometry.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidDescriptor, d.Name, err)
		}
	case SizingViewport, SizingBitmap:
	default:
		return fmt.Errorf("%w: %s: sizing unset", ErrInvalidDescriptor, d.Name)
	}
	return nil
}
