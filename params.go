package plot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Params holds the device driver parameters consumed before a plotter is
// initialized.
type Params struct {
	// PageSize is a PAGESIZE value, see [ParsePageSize].
	PageSize string `toml:"page_size" yaml:"page_size"`
	// BgColor names the initial background color.
	BgColor string `toml:"bg_color" yaml:"bg_color"`
	// EmulateColor maps every color to gray.
	EmulateColor bool `toml:"emulate_color" yaml:"emulate_color"`
	// BitmapSize is "WxH" in pixels, used by bitmap backends.
	BitmapSize string `toml:"bitmap_size" yaml:"bitmap_size"`
	// MaxLineLength overrides the descriptor's maximum unfilled path length
	// when positive.
	MaxLineLength int `toml:"max_line_length" yaml:"max_line_length"`
}

// DefaultParams returns the parameters used when none are supplied.
func DefaultParams() Params {
	return Params{
		PageSize:   "letter",
		BgColor:    "white",
		BitmapSize: "570x570",
	}
}

// bitmapSize parses BitmapSize.
func (p Params) bitmapSize() (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(strings.ToLower(p.BitmapSize), "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("plot: bitmap size %q: %w", p.BitmapSize, err)
	}
	return w, h, nil
}

// merge fills the empty fields of p from d.
func (p Params) merge(d Params) Params {
	if p.PageSize == "" {
		p.PageSize = d.PageSize
	}
	if p.BgColor == "" {
		p.BgColor = d.BgColor
	}
	if p.BitmapSize == "" {
		p.BitmapSize = d.BitmapSize
	}
	return p
}

// LoadParams reads parameters from a TOML (.toml) or YAML (.yaml, .yml)
// file. Fields missing from the file keep their defaults.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("plot: load params: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return DecodeParams(bytes.NewReader(data), format)
}

// DecodeParams decodes parameters in the given format ("toml" or "yaml").
func DecodeParams(r io.Reader, format string) (Params, error) {
	var p Params
	switch format {
	case "toml":
		if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&p); err != nil {
			return Params{}, fmt.Errorf("plot: decode toml params: %w", err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
			return Params{}, fmt.Errorf("plot: decode yaml params: %w", err)
		}
	default:
		return Params{}, fmt.Errorf("plot: unsupported params format %q", format)
	}
	return p.merge(DefaultParams()), nil
}
