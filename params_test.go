package plot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeParams(t *testing.T) {
	tests := []struct {
		format string
		in     string
		want   Params
	}{
		{"toml", `
page_size = "a4,xsize=-10cm"
emulate_color = true
max_line_length = 100
`, Params{PageSize: "a4,xsize=-10cm", BgColor: "white", EmulateColor: true, BitmapSize: "570x570", MaxLineLength: 100}},
		{"yaml", `
bg_color: black
bitmap_size: 640x480
`, Params{PageSize: "letter", BgColor: "black", BitmapSize: "640x480"}},
		{"yml", ``, DefaultParams()},
	}
	for _, tt := range tests {
		got, err := DecodeParams(strings.NewReader(tt.in), tt.format)
		if err != nil {
			t.Errorf("DecodeParams(%s) = %v", tt.format, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("DecodeParams(%s) mismatch (-want +got):\n%s", tt.format, diff)
		}
	}
}

func TestDecodeParamsErrors(t *testing.T) {
	tests := []struct{ format, in string }{
		{"toml", `page_sise = "a4"`},
		{"yaml", "colour: red\n"},
		{"ini", "page_size=a4"},
	}
	for _, tt := range tests {
		if _, err := DecodeParams(strings.NewReader(tt.in), tt.format); err == nil {
			t.Errorf("DecodeParams(%s, %q) succeeded", tt.format, tt.in)
		}
	}
}

func TestLoadParams(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plot.toml")
	if err := os.WriteFile(path, []byte(`bg_color = "navy"`), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := LoadParams(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.BgColor != "navy" || p.PageSize != "letter" {
		t.Errorf("LoadParams() = %+v", p)
	}
	if _, err := LoadParams(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadParams() of a missing file succeeded")
	}
}

func TestBitmapSize(t *testing.T) {
	w, h, err := Params{BitmapSize: "640X480"}.bitmapSize()
	if err != nil || w != 640 || h != 480 {
		t.Errorf("bitmapSize() = %d, %d, %v", w, h, err)
	}
	if _, _, err := (Params{BitmapSize: "large"}).bitmapSize(); err == nil {
		t.Error("bitmapSize() accepted a malformed size")
	}
}

func TestInitRejectsBadParams(t *testing.T) {
	tests := []Option{
		WithPageSize("folio"),
		WithBackground("no-such-color"),
	}
	for _, opt := range tests {
		name, rec := registerRecorder(t, nil)
		p, err := New(name, nil, opt)
		if err != nil {
			t.Fatal(err)
		}
		if err := p.Init(); err == nil {
			t.Error("Init() accepted bad parameters")
		}
		if p.Phase() != PhaseTerminated || rec.count("initialize") != 0 {
			t.Errorf("phase %v, initialize calls %d", p.Phase(), rec.count("initialize"))
		}
		Unregister(name)
	}
}
