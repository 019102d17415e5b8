package plot

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want []textRun
	}{
		{"plain", []textRun{{text: "plain", size: 1}}},
		{`a\spb\ep\\c\fBd`, []textRun{
			{text: "a", size: 1},
			{text: "b", size: scriptScale, rise: scriptRise},
			{text: `\c`, size: 1},
			{text: "d", style: 1, styled: true, size: 1},
		}},
		{`x\sb2\eb`, []textRun{
			{text: "x", size: 1},
			{text: "2", size: scriptScale, rise: -scriptDrop},
		}},
		{`\zz`, []textRun{{text: `\zz`, size: 1}}},
		{`\fB\fIbi\fRr`, []textRun{
			{text: "bi", style: 3, styled: true, size: 1},
			{text: "r", style: 0, styled: true, size: 1},
		}},
		{`e\ep`, []textRun{{text: "e", size: 1}}},
	}
	for _, tt := range tests {
		got := parseEscapes(tt.in)
		if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(textRun{}), approx); diff != "" {
			t.Errorf("parseEscapes(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestLabelOutline(t *testing.T) {
	name, rec := registerRecorder(t, nil)
	p := openPage(t, name, nil)
	if err := p.Move(0.1, 0.5); err != nil {
		t.Fatal(err)
	}
	w, err := p.LabelWidth("Hello")
	if err != nil {
		t.Fatal(err)
	}
	if w <= 0 {
		t.Fatalf("LabelWidth() = %g", w)
	}
	if err := p.Label("Hello"); err != nil {
		t.Fatal(err)
	}
	if rec.count("paint-path") == 0 {
		t.Fatal("outline text painted no paths")
	}
	for _, path := range rec.paths {
		if !path.Style.Fill || path.Style.Pen {
			t.Fatalf("glyph style fill=%v pen=%v, want fill only", path.Style.Fill, path.Style.Pen)
		}
		if path.Style.FillColor != path.Style.PenColor {
			t.Fatal("glyphs must be filled with the pen color")
		}
	}
	if got, want := p.State().Pos, Pt(0.1+w, 0.5); !cmp.Equal(got, want, approx) {
		t.Errorf("cursor = %v, want %v", got, want)
	}
}

func TestFontFallbackWarns(t *testing.T) {
	name, rec := registerRecorder(t, nil)
	p := openPage(t, name, nil)
	if err := p.FontName("NoSuchFont"); err != nil {
		t.Fatal(err)
	}
	for range 2 {
		if err := p.Label("x"); err != nil {
			t.Fatal(err)
		}
	}
	if len(rec.warnings) != 1 || !strings.Contains(rec.warnings[0], "NoSuchFont") {
		t.Errorf("warnings = %q, want one about NoSuchFont", rec.warnings)
	}
	if got := p.FontFace().Name(); got != "go" {
		t.Errorf("fallback face = %q, want go", got)
	}
	if rec.count("paint-path") == 0 {
		t.Error("fallback font drew nothing")
	}
}

func nativeText(d *Descriptor) {
	d.DefaultFont = FontNative
	d.Caps.FontFamilies = Yes
	d.HorizontalJustification = false
	d.VerticalJustification = false
}

func TestNativeTextJustification(t *testing.T) {
	name, rec := registerRecorder(t, nativeText)
	p := openPage(t, name, nil)
	if err := p.Move(0.5, 0.5); err != nil {
		t.Fatal(err)
	}
	w, err := p.LabelWidth("abc")
	if err != nil {
		t.Fatal(err)
	}
	if err := p.AlignedLabel(HRight, VTop, "abc"); err != nil {
		t.Fatal(err)
	}
	if len(rec.texts) != 1 {
		t.Fatalf("paint-text calls = %d, want 1", len(rec.texts))
	}
	call := rec.texts[0]
	if call.h != HLeft || call.v != VBaseline {
		t.Errorf("justification passed on as %v/%v, want left/baseline", call.h, call.v)
	}
	if math.Abs(call.at.X-(0.5-w)) > 1e-9 {
		t.Errorf("anchor x = %g, want %g", call.at.X, 0.5-w)
	}
	if call.at.Y >= 0.5 {
		t.Errorf("top-justified baseline at y = %g, want below the cursor", call.at.Y)
	}
	// Right-justified labels leave the cursor where it was.
	if got := p.State().Pos; !cmp.Equal(got, Pt(0.5, 0.5), approx) {
		t.Errorf("cursor = %v, want (0.5,0.5)", got)
	}
}

func TestEscapedLabelGeneric(t *testing.T) {
	name, rec := registerRecorder(t, nativeText)
	p := openPage(t, name, nil)
	if err := p.Move(0, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := p.Label(`x\sp2\ep`); err != nil {
		t.Fatal(err)
	}
	if rec.count("paint-text-with-escapes") != 0 {
		t.Error("escapes dispatched to a backend without escape support")
	}
	if len(rec.texts) != 2 {
		t.Fatalf("paint-text calls = %d, want 2", len(rec.texts))
	}
	base, sup := rec.texts[0], rec.texts[1]
	if sup.at.Y <= base.at.Y || sup.at.X <= base.at.X {
		t.Errorf("superscript at %v, base at %v", sup.at, base.at)
	}
	if math.Abs(sup.size-base.size*scriptScale) > 1e-12 {
		t.Errorf("superscript size %g, want %g", sup.size, base.size*scriptScale)
	}
	if p.State().FontSize != -1 {
		t.Errorf("font size not restored: %g", p.State().FontSize)
	}
	if p.State().Pos.X <= sup.at.X {
		t.Error("cursor did not advance past the label")
	}
}

func TestEscapedLabelNative(t *testing.T) {
	name, rec := registerRecorder(t, func(d *Descriptor) {
		nativeText(d)
		d.Caps.EscapedStrings = Yes
	})
	p := openPage(t, name, nil)
	if err := p.Label(`a\fBb`); err != nil {
		t.Fatal(err)
	}
	if rec.count("paint-text-with-escapes") != 1 {
		t.Errorf("calls = %v, want paint-text-with-escapes", rec.calls)
	}
}

func TestTextAngle(t *testing.T) {
	name, _ := registerRecorder(t, nil)
	p := openPage(t, name, nil)
	if err := p.TextAngle(90); err != nil {
		t.Fatal(err)
	}
	w, err := p.LabelWidth("abc")
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Label("abc"); err != nil {
		t.Fatal(err)
	}
	if got := p.State().Pos; !cmp.Equal(got, Pt(0, w), cmp.Comparer(func(a, b float64) bool {
		return math.Abs(a-b) < 1e-9
	})) {
		t.Errorf("cursor = %v, want (0,%g)", got, w)
	}
}
