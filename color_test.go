package plot

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"white", White, true},
		{"Black", Black, true},
		{"navy", RGB8(0, 0, 128), true},
		{"light gray", RGB8(211, 211, 211), true},
		{"#ff8000", RGB8(255, 128, 0), true},
		{"#zz0000", Color{}, false},
		{"no-such-color", Color{}, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseColor(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorGray(t *testing.T) {
	for _, c := range []Color{White, Black, RGB8(255, 0, 0), RGB8(12, 200, 40)} {
		g := c.Gray()
		if g.R != g.G || g.G != g.B {
			t.Errorf("%v.Gray() = %v, not gray", c, g)
		}
	}
	if White.Gray() != White || Black.Gray() != Black {
		t.Error("gray must keep black and white")
	}
}

func TestColorHex(t *testing.T) {
	if got := RGB8(0x12, 0xab, 0xff).Hex(); got != "#12abff" {
		t.Errorf("Hex() = %q", got)
	}
}

func TestFillLevel(t *testing.T) {
	s := defaultDrawState("go")
	s.FillColor = Black
	s.FillType = 1
	if got := s.fillColor(); got != Black {
		t.Errorf("level 1 = %v, want black", got)
	}
	s.FillType = FillMax
	if got := s.fillColor(); got != White {
		t.Errorf("level max = %v, want white", got)
	}
}
