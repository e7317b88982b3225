package mach

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", ColorWhite},
		{"#000000", ColorBlack},
		{"#ff000080", Color{1, 0, 0, 128.0 / 255}},
		{"rgb(255, 0, 0)", Color{1, 0, 0, 1}},
		{"rgba(0, 0, 255, 0.5)", Color{0, 0, 1, 0.5}},
		{"RGB(0,255,0)", Color{0, 1, 0, 1}},
		{"hsl(120, 100%, 50%)", Color{0, 1, 0, 1}},
		{"hsla(0, 100%, 50%, 0.25)", Color{1, 0, 0, 0.25}},
		{"red", Red},
		{" LightBlue ", LightBlue},
		{"transparent", Color{}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if !approxEqual(got.R, tt.want.R, 1e-6) || !approxEqual(got.G, tt.want.G, 1e-6) ||
			!approxEqual(got.B, tt.want.B, 1e-6) || !approxEqual(got.A, tt.want.A, 1e-6) {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"#zzz",
		"rgb(1, 2)",
		"rgb(a, b, c)",
		"rgb(1, 2, 3",
		"cmyk(0, 0, 0, 1)",
		"notacolor",
	} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) succeeded, want error", in)
		}
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Color{1, 0, 0, 1}, "#ff0000"},
		{Color{1, 0, 0, 0.5}, "#ff000080"},
		{Color{0, 0, 0, 0}, "#00000000"},
		{Color{2, -1, 0, 1}, "#ff0000"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("%+v.Hex() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	for _, c := range []Color{Red, LightGreen, Purple, Blue.WithAlpha(0)} {
		back, err := ParseColor(c.Hex())
		if err != nil {
			t.Fatal(err)
		}
		if back.Hex() != c.Hex() {
			t.Errorf("round trip %s -> %s", c.Hex(), back.Hex())
		}
	}
}

func TestColorBlend(t *testing.T) {
	got := Color{0, 0, 0, 0}.Blend(ColorWhite, 0.5)
	for _, v := range []float64{got.R, got.G, got.B, got.A} {
		assertNear(t, "component", v, 0.5)
	}
	if Red.Blend(Blue, 0) != Red {
		t.Error("Blend at 0 should return the receiver")
	}
}

func TestOpacity(t *testing.T) {
	if got := Opacity(Red, 0.3).A; got != 0.3 {
		t.Errorf("Opacity(0.3).A = %v", got)
	}
	if got := Opacity(Red, 2).A; got != 1 {
		t.Errorf("Opacity(2).A = %v, want 1", got)
	}
	if got := Opacity(Red, -1).A; got != 0 {
		t.Errorf("Opacity(-1).A = %v, want 0", got)
	}
}

func TestColorRGBAIsPremultiplied(t *testing.T) {
	got := color.RGBAModel.Convert(Color{1, 0.5, 0, 0.5}).(color.RGBA)
	want := color.RGBA{R: 128, G: 64, B: 0, A: 128}
	if got != want {
		t.Errorf("RGBA = %+v, want %+v", got, want)
	}
}
