package circuit

import (
	"math"
	"testing"
)

func TestParsePhase(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		// Plain numbers
		{"1.5707", 1.5707, true},
		{"-0.5", -0.5, true},
		{"0", 0, true},
		{"3.14e-2", 0.0314, true},

		// Pi constant
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},

		// Pi fractions
		{"pi/2", math.Pi / 2, true},
		{"pi/4", math.Pi / 4, true},
		{"pi/8", math.Pi / 8, true},

		// Coefficients
		{"2pi", 2 * math.Pi, true},
		{"3pi/4", 3 * math.Pi / 4, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"0.5*pi", math.Pi / 2, true},

		// Negative
		{"-pi", -math.Pi, true},
		{"-pi/2", -math.Pi / 2, true},
		{"-3*pi/4", -3 * math.Pi / 4, true},

		// Whitespace
		{" pi / 2 ", math.Pi / 2, true},
		{" 3 * pi / 4 ", 3 * math.Pi / 4, true},

		// Invalid
		{"", 0, false},
		{"abc", 0, false},
		{"pi/0", 0, false},
		{"pi/", 0, false},
	}

	for _, tt := range tests {
		got, err := ParsePhase(tt.input)
		if (err == nil) != tt.ok {
			t.Errorf("ParsePhase(%q): err=%v, want ok=%v", tt.input, err, tt.ok)
			continue
		}
		if err == nil && math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("ParsePhase(%q) = %g, want %g", tt.input, got, tt.want)
		}
	}
}

func TestFormatPhase(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{3 * math.Pi / 4, "3*pi/4"},
		{3 * math.Pi / 2, "3*pi/2"},
		{-math.Pi / 2, "-pi/2"},
		{2 * math.Pi, "2*pi"},
		{1.5, "1.5"},
		{0, "0"},
		{0.123456789, "0.123456789"},
	}

	for _, tt := range tests {
		if got := FormatPhase(tt.input); got != tt.want {
			t.Errorf("FormatPhase(%g) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatPiUnits(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0"},
		{2, "0"},
		{1, "π"},
		{0.5, "π/2"},
		{1.5, "3π/2"},
		{-0.5, "3π/2"},
		{0.25, "π/4"},
		{0.75, "3π/4"},
		{1.0 / 3, "π/3"},
		{0.125, "π/8"},
		{0.1, "0.1π"},
	}

	for _, tt := range tests {
		if got := FormatPiUnits(tt.input); got != tt.want {
			t.Errorf("FormatPiUnits(%g) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizePhase(t *testing.T) {
	tests := []struct {
		input, want float64
	}{
		{0, 0},
		{2, 0},
		{-0.5, 1.5},
		{2.5, 0.5},
		{4 - 1e-12, 0},
		{1e-12, 0},
	}
	for _, tt := range tests {
		if got := NormalizePhase(tt.input); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("NormalizePhase(%g) = %g, want %g", tt.input, got, tt.want)
		}
	}
	if !PhasesEqual(1.999999999999, 0) {
		t.Errorf("PhasesEqual should wrap around 2")
	}
}
