package circuit

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"qtermzx/errors"
)

// phaseTolerance is the distance under which two phases (in units of π)
// are the same.
const phaseTolerance = 1e-9

// piExprRegex matches expressions like: pi, 2pi, 2*pi, pi/2, 3pi/4, 3*pi/4, -pi, -pi/2
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// NormalizePhase reduces a phase in units of π into [0, 2), snapping values
// within tolerance of a full turn to 0.
func NormalizePhase(p float64) float64 {
	p = math.Mod(p, 2)
	if p < 0 {
		p += 2
	}
	if p < phaseTolerance || 2-p < phaseTolerance {
		return 0
	}
	return p
}

// PhasesEqual compares two phases modulo 2.
func PhasesEqual(a, b float64) bool {
	d := NormalizePhase(a - b)
	return d < phaseTolerance || 2-d < phaseTolerance
}

// ParsePhase parses an angle in radians, accepting plain numbers and pi
// expressions.
//
// Supported formats:
//   - Plain numbers: "1.5707", "3.14", "-0.5"
//   - Pi constant: "pi"
//   - Pi fractions: "pi/2", "pi/4", "pi/3"
//   - Coefficients: "2pi", "2*pi", "3pi/4", "3*pi/4"
//   - Negative: "-pi", "-pi/2", "-3*pi/4"
func ParsePhase(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Wrap(ErrSyntax, "empty angle")
	}

	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, nil
	}

	matches := piExprRegex.FindStringSubmatch(strings.ToLower(s))
	if matches == nil {
		return 0, errors.Wrapf(ErrSyntax, "angle %q", s)
	}

	coeff := 1.0
	if matches[2] != "" {
		var err error
		if coeff, err = strconv.ParseFloat(matches[2], 64); err != nil {
			return 0, errors.Wrapf(ErrSyntax, "angle coefficient %q", matches[2])
		}
	}
	result := coeff * math.Pi
	if matches[3] != "" {
		denom, err := strconv.ParseFloat(matches[3], 64)
		if err != nil || denom == 0 {
			return 0, errors.Wrapf(ErrSyntax, "angle denominator %q", matches[3])
		}
		result /= denom
	}
	if matches[1] == "-" {
		result = -result
	}
	return result, nil
}

// FormatPhase formats radians, using pi notation for common fractions.
func FormatPhase(val float64) string {
	type piForm struct {
		value   float64
		display string
	}
	piForms := []piForm{
		{2 * math.Pi, "2*pi"},
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 3, "pi/3"},
		{math.Pi / 4, "pi/4"},
		{math.Pi / 6, "pi/6"},
		{math.Pi / 8, "pi/8"},
		{3 * math.Pi / 4, "3*pi/4"},
		{3 * math.Pi / 2, "3*pi/2"},
		{2 * math.Pi / 3, "2*pi/3"},
		{5 * math.Pi / 4, "5*pi/4"},
		{7 * math.Pi / 4, "7*pi/4"},
	}

	if math.Abs(val) < 1e-10 {
		return "0"
	}
	for _, pf := range piForms {
		if math.Abs(val-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}
	return strconv.FormatFloat(val, 'g', -1, 64)
}

// FormatPiUnits formats a phase given in units of π, e.g. 0.5 → "π/2".
func FormatPiUnits(p float64) string {
	p = NormalizePhase(p)
	if p == 0 {
		return "0"
	}
	for _, den := range []int{1, 2, 3, 4, 6, 8} {
		num := p * float64(den)
		if math.Abs(num-math.Round(num)) > 1e-9 {
			continue
		}
		n := int(math.Round(num))
		switch {
		case den == 1 && n == 1:
			return "π"
		case den == 1:
			return fmt.Sprintf("%dπ", n)
		case n == 1:
			return fmt.Sprintf("π/%d", den)
		default:
			return fmt.Sprintf("%dπ/%d", n, den)
		}
	}
	return fmt.Sprintf("%.4gπ", p)
}
