package circuit

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"qtermzx/errors"
)

// Pre-compiled regexps for the circuit text format.
var (
	qregRegex        = regexp.MustCompile(`^qreg\s+\w+\[(\d+)\];?$`)
	gadgetRegex      = regexp.MustCompile(`^gadget\s*\(([^)]*)\)\s+(\w+);?$`)
	singleParamRegex = regexp.MustCompile(`^(\w+)\s*\(([^)]*)\)\s+q\[(\d+)\];?$`)
	singleGateRegex  = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	twoQubitRegex    = regexp.MustCompile(`^(\w+(?:\.g)?)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
)

// singleNames maps text mnemonics to single-qubit kinds. The QASM names
// sx, sxdg, s and sdg are accepted as aliases.
var singleNames = map[string]Kind{
	"x":      KindX,
	"z":      KindZ,
	"h":      KindH,
	"xplus":  KindXPlus,
	"xminus": KindXMinus,
	"zplus":  KindZPlus,
	"zminus": KindZMinus,
	"sx":     KindXPlus,
	"sxdg":   KindXMinus,
	"s":      KindZPlus,
	"sdg":    KindZMinus,
}

// FormatText renders c in the line-oriented text format.
func FormatText(c Circuit) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.NumQubits)
	for _, g := range c.Gates {
		sb.WriteString(formatGate(g))
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatGate(g Gate) string {
	switch g.Kind {
	case KindGadget:
		return fmt.Sprintf("gadget(%s) %s;", FormatPhase(g.Gadget.Phase()*math.Pi), g.Gadget.PauliString(1))
	case KindXPhase:
		return fmt.Sprintf("rx(%s) q[%d];", FormatPhase(g.Phase*math.Pi), g.Qubit)
	case KindZPhase:
		return fmt.Sprintf("rz(%s) q[%d];", FormatPhase(g.Phase*math.Pi), g.Qubit)
	case KindCX, KindCZ:
		name := strings.ToLower(g.Kind.Name())
		if g.AsGadget {
			name += ".g"
		}
		return fmt.Sprintf("%s q[%d], q[%d];", name, g.Control, g.Target)
	}
	return fmt.Sprintf("%s q[%d];", strings.ToLower(g.Kind.Name()), g.Qubit)
}

// ParseText reads the text format. Blank lines, // comments and QASM
// headers are skipped. Angles are in radians and may use pi expressions.
func ParseText(text string) (Circuit, error) {
	numQubits := 0
	var gates []Gate

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") {
			continue
		}

		if matches := qregRegex.FindStringSubmatch(line); matches != nil {
			numQubits, _ = strconv.Atoi(matches[1])
			continue
		}

		g, err := parseLine(line)
		if err != nil {
			return Circuit{}, errors.Wrapf(err, "line %d", i+1)
		}
		gates = append(gates, g)
	}

	return New(numQubits, gates...)
}

func parseLine(line string) (Gate, error) {
	if matches := gadgetRegex.FindStringSubmatch(line); matches != nil {
		theta, err := ParsePhase(matches[1])
		if err != nil {
			return Gate{}, err
		}
		g, err := FromPauliString(matches[2], theta/math.Pi)
		if err != nil {
			return Gate{}, err
		}
		return GadgetGate(g), nil
	}

	if matches := twoQubitRegex.FindStringSubmatch(line); matches != nil {
		name := strings.ToLower(matches[1])
		asGadget := strings.HasSuffix(name, ".g")
		name = strings.TrimSuffix(name, ".g")
		c, _ := strconv.Atoi(matches[2])
		t, _ := strconv.Atoi(matches[3])

		var g Gate
		switch name {
		case "cx", "cnot":
			g = CXGate(c, t)
		case "cz":
			g = CZGate(c, t)
		default:
			return Gate{}, errors.Wrapf(ErrSyntax, "unknown two-qubit gate %q", matches[1])
		}
		g.AsGadget = asGadget
		return g, nil
	}

	if matches := singleParamRegex.FindStringSubmatch(line); matches != nil {
		theta, err := ParsePhase(matches[2])
		if err != nil {
			return Gate{}, err
		}
		q, _ := strconv.Atoi(matches[3])
		switch strings.ToLower(matches[1]) {
		case "rx":
			return XPhaseGate(q, theta/math.Pi), nil
		case "rz":
			return ZPhaseGate(q, theta/math.Pi), nil
		}
		return Gate{}, errors.Wrapf(ErrSyntax, "unknown rotation %q", matches[1])
	}

	if matches := singleGateRegex.FindStringSubmatch(line); matches != nil {
		kind, ok := singleNames[strings.ToLower(matches[1])]
		if !ok {
			return Gate{}, errors.WithHint(
				errors.Wrapf(ErrSyntax, "unknown gate %q", matches[1]),
				"single-qubit gates are x, z, h, xplus, xminus, zplus, zminus, rx and rz",
			)
		}
		q, _ := strconv.Atoi(matches[2])
		return Gate{Kind: kind, Qubit: q}, nil
	}

	return Gate{}, errors.Wrapf(ErrSyntax, "unrecognised statement %q", line)
}
