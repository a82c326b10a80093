package circuit

import (
	"slices"

	"qtermzx/errors"
)

// Circuit is an ordered gate list over a fixed register. Gates apply left
// to right.
type Circuit struct {
	NumQubits int
	Gates     []Gate
}

// New builds a circuit over at least numQubits qubits, widening the
// register to fit every gate.
func New(numQubits int, gates ...Gate) (Circuit, error) {
	c := Circuit{NumQubits: numQubits, Gates: slices.Clone(gates)}
	for _, g := range gates {
		c.NumQubits = max(c.NumQubits, g.MaxQubit()+1)
	}
	if err := c.Validate(); err != nil {
		return Circuit{}, err
	}
	return c, nil
}

// Validate checks every gate and that each fits the register.
func (c Circuit) Validate() error {
	for i, g := range c.Gates {
		if err := g.Validate(); err != nil {
			return errors.Wrapf(err, "gate %d", i)
		}
		if g.MaxQubit() >= c.NumQubits {
			return errors.Wrapf(ErrQubitOutOfRange, "gate %d (%s) on a %d-qubit register", i, g, c.NumQubits)
		}
	}
	return nil
}

// Concat appends o's gates. Both circuits must have the same width.
func (c Circuit) Concat(o Circuit) (Circuit, error) {
	if c.NumQubits != o.NumQubits {
		return Circuit{}, errors.Wrapf(ErrIncompatibleSupport, "concat %d-qubit circuit with %d-qubit circuit", c.NumQubits, o.NumQubits)
	}
	return Circuit{NumQubits: c.NumQubits, Gates: slices.Concat(c.Gates, o.Gates)}, nil
}

// Inverse reverses the gate order and inverts every gate.
func (c Circuit) Inverse() Circuit {
	out := Circuit{NumQubits: c.NumQubits, Gates: make([]Gate, len(c.Gates))}
	for i, g := range c.Gates {
		out.Gates[len(c.Gates)-1-i] = g.Inverse()
	}
	return out
}

// Gadgets returns the payload of every Gadget gate in order.
func (c Circuit) Gadgets() []Gadget {
	var out []Gadget
	for _, g := range c.Gates {
		if g.Kind == KindGadget {
			out = append(out, g.Gadget)
		}
	}
	return out
}

// Apply inserts the Clifford cl before gates[start:end] and its inverse
// after them, rewriting the block so the circuit's unitary is unchanged.
// Every gate in the block must be a Pauli rotation; each becomes a gadget
// conjugated through the inverse of cl.
func (c Circuit) Apply(cl Gate, start, end int) (Circuit, error) {
	if start < 0 || end > len(c.Gates) || start > end {
		return Circuit{}, errors.Wrapf(ErrQubitOutOfRange, "block [%d, %d) of %d gates", start, end, len(c.Gates))
	}
	if err := cl.Validate(); err != nil {
		return Circuit{}, err
	}
	if cl.MaxQubit() >= c.NumQubits {
		return Circuit{}, errors.Wrapf(ErrQubitOutOfRange, "%s on a %d-qubit register", cl, c.NumQubits)
	}
	canon, _ := cl.Canonical()
	if !canon.IsClifford() {
		return Circuit{}, errors.Wrapf(ErrNotClifford, "apply %s", cl)
	}

	inv := canon.Inverse()
	block := make([]Gate, 0, end-start+2)
	block = append(block, canon)
	for i, g := range c.Gates[start:end] {
		gadget, err := g.ToGadget()
		if err != nil {
			return Circuit{}, errors.Wrapf(err, "gate %d", start+i)
		}
		moved, err := Conjugate(gadget, inv)
		if err != nil {
			return Circuit{}, err
		}
		block = append(block, GadgetGate(moved))
	}
	block = append(block, inv)

	return Circuit{
		NumQubits: c.NumQubits,
		Gates:     slices.Concat(c.Gates[:start], block, c.Gates[end:]),
	}, nil
}

// rotation describes single-qubit gates that are rotations about X or Z.
func rotation(g Gate) (axis Pauli, phase float64, ok bool) {
	switch g.Kind {
	case KindXPhase, KindX, KindXPlus, KindXMinus:
		axis = X
	case KindZPhase, KindZ, KindZPlus, KindZMinus:
		axis = Z
	default:
		return I, 0, false
	}
	gadget, _ := g.ToGadget()
	return axis, gadget.Phase(), true
}

// fuse merges two adjacent gates. It returns the replacement gates, which
// may be empty, and whether the pair fused at all.
func fuse(a, b Gate) ([]Gate, bool) {
	if a.Kind == KindGadget && b.Kind == KindGadget {
		merged, err := a.Gadget.Combine(b.Gadget)
		if err != nil {
			return nil, false
		}
		if merged.IsIdentity() {
			return nil, true
		}
		return []Gate{GadgetGate(merged)}, true
	}

	if axa, pa, ok := rotation(a); ok {
		axb, pb, okb := rotation(b)
		if !okb || axa != axb || a.Qubit != b.Qubit {
			return nil, false
		}
		sum := XPhaseGate(a.Qubit, pa+pb)
		if axa == Z {
			sum = ZPhaseGate(a.Qubit, pa+pb)
		}
		if canon, keep := sum.Canonical(); keep {
			return []Gate{canon}, true
		}
		return nil, true
	}

	if a.Kind == b.Kind && a.Kind == KindH && a.Qubit == b.Qubit {
		return nil, true
	}
	if a.Kind == b.Kind && a.IsTwoQubit() && a.Control == b.Control && a.Target == b.Target {
		return nil, true
	}
	return nil, false
}

// Simplify fuses adjacent gates until nothing more combines: gadgets on the
// same Pauli string add, X and Z rotations on the same qubit add, and H, CX
// and CZ pairs cancel. Rotations by a multiple of π/2 come out as their
// Clifford names and identities are dropped.
func (c Circuit) Simplify() Circuit {
	var stack []Gate
	for _, gate := range c.Gates {
		g, keep := gate.Canonical()
		if !keep {
			continue
		}
		for {
			if len(stack) == 0 {
				stack = append(stack, g)
				break
			}
			top := stack[len(stack)-1]
			merged, ok := fuse(top, g)
			if !ok {
				stack = append(stack, g)
				break
			}
			stack = stack[:len(stack)-1]
			if len(merged) == 0 {
				break
			}
			g = merged[0]
		}
	}
	return Circuit{NumQubits: c.NumQubits, Gates: stack}
}

func (c Circuit) String() string {
	return FormatText(c)
}
