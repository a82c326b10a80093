package circuit

import (
	"fmt"

	"qtermzx/errors"
)

// Kind is the closed set of primitives a circuit can hold.
type Kind int

const (
	KindGadget Kind = iota
	KindXPhase
	KindZPhase
	KindX
	KindZ
	KindH
	KindXPlus
	KindXMinus
	KindZPlus
	KindZMinus
	KindCX
	KindCZ
)

var kindNames = map[Kind]string{
	KindGadget: "Gadget",
	KindXPhase: "XPhase",
	KindZPhase: "ZPhase",
	KindX:      "X",
	KindZ:      "Z",
	KindH:      "H",
	KindXPlus:  "XPlus",
	KindXMinus: "XMinus",
	KindZPlus:  "ZPlus",
	KindZMinus: "ZMinus",
	KindCX:     "CX",
	KindCZ:     "CZ",
}

// Name returns the tag used in serialized records.
func (k Kind) Name() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) String() string { return k.Name() }

// KindByName resolves a record tag.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Gate is one primitive. Which fields are meaningful depends on Kind:
// Qubit for single-qubit kinds, Control and Target for CX and CZ, Phase for
// XPhase and ZPhase, Gadget for KindGadget.
type Gate struct {
	Kind    Kind
	Qubit   int
	Control int
	Target  int
	Phase   float64
	Gadget  Gadget
	// AsGadget asks the builder to draw a CX or CZ in hub form.
	AsGadget bool
}

func GadgetGate(g Gadget) Gate { return Gate{Kind: KindGadget, Gadget: g} }
func XPhaseGate(q int, phase float64) Gate { return Gate{Kind: KindXPhase, Qubit: q, Phase: NormalizePhase(phase)} }
func ZPhaseGate(q int, phase float64) Gate { return Gate{Kind: KindZPhase, Qubit: q, Phase: NormalizePhase(phase)} }
func XGate(q int) Gate { return Gate{Kind: KindX, Qubit: q} }
func ZGate(q int) Gate { return Gate{Kind: KindZ, Qubit: q} }
func HGate(q int) Gate { return Gate{Kind: KindH, Qubit: q} }
func XPlusGate(q int) Gate { return Gate{Kind: KindXPlus, Qubit: q} }
func XMinusGate(q int) Gate { return Gate{Kind: KindXMinus, Qubit: q} }
func ZPlusGate(q int) Gate { return Gate{Kind: KindZPlus, Qubit: q} }
func ZMinusGate(q int) Gate { return Gate{Kind: KindZMinus, Qubit: q} }
func CXGate(c, t int) Gate { return Gate{Kind: KindCX, Control: c, Target: t} }

// CZGate is symmetric, so the lower qubit is always stored as the control.
func CZGate(c, t int) Gate {
	if t < c {
		c, t = t, c
	}
	return Gate{Kind: KindCZ, Control: c, Target: t}
}

// IsTwoQubit reports whether the gate acts on Control and Target.
func (g Gate) IsTwoQubit() bool { return g.Kind == KindCX || g.Kind == KindCZ }

// IsClifford reports whether the gate is one of the fixed Clifford
// primitives. Phase rotations count only after Canonical folds them.
func (g Gate) IsClifford() bool {
	switch g.Kind {
	case KindX, KindZ, KindH, KindXPlus, KindXMinus, KindZPlus, KindZMinus, KindCX, KindCZ:
		return true
	}
	return false
}

// Canonical rewrites XPhase and ZPhase rotations by a multiple of π/2 as
// the matching Clifford. ok is false when the rotation is the identity.
func (g Gate) Canonical() (Gate, bool) {
	if g.Kind != KindXPhase && g.Kind != KindZPhase {
		if g.Kind == KindGadget && g.Gadget.IsIdentity() {
			return g, false
		}
		return g, true
	}
	quarter := map[bool][4]Kind{
		true:  {KindXPhase, KindXPlus, KindX, KindXMinus},
		false: {KindZPhase, KindZPlus, KindZ, KindZMinus},
	}[g.Kind == KindXPhase]
	for i := range 4 {
		if PhasesEqual(g.Phase, float64(i)/2) {
			if i == 0 {
				return g, false
			}
			return Gate{Kind: quarter[i], Qubit: g.Qubit}, true
		}
	}
	return g, true
}

// Inverse returns the gate undoing g.
func (g Gate) Inverse() Gate {
	switch g.Kind {
	case KindGadget:
		out := g
		out.Gadget = g.Gadget.Negated()
		return out
	case KindXPhase, KindZPhase:
		out := g
		out.Phase = NormalizePhase(-g.Phase)
		return out
	case KindXPlus:
		return XMinusGate(g.Qubit)
	case KindXMinus:
		return XPlusGate(g.Qubit)
	case KindZPlus:
		return ZMinusGate(g.Qubit)
	case KindZMinus:
		return ZPlusGate(g.Qubit)
	}
	return g
}

// Qubits lists the qubits the gate touches.
func (g Gate) Qubits() []int {
	switch {
	case g.Kind == KindGadget:
		return g.Gadget.Support()
	case g.IsTwoQubit():
		return []int{g.Control, g.Target}
	}
	return []int{g.Qubit}
}

// MaxQubit returns the highest qubit touched, or -1 for an empty gadget.
func (g Gate) MaxQubit() int {
	hi := -1
	for _, q := range g.Qubits() {
		hi = max(hi, q)
	}
	return hi
}

// Validate checks the gate's own fields.
func (g Gate) Validate() error {
	if _, ok := kindNames[g.Kind]; !ok {
		return errors.Wrapf(ErrInvalidGate, "unknown kind %d", int(g.Kind))
	}
	for _, q := range g.Qubits() {
		if q < 0 {
			return errors.Wrapf(ErrInvalidGate, "%s on negative qubit %d", g.Kind, q)
		}
	}
	if g.IsTwoQubit() && g.Control == g.Target {
		return errors.WithHint(
			errors.Wrapf(ErrInvalidGate, "%s with control and target both %d", g.Kind, g.Control),
			"two-qubit gates need distinct qubits",
		)
	}
	return nil
}

// ToGadget rewrites a Pauli rotation as the equivalent gadget, up to
// global phase.
func (g Gate) ToGadget() (Gadget, error) {
	rot := func(p Pauli, phase float64) Gadget {
		return NewGadget(map[int]Pauli{g.Qubit: p}, phase)
	}
	switch g.Kind {
	case KindGadget:
		return g.Gadget, nil
	case KindXPhase:
		return rot(X, g.Phase), nil
	case KindZPhase:
		return rot(Z, g.Phase), nil
	case KindX:
		return rot(X, 1), nil
	case KindZ:
		return rot(Z, 1), nil
	case KindXPlus:
		return rot(X, 0.5), nil
	case KindXMinus:
		return rot(X, 1.5), nil
	case KindZPlus:
		return rot(Z, 0.5), nil
	case KindZMinus:
		return rot(Z, 1.5), nil
	}
	return Gadget{}, errors.Wrapf(ErrNotPauliRotation, "%s", g)
}

func (g Gate) String() string {
	switch {
	case g.Kind == KindGadget:
		return g.Gadget.String()
	case g.Kind == KindXPhase || g.Kind == KindZPhase:
		return fmt.Sprintf("%s(%d, %s)", g.Kind, g.Qubit, FormatPiUnits(g.Phase))
	case g.IsTwoQubit():
		suffix := ""
		if g.AsGadget {
			suffix = ".g"
		}
		return fmt.Sprintf("%s%s(%d, %d)", g.Kind, suffix, g.Control, g.Target)
	}
	return fmt.Sprintf("%s(%d)", g.Kind, g.Qubit)
}
