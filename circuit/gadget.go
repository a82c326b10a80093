package circuit

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"qtermzx/errors"
)

// Gadget is the Pauli exponential exp(-iπ·phase·P/2) for a sparse Pauli
// string P. Qubits missing from the string carry the identity. Gadgets are
// immutable; every method returns a new value.
type Gadget struct {
	paulis map[int]Pauli
	phase  float64
}

// NewGadget builds a gadget from a qubit→Pauli map. Identity entries are
// dropped and the map is copied.
func NewGadget(paulis map[int]Pauli, phase float64) Gadget {
	g := Gadget{paulis: make(map[int]Pauli, len(paulis)), phase: NormalizePhase(phase)}
	for q, p := range paulis {
		if p != I {
			g.paulis[q] = p
		}
	}
	return g
}

// FromPauliString parses one character per qubit, starting at qubit 0.
func FromPauliString(s string, phase float64) (Gadget, error) {
	paulis := make(map[int]Pauli)
	for i, r := range []rune(s) {
		p, err := ParsePauli(r)
		if err != nil {
			return Gadget{}, errors.Wrapf(err, "pauli string %q at position %d", s, i)
		}
		if p != I {
			paulis[i] = p
		}
	}
	return Gadget{paulis: paulis, phase: NormalizePhase(phase)}, nil
}

// MustGadget is FromPauliString for literals known to be valid.
func MustGadget(s string, phase float64) Gadget {
	g, err := FromPauliString(s, phase)
	if err != nil {
		panic(err)
	}
	return g
}

// Phase returns the rotation angle in units of π, in [0, 2).
func (g Gadget) Phase() float64 { return g.phase }

// PauliAt returns the Pauli acting on q.
func (g Gadget) PauliAt(q int) Pauli { return g.paulis[q] }

// Paulis returns a copy of the non-identity entries.
func (g Gadget) Paulis() map[int]Pauli { return maps.Clone(g.paulis) }

// Support returns the qubits with a non-identity Pauli in ascending order.
func (g Gadget) Support() []int {
	qs := slices.Collect(maps.Keys(g.paulis))
	slices.Sort(qs)
	return qs
}

// Len returns the number of non-identity entries.
func (g Gadget) Len() int { return len(g.paulis) }

// MinQubit returns the lowest support qubit, or -1 for an empty gadget.
func (g Gadget) MinQubit() int {
	if len(g.paulis) == 0 {
		return -1
	}
	return slices.Min(slices.Collect(maps.Keys(g.paulis)))
}

// MaxQubit returns the highest support qubit, or -1 for an empty gadget.
func (g Gadget) MaxQubit() int {
	if len(g.paulis) == 0 {
		return -1
	}
	return slices.Max(slices.Collect(maps.Keys(g.paulis)))
}

// IsIdentity reports whether the gadget is the identity operator. A zero
// rotation is the identity whatever its support.
func (g Gadget) IsIdentity() bool {
	return PhasesEqual(g.phase, 0)
}

// IsGlobalPhase reports whether the gadget has no support but a nonzero
// phase.
func (g Gadget) IsGlobalPhase() bool {
	return len(g.paulis) == 0 && !g.IsIdentity()
}

// IsPhaseGadget reports whether every entry is Z. These need no basis
// changes when drawn.
func (g Gadget) IsPhaseGadget() bool {
	for _, p := range g.paulis {
		if p != Z {
			return false
		}
	}
	return true
}

func (g Gadget) samePaulis(o Gadget) bool {
	return maps.Equal(g.paulis, o.paulis)
}

// Combine fuses two gadgets on the same Pauli string by adding phases.
func (g Gadget) Combine(o Gadget) (Gadget, error) {
	if !g.samePaulis(o) {
		return Gadget{}, errors.Wrapf(ErrIncompatibleSupport, "combine %s with %s", g, o)
	}
	return Gadget{paulis: g.paulis, phase: NormalizePhase(g.phase + o.phase)}, nil
}

// Negated returns the inverse rotation.
func (g Gadget) Negated() Gadget {
	return Gadget{paulis: g.paulis, phase: NormalizePhase(-g.phase)}
}

// WithPhase returns the same Pauli string with another phase.
func (g Gadget) WithPhase(phase float64) Gadget {
	return Gadget{paulis: g.paulis, phase: NormalizePhase(phase)}
}

// PauliString renders the string over at least width qubits.
func (g Gadget) PauliString(width int) string {
	width = max(width, g.MaxQubit()+1)
	var sb strings.Builder
	for q := range width {
		sb.WriteString(g.paulis[q].String())
	}
	return sb.String()
}

// Label is the tip annotation renderers print: the Pauli string with
// identities shown as dots.
func (g Gadget) Label(width int) string {
	return strings.ReplaceAll(g.PauliString(width), "I", ".")
}

// Equal reports whether both gadgets have the same Pauli string and phase.
func (g Gadget) Equal(o Gadget) bool {
	return g.samePaulis(o) && PhasesEqual(g.phase, o.phase)
}

func (g Gadget) String() string {
	return fmt.Sprintf("Gadget(%s, %s)", g.PauliString(0), FormatPiUnits(g.phase))
}
