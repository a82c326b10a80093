// Package sim is a small dense state-vector simulator for circuits. Qubit q
// is bit q of the basis index.
package sim

import (
	"math"
	"math/cmplx"

	"qtermzx/circuit"
	"qtermzx/errors"
)

type Complex = complex128

type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

// NewStateVector returns |0…0⟩.
func NewStateVector(numQubits int) *StateVector {
	return NewBasisState(numQubits, 0)
}

// NewBasisState returns the computational basis state with the given index.
func NewBasisState(numQubits, index int) *StateVector {
	amps := make([]Complex, 1<<numQubits)
	amps[index] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// ApplyGate applies one primitive. Phases are in units of π, so XPhase(p)
// is Rx(πp) and a gadget with phase p is exp(-iπp·P/2).
func (s *StateVector) ApplyGate(g circuit.Gate) error {
	if g.MaxQubit() >= s.NumQubits {
		return errors.Wrapf(circuit.ErrQubitOutOfRange, "%s on %d qubits", g, s.NumQubits)
	}
	switch g.Kind {
	case circuit.KindH:
		s.applyH(g.Qubit)
	case circuit.KindX:
		s.applyX(g.Qubit)
	case circuit.KindZ:
		s.applyZ(g.Qubit)
	case circuit.KindXPlus:
		s.applyRX(g.Qubit, math.Pi/2)
	case circuit.KindXMinus:
		s.applyRX(g.Qubit, -math.Pi/2)
	case circuit.KindZPlus:
		s.applyRZ(g.Qubit, math.Pi/2)
	case circuit.KindZMinus:
		s.applyRZ(g.Qubit, -math.Pi/2)
	case circuit.KindXPhase:
		s.applyRX(g.Qubit, math.Pi*g.Phase)
	case circuit.KindZPhase:
		s.applyRZ(g.Qubit, math.Pi*g.Phase)
	case circuit.KindCX:
		s.applyCX(g.Control, g.Target)
	case circuit.KindCZ:
		s.applyCZ(g.Control, g.Target)
	case circuit.KindGadget:
		s.ApplyPauliRotation(g.Gadget.Paulis(), math.Pi*g.Gadget.Phase())
	default:
		return errors.Wrapf(circuit.ErrInvalidGate, "cannot simulate %s", g)
	}
	return nil
}

// ApplyPauliRotation applies exp(-iθP/2) = cos(θ/2)·I - i·sin(θ/2)·P.
func (s *StateVector) ApplyPauliRotation(paulis map[int]circuit.Pauli, theta float64) {
	p := s.Clone()
	for q, pauli := range paulis {
		switch pauli {
		case circuit.X:
			p.applyX(q)
		case circuit.Y:
			p.applyY(q)
		case circuit.Z:
			p.applyZ(q)
		}
	}
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	for i := range s.Amplitudes {
		s.Amplitudes[i] = c*s.Amplitudes[i] + js*p.Amplitudes[i]
	}
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = hFactor * (a + b)
			s.Amplitudes[j] = hFactor * (a - b)
		}
	}
}

func (s *StateVector) applyX(q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// applyY applies [[0, -i], [i, 0]].
func (s *StateVector) applyY(q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = -1i*s.Amplitudes[j], 1i*s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyZ(q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applyRX(q int, theta float64) {
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = c*a + js*b
			s.Amplitudes[j] = js*a + c*b
		}
	}
}

func (s *StateVector) applyRZ(q int, theta float64) {
	bit := 1 << q
	phase := cmplx.Exp(complex(0, theta/2))
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		} else {
			s.Amplitudes[i] *= cmplx.Conj(phase)
		}
	}
}

func (s *StateVector) applyCX(control, target int) {
	cBit := 1 << control
	tBit := 1 << target
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCZ(control, target int) {
	cBit := 1 << control
	tBit := 1 << target
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// Probabilities returns the marginal measurement probabilities per qubit.
func (s *StateVector) Probabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	for i, amp := range s.Amplitudes {
		prob := real(amp * cmplx.Conj(amp))
		for q := range s.NumQubits {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}
	return probs
}

// Run applies gates in order to a copy of s.
func (s *StateVector) Run(gates []circuit.Gate) (*StateVector, error) {
	out := s.Clone()
	for i, g := range gates {
		if err := out.ApplyGate(g); err != nil {
			return nil, errors.Wrapf(err, "gate %d", i)
		}
	}
	return out, nil
}

// Simulate runs c from |0…0⟩.
func Simulate(c circuit.Circuit) (*StateVector, error) {
	return NewStateVector(max(c.NumQubits, 1)).Run(c.Gates)
}

// Matrix is a unitary stored by column: m[j] is the image of basis state j.
type Matrix [][]Complex

// Unitary returns the matrix of gates applied in order on numQubits qubits.
func Unitary(numQubits int, gates ...circuit.Gate) (Matrix, error) {
	m := make(Matrix, 1<<numQubits)
	for j := range m {
		col, err := NewBasisState(numQubits, j).Run(gates)
		if err != nil {
			return nil, err
		}
		m[j] = col.Amplitudes
	}
	return m, nil
}

// EqualUpToPhase reports whether b = e^{iφ}·a entrywise within tol.
func EqualUpToPhase(a, b Matrix, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	rj, ri, best := 0, 0, 0.0
	for j := range a {
		if len(a[j]) != len(b[j]) {
			return false
		}
		for i := range a[j] {
			if mag := cmplx.Abs(a[j][i]); mag > best {
				rj, ri, best = j, i, mag
			}
		}
	}
	if best < tol {
		return false
	}

	pivot := b[rj][ri] / a[rj][ri]
	if math.Abs(cmplx.Abs(pivot)-1) > tol {
		return false
	}
	for j := range a {
		for i := range a[j] {
			if cmplx.Abs(b[j][i]-pivot*a[j][i]) > tol {
				return false
			}
		}
	}
	return true
}
