package circuit

import (
	"qtermzx/errors"
)

// Pauli is a single-qubit Pauli operator.
type Pauli byte

const (
	I Pauli = iota
	X
	Y
	Z
)

func (p Pauli) String() string {
	switch p {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return "I"
	}
}

// ParsePauli reads one character of a Pauli string. Case is ignored.
func ParsePauli(r rune) (Pauli, error) {
	switch r {
	case 'I', 'i':
		return I, nil
	case 'X', 'x':
		return X, nil
	case 'Y', 'y':
		return Y, nil
	case 'Z', 'z':
		return Z, nil
	}
	return I, errors.Wrapf(ErrInvalidPauliCharacter, "%q", r)
}
