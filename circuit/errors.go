package circuit

import "qtermzx/errors"

var (
	// ErrIncompatibleSupport is returned when combining gadgets with different
	// Pauli support or concatenating circuits of different widths.
	ErrIncompatibleSupport = errors.New("incompatible support")

	// ErrInvalidPauliCharacter is returned when a Pauli string contains a
	// character outside IXYZ.
	ErrInvalidPauliCharacter = errors.New("invalid pauli character")

	// ErrUnknownPrimitive is returned when decoding a record whose tag is not
	// a known gate kind.
	ErrUnknownPrimitive = errors.New("unknown primitive")

	// ErrInvalidRecord is returned for records that are not a single tag
	// with complete parameters.
	ErrInvalidRecord = errors.New("invalid gate record")

	ErrNotClifford      = errors.New("gate is not a clifford primitive")
	ErrNotPauliRotation = errors.New("gate is not a pauli rotation")
	ErrInvalidGate      = errors.New("invalid gate")
	ErrQubitOutOfRange  = errors.New("qubit out of range")
	ErrSyntax           = errors.New("syntax error")
	ErrUnknownFormat    = errors.New("unknown circuit format")
)
