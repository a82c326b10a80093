package zx

import "qtermzx/errors"

// ErrNoQubits is returned when composing with a diagram that has no qubits.
var ErrNoQubits = errors.New("diagram has no qubits")
