package builder

// Options controls how gates are drawn. The zero value draws compact
// gadgets, plain two-qubit gates and sequential composition.
type Options struct {
	// Expand draws gadgets as CNOT ladders instead of hubs.
	Expand bool `koanf:"expand"`
	// GadgetsOnly draws CX and CZ as phase gadgets.
	GadgetsOnly bool `koanf:"gadgets_only"`
	// Stack lets gates on disjoint qubits share rows.
	Stack bool `koanf:"stack"`
}
