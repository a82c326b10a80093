// Package builder turns gadgets, gates and whole circuits into ZX diagrams.
//
// A gadget is drawn either compactly, as legs on its support joined to an
// off-register X hub carrying a Z phase tip, or expanded into the CNOT
// ladder of ExpandGadget. Circuits are folded left to right with
// zx.Diagram.Compose.
package builder

import (
	"go.uber.org/zap"

	"qtermzx/circuit"
	"qtermzx/errors"
	"qtermzx/zx"
)

type Builder struct {
	opts Options
	log  *zap.Logger
}

// New returns a builder drawing with opts. A nil logger discards output.
func New(opts Options, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{opts: opts, log: log.Named("builder")}
}

func (b *Builder) Options() Options { return b.opts }

// Build draws g over just enough qubits to hold its support.
func Build(g circuit.Gadget, expand bool) *zx.Diagram {
	n := max(g.MaxQubit()+1, 1)
	if expand {
		return expanded(g, n)
	}
	return compact(g, n)
}

func fits(maxQubit, numQubits int) error {
	if numQubits < 1 {
		return errors.Wrapf(zx.ErrNoQubits, "register of %d qubits", numQubits)
	}
	if maxQubit >= numQubits {
		return errors.Wrapf(circuit.ErrQubitOutOfRange, "qubit %d on a %d-qubit register", maxQubit, numQubits)
	}
	return nil
}

// Gadget draws g on a register of numQubits qubits.
func (b *Builder) Gadget(g circuit.Gadget, numQubits int) (*zx.Diagram, error) {
	if err := fits(g.MaxQubit(), numQubits); err != nil {
		return nil, errors.Wrapf(err, "%s", g)
	}
	if b.opts.Expand {
		b.log.Debug("expanding gadget",
			zap.Stringer("gadget", g),
			zap.Int("gates", len(ExpandGadget(g))))
		return expanded(g, numQubits), nil
	}
	return compact(g, numQubits), nil
}

// Gate draws a single gate on a register of numQubits qubits.
func (b *Builder) Gate(g circuit.Gate, numQubits int) (*zx.Diagram, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := fits(g.MaxQubit(), numQubits); err != nil {
		return nil, errors.Wrapf(err, "%s", g)
	}
	switch {
	case g.Kind == circuit.KindGadget:
		return b.Gadget(g.Gadget, numQubits)
	case g.IsTwoQubit() && (g.AsGadget || b.opts.GadgetsOnly):
		return twoQubitGadget(g, numQubits), nil
	}
	return plainGate(g, numQubits), nil
}

// Circuit folds every gate of c onto an empty diagram.
func (b *Builder) Circuit(c circuit.Circuit) (*zx.Diagram, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.NumQubits < 1 {
		return nil, errors.Wrap(zx.ErrNoQubits, "circuit")
	}

	d := zx.Empty(c.NumQubits)
	for i, g := range c.Gates {
		frag, err := b.Gate(g, c.NumQubits)
		if err != nil {
			return nil, errors.Wrapf(err, "gate %d", i)
		}
		if d, err = d.Compose(frag, b.opts.Stack); err != nil {
			return nil, errors.Wrapf(err, "gate %d", i)
		}
		b.log.Debug("composed gate",
			zap.Int("index", i),
			zap.Stringer("gate", g),
			zap.Int("output_row", d.OutputRow()))
	}
	return d, nil
}

func gateData(g circuit.Gate) map[string]string {
	return map[string]string{"gate": g.Kind.Name()}
}

// compact draws the hub form. Legs meet the hub on one row: row 2 behind a
// basis change for general gadgets, row 1 for phase gadgets.
func compact(g circuit.Gadget, n int) *zx.Diagram {
	if g.IsIdentity() {
		return zx.Empty(n)
	}

	f := zx.NewFragment(n)
	mid, hubRow := 2, 3
	switch {
	case g.IsGlobalPhase():
		mid, hubRow = 1, 1
	case g.IsPhaseGadget():
		mid, hubRow = 1, 2
	}

	hub := f.Aux(zx.XSpider, float64(n), hubRow, 0, nil)
	tip := f.Aux(zx.ZSpider, float64(n+1), hubRow, g.Phase(), map[string]string{"pauli": g.Label(n)})
	f.Connect(hub, tip, zx.Plain)

	for _, q := range g.Support() {
		switch g.PauliAt(q) {
		case circuit.X:
			f.Wire(q, zx.HBox, mid-1, 0, nil)
			f.Wire(q, zx.HBox, mid+1, 0, nil)
		case circuit.Y:
			f.Wire(q, zx.XSpider, mid-1, 0.5, nil)
			f.Wire(q, zx.XSpider, mid+1, 1.5, nil)
		}
		leg := f.Wire(q, zx.ZSpider, mid, 0, nil)
		f.Connect(leg, hub, zx.Plain)
	}
	return f.Diagram()
}

// expanded folds the ladder decomposition with stacking so independent
// basis changes share a row.
func expanded(g circuit.Gadget, n int) *zx.Diagram {
	d := zx.Empty(n)
	for _, gate := range ExpandGadget(g) {
		d = d.MustCompose(plainGate(gate, n), true)
	}
	return d
}

type spider struct {
	kind  zx.VertexKind
	phase float64
}

var singleSpiders = map[circuit.Kind]spider{
	circuit.KindX:      {zx.XSpider, 1},
	circuit.KindZ:      {zx.ZSpider, 1},
	circuit.KindH:      {zx.HBox, 0},
	circuit.KindXPlus:  {zx.XSpider, 0.5},
	circuit.KindXMinus: {zx.XSpider, 1.5},
	circuit.KindZPlus:  {zx.ZSpider, 0.5},
	circuit.KindZMinus: {zx.ZSpider, 1.5},
}

func plainGate(g circuit.Gate, n int) *zx.Diagram {
	f := zx.NewFragment(n)
	data := gateData(g)

	switch g.Kind {
	case circuit.KindXPhase:
		f.Wire(g.Qubit, zx.XSpider, 1, g.Phase, data)
	case circuit.KindZPhase:
		f.Wire(g.Qubit, zx.ZSpider, 1, g.Phase, data)
	case circuit.KindCX:
		c := f.Wire(g.Control, zx.ZSpider, 1, 0, data)
		t := f.Wire(g.Target, zx.XSpider, 1, 0, data)
		f.Connect(c, t, zx.Plain)
	case circuit.KindCZ:
		c := f.Wire(g.Control, zx.ZSpider, 1, 0, data)
		t := f.Wire(g.Target, zx.ZSpider, 1, 0, data)
		h := f.Aux(zx.HBox, float64(g.Control+g.Target)/2, 1, 0, data)
		f.Connect(c, h, zx.Plain)
		f.Connect(h, t, zx.Plain)
	default:
		s := singleSpiders[g.Kind]
		f.Wire(g.Qubit, s.kind, 1, s.phase, data)
	}
	return f.Diagram()
}

// twoQubitGadget draws CZ as Z(π/2) legs on a ZZ gadget with phase 3π/2,
// and CX as the same thing with the target wrapped in Hadamards.
func twoQubitGadget(g circuit.Gate, n int) *zx.Diagram {
	f := zx.NewFragment(n)
	data := gateData(g)

	legRow, hubRow := 1, 2
	if g.Kind == circuit.KindCX {
		legRow, hubRow = 2, 3
		f.Wire(g.Target, zx.HBox, 1, 0, data)
		f.Wire(g.Target, zx.HBox, 3, 0, data)
	}

	hub := f.Aux(zx.XSpider, float64(n), hubRow, 0, data)
	tip := f.Aux(zx.ZSpider, float64(n+1), hubRow, 1.5, data)
	f.Connect(hub, tip, zx.Plain)
	for _, q := range []int{g.Control, g.Target} {
		leg := f.Wire(q, zx.ZSpider, legRow, 0.5, data)
		f.Connect(leg, hub, zx.Plain)
	}
	return f.Diagram()
}
