package circuit

import "qtermzx/errors"

// image is where a Pauli lands under conjugation, with the sign picked up.
type image struct {
	pauli Pauli
	sign  int
}

// pair is a two-qubit Pauli indexed (control, target).
type pair [2]Pauli

type pairImage struct {
	out  pair
	sign int
}

// Single-qubit rules, P → C†PC. Every table maps I to itself.
var singleRules = map[Kind]map[Pauli]image{
	KindX: {
		X: {X, 1}, Y: {Y, -1}, Z: {Z, -1},
	},
	KindZ: {
		X: {X, -1}, Y: {Y, -1}, Z: {Z, 1},
	},
	KindH: {
		X: {Z, 1}, Y: {Y, -1}, Z: {X, 1},
	},
	KindXPlus: {
		X: {X, 1}, Y: {Z, -1}, Z: {Y, 1},
	},
	KindXMinus: {
		X: {X, 1}, Y: {Z, 1}, Z: {Y, -1},
	},
	KindZPlus: {
		X: {Y, -1}, Y: {X, 1}, Z: {Z, 1},
	},
	KindZMinus: {
		X: {Y, 1}, Y: {X, -1}, Z: {Z, 1},
	},
}

// Two-qubit rules keyed by (control, target). Both gates are self-inverse
// and Hermitian, so C†PC = CPC.
var pairRules = map[Kind]map[pair]pairImage{
	KindCX: {
		{I, I}: {pair{I, I}, 1}, {I, X}: {pair{I, X}, 1}, {I, Y}: {pair{Z, Y}, 1}, {I, Z}: {pair{Z, Z}, 1},
		{X, I}: {pair{X, X}, 1}, {X, X}: {pair{X, I}, 1}, {X, Y}: {pair{Y, Z}, 1}, {X, Z}: {pair{Y, Y}, -1},
		{Y, I}: {pair{Y, X}, 1}, {Y, X}: {pair{Y, I}, 1}, {Y, Y}: {pair{X, Z}, -1}, {Y, Z}: {pair{X, Y}, 1},
		{Z, I}: {pair{Z, I}, 1}, {Z, X}: {pair{Z, X}, 1}, {Z, Y}: {pair{I, Y}, 1}, {Z, Z}: {pair{I, Z}, 1},
	},
	KindCZ: {
		{I, I}: {pair{I, I}, 1}, {I, X}: {pair{Z, X}, 1}, {I, Y}: {pair{Z, Y}, 1}, {I, Z}: {pair{I, Z}, 1},
		{X, I}: {pair{X, Z}, 1}, {X, X}: {pair{Y, Y}, 1}, {X, Y}: {pair{Y, X}, -1}, {X, Z}: {pair{X, I}, 1},
		{Y, I}: {pair{Y, Z}, 1}, {Y, X}: {pair{X, Y}, -1}, {Y, Y}: {pair{X, X}, 1}, {Y, Z}: {pair{Y, I}, 1},
		{Z, I}: {pair{Z, I}, 1}, {Z, X}: {pair{I, X}, 1}, {Z, Y}: {pair{I, Y}, 1}, {Z, Z}: {pair{Z, Z}, 1},
	},
}

// Conjugate pushes the Clifford c from before g to after it: applying c
// then g equals applying the returned gadget then c. The Pauli string
// becomes C†PC and the phase flips when that picks up a minus sign.
//
// XPhase and ZPhase gates by a multiple of π/2 are accepted as their
// Clifford equivalent; a zero rotation leaves g unchanged.
func Conjugate(g Gadget, c Gate) (Gadget, error) {
	if err := c.Validate(); err != nil {
		return Gadget{}, err
	}
	c, nontrivial := c.Canonical()
	if !nontrivial && (c.Kind == KindXPhase || c.Kind == KindZPhase) {
		return g, nil
	}
	if !c.IsClifford() {
		return Gadget{}, errors.Wrapf(ErrNotClifford, "conjugate %s through %s", g, c)
	}

	paulis := g.Paulis()
	sign := 1
	if c.IsTwoQubit() {
		img := pairRules[c.Kind][pair{g.PauliAt(c.Control), g.PauliAt(c.Target)}]
		paulis[c.Control], paulis[c.Target] = img.out[0], img.out[1]
		sign = img.sign
	} else if p := g.PauliAt(c.Qubit); p != I {
		img := singleRules[c.Kind][p]
		paulis[c.Qubit] = img.pauli
		sign = img.sign
	}
	return NewGadget(paulis, g.Phase()*float64(sign)), nil
}

// ConjugateAll folds Conjugate over cs from left to right.
func ConjugateAll(g Gadget, cs ...Gate) (Gadget, error) {
	for i, c := range cs {
		var err error
		if g, err = Conjugate(g, c); err != nil {
			return Gadget{}, errors.Wrapf(err, "gate %d", i)
		}
	}
	return g, nil
}
