package builder

import "qtermzx/circuit"

// ExpandGadget decomposes g into basis changes, a CNOT ladder over its
// support, a Z rotation on the last support qubit, the reversed ladder and
// the inverse basis changes. Identity and global-phase gadgets expand to
// nothing.
func ExpandGadget(g circuit.Gadget) []circuit.Gate {
	qs := g.Support()
	if len(qs) == 0 || g.IsIdentity() {
		return nil
	}

	var pre, post, ladder []circuit.Gate
	for _, q := range qs {
		switch g.PauliAt(q) {
		case circuit.X:
			pre = append(pre, circuit.HGate(q))
			post = append(post, circuit.HGate(q))
		case circuit.Y:
			pre = append(pre, circuit.XPlusGate(q))
			post = append(post, circuit.XMinusGate(q))
		}
	}
	for i := 0; i+1 < len(qs); i++ {
		ladder = append(ladder, circuit.CXGate(qs[i], qs[i+1]))
	}

	out := make([]circuit.Gate, 0, len(pre)+2*len(ladder)+1+len(post))
	out = append(out, pre...)
	out = append(out, ladder...)
	out = append(out, circuit.ZPhaseGate(qs[len(qs)-1], g.Phase()))
	for i := len(ladder) - 1; i >= 0; i-- {
		out = append(out, ladder[i])
	}
	return append(out, post...)
}
