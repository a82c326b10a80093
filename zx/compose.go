package zx

import "qtermzx/errors"

// Compose returns a new diagram with other appended after d.
//
// The receiver grows to other's qubit count first if needed. Without
// stacking, other starts after the last occupied row of d. With stacking,
// other starts after the right-most row reached on the qubits it spans, so
// independent qubit ranges share rows. Each wire other touches is cut at
// its frontier in d and threaded through other's wire on that qubit.
func (d *Diagram) Compose(other *Diagram, stacked bool) (*Diagram, error) {
	if other == nil || other.numQubits < 1 {
		return nil, errors.Wrap(ErrNoQubits, "compose")
	}

	out := d.clone()
	out.grow(other.numQubits)

	frontier := make([]VertexID, out.numQubits)
	for q := range frontier {
		frontier[q] = out.Frontier(q)
	}

	base := out.RightRow()
	if stacked {
		base = out.rowBetween(other.MinQubit(), other.MaxQubit())
	}

	offset := float64(out.numQubits - other.numQubits)
	refs := make(map[VertexID]VertexID, len(other.vertices))
	for _, v := range other.vertices {
		if v.Kind == Boundary {
			continue
		}
		moved := v.clone()
		if moved.Aux && moved.Qubit >= float64(other.numQubits) {
			moved.Qubit += offset
		}
		moved.Row = base + v.Row
		refs[v.ID] = out.addVertex(moved)
	}

	for k, kind := range other.edges {
		s, okS := refs[k.a]
		t, okT := refs[k.b]
		if okS && okT {
			out.connect(s, t, kind)
		}
	}

	for q := range other.numQubits {
		first, last := other.leftEnd(q), other.Frontier(q)
		if first == other.outputs[q] {
			continue
		}
		inKind, _ := other.EdgeBetween(other.inputs[q], first)
		outKind, _ := other.EdgeBetween(last, other.outputs[q])

		delete(out.edges, keyOf(frontier[q], out.outputs[q]))
		out.connect(frontier[q], refs[first], inKind)
		out.connect(refs[last], out.outputs[q], outKind)
	}

	out.setOutputRow(max(out.outputRow, base+other.outputRow))
	return out, nil
}

// MustCompose is Compose for callers that already know other is non-empty.
func (d *Diagram) MustCompose(other *Diagram, stacked bool) *Diagram {
	out, err := d.Compose(other, stacked)
	if err != nil {
		panic(err)
	}
	return out
}
