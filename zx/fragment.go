package zx

import (
	"fmt"
	"maps"
	"sort"
)

// Fragment assembles a small diagram from explicitly placed vertices. Wire
// vertices are threaded into their qubit's wire by row when Diagram is
// called; aux vertices are only connected where Connect says so.
type Fragment struct {
	numQubits int
	vertices  []Vertex
	edges     map[edgeKey]EdgeKind
}

// NewFragment starts a fragment over numQubits qubits.
func NewFragment(numQubits int) *Fragment {
	return &Fragment{numQubits: numQubits, edges: make(map[edgeKey]EdgeKind)}
}

// NumQubits returns the fragment's register size.
func (f *Fragment) NumQubits() int { return f.numQubits }

// Wire places a vertex on qubit q at row (rows start at 1).
func (f *Fragment) Wire(q int, kind VertexKind, row int, phase float64, data map[string]string) VertexID {
	if q < 0 || q >= f.numQubits {
		panic(fmt.Sprintf("zx: wire qubit %d outside fragment of %d qubits", q, f.numQubits))
	}
	return f.add(Vertex{Kind: kind, Qubit: float64(q), Row: row, Phase: phase, Data: data})
}

// Aux places an off-register vertex at a layout position.
func (f *Fragment) Aux(kind VertexKind, qubit float64, row int, phase float64, data map[string]string) VertexID {
	return f.add(Vertex{Kind: kind, Qubit: qubit, Row: row, Phase: phase, Aux: true, Data: data})
}

func (f *Fragment) add(v Vertex) VertexID {
	if v.Row < 1 {
		panic(fmt.Sprintf("zx: fragment row %d must be at least 1", v.Row))
	}
	v.ID = VertexID(len(f.vertices))
	v.Phase = normalizePhase(v.Phase)
	if v.Data != nil {
		v.Data = maps.Clone(v.Data)
	}
	f.vertices = append(f.vertices, v)
	return v.ID
}

// Connect adds an edge between two vertices of the fragment.
func (f *Fragment) Connect(u, v VertexID, kind EdgeKind) {
	f.edges[keyOf(u, v)] = kind
}

// Diagram materialises the fragment. Its outputs sit one row after the
// highest placed vertex.
func (f *Fragment) Diagram() *Diagram {
	d := Empty(f.numQubits)
	offset := VertexID(len(d.vertices))

	maxRow := inputRow
	for _, v := range f.vertices {
		d.addVertex(v.clone())
		maxRow = max(maxRow, v.Row)
	}
	for k, kind := range f.edges {
		d.connect(k.a+offset, k.b+offset, kind)
	}

	for q := range f.numQubits {
		var wire []Vertex
		for _, v := range f.vertices {
			if v.OnWire() && v.Qubit == float64(q) {
				wire = append(wire, v)
			}
		}
		if len(wire) == 0 {
			continue
		}
		sort.SliceStable(wire, func(i, j int) bool { return wire[i].Row < wire[j].Row })

		delete(d.edges, keyOf(d.inputs[q], d.outputs[q]))
		prev := d.inputs[q]
		for _, v := range wire {
			d.connect(prev, v.ID+offset, Plain)
			prev = v.ID + offset
		}
		d.connect(prev, d.outputs[q], Plain)
	}

	d.setOutputRow(maxRow + 1)
	return d
}
