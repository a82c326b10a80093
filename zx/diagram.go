// Package zx holds the typed ZX-diagram model: spiders and boxes placed on a
// (qubit, row) grid, per-qubit input and output boundaries, and the
// composition operator that stitches one diagram after another.
//
// Diagrams are values. Every operation that changes structure returns a new
// *Diagram and leaves its operands untouched.
package zx

import (
	"fmt"
	"maps"
	"slices"
	"sort"
)

const inputRow = 0

// Diagram is a ZX-diagram over a fixed number of qubits.
type Diagram struct {
	numQubits int
	vertices  []Vertex // indexed by VertexID
	edges     map[edgeKey]EdgeKind
	inputs    []VertexID
	outputs   []VertexID
	outputRow int
}

// Empty returns a diagram of identity wires with its outputs on row 1.
func Empty(numQubits int) *Diagram {
	d := &Diagram{
		edges:     make(map[edgeKey]EdgeKind),
		outputRow: inputRow + 1,
	}
	d.grow(numQubits)
	return d
}

// WithQubits returns a copy of d grown to numQubits. It never shrinks.
func (d *Diagram) WithQubits(numQubits int) *Diagram {
	out := d.clone()
	out.grow(numQubits)
	return out
}

// grow appends identity wires up to numQubits. Vertices below the old
// register move down so they stay below the register.
func (d *Diagram) grow(numQubits int) {
	if numQubits <= d.numQubits {
		return
	}
	offset := float64(numQubits - d.numQubits)
	for i := range d.vertices {
		v := &d.vertices[i]
		if v.Aux && v.Qubit >= float64(d.numQubits) {
			v.Qubit += offset
		}
	}
	for q := d.numQubits; q < numQubits; q++ {
		in := d.addVertex(Vertex{Kind: Boundary, Qubit: float64(q), Row: inputRow})
		out := d.addVertex(Vertex{Kind: Boundary, Qubit: float64(q), Row: d.outputRow})
		d.inputs = append(d.inputs, in)
		d.outputs = append(d.outputs, out)
		d.connect(in, out, Plain)
	}
	d.numQubits = numQubits
}

func (d *Diagram) addVertex(v Vertex) VertexID {
	v.ID = VertexID(len(d.vertices))
	d.vertices = append(d.vertices, v)
	return v.ID
}

func (d *Diagram) connect(u, v VertexID, kind EdgeKind) {
	d.edges[keyOf(u, v)] = kind
}

func (d *Diagram) clone() *Diagram {
	out := &Diagram{
		numQubits: d.numQubits,
		vertices:  make([]Vertex, len(d.vertices)),
		edges:     maps.Clone(d.edges),
		inputs:    slices.Clone(d.inputs),
		outputs:   slices.Clone(d.outputs),
		outputRow: d.outputRow,
	}
	if out.edges == nil {
		out.edges = make(map[edgeKey]EdgeKind)
	}
	for i, v := range d.vertices {
		out.vertices[i] = v.clone()
	}
	return out
}

func (d *Diagram) setOutputRow(row int) {
	d.outputRow = row
	for _, id := range d.outputs {
		d.vertices[id].Row = row
	}
}

// NumQubits returns the register size.
func (d *Diagram) NumQubits() int { return d.numQubits }

// InputRow returns the row of the input boundaries.
func (d *Diagram) InputRow() int { return inputRow }

// OutputRow returns the row of the output boundaries.
func (d *Diagram) OutputRow() int { return d.outputRow }

// Depth returns the number of rows strictly between inputs and outputs.
func (d *Diagram) Depth() int { return d.outputRow - inputRow - 1 }

// Vertex returns the vertex with the given ID.
func (d *Diagram) Vertex(id VertexID) (Vertex, bool) {
	if id < 0 || int(id) >= len(d.vertices) {
		return Vertex{}, false
	}
	return d.vertices[id].clone(), true
}

// Vertices returns every vertex ordered by ID.
func (d *Diagram) Vertices() []Vertex {
	out := make([]Vertex, len(d.vertices))
	for i, v := range d.vertices {
		out[i] = v.clone()
	}
	return out
}

// Edges returns every edge ordered by (Source, Target).
func (d *Diagram) Edges() []Edge {
	out := make([]Edge, 0, len(d.edges))
	for k, kind := range d.edges {
		out = append(out, Edge{Source: k.a, Target: k.b, Kind: kind})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out
}

// EdgeBetween returns the kind of the edge joining u and v.
func (d *Diagram) EdgeBetween(u, v VertexID) (EdgeKind, bool) {
	kind, ok := d.edges[keyOf(u, v)]
	return kind, ok
}

// Neighbors returns the IDs adjacent to id in ascending order.
func (d *Diagram) Neighbors(id VertexID) []VertexID {
	var out []VertexID
	for k := range d.edges {
		switch id {
		case k.a:
			out = append(out, k.b)
		case k.b:
			out = append(out, k.a)
		}
	}
	slices.Sort(out)
	return out
}

// Inputs returns the input boundary of each qubit.
func (d *Diagram) Inputs() []VertexID { return slices.Clone(d.inputs) }

// Outputs returns the output boundary of each qubit.
func (d *Diagram) Outputs() []VertexID { return slices.Clone(d.outputs) }

// WireVertices returns the vertices on qubit q's wire ordered by row.
func (d *Diagram) WireVertices(q int) []Vertex {
	var out []Vertex
	for _, v := range d.vertices {
		if v.OnWire() && v.Qubit == float64(q) {
			out = append(out, v.clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Row < out[j].Row })
	return out
}

// AuxVertices returns the off-register layout vertices ordered by ID.
func (d *Diagram) AuxVertices() []Vertex {
	var out []Vertex
	for _, v := range d.vertices {
		if v.Aux {
			out = append(out, v.clone())
		}
	}
	return out
}

// Frontier returns the right-most wire vertex on q, or q's input boundary
// when the wire is empty.
func (d *Diagram) Frontier(q int) VertexID {
	id, row := d.inputs[q], inputRow
	for _, v := range d.vertices {
		if v.OnWire() && v.Qubit == float64(q) && v.Row >= row {
			id, row = v.ID, v.Row
		}
	}
	return id
}

func (d *Diagram) leftEnd(q int) VertexID {
	id, row := d.outputs[q], d.outputRow
	for _, v := range d.vertices {
		if v.OnWire() && v.Qubit == float64(q) && v.Row < row {
			id, row = v.ID, v.Row
		}
	}
	return id
}

// MinQubit returns the lowest qubit carrying wire content, or 0.
func (d *Diagram) MinQubit() int {
	lo, found := 0, false
	for _, v := range d.vertices {
		if v.OnWire() && (!found || int(v.Qubit) < lo) {
			lo, found = int(v.Qubit), true
		}
	}
	return lo
}

// MaxQubit returns the highest qubit carrying wire content, or the last
// qubit of the register.
func (d *Diagram) MaxQubit() int {
	hi, found := d.numQubits-1, false
	for _, v := range d.vertices {
		if v.OnWire() && (!found || int(v.Qubit) > hi) {
			hi, found = int(v.Qubit), true
		}
	}
	return hi
}

// RightRow returns the highest row used by any non-boundary vertex.
func (d *Diagram) RightRow() int {
	row := inputRow
	for _, v := range d.vertices {
		if v.Kind != Boundary {
			row = max(row, v.Row)
		}
	}
	return row
}

// LeftRow returns the lowest row used by any non-boundary vertex.
func (d *Diagram) LeftRow() int {
	row := d.outputRow
	for _, v := range d.vertices {
		if v.Kind != Boundary {
			row = min(row, v.Row)
		}
	}
	return row
}

// LeftPadding is the gap between the inputs and the first occupied row.
func (d *Diagram) LeftPadding() int { return d.LeftRow() - inputRow }

// RightPadding is the gap between the last occupied row and the outputs.
func (d *Diagram) RightPadding() int { return d.outputRow - d.RightRow() }

// Padded returns a copy whose content starts left rows after the inputs
// and ends right rows before the outputs. Margins below 1 are raised to 1.
func (d *Diagram) Padded(left, right int) *Diagram {
	left, right = max(left, 1), max(right, 1)
	out := d.clone()
	if d.LeftRow() == d.outputRow {
		out.setOutputRow(max(left, right))
		return out
	}
	shift := left - d.LeftPadding()
	for i := range out.vertices {
		v := &out.vertices[i]
		if v.Kind != Boundary {
			v.Row += shift
		}
	}
	out.setOutputRow(out.RightRow() + right)
	return out
}

// rowBetween returns the highest frontier row over qubits lo..hi.
func (d *Diagram) rowBetween(lo, hi int) int {
	row := inputRow
	for q := max(lo, 0); q <= hi && q < d.numQubits; q++ {
		row = max(row, d.vertices[d.Frontier(q)].Row)
	}
	return row
}

// Equal reports whether two diagrams have the same structure. Vertex IDs
// and Data annotations are ignored.
func (d *Diagram) Equal(other *Diagram) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.numQubits != other.numQubits || d.outputRow != other.outputRow ||
		len(d.vertices) != len(other.vertices) || len(d.edges) != len(other.edges) {
		return false
	}
	return slices.Equal(d.signature(), other.signature())
}

func (d *Diagram) signature() []string {
	label := func(id VertexID) string {
		v := d.vertices[id]
		return fmt.Sprintf("%s@%g:%d/%.6f/%t", v.Kind, v.Qubit, v.Row, v.Phase, v.Aux)
	}
	sig := make([]string, 0, len(d.vertices)+len(d.edges))
	for _, v := range d.vertices {
		sig = append(sig, "v "+label(v.ID))
	}
	for k, kind := range d.edges {
		a, b := label(k.a), label(k.b)
		if a > b {
			a, b = b, a
		}
		sig = append(sig, fmt.Sprintf("e %s %s %s", a, b, kind))
	}
	sort.Strings(sig)
	return sig
}

// String summarises the diagram for logs and test failures.
func (d *Diagram) String() string {
	return fmt.Sprintf("Diagram(qubits=%d, vertices=%d, edges=%d, rows=%d..%d)",
		d.numQubits, len(d.vertices), len(d.edges), inputRow, d.outputRow)
}
