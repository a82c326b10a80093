package zx

import (
	"maps"
	"math"
)

// VertexKind is the type of a diagram vertex.
type VertexKind int

const (
	Boundary VertexKind = iota
	ZSpider
	XSpider
	HBox
)

func (k VertexKind) String() string {
	switch k {
	case Boundary:
		return "boundary"
	case ZSpider:
		return "z"
	case XSpider:
		return "x"
	case HBox:
		return "hbox"
	default:
		return "unknown"
	}
}

// EdgeKind is the type of a diagram edge.
type EdgeKind int

const (
	Plain EdgeKind = iota
	Hadamard
)

func (k EdgeKind) String() string {
	if k == Hadamard {
		return "hadamard"
	}
	return "plain"
}

// VertexID identifies a vertex within one diagram. IDs are dense and
// assigned in insertion order.
type VertexID int

// Vertex is a spider, box or boundary placed at a (qubit, row) position.
//
// Qubit is fractional for layout-only vertices such as a CZ marker drawn
// between its two qubits. Aux marks vertices that sit off the register
// (gadget hubs and phase tips, CZ markers); they never belong to a wire.
// Phase is in units of π, reduced mod 2, and only meaningful for spiders.
type Vertex struct {
	ID    VertexID
	Kind  VertexKind
	Qubit float64
	Row   int
	Phase float64
	Aux   bool
	Data  map[string]string
}

// OnWire reports whether v is part of a qubit wire.
func (v Vertex) OnWire() bool {
	return v.Kind != Boundary && !v.Aux
}

func (v Vertex) clone() Vertex {
	if v.Data != nil {
		v.Data = maps.Clone(v.Data)
	}
	return v
}

// Edge is an undirected connection. Source is always the smaller ID.
type Edge struct {
	Source VertexID
	Target VertexID
	Kind   EdgeKind
}

type edgeKey struct{ a, b VertexID }

func keyOf(u, v VertexID) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey{u, v}
}

const phaseTolerance = 1e-9

// normalizePhase reduces a phase in units of π into [0, 2).
func normalizePhase(p float64) float64 {
	p = math.Mod(p, 2)
	if p < 0 {
		p += 2
	}
	if p < phaseTolerance || 2-p < phaseTolerance {
		return 0
	}
	return p
}
