package zx

import "encoding/json"

type vertexJSON struct {
	ID    VertexID          `json:"id"`
	Kind  string            `json:"kind"`
	Qubit float64           `json:"qubit"`
	Row   int               `json:"row"`
	Phase float64           `json:"phase"`
	Aux   bool              `json:"aux,omitempty"`
	Data  map[string]string `json:"data,omitempty"`
}

type edgeJSON struct {
	Source VertexID `json:"source"`
	Target VertexID `json:"target"`
	Kind   string   `json:"kind"`
}

type diagramJSON struct {
	NumQubits int          `json:"num_qubits"`
	InputRow  int          `json:"input_row"`
	OutputRow int          `json:"output_row"`
	Inputs    []VertexID   `json:"inputs"`
	Outputs   []VertexID   `json:"outputs"`
	Vertices  []vertexJSON `json:"vertices"`
	Edges     []edgeJSON   `json:"edges"`
}

// MarshalJSON exports the diagram for external renderers.
func (d *Diagram) MarshalJSON() ([]byte, error) {
	doc := diagramJSON{
		NumQubits: d.numQubits,
		InputRow:  inputRow,
		OutputRow: d.outputRow,
		Inputs:    d.Inputs(),
		Outputs:   d.Outputs(),
		Vertices:  make([]vertexJSON, 0, len(d.vertices)),
		Edges:     make([]edgeJSON, 0, len(d.edges)),
	}
	for _, v := range d.vertices {
		doc.Vertices = append(doc.Vertices, vertexJSON{
			ID: v.ID, Kind: v.Kind.String(), Qubit: v.Qubit, Row: v.Row,
			Phase: v.Phase, Aux: v.Aux, Data: v.Data,
		})
	}
	for _, e := range d.Edges() {
		doc.Edges = append(doc.Edges, edgeJSON{Source: e.Source, Target: e.Target, Kind: e.Kind.String()})
	}
	return json.Marshal(doc)
}
