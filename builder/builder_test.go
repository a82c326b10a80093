package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"qtermzx/builder"
	"qtermzx/circuit"
	"qtermzx/errors"
	"qtermzx/zx"
)

func wireKinds(d *zx.Diagram, q int) []string {
	var out []string
	for _, v := range d.WireVertices(q) {
		out = append(out, v.Kind.String())
	}
	return out
}

func wireRows(d *zx.Diagram, q int) []int {
	var out []int
	for _, v := range d.WireVertices(q) {
		out = append(out, v.Row)
	}
	return out
}

// hubAndTip returns the aux X hub and Z tip of a single-gadget diagram.
func hubAndTip(t *testing.T, d *zx.Diagram) (zx.Vertex, zx.Vertex) {
	t.Helper()
	aux := d.AuxVertices()
	require.Len(t, aux, 2)
	hub, tip := aux[0], aux[1]
	require.Equal(t, zx.XSpider, hub.Kind)
	require.Equal(t, zx.ZSpider, tip.Kind)
	return hub, tip
}

func TestCompactGadget(t *testing.T) {
	d := builder.Build(circuit.MustGadget("XYZ", 0.5), false)

	assert.Equal(t, 3, d.NumQubits())
	assert.Len(t, d.Vertices(), 15)
	assert.Len(t, d.Edges(), 14)
	assert.Equal(t, 4, d.OutputRow())
	assert.Equal(t, 3, d.Depth())

	assert.Equal(t, []string{"hbox", "z", "hbox"}, wireKinds(d, 0))
	assert.Equal(t, []string{"x", "z", "x"}, wireKinds(d, 1))
	assert.Equal(t, []string{"z"}, wireKinds(d, 2))
	assert.Equal(t, []int{1, 2, 3}, wireRows(d, 1))
	assert.Equal(t, []int{2}, wireRows(d, 2))

	y := d.WireVertices(1)
	assert.InDelta(t, 0.5, y[0].Phase, 1e-12)
	assert.InDelta(t, 1.5, y[2].Phase, 1e-12)

	hub, tip := hubAndTip(t, d)
	assert.Equal(t, 3.0, hub.Qubit)
	assert.Equal(t, 4.0, tip.Qubit)
	assert.Equal(t, 3, hub.Row)
	assert.Equal(t, 3, tip.Row)
	assert.InDelta(t, 0.5, tip.Phase, 1e-12)
	assert.Equal(t, "XYZ", tip.Data["pauli"])
	assert.Equal(t, []zx.VertexID{hub.ID}, d.Neighbors(tip.ID))

	legs := 0
	for _, id := range d.Neighbors(hub.ID) {
		v, _ := d.Vertex(id)
		if v.ID == tip.ID {
			continue
		}
		legs++
		assert.Equal(t, zx.ZSpider, v.Kind)
		assert.Equal(t, 2, v.Row)
	}
	assert.Equal(t, 3, legs)
}

func TestCompactPhaseGadget(t *testing.T) {
	d := builder.Build(circuit.MustGadget("ZIZ", 0.25), false)

	assert.Equal(t, 3, d.OutputRow())
	assert.Len(t, d.Vertices(), 10)
	assert.Len(t, d.Edges(), 8)
	assert.Equal(t, []int{1}, wireRows(d, 0))
	assert.Empty(t, wireRows(d, 1))
	assert.Equal(t, []int{1}, wireRows(d, 2))

	hub, tip := hubAndTip(t, d)
	assert.Equal(t, 2, hub.Row)
	assert.Equal(t, 2, tip.Row)
}

func TestExpandedGadget(t *testing.T) {
	d := builder.Build(circuit.MustGadget("XYZ", 0.5), true)

	assert.Len(t, d.Vertices(), 19)
	assert.Len(t, d.Edges(), 20)
	assert.Equal(t, 7, d.Depth())
	assert.Empty(t, d.AuxVertices())

	assert.Equal(t, []int{1, 2, 6, 7}, wireRows(d, 0))
	assert.Equal(t, []int{1, 2, 3, 5, 6, 7}, wireRows(d, 1))
	assert.Equal(t, []int{3, 4, 5}, wireRows(d, 2))

	top := d.WireVertices(2)[1]
	assert.Equal(t, zx.ZSpider, top.Kind)
	assert.InDelta(t, 0.5, top.Phase, 1e-12)
}

func TestIdentityAndGlobalPhase(t *testing.T) {
	b := builder.New(builder.Options{}, nil)

	d, err := b.Gadget(circuit.MustGadget("XZ", 0), 3)
	require.NoError(t, err)
	assert.True(t, d.Equal(zx.Empty(3)))

	d, err = b.Gadget(circuit.NewGadget(nil, 0.5), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, d.OutputRow())
	assert.Len(t, d.Edges(), 2+1)
	hub, tip := hubAndTip(t, d)
	assert.Equal(t, 1, hub.Row)
	assert.Equal(t, 1, tip.Row)

	expand := builder.New(builder.Options{Expand: true}, nil)
	d, err = expand.Gadget(circuit.NewGadget(nil, 0.5), 2)
	require.NoError(t, err)
	assert.True(t, d.Equal(zx.Empty(2)))
}

func TestGateFragments(t *testing.T) {
	b := builder.New(builder.Options{}, nil)

	tests := []struct {
		gate  circuit.Gate
		kind  zx.VertexKind
		phase float64
	}{
		{circuit.XGate(1), zx.XSpider, 1},
		{circuit.ZGate(1), zx.ZSpider, 1},
		{circuit.HGate(1), zx.HBox, 0},
		{circuit.XPlusGate(1), zx.XSpider, 0.5},
		{circuit.XMinusGate(1), zx.XSpider, 1.5},
		{circuit.ZPlusGate(1), zx.ZSpider, 0.5},
		{circuit.ZMinusGate(1), zx.ZSpider, 1.5},
		{circuit.XPhaseGate(1, 0.3), zx.XSpider, 0.3},
		{circuit.ZPhaseGate(1, 1.7), zx.ZSpider, 1.7},
	}
	for _, tt := range tests {
		t.Run(tt.gate.String(), func(t *testing.T) {
			d, err := b.Gate(tt.gate, 2)
			require.NoError(t, err)
			assert.Equal(t, 2, d.OutputRow())

			wire := d.WireVertices(1)
			require.Len(t, wire, 1)
			assert.Equal(t, tt.kind, wire[0].Kind)
			assert.Equal(t, 1, wire[0].Row)
			assert.InDelta(t, tt.phase, wire[0].Phase, 1e-12)
			assert.Equal(t, tt.gate.Kind.Name(), wire[0].Data["gate"])
		})
	}
}

func TestTwoQubitFragments(t *testing.T) {
	b := builder.New(builder.Options{}, nil)

	cx, err := b.Gate(circuit.CXGate(0, 1), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, wireKinds(cx, 0))
	assert.Equal(t, []string{"x"}, wireKinds(cx, 1))
	c, tgt := cx.WireVertices(0)[0], cx.WireVertices(1)[0]
	_, ok := cx.EdgeBetween(c.ID, tgt.ID)
	assert.True(t, ok)

	cz, err := b.Gate(circuit.CZGate(2, 0), 3)
	require.NoError(t, err)
	aux := cz.AuxVertices()
	require.Len(t, aux, 1)
	assert.Equal(t, zx.HBox, aux[0].Kind)
	assert.Equal(t, 1.0, aux[0].Qubit)
	assert.Empty(t, wireKinds(cz, 1))
	assert.Len(t, cz.Neighbors(aux[0].ID), 2)
}

func TestTwoQubitGadgetForms(t *testing.T) {
	b := builder.New(builder.Options{GadgetsOnly: true}, nil)

	cx, err := b.Gate(circuit.CXGate(0, 1), 2)
	require.NoError(t, err)
	assert.Equal(t, 4, cx.OutputRow())
	assert.Equal(t, []string{"z"}, wireKinds(cx, 0))
	assert.Equal(t, []int{2}, wireRows(cx, 0))
	assert.Equal(t, []string{"hbox", "z", "hbox"}, wireKinds(cx, 1))
	hub, tip := hubAndTip(t, cx)
	assert.Equal(t, 3, hub.Row)
	assert.InDelta(t, 1.5, tip.Phase, 1e-12)
	assert.InDelta(t, 0.5, cx.WireVertices(0)[0].Phase, 1e-12)

	plain := builder.New(builder.Options{}, nil)
	gate := circuit.CZGate(0, 1)
	gate.AsGadget = true
	cz, err := plain.Gate(gate, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, cz.OutputRow())
	assert.Equal(t, []int{1}, wireRows(cz, 0))
	assert.Equal(t, []int{1}, wireRows(cz, 1))
	hub, _ = hubAndTip(t, cz)
	assert.Equal(t, 2, hub.Row)
	assert.Len(t, cz.Neighbors(hub.ID), 3)
}

func TestComposeCXThenCZ(t *testing.T) {
	b := builder.New(builder.Options{}, nil)
	c, err := circuit.New(2, circuit.CXGate(0, 1), circuit.CZGate(0, 1))
	require.NoError(t, err)

	d, err := b.Circuit(c)
	require.NoError(t, err)
	assert.Equal(t, 3, d.OutputRow())
	assert.Len(t, d.Vertices(), 9)
	assert.Len(t, d.Edges(), 9)
	assert.Len(t, wireKinds(d, 0), 2)
	assert.Len(t, wireKinds(d, 1), 2)
	assert.Len(t, d.AuxVertices(), 1)
}

func TestCircuitStacking(t *testing.T) {
	c, err := circuit.New(3, circuit.HGate(0), circuit.HGate(1), circuit.CXGate(1, 2), circuit.XGate(0))
	require.NoError(t, err)

	seq, err := builder.New(builder.Options{}, nil).Circuit(c)
	require.NoError(t, err)
	assert.Equal(t, 5, seq.OutputRow())

	stacked, err := builder.New(builder.Options{Stack: true}, nil).Circuit(c)
	require.NoError(t, err)
	assert.Equal(t, 3, stacked.OutputRow())
	assert.Equal(t, []int{1, 2}, wireRows(stacked, 0))
	assert.Equal(t, []int{1, 2}, wireRows(stacked, 1))
	assert.Equal(t, []int{2}, wireRows(stacked, 2))
}

func TestCircuitGadgetsFollowOptions(t *testing.T) {
	c, err := circuit.New(3, circuit.GadgetGate(circuit.MustGadget("XYZ", 0.5)))
	require.NoError(t, err)

	compact, err := builder.New(builder.Options{}, nil).Circuit(c)
	require.NoError(t, err)
	assert.True(t, compact.Equal(builder.Build(circuit.MustGadget("XYZ", 0.5), false)))

	expanded, err := builder.New(builder.Options{Expand: true}, nil).Circuit(c)
	require.NoError(t, err)
	assert.True(t, expanded.Equal(builder.Build(circuit.MustGadget("XYZ", 0.5), true)))
}

func TestBuilderErrors(t *testing.T) {
	b := builder.New(builder.Options{}, nil)

	_, err := b.Gate(circuit.HGate(3), 2)
	assert.True(t, errors.Is(err, circuit.ErrQubitOutOfRange))

	_, err = b.Gate(circuit.CXGate(1, 1), 2)
	assert.True(t, errors.Is(err, circuit.ErrInvalidGate))

	_, err = b.Gadget(circuit.MustGadget("IIX", 0.5), 2)
	assert.True(t, errors.Is(err, circuit.ErrQubitOutOfRange))

	_, err = b.Gadget(circuit.MustGadget("X", 0.5), 0)
	assert.True(t, errors.Is(err, zx.ErrNoQubits))

	_, err = b.Circuit(circuit.Circuit{})
	assert.True(t, errors.Is(err, zx.ErrNoQubits))

	_, err = b.Circuit(circuit.Circuit{NumQubits: 1, Gates: []circuit.Gate{circuit.HGate(1)}})
	assert.True(t, errors.Is(err, circuit.ErrQubitOutOfRange))
}

func TestCircuitLogsEachStep(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := builder.New(builder.Options{Expand: true}, zap.New(core))

	c, err := circuit.New(2, circuit.HGate(0), circuit.GadgetGate(circuit.MustGadget("XX", 0.5)))
	require.NoError(t, err)
	_, err = b.Circuit(c)
	require.NoError(t, err)

	steps := logs.FilterMessage("composed gate").All()
	require.Len(t, steps, 2)
	assert.Equal(t, "builder", steps[0].LoggerName)
	assert.Equal(t, int64(1), steps[1].ContextMap()["index"])
	assert.Equal(t, 1, logs.FilterMessage("expanding gadget").Len())
}
