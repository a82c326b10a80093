package circuit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qtermzx/circuit"
	"qtermzx/errors"
)

func TestParseText(t *testing.T) {
	text := `OPENQASM 2.0;
include "qelib1.inc";

// a small circuit
qreg q[4];
gadget(pi/2) XYZ;
h q[0];
xplus q[1];
sdg q[2];
rx(3*pi/4) q[1];
rz(-pi/2) q[0];
cx q[0], q[1];
cz.g q[3], q[2];
cnot q[2], q[3]`

	c, err := circuit.ParseText(text)
	require.NoError(t, err)
	assert.Equal(t, 4, c.NumQubits)
	require.Len(t, c.Gates, 9)

	g := c.Gates[0]
	assert.Equal(t, circuit.KindGadget, g.Kind)
	assert.True(t, g.Gadget.Equal(circuit.MustGadget("XYZ", 0.5)))

	assert.Equal(t, circuit.HGate(0), c.Gates[1])
	assert.Equal(t, circuit.XPlusGate(1), c.Gates[2])
	assert.Equal(t, circuit.ZMinusGate(2), c.Gates[3])

	assert.Equal(t, circuit.KindXPhase, c.Gates[4].Kind)
	assert.InDelta(t, 0.75, c.Gates[4].Phase, 1e-12)
	assert.Equal(t, circuit.KindZPhase, c.Gates[5].Kind)
	assert.InDelta(t, 1.5, c.Gates[5].Phase, 1e-12)

	assert.Equal(t, circuit.CXGate(0, 1), c.Gates[6])
	cz := c.Gates[7]
	assert.Equal(t, circuit.KindCZ, cz.Kind)
	assert.Equal(t, 2, cz.Control)
	assert.Equal(t, 3, cz.Target)
	assert.True(t, cz.AsGadget)
	assert.Equal(t, circuit.CXGate(2, 3), c.Gates[8])
}

func TestParseTextWithoutQreg(t *testing.T) {
	c, err := circuit.ParseText("h q[0];\ncx q[0], q[2];\n")
	require.NoError(t, err)
	assert.Equal(t, 3, c.NumQubits)
}

func TestParseTextErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
		line string
	}{
		{"unknown gate", "qreg q[2];\nt q[0];", circuit.ErrSyntax, "line 2"},
		{"bad angle", "rx(abc) q[0];", circuit.ErrSyntax, "line 1"},
		{"bad pauli", "gadget(pi) XQ;", circuit.ErrInvalidPauliCharacter, "line 1"},
		{"garbage", "qreg q[1];\n\nwhat is this", circuit.ErrSyntax, "line 3"},
		{"same qubits", "cx q[1], q[1];", circuit.ErrInvalidGate, ""},
		{"unknown two-qubit gate", "swap q[0], q[1];", circuit.ErrSyntax, "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := circuit.ParseText(tt.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestFormatTextRoundTrip(t *testing.T) {
	c, err := circuit.New(3,
		circuit.GadgetGate(circuit.MustGadget("XIY", 0.25)),
		circuit.GadgetGate(circuit.NewGadget(nil, 1)),
		circuit.HGate(2),
		circuit.XPhaseGate(0, 0.5),
		circuit.ZPhaseGate(1, 0.123),
		circuit.XMinusGate(1),
		circuit.CXGate(2, 0),
		circuit.CZGate(0, 1),
	)
	require.NoError(t, err)
	c.Gates[7].AsGadget = true

	text := circuit.FormatText(c)
	assert.True(t, strings.HasPrefix(text, "qreg q[3];\n"))
	assert.Contains(t, text, "gadget(pi/4) XIY;")
	assert.Contains(t, text, "gadget(pi) I;")
	assert.Contains(t, text, "rx(pi/2) q[0];")
	assert.Contains(t, text, "xminus q[1];")
	assert.Contains(t, text, "cz.g q[0], q[1];")

	back, err := circuit.ParseText(text)
	require.NoError(t, err)
	require.Len(t, back.Gates, len(c.Gates))
	for i := range c.Gates {
		assert.Equal(t, c.Gates[i].Kind, back.Gates[i].Kind)
		assert.InDelta(t, c.Gates[i].Phase, back.Gates[i].Phase, 1e-9)
		assert.True(t, c.Gates[i].Gadget.Equal(back.Gates[i].Gadget))
	}
}
