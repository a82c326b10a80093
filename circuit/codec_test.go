package circuit_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qtermzx/circuit"
	"qtermzx/errors"
)

func sampleCircuit(t *testing.T) circuit.Circuit {
	t.Helper()
	cz := circuit.CZGate(1, 2)
	cz.AsGadget = true
	c, err := circuit.New(3,
		circuit.GadgetGate(circuit.MustGadget("XYZ", 0.5)),
		circuit.GadgetGate(circuit.MustGadget("ZIZ", 0)),
		circuit.XPhaseGate(0, 0.25),
		circuit.ZPhaseGate(2, 1.5),
		circuit.HGate(1),
		circuit.XGate(0), circuit.ZGate(1),
		circuit.XPlusGate(2), circuit.XMinusGate(0),
		circuit.ZPlusGate(1), circuit.ZMinusGate(2),
		circuit.CXGate(2, 0),
		cz,
	)
	require.NoError(t, err)
	return c
}

func TestEncodeGateRecord(t *testing.T) {
	data, err := json.Marshal(circuit.GadgetGate(circuit.MustGadget("XYZ", 0.5)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Gadget":{"pauli_string":"XYZ","phase":0.5}}`, string(data))

	data, err = json.Marshal(circuit.XPhaseGate(3, 0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"XPhase":{"qubit":3,"phase":0}}`, string(data))

	data, err = json.Marshal(circuit.HGate(0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"H":{"qubit":0}}`, string(data))

	data, err = json.Marshal(circuit.CXGate(0, 1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"CX":{"control":0,"target":1}}`, string(data))
}

func TestDecodeGateRecord(t *testing.T) {
	var g circuit.Gate
	require.NoError(t, json.Unmarshal([]byte(`{"CZ":{"control":4,"target":2,"as_gadget":true}}`), &g))
	assert.Equal(t, circuit.KindCZ, g.Kind)
	assert.Equal(t, 2, g.Control)
	assert.Equal(t, 4, g.Target)
	assert.True(t, g.AsGadget)
}

func TestDecodeGateRejects(t *testing.T) {
	tests := []struct {
		name   string
		record string
		want   error
	}{
		{"unknown tag", `{"Toffoli":{"qubit":0}}`, circuit.ErrUnknownPrimitive},
		{"two tags", `{"H":{"qubit":0},"X":{"qubit":1}}`, circuit.ErrInvalidRecord},
		{"no tag", `{}`, circuit.ErrInvalidRecord},
		{"missing qubit", `{"H":{}}`, circuit.ErrInvalidRecord},
		{"missing phase", `{"ZPhase":{"qubit":0}}`, circuit.ErrInvalidRecord},
		{"missing target", `{"CX":{"control":0}}`, circuit.ErrInvalidRecord},
		{"missing pauli string", `{"Gadget":{"phase":0.5}}`, circuit.ErrInvalidRecord},
		{"bad pauli string", `{"Gadget":{"pauli_string":"XA","phase":0.5}}`, circuit.ErrInvalidPauliCharacter},
		{"same qubits", `{"CX":{"control":1,"target":1}}`, circuit.ErrInvalidGate},
		{"not an object", `[1, 2]`, circuit.ErrInvalidRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g circuit.Gate
			err := json.Unmarshal([]byte(tt.record), &g)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestEncodeDecodeFormats(t *testing.T) {
	c := sampleCircuit(t)
	for _, f := range []circuit.Format{circuit.FormatJSON, circuit.FormatYAML, circuit.FormatTOML} {
		t.Run(string(f), func(t *testing.T) {
			data, err := circuit.Encode(c, f)
			require.NoError(t, err)

			back, err := circuit.Decode(data, f)
			require.NoError(t, err)
			assert.Equal(t, c.NumQubits, back.NumQubits)
			require.Len(t, back.Gates, len(c.Gates))
			for i, g := range c.Gates {
				got := back.Gates[i]
				assert.Equal(t, g.String(), got.String(), "gate %d", i)
				assert.Equal(t, g.AsGadget, got.AsGadget, "gate %d", i)
				assert.True(t, g.Gadget.Equal(got.Gadget), "gate %d", i)
			}
		})
	}
}

func TestDecodeYAMLDocument(t *testing.T) {
	doc := `
num_qubits: 2
gates:
  - Gadget: {pauli_string: ZZ, phase: 0.25}
  - CX: {control: 0, target: 1}
  - Measure: {qubit: 0}
`
	_, err := circuit.Decode([]byte(doc), circuit.FormatYAML)
	require.Error(t, err)
	assert.True(t, errors.Is(err, circuit.ErrUnknownPrimitive))
	assert.Contains(t, err.Error(), "gate 2")
}

func TestDecodeTOMLDocument(t *testing.T) {
	doc := `
num_qubits = 1

[[gates]]
[gates.Gadget]
pauli_string = "ZZY"
phase = 1.5

[[gates]]
[gates.H]
qubit = 2
`
	c, err := circuit.Decode([]byte(doc), circuit.FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, 3, c.NumQubits)
	require.Len(t, c.Gates, 2)
	assert.True(t, c.Gates[0].Gadget.Equal(circuit.MustGadget("ZZY", 1.5)))
	assert.Equal(t, circuit.HGate(2), c.Gates[1])
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]circuit.Format{
		"json": circuit.FormatJSON, ".yml": circuit.FormatYAML, "YAML": circuit.FormatYAML, ".toml": circuit.FormatTOML,
	} {
		got, err := circuit.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := circuit.ParseFormat("xml")
	assert.True(t, errors.Is(err, circuit.ErrUnknownFormat))
	assert.Contains(t, errors.FlattenHints(err), "json, yaml or toml")

	f, ok := circuit.FormatForPath("circuits/bell.yaml")
	assert.True(t, ok)
	assert.Equal(t, circuit.FormatYAML, f)
	_, ok = circuit.FormatForPath("bell.qzx")
	assert.False(t, ok)
}

func TestMarshalByPath(t *testing.T) {
	c := sampleCircuit(t)
	for _, path := range []string{"out.json", "out.YML", "out.toml", "out.qzx", "out"} {
		data, err := circuit.Marshal(c, path)
		require.NoError(t, err, path)

		back, err := circuit.Unmarshal(data, path)
		require.NoError(t, err, path)
		require.Len(t, back.Gates, len(c.Gates), path)
		for i, g := range c.Gates {
			assert.Equal(t, g.String(), back.Gates[i].String(), "%s gate %d", path, i)
		}
	}

	data, err := circuit.Marshal(c, "out.qzx")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "qreg q[3];"))
}
