package circuit

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"qtermzx/errors"
)

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat accepts a format name or a file extension with or without
// the leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", errors.WithHint(
		errors.Wrapf(ErrUnknownFormat, "%q", s),
		"use json, yaml or toml",
	)
}

// FormatForPath picks the format from a file extension. Paths without a
// known extension use the text format and report false.
func FormatForPath(path string) (Format, bool) {
	f, err := ParseFormat(filepath.Ext(path))
	return f, err == nil
}

// Params holds the parameters of one gate record. Which fields must be set
// depends on the record's tag.
type Params struct {
	PauliString *string  `json:"pauli_string,omitempty" yaml:"pauli_string,omitempty" toml:"pauli_string,omitempty"`
	Phase       *float64 `json:"phase,omitempty" yaml:"phase,omitempty" toml:"phase,omitempty"`
	Qubit       *int     `json:"qubit,omitempty" yaml:"qubit,omitempty" toml:"qubit,omitempty"`
	Control     *int     `json:"control,omitempty" yaml:"control,omitempty" toml:"control,omitempty"`
	Target      *int     `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
	AsGadget    *bool    `json:"as_gadget,omitempty" yaml:"as_gadget,omitempty" toml:"as_gadget,omitempty"`
}

// Record is a tagged gate: exactly one key naming the kind, mapped to its
// parameters, e.g. {"Gadget": {"pauli_string": "XYZ", "phase": 0.5}}.
type Record map[string]Params

type document struct {
	NumQubits int      `json:"num_qubits" yaml:"num_qubits" toml:"num_qubits"`
	Gates     []Record `json:"gates" yaml:"gates" toml:"gates"`
}

type decodeFunc func(Params) (Gate, error)

func missing(tag string, fields ...string) error {
	return errors.Wrapf(ErrInvalidRecord, "%s record needs %s", tag, strings.Join(fields, " and "))
}

func singleQubit(kind Kind) decodeFunc {
	return func(p Params) (Gate, error) {
		if p.Qubit == nil {
			return Gate{}, missing(kind.Name(), "qubit")
		}
		return Gate{Kind: kind, Qubit: *p.Qubit}, nil
	}
}

func rotationAbout(kind Kind) decodeFunc {
	return func(p Params) (Gate, error) {
		if p.Qubit == nil || p.Phase == nil {
			return Gate{}, missing(kind.Name(), "qubit", "phase")
		}
		return Gate{Kind: kind, Qubit: *p.Qubit, Phase: NormalizePhase(*p.Phase)}, nil
	}
}

func twoQubit(build func(c, t int) Gate, tag string) decodeFunc {
	return func(p Params) (Gate, error) {
		if p.Control == nil || p.Target == nil {
			return Gate{}, missing(tag, "control", "target")
		}
		g := build(*p.Control, *p.Target)
		g.AsGadget = p.AsGadget != nil && *p.AsGadget
		return g, nil
	}
}

// decoders is the closed table of record tags.
var decoders = map[string]decodeFunc{
	"Gadget": func(p Params) (Gate, error) {
		if p.PauliString == nil || p.Phase == nil {
			return Gate{}, missing("Gadget", "pauli_string", "phase")
		}
		g, err := FromPauliString(*p.PauliString, *p.Phase)
		if err != nil {
			return Gate{}, err
		}
		return GadgetGate(g), nil
	},
	"XPhase": rotationAbout(KindXPhase),
	"ZPhase": rotationAbout(KindZPhase),
	"X":      singleQubit(KindX),
	"Z":      singleQubit(KindZ),
	"H":      singleQubit(KindH),
	"XPlus":  singleQubit(KindXPlus),
	"XMinus": singleQubit(KindXMinus),
	"ZPlus":  singleQubit(KindZPlus),
	"ZMinus": singleQubit(KindZMinus),
	"CX":     twoQubit(CXGate, "CX"),
	"CZ":     twoQubit(CZGate, "CZ"),
}

// EncodeGate returns the tagged record for g.
func EncodeGate(g Gate) Record {
	var p Params
	switch g.Kind {
	case KindGadget:
		s, phase := g.Gadget.PauliString(1), g.Gadget.Phase()
		p.PauliString, p.Phase = &s, &phase
	case KindXPhase, KindZPhase:
		q, phase := g.Qubit, g.Phase
		p.Qubit, p.Phase = &q, &phase
	case KindCX, KindCZ:
		c, t := g.Control, g.Target
		p.Control, p.Target = &c, &t
		if g.AsGadget {
			asGadget := true
			p.AsGadget = &asGadget
		}
	default:
		q := g.Qubit
		p.Qubit = &q
	}
	return Record{g.Kind.Name(): p}
}

// DecodeGate resolves a record through the dispatch table and validates
// the result.
func DecodeGate(r Record) (Gate, error) {
	if len(r) != 1 {
		tags := make([]string, 0, len(r))
		for tag := range r {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		return Gate{}, errors.Wrapf(ErrInvalidRecord, "want one tag, got %v", tags)
	}
	for tag, p := range r {
		decode, ok := decoders[tag]
		if !ok {
			return Gate{}, errors.Wrapf(ErrUnknownPrimitive, "%q", tag)
		}
		g, err := decode(p)
		if err != nil {
			return Gate{}, err
		}
		if err := g.Validate(); err != nil {
			return Gate{}, err
		}
		return g, nil
	}
	panic("unreachable")
}

// MarshalJSON encodes g as its tagged record.
func (g Gate) MarshalJSON() ([]byte, error) {
	return json.Marshal(EncodeGate(g))
}

// UnmarshalJSON decodes a tagged record.
func (g *Gate) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return errors.Wrap(ErrInvalidRecord, err.Error())
	}
	decoded, err := DecodeGate(r)
	if err != nil {
		return err
	}
	*g = decoded
	return nil
}

// Encode writes c as a document in the given format.
func Encode(c Circuit, f Format) ([]byte, error) {
	doc := document{NumQubits: c.NumQubits, Gates: make([]Record, len(c.Gates))}
	for i, g := range c.Gates {
		doc.Gates[i] = EncodeGate(g)
	}

	var (
		data []byte
		err  error
	)
	switch f {
	case FormatJSON:
		data, err = json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(doc)
	case FormatTOML:
		data, err = toml.Marshal(doc)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", f)
	}
	return data, nil
}

// Decode reads a document in the given format. The register widens to fit
// the gates, as with New.
func Decode(data []byte, f Format) (Circuit, error) {
	var doc document
	var err error
	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return Circuit{}, errors.Wrapf(ErrUnknownFormat, "%q", f)
	}
	if err != nil {
		return Circuit{}, errors.Wrapf(err, "decode %s", f)
	}

	gates := make([]Gate, len(doc.Gates))
	for i, r := range doc.Gates {
		g, err := DecodeGate(r)
		if err != nil {
			return Circuit{}, errors.Wrapf(err, "gate %d", i)
		}
		gates[i] = g
	}
	return New(doc.NumQubits, gates...)
}

// Marshal encodes c for the file at path: a document when the extension
// names a format, the text format otherwise.
func Marshal(c Circuit, path string) ([]byte, error) {
	if f, ok := FormatForPath(path); ok {
		return Encode(c, f)
	}
	return []byte(FormatText(c)), nil
}

// Unmarshal is the inverse of Marshal.
func Unmarshal(data []byte, path string) (Circuit, error) {
	if f, ok := FormatForPath(path); ok {
		return Decode(data, f)
	}
	return ParseText(string(data))
}
