package viewer

import (
	"fmt"
	"math"
	"strings"

	"qtermzx/circuit"
	"qtermzx/errors"
)

// menuItem is one gate choice in the picker.
type menuItem struct {
	name        string
	symbol      string
	kind        circuit.Kind
	asGadget    bool
	needsTarget bool
	needsParams bool
	example     string
}

type menuCategory struct {
	name  string
	items []menuItem
}

var gateMenu = []menuCategory{
	{
		name: "Clifford",
		items: []menuItem{
			{name: "Hadamard", symbol: "H", kind: circuit.KindH},
			{name: "Pauli-X", symbol: "X", kind: circuit.KindX},
			{name: "Pauli-Z", symbol: "Z", kind: circuit.KindZ},
			{name: "√X", symbol: "X+", kind: circuit.KindXPlus},
			{name: "√X†", symbol: "X-", kind: circuit.KindXMinus},
			{name: "Phase (S)", symbol: "Z+", kind: circuit.KindZPlus},
			{name: "Phase (S†)", symbol: "Z-", kind: circuit.KindZMinus},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate X", symbol: "RX", kind: circuit.KindXPhase, needsParams: true, example: "pi/4"},
			{name: "Rotate Z", symbol: "RZ", kind: circuit.KindZPhase, needsParams: true, example: "pi/4"},
		},
	},
	{
		name: "Two Qubit",
		items: []menuItem{
			{name: "CNOT", symbol: "●─⊕", kind: circuit.KindCX, needsTarget: true},
			{name: "Controlled-Z", symbol: "●─●", kind: circuit.KindCZ, needsTarget: true},
			{name: "CNOT gadget", symbol: "●─⊕", kind: circuit.KindCX, asGadget: true, needsTarget: true},
			{name: "CZ gadget", symbol: "●─●", kind: circuit.KindCZ, asGadget: true, needsTarget: true},
		},
	},
	{
		name: "Gadget",
		items: []menuItem{
			{name: "Pauli gadget", symbol: "e^P", kind: circuit.KindGadget, needsParams: true, example: "XIZ pi/2"},
		},
	},
}

// cliffordMenu lists the gates that can be pushed through a circuit.
var cliffordMenu = filterMenu(gateMenu, func(it menuItem) bool {
	return circuit.Gate{Kind: it.kind}.IsClifford() && !it.asGadget
})

func filterMenu(menu []menuCategory, keep func(menuItem) bool) []menuCategory {
	var out []menuCategory
	for _, cat := range menu {
		var items []menuItem
		for _, it := range cat.items {
			if keep(it) {
				items = append(items, it)
			}
		}
		if len(items) > 0 {
			out = append(out, menuCategory{name: cat.name, items: items})
		}
	}
	return out
}

// gate builds the gate for it on qubit q. target is only read by two-qubit
// items; param holds the typed parameter text.
func (it menuItem) gate(q, target int, param string) (circuit.Gate, error) {
	switch it.kind {
	case circuit.KindGadget:
		fields := strings.Fields(param)
		if len(fields) != 2 {
			return circuit.Gate{}, errors.WithHint(
				errors.Wrapf(circuit.ErrSyntax, "gadget %q", param),
				"type a Pauli string and an angle, e.g. XIZ pi/2")
		}
		angle, err := circuit.ParsePhase(fields[1])
		if err != nil {
			return circuit.Gate{}, err
		}
		g, err := circuit.FromPauliString(fields[0], angle/math.Pi)
		if err != nil {
			return circuit.Gate{}, err
		}
		return circuit.GadgetGate(g), nil
	case circuit.KindXPhase, circuit.KindZPhase:
		angle, err := circuit.ParsePhase(param)
		if err != nil {
			return circuit.Gate{}, err
		}
		if it.kind == circuit.KindXPhase {
			return circuit.XPhaseGate(q, angle/math.Pi), nil
		}
		return circuit.ZPhaseGate(q, angle/math.Pi), nil
	case circuit.KindCX:
		g := circuit.CXGate(q, target)
		g.AsGadget = it.asGadget
		return g, nil
	case circuit.KindCZ:
		g := circuit.CZGate(q, target)
		g.AsGadget = it.asGadget
		return g, nil
	}
	return circuit.Gate{Kind: it.kind, Qubit: q}, nil
}

// renderMenu renders the floating gate picker.
func (m Model) renderMenu() string {
	var sb strings.Builder

	menu := m.activeMenu()
	title := "Add Gate"
	if m.mode == modeApply {
		title = "Push Clifford Through Circuit"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")

	for i, cat := range menu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(accentStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(menu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	for i, item := range menu[m.menuCat].items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ " + fmt.Sprintf("%-14s", item.name)))
			sb.WriteString(hBoxStyle.Render(item.symbol))
		} else {
			sb.WriteString(menuNormalStyle.Render("   " + fmt.Sprintf("%-14s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.needsTarget {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		if item.needsParams {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.example)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}

// renderParamInput renders the parameter prompt.
func (m Model) renderParamInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Enter " + m.pending.name))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Value: %s_", m.paramInput)
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Example: " + m.pending.example))
	return menuBorderStyle.Render(sb.String())
}
