package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"qtermzx/circuit"
	"qtermzx/internal/sim"
)

// maxSimQubits bounds the state panel; larger registers skip simulation.
const maxSimQubits = 12

// ──────────────────────────── Panel rendering ────────────────────────────

func (m Model) optionFlags() string {
	flag := func(name string, on bool) string {
		if on {
			return accentStyle.Render(name)
		}
		return dimStyle.Render(name)
	}
	return strings.Join([]string{
		flag("expand", m.opts.Expand),
		flag("stack", m.opts.Stack),
		flag("gadgets", m.opts.GadgetsOnly),
	}, " ")
}

// renderDiagramPanel renders the ZX diagram with horizontal scrolling.
func (m Model) renderDiagramPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("ZX Diagram"))
	sb.WriteString("  " + m.optionFlags())
	sb.WriteString("\n\n")

	if m.diagram != nil {
		c := newCanvas(m.diagram)
		n := columns(width - 4)
		if m.viewStart > 0 {
			fmt.Fprintf(&sb, "  ◀ showing rows %d–%d of %d\n", m.viewStart, m.viewStart+n-1, m.diagram.OutputRow())
		}
		for _, line := range c.render(m.viewStart, n, m.cursorQubit) {
			sb.WriteString(line + "\n")
		}
		fmt.Fprintf(&sb, "\n  %d vertices  %d edges  depth %d",
			len(m.diagram.Vertices()), len(m.diagram.Edges()), m.diagram.Depth())
	}

	switch {
	case m.focus == focusSelectTarget:
		fmt.Fprintf(&sb, "\n  %s  target: %s", accentStyle.Render(m.pending.name),
			cursorLabelStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	case m.buildErr != nil:
		sb.WriteString("\n  " + errorStyle.Render(errorText(m.buildErr)))
	case m.statusMsg != "":
		sb.WriteString("\n  " + accentStyle.Render(m.statusMsg))
	}

	return diagramStyle.Width(width).Height(height).Render(sb.String())
}

// renderTextPanel renders the circuit text editor.
func (m Model) renderTextPanel(width, height int) string {
	var sb strings.Builder

	title := "Circuit"
	if m.focus == focusText {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.editor.View())

	return textStyle.Width(width).Height(max(height, 4)).Render(sb.String())
}

// stateHeight is the rendered height of the state panel for c, borders
// and padding included.
func stateHeight(c circuit.Circuit) int {
	if c.NumQubits > maxSimQubits {
		return 6
	}
	return c.NumQubits + 5
}

// renderStatePanel shows P(|1⟩) per qubit for the circuit run on |0…0⟩.
func (m Model) renderStatePanel(width int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("State"))
	sb.WriteString("\n")

	if m.circ.NumQubits > maxSimQubits {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("more than %d qubits", maxSimQubits)))
		return textStyle.Width(width).Render(sb.String())
	}
	state, err := sim.Simulate(m.circ)
	if err != nil {
		sb.WriteString(errorStyle.Render(errorText(err)))
		return textStyle.Width(width).Render(sb.String())
	}

	barW := max(width-20, 4)
	for q, p := range state.Probabilities() {
		filled := int(p.Prob1*float64(barW) + 0.5)
		fmt.Fprintf(&sb, "%s %s %5.1f%%\n",
			laneLabelStyle.Render(fmt.Sprintf("q[%d]", q)),
			hBoxStyle.Render(strings.Repeat("█", filled))+dimStyle.Render(strings.Repeat("░", barW-filled)),
			100*p.Prob1)
	}
	return textStyle.Width(width).Render(strings.TrimRight(sb.String(), "\n"))
}

// renderControlsPanel renders the bottom help bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(accentStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Qubit  ←→/hl Scroll  +/- Qubits  Tab Edit text")
	sb.WriteString("\n")
	sb.WriteString(accentStyle.Render("Edit:     "))
	sb.WriteString("a Add  c Push Clifford  f Simplify  Bksp Undo  ^R Clear")
	sb.WriteString("\n")
	sb.WriteString(accentStyle.Render("View:     "))
	sb.WriteString("x Expand  s Stack  g Gadget form  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay ────────────────────────────

// overlayAt draws overlay on top of bg with its top-left corner at (x, y).
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	for i, line := range strings.Split(overlay, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		base := bgLines[row]
		prefix := ansi.Truncate(base, x, "")
		if pad := x - ansi.StringWidth(prefix); pad > 0 {
			prefix += strings.Repeat(" ", pad)
		}
		suffix := ansi.TruncateLeft(base, x+ansi.StringWidth(line), "")
		bgLines[row] = prefix + line + suffix
	}
	return strings.Join(bgLines, "\n")
}
