// Package viewer is a terminal editor for gate circuits that shows the ZX
// diagram of the circuit as it is edited.
package viewer

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"qtermzx/builder"
	"qtermzx/circuit"
	"qtermzx/errors"
	"qtermzx/zx"
)

// focus represents which panel or popup has keyboard input.
type focus int

const (
	focusDiagram focus = iota
	focusText
	focusMenu
	focusSelectTarget
	focusInputParam
)

// menuMode says what a picked gate is used for.
type menuMode int

const (
	modeAdd menuMode = iota
	modeApply
)

// Model is the viewer state. The circuit is the source of truth; the
// diagram and the text editor are derived from it.
type Model struct {
	circ     circuit.Circuit
	opts     builder.Options
	diagram  *zx.Diagram
	buildErr error
	log      *zap.Logger
	savePath string

	cursorQubit int
	viewStart   int
	width       int
	height      int
	editor      textarea.Model
	focus       focus
	lastText    string
	statusMsg   string

	mode        menuMode
	menuCat     int
	menuItem    int
	pending     menuItem
	targetQubit int
	paramInput  string
}

// New opens c for editing. A nil logger discards output.
func New(c circuit.Circuit, opts builder.Options, savePath string, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	ta := textarea.New()
	ta.Placeholder = "qreg q[2];\ngadget(pi/2) XZ;"
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true

	m := Model{
		circ:     c,
		opts:     opts,
		log:      log.Named("viewer"),
		savePath: savePath,
		editor:   ta,
	}
	m.rebuild()
	m.syncText()
	return m
}

// Run starts the viewer in the alternate screen and blocks until it quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Circuit returns the circuit being edited.
func (m Model) Circuit() circuit.Circuit { return m.circ }

// rebuild redraws the diagram. On failure the last good diagram stays and
// the error is shown instead of the status line.
func (m *Model) rebuild() {
	d, err := builder.New(m.opts, m.log).Circuit(m.circ)
	if err != nil {
		m.buildErr = err
		m.log.Debug("build failed", zap.Error(err))
		return
	}
	m.diagram, m.buildErr = d, nil
	m.viewStart = min(m.viewStart, d.OutputRow())
}

func (m *Model) syncText() {
	text := circuit.FormatText(m.circ)
	m.editor.SetValue(text)
	m.lastText = text
}

func (m *Model) parseTextInput() {
	text := m.editor.Value()
	if text == m.lastText {
		return
	}
	m.lastText = text
	c, err := circuit.ParseText(text)
	if err != nil {
		m.buildErr = err
		return
	}
	m.circ = c
	m.cursorQubit = min(m.cursorQubit, max(c.NumQubits-1, 0))
	m.rebuild()
}

// setCircuit replaces the circuit and refreshes both views.
func (m *Model) setCircuit(c circuit.Circuit, status string) {
	m.circ = c
	m.rebuild()
	m.syncText()
	m.statusMsg = status
}

func (m Model) activeMenu() []menuCategory {
	if m.mode == modeApply {
		return cliffordMenu
	}
	return gateMenu
}

func (m *Model) openMenu(mode menuMode) {
	m.mode = mode
	m.menuCat, m.menuItem = 0, 0
	m.focus = focusMenu
}

func (m *Model) resetPending() {
	m.pending = menuItem{}
	m.paramInput = ""
	m.focus = focusDiagram
}

// beginTarget moves to target selection, or reports why it cannot.
func (m *Model) beginTarget() {
	if m.circ.NumQubits < 2 {
		m.statusMsg = "Two-qubit gates need at least two qubits"
		m.resetPending()
		return
	}
	m.targetQubit = m.cursorQubit + 1
	if m.targetQubit >= m.circ.NumQubits {
		m.targetQubit = m.cursorQubit - 1
	}
	m.focus = focusSelectTarget
}

// place builds the pending gate and either appends it or pushes it through
// the whole circuit.
func (m *Model) place() {
	defer m.resetPending()

	g, err := m.pending.gate(m.cursorQubit, m.targetQubit, m.paramInput)
	if err != nil {
		m.statusMsg = errorText(err)
		return
	}

	if m.mode == modeApply {
		c, err := m.circ.Apply(g, 0, len(m.circ.Gates))
		if err != nil {
			m.statusMsg = errorText(err)
			return
		}
		m.log.Info("applied clifford", zap.Stringer("gate", g), zap.Int("gates", len(c.Gates)))
		m.setCircuit(c, "Applied "+g.String())
		return
	}

	c, err := circuit.New(m.circ.NumQubits, append(m.circ.Gates[:len(m.circ.Gates):len(m.circ.Gates)], g)...)
	if err != nil {
		m.statusMsg = errorText(err)
		return
	}
	m.setCircuit(c, "")
	if m.diagram != nil {
		m.viewStart = max(m.diagram.OutputRow()-columns(m.diagramWidth())+1, 0)
	}
}

// save writes the circuit to the configured path in the format its
// extension names.
func (m *Model) save() {
	data, err := circuit.Marshal(m.circ, m.savePath)
	if err == nil {
		err = os.WriteFile(m.savePath, data, 0o644)
	}
	if err != nil {
		m.statusMsg = "Save error: " + errorText(err)
		return
	}
	m.log.Info("saved circuit", zap.String("path", m.savePath), zap.Int("gates", len(m.circ.Gates)))
	m.statusMsg = "Saved " + m.savePath
}

// errorText is the error message followed by its hints.
func errorText(err error) string {
	msg := err.Error()
	if hint := errors.FlattenHints(err); hint != "" {
		msg += " (" + strings.ReplaceAll(hint, "\n", "; ") + ")"
	}
	return msg
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(max(msg.Width/3-6, 20))
		m.editor.SetHeight(max(msg.Height-controlsH-12, 4))

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus != focusText {
			m.statusMsg = ""
		}

		switch m.focus {
		case focusDiagram:
			if quit := m.updateDiagram(key); quit {
				return m, tea.Quit
			}

		case focusMenu:
			m.updateMenu(key)

		case focusSelectTarget:
			switch key {
			case "esc":
				m.resetPending()
			case "up", "k":
				for next := m.targetQubit - 1; next >= 0; next-- {
					if next != m.cursorQubit {
						m.targetQubit = next
						break
					}
				}
			case "down", "j":
				for next := m.targetQubit + 1; next < m.circ.NumQubits; next++ {
					if next != m.cursorQubit {
						m.targetQubit = next
						break
					}
				}
			case "enter":
				m.place()
			}

		case focusInputParam:
			switch key {
			case "esc":
				m.resetPending()
			case "backspace":
				if r := []rune(m.paramInput); len(r) > 0 {
					m.paramInput = string(r[:len(r)-1])
				}
			case "enter":
				if m.pending.needsTarget {
					m.beginTarget()
				} else {
					m.place()
				}
			default:
				m.paramInput += string(msg.Runes)
			}

		case focusText:
			if key == "tab" {
				m.focus = focusDiagram
				m.editor.Blur()
				break
			}
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			cmds = append(cmds, cmd)
			m.parseTextInput()
		}
	}

	return m, tea.Batch(cmds...)
}

// updateDiagram handles keys while the diagram has focus. It reports
// whether the viewer should quit.
func (m *Model) updateDiagram(key string) bool {
	switch key {
	case "q":
		return true
	case "tab":
		m.focus = focusText
		m.editor.Focus()
	case "up", "k":
		m.cursorQubit = max(m.cursorQubit-1, 0)
	case "down", "j":
		m.cursorQubit = min(m.cursorQubit+1, m.circ.NumQubits-1)
	case "left", "h":
		m.viewStart = max(m.viewStart-1, 0)
	case "right", "l":
		if m.diagram != nil && m.viewStart < m.diagram.OutputRow() {
			m.viewStart++
		}
	case "a":
		m.openMenu(modeAdd)
	case "c":
		m.openMenu(modeApply)
	case "x":
		m.opts.Expand = !m.opts.Expand
		m.rebuild()
	case "s":
		m.opts.Stack = !m.opts.Stack
		m.rebuild()
	case "g":
		m.opts.GadgetsOnly = !m.opts.GadgetsOnly
		m.rebuild()
	case "f":
		before := len(m.circ.Gates)
		c := m.circ.Simplify()
		m.setCircuit(c, fmt.Sprintf("Simplified %d → %d gates", before, len(c.Gates)))
	case "backspace", "delete":
		if n := len(m.circ.Gates); n > 0 {
			m.setCircuit(circuit.Circuit{NumQubits: m.circ.NumQubits, Gates: m.circ.Gates[:n-1]}, "")
		}
	case "ctrl+r":
		m.viewStart = 0
		m.setCircuit(circuit.Circuit{NumQubits: m.circ.NumQubits}, "Cleared")
	case "ctrl+s":
		m.save()
	case "+", "=":
		m.setCircuit(circuit.Circuit{NumQubits: m.circ.NumQubits + 1, Gates: m.circ.Gates}, "")
	case "-":
		smaller := circuit.Circuit{NumQubits: m.circ.NumQubits - 1, Gates: m.circ.Gates}
		if smaller.NumQubits < 1 || smaller.Validate() != nil {
			m.statusMsg = fmt.Sprintf("Cannot remove q[%d] while gates use it", m.circ.NumQubits-1)
			break
		}
		m.cursorQubit = min(m.cursorQubit, smaller.NumQubits-1)
		m.setCircuit(smaller, "")
	}
	return false
}

func (m *Model) updateMenu(key string) {
	menu := m.activeMenu()
	switch key {
	case "esc":
		m.focus = focusDiagram
	case "up", "k":
		m.menuItem = max(m.menuItem-1, 0)
	case "down", "j":
		m.menuItem = min(m.menuItem+1, len(menu[m.menuCat].items)-1)
	case "left", "h":
		if m.menuCat > 0 {
			m.menuCat--
			m.menuItem = 0
		}
	case "right", "l":
		if m.menuCat < len(menu)-1 {
			m.menuCat++
			m.menuItem = 0
		}
	case "enter":
		m.pending = menu[m.menuCat].items[m.menuItem]
		switch {
		case m.pending.needsParams:
			m.paramInput = ""
			m.focus = focusInputParam
		case m.pending.needsTarget:
			m.beginTarget()
		default:
			m.place()
		}
	}
}

// ──────────────────────────── View ────────────────────────────

func (m Model) diagramWidth() int {
	if m.width == 0 {
		return 80
	}
	return m.width - m.width/3 - 8
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	textWidth := m.width / 3
	diagramWidth := m.width - textWidth - 4
	topHeight := max(m.height-controlsH-2, 6)

	left := m.renderDiagramPanel(diagramWidth, topHeight)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTextPanel(textWidth, topHeight-stateHeight(m.circ)),
		m.renderStatePanel(textWidth))
	top := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	frame := lipgloss.JoinVertical(lipgloss.Left, top, m.renderControlsPanel(m.width-4, controlsH-2))

	switch m.focus {
	case focusMenu:
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	case focusInputParam:
		frame = overlayAt(frame, m.renderParamInput(), 2, 2)
	}
	return frame
}
