package viewer

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qtermzx/circuit"
	"qtermzx/zx"
)

// ──────────────────────────── Diagram canvas ────────────────────────────

// Diagram rows become columns of the canvas. Each qubit gets a lane, and
// the half-qubit positions between lanes hold vertical edges and CZ
// markers, so qubit q sits on lane 2q.

type arm uint8

const (
	armUp arm = 1 << iota
	armDown
	armLeft
	armRight
)

// glyphs is indexed by an arm mask.
var glyphs = []rune(" ╵╷│─┘┐┤─└┌├─┴┬┼")

type cell struct {
	arms   arm
	vertex *zx.Vertex
}

type canvas struct {
	numQubits int
	cells     [][]cell // [lane][column]
}

func laneOf(v zx.Vertex) int {
	return int(math.Round(v.Qubit * 2))
}

func newCanvas(d *zx.Diagram) *canvas {
	lanes := 2*d.NumQubits() - 1
	vertices := d.Vertices()
	for _, v := range vertices {
		lanes = max(lanes, laneOf(v)+1)
	}
	cols := d.OutputRow() + 1

	c := &canvas{numQubits: d.NumQubits(), cells: make([][]cell, lanes)}
	for l := range c.cells {
		c.cells[l] = make([]cell, cols)
	}
	for q := range d.NumQubits() {
		c.horizontal(2*q, 0, cols-1)
	}
	for i := range vertices {
		v := vertices[i]
		c.cells[laneOf(v)][v.Row].vertex = &v
	}

	for _, e := range d.Edges() {
		a, _ := d.Vertex(e.Source)
		b, _ := d.Vertex(e.Target)
		if !a.Aux && !b.Aux && a.Qubit == b.Qubit {
			continue
		}
		if a.Row > b.Row {
			a, b = b, a
		}
		c.vertical(a.Row, laneOf(a), laneOf(b))
		if a.Row != b.Row {
			c.horizontal(laneOf(b), a.Row, b.Row)
		}
	}
	return c
}

func (c *canvas) vertical(col, from, to int) {
	lo, hi := min(from, to), max(from, to)
	if lo == hi {
		return
	}
	c.cells[lo][col].arms |= armDown
	c.cells[hi][col].arms |= armUp
	for l := lo + 1; l < hi; l++ {
		c.cells[l][col].arms |= armUp | armDown
	}
}

func (c *canvas) horizontal(lane, from, to int) {
	if from == to {
		return
	}
	c.cells[lane][from].arms |= armRight
	c.cells[lane][to].arms |= armLeft
	for col := from + 1; col < to; col++ {
		c.cells[lane][col].arms |= armLeft | armRight
	}
}

// ──────────────────────────── Cell rendering ────────────────────────────

// vertexLabel returns the text drawn for v, e.g. "Z(π/2)" or "H".
func vertexLabel(v zx.Vertex) string {
	var name string
	switch v.Kind {
	case zx.Boundary:
		return "○"
	case zx.ZSpider:
		name = "Z"
	case zx.XSpider:
		name = "X"
	case zx.HBox:
		return "H"
	}
	if v.Phase == 0 {
		return name
	}
	return fmt.Sprintf("%s(%s)", name, circuit.FormatPiUnits(v.Phase))
}

func vertexStyle(v zx.Vertex) lipgloss.Style {
	switch v.Kind {
	case zx.ZSpider:
		return zSpiderStyle
	case zx.XSpider:
		return xSpiderStyle
	case zx.HBox:
		return hBoxStyle
	}
	return dimStyle
}

func fill(a, side arm, n int) string {
	if a&side != 0 {
		return strings.Repeat("─", n)
	}
	return strings.Repeat(" ", n)
}

// renderCell draws one cell exactly cellW columns wide.
func renderCell(c cell) string {
	if c.vertex == nil {
		left := (cellW - 1) / 2
		return fill(c.arms, armLeft, left) + string(glyphs[c.arms]) + fill(c.arms, armRight, cellW-left-1)
	}

	label := []rune(vertexLabel(*c.vertex))
	if len(label) > cellW-2 {
		label = append(label[:cellW-3], '…')
	}
	left := (cellW - len(label)) / 2
	right := cellW - len(label) - left
	return fill(c.arms, armLeft, left) + vertexStyle(*c.vertex).Render(string(label)) + fill(c.arms, armRight, right)
}

func (c *canvas) laneLabel(lane, cursorQubit int) string {
	if lane%2 != 0 || lane/2 >= c.numQubits {
		return strings.Repeat(" ", laneLabelW)
	}
	label := fmt.Sprintf("%-*s", laneLabelW, fmt.Sprintf("q[%d]", lane/2))
	if lane/2 == cursorQubit {
		return cursorLabelStyle.Render(label)
	}
	return laneLabelStyle.Render(label)
}

// columns returns how many diagram rows fit into width characters.
func columns(width int) int {
	return max((width-laneLabelW)/cellW, 1)
}

// render draws the columns [start, start+n) of every lane.
func (c *canvas) render(start, n, cursorQubit int) []string {
	lines := make([]string, len(c.cells))
	for l, row := range c.cells {
		var sb strings.Builder
		sb.WriteString(c.laneLabel(l, cursorQubit))
		for col := start; col < min(start+n, len(row)); col++ {
			sb.WriteString(renderCell(row[col]))
		}
		lines[l] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}
