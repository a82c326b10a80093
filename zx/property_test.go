package zx

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const propertyQubits = 4

// randomFragment builds one of the fragment shapes the builder emits: a
// single spider, a two-qubit pair with an optional midpoint marker, or a
// hub with legs below the register.
func randomFragment(seed int64) *Diagram {
	r := rand.New(rand.NewSource(seed))
	n := propertyQubits
	f := NewFragment(n)

	switch r.Intn(3) {
	case 0:
		kinds := []VertexKind{ZSpider, XSpider, HBox}
		f.Wire(r.Intn(n), kinds[r.Intn(len(kinds))], 1, float64(r.Intn(4))/2, nil)
	case 1:
		a, b := r.Intn(n), r.Intn(n-1)
		if b >= a {
			b++
		}
		u := f.Wire(a, ZSpider, 1, 0, nil)
		v := f.Wire(b, XSpider, 1, 0, nil)
		if r.Intn(2) == 0 {
			h := f.Aux(HBox, float64(a+b)/2, 1, 0, nil)
			f.Connect(u, h, Plain)
			f.Connect(h, v, Plain)
		} else {
			f.Connect(u, v, Plain)
		}
	default:
		hub := f.Aux(XSpider, float64(n), 3, 0, nil)
		tip := f.Aux(ZSpider, float64(n+1), 3, float64(r.Intn(8))/4, nil)
		f.Connect(hub, tip, Plain)
		legs := 0
		for q := range n {
			if r.Intn(2) == 0 && !(q == n-1 && legs == 0) {
				continue
			}
			legs++
			f.Wire(q, HBox, 1, 0, nil)
			mid := f.Wire(q, ZSpider, 2, 0, nil)
			f.Wire(q, HBox, 3, 0, nil)
			f.Connect(mid, hub, Plain)
		}
	}
	return f.Diagram()
}

// wireSequences describes a diagram without rows: the spider sequence of
// every wire plus every aux vertex with the wire positions it touches.
func wireSequences(d *Diagram) string {
	pos := make(map[VertexID]string)
	var sb strings.Builder
	for q := range d.NumQubits() {
		fmt.Fprintf(&sb, "q%d:", q)
		for i, v := range d.WireVertices(q) {
			pos[v.ID] = fmt.Sprintf("%d.%d", q, i)
			fmt.Fprintf(&sb, " %s(%.3f)", v.Kind, v.Phase)
		}
		sb.WriteString("\n")
	}
	var aux []string
	for _, v := range d.AuxVertices() {
		var touches []string
		for _, n := range d.Neighbors(v.ID) {
			if p, ok := pos[n]; ok {
				touches = append(touches, p)
			}
		}
		aux = append(aux, fmt.Sprintf("%s@%g(%.3f)->%v", v.Kind, v.Qubit, v.Phase, touches))
	}
	sb.WriteString(strings.Join(aux, ";"))
	return sb.String()
}

func composeProperties(t *testing.T) *gopter.Properties {
	t.Helper()
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 50
	return gopter.NewProperties(params)
}

func TestComposeAssociativity(t *testing.T) {
	properties := composeProperties(t)

	properties.Property("sequential composition is associative", prop.ForAll(
		func(sa, sb, sc int64) bool {
			a := Empty(propertyQubits).MustCompose(randomFragment(sa), false)
			b, c := randomFragment(sb), randomFragment(sc)

			left := a.MustCompose(b, false).MustCompose(c, false)
			right := a.MustCompose(b.MustCompose(c, false), false)
			return left.Equal(right)
		},
		gen.Int64(), gen.Int64(), gen.Int64(),
	))

	properties.Property("stacked composition is associative up to row layout", prop.ForAll(
		func(sa, sb, sc int64) bool {
			a := Empty(propertyQubits).MustCompose(randomFragment(sa), true)
			b, c := randomFragment(sb), randomFragment(sc)

			left := a.MustCompose(b, true).MustCompose(c, true)
			right := a.MustCompose(b.MustCompose(c, true), true)
			return wireSequences(left) == wireSequences(right)
		},
		gen.Int64(), gen.Int64(), gen.Int64(),
	))

	properties.TestingRun(t)
}

func TestComposeGrowthCommutes(t *testing.T) {
	properties := composeProperties(t)

	properties.Property("growing before or after composing agrees", prop.ForAll(
		func(seed int64, extra uint8, stacked bool) bool {
			frag := randomFragment(seed)
			n := propertyQubits + int(extra%3)

			before := Empty(propertyQubits).WithQubits(n).MustCompose(frag, stacked)
			after := Empty(propertyQubits).MustCompose(frag, stacked).WithQubits(n)
			return before.Equal(after)
		},
		gen.Int64(), gen.UInt8(), gen.Bool(),
	))

	properties.Property("composition keeps outputs past all content", prop.ForAll(
		func(sa, sb int64, stacked bool) bool {
			d := Empty(propertyQubits).MustCompose(randomFragment(sa), stacked).MustCompose(randomFragment(sb), stacked)
			return d.OutputRow() == d.RightRow()+1
		},
		gen.Int64(), gen.Int64(), gen.Bool(),
	))

	properties.TestingRun(t)
}
