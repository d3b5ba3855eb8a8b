/*
Copyright © 2026 the coastal authors.
This file is part of coastal.

coastal is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

coastal is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with coastal.  If not, see <http://www.gnu.org/licenses/>.
*/

package coastal

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/ctessum/sparse"
)

// randomLevels returns time levels on g filled with random values.
func randomLevels(g *Grid, seed int64) *TimeLevels {
	r := rand.New(rand.NewSource(seed))
	l := &TimeLevels{Grid: g, Prev: g.NewField(), Cur: g.NewField(), Next: g.NewField(), Time: 1.5, Dt: 0.05, C: 1}
	for _, f := range []*sparse.DenseArray{l.Prev, l.Cur, l.Next} {
		for i := range f.Elements {
			f.Elements[i] = r.Float64() - 0.5
		}
	}
	return l
}

func TestDirichlet(t *testing.T) {
	g, err := NewGrid2D(1, 1, 6, 5)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []float64{0, 0.25} {
		l := randomLevels(g, 1)
		AllEdges(Dirichlet{Value: v}).apply(l)
		for j := 0; j < 5; j++ {
			for i := 0; i < 6; i++ {
				if g.IsBoundary(i, j) && l.Next.Get(j, i) != v {
					t.Errorf("value %g: point (%d, %d) = %g", v, i, j, l.Next.Get(j, i))
				}
			}
		}
	}
}

func TestDefaultBoundaryIsZeroDirichlet(t *testing.T) {
	g, err := NewGrid2D(1, 1, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	var b Boundaries
	for _, e := range g.Edges() {
		if bc := b.For(e); bc != (Dirichlet{}) {
			t.Errorf("%v: have %v, want zero Dirichlet", e, bc)
		}
	}
	l := randomLevels(g, 2)
	b.apply(l)
	for _, e := range g.Edges() {
		bi, _ := g.EdgeIndices(e)
		for _, i := range bi {
			if l.Next.Elements[i] != 0 {
				t.Fatalf("%v: point %d = %g", e, i, l.Next.Elements[i])
			}
		}
	}
}

func TestFreeSlip(t *testing.T) {
	g, err := NewGrid2D(1, 1, 7, 6)
	if err != nil {
		t.Fatal(err)
	}
	l := randomLevels(g, 3)
	AllEdges(FreeSlip()).apply(l)
	for _, e := range g.Edges() {
		b, in := g.EdgeIndices(e)
		for k := range b {
			if l.Next.Elements[b[k]] != l.Next.Elements[in[k]] {
				t.Errorf("%v: boundary point %d = %g but inward point %d = %g", e,
					b[k], l.Next.Elements[b[k]], in[k], l.Next.Elements[in[k]])
			}
		}
	}
	// Corners take the value of the diagonal interior point.
	if l.Next.Get(0, 0) != l.Next.Get(1, 1) || l.Next.Get(5, 6) != l.Next.Get(4, 5) {
		t.Error("corners do not match their diagonal neighbors")
	}
}

func TestNeumannGradient(t *testing.T) {
	g, err := NewGrid1D(1, 11)
	if err != nil {
		t.Fatal(err)
	}
	l := randomLevels(g, 4)
	Boundaries{West: Neumann{Gradient: 2}, East: Neumann{Gradient: -1}}.apply(l)
	if absDifferent(l.Next.Get(0, 0), l.Next.Get(0, 1)+0.2) {
		t.Errorf("west: have %g, want %g", l.Next.Get(0, 0), l.Next.Get(0, 1)+0.2)
	}
	if absDifferent(l.Next.Get(0, 10), l.Next.Get(0, 9)-0.1) {
		t.Errorf("east: have %g, want %g", l.Next.Get(0, 10), l.Next.Get(0, 9)-0.1)
	}
}

func TestAbsorbing(t *testing.T) {
	g, err := NewGrid1D(1, 11)
	if err != nil {
		t.Fatal(err)
	}
	l := randomLevels(g, 5)
	r := (l.C*l.Dt - 0.1) / (l.C*l.Dt + 0.1)
	want := 0.75 * (l.Cur.Get(0, 9) + r*(l.Next.Get(0, 9)-l.Cur.Get(0, 10)))
	Absorbing{Coefficient: 0.25}.Apply(East, l)
	if absDifferent(l.Next.Get(0, 10), want) {
		t.Errorf("have %g, want %g", l.Next.Get(0, 10), want)
	}

	Absorbing{Coefficient: 1}.Apply(West, l)
	if l.Next.Get(0, 0) != 0 {
		t.Errorf("full damping should zero the boundary, have %g", l.Next.Get(0, 0))
	}

	for _, c := range []float64{-0.1, 1.1, math.NaN()} {
		var cfgErr *ConfigurationError
		if err := (Absorbing{Coefficient: c}).Validate(); !errors.As(err, &cfgErr) {
			t.Errorf("coefficient %g: want a ConfigurationError, got %v", c, err)
		}
	}
}

func TestForcing(t *testing.T) {
	g, err := NewGrid2D(1, 1, 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	l := randomLevels(g, 6)
	s := Sinusoid{Amplitude: 0.2, Period: 2, Phase: 0.3}
	Forcing{Signal: s}.Apply(South, l)
	want := 0.2 * math.Sin(2*math.Pi*l.Time/2+0.3)
	b, _ := g.EdgeIndices(South)
	for _, i := range b {
		if absDifferent(l.Next.Elements[i], want) {
			t.Errorf("point %d: have %g, want %g", i, l.Next.Elements[i], want)
		}
	}

	var cfgErr *ConfigurationError
	if err := (Forcing{}).Validate(); !errors.As(err, &cfgErr) {
		t.Errorf("missing signal: want a ConfigurationError, got %v", err)
	}
	if err := (Forcing{Signal: Sinusoid{Amplitude: 1}}).Validate(); !errors.As(err, &cfgErr) {
		t.Errorf("zero period: want a ConfigurationError, got %v", err)
	}
	if err := (Forcing{Signal: SignalFunc(math.Sin)}).Validate(); err != nil {
		t.Error(err)
	}
}

// Applying the boundary conditions a second time must not change the
// result.
func TestBoundaryIdempotent(t *testing.T) {
	g, err := NewGrid2D(2, 1, 9, 6)
	if err != nil {
		t.Fatal(err)
	}
	sets := map[string]Boundaries{
		"dirichlet": AllEdges(Dirichlet{Value: 0.1}),
		"freeslip":  AllEdges(FreeSlip()),
		"neumann":   AllEdges(Neumann{Gradient: 0.5}),
		"absorbing": AllEdges(Absorbing{Coefficient: 0.2}),
		"mixed": {
			West:  FreeSlip(),
			East:  FreeSlip(),
			South: Forcing{Signal: Sinusoid{Amplitude: 0.2, Period: 2.3}},
			North: Absorbing{},
		},
	}
	for name, b := range sets {
		t.Run(name, func(t *testing.T) {
			l := randomLevels(g, 7)
			b.apply(l)
			once := l.Next.Copy()
			b.apply(l)
			for i, v := range l.Next.Elements {
				if absDifferent(v, once.Elements[i]) {
					t.Fatalf("point %d: once %g, twice %g", i, once.Elements[i], v)
				}
			}
		})
	}
}
