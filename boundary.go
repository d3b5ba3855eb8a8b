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
	"fmt"
	"math"

	"github.com/ctessum/sparse"
)

// TimeLevels holds the three time levels of the leapfrog scheme at the
// moment boundary conditions are applied: the interior of Next has been
// updated and its boundary points have not.
type TimeLevels struct {
	Grid            *Grid
	Prev, Cur, Next *sparse.DenseArray

	// Time is the simulation time of Next [s].
	Time float64

	// Dt is the time step [s] and C is the wave speed [m/s].
	Dt, C float64
}

// BoundaryCondition sets the boundary points along one edge of the next
// time level. Applying a condition twice to the same TimeLevels must give
// the same result as applying it once.
type BoundaryCondition interface {
	Apply(e Edge, l *TimeLevels)
}

// Boundaries assigns a boundary condition to each edge of the domain.
// Edges without an entry get zero-Dirichlet. Entries for South and North
// are ignored on one-dimensional grids.
type Boundaries map[Edge]BoundaryCondition

// AllEdges returns Boundaries that use bc on every edge.
func AllEdges(bc BoundaryCondition) Boundaries {
	return Boundaries{West: bc, East: bc, South: bc, North: bc}
}

// For returns the condition used on edge e.
func (b Boundaries) For(e Edge) BoundaryCondition {
	if bc, ok := b[e]; ok && bc != nil {
		return bc
	}
	return Dirichlet{}
}

// resolve returns a copy of b holding the condition used on each edge of
// grid g.
func (b Boundaries) resolve(g *Grid) Boundaries {
	r := make(Boundaries, len(g.Edges()))
	for _, e := range g.Edges() {
		r[e] = b.For(e)
	}
	return r
}

// validate checks that the conditions are usable on grid g.
func (b Boundaries) validate(g *Grid) error {
	for _, e := range g.Edges() {
		if v, ok := b.For(e).(interface {
			Validate() error
		}); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// apply applies every edge condition to l.Next, in the order given by
// Grid.Edges. Where edges meet, the later edge sets the corner.
func (b Boundaries) apply(l *TimeLevels) {
	for _, e := range l.Grid.Edges() {
		b.For(e).Apply(e, l)
	}
}

// Dirichlet fixes the boundary points to Value. The zero value is the
// zero-Dirichlet condition, under which waves vanish at the edge.
type Dirichlet struct {
	Value float64
}

// Apply implements BoundaryCondition.
func (d Dirichlet) Apply(e Edge, l *TimeLevels) {
	b, _ := l.Grid.EdgeIndices(e)
	for _, i := range b {
		l.Next.Elements[i] = d.Value
	}
}

func (d Dirichlet) String() string { return fmt.Sprintf("dirichlet:%g", d.Value) }

// Neumann fixes the outward normal derivative at the boundary to
// Gradient, so f_boundary = f_inward + Gradient·h.
type Neumann struct {
	Gradient float64
}

// FreeSlip returns the zero-gradient condition, which copies the
// adjacent interior value onto the boundary and reflects waves like a
// wall.
func FreeSlip() Neumann { return Neumann{} }

// Apply implements BoundaryCondition.
func (n Neumann) Apply(e Edge, l *TimeLevels) {
	b, in := l.Grid.EdgeIndices(e)
	step := n.Gradient * l.Grid.NormalSpacing(e)
	next := l.Next.Elements
	for k, i := range b {
		next[i] = next[in[k]] + step
	}
}

func (n Neumann) String() string {
	if n.Gradient == 0 {
		return "freeslip"
	}
	return fmt.Sprintf("neumann:%g", n.Gradient)
}

// Absorbing lets outgoing waves leave the domain. The boundary value is
// the first-order one-way wave (Mur) extrapolation
//
//	m = cur_inward + r·(next_inward − cur_boundary),  r = (cΔt − h)/(cΔt + h)
//
// damped toward zero by Coefficient:
//
//	next_boundary = (1 − Coefficient)·m
//
// Coefficient 0 is a pure radiating edge and 1 is equivalent to
// zero-Dirichlet. It must be in [0, 1].
type Absorbing struct {
	Coefficient float64
}

// Validate checks the damping coefficient.
func (a Absorbing) Validate() error {
	if !(a.Coefficient >= 0 && a.Coefficient <= 1) {
		return configErr("absorbing coefficient", a.Coefficient, "should be in [0, 1]")
	}
	return nil
}

// Apply implements BoundaryCondition.
func (a Absorbing) Apply(e Edge, l *TimeLevels) {
	b, in := l.Grid.EdgeIndices(e)
	h := l.Grid.NormalSpacing(e)
	cdt := l.C * l.Dt
	r := (cdt - h) / (cdt + h)
	keep := 1 - a.Coefficient
	cur, next := l.Cur.Elements, l.Next.Elements
	for k, i := range b {
		next[i] = keep * (cur[in[k]] + r*(next[in[k]]-cur[i]))
	}
}

func (a Absorbing) String() string { return fmt.Sprintf("absorbing:%g", a.Coefficient) }

// Signal is a prescribed surface elevation as a function of time.
type Signal interface {
	At(t float64) float64
}

// SignalFunc adapts an ordinary function to the Signal interface.
type SignalFunc func(t float64) float64

// At implements Signal.
func (f SignalFunc) At(t float64) float64 { return f(t) }

// Forcing sets every point on the edge to the value of Signal at the time
// of the next level. It is used to drive waves into the domain, for
// example with an irregular wave record.
type Forcing struct {
	Signal Signal
}

// Validate checks that a signal has been provided.
func (f Forcing) Validate() error {
	if f.Signal == nil {
		return configErr("forcing signal", nil, "should be set")
	}
	if v, ok := f.Signal.(interface {
		Validate() error
	}); ok {
		return v.Validate()
	}
	return nil
}

// Apply implements BoundaryCondition.
func (f Forcing) Apply(e Edge, l *TimeLevels) {
	v := f.Signal.At(l.Time)
	b, _ := l.Grid.EdgeIndices(e)
	for _, i := range b {
		l.Next.Elements[i] = v
	}
}

func (f Forcing) String() string {
	if s, ok := f.Signal.(fmt.Stringer); ok {
		return "forcing:" + s.String()
	}
	return fmt.Sprintf("forcing:%T", f.Signal)
}

// Sinusoid is the monochromatic signal Amplitude·sin(2πt/Period + Phase).
type Sinusoid struct {
	Amplitude float64 // [m]
	Period    float64 // [s]
	Phase     float64 // [rad]
}

// Validate checks the period.
func (s Sinusoid) Validate() error {
	if !(s.Period > 0) {
		return configErr("Forcing.Period", s.Period, "should be >0")
	}
	return nil
}

// At implements Signal.
func (s Sinusoid) At(t float64) float64 {
	return s.Amplitude * math.Sin(2*math.Pi*t/s.Period+s.Phase)
}

func (s Sinusoid) String() string {
	return fmt.Sprintf("sinusoid(A=%g, T=%g)", s.Amplitude, s.Period)
}
