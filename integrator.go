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
	"math"

	"github.com/ctessum/sparse"
)

// TimeIntegrator advances a field by one time step.
type TimeIntegrator interface {
	// Integrate computes next from the current and previous levels and
	// from the spatial operator evaluated on cur. Values left on the
	// boundary points of next are provisional and are overwritten by the
	// boundary conditions.
	Integrate(next, cur, prev, op *sparse.DenseArray)
}

// courantTolerance allows a time step computed as exactly the stability
// limit to pass despite rounding.
const courantTolerance = 1e-12

// Courant returns the Courant number c·Δt·sqrt(1/dx² + 1/dy²) of the
// explicit scheme on grid g. The y term is omitted on one-dimensional
// grids.
func Courant(g *Grid, c, dt float64) float64 {
	return c * dt * invSpacingNorm(g)
}

// MaxStableDt returns the largest time step for which the Courant number
// on grid g is at most 1.
func MaxStableDt(g *Grid, c float64) float64 {
	return 1 / (c * invSpacingNorm(g))
}

func invSpacingNorm(g *Grid) float64 {
	s := 1 / (g.dx * g.dx)
	if g.dims == 2 {
		s += 1 / (g.dy * g.dy)
	}
	return math.Sqrt(s)
}

// Leapfrog is the explicit, second-order centered update of the wave
// equation ∂²f/∂t² = c²∇²f:
//
//	next = 2·cur − prev + (c·Δt)²·∇²cur
type Leapfrog struct {
	g     *Grid
	c, dt float64
	coef  float64
}

// NewLeapfrog returns a leapfrog integrator for wave speed c [m/s] and
// time step dt [s] on grid g. It returns a *StabilityError if the
// Courant number exceeds 1.
func NewLeapfrog(g *Grid, c, dt float64) (*Leapfrog, error) {
	if !(c > 0) || math.IsInf(c, 0) {
		return nil, configErr("WaveSpeed", c, "should be >0 and finite")
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, configErr("Dt", dt, "should be >0 and finite")
	}
	if courant := Courant(g, c, dt); courant > 1+courantTolerance {
		return nil, &StabilityError{Courant: courant, Dt: dt, MaxDt: MaxStableDt(g, c)}
	}
	return &Leapfrog{g: g, c: c, dt: dt, coef: c * c * dt * dt}, nil
}

// Dt returns the time step.
func (l *Leapfrog) Dt() float64 { return l.dt }

// WaveSpeed returns the wave speed.
func (l *Leapfrog) WaveSpeed() float64 { return l.c }

// Integrate implements TimeIntegrator.
func (l *Leapfrog) Integrate(next, cur, prev, lap *sparse.DenseArray) {
	n, c, p, o := next.Elements, cur.Elements, prev.Elements, lap.Elements
	for i := range n {
		n[i] = 2*c[i] - p[i] + l.coef*o[i]
	}
}
