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

// InitialCondition gives the surface elevation at the start of a
// simulation. The water starts at rest.
type InitialCondition interface {
	Elevation(x, y float64) float64
}

// InitialConditionFunc adapts an ordinary function to the
// InitialCondition interface.
type InitialConditionFunc func(x, y float64) float64

// Elevation implements InitialCondition.
func (f InitialConditionFunc) Elevation(x, y float64) float64 { return f(x, y) }

// GaussianHump is a Gaussian surface displacement
// Amplitude·exp(−r²/(2·Width²)) centered at (X0, Y0).
type GaussianHump struct {
	Amplitude float64 // peak elevation [m]
	X0, Y0    float64 // center [m]
	Width     float64 // standard deviation [m]
}

// CenteredHump returns a GaussianHump in the middle of the domain of g.
func CenteredHump(g *Grid, amplitude, width float64) GaussianHump {
	lx, ly := g.Lengths()
	return GaussianHump{Amplitude: amplitude, X0: lx / 2, Y0: ly / 2, Width: width}
}

// Validate checks the hump width.
func (h GaussianHump) Validate() error {
	if !(h.Width > 0) {
		return configErr("Initial.Width", h.Width, "should be >0")
	}
	return nil
}

// Elevation implements InitialCondition.
func (h GaussianHump) Elevation(x, y float64) float64 {
	dx, dy := x-h.X0, y-h.Y0
	return h.Amplitude * math.Exp(-(dx*dx+dy*dy)/(2*h.Width*h.Width))
}

// fill evaluates ic at every point of g. A nil ic gives a flat surface.
func fill(g *Grid, ic InitialCondition) *sparse.DenseArray {
	f := g.NewField()
	if ic == nil {
		return f
	}
	for j, y := range g.y {
		for i, x := range g.x {
			f.Elements[g.Index(i, j)] = ic.Elevation(x, y)
		}
	}
	return f
}
