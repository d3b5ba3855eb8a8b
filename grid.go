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

// MinPoints is the smallest number of points allowed along a grid axis:
// one interior point plus the two boundary points the stencil needs.
const MinPoints = 3

// Edge identifies one side of the domain.
type Edge int

// The domain edges. One-dimensional grids only have West and East.
const (
	West  Edge = iota // x = 0
	East              // x = Lx
	South             // y = 0
	North             // y = Ly
)

var edgeNames = []string{"West", "East", "South", "North"}

func (e Edge) String() string {
	if e < West || e > North {
		return fmt.Sprintf("Edge(%d)", int(e))
	}
	return edgeNames[e]
}

// Grid is a uniform, structured, one- or two-dimensional grid of
// points spanning [0, Lx] (× [0, Ly]). Boundary points lie on the domain
// edges. A Grid cannot be changed after it is created.
type Grid struct {
	dims   int
	nx, ny int
	lx, ly float64
	dx, dy float64

	x, y []float64

	// flat indices of the points on each edge and of their
	// inward neighbors.
	boundary, inward [4][]int
}

// NewGrid1D creates a one-dimensional grid with the given number of points
// over a domain of the given length. The point spacing is
// length/(points-1).
func NewGrid1D(length float64, points int) (*Grid, error) {
	if err := checkAxis("length", "points", length, points); err != nil {
		return nil, err
	}
	g := &Grid{
		dims: 1,
		nx:   points,
		ny:   1,
		lx:   length,
		dx:   length / float64(points-1),
	}
	g.setup()
	return g, nil
}

// NewGrid2D creates a two-dimensional grid with nx × ny points over a
// domain of size lx × ly.
func NewGrid2D(lx, ly float64, nx, ny int) (*Grid, error) {
	if err := checkAxis("Lx", "Nx", lx, nx); err != nil {
		return nil, err
	}
	if err := checkAxis("Ly", "Ny", ly, ny); err != nil {
		return nil, err
	}
	g := &Grid{
		dims: 2,
		nx:   nx,
		ny:   ny,
		lx:   lx,
		ly:   ly,
		dx:   lx / float64(nx-1),
		dy:   ly / float64(ny-1),
	}
	g.setup()
	return g, nil
}

func checkAxis(lengthName, pointsName string, length float64, points int) error {
	if !(length > 0) || math.IsInf(length, 0) {
		return configErr(lengthName, length, "should be >0 and finite")
	}
	if points < MinPoints {
		return configErr(pointsName, points, fmt.Sprintf("should be >= %d", MinPoints))
	}
	return nil
}

func (g *Grid) setup() {
	g.x = make([]float64, g.nx)
	for i := range g.x {
		g.x[i] = float64(i) * g.dx
	}
	g.y = make([]float64, g.ny)
	for j := range g.y {
		g.y[j] = float64(j) * g.dy
	}

	for j := 0; j < g.ny; j++ {
		g.boundary[West] = append(g.boundary[West], g.Index(0, j))
		g.inward[West] = append(g.inward[West], g.Index(1, j))
		g.boundary[East] = append(g.boundary[East], g.Index(g.nx-1, j))
		g.inward[East] = append(g.inward[East], g.Index(g.nx-2, j))
	}
	if g.dims == 1 {
		return
	}
	for i := 0; i < g.nx; i++ {
		g.boundary[South] = append(g.boundary[South], g.Index(i, 0))
		g.inward[South] = append(g.inward[South], g.Index(i, 1))
		g.boundary[North] = append(g.boundary[North], g.Index(i, g.ny-1))
		g.inward[North] = append(g.inward[North], g.Index(i, g.ny-2))
	}
}

// Dims returns the number of spatial dimensions (1 or 2).
func (g *Grid) Dims() int { return g.dims }

// Shape returns the number of points along x and y. For
// one-dimensional grids ny is 1.
func (g *Grid) Shape() (nx, ny int) { return g.nx, g.ny }

// Len returns the total number of grid points.
func (g *Grid) Len() int { return g.nx * g.ny }

// Spacing returns the point spacing along x and y. For one-dimensional
// grids dy is 0.
func (g *Grid) Spacing() (dx, dy float64) { return g.dx, g.dy }

// Lengths returns the domain extent along x and y.
func (g *Grid) Lengths() (lx, ly float64) { return g.lx, g.ly }

// X returns a copy of the x coordinates of the grid columns.
func (g *Grid) X() []float64 { return append([]float64(nil), g.x...) }

// Y returns a copy of the y coordinates of the grid rows.
func (g *Grid) Y() []float64 { return append([]float64(nil), g.y...) }

// Index returns the flat index of point (i, j) in a field on this grid.
func (g *Grid) Index(i, j int) int { return j*g.nx + i }

// Contains reports whether (i, j) is a valid point index.
func (g *Grid) Contains(i, j int) bool {
	return i >= 0 && i < g.nx && j >= 0 && j < g.ny
}

// IsBoundary reports whether (i, j) lies on a domain edge.
func (g *Grid) IsBoundary(i, j int) bool {
	if i == 0 || i == g.nx-1 {
		return true
	}
	return g.dims == 2 && (j == 0 || j == g.ny-1)
}

// Edges returns the domain edges in the order boundary conditions are
// applied.
func (g *Grid) Edges() []Edge {
	if g.dims == 1 {
		return []Edge{West, East}
	}
	return []Edge{West, East, South, North}
}

// EdgeIndices returns the flat indices of the points on edge e together
// with the indices of their neighbors one point into the domain.
// The returned slices must not be modified.
func (g *Grid) EdgeIndices(e Edge) (boundary, inward []int) {
	return g.boundary[e], g.inward[e]
}

// NormalSpacing returns the point spacing perpendicular to edge e.
func (g *Grid) NormalSpacing(e Edge) float64 {
	if e == West || e == East {
		return g.dx
	}
	return g.dy
}

// NewField returns a zero-valued scalar field on this grid, indexed as
// (j, i).
func (g *Grid) NewField() *sparse.DenseArray {
	return sparse.ZerosDense(g.ny, g.nx)
}

// checkField panics if f was not created for a grid of this shape.
func (g *Grid) checkField(f *sparse.DenseArray) {
	if len(f.Shape) != 2 || f.Shape[0] != g.ny || f.Shape[1] != g.nx {
		panic(fmt.Errorf("coastal: field shape %v does not match grid shape [%d %d]", f.Shape, g.ny, g.nx))
	}
}

func (g *Grid) String() string {
	if g.dims == 1 {
		return fmt.Sprintf("1D grid: %d points over %g (dx=%g)", g.nx, g.lx, g.dx)
	}
	return fmt.Sprintf("2D grid: %d×%d points over %g×%g (dx=%g, dy=%g)",
		g.nx, g.ny, g.lx, g.ly, g.dx, g.dy)
}
