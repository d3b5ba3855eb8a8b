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
	"runtime"
	"sync"

	"github.com/ctessum/sparse"
)

// SpatialOperator is a discrete differential operator over a Grid.
type SpatialOperator interface {
	// Operate evaluates the operator on src at every interior point and
	// stores the result in dst. Boundary points of dst are set to zero;
	// they are the responsibility of the boundary conditions.
	Operate(dst, src *sparse.DenseArray)
}

// Evaluate applies op to f and returns the result as a new field.
func Evaluate(g *Grid, op SpatialOperator, f *sparse.DenseArray) *sparse.DenseArray {
	dst := g.NewField()
	op.Operate(dst, f)
	return dst
}

// parallelThreshold is the grid size below which the Laplacian is
// computed on the calling goroutine.
const parallelThreshold = 1 << 14

// Laplacian is the second-order centered finite-difference Laplacian.
type Laplacian struct {
	g      *Grid
	nprocs int
}

// NewLaplacian returns a Laplacian on grid g that splits large grids
// across GOMAXPROCS goroutines.
func NewLaplacian(g *Grid) *Laplacian {
	return &Laplacian{g: g, nprocs: runtime.GOMAXPROCS(0)}
}

// Operate implements SpatialOperator.
func (l *Laplacian) Operate(dst, src *sparse.DenseArray) {
	g := l.g
	g.checkField(dst)
	g.checkField(src)

	jStart, jEnd := 1, g.ny-1
	if g.dims == 1 {
		jStart, jEnd = 0, 1
	}
	nrows := jEnd - jStart
	nprocs := l.nprocs
	if g.Len() < parallelThreshold || nprocs < 1 {
		nprocs = 1
	}
	if nprocs > nrows {
		nprocs = nrows
	}

	if nprocs == 1 {
		for j := jStart; j < jEnd; j++ {
			l.row(dst.Elements, src.Elements, j)
		}
	} else {
		var wg sync.WaitGroup
		wg.Add(nprocs)
		for pp := 0; pp < nprocs; pp++ {
			go func(pp int) {
				for j := jStart + pp; j < jEnd; j += nprocs {
					l.row(dst.Elements, src.Elements, j)
				}
				wg.Done()
			}(pp)
		}
		wg.Wait()
	}
	zeroBoundary(g, dst)
}

// row computes the Laplacian along interior row j.
func (l *Laplacian) row(dst, src []float64, j int) {
	g := l.g
	rdx2 := 1 / (g.dx * g.dx)
	n := j * g.nx
	if g.dims == 1 {
		for i := n + 1; i < n+g.nx-1; i++ {
			dst[i] = (src[i+1] - 2*src[i] + src[i-1]) * rdx2
		}
		return
	}
	rdy2 := 1 / (g.dy * g.dy)
	for i := n + 1; i < n+g.nx-1; i++ {
		dst[i] = (src[i+1]-2*src[i]+src[i-1])*rdx2 +
			(src[i+g.nx]-2*src[i]+src[i-g.nx])*rdy2
	}
}

// zeroBoundary sets every boundary point of f to zero.
func zeroBoundary(g *Grid, f *sparse.DenseArray) {
	for _, e := range g.Edges() {
		b, _ := g.EdgeIndices(e)
		for _, i := range b {
			f.Elements[i] = 0
		}
	}
}

// Gradient returns the centered first differences of f along x and y
// at the interior points of g. Boundary points are zero, and gy is zero
// everywhere on one-dimensional grids.
func Gradient(g *Grid, f *sparse.DenseArray) (gx, gy *sparse.DenseArray) {
	g.checkField(f)
	gx, gy = g.NewField(), g.NewField()
	jStart, jEnd := 1, g.ny-1
	if g.dims == 1 {
		jStart, jEnd = 0, 1
	}
	e := f.Elements
	for j := jStart; j < jEnd; j++ {
		for i := 1; i < g.nx-1; i++ {
			k := g.Index(i, j)
			gx.Elements[k] = (e[k+1] - e[k-1]) / (2 * g.dx)
			if g.dims == 2 {
				gy.Elements[k] = (e[k+g.nx] - e[k-g.nx]) / (2 * g.dy)
			}
		}
	}
	return gx, gy
}
