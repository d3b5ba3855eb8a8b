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

package coastalutil

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/ctessum/sparse"
	"github.com/spatialmodel/coastal"
	"github.com/spatialmodel/coastal/science/spectrum"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// renderer saves PNG plots of simulation output to a directory.
type renderer struct {
	dir string
}

func newRenderer(dir string) (*renderer, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("coastal: creating plot directory: %v", err)
	}
	return &renderer{dir: dir}, nil
}

// fieldGrid adapts a field on a two-dimensional grid to plotter.GridXYZ.
type fieldGrid struct {
	x, y []float64
	f    *sparse.DenseArray
}

func (g fieldGrid) Dims() (c, r int)   { return len(g.x), len(g.y) }
func (g fieldGrid) Z(c, r int) float64 { return g.f.Get(r, c) }
func (g fieldGrid) X(c int) float64    { return g.x[c] }
func (g fieldGrid) Y(r int) float64    { return g.y[r] }

// frame plots the surface elevation of snap: a heat map for
// two-dimensional grids and a line for one-dimensional ones.
func (r *renderer) frame(g *coastal.Grid, snap coastal.Snapshot) error {
	file := fmt.Sprintf("eta_%06d.png", snap.Step)
	title := fmt.Sprintf("Surface elevation at t = %.3g s", snap.Time)
	if g.Dims() == 1 {
		return r.series(file, title, "x (m)", "Surface elevation (m)", g.X(), snap.Eta.Elements)
	}

	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	// Use a symmetric color scale so that still water is always the
	// middle color.
	m := math.Max(math.Abs(floats.Max(snap.Eta.Elements)), math.Abs(floats.Min(snap.Eta.Elements)))
	if m == 0 {
		m = 1
	}
	cm := moreland.SmoothBlueRed()
	cm.SetMin(-m)
	cm.SetMax(m)
	h := plotter.NewHeatMap(fieldGrid{x: g.X(), y: g.Y(), f: snap.Eta}, cm.Palette(255))
	h.Min, h.Max = -m, m
	p.Add(h)

	lx, ly := g.Lengths()
	aspect := math.Min(math.Max(ly/lx, 0.25), 4)
	w := 6 * vg.Inch
	return p.Save(w, w*vg.Length(aspect), filepath.Join(r.dir, file))
}

// series saves a line plot of y against x.
func (r *renderer) series(file, title, xLabel, yLabel string, x, y []float64) error {
	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	xy := make(plotter.XYs, len(x))
	for i := range x {
		xy[i].X = x[i]
		xy[i].Y = y[i]
	}
	l, err := plotter.NewLine(xy)
	if err != nil {
		return err
	}
	p.Add(l)
	return p.Save(6*vg.Inch, 3*vg.Inch, filepath.Join(r.dir, file))
}

// spectrum plots the target spectral density of s together with the
// periodogram (f, p) of its record.
func (r *renderer) spectrum(file string, s *spectrum.Series, f, p []float64) error {
	pl, err := plot.New()
	if err != nil {
		return err
	}
	pl.Title.Text = fmt.Sprintf("%s spectrum", s.Config.Kind)
	pl.X.Label.Text = "Frequency (Hz)"
	pl.Y.Label.Text = "Spectral density (m² s)"

	periodogram := make(plotter.XYs, len(f))
	for i := range f {
		periodogram[i].X, periodogram[i].Y = f[i], p[i]
	}
	target := make(plotter.XYs, len(s.Frequencies))
	for i := range s.Frequencies {
		target[i].X, target[i].Y = s.Frequencies[i], s.Density[i]
	}
	l1, err := plotter.NewLine(periodogram)
	if err != nil {
		return err
	}
	l1.Color = color.NRGBA{127, 127, 127, 255}
	l2, err := plotter.NewLine(target)
	if err != nil {
		return err
	}
	l2.Color = color.NRGBA{255, 0, 0, 255}
	l2.Width = vg.Points(1.5)
	pl.Add(l1, l2)
	pl.Legend.Add("Periodogram", l1)
	pl.Legend.Add("Target", l2)
	pl.X.Max = 4 / s.Config.Tp
	return pl.Save(6*vg.Inch, 4*vg.Inch, filepath.Join(r.dir, file))
}
