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
	"sort"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// NetCDFWriter writes simulation output to a NetCDF file. Output
// variables are written every `every` steps, starting with the initial
// state. Observation series are written by Close.
type NetCDFWriter struct {
	f      *cdf.File
	s      *Simulation
	o      *Outputter
	every  int
	frames int
	closed bool
}

// NewNetCDFWriter writes the NetCDF header for a run of steps steps of
// s to w and writes the current state of s as the first frame. attrs are
// added as global attributes.
func NewNetCDFWriter(w cdf.ReaderWriterAt, s *Simulation, o *Outputter, steps, every int, attrs map[string]string) (*NetCDFWriter, error) {
	if steps < 0 {
		return nil, configErr("Steps", steps, "should be >= 0")
	}
	if every < 1 {
		return nil, configErr("OutputEvery", every, "should be >= 1")
	}
	nx, ny := s.grid.nx, s.grid.ny
	nw := &NetCDFWriter{
		s:      s,
		o:      o,
		every:  every,
		frames: steps/every + 1,
	}

	dims := []string{"time", "y", "x"}
	lengths := []int{nw.frames, ny, nx}
	if len(s.obs) > 0 {
		dims = append(dims, "station", "obsTime")
		lengths = append(lengths, len(s.obs), steps+1)
	}
	h := cdf.NewHeader(dims, lengths)
	h.AddAttribute("", "comment", "coastal wave simulation output")
	h.AddAttribute("", "version", Version)
	h.AddAttribute("", "dx", []float64{s.grid.dx})
	h.AddAttribute("", "dy", []float64{s.grid.dy})
	h.AddAttribute("", "nx", []int32{int32(nx)})
	h.AddAttribute("", "ny", []int32{int32(ny)})
	h.AddAttribute("", "c", []float64{s.c})
	h.AddAttribute("", "dt", []float64{s.dt})
	h.AddAttribute("", "courant", []float64{s.Courant()})
	for _, k := range sortedKeys(attrs) {
		h.AddAttribute("", k, attrs[k])
	}

	h.AddVariable("time", []string{"time"}, []float64{0})
	h.AddAttribute("time", "units", "s")
	h.AddVariable("x", []string{"x"}, []float64{0})
	h.AddAttribute("x", "units", "m")
	h.AddVariable("y", []string{"y"}, []float64{0})
	h.AddAttribute("y", "units", "m")

	for _, name := range o.Names() {
		description, units := o.Expression(name), ""
		if mv, ok := ModelVariables[o.Expression(name)]; ok {
			description, units = mv.Description, mv.Units
		}
		h.AddVariable(name, []string{"time", "y", "x"}, []float32{0})
		h.AddAttribute(name, "description", description)
		h.AddAttribute(name, "units", units)
	}

	if len(s.obs) > 0 {
		labels := make([]string, len(s.obs))
		for i, series := range s.obs {
			labels[i] = series.Label()
		}
		h.AddAttribute("", "stations", strings.Join(labels, ","))
		h.AddVariable("station_i", []string{"station"}, []int32{0})
		h.AddVariable("station_j", []string{"station"}, []int32{0})
		h.AddVariable("obs_time", []string{"obsTime"}, []float64{0})
		h.AddAttribute("obs_time", "units", "s")
		h.AddVariable("Obs", []string{"station", "obsTime"}, []float32{0})
		h.AddAttribute("Obs", "description", "Surface elevation at observation points")
		h.AddAttribute("Obs", "units", "m")
	}
	h.Define()
	for _, err := range h.Check() {
		return nil, fmt.Errorf("coastal: creating netcdf file: %v", err)
	}

	f, err := cdf.Create(w, h)
	if err != nil {
		return nil, fmt.Errorf("coastal: creating netcdf file: %v", err)
	}
	nw.f = f

	if err := nw.write("x", nil, nil, s.grid.X()); err != nil {
		return nil, err
	}
	if err := nw.write("y", nil, nil, s.grid.Y()); err != nil {
		return nil, err
	}
	if len(s.obs) > 0 {
		si := make([]int32, len(s.obs))
		sj := make([]int32, len(s.obs))
		for i, series := range s.obs {
			si[i], sj[i] = int32(series.Point.I), int32(series.Point.J)
		}
		if err := nw.write("station_i", nil, nil, si); err != nil {
			return nil, err
		}
		if err := nw.write("station_j", nil, nil, sj); err != nil {
			return nil, err
		}
	}
	if err := nw.WriteSnapshot(s.Snapshot()); err != nil {
		return nil, err
	}
	return nw, nil
}

func (nw *NetCDFWriter) write(v string, begin, end []int, data interface{}) error {
	if _, err := nw.f.Writer(v, begin, end).Write(data); err != nil {
		return fmt.Errorf("coastal: writing variable %s to netcdf file: %v", v, err)
	}
	return nil
}

// WriteSnapshot writes the output variables for snap if it falls on an
// output step. Other snapshots are ignored.
func (nw *NetCDFWriter) WriteSnapshot(snap Snapshot) error {
	if snap.Step%nw.every != 0 {
		return nil
	}
	frame := snap.Step / nw.every
	if frame >= nw.frames {
		return nil
	}
	results, err := nw.o.Results(nw.s, snap)
	if err != nil {
		return err
	}
	ny, nx := nw.s.grid.ny, nw.s.grid.nx
	for _, name := range nw.o.Names() {
		err := nw.write(name, []int{frame, 0, 0}, []int{frame + 1, ny, nx}, float32s(results[name]))
		if err != nil {
			return err
		}
	}
	return nw.write("time", []int{frame}, []int{frame + 1}, []float64{snap.Time})
}

// Output returns a DomainManipulator that writes the simulation state
// after every output step.
func (nw *NetCDFWriter) Output() DomainManipulator {
	return func(s *Simulation) error {
		if s.step%nw.every != 0 {
			return nil
		}
		return nw.WriteSnapshot(s.Snapshot())
	}
}

// Close writes the recorded observation series. It does not close the
// underlying storage.
func (nw *NetCDFWriter) Close() error {
	if nw.closed {
		return nil
	}
	nw.closed = true
	if len(nw.s.obs) == 0 {
		return nil
	}
	n := nw.f.Header.Lengths("obs_time")[0]
	t := make([]float64, n)
	for i, smp := range nw.s.obs[0].Samples {
		if i >= n {
			break
		}
		t[i] = smp.Time
	}
	if err := nw.write("obs_time", nil, nil, t); err != nil {
		return err
	}
	for st, series := range nw.s.obs {
		v := make([]float32, n)
		for i, smp := range series.Samples {
			if i >= n {
				break
			}
			v[i] = float32(smp.Value)
		}
		if err := nw.write("Obs", []int{st, 0}, []int{st + 1, n}, v); err != nil {
			return err
		}
	}
	return nil
}

func float32s(d *sparse.DenseArray) []float32 {
	o := make([]float32, len(d.Elements))
	for i, e := range d.Elements {
		o[i] = float32(e)
	}
	return o
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
