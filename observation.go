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
	"gonum.org/v1/gonum/floats"
)

// ObservationPoint is a grid point whose elevation is recorded at every
// step, like a wave gauge.
type ObservationPoint struct {
	// Label names the point. If it is empty, "(i,j)" is used.
	Label string
	I, J  int
}

func (p ObservationPoint) label() string {
	if p.Label != "" {
		return p.Label
	}
	return fmt.Sprintf("(%d,%d)", p.I, p.J)
}

// Sample is one value of a time series.
type Sample struct {
	Time  float64 // [s]
	Value float64
}

// ObservationSeries is the time series recorded at an ObservationPoint,
// starting with the initial state at t = 0.
type ObservationSeries struct {
	Point   ObservationPoint
	Samples []Sample
}

// Label returns the name of the observation point.
func (o *ObservationSeries) Label() string { return o.Point.label() }

// Times returns the sample times.
func (o *ObservationSeries) Times() []float64 {
	t := make([]float64, len(o.Samples))
	for i, s := range o.Samples {
		t[i] = s.Time
	}
	return t
}

// Values returns the sample values.
func (o *ObservationSeries) Values() []float64 {
	v := make([]float64, len(o.Samples))
	for i, s := range o.Samples {
		v[i] = s.Value
	}
	return v
}

// observe appends the current value at every observation point.
func (s *Simulation) observe() {
	for _, o := range s.obs {
		o.Samples = append(o.Samples, Sample{
			Time:  s.time,
			Value: s.cur.Get(o.Point.J, o.Point.I),
		})
	}
}

// Observations returns copies of the recorded observation series, in the
// order the points were configured.
func (s *Simulation) Observations() []ObservationSeries {
	o := make([]ObservationSeries, len(s.obs))
	for i, series := range s.obs {
		o[i] = ObservationSeries{
			Point:   series.Point,
			Samples: append([]Sample(nil), series.Samples...),
		}
	}
	return o
}

// Observation returns a copy of the series recorded at the point with
// the given label.
func (s *Simulation) Observation(label string) (ObservationSeries, error) {
	for _, series := range s.obs {
		if series.Label() == label {
			return ObservationSeries{
				Point:   series.Point,
				Samples: append([]Sample(nil), series.Samples...),
			}, nil
		}
	}
	return ObservationSeries{}, fmt.Errorf("coastal: no observation point labeled %q", label)
}

// MaxAbs returns the largest absolute value in f.
func MaxAbs(f *sparse.DenseArray) float64 {
	if len(f.Elements) == 0 {
		return 0
	}
	return math.Max(math.Abs(floats.Max(f.Elements)), math.Abs(floats.Min(f.Elements)))
}
