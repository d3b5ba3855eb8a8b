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

package spectrum

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Series is an irregular wave record: a sum of linear wave components
// sampled at regular times. It is not modified after generation.
type Series struct {
	Config Config

	// Frequencies are the component frequencies [Hz], DF their spacing
	// [Hz] and Density the spectral density at each of them [m² s].
	Frequencies []float64
	DF          float64
	Density     []float64

	// Amplitudes [m] and Phases [rad] of the components.
	Amplitudes []float64
	Phases     []float64

	// Dt is the sample interval [s]. Times[k] = k·Dt and Eta[k] is the
	// surface elevation at that time [m].
	Dt    float64
	Times []float64
	Eta   []float64
}

// Generate draws a realization of the irregular wave record described by
// c. Phases are drawn from rng; for reproducible records, pass a seeded
// source. If rng is nil a time-seeded source is used and every call
// gives a different record.
func Generate(c Config, rng *rand.Rand) (*Series, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	band := c.Band()
	s := &Series{
		Config:      c,
		Frequencies: band.Centers(),
		DF:          band.Width(),
		Dt:          c.SampleInterval,
	}
	s.Density = make([]float64, band.N)
	for i, f := range s.Frequencies {
		s.Density[i] = c.Density(f)
	}
	if c.Normalize {
		m0 := floats.Sum(s.Density) * s.DF
		if m0 > 0 {
			floats.Scale(c.Hs*c.Hs/16/m0, s.Density)
		}
	}

	s.Amplitudes = make([]float64, band.N)
	s.Phases = make([]float64, band.N)
	for i, d := range s.Density {
		s.Amplitudes[i] = math.Sqrt(2 * d * s.DF)
		s.Phases[i] = 2 * math.Pi * rng.Float64()
	}

	n := int(math.Ceil(c.Duration/c.SampleInterval - 1e-9))
	s.Times = make([]float64, n)
	s.Eta = make([]float64, n)
	for k := range s.Times {
		t := float64(k) * s.Dt
		s.Times[k] = t
		var eta float64
		for i, a := range s.Amplitudes {
			eta += a * math.Cos(2*math.Pi*s.Frequencies[i]*t+s.Phases[i])
		}
		s.Eta[k] = eta
	}
	return s, nil
}

func (s *Series) String() string {
	return fmt.Sprintf("%s(Hs=%g, Tp=%g, %d components)", s.Config.Kind, s.Config.Hs, s.Config.Tp, len(s.Frequencies))
}

// Len returns the number of samples.
func (s *Series) Len() int { return len(s.Eta) }

// At returns the elevation at time t [s], linearly interpolated between
// samples. It is zero before the first and after the last sample, so a
// forced boundary falls quiet once the record is used up.
func (s *Series) At(t float64) float64 {
	n := len(s.Eta)
	if n == 0 || t < 0 {
		return 0
	}
	x := t / s.Dt
	k := int(math.Floor(x))
	if k >= n-1 {
		if k == n-1 && x-float64(k) < 1e-9 {
			return s.Eta[n-1]
		}
		return 0
	}
	w := x - float64(k)
	return (1-w)*s.Eta[k] + w*s.Eta[k+1]
}

// Variance returns the variance implied by the component amplitudes,
// Σ A²/2 [m²].
func (s *Series) Variance() float64 {
	return floats.Dot(s.Amplitudes, s.Amplitudes) / 2
}

// SignificantHeight returns 4·sqrt(Variance()) [m], the spectral
// significant wave height of the components.
func (s *Series) SignificantHeight() float64 {
	return 4 * math.Sqrt(s.Variance())
}

// Statistics returns the sample mean and standard deviation of the
// record [m] and the significant wave height estimated as four standard
// deviations [m].
func (s *Series) Statistics() (mean, std, hs float64) {
	if len(s.Eta) < 2 {
		return 0, 0, 0
	}
	mean, std = stat.MeanStdDev(s.Eta, nil)
	return mean, std, 4 * std
}
