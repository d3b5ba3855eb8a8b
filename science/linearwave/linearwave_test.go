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

package linearwave

import (
	"math"
	"testing"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func TestWavelength(t *testing.T) {
	tests := []struct {
		name      string
		period    float64
		depth     float64
		want      float64
		tolerance float64
	}{
		{"deep", 5, 1000, DeepWaterWavelength(5), 1e-6},
		{"shallow", 10, 0.1, ShallowWaterCelerity(Gravity, 0.1) * 10, 0.005},
		{"very shallow", 20, 0.01, ShallowWaterCelerity(Gravity, 0.01) * 20, 0.001},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l, err := Wavelength(test.period, test.depth)
			if err != nil {
				t.Fatal(err)
			}
			if different(l, test.want, test.tolerance) {
				t.Errorf("have %g, want %g", l, test.want)
			}
		})
	}
}

func TestWavelengthDispersion(t *testing.T) {
	for _, period := range []float64{2, 5, 8, 12} {
		for _, depth := range []float64{0.5, 2, 5, 20} {
			l, err := Wavelength(period, depth)
			if err != nil {
				t.Fatal(err)
			}
			residual := l - DeepWaterWavelength(period)*math.Tanh(2*math.Pi*depth/l)
			if math.Abs(residual) > 1e-5*l {
				t.Errorf("T=%g, h=%g: L=%g does not satisfy the dispersion relation (residual %g)", period, depth, l, residual)
			}
			k, err := WaveNumber(period, depth)
			if err != nil {
				t.Fatal(err)
			}
			if different(k*l, 2*math.Pi, 1e-12) {
				t.Errorf("T=%g, h=%g: k·L = %g", period, depth, k*l)
			}
			c, err := Celerity(period, depth)
			if err != nil {
				t.Fatal(err)
			}
			if c > ShallowWaterCelerity(Gravity, depth)*(1+1e-6) {
				t.Errorf("T=%g, h=%g: celerity %g exceeds the long wave speed", period, depth, c)
			}
		}
	}
}

func TestWavelengthInvalid(t *testing.T) {
	for _, v := range [][2]float64{{0, 1}, {1, 0}, {-1, 1}, {math.NaN(), 1}} {
		if _, err := Wavelength(v[0], v[1]); err == nil {
			t.Errorf("T=%g, h=%g: expected an error", v[0], v[1])
		}
	}
}

func TestBreaker(t *testing.T) {
	tests := []struct {
		xi   float64
		want BreakerType
	}{
		{0.1, Spilling},
		{0.39, Spilling},
		{0.4, Plunging},
		{1, Plunging},
		{2, Plunging},
		{2.01, Surging},
		{5, Surging},
	}
	for _, test := range tests {
		if have := Breaker(test.xi); have != test.want {
			t.Errorf("ξ=%g: have %v, want %v", test.xi, have, test.want)
		}
	}
	if s := Plunging.String(); s != "plunging" {
		t.Errorf("String: have %q", s)
	}
}

func TestSurfSimilarity(t *testing.T) {
	xi := SurfSimilarity(math.Atan(0.1), 1, 8)
	want := 0.1 / math.Sqrt(1/DeepWaterWavelength(8))
	if different(xi, want, 1e-12) {
		t.Errorf("have %g, want %g", xi, want)
	}
	if Breaker(xi) != Plunging {
		t.Errorf("a 1 m, 8 s wave on a 1:10 slope should plunge, not %v", Breaker(xi))
	}
}

func TestUrsell(t *testing.T) {
	u, err := Ursell(0.1, 5, 10)
	if err != nil {
		t.Fatal(err)
	}
	if u >= UrsellLinearLimit {
		t.Errorf("a small wave in deep water should be linear, got Ursell number %g", u)
	}
	u, err = Ursell(0.5, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	if u < UrsellLinearLimit {
		t.Errorf("a long wave in shallow water should be nonlinear, got Ursell number %g", u)
	}
}

func TestWaveSetup(t *testing.T) {
	if s := WaveSetup(1, 0.8); different(s, 0.25, 1e-12) {
		t.Errorf("have %g, want 0.25", s)
	}
}

func TestRunup(t *testing.T) {
	alpha := math.Atan(0.1)
	l0 := DeepWaterWavelength(8)
	xi := 0.1 * math.Sqrt(l0)

	if r := HuntRunup(alpha, 1, 8); different(r, xi, 1e-12) {
		t.Errorf("Hunt: have %g, want %g", r, xi)
	}

	want := 1.1 * (0.35*xi + 0.5*math.Sqrt(0.75*0.75*xi*xi+0.0036*l0))
	r2 := StockdonRunup(alpha, 1, 8)
	if different(r2, want, 1e-12) {
		t.Errorf("Stockdon: have %g, want %g", r2, want)
	}
	if different(r2, 0.9129, 1e-3) {
		t.Errorf("Stockdon: have %g, want about 0.913", r2)
	}

	// Run-up grows with beach slope.
	if StockdonRunup(math.Atan(0.05), 1, 8) >= r2 || HuntRunup(math.Atan(0.05), 1, 8) >= xi {
		t.Error("run-up on a flatter beach should be lower")
	}
}
