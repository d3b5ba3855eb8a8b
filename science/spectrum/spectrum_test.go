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

package spectrum_test

import (
	"errors"
	"io/ioutil"
	"math"
	"math/rand"
	"os"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/spatialmodel/coastal"
	"github.com/spatialmodel/coastal/science/spectrum"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func TestPiersonMoskowitz(t *testing.T) {
	const hs, tp = 0.5, 3.
	fp := 1 / tp
	peak := spectrum.PiersonMoskowitz(hs, tp, fp)
	want := 5. / 16. * hs * hs * tp * math.Exp(-1.25)
	if different(peak, want, 1e-12) {
		t.Errorf("peak density: have %g, want %g", peak, want)
	}
	for _, f := range []float64{0.8 * fp, 0.95 * fp, 1.05 * fp, 1.5 * fp} {
		if s := spectrum.PiersonMoskowitz(hs, tp, f); s >= peak {
			t.Errorf("density at %g Hz (%g) should be below the peak (%g)", f, s, peak)
		}
	}
	for _, f := range []float64{0, -1} {
		if s := spectrum.PiersonMoskowitz(hs, tp, f); s != 0 {
			t.Errorf("density at %g Hz: have %g, want 0", f, s)
		}
	}
}

func TestJonswap(t *testing.T) {
	const hs, tp, gamma = 0.5, 3., 3.3
	fp := 1 / tp
	ratio := spectrum.Jonswap(hs, tp, gamma, fp) / spectrum.PiersonMoskowitz(hs, tp, fp)
	if different(ratio, gamma, 1e-12) {
		t.Errorf("peak enhancement: have %g, want %g", ratio, gamma)
	}
	// Far from the peak the two spectra agree.
	for _, f := range []float64{0.3 * fp, 3 * fp} {
		if different(spectrum.Jonswap(hs, tp, gamma, f), spectrum.PiersonMoskowitz(hs, tp, f), 1e-6) {
			t.Errorf("at %g Hz JONSWAP should match Pierson-Moskowitz", f)
		}
	}
	// The peak is narrower below fp than above it.
	below := spectrum.PeakEnhancement(tp, gamma, 0.9*fp)
	above := spectrum.PeakEnhancement(tp, gamma, 1.1*fp)
	if below >= above {
		t.Errorf("enhancement below peak (%g) should be less than above (%g)", below, above)
	}
}

func TestParseKind(t *testing.T) {
	for s, want := range map[string]spectrum.Kind{"pm": spectrum.PM, "JONSWAP": spectrum.JONSWAP, " Jonswap ": spectrum.JONSWAP} {
		k, err := spectrum.ParseKind(s)
		if err != nil {
			t.Fatal(err)
		}
		if k != want {
			t.Errorf("%q: have %v, want %v", s, k, want)
		}
	}
	if _, err := spectrum.ParseKind("bretschneider"); err == nil {
		t.Error("expected an error for an unknown spectrum")
	}
}

func TestRecordBand(t *testing.T) {
	b := spectrum.RecordBand(60, 0.1)
	if b.N != 300 {
		t.Errorf("N: have %d, want 300", b.N)
	}
	if different(b.Width(), 1./60, 1e-12) {
		t.Errorf("width: have %g, want %g", b.Width(), 1./60)
	}
	for k, f := range b.Centers() {
		if different(f, float64(k+1)/60, 1e-9) {
			t.Fatalf("center %d: have %g, want %g", k, f, float64(k+1)/60)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := spectrum.Config{
		Kind: spectrum.JONSWAP, Hs: 0.5, Tp: 3, Gamma: 3.3,
		FMin: 0.05, FMax: 2, Components: 100,
		Duration: 60, SampleInterval: 0.1,
	}
	if err := valid.Validate(); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name   string
		modify func(c *spectrum.Config)
	}{
		{"zero fmin", func(c *spectrum.Config) { c.FMin = 0 }},
		{"negative fmin", func(c *spectrum.Config) { c.FMin = -0.1 }},
		{"fmax below fmin", func(c *spectrum.Config) { c.FMax = 0.01 }},
		{"infinite fmax", func(c *spectrum.Config) { c.FMax = math.Inf(1) }},
		{"infinite fmin", func(c *spectrum.Config) { c.FMin = math.Inf(1) }},
		{"infinite gamma", func(c *spectrum.Config) { c.Gamma = math.Inf(1) }},
		{"no components", func(c *spectrum.Config) { c.Components = 0 }},
		{"zero Hs", func(c *spectrum.Config) { c.Hs = 0 }},
		{"negative Tp", func(c *spectrum.Config) { c.Tp = -3 }},
		{"zero gamma", func(c *spectrum.Config) { c.Gamma = 0 }},
		{"zero duration", func(c *spectrum.Config) { c.Duration = 0 }},
		{"NaN sample interval", func(c *spectrum.Config) { c.SampleInterval = math.NaN() }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := valid
			test.modify(&c)
			_, err := spectrum.Generate(c, rand.New(rand.NewSource(1)))
			var cfgErr *coastal.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("want a ConfigurationError, got %v", err)
			}
		})
	}
}

func TestFixedSeed(t *testing.T) {
	c := spectrum.Config{
		Kind: spectrum.JONSWAP, Hs: 1, Tp: 5, Gamma: 3.3,
		FMin: 0.05, FMax: 1, Components: 64,
		Duration: 30, SampleInterval: 0.25,
	}
	a, err := spectrum.Generate(c, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := spectrum.Generate(c, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	if !floats.Equal(a.Amplitudes, b.Amplitudes) {
		t.Error("amplitudes differ between runs with the same seed")
	}
	if !floats.Equal(a.Phases, b.Phases) {
		t.Error("phases differ between runs with the same seed")
	}
	if !floats.Equal(a.Eta, b.Eta) {
		t.Error("records differ between runs with the same seed")
	}

	d, err := spectrum.Generate(c, rand.New(rand.NewSource(43)))
	if err != nil {
		t.Fatal(err)
	}
	if !floats.Equal(a.Amplitudes, d.Amplitudes) {
		t.Error("amplitudes should not depend on the seed")
	}
	if floats.Equal(a.Phases, d.Phases) {
		t.Error("phases should depend on the seed")
	}
	for _, p := range d.Phases {
		if p < 0 || p >= 2*math.Pi {
			t.Fatalf("phase %g outside [0, 2π)", p)
		}
	}
	if len(a.Eta) != 120 {
		t.Errorf("samples: have %d, want 120", len(a.Eta))
	}
}

func TestVariance(t *testing.T) {
	const hs = 0.5
	c := spectrum.Config{
		Kind: spectrum.PM, Hs: hs, Tp: 3,
		FMin: 0.01, FMax: 3, Components: 4000,
		Duration: 10, SampleInterval: 0.1,
	}
	s, err := spectrum.Generate(c, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	want := hs * hs / 16
	if different(s.Variance(), want, 0.02) {
		t.Errorf("variance: have %g, want %g", s.Variance(), want)
	}
	if different(s.SignificantHeight(), hs, 0.01) {
		t.Errorf("significant height: have %g, want %g", s.SignificantHeight(), hs)
	}
}

func TestNormalize(t *testing.T) {
	const hs = 0.8
	c := spectrum.Config{
		Kind: spectrum.JONSWAP, Hs: hs, Tp: 4, Gamma: 3.3,
		FMin: 0.15, FMax: 0.5, Components: 50,
		Duration: 10, SampleInterval: 0.1,
		Normalize: true,
	}
	s, err := spectrum.Generate(c, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if different(s.Variance(), hs*hs/16, 1e-10) {
		t.Errorf("variance: have %g, want %g", s.Variance(), hs*hs/16)
	}
}

func TestPeriodogram(t *testing.T) {
	const hs, tp = 0.5, 3.
	c := spectrum.Config{
		Kind: spectrum.PM, Hs: hs, Tp: tp,
		Duration: 600, SampleInterval: 0.1,
	}
	s, err := spectrum.Generate(c, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 6000 {
		t.Fatalf("samples: have %d, want 6000", s.Len())
	}
	f, p, err := spectrum.Periodogram(s.Eta, s.Dt)
	if err != nil {
		t.Fatal(err)
	}
	if len(f) != 3000 {
		t.Fatalf("frequencies: have %d, want 3000", len(f))
	}

	hm0 := spectrum.Hm0(f, p)
	n := float64(s.Len())
	popVariance := stat.Variance(s.Eta, nil) * (n - 1) / n
	if want := 4 * math.Sqrt(popVariance); different(hm0, want, 1e-6) {
		t.Errorf("Hm0 should match the record variance: have %g, want %g", hm0, want)
	}
	if different(hm0, s.SignificantHeight(), 0.01) {
		t.Errorf("Hm0 should match the component height: have %g, want %g", hm0, s.SignificantHeight())
	}
	if _, _, h := s.Statistics(); different(h, hm0, 0.01) {
		t.Errorf("4σ should match Hm0: have %g, want %g", h, hm0)
	}

	peak := f[floats.MaxIdx(p)]
	if math.Abs(peak-1/tp) > 2./600 {
		t.Errorf("periodogram peak: have %g Hz, want %g Hz", peak, 1/tp)
	}

	if _, _, err := spectrum.Periodogram([]float64{1}, 0.1); err == nil {
		t.Error("expected an error for a single sample")
	}
	if _, _, err := spectrum.Periodogram([]float64{1, 2}, 0); err == nil {
		t.Error("expected an error for a zero sample interval")
	}
}

func TestSeriesAt(t *testing.T) {
	s := &spectrum.Series{Dt: 1, Times: []float64{0, 1, 2}, Eta: []float64{0, 2, 4}}
	tests := []struct{ t, want float64 }{
		{-1, 0},
		{0, 0},
		{0.5, 1},
		{1, 2},
		{1.75, 3.5},
		{2, 4},
		{2.5, 0},
		{10, 0},
	}
	for _, test := range tests {
		if have := s.At(test.t); math.Abs(have-test.want) > 1e-12 {
			t.Errorf("At(%g): have %g, want %g", test.t, have, test.want)
		}
	}
}

func TestWriteNetCDF(t *testing.T) {
	c := spectrum.Config{
		Kind: spectrum.JONSWAP, Hs: 1, Tp: 5, Gamma: 3.3,
		Duration: 20, SampleInterval: 0.5,
	}
	s, err := spectrum.Generate(c, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	ff, err := ioutil.TempFile("", "spectrum")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(ff.Name())
	defer ff.Close()

	if err := s.WriteNetCDF(ff, map[string]string{"run_id": "test"}); err != nil {
		t.Fatal(err)
	}
	f, err := cdf.Open(ff)
	if err != nil {
		t.Fatal(err)
	}
	if id := f.Header.GetAttribute("", "run_id").(string); id != "test" {
		t.Errorf("run_id: have %q, want %q", id, "test")
	}
	for name, want := range map[string][]float64{"eta": s.Eta, "amplitude": s.Amplitudes} {
		r := f.Reader(name, nil, nil)
		buf := r.Zero(-1).([]float64)
		if _, err := r.Read(buf); err != nil {
			t.Fatal(err)
		}
		if !floats.Equal(buf, want) {
			t.Errorf("%s does not round trip", name)
		}
	}
}
