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

// Package spectrum provides wave energy spectra and generates irregular
// wave records from them by random-phase superposition of linear wave
// components.
package spectrum

import (
	"fmt"
	"math"
	"strings"

	"github.com/spatialmodel/coastal"
)

// Kind is a spectral density model.
type Kind int

const (
	// PM is the Pierson-Moskowitz spectrum of a fully developed sea.
	PM Kind = iota
	// JONSWAP is the spectrum of a developing sea, a Pierson-Moskowitz
	// spectrum with a sharpened peak.
	JONSWAP
)

func (k Kind) String() string {
	switch k {
	case PM:
		return "pm"
	case JONSWAP:
		return "jonswap"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind returns the Kind named by s ("pm" or "jonswap", case
// insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pm", "pierson-moskowitz":
		return PM, nil
	case "jonswap":
		return JONSWAP, nil
	}
	return 0, &coastal.ConfigurationError{Param: "Spectrum.Kind", Value: s, Reason: "should be 'pm' or 'jonswap'"}
}

// Peak shape widths of the JONSWAP spectrum below and above the peak
// frequency.
const (
	sigmaLow  = 0.07
	sigmaHigh = 0.09
)

// PiersonMoskowitz returns the Pierson-Moskowitz spectral density
// [m² s] at frequency f [Hz] for significant wave height hs [m] and
// peak period tp [s]. It is zero for f <= 0.
func PiersonMoskowitz(hs, tp, f float64) float64 {
	if f <= 0 {
		return 0
	}
	fp := 1 / tp
	r := fp / f
	return 5. / 16. * hs * hs * math.Pow(fp, 4) * math.Pow(f, -5) * math.Exp(-1.25*r*r*r*r)
}

// Jonswap returns the JONSWAP spectral density [m² s] at frequency f [Hz]
// with peak enhancement factor gamma.
func Jonswap(hs, tp, gamma, f float64) float64 {
	return PiersonMoskowitz(hs, tp, f) * PeakEnhancement(tp, gamma, f)
}

// PeakEnhancement returns the JONSWAP peak enhancement factor
// gamma^exp(−(f/fp−1)²/(2σ²)).
func PeakEnhancement(tp, gamma, f float64) float64 {
	fp := 1 / tp
	sigma := sigmaHigh
	if f <= fp {
		sigma = sigmaLow
	}
	d := f/fp - 1
	return math.Pow(gamma, math.Exp(-d*d/(2*sigma*sigma)))
}

// Band is a set of N equal-width frequency bins covering [FMin, FMax].
type Band struct {
	FMin, FMax float64 // [Hz]
	N          int
}

// Width returns the width Δf of each bin [Hz].
func (b Band) Width() float64 { return (b.FMax - b.FMin) / float64(b.N) }

// Centers returns the center frequency of each bin.
func (b Band) Centers() []float64 {
	df := b.Width()
	f := make([]float64, b.N)
	for i := range f {
		f[i] = b.FMin + (float64(i)+0.5)*df
	}
	return f
}

// Validate checks that the band is usable.
func (b Band) Validate() error {
	switch {
	case !(b.FMin > 0) || math.IsInf(b.FMin, 0):
		return &coastal.ConfigurationError{Param: "Spectrum.FMin", Value: b.FMin, Reason: "should be >0 and finite"}
	case math.IsInf(b.FMax, 0):
		return &coastal.ConfigurationError{Param: "Spectrum.FMax", Value: b.FMax, Reason: "should be finite"}
	case !(b.FMax > b.FMin):
		return &coastal.ConfigurationError{Param: "Spectrum.FMax", Value: b.FMax, Reason: fmt.Sprintf("should be > FMin (%g)", b.FMin)}
	case b.N < 1:
		return &coastal.ConfigurationError{Param: "Spectrum.Components", Value: b.N, Reason: "should be >= 1"}
	}
	return nil
}

// RecordBand returns the band resolved by a record of the given
// duration sampled every dt: bins of width 1/duration centered on the
// Fourier frequencies k/duration up to the Nyquist frequency.
func RecordBand(duration, dt float64) Band {
	df := 1 / duration
	n := int(math.Ceil(duration/dt-1e-9)) / 2
	fmin := df / 2
	return Band{FMin: fmin, FMax: fmin + float64(n)*df, N: n}
}

// Config holds the parameters of an irregular wave record.
type Config struct {
	Kind Kind

	// Hs is the significant wave height [m] and Tp the peak period [s].
	Hs, Tp float64

	// Gamma is the JONSWAP peak enhancement factor.
	Gamma float64

	// FMin and FMax bound the frequency band [Hz], which is split into
	// Components bins. If all three are zero, the band is derived from
	// the record with RecordBand.
	FMin, FMax float64
	Components int

	// Duration is the record length [s] and SampleInterval the time
	// between samples [s].
	Duration, SampleInterval float64

	// Normalize rescales the discrete spectrum so that its zeroth moment
	// is exactly Hs²/16.
	Normalize bool
}

// Band returns the frequency band of c.
func (c Config) Band() Band {
	if c.FMin == 0 && c.FMax == 0 && c.Components == 0 && c.Duration > 0 && c.SampleInterval > 0 {
		return RecordBand(c.Duration, c.SampleInterval)
	}
	return Band{FMin: c.FMin, FMax: c.FMax, N: c.Components}
}

// Validate returns a *coastal.ConfigurationError if c is not usable.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"Spectrum.Hs", c.Hs},
		{"Spectrum.Tp", c.Tp},
		{"Spectrum.Duration", c.Duration},
		{"Spectrum.SampleInterval", c.SampleInterval},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return &coastal.ConfigurationError{Param: p.name, Value: p.v, Reason: "should be >0"}
		}
	}
	switch c.Kind {
	case PM:
	case JONSWAP:
		if !(c.Gamma > 0) || math.IsInf(c.Gamma, 0) {
			return &coastal.ConfigurationError{Param: "Spectrum.Gamma", Value: c.Gamma, Reason: "should be >0 and finite"}
		}
	default:
		return &coastal.ConfigurationError{Param: "Spectrum.Kind", Value: c.Kind, Reason: "should be PM or JONSWAP"}
	}
	return c.Band().Validate()
}

// Density returns the spectral density of c at frequency f [Hz], before
// any normalization.
func (c Config) Density(f float64) float64 {
	if c.Kind == JONSWAP {
		return Jonswap(c.Hs, c.Tp, c.Gamma, f)
	}
	return PiersonMoskowitz(c.Hs, c.Tp, f)
}
