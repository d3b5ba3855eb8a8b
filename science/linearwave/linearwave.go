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

// Package linearwave holds relations from linear (Airy) wave theory
// for waves approaching a coast: dispersion, breaker classification and
// wave setup.
package linearwave

import (
	"fmt"
	"math"
)

// Gravity is the standard gravitational acceleration [m s-2].
const Gravity = 9.81

// Dispersion iteration settings.
const (
	tolerance     = 1e-6 // relative change in wavelength
	maxIterations = 200
)

// DeepWaterWavelength returns the deep water wavelength gT²/2π [m] of a
// wave with period t [s].
func DeepWaterWavelength(t float64) float64 {
	return Gravity * t * t / (2 * math.Pi)
}

// Wavelength solves the linear dispersion relation
// L = L0·tanh(2πh/L) for the wavelength [m] of a wave with period t [s]
// in water of depth h [m].
func Wavelength(t, h float64) (float64, error) {
	if !(t > 0) || !(h > 0) {
		return 0, fmt.Errorf("linearwave: period (%g s) and depth (%g m) should be >0", t, h)
	}
	l0 := DeepWaterWavelength(t)
	l := l0
	for i := 0; i < maxIterations; i++ {
		// Averaging with the previous guess keeps the iteration from
		// oscillating in shallow water.
		next := (l + l0*math.Tanh(2*math.Pi*h/l)) / 2
		if math.Abs(next-l) <= tolerance*next {
			return next, nil
		}
		l = next
	}
	return 0, fmt.Errorf("linearwave: wavelength for period %g s and depth %g m did not converge", t, h)
}

// WaveNumber returns 2π/L [m-1] for a wave with period t [s] in water of
// depth h [m].
func WaveNumber(t, h float64) (float64, error) {
	l, err := Wavelength(t, h)
	if err != nil {
		return 0, err
	}
	return 2 * math.Pi / l, nil
}

// Celerity returns the phase speed L/T [m s-1] of a wave with period t
// [s] in water of depth h [m].
func Celerity(t, h float64) (float64, error) {
	l, err := Wavelength(t, h)
	if err != nil {
		return 0, err
	}
	return l / t, nil
}

// ShallowWaterCelerity returns sqrt(g·h) [m s-1], the speed of long
// waves in water of depth h [m].
func ShallowWaterCelerity(g, h float64) float64 {
	return math.Sqrt(g * h)
}

// SurfSimilarity returns the Iribarren number tan(α)/sqrt(H/L0) for a
// beach slope α [rad] and a wave of height h [m] and period t [s].
func SurfSimilarity(alpha, h, t float64) float64 {
	return math.Tan(alpha) / math.Sqrt(h/DeepWaterWavelength(t))
}

// BreakerType is the way a wave breaks on a beach.
type BreakerType int

// Breaker types, ordered by increasing surf similarity.
const (
	Spilling BreakerType = iota
	Plunging
	Surging
)

func (b BreakerType) String() string {
	switch b {
	case Spilling:
		return "spilling"
	case Plunging:
		return "plunging"
	case Surging:
		return "surging"
	default:
		return fmt.Sprintf("BreakerType(%d)", int(b))
	}
}

// Breaker classifies a wave by its surf similarity parameter xi.
func Breaker(xi float64) BreakerType {
	switch {
	case xi < 0.4:
		return Spilling
	case xi <= 2:
		return Plunging
	default:
		return Surging
	}
}

// UrsellLinearLimit is the Ursell number below which linear theory
// applies.
const UrsellLinearLimit = 32

// Ursell returns the Ursell number H·L²/h³ for a wave of height height
// [m] and period t [s] in water of depth h [m].
func Ursell(height, t, h float64) (float64, error) {
	l, err := Wavelength(t, h)
	if err != nil {
		return 0, err
	}
	return height * l * l / (h * h * h), nil
}

// WaveSetup returns the maximum setup of the mean water level [m] at the
// shoreline for a wave breaking with height hb [m] and breaker index
// gamma.
func WaveSetup(hb, gamma float64) float64 {
	return 5. / 16. * gamma * hb
}
