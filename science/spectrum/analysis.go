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
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Periodogram returns the one-sided spectral density estimate s [m² s]
// of the record eta sampled every dt [s], at frequencies f_k = k/(n·dt)
// for k = 1 up to the Nyquist frequency. The record mean is removed
// first, so Σ s·Δf equals the population variance of eta.
func Periodogram(eta []float64, dt float64) (f, s []float64, err error) {
	n := len(eta)
	if n < 2 {
		return nil, nil, fmt.Errorf("spectrum: periodogram needs at least 2 samples but got %d", n)
	}
	if !(dt > 0) {
		return nil, nil, fmt.Errorf("spectrum: periodogram sample interval %g should be >0", dt)
	}
	x := make([]float64, n)
	copy(x, eta)
	floats.AddConst(-stat.Mean(x, nil), x)

	X := fft.FFTReal(x)
	df := 1 / (float64(n) * dt)
	nf := n / 2
	f = make([]float64, nf)
	s = make([]float64, nf)
	for k := 1; k <= nf; k++ {
		a := cmplx.Abs(X[k])
		p := a * a * dt / float64(n)
		if !(n%2 == 0 && k == nf) {
			// Fold the negative frequencies; the Nyquist term has no
			// mirror image.
			p *= 2
		}
		f[k-1] = float64(k) * df
		s[k-1] = p
	}
	return f, s, nil
}

// Hm0 returns the spectral significant wave height 4·sqrt(m0) [m] of the
// spectrum s sampled at the evenly spaced frequencies f.
func Hm0(f, s []float64) float64 {
	if len(f) == 0 {
		return 0
	}
	df := f[0]
	if len(f) > 1 {
		df = f[1] - f[0]
	}
	return 4 * math.Sqrt(floats.Sum(s)*df)
}
